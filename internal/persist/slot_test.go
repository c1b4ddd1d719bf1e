package persist

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"
)

func nopLogger() zerolog.Logger { return zerolog.Nop() }

func TestMemorySlot_ZeroValueAndCopies(t *testing.T) {
	var s MemorySlot
	ctx := context.Background()

	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrSlotEmpty) {
		t.Fatalf("expected ErrSlotEmpty, got %v", err)
	}

	buf := []byte("abc")
	if err := s.Put(ctx, "k", buf); err != nil {
		t.Fatalf("Put: %v", err)
	}
	buf[0] = 'X' // caller mutation must not leak into the slot
	got, _ := s.Get(ctx, "k")
	if string(got) != "abc" {
		t.Fatalf("Get = %q; want abc", got)
	}
	got[1] = 'Y' // nor the other way round
	again, _ := s.Get(ctx, "k")
	if string(again) != "abc" {
		t.Fatalf("Get after mutation = %q; want abc", again)
	}
	if s.Backend() != "memory" {
		t.Fatalf("Backend = %q", s.Backend())
	}
}
