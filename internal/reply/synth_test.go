package reply

import (
	"errors"
	"strings"
	"testing"

	"github.com/tbourn/moreply-backend/internal/domain"
)

func TestSynthesize_EveryToneHasText(t *testing.T) {
	seen := map[string]domain.Tone{}
	for _, tone := range domain.Tones {
		got, err := Synthesize(tone)
		if err != nil {
			t.Fatalf("Synthesize(%s): %v", tone, err)
		}
		if strings.TrimSpace(got) == "" {
			t.Fatalf("Synthesize(%s) returned blank text", tone)
		}
		if prev, dup := seen[got]; dup {
			t.Fatalf("tones %s and %s share the same reply", prev, tone)
		}
		seen[got] = tone
	}
}

func TestSynthesize_Deterministic(t *testing.T) {
	a, _ := Synthesize(domain.ToneProfessional)
	b, _ := Synthesize(domain.ToneProfessional)
	if a != b {
		t.Fatalf("same tone produced different replies")
	}
	if !strings.HasPrefix(a, "Thank you for taking the time to share this.") {
		t.Fatalf("unexpected professional reply: %q", a)
	}
}

func TestSynthesize_UnknownTone(t *testing.T) {
	for _, tone := range []domain.Tone{domain.ToneUnset, "Sarcastic", "friendly"} {
		if _, err := Synthesize(tone); !errors.Is(err, ErrUnknownTone) {
			t.Errorf("Synthesize(%q) err = %v; want ErrUnknownTone", tone, err)
		}
	}
}
