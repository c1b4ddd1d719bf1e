package services

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/tbourn/moreply-backend/internal/domain"
	"github.com/tbourn/moreply-backend/internal/persist"
	"github.com/tbourn/moreply-backend/internal/search"
)

// ---------- test helpers ----------

// fakePersister records every Save and can be told to fail.
type fakePersister struct {
	mu      sync.Mutex
	stored  []domain.Template
	saves   int
	saveErr error
	loadErr error
}

func (f *fakePersister) Load(context.Context) ([]domain.Template, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.loadErr != nil {
		return nil, f.loadErr
	}
	return append([]domain.Template(nil), f.stored...), nil
}

func (f *fakePersister) Save(_ context.Context, ts []domain.Template) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saves++
	if f.saveErr != nil {
		return f.saveErr
	}
	f.stored = append([]domain.Template(nil), ts...)
	return nil
}

func fixedClock() func() time.Time {
	ts := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	return func() time.Time { return ts }
}

func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("tpl_%d", n)
	}
}

func newStore(t *testing.T, p Persister, opts ...StoreOption) *TemplateStore {
	t.Helper()
	opts = append([]StoreOption{WithClock(fixedClock()), WithIDFunc(seqIDs())}, opts...)
	s := NewTemplateStore(p, zerolog.Nop(), opts...)
	if err := s.Initialize(context.Background()); err != nil {
		t.Fatalf("initialize: %v", err)
	}
	return s
}

// items returns the store's collection without its version.
func items(s *TemplateStore) []domain.Template {
	ts, _ := s.Snapshot()
	return ts
}

func validInput(name string) CreateInput {
	return CreateInput{
		Name:        name,
		Platform:    domain.PlatformGoogle,
		Tone:        domain.ToneFriendly,
		ExampleText: "Great service!",
		ReplyText:   "Thanks!",
	}
}

// ---------- Initialize ----------

func TestTemplateStore_Initialize_LoadsStored(t *testing.T) {
	p := &fakePersister{stored: []domain.Template{{ID: "a", Name: "A", Platform: domain.PlatformX, ReplyText: "r", IsActive: true}}}
	s := newStore(t, p, WithSeedPolicy(SeedDemo))

	got := items(s)
	if len(got) != 1 || got[0].ID != "a" {
		t.Fatalf("stored data must win over seeding, got %+v", got)
	}
	if p.saves != 0 {
		t.Fatalf("loading must not write back, saves=%d", p.saves)
	}
	if !s.Loaded() || s.Version() == 0 {
		t.Fatalf("expected loaded store with a version")
	}
}

func TestTemplateStore_Initialize_SeedDemoPersists(t *testing.T) {
	p := &fakePersister{}
	s := newStore(t, p, WithSeedPolicy(SeedDemo))

	got := items(s)
	if len(got) != 2 || got[0].ID != "demo_1" || got[1].ID != "demo_2" {
		t.Fatalf("unexpected seed: %+v", got)
	}
	if got[0].Channel != domain.ChannelReview || got[1].Platform != domain.PlatformYelp {
		t.Fatalf("seed fields wrong: %+v", got)
	}
	if p.saves != 1 || len(p.stored) != 2 {
		t.Fatalf("seed must be persisted immediately, saves=%d stored=%d", p.saves, len(p.stored))
	}
}

func TestTemplateStore_Initialize_SeedNoneStaysEmpty(t *testing.T) {
	p := &fakePersister{}
	s := newStore(t, p)
	if got := items(s); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil list, got %#v", got)
	}
	if p.saves != 0 {
		t.Fatalf("empty start must not write")
	}
}

func TestTemplateStore_Initialize_Twice(t *testing.T) {
	s := newStore(t, &fakePersister{})
	if err := s.Initialize(context.Background()); !errors.Is(err, ErrAlreadyInitialized) {
		t.Fatalf("want ErrAlreadyInitialized, got %v", err)
	}
}

func TestTemplateStore_Initialize_ReadFailureKeepsStoredData(t *testing.T) {
	ctx := context.Background()
	mine := domain.Template{ID: "mine", Name: "Mine", Platform: domain.PlatformGoogle, ReplyText: "r", IsActive: true}
	p := &fakePersister{stored: []domain.Template{mine}, loadErr: errors.New("i/o timeout")}
	s := NewTemplateStore(p, zerolog.Nop(), WithSeedPolicy(SeedDemo))

	if err := s.Initialize(ctx); err == nil || err.Error() != "i/o timeout" {
		t.Fatalf("want read error, got %v", err)
	}
	if s.Loaded() || p.saves != 0 {
		t.Fatalf("failed read must not seed or write: loaded=%v saves=%d", s.Loaded(), p.saves)
	}
	if _, err := s.Create(ctx, validInput("x")); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Create after failed read: want ErrNotInitialized, got %v", err)
	}

	// Once the backend recovers the stored collection wins over seeding.
	p.loadErr = nil
	if err := s.Initialize(ctx); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got, _ := s.Snapshot(); len(got) != 1 || got[0].ID != "mine" {
		t.Fatalf("user templates lost: %+v", got)
	}
	if p.saves != 0 || len(p.stored) != 1 {
		t.Fatalf("retry wrote over stored data: saves=%d stored=%+v", p.saves, p.stored)
	}
}

func TestTemplateStore_Initialize_ReadFailureOverRealSlot(t *testing.T) {
	ctx := context.Background()
	slot := &flakySlot{MemorySlot: persist.NewMemorySlot()}
	first := NewTemplateStore(persist.NewAdapter(slot, "", zerolog.Nop()), zerolog.Nop())
	if err := first.Initialize(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	if _, err := first.Create(ctx, validInput("Mine")); err != nil {
		t.Fatalf("create: %v", err)
	}

	slot.getErr = errors.New("i/o timeout")
	second := NewTemplateStore(persist.NewAdapter(slot, "", zerolog.Nop()), zerolog.Nop(), WithSeedPolicy(SeedDemo))
	var perr *persist.PersistenceError
	if err := second.Initialize(ctx); !errors.As(err, &perr) {
		t.Fatalf("want *persist.PersistenceError, got %T %v", err, err)
	}

	slot.getErr = nil
	stored, err := persist.NewAdapter(slot, "", zerolog.Nop()).Load(ctx)
	if err != nil || len(stored) != 1 || stored[0].Name != "Mine" {
		t.Fatalf("stored collection changed: %+v %v", stored, err)
	}
}

// flakySlot fails reads on demand.
type flakySlot struct {
	*persist.MemorySlot
	getErr error
}

func (f *flakySlot) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.MemorySlot.Get(ctx, key)
}

func TestTemplateStore_MutationsBeforeInitialize(t *testing.T) {
	s := NewTemplateStore(&fakePersister{}, zerolog.Nop())
	ctx := context.Background()
	if _, err := s.Create(ctx, validInput("x")); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Create: want ErrNotInitialized, got %v", err)
	}
	if err := s.Delete(ctx, "x"); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("Delete: want ErrNotInitialized, got %v", err)
	}
	if _, err := s.ReplaceField(ctx, "x", domain.Patch{}); !errors.Is(err, ErrNotInitialized) {
		t.Fatalf("ReplaceField: want ErrNotInitialized, got %v", err)
	}
}

// ---------- Create ----------

func TestTemplateStore_Create_ValidatesEveryField(t *testing.T) {
	p := &fakePersister{}
	s := newStore(t, p)

	_, err := s.Create(context.Background(), CreateInput{Name: "  ", ExampleText: " "})
	ve, ok := AsValidation(err)
	if !ok {
		t.Fatalf("want *ValidationError, got %v", err)
	}
	for _, f := range []string{"name", "platform", "tone", "exampleText", "replyText"} {
		if !ve.Has(f) {
			t.Errorf("missing failure for %s in %v", f, ve)
		}
	}
	if len(items(s)) != 0 || p.saves != 0 {
		t.Fatalf("invalid create must not mutate or persist")
	}
}

func TestTemplateStore_Create_AssignsFieldsAndPersists(t *testing.T) {
	p := &fakePersister{}
	s := newStore(t, p)

	in := validInput("  Promo reply  ")
	in.Platform = domain.PlatformTikTok
	got, err := s.Create(context.Background(), in)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if got.ID != "tpl_1" || got.Name != "Promo reply" || got.Channel != domain.ChannelSocial {
		t.Fatalf("unexpected template: %+v", got)
	}
	if !got.IsActive {
		t.Fatalf("isActive must default to true")
	}
	if !got.CreatedAt.Equal(fixedClock()()) {
		t.Fatalf("createdAt = %v", got.CreatedAt)
	}
	if p.saves != 1 || len(p.stored) != 1 || p.stored[0].ID != got.ID {
		t.Fatalf("create must persist the full collection, saves=%d", p.saves)
	}
}

func TestTemplateStore_Create_AppendsInOrderWithDistinctIDs(t *testing.T) {
	s := NewTemplateStore(&fakePersister{}, zerolog.Nop())
	_ = s.Initialize(context.Background())

	seen := map[string]bool{}
	for i := 0; i < 5; i++ {
		tpl, err := s.Create(context.Background(), validInput(fmt.Sprintf("n%d", i)))
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		if seen[tpl.ID] {
			t.Fatalf("duplicate id %s", tpl.ID)
		}
		seen[tpl.ID] = true
	}
	for i, tpl := range items(s) {
		if tpl.Name != fmt.Sprintf("n%d", i) {
			t.Fatalf("insertion order broken at %d: %s", i, tpl.Name)
		}
	}
}

func TestTemplateStore_Create_ReloadRoundTrip(t *testing.T) {
	slot := persist.NewMemorySlot()
	ctx := context.Background()

	first := NewTemplateStore(persist.NewAdapter(slot, "", zerolog.Nop()), zerolog.Nop())
	if err := first.Initialize(ctx); err != nil {
		t.Fatalf("init: %v", err)
	}
	a, _ := first.Create(ctx, validInput("Same"))
	b, _ := first.Create(ctx, validInput("Same"))
	if a.ID == b.ID {
		t.Fatalf("ids must differ for identical inputs")
	}

	second := NewTemplateStore(persist.NewAdapter(slot, "", zerolog.Nop()), zerolog.Nop(), WithSeedPolicy(SeedDemo))
	if err := second.Initialize(ctx); err != nil {
		t.Fatalf("reload: %v", err)
	}
	got := items(second)
	if len(got) != 2 {
		t.Fatalf("want 2 after reload, got %d", len(got))
	}
	for i, want := range []domain.Template{*a, *b} {
		if !got[i].CreatedAt.Equal(want.CreatedAt) {
			t.Fatalf("createdAt changed on reload")
		}
		got[i].CreatedAt = want.CreatedAt
		if !reflect.DeepEqual(got[i], want) {
			t.Fatalf("reload mismatch:\n got %+v\nwant %+v", got[i], want)
		}
	}
}

func TestTemplateStore_Create_PersistFailureIsNotFatal(t *testing.T) {
	p := &fakePersister{saveErr: errors.New("quota exceeded")}
	s := newStore(t, p)

	tpl, err := s.Create(context.Background(), validInput("kept"))
	if err != nil {
		t.Fatalf("persist failure must not surface: %v", err)
	}
	if got, _ := s.Get(tpl.ID); got == nil {
		t.Fatalf("in-memory state must stay authoritative")
	}
	// next mutation retries the full write
	p.saveErr = nil
	if _, err := s.Create(context.Background(), validInput("next")); err != nil {
		t.Fatalf("create: %v", err)
	}
	if len(p.stored) != 2 {
		t.Fatalf("next write should carry everything, stored=%d", len(p.stored))
	}
}

func TestTemplateStore_CreateIdempotent(t *testing.T) {
	p := &fakePersister{}
	s := newStore(t, p)
	ctx := context.Background()

	a, replayed, err := s.CreateIdempotent(ctx, "k-1", validInput("once"))
	if err != nil || replayed {
		t.Fatalf("first create: replayed=%v err=%v", replayed, err)
	}
	if !s.HasIdempotencyKey("k-1") {
		t.Fatalf("key should be remembered")
	}
	b, replayed, err := s.CreateIdempotent(ctx, "k-1", validInput("other body"))
	if err != nil || !replayed || b.ID != a.ID {
		t.Fatalf("replay: got %+v replayed=%v err=%v", b, replayed, err)
	}
	if len(items(s)) != 1 || p.saves != 1 {
		t.Fatalf("replay must not create or persist")
	}

	// once the template is gone the key no longer replays
	_ = s.Delete(ctx, a.ID)
	if s.HasIdempotencyKey("k-1") {
		t.Fatalf("key for a deleted template must not replay")
	}
}

func TestIdemLedger_Expiry(t *testing.T) {
	l := newIdemLedger(time.Minute)
	now := time.Unix(1000, 0)
	l.remember("k", "id", now)
	if _, ok := l.lookup("k", now.Add(59*time.Second)); !ok {
		t.Fatalf("key should be live")
	}
	if _, ok := l.lookup("k", now.Add(time.Minute)); ok {
		t.Fatalf("key should have expired")
	}
}

// ---------- Delete ----------

func TestTemplateStore_Delete(t *testing.T) {
	p := &fakePersister{}
	s := newStore(t, p, WithSeedPolicy(SeedDemo))
	ctx := context.Background()
	before := s.Version()

	if err := s.Delete(ctx, "demo_1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if s.Version() == before {
		t.Fatalf("version must advance on delete")
	}
	if len(p.stored) != 1 || p.stored[0].ID != "demo_2" {
		t.Fatalf("delete must persist, stored=%+v", p.stored)
	}

	saves := p.saves
	if err := s.Delete(ctx, "demo_1"); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("second delete: want ErrTemplateNotFound, got %v", err)
	}
	if p.saves != saves {
		t.Fatalf("missing id must not write")
	}
}

func TestTemplateStore_DeleteThenProjectNeverYieldsID(t *testing.T) {
	s := newStore(t, &fakePersister{}, WithSeedPolicy(SeedDemo))
	ctx := context.Background()
	for _, p := range []domain.Platform{domain.PlatformGoogle, domain.PlatformInstagram, domain.PlatformX} {
		if _, err := s.Create(ctx, CreateInput{Name: "n", Platform: p, Tone: domain.ToneCustom, ExampleText: "e", ReplyText: "r"}); err != nil {
			t.Fatalf("create: %v", err)
		}
	}
	victims := []string{"demo_1", "tpl_2"}
	for _, id := range victims {
		if err := s.Delete(ctx, id); err != nil {
			t.Fatalf("delete %s: %v", id, err)
		}
	}

	filters := []string{search.AllPlatforms}
	for _, p := range domain.Platforms {
		filters = append(filters, string(p))
	}
	for _, f := range filters {
		for _, tpl := range search.Project(items(s), search.Filter{Platform: f}).Items {
			for _, id := range victims {
				if tpl.ID == id {
					t.Fatalf("deleted %s visible under filter %s", id, f)
				}
			}
		}
	}
}

// ---------- ReplaceField ----------

func TestTemplateStore_ReplaceField(t *testing.T) {
	p := &fakePersister{}
	s := newStore(t, p, WithSeedPolicy(SeedDemo))
	ctx := context.Background()
	orig, _ := s.Get("demo_1")

	name, off := "  Renamed  ", false
	got, err := s.ReplaceField(ctx, "demo_1", domain.Patch{Name: &name, IsActive: &off})
	if err != nil {
		t.Fatalf("replace: %v", err)
	}
	if got.Name != "Renamed" || got.IsActive {
		t.Fatalf("patch not applied: %+v", got)
	}
	if got.ReplyText != orig.ReplyText || got.Tone != orig.Tone || !got.CreatedAt.Equal(orig.CreatedAt) {
		t.Fatalf("fields outside the patch changed: %+v", got)
	}
	if p.stored[0].Name != "Renamed" {
		t.Fatalf("replace must persist")
	}
}

func TestTemplateStore_ReplaceField_RejectsBlank(t *testing.T) {
	p := &fakePersister{}
	s := newStore(t, p, WithSeedPolicy(SeedDemo))
	saves := p.saves
	blank := "   "

	_, err := s.ReplaceField(context.Background(), "demo_1", domain.Patch{Name: &blank, ReplyText: &blank})
	ve, ok := AsValidation(err)
	if !ok || !ve.Has("name") || !ve.Has("replyText") {
		t.Fatalf("want name+replyText failures, got %v", err)
	}
	if got, _ := s.Get("demo_1"); got.Name != "Friendly Google reply" {
		t.Fatalf("record changed on rejected patch")
	}
	if p.saves != saves {
		t.Fatalf("rejected patch must not write")
	}
}

func TestTemplateStore_ReplaceField_MissingAndEmpty(t *testing.T) {
	p := &fakePersister{}
	s := newStore(t, p, WithSeedPolicy(SeedDemo))
	ctx := context.Background()
	saves, version := p.saves, s.Version()

	if _, err := s.ReplaceField(ctx, "nope", domain.Patch{}); !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("want ErrTemplateNotFound, got %v", err)
	}
	if _, err := s.ReplaceField(ctx, "demo_2", domain.Patch{}); err != nil {
		t.Fatalf("empty patch: %v", err)
	}
	if p.saves != saves || s.Version() != version {
		t.Fatalf("no-op patches must not write or bump the version")
	}
}

func TestTemplateStore_ListIsACopy(t *testing.T) {
	s := newStore(t, &fakePersister{}, WithSeedPolicy(SeedDemo))
	l := items(s)
	l[0].Name = "mutated"
	if got, _ := s.Get("demo_1"); got.Name == "mutated" {
		t.Fatalf("List must not alias store state")
	}
}

func TestTemplateStore_ConcurrentCreates(t *testing.T) {
	p := &fakePersister{}
	s := NewTemplateStore(p, zerolog.Nop())
	_ = s.Initialize(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, _ = s.Create(context.Background(), validInput(fmt.Sprintf("c%d", i)))
		}(i)
	}
	wg.Wait()
	if len(items(s)) != 20 || len(p.stored) != 20 {
		t.Fatalf("want 20 in memory and storage, got %d/%d", len(items(s)), len(p.stored))
	}
}
