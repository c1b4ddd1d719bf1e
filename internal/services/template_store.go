// Package services – TemplateStore
//
// This file implements TemplateStore, the in-memory ordered collection of
// templates and the single source of truth for the rest of the service. Every
// successful mutation is followed, inside the same critical section, by a
// full write of the collection through the Persister. A failed write is
// logged and otherwise ignored: the in-memory state stays authoritative for
// the life of the process and the next mutation writes everything again.
//
// Observability: public mutating methods are OpenTelemetry-instrumented and
// counted in Prometheus.
package services

import (
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/moreply-backend/internal/domain"
)

// Persister loads and saves the whole collection. persist.Adapter is the
// production implementation.
type Persister interface {
	// Load returns an empty slice for absent or unparsable data. An error
	// means the read itself failed and the stored data is unknown.
	Load(ctx context.Context) ([]domain.Template, error)
	// Save replaces the stored collection.
	Save(ctx context.Context, templates []domain.Template) error
}

// SeedPolicy decides what Initialize does when nothing is stored yet.
type SeedPolicy int

const (
	// SeedNone starts with an empty collection.
	SeedNone SeedPolicy = iota
	// SeedDemo installs DemoTemplates and persists them immediately.
	SeedDemo
)

// CreateInput carries the user-supplied fields of a new template. IsActive
// defaults to true when nil.
type CreateInput struct {
	Name            string          `json:"name"`
	Platform        domain.Platform `json:"platform"`
	Tone            domain.Tone     `json:"tone"`
	EmojiPreference string          `json:"emojiPreference,omitempty"`
	ExampleText     string          `json:"exampleText"`
	ReplyText       string          `json:"replyText"`
	IsActive        *bool           `json:"isActive,omitempty"`
}

func (in CreateInput) normalized() CreateInput {
	in.Name = strings.TrimSpace(in.Name)
	in.EmojiPreference = strings.TrimSpace(in.EmojiPreference)
	in.ExampleText = strings.TrimSpace(in.ExampleText)
	in.ReplyText = strings.TrimSpace(in.ReplyText)
	return in
}

// validate reports every failing field of a normalized input.
func (in CreateInput) validate() error {
	var fe fieldErrors
	if in.Name == "" {
		fe.add("name", msgNameRequired)
	}
	if !in.Platform.Valid() {
		fe.add("platform", msgPlatformRequired)
	}
	if !in.Tone.Valid() {
		fe.add("tone", msgToneRequired)
	}
	if in.ExampleText == "" {
		fe.add("exampleText", msgExampleRequired)
	}
	if in.ReplyText == "" {
		fe.add("replyText", msgReplyRequired)
	}
	return fe.err()
}

// StoreOption customizes a TemplateStore.
type StoreOption func(*TemplateStore)

// WithSeedPolicy sets the empty-store bootstrap policy (default SeedNone).
func WithSeedPolicy(p SeedPolicy) StoreOption {
	return func(s *TemplateStore) { s.seed = p }
}

// WithClock overrides the time source used for createdAt.
func WithClock(now func() time.Time) StoreOption {
	return func(s *TemplateStore) {
		if now != nil {
			s.now = now
		}
	}
}

// WithIDFunc overrides the id generator (uuid.NewString by default).
func WithIDFunc(fn func() string) StoreOption {
	return func(s *TemplateStore) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithIdempotencyTTL sets how long create keys are remembered.
func WithIdempotencyTTL(d time.Duration) StoreOption {
	return func(s *TemplateStore) { s.idem = newIdemLedger(d) }
}

// TemplateStore owns the canonical template collection. All methods are safe
// for concurrent use; each runs to completion, persistence write included,
// while holding the store lock.
type TemplateStore struct {
	mu      sync.Mutex
	persist Persister
	log     zerolog.Logger
	seed    SeedPolicy
	now     func() time.Time
	newID   func() string
	idem    *idemLedger

	templates []domain.Template
	loaded    bool
	version   uint64
}

// NewTemplateStore builds an uninitialized store over p.
func NewTemplateStore(p Persister, log zerolog.Logger, opts ...StoreOption) *TemplateStore {
	s := &TemplateStore{
		persist:   p,
		log:       log.With().Str("component", "store").Logger(),
		now:       time.Now,
		newID:     uuid.NewString,
		idem:      newIdemLedger(DefaultIdempotencyTTL),
		templates: []domain.Template{},
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

var storeTracer = otel.Tracer("services/TemplateStore")

// Initialize loads the stored collection. A non-empty load becomes the
// state as is. An empty load is seeded according to the seed policy; seeding
// is a one-time bootstrap and never merges with stored data.
//
// A failed read is returned and leaves the store uninitialized, so nothing
// is seeded or written over data that may still exist. Initialize may then
// be called again.
func (s *TemplateStore) Initialize(ctx context.Context) error {
	ctx, span := storeTracer.Start(ctx, "Initialize")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loaded {
		return ErrAlreadyInitialized
	}

	loaded, err := s.persist.Load(ctx)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "load failed")
		return err
	}
	s.loaded = true
	span.SetAttributes(attribute.Int("templates.loaded", len(loaded)))

	if len(loaded) > 0 {
		s.templates = loaded
		s.version++
		templatesGauge.Set(float64(len(s.templates)))
		s.log.Info().Int("templates", len(loaded)).Msg("templates loaded")
		return nil
	}
	if s.seed == SeedDemo {
		s.templates = DemoTemplates(s.now())
		s.log.Info().Int("templates", len(s.templates)).Msg("seeding demo templates")
		s.commitLocked(ctx, "seed")
		return nil
	}
	s.version++
	templatesGauge.Set(0)
	s.log.Info().Msg("starting with an empty template collection")
	return nil
}

// Loaded reports whether Initialize has completed.
func (s *TemplateStore) Loaded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loaded
}

// Version increases with every committed mutation. Two reads returning the
// same version saw the same collection.
func (s *TemplateStore) Version() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.version
}

// Snapshot returns a copy of the collection in insertion order together
// with its version.
func (s *TemplateStore) Snapshot() ([]domain.Template, uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return slices.Clone(s.templates), s.version
}

// Get returns a copy of the template with id.
func (s *TemplateStore) Get(id string) (*domain.Template, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.indexLocked(id)
	if i < 0 {
		return nil, ErrTemplateNotFound
	}
	t := s.templates[i]
	return &t, nil
}

// Create validates in, assigns a fresh id and creation time, derives the
// channel from the platform, appends the template and persists.
func (s *TemplateStore) Create(ctx context.Context, in CreateInput) (*domain.Template, error) {
	t, _, err := s.CreateIdempotent(ctx, "", in)
	return t, err
}

// CreateIdempotent is Create keyed by a client-chosen idempotency key. A key
// seen before (and not expired) returns the template it produced, with
// replayed set, as long as that template still exists. An empty key
// disables replay.
func (s *TemplateStore) CreateIdempotent(ctx context.Context, key string, in CreateInput) (t *domain.Template, replayed bool, err error) {
	ctx, span := storeTracer.Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("template.platform", string(in.Platform)),
			attribute.String("template.tone", string(in.Tone)),
			attribute.Bool("idempotent", key != ""),
		),
	)
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, false, ErrNotInitialized
	}

	now := s.now().UTC()
	if key != "" {
		if id, ok := s.idem.lookup(key, now); ok {
			if i := s.indexLocked(id); i >= 0 {
				out := s.templates[i]
				span.SetAttributes(attribute.Bool("replayed", true))
				return &out, true, nil
			}
		}
	}

	in = in.normalized()
	if err := in.validate(); err != nil {
		storeMutations.WithLabelValues("create", "invalid").Inc()
		return nil, false, err
	}

	active := true
	if in.IsActive != nil {
		active = *in.IsActive
	}
	created := domain.Template{
		ID:              s.newID(),
		Name:            in.Name,
		Channel:         domain.ChannelFor(in.Platform),
		Platform:        in.Platform,
		Tone:            in.Tone,
		EmojiPreference: in.EmojiPreference,
		ExampleText:     in.ExampleText,
		ReplyText:       in.ReplyText,
		IsActive:        active,
		CreatedAt:       now,
	}
	s.templates = append(s.templates, created)
	if key != "" {
		s.idem.remember(key, created.ID, now)
	}
	span.SetAttributes(attribute.String("template.id", created.ID))
	s.commitLocked(ctx, "create")
	return &created, false, nil
}

// HasIdempotencyKey reports whether key would replay an earlier create.
func (s *TemplateStore) HasIdempotencyKey(key string) bool {
	if key == "" {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	id, ok := s.idem.lookup(key, s.now().UTC())
	return ok && s.indexLocked(id) >= 0
}

// Delete removes the template with id and persists. An absent id yields
// ErrTemplateNotFound and leaves storage untouched; callers treat that as a
// no-op.
func (s *TemplateStore) Delete(ctx context.Context, id string) error {
	ctx, span := storeTracer.Start(ctx, "Delete",
		trace.WithAttributes(attribute.String("template.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return ErrNotInitialized
	}
	i := s.indexLocked(id)
	if i < 0 {
		storeMutations.WithLabelValues("delete", "missing").Inc()
		return ErrTemplateNotFound
	}
	s.templates = slices.Delete(s.templates, i, i+1)
	s.commitLocked(ctx, "delete")
	return nil
}

// ReplaceField merges p into the template with id, trimming strings, and
// persists. Only the patched fields change. A patch leaving name or reply
// text blank is rejected with *ValidationError. An absent id yields
// ErrTemplateNotFound.
func (s *TemplateStore) ReplaceField(ctx context.Context, id string, p domain.Patch) (*domain.Template, error) {
	ctx, span := storeTracer.Start(ctx, "ReplaceField",
		trace.WithAttributes(attribute.String("template.id", id)))
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.loaded {
		return nil, ErrNotInitialized
	}
	i := s.indexLocked(id)
	if i < 0 {
		storeMutations.WithLabelValues("replace", "missing").Inc()
		return nil, ErrTemplateNotFound
	}

	updated := p.Apply(s.templates[i])
	if err := validateEditable(updated.Name, updated.ReplyText); err != nil {
		storeMutations.WithLabelValues("replace", "invalid").Inc()
		return nil, err
	}
	if p.Empty() || updated == s.templates[i] {
		out := s.templates[i]
		return &out, nil
	}
	s.templates[i] = updated
	s.commitLocked(ctx, "replace")
	return &updated, nil
}

// validateEditable checks the fields an edit may blank out.
func validateEditable(name, replyText string) error {
	var fe fieldErrors
	if strings.TrimSpace(name) == "" {
		fe.add("name", msgNameRequired)
	}
	if strings.TrimSpace(replyText) == "" {
		fe.add("replyText", msgReplyBlank)
	}
	return fe.err()
}

func (s *TemplateStore) indexLocked(id string) int {
	return slices.IndexFunc(s.templates, func(t domain.Template) bool { return t.ID == id })
}

// commitLocked records a completed mutation and writes the full collection.
// The caller holds s.mu.
func (s *TemplateStore) commitLocked(ctx context.Context, op string) {
	s.version++
	templatesGauge.Set(float64(len(s.templates)))
	storeMutations.WithLabelValues(op, "ok").Inc()

	if err := s.persist.Save(ctx, slices.Clone(s.templates)); err != nil {
		trace.SpanFromContext(ctx).RecordError(err)
		s.log.Warn().Err(err).Str("op", op).Uint64("version", s.version).Msg("change kept in memory only")
	}
}

// DemoTemplates returns the two demonstration templates installed by
// SeedDemo, stamped with now.
func DemoTemplates(now time.Time) []domain.Template {
	now = now.UTC()
	return []domain.Template{
		{
			ID:              "demo_1",
			Name:            "Friendly Google reply",
			Channel:         domain.ChannelReview,
			Platform:        domain.PlatformGoogle,
			Tone:            domain.ToneFriendly,
			EmojiPreference: "😊✨",
			ReplyText:       "Thank you for taking the time to leave us a review. We really appreciate your support and love having you as a customer. 😊✨",
			IsActive:        true,
			CreatedAt:       now,
		},
		{
			ID:              "demo_2",
			Name:            "Apologetic Yelp reply",
			Channel:         domain.ChannelReview,
			Platform:        domain.PlatformYelp,
			Tone:            domain.ToneApologetic,
			EmojiPreference: "🙏",
			ReplyText:       "Thank you for taking the time to leave us a review. We’re sorry that things weren’t perfect this time and we’re committed to fixing it. 🙏",
			IsActive:        true,
			CreatedAt:       now,
		},
	}
}
