// Package services – EditOverlay
//
// EditOverlay is the single-row inline edit state machine. It holds at most
// one draft, seeded from the committed record, and touches the store only on
// Save. States:
//
//	Idle ──Begin(id)──▶ Editing(id, draft)
//	Editing ──Update──▶ Editing(id, draft')
//	Editing ──Save ok / Cancel / Forget──▶ Idle
//	Editing ──Save invalid──▶ Editing (unchanged)
//
// Starting an edit on a different record while one is open is rejected with
// ErrEditInProgress.
package services

import (
	"context"
	"errors"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/tbourn/moreply-backend/internal/domain"
)

// EditState is either Idle or Editing.
type EditState interface {
	isEditState()
}

// Idle means no record is being edited.
type Idle struct{}

// Editing holds the draft for the record with ID.
type Editing struct {
	ID    string       `json:"id"`
	Draft domain.Draft `json:"draft"`
}

func (Idle) isEditState()    {}
func (Editing) isEditState() {}

// EditStore is the part of TemplateStore the overlay depends on.
type EditStore interface {
	Get(id string) (*domain.Template, error)
	ReplaceField(ctx context.Context, id string, p domain.Patch) (*domain.Template, error)
}

// EditOverlay tracks the one in-progress edit. Safe for concurrent use.
type EditOverlay struct {
	mu    sync.Mutex
	store EditStore
	state EditState
}

// NewEditOverlay returns an Idle overlay over store.
func NewEditOverlay(store EditStore) *EditOverlay {
	return &EditOverlay{store: store, state: Idle{}}
}

var editTracer = otel.Tracer("services/EditOverlay")

// State returns the current state.
func (o *EditOverlay) State() EditState {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

// Begin opens an edit on id with a draft of its committed values. Beginning
// the record already under edit returns the current state unchanged.
func (o *EditOverlay) Begin(ctx context.Context, id string) (Editing, error) {
	_, span := editTracer.Start(ctx, "Begin",
		trace.WithAttributes(attribute.String("template.id", id)))
	defer span.End()

	o.mu.Lock()
	defer o.mu.Unlock()

	if cur, ok := o.state.(Editing); ok {
		if cur.ID == id {
			return cur, nil
		}
		return Editing{}, ErrEditInProgress
	}

	t, err := o.store.Get(id)
	if err != nil {
		return Editing{}, err
	}
	ed := Editing{ID: id, Draft: domain.DraftOf(*t)}
	o.state = ed
	editTransitions.WithLabelValues("begin").Inc()
	return ed, nil
}

// Update patches the draft of id. The committed record is not touched.
func (o *EditOverlay) Update(id string, p domain.Patch) (Editing, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	cur, ok := o.state.(Editing)
	if !ok || cur.ID != id {
		return Editing{}, ErrNotEditing
	}
	cur.Draft = p.ApplyTo(cur.Draft)
	o.state = cur
	editTransitions.WithLabelValues("update").Inc()
	return cur, nil
}

// Save commits the draft of id through the store and returns to Idle. A
// blank name or reply text fails with *ValidationError and the overlay stays
// in Editing with the draft intact. If the record disappeared meanwhile the
// commit is skipped, the overlay still returns to Idle, and Save returns a
// nil template with a nil error.
func (o *EditOverlay) Save(ctx context.Context, id string) (*domain.Template, error) {
	ctx, span := editTracer.Start(ctx, "Save",
		trace.WithAttributes(attribute.String("template.id", id)))
	defer span.End()

	o.mu.Lock()
	defer o.mu.Unlock()

	cur, ok := o.state.(Editing)
	if !ok || cur.ID != id {
		return nil, ErrNotEditing
	}
	if err := validateEditable(cur.Draft.Name, cur.Draft.ReplyText); err != nil {
		editTransitions.WithLabelValues("save_invalid").Inc()
		return nil, err
	}

	t, err := o.store.ReplaceField(ctx, id, domain.PatchOf(cur.Draft))
	switch {
	case errors.Is(err, ErrTemplateNotFound):
		o.state = Idle{}
		editTransitions.WithLabelValues("save_vanished").Inc()
		return nil, nil
	case err != nil:
		return nil, err
	}
	o.state = Idle{}
	editTransitions.WithLabelValues("save").Inc()
	return t, nil
}

// Cancel discards the draft of id and returns to Idle. Cancelling while
// Idle is a no-op; naming a record other than the one under edit fails with
// ErrNotEditing.
func (o *EditOverlay) Cancel(id string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	cur, ok := o.state.(Editing)
	if !ok {
		return nil
	}
	if cur.ID != id {
		return ErrNotEditing
	}
	o.state = Idle{}
	editTransitions.WithLabelValues("cancel").Inc()
	return nil
}

// Forget ends the edit of id, if any. It is called after id was deleted.
func (o *EditOverlay) Forget(id string) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if cur, ok := o.state.(Editing); ok && cur.ID == id {
		o.state = Idle{}
		editTransitions.WithLabelValues("forget").Inc()
	}
}
