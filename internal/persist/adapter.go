package persist

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/tbourn/moreply-backend/internal/domain"
)

// DefaultKey is the slot name the template collection is stored under.
const DefaultKey = "moreply-templates"

// Adapter loads and saves the whole template collection through a Slot.
type Adapter struct {
	slot Slot
	key  string
	log  zerolog.Logger
}

// NewAdapter returns an Adapter writing to key (DefaultKey when empty).
func NewAdapter(slot Slot, key string, log zerolog.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	return &Adapter{
		slot: slot,
		key:  key,
		log:  log.With().Str("component", "persist").Str("backend", slot.Backend()).Str("slot", key).Logger(),
	}
}

// Key returns the slot name in use.
func (a *Adapter) Key() string { return a.key }

// Backend returns the backend name of the underlying slot.
func (a *Adapter) Backend() string { return a.slot.Backend() }

// Load returns the stored collection in stored order. A missing slot or a
// value that is not a JSON array means no data: an empty slice and a nil
// error. Only a failed read returns an error, as *PersistenceError, since
// the stored collection may still be intact.
func (a *Adapter) Load(ctx context.Context) ([]domain.Template, error) {
	backend := a.slot.Backend()

	data, err := a.slot.Get(ctx, a.key)
	switch {
	case errors.Is(err, ErrSlotEmpty):
		slotLoads.WithLabelValues(backend, "empty").Inc()
		return []domain.Template{}, nil
	case err != nil:
		slotLoads.WithLabelValues(backend, "error").Inc()
		perr := &PersistenceError{Op: "load", Key: a.key, Err: err}
		a.log.Error().Err(perr).Msg("template load failed")
		return nil, perr
	}

	templates, dropped, err := Decode(data)
	if err != nil {
		slotLoads.WithLabelValues(backend, "corrupt").Inc()
		a.log.Warn().Err(&PersistenceError{Op: "load", Key: a.key, Err: err}).Int("bytes", len(data)).Msg("stored templates unparsable; starting empty")
		return []domain.Template{}, nil
	}
	if dropped > 0 {
		droppedRecords.WithLabelValues(backend).Add(float64(dropped))
		a.log.Warn().Int("dropped", dropped).Int("kept", len(templates)).Msg("skipped malformed template records")
	}
	slotLoads.WithLabelValues(backend, "ok").Inc()
	return templates, nil
}

// Save replaces the stored collection with templates. Failures are logged
// and returned as *PersistenceError; they are not retried.
func (a *Adapter) Save(ctx context.Context, templates []domain.Template) error {
	backend := a.slot.Backend()

	data, err := Encode(templates)
	if err == nil {
		err = a.slot.Put(ctx, a.key, data)
	}
	if err != nil {
		slotWrites.WithLabelValues(backend, "error").Inc()
		perr := &PersistenceError{Op: "save", Key: a.key, Err: err}
		a.log.Error().Err(perr).Int("templates", len(templates)).Msg("template save failed")
		return perr
	}

	slotWrites.WithLabelValues(backend, "ok").Inc()
	writeSize.WithLabelValues(backend).Observe(float64(len(data)))
	a.log.Debug().Int("templates", len(templates)).Int("bytes", len(data)).Msg("templates saved")
	return nil
}
