// Package persist round-trips the template collection to a durable
// key-value slot. The Adapter owns serialization and the tolerance rules for
// absent or damaged data; Slot implementations only move bytes.
//
// Backends:
//   - MemorySlot: process-local map, for tests and throwaway runs.
//   - FileSlot:   one JSON file per key under a directory.
//   - GormSlot:   one row per key in the SQLite "slots" table.
//   - RedisSlot:  one Redis string per key.
package persist

import (
	"context"
	"errors"
	"sync"
)

// ErrSlotEmpty is returned by Slot.Get when nothing has been stored under
// the key yet.
var ErrSlotEmpty = errors.New("slot is empty")

// ErrInvalidKey is returned when a slot key cannot be mapped onto the backend.
var ErrInvalidKey = errors.New("invalid slot key")

// Slot is a named durable value. Put replaces the whole value in one step;
// there are no partial writes.
type Slot interface {
	// Get returns the stored bytes or ErrSlotEmpty.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put stores value under key, replacing any previous value.
	Put(ctx context.Context, key string, value []byte) error
	// Backend names the implementation for logs and metrics.
	Backend() string
}

// MemorySlot keeps values in memory. The zero value is ready to use.
type MemorySlot struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemorySlot returns an empty MemorySlot.
func NewMemorySlot() *MemorySlot {
	return &MemorySlot{}
}

// Get implements Slot.
func (m *MemorySlot) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.values[key]
	if !ok {
		return nil, ErrSlotEmpty
	}
	return append([]byte(nil), v...), nil
}

// Put implements Slot.
func (m *MemorySlot) Put(_ context.Context, key string, value []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.values == nil {
		m.values = make(map[string][]byte)
	}
	m.values[key] = append([]byte(nil), value...)
	return nil
}

// Backend implements Slot.
func (m *MemorySlot) Backend() string { return "memory" }
