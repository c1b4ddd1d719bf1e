package services

import (
	"sync"
	"time"
)

// DefaultIdempotencyTTL is how long a create key stays replayable.
const DefaultIdempotencyTTL = 24 * time.Hour

// idemLedger remembers which template a create key produced. It lives in
// memory only: a restart forgets every key, which matches the single-session
// lifetime of a client retry.
type idemLedger struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[string]idemEntry
}

type idemEntry struct {
	templateID string
	expiresAt  time.Time
}

func newIdemLedger(ttl time.Duration) *idemLedger {
	if ttl <= 0 {
		ttl = DefaultIdempotencyTTL
	}
	return &idemLedger{ttl: ttl, entries: make(map[string]idemEntry)}
}

// lookup returns the template id stored for key if it has not expired.
func (l *idemLedger) lookup(key string, now time.Time) (string, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	e, ok := l.entries[key]
	if !ok {
		return "", false
	}
	if !now.Before(e.expiresAt) {
		delete(l.entries, key)
		return "", false
	}
	return e.templateID, true
}

func (l *idemLedger) remember(key, templateID string, now time.Time) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.entries[key] = idemEntry{templateID: templateID, expiresAt: now.Add(l.ttl)}
	// opportunistic sweep keeps the map bounded by live keys
	for k, e := range l.entries {
		if !now.Before(e.expiresAt) {
			delete(l.entries, k)
		}
	}
}
