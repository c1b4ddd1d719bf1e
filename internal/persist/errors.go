package persist

import "fmt"

// PersistenceError reports a failed read or write of the durable slot. It is
// never fatal: the in-memory collection stays authoritative for the session.
type PersistenceError struct {
	Op  string // "load" or "save"
	Key string
	Err error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s %q: %v", e.Op, e.Key, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }
