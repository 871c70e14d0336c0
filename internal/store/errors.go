package store

import "fmt"

// StoreError reports a failed object-store operation. Mid-document failures
// are fatal for that document only; listing failures are fatal for the run.
type StoreError struct {
	// Op is the store operation that failed (e.g. "list", "get", "put").
	Op string

	// Key is the object key involved, empty for listing operations.
	Key string

	// Err is the underlying SDK error.
	Err error
}

func (e *StoreError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("store: %s %q: %v", e.Op, e.Key, e.Err)
	}
	return fmt.Sprintf("store: %s: %v", e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}
