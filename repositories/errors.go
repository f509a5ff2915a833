package repositories

import "errors"

// Sentinel errors shared by all repositories so callers don't depend on
// driver-specific error values.
var (
	// ErrNotFound is returned when a document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrDuplicate is returned when an insert violates a unique index.
	ErrDuplicate = errors.New("duplicate key")
)
