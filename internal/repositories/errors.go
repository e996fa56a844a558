package repositories

import "errors"

var (
	// ErrNotFound is returned when a looked-up record does not exist.
	ErrNotFound = errors.New("record not found")
	// ErrVersionMismatch is returned when a cart save loses an optimistic
	// concurrency race; the caller may reload and retry.
	ErrVersionMismatch = errors.New("cart version mismatch")
)
