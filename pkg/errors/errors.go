package errors

import "errors"

// Store failures shared by every persistence backend. Backends wrap the
// driver error with %w so callers can match these and still log the cause.
var (
	// ErrStoreWriteFailed a write did not reach durable storage
	ErrStoreWriteFailed = errors.New("store write failed")
	// ErrStoreReadFailed a read could not be served
	ErrStoreReadFailed = errors.New("store read failed")
)
