package repository

import "errors"

// Sentinel kinds for event store errors.
var (
	// ErrPersistence wraps every failure to read or write the backing blob.
	ErrPersistence = errors.New("persistence failure")
	// ErrCorrupt marks a blob that could not be decoded.
	ErrCorrupt = errors.New("stored events are corrupt")
)
