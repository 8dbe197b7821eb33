package blob

import "errors"

// Sentinel kinds for blob store errors.
var (
	ErrNotFound      = errors.New("blob not found")
	ErrQuotaExceeded = errors.New("blob quota exceeded")
	ErrInvalidKey    = errors.New("invalid blob key")
	ErrClosed        = errors.New("blob store closed")
)
