package calendar

import "errors"

// ErrInvalidMonth is returned for a zero-indexed month outside 0..11.
var ErrInvalidMonth = errors.New("month must be between 0 and 11")
