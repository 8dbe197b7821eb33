package export

import "errors"

// ErrWrite is returned when the serialized calendar cannot be written out.
var ErrWrite = errors.New("export: write failed")
