package config

import "errors"

var (
	// ErrInvalidConfig wraps every Validate failure: a bad backend, store key,
	// queue bound, timeout, product id or Good Friday override.
	ErrInvalidConfig = errors.New("invalid config")
	// ErrLoadConfig wraps failures reading the AGENDA_CONFIG file or
	// unmarshalling the merged layers.
	ErrLoadConfig = errors.New("load config failed")
)
