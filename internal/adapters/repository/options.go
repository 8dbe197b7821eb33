// Package repository holds the user event store and its blob persistence.
package repository

import "github.com/okian/agenda/pkg/logger"

// DefaultKey is the blob name used when none is configured.
const DefaultKey = "calendarEvents"

// Option applies a configuration option to the EventStore.
type Option func(*EventStore)

// WithKey sets the blob name the store reads and writes.
func WithKey(key string) Option {
	return func(s *EventStore) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l logger.Logger) Option {
	return func(s *EventStore) {
		if l != nil {
			s.logger = l
		}
	}
}
