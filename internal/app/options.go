package service

import (
	"time"

	"github.com/okian/agenda/internal/adapters/blob"
	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithBlobStore sets where events are persisted. Defaults to memory.
func WithBlobStore(b blob.Store) Option {
	return func(s *Service) {
		if b != nil {
			s.blob = b
		}
	}
}

// WithStoreKey sets the blob name.
func WithStoreKey(key string) Option {
	return func(s *Service) {
		if key != "" {
			s.storeKey = key
		}
	}
}

// WithQueueSize sets the save queue capacity.
func WithQueueSize(size int) Option {
	return func(s *Service) {
		if size > 0 {
			s.queueSize = size
		}
	}
}

// WithSaveTimeout bounds how long a mutation waits for its save.
func WithSaveTimeout(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.saveTimeout = d
		}
	}
}

// WithRegionalHolidays toggles the Comunidad de Madrid entries.
func WithRegionalHolidays(include bool) Option {
	return func(s *Service) {
		s.regional = include
	}
}

// WithGoodFridayOverrides pins Good Friday for specific years.
func WithGoodFridayOverrides(overrides map[int]model.DateKey) Option {
	return func(s *Service) {
		s.goodFriday = overrides
	}
}

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
