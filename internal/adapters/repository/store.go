package repository

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/okian/agenda/internal/adapters/blob"
	"github.com/okian/agenda/internal/domain/model"
	"github.com/okian/agenda/pkg/logger"
	"github.com/okian/agenda/pkg/metrics"
)

// EventStore owns the user events, bucketed by date key. Buckets keep
// insertion order and are never empty.
type EventStore struct {
	mu      sync.RWMutex
	buckets model.Buckets

	blob   blob.Store
	key    string
	logger logger.Logger
}

// NewEventStore creates an empty store backed by b. Call Load to read the
// persisted state.
func NewEventStore(b blob.Store, opts ...Option) *EventStore {
	s := &EventStore{
		buckets: model.Buckets{},
		blob:    b,
		key:     DefaultKey,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = logger.Get().Named("repository")
	}
	return s
}

// Key returns the blob name.
func (s *EventStore) Key() string { return s.key }

// Load replaces the in-memory state with the persisted one and returns a
// copy of it. Missing or unreadable data yields an empty store.
func (s *EventStore) Load(ctx context.Context) model.Buckets {
	loaded := s.read(ctx)

	s.mu.Lock()
	s.buckets = loaded
	s.publishLocked()
	s.mu.Unlock()

	return loaded.Clone()
}

func (s *EventStore) read(ctx context.Context) model.Buckets {
	data, err := s.blob.Get(ctx, s.key)
	if errors.Is(err, blob.ErrNotFound) {
		s.logger.Debug(ctx, "no stored events", logger.String("key", s.key))
		return model.Buckets{}
	}
	if err != nil {
		metrics.RecordStoreLoadFallback("read_error")
		metrics.RecordErrorByComponent("repository", "load_failed")
		s.logger.Warn(ctx, "loading events failed; starting empty",
			logger.String("key", s.key),
			logger.Error(fmt.Errorf("%w: %w", ErrPersistence, err)),
		)
		return model.Buckets{}
	}

	b, dropped, err := Decode(data)
	if err != nil {
		metrics.RecordStoreLoadFallback("corrupt")
		metrics.RecordErrorByComponent("repository", "corrupt")
		s.logger.Warn(ctx, "stored events are corrupt; starting empty",
			logger.String("key", s.key),
			logger.Error(err),
		)
		return model.Buckets{}
	}
	if dropped > 0 {
		s.logger.Warn(ctx, "skipped unusable stored events",
			logger.String("key", s.key),
			logger.Int("dropped", dropped),
		)
	}
	return b
}

// Save serializes snapshot and writes it to the blob store.
func (s *EventStore) Save(ctx context.Context, snapshot model.Buckets) error {
	start := time.Now()

	data, err := Encode(snapshot)
	if err == nil {
		err = s.blob.Put(ctx, s.key, data)
	}
	if err != nil {
		metrics.RecordStoreSaveError()
		metrics.RecordErrorByComponent("repository", "save_failed")
		return fmt.Errorf("%w: save %q: %w", ErrPersistence, s.key, err)
	}

	metrics.RecordStoreSave(float64(time.Since(start).Milliseconds()))
	return nil
}

// Upsert replaces the event with the same id in bucket key, or appends it.
// It reports whether a new event was added.
func (s *EventStore) Upsert(key model.DateKey, e model.Event) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.buckets[key]
	added := true
	if i := indexOf(bucket, e.ID); i >= 0 {
		bucket[i] = e.Clone()
		added = false
	} else {
		bucket = append(bucket, e.Clone())
	}
	s.buckets[key] = bucket

	metrics.RecordStoreMutation("upsert")
	s.publishLocked()
	return added
}

// Remove deletes the event id from bucket key. An emptied bucket is removed.
func (s *EventStore) Remove(key model.DateKey, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	bucket := s.buckets[key]
	i := indexOf(bucket, id)
	if i < 0 {
		return false
	}
	bucket = slices.Delete(bucket, i, i+1)
	if len(bucket) == 0 {
		delete(s.buckets, key)
	} else {
		s.buckets[key] = bucket
	}

	metrics.RecordStoreMutation("remove")
	s.publishLocked()
	return true
}

// Get returns a copy of bucket key; never nil.
func (s *EventStore) Get(key model.DateKey) []model.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.buckets[key]
	out := make([]model.Event, len(bucket))
	for i, e := range bucket {
		out[i] = e.Clone()
	}
	return out
}

// Find returns the event id in bucket key.
func (s *EventStore) Find(key model.DateKey, id string) (model.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	bucket := s.buckets[key]
	if i := indexOf(bucket, id); i >= 0 {
		return bucket[i].Clone(), true
	}
	return model.Event{}, false
}

// Snapshot returns a deep copy of all buckets.
func (s *EventStore) Snapshot() model.Buckets {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buckets.Clone()
}

// Keys returns the non-empty date keys in ascending order.
func (s *EventStore) Keys() []model.DateKey {
	s.mu.RLock()
	defer s.mu.RUnlock()

	keys := make([]model.DateKey, 0, len(s.buckets))
	for k := range s.buckets {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Count returns the number of stored events.
func (s *EventStore) Count() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.buckets.Count()
}

func (s *EventStore) publishLocked() {
	metrics.UpdateStoreBuckets(len(s.buckets))
	metrics.UpdateStoreEvents(s.buckets.Count())
}

func indexOf(bucket []model.Event, id string) int {
	return slices.IndexFunc(bucket, func(e model.Event) bool { return e.ID == id })
}
