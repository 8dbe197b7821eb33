package blob

import (
	"context"
	"sync"
)

// MemoryOption configures a MemoryStore.
type MemoryOption func(*MemoryStore)

// WithQuota limits the total stored bytes; a Put that would exceed it fails
// with ErrQuotaExceeded. Zero means unlimited.
func WithQuota(bytes int) MemoryOption {
	return func(s *MemoryStore) {
		if bytes >= 0 {
			s.quota = bytes
		}
	}
}

// MemoryStore is a map-backed Store.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string][]byte
	quota  int
	closed bool
}

// NewMemoryStore creates an empty store.
func NewMemoryStore(opts ...MemoryOption) *MemoryStore {
	s := &MemoryStore{data: make(map[string][]byte)}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get implements Store.
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, error) {
	if err := validKey(key); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrClosed
	}
	v, ok := s.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return append([]byte(nil), v...), nil
}

// Put implements Store.
func (s *MemoryStore) Put(_ context.Context, key string, data []byte) error {
	if err := validKey(key); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrClosed
	}
	if s.quota > 0 {
		used := len(data)
		for k, v := range s.data {
			if k != key {
				used += len(v)
			}
		}
		if used > s.quota {
			return ErrQuotaExceeded
		}
	}
	s.data[key] = append([]byte(nil), data...)
	return nil
}

// Close implements Store.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}
