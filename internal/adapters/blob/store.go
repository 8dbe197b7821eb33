// Package blob provides named key/blob stores backing the event store.
package blob

import (
	"context"
	"fmt"
	"strings"
)

// Store reads and writes opaque blobs by name.
type Store interface {
	// Get returns the blob under key or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put replaces the blob under key.
	Put(ctx context.Context, key string, data []byte) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// sqliteFile is the database name used under the store directory.
const sqliteFile = "agenda.db"

// Open creates the store selected by backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(backend)) {
	case BackendFile:
		return NewFileStore(dir)
	case BackendSQLite:
		return NewSQLiteStore(joinPath(dir, sqliteFile))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown blob backend %q", backend)
	}
}

func validKey(key string) error {
	if key == "" || strings.ContainsAny(key, `/\`) || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	return nil
}
