package store

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
)

// ErrPersistenceUnavailable is wrapped by every backend failure.
var ErrPersistenceUnavailable = errors.New("persistence unavailable")

// Store is a synchronous, durable key-value store of JSON values.
type Store interface {
	// Get decodes the value stored under name into dest.
	// It reports false when the name is absent or undecodable.
	Get(name string, dest any) (bool, error)
	// Put stores value under name, replacing any previous value.
	Put(name string, value any) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendJSON   = "json"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

// DatabaseFile is the SQLite file name inside the data directory.
const DatabaseFile = "courses.db"

// Open returns the store for backend rooted at dir.
func Open(backend, dir string) (Store, error) {
	switch backend {
	case BackendJSON, "":
		return OpenFile(dir)
	case BackendSQLite:
		return OpenSQLite(filepath.Join(dir, DatabaseFile))
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", backend)
	}
}

func unavailable(op, name string, err error) error {
	return fmt.Errorf("%w: %s %s: %v", ErrPersistenceUnavailable, op, name, err)
}

// decode unmarshals data into dest, treating null and bad JSON as absent.
func decode(data []byte, dest any) bool {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return false
	}
	return json.Unmarshal(trimmed, dest) == nil
}

// Slot is a typed accessor for a single name in a Store.
type Slot[T any] struct {
	store Store
	name  string
}

// NewSlot binds name in s to values of type T.
func NewSlot[T any](s Store, name string) Slot[T] {
	return Slot[T]{store: s, name: name}
}

// Name returns the store name of the slot.
func (s Slot[T]) Name() string { return s.name }

// Get returns the stored value. Backend read failures count as absent.
func (s Slot[T]) Get() (T, bool) {
	var v T
	ok, err := s.store.Get(s.name, &v)
	if err != nil || !ok {
		var zero T
		return zero, false
	}
	return v, true
}

// GetOr returns the stored value, or def when absent.
func (s Slot[T]) GetOr(def T) T {
	if v, ok := s.Get(); ok {
		return v
	}
	return def
}

// Set stores v.
func (s Slot[T]) Set(v T) error {
	return s.store.Put(s.name, v)
}
