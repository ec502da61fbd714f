package store

import (
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryStore keeps encoded values in a map. Values are stored as JSON so a
// Get never aliases what was Put, matching the disk backends.
type MemoryStore struct {
	mu     sync.RWMutex
	values map[string][]byte
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string][]byte)}
}

func (s *MemoryStore) Get(name string, dest any) (bool, error) {
	s.mu.RLock()
	data, ok := s.values[name]
	s.mu.RUnlock()
	if !ok {
		return false, nil
	}
	return decode(data, dest), nil
}

func (s *MemoryStore) Put(name string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	s.mu.Lock()
	s.values[name] = data
	s.mu.Unlock()
	return nil
}

// Raw returns the encoded bytes stored under name.
func (s *MemoryStore) Raw(name string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	data, ok := s.values[name]
	return data, ok
}

// SetRaw stores data under name without encoding it.
func (s *MemoryStore) SetRaw(name string, data []byte) {
	s.mu.Lock()
	s.values[name] = data
	s.mu.Unlock()
}

func (s *MemoryStore) Close() error { return nil }
