package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// LockFile is the name of the flock file coordinating readers and writers
// of a FileStore dir across processes.
const LockFile = ".courses.lock"

// FileStore keeps each name in its own JSON file.
type FileStore struct {
	dir string
	mu  sync.Mutex
}

// OpenFile returns a FileStore rooted at dir, creating it if needed.
func OpenFile(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, unavailable("open", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Path returns the file backing name.
func (s *FileStore) Path(name string) string {
	return filepath.Join(s.dir, name+".json")
}

// Get reads the file for name into dest under a shared lock.
func (s *FileStore) Get(name string, dest any) (bool, error) {
	lock := s.lock()
	if err := lock.RLock(); err != nil {
		return false, unavailable("lock", name, err)
	}
	defer func() { _ = lock.Unlock() }()

	data, err := os.ReadFile(s.Path(name))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, unavailable("read", name, err)
	}
	return decode(data, dest), nil
}

// Put atomically replaces the file for name.
// The temp file is synced before the rename so the value is durable on return.
func (s *FileStore) Put(name string, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	lock := s.lock()
	if err := lock.Lock(); err != nil {
		return unavailable("lock", name, err)
	}
	defer func() { _ = lock.Unlock() }()

	path := s.Path(name)
	tempPath := path + ".tmp"

	if err := writeSynced(tempPath, data); err != nil {
		_ = os.Remove(tempPath)
		return unavailable("write", name, err)
	}
	if err := os.Rename(tempPath, path); err != nil {
		_ = os.Remove(tempPath)
		return unavailable("write", name, err)
	}
	return nil
}

func (s *FileStore) lock() *FileLock {
	return NewFileLock(filepath.Join(s.dir, LockFile))
}

// Close is a no-op; FileStore holds no open handles between calls.
func (s *FileStore) Close() error { return nil }

func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
