package store

import (
	"os"
	"syscall"
)

// FileLock is an advisory flock on a lock file shared by every process
// using the same store directory. Readers take it shared, writers exclusive.
type FileLock struct {
	path string
	file *os.File
}

// NewFileLock returns an unheld lock on path. The file is created on first use.
func NewFileLock(path string) *FileLock {
	return &FileLock{path: path}
}

// Lock blocks until the lock is held exclusively.
func (l *FileLock) Lock() error {
	return l.acquire(syscall.LOCK_EX)
}

// RLock blocks until the lock is held shared. Any number of readers may hold
// it at once; none can while a writer does.
func (l *FileLock) RLock() error {
	return l.acquire(syscall.LOCK_SH)
}

func (l *FileLock) acquire(how int) error {
	f, err := os.OpenFile(l.path, os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return err
	}
	if err := syscall.Flock(int(f.Fd()), how); err != nil {
		f.Close()
		return err
	}
	l.file = f
	return nil
}

// Unlock releases the lock. It is a no-op when the lock is not held.
func (l *FileLock) Unlock() error {
	if l.file == nil {
		return nil
	}
	f := l.file
	l.file = nil

	if err := syscall.Flock(int(f.Fd()), syscall.LOCK_UN); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
