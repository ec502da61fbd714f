package store

import (
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileLock_LockUnlock(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), LockFile)
	lock := NewFileLock(lockPath)

	require.NoError(t, lock.Lock())
	assert.FileExists(t, lockPath)
	assert.NotNil(t, lock.file)

	require.NoError(t, lock.Unlock())
	assert.Nil(t, lock.file)
}

func TestFileLock_UnlockWithoutLock(t *testing.T) {
	t.Parallel()

	lock := NewFileLock(filepath.Join(t.TempDir(), "never.lock"))
	assert.NoError(t, lock.Unlock())
}

func TestFileLock_Exclusive(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), LockFile)
	first := NewFileLock(lockPath)
	require.NoError(t, first.Lock())

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		acquired bool
	)
	wg.Add(1)
	go func() {
		defer wg.Done()
		second := NewFileLock(lockPath)
		if err := second.Lock(); err != nil {
			return
		}
		mu.Lock()
		acquired = true
		mu.Unlock()
		_ = second.Unlock()
	}()

	time.Sleep(50 * time.Millisecond)
	mu.Lock()
	assert.False(t, acquired, "second lock acquired while first is held")
	mu.Unlock()

	require.NoError(t, first.Unlock())
	wg.Wait()
	assert.True(t, acquired)
}

func TestFileLock_SharedReadersCoexist(t *testing.T) {
	t.Parallel()

	lockPath := filepath.Join(t.TempDir(), LockFile)
	first := NewFileLock(lockPath)
	second := NewFileLock(lockPath)

	require.NoError(t, first.RLock())
	done := make(chan error, 1)
	go func() { done <- second.RLock() }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("second shared lock blocked behind the first")
	}

	require.NoError(t, second.Unlock())
	require.NoError(t, first.Unlock())
}

func TestFileStore_GetWaitsForWriter(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := OpenFile(dir)
	require.NoError(t, err)
	require.NoError(t, s.Put("order", []int{1, 2}))

	writer := NewFileLock(filepath.Join(dir, LockFile))
	require.NoError(t, writer.Lock())

	type result struct {
		found bool
		got   []int
		err   error
	}
	done := make(chan result, 1)
	go func() {
		var got []int
		found, err := s.Get("order", &got)
		done <- result{found: found, got: got, err: err}
	}()

	select {
	case <-done:
		t.Fatal("Get returned while another process held the write lock")
	case <-time.After(50 * time.Millisecond):
	}

	require.NoError(t, writer.Unlock())

	select {
	case r := <-done:
		require.NoError(t, r.err)
		assert.True(t, r.found)
		assert.Equal(t, []int{1, 2}, r.got)
	case <-time.After(time.Second):
		t.Fatal("Get still blocked after the write lock was released")
	}
}
