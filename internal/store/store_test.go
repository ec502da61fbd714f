package store

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
}

// backends returns a constructor per backend. Calling a constructor twice
// with the same dir reopens the same data, which simulates a restart.
func backends() map[string]func(t *testing.T, dir string) Store {
	return map[string]func(t *testing.T, dir string) Store{
		BackendJSON: func(t *testing.T, dir string) Store {
			s, err := OpenFile(dir)
			require.NoError(t, err)
			return s
		},
		BackendSQLite: func(t *testing.T, dir string) Store {
			s, err := OpenSQLite(filepath.Join(dir, DatabaseFile))
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			return s
		},
	}
}

func TestStore_ReadYourWrites(t *testing.T) {
	t.Parallel()

	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			s := open(t, t.TempDir())

			want := map[string]record{"1": {ID: 1, Title: "Cooking"}}
			require.NoError(t, s.Put("courseData", want))

			var got map[string]record
			ok, err := s.Get("courseData", &got)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, got)

			require.NoError(t, s.Put("courseData", map[string]record{}))
			got = nil
			ok, err = s.Get("courseData", &got)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Empty(t, got)
		})
	}

	t.Run(BackendMemory, func(t *testing.T) {
		t.Parallel()
		s := NewMemoryStore()
		require.NoError(t, s.Put("courseIds", []int{1, 2}))

		var got []int
		ok, err := s.Get("courseIds", &got)
		require.NoError(t, err)
		require.True(t, ok)
		assert.Equal(t, []int{1, 2}, got)
	})
}

func TestStore_SurvivesReopen(t *testing.T) {
	t.Parallel()

	for name, open := range backends() {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			dir := t.TempDir()

			first := open(t, dir)
			require.NoError(t, first.Put("onlyShowFavorites", true))
			require.NoError(t, first.Close())

			second := open(t, dir)
			got := NewSlot[bool](second, "onlyShowFavorites").GetOr(false)
			assert.True(t, got)
		})
	}
}

func TestStore_AbsentName(t *testing.T) {
	t.Parallel()

	stores := map[string]Store{BackendMemory: NewMemoryStore()}
	for name, open := range backends() {
		stores[name] = open(t, t.TempDir())
	}

	for name, s := range stores {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			var v []int
			ok, err := s.Get("courseIds", &v)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileStore_UndecodableIsAbsent(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
	}{
		{name: "invalid json", content: "{invalid json}"},
		{name: "null", content: "null"},
		{name: "empty file", content: ""},
		{name: "wrong shape", content: `{"a": 1}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			s, err := OpenFile(t.TempDir())
			require.NoError(t, err)
			require.NoError(t, os.WriteFile(s.Path("courseIds"), []byte(tt.content), 0o600))

			var got []int
			ok, err := s.Get("courseIds", &got)
			require.NoError(t, err)
			assert.False(t, ok)
		})
	}
}

func TestFileStore_PutIsAtomic(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	s, err := OpenFile(dir)
	require.NoError(t, err)

	require.NoError(t, s.Put("courseIds", []int{3, 1, 2}))

	assert.NoFileExists(t, s.Path("courseIds")+".tmp")
	assert.FileExists(t, filepath.Join(dir, LockFile))

	data, err := os.ReadFile(s.Path("courseIds"))
	require.NoError(t, err)
	assert.JSONEq(t, `[3,1,2]`, string(data))
}

func TestFileStore_WriteFailure(t *testing.T) {
	t.Parallel()

	s, err := OpenFile(t.TempDir())
	require.NoError(t, err)

	err = s.Put(filepath.Join("missing", "courseIds"), []int{1})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrPersistenceUnavailable)
}

func TestFileStore_ReadFailure(t *testing.T) {
	t.Parallel()

	s, err := OpenFile(t.TempDir())
	require.NoError(t, err)
	require.NoError(t, os.Mkdir(s.Path("courseIds"), 0o755))

	var got []int
	ok, err := s.Get("courseIds", &got)
	assert.False(t, ok)
	assert.ErrorIs(t, err, ErrPersistenceUnavailable)

	// The typed slot treats backend failures as absent.
	_, ok = NewSlot[[]int](s, "courseIds").Get()
	assert.False(t, ok)
}

func TestSQLiteStore_UndecodableIsAbsent(t *testing.T) {
	t.Parallel()

	s, err := OpenSQLite(filepath.Join(t.TempDir(), DatabaseFile))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	_, err = s.db.Exec(`INSERT INTO kv(k,v) VALUES(?,?)`, "courseIds", "not json")
	require.NoError(t, err)

	var got []int
	ok, err := s.Get("courseIds", &got)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStore_NoAliasing(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	ids := []int{1, 2}
	require.NoError(t, s.Put("courseIds", ids))
	ids[0] = 99

	got, ok := NewSlot[[]int](s, "courseIds").Get()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, got)
}

func TestSlot(t *testing.T) {
	t.Parallel()

	s := NewMemoryStore()
	slot := NewSlot[bool](s, "onlyShowFavorites")

	assert.Equal(t, "onlyShowFavorites", slot.Name())
	assert.False(t, slot.GetOr(false), "default when never written")
	assert.True(t, slot.GetOr(true))

	require.NoError(t, slot.Set(true))
	v, ok := slot.Get()
	assert.True(t, ok)
	assert.True(t, v)

	s.SetRaw("onlyShowFavorites", []byte(`"yes"`))
	_, ok = slot.Get()
	assert.False(t, ok, "wrong shape reads as absent")
}

func TestOpen(t *testing.T) {
	t.Parallel()

	tests := []struct {
		backend string
		want    any
		wantErr bool
	}{
		{backend: BackendJSON, want: &FileStore{}},
		{backend: "", want: &FileStore{}},
		{backend: BackendSQLite, want: &SQLiteStore{}},
		{backend: BackendMemory, want: &MemoryStore{}},
		{backend: "redis", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.backend, func(t *testing.T) {
			t.Parallel()
			s, err := Open(tt.backend, t.TempDir())
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			t.Cleanup(func() { _ = s.Close() })
			assert.IsType(t, tt.want, s)
		})
	}
}
