package main

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/raphi011/courses/internal/catalog"
	"github.com/raphi011/courses/internal/course"
	"github.com/raphi011/courses/internal/output"
	"github.com/raphi011/courses/internal/remote"
)

// catalogServer serves a fixed catalog and records favorite requests.
type catalogServer struct {
	mu      sync.Mutex
	courses []course.Course
	status  int
	favs    []string
}

func (s *catalogServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.status != 0 {
		w.WriteHeader(s.status)
		return
	}

	switch r.URL.Path {
	case remote.DefaultCoursesPath:
		_ = json.NewEncoder(w).Encode(s.courses)
	case remote.DefaultFavoritePath:
		var body struct {
			CourseID int `json:"course_id"`
		}
		_ = json.NewDecoder(r.Body).Decode(&body)
		s.favs = append(s.favs, r.Method+" "+course.Key(body.CourseID))
		_, _ = io.WriteString(w, `{}`)
	default:
		http.NotFound(w, r)
	}
}

func (s *catalogServer) requests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.favs...)
}

// setupEnv points the CLI at a test server and a temp data dir.
// Tests using it cannot run in parallel.
func setupEnv(t *testing.T) *catalogServer {
	t.Helper()

	srv := &catalogServer{courses: []course.Course{
		{ID: 1, Title: "Cooking", InstructorName: "Gordon Ramsay"},
		{ID: 2, Title: "Writing", InstructorName: "Margaret Atwood", Favorite: true},
		{ID: 3, Title: "Tennis", InstructorName: "Serena Williams"},
	}}
	ts := httptest.NewServer(srv)
	t.Cleanup(ts.Close)

	t.Setenv("HOME", t.TempDir())
	t.Setenv("COURSES_BASE_URL", ts.URL)
	t.Setenv("COURSES_EMAIL", "learner@example.com")
	t.Setenv("COURSES_STORE_DATA_DIR", t.TempDir())
	t.Setenv("COURSES_STORE_BACKEND", "json")
	t.Setenv("COURSES_THEME_NAME", "none")
	t.Setenv("COURSES_THEME_MODE", "dark")

	return srv
}

func run(t *testing.T, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetArgs(args)
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	ctx := output.WithPrinter(context.Background(), &stdout)
	err := root.ExecuteContext(ctx)
	return stdout.String(), stderr.String(), err
}

func listJSON(t *testing.T, args ...string) []course.Course {
	t.Helper()
	stdout, _, err := run(t, append([]string{"list", "--format", "json"}, args...)...)
	require.NoError(t, err)

	var got []course.Course
	require.NoError(t, json.Unmarshal([]byte(stdout), &got))
	return got
}

func TestList(t *testing.T) {
	setupEnv(t)

	stdout, _, err := run(t, "list")
	require.NoError(t, err)
	assert.Contains(t, stdout, "TITLE")
	assert.Contains(t, stdout, "Cooking")
	assert.Contains(t, stdout, "Margaret Atwood")
}

func TestList_Formats(t *testing.T) {
	setupEnv(t)

	got := listJSON(t)
	assert.Equal(t, []int{1, 2, 3}, course.IDs(got))
	assert.True(t, got[1].Favorite)

	stdout, _, err := run(t, "list", "-f", "yaml")
	require.NoError(t, err)
	var fromYAML []course.Course
	require.NoError(t, yaml.Unmarshal([]byte(stdout), &fromYAML))
	assert.Equal(t, got, fromYAML)

	_, _, err = run(t, "list", "-f", "xml")
	assert.ErrorContains(t, err, `invalid format "xml"`)
}

func TestList_FavoritesAndSearch(t *testing.T) {
	setupEnv(t)

	assert.Equal(t, []int{2}, course.IDs(listJSON(t, "--favorites")))

	got := listJSON(t, "--search", "Tennis")
	require.NotEmpty(t, got)
	assert.Equal(t, 3, got[0].ID)
}

func TestList_FetchError(t *testing.T) {
	srv := setupEnv(t)
	srv.status = http.StatusInternalServerError

	_, _, err := run(t, "list")
	require.Error(t, err)
	assert.ErrorContains(t, err, "load courses")
	assert.ErrorIs(t, err, remote.ErrRemoteUnavailable)
}

func TestList_CachedAfterFetchError(t *testing.T) {
	srv := setupEnv(t)
	listJSON(t)

	srv.mu.Lock()
	srv.status = http.StatusBadGateway
	srv.mu.Unlock()

	assert.Equal(t, []int{1, 2, 3}, course.IDs(listJSON(t, "--cached")))
}

func TestFilter(t *testing.T) {
	setupEnv(t)

	stdout, _, err := run(t, "filter")
	require.NoError(t, err)
	assert.Equal(t, "off\n", stdout)

	stdout, _, err = run(t, "filter", "on")
	require.NoError(t, err)
	assert.Equal(t, "on\n", stdout)

	// The saved filter applies to list.
	assert.Equal(t, []int{2}, course.IDs(listJSON(t)))

	_, _, err = run(t, "filter", "maybe")
	assert.ErrorContains(t, err, "must be on or off")
}

func TestFilter_Ephemeral(t *testing.T) {
	setupEnv(t)

	_, _, err := run(t, "--ephemeral", "filter", "on")
	require.NoError(t, err)

	stdout, _, err := run(t, "filter")
	require.NoError(t, err)
	assert.Equal(t, "off\n", stdout)
}

func TestFav(t *testing.T) {
	srv := setupEnv(t)

	stdout, stderr, err := run(t, "fav", "1", "99")
	require.NoError(t, err)
	assert.Contains(t, stdout, "Cooking")
	assert.Contains(t, stderr, "Skipped 99")

	// Drained before exit.
	assert.Equal(t, []string{"POST 1"}, srv.requests())

	cached := listJSON(t, "--cached")
	require.Len(t, cached, 3)
	assert.True(t, cached[0].Favorite)
}

func TestUnfav(t *testing.T) {
	srv := setupEnv(t)

	_, _, err := run(t, "unfav", "2")
	require.NoError(t, err)
	assert.Equal(t, []string{"DELETE 2"}, srv.requests())
	assert.Empty(t, listJSON(t, "--cached", "--favorites"))
}

func TestFav_NextFetchOverwrites(t *testing.T) {
	setupEnv(t)

	_, _, err := run(t, "fav", "3")
	require.NoError(t, err)

	// The test server never applies favorites.
	got := listJSON(t)
	assert.False(t, got[2].Favorite)
}

func TestFav_Errors(t *testing.T) {
	setupEnv(t)

	_, _, err := run(t, "fav", "abc")
	assert.ErrorContains(t, err, `invalid course id "abc"`)

	_, _, err = run(t, "fav")
	assert.Error(t, err)

	t.Setenv("COURSES_EMAIL", "")
	_, _, err = run(t, "fav", "1")
	assert.ErrorContains(t, err, "email not configured")
}

func TestConfigShow(t *testing.T) {
	setupEnv(t)

	stdout, _, err := run(t, "config", "show")
	require.NoError(t, err)
	assert.Contains(t, stdout, `base_url = "http://127.0.0.1`)
	assert.Contains(t, stdout, `email = "learner@example.com"`)
	assert.Contains(t, stdout, "[store]")
}

func TestConfigInit(t *testing.T) {
	setupEnv(t)

	_, stderr, err := run(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stderr, "Created config")

	_, _, err = run(t, "config", "init")
	assert.ErrorContains(t, err, "already exists")

	_, _, err = run(t, "config", "init", "--force")
	assert.NoError(t, err)

	stdout, _, err := run(t, "config", "path")
	require.NoError(t, err)
	assert.Contains(t, stdout, "config.toml")
}

func TestCompletion(t *testing.T) {
	setupEnv(t)

	stdout, _, err := run(t, "completion", "bash")
	require.NoError(t, err)
	assert.Contains(t, stdout, "courses")

	_, _, err = run(t, "completion", "tcsh")
	assert.Error(t, err)
}

func TestBrowse_NeedsTerminal(t *testing.T) {
	setupEnv(t)

	_, _, err := run(t)
	assert.ErrorContains(t, err, "needs a terminal")
}

func TestParseIDs(t *testing.T) {
	t.Parallel()

	ids, err := parseIDs([]string{"3", "10"})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 10}, ids)

	_, err = parseIDs([]string{"3", "x"})
	assert.Error(t, err)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	assert.Contains(t, versionString(), "courses dev")
}

func TestDrain_ReportsRemaining(t *testing.T) {
	t.Parallel()

	d := catalog.NewDispatcher()
	release := make(chan struct{})
	for range 2 {
		d.Go(context.Background(), "mark", func(context.Context) error {
			<-release
			return nil
		})
	}

	var (
		mu   sync.Mutex
		msgs []string
	)
	update := func(msg string) {
		mu.Lock()
		msgs = append(msgs, msg)
		mu.Unlock()
	}
	seen := func(msg string) bool {
		mu.Lock()
		defer mu.Unlock()
		for _, m := range msgs {
			if m == msg {
				return true
			}
		}
		return false
	}

	done := make(chan bool, 1)
	go func() { done <- drain(d, 0, update) }()

	require.Eventually(t, func() bool { return seen("Sending 2 favorite changes") }, time.Second, 10*time.Millisecond)
	close(release)
	assert.True(t, <-done)
}

func TestDrain_Timeout(t *testing.T) {
	t.Parallel()

	d := catalog.NewDispatcher()
	release := make(chan struct{})
	t.Cleanup(func() { close(release) })
	d.Go(context.Background(), "mark", func(context.Context) error {
		<-release
		return nil
	})

	assert.False(t, drain(d, 20*time.Millisecond, func(string) {}))
	assert.Equal(t, 1, d.Pending())
}

func TestSendingMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Sending 1 favorite change", sendingMessage(1))
	assert.Equal(t, "Sending 3 favorite changes", sendingMessage(3))
}
