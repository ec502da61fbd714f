// Package remote talks to the course collection service.
//
// The caller identity is part of the client configuration and is sent with
// every request; it is never supplied per call.
package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/raphi011/courses/internal/course"
)

// Default endpoint paths, relative to Config.BaseURL.
const (
	DefaultCoursesPath  = "/jsonapi/v1/courses"
	DefaultFavoritePath = "/jsonapi/v1/favorite"
)

// DefaultTimeout applies when Config.Timeout is zero.
const DefaultTimeout = 15 * time.Second

// Config configures a Client.
type Config struct {
	BaseURL      string
	Email        string // caller identity sent with every request
	Timeout      time.Duration
	CoursesPath  string // defaults to DefaultCoursesPath
	FavoritePath string // defaults to DefaultFavoritePath
}

// Client performs the collection and favorite calls.
type Client struct {
	cfg Config
	hc  *http.Client
}

// NewClient builds a client with optional timeout override.
func NewClient(cfg Config) *Client {
	to := cfg.Timeout
	if to == 0 {
		to = DefaultTimeout
	}
	if cfg.CoursesPath == "" {
		cfg.CoursesPath = DefaultCoursesPath
	}
	if cfg.FavoritePath == "" {
		cfg.FavoritePath = DefaultFavoritePath
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	return &Client{
		cfg: cfg,
		hc:  &http.Client{Timeout: to},
	}
}

// favoriteReq is the body of both favorite mutations.
type favoriteReq struct {
	Email    string `json:"email"`
	CourseID int    `json:"course_id"`
}

// FetchAll returns the full collection in server order.
func (c *Client) FetchAll(ctx context.Context) ([]course.Course, error) {
	u := c.cfg.BaseURL + c.cfg.CoursesPath + "?" + url.Values{"email": {c.cfg.Email}}.Encode()

	var courses []course.Course
	if err := c.do(ctx, "fetch", http.MethodGet, u, nil, &courses); err != nil {
		return nil, err
	}
	return courses, nil
}

// MarkFavorite marks id as a favorite of the configured caller.
func (c *Client) MarkFavorite(ctx context.Context, id int) error {
	return c.favorite(ctx, "mark", http.MethodPost, id)
}

// UnmarkFavorite removes id from the configured caller's favorites.
func (c *Client) UnmarkFavorite(ctx context.Context, id int) error {
	return c.favorite(ctx, "unmark", http.MethodDelete, id)
}

func (c *Client) favorite(ctx context.Context, op, method string, id int) error {
	body, err := json.Marshal(favoriteReq{Email: c.cfg.Email, CourseID: id})
	if err != nil {
		return err
	}

	// The response is read as JSON but never interpreted.
	var ignored json.RawMessage
	return c.do(ctx, op, method, c.cfg.BaseURL+c.cfg.FavoritePath, body, &ignored)
}

func (c *Client) do(ctx context.Context, op, method, u string, body []byte, out any) error {
	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)}
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	resp, err := c.hc.Do(req)
	if err != nil {
		return &RequestError{Op: op, Err: fmt.Errorf("%w: %v", ErrRemoteUnavailable, err)}
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%w: %s", ErrRemoteUnavailable, resp.Status)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return &RequestError{Op: op, Status: resp.StatusCode, Err: fmt.Errorf("%w: %v", ErrDecodeFailure, err)}
	}
	return nil
}
