package catalog

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/raphi011/courses/internal/course"
	"github.com/raphi011/courses/internal/log"
	"github.com/raphi011/courses/internal/store"
)

// Persisted slot names.
const (
	OrderSlot  = "courseIds"
	TableSlot  = "courseData"
	FilterSlot = "onlyShowFavorites"
)

// ErrNotFound is returned by Lookup for ids missing from the cache.
var ErrNotFound = errors.New("course not found")

// Remote is the collection service the controller syncs with.
type Remote interface {
	FetchAll(ctx context.Context) ([]course.Course, error)
	MarkFavorite(ctx context.Context, id int) error
	UnmarkFavorite(ctx context.Context, id int) error
}

// Option configures a Controller.
type Option func(*Controller)

// WithDispatcher sets the dispatcher used for favorite mutations.
func WithDispatcher(d *Dispatcher) Option {
	return func(c *Controller) {
		c.dispatch = d
	}
}

// Controller owns the cached course collection and the filter flag.
type Controller struct {
	remote   Remote
	dispatch *Dispatcher

	order  store.Slot[course.Order]
	table  store.Slot[course.Table]
	filter store.Slot[bool]

	mu    sync.Mutex
	state State
}

// New creates a controller over s and r. Nothing is fetched until Load.
func New(s store.Store, r Remote, opts ...Option) *Controller {
	c := &Controller{
		remote: r,
		order:  store.NewSlot[course.Order](s, OrderSlot),
		table:  store.NewSlot[course.Table](s, TableSlot),
		filter: store.NewSlot[bool](s, FilterSlot),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.dispatch == nil {
		c.dispatch = NewDispatcher()
	}
	return c
}

// Dispatcher returns the dispatcher running favorite mutations.
func (c *Controller) Dispatcher() *Dispatcher {
	return c.dispatch
}

// State returns the current lifecycle state.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

func (c *Controller) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

// Load fetches the full collection and overwrites the cached order and
// table with it. Local favorite edits not yet reflected by the server are
// lost. On error the state stays Loading and the error is returned as is.
func (c *Controller) Load(ctx context.Context) error {
	l := log.FromContext(ctx)

	c.setState(Loading)

	courses, err := c.remote.FetchAll(ctx)
	if err != nil {
		return err
	}

	order, table := course.Index(courses)
	if err := c.order.Set(order); err != nil {
		return err
	}
	if err := c.table.Set(table); err != nil {
		return err
	}

	c.setState(Loaded)
	l.Debug("catalog loaded", "courses", len(order), "favorites", table.Favorites())
	return nil
}

// ApplyFavoriteIntent sets the favorite flag of id to desired.
// The remote mutation is dispatched first and not awaited, then the table
// is written. It does nothing unless the controller is Loaded and id is
// cached. Only a failed table write is returned.
func (c *Controller) ApplyFavoriteIntent(ctx context.Context, id int, desired bool) error {
	l := log.FromContext(ctx).With("course", id, "favorite", desired)

	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state != Loaded {
		l.Debug("favorite ignored", "state", c.state.String())
		return nil
	}

	table, _ := c.table.Get()
	next, ok := table.WithFavorite(id, desired)
	if !ok {
		l.Debug("favorite ignored", "error", ErrNotFound.Error())
		return nil
	}

	op, mutate := "unmark", c.remote.UnmarkFavorite
	if desired {
		op, mutate = "mark", c.remote.MarkFavorite
	}
	dispatchID := c.dispatch.Go(ctx, op, func(ctx context.Context) error {
		return mutate(ctx, id)
	})
	l.Debug("favorite dispatched", "dispatch", dispatchID)

	return c.table.Set(next)
}

// ToggleFavorite flips the cached favorite flag of id.
func (c *Controller) ToggleFavorite(ctx context.Context, id int) error {
	current, err := c.Lookup(id)
	if err != nil {
		log.FromContext(ctx).Debug("toggle ignored", "course", id, "error", err.Error())
		return nil
	}
	return c.ApplyFavoriteIntent(ctx, id, !current.Favorite)
}

// SetFilterFlag persists the "only show favorites" flag.
func (c *Controller) SetFilterFlag(v bool) error {
	return c.filter.Set(v)
}

// CurrentOrder returns the cached display order.
func (c *Controller) CurrentOrder() (course.Order, bool) {
	return c.order.Get()
}

// CurrentTable returns the cached course table.
func (c *Controller) CurrentTable() (course.Table, bool) {
	return c.table.Get()
}

// CurrentFilterFlag returns the persisted filter flag, false if never set.
func (c *Controller) CurrentFilterFlag() bool {
	return c.filter.GetOr(false)
}

// Lookup returns the cached course with the given id.
func (c *Controller) Lookup(id int) (course.Course, error) {
	table, _ := c.table.Get()
	found, ok := table.Lookup(id)
	if !ok {
		return course.Course{}, fmt.Errorf("%w: %d", ErrNotFound, id)
	}
	return found, nil
}

// Visible returns the cached courses in display order, honoring the
// persisted filter flag.
func (c *Controller) Visible() []course.Course {
	return c.VisibleWith(c.CurrentFilterFlag())
}

// VisibleWith is Visible with an explicit filter flag.
func (c *Controller) VisibleWith(onlyFavorites bool) []course.Course {
	order, ok := c.CurrentOrder()
	if !ok {
		return []course.Course{}
	}
	table, _ := c.CurrentTable()
	return course.Visible(order, table, onlyFavorites)
}
