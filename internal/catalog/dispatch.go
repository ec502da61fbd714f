package catalog

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/oklog/ulid/v2"
	"golang.org/x/sync/errgroup"

	"github.com/raphi011/courses/internal/log"
)

// Dispatcher runs remote mutations without making the caller wait.
// Results are logged and dropped.
//
// Go and Wait may be called concurrently. Each Wait seals the group of
// dispatches started so far and opens a fresh one for later calls to Go,
// so a group is never added to once something waits on it.
type Dispatcher struct {
	mu      sync.Mutex
	group   *errgroup.Group
	sealed  chan struct{} // closed once every sealed group has finished
	pending atomic.Int64
}

// NewDispatcher creates an idle dispatcher.
func NewDispatcher() *Dispatcher {
	return &Dispatcher{}
}

// Go starts fn in the background and returns its dispatch id.
// fn gets a context that keeps ctx's values but not its cancellation, so
// closing the view that triggered it does not abort the request.
func (d *Dispatcher) Go(ctx context.Context, op string, fn func(context.Context) error) string {
	id := ulid.Make().String()
	detached := context.WithoutCancel(ctx)
	l := log.FromContext(ctx).With("dispatch", id, "op", op)

	d.mu.Lock()
	defer d.mu.Unlock()
	if d.group == nil {
		d.group = new(errgroup.Group)
	}

	d.pending.Add(1)
	d.group.Go(func() error {
		defer d.pending.Add(-1)

		start := time.Now()
		err := fn(detached)
		if err != nil {
			l.Debug("dispatch failed", "error", err.Error(), "elapsed", time.Since(start).String())
			return nil
		}
		l.Debug("dispatch done", "elapsed", time.Since(start).String())
		return nil
	})

	return id
}

// Pending returns the number of dispatches still running.
func (d *Dispatcher) Pending() int {
	return int(d.pending.Load())
}

// Wait blocks until every dispatch started so far has finished or timeout
// elapses. It reports whether all of them finished.
func (d *Dispatcher) Wait(timeout time.Duration) bool {
	if d.Pending() == 0 {
		return true
	}

	done := d.seal()

	if timeout <= 0 {
		<-done
		return true
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-done:
		return true
	case <-timer.C:
		return false
	}
}

// seal hands the current group to a waiter and returns a channel closed once
// it and every group sealed before it have finished.
func (d *Dispatcher) seal() <-chan struct{} {
	d.mu.Lock()
	defer d.mu.Unlock()

	group, prev := d.group, d.sealed
	d.group = nil

	done := make(chan struct{})
	d.sealed = done
	go func() {
		if group != nil {
			_ = group.Wait()
		}
		if prev != nil {
			<-prev
		}
		close(done)
	}()
	return done
}
