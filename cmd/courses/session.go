package main

import (
	"context"
	"fmt"
	"time"

	"github.com/raphi011/courses/internal/catalog"
	"github.com/raphi011/courses/internal/config"
	"github.com/raphi011/courses/internal/log"
	"github.com/raphi011/courses/internal/remote"
	"github.com/raphi011/courses/internal/store"
	"github.com/raphi011/courses/internal/ui/progress"
)

// session is one command's view of the cache and the remote collection.
type session struct {
	cfg   *config.Config
	store store.Store
	ctrl  *catalog.Controller
}

// openSession opens the configured store and wires a controller to it.
// requireIdentity is set by commands that talk to the server.
func openSession(ctx context.Context, requireIdentity bool) (*session, error) {
	cfg := config.FromContext(ctx)
	if requireIdentity {
		if err := cfg.RequireIdentity(); err != nil {
			return nil, err
		}
	}

	s, err := store.Open(cfg.Store.Backend, cfg.Store.DataDir)
	if err != nil {
		return nil, fmt.Errorf("open %s store: %w", cfg.Store.Backend, err)
	}

	client := remote.NewClient(cfg.Remote())
	return &session{
		cfg:   cfg,
		store: s,
		ctrl:  catalog.New(s, client),
	}, nil
}

// load fetches the catalog with a spinner on stderr.
func (s *session) load(ctx context.Context) error {
	l := log.FromContext(ctx)

	sp := progress.NewSpinner(l.Writer(), "Loading courses")
	if !l.Verbose() && !l.Quiet() {
		sp.Start()
	}
	err := s.ctrl.Load(ctx)
	sp.Stop()

	if err != nil {
		return fmt.Errorf("load courses: %w", err)
	}
	return nil
}

// close gives in-flight favorite requests up to drain_timeout to leave,
// then closes the store.
func (s *session) close(ctx context.Context) {
	l := log.FromContext(ctx)

	d := s.ctrl.Dispatcher()
	if pending := d.Pending(); pending > 0 {
		l.Debug("waiting for favorite requests", "pending", pending, "timeout", s.cfg.DrainTimeout.String())

		sp := progress.NewSpinner(l.Writer(), sendingMessage(pending))
		if !l.Verbose() && !l.Quiet() {
			sp.Start()
		}
		ok := drain(d, s.cfg.DrainTimeout, sp.UpdateMessage)
		sp.Stop()

		if !ok {
			l.Warn("favorite requests still in flight at exit", "pending", d.Pending())
		}
	}

	if err := s.store.Close(); err != nil {
		l.Error(err, "close store")
	}
}

const drainTick = 100 * time.Millisecond

// drain waits for d like Dispatcher.Wait, reporting the shrinking number of
// requests left through update while it does.
func drain(d *catalog.Dispatcher, timeout time.Duration, update func(string)) bool {
	stop := make(chan struct{})
	defer close(stop)

	go func() {
		ticker := time.NewTicker(drainTick)
		defer ticker.Stop()
		for {
			select {
			case <-stop:
				return
			case <-ticker.C:
				update(sendingMessage(d.Pending()))
			}
		}
	}()

	return d.Wait(timeout)
}

func sendingMessage(n int) string {
	if n == 1 {
		return "Sending 1 favorite change"
	}
	return fmt.Sprintf("Sending %d favorite changes", n)
}
