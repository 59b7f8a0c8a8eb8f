// Package gallery owns the project gallery state: the selected category
// filter, the loaded projects, and the loading flag.
//
// Every refresh asks a Fetcher for projects. A failed fetch or an empty
// result falls back to the bundled sample projects filtered by the current
// category, so the gallery is never empty unless the filter excludes every
// sample.
package gallery

import (
	"context"
	"log/slog"
	"sync"

	"github.com/filipexyz/folio/internal/domain"
)

// Option configures a Controller.
type Option func(*Controller)

// WithLogger sets the logger used for fetch failures.
func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithLatestOnly discards the result of any refresh that was superseded by a
// newer one before it completed. Without it the last fetch to finish wins.
func WithLatestOnly() Option {
	return func(c *Controller) {
		c.latestOnly = true
	}
}

// WithInitialFilter sets the starting category filter.
func WithInitialFilter(f domain.Filter) Option {
	return func(c *Controller) {
		c.state.Category = f
	}
}

// Controller drives the gallery. It is safe for concurrent use.
type Controller struct {
	fetcher    Fetcher
	logger     *slog.Logger
	latestOnly bool

	mu        sync.Mutex
	state     State
	seq       uint64
	listeners map[int]func(State)
	nextID    int
}

// NewController creates a controller in its initial state: filter "all",
// no projects, loading.
func NewController(fetcher Fetcher, opts ...Option) *Controller {
	c := &Controller{
		fetcher: fetcher,
		logger:  slog.Default(),
		state: State{
			Category: domain.FilterAll,
			Loading:  true,
		},
		listeners: make(map[int]func(State)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Start performs the initial refresh.
func (c *Controller) Start(ctx context.Context) State {
	return c.Refresh(ctx)
}

// SetCategory selects a filter and refreshes, even when the filter is
// unchanged.
func (c *Controller) SetCategory(ctx context.Context, f domain.Filter) State {
	c.mu.Lock()
	c.state.Category = f
	c.mu.Unlock()

	return c.Refresh(ctx)
}

// Refresh fetches projects for the current filter and publishes the
// resulting state. It blocks until the fetch completes and returns the
// state at that point.
func (c *Controller) Refresh(ctx context.Context) State {
	c.mu.Lock()
	c.seq++
	seq := c.seq
	filter := c.state.Category
	c.state.Loading = true
	c.state.Err = nil
	loading := c.state.clone()
	c.mu.Unlock()
	c.publish(loading)

	var category *domain.Category
	if cat, ok := filter.Category(); ok {
		category = &cat
	}

	remote, err := c.fetcher.FetchProjects(ctx, category)
	if err != nil {
		c.logger.Warn("failed to fetch projects, using fallback",
			"category", filter.String(),
			"error", err,
		)
		remote = nil
	}
	projects, source := ResolveProjects(remote, filter)

	c.mu.Lock()
	if c.latestOnly && seq != c.seq {
		current := c.state.clone()
		c.mu.Unlock()
		c.logger.Debug("discarding superseded refresh", "category", filter.String())
		return current
	}
	c.state = State{
		Category: c.state.Category,
		Projects: projects,
		Loading:  false,
		Err:      err,
		Source:   source,
	}
	done := c.state.clone()
	c.mu.Unlock()
	c.publish(done)

	return done
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.clone()
}

// Subscribe registers fn to receive every published state. The returned
// function removes the subscription.
func (c *Controller) Subscribe(fn func(State)) (unsubscribe func()) {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.listeners[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.listeners, id)
			c.mu.Unlock()
		})
	}
}

func (c *Controller) publish(s State) {
	c.mu.Lock()
	fns := make([]func(State), 0, len(c.listeners))
	for _, fn := range c.listeners {
		fns = append(fns, fn)
	}
	c.mu.Unlock()

	for _, fn := range fns {
		fn(s.clone())
	}
}
