// Package lifecycle owns the debouncing of caller-issued query changes and
// the cancellation of superseded in-flight searches. It is the outermost
// component of the engine, driven directly by the caller's input events.
package lifecycle

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/procurehub/match-engine/services"
)

// SearchFunc runs one orchestrated search for the controller.
type SearchFunc func(ctx context.Context, filter services.SearchFilter, page, pageSize int) (*services.ResultPage, error)

// ApplyFunc receives the outcome of the search that survived debouncing and
// cancellation. It is never called for superseded searches.
type ApplyFunc func(filter services.SearchFilter, page *services.ResultPage, err error)

// Controller debounces rapid query changes and cancels stale in-flight
// searches so a slow superseded result can never overwrite a newer one.
type Controller struct {
	search   SearchFunc
	apply    ApplyFunc
	debounce time.Duration
	pageSize int

	mu              sync.Mutex
	timer           *time.Timer
	cancelInFlight  context.CancelFunc
	latestRequestID string
	closed          bool
}

// NewController creates a Controller. apply may be nil for callers that
// only want the side effects (history, cache warming).
func NewController(search SearchFunc, apply ApplyFunc, debounce time.Duration, pageSize int) *Controller {
	return &Controller{
		search:   search,
		apply:    apply,
		debounce: debounce,
		pageSize: pageSize,
	}
}

// OnQueryChange registers a new filter. The search runs only after the
// debounce quiet period passes without another change; earlier pending
// filters are dropped.
func (c *Controller) OnQueryChange(filter services.SearchFilter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed {
		return
	}
	if c.timer != nil {
		c.timer.Stop()
	}
	c.timer = time.AfterFunc(c.debounce, func() {
		c.run(filter)
	})
}

// Close stops any pending debounce timer and cancels the in-flight search.
func (c *Controller) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.closed = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	if c.cancelInFlight != nil {
		c.cancelInFlight()
		c.cancelInFlight = nil
	}
}

func (c *Controller) run(filter services.SearchFilter) {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return
	}
	// Starting a new search supersedes the previous one entirely.
	if c.cancelInFlight != nil {
		c.cancelInFlight()
	}
	ctx, cancel := context.WithCancel(context.Background())
	c.cancelInFlight = cancel
	requestID := uuid.New().String()
	c.latestRequestID = requestID
	c.mu.Unlock()

	page, err := c.search(ctx, filter, 1, c.pageSize)

	// Cancellation is a silent no-op discard, never an error.
	if ctx.Err() != nil {
		return
	}

	c.mu.Lock()
	isLatest := c.latestRequestID == requestID
	c.mu.Unlock()
	if !isLatest {
		return
	}

	if c.apply != nil {
		c.apply(filter, page, err)
	}
}
