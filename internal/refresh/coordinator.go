package refresh

import (
	"context"
	"sync"
	"time"
)

// DefaultTimeout bounds how long a refresh may block on the gateway before
// the UI falls back to an empty collection.
const DefaultTimeout = 8 * time.Second

// Sink receives presentation signals from the coordinator. Loud refreshes
// drive the loading indicator and surface read failures; silent refreshes
// touch neither.
type Sink interface {
	Loading(on bool)
	ReadFailed(err error)
}

// NopSink ignores every signal.
type NopSink struct{}

func (NopSink) Loading(bool) {}

func (NopSink) ReadFailed(error) {}

// Coordinator arbitrates re-fetches of one collection. At most one fetch is
// in flight; triggers arriving meanwhile collapse into a single trailing
// refresh. A loud trigger pending behind a silent one keeps its loudness.
type Coordinator[T any] struct {
	fetch    func(context.Context) (T, error)
	fallback T
	timeout  time.Duration
	sink     Sink

	mu          sync.Mutex
	snapshot    T
	inFlight    bool
	pending     bool
	pendingLoud bool
	notified    bool // read failure already surfaced once
}

// NewCoordinator wires a coordinator around a gateway fetch. The fallback is
// what callers see after a timed-out or failed read (an empty collection).
func NewCoordinator[T any](fetch func(context.Context) (T, error), fallback T, timeout time.Duration, sink Sink) *Coordinator[T] {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if sink == nil {
		sink = NopSink{}
	}
	return &Coordinator[T]{
		fetch:    fetch,
		fallback: fallback,
		timeout:  timeout,
		sink:     sink,
		snapshot: fallback,
	}
}

// Snapshot returns the last applied collection.
func (c *Coordinator[T]) Snapshot() T {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshot
}

// Refresh re-pulls the collection. Loud refreshes show the loading indicator
// and surface errors; push-triggered ones must pass loud=false. If a fetch is
// already running the call is coalesced into one trailing refresh.
func (c *Coordinator[T]) Refresh(ctx context.Context, loud bool) {
	c.mu.Lock()
	if c.inFlight {
		c.pending = true
		c.pendingLoud = c.pendingLoud || loud
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	c.mu.Unlock()

	go c.run(ctx, loud)
}

// RefreshSync runs one refresh on the calling goroutine and waits for the
// result to be applied. Used at startup and in tests.
func (c *Coordinator[T]) RefreshSync(ctx context.Context, loud bool) {
	c.mu.Lock()
	if c.inFlight {
		c.pending = true
		c.pendingLoud = c.pendingLoud || loud
		c.mu.Unlock()
		return
	}
	c.inFlight = true
	c.mu.Unlock()

	c.run(ctx, loud)
}

func (c *Coordinator[T]) run(ctx context.Context, loud bool) {
	for {
		if loud {
			c.sink.Loading(true)
		}
		val, err := GuardedFetch(ctx, c.timeout, c.fallback, c.fetch)
		if loud {
			c.sink.Loading(false)
		}

		c.mu.Lock()
		if err != nil {
			// degrade to the fallback, notify once rather than per retry
			c.snapshot = c.fallback
			if loud && !c.notified {
				c.notified = true
				c.mu.Unlock()
				c.sink.ReadFailed(err)
				c.mu.Lock()
			}
		} else {
			c.snapshot = val
			c.notified = false
		}

		if !c.pending {
			c.inFlight = false
			c.mu.Unlock()
			return
		}
		loud = c.pendingLoud
		c.pending = false
		c.pendingLoud = false
		c.mu.Unlock()
	}
}
