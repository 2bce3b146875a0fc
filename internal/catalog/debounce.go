package catalog

import (
	"sync"
	"time"
)

// DefaultDebounce is the quiet period applied to search input before the
// engine re-runs.
const DefaultDebounce = 300 * time.Millisecond

// Debouncer runs the most recent callback after a quiet period. Scheduling a
// new callback supersedes any still-pending one; the two never both run. It
// only affects when the engine runs, never what it returns for a settled
// input.
type Debouncer struct {
	delay time.Duration

	mu      sync.Mutex
	gen     uint64
	timer   *time.Timer
	pending func()
}

// NewDebouncer returns a debouncer with the given quiet period.
// A non-positive delay falls back to DefaultDebounce.
func NewDebouncer(delay time.Duration) *Debouncer {
	if delay <= 0 {
		delay = DefaultDebounce
	}
	return &Debouncer{delay: delay}
}

// Do schedules fn after the quiet period, cancelling any pending schedule.
// The generation counter catches a superseded timer that already fired and is
// waiting on the lock: Stop cannot cancel it, so it must see it is stale and
// leave the fresh schedule alone.
func (d *Debouncer) Do(fn func()) {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = fn
	d.timer = time.AfterFunc(d.delay, func() {
		d.mu.Lock()
		if gen != d.gen {
			d.mu.Unlock()
			return
		}
		fn := d.pending
		d.pending = nil
		d.timer = nil
		d.mu.Unlock()
		if fn != nil {
			fn()
		}
	})
}

// Flush runs any pending callback immediately. Used on shutdown and in tests.
func (d *Debouncer) Flush() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	fn := d.pending
	d.pending = nil
	d.timer = nil
	d.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Stop cancels any pending callback without running it.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.pending = nil
	d.timer = nil
}
