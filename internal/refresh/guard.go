package refresh

import (
	"context"
	"errors"
	"time"
)

// ErrTimedOut is returned by GuardedFetch when the timer wins the race. The
// caller already holds the fallback value; the error only signals that a
// re-trigger is needed for fresh data.
var ErrTimedOut = errors.New("refresh: fetch timed out")

// GuardedFetch races op against a timer. If the timer fires first the
// fallback is returned with ErrTimedOut; the in-flight op is left to finish
// on its own but its late result is discarded, never applied retroactively.
func GuardedFetch[T any](ctx context.Context, timeout time.Duration, fallback T, op func(context.Context) (T, error)) (T, error) {
	type outcome struct {
		val T
		err error
	}
	// buffered so a late finisher never leaks a blocked goroutine
	ch := make(chan outcome, 1)
	go func() {
		v, err := op(ctx)
		ch <- outcome{val: v, err: err}
	}()

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case out := <-ch:
		if out.err != nil {
			return fallback, out.err
		}
		return out.val, nil
	case <-timer.C:
		return fallback, ErrTimedOut
	case <-ctx.Done():
		return fallback, ctx.Err()
	}
}
