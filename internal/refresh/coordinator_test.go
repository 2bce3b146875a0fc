package refresh_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"alhaja/internal/refresh"
)

func TestGuardedFetchReturnsResultInTime(t *testing.T) {
	got, err := refresh.GuardedFetch(context.Background(), time.Second, []int{},
		func(ctx context.Context) ([]int, error) { return []int{1, 2}, nil })
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("want real result, got %v", got)
	}
}

func TestGuardedFetchFallsBackOnTimeout(t *testing.T) {
	slow := func(ctx context.Context) ([]int, error) {
		time.Sleep(200 * time.Millisecond)
		return []int{9}, nil
	}
	got, err := refresh.GuardedFetch(context.Background(), 20*time.Millisecond, []int{}, slow)
	if !errors.Is(err, refresh.ErrTimedOut) {
		t.Fatalf("want ErrTimedOut, got %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("want fallback, got %v", got)
	}
}

func TestGuardedFetchPropagatesOpError(t *testing.T) {
	boom := errors.New("boom")
	got, err := refresh.GuardedFetch(context.Background(), time.Second, []int{42},
		func(ctx context.Context) ([]int, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("want op error, got %v", err)
	}
	if len(got) != 1 || got[0] != 42 {
		t.Fatalf("want fallback on error, got %v", got)
	}
}

type recordSink struct {
	mu       sync.Mutex
	loading  int
	failures int
}

func (s *recordSink) Loading(on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.loading++
	}
}

func (s *recordSink) ReadFailed(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.failures++
}

func (s *recordSink) counts() (int, int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading, s.failures
}

func TestCoordinatorAppliesSnapshot(t *testing.T) {
	c := refresh.NewCoordinator(
		func(ctx context.Context) ([]string, error) { return []string{"a", "b"}, nil },
		[]string{}, time.Second, nil)
	c.RefreshSync(context.Background(), true)
	if got := c.Snapshot(); len(got) != 2 {
		t.Fatalf("want snapshot applied, got %v", got)
	}
}

func TestCoordinatorCoalescesRapidTriggers(t *testing.T) {
	var calls int32
	release := make(chan struct{})
	c := refresh.NewCoordinator(
		func(ctx context.Context) ([]string, error) {
			atomic.AddInt32(&calls, 1)
			<-release
			return []string{"x"}, nil
		},
		[]string{}, time.Second, nil)

	// first trigger starts a fetch, the burst behind it collapses to one
	c.Refresh(context.Background(), false)
	for i := 0; i < 5; i++ {
		c.Refresh(context.Background(), false)
	}
	close(release)

	deadline := time.After(2 * time.Second)
	for atomic.LoadInt32(&calls) < 2 {
		select {
		case <-deadline:
			t.Fatalf("trailing refresh never ran, calls=%d", atomic.LoadInt32(&calls))
		case <-time.After(5 * time.Millisecond):
		}
	}
	// give any extra (incorrect) runs a chance to show up
	time.Sleep(50 * time.Millisecond)
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Fatalf("burst of 6 triggers must cost 2 fetches, got %d", got)
	}
}

func TestCoordinatorSilentVsLoud(t *testing.T) {
	sink := &recordSink{}
	c := refresh.NewCoordinator(
		func(ctx context.Context) ([]string, error) { return []string{"x"}, nil },
		[]string{}, time.Second, sink)

	c.RefreshSync(context.Background(), false)
	if loading, _ := sink.counts(); loading != 0 {
		t.Fatal("silent refresh must not touch the loading indicator")
	}
	c.RefreshSync(context.Background(), true)
	if loading, _ := sink.counts(); loading != 1 {
		t.Fatalf("loud refresh must show the indicator once, got %d", loading)
	}
}

func TestCoordinatorReportsFailureOnceAndDegrades(t *testing.T) {
	sink := &recordSink{}
	fail := errors.New("gateway down")
	c := refresh.NewCoordinator(
		func(ctx context.Context) ([]string, error) { return nil, fail },
		[]string{}, time.Second, sink)

	c.RefreshSync(context.Background(), true)
	c.RefreshSync(context.Background(), true)
	c.RefreshSync(context.Background(), true)

	if got := c.Snapshot(); len(got) != 0 {
		t.Fatalf("failed read must degrade to the empty fallback, got %v", got)
	}
	if _, failures := sink.counts(); failures != 1 {
		t.Fatalf("repeated failures must notify once, got %d", failures)
	}
}

func TestCoordinatorRecoversAndNotifiesAgainAfterSuccess(t *testing.T) {
	sink := &recordSink{}
	var healthy atomic.Bool
	c := refresh.NewCoordinator(
		func(ctx context.Context) ([]string, error) {
			if healthy.Load() {
				return []string{"ok"}, nil
			}
			return nil, errors.New("down")
		},
		[]string{}, time.Second, sink)

	c.RefreshSync(context.Background(), true) // fails, notifies
	healthy.Store(true)
	c.RefreshSync(context.Background(), true) // succeeds, resets
	healthy.Store(false)
	c.RefreshSync(context.Background(), true) // fails again, notifies again

	if _, failures := sink.counts(); failures != 2 {
		t.Fatalf("a success in between re-arms the notification, got %d", failures)
	}
}
