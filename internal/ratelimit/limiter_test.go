package ratelimit

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"
)

func TestDoPreservesFIFOOrder(t *testing.T) {
	limiter := New(time.Millisecond, nil)

	var mu sync.Mutex
	var order []int

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < 5; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			// Stagger submissions so enqueue order is deterministic.
			time.Sleep(time.Duration(i*5) * time.Millisecond)
			_ = limiter.Do(context.Background(), func() error {
				mu.Lock()
				order = append(order, i)
				mu.Unlock()
				return nil
			})
		}()
	}
	close(start)
	wg.Wait()

	for i, got := range order {
		if got != i {
			t.Fatalf("execution order = %v, want ascending", order)
		}
	}
}

func TestDoEnforcesMinimumSpacing(t *testing.T) {
	const interval = 30 * time.Millisecond
	limiter := New(interval, nil)

	var mu sync.Mutex
	var starts []time.Time

	run := func() {
		_ = limiter.Do(context.Background(), func() error {
			mu.Lock()
			starts = append(starts, time.Now())
			mu.Unlock()
			return nil
		})
	}

	var wg sync.WaitGroup
	for i := 0; i < 3; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			run()
		}()
	}
	wg.Wait()

	if len(starts) != 3 {
		t.Fatalf("expected 3 executions, got %d", len(starts))
	}
	mu.Lock()
	defer mu.Unlock()
	for i := 1; i < len(starts); i++ {
		gap := starts[i].Sub(starts[i-1])
		// Allow a small scheduling tolerance.
		if gap < interval-5*time.Millisecond {
			t.Errorf("gap %d = %v, want >= %v", i, gap, interval)
		}
	}
}

func TestFailingTaskDoesNotStopQueue(t *testing.T) {
	limiter := New(time.Millisecond, nil)

	boom := errors.New("boom")
	if err := limiter.Do(context.Background(), func() error { return boom }); !errors.Is(err, boom) {
		t.Fatalf("expected task error, got %v", err)
	}

	ran := false
	if err := limiter.Do(context.Background(), func() error { ran = true; return nil }); err != nil {
		t.Fatalf("second task failed: %v", err)
	}
	if !ran {
		t.Fatal("second task did not run after first rejected")
	}
}

func TestEachCallerGetsOwnOutcome(t *testing.T) {
	limiter := New(time.Millisecond, nil)

	errs := make([]error, 4)
	var wg sync.WaitGroup
	for i := range errs {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs[i] = limiter.Do(context.Background(), func() error {
				if i%2 == 1 {
					return errors.New("odd")
				}
				return nil
			})
		}()
	}
	wg.Wait()

	for i, err := range errs {
		if i%2 == 1 && err == nil {
			t.Errorf("task %d should have failed", i)
		}
		if i%2 == 0 && err != nil {
			t.Errorf("task %d should have succeeded, got %v", i, err)
		}
	}
}

func TestCancelledContextSkipsTask(t *testing.T) {
	limiter := New(time.Millisecond, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	ran := false
	err := limiter.Do(ctx, func() error { ran = true; return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if ran {
		t.Fatal("task should not run with cancelled context")
	}
}

func TestFirstTaskRunsImmediately(t *testing.T) {
	limiter := New(time.Second, nil)

	begin := time.Now()
	if err := limiter.Do(context.Background(), func() error { return nil }); err != nil {
		t.Fatalf("Do failed: %v", err)
	}
	if elapsed := time.Since(begin); elapsed > 500*time.Millisecond {
		t.Errorf("first task waited %v, should start immediately", elapsed)
	}
}
