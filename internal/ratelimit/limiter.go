package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"proflens/internal/logging"
)

// DefaultInterval spaces outbound calls roughly three per second, matching
// the informal limit the public search API tolerates.
const DefaultInterval = 350 * time.Millisecond

type task struct {
	ctx  context.Context
	fn   func() error
	done chan error
}

// Limiter serializes asynchronous tasks so that consecutive executions are
// separated by a minimum wall-clock interval. Submission order is preserved
// and each task's outcome is delivered only to its own caller.
//
// The queue is unbounded; sustained overload grows it without backpressure.
type Limiter struct {
	interval time.Duration
	logger   *slog.Logger

	mu       sync.Mutex
	queue    []*task
	running  bool
	lastDone time.Time

	// overridable in tests
	now   func() time.Time
	after func(time.Duration) <-chan time.Time
}

// New constructs a Limiter with the given minimum spacing. Non-positive
// intervals fall back to DefaultInterval.
func New(interval time.Duration, logger *slog.Logger) *Limiter {
	if interval <= 0 {
		interval = DefaultInterval
	}
	return &Limiter{
		interval: interval,
		logger:   logging.NewComponentLogger(logger, "ratelimit"),
		now:      time.Now,
		after:    time.After,
	}
}

// Do enqueues fn and blocks until it has executed, returning fn's own error.
// Tasks run in FIFO order with at least the configured interval between the
// completion of one task and the start of the next. If ctx is cancelled
// before the task starts, the task is skipped and ctx's error returned.
func (l *Limiter) Do(ctx context.Context, fn func() error) error {
	if ctx == nil {
		ctx = context.Background()
	}
	t := &task{ctx: ctx, fn: fn, done: make(chan error, 1)}

	l.mu.Lock()
	l.queue = append(l.queue, t)
	depth := len(l.queue)
	if !l.running {
		l.running = true
		go l.drain()
	}
	l.mu.Unlock()

	if depth > 1 {
		l.logger.Debug("queued rate-limited task", logging.Int("queue_depth", depth))
	}

	return <-t.done
}

// drain executes queued tasks one at a time until the queue empties.
// Only one drain loop runs at a time.
func (l *Limiter) drain() {
	for {
		l.mu.Lock()
		if len(l.queue) == 0 {
			l.running = false
			l.mu.Unlock()
			return
		}
		t := l.queue[0]
		l.queue = l.queue[1:]
		wait := l.interval - l.now().Sub(l.lastDone)
		l.mu.Unlock()

		if !l.lastDoneIsZero() && wait > 0 {
			select {
			case <-t.ctx.Done():
				t.done <- t.ctx.Err()
				continue
			case <-l.after(wait):
			}
		}

		if err := t.ctx.Err(); err != nil {
			t.done <- err
			continue
		}

		err := t.fn()
		l.markDone()
		t.done <- err
	}
}

func (l *Limiter) markDone() {
	l.mu.Lock()
	l.lastDone = l.now()
	l.mu.Unlock()
}

func (l *Limiter) lastDoneIsZero() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastDone.IsZero()
}

// Pending reports the number of tasks waiting to execute.
func (l *Limiter) Pending() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.queue)
}
