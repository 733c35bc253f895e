package timer

import (
	"context"
	"sync"
	"time"
)

// Runner calls a function at a fixed interval until stopped. The function
// returns false to stop the runner from inside a tick.
type Runner struct {
	interval time.Duration
	fn       func() bool

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
	closed bool
}

// NewRunner creates a stopped runner.
func NewRunner(interval time.Duration, fn func() bool) *Runner {
	if interval <= 0 {
		interval = time.Second
	}
	return &Runner{interval: interval, fn: fn}
}

// Start arms the periodic callback. Starting a running runner is a no-op,
// so ticks are never doubled.
func (r *Runner) Start() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed || r.cancel != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	r.cancel = cancel
	r.done = done
	go r.loop(ctx, done)
}

func (r *Runner) loop(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			// A Stop racing with the ticker wins.
			if ctx.Err() != nil {
				return
			}
			if !r.fn() {
				r.release(done)
				return
			}
		}
	}
}

// release clears the running state when the loop ends itself.
func (r *Runner) release(done chan struct{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.done == done {
		r.cancel()
		r.cancel = nil
		r.done = nil
	}
}

// Stop cancels the callback and waits for an in-flight tick to finish.
// No callback runs after Stop returns. It must not be called from the
// callback itself; return false instead.
func (r *Runner) Stop() {
	r.mu.Lock()
	cancel, done := r.cancel, r.done
	r.cancel, r.done = nil, nil
	r.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
}

// Running reports whether the callback is armed.
func (r *Runner) Running() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.cancel != nil
}

// Close stops the runner for good.
func (r *Runner) Close() {
	r.Stop()
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
}
