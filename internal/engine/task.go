package engine

import (
	"context"
	"sync"
	"time"
)

// Task is a handle on a timer-driven goroutine. Stop cancels it and waits for
// the goroutine to exit; it is idempotent but must not be called from inside
// the task's own job.
type Task struct {
	cancel context.CancelFunc
	done   chan struct{}
	once   sync.Once
}

// Every runs job once per interval until ctx is cancelled or Stop is called.
// Ticks that fall due while job is still running are dropped, not queued.
func Every(ctx context.Context, interval time.Duration, job func(time.Time)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	if job == nil || interval <= 0 {
		close(t.done)
		return t
	}

	go func() {
		defer close(t.done)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case tick := <-ticker.C:
				if ctx.Err() != nil {
					return
				}
				job(tick)
			case <-ctx.Done():
				return
			}
		}
	}()
	return t
}

// After runs job once after delay unless ctx is cancelled or Stop is called first.
func After(ctx context.Context, delay time.Duration, job func(time.Time)) *Task {
	ctx, cancel := context.WithCancel(ctx)
	t := &Task{cancel: cancel, done: make(chan struct{})}
	if job == nil {
		close(t.done)
		return t
	}

	go func() {
		defer close(t.done)
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case fired := <-timer.C:
			if ctx.Err() == nil {
				job(fired)
			}
		case <-ctx.Done():
		}
	}()
	return t
}

// Stop cancels the task and blocks until its goroutine has returned.
func (t *Task) Stop() {
	if t == nil {
		return
	}
	t.once.Do(func() {
		t.cancel()
		<-t.done
	})
}

// Done is closed once the task goroutine has exited.
func (t *Task) Done() <-chan struct{} {
	return t.done
}
