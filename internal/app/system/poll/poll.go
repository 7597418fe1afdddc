// internal/app/system/poll/poll.go
//
// Package poll runs a fixed-interval polling task until its function
// reports completion, fails, or the context is canceled. No backoff, no
// jitter: the first request goes out immediately and every subsequent one
// waits exactly Interval.
package poll

import (
	"context"
	"errors"
	"time"
)

// ErrMaxAttempts is returned when a bounded task runs out of attempts
// before its function reports done.
var ErrMaxAttempts = errors.New("poll: max attempts reached")

// Func is one polling attempt. Returning done=true stops the task
// successfully; returning an error stops it immediately with that error.
type Func func(ctx context.Context) (done bool, err error)

// Task is a fixed-interval poller. MaxAttempts of zero means unbounded;
// callers that poll a job they do not own should set a bound.
type Task struct {
	Interval    time.Duration
	MaxAttempts int
	Fn          Func
}

// Run polls until done, error, context cancellation, or attempt exhaustion.
func (t Task) Run(ctx context.Context) error {
	if t.Interval <= 0 {
		return errors.New("poll: interval must be positive")
	}
	attempts := 0
	for {
		attempts++
		done, err := t.Fn(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if t.MaxAttempts > 0 && attempts >= t.MaxAttempts {
			return ErrMaxAttempts
		}

		timer := time.NewTimer(t.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
