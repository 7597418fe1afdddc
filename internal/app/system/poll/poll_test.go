package poll

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestRunStopsOnTerminalStatus(t *testing.T) {
	// Job reports pending twice then success; the poller must issue
	// exactly three requests.
	statuses := []string{"pending", "pending", "success"}
	requests := 0

	task := Task{
		Interval: time.Millisecond,
		Fn: func(ctx context.Context) (bool, error) {
			status := statuses[requests]
			requests++
			return status != "pending", nil
		},
	}
	if err := task.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if requests != 3 {
		t.Errorf("issued %d requests, want 3", requests)
	}
}

func TestRunStopsOnError(t *testing.T) {
	boom := errors.New("transport down")
	requests := 0
	task := Task{
		Interval: time.Millisecond,
		Fn: func(ctx context.Context) (bool, error) {
			requests++
			if requests == 2 {
				return false, boom
			}
			return false, nil
		},
	}
	if err := task.Run(context.Background()); !errors.Is(err, boom) {
		t.Errorf("Run = %v, want %v", err, boom)
	}
	if requests != 2 {
		t.Errorf("issued %d requests, want 2", requests)
	}
}

func TestRunMaxAttempts(t *testing.T) {
	requests := 0
	task := Task{
		Interval:    time.Millisecond,
		MaxAttempts: 4,
		Fn: func(ctx context.Context) (bool, error) {
			requests++
			return false, nil
		},
	}
	if err := task.Run(context.Background()); !errors.Is(err, ErrMaxAttempts) {
		t.Errorf("Run = %v, want ErrMaxAttempts", err)
	}
	if requests != 4 {
		t.Errorf("issued %d requests, want 4", requests)
	}
}

func TestRunHonorsContextCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	task := Task{
		Interval: time.Hour,
		Fn: func(ctx context.Context) (bool, error) {
			cancel()
			return false, nil
		},
	}
	if err := task.Run(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("Run = %v, want context.Canceled", err)
	}
}

func TestRunRejectsZeroInterval(t *testing.T) {
	task := Task{Fn: func(ctx context.Context) (bool, error) { return true, nil }}
	if err := task.Run(context.Background()); err == nil {
		t.Error("expected error for zero interval")
	}
}
