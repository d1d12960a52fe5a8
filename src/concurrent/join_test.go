package concurrent

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"
)

func TestJoinRunsAllTasks(t *testing.T) {
	var ran atomic.Int32
	tasks := []Task{
		{Name: "a", Run: func(context.Context) error { ran.Add(1); return nil }},
		{Name: "b", Run: func(context.Context) error { ran.Add(1); return nil }},
		{Name: "c", Run: func(context.Context) error { ran.Add(1); return nil }},
	}
	errs := Join(context.Background(), tasks, 2)
	if ran.Load() != 3 {
		t.Fatalf("ran %d tasks, want 3", ran.Load())
	}
	for i, err := range errs {
		if err != nil {
			t.Fatalf("task %d: unexpected error %v", i, err)
		}
	}
}

func TestJoinAttributesErrorsPerSlot(t *testing.T) {
	boom := errors.New("boom")
	tasks := []Task{
		{Name: "ok", Run: func(context.Context) error { return nil }},
		{Name: "bad", Run: func(context.Context) error { return boom }},
	}
	errs := Join(context.Background(), tasks, 0)
	if errs[0] != nil {
		t.Fatalf("slot 0 should succeed: %v", errs[0])
	}
	if !errors.Is(errs[1], boom) {
		t.Fatalf("slot 1 should carry its own error: %v", errs[1])
	}
}

func TestJoinFailureDoesNotCancelSiblings(t *testing.T) {
	var sibling atomic.Bool
	tasks := []Task{
		{Name: "bad", Run: func(context.Context) error { return errors.New("boom") }},
		{Name: "slow", Run: func(context.Context) error {
			time.Sleep(20 * time.Millisecond)
			sibling.Store(true)
			return nil
		}},
	}
	Join(context.Background(), tasks, 2)
	if !sibling.Load() {
		t.Fatal("sibling task was cut short by a failing peer")
	}
}

func TestJoinCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	errs := Join(ctx, []Task{{Name: "never", Run: func(context.Context) error { return nil }}}, 1)
	// Either the task observed cancellation up front or it ran; both are
	// settled outcomes, never a hang.
	_ = errs
}
