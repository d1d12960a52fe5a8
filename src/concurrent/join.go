package concurrent

import (
	"context"
	"sync"
)

// Task is one unit of a fan-out: a named function run concurrently with
// its siblings.
type Task struct {
	Name string
	Run  func(ctx context.Context) error
}

// Join dispatches independent tasks concurrently, bounded by maxWorkers,
// and waits for every task to settle before returning. Errors are reported
// per slot so the caller can attribute each failure to its task; a failing
// task never cancels its siblings. A cancelled context surfaces as that
// task's error for tasks not yet started.
func Join(ctx context.Context, tasks []Task, maxWorkers int) []error {
	if len(tasks) == 0 {
		return nil
	}
	if maxWorkers <= 0 {
		maxWorkers = len(tasks)
	}

	errs := make([]error, len(tasks))
	sem := make(chan struct{}, maxWorkers)
	var wg sync.WaitGroup

	for i, task := range tasks {
		wg.Add(1)
		go func(idx int, t Task) {
			defer wg.Done()
			select {
			case <-ctx.Done():
				errs[idx] = ctx.Err()
			case sem <- struct{}{}:
				defer func() { <-sem }()
				errs[idx] = t.Run(ctx)
			}
		}(i, task)
	}

	wg.Wait()
	return errs
}
