package bulk

import (
	"context"
	"fmt"
	"sync"
)

// Result captures the outcome for one input file.
type Result struct {
	Input   string
	Outputs []string
	Err     error
}

// Task produces the output locations for one input file.
type Task func(ctx context.Context, input string) ([]string, error)

// Run executes task for every input with at most workers running
// concurrently, returning one Result per input in input order. A failing
// or panicking task only marks its own result; siblings keep running.
// Cancelling the context stops the admission of new tasks.
func Run(ctx context.Context, inputs []string, workers int, task Task) []Result {
	if workers < 1 {
		workers = 1
	}

	results := make([]Result, len(inputs))
	sem := make(chan struct{}, workers)
	var wg sync.WaitGroup

	for i, input := range inputs {
		if err := ctx.Err(); err != nil {
			results[i] = Result{Input: input, Err: fmt.Errorf("cancelled: %w", err)}
			continue
		}

		select {
		case <-ctx.Done():
			results[i] = Result{Input: input, Err: fmt.Errorf("cancelled: %w", ctx.Err())}
			continue
		case sem <- struct{}{}:
		}

		wg.Add(1)
		go func(i int, input string) {
			defer wg.Done()
			defer func() { <-sem }()

			results[i] = runOne(ctx, input, task)
		}(i, input)
	}

	wg.Wait()
	return results
}

// runOne isolates a single task, converting panics into task errors so a
// corrupt input cannot take down the whole run.
func runOne(ctx context.Context, input string, task Task) (res Result) {
	res.Input = input
	defer func() {
		if r := recover(); r != nil {
			res.Err = fmt.Errorf("task panicked: %v", r)
		}
	}()

	res.Outputs, res.Err = task(ctx, input)
	return res
}
