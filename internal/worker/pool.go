package worker

import (
	"context"
	"sync"
)

// Pool runs batch jobs on a bounded number of workers. Results keep the
// submission order regardless of completion order. The pool does not pace
// upstream traffic itself; jobs go through the shared Scheduler, so the
// minimum-delay contract holds even when workers > 1.
type Pool[T any] struct {
	workers int
}

// NewPool creates a pool with the given worker count (minimum 1).
func NewPool[T any](workers int) *Pool[T] {
	if workers <= 0 {
		workers = 1
	}
	return &Pool[T]{workers: workers}
}

// Run executes fn for every input and returns the results in input order.
// A canceled context stops dispatching new jobs; jobs already running decide
// for themselves how to honor cancellation.
func (p *Pool[T]) Run(ctx context.Context, inputs []string, fn func(ctx context.Context, input string) T) []T {
	results := make([]T, len(inputs))

	type job struct {
		idx   int
		input string
	}
	jobs := make(chan job)

	var wg sync.WaitGroup
	for i := 0; i < p.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				results[j.idx] = fn(ctx, j.input)
			}
		}()
	}

	for i, in := range inputs {
		select {
		case <-ctx.Done():
			close(jobs)
			wg.Wait()
			return results
		case jobs <- job{idx: i, input: in}:
		}
	}
	close(jobs)
	wg.Wait()

	return results
}
