// Package batch runs independent solver.Model instances concurrently
// (SPEC_FULL.md §7's portfolio/batch solving), adapted from the
// teacher's internal/parallel.WorkerPool: a bounded number of
// goroutines drain a task queue, except here the unit of work is one
// *solver.Model Solve/Optimize call rather than a goal evaluation, and
// golang.org/x/sync/errgroup replaces the hand-rolled worker loop and
// shutdown channel. Every model instance is solved by exactly one
// goroutine; nothing is shared across them, so each individual Solve
// call keeps the single-threaded contract the teacher's per-model code
// already assumes.
package batch

import (
	"context"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// Job is one unit of batch work: it receives the batch context (for
// cancellation propagation) and an index identifying its position in
// the submitted slice.
type Job[T any] func(ctx context.Context, index int) (T, error)

// Run executes jobs concurrently with at most maxWorkers in flight at
// once, collecting one result per job in submission order. If
// maxWorkers is 0 or negative it defaults to runtime.NumCPU(), mirroring
// the teacher's WorkerPool default. The first job error cancels ctx for
// every still-running job and is returned; results for jobs that never
// ran or were cancelled are the zero value of T.
func Run[T any](ctx context.Context, maxWorkers int, jobs []Job[T]) ([]T, error) {
	if maxWorkers <= 0 {
		maxWorkers = runtime.NumCPU()
	}
	results := make([]T, len(jobs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)

	for i, job := range jobs {
		i, job := i, job
		g.Go(func() error {
			r, err := job(gctx, i)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}
