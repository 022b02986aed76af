package batch

import (
	"context"

	"github.com/radevgit/selen-sub002/pkg/solver"
)

// ModelBuilder produces one independent *solver.Model per batch slot —
// a fresh store and kernel, never shared across goroutines.
type ModelBuilder func(index int) *solver.Model

// SolveAll solves one independent model per builder, at most
// maxWorkers at a time, returning one Solution per builder in
// submission order plus the first error any job reported
// (SPEC_FULL.md §7's batch/portfolio solving). Each job builds its own
// Model from scratch, so no store or kernel is ever touched by more
// than one goroutine.
func SolveAll(ctx context.Context, maxWorkers int, builders []ModelBuilder, opts solver.Options) ([]solver.Solution, error) {
	jobs := make([]Job[solver.Solution], len(builders))
	for i, build := range builders {
		build := build
		jobs[i] = func(ctx context.Context, index int) (solver.Solution, error) {
			m := build(index)
			return m.Solve(opts)
		}
	}
	results, err := Run(ctx, maxWorkers, jobs)
	return results, err
}
