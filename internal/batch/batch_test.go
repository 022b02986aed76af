package batch

import (
	"context"
	"errors"
	"testing"

	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/solver"
)

func TestRunCollectsResultsInOrder(t *testing.T) {
	jobs := make([]Job[int], 5)
	for i := range jobs {
		i := i
		jobs[i] = func(ctx context.Context, index int) (int, error) {
			return index * index, nil
		}
	}
	results, err := Run(context.Background(), 2, jobs)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, r := range results {
		if r != i*i {
			t.Fatalf("index %d: expected %d, got %d", i, i*i, r)
		}
	}
}

func TestRunPropagatesFirstJobError(t *testing.T) {
	boom := errors.New("boom")
	jobs := []Job[int]{
		func(ctx context.Context, index int) (int, error) { return 1, nil },
		func(ctx context.Context, index int) (int, error) { return 0, boom },
	}
	if _, err := Run(context.Background(), 2, jobs); err != boom {
		t.Fatalf("expected boom, got %v", err)
	}
}

func TestSolveAllRunsIndependentModels(t *testing.T) {
	builders := make([]ModelBuilder, 3)
	for i := range builders {
		n := int32(i + 3)
		builders[i] = func(int) *solver.Model {
			m := solver.NewModel()
			x := m.NewInt(0, n)
			m.PostLinearEq([]data.Val{data.Int(1)}, []data.VarId{x}, data.Int(n))
			return m
		}
	}
	results, err := SolveAll(context.Background(), 0, builders, solver.DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	for i, sol := range results {
		want := int32(i + 3)
		if sol.Int(0) != want {
			t.Fatalf("model %d: expected %d, got %d", i, want, sol.Int(0))
		}
	}
}
