package search

import (
	"context"
	"testing"

	"github.com/radevgit/selen-sub002/pkg/constraints"
	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

func TestSolveFindsAllDifferentAssignment(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(0, 1)
	y := s.NewInt(0, 1)
	z := s.NewInt(0, 2)

	k := propagate.NewKernel(s)
	k.Post(constraints.NewAllDifferent([]views.View{views.Id(x), views.Id(y), views.Id(z)}))
	k.DirtyAll()
	if err := k.Propagate(); err != nil {
		t.Fatalf("unexpected propagation failure: %v", err)
	}

	out, err := Solve(context.Background(), s, k, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected search error: %v", err)
	}
	if !out.Found {
		t.Fatalf("expected a solution")
	}
	seen := map[int32]bool{}
	for _, id := range []data.VarId{x, y, z} {
		if !s.IsFixed(id) {
			t.Fatalf("expected %v fixed", id)
		}
		v := s.Value(id).AsInt()
		if seen[v] {
			t.Fatalf("expected all distinct, got repeat value %d", v)
		}
		seen[v] = true
	}
}

func TestRootPropagationFailsWhenNoAssignmentExists(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(0, 1)
	y := s.NewInt(0, 1)
	z := s.NewInt(0, 1)

	k := propagate.NewKernel(s)
	k.Post(constraints.NewAllDifferent([]views.View{views.Id(x), views.Id(y), views.Id(z)}))
	k.DirtyAll()
	if err := k.Propagate(); err != propagate.ErrFail {
		// Three variables, two values: GAC should already fail at the root.
		t.Fatalf("expected initial propagation to fail, got %v", err)
	}
}

func TestOptimizeMinimizesObjective(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(0, 5)
	y := s.NewInt(0, 5)
	obj := s.NewInt(0, 10)

	k := propagate.NewKernel(s)
	// obj == x + y
	k.Post(constraints.NewLinear([]data.Val{data.Int(1), data.Int(1), data.Int(-1)},
		[]views.View{views.Id(x), views.Id(y), views.Id(obj)}, constraints.Eq, data.Int(0), true))
	// x + y >= 4, expressed as -x - y <= -4 (this package has no Geq relation)
	k.Post(constraints.NewLinear([]data.Val{data.Int(-1), data.Int(-1)},
		[]views.View{views.Id(x), views.Id(y)}, constraints.Leq, data.Int(-4), true))
	k.DirtyAll()
	if err := k.Propagate(); err != nil {
		t.Fatalf("unexpected propagation failure: %v", err)
	}

	out, err := Optimize(context.Background(), s, k, obj, Minimize, DefaultConfig())
	if err != nil {
		t.Fatalf("unexpected search error: %v", err)
	}
	if !out.Found {
		t.Fatalf("expected an optimum to be found")
	}
	if got := s.Value(obj).AsInt(); got != 4 {
		t.Fatalf("expected minimal objective 4, got %d", got)
	}
}
