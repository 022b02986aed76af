package solver

import (
	"testing"

	"github.com/radevgit/selen-sub002/pkg/data"
)

func TestSolveFourQueens(t *testing.T) {
	m := NewModel()
	n := int32(4)
	cols := make([]data.VarId, n)
	for i := range cols {
		cols[i] = m.NewInt(0, n-1)
	}
	m.PostAllDifferent(cols)
	for i := int32(0); i < n; i++ {
		for j := i + 1; j < n; j++ {
			d := j - i
			m.PostLinearNeq([]data.Val{data.Int(1), data.Int(-1)}, []data.VarId{cols[i], cols[j]}, data.Int(d))
			m.PostLinearNeq([]data.Val{data.Int(1), data.Int(-1)}, []data.VarId{cols[i], cols[j]}, data.Int(-d))
		}
	}

	sol, err := m.Solve(DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	seen := map[int32]bool{}
	for _, c := range cols {
		v := sol.Int(c)
		if v < 0 || v >= n {
			t.Fatalf("column %d out of range", v)
		}
		if seen[v] {
			t.Fatalf("duplicate column %d", v)
		}
		seen[v] = true
	}
}

func TestSolveLinearFeasibility(t *testing.T) {
	m := NewModel()
	x := m.NewInt(0, 10)
	y := m.NewInt(0, 10)
	m.PostLinearEq([]data.Val{data.Int(1), data.Int(1)}, []data.VarId{x, y}, data.Int(10))
	m.PostLinearLeq([]data.Val{data.Int(1), data.Int(0)}, []data.VarId{x, y}, data.Int(4))

	sol, err := m.Solve(DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if sol.Int(x)+sol.Int(y) != 10 {
		t.Fatalf("expected x+y==10, got x=%d y=%d", sol.Int(x), sol.Int(y))
	}
	if sol.Int(x) > 4 {
		t.Fatalf("expected x<=4, got %d", sol.Int(x))
	}
}

func TestSolveOptimizeWithLP(t *testing.T) {
	m := NewModel()
	x := m.NewInt(0, 20)
	y := m.NewInt(0, 20)
	cost := m.NewInt(0, 1000)
	m.PostLinearEq([]data.Val{data.Int(2), data.Int(3), data.Int(-1)}, []data.VarId{x, y, cost}, data.Int(0))
	// x + y >= 6, expressed as -x - y <= -6
	m.PostLinearLeq([]data.Val{data.Int(-1), data.Int(-1)}, []data.VarId{x, y}, data.Int(-6))

	sol, err := m.SolveOptimize(cost, Minimize, DefaultOptions())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got := sol.Int(x) + sol.Int(y); got < 6 {
		t.Fatalf("expected x+y>=6, got %d", got)
	}
	if 2*sol.Int(x)+3*sol.Int(y) != sol.Int(cost) {
		t.Fatalf("expected cost==2x+3y, got cost=%d x=%d y=%d", sol.Int(cost), sol.Int(x), sol.Int(y))
	}
}

func TestSolveReportsInfeasibleModel(t *testing.T) {
	m := NewModel()
	x := m.NewInt(0, 2)
	y := m.NewInt(0, 2)
	z := m.NewInt(0, 2)
	m.PostAllDifferent([]data.VarId{x, y, z})
	m.PostLinearEq([]data.Val{data.Int(1)}, []data.VarId{x}, data.Int(0))
	m.PostLinearEq([]data.Val{data.Int(1)}, []data.VarId{y}, data.Int(0))

	_, err := m.Solve(DefaultOptions())
	if err == nil {
		t.Fatalf("expected an error")
	}
	serr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if serr.Kind != Infeasible && serr.Kind != ConflictingConstraints {
		t.Fatalf("expected Infeasible or ConflictingConstraints, got %v", serr.Kind)
	}
}

func TestSolveValidatesDivisorDomain(t *testing.T) {
	m := NewModel()
	x := m.NewInt(0, 10)
	div := m.NewInt(-1, 1)
	z := m.NewInt(0, 10)
	m.PostModulo(x, div, z)

	_, err := m.Solve(DefaultOptions())
	if err == nil {
		t.Fatalf("expected a validation error for a divisor domain containing zero")
	}
	serr, ok := err.(*Error)
	if !ok {
		t.Fatalf("expected *Error, got %T", err)
	}
	if serr.Kind != InvalidConstraint {
		t.Fatalf("expected InvalidConstraint, got %v", serr.Kind)
	}
}
