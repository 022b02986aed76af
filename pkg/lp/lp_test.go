package lp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSolveMaximizesSimpleProblem(t *testing.T) {
	// maximize x + y subject to x + y <= 10, 0 <= x,y <= 7.
	p := &Problem{
		NumVars: 2,
		Rows:    []Row{{Coeffs: []float64{1, 1}, VarIdx: []int{0, 1}, Rel: Leq, RHS: 10}},
		Obj:     []float64{1, 1},
		Lower:   []float64{0, 0},
		Upper:   []float64{7, 7},
	}
	res := Solve(p, DefaultConfig())
	require.Equal(t, StatusOptimal, res.Status)
	require.InDelta(t, 10, res.Objective, 1e-6)
}

func TestSolveDetectsInfeasibility(t *testing.T) {
	// x == 5 and x == 1 at once, over a single variable.
	p := &Problem{
		NumVars: 1,
		Rows: []Row{
			{Coeffs: []float64{1}, VarIdx: []int{0}, Rel: Eq, RHS: 5},
			{Coeffs: []float64{1}, VarIdx: []int{0}, Rel: Eq, RHS: 1},
		},
		Obj:   []float64{1},
		Lower: []float64{0},
		Upper: []float64{10},
	}
	res := Solve(p, DefaultConfig())
	require.Equal(t, StatusInfeasible, res.Status)
}

func TestTightenNarrowsBoundsFromLinearRow(t *testing.T) {
	s := &fakeStore{
		lower: []float64{0, 0},
		upper: []float64{10, 10},
	}
	// x + y <= 10, y fixed-ish to [6,6] via bounds narrowing outside the
	// bridge: Tighten should deduce x <= 4.
	s.upper[1] = 6
	s.lower[1] = 6

	rows := []LinearRow{{Coeffs: []float64{1, 1}, VarIdx: []int{0, 1}, Rel: Leq, RHS: 10}}
	tightened, conflict := Tighten(s, rows, DefaultConfig())
	require.True(t, tightened)
	require.False(t, conflict)
	require.InDelta(t, 4, s.upper[0], 1e-6)
}

// fakeStore is a minimal in-memory Store for exercising Tighten without
// pkg/domain, keeping pkg/lp's tests free of any import beyond lp
// itself and testify.
type fakeStore struct {
	lower, upper []float64
}

func (s *fakeStore) NumVars() int          { return len(s.lower) }
func (s *fakeStore) Min(i int) float64     { return s.lower[i] }
func (s *fakeStore) Max(i int) float64     { return s.upper[i] }
func (s *fakeStore) IsConstant(i int) bool { return s.lower[i] == s.upper[i] }
func (s *fakeStore) TightenMin(i int, v float64) bool {
	if v > s.lower[i] {
		s.lower[i] = v
	}
	return true
}
func (s *fakeStore) TightenMax(i int, v float64) bool {
	if v < s.upper[i] {
		s.upper[i] = v
	}
	return true
}
