// Package lp implements the LP bridge (spec.md §4.10): a pure function
// from a LinearConstraintSystem plus variable bounds to tightened
// bounds, via a two-phase primal simplex. It must not hold references
// to solver state beyond a single call (spec.md §9's "LP bridge
// decoupling" design note) so it stays testable in isolation and can be
// disabled without touching the CSP.
//
// The public problem/variable/result naming mirrors
// github.com/costela/golpa's Model/Variable/Result surface (see
// other_examples/c848776b_costela-golpa__golpa.go.go) stripped of its
// cgo/lp_solve backend: this package is a from-scratch Go simplex, not
// a cgo wrapper, since spec.md requires the LP to be an ordinary,
// disableable Go collaborator rather than a native dependency.
package lp

import "math"

// Relation is the comparison a single LP row enforces, before it is
// lowered to an equality row with a slack (package solver's lpRowsFrom
// only emits Leq and Eq rows, and Solve negates any Geq row into a Leq
// one, but Relation is kept general for callers building a Problem by
// hand).
type Relation int

const (
	Leq Relation = iota
	Geq
	Eq
)

// Row is one linear constraint: sum(Coeffs[i] * x[VarIdx[i]]) Rel RHS.
type Row struct {
	Coeffs []float64
	VarIdx []int
	Rel    Relation
	RHS    float64
}

// Problem is a linear program in bounded-variable form:
//
//	maximize Obj . x
//	subject to each Row, Lower[i] <= x[i] <= Upper[i]
type Problem struct {
	NumVars int
	Rows    []Row
	Obj     []float64 // length NumVars; maximize by convention
	Lower   []float64
	Upper   []float64
}

// Status is the outcome of a Solve call.
type Status int

const (
	// StatusOptimal: an optimal vertex was found.
	StatusOptimal Status = iota
	// StatusInfeasible: Phase I could not find any feasible point.
	StatusInfeasible
	// StatusUnbounded: the objective is unbounded on the feasible region.
	StatusUnbounded
	// StatusIterationLimit: Phase I or II hit the iteration cap before
	// concluding either way.
	StatusIterationLimit
	// StatusNumericalError: a degenerate or singular tableau state that
	// the solver could not recover from. Per spec.md §4.10/§7 this is
	// always absorbed by the bridge, never surfaced to the CSP caller.
	StatusNumericalError
)

func (s Status) String() string {
	switch s {
	case StatusOptimal:
		return "optimal"
	case StatusInfeasible:
		return "infeasible"
	case StatusUnbounded:
		return "unbounded"
	case StatusIterationLimit:
		return "iteration-limit"
	case StatusNumericalError:
		return "numerical-error"
	default:
		return "unknown"
	}
}

// Result carries the outcome and, when StatusOptimal, the primal point
// and objective value.
type Result struct {
	Status    Status
	X         []float64
	Objective float64
}

// Config holds the tolerances and budgets spec.md §4.10/§9 call out as
// fixed constants, not per-propagator options: feasibility/optimality
// tolerance ~1e-8, plus an iteration cap. There is no wall-clock limit
// on a single LP solve.
type Config struct {
	FeasibilityTol float64
	OptimalityTol  float64
	MaxIterations  int
}

// DefaultConfig matches the tolerances spec.md §9 documents.
func DefaultConfig() Config {
	return Config{FeasibilityTol: 1e-8, OptimalityTol: 1e-8, MaxIterations: 10_000}
}

func clampInf(v float64) float64 {
	if math.IsInf(v, 1) {
		return 1e12
	}
	if math.IsInf(v, -1) {
		return -1e12
	}
	return v
}
