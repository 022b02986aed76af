// bridge.go implements the Extract/Filter/Apply steps around Solve
// (spec.md §4.10 steps 1,2,5): pulling a LinearConstraintSystem out of
// the solver's recorded metadata and current bounds, and writing a
// solved vertex's coordinates back as CSP bound tightening. Grounded on
// original_source/src/lpsolver/csp_integration.rs's extract/apply
// boundary.
package lp

import "math"

// Store is the narrow slice of domain.Store the bridge needs. It is
// defined locally (rather than importing package domain) so lp stays a
// free-standing, dependency-light package callable in isolation, per
// spec.md §9's "LP bridge decoupling" note.
type Store interface {
	NumVars() int
	Min(i int) float64
	Max(i int) float64
	IsConstant(i int) bool
	TightenMin(i int, v float64) (ok bool)
	TightenMax(i int, v float64) (ok bool)
}

// LinearRow mirrors meta.Linear but indexes variables by a dense LP
// column index (0..NumVars-1) rather than a data.VarId, so this
// package has no dependency on pkg/data or pkg/meta — the caller
// (package solver) does that translation.
type LinearRow struct {
	Coeffs []float64
	VarIdx []int
	Rel    Relation
	RHS    float64
}

// Tighten is the full bridge pipeline: filter (spec.md step 2 — at
// least one row and two participating variables, else this is a no-op
// "nothing to tighten"), build the bounded-variable Problem from the
// store's current bounds, and for every non-constant variable solve
// the relaxation once minimizing and once maximizing that variable,
// applying whichever of the two results actually improves the CSP
// bound (spec.md step 5). Any LP failure — infeasibility of the
// relaxation does NOT mean the CSP is infeasible (the relaxation can
// be feasible-looking while still bounding a genuinely infeasible CSP,
// and vice versa is never supposed to happen, but degenerate/singular
// tableaux can still occur) — is downgraded to "no tightening applied"
// except when applying a tightened bound itself empties a domain,
// which is a real CSP conflict and is propagated as such (spec.md
// §4.10 step 5, §7).
func Tighten(s Store, rows []LinearRow, cfg Config) (tightened bool, conflict bool) {
	n := s.NumVars()
	if len(rows) == 0 || n < 2 {
		return false, false
	}

	lower := make([]float64, n)
	upper := make([]float64, n)
	participating := make([]bool, n)
	for i := 0; i < n; i++ {
		lower[i] = s.Min(i)
		upper[i] = s.Max(i)
	}
	nParticipating := 0
	for _, r := range rows {
		for _, j := range r.VarIdx {
			if !participating[j] {
				participating[j] = true
				nParticipating++
			}
		}
	}
	if nParticipating < 2 {
		return false, false
	}

	base := &Problem{NumVars: n, Lower: lower, Upper: upper}
	for _, r := range rows {
		base.Rows = append(base.Rows, Row{Coeffs: append([]float64(nil), r.Coeffs...), VarIdx: append([]int(nil), r.VarIdx...), Rel: r.Rel, RHS: r.RHS})
	}

	for j := 0; j < n; j++ {
		if !participating[j] || s.IsConstant(j) {
			continue
		}
		obj := make([]float64, n)

		obj[j] = -1
		if res := solveSafely(base, obj, cfg); res.Status == StatusOptimal {
			if res.X[j] > s.Min(j)+cfg.FeasibilityTol {
				if !s.TightenMin(j, res.X[j]) {
					return tightened, true
				}
				tightened = true
			}
		}

		obj[j] = 1
		if res := solveSafely(base, obj, cfg); res.Status == StatusOptimal {
			maxVal := res.Objective
			if maxVal < s.Max(j)-cfg.FeasibilityTol {
				if !s.TightenMax(j, maxVal) {
					return tightened, true
				}
				tightened = true
			}
		}
	}
	return tightened, false
}

// solveSafely recovers from any numerical panic in Solve (a singular
// pivot producing NaN/Inf ratios, say) and downgrades it to
// StatusNumericalError, matching spec.md's "LP is best-effort" rule —
// no LP failure may ever escape to the CSP caller as an error.
func solveSafely(base *Problem, obj []float64, cfg Config) (res Result) {
	defer func() {
		if r := recover(); r != nil {
			res = Result{Status: StatusNumericalError}
		}
	}()
	p := &Problem{NumVars: base.NumVars, Rows: base.Rows, Lower: base.Lower, Upper: base.Upper, Obj: obj}
	res = Solve(p, cfg)
	if res.Status == StatusOptimal {
		for _, x := range res.X {
			if math.IsNaN(x) || math.IsInf(x, 0) {
				return Result{Status: StatusNumericalError}
			}
		}
	}
	return res
}
