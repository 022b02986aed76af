package lp

import "math"

// Solve runs the two-phase primal simplex described in spec.md §4.10:
// Phase I augments with one artificial variable per row to find an
// initial feasible basis (minimizing their sum), Phase II then
// optimizes the real objective from that basis using Dantzig's rule
// for the entering variable and the minimum-ratio test for the leaving
// variable. Grounded on
// original_source/src/lpsolver/simplex_primal.rs's two-phase structure;
// this port uses a single dense tableau with artificial variables in
// every row (rather than that source's separate Matrix/Basis/LU-
// refactorization modules, which the retrieval did not carry) — still
// two-phase primal simplex, just without an explicit LU refactorization
// step on each basis swap. See DESIGN.md for this simplification.
func Solve(p *Problem, cfg Config) Result {
	n := p.NumVars
	if n == 0 || len(p.Rows) == 0 {
		return Result{Status: StatusNumericalError}
	}

	lower := make([]float64, n)
	upper := make([]float64, n)
	for i := 0; i < n; i++ {
		lower[i] = clampInf(p.Lower[i])
		upper[i] = clampInf(p.Upper[i])
		if lower[i] > upper[i] {
			return Result{Status: StatusInfeasible}
		}
	}

	// Build <=-only rows over shifted variables y_i = x_i - lower[i]:
	// an original row's RHS is adjusted by subtracting the contribution
	// of each term's lower-bound shift; Geq rows are negated to Leq;
	// Eq rows become two Leq rows (<=rhs and >=rhs negated to <=-rhs).
	var rows [][]float64
	var rhs []float64
	addRow := func(coeffs []float64, idx []int, r float64) {
		row := make([]float64, n)
		adj := r
		for k, j := range idx {
			row[j] += coeffs[k]
			adj -= coeffs[k] * lower[j]
		}
		rows = append(rows, row)
		rhs = append(rhs, adj)
	}
	for _, row := range p.Rows {
		switch row.Rel {
		case Leq:
			addRow(row.Coeffs, row.VarIdx, row.RHS)
		case Geq:
			neg := make([]float64, len(row.Coeffs))
			for i, c := range row.Coeffs {
				neg[i] = -c
			}
			addRow(neg, row.VarIdx, -row.RHS)
		case Eq:
			addRow(row.Coeffs, row.VarIdx, row.RHS)
			neg := make([]float64, len(row.Coeffs))
			for i, c := range row.Coeffs {
				neg[i] = -c
			}
			addRow(neg, row.VarIdx, -row.RHS)
		}
	}
	// Explicit upper-bound rows for the shifted variables: y_j <= u_j - l_j.
	for j := 0; j < n; j++ {
		if math.IsInf(p.Upper[j], 1) {
			continue
		}
		row := make([]float64, n)
		row[j] = 1
		rows = append(rows, row)
		rhs = append(rhs, upper[j]-lower[j])
	}

	m := len(rows)
	if m == 0 {
		return Result{Status: StatusNumericalError}
	}
	nSlack := m
	nArt := m
	total := n + nSlack + nArt
	slackOff := n
	artOff := n + nSlack

	tab := make([][]float64, m+1)
	for i := range tab {
		tab[i] = make([]float64, total+1)
	}
	basis := make([]int, m)
	for i := 0; i < m; i++ {
		b := rhs[i]
		sign := 1.0
		if b < 0 {
			sign = -1.0
			b = -b
		}
		for j := 0; j < n; j++ {
			tab[i][j] = sign * rows[i][j]
		}
		tab[i][slackOff+i] = sign
		tab[i][artOff+i] = 1
		tab[i][total] = b
		basis[i] = artOff + i
	}

	// Phase I: minimize sum of artificials == maximize -sum(artificials).
	costPhase1 := make([]float64, total)
	for i := 0; i < nArt; i++ {
		costPhase1[artOff+i] = -1
	}
	status := pivotToOptimum(tab, basis, costPhase1, total, m, cfg, nil)
	if status == StatusIterationLimit {
		return Result{Status: StatusIterationLimit}
	}
	if status == StatusUnbounded {
		// Minimizing a sum of nonnegative artificials can't be
		// unbounded in the maximize-of-negative framing; treat as a
		// numerical inconsistency rather than claim infeasibility.
		return Result{Status: StatusNumericalError}
	}
	phase1Obj := objectiveValue(tab, basis, costPhase1, m)
	if phase1Obj < -cfg.FeasibilityTol {
		return Result{Status: StatusInfeasible}
	}

	// Phase II: optimize the real objective, with artificial columns
	// excluded from re-entering the basis.
	costPhase2 := make([]float64, total)
	copy(costPhase2[:n], p.Obj)
	blocked := make([]bool, total)
	for i := 0; i < nArt; i++ {
		blocked[artOff+i] = true
	}
	status = pivotToOptimum(tab, basis, costPhase2, total, m, cfg, blocked)
	switch status {
	case StatusIterationLimit:
		return Result{Status: StatusIterationLimit}
	case StatusUnbounded:
		return Result{Status: StatusUnbounded}
	case StatusNumericalError:
		return Result{Status: StatusNumericalError}
	}

	y := make([]float64, n)
	for i := 0; i < m; i++ {
		if basis[i] < n {
			y[basis[i]] = tab[i][total]
		}
	}
	x := make([]float64, n)
	obj := 0.0
	for j := 0; j < n; j++ {
		x[j] = y[j] + lower[j]
		obj += p.Obj[j] * x[j]
	}
	return Result{Status: StatusOptimal, X: x, Objective: obj}
}

// pivotToOptimum runs simplex pivots against cost (a maximization
// objective) until no entering column improves it, the tableau proves
// unbounded, or the iteration budget is exhausted. blocked, if
// non-nil, marks columns (artificials in Phase II) that may never
// enter.
func pivotToOptimum(tab [][]float64, basis []int, cost []float64, total, m int, cfg Config, blocked []bool) Status {
	for iter := 0; iter < cfg.MaxIterations; iter++ {
		enter := -1
		best := cfg.OptimalityTol
		for j := 0; j < total; j++ {
			if blocked != nil && blocked[j] {
				continue
			}
			rc := reducedCost(tab, basis, cost, j, m)
			if rc > best {
				best = rc
				enter = j
			}
		}
		if enter == -1 {
			return StatusOptimal
		}

		leave := -1
		bestRatio := math.Inf(1)
		for i := 0; i < m; i++ {
			if tab[i][enter] > cfg.FeasibilityTol {
				ratio := tab[i][total] / tab[i][enter]
				if ratio < bestRatio-cfg.FeasibilityTol ||
					(ratio < bestRatio+cfg.FeasibilityTol && (leave == -1 || basis[i] < basis[leave])) {
					bestRatio = ratio
					leave = i
				}
			}
		}
		if leave == -1 {
			return StatusUnbounded
		}

		pivot(tab, leave, enter, m, total)
		basis[leave] = enter
	}
	return StatusIterationLimit
}

// reducedCost computes c_j - sum_i cB(i) * tab[i][j] for the current
// basis, i.e. how much the objective would improve per unit increase
// of (currently nonbasic) column j.
func reducedCost(tab [][]float64, basis []int, cost []float64, j, m int) float64 {
	z := 0.0
	for i := 0; i < m; i++ {
		z += cost[basis[i]] * tab[i][j]
	}
	return cost[j] - z
}

func objectiveValue(tab [][]float64, basis []int, cost []float64, m int) float64 {
	v := 0.0
	for i := 0; i < m; i++ {
		v += cost[basis[i]] * tab[i][len(tab[i])-1]
	}
	return v
}

// pivot normalizes the leaving row by its entering-column coefficient,
// then eliminates that column from every other row.
func pivot(tab [][]float64, leave, enter, m, total int) {
	piv := tab[leave][enter]
	row := tab[leave]
	for j := 0; j <= total; j++ {
		row[j] /= piv
	}
	for i := 0; i < m; i++ {
		if i == leave {
			continue
		}
		factor := tab[i][enter]
		if factor == 0 {
			continue
		}
		for j := 0; j <= total; j++ {
			tab[i][j] -= factor * row[j]
		}
	}
}
