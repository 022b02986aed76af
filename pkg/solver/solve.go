package solver

import (
	"context"
	"time"

	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/lp"
	"github.com/radevgit/selen-sub002/pkg/meta"
	"github.com/radevgit/selen-sub002/pkg/search"
	"github.com/radevgit/selen-sub002/pkg/validate"
)

// Solve runs search to the first complete, consistent assignment.
func (m *Model) Solve(opts Options) (Solution, error) {
	return m.run(opts, func(ctx context.Context, cfg search.Config) (search.Outcome, error) {
		return search.Solve(ctx, m.store, m.kernel, cfg)
	})
}

// SolveOptimize runs branch-and-bound search over obj in direction dir.
func (m *Model) SolveOptimize(obj data.VarId, dir Direction, opts Options) (Solution, error) {
	sdir := search.Minimize
	if dir == Maximize {
		sdir = search.Maximize
	}
	return m.run(opts, func(ctx context.Context, cfg search.Config) (search.Outcome, error) {
		return search.Optimize(ctx, m.store, m.kernel, obj, sdir, cfg)
	})
}

func (m *Model) run(opts Options, runSearch func(context.Context, search.Config) (search.Outcome, error)) (Solution, error) {
	if issue := validate.Validate(m.validateInput()); issue != nil {
		return Solution{}, m.translateIssue(issue)
	}

	m.kernel.DirtyAll()
	if err := m.kernel.Propagate(); err != nil {
		return Solution{}, newError(Infeasible, "initial propagation failed")
	}

	cfg := search.Config{
		VarSelect:   varSelectorByName(opts.VarSelect),
		ValueSelect: valueSelectorByName(opts.ValueSelect),
		MaxNodes:    opts.MaxNodes,
		Logger:      m.logger,
	}
	if opts.UseLP {
		cfg.Tighten = m.lpTightenHook(opts)
	}

	ctx := context.Background()
	if opts.TimeoutMs > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, time.Duration(opts.TimeoutMs)*time.Millisecond)
		defer cancel()
	}

	out, err := runSearch(ctx, cfg)
	switch {
	case err == search.ErrCanceled:
		return Solution{}, newError(LimitReached, "search timed out")
	case err != nil:
		return Solution{}, newError(InternalNumericalError, err.Error())
	case out.LimitReached && !out.Found:
		return Solution{}, newError(LimitReached, "node budget exhausted before a solution was found")
	case !out.Found:
		return Solution{}, newError(Infeasible, "no solution exists")
	}
	return m.extractSolution(), nil
}

func (m *Model) extractSolution() Solution {
	sol := Solution{ints: make(map[data.VarId]int32), floats: make(map[data.VarId]float64)}
	for i := 0; i < m.store.Len(); i++ {
		id := data.VarId(i)
		if m.store.IsInt(id) {
			sol.ints[id] = m.store.Value(id).AsInt()
		} else {
			sol.floats[id] = m.store.Value(id).AsFloat()
		}
	}
	return sol
}

func (m *Model) validateInput() validate.Input {
	return validate.Input{
		Store:         m.store,
		Registry:      m.registry,
		AllDiffGroups: m.allDiffGroups,
		Divisors:      m.divisors,
	}
}

func (m *Model) translateIssue(issue *validate.Issue) *Error {
	var kind ErrorKind
	switch issue.Kind {
	case validate.InvalidVariableReference:
		kind = InvalidVariableReference
	case validate.InvalidConstraint:
		kind = InvalidConstraint
	case validate.ConflictingConstraints:
		kind = ConflictingConstraints
	default:
		kind = InvalidDomain
	}
	return &Error{Kind: kind, Message: issue.Message, VarID: issue.VarID, PropID: issue.PropID}
}

func varSelectorByName(name string) search.VarSelector {
	switch name {
	case "first_unassigned":
		return search.FirstUnassigned{}
	case "largest_domain":
		return search.LargestDomain{}
	default:
		return search.MRV{}
	}
}

func valueSelectorByName(name string) search.ValueSelector {
	switch name {
	case "max":
		return search.Max{}
	case "mid":
		return search.Mid{}
	case "split_low":
		return search.SplitLow{}
	case "split_high":
		return search.SplitHigh{}
	default:
		return search.Min{}
	}
}

// storeAdapter exposes a domain.Store through the narrow lp.Store
// interface (spec.md §9's LP bridge decoupling): the store's own
// variable index already matches the dense 0..NumVars-1 column
// indexing lp.LinearRow expects, so no translation table is needed.
type storeAdapter struct{ s *domain.Store }

func (a storeAdapter) NumVars() int               { return a.s.Len() }
func (a storeAdapter) Min(i int) float64          { return a.s.Min(data.VarId(i)).AsFloat() }
func (a storeAdapter) Max(i int) float64          { return a.s.Max(data.VarId(i)).AsFloat() }
func (a storeAdapter) IsConstant(i int) bool      { return a.s.IsFixed(data.VarId(i)) }
func (a storeAdapter) TightenMin(i int, v float64) bool {
	_, ok := a.s.TrySetMin(data.VarId(i), data.Float(v))
	return ok
}
func (a storeAdapter) TightenMax(i int, v float64) bool {
	_, ok := a.s.TrySetMax(data.VarId(i), data.Float(v))
	return ok
}

// lpTightenHook builds the search.Config.Tighten closure: extract the
// linear system once (it never changes after posting), then on every
// invocation re-run Extract/Filter/Apply (spec.md §4.10 steps 1,2,5)
// against the store's current bounds. LPRootOnly answers "tightened"
// false and does nothing after its first call.
func (m *Model) lpTightenHook(opts Options) func() (bool, bool) {
	rows := lpRowsFrom(m.registry)
	cfg := lp.Config{FeasibilityTol: opts.LPFeasTol, OptimalityTol: opts.LPOptTol, MaxIterations: lp.DefaultConfig().MaxIterations}
	adapter := storeAdapter{s: m.store}
	ranOnce := false
	return func() (bool, bool) {
		if opts.LPSchedule == LPRootOnly && ranOnce {
			return false, false
		}
		ranOnce = true
		tightened, conflict := lp.Tighten(adapter, rows, cfg)
		m.logger.Debug().Int("rows", len(rows)).Bool("tightened", tightened).Bool("conflict", conflict).Msg("LP invoked")
		if tightened {
			m.kernel.NotifyChanged(m.store.DrainTouched())
			if err := m.kernel.Propagate(); err != nil {
				return tightened, true
			}
		}
		return tightened, conflict
	}
}

func lpRowsFrom(r *meta.Registry) []lp.LinearRow {
	var rows []lp.LinearRow
	for _, lin := range r.LinearSystem() {
		var rel lp.Relation
		switch lin.Rel {
		case "leq":
			rel = lp.Leq
		case "eq":
			rel = lp.Eq
		default:
			continue // disequality has no linear-programming representation
		}
		coeffs := make([]float64, len(lin.Coeffs))
		idx := make([]int, len(lin.Vars))
		for i, c := range lin.Coeffs {
			coeffs[i] = c.AsFloat()
		}
		for i, v := range lin.Vars {
			idx[i] = int(v)
		}
		rows = append(rows, lp.LinearRow{Coeffs: coeffs, VarIdx: idx, Rel: rel, RHS: lin.RHS.AsFloat()})
	}
	return rows
}
