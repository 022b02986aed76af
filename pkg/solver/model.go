// Package solver is the public entry point of the engine (spec.md §6):
// Model builds variables and posts propagators, Solve/SolveOptimize
// drive search to a Solution or a structured Error. It wires together
// every lower package — domain, views, propagate, constraints, meta,
// validate, search, lp — without any of them depending back on it.
package solver

import (
	"github.com/rs/zerolog"

	"github.com/radevgit/selen-sub002/pkg/constraints"
	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/meta"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/validate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

// Model owns one store, one propagator kernel, and the metadata and
// validation bookkeeping that ride alongside them for the lifetime of
// one CSP/COP instance.
type Model struct {
	store    *domain.Store
	kernel   *propagate.Kernel
	registry *meta.Registry

	allDiffGroups []validate.AllDiffGroup
	divisors      []struct {
		PropID data.PropId
		VarID  data.VarId
	}

	logger zerolog.Logger
}

// ModelOption configures a Model at construction time (logging, today;
// room for future ambient knobs without breaking NewModel's signature).
type ModelOption func(*Model)

// WithLogger attaches a structured logger; the default is
// zerolog.Nop(), matching the teacher's noop-logger-by-default
// convention (golpa.go.go's noopLogger{}).
func WithLogger(l zerolog.Logger) ModelOption {
	return func(m *Model) { m.logger = l }
}

// NewModel creates an empty model.
func NewModel(opts ...ModelOption) *Model {
	m := &Model{
		store:    domain.NewStore(),
		registry: meta.NewRegistry(),
		logger:   zerolog.Nop(),
	}
	m.kernel = propagate.NewKernel(m.store)
	for _, o := range opts {
		o(m)
	}
	m.kernel.SetLogger(m.logger)
	return m
}

// NewInt creates an integer variable with domain [min, max].
func (m *Model) NewInt(min, max int32) data.VarId { return m.store.NewInt(min, max) }

// NewIntFromValues creates an integer variable whose domain is exactly
// the given (deduplicated) value set.
func (m *Model) NewIntFromValues(values []int32) data.VarId {
	return m.store.NewIntFromValues(values)
}

// NewFloat creates a float variable with an adaptively stepped domain
// [min, max].
func (m *Model) NewFloat(min, max float64) data.VarId { return m.store.NewFloat(min, max) }

// NewFloatWithStep creates a float variable with an explicit step.
func (m *Model) NewFloatWithStep(min, max, step float64) data.VarId {
	return m.store.NewFloatWithStep(min, max, step)
}

func (m *Model) post(p propagate.Prop, md meta.Metadata) data.PropId {
	id := m.kernel.Post(p)
	m.registry.Record(md)
	return id
}

func (m *Model) viewsOf(ids []data.VarId) []views.View {
	out := make([]views.View, len(ids))
	for i, id := range ids {
		out[i] = views.Id(id)
	}
	return out
}

func (m *Model) allInt(ids ...data.VarId) bool {
	for _, id := range ids {
		if !m.store.IsInt(id) {
			return false
		}
	}
	return true
}

// --- linear (spec.md §4.5) ---

// PostLinear posts sum(coeffs[i]*vars[i]) rel rhs.
func (m *Model) PostLinear(coeffs []data.Val, vars []data.VarId, rel constraints.Relation, rhs data.Val) data.PropId {
	isInt := m.allInt(vars...) && rhs.IsInt()
	p := constraints.NewLinear(coeffs, m.viewsOf(vars), rel, rhs, isInt)
	return m.post(p, meta.Metadata{
		Kind: linearKind(rel), Vars: vars,
		Linear: &meta.Linear{Coeffs: coeffs, Vars: vars, Rel: relName(rel), RHS: rhs, IsInt: isInt},
	})
}

// PostLinearEq posts sum(coeffs[i]*vars[i]) == rhs, the signature
// spec.md §8's external interface names explicitly.
func (m *Model) PostLinearEq(coeffs []data.Val, vars []data.VarId, rhs data.Val) data.PropId {
	return m.PostLinear(coeffs, vars, constraints.Eq, rhs)
}

// PostLinearLeq posts sum(coeffs[i]*vars[i]) <= rhs.
func (m *Model) PostLinearLeq(coeffs []data.Val, vars []data.VarId, rhs data.Val) data.PropId {
	return m.PostLinear(coeffs, vars, constraints.Leq, rhs)
}

// PostLinearNeq posts sum(coeffs[i]*vars[i]) != rhs.
func (m *Model) PostLinearNeq(coeffs []data.Val, vars []data.VarId, rhs data.Val) data.PropId {
	return m.PostLinear(coeffs, vars, constraints.Neq, rhs)
}

// PostReifiedLinear posts a linear constraint reified by a 0/1 boolean
// variable (spec.md §4.5's reification requirement).
func (m *Model) PostReifiedLinear(coeffs []data.Val, vars []data.VarId, rel constraints.Relation, rhs data.Val, reif data.VarId) data.PropId {
	isInt := m.allInt(vars...) && rhs.IsInt()
	p := constraints.NewReifiedLinear(coeffs, m.viewsOf(vars), rel, rhs, isInt, views.Id(reif))
	allVars := append(append([]data.VarId{}, vars...), reif)
	return m.post(p, meta.Metadata{Kind: linearKind(rel), Vars: allVars})
}

func linearKind(rel constraints.Relation) meta.Kind {
	switch rel {
	case constraints.Leq:
		return meta.KindLinearLeq
	case constraints.Neq:
		return meta.KindLinearNeq
	default:
		return meta.KindLinearEq
	}
}

func relName(rel constraints.Relation) string {
	switch rel {
	case constraints.Leq:
		return "leq"
	case constraints.Neq:
		return "neq"
	default:
		return "eq"
	}
}

// --- arithmetic (spec.md §4.6) ---

// PostSum posts x + y == z.
func (m *Model) PostSum(x, y, z data.VarId) data.PropId {
	p := &constraints.Sum{X: views.Id(x), Y: views.Id(y), Z: views.Id(z), IsInt: m.allInt(x, y, z)}
	return m.post(p, meta.Metadata{Kind: meta.KindSum, Vars: []data.VarId{x, y, z}})
}

// PostDiff posts x - y == z.
func (m *Model) PostDiff(x, y, z data.VarId) data.PropId {
	p := constraints.Diff(views.Id(x), views.Id(y), views.Id(z), m.allInt(x, y, z))
	return m.post(p, meta.Metadata{Kind: meta.KindSum, Vars: []data.VarId{x, y, z}})
}

// PostProduct posts x * y == z.
func (m *Model) PostProduct(x, y, z data.VarId) data.PropId {
	p := &constraints.Product{X: views.Id(x), Y: views.Id(y), Z: views.Id(z), IsInt: m.allInt(x, y, z)}
	return m.post(p, meta.Metadata{Kind: meta.KindProduct, Vars: []data.VarId{x, y, z}})
}

// PostAbs posts z == |x|.
func (m *Model) PostAbs(x, z data.VarId) data.PropId {
	p := &constraints.Abs{X: views.Id(x), Z: views.Id(z), IsInt: m.allInt(x, z)}
	return m.post(p, meta.Metadata{Kind: meta.KindAbs, Vars: []data.VarId{x, z}})
}

// PostModulo posts z == x mod y. y is recorded as a divisor for the
// validator's zero-divisor check (spec.md §4.11).
func (m *Model) PostModulo(x, y, z data.VarId) data.PropId {
	p := &constraints.Modulo{X: views.Id(x), Y: views.Id(y), Z: views.Id(z)}
	id := m.post(p, meta.Metadata{Kind: meta.KindModulo, Vars: []data.VarId{x, y, z}, Divisors: []data.VarId{y}})
	m.divisors = append(m.divisors, struct {
		PropID data.PropId
		VarID  data.VarId
	}{id, y})
	return id
}

// PostMin posts r == min(vars).
func (m *Model) PostMin(vars []data.VarId, r data.VarId) data.PropId {
	p := &constraints.MinOfArray{Vars: m.viewsOf(vars), R: views.Id(r), IsInt: m.allInt(append(append([]data.VarId{}, vars...), r)...)}
	return m.post(p, meta.Metadata{Kind: meta.KindMin, Vars: append(append([]data.VarId{}, vars...), r)})
}

// PostMax posts r == max(vars).
func (m *Model) PostMax(vars []data.VarId, r data.VarId) data.PropId {
	p := &constraints.MaxOfArray{Vars: m.viewsOf(vars), R: views.Id(r), IsInt: m.allInt(append(append([]data.VarId{}, vars...), r)...)}
	return m.post(p, meta.Metadata{Kind: meta.KindMax, Vars: append(append([]data.VarId{}, vars...), r)})
}

// --- boolean (spec.md §4.6) ---

// PostAnd posts z == x && y over 0/1 variables.
func (m *Model) PostAnd(x, y, z data.VarId) data.PropId {
	p := &constraints.And{X: views.Id(x), Y: views.Id(y), Z: views.Id(z)}
	return m.post(p, meta.Metadata{Kind: meta.KindBoolAnd, Vars: []data.VarId{x, y, z}})
}

// PostOr posts z == x || y.
func (m *Model) PostOr(x, y, z data.VarId) data.PropId {
	p := &constraints.Or{X: views.Id(x), Y: views.Id(y), Z: views.Id(z)}
	return m.post(p, meta.Metadata{Kind: meta.KindBoolOr, Vars: []data.VarId{x, y, z}})
}

// PostNot posts z == !x.
func (m *Model) PostNot(x, z data.VarId) data.PropId {
	p := &constraints.Not{X: views.Id(x), Z: views.Id(z)}
	return m.post(p, meta.Metadata{Kind: meta.KindBoolNot, Vars: []data.VarId{x, z}})
}

// PostXor posts z == x xor y.
func (m *Model) PostXor(x, y, z data.VarId) data.PropId {
	p := &constraints.Xor{X: views.Id(x), Y: views.Id(y), Z: views.Id(z)}
	return m.post(p, meta.Metadata{Kind: meta.KindBoolXor, Vars: []data.VarId{x, y, z}})
}

// --- element/count/table/lex (spec.md §4.6) ---

// PostElement posts result == table[index].
func (m *Model) PostElement(index data.VarId, table []int32, result data.VarId) data.PropId {
	p := &constraints.Element{Index: views.Id(index), Table: table, Result: views.Id(result)}
	return m.post(p, meta.Metadata{Kind: meta.KindElement, Vars: []data.VarId{index, result}})
}

// PostCount posts countVar == |{i : vars[i] == target}|.
func (m *Model) PostCount(vars []data.VarId, target data.Val, countVar data.VarId) data.PropId {
	p := &constraints.Count{Vars: m.viewsOf(vars), Target: target, CountVar: views.Id(countVar)}
	return m.post(p, meta.Metadata{Kind: meta.KindCount, Vars: append(append([]data.VarId{}, vars...), countVar)})
}

// PostTable posts an extensional constraint: (vars...) must equal one
// row of rows.
func (m *Model) PostTable(vars []data.VarId, rows [][]int32) data.PropId {
	p := &constraints.Table{Vars: m.viewsOf(vars), Rows: rows}
	return m.post(p, meta.Metadata{Kind: meta.KindTable, Vars: vars})
}

// PostLex posts xs <=(<) ys lexicographically.
func (m *Model) PostLex(xs, ys []data.VarId, strict bool) data.PropId {
	p := &constraints.Lex{Xs: m.viewsOf(xs), Ys: m.viewsOf(ys), Strict: strict}
	return m.post(p, meta.Metadata{Kind: meta.KindLex, Vars: append(append([]data.VarId{}, xs...), ys...)})
}

// --- globals (spec.md §4.7, SPEC_FULL.md §4.1) ---

// PostAllDifferent posts a GAC all-different over vars.
func (m *Model) PostAllDifferent(vars []data.VarId) data.PropId {
	p := constraints.NewAllDifferent(m.viewsOf(vars))
	id := m.post(p, meta.Metadata{Kind: meta.KindAllDiff, Vars: vars})
	m.allDiffGroups = append(m.allDiffGroups, validate.AllDiffGroup{PropID: id, Vars: vars})
	return id
}

// PostGCC posts a global cardinality constraint: the count of each
// value v across vars must lie within [min[v], max[v]].
func (m *Model) PostGCC(vars []data.VarId, min, max map[int32]int) data.PropId {
	p := &constraints.GCC{Vars: m.viewsOf(vars), Min: min, Max: max}
	return m.post(p, meta.Metadata{Kind: meta.KindGCC, Vars: vars})
}

// PostCumulative posts a single-resource scheduling constraint over
// tasks (starts[i], durations[i], demands[i]) and a shared capacity.
func (m *Model) PostCumulative(starts []data.VarId, durations, demands []int32, capacity int32) data.PropId {
	p := &constraints.Cumulative{Starts: m.viewsOf(starts), Durations: durations, Demands: demands, Capacity: capacity}
	return m.post(p, meta.Metadata{Kind: meta.KindCumulative, Vars: starts})
}
