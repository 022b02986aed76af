package constraints

import (
	"math"

	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

// Sum enforces x + y == z with bidirectional bounds propagation: any
// narrowing of two operands narrows the third (spec.md §4.6).
type Sum struct {
	X, Y, Z views.View
	IsInt   bool
}

func (c *Sum) TriggerVars() []data.VarId { return viewVars(c.X, c.Y, c.Z) }

func (c *Sum) Prune(s *domain.Store) error {
	xmin, xmax := c.X.Min(s).AsFloat(), c.X.Max(s).AsFloat()
	ymin, ymax := c.Y.Min(s).AsFloat(), c.Y.Max(s).AsFloat()
	zmin, zmax := c.Z.Min(s).AsFloat(), c.Z.Max(s).AsFloat()

	if err := tighten(s, c.Z, c.IsInt, xmin+ymin, xmax+ymax); err != nil {
		return err
	}
	if err := tighten(s, c.X, c.IsInt, zmin-ymax, zmax-ymin); err != nil {
		return err
	}
	if err := tighten(s, c.Y, c.IsInt, zmin-xmax, zmax-xmin); err != nil {
		return err
	}
	return nil
}

// Diff enforces x - y == z, expressed as Sum(z, y, x) so it reuses the
// same derivation without duplicating it.
func Diff(x, y, z views.View, isInt bool) propagate.Prop {
	return &Sum{X: z, Y: y, Z: x, IsInt: isInt}
}

// Product enforces x * y == z with interval multiplication, the
// nonlinear analogue of Sum. Division back onto x or y is skipped
// whenever the other operand's interval straddles zero, matching the
// same "uninformative bound" robustness rule Linear applies to
// infinite terms.
type Product struct {
	X, Y, Z views.View
	IsInt   bool
}

func (c *Product) TriggerVars() []data.VarId { return viewVars(c.X, c.Y, c.Z) }

func (c *Product) Prune(s *domain.Store) error {
	xmin, xmax := c.X.Min(s).AsFloat(), c.X.Max(s).AsFloat()
	ymin, ymax := c.Y.Min(s).AsFloat(), c.Y.Max(s).AsFloat()

	zlo, zhi := intervalProduct(xmin, xmax, ymin, ymax)
	if err := tighten(s, c.Z, c.IsInt, zlo, zhi); err != nil {
		return err
	}

	zmin, zmax := c.Z.Min(s).AsFloat(), c.Z.Max(s).AsFloat()
	if !straddlesZero(ymin, ymax) {
		lo, hi := intervalDivide(zmin, zmax, ymin, ymax)
		if err := tighten(s, c.X, c.IsInt, lo, hi); err != nil {
			return err
		}
	}
	if !straddlesZero(xmin, xmax) {
		lo, hi := intervalDivide(zmin, zmax, xmin, xmax)
		if err := tighten(s, c.Y, c.IsInt, lo, hi); err != nil {
			return err
		}
	}
	return nil
}

// Abs enforces z == |x|.
type Abs struct {
	X, Z  views.View
	IsInt bool
}

func (c *Abs) TriggerVars() []data.VarId { return viewVars(c.X, c.Z) }

func (c *Abs) Prune(s *domain.Store) error {
	xmin, xmax := c.X.Min(s).AsFloat(), c.X.Max(s).AsFloat()
	lo, hi := absInterval(xmin, xmax)
	if err := tighten(s, c.Z, c.IsInt, lo, hi); err != nil {
		return err
	}
	zmax := c.Z.Max(s).AsFloat()
	// x in [-zmax, zmax], further intersected with x's own sign region
	// already reflected in xmin/xmax; this only ever tightens.
	if xmin >= 0 {
		if err := tighten(s, c.X, c.IsInt, xmin, zmax); err != nil {
			return err
		}
	} else if xmax <= 0 {
		if err := tighten(s, c.X, c.IsInt, -zmax, xmax); err != nil {
			return err
		}
	}
	return nil
}

// Modulo enforces z == x mod y for integer variables, with the
// sign-of-dividend convention pkg/data.Val.Mod uses. Propagation is
// bounds-only: z is clamped to (-|y|max, |y|max); x and y themselves
// are not narrowed, matching the weak-but-sound modulo propagation the
// teacher's own arithmetic links use (see fd_arith.go's handling of
// ArithmeticModulo, which also only narrows the result).
type Modulo struct {
	X, Y, Z views.View
}

func (c *Modulo) TriggerVars() []data.VarId { return viewVars(c.X, c.Y, c.Z) }

func (c *Modulo) Prune(s *domain.Store) error {
	ymin, ymax := c.Y.Min(s).AsFloat(), c.Y.Max(s).AsFloat()
	bound := math.Max(math.Abs(ymin), math.Abs(ymax))
	if bound == 0 {
		return propagate.ErrFail
	}
	return tighten(s, c.Z, true, -(bound - 1), bound-1)
}

// MinOfArray/MaxOfArray below are the only min/max propagators; a
// two-operand min or max is an array of length two (spec.md §4.6's
// "min/max over a list" requirement).

// MinOfArray enforces r == min(vars), bounds-consistent: r is clamped
// to [min_i min(Xi), min_i max(Xi)], and every Xi is floored at r.min.
type MinOfArray struct {
	Vars  []views.View
	R     views.View
	IsInt bool
}

func (c *MinOfArray) TriggerVars() []data.VarId { return viewVars(append(append([]views.View{}, c.Vars...), c.R)...) }

func (c *MinOfArray) Prune(s *domain.Store) error {
	a, b := c.Vars[0].Min(s).AsFloat(), c.Vars[0].Max(s).AsFloat()
	for _, v := range c.Vars[1:] {
		if m := v.Min(s).AsFloat(); m < a {
			a = m
		}
		if m := v.Max(s).AsFloat(); m < b {
			b = m
		}
	}
	if a > b {
		return propagate.ErrFail
	}
	if err := tighten(s, c.R, c.IsInt, a, b); err != nil {
		return err
	}
	rMin := c.R.Min(s).AsFloat()
	for _, v := range c.Vars {
		if _, ok := v.TrySetMin(s, valOf(c.IsInt, rMin)); !ok {
			return propagate.ErrFail
		}
	}
	return nil
}

// MaxOfArray enforces r == max(vars), symmetric to MinOfArray.
type MaxOfArray struct {
	Vars  []views.View
	R     views.View
	IsInt bool
}

func (c *MaxOfArray) TriggerVars() []data.VarId { return viewVars(append(append([]views.View{}, c.Vars...), c.R)...) }

func (c *MaxOfArray) Prune(s *domain.Store) error {
	a, b := c.Vars[0].Min(s).AsFloat(), c.Vars[0].Max(s).AsFloat()
	for _, v := range c.Vars[1:] {
		if m := v.Min(s).AsFloat(); m > a {
			a = m
		}
		if m := v.Max(s).AsFloat(); m > b {
			b = m
		}
	}
	if a > b {
		return propagate.ErrFail
	}
	if err := tighten(s, c.R, c.IsInt, a, b); err != nil {
		return err
	}
	rMax := c.R.Max(s).AsFloat()
	for _, v := range c.Vars {
		if _, ok := v.TrySetMax(s, valOf(c.IsInt, rMax)); !ok {
			return propagate.ErrFail
		}
	}
	return nil
}

// --- shared interval-arithmetic helpers ---

func viewVars(vs ...views.View) []data.VarId {
	out := make([]data.VarId, 0, len(vs))
	for _, v := range vs {
		if id, ok := v.VarId(); ok {
			out = append(out, id)
		}
	}
	return out
}

// tighten intersects v's domain with [lo, hi], failing if that would
// empty it.
func tighten(s *domain.Store, v views.View, isInt bool, lo, hi float64) error {
	if isInt {
		lo = math.Ceil(lo - 1e-9)
		hi = math.Floor(hi + 1e-9)
	}
	if _, ok := v.TrySetMin(s, valOf(isInt, lo)); !ok {
		return propagate.ErrFail
	}
	if _, ok := v.TrySetMax(s, valOf(isInt, hi)); !ok {
		return propagate.ErrFail
	}
	return nil
}

func intervalProduct(xmin, xmax, ymin, ymax float64) (lo, hi float64) {
	candidates := [4]float64{xmin * ymin, xmin * ymax, xmax * ymin, xmax * ymax}
	lo, hi = candidates[0], candidates[0]
	for _, v := range candidates[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func intervalDivide(xmin, xmax, ymin, ymax float64) (lo, hi float64) {
	candidates := [4]float64{xmin / ymin, xmin / ymax, xmax / ymin, xmax / ymax}
	lo, hi = candidates[0], candidates[0]
	for _, v := range candidates[1:] {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

func absInterval(xmin, xmax float64) (lo, hi float64) {
	if xmin >= 0 {
		return xmin, xmax
	}
	if xmax <= 0 {
		return -xmax, -xmin
	}
	return 0, math.Max(-xmin, xmax)
}

func straddlesZero(lo, hi float64) bool { return lo <= 0 && hi >= 0 }
