// Package views implements zero-cost, read-through lenses over a
// domain.Store variable (or a constant), so propagators can be written
// once against the View interface and reused for "x", "-x", "x+k", and
// "k*x" without the kernel ever allocating a synthetic variable.
//
// Views never allocate and never get stored as if they were variables
// (spec.md's design notes are explicit on both points); every
// implementation here is a small value type.
package views

import "github.com/radevgit/selen-sub002/pkg/data"

// Store is the narrow slice of domain.Store a view needs: reading and
// tightening bounds by VarId. domain.Store satisfies it; views does not
// import domain directly so propagators can depend on both without a
// cycle.
type Store interface {
	IsInt(id data.VarId) bool
	Min(id data.VarId) data.Val
	Max(id data.VarId) data.Val
	TrySetMin(id data.VarId, v data.Val) (changed bool, ok bool)
	TrySetMax(id data.VarId, v data.Val) (changed bool, ok bool)
}

// View is a transparent transformation of a variable's domain, or a
// constant, exposing the same min/max/write contract a raw variable
// does.
type View interface {
	Min(s Store) data.Val
	Max(s Store) data.Val
	TrySetMin(s Store, v data.Val) (changed bool, ok bool)
	TrySetMax(s Store, v data.Val) (changed bool, ok bool)
	IsInt(s Store) bool
	// VarId returns the underlying variable and true, or false for a
	// constant view.
	VarId() (data.VarId, bool)
}

// Identity is the trivial view over a raw variable.
type Identity struct{ ID data.VarId }

func Id(id data.VarId) Identity { return Identity{ID: id} }

func (v Identity) Min(s Store) data.Val { return s.Min(v.ID) }
func (v Identity) Max(s Store) data.Val { return s.Max(v.ID) }
func (v Identity) TrySetMin(s Store, val data.Val) (bool, bool) {
	return s.TrySetMin(v.ID, val)
}
func (v Identity) TrySetMax(s Store, val data.Val) (bool, bool) {
	return s.TrySetMax(v.ID, val)
}
func (v Identity) IsInt(s Store) bool         { return s.IsInt(v.ID) }
func (v Identity) VarId() (data.VarId, bool)  { return v.ID, true }

// Const is a view over a fixed value; writes to it always succeed as
// no-ops if consistent, and fail if they would contradict the constant.
type Const struct{ V data.Val }

func Constant(v data.Val) Const { return Const{V: v} }

func (v Const) Min(Store) data.Val { return v.V }
func (v Const) Max(Store) data.Val { return v.V }
func (v Const) TrySetMin(_ Store, val data.Val) (bool, bool) {
	// A constant can only ever satisfy a tightening that doesn't exceed
	// it; anything stronger is a contradiction, not a no-op.
	return false, val.Cmp(v.V) <= 0
}
func (v Const) TrySetMax(_ Store, val data.Val) (bool, bool) {
	return false, val.Cmp(v.V) >= 0
}
func (v Const) IsInt(Store) bool        { return v.V.IsInt() }
func (v Const) VarId() (data.VarId, bool) { return 0, false }

// Opposite mirrors bounds: Opposite(x).Min() == -x.Max(), and writing its
// min inverse-transforms into writing x's max.
type Opposite struct{ X View }

func Neg(x View) Opposite { return Opposite{X: x} }

func (v Opposite) Min(s Store) data.Val { return v.X.Max(s).Neg() }
func (v Opposite) Max(s Store) data.Val { return v.X.Min(s).Neg() }
func (v Opposite) TrySetMin(s Store, val data.Val) (bool, bool) {
	return v.X.TrySetMax(s, val.Neg())
}
func (v Opposite) TrySetMax(s Store, val data.Val) (bool, bool) {
	return v.X.TrySetMin(s, val.Neg())
}
func (v Opposite) IsInt(s Store) bool        { return v.X.IsInt(s) }
func (v Opposite) VarId() (data.VarId, bool) { return v.X.VarId() }

// Plus is X + K.
type Plus struct {
	X View
	K data.Val
}

func Shift(x View, k data.Val) Plus { return Plus{X: x, K: k} }

func (v Plus) Min(s Store) data.Val { return v.X.Min(s).Add(v.K) }
func (v Plus) Max(s Store) data.Val { return v.X.Max(s).Add(v.K) }
func (v Plus) TrySetMin(s Store, val data.Val) (bool, bool) {
	return v.X.TrySetMin(s, val.Sub(v.K))
}
func (v Plus) TrySetMax(s Store, val data.Val) (bool, bool) {
	return v.X.TrySetMax(s, val.Sub(v.K))
}
func (v Plus) IsInt(s Store) bool        { return v.X.IsInt(s) }
func (v Plus) VarId() (data.VarId, bool) { return v.X.VarId() }

// Times is K * X. Writes branch on the sign of K: a negative coefficient
// inverts which bound (min/max) of X a given write targets. K == 0
// degenerates to a constant view of 0.
type Times struct {
	X View
	K data.Val
}

func Scale(x View, k data.Val) View {
	if k.AsFloat() == 0 {
		return Constant(data.Int(0))
	}
	return Times{X: x, K: k}
}

func (v Times) Min(s Store) data.Val {
	if v.K.AsFloat() > 0 {
		return v.X.Min(s).Mul(v.K)
	}
	return v.X.Max(s).Mul(v.K)
}
func (v Times) Max(s Store) data.Val {
	if v.K.AsFloat() > 0 {
		return v.X.Max(s).Mul(v.K)
	}
	return v.X.Min(s).Mul(v.K)
}
func (v Times) TrySetMin(s Store, val data.Val) (bool, bool) {
	if v.K.AsFloat() > 0 {
		return v.X.TrySetMin(s, val.Div(v.K))
	}
	return v.X.TrySetMax(s, val.Div(v.K))
}
func (v Times) TrySetMax(s Store, val data.Val) (bool, bool) {
	if v.K.AsFloat() > 0 {
		return v.X.TrySetMax(s, val.Div(v.K))
	}
	return v.X.TrySetMin(s, val.Div(v.K))
}
func (v Times) IsInt(s Store) bool        { return v.X.IsInt(s) }
func (v Times) VarId() (data.VarId, bool) { return v.X.VarId() }

// NextView shifts x forward by its fixed step (1 for integers, the
// domain's adaptive step for floats), so a strict "<" can be expressed
// as NextView(x) <= y without a dedicated strict-inequality propagator.
// Prev is the symmetric predecessor shift. Both are expressed in terms
// of Plus, reusing its sign-free, allocation-free write path.
func NextView(x View, step data.Val) View { return Plus{X: x, K: step} }

// PrevView shifts x backward by its fixed step.
func PrevView(x View, step data.Val) View { return Plus{X: x, K: step.Neg()} }
