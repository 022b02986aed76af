// Package constraints implements every propagator in spec.md §4.5–§4.7:
// linear relations, arithmetic/logical/global shapes, and the
// AllDifferent GAC filter. Each is a Prop (see package propagate) that
// reads bounds through package views and writes through domain.Store.
package constraints

import (
	"math"

	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

// Relation is the comparison a linear or arithmetic propagator enforces.
type Relation int

const (
	// Eq enforces equality.
	Eq Relation = iota
	// Leq enforces <=.
	Leq
	// Neq enforces disequality.
	Neq
)

// Linear propagates sum(coeffs[i] * vars[i]) `rel` rhs, optionally
// reified by a 0/1 boolean view. It is bounds-consistent: for each
// nonzero-coefficient term it derives the interval every other term's
// current bounds imply, then tightens that one variable (spec.md §4.5).
type Linear struct {
	coeffs []data.Val
	vars   []views.View
	rel    Relation
	rhs    data.Val
	reif   views.View // nil (interface zero value) when not reified
	isInt  bool
}

// NewLinear builds an unreified linear propagator.
func NewLinear(coeffs []data.Val, vars []views.View, rel Relation, rhs data.Val, isInt bool) *Linear {
	return &Linear{coeffs: coeffs, vars: vars, rel: rel, rhs: rhs, isInt: isInt}
}

// NewReifiedLinear builds a linear propagator whose truth is bound to a
// 0/1 boolean view: b=1 enforces the raw constraint; b=0 enforces its
// negation where tractable; if b is unfixed, the propagator tries to
// deduce it from the current interval sum.
func NewReifiedLinear(coeffs []data.Val, vars []views.View, rel Relation, rhs data.Val, isInt bool, reif views.View) *Linear {
	return &Linear{coeffs: coeffs, vars: vars, rel: rel, rhs: rhs, isInt: isInt, reif: reif}
}

// TriggerVars implements propagate.Prop.
func (l *Linear) TriggerVars() []data.VarId {
	out := make([]data.VarId, 0, len(l.vars)+1)
	for _, v := range l.vars {
		if id, ok := v.VarId(); ok {
			out = append(out, id)
		}
	}
	if l.reif != nil {
		if id, ok := l.reif.VarId(); ok {
			out = append(out, id)
		}
	}
	return out
}

// termBounds returns [c*x.min, c*x.max] as (lo, hi) with endpoints
// swapped if c < 0.
func termBounds(s *domain.Store, c data.Val, x views.View) (lo, hi float64) {
	a := x.Min(s).AsFloat() * c.AsFloat()
	b := x.Max(s).AsFloat() * c.AsFloat()
	if a <= b {
		return a, b
	}
	return b, a
}

// Prune implements propagate.Prop.
func (l *Linear) Prune(s *domain.Store) error {
	if l.reif != nil {
		return l.pruneReified(s)
	}
	return l.pruneRaw(s, l.rel)
}

func (l *Linear) pruneReified(s *domain.Store) error {
	reifMin := l.reif.Min(s).AsFloat()
	reifMax := l.reif.Max(s).AsFloat()
	switch {
	case reifMin == 1 && reifMax == 1:
		return l.pruneRaw(s, l.rel)
	case reifMin == 0 && reifMax == 0 && l.rel != Leq:
		return l.pruneRaw(s, negate(l.rel))
	default:
		// Try to deduce b from the current interval sum.
		lo, hi := 0.0, 0.0
		for i, c := range l.coeffs {
			a, b := termBounds(s, c, l.vars[i])
			lo += a
			hi += b
		}
		rhs := l.rhs.AsFloat()
		switch l.rel {
		case Leq:
			if hi <= rhs {
				if _, ok := l.reif.TrySetMin(s, data.Int(1)); !ok {
					return propagate.ErrFail
				}
			} else if lo > rhs {
				if _, ok := l.reif.TrySetMax(s, data.Int(0)); !ok {
					return propagate.ErrFail
				}
			}
		case Eq:
			if lo == hi && lo == rhs {
				if _, ok := l.reif.TrySetMin(s, data.Int(1)); !ok {
					return propagate.ErrFail
				}
			} else if hi < rhs || lo > rhs {
				if _, ok := l.reif.TrySetMax(s, data.Int(0)); !ok {
					return propagate.ErrFail
				}
			}
		case Neq:
			if lo == hi && lo == rhs {
				if _, ok := l.reif.TrySetMax(s, data.Int(0)); !ok {
					return propagate.ErrFail
				}
			} else if hi < rhs || lo > rhs {
				if _, ok := l.reif.TrySetMin(s, data.Int(1)); !ok {
					return propagate.ErrFail
				}
			}
		}
		return nil
	}
}

// negate is only meaningful for Eq/Neq: <='s negation (strict >) isn't a
// relation this propagator's bounds derivation can express directly, so
// pruneReified never calls negate for Leq.
func negate(r Relation) Relation {
	switch r {
	case Eq:
		return Neq
	case Neq:
		return Eq
	}
	return r
}

// pruneRaw applies the bounds-consistency derivation for one relation.
func (l *Linear) pruneRaw(s *domain.Store, rel Relation) error {
	if rel == Neq {
		return l.pruneNeq(s)
	}

	n := len(l.vars)
	rhs := l.rhs.AsFloat()
	for i := 0; i < n; i++ {
		ci := l.coeffs[i].AsFloat()
		if ci == 0 {
			continue
		}
		lo, hi := 0.0, 0.0
		skip := false
		for j := 0; j < n; j++ {
			if j == i {
				continue
			}
			a, b := termBounds(s, l.coeffs[j], l.vars[j])
			if !l.isInt && (math.IsInf(a, 0) || math.IsInf(b, 0)) {
				// Float robustness: an infinite other-term bound makes
				// the derived bound uninformative; skip this variable.
				skip = true
				break
			}
			lo += a
			hi += b
		}
		if skip {
			continue
		}

		// x_i in [(k-U)/c, (k-L)/c], endpoints swapped if c < 0.
		newMin := (rhs - hi) / ci
		newMax := (rhs - lo) / ci
		if newMin > newMax {
			newMin, newMax = newMax, newMin
		}
		if l.isInt {
			newMin = math.Ceil(newMin - 1e-9)
			newMax = math.Floor(newMax + 1e-9)
		}

		if rel == Eq || signMatchesLowerBound(ci, rel) {
			v := valOf(l.isInt, newMin)
			if _, ok := l.vars[i].TrySetMin(s, v); !ok {
				return propagate.ErrFail
			}
		}
		if rel == Eq || !signMatchesLowerBound(ci, rel) {
			v := valOf(l.isInt, newMax)
			if _, ok := l.vars[i].TrySetMax(s, v); !ok {
				return propagate.ErrFail
			}
		}
	}
	return nil
}

// signMatchesLowerBound reports whether, for a <= relation with
// coefficient sign ci, the *lower* bound of x_i is the one the relation
// constrains (true) as opposed to the upper bound (false). For c > 0 a
// <= constraint bounds x_i from above; for c < 0 it bounds it from
// below.
func signMatchesLowerBound(ci float64, rel Relation) bool {
	if rel != Leq {
		return false
	}
	return ci < 0
}

func valOf(isInt bool, f float64) data.Val {
	if isInt {
		return data.Int(int32(math.Round(f)))
	}
	return data.Float(f)
}

// pruneNeq only fires once every variable but one is fixed, then
// excludes the forbidden scalar from the remaining variable's domain.
// Only an integer remaining variable is narrowed; a float one is left
// unchanged.
func (l *Linear) pruneNeq(s *domain.Store) error {
	n := len(l.vars)
	freeIdx := -1
	sumFixed := 0.0
	for i := 0; i < n; i++ {
		id, ok := l.vars[i].VarId()
		fixed := !ok || s.IsFixed(id)
		if !fixed {
			if freeIdx != -1 {
				return nil // more than one free variable: nothing to do yet
			}
			freeIdx = i
			continue
		}
		sumFixed += l.vars[i].Min(s).AsFloat() * l.coeffs[i].AsFloat()
	}
	if freeIdx == -1 {
		// All fixed: check consistency directly.
		total := 0.0
		for i := 0; i < n; i++ {
			total += l.vars[i].Min(s).AsFloat() * l.coeffs[i].AsFloat()
		}
		if total == l.rhs.AsFloat() {
			return propagate.ErrFail
		}
		return nil
	}
	c := l.coeffs[freeIdx].AsFloat()
	forbidden := (l.rhs.AsFloat() - sumFixed) / c
	if l.isInt {
		fv := int32(math.Round(forbidden))
		if float64(fv) != forbidden {
			return nil // forbidden value isn't representable; nothing to exclude
		}
		id, ok := l.vars[freeIdx].VarId()
		if !ok {
			return nil
		}
		if _, ok := s.RemoveValue(id, fv); !ok {
			return propagate.ErrFail
		}
	}
	return nil
}
