package domain

import (
	"fmt"

	"github.com/radevgit/selen-sub002/pkg/data"
)

// entry is a tagged domain: exactly one of Int/Float is active, matching
// data.Val's own int/float tagging. A tagged struct is used instead of an
// interface so the store's hot accessors avoid an indirect dispatch per
// spec.md's design notes on propagator/domain polymorphism.
type entry struct {
	kind  data.Kind
	i     *Int
	f     *Float
}

// Snapshot is the O(1) restorable state of a single variable, whichever
// concrete domain it is.
type Snapshot struct {
	kind data.Kind
	i    IntSnapshot
	f    FloatSnapshot
}

// Store owns every variable's domain. VarIds are issued in insertion
// order and never reused; ownership of domains is exclusive to the
// Store (propagators and views hold only VarIds), so snapshot/restore and
// aliasing are trivial — the "entity-index" pattern spec.md's design
// notes call out.
type Store struct {
	vars    []entry
	touched []data.VarId
	inTouch []bool // dedup guard so a var is only queued once per drain window
}

// NewStore creates an empty variable store.
func NewStore() *Store {
	return &Store{}
}

// NewInt creates an integer variable with domain [min, max] and returns
// its id. Construction never fails for in-range bounds; an out-of-range
// or swapped bound produces a sentinel empty domain that the validator
// (package validate) later reports.
func (s *Store) NewInt(min, max int32) data.VarId {
	return s.add(entry{kind: data.KindInt, i: NewInt(min, max)})
}

// NewIntFromValues creates an integer variable whose initial domain is
// exactly the given (deduplicated) values.
func (s *Store) NewIntFromValues(values []int32) data.VarId {
	return s.add(entry{kind: data.KindInt, i: NewIntFromValues(values)})
}

// NewFloat creates a float variable with an adaptively stepped domain.
func (s *Store) NewFloat(min, max float64) data.VarId {
	return s.add(entry{kind: data.KindFloat, f: NewFloat(min, max)})
}

// NewFloatWithStep creates a float variable with an explicit step
// instead of the adaptive one.
func (s *Store) NewFloatWithStep(min, max, step float64) data.VarId {
	return s.add(entry{kind: data.KindFloat, f: NewFloatWithStep(min, max, step)})
}

func (s *Store) add(e entry) data.VarId {
	id := data.VarId(len(s.vars))
	s.vars = append(s.vars, e)
	s.inTouch = append(s.inTouch, false)
	return id
}

// Len returns the number of variables in the store.
func (s *Store) Len() int { return len(s.vars) }

// Kind reports whether id is an integer or float variable.
func (s *Store) Kind(id data.VarId) data.Kind { return s.vars[id].kind }

// IsInt reports whether id is an integer variable.
func (s *Store) IsInt(id data.VarId) bool { return s.vars[id].kind == data.KindInt }

// Int returns the concrete sparse-set domain for an integer variable.
// Behavior is undefined (a programming error) if id is not an integer.
func (s *Store) Int(id data.VarId) *Int { return s.vars[id].i }

// Float returns the concrete interval domain for a float variable.
func (s *Store) Float(id data.VarId) *Float { return s.vars[id].f }

// IsEmpty reports whether id's domain has failed.
func (s *Store) IsEmpty(id data.VarId) bool {
	e := s.vars[id]
	if e.kind == data.KindInt {
		return e.i.IsEmpty()
	}
	return e.f.IsEmpty()
}

// IsFixed reports whether id has narrowed to a single value (size-1
// integer domain, or float width <= FixedThreshold). A float domain
// one step wide is not reported fixed unless its step is within
// FixedThreshold.
func (s *Store) IsFixed(id data.VarId) bool {
	e := s.vars[id]
	if e.kind == data.KindInt {
		return e.i.IsFixed()
	}
	return e.f.IsFixed()
}

// Min returns the current lower bound as a Val.
func (s *Store) Min(id data.VarId) data.Val {
	e := s.vars[id]
	if e.kind == data.KindInt {
		return data.Int(e.i.Min())
	}
	return data.Float(e.f.Min())
}

// Max returns the current upper bound as a Val.
func (s *Store) Max(id data.VarId) data.Val {
	e := s.vars[id]
	if e.kind == data.KindInt {
		return data.Int(e.i.Max())
	}
	return data.Float(e.f.Max())
}

// Value returns the fixed value of id. Behavior is undefined if id is not
// fixed.
func (s *Store) Value(id data.VarId) data.Val { return s.Min(id) }

func (s *Store) markTouched(id data.VarId) {
	if s.inTouch[id] {
		return
	}
	s.inTouch[id] = true
	s.touched = append(s.touched, id)
}

// DrainTouched returns every VarId whose domain changed since the last
// call and clears the change set. The propagator kernel polls this after
// every Prune to compute which propagators to re-dirty.
func (s *Store) DrainTouched() []data.VarId {
	if len(s.touched) == 0 {
		return nil
	}
	out := s.touched
	for _, id := range out {
		s.inTouch[id] = false
	}
	s.touched = nil
	return out
}

// TrySetMin tightens id's lower bound to v if v is an improvement.
// Returns (changed, ok) where ok is false if the tightening emptied the
// domain (propagation failure).
func (s *Store) TrySetMin(id data.VarId, v data.Val) (changed bool, ok bool) {
	e := s.vars[id]
	if e.kind == data.KindInt {
		iv := ceilInt(v.AsFloat())
		if iv <= e.i.Min() {
			return false, true
		}
		e.i.RemoveBelow(iv)
		s.markTouched(id)
		return true, !e.i.IsEmpty()
	}
	fv := v.AsFloat()
	if e.f.IsFixed() {
		// A fixed variable is treated as a constant for the rest of the
		// solve (resolved open question); do not perturb it further. A
		// demand within tolerance of the fixed value is a no-op success;
		// anything stronger is a genuine contradiction with the fixed
		// value and must fail, not silently succeed.
		return false, fv <= e.f.Min()+equalityTolerance
	}
	if fv <= e.f.Min() {
		return false, true
	}
	e.f.RemoveBelow(fv)
	s.markTouched(id)
	return true, !e.f.IsEmpty()
}

// TrySetMax tightens id's upper bound to v if v is an improvement.
func (s *Store) TrySetMax(id data.VarId, v data.Val) (changed bool, ok bool) {
	e := s.vars[id]
	if e.kind == data.KindInt {
		iv := floorInt(v.AsFloat())
		if iv >= e.i.Max() {
			return false, true
		}
		e.i.RemoveAbove(iv)
		s.markTouched(id)
		return true, !e.i.IsEmpty()
	}
	fv := v.AsFloat()
	if e.f.IsFixed() {
		// Symmetric with TrySetMin: only a demand within tolerance of the
		// fixed value no-op-succeeds; a stronger demand is a contradiction.
		return false, fv >= e.f.Max()-equalityTolerance
	}
	if fv >= e.f.Max() {
		return false, true
	}
	e.f.RemoveAbove(fv)
	s.markTouched(id)
	return true, !e.f.IsEmpty()
}

// RemoveValue removes a single value from an integer variable's domain.
// Used by <>, element, and GAC filtering. ok is false if the domain
// became empty.
func (s *Store) RemoveValue(id data.VarId, v int32) (changed bool, ok bool) {
	e := s.vars[id]
	if e.i.Remove(v) {
		s.markTouched(id)
		return true, !e.i.IsEmpty()
	}
	return false, !e.i.IsEmpty()
}

// Fix narrows id to exactly v. For integers v must be an int Val; for
// floats it is rounded to the nearest step.
func (s *Store) Fix(id data.VarId, v data.Val) (ok bool) {
	e := s.vars[id]
	if e.kind == data.KindInt {
		e.i.RemoveAllBut(v.AsInt())
		s.markTouched(id)
		return !e.i.IsEmpty()
	}
	e.f.Assign(v.AsFloat())
	s.markTouched(id)
	return !e.f.IsEmpty()
}

func ceilInt(f float64) int32 {
	c := int32(f)
	if float64(c) < f {
		c++
	}
	return c
}

func floorInt(f float64) int32 {
	c := int32(f)
	if float64(c) > f {
		c--
	}
	return c
}

// Snapshot captures id's domain for later restore.
func (s *Store) Snapshot(id data.VarId) Snapshot {
	e := s.vars[id]
	if e.kind == data.KindInt {
		return Snapshot{kind: data.KindInt, i: e.i.Snapshot()}
	}
	return Snapshot{kind: data.KindFloat, f: e.f.Snapshot()}
}

// Restore undoes every change to id since the matching Snapshot.
func (s *Store) Restore(id data.VarId, snap Snapshot) {
	e := s.vars[id]
	if snap.kind == data.KindInt {
		e.i.Restore(snap.i)
	} else {
		e.f.Restore(snap.f)
	}
}

// SnapshotAll captures every variable's domain, for the search driver's
// trail frames.
func (s *Store) SnapshotAll() []Snapshot {
	out := make([]Snapshot, len(s.vars))
	for id := range s.vars {
		out[id] = s.Snapshot(data.VarId(id))
	}
	return out
}

// RestoreAll restores every variable from a prior SnapshotAll.
func (s *Store) RestoreAll(snaps []Snapshot) {
	for id, snap := range snaps {
		s.Restore(data.VarId(id), snap)
	}
}

func (s *Store) String() string {
	return fmt.Sprintf("Store[%d vars]", len(s.vars))
}
