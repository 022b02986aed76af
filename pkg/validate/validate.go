// Package validate implements the pre-solve model sanity checks
// (spec.md §4.11), grounded on
// original_source/src/core/validation.rs's ModelValidator: domain
// sanity, propagator variable-reference sanity, obvious AllDifferent
// conflicts, propagator parameter arity, and division/modulo divisors
// that still contain zero. It is the only place modelling errors are
// meant to surface (spec.md §7) — everything here runs once, before
// any search, and produces a structured Issue the caller (package
// solver) turns into a solver.Error.
package validate

import (
	"fmt"

	"github.com/radevgit/selen-sub002/internal/xslice"
	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/meta"
)

// Kind mirrors the subset of solver.ErrorKind a validation issue can
// produce. It is a separate type (rather than importing package
// solver's ErrorKind) so validate has no dependency on solver — solver
// depends on validate, never the reverse.
type Kind string

const (
	InvalidDomain            Kind = "InvalidDomain"
	InvalidVariableReference Kind = "InvalidVariableReference"
	InvalidConstraint        Kind = "InvalidConstraint"
	ConflictingConstraints   Kind = "ConflictingConstraints"
)

// Issue is one validation failure.
type Issue struct {
	Kind    Kind
	Message string
	VarID   *data.VarId
	PropID  *data.PropId
}

// AllDiffGroup is the variable list of one posted AllDifferent
// constraint, supplied by package solver (which is the only place that
// knows the mapping from a posted propagator back to its raw VarIds
// for this check — views may alias or shift a variable, so the solver
// records the group at post time rather than validate trying to
// unpick a views.View).
type AllDiffGroup struct {
	PropID data.PropId
	Vars   []data.VarId
}

// Input is everything the validator needs, assembled once by
// package solver before the first solve.
type Input struct {
	Store         *domain.Store
	Registry      *meta.Registry
	AllDiffGroups []AllDiffGroup
	// Divisors lists, for every division/modulo propagator, the VarId
	// of its divisor operand.
	Divisors []struct {
		PropID data.PropId
		VarID  data.VarId
	}
}

// Validate runs every check in spec.md §4.11 and returns the first
// Issue found, or nil if the model is sane. Checks run in the order
// listed so the earliest, most fundamental problem (a bad domain) is
// reported before a downstream symptom of it.
func Validate(in Input) *Issue {
	if issue := checkDomains(in.Store); issue != nil {
		return issue
	}
	if issue := checkVarReferences(in.Store, in.Registry); issue != nil {
		return issue
	}
	if issue := checkAllDifferentConflicts(in.Store, in.AllDiffGroups); issue != nil {
		return issue
	}
	if issue := checkArity(in.Registry); issue != nil {
		return issue
	}
	if issue := checkDivisors(in.Store, in.Divisors); issue != nil {
		return issue
	}
	return nil
}

// checkArity implements spec.md §4.11 point 4: parameter arity per
// propagator kind. Min/Max require at least one input variable besides
// the result they narrow (constraints.MinOfArray/MaxOfArray index
// Vars[0] unconditionally); an empty input array is a modelling error
// to catch here, not a panic to let the propagator discover.
func checkArity(r *meta.Registry) *Issue {
	for i, m := range r.All() {
		switch m.Kind {
		case meta.KindMin, meta.KindMax:
			// Vars is the input array plus the trailing result variable
			// (see solver.Model's PostMin/PostMax), so a non-empty input
			// array means len(Vars) >= 2.
			if len(m.Vars) < 2 {
				pid := data.PropId(i)
				return &Issue{Kind: InvalidConstraint, Message: fmt.Sprintf("%s requires a non-empty input variable list", m.Kind), PropID: &pid}
			}
		}
	}
	return nil
}

func checkDomains(s *domain.Store) *Issue {
	for i := 0; i < s.Len(); i++ {
		id := data.VarId(i)
		if s.IsEmpty(id) {
			return &Issue{Kind: InvalidDomain, Message: "domain is empty or has swapped bounds", VarID: &id}
		}
		if s.IsInt(id) {
			dom := s.Int(id)
			if int64(dom.Max())-int64(dom.Min())+1 > domain.MaxDomainSize {
				return &Issue{Kind: InvalidDomain, Message: fmt.Sprintf("integer universe exceeds MaxDomainSize (%d)", domain.MaxDomainSize), VarID: &id}
			}
		} else {
			f := s.Float(id)
			if isNonFinite(f.Min()) || isNonFinite(f.Max()) {
				continue // infinite bounds are legal; NaN is caught by IsEmpty at construction
			}
		}
	}
	return nil
}

func isNonFinite(v float64) bool { return v != v } // NaN check without importing math here

func checkVarReferences(s *domain.Store, r *meta.Registry) *Issue {
	n := s.Len()
	// r.AllVars() is already deduped and sorted (xslice.Dedup), so the
	// smallest and largest referenced ids bound the whole registry in
	// one pass before falling back to a per-entry scan to name the
	// offending propagator.
	if vars := r.AllVars(); len(vars) > 0 {
		if int(xslice.Min(vars)) >= 0 && int(xslice.Max(vars)) < n {
			return nil
		}
	}
	for i, m := range r.All() {
		pid := data.PropId(i)
		for _, v := range m.Vars {
			if int(v) < 0 || int(v) >= n {
				return &Issue{Kind: InvalidVariableReference, Message: fmt.Sprintf("%s references unknown variable", m.Kind), VarID: &v, PropID: &pid}
			}
		}
	}
	return nil
}

// checkAllDifferentConflicts implements spec.md §4.11 point 3: two
// fixed variables sharing a value, or a union of domains too small to
// cover every variable.
func checkAllDifferentConflicts(s *domain.Store, groups []AllDiffGroup) *Issue {
	for _, g := range groups {
		fixedVals := make(map[int32]data.VarId)
		union := make(map[int32]bool)
		for _, id := range g.Vars {
			dom := s.Int(id)
			if dom.IsFixed() {
				v := dom.Min()
				if other, dup := fixedVals[v]; dup {
					pid := g.PropID
					return &Issue{Kind: ConflictingConstraints, Message: fmt.Sprintf("all-different: variables %d and %d both fixed to %d", other, id, v), PropID: &pid}
				}
				fixedVals[v] = id
			}
			dom.Iter(func(v int32) { union[v] = true })
		}
		if len(union) < len(g.Vars) {
			pid := g.PropID
			return &Issue{Kind: ConflictingConstraints, Message: fmt.Sprintf("all-different over %d variables has only %d distinct possible values", len(g.Vars), len(union)), PropID: &pid}
		}
	}
	return nil
}

func checkDivisors(s *domain.Store, divisors []struct {
	PropID data.PropId
	VarID  data.VarId
}) *Issue {
	for _, d := range divisors {
		dom := s.Int(d.VarID)
		if dom.Contains(0) {
			pid := d.PropID
			v := d.VarID
			return &Issue{Kind: InvalidConstraint, Message: "division/modulo divisor domain contains 0", VarID: &v, PropID: &pid}
		}
	}
	return nil
}
