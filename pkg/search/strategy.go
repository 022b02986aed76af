// Package search implements the backtracking search driver (spec.md
// §4.8/§4.9): pluggable variable- and value-selection strategies, a
// trail for undoing branching decisions, and the DFS/branch-and-bound
// loops that sit on top of pkg/propagate's fixpoint kernel. Grounded on
// gitrdm-gokando/pkg/minikanren/labeling.go (strategy shape) and
// search.go (the iterative backtracking loop).
package search

import (
	"math"
	"sort"

	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
)

// VarSelector picks the next variable to branch on among the store's
// not-yet-fixed variables. Implementations mirror LabelingStrategy's
// Name()/Description() shape.
type VarSelector interface {
	Select(s *domain.Store) (data.VarId, bool)
	Name() string
	Description() string
}

// ValueSelector produces the ordered set of branches to try for a
// chosen variable. Each Branch is a self-contained domain mutation; the
// driver applies branches in order, undoing via the trail between
// failed attempts.
type ValueSelector interface {
	Branches(s *domain.Store, id data.VarId) []Branch
	Name() string
	Description() string
}

// Branch applies one candidate narrowing of a variable's domain.
type Branch struct {
	Apply func(s *domain.Store) (ok bool)
}

func unassigned(s *domain.Store) []data.VarId {
	var out []data.VarId
	for i := 0; i < s.Len(); i++ {
		id := data.VarId(i)
		if !s.IsFixed(id) {
			out = append(out, id)
		}
	}
	return out
}

// domainSize returns a comparable "how constrained is this variable"
// measure: the integer domain's element count, or — for a float, which
// has no natural element count — a deliberately large sentinel so
// first-fail-style strategies prefer narrowing integers before floats.
func domainSize(s *domain.Store, id data.VarId) int {
	if s.IsInt(id) {
		return s.Int(id).Size()
	}
	return math.MaxInt32
}

// FirstUnassigned selects the lowest-indexed not-yet-fixed variable,
// i.e. posting order. Deterministic and cheap; good default for small
// or already-tight models. Grounded on LexicographicLabeling.
type FirstUnassigned struct{}

func (FirstUnassigned) Select(s *domain.Store) (data.VarId, bool) {
	for i := 0; i < s.Len(); i++ {
		id := data.VarId(i)
		if !s.IsFixed(id) {
			return id, true
		}
	}
	return 0, false
}
func (FirstUnassigned) Name() string { return "first_unassigned" }
func (FirstUnassigned) Description() string {
	return "selects the first not-yet-fixed variable in posting order"
}

// MRV implements minimum-remaining-values: the variable with the
// fewest remaining candidate values is branched on first, the
// classical "fail first" heuristic. Grounded on DomainSizeLabeling.
type MRV struct{}

func (MRV) Select(s *domain.Store) (data.VarId, bool) {
	best := data.VarId(-1)
	bestSize := math.MaxInt32 + 1
	for _, id := range unassigned(s) {
		if size := domainSize(s, id); size < bestSize {
			bestSize = size
			best = id
		}
	}
	return best, best >= 0
}
func (MRV) Name() string { return "mrv" }
func (MRV) Description() string {
	return "selects the not-yet-fixed variable with the smallest remaining domain"
}

// LargestDomain selects the least-constrained variable first, the
// inverse of MRV. Useful when early, coarse decisions on the loosest
// variables prune the rest of the model fastest. Grounded on
// DomainSizeLabeling, inverted.
type LargestDomain struct{}

func (LargestDomain) Select(s *domain.Store) (data.VarId, bool) {
	best := data.VarId(-1)
	bestSize := -1
	for _, id := range unassigned(s) {
		if size := domainSize(s, id); size > bestSize {
			bestSize = size
			best = id
		}
	}
	return best, best >= 0
}
func (LargestDomain) Name() string { return "largest_domain" }
func (LargestDomain) Description() string {
	return "selects the not-yet-fixed variable with the largest remaining domain"
}

// Min enumerates an integer variable's values in ascending order, one
// Fix branch per value; for a float variable (which has no finite
// enumeration) it falls back to a low-half-first interval split.
type Min struct{}

func (Min) Branches(s *domain.Store, id data.VarId) []Branch {
	if s.IsInt(id) {
		return enumerate(s, id, true)
	}
	return split(id, true)
}
func (Min) Name() string        { return "min" }
func (Min) Description() string { return "tries the smallest remaining value first" }

// Max enumerates an integer variable's values in descending order; for
// a float variable it falls back to a high-half-first interval split.
type Max struct{}

func (Max) Branches(s *domain.Store, id data.VarId) []Branch {
	if s.IsInt(id) {
		return enumerate(s, id, false)
	}
	return split(id, false)
}
func (Max) Name() string        { return "max" }
func (Max) Description() string { return "tries the largest remaining value first" }

// Mid orders an integer variable's values outward from the domain
// median; for a float it is equivalent to SplitLow (the median value is
// exactly the split point, so trying the half containing it first is
// the same move).
type Mid struct{}

func (Mid) Branches(s *domain.Store, id data.VarId) []Branch {
	if !s.IsInt(id) {
		return split(id, true)
	}
	vals := s.Int(id).ToSlice()
	sort.Slice(vals, func(i, j int) bool { return vals[i] < vals[j] })
	mid := vals[len(vals)/2]
	sort.Slice(vals, func(i, j int) bool {
		return absInt32(vals[i]-mid) < absInt32(vals[j]-mid)
	})
	return fixBranches(id, vals)
}
func (Mid) Name() string        { return "mid" }
func (Mid) Description() string { return "tries values nearest the domain median first" }

// SplitLow bisects the variable's current bounds and tries the lower
// half first, then the upper half, for both integer and float domains.
type SplitLow struct{}

func (SplitLow) Branches(s *domain.Store, id data.VarId) []Branch { return split(id, true) }
func (SplitLow) Name() string                                    { return "split_low" }
func (SplitLow) Description() string {
	return "bisects the domain, trying the lower half first"
}

// SplitHigh bisects the variable's current bounds and tries the upper
// half first.
type SplitHigh struct{}

func (SplitHigh) Branches(s *domain.Store, id data.VarId) []Branch { return split(id, false) }
func (SplitHigh) Name() string                                     { return "split_high" }
func (SplitHigh) Description() string {
	return "bisects the domain, trying the upper half first"
}

func enumerate(s *domain.Store, id data.VarId, ascending bool) []Branch {
	vals := s.Int(id).ToSlice()
	sort.Slice(vals, func(i, j int) bool {
		if ascending {
			return vals[i] < vals[j]
		}
		return vals[i] > vals[j]
	})
	return fixBranches(id, vals)
}

func fixBranches(id data.VarId, vals []int32) []Branch {
	out := make([]Branch, len(vals))
	for i, v := range vals {
		v := v
		out[i] = Branch{Apply: func(s *domain.Store) bool { return s.Fix(id, data.Int(v)) }}
	}
	return out
}

// split bisects [min,max] at the midpoint and returns the two
// restricting branches in the requested order: the low branch asserts
// x <= mid, the high branch asserts x > mid (spec.md §4.8's "left child
// asserting x <= mid ... right child asserting x > mid"). splitBounds
// picks a strict cut point for each domain kind so the two branches
// never both admit the same value.
func split(id data.VarId, lowFirst bool) []Branch {
	lower := Branch{Apply: func(s *domain.Store) bool {
		lo, _ := splitBounds(s, id)
		_, ok := s.TrySetMax(id, data.Float(lo))
		return ok
	}}
	upper := Branch{Apply: func(s *domain.Store) bool {
		_, hi := splitBounds(s, id)
		_, ok := s.TrySetMin(id, data.Float(hi))
		return ok
	}}
	if lowFirst {
		return []Branch{lower, upper}
	}
	return []Branch{upper, lower}
}

// splitBounds computes the low branch's inclusive upper bound and the
// high branch's inclusive lower bound, strictly separated: for an
// integer domain the midpoint floors to an integer cut, and the high
// branch starts one above it; for a float domain, a midpoint that
// already falls exactly on a step-aligned point is bumped forward by
// one step for the high branch so it doesn't also satisfy the low
// branch's <= cut.
func splitBounds(s *domain.Store, id data.VarId) (lo, hi float64) {
	mid := s.Min(id).AsFloat() + (s.Max(id).AsFloat()-s.Min(id).AsFloat())/2
	if s.IsInt(id) {
		lo = math.Floor(mid)
		return lo, lo + 1
	}
	f := s.Float(id)
	lo = f.FloorToStep(mid)
	if lo == mid {
		return lo, f.Next(mid)
	}
	return lo, f.CeilToStep(mid)
}

func absInt32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
