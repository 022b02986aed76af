// AllDifferent GAC filtering (spec.md §4.7), grounded on
// original_source/src/constraints/gac_sparseset.rs's bitwise-BFS merged
// graph and gitrdm-gokando/pkg/minikanren/fd_regin.go's matching-cache-
// inside-the-propagator idiom. The merged-graph adjacency and the BFS
// frontier/visited sets are github.com/bits-and-blooms/bitset values
// instead of the Rust source's hand-rolled []u64 chunks, per
// SPEC_FULL.md's DOMAIN STACK wiring.
package constraints

import (
	"github.com/bits-and-blooms/bitset"

	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

// AllDifferent enforces that every variable in Vars takes a distinct
// integer value. It maintains a maximum variable-value matching cached
// across Prune calls; the kernel's trigger mechanism already
// invalidates the cache (re-invokes Prune) whenever a participating
// domain changes, so the propagator itself only needs to recompute from
// scratch each time it actually fires — there is no separate dirty flag
// to track.
type AllDifferent struct {
	Vars []views.View

	// matchVarToVal caches the previous matching as a hint for the
	// next augmenting-path search; entries no longer consistent with
	// the current domains are dropped when the next matching is seeded.
	matchVarToVal map[int]int32
}

func NewAllDifferent(vars []views.View) *AllDifferent {
	return &AllDifferent{Vars: vars}
}

func (c *AllDifferent) TriggerVars() []data.VarId { return viewVars(c.Vars...) }

// Prune implements propagate.Prop: find a maximum matching, fail if it
// isn't complete, then filter every (var, value) pair unsupported in
// the merged reachability graph (spec.md §4.7 steps 1-4).
func (c *AllDifferent) Prune(s *domain.Store) error {
	n := len(c.Vars)
	if n == 0 {
		return nil
	}

	ids := make([]data.VarId, n)
	for i, v := range c.Vars {
		id, ok := v.VarId()
		if !ok {
			return nil // a constant participant can never conflict here
		}
		ids[i] = id
	}

	valueOf := make(map[int32]int) // value -> offset into valList
	var valList []int32
	domains := make([][]int32, n)
	for i, id := range ids {
		dom := s.Int(id)
		if dom.IsEmpty() {
			return propagate.ErrFail
		}
		dom.Iter(func(v int32) {
			domains[i] = append(domains[i], v)
			if _, ok := valueOf[v]; !ok {
				valueOf[v] = len(valList)
				valList = append(valList, v)
			}
		})
	}
	m := len(valList)

	matchVarToVal, matchValToVar, ok := c.maximumMatching(n, m, domains, valueOf)
	if !ok {
		return propagate.ErrFail
	}
	c.matchVarToVal = matchVarToVal

	// Build the merged graph: var_a -> var_b whenever a's matched value
	// is also in b's domain. Nodes are variables only (0..n-1); an edge
	// var_a -> var_b means "var_a's match is reachable from var_b via a
	// value b also holds", which is the direction the BFS in step 4
	// needs: can `var` reach the variable matched to `val`?
	adj := make([]*bitset.BitSet, n)
	for i := range adj {
		adj[i] = bitset.New(uint(n))
	}
	// valToVars[offset] lists every variable whose domain still
	// contains that value.
	valToVars := make([][]int, m)
	for vi, dvals := range domains {
		for _, v := range dvals {
			off := valueOf[v]
			valToVars[off] = append(valToVars[off], vi)
		}
	}
	for vi := 0; vi < n; vi++ {
		matchedVal, has := matchVarToVal[vi]
		if !has {
			continue
		}
		off := valueOf[matchedVal]
		for _, other := range valToVars[off] {
			if other != vi {
				adj[vi].Set(uint(other))
			}
		}
	}
	freeReach := bitset.New(uint(n))
	for off, holders := range valToVars {
		for _, vi := range holders {
			if matchValToVar[off] == -1 {
				freeReach.Set(uint(vi))
			}
		}
	}
	for round := 0; round < n; round++ {
		for i, ok := freeReach.NextSet(0); ok; i, ok = freeReach.NextSet(i + 1) {
			freeReach.InPlaceUnion(adj[i])
		}
	}

	changed := false
	for vi := 0; vi < n; vi++ {
		id := ids[vi]
		matchedVal := matchVarToVal[vi]
		for _, val := range domains[vi] {
			if val == matchedVal {
				continue
			}
			off := valueOf[val]
			matchedVar := matchValToVar[off]
			if matchedVar == vi || matchedVar == -1 || freeReach.Test(uint(matchedVar)) {
				continue
			}
			if reachable(adj, vi, matchedVar, n) {
				continue
			}
			if rmChanged, rmOk := s.RemoveValue(id, val); !rmOk {
				return propagate.ErrFail
			} else if rmChanged {
				changed = true
			}
		}
	}
	_ = changed
	return nil
}

// maximumMatching runs repeated augmenting-path search, seeded with the
// cached matching from the previous Prune call when it is still valid
// (every cached edge still lies within the current domain).
func (c *AllDifferent) maximumMatching(n, m int, domains [][]int32, valueOf map[int32]int) (map[int]int32, []int, bool) {
	matchVarToVal := make(map[int]int32, n)
	matchValToVar := make([]int, m)
	for i := range matchValToVar {
		matchValToVar[i] = -1
	}

	inDomain := make([]map[int32]bool, n)
	for i, dvals := range domains {
		inDomain[i] = make(map[int32]bool, len(dvals))
		for _, v := range dvals {
			inDomain[i][v] = true
		}
	}

	// Seed from the previous matching where it's still consistent.
	if c.matchVarToVal != nil {
		for vi, val := range c.matchVarToVal {
			if vi >= n {
				continue
			}
			if inDomain[vi][val] {
				off := valueOf[val]
				if matchValToVar[off] == -1 {
					matchVarToVal[vi] = val
					matchValToVar[off] = vi
				}
			}
		}
	}

	matched := len(matchVarToVal)
	visited := make([]bool, m)

	var tryAugment func(vi int) bool
	tryAugment = func(vi int) bool {
		for _, val := range domains[vi] {
			off := valueOf[val]
			if visited[off] {
				continue
			}
			visited[off] = true
			owner := matchValToVar[off]
			if owner == -1 || tryAugment(owner) {
				matchValToVar[off] = vi
				matchVarToVal[vi] = val
				return true
			}
		}
		return false
	}

	for vi := 0; vi < n; vi++ {
		if _, has := matchVarToVal[vi]; has {
			continue
		}
		for i := range visited {
			visited[i] = false
		}
		if tryAugment(vi) {
			matched++
		}
	}

	return matchVarToVal, matchValToVar, matched == n
}

// reachable performs a bitwise BFS from src to dst over the merged
// graph's adjacency, expanding the frontier by OR-ing in each visited
// node's adjacency row (spec.md §4.7 step 4's "bitwise BFS expanding a
// frontier bitset against row-OR of adjacency").
func reachable(adj []*bitset.BitSet, src, dst, n int) bool {
	if src == dst {
		return true
	}
	visited := bitset.New(uint(n))
	frontier := bitset.New(uint(n))
	frontier.Set(uint(src))
	for frontier.Any() {
		if frontier.Test(uint(dst)) {
			return true
		}
		visited.InPlaceUnion(frontier)
		next := bitset.New(uint(n))
		for i, ok := frontier.NextSet(0); ok; i, ok = frontier.NextSet(i + 1) {
			next.InPlaceUnion(adj[i])
		}
		next.InPlaceDifference(visited)
		frontier = next
	}
	return false
}
