// GlobalCardinality (gcc) generalizes Count (element.go) to per-value
// occurrence bounds across an array of integer variables (SPEC_FULL.md
// §4.1's first supplemental global, grounded on
// gitrdm-gokando/pkg/minikanren/gcc.go's GlobalCardinality: bounds-
// consistent fixed/possible-count checks plus saturation pruning,
// re-expressed over pkg/domain.Int sparse sets instead of a bitset
// domain).
package constraints

import (
	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

// GCC enforces that, across Vars, the number of variables assigned to
// each value v lies within [Min[v], Max[v]]. Min/Max are maps keyed by
// the value itself (not a dense 1..M array, since this solver's
// integer universes are not restricted to positive values); a value
// absent from both maps is treated as unbounded ([0, len(Vars)]).
type GCC struct {
	Vars []views.View
	Min  map[int32]int
	Max  map[int32]int
}

func (g *GCC) TriggerVars() []data.VarId { return viewVars(g.Vars...) }

func (g *GCC) boundsFor(v int32) (lo, hi int) {
	lo = g.Min[v]
	if m, ok := g.Max[v]; ok {
		hi = m
	} else {
		hi = len(g.Vars)
	}
	return lo, hi
}

// Prune implements propagate.Prop: for every value that appears in any
// variable's domain, compute how many variables are already fixed to
// it (fixedCount) and how many still could be (possibleCount); fail on
// an overload or an unreachable minimum, and when a value has
// saturated its maximum, exclude it from every still-undecided
// variable.
func (g *GCC) Prune(s *domain.Store) error {
	fixedCount := make(map[int32]int)
	possibleCount := make(map[int32]int)
	candidates := make(map[int32][]data.VarId)

	for _, v := range g.Vars {
		id, ok := v.VarId()
		if !ok {
			continue
		}
		dom := s.Int(id)
		if dom.IsFixed() {
			val := dom.Min()
			fixedCount[val]++
			possibleCount[val]++
			continue
		}
		dom.Iter(func(val int32) {
			possibleCount[val]++
			candidates[val] = append(candidates[val], id)
		})
	}

	for val, fc := range fixedCount {
		_, hi := g.boundsFor(val)
		if fc > hi {
			return propagate.ErrFail
		}
	}
	for val, lo := range g.Min {
		if possibleCount[val] < lo {
			return propagate.ErrFail
		}
	}
	for val, fc := range fixedCount {
		_, hi := g.boundsFor(val)
		if fc == hi {
			for _, id := range candidates[val] {
				if s.IsFixed(id) {
					continue
				}
				if _, ok := s.RemoveValue(id, val); !ok {
					return propagate.ErrFail
				}
			}
		}
	}
	return nil
}
