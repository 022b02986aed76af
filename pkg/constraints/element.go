// Element and Count global constraints (spec.md §4.6's "element/count"
// requirement). Grounded on
// gitrdm-gokando/pkg/minikanren/element.go's ElementValues (a fixed
// table indexed by a variable, with result derivable both ways) and
// count.go's reification-based Count, adapted from that goal-oriented
// shape into direct propagators over pkg/data.Val and pkg/domain.Store.
package constraints

import (
	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

// Element enforces result == table[index], where table is a fixed,
// 0-based constant array and index/result are integer views.
// Propagation narrows both directions on bounds: index is restricted
// to positions whose table value lies within result's [min, max], and
// result is clamped to the min/max of table over index's [min, max].
// Holes inside either domain are not used for filtering.
type Element struct {
	Index  views.View
	Table  []int32
	Result views.View
}

func (e *Element) TriggerVars() []data.VarId { return viewVars(e.Index, e.Result) }

func (e *Element) Prune(s *domain.Store) error {
	if _, ok := e.Index.TrySetMin(s, data.Int(0)); !ok {
		return propagate.ErrFail
	}
	if _, ok := e.Index.TrySetMax(s, data.Int(int32(len(e.Table)-1))); !ok {
		return propagate.ErrFail
	}

	imin := e.Index.Min(s).AsInt()
	imax := e.Index.Max(s).AsInt()
	resMin, resMax := int32(1<<31-1), int32(-(1 << 31))
	anyPossible := false
	for i := imin; i <= imax; i++ {
		v := e.Table[i]
		if v < resMin {
			resMin = v
		}
		if v > resMax {
			resMax = v
		}
		anyPossible = true
	}
	if !anyPossible {
		return propagate.ErrFail
	}
	if _, ok := e.Result.TrySetMin(s, data.Int(resMin)); !ok {
		return propagate.ErrFail
	}
	if _, ok := e.Result.TrySetMax(s, data.Int(resMax)); !ok {
		return propagate.ErrFail
	}

	rmin := e.Result.Min(s).AsInt()
	rmax := e.Result.Max(s).AsInt()
	id, hasId := e.Index.VarId()
	if !hasId {
		return nil
	}
	for i := imin; i <= imax; i++ {
		if e.Table[i] < rmin || e.Table[i] > rmax {
			if _, ok := s.RemoveValue(id, i); !ok {
				return propagate.ErrFail
			}
		}
	}
	return nil
}

// Count enforces countVar == |{ i : vars[i] == target }|, bounds-
// consistent over the possible/necessary membership of each variable
// rather than full arc-consistency: it tracks how many variables are
// already fixed to target, how many still could be, and tightens
// countVar's bounds to that range; conversely, if countVar is fixed at
// its extremes it forces the remaining undecided variables.
type Count struct {
	Vars     []views.View
	Target   data.Val
	CountVar views.View
}

func (c *Count) TriggerVars() []data.VarId {
	return viewVars(append(append([]views.View{}, c.Vars...), c.CountVar)...)
}

func (c *Count) Prune(s *domain.Store) error {
	fixedYes, maybeYes := 0, 0
	var maybeVars []views.View
	for _, v := range c.Vars {
		min, max := v.Min(s), v.Max(s)
		contains := !c.Target.Less(min) && !max.Less(c.Target)
		// A variable "could" equal target if target lies within its
		// current bound interval; bound-only, not a full domain scan.
		if min.Eq(c.Target) && max.Eq(c.Target) {
			fixedYes++
			maybeYes++
		} else if contains {
			maybeYes++
			maybeVars = append(maybeVars, v)
		}
	}
	if err := tighten(s, c.CountVar, true, float64(fixedYes), float64(maybeYes)); err != nil {
		return err
	}

	cmin := c.CountVar.Min(s).AsInt()
	cmax := c.CountVar.Max(s).AsInt()
	if int(cmax) == fixedYes {
		// No more variables may equal target: exclude it from every
		// still-undecided candidate.
		for _, v := range maybeVars {
			id, ok := v.VarId()
			if !ok || !c.Target.IsInt() {
				continue
			}
			if _, ok := s.RemoveValue(id, c.Target.AsInt()); !ok {
				return propagate.ErrFail
			}
		}
	}
	if int(cmin) == maybeYes && maybeYes > fixedYes {
		// Every remaining candidate must equal target.
		for _, v := range maybeVars {
			if _, ok := v.TrySetMin(s, c.Target); !ok {
				return propagate.ErrFail
			}
			if _, ok := v.TrySetMax(s, c.Target); !ok {
				return propagate.ErrFail
			}
		}
	}
	return nil
}
