// Cumulative models a single renewable resource scheduling constraint
// (SPEC_FULL.md §4.1's second supplemental global), grounded on
// gitrdm-gokando/pkg/minikanren/cumulative.go's time-table/compulsory-
// part filtering, re-expressed over integer-view starts (so a start can
// be any views.View, not only a raw FDVariable) and using
// domain.Int.RemoveValue for the per-time-slot exclusion instead of a
// BitSet domain.
package constraints

import (
	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

// Cumulative enforces that, at every discrete time t, the sum of demands
// of tasks executing at t does not exceed Capacity. Task i occupies the
// inclusive range [start_i, start_i+Durations[i]-1].
type Cumulative struct {
	Starts    []views.View
	Durations []int32
	Demands   []int32
	Capacity  int32
}

func (c *Cumulative) TriggerVars() []data.VarId { return viewVars(c.Starts...) }

// Prune implements propagate.Prop with time-table filtering: build a
// resource profile from every task's compulsory part (the time range a
// task must occupy regardless of its exact start, when its start window
// is narrower than its duration), fail if the profile ever exceeds
// capacity, then exclude any candidate start that would push the
// profile over capacity at some time in the task's range.
func (c *Cumulative) Prune(s *domain.Store) error {
	n := len(c.Starts)
	if n == 0 {
		return nil
	}

	lo, hi := int32(1<<31-1), int32(-(1 << 31))
	for i, start := range c.Starts {
		est := start.Min(s).AsInt()
		lst := start.Max(s).AsInt()
		if est < lo {
			lo = est
		}
		if end := lst + c.Durations[i] - 1; end > hi {
			hi = end
		}
	}
	if hi < lo {
		return nil
	}
	width := int(hi - lo + 1)
	profile := make([]int32, width)

	for i, start := range c.Starts {
		est := start.Min(s).AsInt()
		lst := start.Max(s).AsInt()
		dur := c.Durations[i]
		if lst > est+dur-1 {
			continue // no compulsory part: start window wider than duration
		}
		for t := lst; t <= est+dur-1; t++ {
			profile[t-lo] += c.Demands[i]
			if profile[t-lo] > c.Capacity {
				return propagate.ErrFail
			}
		}
	}

	for i, start := range c.Starts {
		id, ok := start.VarId()
		if !ok || s.IsFixed(id) {
			continue
		}
		dur := c.Durations[i]
		dem := c.Demands[i]
		est, lst := start.Min(s).AsInt(), start.Max(s).AsInt()
		dom := s.Int(id)
		var forbidden []int32
		dom.Iter(func(candidate int32) {
			for t := candidate; t <= candidate+dur-1; t++ {
				if t < lo || t > hi {
					continue
				}
				load := profile[t-lo]
				if t >= lst && t <= est+dur-1 {
					load -= dem // task i's own compulsory part is already in the profile
				}
				if load+dem > c.Capacity {
					forbidden = append(forbidden, candidate)
					return
				}
			}
		})
		for _, v := range forbidden {
			if _, ok := s.RemoveValue(id, v); !ok {
				return propagate.ErrFail
			}
		}
	}
	return nil
}
