package constraints

import (
	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

// Table is an extensional constraint: the tuple (Vars...) must equal
// one of the fixed allowed Rows. Propagation is a single pass of
// generalized arc consistency over the row list: discard rows
// incompatible with current domains, then prune each variable to the
// set of values that still appear at its column in a surviving row.
// Grounded on gitrdm-gokando/pkg/minikanren/table.go, whose own doc
// comment states exactly this algorithm; adapted to run per-value
// (sparse-set Contains) instead of bitset membership.
type Table struct {
	Vars []views.View
	Rows [][]int32
}

func (t *Table) TriggerVars() []data.VarId { return viewVars(t.Vars...) }

func (t *Table) Prune(s *domain.Store) error {
	arity := len(t.Vars)
	supported := make([]map[int32]bool, arity)
	for i := range supported {
		supported[i] = make(map[int32]bool)
	}

	anyRow := false
	for _, row := range t.Rows {
		compatible := true
		for i, v := range row {
			min, max := t.Vars[i].Min(s).AsInt(), t.Vars[i].Max(s).AsInt()
			if v < min || v > max {
				compatible = false
				break
			}
			if id, ok := t.Vars[i].VarId(); ok && s.IsInt(id) && !s.Int(id).Contains(v) {
				compatible = false
				break
			}
		}
		if !compatible {
			continue
		}
		anyRow = true
		for i, v := range row {
			supported[i][v] = true
		}
	}
	if !anyRow {
		return propagate.ErrFail
	}

	for i, v := range t.Vars {
		id, ok := v.VarId()
		if !ok {
			continue
		}
		min, max := v.Min(s).AsInt(), v.Max(s).AsInt()
		for val := min; val <= max; val++ {
			if s.IsInt(id) && s.Int(id).Contains(val) && !supported[i][val] {
				if _, ok := s.RemoveValue(id, val); !ok {
					return propagate.ErrFail
				}
			}
		}
	}
	return nil
}
