// Lexicographic ordering, grounded on gitrdm-gokando/pkg/minikanren/lex.go's
// Lexicographic constraint: bounds-consistent, O(n), prefix-equality
// tracking rather than a full arc-consistent decomposition.
package constraints

import (
	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

// Lex enforces Xs <=(<) Ys lexicographically, with Strict selecting
// between the non-strict and strict variants.
type Lex struct {
	Xs, Ys []views.View
	Strict bool
}

func (l *Lex) TriggerVars() []data.VarId {
	return viewVars(append(append([]views.View{}, l.Xs...), l.Ys...)...)
}

func (l *Lex) Prune(s *domain.Store) error {
	n := len(l.Xs)
	allEqualSoFar := true
	for i := 0; i < n; i++ {
		xi, yi := l.Xs[i], l.Ys[i]
		xmin, xmax := xi.Min(s).AsFloat(), xi.Max(s).AsFloat()
		ymin, ymax := yi.Min(s).AsFloat(), yi.Max(s).AsFloat()

		if xmax < ymin {
			// Already decided strictly less at this position: later
			// positions are unconstrained.
			return nil
		}
		if xmin > ymax {
			return propagate.ErrFail
		}

		if _, ok := xi.TrySetMax(s, valOf(xi.IsInt(s), ymax)); !ok {
			return propagate.ErrFail
		}
		if _, ok := yi.TrySetMin(s, valOf(yi.IsInt(s), xmin)); !ok {
			return propagate.ErrFail
		}

		if xmin == xmax && ymin == ymax && xmin == ymin {
			continue
		}
		allEqualSoFar = false
		break
	}
	if l.Strict && allEqualSoFar {
		// Every position forced equal with no room left to diverge: the
		// strict variant is unsatisfiable.
		return propagate.ErrFail
	}
	return nil
}
