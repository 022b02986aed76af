package search

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
)

// Direction is the optimization sense for Optimize.
type Direction int

const (
	Minimize Direction = iota
	Maximize
)

// Config configures one search run. It is package search's own
// configuration, independent of solver.Options — package solver
// translates its public Options into a Config when it calls in here,
// the same decoupling pkg/lp uses for pkg/domain.
type Config struct {
	VarSelect   VarSelector
	ValueSelect ValueSelector
	MaxNodes    int64 // 0 = unlimited

	// Tighten, if non-nil, runs once per explored node before branching
	// (spec.md §4.10's LP bounds-tightening schedule point). It reports
	// whether it narrowed any bound and whether it discovered a
	// domain-emptying conflict; it must never be asked to prove
	// infeasibility on its own (spec.md P6).
	Tighten func() (tightened bool, conflict bool)

	// Reassert, if non-nil, re-applies any cross-cutting bound that a
	// whole-store trail Undo would otherwise wipe — the only such bound
	// in this driver is Optimize's incumbent cutoff on the objective
	// variable, which Undo restores away along with everything else
	// since pkg/domain.Store only snapshots/restores per-variable, not
	// per-constraint. Called right after every Undo; false means the
	// cutoff can no longer be satisfied at this node; the caller stops
	// exploring it.
	Reassert func(s *domain.Store) (ok bool)

	Logger zerolog.Logger
}

// DefaultConfig returns MRV variable selection and a min-value
// enumeration, unlimited nodes, no LP hook, and a no-op logger. The
// variable/value selection is the same as solver.DefaultOptions's.
func DefaultConfig() Config {
	return Config{
		VarSelect:   MRV{},
		ValueSelect: Min{},
		Logger:      zerolog.Nop(),
	}
}

// Outcome reports how a search run ended.
type Outcome struct {
	Found        bool
	Nodes        int64
	LimitReached bool

	stopped bool // set once onSolution has asked dfsLoop to end the search
}

// ErrCanceled is returned when ctx is canceled mid-search; the store is
// left in whatever partial state the search had reached.
var ErrCanceled = errors.New("search: canceled")

// Solve runs DFS to the first complete, consistent assignment and
// leaves the store fixed to it. Grounded on
// gitrdm-gokando/pkg/minikanren/search.go's DFSSearch.Search, adapted
// from that file's explicit stack-of-frames loop to recursion over the
// same trail-mark/apply/undo shape.
func Solve(ctx context.Context, store *domain.Store, kernel *propagate.Kernel, cfg Config) (Outcome, error) {
	out := Outcome{}
	found := false
	err := dfsLoop(ctx, store, kernel, cfg, &out, func() bool {
		found = true
		return true
	})
	out.Found = found
	return out, err
}

// Optimize runs branch-and-bound over objective in direction dir: every
// time a complete assignment is found it becomes the incumbent, the
// objective's remaining domain is cut to exclude anything no better than
// it, and search resumes for a strictly better one. The last incumbent
// found before the tree is exhausted (or a limit trips) is left fixed
// in the store. Grounded on the same DFSSearch loop, generalized with an
// incumbent cutoff the teacher's CSP-only driver has no equivalent of.
func Optimize(ctx context.Context, store *domain.Store, kernel *propagate.Kernel, objective data.VarId, dir Direction, cfg Config) (Outcome, error) {
	out := Outcome{}
	trail := NewTrail(store)

	var incumbent []domain.Snapshot
	haveBound := false
	var bound data.Val

	applyBound := func() bool {
		if !haveBound {
			return true
		}
		var ok bool
		if dir == Minimize {
			_, ok = store.TrySetMax(objective, bound)
		} else {
			_, ok = store.TrySetMin(objective, bound)
		}
		return ok
	}

	userReassert := cfg.Reassert
	cfg.Reassert = func(s *domain.Store) bool {
		if userReassert != nil && !userReassert(s) {
			return false
		}
		return applyBound()
	}

	onSolution := func() (stop bool) {
		incumbent = trail.Mark()
		v := store.Value(objective)
		step := data.Int(1)
		if !store.IsInt(objective) {
			step = data.Float(store.Float(objective).Step())
		}
		if dir == Minimize {
			bound = v.Sub(step)
		} else {
			bound = v.Add(step)
		}
		haveBound = true
		// The store is fixed at the incumbent here, so the cutoff is
		// applied by Reassert right after the driver's next Undo.
		return false
	}

	err := dfsLoop(ctx, store, kernel, cfg, &out, onSolution)
	if incumbent != nil {
		trail.Undo(incumbent)
		out.Found = true
	}
	return out, err
}

// dfsLoop is the shared recursive backtracking search. onSolution is
// invoked with the store fixed to a complete assignment; returning true
// ends the search immediately (the store is left at that assignment),
// false resumes searching (the caller is expected to have narrowed
// something, typically the objective, so the same assignment cannot
// recur).
func dfsLoop(ctx context.Context, store *domain.Store, kernel *propagate.Kernel, cfg Config, out *Outcome, onSolution func() bool) error {
	if err := ctx.Err(); err != nil {
		return ErrCanceled
	}

	if complete(store) {
		onSolution()
		return nil
	}

	if cfg.MaxNodes > 0 && out.Nodes >= cfg.MaxNodes {
		out.LimitReached = true
		return nil
	}

	if cfg.Tighten != nil {
		if _, conflict := cfg.Tighten(); conflict {
			return nil
		}
	}

	id, ok := cfg.VarSelect.Select(store)
	if !ok {
		onSolution()
		return nil
	}

	trail := NewTrail(store)
	for _, br := range cfg.ValueSelect.Branches(store, id) {
		if err := ctx.Err(); err != nil {
			return ErrCanceled
		}
		out.Nodes++
		mark := trail.Mark()

		ok := br.Apply(store)
		if ok {
			kernel.NotifyChanged(store.DrainTouched())
			ok = kernel.Propagate() == nil
		}
		if ok {
			cfg.Logger.Debug().Int("var", int(id)).Msg("branch")
			stop := false
			if complete(store) {
				stop = onSolution()
			} else {
				if err := dfsLoop(ctx, store, kernel, cfg, out, onSolution); err != nil {
					return err
				}
				if out.LimitReached || out.stopped {
					return nil
				}
			}
			if stop {
				out.stopped = true
				return nil
			}
		}

		trail.Undo(mark)
		if cfg.Reassert != nil && !cfg.Reassert(store) {
			return nil
		}
		kernel.NotifyChanged(store.DrainTouched())
	}
	return nil
}

func complete(store *domain.Store) bool {
	for i := 0; i < store.Len(); i++ {
		if !store.IsFixed(data.VarId(i)) {
			return false
		}
	}
	return true
}
