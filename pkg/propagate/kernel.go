// Package propagate implements the propagator scheduler: the dirty-queue
// fixpoint loop that drives every constraint to local consistency between
// search decisions (spec.md §4.4).
package propagate

import (
	"errors"

	"github.com/rs/zerolog"

	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
)

// ErrFail is the internal conflict signal: a propagator emptied a
// domain. It unwinds Prune immediately and is interpreted by the kernel
// as a conflict, never surfacing at the library boundary as an error —
// the search driver turns it into a backtrack, and only an exhausted
// search tree turns it into solver.Infeasible.
var ErrFail = errors.New("propagate: domain emptied")

// Prop is the contract every propagator implements: the variables whose
// changes may make it firable, and the one-round tightening step.
// Implementations must be idempotent once no trigger variable has
// changed (P7), and must never observe an externally empty domain — the
// moment an internal write would empty one, Prune returns ErrFail.
type Prop interface {
	TriggerVars() []data.VarId
	Prune(s *domain.Store) error
}

// Kernel schedules propagators to a fixpoint. Firing order among equally
// dirty propagators is the order they were marked dirty (FIFO), which is
// deterministic for a given posting order and event sequence (spec.md
// §4.4, §5 ordering guarantees).
type Kernel struct {
	store    *domain.Store
	props    []Prop
	triggers map[data.VarId][]data.PropId
	dirty    []bool
	queue    []data.PropId
	inQueue  []bool
	logger   zerolog.Logger
}

// NewKernel creates a kernel bound to a store. One kernel serves one
// model for its whole lifetime; propagators are never moved between
// kernels. Logging defaults to zerolog.Nop(); set it with SetLogger.
func NewKernel(s *domain.Store) *Kernel {
	return &Kernel{store: s, triggers: make(map[data.VarId][]data.PropId), logger: zerolog.Nop()}
}

// SetLogger attaches a structured logger for fixpoint-reached events.
func (k *Kernel) SetLogger(l zerolog.Logger) { k.logger = l }

// Post registers a propagator, builds its trigger-index entries, and
// marks it dirty so it fires on the next Propagate call. Posting never
// runs propagation itself (spec.md §6).
func (k *Kernel) Post(p Prop) data.PropId {
	id := data.PropId(len(k.props))
	k.props = append(k.props, p)
	k.dirty = append(k.dirty, true)
	k.inQueue = append(k.inQueue, false)
	k.queue = append(k.queue, id)
	k.inQueue[id] = true
	for _, v := range p.TriggerVars() {
		k.triggers[v] = append(k.triggers[v], id)
	}
	return id
}

// Len returns the number of registered propagators.
func (k *Kernel) Len() int { return len(k.props) }

// Prop returns the propagator registered under id.
func (k *Kernel) Prop(id data.PropId) Prop { return k.props[id] }

// MarkDirty re-enqueues a propagator, used by the search driver right
// after a branching decision narrows a variable directly (bypassing a
// domain write the kernel would otherwise have seen via TrySetMin/Max,
// e.g. an enumeration assignment) so its dependents still fire.
func (k *Kernel) MarkDirty(id data.PropId) {
	if k.dirty[id] {
		return
	}
	k.dirty[id] = true
	if !k.inQueue[id] {
		k.inQueue[id] = true
		k.queue = append(k.queue, id)
	}
}

// DirtyAll marks every propagator dirty; used once at the very start of
// a solve, before the first fixpoint.
func (k *Kernel) DirtyAll() {
	for i := range k.props {
		k.MarkDirty(data.PropId(i))
	}
}

// NotifyChanged marks dirty every propagator watching any of vars. The
// search driver calls this after a branching decision writes directly
// to the store: that write never goes through a Prune call, so
// Propagate's own trigger dispatch (keyed off the touched set a Prune
// leaves behind) never runs for it.
func (k *Kernel) NotifyChanged(vars []data.VarId) {
	for _, v := range vars {
		for _, dep := range k.triggers[v] {
			k.MarkDirty(dep)
		}
	}
}

// Propagate runs the dirty-queue loop to a fixpoint. Returns ErrFail on
// conflict, nil once no propagator remains dirty. The fixpoint reached is
// unique for a given initial domain state regardless of firing order
// (confluence); only the number of invocations can vary.
func (k *Kernel) Propagate() error {
	rounds := 0
	for len(k.queue) > 0 {
		id := k.queue[0]
		k.queue = k.queue[1:]
		k.inQueue[id] = false
		if !k.dirty[id] {
			continue
		}
		k.dirty[id] = false
		rounds++
		if err := k.props[id].Prune(k.store); err != nil {
			k.store.DrainTouched() // discard events from a failed round
			k.logger.Debug().Int("rounds", rounds).Err(err).Msg("fixpoint aborted")
			return err
		}
		changed := k.store.DrainTouched()
		for _, v := range changed {
			for _, dep := range k.triggers[v] {
				if dep == id {
					continue
				}
				k.MarkDirty(dep)
			}
		}
	}
	k.logger.Debug().Int("rounds", rounds).Msg("fixpoint reached")
	return nil
}
