package search

import "github.com/radevgit/selen-sub002/pkg/domain"

// Trail captures and restores the whole store's domain state around a
// branching decision. The teacher's own search.go pairs a per-call
// store.snapshot() with store.undo(snap) around every stack frame;
// pkg/domain.Store exposes that same pairing as SnapshotAll/RestoreAll
// rather than an incremental write-log, so Trail is a thin naming
// wrapper over it, not a reimplementation.
type Trail struct {
	store *domain.Store
}

// NewTrail binds a Trail to the store the search driver is exploring.
func NewTrail(s *domain.Store) *Trail { return &Trail{store: s} }

// Mark captures the current state of every variable.
func (t *Trail) Mark() []domain.Snapshot { return t.store.SnapshotAll() }

// Undo restores every variable to a previously marked state.
func (t *Trail) Undo(snap []domain.Snapshot) { t.store.RestoreAll(snap) }
