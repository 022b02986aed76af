package domain

import (
	"testing"

	"github.com/radevgit/selen-sub002/pkg/data"
)

func TestTrySetMinMaxTightenFloatVariable(t *testing.T) {
	s := NewStore()
	id := s.NewFloat(0, 1)

	changed, ok := s.TrySetMin(id, data.Float(0.25))
	if !ok || !changed {
		t.Fatalf("expected a real tightening to succeed and report changed, got changed=%v ok=%v", changed, ok)
	}
	if s.Min(id).AsFloat() < 0.25 {
		t.Fatalf("min did not advance, got %v", s.Min(id))
	}

	changed, ok = s.TrySetMax(id, data.Float(0.75))
	if !ok || !changed {
		t.Fatalf("expected a real tightening to succeed and report changed, got changed=%v ok=%v", changed, ok)
	}
	if s.Max(id).AsFloat() > 0.75 {
		t.Fatalf("max did not retreat, got %v", s.Max(id))
	}
}

// TestTrySetOnFixedFloatWithinToleranceIsNoOpSuccess covers B3: a demand
// within equalityTolerance of an already-fixed float must not perturb it,
// but must still report success.
func TestTrySetOnFixedFloatWithinToleranceIsNoOpSuccess(t *testing.T) {
	s := NewStore()
	id := s.NewFloat(1, 1)
	if !s.IsFixed(id) {
		t.Fatalf("zero-width float domain must be fixed")
	}
	fixed := s.Min(id).AsFloat()

	changed, ok := s.TrySetMin(id, data.Float(fixed))
	if !ok || changed {
		t.Fatalf("expected no-op success, got changed=%v ok=%v", changed, ok)
	}
	changed, ok = s.TrySetMax(id, data.Float(fixed))
	if !ok || changed {
		t.Fatalf("expected no-op success, got changed=%v ok=%v", changed, ok)
	}
	if s.Min(id).AsFloat() != fixed || s.Max(id).AsFloat() != fixed {
		t.Fatalf("fixed value must not be perturbed, got %v", s.Min(id))
	}
}

// TestTrySetOnFixedFloatContradictionFails covers the P1/P2 regression: a
// later propagator deriving a bound genuinely inconsistent with an
// already-fixed float variable must fail the node, not silently succeed.
func TestTrySetOnFixedFloatContradictionFails(t *testing.T) {
	s := NewStore()
	id := s.NewFloat(1, 1)
	fixed := s.Min(id).AsFloat()

	if _, ok := s.TrySetMin(id, data.Float(fixed+1e-3)); ok {
		t.Fatalf("demanding min far above the fixed value must fail, not succeed")
	}
	if _, ok := s.TrySetMax(id, data.Float(fixed-1e-3)); ok {
		t.Fatalf("demanding max far below the fixed value must fail, not succeed")
	}
	if s.Min(id).AsFloat() != fixed || s.Max(id).AsFloat() != fixed {
		t.Fatalf("a failed tightening must not have perturbed the fixed value")
	}
}

func TestStoreSnapshotRestoreFloat(t *testing.T) {
	s := NewStore()
	id := s.NewFloat(0, 1)
	snap := s.Snapshot(id)

	if _, ok := s.TrySetMin(id, data.Float(0.4)); !ok {
		t.Fatalf("failed to tighten min")
	}
	if _, ok := s.TrySetMax(id, data.Float(0.6)); !ok {
		t.Fatalf("failed to tighten max")
	}

	s.Restore(id, snap)
	if s.Min(id).AsFloat() != 0 || s.Max(id).AsFloat() != 1 {
		t.Fatalf("restore did not return the domain to its pre-snapshot bounds, got [%v,%v]", s.Min(id), s.Max(id))
	}
}
