package search

import (
	"testing"

	"github.com/radevgit/selen-sub002/pkg/domain"
)

// TestSplitBranchesAreStrictlySeparated covers the spec.md §4.8 "left
// child asserting x <= mid ... right child asserting x > mid" contract:
// a boundary value admitted by the low branch must not also be
// admitted by the high branch.
func TestSplitBranchesAreStrictlySeparated(t *testing.T) {
	s := domain.NewStore()
	id := s.NewIntFromValues([]int32{5, 6, 7})

	branches := SplitLow{}.Branches(s, id)
	if len(branches) != 2 {
		t.Fatalf("expected two branches, got %d", len(branches))
	}

	loSnap := s.Snapshot(id)
	if !branches[0].Apply(s) {
		t.Fatalf("low branch failed to apply")
	}
	loMax := s.Max(id).AsInt()
	s.Restore(id, loSnap)

	if !branches[1].Apply(s) {
		t.Fatalf("high branch failed to apply")
	}
	hiMin := s.Min(id).AsInt()

	if hiMin <= loMax {
		t.Fatalf("branches overlap: low branch admits up to %d, high branch admits from %d", loMax, hiMin)
	}
}

func TestSplitBranchesCoverFloatDomainWithoutOverlap(t *testing.T) {
	s := domain.NewStore()
	id := s.NewFloat(5, 7)

	branches := SplitLow{}.Branches(s, id)
	loSnap := s.Snapshot(id)
	if !branches[0].Apply(s) {
		t.Fatalf("low branch failed to apply")
	}
	loMax := s.Max(id).AsFloat()
	s.Restore(id, loSnap)

	if !branches[1].Apply(s) {
		t.Fatalf("high branch failed to apply")
	}
	hiMin := s.Min(id).AsFloat()

	if hiMin <= loMax {
		t.Fatalf("branches overlap: low branch admits up to %v, high branch admits from %v", loMax, hiMin)
	}
}
