package constraints

import (
	"testing"

	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

func TestCumulativePrunesOverlappingCompulsoryParts(t *testing.T) {
	s := domain.NewStore()
	// Two tasks of duration 2, demand 1 each, capacity 1: they cannot
	// overlap. Task 1 is fixed to start at 0, occupying [0,1]; task 0's
	// window [0,2] must then exclude starts 0 and 1, leaving only 2.
	t0 := s.NewInt(0, 2)
	t1 := s.NewInt(0, 0)

	c := &Cumulative{
		Starts:    []views.View{views.Id(t0), views.Id(t1)},
		Durations: []int32{2, 2},
		Demands:   []int32{1, 1},
		Capacity:  1,
	}
	k := propagate.NewKernel(s)
	k.Post(c)
	if err := k.Propagate(); err != nil {
		t.Fatalf("unexpected propagation failure: %v", err)
	}
	if s.Int(t0).Contains(0) || s.Int(t0).Contains(1) {
		t.Fatalf("expected starts 0 and 1 excluded for task 0, got %v", s.Int(t0))
	}
	if !s.IsFixed(t0) || s.Min(t0).AsInt() != 2 {
		t.Fatalf("expected task 0 forced to start at 2, got min=%v max=%v", s.Min(t0), s.Max(t0))
	}
}

func TestCumulativeFailsWhenCapacityExceeded(t *testing.T) {
	s := domain.NewStore()
	t0 := s.NewInt(0, 0)
	t1 := s.NewInt(0, 0)

	c := &Cumulative{
		Starts:    []views.View{views.Id(t0), views.Id(t1)},
		Durations: []int32{1, 1},
		Demands:   []int32{2, 2},
		Capacity:  3,
	}
	k := propagate.NewKernel(s)
	k.Post(c)
	if err := k.Propagate(); err != propagate.ErrFail {
		t.Fatalf("expected ErrFail, got %v", err)
	}
}
