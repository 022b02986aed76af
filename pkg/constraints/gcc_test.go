package constraints

import (
	"testing"

	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

func TestGCCExcludesValueAtMaxSaturation(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(1, 2)
	y := s.NewInt(1, 2)
	z := s.NewInt(1, 2)
	// x fixed to 1 already saturates value 1's max of 1.
	s.Fix(x, data.Int(1))

	g := &GCC{
		Vars: []views.View{views.Id(x), views.Id(y), views.Id(z)},
		Min:  map[int32]int{1: 1},
		Max:  map[int32]int{1: 1},
	}
	k := propagate.NewKernel(s)
	k.Post(g)
	if err := k.Propagate(); err != nil {
		t.Fatalf("unexpected propagation failure: %v", err)
	}
	if s.Int(y).Contains(1) || s.Int(z).Contains(1) {
		t.Fatalf("expected value 1 excluded from y and z once saturated")
	}
}

func TestGCCFailsWhenMinimumUnreachable(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(5, 6)
	y := s.NewInt(5, 6)

	g := &GCC{
		Vars: []views.View{views.Id(x), views.Id(y)},
		Min:  map[int32]int{7: 1},
	}
	k := propagate.NewKernel(s)
	k.Post(g)
	if err := k.Propagate(); err != propagate.ErrFail {
		t.Fatalf("expected ErrFail, got %v", err)
	}
}
