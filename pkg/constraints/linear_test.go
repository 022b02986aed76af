package constraints

import (
	"testing"

	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

func TestLinearEqualityPrunesBounds(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(0, 10)
	y := s.NewInt(0, 10)

	// x + y == 10
	l := NewLinear([]data.Val{data.Int(1), data.Int(1)}, []views.View{views.Id(x), views.Id(y)}, Eq, data.Int(10), true)
	k := propagate.NewKernel(s)
	k.Post(l)

	if err := k.Propagate(); err != nil {
		t.Fatalf("unexpected propagation failure: %v", err)
	}

	if s.Min(x).AsInt() != 0 || s.Max(x).AsInt() != 10 {
		t.Fatalf("expected x unchanged with full [0,10] y, got [%v,%v]", s.Min(x), s.Max(x))
	}

	if _, ok := s.TrySetMax(y, data.Int(3)); !ok {
		t.Fatalf("failed to tighten y")
	}
	k.DirtyAll()
	if err := k.Propagate(); err != nil {
		t.Fatalf("unexpected propagation failure: %v", err)
	}
	if s.Min(x).AsInt() != 7 {
		t.Fatalf("expected x.min == 7 after y <= 3, got %v", s.Min(x))
	}
}

func TestLinearLeqSignHandling(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(-5, 5)
	y := s.NewInt(0, 10)

	// x - y <= -3  =>  x <= y - 3
	l := NewLinear([]data.Val{data.Int(1), data.Int(-1)}, []views.View{views.Id(x), views.Id(y)}, Leq, data.Int(-3), true)
	k := propagate.NewKernel(s)
	k.Post(l)
	if _, ok := s.TrySetMax(y, data.Int(2)); !ok {
		t.Fatalf("failed to tighten y")
	}
	k.DirtyAll()
	if err := k.Propagate(); err != nil {
		t.Fatalf("unexpected propagation failure: %v", err)
	}
	if s.Max(x).AsInt() != -1 {
		t.Fatalf("expected x.max == -1 (y.max - 3 = -1), got %v", s.Max(x))
	}
}

func TestLinearNeqExcludesForbiddenValue(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(0, 5)
	y := s.NewInt(3, 3)

	// x + y != 7  with y fixed at 3 forbids x == 4
	l := NewLinear([]data.Val{data.Int(1), data.Int(1)}, []views.View{views.Id(x), views.Id(y)}, Neq, data.Int(7), true)
	k := propagate.NewKernel(s)
	k.Post(l)
	if err := k.Propagate(); err != nil {
		t.Fatalf("unexpected propagation failure: %v", err)
	}
	if s.Int(x).Contains(4) {
		t.Fatalf("expected 4 excluded from x")
	}
	if !s.Int(x).Contains(3) || !s.Int(x).Contains(5) {
		t.Fatalf("expected other values to survive")
	}
}

func TestLinearEqualityFailsOnEmptyDomain(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(0, 2)
	y := s.NewInt(0, 2)

	// x + y == 10 is unreachable given both bounded to [0,2]
	l := NewLinear([]data.Val{data.Int(1), data.Int(1)}, []views.View{views.Id(x), views.Id(y)}, Eq, data.Int(10), true)
	k := propagate.NewKernel(s)
	k.Post(l)
	if err := k.Propagate(); err != propagate.ErrFail {
		t.Fatalf("expected ErrFail, got %v", err)
	}
}

func TestReifiedLinearDeducesTruthFromBounds(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(0, 2)
	b := s.NewInt(0, 1)

	// b <=> (x <= 5); x is always <= 2 so b must be forced to 1.
	l := NewReifiedLinear([]data.Val{data.Int(1)}, []views.View{views.Id(x)}, Leq, data.Int(5), true, views.Id(b))
	k := propagate.NewKernel(s)
	k.Post(l)
	if err := k.Propagate(); err != nil {
		t.Fatalf("unexpected propagation failure: %v", err)
	}
	if !s.IsFixed(b) || s.Min(b).AsInt() != 1 {
		t.Fatalf("expected b fixed to 1, got min=%v max=%v", s.Min(b), s.Max(b))
	}
}
