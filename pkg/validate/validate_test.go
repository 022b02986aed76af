package validate

import (
	"testing"

	"github.com/radevgit/selen-sub002/pkg/data"
	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/meta"
)

func TestValidateAcceptsSaneModel(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(0, 5)
	y := s.NewInt(0, 5)
	r := meta.NewRegistry()
	r.Record(meta.Metadata{Kind: meta.KindSum, Vars: []data.VarId{x, y}})

	if issue := Validate(Input{Store: s, Registry: r}); issue != nil {
		t.Fatalf("expected no issue, got %+v", issue)
	}
}

func TestValidateCatchesUnknownVariableReference(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(0, 5)
	r := meta.NewRegistry()
	r.Record(meta.Metadata{Kind: meta.KindSum, Vars: []data.VarId{x, data.VarId(99)}})

	issue := Validate(Input{Store: s, Registry: r})
	if issue == nil || issue.Kind != InvalidVariableReference {
		t.Fatalf("expected InvalidVariableReference, got %+v", issue)
	}
}

func TestValidateCatchesAllDifferentDuplicateFixedValues(t *testing.T) {
	s := domain.NewStore()
	x := s.NewInt(3, 3)
	y := s.NewInt(3, 3)
	r := meta.NewRegistry()

	issue := Validate(Input{
		Store:         s,
		Registry:      r,
		AllDiffGroups: []AllDiffGroup{{PropID: 0, Vars: []data.VarId{x, y}}},
	})
	if issue == nil || issue.Kind != ConflictingConstraints {
		t.Fatalf("expected ConflictingConstraints, got %+v", issue)
	}
}

func TestValidateCatchesEmptyMinMaxInput(t *testing.T) {
	s := domain.NewStore()
	r := s.NewInt(0, 5)
	reg := meta.NewRegistry()
	reg.Record(meta.Metadata{Kind: meta.KindMin, Vars: []data.VarId{r}})

	issue := Validate(Input{Store: s, Registry: reg})
	if issue == nil || issue.Kind != InvalidConstraint {
		t.Fatalf("expected InvalidConstraint for min with no input variables, got %+v", issue)
	}
}

func TestValidateCatchesZeroDivisor(t *testing.T) {
	s := domain.NewStore()
	div := s.NewInt(-2, 2)
	r := meta.NewRegistry()

	issue := Validate(Input{
		Store:    s,
		Registry: r,
		Divisors: []struct {
			PropID data.PropId
			VarID  data.VarId
		}{{PropID: 0, VarID: div}},
	})
	if issue == nil || issue.Kind != InvalidConstraint {
		t.Fatalf("expected InvalidConstraint for zero-containing divisor, got %+v", issue)
	}
}
