package constraints

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/radevgit/selen-sub002/pkg/domain"
	"github.com/radevgit/selen-sub002/pkg/propagate"
	"github.com/radevgit/selen-sub002/pkg/views"
)

func TestAllDifferentFiltersUnsupportedValue(t *testing.T) {
	s := domain.NewStore()
	x := s.NewIntFromValues([]int32{1, 2})
	y := s.NewIntFromValues([]int32{1, 2})
	z := s.NewIntFromValues([]int32{1, 2, 3})

	ad := NewAllDifferent([]views.View{views.Id(x), views.Id(y), views.Id(z)})
	k := propagate.NewKernel(s)
	k.Post(ad)
	require.NoError(t, k.Propagate())

	require.False(t, s.Int(z).Contains(1), "expected z narrowed away from 1")
	require.False(t, s.Int(z).Contains(2), "expected z narrowed away from 2")
	require.True(t, s.IsFixed(z), "expected z fixed")
	require.EqualValues(t, 3, s.Min(z).AsInt(), "expected z fixed to 3")
}

func TestAllDifferentFailsWhenMatchingImpossible(t *testing.T) {
	s := domain.NewStore()
	x := s.NewIntFromValues([]int32{1, 2})
	y := s.NewIntFromValues([]int32{1, 2})
	z := s.NewIntFromValues([]int32{1, 2})

	ad := NewAllDifferent([]views.View{views.Id(x), views.Id(y), views.Id(z)})
	k := propagate.NewKernel(s)
	k.Post(ad)
	require.ErrorIs(t, k.Propagate(), propagate.ErrFail)
}
