package tour_test

import (
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lkh/internal/rng"
	"github.com/katalvlaran/lkh/matrix"
	"github.com/katalvlaran/lkh/tour"
)

// isCycle asserts t is a permutation with consistent successor/predecessor links.
func isCycle(t *testing.T, tr *tour.Tour) {
	t.Helper()
	n := tr.Len()
	require.NoError(t, tour.ValidatePermutation(tr.Order(), n))
	for i := 0; i < n; i++ {
		v := tr.At(i)
		require.Equal(t, i, tr.Index(v))
		require.Equal(t, v, tr.Pred(tr.Succ(v)))
	}
}

func TestNew_RejectsNonPermutation(t *testing.T) {
	_, err := tour.New([]int{0, 1, 1})
	assert.ErrorIs(t, err, tour.ErrNotPermutation)
	_, err = tour.New([]int{0, 3, 1})
	assert.ErrorIs(t, err, tour.ErrNotPermutation)
	_, err = tour.New(nil)
	assert.ErrorIs(t, err, tour.ErrNotPermutation)

	tr, err := tour.New([]int{2, 0, 1})
	require.NoError(t, err)
	assert.Equal(t, 2, tr.At(-3))
	assert.Equal(t, 0, tr.At(4))
}

func TestAroundAndContains(t *testing.T) {
	tr, err := tour.New([]int{3, 1, 4, 0, 2})
	require.NoError(t, err)

	succ, pred := tr.Around(3)
	assert.Equal(t, 1, succ)
	assert.Equal(t, 2, pred)

	assert.True(t, tr.Contains(tour.NewEdge(2, 3))) // closing edge
	assert.True(t, tr.Contains(tour.NewEdge(4, 0)))
	assert.False(t, tr.Contains(tour.NewEdge(3, 4)))
}

func TestBetween_StrictForwardArc(t *testing.T) {
	tr := tour.Identity(6)
	assert.True(t, tr.Between(1, 4, 2))
	assert.False(t, tr.Between(1, 4, 1))
	assert.False(t, tr.Between(1, 4, 4))
	assert.False(t, tr.Between(1, 4, 5))
	// Wrapping arc 4 → 1 passes 5 and 0.
	assert.True(t, tr.Between(4, 1, 5))
	assert.True(t, tr.Between(4, 1, 0))
	assert.False(t, tr.Between(4, 1, 2))
	assert.False(t, tr.Between(2, 2, 3))
}

func TestFlip_ShortAndLongSegments(t *testing.T) {
	tr := tour.Identity(8)
	tr.Flip(2, 4)
	assert.Equal(t, []int{0, 1, 4, 3, 2, 5, 6, 7}, tr.Order())
	isCycle(t, tr)

	// Wrapping segment 6..1 has length 4; still the direct path.
	tr = tour.Identity(8)
	tr.Flip(6, 1)
	isCycle(t, tr)
	assert.True(t, tr.Contains(tour.NewEdge(5, 1)))
	assert.True(t, tr.Contains(tour.NewEdge(6, 2)))

	// Long segment: complement is reversed; same cycle as reversing 1..6.
	tr = tour.Identity(8)
	tr.Flip(1, 6)
	isCycle(t, tr)
	want := tour.Identity(8)
	want.Flip(7, 0) // complement of 1..6
	assert.Equal(t, want.Hash(), tr.Hash())
	assert.True(t, tr.Contains(tour.NewEdge(0, 6)))
	assert.True(t, tr.Contains(tour.NewEdge(1, 7)))
}

func TestHash_RotationAndOrientationInvariant(t *testing.T) {
	a, err := tour.New([]int{0, 1, 2, 3, 4, 5})
	require.NoError(t, err)
	b, err := tour.New([]int{3, 4, 5, 0, 1, 2}) // rotation
	require.NoError(t, err)
	c, err := tour.New([]int{2, 1, 0, 5, 4, 3}) // reversed
	require.NoError(t, err)
	d, err := tour.New([]int{0, 2, 1, 3, 4, 5}) // different cycle
	require.NoError(t, err)

	assert.Equal(t, a.Hash(), b.Hash())
	assert.Equal(t, a.Hash(), c.Hash())
	assert.Equal(t, a.Hash(), tour.HashOrder([]int{4, 5, 0, 1, 2, 3}))
	assert.NotEqual(t, a.Hash(), d.Hash())
}

func TestGenerate_DoubleBridgeRoundTrip(t *testing.T) {
	tr := tour.Identity(8)
	// Double bridge with cut points 1,3,5,7: A=[0 1] B=[2 3] C=[4 5] D=[6 7] → A C B D.
	removed := []tour.Edge{tour.NewEdge(1, 2), tour.NewEdge(3, 4), tour.NewEdge(5, 6), tour.NewEdge(7, 0)}
	added := []tour.Edge{tour.NewEdge(1, 4), tour.NewEdge(5, 2), tour.NewEdge(3, 6), tour.NewEdge(7, 0)}
	ok, order := tr.Generate(removed, added)
	require.True(t, ok)
	require.NoError(t, tour.ValidatePermutation(order, 8))
	assert.Equal(t, tour.HashOrder([]int{0, 1, 4, 5, 2, 3, 6, 7}), tour.HashOrder(order))

	// Undo: exchanging back yields the original cycle.
	next, err := tour.New(order)
	require.NoError(t, err)
	ok, back := next.Generate(added, removed)
	require.True(t, ok)
	assert.Equal(t, tr.Hash(), tour.HashOrder(back))

	// tr itself was never touched.
	assert.Equal(t, []int{0, 1, 2, 3, 4, 5, 6, 7}, tr.Order())
}

func TestGenerate_RejectsSubtours(t *testing.T) {
	tr := tour.Identity(6)
	// Splitting into (0 1 2) and (3 4 5).
	removed := []tour.Edge{tour.NewEdge(2, 3), tour.NewEdge(5, 0)}
	added := []tour.Edge{tour.NewEdge(2, 0), tour.NewEdge(5, 3)}
	ok, order := tr.Generate(removed, added)
	assert.False(t, ok)
	assert.Nil(t, order)

	// Degree violation.
	ok, _ = tr.Generate([]tour.Edge{tour.NewEdge(0, 1)}, []tour.Edge{tour.NewEdge(0, 3)})
	assert.False(t, ok)

	// Too few edges.
	ok, _ = tr.Generate([]tour.Edge{tour.NewEdge(0, 1)}, nil)
	assert.False(t, ok)
}

func TestApplyAndLength(t *testing.T) {
	m, _, err := matrix.RandomEuclidean(12, rng.FromSeed(2))
	require.NoError(t, err)
	tr := tour.Identity(12)
	before := tr.Length(m)

	order := tr.Order()
	rng.SwapPairs(order, 4, rng.FromSeed(3))
	tr.Apply(order)
	isCycle(t, tr)
	assert.InDelta(t, tour.OrderLength(m, order), tr.Length(m), 1e-9)

	tr.Apply(tour.Identity(12).Order())
	assert.InDelta(t, before, tr.Length(m), 1e-9)
}

func TestEdgeSet_CopyOnWrite(t *testing.T) {
	base := tour.NewEdgeSet(tour.NewEdge(1, 2))
	branch := base.With(tour.NewEdge(3, 4), tour.NewEdge(2, 1))
	assert.Equal(t, 1, base.Len())
	assert.Equal(t, 2, branch.Len())
	assert.False(t, base.Has(tour.NewEdge(4, 3)))
	assert.True(t, branch.Has(tour.NewEdge(4, 3)))
	assert.True(t, slices.Contains(branch.Slice(), tour.Edge{A: 2, B: 1}))
	assert.Equal(t, 1, tour.NewEdge(1, 7).Other(7))
}

func TestAdjacency_TourAndTree(t *testing.T) {
	tr, err := tour.New([]int{0, 3, 1, 2})
	require.NoError(t, err)
	a := tour.AdjacencyOf(tr)
	assert.Equal(t, 4, a.Len())
	assert.True(t, a.Has(tour.NewEdge(0, 3)))
	assert.True(t, a.Has(tour.NewEdge(2, 0)))
	assert.False(t, a.Has(tour.NewEdge(0, 1)))
	assert.ElementsMatch(t, []int{3, 2}, a.Neighbours(0))

	// A star has degrees other than 2; duplicates collapse.
	star := tour.NewAdjacency(4, []tour.Edge{
		tour.NewEdge(0, 1), tour.NewEdge(0, 2), tour.NewEdge(0, 3), tour.NewEdge(1, 0),
	})
	assert.Len(t, star.Neighbours(0), 3)
	assert.Equal(t, []int{0}, star.Neighbours(1))
	assert.False(t, star.Has(tour.NewEdge(7, 1)))
}
