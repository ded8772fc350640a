package candidate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lkh/candidate"
	"github.com/katalvlaran/lkh/internal/rng"
	"github.com/katalvlaran/lkh/matrix"
	"github.com/katalvlaran/lkh/onetree"
)

func TestNearest_SizeGuard(t *testing.T) {
	m, _, err := matrix.RandomEuclidean(6, rng.FromSeed(1))
	require.NoError(t, err)

	for _, size := range []int{0, -1, 6, 7} {
		_, err = candidate.Nearest(m, size)
		assert.ErrorIs(t, err, candidate.ErrCandidateSize, "size %d", size)
	}
}

func TestNearest_OrderedByDistance(t *testing.T) {
	m, err := matrix.FromPoints([]matrix.Point{{X: 0}, {X: 1}, {X: 3}, {X: 6}, {X: 10}})
	require.NoError(t, err)
	l, err := candidate.Nearest(m, 2)
	require.NoError(t, err)

	assert.Equal(t, []int{1, 2}, l.Nodes(0))
	assert.Equal(t, []int{1, 0}, l.Nodes(2)) // 0 and 3 tie at 3; lower id wins
	assert.Equal(t, []int{3, 2}, l.Nodes(4))
	assert.True(t, l.Has(3, 2))
	assert.Equal(t, 2, l.MaxLen())
}

func TestNearest_TiesByNodeID(t *testing.T) {
	m, err := matrix.FromPoints([]matrix.Point{{X: 0}, {X: -1}, {X: 1}, {X: 5}})
	require.NoError(t, err)
	l, err := candidate.Nearest(m, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2}, l.Nodes(0))
}

func TestFromAlpha_ExcessAndOrder(t *testing.T) {
	m, _, err := matrix.RandomEuclidean(25, rng.FromSeed(4))
	require.NoError(t, err)
	tree, err := onetree.Build(m)
	require.NoError(t, err)
	alpha, err := onetree.Alpha(m, tree)
	require.NoError(t, err)

	excess := candidate.DefaultExcess(tree.Cost, m.N(), 1)
	l := candidate.FromAlpha(alpha, m, excess, 0)

	for i := 0; i < l.Len(); i++ {
		es := l.Of(i)
		for k, e := range es {
			assert.Less(t, e.Alpha, excess)
			assert.NotEqual(t, i, e.Node)
			assert.True(t, l.Has(e.Node, i), "lists must be symmetric")
			if k > 0 {
				prev := es[k-1]
				assert.True(t, prev.Alpha < e.Alpha || (prev.Alpha == e.Alpha && prev.Weight <= e.Weight))
			}
		}
	}
	// Every 1-tree edge has alpha 0 and is always a candidate.
	for _, e := range tree.Edges() {
		assert.True(t, l.Has(e.A, e.B))
	}

	capped := candidate.FromAlpha(alpha, m, excess, 3)
	assert.LessOrEqual(t, capped.MaxLen(), 3)
	assert.Equal(t, l.Of(7)[:min(3, len(l.Of(7)))], capped.Of(7))
}

func TestDefaultExcess(t *testing.T) {
	assert.InDelta(t, 2.5, candidate.DefaultExcess(10, 4, 1), 1e-12)
	assert.InDelta(t, 5.0, candidate.DefaultExcess(10, 4, 2), 1e-12)
	assert.InDelta(t, 2.5, candidate.DefaultExcess(10, 4, 0), 1e-12)
}
