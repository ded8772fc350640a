package matrix_test

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lkh/internal/rng"
	"github.com/katalvlaran/lkh/matrix"
)

func TestFromRows_Validation(t *testing.T) {
	cases := []struct {
		name string
		rows [][]float64
		want error
	}{
		{"empty", nil, matrix.ErrDimension},
		{"ragged", [][]float64{{0, 1}, {1}}, matrix.ErrDimension},
		{"diag", [][]float64{{1, 1}, {1, 0}}, matrix.ErrNonZeroDiagonal},
		{"asym", [][]float64{{0, 1}, {2, 0}}, matrix.ErrAsymmetric},
		{"neg", [][]float64{{0, -1}, {-1, 0}}, matrix.ErrNegativeWeight},
		{"nan", [][]float64{{0, math.NaN()}, {math.NaN(), 0}}, matrix.ErrNaN},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := matrix.FromRows(tc.rows)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}

	m, err := matrix.FromRows([][]float64{{0, 2, 3}, {2, 0, 4}, {3, 4, 0}})
	require.NoError(t, err)
	assert.Equal(t, 3, m.N())
	assert.Equal(t, 4.0, m.At(2, 1))
}

func TestSetKeepsSymmetry(t *testing.T) {
	m, err := matrix.New(4)
	require.NoError(t, err)
	m.Set(1, 3, 7.5)
	assert.Equal(t, 7.5, m.At(3, 1))
	require.NoError(t, m.Validate())

	_, err = matrix.New(0)
	assert.ErrorIs(t, err, matrix.ErrDimension)
}

func TestCloneIsIndependent(t *testing.T) {
	m, _, err := matrix.RandomEuclidean(10, rng.FromSeed(5))
	require.NoError(t, err)
	c := m.Clone()
	require.True(t, m.Equal(c))
	c.Set(0, 1, 1e9)
	assert.False(t, m.Equal(c))
}

func TestPenalizedView(t *testing.T) {
	m, err := matrix.FromRows([][]float64{{0, 2, 3}, {2, 0, 4}, {3, 4, 0}})
	require.NoError(t, err)
	orig := m.Clone()

	pi := []float64{1, -0.5, 2}
	p, err := matrix.Penalize(m, pi)
	require.NoError(t, err)
	assert.InDelta(t, 2.5, p.At(0, 1), 1e-12)
	assert.InDelta(t, 5.5, p.At(2, 1), 1e-12)
	assert.Equal(t, 0.0, p.At(2, 2))

	// Penalties live in the view only.
	assert.True(t, m.Equal(orig))

	_, err = matrix.Penalize(m, []float64{1})
	assert.ErrorIs(t, err, matrix.ErrPenaltyLength)
}

func TestRandomEuclidean_Bounds(t *testing.T) {
	n := 25
	m, pts, err := matrix.RandomEuclidean(n, rng.FromSeed(9))
	require.NoError(t, err)
	require.Len(t, pts, n)
	side := 100 * math.Sqrt(float64(n))
	for _, p := range pts {
		assert.True(t, p.X >= 0 && p.X < side && p.Y >= 0 && p.Y < side)
	}
	require.NoError(t, m.Validate())
	assert.InDelta(t, pts[3].Dist(pts[7]), m.At(3, 7), 1e-12)
}
