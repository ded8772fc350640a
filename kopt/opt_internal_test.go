package kopt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lkh/internal/rng"
	"github.com/katalvlaran/lkh/matrix"
	"github.com/katalvlaran/lkh/tour"
)

func TestReconnectGainMatchesOrder(t *testing.T) {
	const n = 9
	m, _, err := matrix.RandomEuclidean(n, rng.FromSeed(3))
	require.NoError(t, err)
	order := tour.Identity(n).Order()
	rng.FromSeed(7).Shuffle(n, func(i, j int) { order[i], order[j] = order[j], order[i] })
	base := tour.OrderLength(m, order)
	at := func(p int) int { return order[p%n] }

	for i := 1; i <= n-2; i++ {
		for j := i + 1; j <= n-1; j++ {
			for k := j + 1; k <= n; k++ {
				a, b, c, d, g, h := at(i-1), at(i), at(j-1), at(j), at(k-1), at(k)
				removed := m.At(a, b) + m.At(c, d) + m.At(g, h)
				for _, r := range reconnections {
					xFirst, xLast := ends(r[0], b, c, d, g)
					yFirst, yLast := ends(r[1], b, c, d, g)
					gain := removed - m.At(a, xFirst) - m.At(xLast, yFirst) - m.At(yLast, h)

					out := reconnect(order, i, j, k, r)
					require.NoError(t, tour.ValidatePermutation(out, n))
					assert.InDelta(t, base-gain, tour.OrderLength(m, out), 1e-9, "i=%d j=%d k=%d %v", i, j, k, r)
				}
			}
		}
	}
}
