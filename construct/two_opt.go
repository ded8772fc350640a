package construct

import (
	"slices"

	"github.com/katalvlaran/lkh/matrix"
	"github.com/katalvlaran/lkh/tour"
)

// eps is the minimum gain for an accepted 2-opt move.
const eps = 1e-10

// TwoOpt runs deterministic first-improvement 2-opt on order and returns the
// improved order with its length. The input slice is not modified.
//
// For positions 1 ≤ i < k ≤ n−1, with a=T[i−1], b=T[i], c=T[k], d=T[k+1 mod n],
// the move replaces (a,b),(c,d) by (a,c),(b,d) and reverses T[i..k]:
//
//	Δ = w(a,c) + w(b,d) − w(a,b) − w(c,d)
//
// and is accepted when Δ < −eps. Scanning restarts after every accepted move.
//
// Complexity: O(n²) per pass; the number of passes is instance dependent.
func TwoOpt(w matrix.Weights, order []int) ([]int, float64) {
	cur := slices.Clone(order)
	n := len(cur)
	length := tour.OrderLength(w, cur)
	if n < 4 {
		return cur, length
	}

	var (
		a, b, c, d int
		delta      float64
		i, k       int
		improved   = true
	)
	for improved {
		improved = false
	scan:
		for i = 1; i <= n-2; i++ {
			for k = i + 1; k <= n-1; k++ {
				a, b = cur[i-1], cur[i]
				c, d = cur[k], cur[(k+1)%n]
				if a == d {
					continue // the whole tour; reversal is a no-op
				}
				delta = w.At(a, c) + w.At(b, d) - w.At(a, b) - w.At(c, d)
				if delta < -eps {
					slices.Reverse(cur[i : k+1])
					length += delta
					improved = true
					break scan
				}
			}
		}
	}

	return cur, length
}
