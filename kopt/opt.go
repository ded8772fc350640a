package kopt

import (
	"github.com/katalvlaran/lkh/metrics"
	"github.com/katalvlaran/lkh/tour"
)

// segment is one of the two inner arcs of a 3-opt cut, forward or reversed.
type segment uint8

const (
	segS1  segment = iota // T[i..j-1]
	segS1R                // T[i..j-1] reversed
	segS2                 // T[j..k-1]
	segS2R                // T[j..k-1] reversed
)

// reconnections are the seven ways of laying S1 and S2 back between the
// fixed prefix and tail, identity excluded.
var reconnections = [7][2]segment{
	{segS1R, segS2}, {segS1, segS2R}, {segS2R, segS1R}, {segS1R, segS2R},
	{segS2, segS1R}, {segS2R, segS1}, {segS2, segS1},
}

// improveTwoOpt applies the first improving 2-opt move. For positions
// 1 ≤ i < k ≤ n−1 with a=T[i−1], b=T[i], c=T[k], d=T[k+1], the move
// replaces (a,b),(c,d) by (a,c),(b,d):
//
//	gain = w(a,b) + w(c,d) − w(a,c) − w(b,d)
//
// Don't-look bits mask the outer node a. Complexity: O(n²) per call.
func (e *Engine) improveTwoOpt() (float64, error) {
	n := e.tour.Len()
	var (
		i, k       int
		a, b, c, d int
		gain       float64
		next       *tour.Tour
	)
	for i = 1; i <= n-2; i++ {
		a, b = e.tour.At(i-1), e.tour.At(i)
		if e.masked(a) {
			continue
		}
		for k = i + 1; k <= n-1; k++ {
			c, d = e.tour.At(k), e.tour.At(k+1)
			if a == d {
				continue
			}
			gain = e.w.At(a, b) + e.w.At(c, d) - e.w.At(a, c) - e.w.At(b, d)
			if gain <= eps {
				continue
			}
			next = e.tour.Clone()
			next.Flip(b, c)
			if e.memory.Contains(next.Hash()) {
				continue
			}

			return gain, e.commit(gain, next, []int{a, b, c, d}, metrics.TwoOpt)
		}
		if e.dlb != nil {
			e.dlb[a] = true
		}
	}

	return 0, nil
}

// improveThreeOpt applies the first improving 3-opt move. The tour is read
// as P + S1 + S2 + S3 with S1=T[i..j-1], S2=T[j..k-1] and
// 1 ≤ i < j < k ≤ n; the cut edges are (a,b)=(T[i−1],T[i]),
// (c,d)=(T[j−1],T[j]) and (g,h)=(T[k−1],T[k]). Each reconnection P+X+Y+S3
// joins (a,first X), (last X,first Y) and (last Y,h).
//
// Don't-look bits mask a. Complexity: O(n³) per call.
func (e *Engine) improveThreeOpt() (float64, error) {
	n := e.tour.Len()
	var (
		i, j, k                      int
		a, b, c, d, g, h             int
		xFirst, xLast, yFirst, yLast int
		removed, gain                float64
		next                         *tour.Tour
		err                          error
	)
	for i = 1; i <= n-2; i++ {
		a, b = e.tour.At(i-1), e.tour.At(i)
		if e.masked(a) {
			continue
		}
		for j = i + 1; j <= n-1; j++ {
			c, d = e.tour.At(j-1), e.tour.At(j)
			for k = j + 1; k <= n; k++ {
				g, h = e.tour.At(k-1), e.tour.At(k)
				removed = e.w.At(a, b) + e.w.At(c, d) + e.w.At(g, h)
				for _, r := range reconnections {
					xFirst, xLast = ends(r[0], b, c, d, g)
					yFirst, yLast = ends(r[1], b, c, d, g)
					gain = removed - e.w.At(a, xFirst) - e.w.At(xLast, yFirst) - e.w.At(yLast, h)
					if gain <= eps {
						continue
					}
					if next, err = tour.New(reconnect(e.tour.Order(), i, j, k, r)); err != nil {
						return 0, err
					}
					if e.memory.Contains(next.Hash()) {
						continue
					}

					return gain, e.commit(gain, next, []int{a, b, c, d, g, h}, metrics.ThreeOpt)
				}
			}
		}
		if e.dlb != nil {
			e.dlb[a] = true
		}
	}

	return 0, nil
}

// ends maps a segment to its first and last node given b=T[i], c=T[j−1],
// d=T[j] and g=T[k−1].
func ends(s segment, b, c, d, g int) (first, last int) {
	switch s {
	case segS1:
		return b, c
	case segS1R:
		return c, b
	case segS2:
		return d, g
	default:
		return g, d
	}
}

// reconnect assembles P + X + Y + S3 from order.
func reconnect(order []int, i, j, k int, r [2]segment) []int {
	out := make([]int, 0, len(order))
	out = append(out, order[:i]...)
	for _, s := range r {
		switch s {
		case segS1:
			out = append(out, order[i:j]...)
		case segS1R:
			out = appendReversed(out, order[i:j])
		case segS2:
			out = append(out, order[j:k]...)
		default:
			out = appendReversed(out, order[j:k])
		}
	}

	return append(out, order[k:]...)
}

func appendReversed(out, seg []int) []int {
	for t := len(seg) - 1; t >= 0; t-- {
		out = append(out, seg[t])
	}

	return out
}
