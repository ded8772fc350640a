package kopt

import (
	"github.com/katalvlaran/lkh/tour"
)

// fromT1 searches a sequential improving move starting at t1 over both tour
// neighbours t2. It returns the gain, the resulting tour and the endpoints
// t1,t2,t3,t4,... of the move, or gain 0 when t1 is exhausted.
func (e *Engine) fromT1(t1 int) (float64, *tour.Tour, []int) {
	succ, pred := e.tour.Around(t1)
	for _, t2 := range [2]int{succ, pred} {
		x1 := tour.NewEdge(t1, t2)
		if e.known != nil && e.known.Has(x1) {
			continue // Helsgaun rule 1: keep edges of the best-known tour
		}
		gain, next, path := e.step(e.tour, t1, t2, e.w.At(t1, t2),
			tour.NewEdgeSet(x1), tour.EdgeSet{}, []int{t1, t2})
		if gain > eps {
			return gain, next, path
		}
	}

	return 0, nil, nil
}

// step extends a sequential move on cur, where (t1,t2) is the edge broken
// last and g the partial gain so far (weights of broken edges minus weights
// of joined edges, the closing edge excluded).
//
// For every candidate t3 of t2 with g − w(t2,t3) > 0 and every tour neighbour
// t4 of t3 passing the feasibility test, the exchange is realised as a flip
// on a clone of cur. Closing with (t4,t1) yields
//
//	total = g − w(t2,t3) + w(t3,t4) − w(t4,t1)
//
// which is accepted when positive. Otherwise, while fewer than Depth edges are
// broken, the search recurses on the flipped tour with t4 as the new free
// endpoint: the closing edge (t1,t4) is the next one broken. cur is never
// mutated, so backtracking is simply trying the next t4, t3 and t2.
//
// Tentative tours already in memory are pruned even when improving.
func (e *Engine) step(
	cur *tour.Tour,
	t1, t2 int,
	g float64,
	broken, joined tour.EdgeSet,
	path []int,
) (float64, *tour.Tour, []int) {
	forward := cur.Succ(t1) == t2

	var (
		g1, total float64
		y1, x2    tour.Edge
		next      *tour.Tour
	)
	for _, c := range e.lists.Of(t2) {
		t3 := c.Node
		if t3 == t1 || t3 == t2 {
			continue
		}
		g1 = g - e.w.At(t2, t3)
		if g1 <= eps {
			continue
		}
		y1 = tour.NewEdge(t2, t3)
		if cur.Contains(y1) || broken.Has(y1) || joined.Has(y1) {
			continue
		}

		succ3, pred3 := cur.Around(t3)
		for _, t4 := range [2]int{succ3, pred3} {
			if t4 == t1 || t4 == t2 || !feasible(cur, forward, t1, t2, t3, t4) {
				continue
			}
			x2 = tour.NewEdge(t3, t4)
			if broken.Has(x2) || joined.Has(x2) {
				continue
			}

			next = cur.Clone()
			if forward {
				next.Flip(t2, t4) // t1 t2 … t4 t3  →  t1 t4 … t2 t3
			} else {
				next.Flip(t4, t2) // t3 t4 … t2 t1  →  t3 t2 … t4 t1
			}
			if e.memory.Contains(next.Hash()) {
				continue
			}

			total = g1 + e.w.At(t3, t4) - e.w.At(t4, t1)
			branch := append(path[:len(path):len(path)], t3, t4)
			if total > eps {
				return total, next, branch
			}

			nextBroken := broken.With(x2)
			if nextBroken.Len() < e.opts.Depth {
				gain, deeper, full := e.step(next, t1, t4, g1+e.w.At(t3, t4),
					nextBroken, joined.With(y1), branch)
				if gain > eps {
					return gain, deeper, full
				}
			}
		}
	}

	return 0, nil, nil
}

// feasible is the sequential exchange test: closing (t4,t1) after breaking
// (t1,t2),(t3,t4) and joining (t2,t3) must leave a single cycle.
//
// With t2 = succ(t1) that holds when t4 lies on the arc t1→t3 and t1 on the
// arc t4→t2, i.e. t4 = pred(t3). The mirrored orientation (t2 = pred(t1))
// swaps the arcs' directions, giving t4 = succ(t3).
func feasible(cur *tour.Tour, forward bool, t1, t2, t3, t4 int) bool {
	if forward {
		return cur.Between(t1, t3, t4) && cur.Between(t4, t2, t1)
	}

	return cur.Between(t3, t1, t4) && cur.Between(t2, t4, t1)
}
