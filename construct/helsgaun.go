package construct

import (
	"math"
	"math/rand"

	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/candidate"
	"github.com/katalvlaran/lkh/internal/rng"
	"github.com/katalvlaran/lkh/matrix"
	"github.com/katalvlaran/lkh/tour"
)

// Helsgaun builds a randomized tour guided by alpha-nearness.
//
// From a random start, each step moves from the current node to the first
// available choice among:
//  1. a random unvisited node with alpha = 0 (a 1-tree edge);
//  2. the unvisited neighbour over a best-known edge with the lowest alpha,
//     if that alpha is below excess (skipped when best is nil). best is the
//     best tour found so far or, before any, the 1-tree;
//  3. a random unvisited candidate;
//  4. any random unvisited node.
//
// The last fallback guarantees termination; ErrNoEdge is only returned if it
// finds nothing, which means the inputs disagree on n.
//
// Complexity: O(n²) time.
func Helsgaun(
	alpha, w matrix.Weights,
	best *tour.Adjacency,
	lists *candidate.Lists,
	excess float64,
	r *rand.Rand,
) (order []int, length float64, err error) {
	n := w.N()
	if alpha.N() != n || lists.Len() != n || (best != nil && best.Len() != n) {
		return nil, 0, errors.Wrapf(ErrNoEdge, "size mismatch: n=%d alpha=%d lists=%d", n, alpha.N(), lists.Len())
	}

	var (
		visited = make([]bool, n)
		pool    = make([]int, 0, n)
		prev    = r.Intn(n)
		next    int
		ok      bool
		k       int
	)
	order = make([]int, 0, n)
	order = append(order, prev)
	visited[prev] = true

	for k = 1; k < n; k++ {
		next, ok = zeroAlpha(alpha, prev, visited, pool, r)
		if !ok {
			next, ok = bestTourNeighbour(alpha, best, prev, visited, excess)
		}
		if !ok {
			next, ok = randomCandidate(lists, prev, visited, pool, r)
		}
		if !ok {
			next, ok = randomUnvisited(n, visited, pool, r)
		}
		if !ok {
			return nil, 0, errors.Wrapf(ErrNoEdge, "from node %d after %d steps", prev, k)
		}
		visited[next] = true
		order = append(order, next)
		length += w.At(prev, next)
		prev = next
	}
	length += w.At(prev, order[0])

	return order, length, nil
}

// FastHelsgaun is Helsgaun followed by a 2-opt polish of the result.
func FastHelsgaun(
	alpha, w matrix.Weights,
	best *tour.Adjacency,
	lists *candidate.Lists,
	excess float64,
	r *rand.Rand,
) ([]int, float64, error) {
	order, _, err := Helsgaun(alpha, w, best, lists, excess, r)
	if err != nil {
		return nil, 0, err
	}
	order, length := TwoOpt(w, order)

	return order, length, nil
}

func zeroAlpha(alpha matrix.Weights, from int, visited []bool, pool []int, r *rand.Rand) (int, bool) {
	pool = pool[:0]
	for j := 0; j < alpha.N(); j++ {
		if j != from && !visited[j] && alpha.At(from, j) == 0 {
			pool = append(pool, j)
		}
	}

	return rng.Pick(pool, r)
}

func bestTourNeighbour(alpha matrix.Weights, best *tour.Adjacency, from int, visited []bool, excess float64) (int, bool) {
	if best == nil {
		return -1, false
	}
	var (
		node = -1
		low  = math.Inf(1)
	)
	for _, j := range best.Neighbours(from) {
		if a := alpha.At(from, j); !visited[j] && a < excess && a < low {
			node, low = j, a
		}
	}

	return node, node != -1
}

func randomCandidate(lists *candidate.Lists, from int, visited []bool, pool []int, r *rand.Rand) (int, bool) {
	pool = pool[:0]
	for _, e := range lists.Of(from) {
		if !visited[e.Node] {
			pool = append(pool, e.Node)
		}
	}

	return rng.Pick(pool, r)
}

func randomUnvisited(n int, visited []bool, pool []int, r *rand.Rand) (int, bool) {
	pool = pool[:0]
	for j := 0; j < n; j++ {
		if !visited[j] {
			pool = append(pool, j)
		}
	}

	return rng.Pick(pool, r)
}
