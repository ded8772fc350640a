package construct

import (
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/matrix"
)

// Sentinel errors.
var (
	// ErrNoEdge is returned when construction cannot extend the partial tour.
	// It signals a contradictory candidate/excess configuration and is fatal.
	ErrNoEdge = errors.New("construct: no edge found to extend the tour")

	// ErrStart is returned for a start node outside [0,n).
	ErrStart = errors.New("construct: start node out of range")
)

// Greedy builds a nearest-neighbour tour from start: repeatedly move to the
// closest unvisited node, ties broken by the lower node id.
//
// Complexity: O(n²) time, O(n) memory.
func Greedy(w matrix.Weights, start int) (order []int, length float64, err error) {
	n := w.N()
	if start < 0 || start >= n {
		return nil, 0, errors.Wrapf(ErrStart, "start=%d, n=%d", start, n)
	}

	var (
		visited = make([]bool, n)
		prev    = start
		next    int
		best, c float64
		j, k    int
	)
	order = make([]int, 0, n)
	order = append(order, start)
	visited[start] = true

	for k = 1; k < n; k++ {
		next, best = -1, math.Inf(1)
		for j = 0; j < n; j++ {
			if visited[j] {
				continue
			}
			c = w.At(prev, j)
			if next == -1 || c < best {
				next, best = j, c
			}
		}
		visited[next] = true
		order = append(order, next)
		length += best
		prev = next
	}
	length += w.At(prev, start)

	return order, length, nil
}
