package onetree

import (
	"math"

	"github.com/katalvlaran/lkh/matrix"
)

// Alpha computes alpha-nearness for every pair: the increase of the minimum
// 1-tree cost when edge (i,j) is forced into it. tree must be the minimum
// 1-tree of w.
//
// For i,j ≠ 0, forcing (i,j) drops the heaviest MST edge on the tree path
// between them. That weight beta is filled in over the BFS order of the MST
// from its root, so beta[x][parent(y)] is always known when y is reached:
//
//	beta[x][y] = max(beta[x][parent(y)], w[y][parent(y)])
//
// beta is stored symmetrically; a parent visited before x was completed on
// its own outer pass. alpha = w − beta off the tree and 0 on tree edges.
// Node 0 swaps out its second-cheapest edge: alpha(0,j) = w(0,j) − w(0,Second),
// 0 for the two selected edges. The diagonal is +Inf so a node never lists
// itself as a candidate.
//
// Complexity: O(n²) time and memory.
func Alpha(w matrix.Weights, tree *OneTree) (*matrix.Dense, error) {
	n := w.N()
	out, err := matrix.New(n)
	if err != nil {
		return nil, err
	}

	order := bfsOrder(tree)
	beta := make([]float64, n*n)

	var (
		a, b    int
		x, y, p int
		val     float64
	)
	for a = 0; a < len(order); a++ {
		x = order[a]
		for b = a + 1; b < len(order); b++ {
			y = order[b]
			p = tree.Parent[y]
			if p == x {
				val = w.At(y, p)
			} else {
				val = math.Max(beta[x*n+p], w.At(y, p))
			}
			beta[x*n+y] = val
			beta[y*n+x] = val
		}
	}

	for x = 1; x < n; x++ {
		for y = x + 1; y < n; y++ {
			if tree.Contains(x, y) {
				out.Set(x, y, 0)
			} else {
				out.Set(x, y, w.At(x, y)-beta[x*n+y])
			}
		}
	}

	wSecond := w.At(0, tree.Second)
	for y = 1; y < n; y++ {
		if y == tree.First || y == tree.Second {
			out.Set(0, y, 0)
		} else {
			out.Set(0, y, w.At(0, y)-wSecond)
		}
	}
	for x = 0; x < n; x++ {
		out.Set(x, x, math.Inf(1))
	}

	return out, nil
}

// bfsOrder lists {1..n-1} breadth-first from the MST root (node 1) along
// parent→child links; every node appears after its parent.
func bfsOrder(tree *OneTree) []int {
	n := tree.Len()
	children := make([][]int, n)
	for v := 2; v < n; v++ {
		p := tree.Parent[v]
		children[p] = append(children[p], v)
	}

	order := make([]int, 0, n-1)
	order = append(order, 1)
	for i := 0; i < len(order); i++ {
		order = append(order, children[order[i]]...)
	}

	return order
}
