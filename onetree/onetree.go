package onetree

import (
	"container/heap"
	"math"

	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/matrix"
	"github.com/katalvlaran/lkh/tour"
)

// Sentinel errors.
var (
	// ErrTooSmall is returned for instances with fewer than 3 nodes.
	ErrTooSmall = errors.New("onetree: need at least 3 nodes")

	// ErrDisconnected is returned when Prim cannot reach every node of
	// {1..n-1}, which only happens with +Inf weights.
	ErrDisconnected = errors.New("onetree: nodes 1..n-1 are not connected")
)

// OneTree is a minimum 1-tree: an MST over nodes {1..n-1} plus the two
// cheapest edges incident to node 0.
type OneTree struct {
	// Cost is the total weight (MST + both node-0 edges) under the weights
	// the tree was built with.
	Cost float64
	// Parent maps every node of {2..n-1} to its MST parent. Parent[1] (the
	// Prim root) and Parent[0] are -1.
	Parent []int
	// Degree is the degree of each node in the 1-tree.
	Degree []int
	// First and Second are the node-0 neighbours, First the cheaper one.
	First, Second int
}

// Len returns the number of nodes.
func (t *OneTree) Len() int { return len(t.Parent) }

// Contains reports whether the 1-tree uses edge (i,j).
// Complexity: O(1).
func (t *OneTree) Contains(i, j int) bool {
	switch {
	case i == j:
		return false
	case i == 0:
		return j == t.First || j == t.Second
	case j == 0:
		return i == t.First || i == t.Second
	default:
		return t.Parent[i] == j || t.Parent[j] == i
	}
}

// Edges lists the n edges of the 1-tree: MST edges in node order, then the
// two node-0 edges.
func (t *OneTree) Edges() []tour.Edge {
	n := len(t.Parent)
	out := make([]tour.Edge, 0, n)
	for v := 2; v < n; v++ {
		out = append(out, tour.NewEdge(v, t.Parent[v]))
	}

	return append(out, tour.NewEdge(0, t.First), tour.NewEdge(0, t.Second))
}

// Build computes the minimum 1-tree of w.
//
// Stage 1 (MST): lazy Prim from node 1 over {1..n-1} with a binary heap of
// frontier edges ordered by (weight, u, v), so equal weights resolve toward
// lower node ids deterministically.
// Stage 2 (root): the two cheapest node-0 edges with distinct endpoints; ties
// go to the lower node id.
//
// Complexity: O(n² log n) time, O(n²) heap memory in the worst case.
func Build(w matrix.Weights) (*OneTree, error) {
	n := w.N()
	if n < 3 {
		return nil, errors.Wrapf(ErrTooSmall, "n=%d", n)
	}

	t := &OneTree{
		Parent: make([]int, n),
		Degree: make([]int, n),
	}
	for i := range t.Parent {
		t.Parent[i] = -1
	}

	// ---- Stage 1: Prim over {1..n-1}.
	var (
		visited = make([]bool, n)
		pq      = make(edgePQ, 0, n)
		e       frontierEdge
		added   int
		v       int
	)
	heap.Init(&pq)
	push := func(u int) {
		visited[u] = true
		for v = 1; v < n; v++ {
			if !visited[v] {
				heap.Push(&pq, frontierEdge{w: w.At(u, v), u: u, v: v})
			}
		}
	}
	push(1)
	for added < n-2 && pq.Len() > 0 {
		e = heap.Pop(&pq).(frontierEdge)
		if visited[e.v] {
			continue // stale entry; e.v joined through a cheaper edge
		}
		if math.IsInf(e.w, 1) {
			break
		}
		t.Parent[e.v] = e.u
		t.Degree[e.u]++
		t.Degree[e.v]++
		t.Cost += e.w
		added++
		push(e.v)
	}
	if added < n-2 {
		return nil, errors.Wrapf(ErrDisconnected, "reached %d of %d nodes", added+1, n-1)
	}

	// ---- Stage 2: two cheapest node-0 edges.
	var (
		first, second   = -1, -1
		wFirst, wSecond = math.Inf(1), math.Inf(1)
		c               float64
	)
	for v = 1; v < n; v++ {
		c = w.At(0, v)
		if first == -1 || c < wFirst {
			second, wSecond = first, wFirst
			first, wFirst = v, c
		} else if second == -1 || c < wSecond {
			second, wSecond = v, c
		}
	}
	t.First, t.Second = first, second
	t.Cost += wFirst + wSecond
	t.Degree[0] = 2
	t.Degree[first]++
	t.Degree[second]++

	return t, nil
}

// frontierEdge is a heap entry: tree node u offers edge (u,v) at weight w.
type frontierEdge struct {
	w    float64
	u, v int
}

// edgePQ implements heap.Interface as a min-heap of frontier edges ordered by
// (w, u, v).
type edgePQ []frontierEdge

// Len returns the number of edges in the priority queue.
func (pq edgePQ) Len() int { return len(pq) }

// Less orders by weight, then by the lower endpoint ids.
func (pq edgePQ) Less(i, j int) bool {
	a, b := pq[i], pq[j]
	if a.w != b.w {
		return a.w < b.w
	}
	if a.u != b.u {
		return a.u < b.u
	}

	return a.v < b.v
}

// Swap swaps elements at indices i and j.
func (pq edgePQ) Swap(i, j int) { pq[i], pq[j] = pq[j], pq[i] }

// Push appends a frontierEdge. Called by heap.Push.
func (pq *edgePQ) Push(x interface{}) { *pq = append(*pq, x.(frontierEdge)) }

// Pop removes and returns the last element. Called by heap.Pop.
func (pq *edgePQ) Pop() interface{} {
	old := *pq
	n := len(old)
	e := old[n-1]
	*pq = old[:n-1]

	return e
}
