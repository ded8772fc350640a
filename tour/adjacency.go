package tour

import "slices"

// Adjacency is an undirected edge set indexed by node. It holds either a
// tour (degree 2 everywhere) or a 1-tree, whose degrees vary.
type Adjacency struct {
	adj [][]int
}

// NewAdjacency indexes edges over n nodes. Duplicate edges are kept once;
// endpoints outside [0,n) are ignored.
func NewAdjacency(n int, edges []Edge) *Adjacency {
	a := &Adjacency{adj: make([][]int, n)}
	for _, e := range edges {
		if e.A >= n || e.B < 0 || a.Has(e) {
			continue
		}
		a.adj[e.A] = append(a.adj[e.A], e.B)
		a.adj[e.B] = append(a.adj[e.B], e.A)
	}

	return a
}

// AdjacencyOf returns the edges of t.
func AdjacencyOf(t *Tour) *Adjacency { return NewAdjacency(t.Len(), t.Edges()) }

// Len returns the number of nodes.
func (a *Adjacency) Len() int { return len(a.adj) }

// Has reports whether e is in the set. Complexity: O(deg).
func (a *Adjacency) Has(e Edge) bool {
	if e.A < 0 || e.A >= len(a.adj) {
		return false
	}

	return slices.Contains(a.adj[e.A], e.B)
}

// Neighbours returns the nodes joined to v. The slice must not be modified.
func (a *Adjacency) Neighbours(v int) []int { return a.adj[v] }
