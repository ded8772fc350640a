package tour

import "slices"

// Edge is an unordered pair of nodes in canonical form: A > B.
type Edge struct {
	A, B int
}

// NewEdge returns the canonical edge joining u and v.
func NewEdge(u, v int) Edge {
	if u > v {
		return Edge{A: u, B: v}
	}

	return Edge{A: v, B: u}
}

// Other returns the endpoint of e that is not x.
func (e Edge) Other(x int) int {
	if e.A == x {
		return e.B
	}

	return e.A
}

// EdgeSet is a small immutable set of edges backed by a slice.
// With returns a copy, so every search branch owns its own set and
// backtracking is just dropping the branch's value.
type EdgeSet struct {
	edges []Edge
}

// NewEdgeSet builds a set from es, skipping duplicates.
func NewEdgeSet(es ...Edge) EdgeSet {
	var s EdgeSet
	for _, e := range es {
		if !s.Has(e) {
			s.edges = append(s.edges, e)
		}
	}

	return s
}

// With returns a new set holding s plus es. s is not modified.
// Complexity: O(len(s)+len(es)).
func (s EdgeSet) With(es ...Edge) EdgeSet {
	out := EdgeSet{edges: make([]Edge, len(s.edges), len(s.edges)+len(es))}
	copy(out.edges, s.edges)
	for _, e := range es {
		if !out.Has(e) {
			out.edges = append(out.edges, e)
		}
	}

	return out
}

// Has reports membership. Sets stay at most a few k-opt levels deep, so a
// linear scan beats hashing.
func (s EdgeSet) Has(e Edge) bool {
	return slices.Contains(s.edges, e)
}

// Len returns the number of edges.
func (s EdgeSet) Len() int { return len(s.edges) }

// Slice returns a copy of the edges in insertion order.
func (s EdgeSet) Slice() []Edge { return slices.Clone(s.edges) }
