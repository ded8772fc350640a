package tour

// Generate applies an edge exchange without touching t:
// edges' = (edges(t) − removed) ∪ added. It returns the visiting order of the
// resulting cycle starting at node 0, or ok=false when edges' is not a single
// Hamiltonian cycle (too few edges, a node of degree ≠ 2, or a subtour).
// Removing an edge that is not in t has no effect.
//
// Complexity: O(n) time and memory.
func (t *Tour) Generate(removed, added []Edge) (ok bool, order []int) {
	n := len(t.order)
	if n < 3 {
		return false, nil
	}

	set := make(map[Edge]struct{}, n+len(added))
	for _, e := range t.Edges() {
		set[e] = struct{}{}
	}
	for _, e := range removed {
		delete(set, e)
	}
	for _, e := range added {
		if e.A == e.B {
			return false, nil
		}
		set[e] = struct{}{}
	}
	if len(set) < n {
		return false, nil
	}

	// Degree check: every node needs exactly two incident edges.
	adj := make([][2]int, n)
	deg := make([]int, n)
	for e := range set {
		if deg[e.A] == 2 || deg[e.B] == 2 {
			return false, nil
		}
		adj[e.A][deg[e.A]] = e.B
		deg[e.A]++
		adj[e.B][deg[e.B]] = e.A
		deg[e.B]++
	}
	for _, d := range deg {
		if d != 2 {
			return false, nil
		}
	}

	// Walk from 0 towards its smaller neighbour so the output is deterministic.
	var (
		visited    = make([]bool, n)
		prev, cur  = 0, min(adj[0][0], adj[0][1])
		next, step int
	)
	order = make([]int, 0, n)
	order = append(order, 0)
	visited[0] = true
	for step = 1; step < n; step++ {
		if visited[cur] {
			return false, nil // closed a subtour early
		}
		visited[cur] = true
		order = append(order, cur)
		next = adj[cur][0]
		if next == prev {
			next = adj[cur][1]
		}
		prev, cur = cur, next
	}
	if cur != 0 {
		return false, nil
	}

	return true, order
}

// Apply replaces the tour with order, which must be a permutation of the same
// nodes (for example the output of Generate).
func (t *Tour) Apply(order []int) {
	copy(t.order, order)
	for i, v := range t.order {
		t.pos[v] = i
	}
}
