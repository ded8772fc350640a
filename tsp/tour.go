package tsp

import "slices"

// canonical rotates order to start at node 0 and orients it so that the
// smaller of node 0's two neighbours comes second. Equal cycles therefore
// print identically. order is not modified.
//
// Complexity: O(n) time and space.
func canonical(order []int) []int {
	n := len(order)
	if n < 3 {
		return slices.Clone(order)
	}
	p := slices.Index(order, 0)
	out := make([]int, n)
	for i := range out {
		out[i] = order[(p+i)%n]
	}
	if out[1] > out[n-1] {
		slices.Reverse(out[1:])
	}

	return out
}
