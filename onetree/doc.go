// Package onetree computes Held-Karp style lower bounds and the alpha-nearness
// measure used to rank candidate edges.
//
// A minimum 1-tree is an MST over nodes {1..n-1} plus the two cheapest edges
// of node 0. Its cost bounds every tour from below, and it becomes a tour
// exactly when every node has degree 2. Subgradient ascent (Optimize) adds
// node penalties pi to push degrees toward 2 and tighten the bound
// L(pi) = cost(T(pi)) − 2·Σpi.
//
// Alpha-nearness (Alpha) is the cost increase of the minimum 1-tree when an
// edge is forced in. Edges with small alpha are far better tour edge
// predictors than plain nearest neighbours.
//
// Determinism: no randomness; heap ties resolve by (weight, u, v) and node-0
// ties by lower node id.
//
// Complexity:
//   - Build:    O(n² log n)
//   - Optimize: O(iters · n² log n)
//   - Alpha:    O(n²) time and memory
package onetree
