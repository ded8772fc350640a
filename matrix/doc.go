// Package matrix provides the weight matrix consumed by the local search.
//
// Dense is a symmetric n×n matrix stored in a flat row-major slice for cache
// friendliness; At is the hot-path accessor and performs no bounds checks
// beyond the slice's own. Penalized is a read-only view adding node penalties
// (w[i][j] + pi[i] + pi[j]) used by Held-Karp subgradient ascent, so the base
// buffer is never written during bound computation.
//
// All algorithms read weights through the Weights interface.
package matrix
