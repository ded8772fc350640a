// Package construct builds initial tours for the local search.
//
//   - Greedy: nearest-unvisited extension from a given start, O(n²).
//   - Helsgaun: randomized alpha-guided construction used by LKH at start and
//     at every restart.
//   - FastHelsgaun: Helsgaun followed by a first-improvement 2-opt polish.
//   - TwoOpt: the polish itself, usable on any order.
//
// All builders return a visiting order (a permutation of 0..n-1) together
// with its length. Randomized builders draw only from the *rand.Rand they
// are given.
package construct
