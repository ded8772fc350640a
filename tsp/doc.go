// Package tsp is the unified entry point over the local-search solvers.
//
// Solve validates the matrix, builds a start tour when none is given and
// dispatches to one of:
//
//   - LK / LKH / TwoOpt / ThreeOpt: a single descent of the kopt engine;
//   - the Tabu variants: tabu restarts (tabu.Search);
//   - the Parallel variants: W tabu workers with a shared hash
//     coordinator (tabu.Parallel).
//
// TwoOpt and ThreeOpt run the same engine over the plain 2-opt and 3-opt
// neighbourhoods.
//
// LKH variants first run the Held-Karp ascent and alpha-nearness once per
// instance; the resulting lower bound is returned in Result.Bound.
package tsp
