// Package kopt implements the Lin-Kernighan (LK) and Lin-Kernighan-Helsgaun
// (LKH) move search.
//
// An Engine owns one search session. Improve looks for a single improving
// sequential k-opt move: starting from t1 it breaks a tour edge (t1,t2),
// joins (t2,t3) to a candidate of t2 while the partial gain stays positive,
// breaks (t3,t4) with t4 chosen so that closing (t4,t1) keeps one cycle, and
// either accepts the closed exchange or goes deeper with t4 as the new free
// endpoint, up to Depth broken edges. Every tentative exchange is a Flip on a
// clone, so the committed tour only changes when a move is accepted.
//
// When no sequential move improves, a double bridge (a non-sequential 4-opt
// that 2- and 3-opt cannot reach) is attempted. Don't-look bits skip nodes
// whose neighbourhood has not changed since they last failed.
//
// LK and LKH differ in the candidate source (nearest neighbours vs
// alpha-nearness from PrepareLKH) and in LKH's first-level rule: an edge of
// the best-known tour is never chosen as (t1,t2). Until a tour is known the
// 1-tree edges play that role.
//
// WithMoves swaps the sequential search for first-improvement 2-opt or 3-opt
// over the same tour, memory, don't-look bits and metrics.
//
// Determinism: the search itself draws no random numbers; the same tour,
// candidates and memory produce the same moves.
package kopt
