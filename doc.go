// Package lkh is a local-search toolkit for the symmetric Traveling
// Salesman Problem.
//
// The module is organised in small packages, each usable on its own:
//
//	matrix/     dense symmetric weights, Euclidean builder, penalised view
//	tour/       array tour with O(1) adjacency, flips, canonical hash
//	onetree/    minimum 1-tree, Held-Karp subgradient ascent, alpha-nearness
//	candidate/  alpha-ranked and distance-ranked candidate lists
//	construct/  greedy and Helsgaun start tours, 2-opt polish
//	kopt/       Lin-Kernighan, Lin-Kernighan-Helsgaun, 2-opt and 3-opt search
//	tabu/       tabu set, restart search, parallel workers + coordinator
//	tsp/        Solve dispatcher over all of the above
//	config/     TOML/YAML run configuration
//	metrics/    (length, gain) sample hook
//
// A quick start:
//
//	m, _, _ := matrix.RandomEuclidean(200, rand.New(rand.NewSource(1)))
//	res, err := tsp.Solve(ctx, m, tsp.Options{Algo: tsp.ParallelLKH})
//
// The cmd/lkh binary exposes the same through "lkh solve" and "lkh bound".
package lkh
