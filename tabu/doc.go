// Package tabu orchestrates repeated kopt local searches.
//
// A Set records the canonical hash of every visited tour, optionally as a
// FIFO window, and tracks the best tour found. Search restarts an engine
// from perturbed or re-constructed tours with the Set attached as its
// memory. Parallel runs several Searches on private matrix clones and
// merges their tabu hashes through a coordinator:
//
//	p, _ := tabu.NewParallel(m, start, prep, tabu.WithWorkers(4), tabu.WithIterations(25))
//	best, err := p.Run(ctx)
package tabu
