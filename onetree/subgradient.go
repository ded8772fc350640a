package onetree

import (
	"math"

	"github.com/katalvlaran/lkh/matrix"
)

// Subgradient schedule constants.
const (
	// DefaultMaxIter caps the number of ascent iterations.
	DefaultMaxIter = 500
	// initialStep is the starting step size t.
	initialStep = 1e-4
	// minStep stops the ascent once t underflows.
	minStep = 1e-10
	// improveEps is the margin a bound must beat the best by to count as an improvement.
	improveEps = 1e-6
)

// Result is the outcome of Held-Karp subgradient ascent.
type Result struct {
	// Pi holds the node penalties that produced Bound.
	Pi []float64
	// Bound is the best lower bound seen: cost(T(pi)) − 2·Σpi.
	Bound float64
	// Tree is the minimum 1-tree under the penalized weights for Pi.
	Tree *OneTree
	// Iterations is the number of 1-trees built by the ascent.
	Iterations int
}

// Optimize runs Held-Karp subgradient ascent on w.
//
// Each iteration builds the minimum 1-tree under w[i][j] + pi[i] + pi[j]
// (through a matrix.Penalized view, so w itself is never written), evaluates
// L(pi) = cost − 2·Σpi and moves pi along v = deg − 2 blended with the
// previous subgradient: pi += t·(0.7·v + 0.3·v_prev).
//
// Step schedule: while in the first period and the bound keeps increasing, t
// doubles each iteration; the first non-increase halves t and ends that phase.
// At the end of each period the period length and t are halved, but both are
// kept (doubled back) if the best bound improved within the last 2
// iterations. The ascent stops when the period length reaches zero, t drops
// below 1e-10, the 1-tree is a tour (Σ|v| = 0) or maxIter is reached.
//
// maxIter ≤ 0 selects DefaultMaxIter.
//
// Complexity: O(maxIter · n² log n).
func Optimize(w matrix.Weights, maxIter int) (*Result, error) {
	n := w.N()
	if maxIter <= 0 {
		maxIter = DefaultMaxIter
	}

	var (
		pi      = make([]float64, n)
		v       = make([]int, n)
		vPrev   = make([]int, n)
		bestPi  = make([]float64, n)
		bestW   = math.Inf(-1)
		wCur    = math.Inf(-1)
		wPrev   float64
		t       = initialStep
		period  = max(n/2, 1)
		next    = period
		first   = true
		rising  = true
		lastImp int
		iter    int
		i       int
		absSum  int
		sumPi   float64
		tree    *OneTree
		err     error
	)
	view, err := matrix.Penalize(w, pi)
	if err != nil {
		return nil, err
	}

	for iter = 1; iter <= maxIter; iter++ {
		tree, err = Build(view)
		if err != nil {
			return nil, err
		}

		sumPi = 0
		for i = 0; i < n; i++ {
			sumPi += pi[i]
		}
		wPrev, wCur = wCur, tree.Cost-2*sumPi
		if wCur > bestW+improveEps {
			bestW = wCur
			copy(bestPi, pi)
			lastImp = iter
		}

		v, vPrev = vPrev, v
		absSum = 0
		for i = 0; i < n; i++ {
			v[i] = tree.Degree[i] - 2
			if v[i] < 0 {
				absSum -= v[i]
			} else {
				absSum += v[i]
			}
		}
		if absSum == 0 {
			break // the 1-tree is a tour; no ascent direction left
		}

		for i = 0; i < n; i++ {
			pi[i] += t * (0.7*float64(v[i]) + 0.3*float64(vPrev[i]))
		}

		period--
		if first && rising {
			if wCur <= wPrev {
				rising = false
				t /= 2
			} else {
				t *= 2
			}
		}
		if period == 0 {
			first = false
			next /= 2
			t /= 2
			if iter-lastImp <= 2 {
				next *= 2
				t *= 2
			}
			period = next
		}
		if period == 0 || t < minStep {
			break
		}
	}

	// Rebuild the tree for the best penalties so callers get a consistent pair.
	best, err := matrix.Penalize(w, bestPi)
	if err != nil {
		return nil, err
	}
	tree, err = Build(best)
	if err != nil {
		return nil, err
	}

	return &Result{
		Pi:         bestPi,
		Bound:      bestW,
		Tree:       tree,
		Iterations: min(iter, maxIter),
	}, nil
}

// Bound returns the plain 1-tree lower bound of w (all penalties zero).
func Bound(w matrix.Weights) (float64, error) {
	t, err := Build(w)
	if err != nil {
		return 0, err
	}

	return t.Cost, nil
}
