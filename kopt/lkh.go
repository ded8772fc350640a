package kopt

import (
	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/candidate"
	"github.com/katalvlaran/lkh/matrix"
	"github.com/katalvlaran/lkh/onetree"
	"github.com/katalvlaran/lkh/tour"
)

// Prepared is the per-instance LKH state: alpha-nearness, candidates, the
// excess cutoff and the lower bound. It is read-only once built and may be
// shared by every restart and worker on the same instance.
type Prepared struct {
	// Alpha is alpha-nearness under the penalized weights.
	Alpha *matrix.Dense
	// Lists are the alpha-ranked candidates.
	Lists *candidate.Lists
	// Excess is the alpha cutoff used for Lists and Helsgaun construction.
	Excess float64
	// Bound is the best Held-Karp bound (or the plain 1-tree cost when
	// subgradient ascent is disabled).
	Bound float64
	// Pi holds the node penalties used for Alpha (all zero without ascent).
	Pi []float64
	// Tree is the minimum 1-tree the alpha values were derived from.
	Tree *onetree.OneTree
	// Known indexes the edges of Tree. It seeds the best-known edge set of
	// engines and of Helsgaun construction until a tour is known.
	Known *tour.Adjacency
}

// PrepareLKH runs the candidate pipeline once per instance:
// subgradient ascent (optional) → minimum 1-tree under the penalties →
// alpha-nearness → excess → alpha candidates capped at CandidateSize
// (0 keeps all). w is only read.
//
// Complexity: dominated by the ascent, O(iters · n² log n).
func PrepareLKH(w matrix.Weights, opts ...Option) (*Prepared, error) {
	o := Build(opts...)
	if err := o.Validate(); err != nil {
		return nil, err
	}
	n := w.N()
	if o.CandidateSize >= n {
		return nil, errors.Wrapf(ErrCandidateSize, "size=%d, n=%d", o.CandidateSize, n)
	}
	logger := o.logger()

	prep := &Prepared{Pi: make([]float64, n)}
	if o.Subgradient {
		res, err := onetree.Optimize(w, o.SubgradientIter)
		if err != nil {
			return nil, err
		}
		prep.Pi, prep.Bound, prep.Tree = res.Pi, res.Bound, res.Tree
		logger.Debug("subgradient done", "bound", res.Bound, "iterations", res.Iterations)
	} else {
		tree, err := onetree.Build(w)
		if err != nil {
			return nil, err
		}
		prep.Tree, prep.Bound = tree, tree.Cost
	}

	prep.Known = tour.NewAdjacency(n, prep.Tree.Edges())

	view, err := matrix.Penalize(w, prep.Pi)
	if err != nil {
		return nil, err
	}
	prep.Alpha, err = onetree.Alpha(view, prep.Tree)
	if err != nil {
		return nil, err
	}

	prep.Excess = o.Excess
	if prep.Excess <= 0 {
		prep.Excess = candidate.DefaultExcess(prep.Tree.Cost, n, o.ExcessFactor)
	}
	prep.Lists = candidate.FromAlpha(prep.Alpha, w, prep.Excess, o.CandidateSize)
	logger.Debug("lkh candidates ready",
		"excess", prep.Excess, "max_candidates", prep.Lists.MaxLen(), "bound", prep.Bound)

	return prep, nil
}

// BestKnown returns the edges of order, or Known when order is nil.
func (p *Prepared) BestKnown(order []int) (*tour.Adjacency, error) {
	if order == nil {
		return p.Known, nil
	}
	t, err := tour.New(order)
	if err != nil {
		return nil, err
	}

	return tour.AdjacencyOf(t), nil
}
