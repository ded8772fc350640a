package tsp

import (
	"context"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/construct"
	"github.com/katalvlaran/lkh/internal/rng"
	"github.com/katalvlaran/lkh/kopt"
	"github.com/katalvlaran/lkh/matrix"
	"github.com/katalvlaran/lkh/tabu"
	"github.com/katalvlaran/lkh/tour"
)

// Solve validates w, builds the start tour when none is given and routes to
// the chosen algorithm.
//
// Contracts:
//   - w must pass Dense.Validate.
//   - opts.Start, when set, is a permutation of 0..n-1.
//   - Instances with n ≤ 3 have a single tour and return it directly.
//
// Errors: matrix validation sentinels, ErrDimensionMismatch,
// ErrUnsupportedAlgorithm, and whatever kopt/tabu return.
//
// Complexity: LKH preparation is O(iters·n² log n); the rest is governed by
// the tabu iteration budget.
func Solve(ctx context.Context, w *matrix.Dense, opts Options) (Result, error) {
	if err := w.Validate(); err != nil {
		return Result{}, err
	}
	if opts.Algo < LK || int(opts.Algo) >= len(algoNames) {
		return Result{}, errors.Wrapf(ErrUnsupportedAlgorithm, "%d", opts.Algo)
	}

	var (
		n      = w.N()
		run    = uuid.New()
		logger = opts.Logger
	)
	if logger == nil {
		logger = log.Default()
	}
	logger = logger.With("run", run.String()[:8])

	if opts.Start != nil {
		if err := tour.ValidatePermutation(opts.Start, n); err != nil {
			return Result{}, errors.Wrap(ErrDimensionMismatch, err.Error())
		}
	}
	if n <= 3 {
		order := tour.Identity(n).Order()
		return Result{Run: run, Tour: order, Length: tour.OrderLength(w, order)}, nil
	}

	// The run-tagged logger goes last so option sets replaced wholesale
	// (config files) cannot drop it.
	engineOpts := append(slices.Clip(opts.Engine),
		kopt.WithMoves(opts.Algo.moves()), kopt.WithLogger(logger), kopt.WithRun(run, 0))
	tabuOpts := append(slices.Clip(opts.Tabu), tabu.WithLogger(logger), tabu.WithEngine(engineOpts...))
	tcfg := tabu.BuildConfig(tabuOpts...)

	var (
		prep *kopt.Prepared
		err  error
	)
	if opts.Algo.lkh() {
		prep, err = kopt.PrepareLKH(w, engineOpts...)
		if err != nil {
			return Result{}, err
		}
	}

	start := opts.Start
	if start == nil {
		start, err = initialTour(w, prep, tcfg.Seed)
		if err != nil {
			return Result{}, err
		}
	}
	logger.Info("solve", "algorithm", opts.Algo, "n", n, "start_length", tour.OrderLength(w, start))

	var (
		res    = Result{Run: run}
		best   tabu.Best
		runErr error
	)
	if prep != nil {
		res.Bound = prep.Bound
	}

	switch opts.Algo.driver() {
	case single:
		var e *kopt.Engine
		if prep != nil {
			e, err = kopt.NewLKH(w, start, prep, engineOpts...)
		} else {
			e, err = kopt.NewLK(w, start, engineOpts...)
		}
		if err != nil {
			return Result{}, err
		}
		if res.Length, err = e.Optimize(); err != nil {
			return Result{}, err
		}
		res.Tour = e.Order()

	case tabuSearch:
		var s *tabu.Search
		if s, err = tabu.NewSearch(w, start, prep, nil, tabuOpts...); err != nil {
			return Result{}, err
		}
		best, runErr = s.Run(ctx)

	case parallel:
		var p *tabu.Parallel
		if p, err = tabu.NewParallel(w, start, prep, tabuOpts...); err != nil {
			return Result{}, err
		}
		best, runErr = p.Run(ctx)
	}
	if opts.Algo.driver() != single {
		// A cancelled run still reports its best tour alongside ctx.Err().
		if best.Index == 0 {
			if runErr == nil {
				runErr = tabu.ErrNoResult
			}
			return Result{}, runErr
		}
		res.Tour, res.Length = best.Order, best.Length
	}

	res.Tour = canonical(res.Tour)
	logger.Info("solved", "length", res.Length, "bound", res.Bound)

	return res, runErr
}

// initialTour builds the default start: Helsgaun + 2-opt guided by the
// 1-tree when alpha values are available, greedy from node 0 otherwise.
func initialTour(w matrix.Weights, prep *kopt.Prepared, seed int64) ([]int, error) {
	if prep != nil {
		order, _, err := construct.FastHelsgaun(prep.Alpha, w, prep.Known, prep.Lists, prep.Excess, rng.FromSeed(seed))
		return order, err
	}
	order, _, err := construct.Greedy(w, 0)

	return order, err
}
