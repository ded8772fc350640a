package tabu

import (
	"context"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/construct"
	"github.com/katalvlaran/lkh/internal/rng"
	"github.com/katalvlaran/lkh/kopt"
	"github.com/katalvlaran/lkh/matrix"
)

// Search is a single-worker tabu search around one kopt.Engine.
//
// Each restart optimises the current start tour with the tabu set attached
// as the engine's memory, so every accepted tour becomes tabu and reaching a
// tabu tour ends the restart early. The next start is the best tour so far
// perturbed by Swaps random transpositions, or a freshly constructed tour
// under RestartConstruct. In LKH mode the set's best tour (the 1-tree before
// any) feeds the engine's first-level pruning before every restart.
type Search struct {
	w      matrix.Weights
	prep   *kopt.Prepared // nil in LK mode
	cfg    Config
	engine *kopt.Engine
	set    *Set
	rng    *rand.Rand
	log    *log.Logger

	current  []int
	restarts int
}

// NewSearch prepares a search from start. prep selects LKH (non-nil) or LK.
// r may be nil, in which case the stream is seeded from cfg.Seed.
func NewSearch(w matrix.Weights, start []int, prep *kopt.Prepared, r *rand.Rand, opts ...Option) (*Search, error) {
	return newSearch(w, start, prep, r, 0, BuildConfig(opts...))
}

func newSearch(w matrix.Weights, start []int, prep *kopt.Prepared, r *rand.Rand, worker int, cfg Config) (*Search, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if r == nil {
		r = rng.FromSeed(cfg.Seed)
	}

	var (
		eo     = kopt.WithOptions(cfg.engineOptions(worker))
		engine *kopt.Engine
		err    error
	)
	if prep != nil {
		engine, err = kopt.NewLKH(w, start, prep, eo)
	} else {
		engine, err = kopt.NewLK(w, start, eo)
	}
	if err != nil {
		return nil, err
	}

	s := &Search{
		w:       w,
		prep:    prep,
		cfg:     cfg,
		engine:  engine,
		set:     NewSet(cfg.Capacity),
		rng:     r,
		log:     cfg.logger(),
		current: slices.Clone(start),
	}
	engine.SetMemory(s.set)

	return s, nil
}

// Set returns the search's tabu set.
func (s *Search) Set() *Set { return s.set }

// Restarts returns the number of completed restarts.
func (s *Search) Restarts() int { return s.restarts }

// Run performs the configured number of restarts and returns the best tour.
// Cancellation is checked between restarts; the best tour so far is
// returned together with ctx.Err().
func (s *Search) Run(ctx context.Context) (Best, error) {
	err := s.run(ctx, s.cfg.Iterations-s.restarts)
	s.log.Info("tabu search done", "restarts", s.restarts, "best", s.set.Best().Length, "tabu", s.set.Len())

	return s.set.Best(), err
}

// run performs up to k restarts.
func (s *Search) run(ctx context.Context, k int) error {
	var i int
	for i = 0; i < k; i++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		if err := s.restart(); err != nil {
			return err
		}
	}

	return nil
}

// restart runs one local search and prepares the next start tour.
func (s *Search) restart() error {
	var err error
	if err = s.engine.Reset(s.current); err != nil {
		return err
	}
	if s.prep != nil {
		// nil before the first restart keeps the 1-tree edges
		if err = s.engine.SetBest(s.set.Best().Order); err != nil {
			return err
		}
	}

	length, err := s.engine.Optimize()
	if err != nil {
		return errors.Wrapf(err, "restart %d", s.restarts)
	}
	order := s.engine.Order()
	fresh := s.set.Insert(length, order)
	s.restarts++
	s.log.Debug("restart", "n", s.restarts, "length", length, "best", s.set.Best().Length, "fresh", fresh)

	s.current, err = s.nextStart(order)

	return err
}

// nextStart derives the next start tour: the best tour so far with random
// swaps, or a fresh construction guided by it.
func (s *Search) nextStart(last []int) ([]int, error) {
	best := s.set.Best()
	if s.cfg.Restart == RestartPerturb {
		base := best.Order
		if base == nil {
			base = last
		}
		rng.SwapPairs(base, s.cfg.Swaps, s.rng)

		return base, nil
	}

	if s.prep != nil {
		known, err := s.prep.BestKnown(best.Order)
		if err != nil {
			return nil, err
		}
		order, _, err := construct.FastHelsgaun(s.prep.Alpha, s.w, known, s.prep.Lists, s.prep.Excess, s.rng)

		return order, err
	}
	order, _, err := construct.Greedy(s.w, s.rng.Intn(s.w.N()))

	return order, err
}
