package tabu

import (
	"context"
	"math/rand"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lkh/internal/rng"
	"github.com/katalvlaran/lkh/kopt"
	"github.com/katalvlaran/lkh/matrix"
)

// message is the worker → coordinator protocol: exactly one of progress or
// done is set.
type message struct {
	worker   int
	progress *progress
	done     *done
}

// progress carries a worker's live tabu hashes after a batch. The
// coordinator answers on reply with a snapshot of its union.
type progress struct {
	hashes []uint64
	reply  chan []uint64
}

// done is a worker's final report. err is set when the worker failed; its
// result is then dropped.
type done struct {
	best     Best
	restarts int
	err      error
}

// Parallel runs Workers independent tabu searches, each on a private clone
// of the matrix with its own engine, tabu set and RNG stream. After every
// Batch restarts a worker sends its hashes to the coordinator, which keeps an
// append-only union and replies with a snapshot the worker merges into its
// own set, so no worker re-optimises tours another one already visited.
type Parallel struct {
	w     *matrix.Dense
	start []int
	prep  *kopt.Prepared
	cfg   Config
}

// NewParallel validates the configuration. prep selects LKH (non-nil) or LK
// and is shared read-only by every worker.
func NewParallel(w *matrix.Dense, start []int, prep *kopt.Prepared, opts ...Option) (*Parallel, error) {
	cfg := BuildConfig(opts...)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &Parallel{w: w, start: slices.Clone(start), prep: prep, cfg: cfg}, nil
}

// Run starts the workers and returns the best tour among those that
// finished. A failing or panicking worker is logged and ignored; ErrNoResult
// is returned only if none produced a tour. On cancellation every worker
// stops after its current restart and the best partial result is returned
// with ctx.Err().
func (p *Parallel) Run(ctx context.Context) (Best, error) {
	var (
		logger = p.cfg.logger()
		base   = rng.FromSeed(p.cfg.Seed)
		msgs   = make(chan message, p.cfg.Workers)
		g      errgroup.Group
	)
	// Streams are derived up front so results do not depend on scheduling.
	streams := make([]*rand.Rand, p.cfg.Workers)
	for i := range streams {
		streams[i] = rng.Derive(base, uint64(i))
	}

	for i := 0; i < p.cfg.Workers; i++ {
		id, r := i, streams[i]
		g.Go(func() error {
			d := p.work(ctx, id, r, msgs)
			msgs <- message{worker: id, done: &d}
			if d.err != nil && !isContextErr(d.err) {
				return errors.Wrapf(d.err, "worker %d", id)
			}
			return nil
		})
	}

	// The coordinator drops failed workers; the group keeps the first failure
	// for the case where no worker produced a tour.
	best := p.coordinate(msgs, logger.With("component", "coordinator"))
	werr := g.Wait()

	if best.Index == 0 {
		if err := ctx.Err(); err != nil {
			return Best{}, err
		}
		if werr != nil {
			return Best{}, errors.Wrapf(ErrNoResult, "%v", werr)
		}
		return Best{}, ErrNoResult
	}

	return best, ctx.Err()
}

// coordinate serves progress messages until every worker is done.
func (p *Parallel) coordinate(msgs <-chan message, logger *log.Logger) Best {
	var (
		union    []uint64
		seen     = make(map[uint64]struct{})
		best     Best
		finished int
		h        uint64
	)
	for finished < p.cfg.Workers {
		m := <-msgs
		switch {
		case m.progress != nil:
			for _, h = range m.progress.hashes {
				if _, ok := seen[h]; !ok {
					seen[h] = struct{}{}
					union = append(union, h)
				}
			}
			m.progress.reply <- slices.Clone(union)

		case m.done != nil:
			finished++
			d := m.done
			if d.err != nil && !isContextErr(d.err) {
				logger.Warn("worker failed, result dropped", "worker", m.worker, "err", d.err)
				continue
			}
			if d.best.Index == 0 {
				continue
			}
			logger.Info("worker done", "worker", m.worker, "restarts", d.restarts, "length", d.best.Length)
			if best.Index == 0 || d.best.Length < best.Length {
				best = d.best
			}
		}
	}

	return best
}

// work runs one worker to completion. Panics are converted into a failed
// done report.
func (p *Parallel) work(ctx context.Context, id int, r *rand.Rand, msgs chan<- message) (d done) {
	defer func() {
		if v := recover(); v != nil {
			d = done{err: errors.Wrapf(ErrWorkerPanic, "worker %d: %v", id, v)}
		}
	}()

	cfg := p.cfg
	cfg.Logger = cfg.logger().With("worker", id)
	s, err := newSearch(p.w.Clone(), p.start, p.prep, r, id, cfg)
	if err != nil {
		return done{err: err}
	}

	var (
		remaining = cfg.Iterations
		k         int
		reply     = make(chan []uint64, 1)
	)
	for remaining > 0 {
		k = min(cfg.Batch, remaining)
		if err = s.run(ctx, k); err != nil {
			break
		}
		remaining -= k
		if remaining == 0 {
			break
		}
		msgs <- message{worker: id, progress: &progress{hashes: s.set.Hashes(), reply: reply}}
		s.set.Merge(<-reply)
	}

	return done{best: s.set.Best(), restarts: s.restarts, err: err}
}

func isContextErr(err error) bool {
	return errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
}
