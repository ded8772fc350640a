package kopt

import (
	"math"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/candidate"
	"github.com/katalvlaran/lkh/matrix"
	"github.com/katalvlaran/lkh/metrics"
	"github.com/katalvlaran/lkh/tour"
)

const (
	// eps is the minimum gain for a move to count as an improvement.
	eps = 1e-10
	// DriftTolerance bounds |recomputed − tracked| length under InvariantChecks.
	DriftTolerance = 1e-2
)

// Memory is the set of tours already visited in the current run. The engine
// prunes tentative tours whose hash it contains and inserts every tour it
// accepts; Insert returning false (already present) ends Optimize.
// tabu.Set implements it.
type Memory interface {
	Contains(hash uint64) bool
	Insert(length float64, order []int) bool
}

// hashMemory is the engine's private Memory when none is supplied.
type hashMemory map[uint64]struct{}

func (m hashMemory) Contains(h uint64) bool {
	_, ok := m[h]
	return ok
}

func (m hashMemory) Insert(_ float64, order []int) bool {
	h := tour.HashOrder(order)
	if _, ok := m[h]; ok {
		return false
	}
	m[h] = struct{}{}

	return true
}

// Engine is one local-search session: the weights, the committed tour and
// its tracked length, the candidate lists, don't-look bits and the memory of
// visited tours. It is single-threaded and not re-entrant; parallel callers
// own one Engine each.
type Engine struct {
	w      matrix.Weights
	tour   *tour.Tour
	length float64
	lists  *candidate.Lists

	dlb     []bool // nil when don't-look bits are disabled
	memory  Memory
	private bool // memory is the engine's own hashMemory

	// known holds the best-known edges: the best tour once one is set, the
	// 1-tree before that. First-level edges in it are never broken. nil for LK.
	known *tour.Adjacency
	seed  *tour.Adjacency

	opts Options
	log  *log.Logger
	rec  metrics.Recorder
}

// newEngine validates inputs and assembles an Engine around order.
func newEngine(w matrix.Weights, order []int, lists *candidate.Lists, seed *tour.Adjacency, o Options) (*Engine, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if lists == nil || lists.Len() != w.N() {
		return nil, errors.Wrap(ErrOptions, "candidate lists missing or sized for another instance")
	}
	e := &Engine{
		w:     w,
		lists: lists,
		known: seed,
		seed:  seed,
		opts:  o,
		log:   o.logger(),
		rec:   o.recorder(),
	}
	if err := e.Reset(order); err != nil {
		return nil, err
	}

	return e, nil
}

// NewLK returns a Lin-Kernighan engine: distance-ranked candidates of
// CandidateSize entries and no best-tour pruning.
func NewLK(w matrix.Weights, order []int, opts ...Option) (*Engine, error) {
	o := Build(opts...)
	lists, err := candidate.Nearest(w, o.CandidateSize)
	if err != nil {
		return nil, err
	}

	return newEngine(w, order, lists, nil, o)
}

// NewLKWithLists is NewLK over precomputed candidate lists, so several
// engines on the same instance can share one set.
func NewLKWithLists(w matrix.Weights, order []int, lists *candidate.Lists, opts ...Option) (*Engine, error) {
	return newEngine(w, order, lists, nil, Build(opts...))
}

// NewLKH returns a Lin-Kernighan-Helsgaun engine over the alpha-ranked
// candidates of prep. First-level edges of the best-known tour (see SetBest)
// are not broken; until a tour is known the 1-tree edges of prep stand in.
func NewLKH(w matrix.Weights, order []int, prep *Prepared, opts ...Option) (*Engine, error) {
	if prep == nil || prep.Known == nil {
		return nil, errors.Wrap(ErrOptions, "NewLKH: nil preparation")
	}

	return newEngine(w, order, prep.Lists, prep.Known, Build(opts...))
}

// Reset installs a new starting tour: the length is recomputed, the
// don't-look bits cleared and, unless an external Memory was attached, the
// private memory restarted with the new tour.
func (e *Engine) Reset(order []int) error {
	n := e.w.N()
	if len(order) != n {
		return errors.Wrapf(ErrTourSize, "tour has %d nodes, matrix %d", len(order), n)
	}
	t, err := tour.New(order)
	if err != nil {
		return err
	}
	e.tour = t
	e.length = t.Length(e.w)
	if e.opts.DontLook {
		e.dlb = make([]bool, n)
	} else {
		e.dlb = nil
	}
	if e.memory == nil || e.private {
		m := hashMemory{}
		m[t.Hash()] = struct{}{}
		e.memory, e.private = m, true
	}
	e.rec.Record(metrics.Sample{
		Run: e.opts.Run, Worker: e.opts.Worker, Kind: metrics.Start, Length: e.length,
	})

	return nil
}

// SetMemory attaches an external visited-tour memory, typically a tabu set
// shared across restarts. nil restores a private memory.
func (e *Engine) SetMemory(m Memory) {
	if m == nil {
		pm := hashMemory{}
		pm[e.tour.Hash()] = struct{}{}
		e.memory, e.private = pm, true

		return
	}
	e.memory, e.private = m, false
}

// SetBest records the best-known tour used by LKH pruning. nil falls back to
// the 1-tree edges. LK engines ignore it.
func (e *Engine) SetBest(order []int) error {
	if e.seed == nil {
		return nil
	}
	if order == nil {
		e.known = e.seed
		return nil
	}
	if len(order) != e.w.N() {
		return errors.Wrapf(ErrTourSize, "best tour has %d nodes, matrix %d", len(order), e.w.N())
	}
	t, err := tour.New(order)
	if err != nil {
		return err
	}
	e.known = tour.AdjacencyOf(t)

	return nil
}

// Protected reports whether edge (a,b) is on the best-known edge set, and so
// never broken as the first edge of a move.
func (e *Engine) Protected(a, b int) bool {
	return e.known != nil && e.known.Has(tour.NewEdge(a, b))
}

// Length returns the tracked length of the committed tour.
func (e *Engine) Length() float64 { return e.length }

// Order returns a copy of the committed visiting order.
func (e *Engine) Order() []int { return e.tour.Order() }

// Tour returns a copy of the committed tour.
func (e *Engine) Tour() *tour.Tour { return e.tour.Clone() }

// Optimize applies improving moves until none is found or the resulting tour
// was already visited. It returns the final tracked length.
//
// With don't-look bits a masked node may hide a move opened up by a later
// change elsewhere, so the first empty pass is followed by one unmasked pass;
// the tour is declared optimal only when that one finds nothing too.
func (e *Engine) Optimize() (float64, error) {
	var (
		moves int
		gain  float64
		err   error
		swept bool
	)
	for {
		gain, err = e.Improve()
		if err != nil {
			return e.length, err
		}
		if gain <= eps {
			if e.dlb == nil || swept {
				break
			}
			clear(e.dlb)
			swept = true
			continue
		}
		swept = false
		moves++
		if !e.memory.Insert(e.length, e.tour.Order()) {
			e.log.Debug("revisited tour, stopping", "length", e.length, "moves", moves)
			break
		}
	}
	e.log.Debug("local optimum", "length", e.length, "moves", moves)

	return e.length, nil
}

// Improve performs at most one improving move and returns its gain (0 when
// the tour is locally optimal for this engine).
//
// Sequential LK moves are tried from every t1 not masked by don't-look bits;
// an exhausted t1 gets its bit set. If none improves, the configured double
// bridge is tried and, on success, every bit is cleared. Engines built with
// MovesTwoOpt or MovesThreeOpt search that neighbourhood instead.
func (e *Engine) Improve() (float64, error) {
	switch e.opts.Moves {
	case MovesTwoOpt:
		return e.improveTwoOpt()
	case MovesThreeOpt:
		return e.improveThreeOpt()
	}

	n := e.tour.Len()
	var (
		p, t1 int
		gain  float64
		next  *tour.Tour
		path  []int
	)
	for p = 0; p < n; p++ {
		t1 = e.tour.At(p)
		if e.masked(t1) {
			continue
		}
		gain, next, path = e.fromT1(t1)
		if gain > eps {
			return gain, e.commit(gain, next, path, metrics.Sequential)
		}
		if e.dlb != nil {
			e.dlb[t1] = true
		}
	}

	if e.opts.Bridge == BridgeNone {
		return 0, nil
	}
	gain, order := e.doubleBridge()
	if gain <= eps {
		return 0, nil
	}
	bridged, err := tour.New(order)
	if err != nil {
		return 0, err
	}
	if e.dlb != nil {
		clear(e.dlb)
	}

	return gain, e.commit(gain, bridged, nil, metrics.Bridge)
}

// masked reports whether t1 and both its tour neighbours have their bit set.
func (e *Engine) masked(t1 int) bool {
	if e.dlb == nil || !e.dlb[t1] {
		return false
	}
	succ, pred := e.tour.Around(t1)

	return e.dlb[succ] && e.dlb[pred]
}

// commit installs next as the tour, clears the bits of touched nodes and
// emits the sample. path lists the endpoints of a sequential move.
func (e *Engine) commit(gain float64, next *tour.Tour, path []int, kind metrics.MoveKind) error {
	e.tour = next
	e.length -= gain
	if e.dlb != nil {
		for _, v := range path {
			e.dlb[v] = false
		}
	}

	depth := len(path) / 2
	if kind == metrics.Bridge {
		depth = 4
	}
	e.rec.Record(metrics.Sample{
		Run: e.opts.Run, Worker: e.opts.Worker, Kind: kind, Depth: depth,
		Length: e.length, Gain: gain,
	})
	e.log.Debug("move", "kind", kind, "gain", gain, "length", e.length, "depth", depth)

	if e.opts.InvariantChecks {
		actual := e.tour.Length(e.w)
		if math.Abs(actual-e.length) > DriftTolerance {
			return errors.Wrapf(ErrDrift, "tracked %.6f, actual %.6f after %s move", e.length, actual, kind)
		}
	}

	return nil
}
