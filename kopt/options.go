package kopt

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/candidate"
	"github.com/katalvlaran/lkh/metrics"
	"github.com/katalvlaran/lkh/onetree"
)

// BridgeMode selects the non-sequential double-bridge search run when no
// sequential move improves the tour.
type BridgeMode int

const (
	// BridgeNone disables the double bridge.
	BridgeNone BridgeMode = iota
	// BridgeExhaustive scans all position quadruples, O(n⁴).
	BridgeExhaustive
	// BridgeCandidates chains cut points through candidate lists.
	BridgeCandidates
)

// String implements fmt.Stringer.
func (m BridgeMode) String() string {
	switch m {
	case BridgeNone:
		return "none"
	case BridgeExhaustive:
		return "exhaustive"
	case BridgeCandidates:
		return "candidates"
	default:
		return "unknown"
	}
}

// ParseBridgeMode maps "none", "exhaustive" and "candidates" to a BridgeMode.
func ParseBridgeMode(s string) (BridgeMode, error) {
	switch s {
	case "none", "":
		return BridgeNone, nil
	case "exhaustive", "full":
		return BridgeExhaustive, nil
	case "candidates", "neighbours", "neighbors":
		return BridgeCandidates, nil
	default:
		return BridgeNone, errors.Wrapf(ErrOptions, "unknown bridge mode %q", s)
	}
}

// Moves selects the neighbourhood Improve searches.
type Moves int

const (
	// MovesLK is the sequential Lin-Kernighan search plus double bridge.
	MovesLK Moves = iota
	// MovesTwoOpt is first-improvement 2-opt.
	MovesTwoOpt
	// MovesThreeOpt is first-improvement 3-opt.
	MovesThreeOpt
)

// String implements fmt.Stringer.
func (m Moves) String() string {
	switch m {
	case MovesLK:
		return "lk"
	case MovesTwoOpt:
		return "2opt"
	case MovesThreeOpt:
		return "3opt"
	default:
		return "unknown"
	}
}

// ParseMoves maps "lk", "2opt" and "3opt" to Moves.
func ParseMoves(s string) (Moves, error) {
	switch s {
	case "lk", "":
		return MovesLK, nil
	case "2opt", "2-opt":
		return MovesTwoOpt, nil
	case "3opt", "3-opt":
		return MovesThreeOpt, nil
	default:
		return MovesLK, errors.Wrapf(ErrOptions, "unknown neighbourhood %q", s)
	}
}

// Defaults.
const (
	DefaultDepth         = 5
	DefaultCandidateSize = candidate.DefaultSize
	DefaultExcessFactor  = 1.0
)

// Options configures an Engine and the LKH preparation.
type Options struct {
	// Moves is the neighbourhood. Depth, Bridge and LKH pruning only apply
	// to MovesLK.
	Moves Moves
	// Depth is the maximum number of edges broken by one sequential move (k).
	Depth int
	// CandidateSize is the candidate-list length: exact for LK (must be in
	// (0,n)), an upper bound for LKH where 0 keeps every edge below Excess.
	CandidateSize int
	// DontLook enables don't-look bits.
	DontLook bool
	// Bridge selects the double-bridge search; FastBridge accepts the first
	// improving bridge instead of the best one.
	Bridge     BridgeMode
	FastBridge bool
	// Excess is the alpha cutoff for LKH candidates; 0 derives it as
	// ExcessFactor·oneTreeCost/n.
	Excess       float64
	ExcessFactor float64
	// Subgradient runs Held-Karp ascent before computing alpha;
	// SubgradientIter caps it (0 uses onetree.DefaultMaxIter).
	Subgradient     bool
	SubgradientIter int
	// InvariantChecks recomputes the tour length after every accepted move
	// and fails with ErrDrift when it disagrees with the tracked length.
	InvariantChecks bool

	// Logger receives debug events; nil means log.Default().
	Logger *log.Logger
	// Recorder receives a Sample per accepted move; nil means metrics.Default().
	Recorder metrics.Recorder
	// Run and Worker label emitted samples.
	Run    uuid.UUID
	Worker int
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the engine defaults: depth 5, 5 candidates,
// don't-look bits on, candidate-restricted fast double bridge, subgradient on.
func DefaultOptions() Options {
	return Options{
		Depth:           DefaultDepth,
		CandidateSize:   DefaultCandidateSize,
		DontLook:        true,
		Bridge:          BridgeCandidates,
		FastBridge:      true,
		ExcessFactor:    DefaultExcessFactor,
		Subgradient:     true,
		SubgradientIter: onetree.DefaultMaxIter,
	}
}

// WithMoves selects the neighbourhood.
func WithMoves(m Moves) Option { return func(o *Options) { o.Moves = m } }

// WithDepth sets the maximum number of broken edges per sequential move.
func WithDepth(k int) Option { return func(o *Options) { o.Depth = k } }

// WithCandidateSize sets the candidate-list length.
func WithCandidateSize(size int) Option { return func(o *Options) { o.CandidateSize = size } }

// WithDontLookBits toggles don't-look bits.
func WithDontLookBits(on bool) Option { return func(o *Options) { o.DontLook = on } }

// WithBridge selects the double-bridge mode and the first-improvement flag.
func WithBridge(mode BridgeMode, fast bool) Option {
	return func(o *Options) { o.Bridge, o.FastBridge = mode, fast }
}

// WithExcess fixes the alpha cutoff for LKH candidates.
func WithExcess(excess float64) Option { return func(o *Options) { o.Excess = excess } }

// WithExcessFactor scales the derived alpha cutoff.
func WithExcessFactor(f float64) Option { return func(o *Options) { o.ExcessFactor = f } }

// WithSubgradient toggles Held-Karp ascent and sets its iteration cap.
func WithSubgradient(on bool, maxIter int) Option {
	return func(o *Options) { o.Subgradient, o.SubgradientIter = on, maxIter }
}

// WithInvariantChecks enables the numeric drift check after every move.
func WithInvariantChecks(on bool) Option { return func(o *Options) { o.InvariantChecks = on } }

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option { return func(o *Options) { o.Logger = l } }

// WithRecorder sets the metrics recorder.
func WithRecorder(r metrics.Recorder) Option { return func(o *Options) { o.Recorder = r } }

// WithRun labels samples with a run id and worker index.
func WithRun(run uuid.UUID, worker int) Option {
	return func(o *Options) { o.Run, o.Worker = run, worker }
}

// WithOptions replaces the option set, typically with one decoded from a
// configuration file. A Logger, Recorder or run label already set is kept
// when src leaves it empty.
func WithOptions(src Options) Option {
	return func(o *Options) {
		if src.Logger == nil {
			src.Logger = o.Logger
		}
		if src.Recorder == nil {
			src.Recorder = o.Recorder
		}
		if src.Run == uuid.Nil {
			src.Run, src.Worker = o.Run, o.Worker
		}
		*o = src
	}
}

// Build applies opts on top of DefaultOptions.
func Build(opts ...Option) Options {
	o := DefaultOptions()
	for _, fn := range opts {
		fn(&o)
	}

	return o
}

// Validate rejects option sets that cannot run on an instance of n nodes.
// CandidateSize is checked by the candidate builders, which know whether an
// exact or a capped size is required.
func (o Options) Validate() error {
	if o.Depth < 2 {
		return errors.Wrapf(ErrOptions, "depth %d < 2", o.Depth)
	}
	if o.CandidateSize < 0 {
		return errors.Wrapf(ErrOptions, "candidate size %d < 0", o.CandidateSize)
	}
	if o.Excess < 0 || o.ExcessFactor < 0 {
		return errors.Wrapf(ErrOptions, "negative excess (%g) or factor (%g)", o.Excess, o.ExcessFactor)
	}
	if o.Moves < MovesLK || o.Moves > MovesThreeOpt {
		return errors.Wrapf(ErrOptions, "neighbourhood %d", o.Moves)
	}
	if o.Bridge < BridgeNone || o.Bridge > BridgeCandidates {
		return errors.Wrapf(ErrOptions, "bridge mode %d", o.Bridge)
	}

	return nil
}

func (o Options) logger() *log.Logger {
	if o.Logger != nil {
		return o.Logger
	}

	return log.Default()
}

func (o Options) recorder() metrics.Recorder {
	if o.Recorder != nil {
		return o.Recorder
	}

	return metrics.Default()
}
