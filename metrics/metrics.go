// Package metrics provides the (length, gain) time-series hook emitted after
// every accepted move.
//
// The search only depends on the Recorder interface. A no-op default keeps
// the engine free of any collector; Series is an in-memory collector for
// tests and the CLI summary. Applications may register a process-wide
// default at startup with SetDefault:
//
//	series := metrics.NewSeries()
//	metrics.SetDefault(series)
//	// ... run the search ...
//	for _, s := range series.Samples() { ... }
package metrics

import (
	"sync"

	"github.com/google/uuid"
)

// MoveKind identifies the move that produced a sample.
type MoveKind uint8

// Move kinds.
const (
	// Start is the initial tour of a run (gain 0).
	Start MoveKind = iota
	// Sequential is an LK/LKH k-opt move.
	Sequential
	// Bridge is a non-sequential double-bridge move.
	Bridge
	// TwoOpt and ThreeOpt are moves of the plain 2-opt and 3-opt engines.
	TwoOpt
	ThreeOpt
)

// String implements fmt.Stringer.
func (k MoveKind) String() string {
	switch k {
	case Start:
		return "start"
	case Sequential:
		return "sequential"
	case Bridge:
		return "bridge"
	case TwoOpt:
		return "2opt"
	case ThreeOpt:
		return "3opt"
	default:
		return "unknown"
	}
}

// Sample is one point of the time series.
type Sample struct {
	Run    uuid.UUID // search run the sample belongs to
	Worker int       // worker index, 0 for single-worker runs
	Kind   MoveKind
	Depth  int     // number of exchanged edge pairs; 0 for Start
	Length float64 // tour length after the move
	Gain   float64 // length decrease achieved by the move
}

// Recorder receives samples. Implementations used by tabu.Parallel must be
// safe for concurrent use.
type Recorder interface {
	Record(Sample)
}

// Nop discards every sample.
type Nop struct{}

// Record implements Recorder.
func (Nop) Record(Sample) {}

// Series collects samples in memory. It is safe for concurrent use.
type Series struct {
	mu      sync.Mutex
	samples []Sample
}

// NewSeries returns an empty Series.
func NewSeries() *Series { return &Series{} }

// Record implements Recorder.
func (s *Series) Record(x Sample) {
	s.mu.Lock()
	s.samples = append(s.samples, x)
	s.mu.Unlock()
}

// Samples returns a copy of the recorded samples in arrival order.
func (s *Series) Samples() []Sample {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Sample, len(s.samples))
	copy(out, s.samples)

	return out
}

// Len returns the number of recorded samples.
func (s *Series) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.samples)
}

// TotalGain sums the gains of the samples matching run.
func (s *Series) TotalGain(run uuid.UUID) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	var g float64
	for _, x := range s.samples {
		if x.Run == run {
			g += x.Gain
		}
	}

	return g
}

var (
	defaultRecorder Recorder = Nop{}
	defaultMu       sync.RWMutex
)

// SetDefault registers the process-wide recorder used when none is
// configured explicitly. nil is ignored.
func SetDefault(r Recorder) {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	if r != nil {
		defaultRecorder = r
	}
}

// Default returns the registered process-wide recorder.
func Default() Recorder {
	defaultMu.RLock()
	defer defaultMu.RUnlock()

	return defaultRecorder
}

// Reset restores the no-op default. Useful in tests.
func Reset() {
	defaultMu.Lock()
	defer defaultMu.Unlock()
	defaultRecorder = Nop{}
}
