package tsp

import (
	"github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/kopt"
	"github.com/katalvlaran/lkh/tabu"
)

var (
	// ErrUnsupportedAlgorithm is returned for an unknown Algorithm.
	ErrUnsupportedAlgorithm = errors.New("tsp: unsupported algorithm")

	// ErrDimensionMismatch is returned when the start tour does not match the matrix.
	ErrDimensionMismatch = errors.New("tsp: dimension mismatch")
)

// Algorithm selects the solver.
type Algorithm int

const (
	// LK is a single Lin-Kernighan descent from the start tour.
	LK Algorithm = iota
	// LKH is a single Lin-Kernighan-Helsgaun descent over alpha candidates.
	LKH
	// TabuLK restarts LK under a tabu set.
	TabuLK
	// TabuLKH restarts LKH under a tabu set.
	TabuLKH
	// ParallelLK runs tabu LK workers with a shared hash coordinator.
	ParallelLK
	// ParallelLKH runs tabu LKH workers with a shared hash coordinator.
	ParallelLKH
	// TwoOpt and ThreeOpt are single first-improvement 2-opt and 3-opt descents.
	TwoOpt
	ThreeOpt
	// TabuTwoOpt and TabuThreeOpt restart them under a tabu set.
	TabuTwoOpt
	TabuThreeOpt
	// ParallelTwoOpt and ParallelThreeOpt run them as parallel tabu workers.
	ParallelTwoOpt
	ParallelThreeOpt
)

var algoNames = [...]string{
	"lk", "lkh", "tabu-lk", "tabu-lkh", "parallel-lk", "parallel-lkh",
	"2opt", "3opt", "tabu-2opt", "tabu-3opt", "parallel-2opt", "parallel-3opt",
}

// String implements fmt.Stringer.
func (a Algorithm) String() string {
	if a < 0 || int(a) >= len(algoNames) {
		return "unknown"
	}

	return algoNames[a]
}

// ParseAlgorithm maps a name such as "tabu-lkh" to an Algorithm.
func ParseAlgorithm(s string) (Algorithm, error) {
	for i, name := range algoNames {
		if name == s {
			return Algorithm(i), nil
		}
	}

	return LK, errors.Wrapf(ErrUnsupportedAlgorithm, "%q", s)
}

// lkh reports whether the algorithm uses alpha candidates.
func (a Algorithm) lkh() bool { return a == LKH || a == TabuLKH || a == ParallelLKH }

// moves returns the engine neighbourhood of a.
func (a Algorithm) moves() kopt.Moves {
	switch a {
	case TwoOpt, TabuTwoOpt, ParallelTwoOpt:
		return kopt.MovesTwoOpt
	case ThreeOpt, TabuThreeOpt, ParallelThreeOpt:
		return kopt.MovesThreeOpt
	default:
		return kopt.MovesLK
	}
}

// driver is how the engine is run.
type driver int

const (
	single driver = iota
	tabuSearch
	parallel
)

func (a Algorithm) driver() driver {
	switch a {
	case TabuLK, TabuLKH, TabuTwoOpt, TabuThreeOpt:
		return tabuSearch
	case ParallelLK, ParallelLKH, ParallelTwoOpt, ParallelThreeOpt:
		return parallel
	default:
		return single
	}
}

// Options configures Solve.
type Options struct {
	Algo Algorithm
	// Start is the initial tour; nil constructs one (Helsgaun + 2-opt for
	// LKH variants, greedy otherwise).
	Start []int
	// Engine and Tabu options are forwarded to kopt and tabu.
	Engine []kopt.Option
	Tabu   []tabu.Option
	// Logger receives run-level events; nil means log.Default().
	Logger *log.Logger
}

// Result is the outcome of Solve.
type Result struct {
	// Run identifies the solve in logs and metrics samples.
	Run uuid.UUID
	// Tour is the visiting order, rotated to start at node 0.
	Tour   []int
	Length float64
	// Bound is the Held-Karp lower bound for LKH variants, 0 otherwise.
	Bound float64
}
