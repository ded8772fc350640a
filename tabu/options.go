package tabu

import (
	"slices"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"

	"github.com/katalvlaran/lkh/kopt"
)

// Restart selects how the next start tour is produced after a restart.
type Restart int

const (
	// RestartPerturb applies Swaps random transpositions to the best tour so far.
	RestartPerturb Restart = iota
	// RestartConstruct builds a fresh tour: Helsgaun + 2-opt for LKH,
	// greedy from a random node for LK.
	RestartConstruct
)

// String implements fmt.Stringer.
func (r Restart) String() string {
	switch r {
	case RestartPerturb:
		return "perturb"
	case RestartConstruct:
		return "construct"
	default:
		return "unknown"
	}
}

// ParseRestart maps "perturb" and "construct" to a Restart.
func ParseRestart(s string) (Restart, error) {
	switch s {
	case "perturb", "":
		return RestartPerturb, nil
	case "construct":
		return RestartConstruct, nil
	default:
		return RestartPerturb, errors.Wrapf(ErrConfig, "unknown restart strategy %q", s)
	}
}

// Defaults.
const (
	DefaultIterations = 100
	DefaultSwaps      = 2
	DefaultWorkers    = 4
	DefaultBatch      = 10
)

// Config drives Search and Parallel.
type Config struct {
	// Iterations is the restart budget of one worker.
	Iterations int
	// Swaps is the number of random transpositions per perturbation.
	Swaps int
	// Capacity bounds the tabu set (FIFO); ≤ 0 is unbounded.
	Capacity int
	// Restart picks the start-tour strategy between restarts.
	Restart Restart
	// Seed feeds the deterministic RNG; 0 uses rng.DefaultSeed.
	Seed int64
	// Workers and Batch configure Parallel: W workers exchanging tabu
	// hashes every Batch restarts.
	Workers int
	Batch   int
	// Engine options are applied to every kopt.Engine.
	Engine []kopt.Option
	// Logger receives progress; nil means log.Default().
	Logger *log.Logger
}

// Option mutates Config.
type Option func(*Config)

// DefaultConfig returns 100 restarts, 2 swaps, unbounded set, perturbation,
// 4 workers and batches of 10.
func DefaultConfig() Config {
	return Config{
		Iterations: DefaultIterations,
		Swaps:      DefaultSwaps,
		Restart:    RestartPerturb,
		Workers:    DefaultWorkers,
		Batch:      DefaultBatch,
	}
}

// WithIterations sets the restart budget per worker.
func WithIterations(n int) Option { return func(c *Config) { c.Iterations = n } }

// WithSwaps sets the number of swaps per perturbation.
func WithSwaps(n int) Option { return func(c *Config) { c.Swaps = n } }

// WithCapacity bounds the tabu set.
func WithCapacity(n int) Option { return func(c *Config) { c.Capacity = n } }

// WithRestart selects the restart strategy.
func WithRestart(r Restart) Option { return func(c *Config) { c.Restart = r } }

// WithSeed sets the RNG seed.
func WithSeed(seed int64) Option { return func(c *Config) { c.Seed = seed } }

// WithWorkers sets the worker count for Parallel.
func WithWorkers(n int) Option { return func(c *Config) { c.Workers = n } }

// WithBatch sets the number of restarts between hash exchanges.
func WithBatch(n int) Option { return func(c *Config) { c.Batch = n } }

// WithEngine appends engine options.
func WithEngine(opts ...kopt.Option) Option {
	return func(c *Config) { c.Engine = append(c.Engine, opts...) }
}

// WithLogger sets the logger for the search and its engines.
func WithLogger(l *log.Logger) Option { return func(c *Config) { c.Logger = l } }

// WithConfig replaces the configuration. A Logger already set is kept when
// src has none, and engine options already set stay ahead of src.Engine.
func WithConfig(src Config) Option {
	return func(c *Config) {
		if src.Logger == nil {
			src.Logger = c.Logger
		}
		src.Engine = append(slices.Clip(c.Engine), src.Engine...)
		*c = src
	}
}

// BuildConfig applies opts on top of DefaultConfig.
func BuildConfig(opts ...Option) Config {
	c := DefaultConfig()
	for _, fn := range opts {
		fn(&c)
	}

	return c
}

// Validate rejects infeasible settings.
func (c Config) Validate() error {
	switch {
	case c.Iterations < 1:
		return errors.Wrapf(ErrConfig, "iterations %d < 1", c.Iterations)
	case c.Swaps < 0:
		return errors.Wrapf(ErrConfig, "swaps %d < 0", c.Swaps)
	case c.Workers < 1:
		return errors.Wrapf(ErrConfig, "workers %d < 1", c.Workers)
	case c.Batch < 1:
		return errors.Wrapf(ErrConfig, "batch %d < 1", c.Batch)
	case c.Restart != RestartPerturb && c.Restart != RestartConstruct:
		return errors.Wrapf(ErrConfig, "restart strategy %d", c.Restart)
	}

	return nil
}

func (c Config) logger() *log.Logger {
	if c.Logger != nil {
		return c.Logger
	}

	return log.Default()
}

// engineOptions resolves the engine options and labels samples with worker.
func (c Config) engineOptions(worker int) kopt.Options {
	base := []kopt.Option{kopt.WithLogger(c.logger())}
	o := kopt.Build(append(base, c.Engine...)...)
	o.Worker = worker

	return o
}
