package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lkh/config"
	"github.com/katalvlaran/lkh/internal/rng"
	"github.com/katalvlaran/lkh/kopt"
	"github.com/katalvlaran/lkh/matrix"
	"github.com/katalvlaran/lkh/metrics"
	"github.com/katalvlaran/lkh/tabu"
	"github.com/katalvlaran/lkh/tsp"
)

// instanceFlags describe the generated instance.
type instanceFlags struct {
	nodes int
	seed  int64
}

func (f *instanceFlags) bind(fs *pflag.FlagSet) {
	fs.IntVarP(&f.nodes, "nodes", "n", 100, "number of random Euclidean nodes")
	fs.Int64Var(&f.seed, "instance-seed", 1, "seed of the instance generator")
}

func (f *instanceFlags) build() (*matrix.Dense, error) {
	m, _, err := matrix.RandomEuclidean(f.nodes, rng.FromSeed(f.seed))
	return m, err
}

// bindSolverFlags binds every config.File field to a flag on fs.
func bindSolverFlags(fs *pflag.FlagSet, f *config.File) {
	def := config.Default()
	fs.StringVarP(&f.Algorithm, "algorithm", "a", def.Algorithm,
		"lk, lkh, 2opt or 3opt, optionally prefixed with tabu- or parallel-")
	fs.Int64Var(&f.Seed, "seed", def.Seed, "search seed (0 = default seed)")

	fs.IntVar(&f.Engine.Depth, "depth", def.Engine.Depth, "maximum edges broken per sequential move")
	fs.IntVar(&f.Engine.CandidateSize, "candidates", def.Engine.CandidateSize, "candidate list size")
	fs.BoolVar(&f.Engine.DontLookBits, "dont-look-bits", def.Engine.DontLookBits, "enable don't-look bits")
	fs.StringVar(&f.Engine.Bridge, "bridge", def.Engine.Bridge, "double bridge: none, exhaustive or candidates")
	fs.BoolVar(&f.Engine.FastBridge, "fast-bridge", def.Engine.FastBridge, "accept the first improving double bridge")
	fs.Float64Var(&f.Engine.Excess, "excess", def.Engine.Excess, "alpha cutoff for LKH candidates (0 = derived)")
	fs.Float64Var(&f.Engine.ExcessFactor, "excess-factor", def.Engine.ExcessFactor, "scale of the derived alpha cutoff")
	fs.BoolVar(&f.Engine.Subgradient, "subgradient", def.Engine.Subgradient, "run Held-Karp ascent before alpha")
	fs.IntVar(&f.Engine.SubgradientIter, "subgradient-iterations", def.Engine.SubgradientIter, "ascent iteration cap")
	fs.BoolVar(&f.Engine.InvariantChecks, "check", def.Engine.InvariantChecks, "verify tour length after every move")

	fs.IntVar(&f.Tabu.Iterations, "iterations", def.Tabu.Iterations, "restarts per worker")
	fs.IntVar(&f.Tabu.Swaps, "swaps", def.Tabu.Swaps, "random swaps per perturbation")
	fs.IntVar(&f.Tabu.Capacity, "capacity", def.Tabu.Capacity, "tabu set capacity (0 = unbounded)")
	fs.StringVar(&f.Tabu.Restart, "restart", def.Tabu.Restart, "restart strategy: perturb or construct")
	fs.IntVarP(&f.Tabu.Workers, "workers", "w", def.Tabu.Workers, "parallel workers")
	fs.IntVar(&f.Tabu.Batch, "batch", def.Tabu.Batch, "restarts between hash exchanges")
}

// resolveConfig loads path (if any) and re-applies the flags the user set,
// so explicit flags win over the file.
func resolveConfig(fs *pflag.FlagSet, path string, f *config.File) error {
	if path == "" {
		return f.Validate()
	}
	changed := map[string]string{}
	fs.Visit(func(fl *pflag.Flag) { changed[fl.Name] = fl.Value.String() })

	loaded, err := config.Load(path)
	if err != nil {
		return err
	}
	*f = loaded
	for name, v := range changed {
		if err = fs.Set(name, v); err != nil {
			return err
		}
	}

	return f.Validate()
}

// solveOutput is the printed result.
type solveOutput struct {
	Run       string  `yaml:"run"`
	Algorithm string  `yaml:"algorithm"`
	Nodes     int     `yaml:"nodes"`
	Length    float64 `yaml:"length"`
	Bound     float64 `yaml:"bound,omitempty"`
	Gap       float64 `yaml:"gap_percent,omitempty"`
	Moves     int     `yaml:"moves"`
	Tour      []int   `yaml:"tour"`
}

func newSolveCmd() *cobra.Command {
	var (
		inst       instanceFlags
		file       config.File
		configPath string
		format     string
	)

	cmd := &cobra.Command{
		Use:   "solve",
		Short: "Find a short tour on a random Euclidean instance",
		Example: `  lkh solve -n 500 -a parallel-lkh -w 8 --iterations 25
  lkh solve --config run.toml --seed 7`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := resolveConfig(cmd.Flags(), configPath, &file); err != nil {
				return err
			}
			algo, err := tsp.ParseAlgorithm(file.Algorithm)
			if err != nil {
				return err
			}
			m, err := inst.build()
			if err != nil {
				return err
			}

			var (
				ctx    = cmd.Context()
				logger = loggerFromContext(ctx)
				series = metrics.NewSeries()
				prog   = newProgress(logger)
			)
			res, err := tsp.Solve(ctx, m, tsp.Options{
				Algo:   algo,
				Engine: []kopt.Option{kopt.WithOptions(file.KoptOptions()), kopt.WithRecorder(series)},
				Tabu:   []tabu.Option{tabu.WithConfig(file.TabuConfig())},
				Logger: logger,
			})
			if err != nil {
				return err
			}
			prog.done("search finished", "length", res.Length)

			out := solveOutput{
				Run:       res.Run.String(),
				Algorithm: algo.String(),
				Nodes:     m.N(),
				Length:    res.Length,
				Bound:     res.Bound,
				Moves:     series.Len(),
				Tour:      res.Tour,
			}
			if res.Bound > 0 {
				out.Gap = 100 * (res.Length - res.Bound) / res.Bound
			}

			return writeSolve(cmd.OutOrStdout(), format, out)
		},
	}

	fs := cmd.Flags()
	inst.bind(fs)
	bindSolverFlags(fs, &file)
	fs.StringVarP(&configPath, "config", "c", "", "TOML or YAML configuration file")
	fs.StringVarP(&format, "output", "o", "text", "output format: text or yaml")

	return cmd
}

func writeSolve(w io.Writer, format string, out solveOutput) error {
	switch format {
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return err
		}
		return enc.Close()
	case "text", "":
		tour := make([]string, len(out.Tour))
		for i, v := range out.Tour {
			tour[i] = fmt.Sprint(v)
		}
		fmt.Fprintf(w, "algorithm: %s\nnodes:     %d\nlength:    %.4f\n", out.Algorithm, out.Nodes, out.Length)
		if out.Bound > 0 {
			fmt.Fprintf(w, "bound:     %.4f (gap %.3f%%)\n", out.Bound, out.Gap)
		}
		fmt.Fprintf(w, "tour:      %s\n", strings.Join(tour, " "))
		return nil
	default:
		return errors.Errorf("unknown output format %q", format)
	}
}
