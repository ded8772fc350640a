// Package config loads solver settings from TOML or YAML files and converts
// them into kopt and tabu options.
//
//	algorithm = "tabu-lkh"
//	seed = 42
//
//	[engine]
//	depth = 5
//	candidate_size = 5
//	bridge = "candidates"
//
//	[tabu]
//	iterations = 200
//	workers = 4
package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"

	"github.com/katalvlaran/lkh/kopt"
	"github.com/katalvlaran/lkh/onetree"
	"github.com/katalvlaran/lkh/tabu"
)

var (
	// ErrFormat is returned for a file extension that is neither TOML nor YAML.
	ErrFormat = errors.New("config: unsupported file format")

	// ErrInvalid is returned by Validate.
	ErrInvalid = errors.New("config: invalid value")
)

// Engine mirrors kopt.Options.
type Engine struct {
	Depth           int     `toml:"depth" yaml:"depth"`
	CandidateSize   int     `toml:"candidate_size" yaml:"candidate_size"`
	DontLookBits    bool    `toml:"dont_look_bits" yaml:"dont_look_bits"`
	Bridge          string  `toml:"bridge" yaml:"bridge"`
	FastBridge      bool    `toml:"fast_bridge" yaml:"fast_bridge"`
	Excess          float64 `toml:"excess" yaml:"excess"`
	ExcessFactor    float64 `toml:"excess_factor" yaml:"excess_factor"`
	Subgradient     bool    `toml:"subgradient" yaml:"subgradient"`
	SubgradientIter int     `toml:"subgradient_iterations" yaml:"subgradient_iterations"`
	InvariantChecks bool    `toml:"invariant_checks" yaml:"invariant_checks"`
}

// Tabu mirrors tabu.Config.
type Tabu struct {
	Iterations int    `toml:"iterations" yaml:"iterations"`
	Swaps      int    `toml:"swaps" yaml:"swaps"`
	Capacity   int    `toml:"capacity" yaml:"capacity"`
	Restart    string `toml:"restart" yaml:"restart"`
	Workers    int    `toml:"workers" yaml:"workers"`
	Batch      int    `toml:"batch" yaml:"batch"`
}

// File is the on-disk configuration.
type File struct {
	Algorithm string `toml:"algorithm" yaml:"algorithm"`
	Seed      int64  `toml:"seed" yaml:"seed"`
	Engine    Engine `toml:"engine" yaml:"engine"`
	Tabu      Tabu   `toml:"tabu" yaml:"tabu"`
}

// Default returns the library defaults; keys missing from a file keep them.
func Default() File {
	o := kopt.DefaultOptions()
	c := tabu.DefaultConfig()

	return File{
		Algorithm: "lkh",
		Engine: Engine{
			Depth:           o.Depth,
			CandidateSize:   o.CandidateSize,
			DontLookBits:    o.DontLook,
			Bridge:          o.Bridge.String(),
			FastBridge:      o.FastBridge,
			ExcessFactor:    o.ExcessFactor,
			Subgradient:     o.Subgradient,
			SubgradientIter: onetree.DefaultMaxIter,
		},
		Tabu: Tabu{
			Iterations: c.Iterations,
			Swaps:      c.Swaps,
			Capacity:   c.Capacity,
			Restart:    c.Restart.String(),
			Workers:    c.Workers,
			Batch:      c.Batch,
		},
	}
}

// Load reads path, choosing the decoder by extension (.toml, .yaml, .yml),
// and validates the result.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, errors.Wrap(err, "config: read")
	}

	return Parse(data, filepath.Ext(path))
}

// Parse decodes data in the format named by ext on top of Default.
func Parse(data []byte, ext string) (File, error) {
	f := Default()
	switch strings.ToLower(strings.TrimPrefix(ext, ".")) {
	case "toml":
		if _, err := toml.Decode(string(data), &f); err != nil {
			return File{}, errors.Wrap(err, "config: toml")
		}
	case "yaml", "yml":
		if err := yaml.Unmarshal(data, &f); err != nil {
			return File{}, errors.Wrap(err, "config: yaml")
		}
	default:
		return File{}, errors.Wrapf(ErrFormat, "%q", ext)
	}
	if err := f.Validate(); err != nil {
		return File{}, err
	}

	return f, nil
}

// Validate fails fast on values no run could use.
func (f File) Validate() error {
	if _, err := kopt.ParseBridgeMode(f.Engine.Bridge); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if _, err := tabu.ParseRestart(f.Tabu.Restart); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if f.Engine.SubgradientIter < 0 {
		return errors.Wrapf(ErrInvalid, "subgradient_iterations %d < 0", f.Engine.SubgradientIter)
	}
	if f.Tabu.Capacity < 0 {
		return errors.Wrapf(ErrInvalid, "capacity %d < 0", f.Tabu.Capacity)
	}
	if err := f.KoptOptions().Validate(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}
	if err := f.TabuConfig().Validate(); err != nil {
		return errors.Wrap(ErrInvalid, err.Error())
	}

	return nil
}

// KoptOptions converts the engine section. Unknown bridge names fall back
// to none; Validate reports them.
func (f File) KoptOptions() kopt.Options {
	mode, _ := kopt.ParseBridgeMode(f.Engine.Bridge)
	o := kopt.DefaultOptions()
	o.Depth = f.Engine.Depth
	o.CandidateSize = f.Engine.CandidateSize
	o.DontLook = f.Engine.DontLookBits
	o.Bridge, o.FastBridge = mode, f.Engine.FastBridge
	o.Excess, o.ExcessFactor = f.Engine.Excess, f.Engine.ExcessFactor
	o.Subgradient, o.SubgradientIter = f.Engine.Subgradient, f.Engine.SubgradientIter
	o.InvariantChecks = f.Engine.InvariantChecks

	return o
}

// TabuConfig converts the tabu section and the seed. Engine options are
// attached with tabu.WithEngine by the caller.
func (f File) TabuConfig() tabu.Config {
	restart, _ := tabu.ParseRestart(f.Tabu.Restart)
	c := tabu.DefaultConfig()
	c.Iterations = f.Tabu.Iterations
	c.Swaps = f.Tabu.Swaps
	c.Capacity = f.Tabu.Capacity
	c.Restart = restart
	c.Workers = f.Tabu.Workers
	c.Batch = f.Tabu.Batch
	c.Seed = f.Seed

	return c
}
