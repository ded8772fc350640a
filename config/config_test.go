package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lkh/config"
	"github.com/katalvlaran/lkh/kopt"
	"github.com/katalvlaran/lkh/tabu"
)

const tomlDoc = `
algorithm = "parallel-lk"
seed = 42

[engine]
depth = 4
candidate_size = 7
bridge = "exhaustive"
fast_bridge = false

[tabu]
iterations = 12
workers = 3
restart = "construct"
`

const yamlDoc = `
algorithm: tabu-lkh
seed: 42
engine:
  depth: 4
  candidate_size: 7
  bridge: exhaustive
  fast_bridge: false
tabu:
  iterations: 12
  workers: 3
  restart: construct
`

func TestLoad_TOMLAndYAMLAgree(t *testing.T) {
	dir := t.TempDir()
	tp := filepath.Join(dir, "run.toml")
	yp := filepath.Join(dir, "run.yml")
	require.NoError(t, os.WriteFile(tp, []byte(tomlDoc), 0o600))
	require.NoError(t, os.WriteFile(yp, []byte(yamlDoc), 0o600))

	ft, err := config.Load(tp)
	require.NoError(t, err)
	fy, err := config.Load(yp)
	require.NoError(t, err)

	assert.Equal(t, "parallel-lk", ft.Algorithm)
	assert.Equal(t, "tabu-lkh", fy.Algorithm)
	ft.Algorithm = fy.Algorithm
	assert.Equal(t, ft, fy)

	o := ft.KoptOptions()
	assert.Equal(t, 4, o.Depth)
	assert.Equal(t, 7, o.CandidateSize)
	assert.Equal(t, kopt.BridgeExhaustive, o.Bridge)
	assert.False(t, o.FastBridge)
	// Keys absent from the file keep their defaults.
	assert.True(t, o.DontLook)
	assert.True(t, o.Subgradient)

	c := ft.TabuConfig()
	assert.Equal(t, 12, c.Iterations)
	assert.Equal(t, 3, c.Workers)
	assert.Equal(t, tabu.RestartConstruct, c.Restart)
	assert.Equal(t, tabu.DefaultSwaps, c.Swaps)
	assert.Equal(t, int64(42), c.Seed)
}

func TestParse_Errors(t *testing.T) {
	_, err := config.Parse([]byte(`{}`), ".json")
	assert.ErrorIs(t, err, config.ErrFormat)

	_, err = config.Parse([]byte("[engine]\ndepth = 1\n"), ".toml")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = config.Parse([]byte("engine:\n  bridge: triple\n"), "yaml")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = config.Parse([]byte("tabu:\n  workers: 0\n"), "yaml")
	assert.ErrorIs(t, err, config.ErrInvalid)

	_, err = config.Parse([]byte("engine = ["), "toml")
	assert.Error(t, err)

	_, err = config.Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)
}

func TestDefaultIsValid(t *testing.T) {
	f := config.Default()
	require.NoError(t, f.Validate())
	assert.Equal(t, kopt.DefaultOptions(), f.KoptOptions())
}
