package tsp_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lkh/internal/rng"
	"github.com/katalvlaran/lkh/kopt"
	"github.com/katalvlaran/lkh/matrix"
	"github.com/katalvlaran/lkh/metrics"
	"github.com/katalvlaran/lkh/tabu"
	"github.com/katalvlaran/lkh/tour"
	"github.com/katalvlaran/lkh/tsp"
)

func TestSolve_AllAlgorithms(t *testing.T) {
	m, _, err := matrix.RandomEuclidean(40, rng.FromSeed(21))
	require.NoError(t, err)

	for algo := tsp.LK; algo <= tsp.ParallelThreeOpt; algo++ {
		t.Run(algo.String(), func(t *testing.T) {
			series := metrics.NewSeries()
			res, err := tsp.Solve(context.Background(), m, tsp.Options{
				Algo:   algo,
				Engine: []kopt.Option{kopt.WithRecorder(series), kopt.WithSubgradient(true, 100)},
				Tabu:   []tabu.Option{tabu.WithIterations(5), tabu.WithWorkers(2), tabu.WithBatch(2)},
			})
			require.NoError(t, err)

			require.NoError(t, tour.ValidatePermutation(res.Tour, 40))
			assert.Equal(t, 0, res.Tour[0])
			assert.Less(t, res.Tour[1], res.Tour[39])
			assert.InDelta(t, tour.OrderLength(m, res.Tour), res.Length, kopt.DriftTolerance)

			if algo == tsp.LKH || algo == tsp.TabuLKH || algo == tsp.ParallelLKH {
				assert.Positive(t, res.Bound)
				assert.LessOrEqual(t, res.Bound, res.Length+1e-6)
			} else {
				assert.Zero(t, res.Bound)
			}

			// Every sample carries the run id.
			require.NotZero(t, series.Len())
			for _, s := range series.Samples() {
				assert.Equal(t, res.Run, s.Run)
			}
		})
	}
}

func TestSolve_StartTourAndSmallInstances(t *testing.T) {
	m, _, err := matrix.RandomEuclidean(12, rng.FromSeed(2))
	require.NoError(t, err)

	start := []int{11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1, 0}
	res, err := tsp.Solve(context.Background(), m, tsp.Options{Algo: tsp.LK, Start: start})
	require.NoError(t, err)
	assert.LessOrEqual(t, res.Length, tour.OrderLength(m, start)+1e-9)

	_, err = tsp.Solve(context.Background(), m, tsp.Options{Start: []int{0, 1, 2}})
	assert.ErrorIs(t, err, tsp.ErrDimensionMismatch)

	tiny, _, err := matrix.RandomEuclidean(3, rng.FromSeed(2))
	require.NoError(t, err)
	res, err = tsp.Solve(context.Background(), tiny, tsp.Options{Algo: tsp.ParallelLKH})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, res.Tour)
}

func TestSolve_Errors(t *testing.T) {
	m, _, err := matrix.RandomEuclidean(10, rng.FromSeed(1))
	require.NoError(t, err)

	_, err = tsp.Solve(context.Background(), m, tsp.Options{Algo: tsp.Algorithm(42)})
	assert.ErrorIs(t, err, tsp.ErrUnsupportedAlgorithm)

	bad := m.Clone()
	bad.Set(1, 1, 3)
	_, err = tsp.Solve(context.Background(), bad, tsp.Options{})
	assert.ErrorIs(t, err, matrix.ErrNonZeroDiagonal)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err = tsp.Solve(ctx, m, tsp.Options{Algo: tsp.TabuLK})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestParseAlgorithm(t *testing.T) {
	for a := tsp.LK; a <= tsp.ParallelThreeOpt; a++ {
		got, err := tsp.ParseAlgorithm(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, got)
	}
	_, err := tsp.ParseAlgorithm("christofides")
	assert.ErrorIs(t, err, tsp.ErrUnsupportedAlgorithm)
}

func TestSolve_ReplacedOptionSetsKeepRunLogger(t *testing.T) {
	m, _, err := matrix.RandomEuclidean(20, rng.FromSeed(5))
	require.NoError(t, err)

	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})
	cfg := tabu.DefaultConfig()
	cfg.Iterations, cfg.Workers = 2, 2

	for _, algo := range []tsp.Algorithm{tsp.TabuLK, tsp.TabuLKH} {
		buf.Reset()
		res, err := tsp.Solve(context.Background(), m, tsp.Options{
			Algo:   algo,
			Engine: []kopt.Option{kopt.WithOptions(kopt.DefaultOptions())},
			Tabu:   []tabu.Option{tabu.WithConfig(cfg)},
			Logger: logger,
		})
		require.NoError(t, err)

		text := buf.String()
		assert.Contains(t, text, "move", algo)
		assert.Contains(t, text, "restart", algo)
		assert.Contains(t, text, "run="+res.Run.String()[:8], algo)
	}
}
