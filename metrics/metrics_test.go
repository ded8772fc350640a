package metrics_test

import (
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/lkh/metrics"
)

func TestSeries_ConcurrentRecord(t *testing.T) {
	s := metrics.NewSeries()
	run := uuid.New()

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.Record(metrics.Sample{Run: run, Worker: w, Kind: metrics.Sequential, Gain: 0.5})
			}
		}(w)
	}
	wg.Wait()

	require.Equal(t, 400, s.Len())
	assert.InDelta(t, 200.0, s.TotalGain(run), 1e-9)
	assert.Zero(t, s.TotalGain(uuid.New()))
}

func TestDefaultRegistry(t *testing.T) {
	t.Cleanup(metrics.Reset)

	assert.IsType(t, metrics.Nop{}, metrics.Default())
	s := metrics.NewSeries()
	metrics.SetDefault(s)
	metrics.SetDefault(nil) // ignored
	assert.Same(t, s, metrics.Default())

	metrics.Default().Record(metrics.Sample{Kind: metrics.Bridge})
	assert.Equal(t, "bridge", s.Samples()[0].Kind.String())
}
