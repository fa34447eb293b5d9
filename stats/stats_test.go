// SPDX-License-Identifier: MIT

package stats_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/featkit/dataset"
	"github.com/katalvlaran/featkit/stats"
)

func TestPercentile_LinearInterpolation(t *testing.T) {
	t.Parallel()

	v := []float64{1, 2, 3, 4}
	assert.Equal(t, 1.0, stats.Percentile(v, 0))
	assert.Equal(t, 4.0, stats.Percentile(v, 100))
	assert.InDelta(t, 2.5, stats.Percentile(v, 50), 1e-15)
	assert.InDelta(t, 1.75, stats.Percentile(v, 25), 1e-15)
	assert.Equal(t, 9.0, stats.Percentile([]float64{9}, 30))
	assert.Equal(t, 4.0, stats.Percentile(v, 250))
}

func newBufStats(t *testing.T, cfg stats.BufStatsConfig) *stats.BufStats {
	t.Helper()

	b, err := stats.NewBufStats(cfg)
	require.NoError(t, err)

	return b
}

func TestBufStats_MeanOnly(t *testing.T) {
	t.Parallel()

	cfg := stats.DefaultBufStatsConfig()
	cfg.Select = stats.Select(stats.Mean)
	out, err := newBufStats(t, cfg).Process([]float64{1, 2, 3, 4}, 4, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, []float64{2.5}, out.Values)
	assert.Equal(t, 1, out.NumChannels)
	assert.Equal(t, 1, out.ValuesPerChannel)
}

func TestBufStats_DerivativeMeans(t *testing.T) {
	t.Parallel()

	cfg := stats.DefaultBufStatsConfig()
	cfg.Select = stats.Select(stats.Mean)
	cfg.NumDerivatives = 2
	out, err := newBufStats(t, cfg).Process([]float64{1, 2, 3, 4}, 4, 1, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2.5, 1, 0}, out.Values, 1e-12)
}

func TestBufStats_AllStatistics(t *testing.T) {
	t.Parallel()

	// Two channels: [1 2 3 4 10] and a constant [5 5 5 5 5].
	src := []float64{1, 2, 3, 4, 10, 5, 5, 5, 5, 5}
	out, err := newBufStats(t, stats.DefaultBufStatsConfig()).Process(src, 5, 2, nil)
	require.NoError(t, err)
	require.Equal(t, 7, out.ValuesPerChannel)

	x := []float64{1, 2, 3, 4, 10}
	mean := 4.0
	var m2, m3, m4 float64
	for _, v := range x {
		d := v - mean
		m2 += d * d / 5
		m3 += d * d * d / 5
		m4 += d * d * d * d / 5
	}
	ch0, err := out.Channel(0)
	require.NoError(t, err)
	want := []float64{mean, math.Sqrt(m2), m3 / math.Pow(m2, 1.5), m4 / (m2 * m2), 1, 3, 10}
	assert.InDeltaSlice(t, want, ch0, 1e-12)

	ch1, err := out.Channel(1)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, 0, 0, 0, 5, 5, 5}, ch1)

	_, err = out.Channel(2)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)
}

func TestBufStats_Span(t *testing.T) {
	t.Parallel()

	// Three channels of four frames; analyse frames 1..2 of channels 1..2.
	src := []float64{
		0, 1, 2, 3,
		10, 11, 12, 13,
		20, 21, 22, 23,
	}
	cfg := stats.DefaultBufStatsConfig()
	cfg.Select = stats.Select(stats.Mean, stats.High)
	cfg.StartFrame, cfg.NumFrames = 1, 2
	cfg.StartChannel = 1
	out, err := newBufStats(t, cfg).Process(src, 4, 3, nil)
	require.NoError(t, err)
	assert.Equal(t, 2, out.NumChannels)
	assert.InDeltaSlice(t, []float64{11.5, 12, 21.5, 22}, out.Values, 1e-12)
}

func TestBufStats_Weights(t *testing.T) {
	t.Parallel()

	cfg := stats.DefaultBufStatsConfig()
	cfg.Select = stats.Select(stats.Mean)
	b := newBufStats(t, cfg)

	out, err := b.Process([]float64{0, 10}, 2, 1, []float64{0.9, 0.1})
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.Values[0], 1e-9)

	// Negative weights exclude their frame.
	out, err = b.Process([]float64{0, 10, 20}, 3, 1, []float64{-1, 1, 1})
	require.NoError(t, err)
	assert.InDelta(t, 15.0, out.Values[0], 1e-12)

	cfg.Select = stats.Select(stats.Mean, stats.Std)
	cfg.NumDerivatives = 1
	require.NoError(t, b.SetConfig(cfg))
	out, err = b.Process([]float64{1, 2, 3, 4}, 4, 1, []float64{0, -1, 0, -2})
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0, 0, 0}, out.Values)

	_, err = b.Process([]float64{1, 2, 3, 4}, 4, 1, []float64{1, 1})
	require.ErrorIs(t, err, dataset.ErrDimensionMismatch)
}

func TestBufStats_Outliers(t *testing.T) {
	t.Parallel()

	cfg := stats.DefaultBufStatsConfig()
	cfg.Select = stats.Select(stats.Mean, stats.High)
	cfg.OutliersCutoff = 1.5
	out, err := newBufStats(t, cfg).Process([]float64{1, 2, 3, 4, 5, 6, 7, 100}, 8, 1, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{4, 7}, out.Values, 1e-12)

	// A frame is dropped for every channel when any channel is an outlier.
	src := []float64{
		1, 2, 3, 4, 5, 6,
		1, 1, 1, 1, 1, 50,
	}
	cfg.Select = stats.Select(stats.Mean)
	out, err = newBufStats(t, cfg).Process(src, 6, 2, nil)
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{3, 1}, out.Values, 1e-12)
}

func TestBufStats_Errors(t *testing.T) {
	t.Parallel()

	mutators := []func(c *stats.BufStatsConfig){
		func(c *stats.BufStatsConfig) { c.NumDerivatives = 3 },
		func(c *stats.BufStatsConfig) { c.Select = 0 },
		func(c *stats.BufStatsConfig) { c.LowPercentile = 60 },
		func(c *stats.BufStatsConfig) { c.HighPercentile = 101 },
		func(c *stats.BufStatsConfig) { c.StartFrame = -1 },
		func(c *stats.BufStatsConfig) { c.OutliersCutoff = math.NaN() },
	}
	bad := make([]stats.BufStatsConfig, len(mutators))
	for i, mutate := range mutators {
		bad[i] = stats.DefaultBufStatsConfig()
		mutate(&bad[i])
		_, err := stats.NewBufStats(bad[i])
		require.ErrorIs(t, err, dataset.ErrInvalidParameter, "case %d", i)
	}

	b := newBufStats(t, stats.DefaultBufStatsConfig())
	require.ErrorIs(t, b.SetConfig(bad[0]), dataset.ErrInvalidParameter)
	assert.Equal(t, stats.DefaultBufStatsConfig(), b.Config())

	_, err := b.Process(nil, 4, 0, nil)
	require.ErrorIs(t, err, dataset.ErrEmptyInput)
	_, err = b.Process([]float64{1, 2, 3}, 2, 2, nil)
	require.ErrorIs(t, err, dataset.ErrDimensionMismatch)
	_, err = b.Process([]float64{1, math.NaN()}, 2, 1, nil)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)

	cfg := stats.DefaultBufStatsConfig()
	cfg.StartFrame = 4
	_, err = newBufStats(t, cfg).Process([]float64{1, 2, 3, 4}, 4, 1, nil)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)

	cfg = stats.DefaultBufStatsConfig()
	cfg.NumDerivatives = 2
	_, err = newBufStats(t, cfg).Process([]float64{1, 2}, 2, 1, nil)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)

	cfg = stats.DefaultBufStatsConfig()
	cfg.StartChannel, cfg.NumChannels = 1, 2
	_, err = newBufStats(t, cfg).Process([]float64{1, 2, 3, 4}, 2, 2, nil)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)
}

func TestSelection(t *testing.T) {
	t.Parallel()

	s := stats.Select(stats.High, stats.Mean, stats.Stat(42))
	assert.True(t, s.Has(stats.Mean))
	assert.False(t, s.Has(stats.Std))
	assert.Equal(t, 2, s.Count())
	assert.Equal(t, 7, stats.SelectAll.Count())
	assert.Equal(t, "Kurtosis", stats.Kurtosis.String())
	assert.Equal(t, "Stat(9)", stats.Stat(9).String())
}

func TestRunningStats(t *testing.T) {
	t.Parallel()

	rs, err := stats.NewRunningStats(4, 1)
	require.NoError(t, err)
	assert.Equal(t, 4, rs.HistorySize())
	assert.Equal(t, 1, rs.InputSize())

	m, s, err := rs.Process([]float64{1})
	require.NoError(t, err)
	assert.InDelta(t, 1, m[0], 1e-12)
	assert.InDelta(t, 0, s[0], 1e-12)

	m, s, err = rs.Process([]float64{2})
	require.NoError(t, err)
	assert.InDelta(t, 1.5, m[0], 1e-12)
	assert.InDelta(t, math.Sqrt2/2, s[0], 1e-12)

	// The window slides: after 1..6 only 3,4,5,6 remain.
	for _, v := range []float64{3, 4, 5} {
		_, _, err = rs.Process([]float64{v})
		require.NoError(t, err)
	}
	m, s, err = rs.Process([]float64{6})
	require.NoError(t, err)
	assert.InDelta(t, 4.5, m[0], 1e-12)
	assert.InDelta(t, math.Sqrt(5.0/3.0), s[0], 1e-12)
}

func TestRunningStats_ClearAndNaN(t *testing.T) {
	t.Parallel()

	rs, err := stats.NewRunningStats(8, 2)
	require.NoError(t, err)
	_, _, err = rs.Process([]float64{10, -10})
	require.NoError(t, err)
	_, _, err = rs.Process([]float64{20, -20})
	require.NoError(t, err)
	rs.Clear()

	m, s, err := rs.Process([]float64{1, 2})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{1, 2}, m, 1e-12)
	assert.InDeltaSlice(t, []float64{0, 0}, s, 1e-12)

	nan, err := stats.NewRunningStats(4, 1)
	require.NoError(t, err)
	m, s, err = nan.Process([]float64{math.NaN()})
	require.NoError(t, err)
	assert.Zero(t, m[0])
	assert.Zero(t, s[0])

	_, _, err = nan.Process([]float64{1, 2})
	require.ErrorIs(t, err, dataset.ErrDimensionMismatch)

	_, err = stats.NewRunningStats(1, 1)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)
	_, err = stats.NewRunningStats(2, 0)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)
}
