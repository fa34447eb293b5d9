// SPDX-License-Identifier: MIT

package scaler_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/featkit/dataset"
	"github.com/katalvlaran/featkit/scaler"
)

func randomData(rows, cols int, seed int64) []float64 {
	rng := rand.New(rand.NewSource(seed))
	out := make([]float64, rows*cols)
	for i := range out {
		out[i] = rng.NormFloat64()*float64(1+i%cols) + float64(i%cols)
	}

	return out
}

func columnStats(data []float64, rows, cols, j int) (mean, std float64) {
	for i := 0; i < rows; i++ {
		mean += data[i*cols+j]
	}
	mean /= float64(rows)
	for i := 0; i < rows; i++ {
		d := data[i*cols+j] - mean
		std += d * d
	}

	return mean, math.Sqrt(std / float64(rows))
}

func TestNew_ValidatesParameters(t *testing.T) {
	t.Parallel()

	_, err := scaler.NewNormalize(1, 1)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)
	_, err = scaler.NewNormalize(2, 1)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)
	_, err = scaler.NewNormalize(0, math.Inf(1))
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)

	_, err = scaler.NewRobustScale(50, 50)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)
	_, err = scaler.NewRobustScale(-1, 50)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)
	_, err = scaler.NewRobustScale(10, 101)
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)
	_, err = scaler.New(scaler.Config{Kind: scaler.Kind(9)})
	require.ErrorIs(t, err, dataset.ErrInvalidParameter)

	s, err := scaler.NewRobustScale(0, 100)
	require.NoError(t, err)
	assert.False(t, s.IsFitted())
}

func TestNormalize_RangeAndRoundTrip(t *testing.T) {
	t.Parallel()

	const rows, cols = 50, 3
	X := randomData(rows, cols, 1)
	s, err := scaler.NewNormalize(-1, 2)
	require.NoError(t, err)

	Y, err := s.FitTransform(X, rows, cols)
	require.NoError(t, err)
	for j := 0; j < cols; j++ {
		lo, hi := math.Inf(1), math.Inf(-1)
		for i := 0; i < rows; i++ {
			lo = math.Min(lo, Y[i*cols+j])
			hi = math.Max(hi, Y[i*cols+j])
		}
		assert.InDelta(t, -1, lo, 1e-12)
		assert.InDelta(t, 2, hi, 1e-12)
	}

	back, err := s.InverseTransform(Y, rows, cols)
	require.NoError(t, err)
	assert.InDeltaSlice(t, X, back, 1e-9)
}

func TestStandardize_ZeroMeanUnitStd(t *testing.T) {
	t.Parallel()

	const rows, cols = 40, 3
	X := randomData(rows, cols, 2)
	// Column 2 constant.
	for i := 0; i < rows; i++ {
		X[i*cols+2] = 7
	}
	s, err := scaler.NewStandardize()
	require.NoError(t, err)
	require.NoError(t, s.Fit(X, rows, cols))
	Y, err := s.Transform(X, rows, cols)
	require.NoError(t, err)

	for j := 0; j < 2; j++ {
		mean, std := columnStats(Y, rows, cols, j)
		assert.InDelta(t, 0, mean, 1e-12)
		assert.InDelta(t, 1, std, 1e-12)
	}
	for i := 0; i < rows; i++ {
		assert.Equal(t, 0.0, Y[i*cols+2])
	}

	back, err := s.InverseTransform(Y, rows, cols)
	require.NoError(t, err)
	assert.InDeltaSlice(t, X, back, 1e-9)
}

func TestRobustScale_KnownValuesAndRoundTrip(t *testing.T) {
	t.Parallel()

	// Column 0: 1,3,5,1000 → median 4, q25 2.5, q75 253.75.
	X := []float64{1, 10, 3, 20, 5, 30, 1000, -999}
	s, err := scaler.NewRobustScale(25, 75)
	require.NoError(t, err)
	Y, err := s.FitTransform(X, 4, 2)
	require.NoError(t, err)

	p, err := s.Params()
	require.NoError(t, err)
	assert.InDelta(t, 4, p.Center[0], 1e-12)
	assert.InDelta(t, 1/(253.75-2.5), p.Gain[0], 1e-15)
	assert.InDelta(t, (1-4)/(253.75-2.5), Y[0], 1e-12)

	back, err := s.InverseTransform(Y, 4, 2)
	require.NoError(t, err)
	assert.InDeltaSlice(t, X, back, 1e-9)
}

func TestDegenerateColumns_NoNaN(t *testing.T) {
	t.Parallel()

	X := []float64{3, 3, 3, 3}
	for _, cfg := range []scaler.Config{
		scaler.NormalizeConfig(0, 1),
		scaler.StandardizeConfig(),
		scaler.RobustScaleConfig(25, 75),
		scaler.NoneConfig(),
	} {
		t.Run(cfg.Kind.String(), func(t *testing.T) {
			s, err := scaler.New(cfg)
			require.NoError(t, err)
			Y, err := s.FitTransform(X, 4, 1)
			require.NoError(t, err)
			for _, v := range Y {
				assert.False(t, math.IsNaN(v))
			}
			back, err := s.InverseTransform(Y, 4, 1)
			require.NoError(t, err)
			assert.InDeltaSlice(t, X, back, 1e-12)
		})
	}
}

func TestTransform_ErrorOrder(t *testing.T) {
	t.Parallel()

	s, err := scaler.NewStandardize()
	require.NoError(t, err)

	_, err = s.Transform([]float64{1, 2}, 1, 2)
	require.ErrorIs(t, err, dataset.ErrNotFitted)
	_, err = s.InverseTransform([]float64{1, 2}, 1, 2)
	require.ErrorIs(t, err, dataset.ErrNotFitted)

	require.ErrorIs(t, s.Fit(nil, 0, 2), dataset.ErrEmptyInput)
	require.ErrorIs(t, s.Fit([]float64{1, 2, 3}, 2, 2), dataset.ErrDimensionMismatch)
	require.ErrorIs(t, s.Fit([]float64{1, math.NaN()}, 1, 2), dataset.ErrInvalidParameter)
	assert.False(t, s.IsFitted())

	require.NoError(t, s.Fit([]float64{1, 2, 3, 4}, 2, 2))
	assert.Equal(t, 2, s.Cols())

	_, err = s.Transform(nil, 0, 2)
	require.ErrorIs(t, err, dataset.ErrEmptyInput)
	_, err = s.Transform([]float64{1, 2, 3}, 1, 3)
	require.ErrorIs(t, err, dataset.ErrDimensionMismatch)
	_, err = s.Transform([]float64{1, 2, 3}, 2, 2)
	require.ErrorIs(t, err, dataset.ErrDimensionMismatch)

	// Different row count than at fit is fine.
	out, err := s.Transform([]float64{1, 2, 3, 4, 5, 6}, 3, 2)
	require.NoError(t, err)
	assert.Len(t, out, 6)
}

func TestFit_FailureKeepsPreviousState(t *testing.T) {
	t.Parallel()

	s, err := scaler.NewNormalize(0, 1)
	require.NoError(t, err)
	require.NoError(t, s.Fit([]float64{0, 10}, 2, 1))
	before, err := s.Transform([]float64{5}, 1, 1)
	require.NoError(t, err)

	require.Error(t, s.Fit([]float64{1, 2, 3}, 2, 2))
	assert.True(t, s.IsFitted())
	after, err := s.Transform([]float64{5}, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, before, after)
}

func TestFitTransform_BitIdentical(t *testing.T) {
	t.Parallel()

	X := randomData(30, 4, 9)
	a, err := scaler.NewRobustScale(10, 90)
	require.NoError(t, err)
	b, err := scaler.NewRobustScale(10, 90)
	require.NoError(t, err)

	y1, err := a.FitTransform(X, 30, 4)
	require.NoError(t, err)
	require.NoError(t, b.Fit(X, 30, 4))
	y2, err := b.Transform(X, 30, 4)
	require.NoError(t, err)
	assert.Equal(t, y1, y2)
}

func TestOptions(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { scaler.WithEpsilon(-1) })

	// With a large epsilon the spread of column [0, 0.5] counts as degenerate.
	s, err := scaler.NewNormalize(0, 1, scaler.WithEpsilon(1))
	require.NoError(t, err)
	Y, err := s.FitTransform([]float64{0, 0.5}, 2, 1)
	require.NoError(t, err)
	assert.Equal(t, []float64{0, 0.5}, Y)
}
