// SPDX-License-Identifier: MIT

package distance_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/featkit/distance"
)

func TestMetric_KnownValues(t *testing.T) {
	t.Parallel()

	a := []float64{0, 0}
	b := []float64{3, 4}
	cases := []struct {
		m    distance.Metric
		want float64
	}{
		{distance.Manhattan, 7},
		{distance.Euclidean, 5},
		{distance.SquaredEuclidean, 25},
		{distance.Max, 4},
		{distance.Min, 3},
		{distance.Cosine, 1}, // a is the zero vector
	}
	for _, tc := range cases {
		t.Run(tc.m.String(), func(t *testing.T) {
			assert.InDelta(t, tc.want, tc.m.Distance(a, b), 1e-12)
		})
	}
}

func TestMetric_IdentityAndSymmetry(t *testing.T) {
	t.Parallel()

	p := []float64{0.2, 0.3, 0.5}
	q := []float64{0.5, 0.25, 0.25}
	for m := distance.Manhattan; m <= distance.JensenShannon; m++ {
		t.Run(m.String(), func(t *testing.T) {
			assert.InDelta(t, 0, m.Distance(p, p), 1e-12)
			assert.InDelta(t, m.Distance(p, q), m.Distance(q, p), 1e-12)
			assert.GreaterOrEqual(t, m.Distance(p, q), 0.0)
		})
	}
}

func TestCosine_Orthogonal(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 1, distance.Cosine.Distance([]float64{1, 0}, []float64{0, 2}), 1e-12)
	assert.InDelta(t, 2, distance.Cosine.Distance([]float64{1, 0}, []float64{-1, 0}), 1e-12)
	assert.InDelta(t, 0, distance.CosineSimilarity([]float64{0, 0}, []float64{1, 1}), 0)
}

func TestDivergences(t *testing.T) {
	t.Parallel()

	p := []float64{1, 0}
	q := []float64{0, 1}
	// Disjoint supports: JS reaches sqrt(ln 2) in the limit of the clamp.
	assert.InDelta(t, math.Sqrt(math.Ln2), distance.JensenShannon.Distance(p, q), 1e-6)
	assert.Greater(t, distance.KullbackLeibler.Distance(p, q), 20.0)
	assert.False(t, math.IsNaN(distance.KullbackLeibler.Distance([]float64{-1, 0}, []float64{0, 0})))
}

func TestMetric_StringValidParse(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, int(distance.Manhattan))
	assert.Equal(t, 7, int(distance.JensenShannon))
	assert.True(t, distance.Cosine.Valid())
	assert.False(t, distance.Metric(8).Valid())
	assert.Equal(t, "Unknown(-1)", distance.Metric(-1).String())
	assert.True(t, math.IsNaN(distance.Metric(42).Distance([]float64{1}, []float64{2})))

	m, err := distance.ParseMetric("squaredeuclidean")
	require.NoError(t, err)
	assert.Equal(t, distance.SquaredEuclidean, m)
	_, err = distance.ParseMetric("hamming")
	require.Error(t, err)
}
