// SPDX-License-Identifier: MIT

// Package distance provides the pairwise dissimilarity functions used by MDS
// and the nearest-neighbour code. Every function assumes equal-length inputs
// (caller's responsibility) and is pure.
package distance

import (
	"fmt"
	"math"
	"strings"

	"github.com/viterin/vek"
	"gonum.org/v1/gonum/floats"
)

// ProbabilityFloor clamps values before logarithms in the divergence metrics.
const ProbabilityFloor = 1e-10

// Metric selects a dissimilarity function.
// The numeric order is stable and matches the external enumeration.
type Metric int

const (
	Manhattan Metric = iota
	Euclidean
	SquaredEuclidean
	Max
	Min
	KullbackLeibler
	Cosine
	JensenShannon
)

var metricNames = [...]string{
	Manhattan:        "Manhattan",
	Euclidean:        "Euclidean",
	SquaredEuclidean: "SquaredEuclidean",
	Max:              "Max",
	Min:              "Min",
	KullbackLeibler:  "KullbackLeibler",
	Cosine:           "Cosine",
	JensenShannon:    "JensenShannon",
}

func (m Metric) String() string {
	if m.Valid() {
		return metricNames[m]
	}

	return fmt.Sprintf("Unknown(%d)", int(m))
}

// Valid reports whether m is one of the eight known metrics.
func (m Metric) Valid() bool {
	return m >= Manhattan && m <= JensenShannon
}

// ParseMetric resolves a metric by case-insensitive name.
func ParseMetric(name string) (Metric, error) {
	for i, n := range metricNames {
		if strings.EqualFold(n, name) {
			return Metric(i), nil
		}
	}

	return 0, fmt.Errorf("distance: unknown metric %q", name)
}

// Distance evaluates the metric between a and b. Unknown metrics yield NaN.
func (m Metric) Distance(a, b []float64) float64 {
	switch m {
	case Manhattan:
		return vek.ManhattanDistance(a, b)
	case Euclidean:
		return vek.Distance(a, b)
	case SquaredEuclidean:
		return SquaredL2(a, b)
	case Max:
		return floats.Distance(a, b, math.Inf(1))
	case Min:
		return MinAbs(a, b)
	case KullbackLeibler:
		return SymmetricKL(a, b)
	case Cosine:
		return CosineDistance(a, b)
	case JensenShannon:
		return JensenShannonDistance(a, b)
	default:
		return math.NaN()
	}
}

// SquaredL2 returns Σ(a-b)².
func SquaredL2(a, b []float64) float64 {
	var sum, d float64
	for i := range a {
		d = a[i] - b[i]
		sum += d * d
	}

	return sum
}

// MinAbs returns min_i |a_i - b_i|, or 0 for empty inputs.
func MinAbs(a, b []float64) float64 {
	if len(a) == 0 {
		return 0
	}
	m := math.Inf(1)
	for i := range a {
		if d := math.Abs(a[i] - b[i]); d < m {
			m = d
		}
	}

	return m
}

// CosineDistance returns 1 - a·b/(‖a‖‖b‖). A zero vector is at distance 1
// from everything.
func CosineDistance(a, b []float64) float64 {
	na, nb := vek.Norm(a), vek.Norm(b)
	if na == 0 || nb == 0 {
		return 1
	}

	return 1 - vek.Dot(a, b)/(na*nb)
}

// CosineSimilarity returns a·b/(‖a‖‖b‖), or 0 when either vector is zero.
func CosineSimilarity(a, b []float64) float64 {
	na, nb := vek.Norm(a), vek.Norm(b)
	if na == 0 || nb == 0 {
		return 0
	}

	return vek.Dot(a, b) / (na * nb)
}

// SymmetricKL returns KL(a‖b) + KL(b‖a) = Σ (a'-b')·(ln a' - ln b'), with
// every value clamped below at ProbabilityFloor.
func SymmetricKL(a, b []float64) float64 {
	var sum, x, y float64
	for i := range a {
		x = math.Max(a[i], ProbabilityFloor)
		y = math.Max(b[i], ProbabilityFloor)
		sum += (x - y) * (math.Log(x) - math.Log(y))
	}

	return sum
}

// JensenShannonDistance returns sqrt(½ Σ [a' ln(2a'/(a'+b')) + b' ln(2b'/(a'+b'))])
// with the same clamp as SymmetricKL.
func JensenShannonDistance(a, b []float64) float64 {
	var sum, x, y, m float64
	for i := range a {
		x = math.Max(a[i], ProbabilityFloor)
		y = math.Max(b[i], ProbabilityFloor)
		m = x + y
		sum += x*math.Log(2*x/m) + y*math.Log(2*y/m)
	}
	if sum <= 0 {
		return 0
	}

	return math.Sqrt(0.5 * sum)
}
