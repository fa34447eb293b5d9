// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"
	"math"

	"github.com/katalvlaran/featkit/dataset"
	"github.com/katalvlaran/featkit/matrix"
)

const (
	opSKMeansFit     = "SKMeans.Fit"
	opSKMeansPredict = "SKMeans.Predict"
	opSKMeansEncode  = "SKMeans.Encode"
)

// SKMeans clusters rows by cosine similarity to unit-length means.
type SKMeans struct {
	m model
}

// NewSKMeans returns an unfitted SKMeans.
func NewSKMeans(opts ...Option) *SKMeans {
	return &SKMeans{m: model{opts: gatherOptions("skmeans", opts...), spherical: true}}
}

// Fit clusters the unit-normalized rows. Result.Means are unit vectors
// (a cluster of zero rows keeps a zero mean).
//
// Errors: as KMeans.Fit.
func (s *SKMeans) Fit(data []float64, rows, dims int, cfg Config) (Result, error) {
	return s.m.fit(opSKMeansFit, data, rows, dims, cfg)
}

// Predict returns the most similar fitted mean for every row.
func (s *SKMeans) Predict(data []float64, rows, dims int) ([]int, error) {
	return s.m.predict(opSKMeansPredict, data, rows, dims)
}

// Means returns a copy of the fitted k×dims unit means.
func (s *SKMeans) Means() ([]float64, error) {
	means, _, _, err := s.m.meansCopy()
	return means, err
}

// IsFitted reports whether Fit has succeeded.
func (s *SKMeans) IsFitted() bool { return s.m.isFitted() }

// Encode returns a rows×k soft assignment. Entry (i,j) is
// exp(alpha·cos_ij) / Σ_c exp(alpha·cos_ic), so each row sums to 1; alpha=0
// gives the uniform 1/k and larger alpha concentrates weight on the most
// similar mean.
//
// Errors: ErrNotFitted, ErrEmptyInput, ErrDimensionMismatch,
// ErrInvalidParameter (alpha negative or non-finite, NaN/Inf data).
func (s *SKMeans) Encode(data []float64, rows, dims int, alpha float64) ([]float64, error) {
	s.m.mu.RLock()
	defer s.m.mu.RUnlock()

	if err := s.m.checkInput(opSKMeansEncode, data, rows, dims); err != nil {
		return nil, err
	}
	if math.IsNaN(alpha) || math.IsInf(alpha, 0) || alpha < 0 {
		return nil, fmt.Errorf("%s: alpha=%g: %w", opSKMeansEncode, alpha, dataset.ErrInvalidParameter)
	}
	points, err := s.m.prepare(data, rows, dims)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSKMeansEncode, err)
	}

	k := s.m.k
	M, err := matrix.NewDenseFrom(s.m.means, k, dims)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSKMeansEncode, err)
	}
	scaled, err := matrix.Scale(M, alpha)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opSKMeansEncode, err)
	}

	out := make([]float64, rows*k)
	var (
		i, c      int
		peak, sum float64
		logits    []float64
	)
	for i = 0; i < rows; i++ {
		// alpha·M·x is alpha·cos against every unit mean.
		if logits, err = matrix.MatVec(scaled, points[i*dims:(i+1)*dims]); err != nil {
			return nil, fmt.Errorf("%s: %w", opSKMeansEncode, err)
		}
		w := out[i*k : (i+1)*k]
		copy(w, logits)
		peak = math.Inf(-1)
		for c = 0; c < k; c++ {
			peak = math.Max(peak, w[c])
		}
		sum = 0
		for c = 0; c < k; c++ {
			w[c] = math.Exp(w[c] - peak)
			sum += w[c]
		}
		for c = 0; c < k; c++ {
			w[c] /= sum
		}
	}

	return out, nil
}
