// SPDX-License-Identifier: MIT

package scaler

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/featkit/dataset"
	"github.com/katalvlaran/featkit/stats"
)

// Operation tags for error wrapping.
const (
	opNew       = "scaler.New"
	opFit       = "Scaler.Fit"
	opTransform = "Scaler.Transform"
	opInverse   = "Scaler.InverseTransform"
)

// Params is a copy of the fitted per-column affine map.
type Params struct {
	Center []float64
	Gain   []float64
	Base   []float64
}

// Scaler is a fittable per-column affine transform.
type Scaler struct {
	cfg  Config
	opts Options

	mu     sync.RWMutex
	fitted bool
	cols   int
	center []float64
	gain   []float64
	base   []float64
}

// New validates cfg and returns an unfitted Scaler.
func New(cfg Config, opts ...Option) (*Scaler, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	return &Scaler{cfg: cfg, opts: gatherOptions(opts...)}, nil
}

// NewNormalize returns a min-max scaler onto [min,max].
func NewNormalize(min, max float64, opts ...Option) (*Scaler, error) {
	return New(NormalizeConfig(min, max), opts...)
}

// NewStandardize returns a z-score scaler.
func NewStandardize(opts ...Option) (*Scaler, error) {
	return New(StandardizeConfig(), opts...)
}

// NewRobustScale returns a median/percentile-range scaler.
func NewRobustScale(low, high float64, opts ...Option) (*Scaler, error) {
	return New(RobustScaleConfig(low, high), opts...)
}

// Config returns the variant this scaler was built with.
func (s *Scaler) Config() Config { return s.cfg }

// IsFitted reports whether Fit has succeeded at least once.
func (s *Scaler) IsFitted() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.fitted
}

// Cols returns the fitted column count, or 0 when unfitted.
func (s *Scaler) Cols() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.cols
}

// Params returns a copy of the fitted map.
func (s *Scaler) Params() (Params, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.fitted {
		return Params{}, dataset.ErrNotFitted
	}

	return Params{
		Center: append([]float64(nil), s.center...),
		Gain:   append([]float64(nil), s.gain...),
		Base:   append([]float64(nil), s.base...),
	}, nil
}

// Fit derives per-column statistics from data. On error the previous
// fitted state, if any, is kept.
//
// Errors: ErrEmptyInput (rows==0), ErrInvalidParameter (cols<1, NaN/Inf),
// ErrDimensionMismatch (len(data) != rows*cols).
func (s *Scaler) Fit(data []float64, rows, cols int) error {
	err := s.fit(data, rows, cols)
	s.opts.logger.LogFit(opFit, rows, cols, err)

	return err
}

func (s *Scaler) fit(data []float64, rows, cols int) error {
	if err := dataset.ValidateFinite(data, rows, cols); err != nil {
		return fmt.Errorf("%s: %w", opFit, err)
	}

	center := make([]float64, cols)
	gain := make([]float64, cols)
	base := make([]float64, cols)
	col := make([]float64, rows)
	var i, j int
	for j = 0; j < cols; j++ {
		for i = 0; i < rows; i++ {
			col[i] = data[i*cols+j]
		}
		center[j], gain[j], base[j] = s.columnMap(col)
	}

	s.mu.Lock()
	s.center, s.gain, s.base = center, gain, base
	s.cols = cols
	s.fitted = true
	s.mu.Unlock()

	return nil
}

// columnMap computes (center, gain, base) for one column. col may be reordered.
func (s *Scaler) columnMap(col []float64) (center, gain, base float64) {
	switch s.cfg.Kind {
	case Normalize:
		lo, hi := floats.Min(col), floats.Max(col)
		return lo, (s.cfg.Max - s.cfg.Min) / s.spread(hi-lo), s.cfg.Min
	case Standardize:
		mean, variance := stat.PopMeanVariance(col, nil)
		return mean, 1 / s.spread(math.Sqrt(variance)), 0
	case RobustScale:
		sort.Float64s(col)
		med := stats.Percentile(col, 50)
		lo := stats.Percentile(col, s.cfg.LowPercentile)
		hi := stats.Percentile(col, s.cfg.HighPercentile)
		return med, 1 / s.spread(hi-lo), 0
	default:
		return 0, 1, 0
	}
}

// spread substitutes 1 for a degenerate (≤ eps) spread.
func (s *Scaler) spread(v float64) float64 {
	if v <= s.opts.eps {
		return 1
	}

	return v
}

// Transform applies the fitted map. rows may differ from the fit; cols may not.
//
// Errors: ErrNotFitted, ErrEmptyInput, ErrInvalidParameter (cols<1),
// ErrDimensionMismatch (cols differs from fit, or bad buffer length).
func (s *Scaler) Transform(data []float64, rows, cols int) ([]float64, error) {
	return s.apply(opTransform, data, rows, cols, false)
}

// InverseTransform undoes Transform.
func (s *Scaler) InverseTransform(data []float64, rows, cols int) ([]float64, error) {
	return s.apply(opInverse, data, rows, cols, true)
}

// FitTransform is Fit followed by Transform on the same data.
func (s *Scaler) FitTransform(data []float64, rows, cols int) ([]float64, error) {
	if err := s.Fit(data, rows, cols); err != nil {
		return nil, err
	}

	return s.Transform(data, rows, cols)
}

func (s *Scaler) apply(op string, data []float64, rows, cols int, inverse bool) ([]float64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.fitted {
		return nil, fmt.Errorf("%s: %w", op, dataset.ErrNotFitted)
	}
	if rows == 0 {
		return nil, fmt.Errorf("%s: %w", op, dataset.ErrEmptyInput)
	}
	if rows < 0 || cols < 1 {
		return nil, fmt.Errorf("%s: %w", op, dataset.ErrInvalidParameter)
	}
	if cols != s.cols {
		return nil, fmt.Errorf("%s: cols=%d fitted=%d: %w", op, cols, s.cols, dataset.ErrDimensionMismatch)
	}
	if err := dataset.Validate(data, rows, cols); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]float64, len(data))
	var i, j, base int
	for i = 0; i < rows; i++ {
		base = i * cols
		for j = 0; j < cols; j++ {
			if inverse {
				out[base+j] = (data[base+j]-s.base[j])/s.gain[j] + s.center[j]
			} else {
				out[base+j] = (data[base+j]-s.center[j])*s.gain[j] + s.base[j]
			}
		}
	}

	return out, nil
}
