// SPDX-License-Identifier: MIT

// Package pca implements principal component analysis over row-major
// datasets, with an optional scaler applied before the covariance is
// taken and optional whitening of the projected components.
//
// Components are the eigenvectors of the sample covariance sorted by
// descending eigenvalue; equal eigenvalues keep original column order and
// every component is sign-normalized (largest-magnitude loading positive),
// so fitting is fully deterministic.
package pca

import (
	"fmt"
	"math"
	"sync"

	"github.com/katalvlaran/featkit/dataset"
	"github.com/katalvlaran/featkit/matrix"
	"github.com/katalvlaran/featkit/scaler"
)

const (
	opNew       = "pca.New"
	opFit       = "PCA.Fit"
	opTransform = "PCA.Transform"
	opInverse   = "PCA.InverseTransform"
)

// Config selects preprocessing and whitening.
type Config struct {
	Whiten bool
	Scaler scaler.Config
}

// DefaultConfig is no scaler, no whitening.
func DefaultConfig() Config {
	return Config{Scaler: scaler.NoneConfig()}
}

// PCA is a fittable projection onto principal components.
type PCA struct {
	cfg  Config
	opts Options

	mu       sync.RWMutex
	fitted   bool
	rows     int
	cols     int
	scale    *scaler.Scaler // nil when Config.Scaler.Kind == None
	means    []float64      // column means of the scaled data
	values   []float64      // eigenvalues, descending, clamped ≥ 0
	vectors  []float64      // cols×cols, component k in column k
	totalVar float64
}

// New validates the nested scaler configuration.
func New(cfg Config, opts ...Option) (*PCA, error) {
	if err := cfg.Scaler.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}

	return &PCA{cfg: cfg, opts: gatherOptions(opts...)}, nil
}

// Config returns the configuration the model was built with.
func (p *PCA) Config() Config { return p.cfg }

// IsFitted reports whether Fit has succeeded.
func (p *PCA) IsFitted() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.fitted
}

// Dims returns the fitted feature count, or 0 when unfitted.
func (p *PCA) Dims() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	return p.cols
}

// Eigenvalues returns a copy of the fitted eigenvalues (descending).
func (p *PCA) Eigenvalues() ([]float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.fitted {
		return nil, dataset.ErrNotFitted
	}

	return append([]float64(nil), p.values...), nil
}

// Fit learns the scaler (if configured), column means and principal
// components. A failed Fit leaves the previous state untouched.
//
// Errors: ErrEmptyInput, ErrDimensionMismatch, ErrInvalidParameter
// (rows<2, NaN/Inf), ErrNumericalInstability (eigendecomposition failed).
func (p *PCA) Fit(data []float64, rows, cols int) error {
	err := p.fit(data, rows, cols)
	p.opts.logger.LogFit(opFit, rows, cols, err)

	return err
}

func (p *PCA) fit(data []float64, rows, cols int) error {
	if err := dataset.ValidateFinite(data, rows, cols); err != nil {
		return fmt.Errorf("%s: %w", opFit, err)
	}
	if rows < 2 {
		return fmt.Errorf("%s: rows=%d, need at least 2: %w", opFit, rows, dataset.ErrInvalidParameter)
	}

	var sc *scaler.Scaler
	scaled := data
	if p.cfg.Scaler.Kind != scaler.None {
		var err error
		if sc, err = scaler.New(p.cfg.Scaler, p.scalerOptions()...); err != nil {
			return fmt.Errorf("%s: %w", opFit, err)
		}
		if scaled, err = sc.FitTransform(data, rows, cols); err != nil {
			return fmt.Errorf("%s: %w", opFit, err)
		}
	}

	X, err := matrix.NewDenseFrom(scaled, rows, cols)
	if err != nil {
		return fmt.Errorf("%s: %w", opFit, err)
	}
	cov, means, err := matrix.Covariance(X)
	if err != nil {
		return fmt.Errorf("%s: %w", opFit, err)
	}
	p.opts.logger.LogEigen(p.opts.solver.String(), cols)
	values, vecs, err := matrix.EigenSym(cov, matrix.WithEigenSolver(p.opts.solver))
	if err != nil {
		return fmt.Errorf("%s: %w: %w", opFit, dataset.ErrNumericalInstability, err)
	}

	var total float64
	for k, v := range values {
		if v < 0 {
			values[k] = 0
		}
		total += values[k]
	}

	p.mu.Lock()
	p.scale = sc
	p.means = means
	p.values = values
	p.vectors = vecs.Data()
	p.totalVar = total
	p.rows, p.cols = rows, cols
	p.fitted = true
	p.mu.Unlock()

	return nil
}

// Transform projects data onto the first targetDims components.
// Returns the rows×targetDims projection and the explained variance ratio
// Σ retained eigenvalues / Σ all eigenvalues (0 when the total is 0).
//
// Errors: ErrNotFitted, ErrEmptyInput, ErrDimensionMismatch (cols differs
// from fit), ErrInvalidParameter (targetDims outside [1, min(rowsAtFit, cols)]),
// ErrNumericalInstability (whitening against an eigenvalue ≤ epsilon).
func (p *PCA) Transform(data []float64, rows, cols, targetDims int) ([]float64, float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.fitted {
		return nil, 0, fmt.Errorf("%s: %w", opTransform, dataset.ErrNotFitted)
	}
	if err := dataset.Validate(data, rows, cols); err != nil {
		return nil, 0, fmt.Errorf("%s: %w", opTransform, err)
	}
	if cols != p.cols {
		return nil, 0, fmt.Errorf("%s: cols=%d fitted=%d: %w", opTransform, cols, p.cols, dataset.ErrDimensionMismatch)
	}
	if targetDims < 1 || targetDims > min(p.rows, p.cols) {
		return nil, 0, fmt.Errorf("%s: targetDims=%d: %w", opTransform, targetDims, dataset.ErrInvalidParameter)
	}
	if p.cfg.Whiten {
		for k := 0; k < targetDims; k++ {
			if p.values[k] <= p.opts.eps {
				return nil, 0, fmt.Errorf("%s: whitening component %d with eigenvalue %g: %w",
					opTransform, k, p.values[k], dataset.ErrNumericalInstability)
			}
		}
	}

	scaled := data
	if p.scale != nil {
		var err error
		if scaled, err = p.scale.Transform(data, rows, cols); err != nil {
			return nil, 0, fmt.Errorf("%s: %w", opTransform, err)
		}
	}
	centered := make([]float64, rows*cols)
	var i, j, k int
	for i = 0; i < rows; i++ {
		for j = 0; j < cols; j++ {
			centered[i*cols+j] = scaled[i*cols+j] - p.means[j]
		}
	}

	Xc, err := matrix.NewDenseFrom(centered, rows, cols)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", opTransform, err)
	}
	W, err := matrix.NewDenseFrom(p.leadingComponents(targetDims), cols, targetDims)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", opTransform, err)
	}
	Y, err := matrix.Mul(Xc, W)
	if err != nil {
		return nil, 0, fmt.Errorf("%s: %w", opTransform, err)
	}
	out := Y.Data()
	if p.cfg.Whiten {
		for k = 0; k < targetDims; k++ {
			inv := 1 / math.Sqrt(p.values[k])
			for i = 0; i < rows; i++ {
				out[i*targetDims+k] *= inv
			}
		}
	}

	var kept float64
	for k = 0; k < targetDims; k++ {
		kept += p.values[k]
	}
	ratio := 0.0
	if p.totalVar > 0 {
		ratio = kept / p.totalVar
	}

	return out, ratio, nil
}

// InverseTransform maps a rows×projectedCols projection back to feature
// space using the leading projectedCols components: un-whiten, rotate
// back, add the means, then undo the scaler. Lossy when projectedCols < cols.
//
// Errors: ErrNotFitted, ErrEmptyInput, ErrDimensionMismatch (buffer length),
// ErrInvalidParameter (projectedCols outside [1, cols]).
func (p *PCA) InverseTransform(projected []float64, rows, projectedCols int) ([]float64, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if !p.fitted {
		return nil, fmt.Errorf("%s: %w", opInverse, dataset.ErrNotFitted)
	}
	if err := dataset.Validate(projected, rows, projectedCols); err != nil {
		return nil, fmt.Errorf("%s: %w", opInverse, err)
	}
	if projectedCols > p.cols {
		return nil, fmt.Errorf("%s: projectedCols=%d fitted=%d: %w",
			opInverse, projectedCols, p.cols, dataset.ErrInvalidParameter)
	}

	y := make([]float64, len(projected))
	copy(y, projected)
	var i, j, k int
	if p.cfg.Whiten {
		for k = 0; k < projectedCols; k++ {
			s := math.Sqrt(p.values[k])
			for i = 0; i < rows; i++ {
				y[i*projectedCols+k] *= s
			}
		}
	}

	Y, err := matrix.NewDenseFrom(y, rows, projectedCols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInverse, err)
	}
	W, err := matrix.NewDenseFrom(p.leadingComponents(projectedCols), p.cols, projectedCols)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInverse, err)
	}
	Wt, err := matrix.Transpose(W)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInverse, err)
	}
	X, err := matrix.Mul(Y, Wt)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opInverse, err)
	}
	out := X.Data()
	for i = 0; i < rows; i++ {
		for j = 0; j < p.cols; j++ {
			out[i*p.cols+j] += p.means[j]
		}
	}
	if p.scale != nil {
		if out, err = p.scale.InverseTransform(out, rows, p.cols); err != nil {
			return nil, fmt.Errorf("%s: %w", opInverse, err)
		}
	}

	return out, nil
}

// FitTransform is Fit followed by Transform on the same data.
func (p *PCA) FitTransform(data []float64, rows, cols, targetDims int) ([]float64, float64, error) {
	if err := p.Fit(data, rows, cols); err != nil {
		return nil, 0, err
	}

	return p.Transform(data, rows, cols, targetDims)
}

// scalerOptions carries the model's epsilon and logger into the nested scaler.
func (p *PCA) scalerOptions() []scaler.Option {
	return []scaler.Option{scaler.WithEpsilon(p.opts.eps), scaler.WithLogger(p.opts.base)}
}

// leadingComponents copies the first k component columns into a cols×k buffer.
func (p *PCA) leadingComponents(k int) []float64 {
	out := make([]float64, p.cols*k)
	var j, c int
	for j = 0; j < p.cols; j++ {
		for c = 0; c < k; c++ {
			out[j*k+c] = p.vectors[j*p.cols+c]
		}
	}

	return out
}
