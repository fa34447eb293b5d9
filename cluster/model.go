// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"
	"sync"

	"github.com/katalvlaran/featkit/dataset"
	"github.com/katalvlaran/featkit/matrix"
)

// model is the fitted state shared by KMeans and SKMeans.
type model struct {
	opts      Options
	spherical bool

	mu     sync.RWMutex
	fitted bool
	k      int
	dims   int
	means  []float64
}

func (m *model) fit(op string, data []float64, rows, dims int, cfg Config) (Result, error) {
	res, err := m.train(op, data, rows, dims, cfg)
	m.opts.logger.LogFit(op, rows, dims, err)

	return res, err
}

func (m *model) train(op string, data []float64, rows, dims int, cfg Config) (Result, error) {
	if err := dataset.ValidateFinite(data, rows, dims); err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	if err := cfg.Validate(rows); err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}
	points, err := m.prepare(data, rows, dims)
	if err != nil {
		return Result{}, fmt.Errorf("%s: %w", op, err)
	}

	res := newEngine(points, rows, dims, cfg.K, m.spherical, m.opts).run(cfg)

	m.mu.Lock()
	m.k, m.dims = res.K, res.Dims
	m.means = append([]float64(nil), res.Means...)
	m.fitted = true
	m.mu.Unlock()

	return res, nil
}

// prepare returns the rows the engine compares: a copy for KMeans, unit
// rows for SKMeans.
func (m *model) prepare(data []float64, rows, dims int) ([]float64, error) {
	if !m.spherical {
		return append([]float64(nil), data...), nil
	}
	X, err := matrix.NewDenseFrom(data, rows, dims)
	if err != nil {
		return nil, err
	}
	U, _, err := matrix.NormalizeRowsL2(X)
	if err != nil {
		return nil, err
	}

	return U.Data(), nil
}

// checkInput validates a post-fit input. Callers hold m.mu.
func (m *model) checkInput(op string, data []float64, rows, dims int) error {
	if !m.fitted {
		return fmt.Errorf("%s: %w", op, dataset.ErrNotFitted)
	}
	if err := dataset.ValidateFinite(data, rows, dims); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if dims != m.dims {
		return fmt.Errorf("%s: dims=%d fitted=%d: %w", op, dims, m.dims, dataset.ErrDimensionMismatch)
	}

	return nil
}

func (m *model) predict(op string, data []float64, rows, dims int) ([]int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if err := m.checkInput(op, data, rows, dims); err != nil {
		return nil, err
	}
	points, err := m.prepare(data, rows, dims)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	e := &engine{data: points, rows: rows, dims: dims, k: m.k, spherical: m.spherical, means: m.means}
	out := make([]int, rows)
	for i := range out {
		out[i] = e.nearest(e.row(i))
	}

	return out, nil
}

func (m *model) isFitted() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.fitted
}

func (m *model) meansCopy() ([]float64, int, int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.fitted {
		return nil, 0, 0, dataset.ErrNotFitted
	}

	return append([]float64(nil), m.means...), m.k, m.dims, nil
}
