// SPDX-License-Identifier: MIT

// Package mds implements classical (Torgerson) multidimensional scaling.
//
// Project embeds rows points into targetDims dimensions so that Euclidean
// distances in the output approximate the input dissimilarities under the
// chosen distance.Metric:
//
//	D   = pairwise metric distances (rows×rows)
//	B   = -½·J·D²·J,  J = I - 11ᵀ/rows
//	B   = V·diag(λ)·Vᵀ,  λ descending
//	Y_k = V_k·sqrt(max(λ_k, 0))
//
// Non-Euclidean metrics can produce negative eigenvalues; they are clamped
// to zero, so the matching output columns are zero rather than NaN.
// Project is deterministic: no randomness, sign-normalized eigenvectors.
package mds

import (
	"fmt"
	"math"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/featkit/dataset"
	"github.com/katalvlaran/featkit/distance"
	"github.com/katalvlaran/featkit/matrix"
)

const (
	opProject   = "mds.Project"
	opDistances = "mds.Distances"
)

// Project returns the rows×targetDims classical MDS embedding of data.
//
// Errors: ErrEmptyInput, ErrDimensionMismatch, ErrInvalidParameter
// (cols<1, NaN/Inf, targetDims outside [1,rows], unknown metric),
// ErrNumericalInstability (eigendecomposition failed).
func Project(data []float64, rows, cols, targetDims int, metric distance.Metric, opts ...Option) ([]float64, error) {
	o := gatherOptions(opts...)
	out, err := project(data, rows, cols, targetDims, metric, o)
	o.logger.LogFit(opProject, rows, cols, err)

	return out, err
}

func project(data []float64, rows, cols, targetDims int, metric distance.Metric, o Options) ([]float64, error) {
	if err := validate(data, rows, cols, metric); err != nil {
		return nil, fmt.Errorf("%s: %w", opProject, err)
	}
	if targetDims < 1 || targetDims > rows {
		return nil, fmt.Errorf("%s: targetDims=%d rows=%d: %w", opProject, targetDims, rows, dataset.ErrInvalidParameter)
	}

	d := distances(data, rows, cols, metric, o.workers)
	for i, v := range d {
		d[i] = v * v
	}
	D2, err := matrix.NewDenseFrom(d, rows, rows)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opProject, err)
	}
	B, err := matrix.DoubleCenter(D2)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", opProject, err)
	}
	o.logger.LogEigen(o.solver.String(), rows)
	values, vecs, err := matrix.EigenSym(B, matrix.WithEigenSolver(o.solver))
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", opProject, dataset.ErrNumericalInstability, err)
	}

	v := vecs.Data()
	out := make([]float64, rows*targetDims)
	var i, k int
	for k = 0; k < targetDims; k++ {
		s := math.Sqrt(math.Max(values[k], 0))
		for i = 0; i < rows; i++ {
			out[i*targetDims+k] = v[i*rows+k] * s
		}
	}

	return out, nil
}

// Distances returns the rows×rows matrix of metric distances between rows.
// The diagonal is zero and the result is exactly symmetric.
//
// Errors: as Project, minus targetDims.
func Distances(data []float64, rows, cols int, metric distance.Metric, opts ...Option) ([]float64, error) {
	if err := validate(data, rows, cols, metric); err != nil {
		return nil, fmt.Errorf("%s: %w", opDistances, err)
	}
	o := gatherOptions(opts...)

	return distances(data, rows, cols, metric, o.workers), nil
}

func validate(data []float64, rows, cols int, metric distance.Metric) error {
	if err := dataset.ValidateFinite(data, rows, cols); err != nil {
		return err
	}
	if !metric.Valid() {
		return fmt.Errorf("metric=%s: %w", metric, dataset.ErrInvalidParameter)
	}

	return nil
}

// distances fills the upper triangle in contiguous row blocks, one block per
// worker, and mirrors it. Each (i,j) pair is computed exactly once.
func distances(data []float64, rows, cols int, metric distance.Metric, workers int) []float64 {
	out := make([]float64, rows*rows)
	fill := func(lo, hi int) {
		var i, j int
		for i = lo; i < hi; i++ {
			a := data[i*cols : (i+1)*cols]
			for j = i + 1; j < rows; j++ {
				out[i*rows+j] = metric.Distance(a, data[j*cols:(j+1)*cols])
			}
		}
	}

	workers = min(workers, rows)
	if workers <= 1 {
		fill(0, rows)
	} else {
		chunk := (rows + workers - 1) / workers
		var g errgroup.Group
		for lo := 0; lo < rows; lo += chunk {
			hi := min(lo+chunk, rows)
			g.Go(func() error {
				fill(lo, hi)
				return nil
			})
		}
		_ = g.Wait() // workers never fail
	}

	var i, j int
	for i = 0; i < rows; i++ {
		for j = i + 1; j < rows; j++ {
			out[j*rows+i] = out[i*rows+j]
		}
	}

	return out
}
