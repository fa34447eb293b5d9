// SPDX-License-Identifier: MIT
// Package matrix: canonical linear-algebra kernels (Mul, Transpose, Scale,
// MatVec). All functions perform strict fail-fast validation, allocate a
// fresh *Dense result and never mutate their operands.
//
// Notes:
//   - Dense fast paths walk the flat buffers; other Matrix implementations go
//     through At with full error propagation.
//   - Errors are wrapped via matrixErrorf with the op* constants below.

package matrix

import "fmt"

// Operation name constants for unified error wrapping.
const (
	opMul       = "Mul"
	opTranspose = "Transpose"
	opScale     = "Scale"
	opMatVec    = "MatVec"
	opEigen     = "EigenSym"
)

// matrixErrorf wraps err with an operation tag, preserving it via %w.
// Call only when err != nil.
func matrixErrorf(tag string, err error) error {
	return fmt.Errorf("%s: %w", tag, err)
}

// Mul computes the matrix product C = A × B.
//
// Implementation:
//   - Stage 1: ValidateMulCompatible(a, b); allocate C (a.Rows × b.Cols).
//   - Stage 2: i→k→j loop over flat buffers so the inner loop streams rows of B.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (a.Cols != b.Rows), At failures.
//
// Complexity:
//   - Time O(n·m·p), Space O(n·p).
func Mul(a, b Matrix) (*Dense, error) {
	if err := ValidateMulCompatible(a, b); err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	ad, n, m, err := denseOf(a)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}
	bd, _, p, err := denseOf(b)
	if err != nil {
		return nil, matrixErrorf(opMul, err)
	}

	out := make([]float64, n*p)
	var (
		i, k, j    int
		aik        float64
		rowC, rowB int
	)
	for i = 0; i < n; i++ {
		rowC = i * p
		for k = 0; k < m; k++ {
			aik = ad[i*m+k]
			if aik == 0 {
				continue
			}
			rowB = k * p
			for j = 0; j < p; j++ {
				out[rowC+j] += aik * bd[rowB+j]
			}
		}
	}

	return wrapDense(out, n, p), nil
}

// Transpose returns Aᵀ as a new *Dense.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func Transpose(m Matrix) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	src, r, c, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opTranspose, err)
	}
	out := make([]float64, r*c)
	var i, j int
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			out[j*r+i] = src[i*c+j]
		}
	}

	return wrapDense(out, c, r), nil
}

// Scale returns alpha·A as a new *Dense.
func Scale(m Matrix, alpha float64) (*Dense, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	src, r, c, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opScale, err)
	}
	out := make([]float64, len(src))
	for i, v := range src {
		out[i] = alpha * v
	}

	return wrapDense(out, r, c), nil
}

// MatVec computes y = A·x.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (len(x) != A.Cols()).
func MatVec(m Matrix, x []float64) ([]float64, error) {
	if err := ValidateNotNil(m); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	if err := ValidateVecLen(x, m.Cols()); err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	src, r, c, err := denseOf(m)
	if err != nil {
		return nil, matrixErrorf(opMatVec, err)
	}
	y := make([]float64, r)
	var (
		i, j int
		sum  float64
	)
	for i = 0; i < r; i++ {
		sum = 0
		for j = 0; j < c; j++ {
			sum += src[i*c+j] * x[j]
		}
		y[i] = sum
	}

	return y, nil
}
