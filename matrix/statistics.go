// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Provide the statistical transforms featkit components build on
//     (column centering, sample covariance, L2 row normalization, double
//     centering) as deterministic compositions over flat row-major buffers.
//
// Exposed API:
//   - CenterColumns(X)   -> (Xc, means)   // subtract per-column mean
//   - Covariance(X)      -> (Cov, means)  // sample covariance of columns: (Xcᵀ Xc)/(r-1)
//   - NormalizeRowsL2(X) -> (Y, norms)    // L2 row normalization (zero rows unchanged)
//   - DoubleCenter(A)    -> B             // B = -½·J·A·J, J = I - 11ᵀ/n
//
// Determinism & Performance:
//   - Fixed i→j traversal for all explicit loops.
//   - Dense inputs are read in place; other Matrix implementations are copied once.

package matrix

import "math"

// Operation name constants for unified error wrapping.
const (
	opCenterColumns   = "CenterColumns"
	opNormalizeRowsL2 = "NormalizeRowsL2"
	opCovariance      = "Covariance"
	opDoubleCenter    = "DoubleCenter"
)

// CenterColumns subtracts the per-column mean from every element.
//
// Implementation:
//   - Stage 1: Validate X (non-nil).
//   - Stage 2: Accumulate column sums row by row, divide by r.
//   - Stage 3: Broadcast-subtract the means into a fresh buffer.
//
// Returns:
//   - *Dense: centered copy (r×c).
//   - []float64: column means (len=c), reusable to un-center later.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func CenterColumns(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}
	src, r, c, err := denseOf(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCenterColumns, err)
	}

	means := columnMeans(src, r, c)
	out := make([]float64, r*c)
	var i, j, base int
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			out[base+j] = src[base+j] - means[j]
		}
	}

	return wrapDense(out, r, c), means, nil
}

// columnMeans returns Σ_i X[i,j] / r per column.
func columnMeans(src []float64, r, c int) []float64 {
	means := make([]float64, c)
	var i, j, base int
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			means[j] += src[base+j]
		}
	}
	invR := 1.0 / float64(r)
	for j = 0; j < c; j++ {
		means[j] *= invR
	}

	return means
}

// Covariance computes the sample covariance of columns: Cov = (Xcᵀ·Xc)/(r-1).
//
// Implementation:
//   - Stage 1: Validate X, require r>=2 (sample denominator).
//   - Stage 2: Center columns once.
//   - Stage 3: Accumulate the upper triangle row by row and mirror it, so the
//     result is exactly symmetric.
//
// Returns:
//   - *Dense: covariance (c×c); diagonal holds per-column sample variances.
//   - []float64: column means used for centering.
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (r<2).
//
// Complexity:
//   - Time O(r*c²), Space O(c²).
func Covariance(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}
	if X.Rows() < 2 {
		return nil, nil, matrixErrorf(opCovariance, ErrDimensionMismatch)
	}
	xc, means, err := CenterColumns(X)
	if err != nil {
		return nil, nil, matrixErrorf(opCovariance, err)
	}

	r, c := xc.r, xc.c
	cov := make([]float64, c*c)
	var (
		i, j, k, base int
		xj            float64
	)
	for i = 0; i < r; i++ {
		base = i * c
		for j = 0; j < c; j++ {
			xj = xc.data[base+j]
			if xj == 0 {
				continue
			}
			for k = j; k < c; k++ {
				cov[j*c+k] += xj * xc.data[base+k]
			}
		}
	}
	inv := 1.0 / float64(r-1)
	for j = 0; j < c; j++ {
		for k = j; k < c; k++ {
			cov[j*c+k] *= inv
			cov[k*c+j] = cov[j*c+k]
		}
	}

	return wrapDense(cov, c, c), means, nil
}

// NormalizeRowsL2 scales each row to unit L2 norm.
//
// Behavior highlights:
//   - Rows with norm 0 are left unchanged (stay all-zero).
//
// Returns:
//   - *Dense: normalized copy.
//   - []float64: original row norms.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NormalizeRowsL2(X Matrix) (*Dense, []float64, error) {
	if err := ValidateNotNil(X); err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL2, err)
	}
	src, r, c, err := denseOf(X)
	if err != nil {
		return nil, nil, matrixErrorf(opNormalizeRowsL2, err)
	}

	out := make([]float64, r*c)
	norms := make([]float64, r)
	var (
		i, j, base int
		sq, v, inv float64
	)
	for i = 0; i < r; i++ {
		base = i * c
		sq = 0
		for j = 0; j < c; j++ {
			v = src[base+j]
			sq += v * v
		}
		norms[i] = math.Sqrt(sq)
		inv = 1.0
		if norms[i] > 0 {
			inv = 1.0 / norms[i]
		}
		for j = 0; j < c; j++ {
			out[base+j] = src[base+j] * inv
		}
	}

	return wrapDense(out, r, c), norms, nil
}

// DoubleCenter computes B = -½·J·A·J with J = I - 11ᵀ/n.
//
// Implementation:
//   - Stage 1: Validate A is non-nil and square.
//   - Stage 2: Row means, column means and the grand mean in one pass.
//   - Stage 3: B[i,j] = -½·(A[i,j] - row_i - col_j + grand).
//
// Notes:
//   - Fed with squared distances this yields the Gram matrix of classical MDS.
//
// Complexity:
//   - Time O(n²), Space O(n²).
func DoubleCenter(A Matrix) (*Dense, error) {
	if err := ValidateNotNil(A); err != nil {
		return nil, matrixErrorf(opDoubleCenter, err)
	}
	if err := ValidateSquare(A); err != nil {
		return nil, matrixErrorf(opDoubleCenter, err)
	}
	src, n, _, err := denseOf(A)
	if err != nil {
		return nil, matrixErrorf(opDoubleCenter, err)
	}

	rowMeans := make([]float64, n)
	colMeans := columnMeans(src, n, n)
	var (
		i, j, base int
		grand      float64
	)
	for i = 0; i < n; i++ {
		base = i * n
		for j = 0; j < n; j++ {
			rowMeans[i] += src[base+j]
		}
		grand += rowMeans[i]
		rowMeans[i] /= float64(n)
	}
	grand /= float64(n * n)

	out := make([]float64, n*n)
	for i = 0; i < n; i++ {
		base = i * n
		for j = 0; j < n; j++ {
			out[base+j] = -0.5 * (src[base+j] - rowMeans[i] - colMeans[j] + grand)
		}
	}

	return wrapDense(out, n, n), nil
}
