// SPDX-License-Identifier: MIT
// Package: matrix
//
// Purpose:
//   - Symmetric eigendecomposition with a deterministic output contract:
//     eigenvalues descending, eigenvector columns sign-normalized.
//   - Two interchangeable backends: cyclic Jacobi (pure Go) and gonum/mat's
//     LAPACK-backed EigenSym.
//
// Output contract (all backends):
//   - values[k] ≥ values[k+1]; tied eigenvalues (within eigTieTol) are
//     ordered by the row of each vector's largest-magnitude component, so
//     axis-aligned eigenvectors keep original column order on every backend.
//   - vectors is n×n with eigenvector k in column k, unit length.
//   - For every column the component with the largest magnitude is positive
//     (lowest row index among near-ties).

package matrix

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/mat"
)

// EigenSym decomposes a symmetric matrix A = V·diag(λ)·Vᵀ.
// MAIN DESCRIPTION:
//   - Validates symmetry within eps·max(1, max|A|), symmetrizes the working
//     copy, solves with the configured backend, then sorts and sign-normalizes.
//
// Implementation:
//   - Stage 1: ValidateSymmetric with a magnitude-relative tolerance.
//   - Stage 2: Copy A into a flat buffer and average A[i,j] with A[j,i].
//   - Stage 3: Dispatch on the solver (SolverAuto picks by size).
//   - Stage 4: Sort by descending eigenvalue (ties by dominant row), permute
//     columns, fix signs.
//
// Inputs:
//   - m: symmetric square matrix (n ≥ 1).
//   - opts: WithEpsilon, WithEigenTolerance, WithMaxSweeps, WithEigenSolver.
//
// Returns:
//   - []float64: eigenvalues (len n), descending.
//   - *Dense: eigenvectors as columns (n×n).
//
// Errors:
//   - ErrNilMatrix, ErrDimensionMismatch (non-square), ErrNaNInf, ErrAsymmetry,
//     ErrMatrixEigenFailed (Jacobi did not converge / LAPACK refused).
//
// Complexity:
//   - Jacobi: O(n³) per sweep, typically < 10 sweeps. gonum: O(n³).
func EigenSym(m Matrix, opts ...Option) ([]float64, *Dense, error) {
	o := gatherOptions(opts...)

	if err := ValidateNotNil(m); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	src, n, c, err := denseOf(m)
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}
	if n != c || n == 0 {
		return nil, nil, matrixErrorf(opEigen, ErrDimensionMismatch)
	}
	if err = ValidateSymmetric(m, o.eps*math.Max(1, maxAbs(src))); err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	a := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		a[i*n+i] = src[i*n+i]
		for j = i + 1; j < n; j++ {
			v := 0.5 * (src[i*n+j] + src[j*n+i])
			a[i*n+j], a[j*n+i] = v, v
		}
	}

	var vals, vecs []float64
	switch resolveSolver(o.solver, n) {
	case SolverGonum:
		vals, vecs, err = gonumEigen(a, n)
	default:
		vals, vecs, err = jacobiEigen(a, n, o.eigenTol, o.maxSweeps)
	}
	if err != nil {
		return nil, nil, matrixErrorf(opEigen, err)
	}

	vals, vecs = sortEigen(vals, vecs, n)
	normalizeSigns(vecs, n)

	return vals, wrapDense(vecs, n, n), nil
}

// resolveSolver maps SolverAuto to a concrete backend.
func resolveSolver(s EigenSolver, n int) EigenSolver {
	if s != SolverAuto {
		return s
	}
	if n <= DefaultJacobiCutoff {
		return SolverJacobi
	}

	return SolverGonum
}

// jacobiEigen diagonalizes the symmetric buffer a (mutated in place) with
// cyclic Jacobi sweeps over the strict upper triangle in i→j order.
//
// Stopping rule:
//   - ‖offdiag(A)‖_F ≤ tol·‖A₀‖_F, checked before every sweep.
//   - A zero matrix is already diagonal: values 0, vectors identity.
//
// Returns ErrMatrixEigenFailed when maxSweeps sweeps did not reach the threshold.
func jacobiEigen(a []float64, n int, tol float64, maxSweeps int) ([]float64, []float64, error) {
	q := make([]float64, n*n)
	var i int
	for i = 0; i < n; i++ {
		q[i*n+i] = 1
	}

	var (
		p, r, sweep        int
		app, aqq, apq      float64
		aip, aiq, qip, qiq float64
		theta, t, c, s     float64
	)
	threshold := tol * frobenius(a)
	converged := false
	for sweep = 0; sweep <= maxSweeps; sweep++ {
		if offDiagonal(a, n) <= threshold {
			converged = true
			break
		}
		if sweep == maxSweeps {
			break
		}
		for p = 0; p < n-1; p++ {
			for r = p + 1; r < n; r++ {
				apq = a[p*n+r]
				if apq == 0 {
					continue
				}
				app = a[p*n+p]
				aqq = a[r*n+r]
				// θ = (aqq−app)/(2·apq); t = sign(θ)/(|θ|+√(θ²+1))
				theta = (aqq - app) / (2 * apq)
				t = math.Copysign(1.0/(math.Abs(theta)+math.Hypot(theta, 1)), theta)
				c = 1.0 / math.Sqrt(t*t+1)
				s = t * c

				for i = 0; i < n; i++ {
					if i == p || i == r {
						continue
					}
					aip = a[i*n+p]
					aiq = a[i*n+r]
					a[i*n+p] = c*aip - s*aiq
					a[p*n+i] = a[i*n+p]
					a[i*n+r] = s*aip + c*aiq
					a[r*n+i] = a[i*n+r]
				}
				a[p*n+p] = c*c*app - 2*c*s*apq + s*s*aqq
				a[r*n+r] = s*s*app + 2*c*s*apq + c*c*aqq
				a[p*n+r], a[r*n+p] = 0, 0

				for i = 0; i < n; i++ {
					qip = q[i*n+p]
					qiq = q[i*n+r]
					q[i*n+p] = c*qip - s*qiq
					q[i*n+r] = s*qip + c*qiq
				}
			}
		}
	}
	if !converged {
		return nil, nil, fmt.Errorf("jacobi: %d sweeps: %w", maxSweeps, ErrMatrixEigenFailed)
	}

	vals := make([]float64, n)
	for i = 0; i < n; i++ {
		vals[i] = a[i*n+i]
	}

	return vals, q, nil
}

// gonumEigen solves with mat.EigenSym. Only the upper triangle of a is read.
func gonumEigen(a []float64, n int) ([]float64, []float64, error) {
	sym := mat.NewSymDense(n, a)
	var es mat.EigenSym
	if ok := es.Factorize(sym, true); !ok {
		return nil, nil, fmt.Errorf("gonum: factorize: %w", ErrMatrixEigenFailed)
	}
	vals := es.Values(nil)

	var ev mat.Dense
	es.VectorsTo(&ev)
	vecs := make([]float64, n*n)
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			vecs[i*n+j] = ev.At(i, j)
		}
	}
	for _, v := range vals {
		if isNonFinite(v) {
			return nil, nil, fmt.Errorf("gonum: non-finite eigenvalue: %w", ErrMatrixEigenFailed)
		}
	}

	return vals, vecs, nil
}

// eigTieTol: eigenvalues within this relative distance sort as equal.
const eigTieTol = 1e-12

// sortEigen orders eigenpairs by descending value; equal values go by
// ascending dominant row of their vectors.
func sortEigen(vals, vecs []float64, n int) ([]float64, []float64) {
	idx := make([]int, n)
	dom := make([]int, n)
	for i := range idx {
		idx[i] = i
		dom[i] = dominantRow(vecs, n, i)
	}
	sort.SliceStable(idx, func(x, y int) bool {
		a, b := vals[idx[x]], vals[idx[y]]
		if math.Abs(a-b) > eigTieTol*math.Max(1, math.Max(math.Abs(a), math.Abs(b))) {
			return a > b
		}

		return dom[idx[x]] < dom[idx[y]]
	})

	outVals := make([]float64, n)
	outVecs := make([]float64, n*n)
	var i, k int
	for k = 0; k < n; k++ {
		outVals[k] = vals[idx[k]]
		for i = 0; i < n; i++ {
			outVecs[i*n+k] = vecs[i*n+idx[k]]
		}
	}

	return outVals, outVecs
}

// signTieTol: magnitudes within this relative distance of the column maximum
// count as tied.
const signTieTol = 1e-9

// dominantRow returns the row of the largest-magnitude entry of column k.
// Among (near) ties the lowest row index wins.
func dominantRow(vecs []float64, n, k int) int {
	var mag float64
	var i int
	for i = 0; i < n; i++ {
		if v := math.Abs(vecs[i*n+k]); v > mag {
			mag = v
		}
	}
	for i = 0; i < n; i++ {
		if math.Abs(vecs[i*n+k]) >= mag*(1-signTieTol) {
			return i
		}
	}

	return 0
}

// normalizeSigns flips each column so its dominant entry is positive.
func normalizeSigns(vecs []float64, n int) {
	var i, k, best int
	for k = 0; k < n; k++ {
		best = dominantRow(vecs, n, k)
		if vecs[best*n+k] < 0 {
			for i = 0; i < n; i++ {
				vecs[i*n+k] = -vecs[i*n+k]
			}
		}
	}
}

// frobenius returns ‖A‖_F.
func frobenius(a []float64) float64 {
	var sum float64
	for _, v := range a {
		sum += v * v
	}

	return math.Sqrt(sum)
}

// offDiagonal returns the Frobenius norm of the strict off-diagonal part.
func offDiagonal(a []float64, n int) float64 {
	var sum float64
	var i, j int
	for i = 0; i < n; i++ {
		for j = 0; j < n; j++ {
			if i != j {
				sum += a[i*n+j] * a[i*n+j]
			}
		}
	}

	return math.Sqrt(sum)
}

// maxAbs returns max |v| over the buffer.
func maxAbs(a []float64) float64 {
	var m float64
	for _, v := range a {
		if av := math.Abs(v); av > m {
			m = av
		}
	}

	return m
}
