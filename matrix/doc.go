// SPDX-License-Identifier: MIT

// Package matrix is the dense linear-algebra core of featkit.
//
// What:
//   - Dense: a row-major float64 buffer with safe accessors (At/Set return errors).
//   - Canonical kernels: Mul, Transpose, Scale, MatVec.
//   - Statistical transforms: CenterColumns, Covariance, NormalizeRowsL2, DoubleCenter.
//   - EigenSym: symmetric eigendecomposition with deterministic output ordering.
//
// Determinism:
//   - Fixed i→j loop orders everywhere; no map iteration, no randomness.
//   - EigenSym returns eigenvalues in descending order (ties keep solver order)
//     and flips every eigenvector so its largest-magnitude component is positive.
//
// Eigen backends:
//   - SolverJacobi: cyclic Jacobi sweeps, pure Go, accurate on small matrices.
//   - SolverGonum:  LAPACK-backed symmetric solver from gonum/mat.
//   - SolverAuto:   Jacobi up to DefaultJacobiCutoff, gonum above (default).
//
// Errors:
//   - All functions return package sentinels (ErrBadShape, ErrDimensionMismatch,
//     ErrAsymmetry, ErrMatrixEigenFailed, ...) wrapped with an operation tag.
//     Match them with errors.Is.
//
// Complexity quicksheet:
//   - Mul O(n·m·p); Covariance O(r·c²); EigenSym O(n³) per sweep (Jacobi).
package matrix
