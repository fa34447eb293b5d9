// SPDX-License-Identifier: MIT
// Package matrix: sentinel error set.
// Algorithms return these sentinels (wrapped with an operation tag) and tests
// check them via errors.Is. No function panics on user-triggered conditions;
// panics are reserved for option constructors fed nonsensical values.

package matrix

import "errors"

// Every message is prefixed with "matrix: ..." for easy grepping across logs.
//
// ERROR PRIORITY (enforced in tests):
// nil -> shape -> dimension mismatch -> NaN/Inf -> structural (asymmetry)
// -> numeric failure (eigen).
var (
	// ErrBadShape is returned when a requested shape is invalid (r<=0 or c<=0).
	ErrBadShape = errors.New("matrix: invalid shape")

	// ErrOutOfRange indicates that an index (row or column) is outside valid bounds.
	// Public indexers (At/Set) return this, never panic.
	ErrOutOfRange = errors.New("matrix: index out of range")

	// ErrDimensionMismatch indicates incompatible dimensions between operands,
	// e.g. Mul where a.Cols != b.Rows, or a buffer whose length is not r*c.
	ErrDimensionMismatch = errors.New("matrix: dimension mismatch")

	// ErrAsymmetry signals that a matrix expected to be symmetric violated
	// symmetry within the configured epsilon.
	ErrAsymmetry = errors.New("matrix: matrix is not symmetric within eps")

	// ErrNaNInf signals a NaN or ±Inf value where finite values are required.
	ErrNaNInf = errors.New("matrix: NaN or Inf encountered")

	// ErrNilMatrix indicates that a nil Matrix (receiver or argument) was used.
	ErrNilMatrix = errors.New("matrix: nil receiver")

	// ErrMatrixEigenFailed indicates that an eigen routine failed to converge
	// under the given tolerance/sweeps, or that the LAPACK backend refused the input.
	ErrMatrixEigenFailed = errors.New("matrix: eigen decomposition failed")
)
