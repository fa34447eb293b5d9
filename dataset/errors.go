// SPDX-License-Identifier: MIT

package dataset

import "errors"

// Every message is prefixed with "featkit: ..." so the kind is greppable
// regardless of which component reported it.
var (
	// ErrInvalidParameter is returned for out-of-range arguments (k, percentiles,
	// target dimensions, alpha, column indices, unknown enum values).
	ErrInvalidParameter = errors.New("featkit: invalid parameter")

	// ErrDimensionMismatch is returned when len(data) != rows*cols or when the
	// width of an input disagrees with the fitted width.
	ErrDimensionMismatch = errors.New("featkit: dimension mismatch")

	// ErrEmptyInput is returned when rows == 0.
	ErrEmptyInput = errors.New("featkit: empty input")

	// ErrNotFitted is returned by transform-like operations on an unfitted model.
	ErrNotFitted = errors.New("featkit: model not fitted")

	// ErrNumericalInstability is returned when a numeric step cannot produce a
	// finite result (zero eigenvalue under whitening, failed eigendecomposition).
	ErrNumericalInstability = errors.New("featkit: numerical instability")
)
