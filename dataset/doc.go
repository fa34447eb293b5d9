// SPDX-License-Identifier: MIT

// Package dataset defines the shared data model of featkit: a dense
// row-major table of float64 features with an explicit shape, plus the
// error kinds every component reports.
//
// A dataset with r rows and c columns is a flat slice of length r*c where
// element (i, j) lives at offset i*c + j. Components never retain caller
// buffers; they either read them or return freshly allocated ones.
//
// Error kinds:
//   - ErrInvalidParameter     - out-of-range argument or configuration.
//   - ErrDimensionMismatch    - buffer length or width disagrees with the declared shape.
//   - ErrEmptyInput           - zero rows where at least one is required.
//   - ErrNotFitted            - transform/encode requested before a successful fit.
//   - ErrNumericalInstability - non-finite or near-zero divisor during a numeric step.
//
// Match them with errors.Is; every exported operation wraps them with its
// operation name.
package dataset
