// SPDX-License-Identifier: MIT

// Package featkit is an in-memory toolkit for transforming, reducing,
// clustering, indexing and querying dense row-major feature datasets.
//
// What is inside?
//
//	dataset/   shape validation, the Dataset value and the shared error kinds
//	matrix/    row-major Dense, covariance, double centering, symmetric eigensolver
//	scaler/    Normalize (min-max), Standardize (z-score), RobustScale (percentiles)
//	pca/       principal component analysis with optional scaler and whitening
//	cluster/   KMeans and spherical KMeans with seeded initializations
//	distance/  the eight dissimilarity metrics used by MDS and search
//	mds/       classical multidimensional scaling
//	kdtree/    exact k-nearest-neighbour index
//	query/     row filtering and column projection
//	stats/     channel summaries (BufStats) and sliding-window statistics
//	grid/      redistribution of 2-D layouts onto distinct lattice cells
//	logging/   slog-based structured logging shared by all components
//
// Conventions shared by every package:
//
//   - Data is a flat []float64 plus explicit rows/cols; length is always
//     validated against the declared shape, never inferred.
//   - Results are freshly allocated; inputs are never retained or mutated.
//   - Fittable components move from unfitted to fitted on a successful Fit;
//     a failed Fit leaves the previous state untouched.
//   - Errors wrap the dataset sentinels (ErrInvalidParameter,
//     ErrDimensionMismatch, ErrEmptyInput, ErrNotFitted,
//     ErrNumericalInstability); match them with errors.Is.
//   - Randomness comes only from caller-supplied seeds.
//
// See the examples/ directory for end-to-end programs.
package featkit
