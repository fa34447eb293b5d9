// SPDX-License-Identifier: MIT

// Package cluster implements Lloyd-style k-means (KMeans) and its spherical
// variant (SKMeans) over row-major datasets.
//
// Both models share one engine:
//   - Initialization: RandomPartition, RandomPoint or RandomSampling
//     (k-means++ style D² seeding), driven by a *rand.Rand built from
//     Config.Seed. Seed 0 maps to a fixed default seed.
//   - Iteration: reassign every row to its nearest mean (ties to the lower
//     cluster index), repair empty clusters, recompute means; stop when no
//     assignment changes or after Config.MaxIter rounds.
//   - Empty clusters take the row farthest from its own mean among clusters
//     holding at least two rows, so every label in [0,k) is always used.
//
// KMeans measures squared Euclidean distance against centroids. SKMeans
// compares unit-normalized rows to unit-normalized means by cosine
// similarity; zero rows stay zero and sit at distance 1 from every mean.
//
// SKMeans.Encode turns cosine similarities into a soft assignment:
// row i, column j holds softmax_j(alpha·cos(x_i, c_j)). Rows sum to 1 and
// grow sharper as alpha increases.
//
// Fitted models are safe for concurrent Predict/Encode; Fit is exclusive.
// WithWorkers parallelizes the assignment step without changing results.
package cluster
