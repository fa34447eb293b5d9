// SPDX-License-Identifier: MIT

// Package kdtree is an exact k-nearest-neighbour index over fixed-dimension
// points under Euclidean distance.
//
// What:
//   - New(dims) fixes the dimensionality; Add appends (id, point) pairs.
//   - KNearest(q, k) returns up to k neighbours in ascending distance;
//     equal distances keep insertion order.
//   - Search(q, k, radius) additionally drops neighbours farther than
//     radius (radius 0 disables the bound).
//
// How:
//   - Unbalanced k-d tree: node at depth d splits on axis d mod dims.
//     Insertion order decides the shape; results never depend on it.
//   - Search descends the near side first and keeps the k best candidates
//     in a bounded max-heap keyed by (squared distance, insertion seq).
//     A far subtree is skipped only when the splitting plane lies strictly
//     beyond the current worst candidate, so tied points are never lost.
//
// Concurrency:
//   - Add takes the write lock; KNearest/Search share the read lock.
//
// Complexity:
//   - Add O(depth); KNearest O(log n) average, O(n) worst case.
package kdtree
