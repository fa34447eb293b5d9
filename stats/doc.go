// SPDX-License-Identifier: MIT

// Package stats provides descriptive statistics over channel-major
// buffers (BufStats), a sliding-window mean and deviation tracker
// (RunningStats), and the percentile rule shared by featkit.
//
// BufStats summarizes every selected channel with up to seven statistics
// per derivative order, always in the order Mean, Std, Skew, Kurtosis,
// Low, Mid, High:
//   - Std is the population deviation; Skew and Kurtosis are the third and
//     fourth standardized moments (Kurtosis is not excess; 0 for a
//     constant channel).
//   - Low/Mid/High are percentiles by linear interpolation, or the weighted
//     empirical quantile when weights are given.
//   - Derivative order d summarizes the d-th forward difference of the
//     channel; a difference inherits the smaller weight of its two frames.
//   - With an outlier cutoff c ≥ 0, a frame is dropped when any selected
//     channel falls outside [Q1 - c·IQR, Q3 + c·IQR] of that channel.
package stats
