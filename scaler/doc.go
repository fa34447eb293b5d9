// SPDX-License-Identifier: MIT

// Package scaler implements per-column feature scaling: min-max
// normalization, z-score standardization and percentile-based robust
// scaling.
//
// All three variants share one concrete type, Scaler, selected by a closed
// Config variant. Fitting derives a per-column affine map
//
//	y = (x - center)·gain + base
//
// which Transform applies and InverseTransform undoes exactly:
//
//	Normalize    center=min     gain=(max'-min')/(max-min)   base=min'
//	Standardize  center=mean    gain=1/σ (population)        base=0
//	RobustScale  center=median  gain=1/(q_high-q_low)        base=0
//
// A degenerate spread (zero range, zero σ or zero inter-percentile range,
// compared against the epsilon option) is replaced by 1, so constant
// columns map to min' (Normalize) or 0 (Standardize, RobustScale) without
// NaN and remain invertible.
//
// Percentiles use linear interpolation between order statistics: the p-th
// percentile of n sorted values sits at position p/100·(n-1).
//
// A Scaler is safe for concurrent Transform/InverseTransform once fitted;
// Fit takes an exclusive lock and commits its statistics only on success.
package scaler
