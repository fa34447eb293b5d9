// SPDX-License-Identifier: MIT

package stats

import "math"

// Percentile returns the p-th percentile (0..100) of sorted values using
// linear interpolation between order statistics at position p/100·(n-1).
// sorted must be ascending and non-empty; p is clamped to [0,100].
func Percentile(sorted []float64, p float64) float64 {
	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}
	p = math.Min(math.Max(p, 0), 100)
	pos := p / 100 * float64(n-1)
	lo := int(math.Floor(pos))
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)

	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}
