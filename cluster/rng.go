// SPDX-License-Identifier: MIT

package cluster

import "math/rand"

// defaultRNGSeed is the fixed seed used when callers pass Seed == 0.
const defaultRNGSeed int64 = 1

// rngFromSeed returns a deterministic *rand.Rand.
// Policy: seed==0 ⇒ use defaultRNGSeed; otherwise use the provided seed verbatim.
//
// Complexity: O(1).
func rngFromSeed(seed int64) *rand.Rand {
	s := seed
	if s == 0 {
		s = defaultRNGSeed
	}

	return rand.New(rand.NewSource(s))
}

// shuffleIntsInPlace performs an in-place Fisher–Yates shuffle of a using rng.
//
// Complexity: O(n) time, O(1) extra space.
func shuffleIntsInPlace(a []int, rng *rand.Rand) {
	var i, j int
	for i = len(a) - 1; i > 0; i-- {
		j = rng.Intn(i + 1)
		a[i], a[j] = a[j], a[i]
	}
}

// permRange returns a permutation of 0..n-1 generated deterministically from rng.
//
// Complexity: O(n) time, O(n) space.
func permRange(n int, rng *rand.Rand) []int {
	p := make([]int, n)
	for i := range p {
		p[i] = i
	}
	shuffleIntsInPlace(p, rng)

	return p
}

// sampleWeighted draws an index with probability weights[i]/total.
// A zero total falls back to a uniform draw.
func sampleWeighted(weights []float64, total float64, rng *rand.Rand) int {
	if total <= 0 {
		return rng.Intn(len(weights))
	}
	target := rng.Float64() * total
	var acc float64
	for i, w := range weights {
		acc += w
		if target < acc {
			return i
		}
	}

	// Round-off can leave target ≥ acc; take the last positive weight.
	for i := len(weights) - 1; i >= 0; i-- {
		if weights[i] > 0 {
			return i
		}
	}

	return len(weights) - 1
}
