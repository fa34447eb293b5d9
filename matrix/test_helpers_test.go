// SPDX-License-Identifier: MIT
// Package matrix_test contains test helpers.
//
// Purpose:
//   - Provide small, deterministic fixtures and comparison utilities.
//   - Keep all data finite and well-formed to avoid numeric-policy interference.

package matrix_test

import (
	"math"
	"math/rand"
	"testing"

	"github.com/katalvlaran/featkit/matrix"
)

// hide wraps any Matrix to hide its concrete type from type assertions,
// forcing the At-based (non-*Dense) paths in code under test.
type hide struct{ matrix.Matrix }

// MustDenseFrom allocates a Dense from a flat buffer or fails the test.
func MustDenseFrom(t testing.TB, rows, cols int, data []float64) *matrix.Dense {
	t.Helper()
	d, err := matrix.NewDenseFrom(data, rows, cols)
	if err != nil {
		t.Fatalf("NewDenseFrom(%d,%d): %v", rows, cols, err)
	}

	return d
}

// MustAt reads (i,j) or fails the test.
func MustAt(t testing.TB, m matrix.Matrix, i, j int) float64 {
	t.Helper()
	v, err := m.At(i, j)
	if err != nil {
		t.Fatalf("At(%d,%d): %v", i, j, err)
	}

	return v
}

// sliceClose fails when |got[i]-want[i]| > atol + rtol*|want[i]| for any i.
func sliceClose(t testing.TB, got, want []float64, rtol, atol float64) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("len mismatch: got %d want %d", len(got), len(want))
	}
	for i := range got {
		if math.Abs(got[i]-want[i]) > atol+rtol*math.Abs(want[i]) {
			t.Fatalf("index %d: got %.15g want %.15g", i, got[i], want[i])
		}
	}
}

// randomSymmetric builds a deterministic n×n symmetric matrix with entries in [-1,1).
func randomSymmetric(t testing.TB, n int, seed int64) *matrix.Dense {
	t.Helper()
	rng := rand.New(rand.NewSource(seed))
	buf := make([]float64, n*n)
	for i := 0; i < n; i++ {
		for j := i; j < n; j++ {
			v := 2*rng.Float64() - 1
			buf[i*n+j], buf[j*n+i] = v, v
		}
	}

	return MustDenseFrom(t, n, n, buf)
}
