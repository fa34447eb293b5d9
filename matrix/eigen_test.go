// SPDX-License-Identifier: MIT

package matrix_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/katalvlaran/featkit/matrix"
)

// EigenSuite runs the same contract checks against every backend.
type EigenSuite struct {
	suite.Suite
	solver matrix.EigenSolver
}

func TestEigenSuite(t *testing.T) {
	for _, s := range []matrix.EigenSolver{matrix.SolverJacobi, matrix.SolverGonum, matrix.SolverAuto} {
		t.Run(s.String(), func(t *testing.T) {
			suite.Run(t, &EigenSuite{solver: s})
		})
	}
}

func (s *EigenSuite) eig(m matrix.Matrix) ([]float64, *matrix.Dense) {
	vals, vecs, err := matrix.EigenSym(m, matrix.WithEigenSolver(s.solver))
	s.Require().NoError(err)

	return vals, vecs
}

func (s *EigenSuite) TestTwoByTwo() {
	m := MustDenseFrom(s.T(), 2, 2, []float64{2, 1, 1, 2})
	vals, vecs := s.eig(m)

	sliceClose(s.T(), vals, []float64{3, 1}, 0, 1e-12)
	h := 1 / math.Sqrt2
	sliceClose(s.T(), vecs.Data(), []float64{h, h, h, -h}, 0, 1e-12)
}

func (s *EigenSuite) TestDiagonalSortedDescending() {
	m := MustDenseFrom(s.T(), 3, 3, []float64{1, 0, 0, 0, 5, 0, 0, 0, 3})
	vals, vecs := s.eig(m)

	sliceClose(s.T(), vals, []float64{5, 3, 1}, 0, 1e-12)
	// Column k is the unit vector of the k-th largest diagonal entry, positive.
	s.InDelta(1.0, MustAt(s.T(), vecs, 1, 0), 1e-12)
	s.InDelta(1.0, MustAt(s.T(), vecs, 2, 1), 1e-12)
	s.InDelta(1.0, MustAt(s.T(), vecs, 0, 2), 1e-12)
}

func (s *EigenSuite) TestTiesKeepColumnOrder() {
	m := MustDenseFrom(s.T(), 4, 4, []float64{
		3, 0, 0, 0,
		0, 1, 0, 0,
		0, 0, 3, 0,
		0, 0, 0, 3,
	})
	vals, vecs := s.eig(m)

	sliceClose(s.T(), vals, []float64{3, 3, 3, 1}, 0, 1e-12)
	// Equal eigenvalues follow the column their vector points along.
	for k, row := range []int{0, 2, 3, 1} {
		s.InDelta(1.0, MustAt(s.T(), vecs, row, k), 1e-12, "column %d", k)
	}
}

func (s *EigenSuite) TestReconstructionAndOrthonormality() {
	const n = 7
	m := randomSymmetric(s.T(), n, 42)
	vals, vecs := s.eig(m)

	for k := 1; k < n; k++ {
		s.GreaterOrEqual(vals[k-1], vals[k])
	}
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			var rec, dot float64
			for k := 0; k < n; k++ {
				rec += MustAt(s.T(), vecs, i, k) * vals[k] * MustAt(s.T(), vecs, j, k)
				dot += MustAt(s.T(), vecs, k, i) * MustAt(s.T(), vecs, k, j)
			}
			s.InDelta(MustAt(s.T(), m, i, j), rec, 1e-9)
			if i == j {
				s.InDelta(1.0, dot, 1e-9)
			} else {
				s.InDelta(0.0, dot, 1e-9)
			}
		}
	}
	// Sign convention: largest-magnitude component of every column is positive.
	for k := 0; k < n; k++ {
		best, mag := 0, -1.0
		for i := 0; i < n; i++ {
			if v := math.Abs(MustAt(s.T(), vecs, i, k)); v > mag+1e-9 {
				best, mag = i, v
			}
		}
		s.Positive(MustAt(s.T(), vecs, best, k))
	}
}

func (s *EigenSuite) TestZeroMatrix() {
	m := MustDenseFrom(s.T(), 2, 2, []float64{0, 0, 0, 0})
	vals, _ := s.eig(m)
	sliceClose(s.T(), vals, []float64{0, 0}, 0, 1e-15)
}

func TestEigenSym_BackendsAgree(t *testing.T) {
	t.Parallel()

	m := randomSymmetric(t, 12, 7)
	vj, Vj, err := matrix.EigenSym(m, matrix.WithEigenSolver(matrix.SolverJacobi))
	require.NoError(t, err)
	vg, Vg, err := matrix.EigenSym(hide{m}, matrix.WithEigenSolver(matrix.SolverGonum))
	require.NoError(t, err)

	sliceClose(t, vj, vg, 0, 1e-9)
	sliceClose(t, Vj.Data(), Vg.Data(), 0, 1e-7)
}

func TestEigenSym_Errors(t *testing.T) {
	t.Parallel()

	_, _, err := matrix.EigenSym(nil)
	require.ErrorIs(t, err, matrix.ErrNilMatrix)

	_, _, err = matrix.EigenSym(MustDenseFrom(t, 2, 3, make([]float64, 6)))
	require.ErrorIs(t, err, matrix.ErrDimensionMismatch)

	_, _, err = matrix.EigenSym(MustDenseFrom(t, 2, 2, []float64{1, 2, 3, 4}))
	require.ErrorIs(t, err, matrix.ErrAsymmetry)

	_, _, err = matrix.EigenSym(randomSymmetric(t, 8, 3),
		matrix.WithEigenSolver(matrix.SolverJacobi), matrix.WithMaxSweeps(1))
	require.ErrorIs(t, err, matrix.ErrMatrixEigenFailed)
}

func TestEigenSym_DoesNotMutateInput(t *testing.T) {
	t.Parallel()

	m := randomSymmetric(t, 4, 11)
	before := m.Data()
	_, _, err := matrix.EigenSym(m)
	require.NoError(t, err)
	assert.Equal(t, before, m.Data())
}
