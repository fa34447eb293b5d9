// SPDX-License-Identifier: MIT

// Package matrix - Dense storage (row-major) & safe accessors.
//
// Purpose:
//   - Provide a cache-friendly row-major buffer with the explicit index formula i*cols + j.
//   - Guarantee safety at the public surface: At/Set return errors instead of panicking.
//   - Bridge caller-owned flat feature buffers into matrices (NewDenseFrom copies).
//   - Enforce a numeric policy (optional rejection of NaN/Inf) from a single source of truth.
//
// Complexity quicksheet:
//   - NewDense: O(r*c) zero-init; At/Set: O(1); Clone/Data/Row: O(r*c) or O(c).

package matrix

import (
	"fmt"
	"math"
	"strings"
)

// ---------- error context tags ----------

const (
	ctxAt   = "At"
	ctxSet  = "Set"
	ctxRow  = "Row"
	ctxFrom = "NewDenseFrom"
)

// ---------- Formatting literals ----------
const (
	_fmtRowOpen  = "["
	_fmtRowClose = "]\n"
	_fmtSep      = ", "
)

// denseErrorf wraps an error with a uniform Dense context and callsite indices.
func denseErrorf(method string, row, col int, err error) error {
	return fmt.Errorf("Dense.%s(%d,%d): %w", method, row, col, err)
}

// Dense is a concrete row-major matrix.
//   - r,c hold dimensions (rows, cols).
//   - data is a flat buffer of length r*c in row-major order (offset = i*c + j).
//   - validateNaNInf enables NaN/Inf rejection in Set.
type Dense struct {
	r, c           int       // row and column counts (>0 for public constructors)
	data           []float64 // contiguous row-major storage (len == r*c)
	validateNaNInf bool      // numeric guard: reject NaN/Inf in Set when true
}

// Compile-time assertions for interface & fmt.Stringer conformance.
var (
	_ Matrix       = (*Dense)(nil)
	_ fmt.Stringer = (*Dense)(nil)
)

// NewDense creates an r×c zero matrix using row-major storage.
//
// Errors:
//   - ErrBadShape when rows<=0 or cols<=0.
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDense(rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, ErrBadShape
	}

	return &Dense{
		r:              rows,
		c:              cols,
		data:           make([]float64, rows*cols),
		validateNaNInf: DefaultValidateNaNInf,
	}, nil
}

// NewDenseFrom copies a caller-owned row-major buffer into a new Dense.
// MAIN DESCRIPTION:
//   - Entry point used by every featkit component to lift (data, rows, cols)
//     triples into matrix kernels without aliasing caller memory.
//
// Implementation:
//   - Stage 1: validate rows>0, cols>0 and len(data)==rows*cols.
//   - Stage 2: copy the buffer (no aliasing).
//
// Errors:
//   - ErrBadShape (non-positive dims), ErrDimensionMismatch (length).
//
// Complexity:
//   - Time O(r*c), Space O(r*c).
func NewDenseFrom(data []float64, rows, cols int) (*Dense, error) {
	if rows <= 0 || cols <= 0 {
		return nil, fmt.Errorf("%s: %w", ctxFrom, ErrBadShape)
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("%s: len=%d want %d: %w", ctxFrom, len(data), rows*cols, ErrDimensionMismatch)
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dense{r: rows, c: cols, data: buf, validateNaNInf: DefaultValidateNaNInf}, nil
}

// wrapDense adopts buf without copying. Internal use only: the caller must
// hand over ownership.
func wrapDense(buf []float64, rows, cols int) *Dense {
	return &Dense{r: rows, c: cols, data: buf, validateNaNInf: DefaultValidateNaNInf}
}

// Rows returns the number of rows.
func (m *Dense) Rows() int { return m.r }

// Cols returns the number of columns.
func (m *Dense) Cols() int { return m.c }

// Shape returns (rows, cols).
func (m *Dense) Shape() (rows, cols int) { return m.r, m.c }

// indexOf validates (row, col) and returns the flat offset.
func (m *Dense) indexOf(row, col int) (int, error) {
	if row < 0 || row >= m.r || col < 0 || col >= m.c {
		return 0, ErrOutOfRange
	}

	return row*m.c + col, nil
}

// At returns the element at (row, col).
//
// Errors:
//   - ErrOutOfRange wrapped with "Dense.At(row,col)".
func (m *Dense) At(row, col int) (float64, error) {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return 0, denseErrorf(ctxAt, row, col, err)
	}

	return m.data[idx], nil
}

// Set assigns v at (row, col).
//
// Errors:
//   - ErrOutOfRange on bad indices.
//   - ErrNaNInf when the numeric policy rejects v.
func (m *Dense) Set(row, col int, v float64) error {
	idx, err := m.indexOf(row, col)
	if err != nil {
		return denseErrorf(ctxSet, row, col, err)
	}
	if m.validateNaNInf && isNonFinite(v) {
		return denseErrorf(ctxSet, row, col, ErrNaNInf)
	}
	m.data[idx] = v

	return nil
}

// Clone returns a deep copy; the dynamic type is *Dense.
func (m *Dense) Clone() Matrix {
	cp := make([]float64, len(m.data))
	copy(cp, m.data)

	return &Dense{r: m.r, c: m.c, data: cp, validateNaNInf: m.validateNaNInf}
}

// Data returns a copy of the row-major buffer.
func (m *Dense) Data() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)

	return out
}

// Row returns a copy of row i.
func (m *Dense) Row(i int) ([]float64, error) {
	if i < 0 || i >= m.r {
		return nil, denseErrorf(ctxRow, i, 0, ErrOutOfRange)
	}
	out := make([]float64, m.c)
	copy(out, m.data[i*m.c:(i+1)*m.c])

	return out, nil
}

// String renders rows as "[a, b, c]" lines for diagnostics.
func (m *Dense) String() string {
	var b strings.Builder
	var i, j, base int
	for i = 0; i < m.r; i++ {
		b.WriteString(_fmtRowOpen)
		base = i * m.c
		for j = 0; j < m.c; j++ {
			b.WriteString(fmt.Sprintf("%g", m.data[base+j]))
			if j+1 < m.c {
				b.WriteString(_fmtSep)
			}
		}
		b.WriteString(_fmtRowClose)
	}

	return b.String()
}

// isNonFinite reports NaN or ±Inf.
func isNonFinite(v float64) bool {
	return math.IsNaN(v) || math.IsInf(v, 0)
}

// denseOf returns the flat buffer and shape of m, copying through At when m
// is not a *Dense. The returned slice must be treated as read-only.
func denseOf(m Matrix) ([]float64, int, int, error) {
	if d, ok := m.(*Dense); ok {
		return d.data, d.r, d.c, nil
	}
	r, c := m.Rows(), m.Cols()
	buf := make([]float64, r*c)
	var (
		i, j int
		v    float64
		err  error
	)
	for i = 0; i < r; i++ {
		for j = 0; j < c; j++ {
			if v, err = m.At(i, j); err != nil {
				return nil, 0, 0, fmt.Errorf("At(%d,%d): %w", i, j, err)
			}
			buf[i*c+j] = v
		}
	}

	return buf, r, c, nil
}
