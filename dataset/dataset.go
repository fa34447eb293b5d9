// SPDX-License-Identifier: MIT

package dataset

import (
	"fmt"
	"math"
)

const (
	opNew      = "dataset.New"
	opFromRows = "dataset.FromRows"
	opRow      = "Dataset.Row"
	opAt       = "Dataset.At"
)

// Dataset is an immutable rows×cols row-major table.
type Dataset struct {
	rows, cols int
	data       []float64
}

// Validate checks a raw (data, rows, cols) triple.
//
// Order of checks:
//   - rows == 0            → ErrEmptyInput
//   - rows < 0 or cols < 1 → ErrInvalidParameter
//   - len(data)!=rows*cols → ErrDimensionMismatch
func Validate(data []float64, rows, cols int) error {
	if rows == 0 {
		return ErrEmptyInput
	}
	if rows < 0 || cols < 1 {
		return ErrInvalidParameter
	}
	if len(data) != rows*cols {
		return ErrDimensionMismatch
	}

	return nil
}

// ValidateFinite is Validate plus a scan that rejects NaN and ±Inf values
// with ErrInvalidParameter.
func ValidateFinite(data []float64, rows, cols int) error {
	if err := Validate(data, rows, cols); err != nil {
		return err
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return fmt.Errorf("value at (%d,%d) is %v: %w", i/cols, i%cols, v, ErrInvalidParameter)
		}
	}

	return nil
}

// New copies data into a Dataset after validating its shape.
func New(data []float64, rows, cols int) (*Dataset, error) {
	if err := Validate(data, rows, cols); err != nil {
		return nil, fmt.Errorf("%s: %w", opNew, err)
	}
	buf := make([]float64, len(data))
	copy(buf, data)

	return &Dataset{rows: rows, cols: cols, data: buf}, nil
}

// FromRows builds a Dataset from equally sized row slices.
func FromRows(rows [][]float64) (*Dataset, error) {
	if len(rows) == 0 {
		return nil, fmt.Errorf("%s: %w", opFromRows, ErrEmptyInput)
	}
	cols := len(rows[0])
	if cols == 0 {
		return nil, fmt.Errorf("%s: %w", opFromRows, ErrInvalidParameter)
	}
	buf := make([]float64, 0, len(rows)*cols)
	for i, r := range rows {
		if len(r) != cols {
			return nil, fmt.Errorf("%s: row %d has %d values, want %d: %w",
				opFromRows, i, len(r), cols, ErrDimensionMismatch)
		}
		buf = append(buf, r...)
	}

	return &Dataset{rows: len(rows), cols: cols, data: buf}, nil
}

// Rows returns the number of rows.
func (d *Dataset) Rows() int { return d.rows }

// Cols returns the number of columns.
func (d *Dataset) Cols() int { return d.cols }

// Shape returns (rows, cols).
func (d *Dataset) Shape() (rows, cols int) { return d.rows, d.cols }

// At returns element (i, j).
func (d *Dataset) At(i, j int) (float64, error) {
	if i < 0 || i >= d.rows || j < 0 || j >= d.cols {
		return 0, fmt.Errorf("%s(%d,%d): %w", opAt, i, j, ErrInvalidParameter)
	}

	return d.data[i*d.cols+j], nil
}

// Row returns a copy of row i.
func (d *Dataset) Row(i int) ([]float64, error) {
	if i < 0 || i >= d.rows {
		return nil, fmt.Errorf("%s(%d): %w", opRow, i, ErrInvalidParameter)
	}
	out := make([]float64, d.cols)
	copy(out, d.data[i*d.cols:(i+1)*d.cols])

	return out, nil
}

// Data returns a copy of the row-major buffer.
func (d *Dataset) Data() []float64 {
	out := make([]float64, len(d.data))
	copy(out, d.data)

	return out
}
