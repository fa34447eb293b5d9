// SPDX-License-Identifier: MIT

// Package grid redistributes a 2-D point set onto the cells of a regular
// lattice so that every point owns a distinct cell and the layout keeps the
// points' relative positions.
//
// What:
//   - Process(data, rows, cfg) returns, for every (x, y) row, the integer
//     column and row of its cell, as float64 pairs in the same layout.
//
// How:
//   - The lattice holds at least rows·OverSample cells. Extent, when set,
//     fixes the number of cells along Axis (0 = columns, 1 = rows) and the
//     other side grows to fit; otherwise the lattice is as square as
//     possible.
//   - Points are min-max scaled onto the lattice span per axis; a flat axis
//     maps to its centre.
//   - Points are assigned to cells by an exact minimum-cost assignment over
//     squared Euclidean distance, so the total displacement is minimal and
//     the result is deterministic.
//
// Complexity:
//   - Time O(rows²·cells), Space O(rows·cells) for the cost matrix.
package grid

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/katalvlaran/featkit/dataset"
	"github.com/katalvlaran/featkit/distance"
	"github.com/katalvlaran/featkit/logging"
)

const opProcess = "grid.Process"

// Axis indices accepted by Config.Axis.
const (
	AxisColumns = 0
	AxisRows    = 1
)

// Config shapes the target lattice.
type Config struct {
	OverSample int // cells per point, >= 1
	Extent     int // cells along Axis; 0 picks a square lattice
	Axis       int // AxisColumns or AxisRows
}

// DefaultConfig is one cell per point on a square lattice.
func DefaultConfig() Config {
	return Config{OverSample: 1, Axis: AxisColumns}
}

// Validate reports ErrInvalidParameter for OverSample < 1, Extent < 0 or an
// Axis other than 0 or 1.
func (c Config) Validate() error {
	if c.OverSample < 1 {
		return fmt.Errorf("over sample=%d: %w", c.OverSample, dataset.ErrInvalidParameter)
	}
	if c.Extent < 0 {
		return fmt.Errorf("extent=%d: %w", c.Extent, dataset.ErrInvalidParameter)
	}
	if c.Axis != AxisColumns && c.Axis != AxisRows {
		return fmt.Errorf("axis=%d: %w", c.Axis, dataset.ErrInvalidParameter)
	}

	return nil
}

// Shape returns the lattice width and height used for rows points.
// The caller must have validated c and rows > 0.
func (c Config) Shape(rows int) (width, height int) {
	cells := rows * c.OverSample
	if c.Extent == 0 {
		width = int(math.Ceil(math.Sqrt(float64(cells))))
		return width, ceilDiv(cells, width)
	}
	side := min(c.Extent, cells)
	if c.Axis == AxisRows {
		return ceilDiv(cells, side), side
	}

	return side, ceilDiv(cells, side)
}

// Option configures Process.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	logger *logging.Logger
}

// WithLogger routes diagnostics to l.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// Process maps every (x, y) row of data to the coordinates of its cell.
// The output has the same rows×2 layout; values are whole numbers in
// [0, width) and [0, height) where (width, height) = cfg.Shape(rows).
//
// Errors: ErrEmptyInput, ErrDimensionMismatch (len(data) != rows*2),
// ErrInvalidParameter (bad Config, NaN/Inf coordinates).
func Process(data []float64, rows int, cfg Config, opts ...Option) ([]float64, error) {
	var o Options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	logger := logging.OrNoop(o.logger).WithComponent("grid")

	out, err := process(data, rows, cfg)
	logger.LogFit(opProcess, rows, 2, err)

	return out, err
}

func process(data []float64, rows int, cfg Config) ([]float64, error) {
	if err := dataset.ValidateFinite(data, rows, 2); err != nil {
		return nil, fmt.Errorf("%s: %w", opProcess, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", opProcess, err)
	}

	width, height := cfg.Shape(rows)
	cells := width * height
	points := fitToLattice(data, rows, width, height)

	cost := make([]float64, rows*cells)
	cell := make([]float64, 2)
	var i, c int
	for i = 0; i < rows; i++ {
		for c = 0; c < cells; c++ {
			cell[0], cell[1] = float64(c%width), float64(c/width)
			cost[i*cells+c] = distance.SquaredL2(points[i*2:i*2+2], cell)
		}
	}

	owner := assign(cost, rows, cells)
	out := make([]float64, rows*2)
	for i = 0; i < rows; i++ {
		out[i*2] = float64(owner[i] % width)
		out[i*2+1] = float64(owner[i] / width)
	}

	return out, nil
}

// fitToLattice min-max scales each axis of data onto [0, side-1].
func fitToLattice(data []float64, rows, width, height int) []float64 {
	out := make([]float64, rows*2)
	col := make([]float64, rows)
	for axis, side := range [2]int{width, height} {
		for i := 0; i < rows; i++ {
			col[i] = data[i*2+axis]
		}
		lo, hi := floats.Min(col), floats.Max(col)
		span := float64(side - 1)
		for i := 0; i < rows; i++ {
			if hi > lo {
				out[i*2+axis] = (col[i] - lo) / (hi - lo) * span
			} else {
				out[i*2+axis] = span / 2
			}
		}
	}

	return out
}

func ceilDiv(a, b int) int { return (a + b - 1) / b }
