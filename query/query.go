// SPDX-License-Identifier: MIT

// Package query filters and projects the rows of a row-major dataset.
//
// Execute evaluates a predicate built from two condition lists:
//   - conditions with AndGroup=true form the AND list; a row satisfies it
//     when every one of them holds, wherever they sit in the slice;
//   - each condition with AndGroup=false is a standalone OR term;
//   - a row matches when it satisfies the AND list or any OR term.
//
// An empty AND list matches nothing on its own, so a slice of OR terms
// behaves as a plain disjunction. No conditions selects every row.
//
// Each condition is evaluated over its column into a roaring bitmap of row
// indices; the AND list folds with bitmap AND, the OR terms with bitmap OR,
// and matches are emitted in ascending row order.
package query

import (
	"fmt"
	"math"

	"github.com/RoaringBitmap/roaring/v2"

	"github.com/katalvlaran/featkit/dataset"
	"github.com/katalvlaran/featkit/logging"
)

const opExecute = "query.Execute"

// Op is a numeric comparison against Condition.Value.
type Op int

const (
	Eq Op = iota
	Ne
	Lt
	Le
	Gt
	Ge
)

var opNames = [...]string{Eq: "==", Ne: "!=", Lt: "<", Le: "<=", Gt: ">", Ge: ">="}

// String returns the operator symbol.
func (o Op) String() string {
	if o < Eq || o > Ge {
		return fmt.Sprintf("Op(%d)", int(o))
	}

	return opNames[o]
}

// Valid reports whether o is a known operator.
func (o Op) Valid() bool { return o >= Eq && o <= Ge }

// apply compares x against v. Comparisons with NaN are false except Ne.
func (o Op) apply(x, v float64) bool {
	switch o {
	case Eq:
		return x == v
	case Ne:
		return x != v
	case Lt:
		return x < v
	case Le:
		return x <= v
	case Gt:
		return x > v
	case Ge:
		return x >= v
	default:
		return false
	}
}

// Condition tests column Column of every row with Op against Value.
type Condition struct {
	Column   int
	Op       Op
	Value    float64
	AndGroup bool // AND list when true, standalone OR term when false
}

// String renders the condition as "col1 >= 10".
func (c Condition) String() string {
	return fmt.Sprintf("col%d %s %g", c.Column, c.Op, c.Value)
}

// Result holds the projected rows and the source row of each.
type Result struct {
	Data          []float64
	Rows          int
	Cols          int
	SourceIndices []int
}

// Option configures Execute.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	logger *logging.Logger
}

// WithLogger routes query diagnostics to l.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) { o.logger = l }
}

// Execute returns the rows matching conditions, projected onto selected
// (in the given order, duplicates allowed). limit caps the number of rows
// returned in ascending row order; 0 means no cap.
//
// Errors: ErrEmptyInput, ErrDimensionMismatch, ErrInvalidParameter (empty
// selection, column outside [0,cols), unknown Op, negative limit, more
// rows than a 32-bit row index can address).
func Execute(data []float64, rows, cols int, selected []int, conditions []Condition, limit int, opts ...Option) (Result, error) {
	var o Options
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	logger := logging.OrNoop(o.logger).WithComponent("query")

	if err := validate(data, rows, cols, selected, conditions, limit); err != nil {
		return Result{}, fmt.Errorf("%s: %w", opExecute, err)
	}

	match := evaluate(data, rows, cols, conditions)
	n := int(match.GetCardinality())
	if limit > 0 && n > limit {
		n = limit
	}
	logger.LogQuery(rows, len(conditions), n)

	width := len(selected)
	res := Result{
		Data:          make([]float64, 0, n*width),
		Rows:          n,
		Cols:          width,
		SourceIndices: make([]int, 0, n),
	}
	it := match.Iterator()
	for len(res.SourceIndices) < n && it.HasNext() {
		i := int(it.Next())
		res.SourceIndices = append(res.SourceIndices, i)
		for _, c := range selected {
			res.Data = append(res.Data, data[i*cols+c])
		}
	}

	return res, nil
}

func validate(data []float64, rows, cols int, selected []int, conditions []Condition, limit int) error {
	if err := dataset.Validate(data, rows, cols); err != nil {
		return err
	}
	if uint64(rows) > math.MaxUint32 {
		return fmt.Errorf("rows=%d exceeds 32-bit row index: %w", rows, dataset.ErrInvalidParameter)
	}
	if len(selected) == 0 {
		return fmt.Errorf("no selected columns: %w", dataset.ErrInvalidParameter)
	}
	for _, c := range selected {
		if c < 0 || c >= cols {
			return fmt.Errorf("selected column %d outside [0,%d): %w", c, cols, dataset.ErrInvalidParameter)
		}
	}
	for i, c := range conditions {
		if c.Column < 0 || c.Column >= cols {
			return fmt.Errorf("condition %d column %d outside [0,%d): %w", i, c.Column, cols, dataset.ErrInvalidParameter)
		}
		if !c.Op.Valid() {
			return fmt.Errorf("condition %d: %s: %w", i, c.Op, dataset.ErrInvalidParameter)
		}
	}
	if limit < 0 {
		return fmt.Errorf("limit=%d: %w", limit, dataset.ErrInvalidParameter)
	}

	return nil
}

// evaluate builds the bitmap of matching row indices.
func evaluate(data []float64, rows, cols int, conditions []Condition) *roaring.Bitmap {
	out := roaring.New()
	if len(conditions) == 0 {
		out.AddRange(0, uint64(rows))
		return out
	}

	var all *roaring.Bitmap
	for _, c := range conditions {
		bm := columnBitmap(data, rows, cols, c)
		if !c.AndGroup {
			out.Or(bm)
			continue
		}
		if all == nil {
			all = bm
			continue
		}
		all.And(bm)
	}
	if all != nil {
		out.Or(all)
	}

	return out
}

// columnBitmap marks the rows whose value in c.Column satisfies c.
func columnBitmap(data []float64, rows, cols int, c Condition) *roaring.Bitmap {
	bm := roaring.New()
	for i := 0; i < rows; i++ {
		if c.Op.apply(data[i*cols+c.Column], c.Value) {
			bm.Add(uint32(i))
		}
	}

	return bm
}
