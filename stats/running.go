// SPDX-License-Identifier: MIT

package stats

import (
	"fmt"
	"math"
	"sync"

	"gonum.org/v1/gonum/stat"

	"github.com/katalvlaran/featkit/dataset"
)

const (
	opNewRunningStats = "stats.NewRunningStats"
	opRunningProcess  = "RunningStats.Process"
)

// RunningStats tracks the mean and sample standard deviation of the last
// HistorySize input vectors, per element. Non-finite inputs count as 0.
type RunningStats struct {
	historySize int
	inputSize   int

	mu    sync.Mutex
	hist  []float64 // inputSize runs of historySize slots
	next  int       // slot the next input overwrites
	count int       // filled slots, ≤ historySize
}

// NewRunningStats returns an empty tracker.
//
// Errors: ErrInvalidParameter (historySize < 2, inputSize < 1).
func NewRunningStats(historySize, inputSize int) (*RunningStats, error) {
	if historySize < 2 {
		return nil, fmt.Errorf("%s: historySize=%d, need >= 2: %w", opNewRunningStats, historySize, dataset.ErrInvalidParameter)
	}
	if inputSize < 1 {
		return nil, fmt.Errorf("%s: inputSize=%d: %w", opNewRunningStats, inputSize, dataset.ErrInvalidParameter)
	}

	return &RunningStats{
		historySize: historySize,
		inputSize:   inputSize,
		hist:        make([]float64, historySize*inputSize),
	}, nil
}

// HistorySize returns the window length.
func (r *RunningStats) HistorySize() int { return r.historySize }

// InputSize returns the vector length Process expects.
func (r *RunningStats) InputSize() int { return r.inputSize }

// Process records input and returns fresh mean and standard deviation
// slices over the current window. A single sample has deviation 0.
//
// Errors: ErrDimensionMismatch (len(input) != InputSize()).
func (r *RunningStats) Process(input []float64) (mean, stddev []float64, err error) {
	if len(input) != r.inputSize {
		return nil, nil, fmt.Errorf("%s: len=%d inputSize=%d: %w", opRunningProcess, len(input), r.inputSize, dataset.ErrDimensionMismatch)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	for d, v := range input {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			v = 0
		}
		r.hist[d*r.historySize+r.next] = v
	}
	r.next = (r.next + 1) % r.historySize
	r.count = min(r.count+1, r.historySize)

	mean = make([]float64, r.inputSize)
	stddev = make([]float64, r.inputSize)
	for d := range mean {
		window := r.hist[d*r.historySize : d*r.historySize+r.count]
		if r.count == 1 {
			mean[d] = window[0]
			continue
		}
		mean[d], stddev[d] = stat.MeanStdDev(window, nil)
	}

	return mean, stddev, nil
}

// Clear forgets all history.
func (r *RunningStats) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.hist {
		r.hist[i] = 0
	}
	r.next, r.count = 0, 0
}
