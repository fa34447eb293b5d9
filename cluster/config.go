// SPDX-License-Identifier: MIT

package cluster

import (
	"fmt"

	"github.com/katalvlaran/featkit/dataset"
)

// Init selects how initial means are chosen.
type Init int

const (
	// RandomPartition assigns every row to a uniformly random cluster.
	RandomPartition Init = iota
	// RandomPoint picks k distinct rows as initial means.
	RandomPoint
	// RandomSampling picks means with probability proportional to the
	// squared distance from the means chosen so far (k-means++).
	RandomSampling
)

// String returns the initialization name.
func (i Init) String() string {
	switch i {
	case RandomPartition:
		return "RandomPartition"
	case RandomPoint:
		return "RandomPoint"
	case RandomSampling:
		return "RandomSampling"
	default:
		return fmt.Sprintf("Init(%d)", int(i))
	}
}

// Defaults mirror the usual k-means configuration.
const (
	DefaultK       = 8
	DefaultMaxIter = 64
	DefaultInit    = RandomPoint
)

// Config holds the per-fit clustering parameters.
type Config struct {
	K       int
	MaxIter int
	Init    Init
	Seed    int64
}

// DefaultConfig returns {K:8, MaxIter:64, Init:RandomPoint, Seed:0}.
func DefaultConfig() Config {
	return Config{K: DefaultK, MaxIter: DefaultMaxIter, Init: DefaultInit}
}

// Validate checks cfg against the number of rows to cluster.
func (c Config) Validate(rows int) error {
	if c.K < 1 || c.K > rows {
		return fmt.Errorf("k=%d rows=%d: %w", c.K, rows, dataset.ErrInvalidParameter)
	}
	if c.MaxIter < 1 {
		return fmt.Errorf("maxIter=%d: %w", c.MaxIter, dataset.ErrInvalidParameter)
	}
	if c.Init < RandomPartition || c.Init > RandomSampling {
		return fmt.Errorf("init=%s: %w", c.Init, dataset.ErrInvalidParameter)
	}

	return nil
}

// Result is a fitted clustering: k means over dims features and one label
// per input row. Iterations counts completed reassignment rounds.
type Result struct {
	Means       []float64
	Assignments []int
	K           int
	Dims        int
	Iterations  int
	Converged   bool
}
