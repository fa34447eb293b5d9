// SPDX-License-Identifier: MIT

package scaler

import (
	"fmt"
	"math"

	"github.com/katalvlaran/featkit/dataset"
)

// Kind enumerates the scaler variants.
type Kind int

const (
	// None is the identity scaler (used by PCA when no preprocessing is wanted).
	None Kind = iota
	// Normalize maps each column's observed [min,max] onto [Min,Max].
	Normalize
	// Standardize maps each column to zero mean and unit population variance.
	Standardize
	// RobustScale centers on the median and divides by an inter-percentile range.
	RobustScale
)

func (k Kind) String() string {
	switch k {
	case None:
		return "None"
	case Normalize:
		return "Normalize"
	case Standardize:
		return "Standardize"
	case RobustScale:
		return "RobustScale"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

// Default parameters of the variants.
const (
	DefaultMin            = 0.0
	DefaultMax            = 1.0
	DefaultLowPercentile  = 25.0
	DefaultHighPercentile = 75.0
)

// Config is the closed scaler variant. Only the fields of the selected Kind
// are read.
type Config struct {
	Kind Kind

	// Normalize target range, Min < Max.
	Min, Max float64

	// RobustScale percentiles, 0 <= LowPercentile < HighPercentile <= 100.
	LowPercentile, HighPercentile float64
}

// NoneConfig selects the identity scaler.
func NoneConfig() Config { return Config{Kind: None} }

// NormalizeConfig selects min-max normalization onto [min,max].
func NormalizeConfig(min, max float64) Config {
	return Config{Kind: Normalize, Min: min, Max: max}
}

// StandardizeConfig selects z-score standardization.
func StandardizeConfig() Config { return Config{Kind: Standardize} }

// RobustScaleConfig selects robust scaling between the given percentiles.
func RobustScaleConfig(low, high float64) Config {
	return Config{Kind: RobustScale, LowPercentile: low, HighPercentile: high}
}

// Validate checks the parameters of the selected variant.
func (c Config) Validate() error {
	switch c.Kind {
	case None, Standardize:
		return nil
	case Normalize:
		if !finite(c.Min) || !finite(c.Max) || !(c.Min < c.Max) {
			return fmt.Errorf("normalize range [%g,%g]: %w", c.Min, c.Max, dataset.ErrInvalidParameter)
		}
		return nil
	case RobustScale:
		lo, hi := c.LowPercentile, c.HighPercentile
		if !finite(lo) || !finite(hi) || lo < 0 || hi > 100 || !(lo < hi) {
			return fmt.Errorf("percentiles [%g,%g]: %w", lo, hi, dataset.ErrInvalidParameter)
		}
		return nil
	default:
		return fmt.Errorf("scaler kind %v: %w", c.Kind, dataset.ErrInvalidParameter)
	}
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }
