// SPDX-License-Identifier: MIT

package scaler

import (
	"math"

	"github.com/katalvlaran/featkit/logging"
)

// DefaultEpsilon is the spread at or below which a column counts as degenerate.
const DefaultEpsilon = 1e-12

const panicEpsilonInvalid = "scaler: WithEpsilon: eps must be finite, non-negative"

// Option configures a Scaler.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	eps    float64
	logger *logging.Logger
}

// WithEpsilon sets the degenerate-spread threshold. Panics on NaN, ±Inf or eps<0.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithLogger routes fit diagnostics to l.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func gatherOptions(opts ...Option) Options {
	o := Options{eps: DefaultEpsilon}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	o.logger = logging.OrNoop(o.logger).WithComponent("scaler")

	return o
}
