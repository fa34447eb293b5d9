// SPDX-License-Identifier: MIT

package pca

import (
	"math"

	"github.com/katalvlaran/featkit/logging"
	"github.com/katalvlaran/featkit/matrix"
)

// DefaultEpsilon is the eigenvalue at or below which whitening is refused.
const DefaultEpsilon = 1e-10

const panicEpsilonInvalid = "pca: WithEpsilon: eps must be finite, non-negative"

// Option configures a PCA.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	eps    float64
	solver matrix.EigenSolver
	base   *logging.Logger // caller's logger, handed to the nested scaler
	logger *logging.Logger
}

// WithEpsilon sets the whitening eigenvalue floor, which is also the nested
// scaler's degenerate-spread threshold. Panics on NaN, ±Inf or eps<0.
func WithEpsilon(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithEigenSolver selects the covariance eigen backend.
func WithEigenSolver(s matrix.EigenSolver) Option {
	matrix.WithEigenSolver(s) // validates, panics on unknown values

	return func(o *Options) { o.solver = s }
}

// WithLogger routes fit diagnostics, including the nested scaler's, to l.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func gatherOptions(opts ...Option) Options {
	o := Options{eps: DefaultEpsilon, solver: matrix.SolverAuto}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	o.base = logging.OrNoop(o.logger)
	o.logger = o.base.WithComponent("pca")

	return o
}
