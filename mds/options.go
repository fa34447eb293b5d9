// SPDX-License-Identifier: MIT

package mds

import (
	"github.com/katalvlaran/featkit/logging"
	"github.com/katalvlaran/featkit/matrix"
)

// DefaultWorkers builds the distance matrix on the calling goroutine.
const DefaultWorkers = 1

const panicWorkersInvalid = "mds: WithWorkers: n must be >= 1"

// Option configures Project.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	workers int
	solver  matrix.EigenSolver
	logger  *logging.Logger
}

// WithWorkers computes distance-matrix rows on n goroutines. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithEigenSolver selects the Gram-matrix eigen backend.
func WithEigenSolver(s matrix.EigenSolver) Option {
	matrix.WithEigenSolver(s) // validates, panics on unknown values

	return func(o *Options) { o.solver = s }
}

// WithLogger routes diagnostics to l.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func gatherOptions(opts ...Option) Options {
	o := Options{workers: DefaultWorkers, solver: matrix.SolverAuto}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	o.logger = logging.OrNoop(o.logger).WithComponent("mds")

	return o
}
