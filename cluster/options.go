// SPDX-License-Identifier: MIT

package cluster

import "github.com/katalvlaran/featkit/logging"

// DefaultWorkers keeps the assignment step on the calling goroutine.
const DefaultWorkers = 1

const panicWorkersInvalid = "cluster: WithWorkers: n must be >= 1"

// Option configures a KMeans or SKMeans.
type Option func(*Options)

// Options holds the resolved configuration.
type Options struct {
	workers int
	logger  *logging.Logger
}

// WithWorkers splits the assignment step across n goroutines. Panics if n < 1.
func WithWorkers(n int) Option {
	if n < 1 {
		panic(panicWorkersInvalid)
	}

	return func(o *Options) { o.workers = n }
}

// WithLogger routes iteration diagnostics to l.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) { o.logger = l }
}

func gatherOptions(component string, opts ...Option) Options {
	o := Options{workers: DefaultWorkers}
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}
	o.logger = logging.OrNoop(o.logger).WithComponent(component)

	return o
}
