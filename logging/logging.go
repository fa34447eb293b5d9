// SPDX-License-Identifier: MIT

// Package logging wraps log/slog with featkit-specific helpers so every
// component logs with the same field names. Components default to
// NoopLogger and accept a custom one through their WithLogger option.
package logging

import (
	"log/slog"
	"os"
)

// Field names shared by all components.
const (
	KeyComponent  = "component"
	KeyRows       = "rows"
	KeyCols       = "cols"
	KeyK          = "k"
	KeyIteration  = "iteration"
	KeyChanged    = "changed"
	KeyConverged  = "converged"
	KeySolver     = "solver"
	KeyCluster    = "cluster"
	KeyDonor      = "donor"
	KeyRow        = "row"
	KeyError      = "error"
	KeyMatched    = "matched"
	KeyConditions = "conditions"
)

// Logger wraps slog.Logger with featkit context.
type Logger struct {
	*slog.Logger
}

// NewLogger creates a new Logger with the given handler.
// If handler is nil, uses a text handler to stderr at Info level.
func NewLogger(handler slog.Handler) *Logger {
	if handler == nil {
		handler = slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		})
	}

	return &Logger{Logger: slog.New(handler)}
}

// NewJSONLogger creates a Logger that writes JSON to stderr.
func NewJSONLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NewTextLogger creates a Logger that writes human-readable text to stderr.
func NewTextLogger(level slog.Level) *Logger {
	return &Logger{Logger: slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))}
}

// NoopLogger creates a Logger that discards all output.
func NoopLogger() *Logger {
	return &Logger{Logger: slog.New(slog.DiscardHandler)}
}

// OrNoop returns l, or a NoopLogger when l is nil.
func OrNoop(l *Logger) *Logger {
	if l == nil || l.Logger == nil {
		return NoopLogger()
	}

	return l
}

// WithComponent tags every record with the component name.
func (l *Logger) WithComponent(name string) *Logger {
	return &Logger{Logger: l.Logger.With(KeyComponent, name)}
}

// LogFit logs the outcome of a fit over a rows×cols input.
func (l *Logger) LogFit(op string, rows, cols int, err error) {
	if err != nil {
		l.Warn(op+" failed", KeyRows, rows, KeyCols, cols, KeyError, err)
		return
	}
	l.Debug(op+" completed", KeyRows, rows, KeyCols, cols)
}

// LogIteration logs one refinement round of an iterative algorithm.
func (l *Logger) LogIteration(iteration, changed int) {
	l.Debug("iteration", KeyIteration, iteration, KeyChanged, changed)
}

// LogConvergence logs how an iterative algorithm stopped.
func (l *Logger) LogConvergence(k, iterations int, converged bool) {
	l.Debug("iterations finished", KeyK, k, KeyIteration, iterations, KeyConverged, converged)
}

// LogReseed logs an empty cluster receiving a point from a donor cluster.
func (l *Logger) LogReseed(cluster, donor, row int) {
	l.Debug("empty cluster reseeded", KeyCluster, cluster, KeyDonor, donor, KeyRow, row)
}

// LogEigen logs the eigen backend chosen for an n×n problem.
func (l *Logger) LogEigen(solver string, n int) {
	l.Debug("eigendecomposition", KeySolver, solver, KeyRows, n)
}

// LogQuery logs a query evaluation.
func (l *Logger) LogQuery(rows, conditions, matched int) {
	l.Debug("query evaluated", KeyRows, rows, KeyConditions, conditions, KeyMatched, matched)
}
