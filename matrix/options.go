// SPDX-License-Identifier: MIT

// Package matrix: functional configuration for numeric policy and the
// eigen solver. This file defines:
//   - Option / Options (functional options with internal state),
//   - documented defaults (constants),
//   - WithX constructors with strong validation (panic on nonsensical values),
//   - gatherOptions helper (internal) that enforces invariants.
//
// Design goals:
//   - Deterministic behavior: no global state, no implicit randomness.
//   - No dead switches: each flag impacts behavior and is covered by tests.
//   - Safe by construction: panic only on invalid parameters (programmer error).
package matrix

import "fmt"

// ---------- Defaults (single source of truth) ----------

const (
	// DefaultEpsilon is the symmetry tolerance used by EigenSym input validation.
	DefaultEpsilon = 1e-9

	// DefaultValidateNaNInf toggles strict finite-value validation in Set.
	DefaultValidateNaNInf = true

	// DefaultEigenTolerance is the relative off-diagonal threshold at which
	// Jacobi sweeps stop: ‖offdiag(A)‖_F ≤ tol·‖A‖_F.
	DefaultEigenTolerance = 1e-12

	// DefaultMaxSweeps caps the number of full cyclic Jacobi sweeps.
	DefaultMaxSweeps = 100

	// DefaultJacobiCutoff is the largest order solved with Jacobi under SolverAuto.
	DefaultJacobiCutoff = 32
)

// EigenSolver selects the backend used by EigenSym.
type EigenSolver int

const (
	// SolverAuto uses Jacobi for n ≤ DefaultJacobiCutoff and gonum otherwise.
	SolverAuto EigenSolver = iota
	// SolverJacobi forces cyclic Jacobi rotations.
	SolverJacobi
	// SolverGonum forces the gonum/mat LAPACK-backed symmetric solver.
	SolverGonum
)

// String returns the solver name.
func (s EigenSolver) String() string {
	switch s {
	case SolverAuto:
		return "auto"
	case SolverJacobi:
		return "jacobi"
	case SolverGonum:
		return "gonum"
	default:
		return fmt.Sprintf("EigenSolver(%d)", int(s))
	}
}

// ---------- Internal panic messages (no magic strings) ----------

const (
	panicEpsilonInvalid = "matrix: WithEpsilon: eps must be finite, non-negative"
	panicTolInvalid     = "matrix: WithEigenTolerance: tol must be finite, positive"
	panicSweepsInvalid  = "matrix: WithMaxSweeps: sweeps must be > 0"
	panicSolverInvalid  = "matrix: WithEigenSolver: unknown solver"
)

// ---------- Public option type (functional) ----------

// Option mutates internal options. Safe to apply repeatedly (idempotent).
type Option func(*Options)

// Options stores the effective configuration after applying Option setters.
// Fields are unexported; public entry points accept ...Option.
type Options struct {
	eps       float64     // symmetry tolerance, DefaultEpsilon
	eigenTol  float64     // Jacobi relative tolerance, DefaultEigenTolerance
	maxSweeps int         // Jacobi sweep cap, DefaultMaxSweeps
	solver    EigenSolver // DefaultSolver == SolverAuto
}

// ---------- Constructors (WithX) ----------

// WithEpsilon sets the symmetry tolerance applied before eigendecomposition.
// Panics when eps is NaN, ±Inf or negative.
func WithEpsilon(eps float64) Option {
	if isNonFinite(eps) || eps < 0 {
		panic(panicEpsilonInvalid)
	}

	return func(o *Options) { o.eps = eps }
}

// WithEigenTolerance sets the relative Jacobi convergence threshold.
// Panics when tol is not a positive finite number.
func WithEigenTolerance(tol float64) Option {
	if isNonFinite(tol) || tol <= 0 {
		panic(panicTolInvalid)
	}

	return func(o *Options) { o.eigenTol = tol }
}

// WithMaxSweeps caps the number of Jacobi sweeps. Panics when sweeps <= 0.
func WithMaxSweeps(sweeps int) Option {
	if sweeps <= 0 {
		panic(panicSweepsInvalid)
	}

	return func(o *Options) { o.maxSweeps = sweeps }
}

// WithEigenSolver selects the eigen backend. Panics on unknown values.
func WithEigenSolver(s EigenSolver) Option {
	if s < SolverAuto || s > SolverGonum {
		panic(panicSolverInvalid)
	}

	return func(o *Options) { o.solver = s }
}

// defaultOptions returns the documented defaults.
func defaultOptions() Options {
	return Options{
		eps:       DefaultEpsilon,
		eigenTol:  DefaultEigenTolerance,
		maxSweeps: DefaultMaxSweeps,
		solver:    SolverAuto,
	}
}

// gatherOptions applies setters over defaults; nil setters are skipped.
func gatherOptions(opts ...Option) Options {
	o := defaultOptions()
	for _, fn := range opts {
		if fn != nil {
			fn(&o)
		}
	}

	return o
}
