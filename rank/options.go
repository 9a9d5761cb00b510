package rank

import (
	"math"
)

// Solver defaults.
const (
	// DefaultDamping is the probability of following a loss edge instead of teleporting.
	DefaultDamping = 0.85

	// DefaultTolerance is the L1 change between iterations at which the walk is
	// considered stationary.
	DefaultTolerance = 1e-5

	// DefaultMaxIterations bounds the power iteration.
	DefaultMaxIterations = 1000
)

// Panic messages for option constructors (programmer errors).
const (
	panicDampingInvalid   = "rank: WithDamping: p must be in [0, 1]"
	panicToleranceInvalid = "rank: WithTolerance: eps must be finite and > 0"
	panicMaxIterInvalid   = "rank: WithMaxIterations: n must be > 0"
)

// Options configures Solve.
//
// Damping       – probability p of following a loss edge; 1−p teleports. p ∈ [0, 1].
// Tolerance     – stop once Σ|r − r0| ≤ Tolerance. Must be > 0.
// MaxIterations – iteration cap; reaching it returns ErrNonConvergence. Must be > 0.
type Options struct {
	Damping       float64
	Tolerance     float64
	MaxIterations int
}

// Option represents a functional option for configuring Solve.
type Option func(*Options)

// DefaultOptions returns Options with the documented defaults:
//   - Damping:       0.85
//   - Tolerance:     1e-5
//   - MaxIterations: 1000
func DefaultOptions() Options {
	return Options{
		Damping:       DefaultDamping,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
	}
}

// WithDamping sets the damping factor p.
// p = 0 is pure teleportation and yields the uniform vector for any input.
// Panics if p is outside [0, 1] or NaN.
func WithDamping(p float64) Option {
	if math.IsNaN(p) || p < 0 || p > 1 {
		panic(panicDampingInvalid)
	}
	return func(o *Options) {
		o.Damping = p
	}
}

// WithTolerance sets the L1 convergence threshold.
// Panics if eps is not finite or not positive.
func WithTolerance(eps float64) Option {
	if math.IsNaN(eps) || math.IsInf(eps, 0) || eps <= 0 {
		panic(panicToleranceInvalid)
	}
	return func(o *Options) {
		o.Tolerance = eps
	}
}

// WithMaxIterations sets the iteration cap.
// Panics if n <= 0.
func WithMaxIterations(n int) Option {
	if n <= 0 {
		panic(panicMaxIterInvalid)
	}
	return func(o *Options) {
		o.MaxIterations = n
	}
}

// gatherOptions applies opts over DefaultOptions (last writer wins).
func gatherOptions(opts ...Option) Options {
	cfg := DefaultOptions()
	var opt Option
	for _, opt = range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	return cfg
}
