package rank

import (
	"fmt"
	"math"
)

// Result is the outcome of one power iteration.
//
//   - Vector:     stationary distribution, len N, non-negative, sums to 1.
//   - Iterations: number of update steps performed.
//   - Residual:   Σ|r − r0| of the final step (≤ Tolerance).
//   - Options:    the effective solver configuration.
type Result struct {
	Vector     []float64
	Iterations int
	Residual   float64
	Options    Options
}

// Solve runs the damped power iteration with teleportation and sink
// redistribution until the L1 change between steps drops to the tolerance.
//
// Preconditions and validation (in order):
//  1. tr must be non-nil with a square M matching len(Sinks) (ErrInvalidInput).
//  2. Options are applied over DefaultOptions; invalid values panic in their
//     constructors, so cfg is always well-formed here.
//
// Loop termination:
//
//   - Converged: Σ|r − r0| ≤ Tolerance. r is rescaled to sum to 1 and returned.
//   - Cap reached: ErrNonConvergence wrapped with the last residual.
//
// Complexity:
//
//   - Time:  O(N²) per iteration.
//   - Space: O(N²) for a row-slice copy of M plus O(N) for the two vectors.
func Solve(tr *Transition, opts ...Option) (Result, error) {
	// 1) Build Options.
	cfg := gatherOptions(opts...)

	// 2) Validate the transition.
	if tr == nil || tr.M == nil {
		return Result{}, fmt.Errorf("%w: nil transition", ErrInvalidInput)
	}
	n := tr.N()
	if n == 0 || tr.M.Rows() != n || tr.M.Cols() != n {
		return Result{}, fmt.Errorf("%w: transition is %dx%d with %d sink flags",
			ErrInvalidInput, tr.M.Rows(), tr.M.Cols(), n)
	}

	// 3) Initialise runner and iterate.
	r, err := newRunner(tr, cfg)
	if err != nil {
		return Result{}, err
	}

	return r.process()
}

// runner holds the mutable state for a single Solve execution.
type runner struct {
	options Options
	n       int
	m       [][]float64 // m[i][j] = M(i,j), copied once for tight inner loops
	sinks   []bool
	prev    []float64 // r0
	next    []float64 // r
}

// newRunner copies M into row slices and starts from the uniform vector.
func newRunner(tr *Transition, cfg Options) (*runner, error) {
	n := tr.N()
	rows := make([][]float64, n)
	for i := 0; i < n; i++ {
		rows[i] = make([]float64, n)
		for j := 0; j < n; j++ {
			v, err := tr.M.At(i, j)
			if err != nil {
				return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
			}
			rows[i][j] = v
		}
	}

	prev := make([]float64, n)
	u := 1 / float64(n)
	for i := range prev {
		prev[i] = u
	}

	return &runner{
		options: cfg,
		n:       n,
		m:       rows,
		sinks:   tr.Sinks,
		prev:    prev,
		next:    make([]float64, n),
	}, nil
}

// process is the core loop. Each step computes
//
//	r[i] = p·Σ_j M(i,j)·r0[j] + p·S/N + (1−p)·T/N
//
// where S is the mass currently sitting on sinks and T the total mass; the last
// two terms are the same for every i, so they are computed once per step.
func (r *runner) process() (Result, error) {
	p := r.options.Damping
	nf := float64(r.n)
	residual := math.Inf(1)

	var (
		it, i, j    int
		total, sink float64
		base, acc   float64
	)
	for it = 1; it <= r.options.MaxIterations; it++ {
		// Mass bookkeeping for the uniform terms.
		total, sink = 0, 0
		for j = 0; j < r.n; j++ {
			total += r.prev[j]
			if r.sinks[j] {
				sink += r.prev[j]
			}
		}
		base = p*sink/nf + (1-p)*total/nf

		// Edge-following term.
		residual = 0
		for i = 0; i < r.n; i++ {
			acc = 0
			for j = 0; j < r.n; j++ {
				acc += r.m[i][j] * r.prev[j]
			}
			r.next[i] = base + p*acc
			residual += math.Abs(r.next[i] - r.prev[i])
		}

		if residual <= r.options.Tolerance {
			return Result{
				Vector:     normalize(r.next),
				Iterations: it,
				Residual:   residual,
				Options:    r.options,
			}, nil
		}
		r.prev, r.next = r.next, r.prev // reuse buffers
	}

	return Result{}, fmt.Errorf("%w: %d iterations, residual %g > tolerance %g",
		ErrNonConvergence, r.options.MaxIterations, residual, r.options.Tolerance)
}

// normalize returns a copy of v scaled to sum to 1.
func normalize(v []float64) []float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / s
	}
	return out
}
