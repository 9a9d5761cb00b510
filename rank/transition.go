package rank

import (
	"fmt"
	"math"

	"github.com/katalvlaran/lossrank/matrix"
	"github.com/katalvlaran/lossrank/weight"
)

// Transition is the column-stochastic loss matrix of one computation.
//
//   - M.At(i, j) is the probability of moving from team j to team i, i.e. the
//     share of j's loss mass attributed to its loss against i.
//   - Mass[j] is the total (pre-normalisation) loss weight of team j.
//   - Sinks[j] is true when Mass[j] == 0; column j of M is then all zero.
type Transition struct {
	M     *matrix.Dense
	Mass  []float64
	Sinks []bool
}

// N returns the number of teams.
func (t *Transition) N() int { return len(t.Sinks) }

// SinkCount returns how many teams have no recorded loss mass.
func (t *Transition) SinkCount() int {
	n := 0
	for _, s := range t.Sinks {
		if s {
			n++
		}
	}
	return n
}

// BuildTransition derives the transition matrix from a signed adjacency matrix.
//
// adj(i, j) holds points(i) − points(j) for a contest between i and j (0 when
// they did not meet). The input is cloned on entry and never modified.
//
// Steps:
//  1. Validate: non-nil, square, finite entries; t.Validate() when useMOV.
//  2. Zero every positive entry; only losses carry edge mass.
//  3. Replace each negative adj(j, i) (j lost to i) by t.Weight(|adj(j, i)|)
//     when useMOV, else by 1, and store it at M(i, j).
//  4. Mass[j] = Σ_i M(i, j); Mass[j] == 0 marks team j as a sink.
//  5. Divide every non-sink column by its mass.
//
// Errors:
//   - ErrInvalidInput (wrapping the matrix sentinel) for nil, non-square or
//     non-finite matrices, for margins the transform rejects, and for a loss
//     mass too small to normalise.
//   - ErrInvalidParameter / weight.ErrUnknownKind for an invalid transform.
//
// Complexity: O(N²) time and space.
func BuildTransition(adj matrix.Matrix, useMOV bool, t weight.Transform) (*Transition, error) {
	// 1) Validate shape and values before touching anything.
	if err := matrix.ValidateSquare(adj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := matrix.ValidateFinite(adj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	edgeWeight := func(float64) (float64, error) { return 1, nil }
	if useMOV {
		f, err := t.Func()
		if err != nil {
			return nil, err
		}
		edgeWeight = f
	}

	// 2) Working copy; the caller's matrix stays untouched.
	work, err := cloneDense(adj)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// 3) Wins → 0, losses → weight(|margin|). Apply cannot return an error from
	//    the callback, so the first transform failure is captured here.
	var werr error
	err = work.Apply(func(i, j int, v float64) float64 {
		if v >= 0 || werr != nil {
			return 0
		}
		w, e := edgeWeight(math.Abs(v))
		if e != nil {
			werr = fmt.Errorf("loss (%d,%d): %w", i, j, e)
			return 0
		}
		return w
	})
	if werr != nil {
		return nil, werr
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// The loser is the row of work; the transition matrix is indexed
	// (destination, source), so transpose: M(i, j) = work(j, i).
	n := work.Rows()
	loss, err := matrix.NewDense(n, n)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	work.Do(func(j, i int, v float64) bool {
		if v != 0 {
			_ = loss.Set(i, j, v) // in range by construction, v finite
		}
		return true
	})

	// 4) Column masses and sinks.
	mass, err := matrix.ColumnSums(loss)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	sinks := make([]bool, n)
	scale := make([]float64, n)
	for j, m := range mass {
		if m == 0 {
			sinks[j] = true // scale stays 0: the column is already all-zero
			continue
		}
		scale[j] = 1 / m
	}

	// 5) Normalise.
	// A subnormal mass overflows 1/mass; ScaleColumns reports it as ErrNaNInf.
	m, err := matrix.ScaleColumns(loss, scale)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	return &Transition{M: m, Mass: mass, Sinks: sinks}, nil
}

// cloneDense returns an independent *matrix.Dense copy of any Matrix.
func cloneDense(src matrix.Matrix) (*matrix.Dense, error) {
	if d, ok := src.(*matrix.Dense); ok {
		return d.Clone().(*matrix.Dense), nil
	}

	r, c := src.Rows(), src.Cols()
	out, err := matrix.NewDense(r, c)
	if err != nil {
		return nil, err
	}
	for i := 0; i < r; i++ {
		for j := 0; j < c; j++ {
			v, err := src.At(i, j)
			if err != nil {
				return nil, err
			}
			if err = out.Set(i, j, v); err != nil {
				return nil, err
			}
		}
	}

	return out, nil
}
