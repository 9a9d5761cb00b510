package weight

import (
	"fmt"
	"math"
)

// Weight maps a margin of defeat (≥ 0) to a non-negative edge weight.
//
// Preconditions and validation (in order):
//  1. margin must be finite and ≥ 0 (ErrInvalidInput).
//  2. t must pass Validate (ErrInvalidParameter / ErrUnknownKind).
//
// Complexity: O(1), no allocations on the success path.
func (t Transform) Weight(margin float64) (float64, error) {
	if !finite(margin) || margin < 0 {
		return 0, fmt.Errorf("%w: margin must be finite and >= 0, got %g", ErrInvalidInput, margin)
	}
	if err := t.Validate(); err != nil {
		return 0, err
	}

	return t.weight(margin), nil
}

// weight applies the curve without validation; callers validate t once and
// check each margin themselves.
func (t Transform) weight(margin float64) float64 {
	switch t.Kind {
	case Binary:
		return 1
	case Linear:
		return margin
	case Capped:
		return math.Min(margin, t.Cap)
	case Logistic:
		return logistic(margin, t.K, t.X0, t.L, t.Y0)
	case Possession:
		return possessions(margin)
	default:
		return 0 // unreachable after Validate
	}
}

// Func returns a validated margin→weight function for bulk application over a
// matrix. Each call still rejects invalid margins.
func (t Transform) Func() (func(margin float64) (float64, error), error) {
	if err := t.Validate(); err != nil {
		return nil, err
	}

	return func(margin float64) (float64, error) {
		if !finite(margin) || margin < 0 {
			return 0, fmt.Errorf("%w: margin must be finite and >= 0, got %g", ErrInvalidInput, margin)
		}
		return t.weight(margin), nil
	}, nil
}

// logistic is y0 + (l−y0)·(2σ(k(m−x0)) − 1) clamped at zero.
// 2σ(z)−1 == tanh(z/2), which keeps precision for large |z|.
func logistic(m, k, x0, l, y0 float64) float64 {
	w := y0 + (l-y0)*math.Tanh(k*(m-x0)/2)
	if w < 0 {
		return 0
	}
	return w
}

// possessions counts 8-point scores first, then 3-point scores in the remainder;
// a remainder below 3 adds nothing.
func possessions(m float64) float64 {
	tds := math.Floor(m / touchdownPoints)
	rest := m - tds*touchdownPoints

	return tds + math.Floor(rest/fieldGoalPoints)
}
