package weight

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Sentinel errors returned by the weight transforms.
var (
	// ErrInvalidInput indicates a margin the transforms are not defined for:
	// negative, NaN or infinite.
	ErrInvalidInput = errors.New("weight: invalid input")

	// ErrInvalidParameter indicates Transform parameters that make the curve
	// undefined, e.g. a logistic scale L−Y0 collapsing to zero.
	ErrInvalidParameter = errors.New("weight: invalid parameter")

	// ErrUnknownKind indicates a Kind value or name outside the known set.
	ErrUnknownKind = errors.New("weight: unknown transform kind")
)

// Kind selects which curve a Transform applies.
type Kind int

const (
	// Binary maps every loss to weight 1.
	Binary Kind = iota

	// Linear maps a loss to its margin.
	Linear

	// Capped maps a loss to min(margin, Cap).
	Capped

	// Logistic maps a loss through a centred sigmoid (see package doc).
	Logistic

	// Possession maps a loss to the number of scoring possessions it represents.
	Possession
)

// kindNames is indexed by Kind; order MUST follow the iota block above.
var kindNames = [...]string{"binary", "linear", "capped", "logistic", "possession"}

// Default parameters.
const (
	// DefaultCap is four touchdowns: margins beyond it count as the same blowout.
	DefaultCap = 28.0

	// DefaultLogisticK is the sigmoid steepness per point of margin.
	DefaultLogisticK = 0.2

	// DefaultLogisticX0 is the margin (two scores) where the weight equals Y0.
	DefaultLogisticX0 = 14.0

	// DefaultLogisticL is the weight approached by very large margins.
	DefaultLogisticL = 2.0

	// DefaultLogisticY0 is the weight at the midpoint margin X0.
	DefaultLogisticY0 = 1.0
)

// Scoring increments used by the Possession transform.
const (
	touchdownPoints = 8.0 // touchdown with two-point conversion
	fieldGoalPoints = 3.0
)

// String returns the lower-case name used in configuration files and flags.
func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// ParseKind resolves a case-insensitive name ("binary", "linear", "capped",
// "logistic", "possession"). "none" is accepted as an alias of binary.
func ParseKind(s string) (Kind, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "none" {
		return Binary, nil
	}
	for i, n := range kindNames {
		if n == name {
			return Kind(i), nil
		}
	}

	return 0, fmt.Errorf("%w: %q", ErrUnknownKind, s)
}

// Kinds returns every known Kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(kindNames))
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// Transform is a margin→weight policy together with its parameters.
// Only the fields belonging to Kind are read; the rest are ignored.
//
//	Cap           – Capped ceiling (> 0).
//	K, X0, L, Y0  – Logistic steepness (> 0), midpoint, maximum and midpoint value (L ≠ Y0).
type Transform struct {
	Kind Kind
	Cap  float64
	K    float64
	X0   float64
	L    float64
	Y0   float64
}

// BinaryTransform ignores the margin.
func BinaryTransform() Transform { return Transform{Kind: Binary} }

// LinearTransform weighs a loss by its margin.
func LinearTransform() Transform { return Transform{Kind: Linear} }

// CappedTransform weighs a loss by min(margin, limit).
func CappedTransform(limit float64) Transform { return Transform{Kind: Capped, Cap: limit} }

// LogisticTransform builds the centred sigmoid with steepness k, midpoint x0,
// maximum l and midpoint value y0.
func LogisticTransform(k, x0, l, y0 float64) Transform {
	return Transform{Kind: Logistic, K: k, X0: x0, L: l, Y0: y0}
}

// PossessionTransform counts the touchdowns and field goals a margin represents.
func PossessionTransform() Transform { return Transform{Kind: Possession} }

// Default returns the transform of the given kind with documented default parameters.
// Unknown kinds are returned as-is and fail Validate.
func Default(k Kind) Transform {
	switch k {
	case Capped:
		return CappedTransform(DefaultCap)
	case Logistic:
		return LogisticTransform(DefaultLogisticK, DefaultLogisticX0, DefaultLogisticL, DefaultLogisticY0)
	default:
		return Transform{Kind: k}
	}
}

// Validate checks the parameters of t once, at configuration time.
//
// Errors:
//   - ErrUnknownKind for a Kind outside the known set.
//   - ErrInvalidParameter for a non-positive or non-finite Cap, a non-positive
//     or non-finite K, non-finite X0/L/Y0, or L == Y0.
func (t Transform) Validate() error {
	switch t.Kind {
	case Binary, Linear, Possession:
		return nil
	case Capped:
		if !finite(t.Cap) || t.Cap <= 0 {
			return fmt.Errorf("%w: cap must be finite and > 0, got %g", ErrInvalidParameter, t.Cap)
		}
		return nil
	case Logistic:
		if !finite(t.K) || t.K <= 0 {
			return fmt.Errorf("%w: logistic k must be finite and > 0, got %g", ErrInvalidParameter, t.K)
		}
		if !finite(t.X0) || !finite(t.L) || !finite(t.Y0) {
			return fmt.Errorf("%w: logistic x0, L and y0 must be finite", ErrInvalidParameter)
		}
		if t.L == t.Y0 {
			return fmt.Errorf("%w: logistic scale collapses to zero (L == y0 == %g)", ErrInvalidParameter, t.L)
		}
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrUnknownKind, int(t.Kind))
	}
}

// Label is a short human-readable name including parameters, e.g. "capped(28)".
func (t Transform) Label() string {
	switch t.Kind {
	case Capped:
		return fmt.Sprintf("%s(%g)", t.Kind, t.Cap)
	case Logistic:
		return fmt.Sprintf("%s(k=%g,x0=%g,L=%g,y0=%g)", t.Kind, t.K, t.X0, t.L, t.Y0)
	default:
		return t.Kind.String()
	}
}

func finite(x float64) bool {
	return !math.IsNaN(x) && !math.IsInf(x, 0)
}
