package weight_test

import (
	"math"
	"testing"

	"github.com/katalvlaran/lossrank/weight"
	"github.com/stretchr/testify/require"
)

// TestPossession_Contract pins the touchdown/field-goal counting rule.
func TestPossession_Contract(t *testing.T) {
	tr := weight.PossessionTransform()

	cases := []struct {
		margin float64
		want   float64
	}{
		{0, 0},
		{2, 0},  // below a field goal
		{3, 1},  // one field goal
		{8, 1},  // one touchdown
		{11, 2}, // touchdown + field goal
		{13, 2}, // remainder 5 → one field goal
		{16, 2}, // two touchdowns
		{22, 4}, // 2 TD + remainder 6 → 2 FG
		{45, 6}, // 5 TD + remainder 5 → 1 FG
	}

	for _, tc := range cases {
		got, err := tr.Weight(tc.margin)
		require.NoError(t, err)
		require.Equalf(t, tc.want, got, "possessions(%g)", tc.margin)
	}

	_, err := tr.Weight(-1)
	require.ErrorIs(t, err, weight.ErrInvalidInput)
}

// TestBinaryLinearCapped covers the three piecewise-linear kinds.
func TestBinaryLinearCapped(t *testing.T) {
	w, err := weight.BinaryTransform().Weight(35)
	require.NoError(t, err)
	require.Equal(t, 1.0, w) // margin ignored

	w, err = weight.LinearTransform().Weight(35)
	require.NoError(t, err)
	require.Equal(t, 35.0, w)

	capped := weight.CappedTransform(28)
	w, err = capped.Weight(35)
	require.NoError(t, err)
	require.Equal(t, 28.0, w) // ceiling applies
	w, err = capped.Weight(7)
	require.NoError(t, err)
	require.Equal(t, 7.0, w) // below the ceiling the margin passes through

	_, err = weight.CappedTransform(0).Weight(7)
	require.ErrorIs(t, err, weight.ErrInvalidParameter)
}

// TestLogistic_Shape checks the midpoint, monotonicity, the asymptote and clamping.
func TestLogistic_Shape(t *testing.T) {
	tr := weight.Default(weight.Logistic)
	require.NoError(t, tr.Validate())

	mid, err := tr.Weight(tr.X0)
	require.NoError(t, err)
	require.Equal(t, tr.Y0, mid) // exactly y0 at the midpoint

	prev := -1.0
	for m := 0.0; m <= 60; m += 1 {
		w, err := tr.Weight(m)
		require.NoError(t, err)
		require.GreaterOrEqual(t, w, 0.0)
		require.Greater(t, w, prev) // strictly increasing for k > 0 and L > y0
		prev = w
	}

	far, err := tr.Weight(500)
	require.NoError(t, err)
	require.InDelta(t, tr.L, far, 1e-12)

	// y0 well below L/2 would go negative for small margins; it is clamped.
	steep := weight.LogisticTransform(1, 10, 10, 1)
	w, err := steep.Weight(0)
	require.NoError(t, err)
	require.Equal(t, 0.0, w)
}

// TestLogistic_InvalidParameters covers the undefined-curve conditions.
func TestLogistic_InvalidParameters(t *testing.T) {
	bad := []weight.Transform{
		weight.LogisticTransform(0.2, 14, 1, 1),          // L == y0
		weight.LogisticTransform(0, 14, 2, 1),            // k == 0
		weight.LogisticTransform(-1, 14, 2, 1),           // k < 0
		weight.LogisticTransform(0.2, math.NaN(), 2, 1),  // x0 NaN
		weight.LogisticTransform(0.2, 14, math.Inf(1), 1), // L infinite
	}
	for _, tr := range bad {
		_, err := tr.Weight(7)
		require.ErrorIs(t, err, weight.ErrInvalidParameter)
	}
}

// TestWeight_RejectsBadMargins applies to every kind.
func TestWeight_RejectsBadMargins(t *testing.T) {
	for _, k := range weight.Kinds() {
		tr := weight.Default(k)
		for _, m := range []float64{-0.5, math.NaN(), math.Inf(1)} {
			_, err := tr.Weight(m)
			require.ErrorIsf(t, err, weight.ErrInvalidInput, "%s(%g)", k, m)
		}
	}
}

// TestFunc validates once and then maps margins.
func TestFunc(t *testing.T) {
	f, err := weight.Default(weight.Capped).Func()
	require.NoError(t, err)

	w, err := f(40)
	require.NoError(t, err)
	require.Equal(t, weight.DefaultCap, w)

	_, err = f(-3)
	require.ErrorIs(t, err, weight.ErrInvalidInput)

	_, err = weight.CappedTransform(math.NaN()).Func()
	require.ErrorIs(t, err, weight.ErrInvalidParameter)
}
