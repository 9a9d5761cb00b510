package rank_test

import (
	"testing"

	"github.com/katalvlaran/lossrank/rank"
	"github.com/katalvlaran/lossrank/weight"
	"github.com/stretchr/testify/require"
)

// TestSolve_ProbabilityVector checks length, non-negativity and unit sum for every kind.
func TestSolve_ProbabilityVector(t *testing.T) {
	adj := fourTeams(t)
	for _, k := range weight.Kinds() {
		tr, err := rank.BuildTransition(adj, true, weight.Default(k))
		require.NoError(t, err)

		res, err := rank.Solve(tr)
		require.NoError(t, err)
		require.Len(t, res.Vector, 4)
		for _, v := range res.Vector {
			require.GreaterOrEqual(t, v, 0.0)
		}
		require.InDelta(t, 1.0, sum(res.Vector), 1e-9)
		require.LessOrEqual(t, res.Residual, rank.DefaultTolerance)
		require.Equal(t, rank.DefaultOptions(), res.Options)
	}
}

// TestSolve_Cycle: A beats B by 10, B beats C by 3, C beats A by 7.
// Each team has exactly one loss, so every column holds a single 1 and the
// margins cancel out in normalisation: the walk is a pure 3-cycle and the
// stationary distribution is uniform from the first step.
func TestSolve_Cycle(t *testing.T) {
	adj := season(t, 3, [3]int{0, 1, 10}, [3]int{1, 2, 3}, [3]int{2, 0, 7})

	tr, err := rank.BuildTransition(adj, true, weight.LinearTransform())
	require.NoError(t, err)

	res, err := rank.Solve(tr)
	require.NoError(t, err)
	require.Equal(t, 1, res.Iterations)
	for _, v := range res.Vector {
		require.InDelta(t, 1.0/3, v, 1e-15)
	}
}

// TestSolve_TwoTeamSink: A beat B, so A is a sink and B never receives an edge.
// B's score must be exactly teleportation plus its share of A's sink mass.
func TestSolve_TwoTeamSink(t *testing.T) {
	const p = rank.DefaultDamping
	adj := season(t, 2, [3]int{0, 1, 7})

	tr, err := rank.BuildTransition(adj, false, weight.Transform{})
	require.NoError(t, err)
	require.Equal(t, []bool{true, false}, tr.Sinks)

	res, err := rank.Solve(tr, rank.WithTolerance(1e-13))
	require.NoError(t, err)

	a, b := res.Vector[0], res.Vector[1]
	require.InDelta(t, (1-p)/2+p*a/2, b, 1e-9)
	require.InDelta(t, 1/(2+p), b, 1e-9) // closed form of the same fixed point
	require.InDelta(t, 1-1/(2+p), a, 1e-9)
}

// TestSolve_RegressionFixture locks the four-team season under every transform.
func TestSolve_RegressionFixture(t *testing.T) {
	want := map[weight.Kind][]float64{
		weight.Binary:     {0.305540907684, 0.233435167884, 0.163814152901, 0.297209771531},
		weight.Linear:     {0.284407665505, 0.259222560976, 0.177123257840, 0.279246515679},
		weight.Capped:     {0.284407665505, 0.259222560976, 0.177123257840, 0.279246515679},
		weight.Logistic:   {0.282581276739, 0.258127717728, 0.181596920306, 0.277694085227},
		weight.Possession: {0.414134045566, 0.299299664409, 0.161062805343, 0.125503484683},
	}
	adj := fourTeams(t)

	for _, k := range weight.Kinds() {
		tr, err := rank.BuildTransition(adj, k != weight.Binary, weight.Default(k))
		require.NoError(t, err)

		res, err := rank.Solve(tr, rank.WithTolerance(1e-12))
		require.NoError(t, err)
		for i, v := range res.Vector {
			require.InDeltaf(t, want[k][i], v, 1e-9, "%s team %d", k, i)
		}
	}
}

// TestSolve_ZeroDampingIsUniform: pure teleportation ignores the input.
func TestSolve_ZeroDampingIsUniform(t *testing.T) {
	adj := fourTeams(t)
	for _, k := range weight.Kinds() {
		tr, err := rank.BuildTransition(adj, true, weight.Default(k))
		require.NoError(t, err)

		res, err := rank.Solve(tr, rank.WithDamping(0))
		require.NoError(t, err)
		require.Equal(t, 1, res.Iterations)
		for _, v := range res.Vector {
			require.Equal(t, res.Vector[0], v) // bitwise tie
			require.InDelta(t, 0.25, v, 1e-15)
		}
	}
}

// TestSolve_DampingSensitivity: higher p pulls the ranking further from uniform.
func TestSolve_DampingSensitivity(t *testing.T) {
	tr, err := rank.BuildTransition(fourTeams(t), true, weight.LinearTransform())
	require.NoError(t, err)

	spread := func(p float64) float64 {
		res, err := rank.Solve(tr, rank.WithDamping(p), rank.WithTolerance(1e-12))
		require.NoError(t, err)
		var d float64
		for _, v := range res.Vector {
			if v > 0.25 {
				d += v - 0.25
			} else {
				d += 0.25 - v
			}
		}
		return d
	}
	require.Less(t, spread(0.5), spread(0.85))
	require.Less(t, spread(0.85), spread(0.95))
}

// TestSolve_NonConvergence with a cap too small to reach the tolerance.
func TestSolve_NonConvergence(t *testing.T) {
	tr, err := rank.BuildTransition(fourTeams(t), true, weight.LinearTransform())
	require.NoError(t, err)

	_, err = rank.Solve(tr, rank.WithMaxIterations(3), rank.WithTolerance(1e-15))
	require.ErrorIs(t, err, rank.ErrNonConvergence)
}

// TestSolve_InvalidTransition covers nil and inconsistent inputs.
func TestSolve_InvalidTransition(t *testing.T) {
	_, err := rank.Solve(nil)
	require.ErrorIs(t, err, rank.ErrInvalidInput)

	tr, err := rank.BuildTransition(fourTeams(t), false, weight.Transform{})
	require.NoError(t, err)
	tr.Sinks = tr.Sinks[:3]
	_, err = rank.Solve(tr)
	require.ErrorIs(t, err, rank.ErrInvalidInput)
}

// TestSolverOptionsPanic documents that nonsensical options are programmer errors.
func TestSolverOptionsPanic(t *testing.T) {
	require.Panics(t, func() { rank.WithDamping(-0.1) })
	require.Panics(t, func() { rank.WithDamping(1.1) })
	require.Panics(t, func() { rank.WithTolerance(0) })
	require.Panics(t, func() { rank.WithMaxIterations(0) })
	require.NotPanics(t, func() { rank.WithDamping(1) })
}
