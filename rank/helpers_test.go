package rank_test

import (
	"testing"

	"github.com/katalvlaran/lossrank/matrix"
	"github.com/stretchr/testify/require"
)

// season builds a signed adjacency matrix from (winner, loser, margin) triples.
func season(t *testing.T, n int, games ...[3]int) *matrix.Dense {
	t.Helper()
	m, err := matrix.NewDense(n, n)
	require.NoError(t, err)
	for _, g := range games {
		require.NoError(t, m.Set(g[0], g[1], float64(g[2])))
		require.NoError(t, m.Set(g[1], g[0], -float64(g[2])))
	}
	return m
}

// fourTeams: A beat B by 21, A beat C by 3, B beat C by 14, C beat D by 10,
// D beat A by 1, B beat D by 7.
func fourTeams(t *testing.T) *matrix.Dense {
	return season(t, 4,
		[3]int{0, 1, 21},
		[3]int{0, 2, 3},
		[3]int{1, 2, 14},
		[3]int{2, 3, 10},
		[3]int{3, 0, 1},
		[3]int{1, 3, 7},
	)
}

func sum(v []float64) float64 {
	var s float64
	for _, x := range v {
		s += x
	}
	return s
}
