package rank_test

import (
	"fmt"

	"github.com/katalvlaran/lossrank/matrix"
	"github.com/katalvlaran/lossrank/rank"
	"github.com/katalvlaran/lossrank/weight"
)

// ExampleEngine_Rank ranks a four-team round robin without margins.
func ExampleEngine_Rank() {
	teams := []string{"A", "B", "C", "D"}
	adj, _ := matrix.NewDenseFromRows([][]float64{
		{0, 21, 3, -1},
		{-21, 0, 14, 7},
		{-3, -14, 0, 10},
		{1, -7, -10, 0},
	})

	e := rank.NewEngine()
	rk, err := e.Rank(teams, adj, rank.Config{
		Transform: weight.BinaryTransform(),
		Solver:    []rank.Option{rank.WithTolerance(1e-10)},
	})
	if err != nil {
		fmt.Println(err)
		return
	}
	for _, s := range rk.Scores {
		fmt.Printf("%s %.4f\n", s.Team, s.Value)
	}
	// Output:
	// A 0.3055
	// B 0.2334
	// C 0.1638
	// D 0.2972
}
