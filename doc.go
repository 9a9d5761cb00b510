// Package lossrank ranks teams by a PageRank-style random walk over their losses.
//
// Every loss in a season is an edge from the loser to the winner. A walker
// follows those edges (damped, with uniform teleportation and redistribution
// from unbeaten teams), and a team's share of the stationary distribution is
// its ranking score. Edge weights can ignore the margin of defeat or derive it
// through one of several transforms.
//
// Layout:
//
//	matrix/      dense float64 matrix, column helpers, validators, CSV codec
//	weight/      margin-of-defeat transforms (binary, linear, capped, logistic, possession)
//	rank/        transition matrix builder, power-iteration solver, engine, metrics
//	games/       games feed client and season → adjacency matrix conversion
//	leaderboard/ ordered entries and text/JSON rendering
//	store/       SQLite run history
//	config/      YAML + TEAMRANK_* environment configuration
//	cmd/teamrank the CLI (fetch, rank, compare, history)
//
// Quick start:
//
//	adj, _ := matrix.NewDenseFromRows([][]float64{
//		{0, 7},
//		{-7, 0},
//	})
//	rk, err := rank.NewEngine().Rank([]string{"Army", "Navy"}, adj, rank.Config{
//		UseMOV:    true,
//		Transform: weight.CappedTransform(28),
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//	for _, e := range leaderboard.Build(rk.Scores) {
//		fmt.Println(e.Place, e.Team, e.Score)
//	}
package lossrank
