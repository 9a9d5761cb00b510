package cmd

import (
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lossrank/leaderboard"
	"github.com/katalvlaran/lossrank/rank"
)

func newCompareCmd(a *app) *cobra.Command {
	var (
		sf          seasonFlags
		concurrency int
	)

	c := &cobra.Command{
		Use:   "compare",
		Short: "Rank one season under every standard transform",
		Long: `Rank one season under binary, linear, capped, logistic and possession
weighting with default parameters and print the results side by side,
ordered by the first (binary) column.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sf.apply(cmd, a)
			teams, adj, format, err := sf.load(a)
			if err != nil {
				return err
			}

			opts := []rank.EngineOption{rank.WithLogger(a.logger), rank.WithMetrics(a.metrics)}
			if concurrency > 0 {
				opts = append(opts, rank.WithConcurrency(concurrency))
			}
			cfgs := rank.StandardConfigs(a.cfg.SolverOptions()...)

			rks, err := rank.NewEngine(opts...).Compare(cmd.Context(), teams, adj, cfgs...)
			if err != nil {
				return err
			}
			for _, rk := range rks {
				a.logger.Info("ranked", "config", rk.Label, "iterations", rk.Iterations, "sinks", len(rk.Sinks))
			}
			a.logMetrics()

			if err = leaderboard.WriteComparison(cmd.OutOrStdout(), rks, format); err != nil {
				return err
			}
			if sf.save {
				return a.saveRankings(cmd.Context(), rks...)
			}
			return nil
		},
	}

	sf.register(c)
	c.Flags().IntVar(&concurrency, "concurrency", 0, "configs solved at once (0 = GOMAXPROCS)")

	return c
}
