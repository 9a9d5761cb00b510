package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"github.com/katalvlaran/lossrank/games"
	"github.com/katalvlaran/lossrank/matrix"
)

func newFetchCmd(a *app) *cobra.Command {
	var (
		year      int
		outPath   string
		teamsPath string
	)

	c := &cobra.Command{
		Use:   "fetch",
		Short: "Download a season and write the matrix and roster files",
		Long: `Download every game of a season from the games feed and write:

  --out    the signed adjacency matrix, one comma-separated row per team
  --teams  the roster, one team per line in matrix row order

Games with an unknown team or a missing score are skipped.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("year") {
				a.cfg.Season = year
			}

			client := games.NewClient(
				games.WithBaseURL(a.cfg.APIBaseURL),
				games.WithAPIKey(a.cfg.APIKey),
				games.WithRateLimit(rate.Limit(a.cfg.RateLimit), 1),
			)
			a.logger.Info("fetching season", "season", a.cfg.Season, "url", a.cfg.APIBaseURL)

			gs, err := client.FetchSeason(cmd.Context(), a.cfg.Season)
			if err != nil {
				return err
			}

			teams := games.Teams(gs)
			adj, st, err := games.BuildMatrix(teams, gs)
			if err != nil {
				return err
			}
			a.logger.Info("season built",
				"teams", len(teams),
				"games", st.Games,
				"used", st.Used,
				"skipped", st.Skipped(),
				"replaced", st.Replaced,
			)
			if st.Skipped() > 0 {
				a.logger.Debug("skipped games",
					"unknown_team", st.UnknownTeam,
					"missing_score", st.MissingScore,
					"self_play", st.SelfPlay,
				)
			}

			if err = writeFile(outPath, func(f *os.File) error { return matrix.WriteCSV(f, adj) }); err != nil {
				return err
			}
			if err = writeFile(teamsPath, func(f *os.File) error { return games.WriteTeams(f, teams) }); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "wrote %d teams to %s and %s\n", len(teams), outPath, teamsPath)
			return nil
		},
	}

	c.Flags().IntVar(&year, "year", 0, "season to fetch (default from config)")
	c.Flags().StringVar(&outPath, "out", defaultMatrixFile, "matrix output file")
	c.Flags().StringVar(&teamsPath, "teams", defaultTeamsFile, "roster output file")

	return c
}
