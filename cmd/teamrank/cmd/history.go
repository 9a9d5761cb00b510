package cmd

import (
	"fmt"
	"text/tabwriter"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lossrank/leaderboard"
	"github.com/katalvlaran/lossrank/store"
)

func newHistoryCmd(a *app) *cobra.Command {
	var limit int

	c := &cobra.Command{
		Use:   "history",
		Short: "List saved runs, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := store.Open(cmd.Context(), a.cfg.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			runs, err := s.ListRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSEASON\tCONFIG\tDAMPING\tITERATIONS\tCREATED")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%d\t%s\t%g\t%d\t%s\n",
					r.ID, r.Season, r.Label, r.Damping, r.Iterations, r.CreatedAt.Format("2006-01-02 15:04:05"))
			}
			return tw.Flush()
		},
	}
	c.Flags().IntVar(&limit, "limit", 20, "maximum runs to list (0 = all)")

	c.AddCommand(newHistoryShowCmd(a))
	return c
}

func newHistoryShowCmd(a *app) *cobra.Command {
	var (
		format string
		top    int
	)

	c := &cobra.Command{
		Use:   "show <id>",
		Short: "Print the leaderboard of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := uuid.Parse(args[0])
			if err != nil {
				return fmt.Errorf("run id %q: %w", args[0], err)
			}
			f, err := leaderboard.ParseFormat(format)
			if err != nil {
				return err
			}

			s, err := store.Open(cmd.Context(), a.cfg.DBPath)
			if err != nil {
				return err
			}
			defer s.Close()

			run, err := s.GetRun(cmd.Context(), id)
			if err != nil {
				return err
			}
			a.logger.Debug("run loaded", "id", run.ID, "config", run.Label, "season", run.Season)

			return leaderboard.Write(cmd.OutOrStdout(), leaderboard.Top(run.Entries, top), f)
		},
	}
	c.Flags().StringVar(&format, "format", string(leaderboard.FormatText), "output format: text or json")
	c.Flags().IntVar(&top, "top", 0, "print only the first N places (0 = all)")

	return c
}
