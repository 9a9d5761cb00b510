package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/katalvlaran/lossrank/leaderboard"
	"github.com/katalvlaran/lossrank/matrix"
	"github.com/katalvlaran/lossrank/rank"
	"github.com/katalvlaran/lossrank/store"
)

// seasonFlags are shared by rank and compare.
type seasonFlags struct {
	matrixPath string
	teamsPath  string
	format     string
	save       bool

	damping   float64
	tolerance float64
	maxIter   int
}

func (f *seasonFlags) register(c *cobra.Command) {
	c.Flags().StringVar(&f.matrixPath, "matrix", defaultMatrixFile, "signed adjacency matrix file")
	c.Flags().StringVar(&f.teamsPath, "teams", defaultTeamsFile, "roster file")
	c.Flags().StringVar(&f.format, "format", string(leaderboard.FormatText), "output format: text or json")
	c.Flags().BoolVar(&f.save, "save", false, "store the result in the run history")
	c.Flags().Float64Var(&f.damping, "damping", rank.DefaultDamping, "probability of following a loss edge")
	c.Flags().Float64Var(&f.tolerance, "tolerance", rank.DefaultTolerance, "L1 convergence threshold")
	c.Flags().IntVar(&f.maxIter, "max-iter", rank.DefaultMaxIterations, "iteration cap")
}

// apply copies explicitly set solver flags into the config.
func (f *seasonFlags) apply(cmd *cobra.Command, a *app) {
	if cmd.Flags().Changed("damping") {
		a.cfg.Damping = f.damping
	}
	if cmd.Flags().Changed("tolerance") {
		a.cfg.Tolerance = f.tolerance
	}
	if cmd.Flags().Changed("max-iter") {
		a.cfg.MaxIterations = f.maxIter
	}
}

// load validates the config and reads the season files.
func (f *seasonFlags) load(a *app) ([]string, *matrix.Dense, leaderboard.Format, error) {
	if errs := a.cfg.Validate(); len(errs) > 0 {
		return nil, nil, "", errors.Join(errs...)
	}
	format, err := leaderboard.ParseFormat(f.format)
	if err != nil {
		return nil, nil, "", err
	}

	teams, adj, err := loadSeason(f.matrixPath, f.teamsPath)
	if err != nil {
		return nil, nil, "", err
	}
	if err = matrix.ValidateSkewSymmetric(adj); err != nil {
		// Still rankable: each loss is read from the loser's row alone.
		a.logger.Warn("matrix is not skew-symmetric", "file", f.matrixPath, "error", err)
	}

	return teams, adj, format, nil
}

func newRankCmd(a *app) *cobra.Command {
	var (
		sf        seasonFlags
		transform string
		noMOV     bool
		top       int
	)

	c := &cobra.Command{
		Use:   "rank",
		Short: "Rank one season under one margin transform",
		Long: `Rank one season under one margin transform.

Transforms:
  binary      every loss counts 1
  linear      loss weight = margin
  capped      loss weight = min(margin, cap)
  logistic    S-shaped weight around a midpoint margin
  possession  loss weight = scores needed to cover the margin`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("transform") {
				a.cfg.Transform = transform
			}
			if noMOV {
				a.cfg.UseMOV = false
			}
			sf.apply(cmd, a)

			teams, adj, format, err := sf.load(a)
			if err != nil {
				return err
			}
			rc, err := a.cfg.RankConfig()
			if err != nil {
				return err
			}

			rk, err := a.engine().Rank(teams, adj, rc)
			if err != nil {
				return err
			}
			a.logger.Info("ranked",
				"config", rk.Label,
				"teams", len(teams),
				"iterations", rk.Iterations,
				"residual", rk.Residual,
				"sinks", len(rk.Sinks),
			)
			if len(rk.Sinks) > 0 {
				a.logger.Debug("teams without loss mass", "teams", rk.Sinks)
			}
			a.logMetrics()

			entries := leaderboard.Build(rk.Scores)
			if err = leaderboard.Write(cmd.OutOrStdout(), leaderboard.Top(entries, top), format); err != nil {
				return err
			}
			if sf.save {
				return a.saveRankings(cmd.Context(), rk)
			}
			return nil
		},
	}

	sf.register(c)
	c.Flags().StringVar(&transform, "transform", "", "margin transform: binary, linear, capped, logistic, possession (default from config)")
	c.Flags().BoolVar(&noMOV, "no-mov", false, "ignore margins: every loss counts 1")
	c.Flags().IntVar(&top, "top", 0, "print only the first N places (0 = all)")

	return c
}

// saveRankings stores each ranking as one run.
func (a *app) saveRankings(ctx context.Context, rks ...rank.Ranking) error {
	s, err := store.Open(ctx, a.cfg.DBPath)
	if err != nil {
		return err
	}
	defer s.Close()

	for _, rk := range rks {
		run := &store.Run{
			Season:     a.cfg.Season,
			Label:      rk.Label,
			Damping:    rk.Damping,
			Iterations: rk.Iterations,
			Entries:    leaderboard.Build(rk.Scores),
		}
		if err = s.SaveRun(ctx, run); err != nil {
			return fmt.Errorf("save %s: %w", rk.Label, err)
		}
		a.logger.Info("run saved", "id", run.ID, "config", run.Label, "db", a.cfg.DBPath)
	}

	return nil
}
