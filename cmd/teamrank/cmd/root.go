// Package cmd holds the teamrank CLI commands.
package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os/signal"
	"strings"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"

	"github.com/katalvlaran/lossrank/config"
	"github.com/katalvlaran/lossrank/rank"
)

// app is the state shared by every command of one invocation.
type app struct {
	// common flags
	cfgFile string
	verbose bool
	dbPath  string

	cfg      *config.Config
	logger   *slog.Logger
	registry *prometheus.Registry
	metrics  *rank.Metrics
}

// newRootCmd builds the command tree. Each call returns an independent tree.
func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "teamrank",
		Short: "Rank teams by a PageRank walk over their losses",
		Long: `teamrank ranks teams from a season of results.

Every loss is an edge from the loser to the winner, optionally weighted by the
margin of defeat. The ranking is the stationary distribution of a damped random
walk over those edges.

Commands:
    fetch      download a season and write the matrix and roster files
    rank       rank one season under one margin transform
    compare    rank one season under every standard transform
    history    list or show saved runs
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.setup(cmd.ErrOrStderr())
		},
	}

	root.PersistentFlags().StringVar(&a.cfgFile, "config", "", "YAML config file (TEAMRANK_* env vars take precedence)")
	root.PersistentFlags().BoolVarP(&a.verbose, "verbose", "v", false, "debug logging")
	root.PersistentFlags().StringVar(&a.dbPath, "db", "", "run history database (overrides db_path)")

	root.AddCommand(
		newFetchCmd(a),
		newRankCmd(a),
		newCompareCmd(a),
		newHistoryCmd(a),
	)

	return root
}

// Execute runs the CLI until completion or SIGINT/SIGTERM.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	return newRootCmd().ExecuteContext(ctx)
}

// setup loads configuration and builds the logger and metrics registry.
func (a *app) setup(logOut io.Writer) error {
	cfg, errs := config.Load(a.cfgFile)
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	if a.dbPath != "" {
		cfg.DBPath = a.dbPath
	}
	if a.verbose {
		cfg.LogLevel = "debug"
	}
	a.cfg = cfg

	logger, err := newLogger(logOut, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}
	a.logger = logger
	a.logger.Debug("configuration loaded", "config", a.cfg.LogSummary())

	a.registry = prometheus.NewRegistry()
	a.metrics = rank.NewMetrics()
	return a.metrics.Register(a.registry)
}

// newLogger returns a text or JSON slog.Logger at the given level.
func newLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := config.ParseLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{Level: lvl}

	var h slog.Handler
	switch strings.ToLower(format) {
	case "json":
		h = slog.NewJSONHandler(w, opts)
	default:
		h = slog.NewTextHandler(w, opts)
	}

	return slog.New(h), nil
}

// engine returns a ranking engine wired to the app's logger and metrics.
func (a *app) engine() *rank.Engine {
	return rank.NewEngine(
		rank.WithLogger(a.logger),
		rank.WithMetrics(a.metrics),
	)
}

// logMetrics reports how many series each collector produced, at debug level.
func (a *app) logMetrics() {
	families, err := a.registry.Gather()
	if err != nil {
		a.logger.Warn("gather metrics", "error", err)
		return
	}
	for _, f := range families {
		a.logger.Debug("metric", "name", f.GetName(), "series", len(f.GetMetric()))
	}
}
