package rank

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/katalvlaran/lossrank/matrix"
	"github.com/katalvlaran/lossrank/weight"
)

// Config is one ranking configuration: the weighting policy plus solver options.
//
// Name         – optional label; Label() derives one from the policy when empty.
// UseMOV       – when false every loss weighs 1 and Transform is ignored.
// Transform    – margin→weight policy applied when UseMOV is true.
// Solver       – options passed to Solve (damping, tolerance, iteration cap).
type Config struct {
	Name      string
	UseMOV    bool
	Transform weight.Transform
	Solver    []Option
}

// Label returns Name, or a name derived from the weighting policy.
func (c Config) Label() string {
	if c.Name != "" {
		return c.Name
	}
	if !c.UseMOV {
		return weight.Binary.String()
	}
	return c.Transform.Label()
}

// kindLabel is the bounded-cardinality label used for metrics.
func (c Config) kindLabel() string {
	if !c.UseMOV {
		return weight.Binary.String()
	}
	return c.Transform.Kind.String()
}

// StandardConfigs returns one Config per transform kind with default
// parameters, in declaration order: binary, linear, capped, logistic,
// possession. opts are applied to every config's solver.
func StandardConfigs(opts ...Option) []Config {
	kinds := weight.Kinds()
	out := make([]Config, 0, len(kinds))
	for _, k := range kinds {
		out = append(out, Config{
			UseMOV:    k != weight.Binary,
			Transform: weight.Default(k),
			Solver:    opts,
		})
	}
	return out
}

// Score pairs a team with its share of the stationary distribution.
type Score struct {
	Team  string
	Value float64
}

// Ranking is the outcome of one Config over one season matrix.
//
// Scores are in matrix order (unsorted); Sinks lists teams with no recorded
// loss mass under this Config.
type Ranking struct {
	Label      string
	Config     Config
	Scores     []Score
	Sinks      []string
	Iterations int
	Residual   float64
	Damping    float64
	Tolerance  float64
}

// Vector returns the scores as a plain rank vector in matrix order.
func (r Ranking) Vector() []float64 {
	out := make([]float64, len(r.Scores))
	for i, s := range r.Scores {
		out[i] = s.Value
	}
	return out
}

// Engine orchestrates BuildTransition and Solve.
// An Engine holds no per-computation state and is safe for concurrent use.
type Engine struct {
	logger      *slog.Logger
	metrics     *Metrics
	concurrency int
}

// EngineOption configures an Engine.
type EngineOption func(*Engine)

// WithLogger sets the structured logger (default: discard).
func WithLogger(l *slog.Logger) EngineOption {
	return func(e *Engine) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithMetrics attaches Prometheus collectors (default: none).
func WithMetrics(m *Metrics) EngineOption {
	return func(e *Engine) {
		e.metrics = m
	}
}

// WithConcurrency bounds how many configs Compare solves at once.
// Panics if n < 1.
func WithConcurrency(n int) EngineOption {
	if n < 1 {
		panic("rank: WithConcurrency: n must be >= 1")
	}
	return func(e *Engine) {
		e.concurrency = n
	}
}

// NewEngine returns an Engine with the given options applied.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
		concurrency: runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Rank computes one ranking of teams over adj under cfg.
//
// Preconditions and validation (in order):
//  1. adj must be non-nil and square (ErrInvalidInput).
//  2. len(teams) == adj.Rows() and names are unique (ErrInvalidInput).
//  3. BuildTransition and Solve validations.
//
// adj is never modified.
func (e *Engine) Rank(teams []string, adj matrix.Matrix, cfg Config) (Ranking, error) {
	start := time.Now()
	label := cfg.Label()

	rk, err := e.rank(teams, adj, cfg)
	if err != nil {
		e.metrics.observeFailure(cfg.kindLabel())
		e.logger.Warn("ranking failed", "config", label, "error", err)
		return Ranking{}, fmt.Errorf("rank %s: %w", label, err)
	}

	elapsed := time.Since(start)
	e.metrics.observeSuccess(cfg.kindLabel(), rk.Iterations, len(rk.Sinks), elapsed)
	e.logger.Debug("ranking solved",
		"config", label,
		"teams", len(teams),
		"sinks", len(rk.Sinks),
		"iterations", rk.Iterations,
		"residual", rk.Residual,
		"elapsed", elapsed,
	)

	return rk, nil
}

func (e *Engine) rank(teams []string, adj matrix.Matrix, cfg Config) (Ranking, error) {
	if err := matrix.ValidateSquare(adj); err != nil {
		return Ranking{}, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := validateTeams(teams, adj.Rows()); err != nil {
		return Ranking{}, err
	}

	tr, err := BuildTransition(adj, cfg.UseMOV, cfg.Transform)
	if err != nil {
		return Ranking{}, err
	}
	res, err := Solve(tr, cfg.Solver...)
	if err != nil {
		return Ranking{}, err
	}

	scores := make([]Score, len(teams))
	for i, team := range teams {
		scores[i] = Score{Team: team, Value: res.Vector[i]}
	}
	var sinks []string
	for i, s := range tr.Sinks {
		if s {
			sinks = append(sinks, teams[i])
		}
	}

	return Ranking{
		Label:      cfg.Label(),
		Config:     cfg,
		Scores:     scores,
		Sinks:      sinks,
		Iterations: res.Iterations,
		Residual:   res.Residual,
		Damping:    res.Options.Damping,
		Tolerance:  res.Options.Tolerance,
	}, nil
}

// Compare computes one Ranking per config over the same matrix, returned in
// cfgs order. Each config runs on its own copy of adj; up to the engine's
// concurrency limit run at once. The first failure cancels the rest.
func (e *Engine) Compare(ctx context.Context, teams []string, adj matrix.Matrix, cfgs ...Config) ([]Ranking, error) {
	if err := matrix.ValidateSquare(adj); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	// Copies are taken up front so workers never share the caller's matrix.
	copies := make([]matrix.Matrix, len(cfgs))
	for i := range cfgs {
		copies[i] = adj.Clone()
	}

	out := make([]Ranking, len(cfgs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)
	for i := range cfgs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			rk, err := e.Rank(teams, copies[i], cfgs[i])
			if err != nil {
				return err
			}
			out[i] = rk
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return out, nil
}

// validateTeams checks the entity sequence against the matrix dimension.
func validateTeams(teams []string, n int) error {
	if len(teams) != n {
		return fmt.Errorf("%w: %d teams for a %dx%d matrix", ErrInvalidInput, len(teams), n, n)
	}
	seen := make(map[string]int, n)
	for i, t := range teams {
		if j, ok := seen[t]; ok {
			return fmt.Errorf("%w: team %q at positions %d and %d", ErrInvalidInput, t, j, i)
		}
		seen[t] = i
	}
	return nil
}
