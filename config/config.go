// Package config loads teamrank settings from an optional YAML file and
// TEAMRANK_* environment variables. Environment variables take precedence
// over file values, which take precedence over the Default* constants.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/katalvlaran/lossrank/rank"
	"github.com/katalvlaran/lossrank/weight"
)

// EnvPrefix is prepended to every environment key.
const EnvPrefix = "TEAMRANK_"

// Config holds all settings of the teamrank CLI.
type Config struct {
	// Games feed
	APIBaseURL string  `koanf:"api_base_url"`
	APIKey     string  `koanf:"api_key"`
	RateLimit  float64 `koanf:"rate_limit"` // requests per second
	Season     int     `koanf:"season"`

	// Ranking
	Transform     string  `koanf:"transform"`
	UseMOV        bool    `koanf:"use_mov"`
	Cap           float64 `koanf:"cap"`
	LogisticK     float64 `koanf:"logistic_k"`
	LogisticX0    float64 `koanf:"logistic_x0"`
	LogisticL     float64 `koanf:"logistic_l"`
	LogisticY0    float64 `koanf:"logistic_y0"`
	Damping       float64 `koanf:"damping"`
	Tolerance     float64 `koanf:"tolerance"`
	MaxIterations int     `koanf:"max_iterations"`

	// Storage
	DBPath string `koanf:"db_path"`

	// Logging
	LogLevel  string `koanf:"log_level"`
	LogFormat string `koanf:"log_format"`
}

// Configuration validation errors.
var (
	ErrInvalidDamping       = errors.New("damping must be in [0, 1]")
	ErrInvalidTolerance     = errors.New("tolerance must be finite and > 0")
	ErrInvalidMaxIterations = errors.New("max_iterations must be > 0")
	ErrInvalidRateLimit     = errors.New("rate_limit must be > 0")
	ErrInvalidSeason        = errors.New("season must be > 0")
	ErrInvalidLogLevel      = errors.New("log_level must be debug, info, warn or error")
	ErrInvalidLogFormat     = errors.New("log_format must be text or json")
	ErrInvalidNumber        = errors.New("value must be a valid number")
)

// Default values.
const (
	DefaultAPIBaseURL    = "https://api.collegefootballdata.com"
	DefaultRateLimit     = 2.0
	DefaultSeason        = 2019
	DefaultTransform     = "linear"
	DefaultUseMOV        = true
	DefaultDBPath        = "teamrank.db"
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultDamping       = rank.DefaultDamping
	DefaultTolerance     = rank.DefaultTolerance
	DefaultMaxIterations = rank.DefaultMaxIterations
)

// Default returns a Config populated with the Default* values.
func Default() *Config {
	return &Config{
		APIBaseURL:    DefaultAPIBaseURL,
		RateLimit:     DefaultRateLimit,
		Season:        DefaultSeason,
		Transform:     DefaultTransform,
		UseMOV:        DefaultUseMOV,
		Cap:           weight.DefaultCap,
		LogisticK:     weight.DefaultLogisticK,
		LogisticX0:    weight.DefaultLogisticX0,
		LogisticL:     weight.DefaultLogisticL,
		LogisticY0:    weight.DefaultLogisticY0,
		Damping:       DefaultDamping,
		Tolerance:     DefaultTolerance,
		MaxIterations: DefaultMaxIterations,
		DBPath:        DefaultDBPath,
		LogLevel:      DefaultLogLevel,
		LogFormat:     DefaultLogFormat,
	}
}

// Load reads configuration from an optional YAML file and the environment.
// It returns the config and every problem found (empty if valid). A file
// that cannot be read or parsed is reported alone with a nil config.
func Load(configFilePath string) (*Config, []error) {
	k := koanf.New(".")
	if configFilePath != "" {
		if err := k.Load(file.Provider(configFilePath), yaml.Parser()); err != nil {
			return nil, []error{fmt.Errorf("failed to load config file %s: %w", configFilePath, err)}
		}
	}

	l := loader{k: k}
	d := Default()
	cfg := &Config{
		APIBaseURL:    l.str("API_BASE_URL", "api_base_url", d.APIBaseURL),
		APIKey:        l.str("API_KEY", "api_key", d.APIKey),
		RateLimit:     l.float("RATE_LIMIT", "rate_limit", d.RateLimit),
		Season:        l.int("SEASON", "season", d.Season),
		Transform:     l.str("TRANSFORM", "transform", d.Transform),
		UseMOV:        l.bool("USE_MOV", "use_mov", d.UseMOV),
		Cap:           l.float("CAP", "cap", d.Cap),
		LogisticK:     l.float("LOGISTIC_K", "logistic_k", d.LogisticK),
		LogisticX0:    l.float("LOGISTIC_X0", "logistic_x0", d.LogisticX0),
		LogisticL:     l.float("LOGISTIC_L", "logistic_l", d.LogisticL),
		LogisticY0:    l.float("LOGISTIC_Y0", "logistic_y0", d.LogisticY0),
		Damping:       l.float("DAMPING", "damping", d.Damping),
		Tolerance:     l.float("TOLERANCE", "tolerance", d.Tolerance),
		MaxIterations: l.int("MAX_ITERATIONS", "max_iterations", d.MaxIterations),
		DBPath:        l.str("DB_PATH", "db_path", d.DBPath),
		LogLevel:      l.str("LOG_LEVEL", "log_level", d.LogLevel),
		LogFormat:     l.str("LOG_FORMAT", "log_format", d.LogFormat),
	}

	return cfg, append(l.errs, cfg.Validate()...)
}

// loader resolves one key at a time: env, then file, then default.
// Unparseable values from either source are collected in errs.
type loader struct {
	k    *koanf.Koanf
	errs []error
}

func (l *loader) env(key string) (string, bool) {
	v, ok := os.LookupEnv(EnvPrefix + key)
	return strings.TrimSpace(v), ok && strings.TrimSpace(v) != ""
}

func (l *loader) str(envKey, key, def string) string {
	if v, ok := l.env(envKey); ok {
		return v
	}
	if l.k.Exists(key) {
		return l.k.String(key)
	}
	return def
}

// raw returns the unparsed value for a setting and the name to report it
// under: the env variable when set, else the file key.
func (l *loader) raw(envKey, key string) (string, string, bool) {
	if v, ok := l.env(envKey); ok {
		return v, EnvPrefix + envKey, true
	}
	if l.k.Exists(key) {
		return strings.TrimSpace(l.k.String(key)), key, true
	}
	return "", "", false
}

func (l *loader) float(envKey, key string, def float64) float64 {
	v, name, ok := l.raw(envKey, key)
	if !ok {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s: %w", name, ErrInvalidNumber))
		return def
	}
	return f
}

func (l *loader) int(envKey, key string, def int) int {
	v, name, ok := l.raw(envKey, key)
	if !ok {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		l.errs = append(l.errs, fmt.Errorf("%s: %w", name, ErrInvalidNumber))
		return def
	}
	return i
}

func (l *loader) bool(envKey, key string, def bool) bool {
	v, name, ok := l.raw(envKey, key)
	if !ok {
		return def
	}
	switch strings.ToLower(v) {
	case "true", "1", "yes", "on":
		return true
	case "false", "0", "no", "off":
		return false
	}
	l.errs = append(l.errs, fmt.Errorf("%s: %q is not a boolean", name, v))
	return def
}

// Validate checks every setting and returns all problems found (empty if valid).
func (c *Config) Validate() []error {
	var errs []error

	if math.IsNaN(c.Damping) || c.Damping < 0 || c.Damping > 1 {
		errs = append(errs, ErrInvalidDamping)
	}
	if math.IsNaN(c.Tolerance) || math.IsInf(c.Tolerance, 0) || c.Tolerance <= 0 {
		errs = append(errs, ErrInvalidTolerance)
	}
	if c.MaxIterations <= 0 {
		errs = append(errs, ErrInvalidMaxIterations)
	}
	if math.IsNaN(c.RateLimit) || c.RateLimit <= 0 {
		errs = append(errs, ErrInvalidRateLimit)
	}
	if c.Season <= 0 {
		errs = append(errs, ErrInvalidSeason)
	}
	if _, err := c.WeightTransform(); err != nil {
		errs = append(errs, err)
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		errs = append(errs, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		errs = append(errs, ErrInvalidLogFormat)
	}

	return errs
}

// WeightTransform builds and validates the configured margin transform.
func (c *Config) WeightTransform() (weight.Transform, error) {
	kind, err := weight.ParseKind(c.Transform)
	if err != nil {
		return weight.Transform{}, err
	}

	var t weight.Transform
	switch kind {
	case weight.Capped:
		t = weight.CappedTransform(c.Cap)
	case weight.Logistic:
		t = weight.LogisticTransform(c.LogisticK, c.LogisticX0, c.LogisticL, c.LogisticY0)
	default:
		t = weight.Default(kind)
	}
	if err = t.Validate(); err != nil {
		return weight.Transform{}, err
	}

	return t, nil
}

// RankConfig returns the ranking configuration described by c.
// c must have passed Validate; invalid solver values panic in rank's option
// constructors.
func (c *Config) RankConfig() (rank.Config, error) {
	t, err := c.WeightTransform()
	if err != nil {
		return rank.Config{}, err
	}
	return rank.Config{
		UseMOV:    c.UseMOV && t.Kind != weight.Binary,
		Transform: t,
		Solver:    c.SolverOptions(),
	}, nil
}

// SolverOptions returns the rank options for damping, tolerance and the iteration cap.
func (c *Config) SolverOptions() []rank.Option {
	return []rank.Option{
		rank.WithDamping(c.Damping),
		rank.WithTolerance(c.Tolerance),
		rank.WithMaxIterations(c.MaxIterations),
	}
}

// ParseLevel maps a log level name to its slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info", "":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return slog.LevelInfo, fmt.Errorf("%w: %q", ErrInvalidLogLevel, s)
	}
}

// LogSummary returns the configuration suitable for logging, with the API key masked.
func (c *Config) LogSummary() map[string]string {
	return map[string]string{
		"api_base_url":   c.APIBaseURL,
		"api_key":        maskSecret(c.APIKey),
		"season":         strconv.Itoa(c.Season),
		"transform":      c.Transform,
		"use_mov":        strconv.FormatBool(c.UseMOV),
		"damping":        strconv.FormatFloat(c.Damping, 'g', -1, 64),
		"tolerance":      strconv.FormatFloat(c.Tolerance, 'g', -1, 64),
		"max_iterations": strconv.Itoa(c.MaxIterations),
		"db_path":        c.DBPath,
		"log_level":      c.LogLevel,
		"log_format":     c.LogFormat,
	}
}

// maskSecret keeps the last four characters of s.
func maskSecret(s string) string {
	if s == "" {
		return ""
	}
	if len(s) <= 4 {
		return "****"
	}
	return "****" + s[len(s)-4:]
}
