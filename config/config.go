package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is returned when a loaded configuration fails validation.
var ErrInvalidConfig = errors.New("invalid config")

// HandicapPolicy selects how computed handicaps below zero are treated.
type HandicapPolicy string

const (
	// HandicapPolicyAllowPlus keeps negative ("plus") handicaps.
	HandicapPolicyAllowPlus HandicapPolicy = "allowPlus"
	// HandicapPolicyClampNonNegative clamps computed handicaps at zero.
	HandicapPolicyClampNonNegative HandicapPolicy = "clampNonNegative"
)

// Ledger backends.
const (
	LedgerBackendPostgres = "postgres"
	LedgerBackendXLSX     = "xlsx"
	LedgerBackendMemory   = "memory"
)

// Config struct to hold the configuration settings
type Config struct {
	Postgres      PostgresConfig      `yaml:"postgres"`
	Ledger        LedgerConfig        `yaml:"ledger"`
	Scoring       ScoringConfig       `yaml:"scoring"`
	HTTP          HTTPConfig          `yaml:"http"`
	Leaderboard   LeaderboardConfig   `yaml:"leaderboard"`
	Observability ObservabilityConfig `yaml:"observability"`
}

// PostgresConfig holds Postgres configuration.
type PostgresConfig struct {
	DSN string `yaml:"dsn"`
	// Driver is "pgdriver" (default) or "pgx".
	Driver string `yaml:"driver"`
	Debug  bool   `yaml:"debug"`
}

// LedgerConfig selects where round records live.
type LedgerConfig struct {
	Backend  string `yaml:"backend"`
	XLSXPath string `yaml:"xlsx_path"`
}

// ScoringConfig holds every knob of the scoring engine.
type ScoringConfig struct {
	BaselinePar    int                     `yaml:"baseline_par"`
	WindowSize     int                     `yaml:"window_size"`
	ExcludedWeeks  []int                   `yaml:"excluded_weeks"`
	PointsTable    map[int]decimal.Decimal `yaml:"points_table"`
	FloorPoints    decimal.Decimal         `yaml:"floor_points"`
	HandicapPolicy HandicapPolicy          `yaml:"handicap_policy"`
	GrossMin       int                     `yaml:"gross_min"`
	GrossMax       int                     `yaml:"gross_max"`
	MaxWeek        int                     `yaml:"max_week"`
	KeepFeatsOnDNF bool                    `yaml:"keep_feats_on_dnf"`
}

// HTTPConfig holds the API server configuration.
type HTTPConfig struct {
	Address   string  `yaml:"address"`
	RateLimit float64 `yaml:"rate_limit"`
	RateBurst int     `yaml:"rate_burst"`
}

// LeaderboardConfig holds read-side settings.
type LeaderboardConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

// ObservabilityConfig holds configuration for observability components
type ObservabilityConfig struct {
	ServiceName    string `yaml:"service_name"`
	Environment    string `yaml:"environment"`
	LogLevel       string `yaml:"log_level"`
	LogFormat      string `yaml:"log_format"` // json|text
	MetricsAddress string `yaml:"metrics_address"`
}

// DefaultPointsTable is the weekly rank-to-points conversion used by the league:
// 1st = 100, 2nd = 85 and so on down to 10th = 40.
func DefaultPointsTable() map[int]decimal.Decimal {
	return map[int]decimal.Decimal{
		1:  decimal.NewFromInt(100),
		2:  decimal.NewFromInt(85),
		3:  decimal.NewFromInt(75),
		4:  decimal.NewFromInt(70),
		5:  decimal.NewFromInt(65),
		6:  decimal.NewFromInt(60),
		7:  decimal.NewFromInt(55),
		8:  decimal.NewFromInt(50),
		9:  decimal.NewFromInt(45),
		10: decimal.NewFromInt(40),
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := newConfig()
	applyDefaults(cfg)
	return cfg
}

// newConfig presets the fields where zero is a valid setting, so the file
// and the environment can still override them with an explicit 0.
func newConfig() *Config {
	return &Config{
		Scoring: ScoringConfig{
			BaselinePar: 36,
			FloorPoints: decimal.NewFromInt(10),
		},
		Leaderboard: LeaderboardConfig{
			CacheTTL: 30 * time.Second,
		},
	}
}

// LoadConfig loads the configuration from a YAML file.
func LoadConfig(filename string) (*Config, error) {
	// A missing .env is normal outside local development.
	_ = godotenv.Load()

	cfg := newConfig()

	data, err := os.ReadFile(filename)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to unmarshal config: %w", err)
		}
	case errors.Is(err, os.ErrNotExist):
		// Fall through to environment-only configuration.
	default:
		return nil, fmt.Errorf("failed to read config %s: %w", filename, err)
	}

	// --- OVERRIDE WITH ENV VARS IF PRESENT ---
	if err := applyEnv(cfg); err != nil {
		return nil, err
	}

	applyDefaults(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Postgres.DSN = v
	}
	if v := os.Getenv("DATABASE_DRIVER"); v != "" {
		cfg.Postgres.Driver = v
	}
	if v := os.Getenv("DATABASE_DEBUG"); v != "" {
		cfg.Postgres.Debug = v == "true"
	}
	if v := os.Getenv("LEDGER_BACKEND"); v != "" {
		cfg.Ledger.Backend = v
	}
	if v := os.Getenv("LEDGER_XLSX_PATH"); v != "" {
		cfg.Ledger.XLSXPath = v
	}
	if v := os.Getenv("HANDICAP_POLICY"); v != "" {
		cfg.Scoring.HandicapPolicy = HandicapPolicy(v)
	}
	if v := os.Getenv("BASELINE_PAR"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid BASELINE_PAR value: %w", err)
		}
		cfg.Scoring.BaselinePar = n
	}
	if v := os.Getenv("EXCLUDED_WEEKS"); v != "" {
		weeks, err := parseIntList(v)
		if err != nil {
			return fmt.Errorf("invalid EXCLUDED_WEEKS value: %w", err)
		}
		cfg.Scoring.ExcludedWeeks = weeks
	}
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("LEADERBOARD_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LEADERBOARD_CACHE_TTL value: %w", err)
		}
		cfg.Leaderboard.CacheTTL = d
	}
	if v := os.Getenv("METRICS_ADDRESS"); v != "" {
		cfg.Observability.MetricsAddress = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Observability.LogLevel = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Observability.LogFormat = v
	}
	if v := os.Getenv("ENV"); v != "" {
		cfg.Observability.Environment = v
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Postgres.Driver == "" {
		cfg.Postgres.Driver = "pgdriver"
	}
	if cfg.Ledger.Backend == "" {
		if cfg.Postgres.DSN != "" {
			cfg.Ledger.Backend = LedgerBackendPostgres
		} else {
			cfg.Ledger.Backend = LedgerBackendXLSX
		}
	}
	if cfg.Ledger.XLSXPath == "" {
		cfg.Ledger.XLSXPath = "league.xlsx"
	}

	s := &cfg.Scoring
	if s.WindowSize == 0 {
		s.WindowSize = 4
	}
	if len(s.PointsTable) == 0 {
		s.PointsTable = DefaultPointsTable()
	}
	if s.HandicapPolicy == "" {
		s.HandicapPolicy = HandicapPolicyAllowPlus
	}
	if s.GrossMin == 0 {
		s.GrossMin = 20
	}
	if s.GrossMax == 0 {
		s.GrossMax = 150
	}
	if s.MaxWeek == 0 {
		s.MaxWeek = 15
	}

	if cfg.HTTP.Address == "" {
		cfg.HTTP.Address = ":8080"
	}
	if cfg.HTTP.RateLimit == 0 {
		cfg.HTTP.RateLimit = 5
	}
	if cfg.HTTP.RateBurst == 0 {
		cfg.HTTP.RateBurst = 10
	}

	o := &cfg.Observability
	if o.ServiceName == "" {
		o.ServiceName = "frolf-league"
	}
	if o.Environment == "" {
		o.Environment = "development"
	}
	if o.LogLevel == "" {
		o.LogLevel = "info"
	}
	if o.LogFormat == "" {
		o.LogFormat = "json"
	}
}

// Validate checks the invariants the scoring engine relies on.
func (c *Config) Validate() error {
	s := c.Scoring
	switch s.HandicapPolicy {
	case HandicapPolicyAllowPlus, HandicapPolicyClampNonNegative:
	default:
		return fmt.Errorf("%w: unknown handicap_policy %q", ErrInvalidConfig, s.HandicapPolicy)
	}
	if s.WindowSize < 1 {
		return fmt.Errorf("%w: window_size must be at least 1, got %d", ErrInvalidConfig, s.WindowSize)
	}
	if s.GrossMin > s.GrossMax {
		return fmt.Errorf("%w: gross_min %d exceeds gross_max %d", ErrInvalidConfig, s.GrossMin, s.GrossMax)
	}
	if s.MaxWeek < 1 {
		return fmt.Errorf("%w: max_week must be at least 1, got %d", ErrInvalidConfig, s.MaxWeek)
	}
	for rank := range s.PointsTable {
		if rank < 1 {
			return fmt.Errorf("%w: points_table rank %d must be positive", ErrInvalidConfig, rank)
		}
	}

	switch c.Ledger.Backend {
	case LedgerBackendPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("%w: postgres ledger requires DATABASE_URL or postgres.dsn", ErrInvalidConfig)
		}
		if c.Postgres.Driver != "pgdriver" && c.Postgres.Driver != "pgx" {
			return fmt.Errorf("%w: unknown postgres driver %q", ErrInvalidConfig, c.Postgres.Driver)
		}
	case LedgerBackendXLSX, LedgerBackendMemory:
	default:
		return fmt.Errorf("%w: unknown ledger backend %q", ErrInvalidConfig, c.Ledger.Backend)
	}
	return nil
}

// ExcludedWeekSet returns the excluded weeks as a lookup set.
func (s ScoringConfig) ExcludedWeekSet() map[int]struct{} {
	set := make(map[int]struct{}, len(s.ExcludedWeeks))
	for _, w := range s.ExcludedWeeks {
		set[w] = struct{}{}
	}
	return set
}

func parseIntList(v string) ([]int, error) {
	parts := strings.Split(v, ",")
	out := make([]int, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
