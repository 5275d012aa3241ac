package config

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"strconv"
	"strings"
	"sync"

	"betledger/models"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreDriverSQLite = "sqlite"
	StoreDriverMemory = "memory"
)

// Config holds all application configuration
type Config struct {
	// Environment
	Environment string `yaml:"environment"` // "development", "production" or "test"
	LogLevel    string `yaml:"log_level"`

	// Storage configuration
	StoreDriver  string `yaml:"store_driver"`
	DatabasePath string `yaml:"database_path"`

	// Journal and calculator defaults
	DefaultBankroll  float64 `yaml:"default_bankroll"`
	KellyFraction    float64 `yaml:"kelly_fraction"`
	DrawdownAlertPct float64 `yaml:"drawdown_alert_pct"` // 0 disables the drawdown monitor

	Simulation models.SimulationParams `yaml:"simulation"`
	Cycle      CycleConfig             `yaml:"cycle"`
	Prediction PredictionConfig        `yaml:"prediction"`
}

// CycleConfig holds the ladder used when no cycle has been stored yet
type CycleConfig struct {
	Capital float64 `yaml:"capital"`
	Steps   int     `yaml:"steps"`
	Odds    float64 `yaml:"odds"`
}

// PredictionConfig configures the OpenAI-compatible prediction endpoint
type PredictionConfig struct {
	APIKey            string `yaml:"api_key"`
	BaseURL           string `yaml:"base_url"`
	Model             string `yaml:"model"`
	TimeoutSeconds    int    `yaml:"timeout_seconds"`
	RequestsPerMinute int    `yaml:"requests_per_minute"`
}

// Enabled reports whether an API key has been configured
func (p PredictionConfig) Enabled() bool {
	return p.APIKey != ""
}

var (
	instance *Config
	once     sync.Once
)

// Get returns the global configuration instance
func Get() *Config {
	once.Do(func() {
		if os.Getenv("ENVIRONMENT") != "test" {
			// a missing .env file is fine
			_ = godotenv.Load()
		}

		var err error
		instance, err = Load(os.Getenv("BETLEDGER_CONFIG"))
		if err != nil {
			panic(fmt.Sprintf("failed to load config: %v", err))
		}
	})
	return instance
}

// Defaults returns the configuration used when nothing is overridden
func Defaults() *Config {
	return &Config{
		Environment:      "development",
		LogLevel:         "info",
		StoreDriver:      StoreDriverSQLite,
		DatabasePath:     "betledger.db",
		DefaultBankroll:  10000,
		KellyFraction:    0.5,
		DrawdownAlertPct: 25,
		Simulation: models.SimulationParams{
			StartingBankroll: 10000,
			WinProbability:   0.55,
			AverageOdds:      1.95,
			StakeFraction:    0.02,
			BetsPerRun:       500,
			Runs:             50,
			RuinThreshold:    1,
			SampleInterval:   10,
		},
		Cycle: CycleConfig{
			Capital: 100000,
			Steps:   5,
			Odds:    2.0,
		},
		Prediction: PredictionConfig{
			TimeoutSeconds:    60,
			RequestsPerMinute: 10,
		},
	}
}

// Load builds the configuration from defaults, the optional YAML file at
// configPath and then environment variables, each overriding the previous.
func Load(configPath string) (*Config, error) {
	config := Defaults()

	if configPath != "" {
		data, err := os.ReadFile(configPath)
		if err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err == nil {
			if err := yaml.Unmarshal(data, config); err != nil {
				return nil, fmt.Errorf("failed to parse config file: %w", err)
			}
		}
	}

	if err := applyEnv(config); err != nil {
		return nil, err
	}
	if err := config.validate(); err != nil {
		return nil, err
	}
	return config, nil
}

func applyEnv(c *Config) error {
	setString(&c.Environment, "ENVIRONMENT")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.StoreDriver, "STORE_DRIVER")
	setString(&c.DatabasePath, "DATABASE_PATH")
	setString(&c.Prediction.APIKey, "PREDICTION_API_KEY")
	setString(&c.Prediction.BaseURL, "PREDICTION_BASE_URL")
	setString(&c.Prediction.Model, "PREDICTION_MODEL")

	floats := map[string]*float64{
		"DEFAULT_BANKROLL":    &c.DefaultBankroll,
		"KELLY_FRACTION":      &c.KellyFraction,
		"DRAWDOWN_ALERT_PCT":  &c.DrawdownAlertPct,
		"SIM_BANKROLL":        &c.Simulation.StartingBankroll,
		"SIM_WIN_RATE":        &c.Simulation.WinProbability,
		"SIM_AVG_ODDS":        &c.Simulation.AverageOdds,
		"SIM_BET_SIZE_PCT":    &c.Simulation.StakeFraction,
		"RUIN_THRESHOLD":      &c.Simulation.RuinThreshold,
		"CYCLE_START_CAPITAL": &c.Cycle.Capital,
		"CYCLE_BASE_ODDS":     &c.Cycle.Odds,
	}
	for key, target := range floats {
		if err := setFloat(target, key); err != nil {
			return err
		}
	}

	ints := map[string]*int{
		"SIM_NUM_BETS":                   &c.Simulation.BetsPerRun,
		"SIM_NUM_SIMULATIONS":            &c.Simulation.Runs,
		"SAMPLE_INTERVAL":                &c.Simulation.SampleInterval,
		"CYCLE_STEPS":                    &c.Cycle.Steps,
		"PREDICTION_TIMEOUT_SECONDS":     &c.Prediction.TimeoutSeconds,
		"PREDICTION_REQUESTS_PER_MINUTE": &c.Prediction.RequestsPerMinute,
	}
	for key, target := range ints {
		if err := setInt(target, key); err != nil {
			return err
		}
	}
	return nil
}

func setString(target *string, key string) {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		*target = v
	}
}

func setFloat(target *float64, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	parsed, err := strconv.ParseFloat(v, 64)
	if err != nil || math.IsNaN(parsed) || math.IsInf(parsed, 0) {
		return fmt.Errorf("%s must be a number, got %q", key, v)
	}
	*target = parsed
	return nil
}

func setInt(target *int, key string) error {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return nil
	}
	parsed, err := strconv.Atoi(v)
	if err != nil {
		return fmt.Errorf("%s must be an integer, got %q", key, v)
	}
	*target = parsed
	return nil
}

func (c *Config) validate() error {
	if c.Environment == "" {
		c.Environment = "development"
	}

	switch c.StoreDriver {
	case StoreDriverSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH is required for the sqlite store")
		}
	case StoreDriverMemory:
	default:
		return fmt.Errorf("unknown STORE_DRIVER %q (want %s or %s)", c.StoreDriver, StoreDriverSQLite, StoreDriverMemory)
	}

	if c.DefaultBankroll < 0 {
		return fmt.Errorf("DEFAULT_BANKROLL must not be negative")
	}
	if c.KellyFraction <= 0 || c.KellyFraction > 1 {
		return fmt.Errorf("KELLY_FRACTION must be in (0, 1], got %v", c.KellyFraction)
	}
	if c.Cycle.Steps < 1 {
		return fmt.Errorf("CYCLE_STEPS must be at least 1")
	}
	return nil
}
