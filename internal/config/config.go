// Package config provides Viper-based hierarchical configuration for the
// import engine: every threshold and weight the matching logic depends on is
// named here instead of living as an inline literal.
package config

import (
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

var once sync.Once

// Config represents the complete application configuration.
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Dedupe struct {
		// AmountTolerance absorbs currency rounding between sources.
		AmountTolerance float64 `mapstructure:"amount_tolerance" yaml:"amount_tolerance"`
		// DateWindowDays captures bank posting-date lag.
		DateWindowDays float64 `mapstructure:"date_window_days" yaml:"date_window_days"`
		// JaccardThreshold is the minimum token-overlap for two
		// descriptions to count as similar.
		JaccardThreshold float64 `mapstructure:"jaccard_threshold" yaml:"jaccard_threshold"`
		// AmountWeight/DateWeight/DescWeight rank candidates; they must
		// sum to 1 so scores stay in [0,1].
		AmountWeight float64 `mapstructure:"amount_weight" yaml:"amount_weight"`
		DateWeight   float64 `mapstructure:"date_weight" yaml:"date_weight"`
		DescWeight   float64 `mapstructure:"desc_weight" yaml:"desc_weight"`
	} `mapstructure:"dedupe" yaml:"dedupe"`

	Classify struct {
		// FreeformScoreThreshold is the minimum cumulative score before
		// the freeform strategy trusts its top-ranked account.
		FreeformScoreThreshold int `mapstructure:"freeform_score_threshold" yaml:"freeform_score_threshold"`
		// RulesFile optionally overrides the built-in structured rule
		// cascade with a YAML table.
		RulesFile string `mapstructure:"rules_file" yaml:"rules_file"`
	} `mapstructure:"classify" yaml:"classify"`

	Ledger struct {
		// WindowDays bounds how far back existing transactions are
		// considered for duplicate detection.
		WindowDays int `mapstructure:"window_days" yaml:"window_days"`
		// MaxRecords caps the existing-transaction window.
		MaxRecords int `mapstructure:"max_records" yaml:"max_records"`
	} `mapstructure:"ledger" yaml:"ledger"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading:
// defaults, then an optional config file, then QFIMPORT_-prefixed
// environment variables.
func InitializeConfig() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/.qfimport")
	v.AddConfigPath(".qfimport")
	v.AddConfigPath(".")

	v.SetEnvPrefix("QFIMPORT")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Log the error but don't fail - continue with defaults and env vars
			fmt.Printf("Warning: error reading config file %s: %v\n", v.ConfigFileUsed(), err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values. The dedupe and classify
// defaults are the empirically tuned values the review workflow was
// calibrated against.
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("dedupe.amount_tolerance", 0.01)
	v.SetDefault("dedupe.date_window_days", 2.0)
	v.SetDefault("dedupe.jaccard_threshold", 0.55)
	v.SetDefault("dedupe.amount_weight", 0.5)
	v.SetDefault("dedupe.date_weight", 0.2)
	v.SetDefault("dedupe.desc_weight", 0.3)

	v.SetDefault("classify.freeform_score_threshold", 60)
	v.SetDefault("classify.rules_file", "")

	v.SetDefault("ledger.window_days", 180)
	v.SetDefault("ledger.max_records", 500)
}

// validateConfig rejects settings the engine cannot operate with.
func validateConfig(c *Config) error {
	if _, err := logrus.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q", c.Log.Level)
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		return fmt.Errorf("invalid log format %q (want text or json)", c.Log.Format)
	}

	if c.Dedupe.AmountTolerance < 0 {
		return fmt.Errorf("dedupe.amount_tolerance must be >= 0, got %v", c.Dedupe.AmountTolerance)
	}
	if c.Dedupe.DateWindowDays < 0 {
		return fmt.Errorf("dedupe.date_window_days must be >= 0, got %v", c.Dedupe.DateWindowDays)
	}
	if c.Dedupe.JaccardThreshold < 0 || c.Dedupe.JaccardThreshold > 1 {
		return fmt.Errorf("dedupe.jaccard_threshold must be in [0,1], got %v", c.Dedupe.JaccardThreshold)
	}
	weightSum := c.Dedupe.AmountWeight + c.Dedupe.DateWeight + c.Dedupe.DescWeight
	if math.Abs(weightSum-1.0) > 1e-9 {
		return fmt.Errorf("dedupe weights must sum to 1.0, got %v", weightSum)
	}

	if c.Classify.FreeformScoreThreshold < 0 || c.Classify.FreeformScoreThreshold > 100 {
		return fmt.Errorf("classify.freeform_score_threshold must be in [0,100], got %d", c.Classify.FreeformScoreThreshold)
	}

	if c.Ledger.WindowDays <= 0 {
		return fmt.Errorf("ledger.window_days must be > 0, got %d", c.Ledger.WindowDays)
	}
	if c.Ledger.MaxRecords <= 0 {
		return fmt.Errorf("ledger.max_records must be > 0, got %d", c.Ledger.MaxRecords)
	}

	return nil
}

// LoadEnv loads environment variables from a .env file if one exists in the
// working directory or its parent.
func LoadEnv(log *logrus.Logger) {
	once.Do(func() {
		envFile := ".env"
		if _, err := os.Stat(envFile); os.IsNotExist(err) {
			envFile = filepath.Join("..", ".env")
			if _, err := os.Stat(envFile); os.IsNotExist(err) {
				log.Debug("No .env file found, using environment variables")
				return
			}
		}

		if err := godotenv.Load(envFile); err != nil {
			log.Warnf("Error loading .env file: %v", err)
			return
		}
		log.Debugf("Loaded environment variables from %s", envFile)
	})
}
