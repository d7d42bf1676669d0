package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultTestConfig() *Config {
	c := &Config{}
	c.Log.Level = "info"
	c.Log.Format = "text"
	c.Dedupe.AmountTolerance = 0.01
	c.Dedupe.DateWindowDays = 2
	c.Dedupe.JaccardThreshold = 0.55
	c.Dedupe.AmountWeight = 0.5
	c.Dedupe.DateWeight = 0.2
	c.Dedupe.DescWeight = 0.3
	c.Classify.FreeformScoreThreshold = 60
	c.Ledger.WindowDays = 180
	c.Ledger.MaxRecords = 500
	return c
}

func TestInitializeConfigDefaults(t *testing.T) {
	config, err := InitializeConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", config.Log.Level)
	assert.Equal(t, "text", config.Log.Format)
	assert.InDelta(t, 0.01, config.Dedupe.AmountTolerance, 1e-9)
	assert.InDelta(t, 2.0, config.Dedupe.DateWindowDays, 1e-9)
	assert.InDelta(t, 0.55, config.Dedupe.JaccardThreshold, 1e-9)
	assert.InDelta(t, 0.5, config.Dedupe.AmountWeight, 1e-9)
	assert.InDelta(t, 0.2, config.Dedupe.DateWeight, 1e-9)
	assert.InDelta(t, 0.3, config.Dedupe.DescWeight, 1e-9)
	assert.Equal(t, 60, config.Classify.FreeformScoreThreshold)
	assert.Equal(t, 180, config.Ledger.WindowDays)
	assert.Equal(t, 500, config.Ledger.MaxRecords)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		valid  bool
	}{
		{"defaults are valid", func(c *Config) {}, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, false},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }, false},
		{"negative tolerance", func(c *Config) { c.Dedupe.AmountTolerance = -0.01 }, false},
		{"negative date window", func(c *Config) { c.Dedupe.DateWindowDays = -1 }, false},
		{"jaccard above one", func(c *Config) { c.Dedupe.JaccardThreshold = 1.2 }, false},
		{"weights not summing to one", func(c *Config) { c.Dedupe.AmountWeight = 0.6 }, false},
		{"threshold above 100", func(c *Config) { c.Classify.FreeformScoreThreshold = 150 }, false},
		{"zero window days", func(c *Config) { c.Ledger.WindowDays = 0 }, false},
		{"zero max records", func(c *Config) { c.Ledger.MaxRecords = 0 }, false},
		{"retuned weights still valid", func(c *Config) {
			c.Dedupe.AmountWeight = 0.4
			c.Dedupe.DateWeight = 0.3
			c.Dedupe.DescWeight = 0.3
		}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			config := defaultTestConfig()
			tc.mutate(config)
			err := validateConfig(config)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
