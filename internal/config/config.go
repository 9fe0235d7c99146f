// Package config loads and validates the engine configuration: the
// influence policy surface (base weight, category-weight table) and the
// analytics defaults (trend window, histogram resolution, top-N cutoff).
// Files are YAML, loaded with koanf; a debounced fsnotify watcher
// supports hot reload of the category weights.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"
)

// Config holds the tunable policy surface of the engine.
type Config struct {
	// LogLevel is the default logging level (debug, info, warn, error).
	LogLevel string `yaml:"log_level" koanf:"log_level"`

	// BaseWeight is the starting raw contribution per factor in the
	// influence heuristic.
	BaseWeight float64 `yaml:"base_weight" koanf:"base_weight"`

	// CategoryWeights maps factor categories to prior multipliers.
	// Categories absent from the table use a uniform prior.
	CategoryWeights map[string]float64 `yaml:"category_weights" koanf:"category_weights"`

	// TrendWindowHours is the confidence trend bucket size in hours.
	TrendWindowHours int `yaml:"trend_window_hours" koanf:"trend_window_hours"`

	// HistogramBuckets is the confidence histogram resolution.
	HistogramBuckets int `yaml:"histogram_buckets" koanf:"histogram_buckets"`

	// TopFactors is the top-N cutoff for the factor importance trend.
	TopFactors int `yaml:"top_factors" koanf:"top_factors"`
}

// Default returns the default configuration: uniform category priors,
// daily trend buckets, ten histogram buckets, top five factors.
func Default() *Config {
	return &Config{
		LogLevel:         "info",
		BaseWeight:       1.0,
		CategoryWeights:  map[string]float64{},
		TrendWindowHours: 24,
		HistogramBuckets: 10,
		TopFactors:       5,
	}
}

// Load reads and validates a YAML config file. Fields absent from the
// file keep their defaults.
func Load(filepath string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(filepath), yaml.Parser()); err != nil {
		return nil, fmt.Errorf("failed to load config from %q: %w", filepath, err)
	}

	cfg := Default()
	if err := k.UnmarshalWithConf("", cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, fmt.Errorf("failed to parse config from %q: %w", filepath, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed for %q: %w", filepath, err)
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.BaseWeight <= 0 {
		return fmt.Errorf("base_weight must be positive, got %v", c.BaseWeight)
	}
	for category, weight := range c.CategoryWeights {
		if weight < 0 {
			return fmt.Errorf("category_weights[%q] must not be negative, got %v", category, weight)
		}
	}
	if c.TrendWindowHours <= 0 {
		return fmt.Errorf("trend_window_hours must be positive, got %d", c.TrendWindowHours)
	}
	if c.HistogramBuckets <= 0 {
		return fmt.Errorf("histogram_buckets must be positive, got %d", c.HistogramBuckets)
	}
	if c.TopFactors <= 0 {
		return fmt.Errorf("top_factors must be positive, got %d", c.TopFactors)
	}
	return nil
}

// TrendWindowDuration returns the trend window as a duration.
func (c *Config) TrendWindowDuration() time.Duration {
	return time.Duration(c.TrendWindowHours) * time.Hour
}

// WriteFile writes the configuration as YAML, used to seed a config
// file a user can then edit.
func (c *Config) WriteFile(filepath string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := os.WriteFile(filepath, data, 0o600); err != nil {
		return fmt.Errorf("failed to write config to %q: %w", filepath, err)
	}
	return nil
}
