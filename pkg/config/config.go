// Package config handles collidergen run configuration: the decomposition
// option bundle, the approximation post-processing settings, and logging.
// Precedence is defaults < YAML file < command-line flags; flag handling
// lives in the command, not here.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/chamferlabs/collidergen/pkg/approx"
	"github.com/chamferlabs/collidergen/pkg/decomp"
)

// Config holds all run settings.
type Config struct {
	// Decompose is passed through opaquely to the decomposition backend.
	Decompose decomp.Options `yaml:"decompose"`

	// ApproximateMode selects hull post-processing: "ch" keeps convex
	// hulls, "box" replaces each hull with its AABB.
	ApproximateMode string `yaml:"approximate_mode"`

	// ExtrudeMargin is the signed per-part scale fraction applied about
	// each part's centroid. 0 disables the stage.
	ExtrudeMargin float64 `yaml:"extrude_margin"`

	Logging LoggingConfig `yaml:"logging"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Default returns the configuration matching the backend's documented
// defaults: convex hulls, no margin.
func Default() *Config {
	return &Config{
		Decompose:       decomp.DefaultOptions(),
		ApproximateMode: "ch",
		ExtrudeMargin:   0,
		Logging:         LoggingConfig{Level: "info"},
	}
}

// Load returns the defaults overridden by the YAML file at path. An empty
// path yields plain defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks every recognized option.
func (c *Config) Validate() error {
	if err := c.Decompose.Validate(); err != nil {
		return err
	}
	if _, err := approx.ParseMode(c.ApproximateMode); err != nil {
		return err
	}
	return nil
}

// ApproxOptions converts the string-typed settings to approx.Options.
func (c *Config) ApproxOptions() (approx.Options, error) {
	mode, err := approx.ParseMode(c.ApproximateMode)
	if err != nil {
		return approx.Options{}, err
	}
	return approx.Options{Mode: mode, ExtrudeMargin: c.ExtrudeMargin}, nil
}
