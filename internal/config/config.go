// Package config provides configuration loading for slbinspect.
//
// Configuration is loaded from a single YAML file specified by:
//   - the --config flag, or
//   - the SLBINSPECT_CONFIG environment variable.
//
// Without either, the defaults are used.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// EnvVar is the environment variable naming the config file.
const EnvVar = "SLBINSPECT_CONFIG"

// Format is the output format of a report.
type Format string

const (
	// Text is a human readable listing.
	Text Format = "text"
	// YAML is a YAML document.
	YAML Format = "yaml"
	// CBOR is CBOR with core deterministic encoding.
	CBOR Format = "cbor"
)

// Config configures slbinspect.
type Config struct {
	// LogLevel is one of debug, info, warn or error.
	// Default: warn
	LogLevel string `yaml:"log_level"`

	// Format is the report format.
	// Default: text
	Format Format `yaml:"format"`

	// CheckTargets additionally checks that every offset points inside the data.
	// Default: true
	CheckTargets bool `yaml:"check_targets"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		LogLevel:     "warn",
		Format:       Text,
		CheckTargets: true,
	}
}

// Load loads the file at path, or the file named by EnvVar if path is empty.
// If neither is given, the defaults are returned.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvVar)
	}
	if path == "" {
		return Default(), nil
	}
	return LoadFile(path)
}

// LoadFile loads configuration from a specific file path, over the defaults.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(data)
}

// Parse parses YAML configuration over the defaults and validates it.
func Parse(data []byte) (*Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	var errs []error

	if _, err := c.Level(); err != nil {
		errs = append(errs, err)
	}

	switch c.Format {
	case Text, YAML, CBOR:
	default:
		errs = append(errs, fmt.Errorf("format: unknown format %q, want text, yaml or cbor", c.Format))
	}

	return errors.Join(errs...)
}

// Level returns the slog level LogLevel names.
func (c *Config) Level() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return 0, fmt.Errorf("log_level: %w", err)
	}
	return level, nil
}
