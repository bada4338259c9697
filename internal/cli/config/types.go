// Package config provides configuration management for the sqlseg CLI.
//
// Values are layered, lowest precedence first: built-in defaults, the
// YAML config file, SQLSEG_* environment variables, then command-line
// flags that were explicitly set.
package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/leapstack-labs/sqlseg/pkg/grammar"
)

// Config holds all CLI configuration options.
type Config struct {
	Dialect  string     `koanf:"dialect"`
	MaxDepth int        `koanf:"max_depth"`
	Output   string     `koanf:"output"`
	NoColor  bool       `koanf:"nocolor"`
	Verbose  bool       `koanf:"verbose"`
	LogLevel string     `koanf:"log_level"`
	Lint     LintConfig `koanf:"lint"`
}

// LintConfig selects and tunes lint rules. Keys of Severity and Rules are
// rule IDs.
type LintConfig struct {
	Disabled []string                  `koanf:"disabled"`
	Severity map[string]string         `koanf:"severity"`
	Rules    map[string]map[string]any `koanf:"rules"`
}

// Default configuration values.
const (
	DefaultDialect  = "ansi"
	DefaultMaxDepth = grammar.DefaultMaxDepth
	DefaultOutput   = "text"
	DefaultLogLevel = "warn"
)

// Default returns the configuration used when nothing is loaded.
func Default() *Config {
	return &Config{
		Dialect:  DefaultDialect,
		MaxDepth: DefaultMaxDepth,
		Output:   DefaultOutput,
		LogLevel: DefaultLogLevel,
	}
}

// Validate checks values that decoding alone cannot.
func (c *Config) Validate() error {
	switch strings.ToLower(c.Output) {
	case "text", "yaml", "json":
	default:
		return fmt.Errorf("output must be one of text, yaml, json: got %q", c.Output)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative: got %d", c.MaxDepth)
	}
	if _, err := c.Level(); err != nil {
		return err
	}
	return nil
}

// Level returns the slog level for LogLevel. Verbose lowers it to debug.
func (c *Config) Level() (slog.Level, error) {
	if c.Verbose {
		return slog.LevelDebug, nil
	}
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(c.LogLevel)); err != nil {
		return 0, fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	return lvl, nil
}
