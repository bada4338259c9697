package lint

import (
	"fmt"
	"strings"
)

// Config controls which rules are enabled and their severity.
type Config struct {
	// DisabledRules contains rule IDs to skip
	DisabledRules map[string]bool

	// SeverityOverrides changes the default severity of rules
	SeverityOverrides map[string]Severity

	// RuleOptions holds per-rule settings, keyed by rule ID
	RuleOptions map[string]map[string]any
}

// NewConfig creates a default configuration with all rules enabled.
func NewConfig() *Config {
	return &Config{
		DisabledRules:     make(map[string]bool),
		SeverityOverrides: make(map[string]Severity),
		RuleOptions:       make(map[string]map[string]any),
	}
}

// ConfigFrom builds a configuration from plain values, as loaded from a
// config file. Rule IDs are matched case-insensitively.
func ConfigFrom(disabled []string, severities map[string]string, options map[string]map[string]any) (*Config, error) {
	c := NewConfig()
	for _, id := range disabled {
		c.Disable(id)
	}
	for id, name := range severities {
		sev, ok := ParseSeverity(name)
		if !ok {
			return nil, fmt.Errorf("rule %s: invalid severity %q", strings.ToUpper(id), name)
		}
		c.SetSeverity(id, sev)
	}
	for id, opts := range options {
		c.SetOptions(id, opts)
	}
	return c, nil
}

// IsDisabled returns true if the rule should be skipped.
func (c *Config) IsDisabled(ruleID string) bool {
	if c == nil {
		return false
	}
	return c.DisabledRules[ruleID]
}

// GetSeverity returns the severity for a rule, applying any override.
func (c *Config) GetSeverity(ruleID string, defaultSeverity Severity) Severity {
	if c != nil {
		if sev, ok := c.SeverityOverrides[ruleID]; ok {
			return sev
		}
	}
	return defaultSeverity
}

// GetRuleOptions returns the options configured for a rule, or nil.
func (c *Config) GetRuleOptions(ruleID string) map[string]any {
	if c == nil {
		return nil
	}
	return c.RuleOptions[ruleID]
}

// Disable disables a rule by ID.
func (c *Config) Disable(ruleID string) *Config {
	c.DisabledRules[strings.ToUpper(strings.TrimSpace(ruleID))] = true
	return c
}

// SetSeverity overrides the severity for a rule.
func (c *Config) SetSeverity(ruleID string, severity Severity) *Config {
	c.SeverityOverrides[strings.ToUpper(ruleID)] = severity
	return c
}

// SetOptions replaces the options of a rule.
func (c *Config) SetOptions(ruleID string, opts map[string]any) *Config {
	c.RuleOptions[strings.ToUpper(ruleID)] = opts
	return c
}
