// Package config defines the configuration model for markuplint.
// These types are plain data; discovery and layering live in
// internal/configloader.
package config

import (
	"fmt"
	"strings"
)

// Severity is the first element of every rule setting.
type Severity string

const (
	SeverityOff   Severity = "off"
	SeverityWarn  Severity = "warn"
	SeverityError Severity = "error"
)

// ParseSeverity accepts "off", "warn" and "error" in any case, plus the
// aliases "warning" and the numeric forms 0, 1 and 2.
func ParseSeverity(value string) (Severity, error) {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "off", "0":
		return SeverityOff, nil
	case "warn", "warning", "1":
		return SeverityWarn, nil
	case "error", "2":
		return SeverityError, nil
	default:
		return "", fmt.Errorf("invalid severity %q (expected off, warn or error)", value)
	}
}

// IsValid reports whether s is one of the canonical severities.
func (s Severity) IsValid() bool {
	switch s {
	case SeverityOff, SeverityWarn, SeverityError:
		return true
	default:
		return false
	}
}

// Enabled reports whether diagnostics of this severity are collected.
func (s Severity) Enabled() bool {
	return s == SeverityWarn || s == SeverityError
}

// BackupsConfig controls backup behavior when fixing files.
type BackupsConfig struct {
	Enabled bool   `yaml:"enabled" toml:"enabled"`
	Mode    string `yaml:"mode"    toml:"mode"` // "sidecar" or "none"
}

// CacheConfig controls the on-disk result cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"       toml:"enabled"`
	Dir     string `yaml:"dir,omitempty" toml:"dir,omitempty"`
}

// Config is the root configuration structure.
type Config struct {
	// Rules maps a rule name to its setting list. The first element is
	// the severity; the rest are rule options.
	Rules map[string]RuleSetting `yaml:"rules" toml:"rules"`

	// Ignore contains glob patterns for files to skip.
	Ignore []string `yaml:"ignore,omitempty" toml:"ignore,omitempty"`

	// Extensions lists the file extensions treated as HTML.
	Extensions []string `yaml:"extensions,omitempty" toml:"extensions,omitempty"`

	// Markdown enables linting of raw HTML blocks inside Markdown files.
	Markdown bool `yaml:"markdown" toml:"markdown"`

	// Backups configures backup behavior when fixing.
	Backups BackupsConfig `yaml:"backups" toml:"backups"`

	// Cache configures the lint result cache.
	Cache CacheConfig `yaml:"cache" toml:"cache"`

	// CLI-level options (not persisted to config files).

	// Fix enables auto-fixing of issues.
	Fix bool `yaml:"-" toml:"-"`

	// DryRun shows what would be fixed without making changes.
	DryRun bool `yaml:"-" toml:"-"`

	// Format specifies the output format.
	Format OutputFormat `yaml:"-" toml:"-"`

	// Jobs specifies the number of parallel workers (0 means GOMAXPROCS).
	Jobs int `yaml:"-" toml:"-"`

	// Color is "auto", "always" or "never".
	Color string `yaml:"-" toml:"-"`

	// NoBackups disables backup creation when fixing.
	NoBackups bool `yaml:"-" toml:"-"`
}

// DefaultExtensions are the file extensions linted as HTML.
func DefaultExtensions() []string {
	return []string{".html", ".htm", ".xhtml"}
}

// NewConfig returns a Config with defaults. An empty Rules map means
// every registered rule runs with its own defaults.
func NewConfig() *Config {
	return &Config{
		Rules:      make(map[string]RuleSetting),
		Extensions: DefaultExtensions(),
		Backups: BackupsConfig{
			Enabled: true,
			Mode:    "sidecar",
		},
		Format: FormatText,
		Color:  "auto",
	}
}

// Clone returns a deep copy of the configuration.
func (c *Config) Clone() *Config {
	if c == nil {
		return nil
	}

	clone := *c
	clone.Ignore = cloneStrings(c.Ignore)
	clone.Extensions = cloneStrings(c.Extensions)

	if c.Rules != nil {
		clone.Rules = make(map[string]RuleSetting, len(c.Rules))
		for name, setting := range c.Rules {
			clone.Rules[name] = setting.Clone()
		}
	}

	return &clone
}

func cloneStrings(values []string) []string {
	if values == nil {
		return nil
	}
	out := make([]string, len(values))
	copy(out, values)
	return out
}
