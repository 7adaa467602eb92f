package configloader

import (
	"fmt"
	"path"
	"slices"
	"strings"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/lint"
)

// ValidationError represents a configuration validation error.
type ValidationError struct {
	// Field is the path to the invalid field (e.g., "rules.attr-indent").
	Field string

	// Value is the invalid value.
	Value any

	// Message describes the validation error.
	Message string

	// FilePath is the config file containing the error (if known).
	FilePath string

	// Err is the underlying cause, if any.
	Err error
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	var parts []string
	if e.FilePath != "" {
		parts = append(parts, e.FilePath)
	}
	if e.Field != "" {
		parts = append(parts, e.Field)
	}
	parts = append(parts, e.Message)
	return strings.Join(parts, ": ")
}

// Unwrap returns the underlying cause.
func (e *ValidationError) Unwrap() error {
	return e.Err
}

// ValidationResult contains all validation findings.
type ValidationResult struct {
	// Errors are validation failures that prevent loading.
	Errors []ValidationError

	// Warnings are non-fatal issues.
	Warnings []ValidationError
}

// Valid returns true if there are no errors.
func (r *ValidationResult) Valid() bool {
	return len(r.Errors) == 0
}

// HasWarnings returns true if there are any warnings.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings) > 0
}

// AllMessages returns all error and warning messages combined.
func (r *ValidationResult) AllMessages() []string {
	messages := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		messages = append(messages, "error: "+e.Error())
	}
	for _, w := range r.Warnings {
		messages = append(messages, "warning: "+w.Error())
	}
	return messages
}

// knownColors lists valid color modes.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownColors = []string{"auto", "always", "never"}

// knownBackupModes lists valid backup mode values.
//
//nolint:gochecknoglobals // Read-only lookup table.
var knownBackupModes = []string{"sidecar", "none"}

// Validate checks a configuration against the rules in registry.
func Validate(cfg *config.Config, registry *lint.Registry) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	if cfg.Format != "" {
		if _, err := config.ParseOutputFormat(string(cfg.Format)); err != nil {
			result.addError("format", cfg.Format, err.Error(), err)
		}
	}

	if cfg.Color != "" && !slices.Contains(knownColors, cfg.Color) {
		result.addError("color", cfg.Color,
			fmt.Sprintf("invalid color mode %q; must be one of: %s", cfg.Color, strings.Join(knownColors, ", ")), nil)
	}

	if cfg.Jobs < 0 {
		result.addError("jobs", cfg.Jobs, "jobs must be >= 0 (0 means auto)", nil)
	}

	if cfg.Backups.Mode != "" && !slices.Contains(knownBackupModes, cfg.Backups.Mode) {
		result.addError("backups.mode", cfg.Backups.Mode,
			fmt.Sprintf("invalid backup mode %q; must be one of: %s",
				cfg.Backups.Mode, strings.Join(knownBackupModes, ", ")), nil)
	}

	validateRules(cfg, registry, result)
	validateIgnorePatterns(cfg, result)
	validateExtensions(cfg, result)

	return result
}

// ValidateWithFile validates configuration and includes file path in findings.
func ValidateWithFile(cfg *config.Config, registry *lint.Registry, filePath string) *ValidationResult {
	result := Validate(cfg, registry)
	for i := range result.Errors {
		result.Errors[i].FilePath = filePath
	}
	for i := range result.Warnings {
		result.Warnings[i].FilePath = filePath
	}
	return result
}

// validateRules reports unknown rules and bad severities in name order.
func validateRules(cfg *config.Config, registry *lint.Registry, result *ValidationResult) {
	names := make([]string, 0, len(cfg.Rules))
	for name := range cfg.Rules {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		field := "rules." + name
		if _, ok := registry.Get(name); !ok {
			err := fmt.Errorf("%w: %s", lint.ErrUnknownRule, name)
			result.addError(field, name, err.Error(), err)
			continue
		}

		setting := cfg.Rules[name]
		if _, err := setting.Severity(); err != nil {
			result.addError(field, []any(setting), err.Error(), err)
		}
	}
}

func validateIgnorePatterns(cfg *config.Config, result *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := path.Match(pattern, ""); err != nil {
			result.addError(fmt.Sprintf("ignore[%d]", i), pattern,
				fmt.Sprintf("invalid glob pattern: %v", err), err)
		}
	}
}

func validateExtensions(cfg *config.Config, result *ValidationResult) {
	for i, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			result.Warnings = append(result.Warnings, ValidationError{
				Field:   fmt.Sprintf("extensions[%d]", i),
				Value:   ext,
				Message: fmt.Sprintf("extension %q does not start with a dot; it will never match", ext),
			})
		}
	}
}

func (r *ValidationResult) addError(field string, value any, message string, err error) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: message, Err: err})
}
