package configloader

import (
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/spf13/cast"

	"github.com/yaklabco/markuplint/pkg/config"
)

// envVarPrefix is the prefix for all markuplint environment variables.
const envVarPrefix = "MARKUPLINT_"

type envFieldType int

const (
	envTypeString envFieldType = iota
	envTypeBool
	envTypeInt
	envTypeSlice
	envTypeRules
)

type envMapping struct {
	field       string
	typ         envFieldType
	description string
}

// envMappings maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envMappings = map[string]envMapping{
	"FIX":             {field: "fix", typ: envTypeBool, description: "Enable auto-fix: true or false"},
	"DRY_RUN":         {field: "dry_run", typ: envTypeBool, description: "Dry-run mode: true or false"},
	"JOBS":            {field: "jobs", typ: envTypeInt, description: "Number of parallel workers (0 = auto)"},
	"FORMAT":          {field: "format", typ: envTypeString, description: "Output format: text, json, sarif, diff or summary"},
	"COLOR":           {field: "color", typ: envTypeString, description: "Colour output: auto, always or never"},
	"MARKDOWN":        {field: "markdown", typ: envTypeBool, description: "Lint HTML blocks in Markdown files: true or false"},
	"EXTENSIONS":      {field: "extensions", typ: envTypeSlice, description: "Comma-separated list of HTML file extensions"},
	"IGNORE":          {field: "ignore", typ: envTypeSlice, description: "Comma-separated list of ignore patterns"},
	"BACKUPS_ENABLED": {field: "backups.enabled", typ: envTypeBool, description: "Enable backups when fixing: true or false"},
	"BACKUPS_MODE":    {field: "backups.mode", typ: envTypeString, description: "Backup mode: sidecar or none"},
	"NO_BACKUPS":      {field: "no_backups", typ: envTypeBool, description: "Disable backups: true or false"},
	"CACHE_ENABLED":   {field: "cache.enabled", typ: envTypeBool, description: "Enable the result cache: true or false"},
	"CACHE_DIR":       {field: "cache.dir", typ: envTypeString, description: "Result cache directory"},
	"RULES":           {field: "rules", typ: envTypeRules, description: "Semicolon-separated rule settings, e.g. attr-indent=warn,4"},
}

// LoadFromEnv applies environment variable overrides to the configuration.
// Environment variables are prefixed with MARKUPLINT_ (e.g., MARKUPLINT_JOBS).
func LoadFromEnv(cfg *config.Config) error {
	if cfg == nil {
		return nil
	}

	for envSuffix, mapping := range envMappings {
		envVar := envVarPrefix + envSuffix
		value := os.Getenv(envVar)
		if value == "" {
			continue
		}

		if err := applyEnvValue(cfg, mapping, value, envVar); err != nil {
			return err
		}
	}

	return nil
}

func applyEnvValue(cfg *config.Config, mapping envMapping, value, envVar string) error {
	switch mapping.typ {
	case envTypeString:
		return setStringField(cfg, mapping.field, value)
	case envTypeBool:
		b, err := cast.ToBoolE(value)
		if err != nil {
			return fmt.Errorf("invalid boolean for %s: %q (expected true/false/1/0)", envVar, value)
		}
		return setBoolField(cfg, mapping.field, b)
	case envTypeInt:
		i, err := cast.ToIntE(value)
		if err != nil {
			return fmt.Errorf("invalid integer for %s: %q", envVar, value)
		}
		cfg.Jobs = i
		return nil
	case envTypeSlice:
		return setSliceField(cfg, mapping.field, parseSliceValue(value))
	case envTypeRules:
		for _, entry := range strings.Split(value, ";") {
			if strings.TrimSpace(entry) == "" {
				continue
			}
			name, setting, err := ParseRuleFlag(entry)
			if err != nil {
				return fmt.Errorf("%s: %w", envVar, err)
			}
			if cfg.Rules == nil {
				cfg.Rules = make(map[string]config.RuleSetting)
			}
			cfg.Rules[name] = setting.Overlay(cfg.Rules[name])
		}
		return nil
	default:
		return fmt.Errorf("unknown field type for %s", envVar)
	}
}

// parseSliceValue parses a comma-separated string into a slice.
// Each element is trimmed of whitespace.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

func setStringField(cfg *config.Config, field, value string) error {
	switch field {
	case "format":
		cfg.Format = config.OutputFormat(value)
	case "color":
		cfg.Color = value
	case "backups.mode":
		cfg.Backups.Mode = value
	case "cache.dir":
		cfg.Cache.Dir = value
	default:
		return fmt.Errorf("unknown string field: %s", field)
	}
	return nil
}

func setBoolField(cfg *config.Config, field string, value bool) error {
	switch field {
	case "fix":
		cfg.Fix = value
	case "dry_run":
		cfg.DryRun = value
	case "markdown":
		cfg.Markdown = value
	case "backups.enabled":
		cfg.Backups.Enabled = value
	case "no_backups":
		cfg.NoBackups = value
	case "cache.enabled":
		cfg.Cache.Enabled = value
	default:
		return fmt.Errorf("unknown boolean field: %s", field)
	}
	return nil
}

func setSliceField(cfg *config.Config, field string, value []string) error {
	switch field {
	case "ignore":
		cfg.Ignore = value
	case "extensions":
		cfg.Extensions = value
	default:
		return fmt.Errorf("unknown slice field: %s", field)
	}
	return nil
}

// ParseRuleFlag parses "name=severity[,option...]" into a rule setting.
// Numeric and boolean options are converted; everything else stays a string.
func ParseRuleFlag(value string) (string, config.RuleSetting, error) {
	name, rest, ok := strings.Cut(value, "=")
	name = strings.TrimSpace(name)
	if !ok || name == "" || strings.TrimSpace(rest) == "" {
		return "", nil, fmt.Errorf("invalid rule setting %q (expected name=severity[,option...])", value)
	}

	parts := strings.Split(rest, ",")
	severity, err := config.ParseSeverity(parts[0])
	if err != nil {
		return "", nil, fmt.Errorf("rule %s: %w", name, err)
	}

	setting := config.Setting(severity)
	for _, part := range parts[1:] {
		setting = append(setting, coerceOption(strings.TrimSpace(part)))
	}
	return name, setting, nil
}

func coerceOption(value string) any {
	if i, err := cast.ToIntE(value); err == nil {
		return i
	}
	if value == "true" || value == "false" {
		return cast.ToBool(value)
	}
	return value
}

// EnvVar describes one supported environment variable.
type EnvVar struct {
	Name        string
	Description string
}

// ListEnvVars returns all supported environment variables sorted by name.
func ListEnvVars() []EnvVar {
	vars := make([]EnvVar, 0, len(envMappings))
	for suffix, mapping := range envMappings {
		vars = append(vars, EnvVar{Name: envVarPrefix + suffix, Description: mapping.description})
	}
	slices.SortFunc(vars, func(a, b EnvVar) int { return strings.Compare(a.Name, b.Name) })
	return vars
}
