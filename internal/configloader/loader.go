// Package configloader resolves the effective markuplint configuration
// from defaults, config files, MARKUPLINT_* variables and flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/lint"
)

// LoadOptions selects which layers Load reads.
type LoadOptions struct {
	// WorkingDir anchors the project config search. Empty means os.Getwd.
	WorkingDir string

	// ExplicitPath comes from --config and replaces the project layer.
	ExplicitPath string

	// NoConfig skips discovery. ExplicitPath is honored regardless.
	NoConfig bool

	IgnoreUserConfig bool
	IgnoreEnv        bool

	// CLIConfig is the flag layer, merged last.
	CLIConfig *config.Config

	// Registry knows the valid rule names; nil means lint.DefaultRegistry.
	Registry *lint.Registry
}

// LoadResult is the merged configuration plus where it came from.
type LoadResult struct {
	Config *config.Config
	Paths  *ConfigPaths

	// LoadedFrom lists the files read, lowest precedence first.
	LoadedFrom []string

	// Warnings are validation findings that do not stop the run.
	Warnings []string
}

// Load merges, from lowest to highest precedence: defaults, the user
// config, the project config (or the --config file instead), MARKUPLINT_*
// variables and CLI flags. Each file layer is validated on its own so
// errors name the offending file.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	registry := opts.Registry
	if registry == nil {
		registry = lint.DefaultRegistry
	}

	workDir := opts.WorkingDir
	if workDir == "" {
		var err error
		workDir, err = os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
	}

	result := &LoadResult{Paths: &ConfigPaths{}}

	if !opts.NoConfig {
		paths, err := DiscoverPaths(ctx, workDir)
		if err != nil {
			return nil, fmt.Errorf("discover paths: %w", err)
		}
		result.Paths = paths
	}
	result.Paths.Explicit = opts.ExplicitPath

	layers := []struct {
		path string
		skip bool
	}{
		{path: result.Paths.User, skip: opts.NoConfig || opts.IgnoreUserConfig},
		{path: result.Paths.Project, skip: opts.NoConfig || opts.ExplicitPath != ""},
		{path: opts.ExplicitPath},
	}

	cfg := config.NewConfig()
	for _, layer := range layers {
		if layer.skip || layer.path == "" {
			continue
		}

		fileCfg, err := LoadFile(layer.path)
		if err != nil {
			return nil, err
		}

		validation := ValidateWithFile(fileCfg, registry, layer.path)
		if !validation.Valid() {
			return nil, &validation.Errors[0]
		}

		cfg = merge(cfg, fileCfg)
		result.LoadedFrom = append(result.LoadedFrom, layer.path)
	}

	if !opts.IgnoreEnv {
		if err := LoadFromEnv(cfg); err != nil {
			return nil, fmt.Errorf("load environment: %w", err)
		}
	}

	if opts.CLIConfig != nil {
		cfg = merge(cfg, opts.CLIConfig)
	}

	validation := Validate(cfg, registry)
	if !validation.Valid() {
		return nil, &validation.Errors[0]
	}
	result.addWarnings(validation)

	if format, err := config.ParseOutputFormat(string(cfg.Format)); err == nil {
		cfg.Format = format
	}

	result.Config = cfg
	return result, nil
}

func (r *LoadResult) addWarnings(validation *ValidationResult) {
	for _, w := range validation.Warnings {
		r.Warnings = append(r.Warnings, w.Error())
	}
}

// LoadFile reads one config file. The format follows the file extension.
func LoadFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}

	cfg, err := config.Decode(config.FileFormatFor(path), content)
	if err != nil {
		return nil, &ValidationError{FilePath: path, Message: err.Error(), Err: err}
	}

	return cfg, nil
}
