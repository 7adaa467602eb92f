package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/markuplint/internal/configloader"
	"github.com/yaklabco/markuplint/internal/logging"
	"github.com/yaklabco/markuplint/pkg/analysis"
	"github.com/yaklabco/markuplint/pkg/cache"
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/lint"
	_ "github.com/yaklabco/markuplint/pkg/lint/rules" // Register built-in rules
	"github.com/yaklabco/markuplint/pkg/reporter"
	"github.com/yaklabco/markuplint/pkg/runner"
)

type lintFlags struct {
	format     string
	rules      []string
	ignore     []string
	extensions []string
	sortBy     string
	strict     bool
	noContext  bool
	compact    bool
	noCache    bool
}

func newLintCommand(global *globalOptions, info BuildInfo) *cobra.Command {
	var cfg config.Config
	flags := &lintFlags{}

	cmd := &cobra.Command{
		Use:   "lint [paths...]",
		Short: "Lint HTML files",
		Long:  lintLongDescription,
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, global, info, &cfg, flags)
		},
	}

	addLintFlags(cmd, &cfg, flags)

	return cmd
}

const lintLongDescription = `Lint HTML files for structural and style issues.

By default, lints all .html, .htm and .xhtml files in the current directory
and subdirectories. Specify paths to lint specific files or directories.

Examples:
  markuplint lint                          # Lint current directory
  markuplint lint site/                    # Lint a directory
  markuplint lint index.html               # Lint a single file
  markuplint lint --fix                    # Lint and fix issues in place
  markuplint lint --dry-run                # Show fixes as a diff
  markuplint lint --rule attr-indent=warn,4
  markuplint lint --markdown docs/         # Lint HTML blocks in Markdown
  markuplint lint --format sarif           # SARIF for code scanning`

func runLint(
	cmd *cobra.Command,
	args []string,
	global *globalOptions,
	info BuildInfo,
	cliCfg *config.Config,
	flags *lintFlags,
) error {
	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	if err := applyLintFlags(cmd, global, cliCfg, flags); err != nil {
		return err
	}

	workDir, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	loadResult, err := configloader.Load(ctx, configloader.LoadOptions{
		WorkingDir:   workDir,
		ExplicitPath: global.configPath,
		NoConfig:     global.noConfig,
		CLIConfig:    cliCfg,
		Registry:     lint.DefaultRegistry,
	})
	if err != nil {
		return fmt.Errorf("load configuration: %w", err)
	}

	cfg := loadResult.Config
	for _, warning := range loadResult.Warnings {
		logger.Warn(warning)
	}
	if len(loadResult.LoadedFrom) > 0 {
		logger.Debug("loaded configuration", logging.FieldFiles, loadResult.LoadedFrom)
	}

	// A dry run is only useful as a diff unless a format was asked for.
	if cfg.DryRun && !cmd.Flags().Changed("format") && os.Getenv("MARKUPLINT_FORMAT") == "" {
		cfg.Format = config.FormatDiff
	}

	logger.Debug("configuration resolved",
		logging.FieldFix, cfg.Fix,
		logging.FieldDryRun, cfg.DryRun,
		logging.FieldJobs, cfg.Jobs,
		logging.FieldFormat, cfg.Format,
		logging.FieldRules, len(cfg.Rules),
	)

	lintRunner := runner.NewForRegistry(lint.DefaultRegistry)
	lintRunner.Version = info.Version
	if cfg.Cache.Enabled && !flags.noCache {
		store, err := cache.Open(cfg.Cache.Dir)
		if err != nil {
			logger.Warn("result cache disabled", logging.FieldError, err)
		} else {
			lintRunner.Cache = store
		}
	}

	runOpts := runner.OptionsFromConfig(cfg, args)
	runOpts.WorkingDir = workDir

	logger.Debug("starting lint run",
		logging.FieldPaths, runOpts.Paths,
		logging.FieldWorkingDir, runOpts.WorkingDir,
	)

	result, err := lintRunner.Run(ctx, runOpts)
	if err != nil {
		return fmt.Errorf("lint run failed: %w", err)
	}

	rep, err := reporter.New(reporter.Options{
		Writer:      cmd.OutOrStdout(),
		Format:      cfg.Format,
		Color:       cfg.Color,
		ShowContext: !flags.noContext,
		ShowSummary: true,
		Compact:     flags.compact,
		SortBy:      analysis.SortField(flags.sortBy),
		WorkingDir:  workDir,
		ToolVersion: info.Version,
		Rules:       lint.DefaultRegistry.Rules(),
	})
	if err != nil {
		return fmt.Errorf("create reporter: %w", err)
	}

	if _, err := rep.Report(ctx, result); err != nil {
		return fmt.Errorf("report results: %w", err)
	}

	logger.Debug("lint run complete",
		logging.FieldFilesLinted, result.Stats.Linted,
		logging.FieldDiagnostics, result.Stats.Diagnostics,
		logging.FieldFilesRewritten, result.Stats.Rewritten,
	)

	for _, file := range result.Files {
		switch {
		case file.Error != nil:
			logger.Error("file failed", logging.FieldFile, file.Path, logging.FieldError, file.Error)
		case file.Result != nil && file.Result.Outcome == lint.OutcomeSkipped:
			logger.Warn("fixes not applied", logging.FieldFile, file.Path, logging.FieldReason, file.Result.Reason)
		}
	}

	return errorForExitCode(ExitCodeFromResult(result, flags.strict))
}

// applyLintFlags copies explicitly set flags into the CLI config layer.
func applyLintFlags(cmd *cobra.Command, global *globalOptions, cfg *config.Config, flags *lintFlags) error {
	changed := cmd.Flags().Changed

	if changed("format") {
		format, err := config.ParseOutputFormat(flags.format)
		if err != nil {
			return fmt.Errorf("invalid --format: %w", err)
		}
		cfg.Format = format
	}
	if changed("color") {
		cfg.Color = global.color
	}
	if changed("ignore") {
		cfg.Ignore = flags.ignore
	}
	if changed("ext") {
		cfg.Extensions = flags.extensions
	}
	if changed("sort") {
		field, err := analysis.ParseSortField(flags.sortBy)
		if err != nil {
			return fmt.Errorf("invalid --sort: %w", err)
		}
		flags.sortBy = string(field)
	}

	if len(flags.rules) > 0 {
		cfg.Rules = make(map[string]config.RuleSetting, len(flags.rules))
		for _, value := range flags.rules {
			name, setting, err := configloader.ParseRuleFlag(value)
			if err != nil {
				return fmt.Errorf("invalid --rule: %w", err)
			}
			cfg.Rules[name] = setting.Overlay(cfg.Rules[name])
		}
	}

	return nil
}

func addLintFlags(cmd *cobra.Command, cfg *config.Config, flags *lintFlags) {
	cmd.Flags().BoolVar(&cfg.Fix, "fix", false, "automatically fix issues")
	cmd.Flags().BoolVar(&cfg.DryRun, "dry-run", false, "show fixes as a diff without applying them")
	cmd.Flags().StringVarP(&flags.format, "format", "f", "text", "output format: text, json, sarif, diff, summary")
	cmd.Flags().IntVarP(&cfg.Jobs, "jobs", "j", 0, "number of parallel workers (0 = auto)")
	cmd.Flags().StringArrayVar(&flags.rules, "rule", nil, "rule setting name=severity[,option...] (repeatable)")
	cmd.Flags().StringSliceVar(&flags.ignore, "ignore", nil, "glob patterns to ignore")
	cmd.Flags().StringSliceVar(&flags.extensions, "ext", nil, "file extensions to lint as HTML")
	cmd.Flags().BoolVar(&cfg.Markdown, "markdown", false, "lint raw HTML blocks in Markdown files")
	cmd.Flags().BoolVar(&cfg.NoBackups, "no-backups", false, "disable backup creation when fixing")
	cmd.Flags().BoolVar(&flags.noCache, "no-cache", false, "bypass the result cache")
	cmd.Flags().BoolVar(&flags.strict, "strict", false, "treat warnings as failures for the exit code")
	cmd.Flags().BoolVar(&flags.noContext, "no-context", false, "hide source excerpts in text output")
	cmd.Flags().BoolVar(&flags.compact, "compact", false, "minify json and sarif output")
	cmd.Flags().StringVar(&flags.sortBy, "sort", string(analysis.SortByCount),
		"order of summary tables: count, alpha, severity")
}
