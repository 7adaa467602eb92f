// Package cli provides the Cobra command structure for markuplint.
package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/yaklabco/markuplint/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// globalOptions are the persistent flags shared by every subcommand.
type globalOptions struct {
	configPath string
	noConfig   bool
	color      string
	verbose    bool
	quiet      bool
}

// NewRootCommand creates the root markuplint command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	global := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:   "markuplint",
		Short: "A fast, self-fixing HTML markup linter",
		Long: `markuplint checks HTML documents for structural and style problems.

It parses markup with a fault-tolerant scanner that keeps every byte of the
source, runs a set of configurable rules over the tree and reports findings
with source excerpts. Fixable findings can be written back in place, shown
as a diff first, or left alone. Raw HTML blocks inside Markdown files can be
linted too.`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			ctx := cmd.Context()
			if ctx == nil {
				ctx = context.Background()
			}
			logger := logging.NewWithWriter(cmd.ErrOrStderr(), logging.LevelFor(global.verbose, global.quiet))
			cmd.SetContext(logging.WithLogger(ctx, logger))
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&global.configPath, "config", "c", "", "path to config file")
	flags.BoolVar(&global.noConfig, "no-config", false, "ignore user and project config files")
	flags.StringVar(&global.color, "color", "auto", "colorize output: auto, always, never")
	flags.BoolVarP(&global.verbose, "verbose", "v", false, "enable debug logging")
	flags.BoolVarP(&global.quiet, "quiet", "q", false, "only log errors")

	rootCmd.AddCommand(newLintCommand(global, info))
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newCacheCommand(global))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}
