package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/markuplint/pkg/analysis"
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/lint"
)

// bufWriterSize is the buffer size for buffered output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures reporter behavior.
type Options struct {
	// Writer is the destination for output (typically os.Stdout).
	Writer io.Writer

	// Format specifies the output format.
	Format config.OutputFormat

	// Color controls colorized output: "auto", "always" or "never".
	Color string

	// ShowContext renders source snippets under text diagnostics.
	ShowContext bool

	// ShowSummary displays aggregate statistics after results.
	ShowSummary bool

	// Compact uses minified output for json and sarif.
	Compact bool

	// SortBy orders the summary tables.
	SortBy analysis.SortField

	// WorkingDir is the directory to make paths relative to.
	// If empty, paths are kept as-is (typically absolute).
	WorkingDir string

	// ToolVersion is reported in json and sarif output.
	ToolVersion string

	// Rules describes the registered rules for sarif output.
	Rules []*lint.Rule
}

// DefaultOptions returns Options with sensible defaults.
func DefaultOptions() Options {
	return Options{
		Writer:      os.Stdout,
		Format:      config.FormatText,
		Color:       "auto",
		ShowContext: true,
		ShowSummary: true,
		SortBy:      analysis.SortByCount,
		ToolVersion: "dev",
	}
}

func (o Options) analysisOptions() analysis.Options {
	sortBy := o.SortBy
	if !sortBy.IsValid() {
		sortBy = analysis.SortByCount
	}
	return analysis.Options{
		IncludeDiagnostics: true,
		SortBy:             sortBy,
		SortDesc:           true,
		WorkingDir:         o.WorkingDir,
	}
}
