// Package reporter writes lint results in the supported output formats.
package reporter

import (
	"context"
	"fmt"

	"github.com/yaklabco/markuplint/pkg/analysis"
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/runner"
)

// Reporter writes a run's results and returns how many issues it printed.
type Reporter interface {
	Report(ctx context.Context, result *runner.Result) (int, error)
}

// Renderer writes an already aggregated report. Formats that only need
// totals and per-file rows implement this instead of Reporter.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}

var _ Reporter = (*analyzed)(nil)

// analyzed runs analysis.Analyze before handing off to a Renderer.
type analyzed struct {
	renderer Renderer
	opts     analysis.Options
}

func (a *analyzed) Report(ctx context.Context, result *runner.Result) (int, error) {
	report := analysis.Analyze(result, a.opts)
	if err := a.renderer.Render(ctx, report); err != nil {
		return 0, fmt.Errorf("render: %w", err)
	}
	return report.Totals.Issues, nil
}

func withAnalysis(renderer Renderer, opts Options) Reporter {
	return &analyzed{renderer: renderer, opts: opts.analysisOptions()}
}

//nolint:gochecknoglobals // Read-only lookup table.
var constructors = map[config.OutputFormat]func(Options) Reporter{
	config.FormatText:    func(o Options) Reporter { return NewTextReporter(o) },
	config.FormatSARIF:   func(o Options) Reporter { return NewSARIFReporter(o) },
	config.FormatDiff:    func(o Options) Reporter { return NewDiffReporter(o) },
	config.FormatJSON:    func(o Options) Reporter { return withAnalysis(NewJSONRenderer(o), o) },
	config.FormatSummary: func(o Options) Reporter { return withAnalysis(NewSummaryRenderer(o), o) },
}

// New returns the Reporter for opts.Format, text when unset. A nil
// Writer means stdout.
func New(opts Options) (Reporter, error) {
	defaults := DefaultOptions()
	if opts.Writer == nil {
		opts.Writer = defaults.Writer
	}
	if opts.Format == "" {
		opts.Format = defaults.Format
	}

	build, ok := constructors[opts.Format]
	if !ok {
		return nil, fmt.Errorf("unsupported format: %s", opts.Format)
	}
	return build(opts), nil
}
