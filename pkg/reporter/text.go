package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/yaklabco/markuplint/internal/ui/pretty"
	"github.com/yaklabco/markuplint/pkg/analysis"
	"github.com/yaklabco/markuplint/pkg/lint"
	"github.com/yaklabco/markuplint/pkg/runner"
)

// TextReporter formats results as styled terminal output with snippets.
type TextReporter struct {
	opts   Options
	styles *pretty.Styles
	bw     *bufio.Writer
}

// NewTextReporter creates a new text reporter.
func NewTextReporter(opts Options) *TextReporter {
	return &TextReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
		bw:     bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter.
func (r *TextReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	var total int
	for _, file := range result.Files {
		path := analysis.DisplayPath(file.Path, r.opts.WorkingDir)

		switch {
		case file.Error != nil:
			fmt.Fprintf(r.bw, "%s: %s\n",
				r.styles.FilePath.Render(path),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
		case file.Result != nil && file.Result.FileResult != nil:
			total += r.writeFile(path, file.Result)
		}
	}

	if r.opts.ShowSummary {
		fmt.Fprint(r.bw, r.styles.FormatSummaryOneLine(result.Stats))
	}

	return total, nil
}

// writeFile prints one file's diagnostics followed by notes on failed
// rules and abandoned fixes. Files with nothing to say are omitted.
func (r *TextReporter) writeFile(path string, pr *lint.PipelineResult) int {
	diagnostics := pr.Diagnostics
	skipped := pr.Outcome == lint.OutcomeSkipped
	if len(diagnostics) == 0 && len(pr.RuleErrors) == 0 && !skipped {
		return 0
	}

	fmt.Fprintln(r.bw, r.styles.FormatFileHeader(path, len(diagnostics)))
	for i := range diagnostics {
		fmt.Fprint(r.bw, r.styles.FormatDiagnostic(&diagnostics[i], pr.Document, r.opts.ShowContext))
	}
	for _, ruleErr := range pr.RuleErrors {
		fmt.Fprintf(r.bw, "  %s\n", r.styles.Failure.Render(ruleErr.Error()))
	}
	if skipped {
		fmt.Fprintf(r.bw, "  %s\n", r.styles.Warning.Render("fixes not applied: "+pr.Reason))
	}
	fmt.Fprintln(r.bw)

	return len(diagnostics)
}
