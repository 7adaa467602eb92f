package reporter

import (
	"bufio"
	"context"
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/markuplint/internal/ui/pretty"
	"github.com/yaklabco/markuplint/pkg/analysis"
)

const (
	maxNameWidth = 48
	columnGap    = "  "
)

// SummaryRenderer prints per-rule and per-file issue tables.
type SummaryRenderer struct {
	opts   Options
	styles *pretty.Styles
}

// NewSummaryRenderer creates a new summary renderer.
func NewSummaryRenderer(opts Options) *SummaryRenderer {
	return &SummaryRenderer{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Render implements Renderer.
func (r *SummaryRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	totals := report.Totals
	if !totals.HasIssues() {
		fmt.Fprintln(bw, r.styles.Success.Render(
			fmt.Sprintf("No issues found in %d %s.", totals.Files, pluralWord(totals.Files, "file", "files"))))
		return nil
	}

	ruleRows := make([][]string, 0, len(report.ByRule))
	for _, rule := range report.ByRule {
		ruleRows = append(ruleRows, []string{
			rule.Rule,
			fmt.Sprint(rule.Issues),
			fmt.Sprint(rule.Errors),
			fmt.Sprint(rule.Warnings),
			fmt.Sprint(rule.Fixable),
			fmt.Sprint(rule.Files),
		})
	}
	r.writeTable(bw, []string{"RULE", "ISSUES", "ERRORS", "WARNINGS", "FIXABLE", "FILES"}, ruleRows)
	fmt.Fprintln(bw)

	fileRows := make([][]string, 0, len(report.ByFile))
	for _, file := range report.ByFile {
		fileRows = append(fileRows, []string{
			file.Path,
			fmt.Sprint(file.Issues),
			fmt.Sprint(file.Errors),
			fmt.Sprint(file.Warnings),
			fmt.Sprint(file.Rules),
		})
	}
	r.writeTable(bw, []string{"FILE", "ISSUES", "ERRORS", "WARNINGS", "RULES"}, fileRows)
	fmt.Fprintln(bw)

	line := fmt.Sprintf("%d %s (%d %s, %d %s) in %d of %d %s, %d fixable",
		totals.Issues, pluralWord(totals.Issues, "issue", "issues"),
		totals.Errors, pluralWord(totals.Errors, "error", "errors"),
		totals.Warnings, pluralWord(totals.Warnings, "warning", "warnings"),
		totals.FilesWithIssues, totals.Files, pluralWord(totals.Files, "file", "files"),
		totals.Fixable,
	)
	if totals.HasErrors() {
		fmt.Fprintln(bw, r.styles.Failure.Render(line))
	} else {
		fmt.Fprintln(bw, r.styles.Warning.Render(line))
	}

	return nil
}

// writeTable left-aligns the first column and right-aligns the counts.
func (r *SummaryRenderer) writeTable(bw *bufio.Writer, header []string, rows [][]string) {
	widths := make([]int, len(header))
	for i, h := range header {
		widths[i] = runewidth.StringWidth(h)
	}
	for _, row := range rows {
		row[0] = runewidth.Truncate(row[0], maxNameWidth, "...")
		for i, cell := range row {
			widths[i] = max(widths[i], runewidth.StringWidth(cell))
		}
	}

	fmt.Fprintln(bw, r.styles.TableHeader.Render(formatRow(header, widths)))

	sep := make([]string, len(widths))
	for i, w := range widths {
		sep[i] = strings.Repeat("-", w)
	}
	fmt.Fprintln(bw, r.styles.TableSeparator.Render(strings.Join(sep, columnGap)))

	for _, row := range rows {
		fmt.Fprintln(bw, formatRow(row, widths))
	}
}

func formatRow(cells []string, widths []int) string {
	out := make([]string, len(cells))
	for i, cell := range cells {
		if i == 0 {
			out[i] = runewidth.FillRight(cell, widths[i])
		} else {
			out[i] = runewidth.FillLeft(cell, widths[i])
		}
	}
	return strings.TrimRight(strings.Join(out, columnGap), " ")
}
