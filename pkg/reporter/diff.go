package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/yaklabco/markuplint/internal/ui/pretty"
	"github.com/yaklabco/markuplint/pkg/analysis"
	"github.com/yaklabco/markuplint/pkg/fix"
	"github.com/yaklabco/markuplint/pkg/runner"
)

// DiffReporter prints the unified diffs produced by dry-run fixing.
type DiffReporter struct {
	opts   Options
	styles *pretty.Styles
}

// NewDiffReporter creates a new diff reporter.
func NewDiffReporter(opts Options) *DiffReporter {
	return &DiffReporter{
		opts:   opts,
		styles: pretty.NewStyles(pretty.IsColorEnabled(opts.Color, opts.Writer)),
	}
}

// Report implements Reporter. It returns the number of files with changes.
func (r *DiffReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil {
		return 0, nil
	}

	var files, additions, deletions int
	for _, file := range result.Files {
		if file.Error != nil {
			fmt.Fprintf(bw, "%s: %s\n",
				r.styles.FilePath.Render(analysis.DisplayPath(file.Path, r.opts.WorkingDir)),
				r.styles.Error.Render(fmt.Sprintf("error: %v", file.Error)),
			)
			continue
		}
		if file.Result == nil || !file.Result.Diff.HasChanges() {
			continue
		}

		diff := file.Result.Diff
		files++
		additions += diff.Additions
		deletions += diff.Deletions
		r.writeDiff(bw, file.Path, diff)
	}

	if files > 0 && r.opts.ShowSummary {
		parts := []string{fmt.Sprintf("%d %s changed", files, pluralWord(files, "file", "files"))}
		if additions > 0 {
			parts = append(parts, r.styles.DiffAdd.Render(
				fmt.Sprintf("%d %s(+)", additions, pluralWord(additions, "insertion", "insertions"))))
		}
		if deletions > 0 {
			parts = append(parts, r.styles.DiffRemove.Render(
				fmt.Sprintf("%d %s(-)", deletions, pluralWord(deletions, "deletion", "deletions"))))
		}
		fmt.Fprintln(bw, strings.Join(parts, ", "))
	}

	return files, nil
}

func (r *DiffReporter) writeDiff(bw *bufio.Writer, path string, diff *fix.Diff) {
	name := filepath.ToSlash(analysis.DisplayPath(path, r.opts.WorkingDir))

	fmt.Fprintln(bw, r.styles.DiffHeader.Render(fmt.Sprintf("diff --git a/%s b/%s", name, name)))
	fmt.Fprintln(bw, r.styles.DiffRemove.Render("--- a/"+name))
	fmt.Fprintln(bw, r.styles.DiffAdd.Render("+++ b/"+name))

	for _, hunk := range diff.Hunks {
		fmt.Fprintln(bw, r.styles.DiffHunk.Render(hunk.Header()))
		for _, line := range hunk.Lines {
			switch line.Kind {
			case fix.LineAdded:
				fmt.Fprintln(bw, r.styles.DiffAdd.Render("+"+line.Text))
			case fix.LineRemoved:
				fmt.Fprintln(bw, r.styles.DiffRemove.Render("-"+line.Text))
			default:
				fmt.Fprintln(bw, r.styles.DiffContext.Render(" "+line.Text))
			}
		}
	}

	fmt.Fprintln(bw)
}

func pluralWord(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
