package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/markuplint/pkg/runner"
)

// FormatSummaryOneLine formats run statistics as a single line, e.g.
// "3 issues (2 errors, 1 warning) in 2 files, 1 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	var tail []string
	if stats.Fixed > 0 {
		tail = append(tail, s.Success.Render(fmt.Sprintf("%d fixed in %s",
			stats.Fixed, plural(stats.Rewritten, "file", "files"))))
	}
	if stats.Skipped > 0 {
		tail = append(tail, s.Warning.Render(plural(stats.Skipped, "file", "files")+" not fixed"))
	}
	if stats.Failed > 0 {
		tail = append(tail, s.Failure.Render(plural(stats.Failed, "file", "files")+" failed"))
	}

	if stats.Diagnostics == 0 {
		head := s.Success.Render("No issues found") +
			s.Dim.Render(fmt.Sprintf(" (%s checked)", plural(stats.Linted, "file", "files")))
		return strings.Join(append([]string{head}, tail...), ", ") + "\n"
	}

	var severities []string
	if stats.Errors > 0 {
		severities = append(severities, s.Error.Render(plural(stats.Errors, "error", "errors")))
	}
	if stats.Warnings > 0 {
		severities = append(severities, s.Warning.Render(plural(stats.Warnings, "warning", "warnings")))
	}

	head := plural(stats.Diagnostics, "issue", "issues")
	if len(severities) > 0 {
		head += " (" + strings.Join(severities, ", ") + ")"
	}
	parts := []string{head + " in " + plural(stats.WithIssues, "file", "files")}

	if stats.Fixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.Fixable)))
	}

	return strings.Join(append(parts, tail...), ", ") + "\n"
}
