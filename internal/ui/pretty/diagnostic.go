package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/htmlast"
	"github.com/yaklabco/markuplint/pkg/lint"
)

const detailIndent = "    "

// FormatDiagnostic formats one diagnostic. The headline carries location,
// severity, the first message line and the rule name; later message
// lines and snippets follow in report order. Snippets need doc and are
// skipped when showContext is false.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, doc *htmlast.Document, showContext bool) string {
	var builder strings.Builder

	location := s.Location.Render(fmt.Sprintf("%d:%d", diag.StartLine, diag.StartColumn))
	fmt.Fprintf(&builder, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleName.Render(diag.RuleName),
	)

	showSnippets := showContext && doc != nil
	headlineSeen := false
	snippetSeen := false

	for _, detail := range diag.Details {
		switch detail.Kind {
		case lint.DetailLog:
			if !headlineSeen && detail.Message == diag.Message {
				headlineSeen = true
				continue
			}
			builder.WriteString(detailIndent + s.Detail.Render(detail.Message) + "\n")
		case lint.DetailSnippet:
			if showSnippets {
				builder.WriteString(s.Snippet(doc, detail.Start, detail.End, detailIndent))
				snippetSeen = true
			}
		}
	}

	if showSnippets && !snippetSeen {
		builder.WriteString(s.Snippet(doc, diag.StartOffset, diag.EndOffset, detailIndent))
	}

	return builder.String()
}

// FormatSeverity returns a styled severity label.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarn:
		return s.Warning.Render("warn")
	default:
		return string(sev)
	}
}

// FormatFileHeader formats a file header for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%s)", plural(issueCount, "issue", "issues")))
	}
	return header
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
