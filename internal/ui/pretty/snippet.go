package pretty

import (
	"strconv"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/yaklabco/markuplint/pkg/htmlast"
)

// MaxSnippetLines caps how many source lines one snippet shows.
const MaxSnippetLines = 5

const tabWidth = 4

// Snippet renders the source lines covered by [start, end) with a line
// number gutter and a caret underline sized to the display width of the
// covered text. Empty spans get a single caret.
func (s *Styles) Snippet(doc *htmlast.Document, start, end int, indent string) string {
	if doc == nil || len(doc.Lines) == 0 || start < 0 || start > len(doc.Content) {
		return ""
	}
	end = min(max(end, start), len(doc.Content))

	firstLine, _ := doc.LineAt(start)
	lastLine := firstLine
	if end > start {
		lastLine, _ = doc.LineAt(end - 1)
	}
	truncated := lastLine-firstLine+1 > MaxSnippetLines
	if truncated {
		lastLine = firstLine + MaxSnippetLines - 1
	}

	width := len(strconv.Itoa(lastLine))
	blank := indent + s.Gutter.Render(strings.Repeat(" ", width)+" | ")

	var builder strings.Builder
	for line := firstLine; line <= lastLine; line++ {
		info := doc.Lines[line-1]
		content := string(doc.LineContent(line))

		from := min(max(start, info.StartOffset)-info.StartOffset, len(content))
		to := max(min(end, info.NewlineStart)-info.StartOffset, from)

		number := strconv.Itoa(line)
		builder.WriteString(indent)
		builder.WriteString(s.Gutter.Render(strings.Repeat(" ", width-len(number)) + number + " | "))
		builder.WriteString(s.SourceLine.Render(expandTabs(content)))
		builder.WriteByte('\n')

		if line != firstLine && from == to {
			continue
		}
		pad := displayWidth(content[:from])
		carets := max(displayWidth(content[from:to]), 1)
		builder.WriteString(blank)
		builder.WriteString(strings.Repeat(" ", pad))
		builder.WriteString(s.Caret.Render(strings.Repeat("^", carets)))
		builder.WriteByte('\n')
	}

	if truncated {
		builder.WriteString(blank)
		builder.WriteString(s.Dim.Render("..."))
		builder.WriteByte('\n')
	}

	return builder.String()
}

func expandTabs(text string) string {
	return strings.ReplaceAll(text, "\t", strings.Repeat(" ", tabWidth))
}

// displayWidth is the terminal column count of text, with tabs expanded.
func displayWidth(text string) int {
	return runewidth.StringWidth(expandTabs(text))
}
