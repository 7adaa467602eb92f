package fix

import (
	"fmt"
	"strings"
)

// LineKind classifies a line of a unified diff.
type LineKind uint8

const (
	LineContext LineKind = iota
	LineAdded
	LineRemoved
)

// prefix is the marker written before a line of this kind.
func (k LineKind) prefix() byte {
	switch k {
	case LineAdded:
		return '+'
	case LineRemoved:
		return '-'
	default:
		return ' '
	}
}

// DiffLine is one line of a hunk, without its marker.
type DiffLine struct {
	Kind LineKind
	Text string
}

// Hunk is a run of changes with surrounding context. Line numbers are
// 1-based.
type Hunk struct {
	OldStart int
	OldLines int
	NewStart int
	NewLines int
	Lines    []DiffLine
}

// Header returns the "@@ -a,b +c,d @@" line.
func (h Hunk) Header() string {
	return fmt.Sprintf("@@ -%d,%d +%d,%d @@", h.OldStart, h.OldLines, h.NewStart, h.NewLines)
}

// Diff is a line-based unified diff of one file.
type Diff struct {
	Path      string
	Hunks     []Hunk
	Additions int
	Deletions int
}

// diffContext is the number of unchanged lines kept around each change.
const diffContext = 3

// GenerateDiff compares two versions of a file. It returns nil when the
// contents are identical.
func GenerateDiff(path string, before, after []byte) *Diff {
	if string(before) == string(after) {
		return nil
	}

	script := editScript(lines(before), lines(after))
	diff := &Diff{Path: path}

	for _, line := range script {
		switch line.Kind {
		case LineAdded:
			diff.Additions++
		case LineRemoved:
			diff.Deletions++
		case LineContext:
		}
	}

	diff.Hunks = hunks(script)
	if len(diff.Hunks) == 0 {
		return nil
	}

	return diff
}

// HasChanges reports whether the diff holds at least one hunk.
func (d *Diff) HasChanges() bool {
	return d != nil && len(d.Hunks) > 0
}

// String renders the diff with "---"/"+++" file headers.
func (d *Diff) String() string {
	if !d.HasChanges() {
		return ""
	}

	name := strings.TrimPrefix(d.Path, "/")

	var out strings.Builder
	fmt.Fprintf(&out, "--- a/%s\n+++ b/%s\n", name, name)
	for _, hunk := range d.Hunks {
		out.WriteString(hunk.Header())
		out.WriteByte('\n')
		for _, line := range hunk.Lines {
			out.WriteByte(line.Kind.prefix())
			out.WriteString(line.Text)
			out.WriteByte('\n')
		}
	}

	return out.String()
}

func lines(content []byte) []string {
	if len(content) == 0 {
		return nil
	}
	return strings.Split(strings.TrimSuffix(string(content), "\n"), "\n")
}

// editScript aligns two line slices on a longest common subsequence.
// table[i][j] holds the LCS length of before[i:] and after[j:].
func editScript(before, after []string) []DiffLine {
	rows, cols := len(before), len(after)
	table := make([][]int, rows+1)
	for i := range table {
		table[i] = make([]int, cols+1)
	}
	for i := rows - 1; i >= 0; i-- {
		for j := cols - 1; j >= 0; j-- {
			if before[i] == after[j] {
				table[i][j] = table[i+1][j+1] + 1
			} else {
				table[i][j] = max(table[i+1][j], table[i][j+1])
			}
		}
	}

	script := make([]DiffLine, 0, rows+cols)
	i, j := 0, 0
	for i < rows || j < cols {
		switch {
		case i < rows && j < cols && before[i] == after[j]:
			script = append(script, DiffLine{Kind: LineContext, Text: before[i]})
			i++
			j++
		case j < cols && (i == rows || table[i][j+1] > table[i+1][j]):
			script = append(script, DiffLine{Kind: LineAdded, Text: after[j]})
			j++
		default:
			script = append(script, DiffLine{Kind: LineRemoved, Text: before[i]})
			i++
		}
	}

	return script
}

// hunks cuts an edit script into hunks, merging changes separated by
// no more than twice the context width.
func hunks(script []DiffLine) []Hunk {
	var result []Hunk

	oldLine, newLine := 1, 1
	oldAt := make([]int, len(script))
	newAt := make([]int, len(script))
	for idx, line := range script {
		oldAt[idx], newAt[idx] = oldLine, newLine
		if line.Kind != LineAdded {
			oldLine++
		}
		if line.Kind != LineRemoved {
			newLine++
		}
	}

	idx := 0
	for idx < len(script) {
		for idx < len(script) && script[idx].Kind == LineContext {
			idx++
		}
		if idx == len(script) {
			break
		}

		first := max(0, idx-diffContext)
		last := idx
		for scan := idx; scan < len(script); scan++ {
			if script[scan].Kind != LineContext {
				last = scan
				continue
			}
			if scan-last > 2*diffContext {
				break
			}
		}
		end := min(len(script), last+1+diffContext)

		hunk := Hunk{OldStart: oldAt[first], NewStart: newAt[first], Lines: script[first:end]}
		for _, line := range hunk.Lines {
			if line.Kind != LineAdded {
				hunk.OldLines++
			}
			if line.Kind != LineRemoved {
				hunk.NewLines++
			}
		}
		if hunk.OldLines == 0 {
			hunk.OldStart--
		}
		if hunk.NewLines == 0 {
			hunk.NewStart--
		}

		result = append(result, hunk)
		idx = end
	}

	return result
}
