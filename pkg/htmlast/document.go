// Package htmlast provides the markup syntax tree used by markuplint:
// - Node: one tagged node type covering every markup construct
// - Document: the source buffer, its line index and the parsed root
// - Traverse and Walk: deterministic depth-first visitors
package htmlast

import "sort"

// Document is an immutable view of one linted file.
type Document struct {
	// Path is the file path (may be empty for in-memory content).
	Path string

	// Content is the full file bytes.
	Content []byte

	// Lines contains metadata for each line in the file.
	Lines []LineInfo

	// Root is the Markup node produced by the parser.
	Root *Node
}

// LineInfo holds metadata for a single line in a file.
type LineInfo struct {
	// StartOffset is the byte index of the line start.
	StartOffset int

	// NewlineStart is the byte index where the line terminator begins.
	// For the last line without a terminator it equals EndOffset.
	NewlineStart int

	// EndOffset is the byte index just after the terminator.
	EndOffset int
}

// NewDocument builds the line index for content. Root is left for the
// parser to fill in.
func NewDocument(path string, content []byte) *Document {
	return &Document{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}

// BuildLines constructs line metadata, treating "\r\n" as one terminator.
// Empty content has a single empty line.
func BuildLines(content []byte) []LineInfo {
	lines := make([]LineInfo, 0, 1+len(content)/40)
	lineStart := 0

	for idx, char := range content {
		if char != '\n' {
			continue
		}
		newlineStart := idx
		if idx > lineStart && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{
			StartOffset:  lineStart,
			NewlineStart: newlineStart,
			EndOffset:    idx + 1,
		})
		lineStart = idx + 1
	}

	return append(lines, LineInfo{
		StartOffset:  lineStart,
		NewlineStart: len(content),
		EndOffset:    len(content),
	})
}

// LineCount returns the number of lines in the file.
func (d *Document) LineCount() int {
	return len(d.Lines)
}

// LineAt converts a byte offset to 1-based line and column numbers.
// Columns count bytes. Offsets past the end clamp to the end of the last
// line; negative offsets return (0, 0).
func (d *Document) LineAt(offset int) (int, int) {
	if offset < 0 || len(d.Lines) == 0 {
		return 0, 0
	}
	if offset > len(d.Content) {
		offset = len(d.Content)
	}

	idx := sort.Search(len(d.Lines), func(i int) bool {
		return d.Lines[i].EndOffset > offset
	})
	if idx >= len(d.Lines) {
		idx = len(d.Lines) - 1
	}

	return idx + 1, offset - d.Lines[idx].StartOffset + 1
}

// Offset converts 1-based line and column numbers back to a byte offset.
func (d *Document) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(d.Lines) || col < 1 {
		return 0, false
	}

	info := d.Lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}
	return offset, true
}

// LineContent returns a 1-based line without its terminator, or nil.
func (d *Document) LineContent(line int) []byte {
	if line < 1 || line > len(d.Lines) {
		return nil
	}
	info := d.Lines[line-1]
	return d.Content[info.StartOffset:info.NewlineStart]
}

// LinePrefix returns the text between the start of the line holding
// offset and offset itself.
func (d *Document) LinePrefix(offset int) []byte {
	line, _ := d.LineAt(offset)
	if line == 0 {
		return nil
	}
	if offset > len(d.Content) {
		offset = len(d.Content)
	}
	return d.Content[d.Lines[line-1].StartOffset:offset]
}

// Text returns the source bytes covered by a node.
func (d *Document) Text(n *Node) []byte {
	if n == nil || n.Start < 0 || n.End > len(d.Content) || n.Start > n.End {
		return nil
	}
	return d.Content[n.Start:n.End]
}

// Locate translates a byte span to line/column coordinates.
func (d *Document) Locate(start, end int) SourcePosition {
	startLine, startCol := d.LineAt(start)
	endLine, endCol := d.LineAt(end)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// Position represents a 1-based line and column in a file.
type Position struct {
	Line   int
	Column int
}

// IsValid returns true if this position has positive values.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition is a span in line/column terms. The end column points
// just past the last byte.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the start position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the end position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsSingleLine returns true if start and end are on the same line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}
