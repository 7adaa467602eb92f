package lint

import (
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/fix"
	"github.com/yaklabco/markuplint/pkg/htmlast"
)

// DetailKind distinguishes message lines from source excerpts.
type DetailKind string

const (
	// DetailLog is a line of message text.
	DetailLog DetailKind = "log"

	// DetailSnippet references a span of source to display.
	DetailSnippet DetailKind = "snippet"
)

// Detail is one ordered element of a report. Message lines and snippets
// interleave in the order they should be rendered.
type Detail struct {
	Kind DetailKind `json:"type" msgpack:"kind"`

	// Severity and Message are set for DetailLog.
	Severity config.Severity `json:"severity,omitempty" msgpack:"severity,omitempty"`
	Message  string          `json:"message,omitempty"  msgpack:"message,omitempty"`

	// Start and End are byte offsets for DetailSnippet.
	Start int `json:"start,omitempty" msgpack:"start,omitempty"`
	End   int `json:"end,omitempty"   msgpack:"end,omitempty"`
}

// Diagnostic is one finding produced by a rule.
type Diagnostic struct {
	// RuleName is the rule that produced the report, e.g. "attr-indent".
	RuleName string `json:"rule" msgpack:"rule"`

	// Severity is the resolved severity of the rule for this run.
	Severity config.Severity `json:"severity" msgpack:"severity"`

	// FilePath is the path of the linted file.
	FilePath string `json:"file" msgpack:"file"`

	// Message is the first message line; Details holds the full report.
	Message string   `json:"message" msgpack:"message"`
	Details []Detail `json:"details" msgpack:"details"`

	// StartOffset and EndOffset are the primary span in bytes.
	StartOffset int `json:"startOffset" msgpack:"start_offset"`
	EndOffset   int `json:"endOffset"   msgpack:"end_offset"`

	// Line and column of the primary span, 1-based.
	StartLine   int `json:"line"      msgpack:"start_line"`
	StartColumn int `json:"column"    msgpack:"start_column"`
	EndLine     int `json:"endLine"   msgpack:"end_line"`
	EndColumn   int `json:"endColumn" msgpack:"end_column"`

	// Fixable is true when the report carried a fix.
	Fixable bool `json:"fixable" msgpack:"fixable"`

	// Fix is the structured edit proposed by the rule, if any. It points
	// into the tree it was produced from and is never serialized.
	Fix *fix.NodeEdit `json:"-" msgpack:"-"`
}

// HasFix returns true if this diagnostic proposes a fix.
func (d *Diagnostic) HasFix() bool {
	return d.Fix != nil || d.Fixable
}

// SourcePosition returns the primary span in line/column terms.
func (d *Diagnostic) SourcePosition() htmlast.SourcePosition {
	return htmlast.SourcePosition{
		StartLine:   d.StartLine,
		StartColumn: d.StartColumn,
		EndLine:     d.EndLine,
		EndColumn:   d.EndColumn,
	}
}

// Messages returns the message lines of the report in order.
func (d *Diagnostic) Messages() []string {
	var out []string
	for _, detail := range d.Details {
		if detail.Kind == DetailLog {
			out = append(out, detail.Message)
		}
	}
	return out
}

// Snippets returns the snippet details of the report in order.
func (d *Diagnostic) Snippets() []Detail {
	var out []Detail
	for _, detail := range d.Details {
		if detail.Kind == DetailSnippet {
			out = append(out, detail)
		}
	}
	return out
}
