package lint

import (
	"context"
	"fmt"

	"github.com/spf13/cast"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/fix"
	"github.com/yaklabco/markuplint/pkg/htmlast"
)

// RuleContext is what a handler sees: the document, the resolved setting
// of its rule and the collector it reports into.
//
// RuleContext stores context.Context as a field because it is a
// short-lived parameter object created per rule and file.
type RuleContext struct {
	// Ctx is the context for the current lint run.
	Ctx context.Context

	// Document is the parsed file.
	Document *htmlast.Document

	// Root is the Markup root (convenience alias for Document.Root).
	Root *htmlast.Node

	// Config is the configuration of the run.
	Config *config.Config

	// Rule is the rule being executed.
	Rule *Rule

	// Setting is the resolved setting: severity followed by options.
	Setting config.RuleSetting

	// Severity is the parsed first element of Setting.
	Severity config.Severity

	// Registry provides access to the rule registry for name lookups.
	Registry *Registry

	collector *Collector
}

// NewRuleContext creates a RuleContext for one resolved rule.
func NewRuleContext(
	ctx context.Context,
	doc *htmlast.Document,
	cfg *config.Config,
	rr ResolvedRule,
	collector *Collector,
) *RuleContext {
	var root *htmlast.Node
	if doc != nil {
		root = doc.Root
	}
	if collector == nil {
		collector = NewCollector()
	}

	return &RuleContext{
		Ctx:       ctx,
		Document:  doc,
		Root:      root,
		Config:    cfg,
		Rule:      rr.Rule,
		Setting:   rr.Setting,
		Severity:  rr.Severity,
		collector: collector,
	}
}

// Off reports whether the rule is disabled. Handlers return immediately
// when it is true.
func (rc *RuleContext) Off() bool {
	return !rc.Severity.Enabled()
}

// Collector returns the collector reports are pushed into.
func (rc *RuleContext) Collector() *Collector {
	return rc.collector
}

// Source returns the file content.
func (rc *RuleContext) Source() []byte {
	if rc.Document == nil {
		return nil
	}
	return rc.Document.Content
}

// Option returns the option at index i, where index 0 is the first
// element after the severity.
func (rc *RuleContext) Option(i int) (any, bool) {
	idx := i + 1
	if i < 0 || idx >= len(rc.Setting) || rc.Setting[idx] == nil {
		return nil, false
	}
	return rc.Setting[idx], true
}

// IntOption returns option i as an int, or def when it is absent or not
// a number.
func (rc *RuleContext) IntOption(i, def int) int {
	value, ok := rc.Option(i)
	if !ok {
		return def
	}
	n, err := cast.ToIntE(value)
	if err != nil {
		return def
	}
	return n
}

// StringOption returns option i as a string, or def when it is absent.
func (rc *RuleContext) StringOption(i int, def string) string {
	value, ok := rc.Option(i)
	if !ok {
		return def
	}
	s, err := cast.ToStringE(value)
	if err != nil {
		return def
	}
	return s
}

// BoolOption returns option i as a bool, or def when it is absent.
func (rc *RuleContext) BoolOption(i int, def bool) bool {
	value, ok := rc.Option(i)
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(value)
	if err != nil {
		return def
	}
	return b
}

// Report starts a report for the current rule.
func (rc *RuleContext) Report() *ReportBuilder {
	return &ReportBuilder{rc: rc, start: -1}
}

// ReportBuilder assembles the ordered details of one report.
type ReportBuilder struct {
	rc      *RuleContext
	details []Detail
	start   int
	end     int
	edit    *fix.NodeEdit
}

// Log appends a message line.
func (b *ReportBuilder) Log(message string) *ReportBuilder {
	b.details = append(b.details, Detail{
		Kind:     DetailLog,
		Severity: b.rc.Severity,
		Message:  message,
	})
	return b
}

// Logf appends a formatted message line.
func (b *ReportBuilder) Logf(format string, args ...any) *ReportBuilder {
	return b.Log(fmt.Sprintf(format, args...))
}

// Snippet appends a reference to the source span [start, end).
func (b *ReportBuilder) Snippet(start, end int) *ReportBuilder {
	b.details = append(b.details, Detail{Kind: DetailSnippet, Start: start, End: end})
	return b
}

// SnippetNode appends a reference to the span of n.
func (b *ReportBuilder) SnippetNode(n *htmlast.Node) *ReportBuilder {
	if n == nil {
		return b
	}
	return b.Snippet(n.Start, n.End)
}

// At sets the primary span. Without it the first snippet is used.
func (b *ReportBuilder) At(start, end int) *ReportBuilder {
	b.start, b.end = start, end
	return b
}

// AtNode sets the primary span to the span of n.
func (b *ReportBuilder) AtNode(n *htmlast.Node) *ReportBuilder {
	if n == nil {
		return b
	}
	return b.At(n.Start, n.End)
}

// Fix attaches a structured edit setting field of node to value.
func (b *ReportBuilder) Fix(node *htmlast.Node, field fix.Field, value string) *ReportBuilder {
	b.edit = &fix.NodeEdit{Rule: b.rc.Rule.Name, Node: node, Field: field, Value: value}
	return b
}

// Emit pushes the report into the collector. It returns false when the
// report was dropped because the rule is off.
func (b *ReportBuilder) Emit() bool {
	rc := b.rc
	diag := Diagnostic{
		RuleName: rc.Rule.Name,
		Severity: rc.Severity,
		Details:  b.details,
		Fix:      b.edit,
		Fixable:  b.edit != nil,
	}
	if rc.Document != nil {
		diag.FilePath = rc.Document.Path
	}

	for _, detail := range b.details {
		if detail.Kind == DetailLog {
			diag.Message = detail.Message
			break
		}
	}

	start, end := b.start, b.end
	if start < 0 {
		start, end = 0, 0
		for _, detail := range b.details {
			if detail.Kind == DetailSnippet {
				start, end = detail.Start, detail.End
				break
			}
		}
	}
	diag.StartOffset, diag.EndOffset = start, end

	if rc.Document != nil {
		pos := rc.Document.Locate(start, end)
		diag.StartLine, diag.StartColumn = pos.StartLine, pos.StartColumn
		diag.EndLine, diag.EndColumn = pos.EndLine, pos.EndColumn
	}

	return rc.collector.Push(diag)
}
