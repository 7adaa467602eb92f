package lint_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/fix"
	"github.com/yaklabco/markuplint/pkg/htmlast"
	"github.com/yaklabco/markuplint/pkg/lint"
	"github.com/yaklabco/markuplint/pkg/parser/markup"
)

func newContext(t *testing.T, source string, setting config.RuleSetting) *lint.RuleContext {
	t.Helper()

	doc, err := markup.New().Parse(context.Background(), "test.html", []byte(source))
	require.NoError(t, err)

	rule := elementNameRule()
	resolved, sev, err := lint.ResolveSetting(rule.Defaults, setting)
	require.NoError(t, err)

	return lint.NewRuleContext(context.Background(), doc, config.NewConfig(), lint.ResolvedRule{
		Rule:     rule,
		Setting:  resolved,
		Severity: sev,
	}, nil)
}

func TestRuleContext_Options(t *testing.T) {
	t.Parallel()

	rc := newContext(t, "<p></p>", config.RuleSetting{"warn", "tag", int64(4), "true", nil})

	assert.False(t, rc.Off())
	assert.Equal(t, "tag", rc.StringOption(0, "x"))
	assert.Equal(t, 4, rc.IntOption(1, 2))
	assert.True(t, rc.BoolOption(2, false))

	assert.Equal(t, 7, rc.IntOption(0, 7), "non-numeric falls back")
	assert.Equal(t, 2, rc.IntOption(3, 2), "nil falls back")
	assert.Equal(t, 2, rc.IntOption(9, 2), "absent falls back")
	assert.Equal(t, "x", rc.StringOption(-1, "x"))

	_, ok := rc.Option(5)
	assert.False(t, ok)
}

func TestRuleContext_Off(t *testing.T) {
	t.Parallel()

	rc := newContext(t, "<p></p>", config.RuleSetting{"off"})
	assert.True(t, rc.Off())
	assert.False(t, rc.Report().Log("dropped").Emit())
	assert.Equal(t, 0, rc.Collector().Len())
}

func TestReportBuilder_Emit(t *testing.T) {
	t.Parallel()

	rc := newContext(t, "<div>\n  <span>x</span>\n</div>", nil)
	span := htmlast.FindFirst(rc.Root, func(n *htmlast.Node) bool {
		return n.Kind == htmlast.NodeElement && n.Name() == "span"
	})
	require.NotNil(t, span)

	ok := rc.Report().
		Log("first line").
		SnippetNode(span.Opening).
		Logf("second %d", 2).
		Snippet(span.Closing.Start, span.Closing.End).
		Fix(span.Opening.Ident, fix.FieldName, "em").
		Emit()
	require.True(t, ok)

	diags := rc.Collector().All()
	require.Len(t, diags, 1)
	d := diags[0]

	assert.Equal(t, "element-name", d.RuleName)
	assert.Equal(t, config.SeverityError, d.Severity)
	assert.Equal(t, "test.html", d.FilePath)
	assert.Equal(t, "first line", d.Message)
	assert.Equal(t, []string{"first line", "second 2"}, d.Messages())

	require.Len(t, d.Details, 4)
	assert.Equal(t, lint.DetailLog, d.Details[0].Kind)
	assert.Equal(t, config.SeverityError, d.Details[0].Severity)
	assert.Equal(t, lint.DetailSnippet, d.Details[1].Kind)
	assert.Equal(t, span.Opening.Start, d.Details[1].Start)
	assert.Len(t, d.Snippets(), 2)

	assert.Equal(t, span.Opening.Start, d.StartOffset)
	assert.Equal(t, span.Opening.End, d.EndOffset)
	assert.Equal(t, 2, d.StartLine)
	assert.Equal(t, 3, d.StartColumn)
	assert.Equal(t, 2, d.EndLine)
	assert.Equal(t, 9, d.EndColumn)

	require.NotNil(t, d.Fix)
	assert.True(t, d.HasFix())
	assert.Equal(t, "element-name", d.Fix.Rule)
	assert.Equal(t, "em", d.Fix.Value)
}

func TestReportBuilder_At(t *testing.T) {
	t.Parallel()

	rc := newContext(t, "<p>abc</p>", nil)
	rc.Report().Log("x").Snippet(0, 3).At(3, 6).Emit()

	d := rc.Collector().All()[0]
	assert.Equal(t, 3, d.StartOffset)
	assert.Equal(t, 6, d.EndOffset)
	assert.Equal(t, 4, d.StartColumn)
	assert.False(t, d.HasFix())
}
