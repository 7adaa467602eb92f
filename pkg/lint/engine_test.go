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
)

func TestEngine_LintFile(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(upperTextRule(), elementNameRule())
	source := "<a><b>x</b></a>"

	result, err := engine.LintFile(context.Background(), "t.html", []byte(source), config.NewConfig())
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 3)
	assert.Equal(t, "element a", result.Diagnostics[0].Message)
	assert.Equal(t, "element b", result.Diagnostics[1].Message)
	assert.Equal(t, "upper-text", result.Diagnostics[2].RuleName)
	assert.Equal(t, config.SeverityWarn, result.Diagnostics[2].Severity)

	assert.Equal(t, 2, result.CountBySeverity(config.SeverityError))
	assert.Equal(t, 1, result.FixableCount())
	assert.True(t, result.HasIssues())
	assert.False(t, result.HasFixes(), "fixes are only resolved when fixing")
	assert.Empty(t, result.RuleErrors)
}

func TestEngine_ConfiguredOptions(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(upperTextRule(), elementNameRule())
	cfg := config.NewConfig()
	cfg.Rules["element-name"] = config.RuleSetting{"warn", "tag"}

	result, err := engine.LintFile(context.Background(), "t.html", []byte("<p>x</p>"), cfg)
	require.NoError(t, err)

	require.Len(t, result.Diagnostics, 1, "unconfigured rules do not run")
	assert.Equal(t, "tag p", result.Diagnostics[0].Message)
	assert.Equal(t, config.SeverityWarn, result.Diagnostics[0].Severity)
}

func TestEngine_OffRuleReportsNothing(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(elementNameRule())
	cfg := config.NewConfig()
	cfg.Rules["element-name"] = config.RuleSetting{"off"}

	result, err := engine.LintFile(context.Background(), "t.html", []byte("<p>x</p>"), cfg)
	require.NoError(t, err)
	assert.Empty(t, result.Diagnostics)
}

func TestEngine_UnknownRuleFailsBeforeParsing(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(elementNameRule())
	cfg := config.NewConfig()
	cfg.Rules["nope"] = config.RuleSetting{"error"}

	result, err := engine.LintFile(context.Background(), "t.html", []byte("<p>x</p>"), cfg)
	require.ErrorIs(t, err, lint.ErrUnknownRule)
	assert.Nil(t, result)
}

func TestEngine_NilParser(t *testing.T) {
	t.Parallel()

	engine := &lint.Engine{Registry: lint.NewRegistry()}
	_, err := engine.LintFile(context.Background(), "t.html", nil, nil)
	require.ErrorIs(t, err, lint.ErrNilParser)
}

func TestEngine_Cancelled(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestEngine(elementNameRule()).LintFile(ctx, "t.html", []byte("<p></p>"), nil)
	require.ErrorIs(t, err, context.Canceled)
}

func TestEngine_PanickingRuleIsIsolated(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(panicRule(), elementNameRule())

	result, err := engine.LintFile(context.Background(), "t.html", []byte("<a></a><b></b>"), nil)
	require.NoError(t, err)

	require.Len(t, result.RuleErrors, 1, "the rule is disabled after its first failure")
	assert.Equal(t, "panics", result.RuleErrors[0].Rule)
	assert.Equal(t, htmlast.NodeElement, result.RuleErrors[0].Node)
	assert.Contains(t, result.RuleErrors[0].Error(), "boom")

	assert.Len(t, result.Diagnostics, 2, "other rules keep running")
}

func TestEngine_Phases(t *testing.T) {
	t.Parallel()

	var events []string
	record := func(prefix string) lint.Handler {
		return func(_ *lint.RuleContext, node *htmlast.Node) {
			if node.Kind == htmlast.NodeElement {
				events = append(events, prefix+node.Name())
			}
		}
	}

	engine := newTestEngine(
		&lint.Rule{Name: "enter", Defaults: config.Setting(config.SeverityWarn), Handler: record("+")},
		&lint.Rule{Name: "exit", Defaults: config.Setting(config.SeverityWarn), Phase: lint.PhaseExit, Handler: record("-")},
	)

	_, err := engine.LintFile(context.Background(), "t.html", []byte("<a><b></b></a>"), nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"+a", "+b", "-b", "-a"}, events)
}

func TestEngine_FixesAppliedToTree(t *testing.T) {
	t.Parallel()

	engine := newTestEngine(upperTextRule())
	cfg := config.NewConfig()
	cfg.Fix = true
	source := "<p>abc</p><p>def</p>"

	result, err := engine.LintFile(context.Background(), "t.html", []byte(source), cfg)
	require.NoError(t, err)

	require.Len(t, result.Edits, 2)
	assert.Equal(t, "ABCDEF", string(textValues(result.Document.Root)))
	assert.Equal(t, "<p>ABC</p><p>DEF</p>", string(fix.ApplyEdits([]byte(source), result.Edits)))
	assert.Equal(t, source, string(result.Document.Content))
}

func TestEngine_ConflictingFixesFirstWins(t *testing.T) {
	t.Parallel()

	lower := &lint.Rule{
		Name:     "lower-text",
		Defaults: config.Setting(config.SeverityWarn),
		Fixable:  true,
		Handler: func(rc *lint.RuleContext, node *htmlast.Node) {
			if node.Kind == htmlast.NodeText {
				rc.Report().Log("lower").SnippetNode(node).Fix(node, fix.FieldValue, "lower").Emit()
			}
		},
	}

	engine := newTestEngine(upperTextRule(), lower)
	cfg := config.NewConfig()
	cfg.DryRun = true

	result, err := engine.LintFile(context.Background(), "t.html", []byte("<p>abc</p>"), cfg)
	require.NoError(t, err)

	require.Len(t, result.Edits, 1)
	require.Len(t, result.Skipped, 1)
	assert.Equal(t, "lower", result.Edits[0].NewText, "lower-text runs first in name order")
	assert.Equal(t, "upper-text", result.Skipped[0].Rule)
}

func textValues(root *htmlast.Node) []byte {
	var out []byte
	for _, n := range htmlast.FindByKind(root, htmlast.NodeText) {
		out = append(out, n.Value...)
	}
	return out
}
