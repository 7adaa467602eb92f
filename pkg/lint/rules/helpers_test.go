package rules

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/fix"
	"github.com/yaklabco/markuplint/pkg/lint"
	"github.com/yaklabco/markuplint/pkg/parser/markup"
)

// runRule lints source with a single rule and returns the result and the
// content after applying its fixes.
func runRule(t *testing.T, name string, setting config.RuleSetting, source string) (*lint.FileResult, string) {
	t.Helper()

	registry := lint.NewRegistry()
	RegisterAll(registry)

	cfg := config.NewConfig()
	cfg.Fix = true
	cfg.Rules[name] = setting

	engine := lint.NewEngine(markup.New(), registry)
	result, err := engine.LintFile(context.Background(), "test.html", []byte(source), cfg)
	require.NoError(t, err)
	require.Empty(t, result.RuleErrors)

	return result, string(fix.ApplyEdits([]byte(source), result.Edits))
}
