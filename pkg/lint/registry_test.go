package lint_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/lint"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(upperTextRule(), elementNameRule())

	rule, ok := registry.Get("upper-text")
	require.True(t, ok)
	assert.Equal(t, "upper-text", rule.Name)
	assert.Equal(t, config.SeverityWarn, rule.DefaultSeverity())

	_, ok = registry.Get("missing")
	assert.False(t, ok)

	assert.Equal(t, []string{"element-name", "upper-text"}, registry.Names())
	assert.Equal(t, 2, registry.Len())
}

func TestRegistry_RegisterReplaces(t *testing.T) {
	t.Parallel()

	registry := newTestRegistry(upperTextRule())
	replacement := upperTextRule()
	replacement.Description = "replaced"
	registry.Register(replacement)

	rule, ok := registry.Get("upper-text")
	require.True(t, ok)
	assert.Equal(t, "replaced", rule.Description)
	assert.Equal(t, 1, registry.Len())
}

func TestRegistry_RegisterInvalid(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		rule *lint.Rule
	}{
		{"nil", nil},
		{"no name", &lint.Rule{Defaults: config.Setting(config.SeverityWarn), Handler: upperTextRule().Handler}},
		{"no handler", &lint.Rule{Name: "x", Defaults: config.Setting(config.SeverityWarn)}},
		{"bad defaults", &lint.Rule{Name: "x", Defaults: config.RuleSetting{"loud"}, Handler: upperTextRule().Handler}},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Panics(t, func() { lint.NewRegistry().Register(tc.rule) })
		})
	}
}
