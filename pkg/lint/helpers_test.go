package lint_test

import (
	"strings"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/fix"
	"github.com/yaklabco/markuplint/pkg/htmlast"
	"github.com/yaklabco/markuplint/pkg/lint"
	"github.com/yaklabco/markuplint/pkg/parser/markup"
)

// upperTextRule reports lowercase text and fixes it to uppercase.
func upperTextRule() *lint.Rule {
	return &lint.Rule{
		Name:        "upper-text",
		Description: "Text must be uppercase",
		Defaults:    config.Setting(config.SeverityWarn),
		Fixable:     true,
		Handler: func(rc *lint.RuleContext, node *htmlast.Node) {
			if rc.Off() || node.Kind != htmlast.NodeText || strings.TrimSpace(node.Value) == "" {
				return
			}
			upper := strings.ToUpper(node.Value)
			if upper == node.Value {
				return
			}
			rc.Report().
				Log("Text must be uppercase.").
				SnippetNode(node).
				Fix(node, fix.FieldValue, upper).
				Emit()
		},
	}
}

// elementNameRule reports every element, using option 0 as a prefix.
func elementNameRule() *lint.Rule {
	return &lint.Rule{
		Name:        "element-name",
		Description: "Reports element names",
		Defaults:    config.Setting(config.SeverityError, "element"),
		Handler: func(rc *lint.RuleContext, node *htmlast.Node) {
			if rc.Off() || node.Kind != htmlast.NodeElement {
				return
			}
			rc.Report().
				Logf("%s %s", rc.StringOption(0, "?"), node.Name()).
				SnippetNode(node.Opening).
				Emit()
		},
	}
}

// panicRule panics on the first element it sees.
func panicRule() *lint.Rule {
	return &lint.Rule{
		Name:     "panics",
		Defaults: config.Setting(config.SeverityError),
		Handler: func(_ *lint.RuleContext, node *htmlast.Node) {
			if node.Kind == htmlast.NodeElement {
				panic("boom")
			}
		},
	}
}

func newTestRegistry(rules ...*lint.Rule) *lint.Registry {
	registry := lint.NewRegistry()
	for _, rule := range rules {
		registry.Register(rule)
	}
	return registry
}

func newTestEngine(rules ...*lint.Rule) *lint.Engine {
	return lint.NewEngine(markup.New(), newTestRegistry(rules...))
}
