package rules

import (
	"strings"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/fix"
	"github.com/yaklabco/markuplint/pkg/htmlast"
	"github.com/yaklabco/markuplint/pkg/lint"
)

// DefaultAttrIndent is the default attribute indent in spaces.
const DefaultAttrIndent = 2

// NewAttrIndentRule creates the attr-indent rule.
func NewAttrIndentRule() *lint.Rule {
	return &lint.Rule{
		Name:        "attr-indent",
		Description: "Attributes on their own line must be indented relative to the tag",
		Defaults:    config.Setting(config.SeverityError, DefaultAttrIndent),
		Fixable:     true,
		Tags:        []string{"style", "whitespace"},
		Handler:     checkAttrIndent,
	}
}

// checkAttrIndent inspects every whitespace gap of an opening tag that
// starts a new line, except the gap before the closing '>'.
func checkAttrIndent(rc *lint.RuleContext, node *htmlast.Node) {
	if rc.Off() || node.Kind != htmlast.NodeOpeningElement || len(node.Attributes) == 0 {
		return
	}

	indent := rc.IntOption(0, DefaultAttrIndent)
	if indent < 0 {
		indent = DefaultAttrIndent
	}

	tagIndent := len(rc.Document.LinePrefix(node.Start))
	want := indent + tagIndent
	expected := "\n" + strings.Repeat(" ", want)

	last := len(node.Attributes) - 1
	for i, gap := range node.Attributes {
		if gap.Kind != htmlast.NodeText || i == last {
			continue
		}
		if !strings.HasPrefix(gap.Value, "\n") || gap.Value == expected {
			continue
		}

		rc.Report().
			Logf("Expected an indent of %d spaces but instead got %d.", want, len(gap.Value)-1).
			Snippet(gap.Start+1, gap.End).
			Fix(gap, fix.FieldValue, expected).
			Emit()
	}
}
