package rules

import (
	"strings"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/htmlast"
	"github.com/yaklabco/markuplint/pkg/lint"
)

// Options of no-unclosed-tag.
const (
	UnclosedTagAlways     = "always"
	UnclosedTagIgnoreCase = "ignore-case"
)

// NewNoUnclosedTagRule creates the no-unclosed-tag rule. The parser
// accepts any closing tag as the end of the innermost open element, so
// mismatched names and missing closing tags surface here.
func NewNoUnclosedTagRule() *lint.Rule {
	return &lint.Rule{
		Name:        "no-unclosed-tag",
		Description: "Elements must be closed by a tag with the same name",
		Defaults:    config.Setting(config.SeverityError, UnclosedTagAlways),
		Tags:        []string{"structure"},
		Handler:     checkUnclosedTag,
	}
}

func checkUnclosedTag(rc *lint.RuleContext, node *htmlast.Node) {
	if rc.Off() {
		return
	}

	switch node.Kind {
	case htmlast.NodeElement:
		checkElementClosed(rc, node)
	case htmlast.NodeClosingElement:
		checkStrayClosing(rc, node)
	default:
	}
}

func checkElementClosed(rc *lint.RuleContext, elem *htmlast.Node) {
	if elem.Opening == nil || elem.Childless() {
		return
	}

	open := elem.Opening.Ident
	openName := elem.Name()

	if elem.Closing == nil {
		rc.Report().
			Logf("Expected a corresponding HTML closing tag for %s.", openName).
			SnippetNode(open).
			Log("But reached the end of the input.").
			AtNode(elem.Opening).
			Emit()
		return
	}

	closeName := elem.Closing.Name()
	if namesMatch(openName, closeName, rc.StringOption(0, UnclosedTagAlways)) {
		return
	}

	rc.Report().
		Logf("Expected a corresponding HTML closing tag for %s.", openName).
		SnippetNode(open).
		Logf("But found a closing tag of %s.", closeName).
		SnippetNode(elem.Closing.Ident).
		AtNode(elem.Closing).
		Emit()
}

// checkStrayClosing reports a closing tag that no element owns.
func checkStrayClosing(rc *lint.RuleContext, closing *htmlast.Node) {
	if closing.Parent != nil && closing.Parent.Kind == htmlast.NodeElement {
		return
	}

	rc.Report().
		Logf("Found a closing tag of %s without a corresponding opening tag.", closing.Name()).
		SnippetNode(closing.Ident).
		AtNode(closing).
		Emit()
}

func namesMatch(open, closing, mode string) bool {
	if mode == UnclosedTagIgnoreCase {
		return strings.EqualFold(open, closing)
	}
	return open == closing
}
