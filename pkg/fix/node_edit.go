package fix

import (
	"fmt"
	"strings"

	"github.com/yaklabco/markuplint/pkg/htmlast"
)

// Field names the part of a node a NodeEdit rewrites.
type Field uint8

const (
	// FieldValue is the semantic value of Text, Literal, Comment and
	// Doctype nodes, or the value of an Attribute.
	FieldValue Field = iota

	// FieldName is the name of an Identifier or AttributeIdentifier.
	FieldName
)

func (f Field) String() string {
	if f == FieldName {
		return "name"
	}
	return "value"
}

// NodeEdit is a structured fix: set Field of Node to Value.
type NodeEdit struct {
	// Rule is the name of the rule that proposed the edit.
	Rule string

	Node  *htmlast.Node
	Field Field
	Value string
}

// key identifies the target of the edit for duplicate detection.
type key struct {
	node  *htmlast.Node
	field Field
}

func (e NodeEdit) key() key {
	return key{node: e.Node, field: e.Field}
}

// TextEdit converts the descriptor into a source replacement that keeps
// the node's delimiters (quotes, comment markers) intact.
func (e NodeEdit) TextEdit() (TextEdit, error) {
	node := e.Node
	if node == nil {
		return TextEdit{}, fmt.Errorf("%w: edit without a node", ErrInvalidEdit)
	}

	whole := TextEdit{StartOffset: node.Start, EndOffset: node.End}

	switch {
	case e.Field == FieldName && (node.Kind == htmlast.NodeIdentifier || node.Kind == htmlast.NodeAttributeIdentifier):
		whole.NewText = e.Value
	case e.Field != FieldValue:
		return TextEdit{}, e.unsupported()
	case node.Kind == htmlast.NodeText:
		whole.NewText = e.Value
	case node.Kind == htmlast.NodeLiteral:
		whole.NewText = requote(node.Raw, e.Value)
	case node.Kind == htmlast.NodeComment:
		whole.NewText = "<!--" + e.Value + "-->"
	case node.Kind == htmlast.NodeDoctype:
		prefix, tail := doctypeFrame(node.Raw)
		whole.NewText = prefix + e.Value + tail
	case node.Kind == htmlast.NodeAttribute && node.Literal != nil:
		return NodeEdit{Rule: e.Rule, Node: node.Literal, Field: FieldValue, Value: e.Value}.TextEdit()
	case node.Kind == htmlast.NodeAttribute:
		return TextEdit{StartOffset: node.End, EndOffset: node.End, NewText: `="` + e.Value + `"`}, nil
	default:
		return TextEdit{}, e.unsupported()
	}

	return whole, nil
}

// Apply stores the new value on the in-memory tree. The source buffer
// is not touched.
func (e NodeEdit) Apply() error {
	node := e.Node
	if node == nil {
		return fmt.Errorf("%w: edit without a node", ErrInvalidEdit)
	}

	switch node.Kind {
	case htmlast.NodeIdentifier, htmlast.NodeAttributeIdentifier:
		if e.Field != FieldName {
			return e.unsupported()
		}
		node.Value = e.Value
	case htmlast.NodeText, htmlast.NodeLiteral, htmlast.NodeComment, htmlast.NodeDoctype:
		if e.Field != FieldValue {
			return e.unsupported()
		}
		node.Value = e.Value
	case htmlast.NodeAttribute:
		if e.Field != FieldValue {
			return e.unsupported()
		}
		if node.Literal == nil {
			node.Literal = &htmlast.Node{Kind: htmlast.NodeLiteral, Start: node.End, End: node.End, Parent: node}
		}
		node.Literal.Value = e.Value
	case htmlast.NodeMarkup, htmlast.NodeElement, htmlast.NodeOpeningElement, htmlast.NodeClosingElement:
		return e.unsupported()
	}

	return nil
}

func (e NodeEdit) unsupported() error {
	return fmt.Errorf("%w: cannot set %s of %s", ErrInvalidEdit, e.Field, e.Node.Kind)
}

// doctypeFrame splits a raw doctype around its value, keeping the
// keyword's spelling and the whitespace after it.
func doctypeFrame(raw string) (string, string) {
	const keyword = len("<!doctype")

	body, tail := raw, ""
	if strings.HasSuffix(raw, ">") {
		body, tail = raw[:len(raw)-1], ">"
	}
	if len(body) < keyword {
		return "<!DOCTYPE ", tail
	}

	value := strings.TrimLeft(body[keyword:], " \t\r\n\f")
	prefix := body[:len(body)-len(value)]
	if len(prefix) == keyword {
		prefix += " "
	}
	return prefix, tail
}

// requote wraps value in the quote character raw used, defaulting to a
// double quote for unquoted literals that now need one.
func requote(raw, value string) string {
	if raw != "" && (raw[0] == '"' || raw[0] == '\'') {
		quote := raw[:1]
		return quote + value + quote
	}
	if value == "" || strings.ContainsAny(value, " \t\n\r\f\"'=<>`") {
		return `"` + value + `"`
	}
	return value
}
