package htmlast

import (
	"strconv"
	"strings"
)

// NodeKind classifies the type of an AST node.
type NodeKind uint8

// Node kinds, one per variant of the markup tree.
const (
	NodeMarkup NodeKind = iota
	NodeElement
	NodeOpeningElement
	NodeClosingElement
	NodeIdentifier
	NodeAttribute
	NodeAttributeIdentifier
	NodeLiteral
	NodeDoctype
	NodeComment
	NodeText
)

//nolint:gochecknoglobals // Read-only lookup table.
var kindNames = [...]string{
	NodeMarkup:              "Markup",
	NodeElement:             "Element",
	NodeOpeningElement:      "OpeningElement",
	NodeClosingElement:      "ClosingElement",
	NodeIdentifier:          "Identifier",
	NodeAttribute:           "Attribute",
	NodeAttributeIdentifier: "AttributeIdentifier",
	NodeLiteral:             "Literal",
	NodeDoctype:             "Doctype",
	NodeComment:             "Comment",
	NodeText:                "Text",
}

func (k NodeKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "NodeKind(" + strconv.Itoa(int(k)) + ")"
}

// Node is a single node of the markup tree.
//
// Start and End are half-open byte offsets into the parsed source.
// Parent, Prev and Next are back-references; a node is owned by the
// field of its parent that holds it (Children, Opening, Closing, Ident,
// Attributes or Literal). Prev and Next link siblings of one sequence only.
type Node struct {
	Kind NodeKind

	Start int
	End   int

	Parent *Node
	Prev   *Node
	Next   *Node

	// Children holds the content of Markup and Element nodes.
	Children []*Node

	// Opening and Closing belong to Element nodes. Closing is nil for
	// void, self-closing and unterminated elements.
	Opening *Node
	Closing *Node

	// Ident is the name of an OpeningElement or ClosingElement (an
	// Identifier) or of an Attribute (an AttributeIdentifier).
	Ident *Node

	// Attributes is the interior of an OpeningElement: Attribute nodes
	// interleaved with Text gaps, covering the tag between name and '>'.
	Attributes []*Node

	// Literal is the value of an Attribute, nil for boolean attributes.
	Literal *Node

	SelfClosing bool
	Void        bool
	Block       bool

	// Value is the semantic text of the node: the name of an Identifier
	// or AttributeIdentifier, the unquoted value of a Literal, the body of
	// a Doctype or Comment, and the content of a Text node.
	Value string

	// Raw is the exact source text covered by the node. Fixes change
	// Value and leave Raw untouched.
	Raw string

	// SourceType is set on the Markup root ("html" or "markdown").
	SourceType string
}

// Len returns the length of the node's span in bytes.
func (n *Node) Len() int {
	return n.End - n.Start
}

// Name returns the identifier text of elements, tags, attributes and
// identifiers. Other kinds return an empty string.
func (n *Node) Name() string {
	if n == nil {
		return ""
	}

	switch n.Kind {
	case NodeIdentifier, NodeAttributeIdentifier:
		return n.Value
	case NodeElement:
		if n.Opening != nil {
			return n.Opening.Name()
		}
	case NodeOpeningElement, NodeClosingElement, NodeAttribute:
		if n.Ident != nil {
			return n.Ident.Value
		}
	case NodeMarkup, NodeLiteral, NodeDoctype, NodeComment, NodeText:
	}

	return ""
}

// LowerName returns Name in lower case.
func (n *Node) LowerName() string {
	return strings.ToLower(n.Name())
}

// IsElement reports whether the node is an Element.
func (n *Node) IsElement() bool {
	return n != nil && n.Kind == NodeElement
}

// Childless reports whether an Element can never own content, either
// because its tag is void or because it was written with "/>".
func (n *Node) Childless() bool {
	if n == nil || n.Kind != NodeElement || n.Opening == nil {
		return false
	}
	return n.Opening.Void || n.Opening.SelfClosing
}

// AttributeNamed returns the first attribute of an Element or OpeningElement
// whose name matches case-insensitively, or nil.
func (n *Node) AttributeNamed(name string) *Node {
	tag := n
	if n != nil && n.Kind == NodeElement {
		tag = n.Opening
	}
	if tag == nil || tag.Kind != NodeOpeningElement {
		return nil
	}

	for _, attr := range tag.Attributes {
		if attr.Kind == NodeAttribute && strings.EqualFold(attr.Name(), name) {
			return attr
		}
	}
	return nil
}

// Depth returns the number of Element ancestors of the node.
func (n *Node) Depth() int {
	depth := 0
	for p := n.Parent; p != nil; p = p.Parent {
		if p.Kind == NodeElement {
			depth++
		}
	}
	return depth
}

// Root walks parent links up to the tree root.
func (n *Node) Root() *Node {
	cur := n
	for cur != nil && cur.Parent != nil {
		cur = cur.Parent
	}
	return cur
}
