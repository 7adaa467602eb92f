package htmlast

// Link sets parent on every node of seq and chains them with Prev/Next.
func Link(parent *Node, seq []*Node) {
	var prev *Node
	for _, node := range seq {
		node.Parent = parent
		node.Prev = prev
		node.Next = nil
		if prev != nil {
			prev.Next = node
		}
		prev = node
	}
}

// LinkTree rebuilds every back-reference below root from the owning
// fields. Hand-built trees can call it once after assembly.
func LinkTree(root *Node) {
	if root == nil {
		return
	}

	switch root.Kind {
	case NodeMarkup:
		Link(root, root.Children)
	case NodeElement:
		Link(root, root.Children)
		adopt(root, root.Opening, root.Closing)
	case NodeOpeningElement:
		adopt(root, root.Ident)
		Link(root, root.Attributes)
	case NodeClosingElement:
		adopt(root, root.Ident)
	case NodeAttribute:
		adopt(root, root.Ident, root.Literal)
	case NodeIdentifier, NodeAttributeIdentifier, NodeLiteral,
		NodeDoctype, NodeComment, NodeText:
	}

	forEachPart(root, func(part *Node) bool {
		LinkTree(part)
		return true
	})
}

// adopt attaches single-valued parts, which have no siblings.
func adopt(parent *Node, parts ...*Node) {
	for _, part := range parts {
		if part == nil {
			continue
		}
		part.Parent = parent
		part.Prev = nil
		part.Next = nil
	}
}
