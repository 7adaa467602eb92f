package htmlast

import (
	"errors"
	"fmt"
)

// ErrMalformedTree is wrapped by every error returned from Check.
var ErrMalformedTree = errors.New("malformed tree")

// Check verifies the structural invariants of a parsed tree against the
// source it was parsed from:
//   - the root is a Markup node spanning the whole source
//   - every span lies inside the source and inside its parent's span
//   - sibling sequences are ordered, gapless and correctly linked
//   - Raw equals the covered source text
//   - elements start at their opening tag and end at their closing tag
//   - void and self-closing elements own nothing
func Check(root *Node, source string) error {
	if root == nil || root.Kind != NodeMarkup {
		return fmt.Errorf("%w: root is not a Markup node", ErrMalformedTree)
	}
	if root.Start != 0 || root.End != len(source) {
		return fmt.Errorf("%w: root spans [%d,%d), source has %d bytes",
			ErrMalformedTree, root.Start, root.End, len(source))
	}
	if root.Parent != nil {
		return fmt.Errorf("%w: root has a parent", ErrMalformedTree)
	}

	return Walk(root, func(n *Node) error {
		return checkNode(n, source)
	})
}

func checkNode(n *Node, source string) error {
	if n.Start < 0 || n.Start > n.End || n.End > len(source) {
		return malformed(n, "span out of range")
	}
	if n.Raw != source[n.Start:n.End] {
		return malformed(n, "raw text differs from source")
	}

	for _, part := range Parts(n) {
		if part.Parent != n {
			return malformed(part, "parent link does not point at owner")
		}
		if part.Start < n.Start || part.End > n.End {
			return malformed(part, "span escapes parent")
		}
	}

	switch n.Kind {
	case NodeMarkup:
		return checkSequence(n.Children, n.Start, n.End)
	case NodeElement:
		return checkElement(n)
	case NodeOpeningElement:
		if n.Ident == nil {
			return malformed(n, "opening tag without name")
		}
		if err := checkSequence(n.Attributes, n.Ident.End, -1); err != nil {
			return err
		}
	case NodeClosingElement, NodeIdentifier, NodeAttribute, NodeAttributeIdentifier,
		NodeLiteral, NodeDoctype, NodeComment, NodeText:
	}

	return nil
}

func checkElement(n *Node) error {
	if n.Opening == nil || n.Opening.Start != n.Start {
		return malformed(n, "element does not start with its opening tag")
	}
	if n.Closing != nil && n.Closing.End != n.End {
		return malformed(n, "element does not end with its closing tag")
	}
	if n.Childless() && (len(n.Children) > 0 || n.Closing != nil) {
		return malformed(n, "void or self-closing element owns content")
	}

	end := n.End
	if n.Closing != nil {
		end = n.Closing.Start
	}
	return checkSequence(n.Children, n.Opening.End, end)
}

// checkSequence verifies that seq covers [start,end) without gaps and
// that Prev/Next mirror slice order. An end of -1 leaves the tail open.
func checkSequence(seq []*Node, start, end int) error {
	cursor := start
	for idx, node := range seq {
		if node.Start != cursor {
			return malformed(node, fmt.Sprintf("expected to start at %d", cursor))
		}
		cursor = node.End

		var prev, next *Node
		if idx > 0 {
			prev = seq[idx-1]
		}
		if idx+1 < len(seq) {
			next = seq[idx+1]
		}
		if node.Prev != prev || node.Next != next {
			return malformed(node, "sibling links disagree with order")
		}
	}

	if end >= 0 && cursor != end {
		return fmt.Errorf("%w: sequence ends at %d, expected %d", ErrMalformedTree, cursor, end)
	}
	return nil
}

func malformed(n *Node, msg string) error {
	return fmt.Errorf("%w: %s [%d,%d): %s", ErrMalformedTree, n.Kind, n.Start, n.End, msg)
}
