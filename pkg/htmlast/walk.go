package htmlast

import "errors"

// Visitor receives nodes during Traverse. Either callback may be nil.
type Visitor struct {
	// Enter is called before a node's parts are visited.
	Enter func(n *Node)

	// Exit is called after all of a node's parts have been visited.
	Exit func(n *Node)
}

// Traverse walks the whole tree depth-first in source order. Enter runs
// pre-order and Exit post-order. An Element visits its opening tag, then
// its children, then its closing tag; an opening tag visits its name and
// then its attribute sequence; an attribute visits its name and value.
// The walk always completes and never modifies the tree.
func Traverse(root *Node, visitor Visitor) {
	if root == nil {
		return
	}

	if visitor.Enter != nil {
		visitor.Enter(root)
	}

	forEachPart(root, func(part *Node) bool {
		Traverse(part, visitor)
		return true
	})

	if visitor.Exit != nil {
		visitor.Exit(root)
	}
}

// Parts returns the direct sub-nodes of n in traversal order.
func Parts(n *Node) []*Node {
	var parts []*Node
	forEachPart(n, func(part *Node) bool {
		parts = append(parts, part)
		return true
	})
	return parts
}

// forEachPart calls fn for each direct sub-node of n in source order
// until fn returns false. It returns false if iteration was stopped.
func forEachPart(n *Node, fn func(*Node) bool) bool {
	if n == nil {
		return true
	}

	switch n.Kind {
	case NodeMarkup:
		return eachOf(n.Children, fn)
	case NodeElement:
		if n.Opening != nil && !fn(n.Opening) {
			return false
		}
		if !eachOf(n.Children, fn) {
			return false
		}
		if n.Closing != nil {
			return fn(n.Closing)
		}
	case NodeOpeningElement:
		if n.Ident != nil && !fn(n.Ident) {
			return false
		}
		return eachOf(n.Attributes, fn)
	case NodeClosingElement:
		if n.Ident != nil {
			return fn(n.Ident)
		}
	case NodeAttribute:
		if n.Ident != nil && !fn(n.Ident) {
			return false
		}
		if n.Literal != nil {
			return fn(n.Literal)
		}
	case NodeIdentifier, NodeAttributeIdentifier, NodeLiteral,
		NodeDoctype, NodeComment, NodeText:
	}

	return true
}

func eachOf(nodes []*Node, fn func(*Node) bool) bool {
	for _, node := range nodes {
		if !fn(node) {
			return false
		}
	}
	return true
}

// WalkFunc is the function signature for Walk callbacks.
// Return a non-nil error to stop the walk.
type WalkFunc func(n *Node) error

// SkipChildren may be returned by a WalkFunc to skip the parts of the
// current node without stopping the walk.
var SkipChildren = errors.New("skip children") //nolint:revive,staticcheck // Sentinel, not a failure.

// Walk performs a pre-order traversal in the same order as Traverse.
// If walkFunc returns an error other than SkipChildren the walk stops and
// returns it.
func Walk(root *Node, walkFunc WalkFunc) error {
	if root == nil {
		return nil
	}

	if err := walkFunc(root); err != nil {
		if errors.Is(err, SkipChildren) {
			return nil
		}
		return err
	}

	var walkErr error
	forEachPart(root, func(part *Node) bool {
		walkErr = Walk(part, walkFunc)
		return walkErr == nil
	})

	return walkErr
}

// FindAll returns all nodes matching the predicate in traversal order.
func FindAll(root *Node, predicate func(n *Node) bool) []*Node {
	var result []*Node

	//nolint:errcheck,revive // Walk only returns nil errors in this usage
	Walk(root, func(node *Node) error {
		if predicate(node) {
			result = append(result, node)
		}
		return nil
	})

	return result
}

// FindFirst returns the first node matching the predicate, or nil.
func FindFirst(root *Node, predicate func(n *Node) bool) *Node {
	var found *Node

	//nolint:errcheck,revive // errStopWalk is expected and intentionally ignored
	Walk(root, func(node *Node) error {
		if predicate(node) {
			found = node
			return errStopWalk
		}
		return nil
	})

	return found
}

// FindByKind returns all nodes of the specified kind.
func FindByKind(root *Node, kind NodeKind) []*Node {
	return FindAll(root, func(n *Node) bool {
		return n.Kind == kind
	})
}

var errStopWalk = errors.New("stop walk")
