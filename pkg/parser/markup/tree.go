package markup

import "github.com/yaklabco/markuplint/pkg/htmlast"

// frame is an element whose closing tag has not been seen yet.
type frame struct {
	element  *htmlast.Node
	children []*htmlast.Node
	rawText  bool
}

// builder drives the scanner and keeps the stack of open elements.
// Closing tags are never matched by name: any closing tag ends the
// innermost open element.
type builder struct {
	scanner

	top   []*htmlast.Node
	stack []*frame
}

func (b *builder) run() []*htmlast.Node {
	textStart := b.pos

	for b.pos < b.end {
		if current := b.current(); current != nil && current.rawText {
			stop := b.rawTextEnd(current.element.Name())
			b.appendText(textStart, stop)
			b.pos = stop
			textStart = stop
			if stop >= b.end {
				break
			}
			b.closeElement(b.scanClosing())
			textStart = b.pos
			continue
		}

		if b.src[b.pos] != '<' {
			b.pos++
			continue
		}

		kind := b.constructAt(b.pos)
		if kind == constructNone {
			b.pos++
			continue
		}

		b.appendText(textStart, b.pos)

		switch kind {
		case constructComment:
			b.append(b.scanComment())
		case constructDoctype:
			b.append(b.scanDoctype())
		case constructClosing:
			b.closeElement(b.scanClosing())
		case constructOpening:
			b.openElement(b.scanOpening())
		case constructNone:
		}

		textStart = b.pos
	}

	b.appendText(textStart, b.end)

	for len(b.stack) > 0 {
		b.closeElement(nil)
	}

	return b.top
}

func (b *builder) current() *frame {
	if len(b.stack) == 0 {
		return nil
	}
	return b.stack[len(b.stack)-1]
}

func (b *builder) append(node *htmlast.Node) {
	if current := b.current(); current != nil {
		current.children = append(current.children, node)
		return
	}
	b.top = append(b.top, node)
}

func (b *builder) appendText(start, end int) {
	if start < end {
		b.append(newText(b.src, start, end))
	}
}

// openElement wraps an opening tag in an Element. Void and self-closing
// elements are complete immediately; others wait for a closing tag.
func (b *builder) openElement(tag *htmlast.Node) {
	element := &htmlast.Node{
		Kind:    htmlast.NodeElement,
		Start:   tag.Start,
		End:     tag.End,
		Opening: tag,
	}
	tag.Parent = element

	if tag.Void || tag.SelfClosing {
		element.Raw = tag.Raw
		b.append(element)
		return
	}

	b.stack = append(b.stack, &frame{
		element: element,
		rawText: htmlast.IsRawTextElement(tag.Name()),
	})
}

// closeElement pops the innermost open element and attaches closing as
// its closing tag. A nil closing finishes an element left open at the end
// of input. A closing tag with nothing open becomes a sibling node.
func (b *builder) closeElement(closing *htmlast.Node) {
	current := b.current()
	if current == nil {
		if closing != nil {
			b.top = append(b.top, closing)
		}
		return
	}
	b.stack = b.stack[:len(b.stack)-1]

	element := current.element
	element.Children = current.children
	htmlast.Link(element, element.Children)

	switch {
	case closing != nil:
		closing.Parent = element
		element.Closing = closing
		element.End = closing.End
	case len(element.Children) > 0:
		element.End = max(element.Opening.End, element.Children[len(element.Children)-1].End)
	default:
		element.End = element.Opening.End
	}
	element.Raw = b.src[element.Start:element.End]

	b.append(element)
}
