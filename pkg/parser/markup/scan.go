package markup

import (
	"strings"

	"github.com/yaklabco/markuplint/pkg/htmlast"
)

// construct identifies what a '<' at the cursor opens.
type construct int

const (
	constructNone construct = iota
	constructOpening
	constructClosing
	constructComment
	constructDoctype
)

const (
	commentOpen  = "<!--"
	commentClose = "-->"
	doctypeOpen  = "<!doctype"
)

// scanner is a cursor over src bounded by end. Every scan method leaves
// pos just past the construct it consumed and never moves beyond end.
type scanner struct {
	src string
	pos int
	end int
}

func (s *scanner) hasPrefix(at int, prefix string) bool {
	return at+len(prefix) <= s.end && s.src[at:at+len(prefix)] == prefix
}

func (s *scanner) hasPrefixFold(at int, prefix string) bool {
	return at+len(prefix) <= s.end && strings.EqualFold(s.src[at:at+len(prefix)], prefix)
}

// index finds needle in the bounded window starting at from.
func (s *scanner) index(from int, needle string) int {
	if from > s.end {
		return -1
	}
	idx := strings.Index(s.src[from:s.end], needle)
	if idx < 0 {
		return -1
	}
	return from + idx
}

func (s *scanner) skipSpace(at int) int {
	for at < s.end && isSpace(s.src[at]) {
		at++
	}
	return at
}

// constructAt decides, with bounded lookahead, whether the '<' at at
// starts markup. A '<' that starts nothing is ordinary text.
func (s *scanner) constructAt(at int) construct {
	switch {
	case s.hasPrefix(at, commentOpen):
		return constructComment
	case s.hasPrefixFold(at, doctypeOpen):
		return constructDoctype
	case at+2 < s.end && s.src[at+1] == '/' && isLetter(s.src[at+2]):
		return constructClosing
	case at+1 < s.end && isLetter(s.src[at+1]):
		return constructOpening
	default:
		return constructNone
	}
}

func (s *scanner) scanComment() *htmlast.Node {
	start := s.pos
	bodyStart := start + len(commentOpen)
	bodyEnd := s.end
	end := s.end

	if idx := s.index(bodyStart, commentClose); idx >= 0 {
		bodyEnd = idx
		end = idx + len(commentClose)
	}

	s.pos = end
	return &htmlast.Node{
		Kind:  htmlast.NodeComment,
		Start: start,
		End:   end,
		Value: s.src[bodyStart:bodyEnd],
		Raw:   s.src[start:end],
	}
}

// scanDoctype consumes "<!DOCTYPE ...>". The value is the text between
// the keyword and '>', without leading whitespace.
func (s *scanner) scanDoctype() *htmlast.Node {
	start := s.pos
	bodyStart := start + len(doctypeOpen)
	bodyEnd := s.end
	end := s.end

	if idx := s.index(bodyStart, ">"); idx >= 0 {
		bodyEnd = idx
		end = idx + 1
	}

	s.pos = end
	return &htmlast.Node{
		Kind:  htmlast.NodeDoctype,
		Start: start,
		End:   end,
		Value: strings.TrimLeft(s.src[bodyStart:bodyEnd], " \t\r\n\f"),
		Raw:   s.src[start:end],
	}
}

// scanOpening consumes "<name attrs... >" or "<name attrs... />".
// An unterminated tag runs to the end of the window.
func (s *scanner) scanOpening() *htmlast.Node {
	start := s.pos
	nameStart := start + 1
	nameEnd := nameStart
	for nameEnd < s.end && !isSpace(s.src[nameEnd]) && s.src[nameEnd] != '>' && s.src[nameEnd] != '/' {
		nameEnd++
	}

	name := s.src[nameStart:nameEnd]
	tag := &htmlast.Node{
		Kind:  htmlast.NodeOpeningElement,
		Start: start,
		Ident: &htmlast.Node{
			Kind:  htmlast.NodeIdentifier,
			Start: nameStart,
			End:   nameEnd,
			Value: name,
			Raw:   name,
		},
		Void:  htmlast.IsVoidElement(name),
		Block: htmlast.IsBlockElement(name),
	}

	s.pos = nameEnd
	for s.pos < s.end {
		char := s.src[s.pos]
		switch {
		case char == '>':
			s.pos++
			return s.finishTag(tag)
		case s.hasPrefix(s.pos, "/>"):
			tag.SelfClosing = true
			s.pos += 2
			return s.finishTag(tag)
		case isSpace(char):
			gapStart := s.pos
			s.pos = s.skipSpace(s.pos)
			tag.Attributes = append(tag.Attributes, newText(s.src, gapStart, s.pos))
		default:
			tag.Attributes = append(tag.Attributes, s.scanAttribute())
		}
	}

	return s.finishTag(tag)
}

func (s *scanner) finishTag(tag *htmlast.Node) *htmlast.Node {
	tag.End = s.pos
	tag.Raw = s.src[tag.Start:tag.End]
	tag.Ident.Parent = tag
	htmlast.Link(tag, tag.Attributes)
	return tag
}

// scanAttribute consumes one attribute starting at a non-space byte.
// Whitespace around '=' belongs to the attribute; whitespace after a
// boolean attribute is left for the next gap.
func (s *scanner) scanAttribute() *htmlast.Node {
	start := s.pos
	nameEnd := start
	for nameEnd < s.end {
		char := s.src[nameEnd]
		if isSpace(char) || char == '=' || char == '>' || s.hasPrefix(nameEnd, "/>") {
			break
		}
		nameEnd++
	}
	if nameEnd == start {
		nameEnd++
	}

	name := s.src[start:nameEnd]
	attr := &htmlast.Node{
		Kind:  htmlast.NodeAttribute,
		Start: start,
		Ident: &htmlast.Node{
			Kind:  htmlast.NodeAttributeIdentifier,
			Start: start,
			End:   nameEnd,
			Value: name,
			Raw:   name,
		},
	}
	attr.Ident.Parent = attr

	end := nameEnd
	if eq := s.skipSpace(nameEnd); eq < s.end && s.src[eq] == '=' && s.src[start] != '=' {
		end = eq + 1
		if literal := s.scanValue(s.skipSpace(end)); literal != nil {
			literal.Parent = attr
			attr.Literal = literal
			end = literal.End
		}
	}

	s.pos = end
	attr.End = end
	attr.Raw = s.src[start:end]
	return attr
}

// scanValue reads a quoted or unquoted attribute value at at. It returns
// nil when no value is present.
func (s *scanner) scanValue(at int) *htmlast.Node {
	if at >= s.end {
		return nil
	}

	if quote := s.src[at]; quote == '"' || quote == '\'' {
		valueEnd := s.end
		end := s.end
		if idx := s.index(at+1, string(quote)); idx >= 0 {
			valueEnd = idx
			end = idx + 1
		}
		return &htmlast.Node{
			Kind:  htmlast.NodeLiteral,
			Start: at,
			End:   end,
			Value: s.src[at+1 : valueEnd],
			Raw:   s.src[at:end],
		}
	}

	end := at
	for end < s.end && !isSpace(s.src[end]) && s.src[end] != '>' {
		end++
	}
	if end == at {
		return nil
	}

	return &htmlast.Node{
		Kind:  htmlast.NodeLiteral,
		Start: at,
		End:   end,
		Value: s.src[at:end],
		Raw:   s.src[at:end],
	}
}

// scanClosing consumes "</name ...>". Anything between the name and '>'
// is ignored.
func (s *scanner) scanClosing() *htmlast.Node {
	start := s.pos
	nameStart := start + 2
	nameEnd := nameStart
	for nameEnd < s.end && !isSpace(s.src[nameEnd]) && s.src[nameEnd] != '>' {
		nameEnd++
	}

	end := s.end
	if idx := s.index(nameEnd, ">"); idx >= 0 {
		end = idx + 1
	}
	s.pos = end

	name := s.src[nameStart:nameEnd]
	tag := &htmlast.Node{
		Kind:  htmlast.NodeClosingElement,
		Start: start,
		End:   end,
		Raw:   s.src[start:end],
		Ident: &htmlast.Node{
			Kind:  htmlast.NodeIdentifier,
			Start: nameStart,
			End:   nameEnd,
			Value: name,
			Raw:   name,
		},
	}
	tag.Ident.Parent = tag
	return tag
}

// rawTextEnd finds the start of "</name" closing a raw-text element, or
// the end of the window.
func (s *scanner) rawTextEnd(name string) int {
	for at := s.pos; at < s.end; at++ {
		if s.src[at] != '<' || !s.hasPrefix(at, "</") || !s.hasPrefixFold(at+2, name) {
			continue
		}
		next := at + 2 + len(name)
		if next >= s.end || isSpace(s.src[next]) || s.src[next] == '>' || s.src[next] == '/' {
			return at
		}
	}
	return s.end
}

func newText(src string, start, end int) *htmlast.Node {
	return &htmlast.Node{
		Kind:  htmlast.NodeText,
		Start: start,
		End:   end,
		Value: src[start:end],
		Raw:   src[start:end],
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\f'
}

func isLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
