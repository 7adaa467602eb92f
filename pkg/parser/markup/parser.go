// Package markup provides the HTML tokenizer and tree builder used by
// markuplint. Parsing is total: every input, however malformed, yields a
// tree whose spans cover the source exactly.
package markup

import (
	"context"
	"fmt"

	"github.com/yaklabco/markuplint/pkg/htmlast"
)

// SourceTypeHTML marks trees parsed from plain HTML files.
const SourceTypeHTML = "html"

// Parser implements lint.Parser for HTML files.
// It holds no state and is safe for concurrent use.
type Parser struct{}

// New creates an HTML parser.
func New() *Parser {
	return &Parser{}
}

// Parse builds a Document for content. The only error it returns is a
// cancelled context; malformed markup is represented in the tree.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*htmlast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := htmlast.NewDocument(path, content)
	doc.Root = Parse(string(content))

	return doc, nil
}

// Parse tokenizes source and returns the Markup root. An empty or
// text-only source yields a root with a single Text child.
func Parse(source string) *htmlast.Node {
	return ParseRegions(source, []Region{{Start: 0, End: len(source)}}, SourceTypeHTML)
}

// Region is a half-open byte range of a source that holds markup.
type Region struct {
	Start int
	End   int
}

// ParseRegions parses only the given regions of source. The bytes between
// regions become Text children of the root, so the root's children still
// cover source without gaps. Regions must be sorted and disjoint; regions
// out of order or out of range are clipped.
func ParseRegions(source string, regions []Region, sourceType string) *htmlast.Node {
	root := &htmlast.Node{
		Kind:       htmlast.NodeMarkup,
		Start:      0,
		End:        len(source),
		Raw:        source,
		SourceType: sourceType,
	}

	var children []*htmlast.Node
	pos := 0
	for _, r := range regions {
		start, end := max(r.Start, pos), min(r.End, len(source))
		if start >= end {
			continue
		}
		if start > pos {
			children = append(children, newText(source, pos, start))
		}
		children = append(children, ParseRange(source, start, end)...)
		pos = end
	}
	if pos < len(source) {
		children = append(children, newText(source, pos, len(source)))
	}

	if len(children) == 0 {
		children = []*htmlast.Node{newText(source, 0, 0)}
	}

	root.Children = children
	htmlast.Link(root, children)

	return root
}

// ParseRange parses source[lo:hi] as a run of sibling nodes whose offsets
// are absolute positions in source. The returned nodes cover [lo,hi)
// without gaps; the caller links them to a parent.
func ParseRange(source string, lo, hi int) []*htmlast.Node {
	if lo < 0 {
		lo = 0
	}
	if hi > len(source) {
		hi = len(source)
	}
	if lo >= hi {
		return nil
	}

	b := &builder{scanner: scanner{src: source, pos: lo, end: hi}}
	return b.run()
}
