// Package markdown lints HTML embedded in Markdown files. It uses goldmark
// to find raw HTML blocks and hands each one to the markup parser at its
// absolute offset; the rest of the file is kept as plain Text.
package markdown

import (
	"context"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/text"

	"github.com/yaklabco/markuplint/pkg/htmlast"
	"github.com/yaklabco/markuplint/pkg/parser/markup"
)

// SourceTypeMarkdown marks trees parsed from Markdown hosts.
const SourceTypeMarkdown = "markdown"

// Flavors understood by New.
const (
	FlavorCommonMark = "commonmark"
	FlavorGFM        = "gfm"
)

// Parser implements lint.Parser for Markdown files.
type Parser struct {
	flavor string
	md     goldmark.Markdown
}

// New creates a Markdown parser. Unknown flavors fall back to GFM.
func New(flavor string) *Parser {
	if flavor != FlavorCommonMark {
		flavor = FlavorGFM
	}

	var opts []goldmark.Option
	if flavor == FlavorGFM {
		opts = append(opts, goldmark.WithExtensions(extension.GFM))
	}

	return &Parser{flavor: flavor, md: goldmark.New(opts...)}
}

// Flavor returns the configured Markdown flavor.
func (p *Parser) Flavor() string {
	return p.flavor
}

// Parse builds a Document whose root spans the whole file and whose
// elements come only from raw HTML blocks.
func (p *Parser) Parse(ctx context.Context, path string, content []byte) (*htmlast.Document, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	regions := p.Regions(content)

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("parse cancelled: %w", err)
	}

	doc := htmlast.NewDocument(path, content)
	doc.Root = markup.ParseRegions(string(content), regions, SourceTypeMarkdown)

	return doc, nil
}

// Regions returns the byte ranges of the raw HTML blocks in content, in
// source order. Lines of a block that are not contiguous in the source,
// such as blocks inside block quotes, yield one region per run.
func (p *Parser) Regions(content []byte) []markup.Region {
	doc := p.md.Parser().Parse(text.NewReader(content), parser.WithContext(parser.NewContext()))

	var regions []markup.Region
	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		block, ok := n.(*ast.HTMLBlock)
		if !ok {
			return ast.WalkContinue, nil
		}

		lines := block.Lines()
		for i := range lines.Len() {
			regions = appendSegment(regions, lines.At(i))
		}
		if block.HasClosure() {
			regions = appendSegment(regions, block.ClosureLine)
		}
		return ast.WalkSkipChildren, nil
	})

	return regions
}

// appendSegment extends the last region when seg continues it.
func appendSegment(regions []markup.Region, seg text.Segment) []markup.Region {
	if seg.Stop <= seg.Start {
		return regions
	}
	if n := len(regions); n > 0 && regions[n-1].End == seg.Start {
		regions[n-1].End = seg.Stop
		return regions
	}
	return append(regions, markup.Region{Start: seg.Start, End: seg.Stop})
}
