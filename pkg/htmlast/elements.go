package htmlast

import "strings"

//nolint:gochecknoglobals // Read-only lookup table.
var voidElements = map[string]struct{}{
	"area": {}, "base": {}, "br": {}, "col": {}, "embed": {}, "hr": {}, "img": {},
	"input": {}, "link": {}, "meta": {}, "param": {}, "source": {}, "track": {}, "wbr": {},
}

//nolint:gochecknoglobals // Read-only lookup table.
var blockElements = map[string]struct{}{
	"address": {}, "article": {}, "aside": {}, "blockquote": {}, "body": {},
	"details": {}, "dialog": {}, "dd": {}, "div": {}, "dl": {}, "dt": {},
	"fieldset": {}, "figcaption": {}, "figure": {}, "footer": {}, "form": {},
	"h1": {}, "h2": {}, "h3": {}, "h4": {}, "h5": {}, "h6": {},
	"head": {}, "header": {}, "hgroup": {}, "hr": {}, "html": {}, "li": {},
	"main": {}, "nav": {}, "ol": {}, "p": {}, "pre": {}, "section": {},
	"table": {}, "tbody": {}, "td": {}, "tfoot": {}, "th": {}, "thead": {},
	"tr": {}, "ul": {},
}

//nolint:gochecknoglobals // Read-only lookup table.
var rawTextElements = map[string]struct{}{
	"script": {}, "style": {},
}

// IsVoidElement reports whether a tag name can never have content or a
// closing tag. Matching is case-insensitive.
func IsVoidElement(name string) bool {
	_, ok := voidElements[strings.ToLower(name)]
	return ok
}

// IsBlockElement reports whether a tag name renders as a block by default.
func IsBlockElement(name string) bool {
	_, ok := blockElements[strings.ToLower(name)]
	return ok
}

// IsRawTextElement reports whether the content of a tag is opaque text
// that runs until the matching closing tag.
func IsRawTextElement(name string) bool {
	_, ok := rawTextElements[strings.ToLower(name)]
	return ok
}
