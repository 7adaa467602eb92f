// Package langdetect classifies candidate files as HTML or Markdown
// using go-enry's extension, filename and content heuristics.
package langdetect

import (
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
)

// Kind is the markup family a file belongs to.
type Kind string

const (
	// KindUnknown means the file is neither HTML nor Markdown.
	KindUnknown Kind = ""
	// KindHTML is HTML or XHTML markup.
	KindHTML Kind = "html"
	// KindMarkdown is Markdown with embedded HTML blocks.
	KindMarkdown Kind = "markdown"
)

// enry language names.
const (
	langHTML     = "HTML"
	langMarkdown = "Markdown"
)

// Classify returns the kind of the file at path. content may be nil,
// in which case only the path is considered.
func Classify(path string, content []byte) Kind {
	// .html and .md are claimed by more than one language in linguist, so
	// take the first markup family among the candidates.
	for _, lang := range enry.GetLanguagesByExtension(path, content, nil) {
		if kind := kindOf(lang); kind != KindUnknown {
			return kind
		}
	}

	if lang, safe := enry.GetLanguageByFilename(filepath.Base(path)); safe {
		return kindOf(lang)
	}

	if len(content) == 0 {
		return KindUnknown
	}

	return kindOf(enry.GetLanguage(filepath.Base(path), content))
}

// Extensions returns the file extensions go-enry associates with kind.
func Extensions(kind Kind) []string {
	switch kind {
	case KindHTML:
		return enry.GetLanguageExtensions(langHTML)
	case KindMarkdown:
		return enry.GetLanguageExtensions(langMarkdown)
	default:
		return nil
	}
}

// IsVendored reports whether path looks like third-party or generated
// output (node_modules, vendor, dist bundles).
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}

func kindOf(lang string) Kind {
	switch lang {
	case langHTML:
		return KindHTML
	case langMarkdown:
		return KindMarkdown
	default:
		return KindUnknown
	}
}
