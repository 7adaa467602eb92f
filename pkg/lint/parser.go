package lint

import (
	"context"

	"github.com/yaklabco/markuplint/pkg/htmlast"
)

// Parser turns file content into a Document.
//
// Implementations must be deterministic for a given (path, content) pair,
// free of I/O and safe for concurrent use. The returned Document must
// satisfy doc.Path == path, bytes.Equal(doc.Content, content) and
// htmlast.Check(doc.Root, content) == nil.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*htmlast.Document, error)
}
