package fix

import "bytes"

// ApplyEdits rewrites content with edits that are sorted and free of
// overlaps, as produced by Resolve or PrepareEdits.
func ApplyEdits(content []byte, edits []TextEdit) []byte {
	if len(edits) == 0 {
		return content
	}

	size := len(content)
	for _, edit := range edits {
		size += len(edit.NewText) - (edit.EndOffset - edit.StartOffset)
	}

	var out bytes.Buffer
	out.Grow(size)

	cursor := 0
	for _, edit := range edits {
		out.Write(content[cursor:edit.StartOffset])
		out.WriteString(edit.NewText)
		cursor = edit.EndOffset
	}
	out.Write(content[cursor:])

	return out.Bytes()
}
