// Package fix turns rule fixes into byte-level edits and applies them.
//
// Rules describe corrections as NodeEdit values: a node, the field to
// change and its new value. Plan orders those descriptors, resolves
// conflicts and converts the survivors into TextEdit ranges for the
// writer.
package fix

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidEdit is returned for edits with impossible ranges or
	// for descriptors that target a field a node does not have.
	ErrInvalidEdit = errors.New("invalid edit")

	// ErrEditConflict is returned when two edits overlap.
	ErrEditConflict = errors.New("conflicting edits")
)

// TextEdit replaces the bytes [StartOffset, EndOffset) with NewText.
type TextEdit struct {
	StartOffset int
	EndOffset   int
	NewText     string
}

// Overlaps reports whether two edits touch a shared byte, or insert at
// the same offset.
func (e TextEdit) Overlaps(other TextEdit) bool {
	if e.StartOffset == other.StartOffset {
		return true
	}
	return e.StartOffset < other.EndOffset && other.StartOffset < e.EndOffset
}

func (e TextEdit) String() string {
	return fmt.Sprintf("[%d:%d]=%q", e.StartOffset, e.EndOffset, e.NewText)
}

// ValidateEdits checks every range against the content length.
func ValidateEdits(edits []TextEdit, contentLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return fmt.Errorf("%w %s: negative start", ErrInvalidEdit, edit)
		case edit.EndOffset < edit.StartOffset:
			return fmt.Errorf("%w %s: end before start", ErrInvalidEdit, edit)
		case edit.EndOffset > contentLen:
			return fmt.Errorf("%w %s: end past content length %d", ErrInvalidEdit, edit, contentLen)
		}
	}
	return nil
}
