package fix

import (
	"fmt"
	"slices"
)

// Plan is the outcome of resolving a batch of node edits.
type Plan struct {
	// Accepted edits, in source order.
	Accepted []NodeEdit

	// Edits are the byte replacements for Accepted, sorted by offset.
	Edits []TextEdit

	// Skipped edits lost a conflict or repeated an earlier edit of the
	// same node and field.
	Skipped []NodeEdit
}

// Resolve orders edits by source position and keeps the first of any
// group of overlapping edits. A later edit of the same node and field is
// skipped even when it agrees with the first. Edits are compared in the
// order rules produced them when they start at the same offset, so the
// policy is deterministic for a fixed rule order.
//
// It fails only when an edit cannot be expressed in the source of the
// given length.
func Resolve(edits []NodeEdit, contentLen int) (*Plan, error) {
	type candidate struct {
		edit NodeEdit
		text TextEdit
	}

	candidates := make([]candidate, 0, len(edits))
	for _, edit := range edits {
		text, err := edit.TextEdit()
		if err != nil {
			return nil, fmt.Errorf("rule %s: %w", edit.Rule, err)
		}
		candidates = append(candidates, candidate{edit: edit, text: text})
	}

	texts := make([]TextEdit, len(candidates))
	for i, c := range candidates {
		texts[i] = c.text
	}
	if err := ValidateEdits(texts, contentLen); err != nil {
		return nil, err
	}

	slices.SortStableFunc(candidates, func(a, b candidate) int {
		return compareEdits(a.text, b.text)
	})

	plan := &Plan{}
	seen := make(map[key]bool, len(candidates))
	var last *TextEdit

	for _, c := range candidates {
		if seen[c.edit.key()] || (last != nil && last.Overlaps(c.text)) {
			plan.Skipped = append(plan.Skipped, c.edit)
			continue
		}
		seen[c.edit.key()] = true
		plan.Accepted = append(plan.Accepted, c.edit)
		plan.Edits = append(plan.Edits, c.text)
		last = &plan.Edits[len(plan.Edits)-1]
	}

	return plan, nil
}

// ApplyToTree stores every accepted edit on the in-memory tree.
func (p *Plan) ApplyToTree() error {
	for _, edit := range p.Accepted {
		if err := edit.Apply(); err != nil {
			return err
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then by end offset.
func SortEdits(edits []TextEdit) {
	slices.SortStableFunc(edits, compareEdits)
}

func compareEdits(a, b TextEdit) int {
	if a.StartOffset != b.StartOffset {
		return a.StartOffset - b.StartOffset
	}
	return a.EndOffset - b.EndOffset
}

// PrepareEdits validates and sorts raw text edits, failing on the first
// overlap. It is the strict counterpart of Resolve for callers that
// build TextEdits directly.
func PrepareEdits(edits []TextEdit, contentLen int) ([]TextEdit, error) {
	if err := ValidateEdits(edits, contentLen); err != nil {
		return nil, err
	}

	sorted := slices.Clone(edits)
	SortEdits(sorted)

	for i := 1; i < len(sorted); i++ {
		if sorted[i-1].Overlaps(sorted[i]) {
			return nil, fmt.Errorf("%w: %s and %s", ErrEditConflict, sorted[i-1], sorted[i])
		}
	}

	return sorted, nil
}
