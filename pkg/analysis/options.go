package analysis

import (
	"fmt"
	"slices"
	"strings"
)

// SortField orders the per-file and per-rule views.
type SortField string

const (
	SortByCount    SortField = "count"
	SortByAlpha    SortField = "alpha"
	SortBySeverity SortField = "severity"
)

// SortFields lists the accepted sort fields in help order.
func SortFields() []SortField {
	return []SortField{SortByCount, SortByAlpha, SortBySeverity}
}

// IsValid reports whether s is one of SortFields.
func (s SortField) IsValid() bool {
	return slices.Contains(SortFields(), s)
}

// ParseSortField parses a case-insensitive sort field name.
func ParseSortField(value string) (SortField, error) {
	field := SortField(strings.ToLower(strings.TrimSpace(value)))
	if !field.IsValid() {
		return "", fmt.Errorf("unknown sort field %q (expected count, alpha or severity)", value)
	}
	return field, nil
}

// Options configures Analyze.
type Options struct {
	// IncludeDiagnostics keeps each file's diagnostics on its FileEntry.
	IncludeDiagnostics bool

	// SortBy orders ByFile and ByRule; ties break by name.
	SortBy   SortField
	SortDesc bool

	// WorkingDir makes reported paths relative. Empty keeps them as given.
	WorkingDir string
}

// DefaultOptions lists the most frequent offenders first.
func DefaultOptions() Options {
	return Options{
		IncludeDiagnostics: true,
		SortBy:             SortByCount,
		SortDesc:           true,
	}
}
