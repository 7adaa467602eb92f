package config

import (
	"fmt"
	"strings"
)

// OutputFormat specifies the output format for diagnostics.
type OutputFormat string

const (
	FormatText    OutputFormat = "text"
	FormatJSON    OutputFormat = "json"
	FormatSARIF   OutputFormat = "sarif"
	FormatDiff    OutputFormat = "diff"
	FormatSummary OutputFormat = "summary"
)

// OutputFormats lists every supported format.
func OutputFormats() []OutputFormat {
	return []OutputFormat{FormatText, FormatJSON, FormatSARIF, FormatDiff, FormatSummary}
}

// ParseOutputFormat converts a string to an OutputFormat.
// An empty string selects text.
func ParseOutputFormat(value string) (OutputFormat, error) {
	if value == "" {
		return FormatText, nil
	}

	format := OutputFormat(strings.ToLower(value))
	for _, known := range OutputFormats() {
		if format == known {
			return format, nil
		}
	}

	return "", fmt.Errorf("unknown format %q (expected text, json, sarif, diff or summary)", value)
}
