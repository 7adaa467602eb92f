// Package analysis aggregates a lint run into per-file and per-rule views
// shared by the summary and JSON reporters.
package analysis

import (
	"time"

	"github.com/yaklabco/markuplint/pkg/lint"
)

// Report contains pre-computed views of lint results.
type Report struct {
	Version   string    `json:"version"`
	Timestamp time.Time `json:"timestamp"`

	// Files lists every processed file in path order, including clean ones.
	Files []FileEntry `json:"files"`

	// ByFile and ByRule only include entries with issues.
	ByFile []FileAnalysis `json:"byFile,omitempty"`
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	Totals Totals `json:"summary"`
}

// StatusFailed marks a file that could not be read, parsed or written.
const StatusFailed = "failed"

// FileEntry is one file's outcome with its diagnostics. Status is the
// pipeline outcome name or StatusFailed.
type FileEntry struct {
	Path        string            `json:"path"`
	Kind        string            `json:"kind,omitempty"`
	Status      string            `json:"status"`
	Diagnostics []lint.Diagnostic `json:"diagnostics"`
	Edits       int               `json:"edits,omitempty"`
	Backup      string            `json:"backup,omitempty"`
	Reason      string            `json:"reason,omitempty"`
	Cached      bool              `json:"cached,omitempty"`
	Error       string            `json:"error,omitempty"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Files           int `json:"filesChecked"`
	FilesWithIssues int `json:"filesWithIssues"`
	FilesFixed      int `json:"filesFixed"`
	FilesSkipped    int `json:"filesSkipped"`
	FilesFailed     int `json:"filesFailed"`
	Issues          int `json:"totalIssues"`
	Errors          int `json:"errors"`
	Warnings        int `json:"warnings"`
	Fixable         int `json:"fixable"`
}

// HasIssues returns true if there are any issues.
func (t Totals) HasIssues() bool {
	return t.Issues > 0
}

// HasErrors returns true if there are any errors.
func (t Totals) HasErrors() bool {
	return t.Errors > 0
}

// FileAnalysis contains aggregated data for a single file.
type FileAnalysis struct {
	Path     string   `json:"path"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Rules    []string `json:"rules,omitempty"`
}

// RuleAnalysis contains aggregated data for a single rule.
type RuleAnalysis struct {
	Rule     string   `json:"rule"`
	Issues   int      `json:"issues"`
	Errors   int      `json:"errors"`
	Warnings int      `json:"warnings"`
	Fixable  bool     `json:"fixable"`
	Files    []string `json:"files,omitempty"`
}
