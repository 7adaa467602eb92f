// Package logging provides a structured logging wrapper around charmbracelet/log.
package logging

// Field name constants for structured logging.
const (
	// Common fields.
	FieldError      = "error"
	FieldPath       = "path"
	FieldPaths      = "paths"
	FieldFile       = "file"
	FieldFiles      = "files"
	FieldOutput     = "output"
	FieldWorkingDir = "working_dir"
	FieldDuration   = "duration"

	// Configuration fields.
	FieldConfig = "config"
	FieldFix    = "fix"
	FieldDryRun = "dry_run"
	FieldJobs   = "jobs"
	FieldFormat = "format"

	// Lint fields.
	FieldRule        = "rule"
	FieldRules       = "rules"
	FieldDiagnostics = "diagnostics"
	FieldEdits       = "edits"
	FieldSkipped     = "skipped"
	FieldPasses      = "passes"
	FieldWorkers     = "workers"
	FieldCacheHit    = "cache_hit"
	FieldReason      = "reason"

	// Statistics fields.
	FieldFilesLinted    = "files_linted"
	FieldFilesRewritten = "files_rewritten"

	// Version fields.
	FieldVersion = "version"
	FieldCommit  = "commit"
	FieldBuilt   = "built"

	// Rule listing fields.
	FieldName        = "name"
	FieldSeverity    = "severity"
	FieldFixable     = "fixable"
	FieldDescription = "description"
)
