package runner

import (
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/langdetect"
	"github.com/yaklabco/markuplint/pkg/lint"
)

// FileOutcome is what happened to one discovered file. Exactly one of
// Result and Error is set for files the run reached.
type FileOutcome struct {
	Path string
	Kind langdetect.Kind

	// Cached marks diagnostics replayed from the result cache. Cached
	// results carry no tree and no fixes.
	Cached bool

	Result *lint.PipelineResult
	Error  error
}

// Stats are run-wide counters. Only error and warn diagnostics are
// counted; off rules never report.
type Stats struct {
	Discovered int
	Linted     int
	FromCache  int
	Failed     int

	// Skipped counts files whose fixes were abandoned because the file
	// changed on disk or the fixed text failed verification.
	Skipped int

	// Rewritten counts files written back with fixes.
	Rewritten int

	WithIssues  int
	Diagnostics int
	Errors      int
	Warnings    int
	Fixable     int

	// Fixed is the number of edits applied across all passes and files.
	Fixed int

	// Rejected is the number of fixes that lost an overlap conflict in
	// the final pass.
	Rejected int

	// RuleFailures counts rules that panicked, per file.
	RuleFailures int
}

// Result is the ordered set of outcomes of one run.
type Result struct {
	// Files is sorted by path.
	Files []FileOutcome
	Stats Stats
}

// HasErrors reports whether any error-severity diagnostic was produced.
func (r *Result) HasErrors() bool {
	return r != nil && r.Stats.Errors > 0
}

// HasIssues reports whether any diagnostic was produced.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.Diagnostics > 0
}

func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	switch {
	case outcome.Error != nil:
		r.Stats.Failed++
		return
	case outcome.Result == nil:
		return
	}

	pr := outcome.Result
	r.Stats.Linted++
	if outcome.Cached {
		r.Stats.FromCache++
	}

	switch pr.Outcome {
	case lint.OutcomeSkipped:
		r.Stats.Skipped++
	case lint.OutcomeFixed:
		r.Stats.Rewritten++
	}
	r.Stats.Fixed += pr.Applied

	if pr.FileResult == nil {
		return
	}

	r.Stats.Rejected += len(pr.Skipped)
	r.Stats.RuleFailures += len(pr.RuleErrors)
	r.Stats.Fixable += pr.FixableCount()

	if n := len(pr.Diagnostics); n > 0 {
		r.Stats.Diagnostics += n
		r.Stats.WithIssues++
	}
	for i := range pr.Diagnostics {
		if pr.Diagnostics[i].Severity == config.SeverityError {
			r.Stats.Errors++
		} else {
			r.Stats.Warnings++
		}
	}
}
