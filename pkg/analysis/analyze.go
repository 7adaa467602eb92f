package analysis

import (
	"cmp"
	"maps"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/lint"
	"github.com/yaklabco/markuplint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

// DisplayPath makes path relative to workDir when possible.
func DisplayPath(path, workDir string) string {
	if workDir == "" {
		return path
	}
	rel, err := filepath.Rel(workDir, path)
	if err != nil {
		return path
	}
	return rel
}

// counts is the error and warning tally shared by file and rule views.
type counts struct {
	issues, errors, warnings int
}

func (c *counts) add(sev config.Severity) {
	c.issues++
	switch sev {
	case config.SeverityError:
		c.errors++
	case config.SeverityWarn, "":
		c.warnings++
	}
}

type fileAcc struct {
	counts
	rules map[string]struct{}
}

type ruleAcc struct {
	counts
	fixable bool
	files   map[string]struct{}
}

// Analyze transforms a runner.Result into a Report in one pass.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{
		Version:   ReportVersion,
		Timestamp: time.Now(),
		Files:     []FileEntry{},
	}
	if result == nil {
		return report
	}

	files := make(map[string]*fileAcc)
	rules := make(map[string]*ruleAcc)

	for _, outcome := range result.Files {
		path := DisplayPath(outcome.Path, opts.WorkingDir)
		entry := FileEntry{
			Path:        path,
			Kind:        string(outcome.Kind),
			Diagnostics: []lint.Diagnostic{},
			Cached:      outcome.Cached,
		}
		report.Totals.Files++

		if outcome.Error != nil {
			entry.Status = StatusFailed
			entry.Error = outcome.Error.Error()
			report.Totals.FilesFailed++
		}

		if pr := outcome.Result; pr != nil {
			entry.Status = pr.Outcome.String()
			entry.Edits = pr.Applied
			entry.Backup = pr.BackupPath
			entry.Reason = pr.Reason
			switch pr.Outcome {
			case lint.OutcomeFixed:
				report.Totals.FilesFixed++
			case lint.OutcomeSkipped:
				report.Totals.FilesSkipped++
			}
		}

		if outcome.Result != nil && outcome.Result.FileResult != nil && len(outcome.Result.Diagnostics) > 0 {
			report.Totals.FilesWithIssues++
			fa := &fileAcc{rules: make(map[string]struct{})}
			files[path] = fa

			for _, diag := range outcome.Result.Diagnostics {
				report.Totals.Issues++
				switch diag.Severity {
				case config.SeverityError:
					report.Totals.Errors++
				default:
					report.Totals.Warnings++
				}
				if diag.HasFix() {
					report.Totals.Fixable++
				}

				fa.add(diag.Severity)
				fa.rules[diag.RuleName] = struct{}{}

				ra, ok := rules[diag.RuleName]
				if !ok {
					ra = &ruleAcc{files: make(map[string]struct{})}
					rules[diag.RuleName] = ra
				}
				ra.add(diag.Severity)
				ra.fixable = ra.fixable || diag.HasFix()
				ra.files[path] = struct{}{}
			}

			if opts.IncludeDiagnostics {
				entry.Diagnostics = outcome.Result.Diagnostics
			}
		}

		report.Files = append(report.Files, entry)
	}

	for path, fa := range files {
		report.ByFile = append(report.ByFile, FileAnalysis{
			Path:     path,
			Issues:   fa.issues,
			Errors:   fa.errors,
			Warnings: fa.warnings,
			Rules:    slices.Sorted(maps.Keys(fa.rules)),
		})
	}
	for name, ra := range rules {
		report.ByRule = append(report.ByRule, RuleAnalysis{
			Rule:     name,
			Issues:   ra.issues,
			Errors:   ra.errors,
			Warnings: ra.warnings,
			Fixable:  ra.fixable,
			Files:    slices.Sorted(maps.Keys(ra.files)),
		})
	}

	slices.SortFunc(report.ByFile, func(a, b FileAnalysis) int {
		return compareCounts(opts, a.counts(), b.counts(), a.Path, b.Path)
	})
	slices.SortFunc(report.ByRule, func(a, b RuleAnalysis) int {
		return compareCounts(opts, a.counts(), b.counts(), a.Rule, b.Rule)
	})

	return report
}

func (f FileAnalysis) counts() counts {
	return counts{issues: f.Issues, errors: f.Errors, warnings: f.Warnings}
}

func (r RuleAnalysis) counts() counts {
	return counts{issues: r.Issues, errors: r.Errors, warnings: r.Warnings}
}

// compareCounts orders two entries by opts.SortBy, falling back to name.
func compareCounts(opts Options, left, right counts, leftName, rightName string) int {
	var result int
	switch opts.SortBy {
	case SortByAlpha:
	case SortBySeverity:
		result = cmp.Or(
			cmp.Compare(right.errors, left.errors),
			cmp.Compare(right.warnings, left.warnings),
			cmp.Compare(right.issues, left.issues),
		)
	default:
		result = cmp.Compare(left.issues, right.issues)
		if opts.SortDesc {
			result = -result
		}
	}
	return cmp.Or(result, cmp.Compare(leftName, rightName))
}
