package analysis_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markuplint/pkg/analysis"
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/langdetect"
	"github.com/yaklabco/markuplint/pkg/lint"
	"github.com/yaklabco/markuplint/pkg/runner"
)

func diag(rule string, sev config.Severity, fixable bool) lint.Diagnostic {
	return lint.Diagnostic{RuleName: rule, Severity: sev, Message: rule, Fixable: fixable}
}

func outcome(path string, diags ...lint.Diagnostic) runner.FileOutcome {
	return runner.FileOutcome{
		Path: path,
		Kind: langdetect.KindHTML,
		Result: &lint.PipelineResult{
			Path:       path,
			Outcome:    lint.OutcomeIssues,
			FileResult: &lint.FileResult{Diagnostics: diags},
		},
	}
}

func sampleResult() *runner.Result {
	return &runner.Result{Files: []runner.FileOutcome{
		outcome("/site/a.html",
			diag("no-unclosed-tag", config.SeverityError, false),
			diag("attr-indent", config.SeverityWarn, true),
			diag("attr-indent", config.SeverityWarn, true),
		),
		outcome("/site/b.html"),
		outcome("/site/c.html", diag("no-unclosed-tag", config.SeverityError, false)),
		{Path: "/site/d.html", Error: errors.New("permission denied")},
	}}
}

func TestAnalyze_Totals(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(sampleResult(), analysis.DefaultOptions())

	assert.Equal(t, analysis.ReportVersion, report.Version)
	assert.Equal(t, analysis.Totals{
		Files:           4,
		FilesWithIssues: 2,
		FilesFailed:     1,
		Issues:          4,
		Errors:          2,
		Warnings:        2,
		Fixable:         2,
	}, report.Totals)
	assert.True(t, report.Totals.HasIssues())
	assert.True(t, report.Totals.HasErrors())
}

func TestAnalyze_Files(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.WorkingDir = "/site"
	report := analysis.Analyze(sampleResult(), opts)

	require.Len(t, report.Files, 4)
	assert.Equal(t, "a.html", report.Files[0].Path)
	assert.Len(t, report.Files[0].Diagnostics, 3)
	assert.Equal(t, "html", report.Files[0].Kind)
	assert.Empty(t, report.Files[1].Diagnostics)
	assert.NotNil(t, report.Files[1].Diagnostics)
	assert.Equal(t, "issues", report.Files[0].Status)
	assert.Equal(t, "permission denied", report.Files[3].Error)
	assert.Equal(t, analysis.StatusFailed, report.Files[3].Status)

	opts.IncludeDiagnostics = false
	report = analysis.Analyze(sampleResult(), opts)
	assert.Empty(t, report.Files[0].Diagnostics)
}

func TestAnalyze_ByRuleAndByFile(t *testing.T) {
	t.Parallel()

	opts := analysis.DefaultOptions()
	opts.WorkingDir = "/site"
	report := analysis.Analyze(sampleResult(), opts)

	require.Len(t, report.ByRule, 2)
	// Equal counts fall back to name order.
	assert.Equal(t, analysis.RuleAnalysis{
		Rule: "attr-indent", Issues: 2, Warnings: 2, Fixable: true, Files: []string{"a.html"},
	}, report.ByRule[0])
	assert.Equal(t, analysis.RuleAnalysis{
		Rule: "no-unclosed-tag", Issues: 2, Errors: 2, Files: []string{"a.html", "c.html"},
	}, report.ByRule[1])

	require.Len(t, report.ByFile, 2)
	assert.Equal(t, "a.html", report.ByFile[0].Path)
	assert.Equal(t, []string{"attr-indent", "no-unclosed-tag"}, report.ByFile[0].Rules)
	assert.Equal(t, "c.html", report.ByFile[1].Path)
}

func TestAnalyze_SortBy(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		opts  analysis.Options
		rules []string
	}{
		{name: "severity", opts: analysis.Options{SortBy: analysis.SortBySeverity}, rules: []string{"no-unclosed-tag", "attr-indent"}},
		{name: "alpha", opts: analysis.Options{SortBy: analysis.SortByAlpha}, rules: []string{"attr-indent", "no-unclosed-tag"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			report := analysis.Analyze(sampleResult(), tt.opts)
			var got []string
			for _, rule := range report.ByRule {
				got = append(got, rule.Rule)
			}
			assert.Equal(t, tt.rules, got)
		})
	}
}

func TestAnalyze_Nil(t *testing.T) {
	t.Parallel()

	report := analysis.Analyze(nil, analysis.DefaultOptions())

	assert.NotNil(t, report.Files)
	assert.Empty(t, report.ByRule)
	assert.False(t, report.Totals.HasIssues())
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, analysis.SortByCount.IsValid())
	assert.True(t, analysis.SortBySeverity.IsValid())
	assert.False(t, analysis.SortField("size").IsValid())
}

func TestParseSortField(t *testing.T) {
	t.Parallel()

	field, err := analysis.ParseSortField(" Severity ")
	require.NoError(t, err)
	assert.Equal(t, analysis.SortBySeverity, field)

	_, err = analysis.ParseSortField("size")
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"size"`)
}

func TestAnalyze_FixOutcomes(t *testing.T) {
	t.Parallel()

	result := &runner.Result{Files: []runner.FileOutcome{
		{Path: "/site/a.html", Result: &lint.PipelineResult{
			Outcome: lint.OutcomeFixed, Applied: 2, BackupPath: "/site/a.html.bak",
			FileResult: &lint.FileResult{},
		}},
		{Path: "/site/b.html", Result: &lint.PipelineResult{
			Outcome: lint.OutcomeSkipped, Reason: "file modified during processing",
			FileResult: &lint.FileResult{},
		}},
	}}

	report := analysis.Analyze(result, analysis.DefaultOptions())

	assert.Equal(t, 1, report.Totals.FilesFixed)
	assert.Equal(t, 1, report.Totals.FilesSkipped)
	assert.Equal(t, "fixed", report.Files[0].Status)
	assert.Equal(t, 2, report.Files[0].Edits)
	assert.Equal(t, "/site/a.html.bak", report.Files[0].Backup)
	assert.Equal(t, "skipped", report.Files[1].Status)
	assert.Equal(t, "file modified during processing", report.Files[1].Reason)
}

func TestDisplayPath(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "docs/a.html", analysis.DisplayPath("/site/docs/a.html", "/site"))
	assert.Equal(t, "/site/a.html", analysis.DisplayPath("/site/a.html", ""))
}
