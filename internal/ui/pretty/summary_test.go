package pretty_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/markuplint/internal/ui/pretty"
	"github.com/yaklabco/markuplint/pkg/runner"
)

func TestFormatSummaryOneLine(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		stats runner.Stats
		want  string
	}{
		{
			name:  "clean",
			stats: runner.Stats{Linted: 4},
			want:  "No issues found (4 files checked)\n",
		},
		{
			name:  "clean after fixing",
			stats: runner.Stats{Linted: 1, Fixed: 2, Rewritten: 1},
			want:  "No issues found (1 file checked), 2 fixed in 1 file\n",
		},
		{
			name: "errors and warnings",
			stats: runner.Stats{
				Diagnostics: 3,
				WithIssues:  2,
				Fixable:     1,
				Errors:      2,
				Warnings:    1,
			},
			want: "3 issues (2 errors, 1 warning) in 2 files, 1 fixable\n",
		},
		{
			name: "failed files",
			stats: runner.Stats{
				Diagnostics: 1,
				WithIssues:  1,
				Failed:      2,
				Errors:      1,
			},
			want: "1 issue (1 error) in 1 file, 2 files failed\n",
		},
		{
			name:  "fixes abandoned",
			stats: runner.Stats{Linted: 2, Skipped: 1},
			want:  "No issues found (2 files checked), 1 file not fixed\n",
		},
	}

	styles := pretty.NewStyles(false)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, styles.FormatSummaryOneLine(tt.stats))
		})
	}
}
