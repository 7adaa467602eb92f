package rules

import (
	"bytes"
	"context"
	"flag"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/lint"
	"github.com/yaklabco/markuplint/pkg/parser/markup"
)

// update rewrites golden files instead of comparing.
// Usage: go test ./pkg/lint/rules/... -run TestGolden -update.
var update = flag.Bool("update", false, "update golden files")

// goldenCase is one testdata/<rule>/<name>.input.html file with its
// expected fixed output and diagnostics.
type goldenCase struct {
	Name       string
	Rule       string
	InputPath  string
	GoldenPath string
	DiagsPath  string
}

// diagExpectation is the JSON form of an expected diagnostic.
type diagExpectation struct {
	Name     string `json:"name"`
	Line     int    `json:"line"`
	Column   int    `json:"column"`
	Message  string `json:"message"`
	Severity string `json:"severity"`
	Fixable  bool   `json:"fixable"`
}

func diagFromLint(d lint.Diagnostic) diagExpectation {
	return diagExpectation{
		Name:     d.RuleName,
		Line:     d.StartLine,
		Column:   d.StartColumn,
		Message:  d.Message,
		Severity: string(d.Severity),
		Fixable:  d.HasFix(),
	}
}

func testdataDir(t *testing.T) string {
	t.Helper()

	_, filename, _, ok := runtime.Caller(0)
	require.True(t, ok, "failed to get test file path")
	return filepath.Join(filepath.Dir(filename), "testdata")
}

// discoverGoldenCases treats every directory under testdata named after a
// registered rule as a set of cases for that rule alone.
func discoverGoldenCases(t *testing.T) []goldenCase {
	t.Helper()

	baseDir := testdataDir(t)
	entries, err := os.ReadDir(baseDir)
	if os.IsNotExist(err) {
		return nil
	}
	require.NoError(t, err)

	var cases []goldenCase
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		rule := entry.Name()
		if _, ok := lint.DefaultRegistry.Get(rule); !ok {
			continue
		}

		dir := filepath.Join(baseDir, rule)
		inputs, err := filepath.Glob(filepath.Join(dir, "*.input.html"))
		require.NoError(t, err)

		for _, input := range inputs {
			base := strings.TrimSuffix(filepath.Base(input), ".input.html")
			cases = append(cases, goldenCase{
				Name:       filepath.Join(rule, base),
				Rule:       rule,
				InputPath:  input,
				GoldenPath: filepath.Join(dir, base+".golden.html"),
				DiagsPath:  filepath.Join(dir, base+".diags.json"),
			})
		}
	}

	return cases
}

func lintGolden(t *testing.T, rule string, content []byte) (*lint.PipelineResult, error) {
	t.Helper()

	cfg := config.NewConfig()
	cfg.Rules[rule] = nil

	pipeline := lint.NewPipeline(lint.NewEngine(markup.New(), lint.DefaultRegistry))
	return pipeline.ProcessContent(context.Background(), rule+".html", content, cfg, lint.PipelineOptions{Fix: true})
}

// TestGoldenPerRule lints each input with its rule, compares the
// diagnostics of the first pass and the fixed output.
func TestGoldenPerRule(t *testing.T) {
	cases := discoverGoldenCases(t)
	if len(cases) == 0 {
		t.Skip("No golden test cases found. Create testdata/<rule>/*.input.html files to add tests.")
	}

	for _, tc := range cases {
		t.Run(tc.Name, func(t *testing.T) {
			input, err := os.ReadFile(tc.InputPath)
			require.NoError(t, err)

			cfg := config.NewConfig()
			cfg.Rules[tc.Rule] = nil
			engine := lint.NewEngine(markup.New(), lint.DefaultRegistry)
			first, err := engine.LintFile(context.Background(), tc.InputPath, input, cfg)
			require.NoError(t, err)
			compareDiags(t, first.Diagnostics, tc.DiagsPath, *update)

			result, err := lintGolden(t, tc.Rule, input)
			require.NoError(t, err)

			fixed := input
			if result.Changed() {
				fixed = result.Fixed
			}
			compareWithGolden(t, fixed, tc.GoldenPath, *update)
		})
	}
}

// TestGoldenRoundTrip verifies that fixed output is stable: linting the
// golden file proposes no further fixes.
func TestGoldenRoundTrip(t *testing.T) {
	cases := discoverGoldenCases(t)
	if len(cases) == 0 {
		t.Skip("No golden test cases found for round-trip testing.")
	}

	for _, tc := range cases {
		t.Run(tc.Name+"_roundtrip", func(t *testing.T) {
			golden, err := os.ReadFile(tc.GoldenPath)
			if os.IsNotExist(err) {
				t.Skip("golden file missing")
			}
			require.NoError(t, err)

			rule, ok := lint.DefaultRegistry.Get(tc.Rule)
			require.True(t, ok)

			input, err := os.ReadFile(tc.InputPath)
			require.NoError(t, err)
			first, err := lintGolden(t, tc.Rule, input)
			require.NoError(t, err)
			if rule.Fixable {
				require.True(t, first.Changed(), "fixable fixture %s must be rewritten", tc.InputPath)
				assert.Equal(t, string(golden), string(first.Fixed))
			} else {
				assert.False(t, first.Changed())
			}

			result, err := lintGolden(t, tc.Rule, golden)
			require.NoError(t, err)
			assert.False(t, result.Changed(), "fixes must be idempotent")
			assert.Zero(t, result.Applied)
			assert.Zero(t, result.FixableCount())
		})
	}
}

func compareWithGolden(t *testing.T, actual []byte, goldenPath string, updateGolden bool) {
	t.Helper()

	if updateGolden {
		require.NoError(t, os.WriteFile(goldenPath, actual, 0o644))
		t.Logf("Updated golden file: %s", goldenPath)
		return
	}

	expected, err := os.ReadFile(goldenPath)
	require.NoError(t, err, "run with -update to create %s", goldenPath)

	if !bytes.Equal(expected, actual) {
		assert.Equal(t, string(expected), string(actual), "output does not match %s", goldenPath)
	}
}

func compareDiags(t *testing.T, actual []lint.Diagnostic, path string, updateGolden bool) {
	t.Helper()

	got := make([]diagExpectation, len(actual))
	for i, d := range actual {
		got[i] = diagFromLint(d)
	}

	if updateGolden {
		data, err := json.MarshalIndent(got, "", "  ")
		require.NoError(t, err)
		require.NoError(t, os.WriteFile(path, append(data, '\n'), 0o644))
		t.Logf("Updated golden file: %s", path)
		return
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err, "run with -update to create %s", path)

	var want []diagExpectation
	require.NoError(t, json.Unmarshal(data, &want))

	assert.Equal(t, want, got)
}
