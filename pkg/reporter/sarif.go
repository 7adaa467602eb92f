package reporter

import (
	"bufio"
	"context"
	"fmt"
	"path/filepath"
	"slices"
	"strings"

	"github.com/goccy/go-json"

	"github.com/yaklabco/markuplint/pkg/analysis"
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/htmlast"
	"github.com/yaklabco/markuplint/pkg/lint"
	"github.com/yaklabco/markuplint/pkg/runner"
)

const (
	toolName       = "markuplint"
	toolURI        = "https://github.com/yaklabco/markuplint"
	sarifVersion   = "2.1.0"
	sarifSchemaURI = "https://json.schemastore.org/sarif-2.1.0.json"
)

// SARIFOutput represents the root SARIF document.
type SARIFOutput struct {
	Schema  string     `json:"$schema"`
	Version string     `json:"version"`
	Runs    []SARIFRun `json:"runs"`
}

// SARIFRun represents a single analysis run.
type SARIFRun struct {
	Tool    SARIFTool     `json:"tool"`
	Results []SARIFResult `json:"results"`
}

// SARIFTool describes the analysis tool.
type SARIFTool struct {
	Driver SARIFDriver `json:"driver"`
}

// SARIFDriver contains tool metadata and rules.
type SARIFDriver struct {
	Name           string      `json:"name"`
	Version        string      `json:"version,omitempty"`
	InformationURI string      `json:"informationUri"`
	Rules          []SARIFRule `json:"rules"`
}

// SARIFRule describes one rule.
type SARIFRule struct {
	ID               string          `json:"id"`
	ShortDescription *SARIFMessage   `json:"shortDescription,omitempty"`
	DefaultConfig    SARIFRuleConfig `json:"defaultConfiguration"`
	Properties       *SARIFRuleProps `json:"properties,omitempty"`
}

// SARIFRuleConfig contains the rule's default level.
type SARIFRuleConfig struct {
	Level string `json:"level"`
}

// SARIFRuleProps carries rule tags.
type SARIFRuleProps struct {
	Tags []string `json:"tags,omitempty"`
}

// SARIFResult represents a single diagnostic result.
type SARIFResult struct {
	RuleID           string          `json:"ruleId"`
	RuleIndex        int             `json:"ruleIndex"`
	Level            string          `json:"level"`
	Message          SARIFMessage    `json:"message"`
	Locations        []SARIFLocation `json:"locations"`
	RelatedLocations []SARIFLocation `json:"relatedLocations,omitempty"`
}

// SARIFMessage contains message text.
type SARIFMessage struct {
	Text string `json:"text"`
}

// SARIFLocation describes a code location.
type SARIFLocation struct {
	ID               *int                  `json:"id,omitempty"`
	PhysicalLocation SARIFPhysicalLocation `json:"physicalLocation"`
}

// SARIFPhysicalLocation contains file path and region.
type SARIFPhysicalLocation struct {
	ArtifactLocation SARIFArtifactLocation `json:"artifactLocation"`
	Region           SARIFRegion           `json:"region"`
}

// SARIFArtifactLocation contains the file URI.
type SARIFArtifactLocation struct {
	URI string `json:"uri"`
}

// SARIFRegion describes the affected text region. Columns are 1-based
// byte columns, CharOffset/CharLength byte offsets.
type SARIFRegion struct {
	StartLine   int `json:"startLine"`
	StartColumn int `json:"startColumn,omitempty"`
	EndLine     int `json:"endLine,omitempty"`
	EndColumn   int `json:"endColumn,omitempty"`
	CharOffset  int `json:"charOffset"`
	CharLength  int `json:"charLength"`
}

// SARIFReporter formats results as SARIF 2.1.0.
type SARIFReporter struct {
	opts Options
}

// NewSARIFReporter creates a new SARIF reporter.
func NewSARIFReporter(opts Options) *SARIFReporter {
	return &SARIFReporter{opts: opts}
}

// Report implements Reporter.
func (r *SARIFReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := r.buildOutput(result)

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode SARIF: %w", err)
	}

	return len(output.Runs[0].Results), nil
}

func (r *SARIFReporter) buildOutput(result *runner.Result) *SARIFOutput {
	driver := SARIFDriver{
		Name:           toolName,
		Version:        r.opts.ToolVersion,
		InformationURI: toolURI,
		Rules:          []SARIFRule{},
	}
	index := make(map[string]int)

	addRule := func(rule SARIFRule) int {
		if i, ok := index[rule.ID]; ok {
			return i
		}
		index[rule.ID] = len(driver.Rules)
		driver.Rules = append(driver.Rules, rule)
		return index[rule.ID]
	}

	known := slices.Clone(r.opts.Rules)
	slices.SortFunc(known, func(a, b *lint.Rule) int { return strings.Compare(a.Name, b.Name) })
	for _, rule := range known {
		addRule(describeRule(rule))
	}

	run := SARIFRun{Results: []SARIFResult{}}

	if result != nil {
		for _, file := range result.Files {
			if file.Result == nil || file.Result.FileResult == nil {
				continue
			}
			uri := filepath.ToSlash(analysis.DisplayPath(file.Path, r.opts.WorkingDir))
			doc := file.Result.Document

			for i := range file.Result.Diagnostics {
				diag := &file.Result.Diagnostics[i]
				ruleIndex := addRule(SARIFRule{
					ID:            diag.RuleName,
					DefaultConfig: SARIFRuleConfig{Level: sarifLevel(diag.Severity)},
				})
				run.Results = append(run.Results, sarifResult(diag, ruleIndex, uri, doc))
			}
		}
	}

	run.Tool = SARIFTool{Driver: driver}

	return &SARIFOutput{
		Schema:  sarifSchemaURI,
		Version: sarifVersion,
		Runs:    []SARIFRun{run},
	}
}

func describeRule(rule *lint.Rule) SARIFRule {
	out := SARIFRule{
		ID:            rule.Name,
		DefaultConfig: SARIFRuleConfig{Level: sarifLevel(rule.DefaultSeverity())},
	}
	if rule.Description != "" {
		out.ShortDescription = &SARIFMessage{Text: rule.Description}
	}
	if len(rule.Tags) > 0 {
		out.Properties = &SARIFRuleProps{Tags: rule.Tags}
	}
	return out
}

func sarifResult(diag *lint.Diagnostic, ruleIndex int, uri string, doc *htmlast.Document) SARIFResult {
	message := strings.Join(diag.Messages(), "\n")
	if message == "" {
		message = diag.Message
	}

	res := SARIFResult{
		RuleID:    diag.RuleName,
		RuleIndex: ruleIndex,
		Level:     sarifLevel(diag.Severity),
		Message:   SARIFMessage{Text: message},
		Locations: []SARIFLocation{{
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: uri},
				Region: SARIFRegion{
					StartLine:   diag.StartLine,
					StartColumn: diag.StartColumn,
					EndLine:     diag.EndLine,
					EndColumn:   diag.EndColumn,
					CharOffset:  diag.StartOffset,
					CharLength:  diag.EndOffset - diag.StartOffset,
				},
			},
		}},
	}

	if doc == nil {
		return res
	}
	for i, snippet := range diag.Snippets() {
		pos := doc.Locate(snippet.Start, snippet.End)
		id := i + 1
		res.RelatedLocations = append(res.RelatedLocations, SARIFLocation{
			ID: &id,
			PhysicalLocation: SARIFPhysicalLocation{
				ArtifactLocation: SARIFArtifactLocation{URI: uri},
				Region: SARIFRegion{
					StartLine:   pos.StartLine,
					StartColumn: pos.StartColumn,
					EndLine:     pos.EndLine,
					EndColumn:   pos.EndColumn,
					CharOffset:  snippet.Start,
					CharLength:  snippet.End - snippet.Start,
				},
			},
		})
	}

	return res
}

func sarifLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityOff:
		return "none"
	default:
		return "warning"
	}
}
