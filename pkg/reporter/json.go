package reporter

import (
	"bufio"
	"context"
	"fmt"

	"github.com/goccy/go-json"

	"github.com/yaklabco/markuplint/pkg/analysis"
)

// JSONOutput is the document written by the json format.
type JSONOutput struct {
	Tool        string                  `json:"tool"`
	ToolVersion string                  `json:"toolVersion"`
	Version     string                  `json:"version"`
	Files       []analysis.FileEntry    `json:"files"`
	ByRule      []analysis.RuleAnalysis `json:"byRule"`
	Summary     analysis.Totals         `json:"summary"`
}

// JSONRenderer writes an analysis report as JSON.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a new JSON renderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render implements Renderer.
func (r *JSONRenderer) Render(_ context.Context, report *analysis.Report) (err error) {
	bw := bufio.NewWriterSize(r.opts.Writer, bufWriterSize)
	defer func() {
		if flushErr := bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := JSONOutput{
		Tool:        toolName,
		ToolVersion: r.opts.ToolVersion,
		Version:     report.Version,
		Files:       report.Files,
		ByRule:      report.ByRule,
		Summary:     report.Totals,
	}
	if output.ByRule == nil {
		output.ByRule = []analysis.RuleAnalysis{}
	}

	encoder := json.NewEncoder(bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return fmt.Errorf("encode JSON: %w", err)
	}

	return nil
}
