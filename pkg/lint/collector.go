package lint

import (
	"cmp"
	"slices"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/fix"
)

// Collector accumulates reports for one lint run, keyed by severity.
// Reports pushed with severity "off" are dropped. A Collector is not safe
// for concurrent use; each run owns its own.
type Collector struct {
	reports    []Diagnostic
	bySeverity map[config.Severity][]int
}

// NewCollector creates an empty collector.
func NewCollector() *Collector {
	return &Collector{bySeverity: make(map[config.Severity][]int)}
}

// Push records a report. It returns false when the report was dropped.
func (c *Collector) Push(diag Diagnostic) bool {
	if !diag.Severity.Enabled() {
		return false
	}
	c.bySeverity[diag.Severity] = append(c.bySeverity[diag.Severity], len(c.reports))
	c.reports = append(c.reports, diag)
	return true
}

// Len returns the number of collected reports.
func (c *Collector) Len() int {
	return len(c.reports)
}

// Get returns the reports collected at the given severity, in push order.
func (c *Collector) Get(sev config.Severity) []Diagnostic {
	indices := c.bySeverity[sev]
	out := make([]Diagnostic, len(indices))
	for i, idx := range indices {
		out[i] = c.reports[idx]
	}
	return out
}

// Errors returns the error-severity reports in push order.
func (c *Collector) Errors() []Diagnostic {
	return c.Get(config.SeverityError)
}

// Warnings returns the warn-severity reports in push order.
func (c *Collector) Warnings() []Diagnostic {
	return c.Get(config.SeverityWarn)
}

// All returns every report ordered by primary span. Reports at the same
// position keep push order.
func (c *Collector) All() []Diagnostic {
	all := slices.Clone(c.reports)
	slices.SortStableFunc(all, compareDiagnostics)
	return all
}

// Fixes returns the edits carried by collected reports in push order.
func (c *Collector) Fixes() []fix.NodeEdit {
	var edits []fix.NodeEdit
	for _, diag := range c.reports {
		if diag.Fix != nil {
			edits = append(edits, *diag.Fix)
		}
	}
	return edits
}

func compareDiagnostics(a, b Diagnostic) int {
	if c := cmp.Compare(a.StartOffset, b.StartOffset); c != 0 {
		return c
	}
	return cmp.Compare(a.EndOffset, b.EndOffset)
}
