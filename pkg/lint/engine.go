package lint

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/yaklabco/markuplint/internal/logging"
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/fix"
	"github.com/yaklabco/markuplint/pkg/htmlast"
)

// ErrNilParser is returned by an Engine without a parser.
var ErrNilParser = errors.New("lint engine has no parser")

// RuleError records a rule that failed while linting a file. The rule is
// disabled for the rest of that file; other rules keep running.
type RuleError struct {
	Rule  string
	Node  htmlast.NodeKind
	Start int
	Cause any
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("rule %s panicked at %s offset %d: %v", e.Rule, e.Node, e.Start, e.Cause)
}

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Document is the parsed file. Accepted fixes have been applied to
	// its tree in memory; Document.Content is unchanged.
	Document *htmlast.Document

	// Diagnostics contains all reports, ordered by position.
	Diagnostics []Diagnostic

	// Edits are the byte replacements of accepted fixes, sorted by offset.
	// Empty unless fixing was requested.
	Edits []fix.TextEdit

	// Skipped are fixes that lost a conflict with an earlier fix.
	Skipped []fix.NodeEdit

	// RuleErrors holds rules that failed on this file.
	RuleErrors []*RuleError
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes returns true if any fixes were accepted.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// CountBySeverity returns the number of diagnostics at sev.
func (fr *FileResult) CountBySeverity(sev config.Severity) int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].Severity == sev {
			count++
		}
	}
	return count
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for i := range fr.Diagnostics {
		if fr.Diagnostics[i].HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and rule execution for linting.
type Engine struct {
	// Parser parses file content into Documents.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	if registry == nil {
		registry = DefaultRegistry
	}
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile parses content and runs every enabled rule over the tree in
// a single traversal. Configuration errors are returned before parsing.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	if e.Parser == nil {
		return nil, ErrNilParser
	}
	if cfg == nil {
		cfg = config.NewConfig()
	}

	resolved, err := ResolveRules(e.Registry, cfg)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("linting cancelled: %w", err)
	}

	started := time.Now()

	doc, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	collector := NewCollector()
	result := &FileResult{Document: doc}

	e.run(ctx, doc, cfg, resolved, collector, result)

	result.Diagnostics = collector.All()

	if err := e.resolveFixes(resolved, collector, len(content), result); err != nil {
		// Diagnostics are still reported; no fix is applied.
		logging.FromContext(ctx).Warn("discarding fixes",
			logging.FieldFile, path,
			logging.FieldError, err,
		)
		result.Edits = nil
		result.Skipped = nil
	}

	logging.FromContext(ctx).Debug("linted file",
		logging.FieldFile, path,
		logging.FieldRules, len(resolved),
		logging.FieldDiagnostics, len(result.Diagnostics),
		logging.FieldEdits, len(result.Edits),
		logging.FieldDuration, time.Since(started),
	)

	return result, nil
}

// run performs one traversal, dispatching each node to the enabled rules
// of its phase in name order.
func (e *Engine) run(
	ctx context.Context,
	doc *htmlast.Document,
	cfg *config.Config,
	resolved []ResolvedRule,
	collector *Collector,
	result *FileResult,
) {
	type active struct {
		rc     *RuleContext
		failed bool
	}

	var enter, exit []*active
	for _, rr := range resolved {
		if !rr.Enabled() {
			continue
		}
		rc := NewRuleContext(ctx, doc, cfg, rr, collector)
		rc.Registry = e.Registry

		a := &active{rc: rc}
		if rr.Rule.Phase == PhaseExit {
			exit = append(exit, a)
		} else {
			enter = append(enter, a)
		}
	}

	dispatch := func(rules []*active) func(*htmlast.Node) {
		if len(rules) == 0 {
			return nil
		}
		return func(node *htmlast.Node) {
			for _, a := range rules {
				if a.failed {
					continue
				}
				if ruleErr := invoke(a.rc, node); ruleErr != nil {
					a.failed = true
					result.RuleErrors = append(result.RuleErrors, ruleErr)
					logging.FromContext(ctx).Warn("rule failed",
						logging.FieldRule, a.rc.Rule.Name,
						logging.FieldFile, doc.Path,
						logging.FieldError, ruleErr,
					)
				}
			}
		}
	}

	htmlast.Traverse(doc.Root, htmlast.Visitor{
		Enter: dispatch(enter),
		Exit:  dispatch(exit),
	})
}

// invoke calls a handler and converts a panic into a RuleError.
func invoke(rc *RuleContext, node *htmlast.Node) (ruleErr *RuleError) {
	defer func() {
		if r := recover(); r != nil {
			ruleErr = &RuleError{Rule: rc.Rule.Name, Node: node.Kind, Start: node.Start, Cause: r}
		}
	}()

	rc.Rule.Handler(rc, node)
	return nil
}

// resolveFixes selects the fixes to apply, stores them on the tree and
// records the matching byte edits.
func (e *Engine) resolveFixes(
	resolved []ResolvedRule,
	collector *Collector,
	contentLen int,
	result *FileResult,
) error {
	autoFix := make(map[string]bool, len(resolved))
	for _, rr := range resolved {
		autoFix[rr.Rule.Name] = rr.AutoFix
	}

	var edits []fix.NodeEdit
	for _, edit := range collector.Fixes() {
		if autoFix[edit.Rule] {
			edits = append(edits, edit)
		}
	}
	if len(edits) == 0 {
		return nil
	}

	plan, err := fix.Resolve(edits, contentLen)
	if err != nil {
		return fmt.Errorf("resolve fixes: %w", err)
	}
	if err := plan.ApplyToTree(); err != nil {
		return fmt.Errorf("apply fixes: %w", err)
	}

	result.Edits = plan.Edits
	result.Skipped = plan.Skipped
	return nil
}
