// Package lint provides the rule contract, registry, diagnostics collector
// and engine for markuplint.
package lint

import (
	"errors"
	"fmt"

	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/htmlast"
)

// Phase selects when during traversal a rule handler runs.
type Phase uint8

const (
	// PhaseEnter runs the handler before a node's parts are visited.
	PhaseEnter Phase = iota

	// PhaseExit runs the handler after a node's parts are visited.
	PhaseExit
)

// Handler inspects one node. Its only effects are reports pushed through
// the context, optionally carrying fixes.
type Handler func(rc *RuleContext, node *htmlast.Node)

// Rule pairs a default setting with a handler. Rules are plain values;
// adding one never requires touching existing rules.
type Rule struct {
	// Name is the key used in configuration files, e.g. "attr-indent".
	Name string

	// Description is a one-line summary shown by `markuplint rules`.
	Description string

	// Defaults is the default setting: a severity followed by options.
	Defaults config.RuleSetting

	// Phase selects enter or exit traversal. Enter is the default.
	Phase Phase

	// Fixable marks rules whose reports may carry fixes.
	Fixable bool

	// Tags categorize the rule (e.g. "style", "structure").
	Tags []string

	// Handler is invoked once per node while the rule is enabled.
	Handler Handler
}

var errInvalidRule = errors.New("invalid rule")

func (r *Rule) validate() error {
	switch {
	case r == nil:
		return fmt.Errorf("%w: nil rule", errInvalidRule)
	case r.Name == "":
		return fmt.Errorf("%w: rule without a name", errInvalidRule)
	case r.Handler == nil:
		return fmt.Errorf("%w: %s has no handler", errInvalidRule, r.Name)
	}

	if _, err := r.Defaults.Severity(); err != nil {
		return fmt.Errorf("%w: %s defaults: %w", errInvalidRule, r.Name, err)
	}
	return nil
}

// DefaultSeverity returns the severity from the rule's defaults.
func (r *Rule) DefaultSeverity() config.Severity {
	sev, err := r.Defaults.Severity()
	if err != nil {
		return config.SeverityOff
	}
	return sev
}
