package lint

import (
	"errors"
	"fmt"
	"slices"

	"github.com/yaklabco/markuplint/pkg/config"
)

var (
	// ErrUnknownRule is returned when a configuration names a rule that is
	// not registered. It aborts the run before any file is linted.
	ErrUnknownRule = errors.New("unknown rule")

	// ErrInvalidSetting is returned for settings whose severity cannot be
	// parsed.
	ErrInvalidSetting = errors.New("invalid rule setting")
)

// ResolvedRule pairs a Rule with its effective setting for a run.
type ResolvedRule struct {
	Rule *Rule

	// Setting is the user setting overlaid onto the rule defaults.
	Setting config.RuleSetting

	// Severity is the parsed first element of Setting.
	Severity config.Severity

	// AutoFix is true when fixes from this rule are applied.
	AutoFix bool
}

// Enabled reports whether the rule collects diagnostics.
func (rr ResolvedRule) Enabled() bool {
	return rr.Severity.Enabled()
}

// ResolveSetting overlays user onto defaults position by position and
// parses the resulting severity.
func ResolveSetting(defaults, user config.RuleSetting) (config.RuleSetting, config.Severity, error) {
	setting := user.Overlay(defaults)

	sev, err := setting.Severity()
	if err != nil {
		return nil, "", fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}
	setting[0] = string(sev)

	return setting, sev, nil
}

// ResolveRules decides which rules run and with which settings. With no
// configured rules every registered rule runs at its defaults; otherwise
// exactly the configured rules run. The result is sorted by rule name.
// Rules resolved to "off" are included so callers can list them.
func ResolveRules(registry *Registry, cfg *config.Config) ([]ResolvedRule, error) {
	if cfg == nil {
		cfg = config.NewConfig()
	}
	fixing := cfg.Fix || cfg.DryRun

	if len(cfg.Rules) == 0 {
		rules := registry.Rules()
		resolved := make([]ResolvedRule, 0, len(rules))
		for _, rule := range rules {
			rr, err := resolveRule(rule, nil, fixing)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, rr)
		}
		return resolved, nil
	}

	names := make([]string, 0, len(cfg.Rules))
	for name := range cfg.Rules {
		names = append(names, name)
	}
	slices.Sort(names)

	resolved := make([]ResolvedRule, 0, len(names))
	for _, name := range names {
		rule, ok := registry.Get(name)
		if !ok {
			return nil, fmt.Errorf("%w %q", ErrUnknownRule, name)
		}
		rr, err := resolveRule(rule, cfg.Rules[name], fixing)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, rr)
	}

	return resolved, nil
}

func resolveRule(rule *Rule, user config.RuleSetting, fixing bool) (ResolvedRule, error) {
	setting, sev, err := ResolveSetting(rule.Defaults, user)
	if err != nil {
		return ResolvedRule{}, fmt.Errorf("rule %s: %w", rule.Name, err)
	}

	return ResolvedRule{
		Rule:     rule,
		Setting:  setting,
		Severity: sev,
		AutoFix:  fixing && rule.Fixable,
	}, nil
}

// CheckRuleNames returns ErrUnknownRule for the first configured rule
// that is not registered.
func CheckRuleNames(registry *Registry, cfg *config.Config) error {
	if cfg == nil {
		return nil
	}
	for name := range cfg.Rules {
		if _, ok := registry.Get(name); !ok {
			return fmt.Errorf("%w %q", ErrUnknownRule, name)
		}
	}
	return nil
}
