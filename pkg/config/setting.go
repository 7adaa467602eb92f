package config

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// RuleSetting is the positional configuration of one rule: a severity
// followed by rule-specific options, e.g. ["error", 4]. In files a bare
// scalar is shorthand for a one-element list.
type RuleSetting []any

// Setting builds a RuleSetting from a severity and options.
func Setting(severity Severity, options ...any) RuleSetting {
	return append(RuleSetting{string(severity)}, options...)
}

// Clone returns a copy of the list. Option values are copied shallowly.
func (s RuleSetting) Clone() RuleSetting {
	if s == nil {
		return nil
	}
	out := make(RuleSetting, len(s))
	copy(out, s)
	return out
}

// Overlay returns base with every element of s written over the element
// at the same index. Indices s does not reach keep base's value.
func (s RuleSetting) Overlay(base RuleSetting) RuleSetting {
	out := make(RuleSetting, max(len(base), len(s)))
	copy(out, base)
	copy(out, s)
	return out
}

// Severity parses the first element. An empty setting has no severity.
func (s RuleSetting) Severity() (Severity, error) {
	if len(s) == 0 {
		return "", fmt.Errorf("empty rule setting")
	}

	switch value := s[0].(type) {
	case string:
		return ParseSeverity(value)
	case int:
		return ParseSeverity(fmt.Sprint(value))
	case int64:
		return ParseSeverity(fmt.Sprint(value))
	case bool:
		if value {
			return SeverityError, nil
		}
		return SeverityOff, nil
	default:
		return "", fmt.Errorf("invalid severity %v (%T)", value, value)
	}
}

// UnmarshalYAML accepts either a scalar or a sequence.
func (s *RuleSetting) UnmarshalYAML(node *yaml.Node) error {
	switch node.Kind {
	case yaml.ScalarNode:
		var value any
		if err := node.Decode(&value); err != nil {
			return err
		}
		*s = RuleSetting{value}
		return nil
	case yaml.SequenceNode:
		var values []any
		if err := node.Decode(&values); err != nil {
			return err
		}
		*s = RuleSetting(values)
		return nil
	case yaml.DocumentNode, yaml.MappingNode, yaml.AliasNode:
	}

	return fmt.Errorf("line %d: rule setting must be a severity or a list", node.Line)
}

// UnmarshalTOML implements toml.Unmarshaler for the same two shapes.
func (s *RuleSetting) UnmarshalTOML(data any) error {
	switch value := data.(type) {
	case []any:
		*s = RuleSetting(value)
	case string, int64, bool:
		*s = RuleSetting{value}
	default:
		return fmt.Errorf("rule setting must be a severity or a list, got %T", data)
	}
	return nil
}
