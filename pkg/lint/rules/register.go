package rules

import "github.com/yaklabco/markuplint/pkg/lint"

// All returns fresh copies of every built-in rule, in name order.
func All() []*lint.Rule {
	return []*lint.Rule{
		NewAttrIndentRule(),
		NewNoUnclosedTagRule(),
	}
}

// RegisterAll registers all built-in rules with the given registry.
func RegisterAll(registry *lint.Registry) {
	for _, rule := range All() {
		registry.Register(rule)
	}
}

// init registers all built-in rules with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic rule registration
func init() {
	RegisterAll(lint.DefaultRegistry)
}
