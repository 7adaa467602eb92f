// Package rules provides the built-in lint rules for markuplint.
//
// # Rules
//
//   - no-unclosed-tag: every element needs a closing tag whose name
//     matches its opening tag. Default ["error", "always"]; the option
//     "ignore-case" compares names case-insensitively.
//
//   - attr-indent: attributes written on their own lines are indented by a
//     fixed number of spaces relative to the start of the tag. Default
//     ["error", 2]. Fixable.
//
// # Registration
//
// Rules are plain lint.Rule values registered with lint.DefaultRegistry
// from init. RegisterAll registers them with any other registry.
package rules
