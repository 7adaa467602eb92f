package config

import (
	"fmt"
	"strings"
)

// RuleInfo describes a rule for template generation. The CLI fills it
// from the lint registry so this package stays free of lint imports.
type RuleInfo struct {
	Name        string
	Description string
	Defaults    RuleSetting
	Fixable     bool
}

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Format is the file format of the template.
	Format FileFormat

	// Rules are listed with their defaults, commented out.
	Rules []RuleInfo
}

// DefaultTemplateHeader returns the comment placed on top of generated files.
func DefaultTemplateHeader() string {
	return "markuplint configuration\n" +
		"Each rule takes [severity, options...]; severity is off, warn or error.\n" +
		"Only the listed rules run once any rule is configured."
}

// GenerateTemplate renders a commented starter configuration.
func GenerateTemplate(opts TemplateOptions) []byte {
	var out strings.Builder

	for _, line := range strings.Split(DefaultTemplateHeader(), "\n") {
		out.WriteString("# " + line + "\n")
	}
	out.WriteString("\n")

	if opts.Format == FileFormatTOML {
		writeTOMLTemplate(&out, opts.Rules)
	} else {
		writeYAMLTemplate(&out, opts.Rules)
	}

	return []byte(out.String())
}

func writeYAMLTemplate(out *strings.Builder, rules []RuleInfo) {
	out.WriteString("rules:\n")
	for _, rule := range rules {
		fmt.Fprintf(out, "  # %s\n", describe(rule))
		fmt.Fprintf(out, "  %s: [%s]\n", rule.Name, joinValues(rule.Defaults))
	}
	out.WriteString("\nignore:\n  - \"node_modules/**\"\n")
	out.WriteString("\nmarkdown: false\n")
	out.WriteString("\nbackups:\n  enabled: true\n  mode: sidecar\n")
	out.WriteString("\ncache:\n  enabled: false\n")
}

func writeTOMLTemplate(out *strings.Builder, rules []RuleInfo) {
	out.WriteString("ignore = [\"node_modules/**\"]\nmarkdown = false\n\n")
	out.WriteString("[rules]\n")
	for _, rule := range rules {
		fmt.Fprintf(out, "# %s\n", describe(rule))
		fmt.Fprintf(out, "%q = [%s]\n", rule.Name, joinValues(rule.Defaults))
	}
	out.WriteString("\n[backups]\nenabled = true\nmode = \"sidecar\"\n")
	out.WriteString("\n[cache]\nenabled = false\n")
}

func describe(rule RuleInfo) string {
	if rule.Fixable {
		return rule.Description + " (fixable)"
	}
	return rule.Description
}

func joinValues(values RuleSetting) string {
	parts := make([]string, len(values))
	for i, value := range values {
		if s, ok := value.(string); ok {
			parts[i] = fmt.Sprintf("%q", s)
			continue
		}
		parts[i] = fmt.Sprint(value)
	}
	return strings.Join(parts, ", ")
}
