package cli

import (
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"

	"github.com/yaklabco/markuplint/internal/logging"
	"github.com/yaklabco/markuplint/pkg/config"
	"github.com/yaklabco/markuplint/pkg/lint"
)

const formatJSON = "json"

// ruleInfo represents a rule in JSON output.
type ruleInfo struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Severity    string             `json:"severity"`
	Defaults    config.RuleSetting `json:"defaults"`
	Fixable     bool               `json:"fixable"`
	Tags        []string           `json:"tags,omitempty"`
}

func newRulesCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List available lint rules",
		Long: `List all available lint rules with their default settings,
descriptions and whether they support auto-fixing.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules := lint.DefaultRegistry.Rules()

			switch format {
			case formatJSON:
				return outputRulesJSON(cmd.OutOrStdout(), rules)
			case "text":
				outputRulesText(cmd.OutOrStdout(), rules)
				return nil
			default:
				return fmt.Errorf("invalid format %q: must be text or json", format)
			}
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "text", "output format: text, json")

	return cmd
}

func outputRulesText(w io.Writer, rules []*lint.Rule) {
	logger := log.NewWithOptions(w, log.Options{ReportTimestamp: false})
	logger.SetLevel(log.InfoLevel)

	if len(rules) == 0 {
		logger.Info("no rules registered")
		return
	}

	for _, rule := range rules {
		fixable := "-"
		if rule.Fixable {
			fixable = "yes"
		}
		logger.Info(rule.Name,
			logging.FieldSeverity, rule.DefaultSeverity(),
			"defaults", []any(rule.Defaults),
			logging.FieldFixable, fixable,
			logging.FieldDescription, rule.Description,
		)
	}
}

func outputRulesJSON(w io.Writer, rules []*lint.Rule) error {
	infos := make([]ruleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo{
			Name:        rule.Name,
			Description: rule.Description,
			Severity:    string(rule.DefaultSeverity()),
			Defaults:    rule.Defaults,
			Fixable:     rule.Fixable,
			Tags:        rule.Tags,
		})
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}

// templateRules describes registered rules for config generation.
func templateRules(registry *lint.Registry) []config.RuleInfo {
	rules := registry.Rules()
	infos := make([]config.RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, config.RuleInfo{
			Name:        rule.Name,
			Description: rule.Description,
			Defaults:    rule.Defaults,
			Fixable:     rule.Fixable,
		})
	}
	return infos
}
