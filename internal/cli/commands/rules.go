package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/leapstack-labs/sqlseg/internal/cli/output"
	"github.com/leapstack-labs/sqlseg/pkg/lint"
	_ "github.com/leapstack-labs/sqlseg/pkg/lint/rules" // register rules
	"github.com/spf13/cobra"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// RulesOptions holds options for the rules command.
type RulesOptions struct {
	Group  string // Filter by group
	Format string // Output format
}

// NewRulesCommand creates the rules command.
func NewRulesCommand() *cobra.Command {
	opts := &RulesOptions{}
	cmd := &cobra.Command{
		Use:   "rules [rule-id]",
		Short: "List available lint rules",
		Long: `List all available lint rules, or show one rule in detail.

Rules are organized by group (layout, capitalisation, convention, parse).`,
		Example: `  # List all rules
  sqlseg rules

  # Show details for a specific rule
  sqlseg rules LT05

  # List rules in the layout group
  sqlseg rules --group layout

  # Output as JSON
  sqlseg rules --format json`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) > 0 {
				return showRule(cmd, args[0], opts)
			}
			return listRules(cmd, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "Filter by group")
	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")

	return cmd
}

// RuleInfo is the serializable description of a rule.
type RuleInfo struct {
	ID          string   `json:"id" yaml:"id"`
	Name        string   `json:"name" yaml:"name"`
	Group       string   `json:"group" yaml:"group"`
	Severity    string   `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`
	ConfigKeys  []string `json:"config_keys,omitempty" yaml:"config_keys,omitempty"`
	Dialects    []string `json:"dialects,omitempty" yaml:"dialects,omitempty"`
}

func ruleInfo(r lint.RuleDef) RuleInfo {
	return RuleInfo{
		ID:          r.ID,
		Name:        r.Name,
		Group:       r.Group,
		Severity:    r.Severity.String(),
		Description: r.Description,
		ConfigKeys:  r.ConfigKeys,
		Dialects:    r.Dialects,
	}
}

func listRules(cmd *cobra.Command, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContextWithoutDialect(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	rules := lint.GetAll()
	if opts.Group != "" {
		rules = lint.GetByGroup(strings.ToLower(opts.Group))
	}
	infos := make([]RuleInfo, 0, len(rules))
	for _, rule := range rules {
		infos = append(infos, ruleInfo(rule))
	}

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(infos)
	case output.ModeYAML:
		return r.YAML(infos)
	}

	r.Header(1, fmt.Sprintf("Lint Rules (%d)", len(infos)))
	rows := make([][]string, 0, len(infos))
	for _, info := range infos {
		rows = append(rows, []string{info.ID, info.Name, info.Group, info.Severity, info.Description})
	}
	r.Table([]string{"ID", "Name", "Group", "Severity", "Description"}, rows)
	return nil
}

func showRule(cmd *cobra.Command, ruleID string, opts *RulesOptions) error {
	cmdCtx, err := NewCommandContextWithoutDialect(cmd, opts.Format)
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	rule, ok := lint.GetByID(strings.ToUpper(strings.TrimSpace(ruleID)))
	if !ok {
		return fmt.Errorf("rule %q not found", ruleID)
	}
	info := ruleInfo(rule)

	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(info)
	case output.ModeYAML:
		return r.YAML(info)
	case output.ModeMarkdown:
		r.Println(output.FormatHeader(1, info.ID+" - "+info.Name))
		r.Println("")
		r.Println(output.FormatKeyValue("Group", info.Group))
		r.Println(output.FormatKeyValue("Severity", "`"+info.Severity+"`"))
		if len(info.ConfigKeys) > 0 {
			r.Println(output.FormatKeyValue("Options", "`"+strings.Join(info.ConfigKeys, "`, `")+"`"))
		}
		r.Println("")
		r.Println(info.Description)
		return nil
	}

	styles := r.Styles()
	r.Header(1, fmt.Sprintf("%s - %s", info.ID, info.Name))
	r.Println("")
	r.Printf("  %s: %s\n", styles.Bold.Render("Group"), cases.Title(language.Und).String(info.Group))
	r.Printf("  %s: %s\n", styles.Bold.Render("Severity"), severityStyle(styles, rule.Severity).Render(info.Severity))
	if len(info.ConfigKeys) > 0 {
		r.Printf("  %s: %s\n", styles.Bold.Render("Options"), strings.Join(info.ConfigKeys, ", "))
	}
	if len(info.Dialects) > 0 {
		r.Printf("  %s: %s\n", styles.Bold.Render("Dialects"), strings.Join(info.Dialects, ", "))
	}
	r.Println("")
	r.Println("  " + info.Description)
	return nil
}

func severityStyle(styles *output.Styles, sev lint.Severity) lipgloss.Style {
	switch sev {
	case lint.SeverityError:
		return styles.Error
	case lint.SeverityWarning:
		return styles.Warning
	case lint.SeverityInfo:
		return styles.Info
	default:
		return styles.Hint
	}
}
