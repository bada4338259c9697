package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"strings"

	"github.com/leapstack-labs/sqlseg/internal/cli/config"
	"github.com/leapstack-labs/sqlseg/internal/cli/output"
	"github.com/leapstack-labs/sqlseg/pkg/lint"
	_ "github.com/leapstack-labs/sqlseg/pkg/lint/rules" // register rules
	"github.com/leapstack-labs/sqlseg/pkg/parser"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

// LintOptions holds options for the lint command.
type LintOptions struct {
	Format    string   // Output format: text, markdown, json, yaml
	Disable   []string // Rule IDs to disable
	Severity  string   // Minimum severity: error, warning, info, hint
	Rules     []string // Run only specific rules
	Processes int      // Files linted in parallel
	Watch     bool     // Re-lint files as they change
}

// NewLintCommand creates the lint command.
func NewLintCommand() *cobra.Command {
	opts := &LintOptions{}
	cmd := &cobra.Command{
		Use:   "lint [path...]",
		Short: "Run lint rules on SQL files",
		Long: `Analyze SQL files for layout, capitalisation and convention issues.

Directories are searched for *.sql files. With no path, or with "-",
SQL is read from standard input. Rules can be disabled, re-graded and
tuned in the lint section of the config file.

The command exits with status 65 when any violation is reported.`,
		Example: `  # Lint a directory
  sqlseg lint ./queries

  # Output as JSON
  sqlseg lint query.sql --format json

  # Disable specific rules
  sqlseg lint --disable LT05,CP01

  # Only report errors
  sqlseg lint --severity error

  # Re-lint a directory on every save
  sqlseg lint ./queries --watch`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLint(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Output format: text, markdown, json, yaml")
	cmd.Flags().StringSliceVar(&opts.Disable, "disable", nil, "Rule IDs to disable")
	cmd.Flags().StringVar(&opts.Severity, "severity", "hint", "Minimum severity: error, warning, info, hint")
	cmd.Flags().StringSliceVar(&opts.Rules, "rule", nil, "Run only specific rules")
	cmd.Flags().IntVarP(&opts.Processes, "processes", "p", runtime.NumCPU(), "Number of files linted in parallel")
	cmd.Flags().BoolVarP(&opts.Watch, "watch", "w", false, "Watch paths and re-lint changed files")

	return cmd
}

func runLint(cmd *cobra.Command, args []string, opts *LintOptions) error {
	if opts.Watch && len(args) == 0 {
		return fmt.Errorf("--watch needs at least one file or directory")
	}
	cmdCtx, err := NewCommandContext(cmd, opts.Format)
	if err != nil {
		return err
	}

	threshold, ok := lint.ParseSeverity(opts.Severity)
	if !ok {
		return fmt.Errorf("invalid --severity %q", opts.Severity)
	}

	lintCfg, err := buildLintConfig(cmdCtx.Cfg, opts)
	if err != nil {
		return err
	}

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	analyzer := lint.NewAnalyzer(lintCfg)
	results, err := lintInputs(cmd.Context(), cmdCtx, analyzer, inputs, opts.Processes)
	if err != nil {
		return err
	}
	results = filterBySeverity(results, threshold)

	if err := renderLintResults(cmdCtx.Renderer, results); err != nil {
		return err
	}

	if opts.Watch {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
		defer stop()
		return watchLint(ctx, cmdCtx, analyzer, args, opts, threshold)
	}

	if n := countViolations(results); n > 0 {
		return &ExitError{Code: ExitViolations, Err: fmt.Errorf("found %d lint violations", n)}
	}
	return nil
}

func buildLintConfig(cfg *config.Config, opts *LintOptions) (*lint.Config, error) {
	var disabled []string
	var severities map[string]string
	var ruleOpts map[string]map[string]any
	if cfg != nil {
		disabled = append(disabled, cfg.Lint.Disabled...)
		severities = cfg.Lint.Severity
		ruleOpts = cfg.Lint.Rules
	}
	// CLI overrides come last
	for _, id := range opts.Disable {
		disabled = append(disabled, strings.TrimSpace(id))
	}

	lintCfg, err := lint.ConfigFrom(disabled, severities, ruleOpts)
	if err != nil {
		return nil, err
	}

	// If --rule specified, disable all others
	if len(opts.Rules) > 0 {
		enabled := make(map[string]bool, len(opts.Rules))
		for _, id := range opts.Rules {
			enabled[strings.ToUpper(strings.TrimSpace(id))] = true
		}
		for _, rule := range lint.GetAll() {
			if !enabled[rule.ID] {
				lintCfg.Disable(rule.ID)
			}
		}
	}

	return lintCfg, nil
}

// lintFileResult holds lint results for a single file.
type lintFileResult struct {
	Path        string
	Diagnostics []lint.Diagnostic
}

// lintInputs parses and analyzes inputs concurrently, keeping input order.
func lintInputs(ctx context.Context, cmdCtx *CommandContext, analyzer *lint.Analyzer, inputs []sqlInput, processes int) ([]lintFileResult, error) {
	if processes < 1 {
		processes = 1
	}
	results := make([]lintFileResult, len(inputs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(processes)
	for i, in := range inputs {
		g.Go(func() error {
			res, err := parser.ParseString(gctx, in.Source, cmdCtx.Dialect,
				parser.WithMaxDepth(cmdCtx.Cfg.MaxDepth),
				parser.WithLogger(cmdCtx.Logger.With("path", in.Path)))
			if err != nil {
				return fmt.Errorf("%s: %w", in.Path, err)
			}
			diags := analyzer.Analyze(&lint.Input{
				Path:    in.Path,
				Source:  in.Source,
				Dialect: cmdCtx.Dialect,
				Result:  res,
			})
			cmdCtx.Logger.Debug("linted", "path", in.Path, "violations", len(diags))
			results[i] = lintFileResult{Path: in.Path, Diagnostics: diags}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func filterBySeverity(results []lintFileResult, threshold lint.Severity) []lintFileResult {
	filtered := make([]lintFileResult, 0, len(results))
	for _, r := range results {
		var diags []lint.Diagnostic
		for _, d := range r.Diagnostics {
			if d.Severity <= threshold {
				diags = append(diags, d)
			}
		}
		filtered = append(filtered, lintFileResult{Path: r.Path, Diagnostics: diags})
	}
	return filtered
}

func countViolations(results []lintFileResult) int {
	n := 0
	for _, r := range results {
		n += len(r.Diagnostics)
	}
	return n
}

// lintViolation is the machine-readable form of a diagnostic.
type lintViolation struct {
	LineNo      int    `json:"line_no" yaml:"line_no"`
	LinePos     int    `json:"line_pos" yaml:"line_pos"`
	Code        string `json:"code" yaml:"code"`
	Description string `json:"description" yaml:"description"`
	Severity    string `json:"severity" yaml:"severity"`
}

// lintFileReport is the machine-readable result for one file.
type lintFileReport struct {
	Filepath   string          `json:"filepath" yaml:"filepath"`
	Violations []lintViolation `json:"violations" yaml:"violations"`
}

func toReports(results []lintFileResult) []lintFileReport {
	reports := make([]lintFileReport, 0, len(results))
	for _, res := range results {
		report := lintFileReport{Filepath: res.Path, Violations: []lintViolation{}}
		for _, d := range res.Diagnostics {
			report.Violations = append(report.Violations, lintViolation{
				LineNo:      d.Pos.Line,
				LinePos:     d.Pos.Column,
				Code:        d.RuleID,
				Description: d.Message,
				Severity:    d.Severity.String(),
			})
		}
		reports = append(reports, report)
	}
	return reports
}

func renderLintResults(r *output.Renderer, results []lintFileResult) error {
	switch r.EffectiveMode() {
	case output.ModeJSON:
		return r.JSON(toReports(results))
	case output.ModeYAML:
		return r.YAML(toReports(results))
	}

	styles := r.Styles()
	failedFiles := 0
	for _, res := range results {
		status := styles.Pass.Render("PASS")
		if len(res.Diagnostics) > 0 {
			status = styles.Fail.Render("FAIL")
			failedFiles++
		}
		r.Printf("== [%s] %s\n", styles.Path.Render(res.Path), status)

		for _, d := range res.Diagnostics {
			r.Printf("L:%4d | P:%4d | %4s | %s\n",
				d.Pos.Line, d.Pos.Column,
				severityStyle(styles, d.Severity).Render(d.RuleID),
				d.Message)
		}
	}

	total := countViolations(results)
	if total == 0 {
		r.Success(fmt.Sprintf("All Finished! %d files checked, no violations found.", len(results)))
		return nil
	}
	r.Println(styles.Bold.Render(fmt.Sprintf("All Finished! %d violations in %d of %d files.", total, failedFiles, len(results))))
	return nil
}
