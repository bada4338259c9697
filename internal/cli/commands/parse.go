package commands

import (
	"fmt"

	"github.com/leapstack-labs/sqlseg/pkg/format"
	"github.com/leapstack-labs/sqlseg/pkg/parser"
	"github.com/spf13/cobra"
)

// ParseOptions holds options for the parse command.
type ParseOptions struct {
	Format   string // Tree format: text, yaml, json
	CodeOnly bool   // Hide whitespace, newline and comment leaves
}

// NewParseCommand creates the parse command.
func NewParseCommand() *cobra.Command {
	opts := &ParseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [path...]",
		Short: "Print the parse tree of SQL files",
		Long: `Parse SQL and print the lossless segment tree.

Every character of the input appears in the tree. Statements that cannot
be structured are kept as unparsable segments and reported on stderr.
With no path, or with "-", SQL is read from standard input.`,
		Example: `  # Parse a file
  sqlseg parse query.sql

  # Parse from stdin with the postgres dialect
  echo "SELECT 1::int" | sqlseg parse -d postgres

  # Machine-readable tree without whitespace
  sqlseg parse query.sql --format json --code-only`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runParse(cmd, args, opts)
		},
	}

	cmd.Flags().StringVarP(&opts.Format, "format", "f", "", "Tree format: text, yaml, json (default from --output)")
	cmd.Flags().BoolVar(&opts.CodeOnly, "code-only", false, "Omit non-code leaves from the tree")

	_ = cmd.RegisterFlagCompletionFunc("format", func(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
		return []string{"text", "yaml", "json"}, cobra.ShellCompDirectiveNoFileComp
	})

	return cmd
}

func runParse(cmd *cobra.Command, args []string, opts *ParseOptions) error {
	cmdCtx, err := NewCommandContext(cmd, "")
	if err != nil {
		return err
	}
	r := cmdCtx.Renderer

	name := opts.Format
	if name == "" {
		name = cmdCtx.Cfg.Output
	}
	treeFormat, err := format.ParseFormat(name)
	if err != nil {
		return err
	}
	var fmtOpts []format.Option
	if opts.CodeOnly {
		fmtOpts = append(fmtOpts, format.WithCodeOnly())
	}

	inputs, err := readInputs(cmd, args)
	if err != nil {
		return err
	}

	failed := 0
	for i, in := range inputs {
		res, err := parser.ParseString(cmd.Context(), in.Source, cmdCtx.Dialect,
			parser.WithMaxDepth(cmdCtx.Cfg.MaxDepth),
			parser.WithLogger(cmdCtx.Logger.With("path", in.Path)))
		if err != nil {
			return fmt.Errorf("%s: %w", in.Path, err)
		}

		if len(inputs) > 1 {
			switch treeFormat {
			case format.YAML:
				if i > 0 {
					r.Println("---")
				}
			case format.Text:
				r.Println(r.Styles().Path.Render("== [" + in.Path + "]"))
			}
		}
		if err := format.Write(r.Writer(), res.Tree, treeFormat, fmtOpts...); err != nil {
			return fmt.Errorf("%s: %w", in.Path, err)
		}

		if !res.OK() {
			failed++
			for _, e := range res.Errors() {
				r.Error(fmt.Sprintf("%s: %v", in.Path, e))
			}
		}
	}

	if failed > 0 {
		return &ExitError{Code: ExitFailure, Err: fmt.Errorf("%d of %d inputs had parse problems", failed, len(inputs))}
	}
	return nil
}
