package commands

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/leapstack-labs/sqlseg/pkg/dialect"
	"github.com/leapstack-labs/sqlseg/pkg/format"
	"github.com/leapstack-labs/sqlseg/pkg/lint"
	"github.com/leapstack-labs/sqlseg/pkg/parser"
	"github.com/spf13/cobra"
)

const (
	shellPrompt     = "sqlseg> "
	shellContPrompt = "   ...> "
)

// ShellOptions holds options for the shell command.
type ShellOptions struct {
	HistoryFile string
}

// NewShellCommand creates the interactive shell command.
func NewShellCommand() *cobra.Command {
	opts := &ShellOptions{}
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Parse SQL interactively",
		Long: `Start an interactive session that prints the parse tree of each
statement as it is entered. Statements end with a semicolon.

Type .help for session commands.`,
		Example: `  # Start a session with the postgres dialect
  sqlseg shell -d postgres`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runShell(cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.HistoryFile, "history-file", defaultHistoryFile(), "File to keep input history in (empty disables)")

	return cmd
}

func defaultHistoryFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".sqlseg_history")
}

// lineReader is the part of readline the session loop needs.
type lineReader interface {
	Readline() (string, error)
	SetPrompt(prompt string)
}

// shellSession holds the state a shell carries between statements.
type shellSession struct {
	cmdCtx   *CommandContext
	out      io.Writer
	errOut   io.Writer
	format   format.Format
	codeOnly bool
	lint     bool
	analyzer *lint.Analyzer
}

func runShell(cmd *cobra.Command, opts *ShellOptions) error {
	cmdCtx, err := NewCommandContext(cmd, "")
	if err != nil {
		return err
	}
	session, err := newShellSession(cmdCtx, cmd.OutOrStdout(), cmd.ErrOrStderr())
	if err != nil {
		return err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          shellPrompt,
		HistoryFile:     opts.HistoryFile,
		AutoComplete:    newShellCompleter(),
		InterruptPrompt: "^C",
		EOFPrompt:       ".quit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize shell: %w", err)
	}
	defer func() { _ = rl.Close() }()

	_, _ = fmt.Fprintf(session.out, "sqlseg shell (dialect: %s)\n", cmdCtx.Dialect.Name)
	_, _ = fmt.Fprintln(session.out, "Type .help for commands, .quit to exit")
	_, _ = fmt.Fprintln(session.out)

	return session.run(cmd, rl)
}

func newShellSession(cmdCtx *CommandContext, out, errOut io.Writer) (*shellSession, error) {
	f, err := format.ParseFormat(cmdCtx.Cfg.Output)
	if err != nil {
		return nil, err
	}
	lintCfg, err := buildLintConfig(cmdCtx.Cfg, &LintOptions{})
	if err != nil {
		return nil, err
	}
	return &shellSession{
		cmdCtx:   cmdCtx,
		out:      out,
		errOut:   errOut,
		format:   f,
		analyzer: lint.NewAnalyzer(lintCfg),
	}, nil
}

func newShellCompleter() *readline.PrefixCompleter {
	dialects := make([]readline.PrefixCompleterInterface, 0, len(dialect.List()))
	for _, name := range dialect.List() {
		dialects = append(dialects, readline.PcItem(name))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem(".help"),
		readline.PcItem(".dialect", dialects...),
		readline.PcItem(".format", readline.PcItem("text"), readline.PcItem("yaml"), readline.PcItem("json")),
		readline.PcItem(".codeonly"),
		readline.PcItem(".lint"),
		readline.PcItem(".quit"),
		readline.PcItem(".exit"),
	)
}

// run reads statements until EOF or .quit.
func (s *shellSession) run(cmd *cobra.Command, rl lineReader) error {
	var buf strings.Builder
	for {
		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			buf.Reset()
			rl.SetPrompt(shellPrompt)
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return err
		}

		trimmed := strings.TrimSpace(line)
		if buf.Len() == 0 {
			if trimmed == "" {
				continue
			}
			if strings.HasPrefix(trimmed, ".") {
				if quit := s.dotCommand(trimmed); quit {
					return nil
				}
				continue
			}
		}

		// Accumulate multi-line SQL until semicolon
		buf.WriteString(line)
		if !strings.HasSuffix(trimmed, ";") {
			buf.WriteString("\n")
			rl.SetPrompt(shellContPrompt)
			continue
		}
		rl.SetPrompt(shellPrompt)

		sql := buf.String()
		buf.Reset()
		if err := s.evaluate(cmd, sql); err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
		}
		_, _ = fmt.Fprintln(s.out)
	}
}

// evaluate parses sql and prints its tree, problems and optional lint findings.
func (s *shellSession) evaluate(cmd *cobra.Command, sql string) error {
	cmdCtx := s.cmdCtx
	res, err := parser.ParseString(cmd.Context(), sql, cmdCtx.Dialect,
		parser.WithMaxDepth(cmdCtx.Cfg.MaxDepth),
		parser.WithLogger(cmdCtx.Logger))
	if err != nil {
		return err
	}

	var fmtOpts []format.Option
	if s.codeOnly {
		fmtOpts = append(fmtOpts, format.WithCodeOnly())
	}
	if err := format.Write(s.out, res.Tree, s.format, fmtOpts...); err != nil {
		return err
	}
	for _, e := range res.Errors() {
		_, _ = fmt.Fprintln(s.errOut, e)
	}

	if s.lint {
		diags := s.analyzer.Analyze(&lint.Input{Path: stdinPath, Source: sql, Dialect: cmdCtx.Dialect, Result: res})
		for _, d := range diags {
			_, _ = fmt.Fprintf(s.out, "L:%4d | P:%4d | %4s | %s\n", d.Pos.Line, d.Pos.Column, d.RuleID, d.Message)
		}
	}
	return nil
}

// dotCommand runs a session command and reports whether to quit.
func (s *shellSession) dotCommand(line string) bool {
	parts := strings.Fields(line)
	command := strings.ToLower(parts[0])

	switch command {
	case ".quit", ".exit":
		return true

	case ".help":
		printShellHelp(s.out)

	case ".dialect":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "dialect: %s (available: %s)\n", s.cmdCtx.Dialect.Name, strings.Join(dialect.List(), ", "))
			return false
		}
		d, err := resolveDialect(parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		s.cmdCtx.Dialect = d
		_, _ = fmt.Fprintf(s.out, "dialect: %s\n", d.Name)

	case ".format":
		if len(parts) < 2 {
			_, _ = fmt.Fprintf(s.out, "format: %s\n", s.format)
			return false
		}
		f, err := format.ParseFormat(parts[1])
		if err != nil {
			_, _ = fmt.Fprintf(s.errOut, "Error: %v\n", err)
			return false
		}
		s.format = f
		_, _ = fmt.Fprintf(s.out, "format: %s\n", f)

	case ".codeonly":
		s.codeOnly = !s.codeOnly
		_, _ = fmt.Fprintf(s.out, "code only: %s\n", onOff(s.codeOnly))

	case ".lint":
		s.lint = !s.lint
		_, _ = fmt.Fprintf(s.out, "lint: %s\n", onOff(s.lint))

	default:
		_, _ = fmt.Fprintf(s.errOut, "Unknown command: %s (type .help for commands)\n", command)
	}
	return false
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}

func printShellHelp(w io.Writer) {
	help := `
Commands:
  .help            Show this help message
  .dialect [name]  Show or switch the dialect
  .format [name]   Show or switch the tree format (text, yaml, json)
  .codeonly        Toggle hiding whitespace and comments
  .lint            Toggle linting each statement
  .quit / .exit    Exit the shell

Tips:
  - Statements must end with a semicolon (;)
  - Use arrow keys to navigate history
  - Tab completion works for commands and dialect names
`
	_, _ = fmt.Fprintln(w, help)
}
