package commands

import (
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqlseg/internal/cli/config"
	"github.com/leapstack-labs/sqlseg/internal/cli/output"
	"github.com/leapstack-labs/sqlseg/pkg/dialect"
	_ "github.com/leapstack-labs/sqlseg/pkg/dialects/ansi"     // register ansi
	_ "github.com/leapstack-labs/sqlseg/pkg/dialects/postgres" // register postgres
	"github.com/spf13/cobra"
)

// stdinPath names input read from standard input.
const stdinPath = "stdin"

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg      *config.Config
	Logger   *slog.Logger
	Dialect  *dialect.Dialect
	Renderer *output.Renderer
}

// NewCommandContext resolves the configured dialect and builds a renderer.
// format overrides the configured output mode when non-empty.
func NewCommandContext(cmd *cobra.Command, format string) (*CommandContext, error) {
	cmdCtx, err := NewCommandContextWithoutDialect(cmd, format)
	if err != nil {
		return nil, err
	}
	d, err := resolveDialect(cmdCtx.Cfg.Dialect)
	if err != nil {
		return nil, err
	}
	cmdCtx.Dialect = d
	cmdCtx.Logger = cmdCtx.Logger.With(slog.String("dialect", d.Name))
	return cmdCtx, nil
}

// NewCommandContextWithoutDialect creates a CommandContext for commands
// that never parse SQL.
func NewCommandContextWithoutDialect(cmd *cobra.Command, format string) (*CommandContext, error) {
	cfg := config.FromContext(cmd.Context())
	if format == "" {
		format = cfg.Output
	}
	mode, err := output.ParseMode(format)
	if err != nil {
		return nil, err
	}

	return &CommandContext{
		Cfg:      cfg,
		Logger:   config.GetLogger(cmd.Context()),
		Renderer: output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), mode, output.WithNoColor(cfg.NoColor)),
	}, nil
}

func resolveDialect(name string) (*dialect.Dialect, error) {
	d, ok := dialect.Get(name)
	if !ok {
		return nil, &ExitError{
			Code: ExitUnknownDialect,
			Err:  fmt.Errorf("%w %q (available: %s)", dialect.ErrUnknownDialect, name, strings.Join(dialect.List(), ", ")),
		}
	}
	return d, nil
}

// sqlInput is one unit of SQL text to process.
type sqlInput struct {
	Path   string
	Source string
}

// readInputs loads every SQL source named by args. Directories are walked
// for *.sql files. No arguments, or "-", reads standard input.
func readInputs(cmd *cobra.Command, args []string) ([]sqlInput, error) {
	if len(args) == 0 {
		args = []string{"-"}
	}

	var inputs []sqlInput
	for _, arg := range args {
		if arg == "-" {
			data, err := io.ReadAll(cmd.InOrStdin())
			if err != nil {
				return nil, fmt.Errorf("failed to read stdin: %w", err)
			}
			inputs = append(inputs, sqlInput{Path: stdinPath, Source: string(data)})
			continue
		}

		paths, err := expandPath(arg)
		if err != nil {
			return nil, err
		}
		for _, p := range paths {
			data, err := os.ReadFile(p) //nolint:gosec // user-supplied paths are the point
			if err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", p, err)
			}
			inputs = append(inputs, sqlInput{Path: p, Source: string(data)})
		}
	}
	return inputs, nil
}

// expandPath returns path itself for a file, or the sorted *.sql files
// below it for a directory.
func expandPath(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	if !info.IsDir() {
		return []string{path}, nil
	}

	var files []string
	err = filepath.WalkDir(path, func(p string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(p), ".sql") {
			files = append(files, p)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", path, err)
	}
	sort.Strings(files)
	return files, nil
}
