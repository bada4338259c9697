package commands

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/leapstack-labs/sqlseg/internal/cli/config"
	"github.com/leapstack-labs/sqlseg/internal/cli/testutil"
)

// execute runs cmd with the given config, stdin and arguments.
func execute(t *testing.T, cmd *cobra.Command, cfg *config.Config, stdin string, args ...string) (string, string, error) {
	t.Helper()
	if cfg == nil {
		cfg = config.Default()
	}
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)
	// Same as the root command: failures are reported through the returned error.
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	err := cmd.ExecuteContext(config.WithConfig(context.Background(), cfg))
	testutil.AssertNoANSI(t, out.String())
	return out.String(), errOut.String(), err
}

func exitCode(t *testing.T, err error) int {
	t.Helper()
	var exitErr *ExitError
	require.True(t, errors.As(err, &exitErr), "expected ExitError, got %v", err)
	return exitErr.Code
}

func TestCommandMetadata(t *testing.T) {
	tests := []struct {
		cmd   *cobra.Command
		use   string
		flags []string
	}{
		{NewParseCommand(), "parse [path...]", []string{"format", "code-only"}},
		{NewLintCommand(), "lint [path...]", []string{"format", "disable", "severity", "rule", "processes"}},
		{NewRulesCommand(), "rules [rule-id]", []string{"group", "format"}},
		{NewDialectsCommand(), "dialects [name]", []string{"format"}},
	}

	for _, tt := range tests {
		t.Run(tt.use, func(t *testing.T) {
			assert.Equal(t, tt.use, tt.cmd.Use)
			assert.NotEmpty(t, tt.cmd.Short, "Short should not be empty")
			assert.NotEmpty(t, tt.cmd.Example, "Example should not be empty")
			for _, flag := range tt.flags {
				assert.NotNil(t, tt.cmd.Flags().Lookup(flag), "flag %q should exist", flag)
			}
		})
	}
}

func TestParse_Stdin(t *testing.T) {
	out, errOut, err := execute(t, NewParseCommand(), nil, "SELECT a FROM t;\n")
	require.NoError(t, err)

	assert.Contains(t, out, "file:")
	assert.Contains(t, out, "select_statement:")
	assert.Contains(t, out, "from_clause:")
	assert.Empty(t, errOut)
}

func TestParse_CodeOnlyJSON(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{"q.sql": "SELECT 1"})

	out, _, err := execute(t, NewParseCommand(), nil, "", filepath.Join(dir, "q.sql"), "--format", "json", "--code-only")
	require.NoError(t, err)

	var tree map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &tree))
	assert.Equal(t, "file", tree["type"])
	assert.NotContains(t, out, `"whitespace"`)
}

func TestParse_MultipleFiles(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{
		"a.sql":        "SELECT 1",
		"nested/b.sql": "SELECT 2",
		"notes.txt":    "not sql",
	})

	out, _, err := execute(t, NewParseCommand(), nil, "", dir)
	require.NoError(t, err)

	assert.Contains(t, out, "== ["+filepath.Join(dir, "a.sql")+"]")
	assert.Contains(t, out, "== ["+filepath.Join(dir, "nested", "b.sql")+"]")
	assert.NotContains(t, out, "notes.txt")
	assert.Less(t, strings.Index(out, "a.sql"), strings.Index(out, "b.sql"))
}

func TestParse_Problems(t *testing.T) {
	out, errOut, err := execute(t, NewParseCommand(), nil, "SELECT FROM;")
	require.Error(t, err)

	assert.Equal(t, ExitFailure, exitCode(t, err))
	assert.Contains(t, out, "unparsable:")
	assert.Contains(t, errOut, "stdin: parse error at line 1")
}

func TestParse_Dialect(t *testing.T) {
	cfg := config.Default()
	cfg.Dialect = "postgres"

	_, _, err := execute(t, NewParseCommand(), cfg, "SELECT a::int FROM t")
	require.NoError(t, err)

	cfg.Dialect = "oracle"
	_, _, err = execute(t, NewParseCommand(), cfg, "SELECT 1")
	require.Error(t, err)
	assert.Equal(t, ExitUnknownDialect, exitCode(t, err))
	assert.Contains(t, err.Error(), "available: ansi, postgres")
}

func TestParse_MissingFile(t *testing.T) {
	_, _, err := execute(t, NewParseCommand(), nil, "", filepath.Join(t.TempDir(), "missing.sql"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.sql")
}

func TestLint_Clean(t *testing.T) {
	out, _, err := execute(t, NewLintCommand(), nil, "SELECT a FROM t;\n")
	require.NoError(t, err)

	assert.Contains(t, out, "== [stdin] PASS")
	assert.Contains(t, out, "no violations found")
}

func TestLint_Violations(t *testing.T) {
	out, _, err := execute(t, NewLintCommand(), nil, "SELECT a FROM t  \n")
	require.Error(t, err)

	assert.Equal(t, ExitViolations, exitCode(t, err))
	assert.Contains(t, out, "== [stdin] FAIL")
	assert.Contains(t, out, "L:   1 | P:  16 | LT01 | Unnecessary trailing whitespace.")
	assert.Contains(t, out, "1 violations in 1 of 1 files")
}

func TestLint_Filters(t *testing.T) {
	sql := "SELECT a FROM t  \n"

	tests := []struct {
		name string
		args []string
	}{
		{"disable", []string{"--disable", "lt01"}},
		{"only other rule", []string{"--rule", "CP01"}},
		{"severity threshold", []string{"--severity", "error"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out, _, err := execute(t, NewLintCommand(), nil, sql, tt.args...)
			require.NoError(t, err)
			assert.Contains(t, out, "PASS")
		})
	}
}

func TestLint_ConfigDisabled(t *testing.T) {
	cfg := config.Default()
	cfg.Lint.Disabled = []string{"LT01"}

	_, _, err := execute(t, NewLintCommand(), cfg, "SELECT a FROM t  \n")
	require.NoError(t, err)
}

func TestLint_JSON(t *testing.T) {
	dir := testutil.WriteSQLFiles(t, map[string]string{
		"clean.sql": "SELECT a FROM t;\n",
		"dirty.sql": "SELECT a from t;\n",
	})

	out, _, err := execute(t, NewLintCommand(), nil, "", dir, "--format", "json", "--processes", "2")
	require.Error(t, err)
	assert.Equal(t, ExitViolations, exitCode(t, err))

	var reports []lintFileReport
	require.NoError(t, json.Unmarshal([]byte(out), &reports))
	require.Len(t, reports, 2)

	assert.Equal(t, filepath.Join(dir, "clean.sql"), reports[0].Filepath)
	assert.Empty(t, reports[0].Violations)

	require.Len(t, reports[1].Violations, 1)
	v := reports[1].Violations[0]
	assert.Equal(t, "CP01", v.Code)
	assert.Equal(t, 1, v.LineNo)
	assert.Equal(t, 10, v.LinePos)
	assert.Equal(t, "warning", v.Severity)
}

func TestLint_InvalidSeverity(t *testing.T) {
	_, _, err := execute(t, NewLintCommand(), nil, "SELECT 1", "--severity", "fatal")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "fatal")
}

func TestBuildLintConfig(t *testing.T) {
	t.Run("empty options", func(t *testing.T) {
		cfg, err := buildLintConfig(nil, &LintOptions{})
		require.NoError(t, err)
		assert.False(t, cfg.IsDisabled("LT01"))
	})

	t.Run("config and flags combine", func(t *testing.T) {
		projectCfg := config.Default()
		projectCfg.Lint.Disabled = []string{"LT05"}
		projectCfg.Lint.Severity = map[string]string{"CP01": "error"}

		cfg, err := buildLintConfig(projectCfg, &LintOptions{Disable: []string{" cv01 "}})
		require.NoError(t, err)
		assert.True(t, cfg.IsDisabled("LT05"))
		assert.True(t, cfg.IsDisabled("CV01"))
		assert.False(t, cfg.IsDisabled("LT01"))
	})

	t.Run("invalid severity", func(t *testing.T) {
		projectCfg := config.Default()
		projectCfg.Lint.Severity = map[string]string{"CP01": "loud"}

		_, err := buildLintConfig(projectCfg, &LintOptions{})
		assert.ErrorContains(t, err, "CP01")
	})
}

func TestRules(t *testing.T) {
	out, _, err := execute(t, NewRulesCommand(), nil, "")
	require.NoError(t, err)
	for _, id := range []string{"PRS", "LT01", "LT02", "LT05", "CP01", "CV01", "CV08"} {
		assert.Contains(t, out, id)
	}

	out, _, err = execute(t, NewRulesCommand(), nil, "", "--group", "layout", "--format", "json")
	require.NoError(t, err)
	var infos []RuleInfo
	require.NoError(t, json.Unmarshal([]byte(out), &infos))
	assert.Len(t, infos, 3)

	out, _, err = execute(t, NewRulesCommand(), nil, "", "lt05")
	require.NoError(t, err)
	assert.Contains(t, out, "max_line_length")

	_, _, err = execute(t, NewRulesCommand(), nil, "", "XX99")
	assert.ErrorContains(t, err, "not found")
}

func TestDialects(t *testing.T) {
	out, _, err := execute(t, NewDialectsCommand(), nil, "", "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "| ansi")
	assert.Contains(t, out, "| postgres")
	testutil.AssertValidMarkdown(t, out)

	out, _, err = execute(t, NewDialectsCommand(), nil, "", "postgres", "--format", "json")
	require.NoError(t, err)
	var info DialectInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	assert.Equal(t, "postgres", info.Name)
	assert.Equal(t, "ansi", info.Base)
	assert.Contains(t, info.Grammars, "StatementSegment")
	assert.Equal(t, []string{"dollar_quoted"}, info.LexCategories)

	out, _, err = execute(t, NewDialectsCommand(), nil, "", "ansi", "--format", "json")
	require.NoError(t, err)
	assert.NotContains(t, out, "lex_categories")

	_, _, err = execute(t, NewDialectsCommand(), nil, "", "oracle")
	require.Error(t, err)
	assert.Equal(t, ExitUnknownDialect, exitCode(t, err))
}
