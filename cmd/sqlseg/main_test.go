// Package main provides tests for the sqlseg CLI.
package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leapstack-labs/sqlseg/internal/cli"
	"github.com/leapstack-labs/sqlseg/internal/cli/config"
)

// run executes the root command in an empty working directory so no
// config file is picked up by accident.
func run(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	t.Chdir(t.TempDir())
	config.ResetConfig()

	cmd := cli.NewRootCmd()
	out, errOut := new(bytes.Buffer), new(bytes.Buffer)
	cmd.SetOut(out)
	cmd.SetErr(errOut)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(args)

	err := cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestVersionCommand(t *testing.T) {
	out, _, err := run(t, "", "version")
	if err != nil {
		t.Errorf("version command error = %v", err)
	}
	if !strings.Contains(out, "sqlseg v") {
		t.Errorf("version output should contain 'sqlseg v', got: %s", out)
	}
}

func TestHelpCommand(t *testing.T) {
	out, _, err := run(t, "", "--help")
	if err != nil {
		t.Errorf("help command error = %v", err)
	}

	expectedCommands := []string{"parse", "lint", "rules", "dialects", "shell", "completion"}
	for _, expected := range expectedCommands {
		if !strings.Contains(out, expected) {
			t.Errorf("help output should contain '%s', got: %s", expected, out)
		}
	}
}

func TestParseCommand(t *testing.T) {
	out, _, err := run(t, "SELECT a, b FROM t WHERE a > -1;\n", "parse")
	if err != nil {
		t.Fatalf("parse command error = %v", err)
	}
	for _, want := range []string{"select_statement:", "where_clause:", "numeric_literal:"} {
		if !strings.Contains(out, want) {
			t.Errorf("parse output should contain %q, got: %s", want, out)
		}
	}
}

func TestParseCommandDialectFlag(t *testing.T) {
	out, _, err := run(t, "SELECT a::int FROM t", "--dialect", "postgres", "parse", "--code-only")
	if err != nil {
		t.Fatalf("parse command error = %v", err)
	}
	if !strings.Contains(out, "casting_operator:") {
		t.Errorf("postgres parse should contain a cast, got: %s", out)
	}
}

func TestDialectFromEnv(t *testing.T) {
	t.Setenv("SQLSEG_DIALECT", "nope")

	_, _, err := run(t, "SELECT 1", "parse")
	if got := exitCode(err); got != 66 {
		t.Errorf("exit code = %d, want 66 (err = %v)", got, err)
	}
}

func TestConfigFile(t *testing.T) {
	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lint.yaml")
	if err := os.WriteFile(cfgPath, []byte("lint:\n  disabled: [LT01]\n"), 0600); err != nil {
		t.Fatal(err)
	}

	_, _, err := run(t, "SELECT a FROM t  \n", "--config", cfgPath, "lint")
	if err != nil {
		t.Errorf("lint with LT01 disabled should pass, got %v", err)
	}
}

func TestLintExitCode(t *testing.T) {
	out, _, err := run(t, "SELECT a FROM t  \n", "lint")
	if got := exitCode(err); got != 65 {
		t.Errorf("exit code = %d, want 65 (err = %v)", got, err)
	}
	if !strings.Contains(out, "LT01") {
		t.Errorf("lint output should mention LT01, got: %s", out)
	}
}

func TestVerboseLogging(t *testing.T) {
	_, errOut, err := run(t, "SELECT 1", "--verbose", "parse")
	if err != nil {
		t.Fatalf("parse command error = %v", err)
	}
	if !strings.Contains(errOut, "level=DEBUG") {
		t.Errorf("verbose run should log at debug level, got: %s", errOut)
	}
}

func TestInvalidOutputFlag(t *testing.T) {
	_, _, err := run(t, "SELECT 1", "--output", "xml", "parse")
	if err == nil {
		t.Fatal("invalid output should return an error")
	}
	if got := exitCode(err); got != 1 {
		t.Errorf("exit code = %d, want 1", got)
	}
}

func TestCompletionCommand(t *testing.T) {
	shells := []string{"bash", "zsh", "fish", "powershell"}

	for _, shell := range shells {
		t.Run(shell, func(t *testing.T) {
			out, _, err := run(t, "", "completion", shell)
			if err != nil {
				t.Errorf("completion %s command error = %v", shell, err)
			}
			if out == "" {
				t.Errorf("completion %s should write a script", shell)
			}
		})
	}
}

func TestUnknownCommand(t *testing.T) {
	_, _, err := run(t, "", "unknown-command")
	if err == nil {
		t.Error("unknown command should return an error")
	}
}

func TestExitCode(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil", nil, 0},
		{"plain", errors.New("boom"), 1},
		{"exit error", &cli.ExitError{Code: 65}, 65},
		{"wrapped", errors.Join(errors.New("ctx"), &cli.ExitError{Code: 66}), 66},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := exitCode(tt.err); got != tt.want {
				t.Errorf("exitCode() = %d, want %d", got, tt.want)
			}
		})
	}
}
