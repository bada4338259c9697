// Package main provides the sqlseg command.
package main

import (
	"errors"
	"os"

	"github.com/leapstack-labs/sqlseg/internal/cli"
)

func main() {
	os.Exit(exitCode(cli.Execute()))
}

// exitCode maps a command error to the process exit status.
func exitCode(err error) int {
	if err == nil {
		return 0
	}
	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return 1
}
