package commands

import "fmt"

// Process exit codes.
const (
	ExitFailure        = 1
	ExitViolations     = 65
	ExitUnknownDialect = 66
)

// ExitError carries the process exit code a command failed with.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }
