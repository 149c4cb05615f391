package cli

import (
	"context"
	"errors"
	"fmt"
)

// Exit codes for stylefmt.
const (
	// ExitSuccess indicates success, including batch runs where some files failed.
	ExitSuccess = 0

	// ExitFailure indicates a single-file or stdin run failed.
	ExitFailure = 1

	// ExitInvalidUsage indicates invalid command-line usage.
	ExitInvalidUsage = 64

	// ExitConfigError indicates configuration file errors.
	ExitConfigError = 65

	// ExitInterrupted indicates the run was cancelled by a signal.
	ExitInterrupted = 130
)

// ExitError carries the process exit code for an error.
type ExitError struct {
	Code int
	Err  error

	// Reported is set when the failure was already logged.
	Reported bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit status %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	return e.Err
}

func withCode(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// ExitCode maps an error returned by the root command to a process exit code.
// Errors without an explicit code are usage errors from flag parsing.
func ExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}
	if errors.Is(err, context.Canceled) {
		return ExitInterrupted
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	return ExitInvalidUsage
}
