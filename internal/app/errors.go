package app

import (
	"errors"
	"fmt"
)

// Process exit codes
const (
	exitOK          = 0
	exitFailure     = 1
	exitUsage       = 2
	exitInterrupted = 130
)

var (
	errAborted     = errors.New("input aborted")
	errInterrupted = errors.New("interrupted")
)

// ArgumentError is a malformed command line
type ArgumentError struct {
	Err error
}

func (e *ArgumentError) Error() string { return e.Err.Error() }
func (e *ArgumentError) Unwrap() error { return e.Err }

// TerminalUnavailableError means the terminal could not be opened or set up
type TerminalUnavailableError struct {
	Term string
	Err  error
}

func (e *TerminalUnavailableError) Error() string {
	if e.Term == "" {
		return fmt.Sprintf("terminal unavailable: %v", e.Err)
	}
	return fmt.Sprintf("terminal %q unavailable: %v", e.Term, e.Err)
}

func (e *TerminalUnavailableError) Unwrap() error { return e.Err }

// InputReadError means the candidate stream failed before end of input
type InputReadError struct {
	Err error
}

func (e *InputReadError) Error() string { return e.Err.Error() }
func (e *InputReadError) Unwrap() error { return e.Err }

// exitCode maps an error from run to the process exit status
func exitCode(err error) int {
	var argErr *ArgumentError
	switch {
	case err == nil:
		return exitOK
	case errors.As(err, &argErr):
		return exitUsage
	case errors.Is(err, errInterrupted):
		return exitInterrupted
	default:
		return exitFailure
	}
}

// silent reports whether err ends the process without a diagnostic
func silent(err error) bool {
	return errors.Is(err, errAborted) || errors.Is(err, errInterrupted)
}
