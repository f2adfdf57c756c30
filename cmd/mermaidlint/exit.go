package main

import "fmt"

const (
	ExitOK = 0
	// ExitLint means at least one input has errors.
	ExitLint = 1
	// ExitUsage covers bad flags, unreadable arguments and I/O failures.
	ExitUsage = 2
)

// ExitError carries a process exit code while preserving wrapped error context.
// A nil Err exits silently.
type ExitError struct {
	Code int
	Err  error
}

func (e *ExitError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err == nil {
		return fmt.Sprintf("process failed with exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

func newExitError(code int, err error) error {
	return &ExitError{Code: code, Err: err}
}

// lintFailed is the silent exit for inputs that did not pass.
func lintFailed() error {
	return &ExitError{Code: ExitLint}
}
