package errors

import (
	"errors"
	"fmt"
)

// Process exit codes of hwcompose.
const (
	ExitSuccess      = 0
	ExitGeneralError = 1

	// ExitValidationError covers invalid descriptions, build parameters,
	// config files, and failed compositions.
	ExitValidationError = 2

	// ExitNotFound covers unknown targets, interface types and missing files.
	ExitNotFound = 5
)

// sentinelCodes is checked in order; the first sentinel in the chain wins.
var sentinelCodes = []struct {
	sentinel error
	code     int
}{
	{ErrValidation, ExitValidationError},
	{ErrNotFound, ExitNotFound},
}

// ExitError carries the process exit code of a failed command.
type ExitError struct {
	Err  error
	Code int

	// Printed is set when the command already reported the error, so main
	// only exits with Code.
	Printed bool
}

func (e *ExitError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("exit code %d", e.Code)
	}
	return e.Err.Error()
}

func (e *ExitError) Unwrap() error { return e.Err }

// NewExitError wraps err with code.
func NewExitError(err error, code int) *ExitError {
	return &ExitError{Err: err, Code: code}
}

// ExitCodeFromError maps err to an exit code. An ExitError anywhere in the
// chain decides; otherwise the wrapped sentinel does.
func ExitCodeFromError(err error) int {
	if err == nil {
		return ExitSuccess
	}
	var exitErr *ExitError
	if errors.As(err, &exitErr) {
		return exitErr.Code
	}
	for _, sc := range sentinelCodes {
		if errors.Is(err, sc.sentinel) {
			return sc.code
		}
	}
	return ExitGeneralError
}
