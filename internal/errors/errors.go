// Package errors provides the CLI error types and exit codes for hwcompose.
package errors

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/IObundle/versat-ai/internal/core"
)

// DetailError captures structured error information for display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Location is the file path or build label (optional).
	Location string

	// Field is the offending declaration for composition errors (optional).
	Field string

	// Context contains additional key-value context (optional).
	Context map[string]string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error renders the error as a headline followed by indented
// "key: value" lines. Location and Field come first, then Context sorted
// by key.
func (e *DetailError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s: %s\n", e.Type, e.Message)

	line := func(key, value string) {
		if value != "" {
			fmt.Fprintf(&b, "  %s: %s\n", key, value)
		}
	}
	line("location", e.Location)
	line("field", e.Field)
	for _, k := range slices.Sorted(maps.Keys(e.Context)) {
		line(k, e.Context[k])
	}

	if e.Hint != "" {
		fmt.Fprintf(&b, "hint: %s\n", e.Hint)
	}
	return b.String()
}

func (e *DetailError) Unwrap() error { return e.Cause }

// NewValidationError creates a validation error with details.
func NewValidationError(message, location, field, hint string) error {
	return &DetailError{
		Type:     "validation failed",
		Message:  message,
		Location: location,
		Field:    field,
		Hint:     hint,
		Cause:    ErrValidation,
	}
}

// NewNotFoundError creates a not found error with details.
func NewNotFoundError(message, location, hint string) error {
	return &DetailError{
		Type:     "not found",
		Message:  message,
		Location: location,
		Hint:     hint,
		Cause:    ErrNotFound,
	}
}

// compositionHints maps error kinds to remediation hints.
var compositionHints = map[core.ErrorKind]string{
	core.KindUnknownParameterReference: "Declare the parameter before it is used, or check --set and --flag names.",
	core.KindBoundsViolation:           "Pick a value inside the declared min/max.",
	core.KindUnknownInterfaceType:      "Run 'hwcompose catalog list' to see the available interface types.",
	core.KindDuplicateWireName:         "Port and wire names share one namespace; rename one of them.",
	core.KindConnectionShapeMismatch:   "Connected bundles must have the same signal count and widths, in order.",
	core.KindUnboundPort:               "Connect the port or declare it optional in the child module.",
	core.KindUnknownChildModule:        "Add the module to a description file listed under 'modules:'.",
	core.KindContractViolation:         "The assembled IR broke its schema; this is a bug in the description or the composer.",
	core.KindConflictingDefault:        "Only one selected fragment may override a parameter default.",
}

// FromComposition converts a composition failure into a DetailError
// wrapping ErrValidation. Errors without a composition kind are returned
// unchanged.
func FromComposition(label string, err error) error {
	var ce core.Error
	if !errors.As(err, &ce) {
		return err
	}
	return &DetailError{
		Type:     "composition failed (" + string(ce.Kind()) + ")",
		Message:  err.Error(),
		Location: label,
		Context:  ce.Details(),
		Hint:     compositionHints[ce.Kind()],
		Cause:    errors.Join(ErrValidation, err),
	}
}
