package errors

import "errors"

// Sentinel errors for known conditions.
var (
	// ErrValidation indicates a description, config or composition failed
	// validation.
	ErrValidation = errors.New("validation error")

	// ErrNotFound indicates a target, interface type or file was not found.
	ErrNotFound = errors.New("not found")
)
