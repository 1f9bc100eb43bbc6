package config

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/IObundle/versat-ai/internal/loader"
)

//go:embed schema.cue
var schemaSource []byte

// Schema returns the CUE source of the config schema.
func Schema() string {
	return string(schemaSource)
}

// ValidationError is one invalid config field.
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// ValidationErrors is a collection of validation errors.
type ValidationErrors []ValidationError

// Error implements the error interface.
func (e ValidationErrors) Error() string {
	if len(e) == 0 {
		return "no validation errors"
	}

	var sb strings.Builder
	sb.WriteString("config validation failed:\n")
	for _, err := range e {
		sb.WriteString(fmt.Sprintf("  %s: %s\n", err.Field, err.Message))
	}
	return sb.String()
}

// Validator validates config files against the embedded CUE schema.
type Validator struct {
	ctx    *cue.Context
	schema cue.Value
}

// NewValidator compiles the schema.
func NewValidator() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling config schema: %w", err)
	}
	return &Validator{ctx: ctx, schema: schema.LookupPath(cue.ParsePath("#Config"))}, nil
}

// ValidateFile checks the config file at path. The file may be YAML, JSON
// or CUE.
func (v *Validator) ValidateFile(path string) error {
	expanded, err := ExpandPath(path)
	if err != nil {
		return err
	}
	value, err := loader.NewValuesLoader(v.ctx).LoadFile(expanded)
	if err != nil {
		return fmt.Errorf("loading config file: %w", err)
	}
	return v.validate(value)
}

// ValidateBytes checks config content as if read from path.
func (v *Validator) ValidateBytes(path string, data []byte) error {
	value, err := loader.NewValuesLoader(v.ctx).LoadBytes(path, data)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	return v.validate(value)
}

func (v *Validator) validate(value cue.Value) error {
	unified := v.schema.Unify(value)
	err := unified.Validate(cue.Concrete(true))
	if err == nil {
		return nil
	}

	var errs ValidationErrors
	for _, e := range cueerrors.Errors(err) {
		field := strings.Join(e.Path(), ".")
		if field == "" {
			field = "(root)"
		}
		format, args := e.Msg()
		errs = append(errs, ValidationError{Field: field, Message: fmt.Sprintf(format, args...)})
	}
	return errs
}
