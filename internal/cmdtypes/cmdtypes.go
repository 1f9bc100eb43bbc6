// Package cmdtypes provides shared types for the cmd package and its
// sub-packages. It is separate from internal/cmd to avoid import cycles
// between internal/cmd and internal/cmd/compose, internal/cmd/catalog and
// internal/cmd/config.
package cmdtypes

import (
	"github.com/IObundle/versat-ai/internal/config"
	oerrors "github.com/IObundle/versat-ai/internal/errors"
)

// GlobalConfig holds CLI-wide configuration resolved during
// PersistentPreRunE. It is populated once at startup and passed into every
// sub-command constructor.
type GlobalConfig struct {
	// Config is the loaded config file (never nil after startup).
	Config *config.Config

	// Resolved holds the effective settings after flag precedence.
	Resolved *config.Resolved

	// ConfigPath is the resolved --config path.
	ConfigPath string

	// Catalogs holds the raw --catalog flag values.
	Catalogs []string

	Verbose bool
}

// DescriptionFiles returns the description files to load, or nil before
// startup.
func (g *GlobalConfig) DescriptionFiles() []string {
	if g == nil || g.Resolved == nil {
		return nil
	}
	return g.Resolved.DescriptionFiles()
}

// Jobs returns the resolved build concurrency.
func (g *GlobalConfig) Jobs() int {
	if g == nil || g.Resolved == nil {
		return config.DefaultJobs
	}
	return g.Resolved.JobCount()
}

// OutputFormat returns the resolved default IR format.
func (g *GlobalConfig) OutputFormat() string {
	if g == nil || g.Resolved == nil {
		return "yaml"
	}
	return g.Resolved.OutputFormat()
}

// Exit codes, aliased from internal/errors.
const (
	ExitSuccess         = oerrors.ExitSuccess
	ExitGeneralError    = oerrors.ExitGeneralError
	ExitValidationError = oerrors.ExitValidationError
	ExitNotFound        = oerrors.ExitNotFound
)

// ExitError is a type alias to internal/errors.ExitError.
type ExitError = oerrors.ExitError

// AnnotationSkipConfig marks commands that run without loading the config
// file.
const AnnotationSkipConfig = "hwcompose/skip-config"
