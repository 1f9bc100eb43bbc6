package cmdutil

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/IObundle/versat-ai/internal/assembler"
	"github.com/IObundle/versat-ai/internal/catalog"
	"github.com/IObundle/versat-ai/internal/contract"
	oerrors "github.com/IObundle/versat-ai/internal/errors"
	"github.com/IObundle/versat-ai/internal/loader"
	"github.com/IObundle/versat-ai/internal/output"
	"github.com/IObundle/versat-ai/internal/targets"
)

// Workspace is everything a build needs: the built-in catalog, library and
// targets extended with the loaded description files.
type Workspace struct {
	Loader    *loader.Loader
	Catalog   *catalog.Catalog
	Library   *targets.Library
	Targets   *targets.Set
	Assembler *assembler.Assembler
}

// LoadWorkspace loads the description files on top of the built-ins and
// returns an assembler that validates every IR against the IR contract.
//
// On failure it returns an *ExitError: ExitNotFound for missing files,
// ExitValidationError for invalid descriptions.
func LoadWorkspace(files []string) (*Workspace, error) {
	ld, err := loader.New()
	if err != nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}

	set, err := ld.LoadFiles(files...)
	if err != nil {
		return nil, loadExitError(err)
	}

	cat, err := catalog.Builtin().With(set.Templates...)
	if err != nil {
		return nil, invalidDescriptions(err)
	}
	lib, err := targets.BuiltinLibrary().With(set.Modules...)
	if err != nil {
		return nil, invalidDescriptions(err)
	}
	ts, err := targets.Builtin().With(set.Targets...)
	if err != nil {
		return nil, invalidDescriptions(err)
	}

	validator, err := contract.New()
	if err != nil {
		return nil, &oerrors.ExitError{Code: oerrors.ExitGeneralError, Err: err}
	}

	output.Debug("workspace loaded",
		"files", len(files),
		"interfaces", cat.Len(),
		"modules", len(lib.Names()),
		"targets", len(ts.Names()),
	)

	return &Workspace{
		Loader:    ld,
		Catalog:   cat,
		Library:   lib,
		Targets:   ts,
		Assembler: assembler.New(cat, lib, assembler.WithValidator(validator)),
	}, nil
}

func loadExitError(err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return &oerrors.ExitError{
			Code: oerrors.ExitNotFound,
			Err:  oerrors.NewNotFoundError(err.Error(), "", "Check the catalogs, modules and targets entries of your config and --catalog flags."),
		}
	}
	var le *loader.LoadError
	if errors.As(err, &le) {
		return &oerrors.ExitError{
			Code: oerrors.ExitValidationError,
			Err:  oerrors.NewValidationError(le.Error(), le.Path, "", ""),
		}
	}
	return invalidDescriptions(err)
}

func invalidDescriptions(err error) error {
	return &oerrors.ExitError{
		Code: oerrors.ExitValidationError,
		Err:  fmt.Errorf("invalid descriptions: %w", err),
	}
}

// Target returns the named target or a not-found error listing the
// available ones.
func (w *Workspace) Target(name string) (assembler.Target, error) {
	t, ok := w.Targets.Lookup(name)
	if !ok {
		return t, &oerrors.ExitError{
			Code: oerrors.ExitNotFound,
			Err: oerrors.NewNotFoundError(
				fmt.Sprintf("target %q not found", name),
				"",
				"Available targets: "+strings.Join(w.Targets.Names(), ", "),
			),
		}
	}
	return t, nil
}

// SelectTargets returns the named targets in order, or every target when
// names is empty.
func (w *Workspace) SelectTargets(names []string) ([]assembler.Target, error) {
	if len(names) == 0 {
		names = w.Targets.Names()
	}
	out := make([]assembler.Target, 0, len(names))
	for _, name := range names {
		t, err := w.Target(name)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, nil
}
