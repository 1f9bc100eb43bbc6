// Package loader reads module, target and interface type descriptions from
// CUE, YAML or JSON files. Every file is unified with an embedded CUE
// schema before it is decoded, so shape errors carry file positions.
package loader

import (
	_ "embed"
	"fmt"
	"maps"
	"slices"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"

	"github.com/IObundle/versat-ai/internal/assembler"
	"github.com/IObundle/versat-ai/internal/catalog"
	"github.com/IObundle/versat-ai/internal/core"
	"github.com/IObundle/versat-ai/internal/output"
)

//go:embed schema.cue
var schemaSource []byte

// Schema returns the CUE source of the description schema.
func Schema() string {
	return string(schemaSource)
}

// Set is the content of one or more description files.
type Set struct {
	Templates []catalog.Template
	Modules   []*core.ModuleDescription
	Targets   []assembler.Target
}

// Merge appends other to s.
func (s *Set) Merge(other *Set) {
	s.Templates = append(s.Templates, other.Templates...)
	s.Modules = append(s.Modules, other.Modules...)
	s.Targets = append(s.Targets, other.Targets...)
}

// Empty reports whether s holds nothing.
func (s *Set) Empty() bool {
	return len(s.Templates) == 0 && len(s.Modules) == 0 && len(s.Targets) == 0
}

// LoadError is a schema or decoding failure in one file.
type LoadError struct {
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("%s: %s", e.Path, strings.TrimSpace(cueerrors.Details(e.Err, nil)))
}

func (e *LoadError) Unwrap() error { return e.Err }

// Loader decodes description files. A Loader is not safe for concurrent use.
type Loader struct {
	ctx    *cue.Context
	values *ValuesLoader
	file   cue.Value
	params cue.Value
}

// New compiles the embedded schema.
func New() (*Loader, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("schema.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling description schema: %w", err)
	}
	return &Loader{
		ctx:    ctx,
		values: NewValuesLoader(ctx),
		file:   schema.LookupPath(cue.ParsePath("#File")),
		params: schema.LookupPath(cue.ParsePath("#Params")),
	}, nil
}

// LoadFiles loads every path and merges the results in order.
func (l *Loader) LoadFiles(paths ...string) (*Set, error) {
	set := &Set{}
	for _, path := range paths {
		value, err := l.values.LoadFile(path)
		if err != nil {
			return nil, err
		}
		s, err := l.decode(path, value)
		if err != nil {
			return nil, err
		}
		set.Merge(s)
	}
	return set, nil
}

// LoadBytes loads one description document. The format follows the
// extension of path.
func (l *Loader) LoadBytes(path string, data []byte) (*Set, error) {
	value, err := l.values.LoadBytes(path, data)
	if err != nil {
		return nil, err
	}
	return l.decode(path, value)
}

func (l *Loader) decode(path string, value cue.Value) (*Set, error) {
	unified := l.file.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	var f fileDTO
	if err := unified.Decode(&f); err != nil {
		return nil, &LoadError{Path: path, Err: err}
	}

	set := &Set{}
	for _, name := range slices.Sorted(maps.Keys(f.Interfaces)) {
		set.Templates = append(set.Templates, f.Interfaces[name])
	}
	for _, name := range slices.Sorted(maps.Keys(f.Modules)) {
		m, err := f.Modules[name].toModule()
		if err != nil {
			return nil, fmt.Errorf("%s: module %s: %w", path, name, err)
		}
		set.Modules = append(set.Modules, m)
	}
	for _, name := range slices.Sorted(maps.Keys(f.Targets)) {
		t, err := f.Targets[name].toTarget()
		if err != nil {
			return nil, fmt.Errorf("%s: target %s: %w", path, name, err)
		}
		set.Targets = append(set.Targets, t)
	}

	output.Debug("loaded descriptions", "path", path,
		"interfaces", len(set.Templates), "modules", len(set.Modules), "targets", len(set.Targets))
	return set, nil
}

// BuildParams is the decoded content of build parameter files.
type BuildParams struct {
	Name         string
	Instantiator string
	Flags        map[string]bool
	Overrides    map[string]string
}

// LoadParams loads and unifies build parameter files. Later files cannot
// contradict earlier ones; CUE unification rejects conflicting values.
func (l *Loader) LoadParams(paths ...string) (*BuildParams, error) {
	value, err := l.values.LoadMultiple(paths)
	if err != nil {
		return nil, err
	}

	label := strings.Join(paths, ", ")
	unified := l.params.Unify(value)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return nil, &LoadError{Path: label, Err: err}
	}

	var dto paramsDTO
	if err := unified.Decode(&dto); err != nil {
		return nil, &LoadError{Path: label, Err: err}
	}

	p := &BuildParams{
		Name:         dto.Name,
		Instantiator: dto.Instantiator,
		Flags:        dto.Flags,
		Overrides:    make(map[string]string, len(dto.Set)),
	}
	for k, v := range dto.Set {
		p.Overrides[k] = valueString(v)
	}
	return p, nil
}
