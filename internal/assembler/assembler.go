// Package assembler is the entry point of a build: it evaluates the target's
// feature flags, merges the selected fragments into a module description,
// then drives parameter resolution, bundle declaration and subblock binding
// to produce a validated IR.
package assembler

import (
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/IObundle/versat-ai/internal/binder"
	"github.com/IObundle/versat-ai/internal/catalog"
	"github.com/IObundle/versat-ai/internal/core"
	"github.com/IObundle/versat-ai/internal/output"
	"github.com/IObundle/versat-ai/internal/params"
	"github.com/IObundle/versat-ai/internal/wires"
)

// Flag is a boolean build-time feature switch of a target.
type Flag struct {
	Name    string
	Descr   string
	Default bool
}

// BuildParams is the parameter dictionary supplied by the build driver.
type BuildParams struct {
	// Name is the base name of the generated module.
	Name string

	// Instantiator is the core name of the module wrapped by the target.
	Instantiator string

	Flags     map[string]bool
	Overrides map[string]string
}

// Clone returns a deep copy of p.
func (p BuildParams) Clone() BuildParams {
	p.Flags = maps.Clone(p.Flags)
	p.Overrides = maps.Clone(p.Overrides)
	return p
}

// Target is a buildable module description. Fragments must be a pure
// function of the build params.
type Target struct {
	Name       string
	Descr      string
	GenerateHW bool
	Flags      []Flag

	// ModuleName derives the module name. Defaults to the target name.
	ModuleName func(BuildParams) string

	Fragments func(BuildParams) []Fragment
}

// Validator checks an assembled IR before it is handed out.
type Validator interface {
	Validate(ir *core.IR) error
}

// Assembler builds targets against a catalog and a child module library.
// It holds no per-build state and may be shared by concurrent builds.
type Assembler struct {
	catalog   *catalog.Catalog
	binder    *binder.Binder
	validator Validator
	log       *log.Logger
}

// Option configures an Assembler.
type Option func(*Assembler)

// WithValidator adds an IR validation step before the Validated stage.
func WithValidator(v Validator) Option {
	return func(a *Assembler) { a.validator = v }
}

// WithLogger replaces the stage logger.
func WithLogger(l *log.Logger) Option {
	return func(a *Assembler) { a.log = l }
}

// New returns an Assembler.
func New(cat *catalog.Catalog, children binder.ChildResolver, opts ...Option) *Assembler {
	a := &Assembler{
		catalog: cat,
		binder:  binder.New(cat, children),
	}
	for _, o := range opts {
		o(a)
	}
	if a.log == nil {
		a.log = output.ModuleLogger("assembler")
	}
	return a
}

// Build is the outcome of one successful assembly.
type Build struct {
	Target string
	IR     *core.IR

	// Stage is the current state; History lists every state reached.
	Stage   core.Stage
	History []core.Stage
}

// MarkEmitted records that the IR was handed to the emitter.
func (b *Build) MarkEmitted() error {
	if b.Stage != core.StageValidated {
		return fmt.Errorf("build %s: cannot emit from stage %s", b.Target, b.Stage)
	}
	b.Stage = core.StageEmitted
	b.History = append(b.History, core.StageEmitted)
	return nil
}

// ResolveFlags applies given on top of the target's flag defaults. Naming
// a flag the target does not declare fails with UnknownParameterReference.
func ResolveFlags(t Target, given map[string]bool) (map[string]bool, error) {
	flags := make(map[string]bool, len(t.Flags))
	for _, f := range t.Flags {
		flags[f.Name] = f.Default
	}
	for _, name := range slices.Sorted(maps.Keys(given)) {
		if _, ok := flags[name]; !ok {
			return nil, &core.UnknownParameterReferenceError{Scope: t.Name, Parameter: "flag", Reference: name}
		}
		flags[name] = given[name]
	}
	return flags, nil
}

// Describe evaluates flags and merges the selected fragments without
// resolving anything.
func Describe(t Target, p BuildParams) (*core.ModuleDescription, map[string]bool, error) {
	flags, err := ResolveFlags(t, p.Flags)
	if err != nil {
		return nil, nil, err
	}
	p = p.Clone()
	p.Flags = flags

	name := t.Name
	if t.ModuleName != nil {
		name = t.ModuleName(p)
	}
	var frags []Fragment
	if t.Fragments != nil {
		frags = t.Fragments(p)
	}
	selected, err := Select(t.Name, frags, flags)
	if err != nil {
		return nil, nil, err
	}
	desc, err := Merge(name, selected)
	if err != nil {
		return nil, nil, err
	}
	desc.Descr = t.Descr
	desc.GenerateHW = t.GenerateHW
	return desc, flags, nil
}

// Assemble runs one build of t. On failure the error is a *core.BuildError
// naming the last stage reached, and no IR is returned.
func (a *Assembler) Assemble(t Target, p BuildParams) (*Build, error) {
	b := &Build{Target: t.Name, Stage: core.StageParamsReceived, History: []core.Stage{core.StageParamsReceived}}
	logger := a.log.With("target", t.Name)

	fail := func(err error) (*Build, error) {
		logger.Debug("build failed", "stage", b.Stage, "err", err)
		return nil, &core.BuildError{Target: t.Name, Stage: b.Stage, Err: err}
	}
	advance := func(s core.Stage, keyvals ...interface{}) {
		b.Stage = s
		b.History = append(b.History, s)
		logger.Debug(s.String(), keyvals...)
	}

	desc, flags, err := Describe(t, p)
	if err != nil {
		return fail(err)
	}

	env, err := params.Resolve(desc.Name, desc.Parameters, p.Overrides)
	if err != nil {
		return fail(err)
	}
	advance(core.StageParametersResolved, "parameters", len(desc.Parameters))

	reg := wires.New(a.catalog, env)
	if err := reg.DeclareAll(core.KindWire, desc.Wires); err != nil {
		return fail(err)
	}
	advance(core.StageWiresDeclared, "wires", len(desc.Wires))

	if err := reg.DeclareAll(core.KindPort, desc.Ports); err != nil {
		return fail(err)
	}
	advance(core.StagePortsDeclared, "ports", len(desc.Ports))

	bindings := make([]core.Binding, 0, len(desc.Subblocks))
	for _, sub := range desc.Subblocks {
		bound, err := a.binder.Bind(sub, env, reg)
		if err != nil {
			return fail(err)
		}
		bindings = append(bindings, *bound)
	}
	advance(core.StageSubblocksBound, "subblocks", len(bindings))

	ir := &core.IR{
		Name:       desc.Name,
		Target:     t.Name,
		Descr:      desc.Descr,
		GenerateHW: desc.GenerateHW,
		Flags:      flags,
		Parameters: env.Resolved(),
		Ports:      irBundles(reg.Ports()),
		Wires:      irBundles(reg.Wires()),
		Subblocks:  bindings,
	}
	for _, s := range desc.Snippets {
		ir.Snippets = append(ir.Snippets, core.IRSnippet{Language: s.Language, Code: s.Code})
	}

	if a.validator != nil {
		if err := a.validator.Validate(ir); err != nil {
			return fail(err)
		}
	}
	advance(core.StageValidated)

	b.IR = ir
	return b, nil
}

func irBundles(entries []wires.Entry) []core.IRBundle {
	out := make([]core.IRBundle, 0, len(entries))
	for _, e := range entries {
		ib := core.IRBundle{Name: e.Bundle.Name, Descr: e.Bundle.Descr, Signals: e.Signals}
		if ref, ok := e.Bundle.Spec.(core.TypeReference); ok {
			ib.Type = ref.Type
		}
		out = append(out, ib)
	}
	return out
}
