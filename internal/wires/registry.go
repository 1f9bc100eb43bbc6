// Package wires implements the bundle registry of one module scope.
//
// Ports and wires share a single namespace. Bundles are expanded when they
// are declared, so a declaration that fails leaves the registry exactly as
// it was.
package wires

import (
	"fmt"
	"maps"
	"slices"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/IObundle/versat-ai/internal/catalog"
	"github.com/IObundle/versat-ai/internal/core"
	"github.com/IObundle/versat-ai/internal/params"
)

// Entry is a declared bundle with its expanded signals.
type Entry struct {
	Kind    core.BundleKind
	Bundle  core.Bundle
	Signals []core.Signal
}

// Width returns the total number of bits of the entry.
func (e Entry) Width() int {
	n := 0
	for _, s := range e.Signals {
		n += s.Width
	}
	return n
}

// Registry holds the ports and wires of one module scope in declaration
// order.
type Registry struct {
	catalog *catalog.Catalog
	env     *params.Env

	order   []string
	entries map[string]Entry
}

// New returns an empty registry. Type references are expanded with cat and
// their arguments evaluated in env.
func New(cat *catalog.Catalog, env *params.Env) *Registry {
	return &Registry{catalog: cat, env: env, entries: map[string]Entry{}}
}

// Declare expands b and adds it under kind. It fails with DuplicateWireName
// when the name is already taken by a port or a wire.
func (r *Registry) Declare(kind core.BundleKind, b core.Bundle) error {
	return r.DeclareAll(kind, []core.Bundle{b})
}

// DeclareAll declares bundles in order. Either every bundle is committed or
// none is.
func (r *Registry) DeclareAll(kind core.BundleKind, bundles []core.Bundle) error {
	staged := make([]Entry, 0, len(bundles))
	seen := sets.New[string]()
	for _, b := range bundles {
		if prev, ok := r.entries[b.Name]; ok {
			return &core.DuplicateWireNameError{Name: b.Name, BundleKind: kind, Previous: prev.Kind}
		}
		if seen.Has(b.Name) {
			return &core.DuplicateWireNameError{Name: b.Name, BundleKind: kind, Previous: kind}
		}
		seen.Insert(b.Name)

		sigs, err := r.expand(kind, b)
		if err != nil {
			return err
		}
		staged = append(staged, Entry{Kind: kind, Bundle: b.Clone(), Signals: sigs})
	}

	for _, e := range staged {
		r.order = append(r.order, e.Bundle.Name)
		r.entries[e.Bundle.Name] = e
	}
	return nil
}

// Resolve returns a copy of the expanded signals of the bundle named name.
func (r *Registry) Resolve(name string) ([]core.Signal, bool) {
	e, ok := r.entries[name]
	if !ok {
		return nil, false
	}
	return core.CloneSignals(e.Signals), true
}

// Lookup returns the entry named name.
func (r *Registry) Lookup(name string) (Entry, bool) {
	e, ok := r.entries[name]
	if !ok {
		return Entry{}, false
	}
	e.Signals = core.CloneSignals(e.Signals)
	return e, true
}

// Has reports whether name is declared.
func (r *Registry) Has(name string) bool {
	_, ok := r.entries[name]
	return ok
}

// Len returns the number of declared bundles.
func (r *Registry) Len() int {
	return len(r.order)
}

// Bundles returns every entry in declaration order.
func (r *Registry) Bundles() []Entry {
	return r.filter(func(Entry) bool { return true })
}

// Ports returns the port entries in declaration order.
func (r *Registry) Ports() []Entry {
	return r.filter(func(e Entry) bool { return e.Kind == core.KindPort })
}

// Wires returns the wire entries in declaration order.
func (r *Registry) Wires() []Entry {
	return r.filter(func(e Entry) bool { return e.Kind == core.KindWire })
}

func (r *Registry) filter(keep func(Entry) bool) []Entry {
	var out []Entry
	for _, n := range r.order {
		e := r.entries[n]
		if keep(e) {
			e.Signals = core.CloneSignals(e.Signals)
			out = append(out, e)
		}
	}
	return out
}

func (r *Registry) expand(kind core.BundleKind, b core.Bundle) ([]core.Signal, error) {
	var (
		sigs []core.Signal
		err  error
	)
	switch spec := b.Spec.(type) {
	case core.ExplicitSignals:
		sigs, err = r.expandExplicit(kind, b.Name, spec)
	case core.TypeReference:
		sigs, err = r.expandType(kind, b, spec)
	case nil:
		return nil, &core.WidthEvaluationError{Bundle: b.Name, Reason: "bundle declares no signals"}
	default:
		panic(fmt.Sprintf("wires: unhandled bundle spec %T", spec))
	}
	if err != nil {
		return nil, err
	}
	if kind == core.KindWire {
		for i := range sigs {
			sigs[i].Direction = core.DirNone
		}
	}
	return sigs, nil
}

func (r *Registry) expandExplicit(kind core.BundleKind, bundle string, spec core.ExplicitSignals) ([]core.Signal, error) {
	if len(spec.Signals) == 0 {
		return nil, &core.WidthEvaluationError{Bundle: bundle, Reason: "bundle declares no signals"}
	}
	out := make([]core.Signal, len(spec.Signals))
	for i, d := range spec.Signals {
		w, err := r.env.Eval(bundle+"."+d.Name, d.Width)
		if err != nil {
			return nil, &core.WidthEvaluationError{Bundle: bundle, Signal: d.Name, Expr: d.Width, Reason: err.Error(), Cause: err}
		}
		if w <= 0 {
			return nil, &core.WidthEvaluationError{
				Bundle: bundle, Signal: d.Name, Expr: d.Width,
				Reason: fmt.Sprintf("evaluates to %d, want a positive width", w),
			}
		}
		dir := d.Direction
		if kind == core.KindPort && dir == core.DirNone {
			dir = core.InferDirection(d.Name)
		}
		out[i] = core.Signal{Name: d.Name, Width: int(w), Direction: dir}
	}
	return out, nil
}

func (r *Registry) expandType(kind core.BundleKind, b core.Bundle, ref core.TypeReference) ([]core.Signal, error) {
	if r.catalog == nil || !r.catalog.Has(ref.Type) {
		return nil, &core.UnknownInterfaceTypeError{Bundle: b.Name, Type: ref.Type}
	}

	args := make(map[string]int64, len(ref.Params))
	for _, name := range slices.Sorted(maps.Keys(ref.Params)) {
		v, err := r.env.Eval(b.Name+"."+name, ref.Params[name])
		if err != nil {
			return nil, &core.WidthEvaluationError{
				Bundle: b.Name, Type: ref.Type, Signal: name, Expr: ref.Params[name],
				Reason: err.Error(), Cause: err,
			}
		}
		args[name] = v
	}

	sigs, err := r.catalog.Expand(ref.Type, ref.Prefix, args, ref.Options)
	if err != nil {
		return nil, withBundle(err, b.Name)
	}
	if kind == core.KindPort && b.Role == core.RoleSubordinate {
		for i := range sigs {
			sigs[i].Direction = sigs[i].Direction.Flip()
		}
	}
	return sigs, nil
}

// withBundle records the bundle name on expansion errors raised by the
// catalog, which has no notion of bundles.
func withBundle(err error, bundle string) error {
	switch e := err.(type) {
	case *core.WidthEvaluationError:
		e.Bundle = bundle
	case *core.UnknownInterfaceTypeError:
		e.Bundle = bundle
	case *core.InvalidTypeOptionError:
		e.Bundle = bundle
	}
	return err
}
