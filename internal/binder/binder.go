// Package binder binds subblock instances to the bundles of their parent.
package binder

import (
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/IObundle/versat-ai/internal/catalog"
	"github.com/IObundle/versat-ai/internal/core"
	"github.com/IObundle/versat-ai/internal/params"
	"github.com/IObundle/versat-ai/internal/wires"
)

// ChildResolver looks up child module descriptions by core name.
type ChildResolver interface {
	Module(name string) (*core.ModuleDescription, bool)
}

// Binder validates subblock instances against a parent scope.
type Binder struct {
	catalog  *catalog.Catalog
	children ChildResolver
}

// New returns a Binder expanding child ports with cat and resolving child
// descriptions through children.
func New(cat *catalog.Catalog, children ChildResolver) *Binder {
	return &Binder{catalog: cat, children: children}
}

// Bind resolves the child of sub, evaluates its instance parameters in the
// parent scope and checks every connection against the parent registry.
func (b *Binder) Bind(sub core.Subblock, parentEnv *params.Env, parent *wires.Registry) (*core.Binding, error) {
	var child *core.ModuleDescription
	if b.children != nil {
		child, _ = b.children.Module(sub.Core)
	}
	if child == nil {
		return nil, &core.UnknownChildModuleError{Instance: sub.Instance, Core: sub.Core}
	}

	overrides, err := instanceOverrides(sub, child, parentEnv)
	if err != nil {
		return nil, err
	}
	childEnv, err := params.Resolve(sub.Instance, child.Parameters, overrides)
	if err != nil {
		return nil, err
	}

	ports := wires.New(b.catalog, childEnv)
	if err := ports.DeclareAll(core.KindPort, child.Ports); err != nil {
		return nil, fmt.Errorf("instance %s: ports of %s: %w", sub.Instance, sub.Core, err)
	}

	for _, port := range slices.Sorted(maps.Keys(sub.Connect)) {
		if !ports.Has(port) {
			return nil, &core.UnknownPortError{Instance: sub.Instance, Core: sub.Core, Port: port}
		}
	}

	binding := &core.Binding{
		Core:        sub.Core,
		Instance:    sub.Instance,
		Descr:       sub.Descr,
		Parameters:  childEnv.Resolved(),
		Connections: []core.Connection{},
		Attributes:  maps.Clone(sub.Attributes),
	}

	for _, port := range ports.Bundles() {
		target, connected := sub.Connect[port.Bundle.Name]
		if !connected {
			if port.Bundle.Optional {
				binding.Floating = append(binding.Floating, port.Bundle.Name)
				continue
			}
			return nil, &core.UnboundPortError{Instance: sub.Instance, Core: sub.Core, Port: port.Bundle.Name}
		}

		bundle, ok := parent.Lookup(target)
		if !ok {
			return nil, &core.UnknownConnectionTargetError{Instance: sub.Instance, Port: port.Bundle.Name, Bundle: target}
		}
		if err := CheckShape(sub.Instance, port, bundle); err != nil {
			return nil, err
		}
		binding.Connections = append(binding.Connections, core.Connection{
			Port:   port.Bundle.Name,
			Bundle: target,
			Width:  port.Width(),
		})
	}
	return binding, nil
}

// instanceOverrides evaluates the instance parameters of sub in the parent
// scope. String child parameters are passed through verbatim.
func instanceOverrides(sub core.Subblock, child *core.ModuleDescription, parentEnv *params.Env) (map[string]string, error) {
	decls := make(map[string]core.Parameter, len(child.Parameters))
	for _, p := range child.Parameters {
		decls[p.Name] = p
	}

	overrides := make(map[string]string, len(sub.Parameters))
	for _, name := range slices.Sorted(maps.Keys(sub.Parameters)) {
		decl, ok := decls[name]
		if !ok {
			return nil, &core.UnknownParameterReferenceError{
				Scope:     sub.Instance,
				Parameter: "instance parameter",
				Reference: name,
			}
		}
		src := sub.Parameters[name]
		if decl.IsString() {
			overrides[name] = src
			continue
		}
		v, err := parentEnv.Eval(sub.Instance+"."+name, src)
		if err != nil {
			return nil, err
		}
		overrides[name] = strconv.FormatInt(v, 10)
	}
	return overrides, nil
}

// CheckShape compares the expanded child port with the parent bundle bound
// to it. Widths must match position by position. When the parent bundle is
// itself a port, the signal passes straight through and directions must
// match as well.
func CheckShape(instance string, port, bundle wires.Entry) error {
	want := core.ShapeOf(port.Signals)
	got := core.ShapeOf(bundle.Signals)

	mismatch := func(pos int, reason string) error {
		return &core.ConnectionShapeMismatchError{
			Instance: instance,
			Port:     port.Bundle.Name,
			Bundle:   bundle.Bundle.Name,
			Position: pos,
			Expected: want.Widths(),
			Actual:   got.Widths(),
			Reason:   reason,
		}
	}

	n := min(len(want), len(got))
	for i := 0; i < n; i++ {
		if want[i].Width != got[i].Width {
			return mismatch(i, "")
		}
		if bundle.Kind == core.KindPort && want[i].Direction != core.DirNone && got[i].Direction != core.DirNone &&
			want[i].Direction != got[i].Direction {
			return mismatch(i, fmt.Sprintf("direction %s, parent port has %s", want[i].Direction, got[i].Direction))
		}
	}
	if len(want) != len(got) {
		return mismatch(n, fmt.Sprintf("%d signals, parent bundle has %d", len(want), len(got)))
	}
	return nil
}

// Modules is a ChildResolver backed by a map.
type Modules map[string]*core.ModuleDescription

// Module implements ChildResolver.
func (m Modules) Module(name string) (*core.ModuleDescription, bool) {
	d, ok := m[name]
	return d, ok
}
