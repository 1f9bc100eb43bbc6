package assembler

import (
	"maps"
	"slices"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/IObundle/versat-ai/internal/core"
)

// Fragment is one unit of a target's description. Fragments whose When
// condition holds are merged into the module description.
type Fragment struct {
	// When is "" (always), "flag" (flag true) or "!flag" (flag false).
	When string

	Parameters []core.Parameter
	Ports      []core.Bundle
	Wires      []core.Bundle
	Subblocks  []core.Subblock
	Snippets   []core.Snippet

	// Defaults replaces the value expression of parameters declared by any
	// selected fragment.
	Defaults map[string]string

	// Connect adds connections to subblocks declared by any selected
	// fragment, keyed by instance name then child port.
	Connect map[string]map[string]string
}

// condition parses When into a flag name and the value it must have.
func (f Fragment) condition() (flag string, want bool, always bool) {
	w := strings.TrimSpace(f.When)
	switch {
	case w == "":
		return "", false, true
	case strings.HasPrefix(w, "!"):
		return strings.TrimSpace(w[1:]), false, false
	default:
		return w, true, false
	}
}

// Select returns the fragments enabled by flags, in order. A condition
// naming an undeclared flag fails with UnknownParameterReference.
func Select(scope string, frags []Fragment, flags map[string]bool) ([]Fragment, error) {
	var out []Fragment
	for _, f := range frags {
		name, want, always := f.condition()
		if always {
			out = append(out, f)
			continue
		}
		v, ok := flags[name]
		if !ok {
			return nil, &core.UnknownParameterReferenceError{Scope: scope, Parameter: "fragment condition", Reference: name}
		}
		if v == want {
			out = append(out, f)
		}
	}
	return out, nil
}

// Merge combines fragments into a module description named name. It is a
// pure function of its inputs: declarations keep fragment order, default
// overrides and connection patches are applied after every declaration is
// known. Two fragments may override the same default or connect the same
// port only with identical values. Bundle name conflicts are left to the
// wire registry.
func Merge(name string, frags []Fragment) (*core.ModuleDescription, error) {
	desc := &core.ModuleDescription{Name: name}

	params := sets.New[string]()
	instances := map[string]int{}
	defaults := map[string]string{}
	for _, f := range frags {
		for _, p := range f.Parameters {
			if params.Has(p.Name) {
				return nil, &core.DuplicateParameterError{Scope: name, Parameter: p.Name}
			}
			params.Insert(p.Name)
			desc.Parameters = append(desc.Parameters, p)
		}
		for _, b := range f.Ports {
			desc.Ports = append(desc.Ports, b.Clone())
		}
		for _, b := range f.Wires {
			desc.Wires = append(desc.Wires, b.Clone())
		}
		for _, s := range f.Subblocks {
			if _, dup := instances[s.Instance]; dup {
				return nil, &core.DuplicateInstanceError{Instance: s.Instance}
			}
			instances[s.Instance] = len(desc.Subblocks)
			desc.Subblocks = append(desc.Subblocks, s.Clone())
		}
		desc.Snippets = append(desc.Snippets, f.Snippets...)
	}

	for _, f := range frags {
		for _, pname := range slices.Sorted(maps.Keys(f.Defaults)) {
			i := slices.IndexFunc(desc.Parameters, func(p core.Parameter) bool { return p.Name == pname })
			if i < 0 {
				return nil, &core.UnknownParameterReferenceError{Scope: name, Parameter: "default override", Reference: pname}
			}
			value := f.Defaults[pname]
			if prev, exists := defaults[pname]; exists && prev != value {
				return nil, &core.ConflictingDefaultError{Scope: name, Parameter: pname, First: prev, Second: value}
			}
			defaults[pname] = value
			desc.Parameters[i].Value = value
		}
		for _, inst := range slices.Sorted(maps.Keys(f.Connect)) {
			i, ok := instances[inst]
			if !ok {
				return nil, &core.UnknownInstanceError{Instance: inst}
			}
			sub := &desc.Subblocks[i]
			if sub.Connect == nil {
				sub.Connect = map[string]string{}
			}
			patch := f.Connect[inst]
			for _, port := range slices.Sorted(maps.Keys(patch)) {
				bundle := patch[port]
				if prev, exists := sub.Connect[port]; exists && prev != bundle {
					return nil, &core.ConflictingConnectionError{Instance: inst, Port: port, First: prev, Second: bundle}
				}
				sub.Connect[port] = bundle
			}
		}
	}
	return desc, nil
}
