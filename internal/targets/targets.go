package targets

import (
	"fmt"
	"maps"
	"slices"

	"github.com/IObundle/versat-ai/internal/assembler"
)

// Set is a collection of build targets keyed by name.
type Set struct {
	targets map[string]assembler.Target
}

// NewSet returns a set holding ts. Names must be unique.
func NewSet(ts ...assembler.Target) (*Set, error) {
	s := &Set{targets: make(map[string]assembler.Target, len(ts))}
	for _, t := range ts {
		if err := s.add(t); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// With returns a new set holding the targets of s plus ts.
func (s *Set) With(ts ...assembler.Target) (*Set, error) {
	out := &Set{targets: maps.Clone(s.targets)}
	if out.targets == nil {
		out.targets = map[string]assembler.Target{}
	}
	for _, t := range ts {
		if err := out.add(t); err != nil {
			return nil, err
		}
	}
	return out, nil
}

func (s *Set) add(t assembler.Target) error {
	if t.Name == "" {
		return fmt.Errorf("target without a name")
	}
	if _, dup := s.targets[t.Name]; dup {
		return fmt.Errorf("target %q defined twice", t.Name)
	}
	s.targets[t.Name] = t
	return nil
}

// Lookup returns the target named name.
func (s *Set) Lookup(name string) (assembler.Target, bool) {
	t, ok := s.targets[name]
	return t, ok
}

// Names returns the target names in sorted order.
func (s *Set) Names() []string {
	return slices.Sorted(maps.Keys(s.targets))
}

// Builtin returns the built-in targets.
func Builtin() *Set {
	s, err := NewSet(ZyboZ7Target())
	if err != nil {
		panic(err)
	}
	return s
}
