package core

import "maps"

// ParamKind is the role of a configuration parameter in generated sources.
type ParamKind string

const (
	// ParamKindP is a module parameter visible to instantiators.
	ParamKindP ParamKind = "P"
	// ParamKindD is a derived (fixed) parameter.
	ParamKindD ParamKind = "D"
	// ParamKindM is a macro.
	ParamKindM ParamKind = "M"
)

// ValueType is the type of a parameter's value.
type ValueType string

const (
	TypeNumeric ValueType = "numeric"
	TypeString  ValueType = "string"
)

// Parameter is a declared configuration parameter.
type Parameter struct {
	Name  string
	Descr string
	Kind  ParamKind
	Type  ValueType

	// Value is an expression over earlier parameters, or literal text for
	// string parameters.
	Value string

	Min *int64
	Max *int64
}

// IsString reports whether p carries a string value.
func (p Parameter) IsString() bool {
	return p.Type == TypeString
}

// Subblock is an instance of a child module inside a parent.
type Subblock struct {
	// Core names the child module description.
	Core     string
	Instance string
	Descr    string

	// Parameters binds child parameters to expressions over the parent's
	// resolved parameters.
	Parameters map[string]string

	// Connect maps child port names to parent port or wire names.
	Connect map[string]string

	// Attributes are passed through to the IR untouched
	// (e.g. dest_dir, num_subordinates).
	Attributes map[string]string
}

// Clone returns a deep copy of s.
func (s Subblock) Clone() Subblock {
	s.Parameters = maps.Clone(s.Parameters)
	s.Connect = maps.Clone(s.Connect)
	s.Attributes = maps.Clone(s.Attributes)
	return s
}

// Snippet is opaque text inserted verbatim at module-body scope.
type Snippet struct {
	Language string
	Code     string
}

// ModuleDescription is the declarative description of one module.
type ModuleDescription struct {
	Name       string
	Descr      string
	GenerateHW bool

	Parameters []Parameter
	Ports      []Bundle
	Wires      []Bundle
	Subblocks  []Subblock
	Snippets   []Snippet
}

// Port returns the port named name.
func (m *ModuleDescription) Port(name string) (Bundle, bool) {
	for _, p := range m.Ports {
		if p.Name == name {
			return p, true
		}
	}
	return Bundle{}, false
}
