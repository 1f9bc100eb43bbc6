package core

import "maps"

// BundleSpec describes where a bundle's signals come from.
// It is a closed set: ExplicitSignals or TypeReference.
type BundleSpec interface {
	isBundleSpec()
}

// ExplicitSignals lists a bundle's signals directly.
type ExplicitSignals struct {
	Signals []SignalDecl
}

// TypeReference instantiates an interface type from the catalog.
type TypeReference struct {
	// Type is the interface type name, e.g. "axi" or "iob_clk".
	Type string

	// Prefix is prepended to every expanded member name.
	Prefix string

	// Params binds template parameters to expressions over the
	// enclosing module's resolved parameters.
	Params map[string]string

	// Options selects optional members by letter (e.g. "a" or "c_a" for
	// iob_clk). Empty selects the template defaults.
	Options string
}

func (ExplicitSignals) isBundleSpec() {}
func (TypeReference) isBundleSpec()   {}

// Role selects the orientation of an interface type used as a port.
type Role string

const (
	// RoleManager keeps the template's member directions.
	RoleManager Role = "manager"
	// RoleSubordinate flips input and output.
	RoleSubordinate Role = "subordinate"
)

// Bundle is a named group of signals: a port of a module or an internal wire.
type Bundle struct {
	Name  string
	Descr string
	Spec  BundleSpec

	// Role applies to ports built from a TypeReference.
	Role Role

	// Optional ports may be left unconnected by an instantiating parent.
	Optional bool
}

// Clone returns a deep copy of b.
func (b Bundle) Clone() Bundle {
	switch s := b.Spec.(type) {
	case ExplicitSignals:
		sigs := make([]SignalDecl, len(s.Signals))
		copy(sigs, s.Signals)
		b.Spec = ExplicitSignals{Signals: sigs}
	case TypeReference:
		s.Params = maps.Clone(s.Params)
		b.Spec = s
	}
	return b
}

// BundleKind distinguishes ports from wires in a module scope.
type BundleKind string

const (
	KindPort BundleKind = "port"
	KindWire BundleKind = "wire"
)
