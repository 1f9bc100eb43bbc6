package core

// IR is the fully expanded, validated module description handed to the
// external code generator. It contains no symbolic expressions.
type IR struct {
	Name       string          `json:"name" yaml:"name"`
	Target     string          `json:"target" yaml:"target"`
	Descr      string          `json:"descr,omitempty" yaml:"descr,omitempty"`
	GenerateHW bool            `json:"generateHW" yaml:"generateHW"`
	Flags      map[string]bool `json:"flags,omitempty" yaml:"flags,omitempty"`

	Parameters []ResolvedParameter `json:"parameters" yaml:"parameters"`
	Ports      []IRBundle          `json:"ports" yaml:"ports"`
	Wires      []IRBundle          `json:"wires" yaml:"wires"`
	Subblocks  []Binding           `json:"subblocks" yaml:"subblocks"`
	Snippets   []IRSnippet         `json:"snippets,omitempty" yaml:"snippets,omitempty"`
}

// ResolvedParameter is a parameter with its concrete value.
type ResolvedParameter struct {
	Name  string    `json:"name" yaml:"name"`
	Descr string    `json:"descr,omitempty" yaml:"descr,omitempty"`
	Kind  ParamKind `json:"kind,omitempty" yaml:"kind,omitempty"`
	Type  ValueType `json:"type" yaml:"type"`
	Int   int64     `json:"int" yaml:"int"`
	Str   string    `json:"str,omitempty" yaml:"str,omitempty"`
	Min   *int64    `json:"min,omitempty" yaml:"min,omitempty"`
	Max   *int64    `json:"max,omitempty" yaml:"max,omitempty"`
}

// IRBundle is an expanded port or wire.
type IRBundle struct {
	Name    string   `json:"name" yaml:"name"`
	Descr   string   `json:"descr,omitempty" yaml:"descr,omitempty"`
	Type    string   `json:"type,omitempty" yaml:"type,omitempty"`
	Signals []Signal `json:"signals" yaml:"signals"`
}

// Binding is a validated subblock instance.
type Binding struct {
	Core       string              `json:"core" yaml:"core"`
	Instance   string              `json:"instance" yaml:"instance"`
	Descr      string              `json:"descr,omitempty" yaml:"descr,omitempty"`
	Parameters []ResolvedParameter `json:"parameters" yaml:"parameters"`

	// Connections are ordered by the child's port declaration order.
	Connections []Connection `json:"connections" yaml:"connections"`

	// Floating lists optional child ports left unconnected.
	Floating []string `json:"floating,omitempty" yaml:"floating,omitempty"`

	Attributes map[string]string `json:"attributes,omitempty" yaml:"attributes,omitempty"`
}

// Connection binds one child port bundle to one parent bundle.
type Connection struct {
	Port   string `json:"port" yaml:"port"`
	Bundle string `json:"bundle" yaml:"bundle"`

	// Width is the total number of bits in the connection.
	Width int `json:"width" yaml:"width"`
}

// IRSnippet is a verbatim text block.
type IRSnippet struct {
	Language string `json:"language,omitempty" yaml:"language,omitempty"`
	Code     string `json:"code" yaml:"code"`
}

// Parameter returns the resolved parameter named name.
func (b *Binding) Parameter(name string) (ResolvedParameter, bool) {
	for _, p := range b.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ResolvedParameter{}, false
}

// Subblock returns the binding for instance.
func (ir *IR) Subblock(instance string) (*Binding, bool) {
	for i := range ir.Subblocks {
		if ir.Subblocks[i].Instance == instance {
			return &ir.Subblocks[i], true
		}
	}
	return nil, false
}

// Wire returns the wire named name.
func (ir *IR) Wire(name string) (*IRBundle, bool) {
	for i := range ir.Wires {
		if ir.Wires[i].Name == name {
			return &ir.Wires[i], true
		}
	}
	return nil, false
}

// Port returns the port named name.
func (ir *IR) Port(name string) (*IRBundle, bool) {
	for i := range ir.Ports {
		if ir.Ports[i].Name == name {
			return &ir.Ports[i], true
		}
	}
	return nil, false
}

// Parameter returns the resolved parameter named name.
func (ir *IR) Parameter(name string) (ResolvedParameter, bool) {
	for _, p := range ir.Parameters {
		if p.Name == name {
			return p, true
		}
	}
	return ResolvedParameter{}, false
}
