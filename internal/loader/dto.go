package loader

import (
	"fmt"
	"slices"

	"github.com/IObundle/versat-ai/internal/assembler"
	"github.com/IObundle/versat-ai/internal/catalog"
	"github.com/IObundle/versat-ai/internal/core"
)

type fileDTO struct {
	Interfaces map[string]catalog.Template `json:"interfaces"`
	Modules    map[string]moduleDTO        `json:"modules"`
	Targets    map[string]targetDTO        `json:"targets"`
}

type paramsDTO struct {
	Name         string                 `json:"name"`
	Instantiator string                 `json:"instantiator"`
	Flags        map[string]bool        `json:"flags"`
	Set          map[string]interface{} `json:"set"`
}

type parameterDTO struct {
	Name  string      `json:"name"`
	Descr string      `json:"descr"`
	Kind  string      `json:"kind"`
	Type  string      `json:"type"`
	Value interface{} `json:"value"`
	Min   *int64      `json:"min"`
	Max   *int64      `json:"max"`
}

type signalDTO struct {
	Name      string `json:"name"`
	Width     string `json:"width"`
	Direction string `json:"direction"`
	Descr     string `json:"descr"`
}

type bundleDTO struct {
	Name     string                 `json:"name"`
	Descr    string                 `json:"descr"`
	Role     string                 `json:"role"`
	Optional bool                   `json:"optional"`
	Signals  []signalDTO            `json:"signals"`
	Type     string                 `json:"type"`
	Prefix   string                 `json:"prefix"`
	Params   map[string]interface{} `json:"params"`
	Options  string                 `json:"options"`
}

type subblockDTO struct {
	Core       string                 `json:"core"`
	Instance   string                 `json:"instance"`
	Descr      string                 `json:"descr"`
	Parameters map[string]interface{} `json:"parameters"`
	Connect    map[string]string      `json:"connect"`
	Attributes map[string]string      `json:"attributes"`
}

type snippetDTO struct {
	Language string `json:"language"`
	Code     string `json:"code"`
}

type moduleDTO struct {
	Name       string         `json:"name"`
	Descr      string         `json:"descr"`
	GenerateHW bool           `json:"generateHW"`
	Parameters []parameterDTO `json:"parameters"`
	Ports      []bundleDTO    `json:"ports"`
	Wires      []bundleDTO    `json:"wires"`
	Subblocks  []subblockDTO  `json:"subblocks"`
	Snippets   []snippetDTO   `json:"snippets"`
}

type flagDTO struct {
	Name    string `json:"name"`
	Default bool   `json:"default"`
	Descr   string `json:"descr"`
}

type fragmentDTO struct {
	When       string                       `json:"when"`
	Parameters []parameterDTO               `json:"parameters"`
	Ports      []bundleDTO                  `json:"ports"`
	Wires      []bundleDTO                  `json:"wires"`
	Subblocks  []subblockDTO                `json:"subblocks"`
	Snippets   []snippetDTO                 `json:"snippets"`
	Defaults   map[string]interface{}       `json:"defaults"`
	Connect    map[string]map[string]string `json:"connect"`
}

type targetDTO struct {
	Name         string        `json:"name"`
	Descr        string        `json:"descr"`
	GenerateHW   bool          `json:"generateHW"`
	ModuleSuffix string        `json:"moduleSuffix"`
	Flags        []flagDTO     `json:"flags"`
	Fragments    []fragmentDTO `json:"fragments"`
}

// valueString renders a decoded string-or-int value as an expression.
func valueString(v interface{}) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	default:
		return fmt.Sprint(x)
	}
}

func valueMap(m map[string]interface{}) map[string]string {
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, v := range m {
		out[k] = valueString(v)
	}
	return out
}

func (p parameterDTO) toParameter() core.Parameter {
	return core.Parameter{
		Name:  p.Name,
		Descr: p.Descr,
		Kind:  core.ParamKind(p.Kind),
		Type:  core.ValueType(p.Type),
		Value: valueString(p.Value),
		Min:   p.Min,
		Max:   p.Max,
	}
}

func (b bundleDTO) toBundle() (core.Bundle, error) {
	out := core.Bundle{Name: b.Name, Descr: b.Descr, Role: core.Role(b.Role), Optional: b.Optional}

	switch {
	case len(b.Signals) > 0 && b.Type != "":
		return core.Bundle{}, fmt.Errorf("bundle %s: signals and type are mutually exclusive", b.Name)
	case b.Type != "":
		out.Spec = core.TypeReference{Type: b.Type, Prefix: b.Prefix, Params: valueMap(b.Params), Options: b.Options}
	case len(b.Signals) > 0:
		if b.Prefix != "" || len(b.Params) > 0 || b.Options != "" {
			return core.Bundle{}, fmt.Errorf("bundle %s: prefix, params and options need a type", b.Name)
		}
		decls := make([]core.SignalDecl, 0, len(b.Signals))
		for _, s := range b.Signals {
			dir, err := core.ParseDirection(s.Direction)
			if err != nil {
				return core.Bundle{}, fmt.Errorf("bundle %s: signal %s: %w", b.Name, s.Name, err)
			}
			decls = append(decls, core.SignalDecl{Name: s.Name, Width: s.Width, Direction: dir, Descr: s.Descr})
		}
		out.Spec = core.ExplicitSignals{Signals: decls}
	default:
		return core.Bundle{}, fmt.Errorf("bundle %s: needs signals or a type", b.Name)
	}
	return out, nil
}

func (s subblockDTO) toSubblock() core.Subblock {
	return core.Subblock{
		Core:       s.Core,
		Instance:   s.Instance,
		Descr:      s.Descr,
		Parameters: valueMap(s.Parameters),
		Connect:    s.Connect,
		Attributes: s.Attributes,
	}
}

// body is the declaration content shared by modules and fragments.
type body struct {
	parameters []parameterDTO
	ports      []bundleDTO
	wires      []bundleDTO
	subblocks  []subblockDTO
	snippets   []snippetDTO
}

func (b body) convert() (params []core.Parameter, ports, wires []core.Bundle, subs []core.Subblock, snippets []core.Snippet, err error) {
	for _, p := range b.parameters {
		params = append(params, p.toParameter())
	}
	for _, d := range b.ports {
		bundle, err := d.toBundle()
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		ports = append(ports, bundle)
	}
	for _, d := range b.wires {
		bundle, err := d.toBundle()
		if err != nil {
			return nil, nil, nil, nil, nil, err
		}
		wires = append(wires, bundle)
	}
	for _, s := range b.subblocks {
		subs = append(subs, s.toSubblock())
	}
	for _, s := range b.snippets {
		snippets = append(snippets, core.Snippet{Language: s.Language, Code: s.Code})
	}
	return params, ports, wires, subs, snippets, nil
}

func (m moduleDTO) toModule() (*core.ModuleDescription, error) {
	params, ports, wires, subs, snippets, err := body{m.Parameters, m.Ports, m.Wires, m.Subblocks, m.Snippets}.convert()
	if err != nil {
		return nil, err
	}
	return &core.ModuleDescription{
		Name:       m.Name,
		Descr:      m.Descr,
		GenerateHW: m.GenerateHW,
		Parameters: params,
		Ports:      ports,
		Wires:      wires,
		Subblocks:  subs,
		Snippets:   snippets,
	}, nil
}

func (f fragmentDTO) toFragment() (assembler.Fragment, error) {
	params, ports, wires, subs, snippets, err := body{f.Parameters, f.Ports, f.Wires, f.Subblocks, f.Snippets}.convert()
	if err != nil {
		return assembler.Fragment{}, err
	}
	return assembler.Fragment{
		When:       f.When,
		Parameters: params,
		Ports:      ports,
		Wires:      wires,
		Subblocks:  subs,
		Snippets:   snippets,
		Defaults:   valueMap(f.Defaults),
		Connect:    f.Connect,
	}, nil
}

// toTarget converts a decoded target. Fragments are converted once and
// the target hands out a fresh slice per build.
func (t targetDTO) toTarget() (assembler.Target, error) {
	frags := make([]assembler.Fragment, 0, len(t.Fragments))
	for i, fd := range t.Fragments {
		f, err := fd.toFragment()
		if err != nil {
			return assembler.Target{}, fmt.Errorf("fragment %d: %w", i, err)
		}
		frags = append(frags, f)
	}

	flags := make([]assembler.Flag, 0, len(t.Flags))
	for _, f := range t.Flags {
		flags = append(flags, assembler.Flag{Name: f.Name, Descr: f.Descr, Default: f.Default})
	}

	name, suffix := t.Name, t.ModuleSuffix
	return assembler.Target{
		Name:       name,
		Descr:      t.Descr,
		GenerateHW: t.GenerateHW,
		Flags:      flags,
		ModuleName: func(p assembler.BuildParams) string {
			if p.Name == "" {
				return name
			}
			return p.Name + suffix
		},
		Fragments: func(assembler.BuildParams) []assembler.Fragment {
			return slices.Clone(frags)
		},
	}, nil
}
