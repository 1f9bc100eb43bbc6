// Package targets holds the built-in build targets and the library of child
// module descriptions they instantiate.
package targets

import (
	"fmt"
	"maps"
	"slices"

	"github.com/IObundle/versat-ai/internal/core"
	"github.com/IObundle/versat-ai/internal/params"
)

// Library is a set of module descriptions, looked up by core name. It
// implements binder.ChildResolver.
type Library struct {
	modules map[string]*core.ModuleDescription
}

// NewLibrary returns a library holding descs. Names must be unique.
func NewLibrary(descs ...*core.ModuleDescription) (*Library, error) {
	l := &Library{modules: make(map[string]*core.ModuleDescription, len(descs))}
	return l.add(descs)
}

// With returns a new library holding the modules of l plus descs.
func (l *Library) With(descs ...*core.ModuleDescription) (*Library, error) {
	out := &Library{modules: maps.Clone(l.modules)}
	if out.modules == nil {
		out.modules = map[string]*core.ModuleDescription{}
	}
	return out.add(descs)
}

func (l *Library) add(descs []*core.ModuleDescription) (*Library, error) {
	for _, d := range descs {
		if d == nil || d.Name == "" {
			return nil, fmt.Errorf("module description without a name")
		}
		if _, dup := l.modules[d.Name]; dup {
			return nil, fmt.Errorf("module %q defined twice", d.Name)
		}
		l.modules[d.Name] = d
	}
	return l, nil
}

// Module implements binder.ChildResolver.
func (l *Library) Module(name string) (*core.ModuleDescription, bool) {
	d, ok := l.modules[name]
	return d, ok
}

// Names returns the module names in sorted order.
func (l *Library) Names() []string {
	return slices.Sorted(maps.Keys(l.modules))
}

// BuiltinLibrary returns the child modules used by the built-in targets.
func BuiltinLibrary() *Library {
	l, err := NewLibrary(IobSystem(), XilinxAXIInterconnect())
	if err != nil {
		panic(err)
	}
	return l
}

func axiWidthParams() []core.Parameter {
	return []core.Parameter{
		{Name: "AXI_ID_W", Descr: "AXI ID bus width", Kind: core.ParamKindP, Value: "1", Min: params.Bound(1), Max: params.Bound(32)},
		{Name: "AXI_LEN_W", Descr: "AXI burst length width", Kind: core.ParamKindP, Value: "8", Min: params.Bound(1), Max: params.Bound(8)},
		{Name: "AXI_ADDR_W", Descr: "AXI address bus width", Kind: core.ParamKindP, Value: "24", Min: params.Bound(1), Max: params.Bound(32)},
		{Name: "AXI_DATA_W", Descr: "AXI data bus width", Kind: core.ParamKindP, Value: "32", Min: params.Bound(1), Max: params.Bound(32)},
	}
}

func axiRef(prefix, addr string, extra map[string]string) core.TypeReference {
	p := map[string]string{
		"ID_W":   "AXI_ID_W",
		"LEN_W":  "AXI_LEN_W",
		"ADDR_W": addr,
		"DATA_W": "AXI_DATA_W",
	}
	maps.Copy(p, extra)
	return core.TypeReference{Type: "axi", Prefix: prefix, Params: p}
}

// IobSystem describes the port interface of the IOb-SoC system core.
func IobSystem() *core.ModuleDescription {
	return &core.ModuleDescription{
		Name:       "iob_system",
		Descr:      "IOb-SoC system",
		GenerateHW: true,
		Parameters: axiWidthParams(),
		Ports: []core.Bundle{
			{
				Name:  "clk_en_rst_s",
				Descr: "Clock, clock enable and reset",
				Spec:  core.TypeReference{Type: "iob_clk"},
				Role:  core.RoleSubordinate,
			},
			{
				Name:  "rs232_m",
				Descr: "UART interface",
				Spec:  core.TypeReference{Type: "rs232"},
				Role:  core.RoleManager,
			},
			{
				Name:     "axi_m",
				Descr:    "AXI manager interface for external memory",
				Spec:     axiRef("", "AXI_ADDR_W - 2", nil),
				Role:     core.RoleManager,
				Optional: true,
			},
		},
	}
}

// XilinxAXIInterconnect describes the port interface of the Xilinx AXI
// interconnect wrapper with one manager and one subordinate.
func XilinxAXIInterconnect() *core.ModuleDescription {
	clk := func(prefix string) core.TypeReference {
		return core.TypeReference{Type: "iob_clk", Prefix: prefix, Options: "a"}
	}
	return &core.ModuleDescription{
		Name:       "iob_xilinx_axi_interconnect",
		Descr:      "Xilinx AXI interconnect",
		GenerateHW: false,
		Parameters: axiWidthParams(),
		Ports: []core.Bundle{
			{Name: "clk_rst_s", Descr: "Interconnect clock and reset", Spec: clk(""), Role: core.RoleSubordinate},
			{Name: "m0_clk_rst_io", Descr: "Manager 0 clock and reset", Spec: clk("m0_"), Role: core.RoleSubordinate},
			{
				Name:  "m0_axi_m",
				Descr: "Manager 0 AXI interface",
				Spec:  axiRef("m0_", "AXI_ADDR_W", map[string]string{"LOCK_W": "1"}),
				Role:  core.RoleManager,
			},
			{Name: "s0_clk_rst_io", Descr: "Subordinate 0 clock and reset", Spec: clk("s0_"), Role: core.RoleSubordinate},
			{
				Name:  "s0_axi_s",
				Descr: "Subordinate 0 AXI interface",
				Spec:  axiRef("s0_", "AXI_ADDR_W", nil),
				Role:  core.RoleSubordinate,
			},
		},
	}
}
