package wires

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IObundle/versat-ai/internal/catalog"
	"github.com/IObundle/versat-ai/internal/core"
	"github.com/IObundle/versat-ai/internal/params"
)

func newRegistry(t *testing.T) *Registry {
	t.Helper()
	env, err := params.Resolve("top", []core.Parameter{
		{Name: "AXI_ID_W", Value: "4"},
		{Name: "AXI_ADDR_W", Value: "30"},
		{Name: "AXI_DATA_W", Value: "32"},
	}, nil)
	require.NoError(t, err)
	return New(catalog.Builtin(), env)
}

func explicit(name string, sigs ...core.SignalDecl) core.Bundle {
	return core.Bundle{Name: name, Spec: core.ExplicitSignals{Signals: sigs}}
}

func typed(name, typ string) core.Bundle {
	return core.Bundle{Name: name, Spec: core.TypeReference{Type: typ}}
}

func TestDeclare_Explicit(t *testing.T) {
	r := newRegistry(t)

	require.NoError(t, r.Declare(core.KindPort, explicit("rs232_io",
		core.SignalDecl{Name: "txd_o", Width: "1"},
		core.SignalDecl{Name: "rxd_i", Width: "1"},
	)))
	require.NoError(t, r.Declare(core.KindWire, explicit("bus",
		core.SignalDecl{Name: "addr", Width: "AXI_ADDR_W - 2", Direction: core.DirOutput},
	)))

	port, ok := r.Resolve("rs232_io")
	require.True(t, ok)
	assert.Equal(t, []core.Signal{
		{Name: "txd_o", Width: 1, Direction: core.DirOutput},
		{Name: "rxd_i", Width: 1, Direction: core.DirInput},
	}, port)

	wire, ok := r.Resolve("bus")
	require.True(t, ok)
	assert.Equal(t, []core.Signal{{Name: "addr", Width: 28}}, wire, "wire members carry no direction")
}

func TestDeclare_TypeReference(t *testing.T) {
	r := newRegistry(t)

	require.NoError(t, r.Declare(core.KindWire, core.Bundle{
		Name: "ps_axi",
		Spec: core.TypeReference{
			Type:   "axi",
			Prefix: "mem_",
			Params: map[string]string{"ID_W": "AXI_ID_W", "ADDR_W": "AXI_ADDR_W - 2", "DATA_W": "AXI_DATA_W", "LOCK_W": "1"},
		},
	}))

	e, ok := r.Lookup("ps_axi")
	require.True(t, ok)
	assert.Equal(t, "mem_axi_awid", e.Signals[0].Name)
	assert.Equal(t, 4, e.Signals[0].Width)
	assert.Equal(t, 28, e.Signals[1].Width)
	assert.Equal(t, core.DirNone, e.Signals[0].Direction)
}

func TestDeclare_SubordinateRoleFlips(t *testing.T) {
	r := newRegistry(t)

	require.NoError(t, r.Declare(core.KindPort, core.Bundle{
		Name: "clk_en_rst_s", Spec: core.TypeReference{Type: "iob_clk"}, Role: core.RoleSubordinate,
	}))
	require.NoError(t, r.Declare(core.KindPort, core.Bundle{
		Name: "rs232_m", Spec: core.TypeReference{Type: "rs232"}, Role: core.RoleManager,
	}))

	clk, _ := r.Resolve("clk_en_rst_s")
	for _, s := range clk {
		assert.Equal(t, core.DirInput, s.Direction, s.Name)
	}
	uart, _ := r.Resolve("rs232_m")
	assert.Equal(t, core.DirInput, uart[0].Direction)
	assert.Equal(t, core.DirOutput, uart[1].Direction)
}

func TestDeclare_Duplicate(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Declare(core.KindWire, typed("clk_en_rst", "iob_clk")))

	err := r.Declare(core.KindWire, typed("clk_en_rst", "iob_clk"))
	var dup *core.DuplicateWireNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "clk_en_rst", dup.Name)

	// Ports and wires share a namespace.
	err = r.Declare(core.KindPort, typed("clk_en_rst", "iob_clk"))
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, core.KindWire, dup.Previous)
	assert.Equal(t, 1, r.Len())
}

func TestDeclare_DistinctNamesNeverCollide(t *testing.T) {
	r := newRegistry(t)
	for _, n := range []string{"a", "b", "c", "ab", "a_b", "A"} {
		assert.NoError(t, r.Declare(core.KindWire, typed(n, "iob_clk")))
	}
	assert.Equal(t, 6, r.Len())
}

func TestDeclareAll_AllOrNothing(t *testing.T) {
	r := newRegistry(t)

	err := r.DeclareAll(core.KindWire, []core.Bundle{
		typed("ps_clk_rst", "iob_clk"),
		typed("rs232_int", "rs232"),
		typed("ps_clk_rst", "iob_clk"),
	})
	var dup *core.DuplicateWireNameError
	require.ErrorAs(t, err, &dup)
	assert.Equal(t, "ps_clk_rst", dup.Name)
	assert.Equal(t, 0, r.Len(), "no wire is committed from a failed batch")
	assert.Empty(t, r.Bundles())
}

func TestDeclare_UnknownTypeLeavesRegistryUntouched(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Declare(core.KindWire, typed("clk", "iob_clk")))
	before := r.Bundles()

	err := r.Declare(core.KindWire, typed("mystery", "made_up_bundle"))
	var e *core.UnknownInterfaceTypeError
	require.ErrorAs(t, err, &e)
	assert.Equal(t, "mystery", e.Bundle)
	assert.Equal(t, "made_up_bundle", e.Type)

	assert.Equal(t, before, r.Bundles())
	assert.False(t, r.Has("mystery"))
}

func TestDeclare_Errors(t *testing.T) {
	tests := []struct {
		name   string
		bundle core.Bundle
		kind   core.ErrorKind
	}{
		{
			"type argument references unknown parameter",
			core.Bundle{Name: "x", Spec: core.TypeReference{Type: "axi", Params: map[string]string{"ADDR_W": "NOPE"}}},
			core.KindWidthEvaluation,
		},
		{
			"unknown template argument",
			core.Bundle{Name: "x", Spec: core.TypeReference{Type: "axi", Params: map[string]string{"BURST_W": "2"}}},
			core.KindWidthEvaluation,
		},
		{
			"zero width",
			explicit("x", core.SignalDecl{Name: "d", Width: "AXI_ADDR_W - 30"}),
			core.KindWidthEvaluation,
		},
		{
			"explicit width with unknown reference",
			explicit("x", core.SignalDecl{Name: "d", Width: "MISSING"}),
			core.KindWidthEvaluation,
		},
		{
			"empty explicit list",
			explicit("x"),
			core.KindWidthEvaluation,
		},
		{
			"bad option",
			core.Bundle{Name: "x", Spec: core.TypeReference{Type: "iob_clk", Options: "z"}},
			core.KindInvalidTypeOption,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRegistry(t)
			err := r.Declare(core.KindWire, tt.bundle)
			assert.Equal(t, tt.kind, core.KindOf(err), "%v", err)
			assert.Equal(t, 0, r.Len())
		})
	}
}

func TestDeclare_TypeArgumentKeepsCause(t *testing.T) {
	r := newRegistry(t)
	err := r.Declare(core.KindWire, core.Bundle{
		Name: "m",
		Spec: core.TypeReference{Type: "axi", Params: map[string]string{"ADDR_W": "NOPE"}},
	})

	var we *core.WidthEvaluationError
	require.ErrorAs(t, err, &we)
	assert.Equal(t, "m", we.Bundle)
	assert.Equal(t, "axi", we.Type)
	assert.Equal(t, "ADDR_W", we.Signal)
	assert.Equal(t, "NOPE", we.Expr)

	var ref *core.UnknownParameterReferenceError
	require.ErrorAs(t, err, &ref)
	assert.Equal(t, "NOPE", ref.Reference)
	assert.Equal(t, 0, r.Len())
}

func TestBundles_Order(t *testing.T) {
	r := newRegistry(t)
	require.NoError(t, r.Declare(core.KindPort, explicit("clk_rst_i", core.SignalDecl{Name: "clk_i", Width: "1"})))
	require.NoError(t, r.Declare(core.KindWire, typed("w2", "rs232")))
	require.NoError(t, r.Declare(core.KindWire, typed("w1", "iob_clk")))

	var got []string
	for _, e := range r.Bundles() {
		got = append(got, e.Bundle.Name)
	}
	assert.Equal(t, []string{"clk_rst_i", "w2", "w1"}, got)
	assert.Len(t, r.Ports(), 1)
	assert.Len(t, r.Wires(), 2)

	e, _ := r.Lookup("w1")
	assert.Equal(t, 3, e.Width())
}
