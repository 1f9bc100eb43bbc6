package irdiff

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IObundle/versat-ai/internal/core"
)

func baseIR() *core.IR {
	return &core.IR{
		Name:   "soc_board",
		Target: "board",
		Flags:  map[string]bool{"use_extmem": false},
		Parameters: []core.ResolvedParameter{
			{Name: "AXI_ADDR_W", Kind: core.ParamKindP, Type: core.TypeNumeric, Int: 20},
		},
		Wires: []core.IRBundle{{Name: "clk", Type: "iob_clk", Signals: []core.Signal{{Name: "clk", Width: 1}}}},
		Subblocks: []core.Binding{{
			Core: "uart", Instance: "uart0",
			Connections: []core.Connection{{Port: "clk_s", Bundle: "clk", Width: 1}},
		}},
	}
}

func TestCompare_Identical(t *testing.T) {
	result, err := Compare(baseIR(), baseIR(), false)
	require.NoError(t, err)
	assert.False(t, result.HasChanges)
	assert.Empty(t, result.Added)
	assert.Empty(t, result.Removed)
	assert.Empty(t, result.Modified)
}

func TestCompare_NilAndEmptyListsAreEqual(t *testing.T) {
	before := baseIR()
	before.Subblocks[0].Parameters = []core.ResolvedParameter{}
	before.Subblocks[0].Attributes = map[string]string{}

	result, err := Compare(before, baseIR(), false)
	require.NoError(t, err)
	assert.False(t, result.HasChanges)
}

func TestCompare_Changes(t *testing.T) {
	after := baseIR()
	after.Flags["use_extmem"] = true
	after.Parameters[0].Int = 30
	after.Wires = append(after.Wires, core.IRBundle{Name: "axi", Signals: []core.Signal{{Name: "axi_awvalid", Width: 1}}})
	after.Subblocks = nil

	result, err := Compare(baseIR(), after, false)
	require.NoError(t, err)

	assert.True(t, result.HasChanges)
	assert.Equal(t, []string{"wire/axi"}, result.Added)
	assert.Equal(t, []string{"subblock/uart0"}, result.Removed)

	require.Len(t, result.Modified, 2)
	assert.Equal(t, "module", result.Modified[0].Name)
	assert.Equal(t, "parameter/AXI_ADDR_W", result.Modified[1].Name)
	assert.Contains(t, result.Modified[1].Diff, "30")
}

func TestLoad(t *testing.T) {
	ir, err := Load([]byte(`
name: soc_board
target: board
generateHW: true
parameters:
  - name: W
    type: numeric
    int: 8
ports: []
wires:
  - name: clk
    signals:
      - name: clk
        width: 1
subblocks: []
`))
	require.NoError(t, err)
	assert.Equal(t, "soc_board", ir.Name)
	assert.True(t, ir.GenerateHW)
	assert.Equal(t, int64(8), ir.Parameters[0].Int)
	assert.Equal(t, 1, ir.Wires[0].Signals[0].Width)

	ir, err = Load([]byte(`{"name": "x", "target": "t", "parameters": [], "ports": [], "wires": [], "subblocks": []}`))
	require.NoError(t, err)
	assert.Equal(t, "x", ir.Name)
}

func TestLoad_UnknownField(t *testing.T) {
	_, err := Load([]byte("name: x\nbogus: 1\n"))
	assert.Error(t, err)
}
