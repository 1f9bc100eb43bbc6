package output

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/IObundle/versat-ai/internal/core"
)

func TestTable(t *testing.T) {
	tbl := NewTable("NAME", "VALUE").Row("W", "8").Row("NAME", "soc")
	assert.Equal(t, 2, tbl.Len())

	out := tbl.String()
	assert.Contains(t, out, "NAME")
	assert.Contains(t, out, "soc")
}

func TestRenderParameterTable(t *testing.T) {
	lo, hi := int64(1), int64(32)
	out := RenderParameterTable([]core.ResolvedParameter{
		{Name: "AXI_ADDR_W", Kind: core.ParamKindP, Type: core.TypeNumeric, Int: 24, Min: &lo, Max: &hi},
		{Name: "INIT_FILE", Type: core.TypeString, Str: "boot.hex"},
	})

	assert.Contains(t, out, "AXI_ADDR_W")
	assert.Contains(t, out, "24")
	assert.Contains(t, out, "32")
	assert.Contains(t, out, "boot.hex")
}

func TestRenderBindingTable(t *testing.T) {
	out := RenderBindingTable([]core.Binding{{
		Core: "uart", Instance: "uart0",
		Connections: []core.Connection{{Port: "clk_s", Bundle: "clk", Width: 3}},
		Floating:    []string{"dbg_o"},
	}})

	assert.Contains(t, out, "clk_s")
	assert.Contains(t, out, "(floating)")
	assert.Contains(t, out, "dbg_o")
}
