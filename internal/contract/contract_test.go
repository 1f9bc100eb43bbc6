package contract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IObundle/versat-ai/internal/core"
)

func validIR() *core.IR {
	return &core.IR{
		Name:       "soc_board",
		Target:     "board",
		GenerateHW: true,
		Flags:      map[string]bool{"debug": false},
		Parameters: []core.ResolvedParameter{
			{Name: "W", Kind: core.ParamKindD, Type: core.TypeNumeric, Int: 8},
			{Name: "NAME", Type: core.TypeString, Str: "soc"},
		},
		Ports: []core.IRBundle{{
			Name: "rs232_io",
			Signals: []core.Signal{
				{Name: "txd_o", Width: 1, Direction: core.DirOutput},
				{Name: "rxd_i", Width: 1, Direction: core.DirInput},
			},
		}},
		Wires: []core.IRBundle{{
			Name: "clk", Type: "iob_clk",
			Signals: []core.Signal{{Name: "clk", Width: 1}, {Name: "arst", Width: 1}},
		}},
		Subblocks: []core.Binding{{
			Core: "uart", Instance: "uart0",
			Parameters:  []core.ResolvedParameter{{Name: "DATA_W", Type: core.TypeNumeric, Int: 8}},
			Connections: []core.Connection{{Port: "clk_s", Bundle: "clk", Width: 2}},
			Attributes:  map[string]string{"dest_dir": "hardware/src"},
		}},
		Snippets: []core.IRSnippet{{Language: "verilog", Code: "assign a = b;"}},
	}
}

func TestValidate_Valid(t *testing.T) {
	v, err := New()
	require.NoError(t, err)

	assert.NoError(t, v.Validate(validIR()))
}

func TestValidate_SchemaViolations(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(ir *core.IR)
	}{
		{"zero width", func(ir *core.IR) { ir.Wires[0].Signals[0].Width = 0 }},
		{"port signal without direction", func(ir *core.IR) { ir.Ports[0].Signals[0].Direction = core.DirNone }},
		{"wire signal with direction", func(ir *core.IR) { ir.Wires[0].Signals[0].Direction = core.DirInput }},
		{"empty bundle", func(ir *core.IR) { ir.Wires[0].Signals = []core.Signal{} }},
		{"bad identifier", func(ir *core.IR) { ir.Wires[0].Name = "9clk" }},
		{"empty target", func(ir *core.IR) { ir.Target = "" }},
		{"unknown kind", func(ir *core.IR) { ir.Parameters[0].Kind = "X" }},
	}
	v, err := New()
	require.NoError(t, err)

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ir := validIR()
			tt.mutate(ir)

			err := v.Validate(ir)
			var cv *core.ContractViolationError
			require.ErrorAs(t, err, &cv)
			assert.NotEmpty(t, cv.Report)
		})
	}
}

func TestCheckReferences(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(ir *core.IR)
		wantErr string
	}{
		{"valid", func(*core.IR) {}, ""},
		{"port and wire share a name", func(ir *core.IR) { ir.Wires[0].Name = "rs232_io" }, "declared twice"},
		{"duplicate signal", func(ir *core.IR) { ir.Wires[0].Signals[1].Name = "clk" }, "signal clk declared twice"},
		{"dangling connection", func(ir *core.IR) { ir.Subblocks[0].Connections[0].Bundle = "gone" }, "undeclared bundle gone"},
		{"duplicate instance", func(ir *core.IR) { ir.Subblocks = append(ir.Subblocks, ir.Subblocks[0]) }, "uart0 declared twice"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ir := validIR()
			tt.mutate(ir)

			err := CheckReferences(ir)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
			assert.Equal(t, core.KindContractViolation, core.KindOf(err))
		})
	}
}

func TestSchema(t *testing.T) {
	assert.Contains(t, Schema(), "#IR:")
}
