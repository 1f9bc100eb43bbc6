package targets

import (
	"github.com/IObundle/versat-ai/internal/assembler"
	"github.com/IObundle/versat-ai/internal/core"
	"github.com/IObundle/versat-ai/internal/params"
)

const (
	// ZyboZ7 is the name of the Digilent Zybo Z7 board wrapper target.
	ZyboZ7 = "iob_zybo_z7"

	// FlagUseExtmem connects the SoC to the PS memory through an AXI
	// interconnect.
	FlagUseExtmem = "use_extmem"

	// DefaultInstantiator is the core wrapped when the build params name none.
	DefaultInstantiator = "iob_system"

	// BridgeInstance is the instance name of the AXI interconnect.
	BridgeInstance = "axi_async_bridge"
)

const glueCode = `// General connections
assign cke = 1'b1;
assign arst = ~ps_arstn;
assign ps_arst = ~ps_arstn;
`

func instantiator(p assembler.BuildParams) string {
	if p.Instantiator != "" {
		return p.Instantiator
	}
	return DefaultInstantiator
}

// ZyboZ7Target returns the Zybo Z7 board wrapper. The wrapped SoC is
// p.Instantiator; with use_extmem the SoC AXI manager reaches the PS memory
// through an interconnect and the address width grows from 20 to 30 bits.
func ZyboZ7Target() assembler.Target {
	return assembler.Target{
		Name:       ZyboZ7,
		Descr:      "Digilent Zybo Z7 FPGA board wrapper",
		GenerateHW: true,
		Flags: []assembler.Flag{
			{Name: FlagUseExtmem, Descr: "Use the PS DDR memory through an AXI interconnect", Default: false},
		},
		ModuleName: func(p assembler.BuildParams) string {
			name := p.Name
			if name == "" {
				name = instantiator(p)
			}
			return name + "_" + ZyboZ7
		},
		Fragments: zyboFragments,
	}
}

func zyboFragments(p assembler.BuildParams) []assembler.Fragment {
	soc := instantiator(p)
	return []assembler.Fragment{
		{
			Parameters: []core.Parameter{
				{Name: "AXI_ID_W", Descr: "AXI ID bus width", Kind: core.ParamKindD, Value: "4", Min: params.Bound(1), Max: params.Bound(32)},
				{Name: "AXI_LEN_W", Descr: "AXI burst length width", Kind: core.ParamKindD, Value: "8", Min: params.Bound(1), Max: params.Bound(8)},
				{Name: "AXI_ADDR_W", Descr: "AXI address bus width", Kind: core.ParamKindD, Value: "20", Min: params.Bound(1), Max: params.Bound(32)},
				{Name: "AXI_DATA_W", Descr: "AXI data bus width", Kind: core.ParamKindD, Value: "32", Min: params.Bound(1), Max: params.Bound(32)},
				{Name: "BAUD", Descr: "UART baud rate", Kind: core.ParamKindD, Value: "115200"},
				{Name: "FREQ", Descr: "Clock frequency", Kind: core.ParamKindD, Value: "100000000"},
				{Name: "XILINX", Descr: "xilinx flag", Kind: core.ParamKindD, Value: "1"},
			},
			Ports: []core.Bundle{
				{
					Name:  "clk_rst_i",
					Descr: "Clock and reset",
					Spec: core.ExplicitSignals{Signals: []core.SignalDecl{
						{Name: "clk_i", Width: "1"},
						{Name: "arst_i", Width: "1"},
					}},
				},
				{
					Name:  "rs232_io",
					Descr: "Serial port",
					Spec: core.ExplicitSignals{Signals: []core.SignalDecl{
						{Name: "txd_o", Width: "1"},
						{Name: "rxd_i", Width: "1"},
					}},
				},
			},
			Wires: []core.Bundle{
				{
					Name:  "ps_clk_arstn",
					Descr: "Clock and reset",
					Spec: core.ExplicitSignals{Signals: []core.SignalDecl{
						{Name: "ps_clk", Width: "1"},
						{Name: "ps_arstn", Width: "1"},
					}},
				},
				{Name: "ps_clk_rst", Descr: "Clock and reset", Spec: core.TypeReference{Type: "iob_clk", Options: "a"}},
				{Name: "clk_en_rst", Descr: "Clock, clock enable and reset", Spec: core.TypeReference{Type: "iob_clk"}},
				{Name: "rs232_int", Descr: "iob-system uart interface", Spec: core.TypeReference{Type: "rs232"}},
				{
					Name:  "intercon_m_clk_rst",
					Descr: "AXI interconnect clock and reset inputs",
					Spec:  core.TypeReference{Type: "iob_clk", Prefix: "intercon_m_", Options: "a"},
				},
				{
					Name:  "ps_axi",
					Descr: "AXI bus to connect interconnect and memory",
					Spec: core.TypeReference{Type: "axi", Prefix: "mem_", Params: map[string]string{
						"ID_W":   "AXI_ID_W",
						"LEN_W":  "AXI_LEN_W",
						"ADDR_W": "AXI_ADDR_W - 2",
						"DATA_W": "AXI_DATA_W",
						"LOCK_W": "1",
					}},
				},
			},
			Subblocks: []core.Subblock{
				{
					Core:     soc,
					Instance: soc,
					Descr:    "IOb-SoC instance",
					Parameters: map[string]string{
						"AXI_ID_W":   "AXI_ID_W",
						"AXI_LEN_W":  "AXI_LEN_W",
						"AXI_ADDR_W": "AXI_ADDR_W",
						"AXI_DATA_W": "AXI_DATA_W",
					},
					Connect: map[string]string{
						"clk_en_rst_s": "clk_en_rst",
						"rs232_m":      "rs232_int",
					},
					Attributes: map[string]string{"dest_dir": "hardware/common_src"},
				},
			},
			Snippets: []core.Snippet{{Language: "verilog", Code: glueCode}},
		},
		{
			When:     FlagUseExtmem,
			Defaults: map[string]string{"AXI_ADDR_W": "30"},
			Wires: []core.Bundle{
				{
					Name:  "axi",
					Descr: "AXI interface to connect SoC to memory",
					Spec: core.TypeReference{Type: "axi", Params: map[string]string{
						"ID_W":   "AXI_ID_W",
						"ADDR_W": "AXI_ADDR_W - 2",
						"DATA_W": "AXI_DATA_W",
						"LEN_W":  "AXI_LEN_W",
					}},
				},
			},
			Subblocks: []core.Subblock{
				{
					Core:     "iob_xilinx_axi_interconnect",
					Instance: BridgeInstance,
					Descr:    "Interconnect instance",
					Parameters: map[string]string{
						"AXI_ID_W":   "AXI_ID_W",
						"AXI_LEN_W":  "AXI_LEN_W",
						"AXI_ADDR_W": "AXI_ADDR_W - 2",
						"AXI_DATA_W": "AXI_DATA_W",
					},
					Connect: map[string]string{
						"clk_rst_s":     "ps_clk_rst",
						"m0_clk_rst_io": "intercon_m_clk_rst",
						"m0_axi_m":      "ps_axi",
						"s0_clk_rst_io": "ps_clk_rst",
						"s0_axi_s":      "axi",
					},
					Attributes: map[string]string{"num_subordinates": "1"},
				},
			},
			Connect: map[string]map[string]string{
				soc: {"axi_m": "axi"},
			},
		},
	}
}
