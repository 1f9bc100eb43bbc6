package catalog

import "github.com/IObundle/versat-ai/internal/core"

const (
	in  = core.DirInput
	out = core.DirOutput
)

var clockTemplate = Template{
	Name:  "iob_clk",
	Descr: "Clock, clock enable and reset",
	Members: []Member{
		{Name: "clk", Width: "1", Direction: out, Descr: "Clock"},
		{Name: "cke", Width: "1", Direction: out, Option: "c", Descr: "Clock enable"},
		{Name: "arst", Width: "1", Direction: out, Option: "a", Descr: "Asynchronous active-high reset"},
	},
	Options: []Option{
		{Letter: "c", Descr: "clock enable"},
		{Letter: "a", Descr: "asynchronous reset"},
	},
	DefaultOptions: "c_a",
}

var rs232Template = Template{
	Name:  "rs232",
	Descr: "RS-232 serial interface",
	Members: []Member{
		{Name: "rs232_rxd", Width: "1", Direction: in, Descr: "Receive data"},
		{Name: "rs232_txd", Width: "1", Direction: out, Descr: "Transmit data"},
		{Name: "rs232_rts", Width: "1", Direction: out, Option: "f", Descr: "Ready to send"},
		{Name: "rs232_cts", Width: "1", Direction: in, Option: "f", Descr: "Clear to send"},
	},
	Options: []Option{
		{Letter: "f", Descr: "hardware flow control"},
	},
}

var iobTemplate = Template{
	Name:  "iob",
	Descr: "IOb native memory interface",
	Params: []TemplateParam{
		{Name: "ADDR_W", Default: 32, Descr: "Address width"},
		{Name: "DATA_W", Default: 32, Descr: "Data width"},
	},
	Members: []Member{
		{Name: "iob_valid", Width: "1", Direction: out},
		{Name: "iob_addr", Width: "ADDR_W", Direction: out},
		{Name: "iob_wdata", Width: "DATA_W", Direction: out},
		{Name: "iob_wstrb", Width: "DATA_W / 8", Direction: out},
		{Name: "iob_rvalid", Width: "1", Direction: in},
		{Name: "iob_rdata", Width: "DATA_W", Direction: in},
		{Name: "iob_ready", Width: "1", Direction: in},
	},
}

var axiParams = []TemplateParam{
	{Name: "ID_W", Default: 1, Descr: "ID width"},
	{Name: "ADDR_W", Default: 1, Descr: "Address width"},
	{Name: "DATA_W", Default: 32, Descr: "Data width"},
	{Name: "LEN_W", Default: 8, Descr: "Burst length width"},
	{Name: "LOCK_W", Default: 2, Descr: "Lock width"},
}

var axiTemplate = Template{
	Name:   "axi",
	Descr:  "AXI4 full interface",
	Params: axiParams,
	Members: []Member{
		{Name: "axi_awid", Width: "ID_W", Direction: out},
		{Name: "axi_awaddr", Width: "ADDR_W", Direction: out},
		{Name: "axi_awlen", Width: "LEN_W", Direction: out},
		{Name: "axi_awsize", Width: "3", Direction: out},
		{Name: "axi_awburst", Width: "2", Direction: out},
		{Name: "axi_awlock", Width: "LOCK_W", Direction: out},
		{Name: "axi_awcache", Width: "4", Direction: out},
		{Name: "axi_awprot", Width: "3", Direction: out},
		{Name: "axi_awqos", Width: "4", Direction: out},
		{Name: "axi_awvalid", Width: "1", Direction: out},
		{Name: "axi_awready", Width: "1", Direction: in},
		{Name: "axi_wdata", Width: "DATA_W", Direction: out},
		{Name: "axi_wstrb", Width: "DATA_W / 8", Direction: out},
		{Name: "axi_wlast", Width: "1", Direction: out},
		{Name: "axi_wvalid", Width: "1", Direction: out},
		{Name: "axi_wready", Width: "1", Direction: in},
		{Name: "axi_bid", Width: "ID_W", Direction: in},
		{Name: "axi_bresp", Width: "2", Direction: in},
		{Name: "axi_bvalid", Width: "1", Direction: in},
		{Name: "axi_bready", Width: "1", Direction: out},
		{Name: "axi_arid", Width: "ID_W", Direction: out},
		{Name: "axi_araddr", Width: "ADDR_W", Direction: out},
		{Name: "axi_arlen", Width: "LEN_W", Direction: out},
		{Name: "axi_arsize", Width: "3", Direction: out},
		{Name: "axi_arburst", Width: "2", Direction: out},
		{Name: "axi_arlock", Width: "LOCK_W", Direction: out},
		{Name: "axi_arcache", Width: "4", Direction: out},
		{Name: "axi_arprot", Width: "3", Direction: out},
		{Name: "axi_arqos", Width: "4", Direction: out},
		{Name: "axi_arvalid", Width: "1", Direction: out},
		{Name: "axi_arready", Width: "1", Direction: in},
		{Name: "axi_rid", Width: "ID_W", Direction: in},
		{Name: "axi_rdata", Width: "DATA_W", Direction: in},
		{Name: "axi_rresp", Width: "2", Direction: in},
		{Name: "axi_rlast", Width: "1", Direction: in},
		{Name: "axi_rvalid", Width: "1", Direction: in},
		{Name: "axi_rready", Width: "1", Direction: out},
	},
}

var axiLiteTemplate = Template{
	Name:  "axil",
	Descr: "AXI4-Lite interface",
	Params: []TemplateParam{
		{Name: "ADDR_W", Default: 32, Descr: "Address width"},
		{Name: "DATA_W", Default: 32, Descr: "Data width"},
	},
	Members: []Member{
		{Name: "axil_awaddr", Width: "ADDR_W", Direction: out},
		{Name: "axil_awprot", Width: "3", Direction: out},
		{Name: "axil_awvalid", Width: "1", Direction: out},
		{Name: "axil_awready", Width: "1", Direction: in},
		{Name: "axil_wdata", Width: "DATA_W", Direction: out},
		{Name: "axil_wstrb", Width: "DATA_W / 8", Direction: out},
		{Name: "axil_wvalid", Width: "1", Direction: out},
		{Name: "axil_wready", Width: "1", Direction: in},
		{Name: "axil_bresp", Width: "2", Direction: in},
		{Name: "axil_bvalid", Width: "1", Direction: in},
		{Name: "axil_bready", Width: "1", Direction: out},
		{Name: "axil_araddr", Width: "ADDR_W", Direction: out},
		{Name: "axil_arprot", Width: "3", Direction: out},
		{Name: "axil_arvalid", Width: "1", Direction: out},
		{Name: "axil_arready", Width: "1", Direction: in},
		{Name: "axil_rdata", Width: "DATA_W", Direction: in},
		{Name: "axil_rresp", Width: "2", Direction: in},
		{Name: "axil_rvalid", Width: "1", Direction: in},
		{Name: "axil_rready", Width: "1", Direction: out},
	},
}

var axiStreamTemplate = Template{
	Name:  "axis",
	Descr: "AXI4-Stream interface",
	Params: []TemplateParam{
		{Name: "DATA_W", Default: 32, Descr: "Data width"},
	},
	Members: []Member{
		{Name: "axis_tdata", Width: "DATA_W", Direction: out},
		{Name: "axis_tvalid", Width: "1", Direction: out},
		{Name: "axis_tready", Width: "1", Direction: in},
		{Name: "axis_tlast", Width: "1", Direction: out, Option: "l"},
	},
	Options: []Option{
		{Letter: "l", Descr: "tlast"},
	},
	DefaultOptions: "l",
}

// BuiltinTemplates returns the templates of the built-in catalog.
func BuiltinTemplates() []Template {
	return []Template{
		cloneTemplate(clockTemplate),
		cloneTemplate(rs232Template),
		cloneTemplate(iobTemplate),
		cloneTemplate(axiTemplate),
		cloneTemplate(axiLiteTemplate),
		cloneTemplate(axiStreamTemplate),
	}
}

// Builtin returns a new catalog holding the built-in interface types.
func Builtin() *Catalog {
	return MustNew(BuiltinTemplates()...)
}
