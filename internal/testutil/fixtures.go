package testutil

// SPIBoard is a description file declaring an spi interface type, an
// spi_ctrl child module and an spi_board target with a "second" flag that
// adds a second controller.
const SPIBoard = `
interfaces: spi: {
	descr: "SPI bus"
	params: [{name: "CS_W", default: 1}]
	members: [
		{name: "sclk", width: "1", direction: "output"},
		{name: "mosi", width: "1", direction: "output"},
		{name: "miso", width: "1", direction: "input"},
		{name: "cs_n", width: "CS_W", direction: "output"},
	]
}

modules: spi_ctrl: {
	parameters: [{name: "CS_W", value: 2, min: 1, max: 8}]
	ports: [
		{name: "clk_s", type: "iob_clk", role: "subordinate", options: "a"},
		{name: "spi_m", type: "spi", prefix: "spi_", params: {CS_W: "CS_W"}},
	]
}

targets: spi_board: {
	descr:        "SPI test board"
	moduleSuffix: "_spi_board"
	flags: [{name: "second", descr: "add a second controller"}]
	fragments: [
		{
			parameters: [{name: "CS_W", value: 2, kind: "D"}]
			ports: [{name: "clk_rst_i", signals: [{name: "clk_i"}, {name: "arst_i"}]}]
			wires: [
				{name: "clk_rst", type: "iob_clk", options: "a"},
				{name: "spi0", type: "spi", prefix: "spi0_", params: {CS_W: "CS_W"}},
			]
			subblocks: [{
				core:     "spi_ctrl"
				instance: "spi0"
				parameters: {CS_W: "CS_W"}
				connect: {clk_s: "clk_rst", spi_m: "spi0"}
			}]
			snippets: [{code: "assign clk = clk_i;\n"}]
		},
		{
			when: "second"
			wires: [{name: "spi1", type: "spi", prefix: "spi1_", params: {CS_W: 2}}]
			subblocks: [{core: "spi_ctrl", instance: "spi1", connect: {clk_s: "clk_rst", spi_m: "spi1"}}]
		},
	]
}
`
