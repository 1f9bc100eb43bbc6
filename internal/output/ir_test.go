package output

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/IObundle/versat-ai/internal/core"
)

func sampleIR(name string) *core.IR {
	return &core.IR{
		Name:   name,
		Target: "board",
		Parameters: []core.ResolvedParameter{
			{Name: "W", Kind: core.ParamKindP, Type: core.TypeNumeric, Int: 8},
		},
		Ports: []core.IRBundle{{
			Name:    "rs232_io",
			Signals: []core.Signal{{Name: "txd_o", Width: 1, Direction: core.DirOutput}},
		}},
		Wires: []core.IRBundle{{
			Name: "clk", Type: "iob_clk",
			Signals: []core.Signal{{Name: "clk", Width: 1}},
		}},
		Subblocks: []core.Binding{{
			Core: "uart", Instance: "uart0",
			Connections: []core.Connection{{Port: "clk_s", Bundle: "clk", Width: 1}},
		}},
	}
}

func TestWriteIR_YAML(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIR(sampleIR("soc"), IROptions{Format: FormatYAML, Writer: &buf}))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "name: soc\n"))
	assert.Contains(t, out, "\n  - name: rs232_io\n", "two-space indent")

	var back core.IR
	require.NoError(t, yaml.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "uart0", back.Subblocks[0].Instance)
}

func TestWriteIR_JSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteIR(sampleIR("soc"), IROptions{Format: FormatJSON, Writer: &buf}))

	var back map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &back))
	assert.Equal(t, "soc", back["name"])
	assert.Contains(t, buf.String(), "\n  \"target\": \"board\"")
}

func TestWriteIRs(t *testing.T) {
	irs := []*core.IR{sampleIR("a"), sampleIR("b")}

	var y bytes.Buffer
	require.NoError(t, WriteIRs(irs, IROptions{Format: FormatYAML, Writer: &y}))
	assert.Equal(t, 1, strings.Count(y.String(), "\n---\n"))

	var j bytes.Buffer
	require.NoError(t, WriteIRs(irs, IROptions{Format: FormatJSON, Writer: &j}))
	var arr []map[string]interface{}
	require.NoError(t, json.Unmarshal(j.Bytes(), &arr))
	assert.Len(t, arr, 2)

	var none bytes.Buffer
	require.NoError(t, WriteIRs(nil, IROptions{Format: FormatYAML, Writer: &none}))
	assert.Empty(t, none.String())
}

func TestWriteIR_UnsupportedFormat(t *testing.T) {
	err := WriteIR(sampleIR("soc"), IROptions{Format: FormatTable, Writer: &bytes.Buffer{}})
	assert.Error(t, err)
}
