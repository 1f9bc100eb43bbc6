package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in      string
		want    Direction
		wantErr bool
	}{
		{"", DirNone, false},
		{"input", DirInput, false},
		{" I ", DirInput, false},
		{"out", DirOutput, false},
		{"io", DirInOut, false},
		{"both", DirNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDirection(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestShapeOf(t *testing.T) {
	shape := ShapeOf([]Signal{
		{Name: "a", Width: 8, Direction: DirInput},
		{Name: "b", Width: 1, Direction: DirOutput},
	})
	assert.Equal(t, []int{8, 1}, shape.Widths())
	assert.Equal(t, DirOutput, shape[1].Direction)
}

func TestCloneSignals(t *testing.T) {
	assert.Nil(t, CloneSignals(nil))

	orig := []Signal{{Name: "a", Width: 1}}
	cp := CloneSignals(orig)
	cp[0].Width = 4
	assert.Equal(t, 1, orig[0].Width)
}

func TestBundleClone(t *testing.T) {
	ref := Bundle{Name: "axi", Spec: TypeReference{Type: "axi", Params: map[string]string{"DATA_W": "32"}}}
	cp := ref.Clone()
	cp.Spec.(TypeReference).Params["DATA_W"] = "64"
	assert.Equal(t, "32", ref.Spec.(TypeReference).Params["DATA_W"])

	explicit := Bundle{Name: "rs232", Spec: ExplicitSignals{Signals: []SignalDecl{{Name: "txd_o", Width: "1"}}}}
	cp = explicit.Clone()
	cp.Spec.(ExplicitSignals).Signals[0].Width = "2"
	assert.Equal(t, "1", explicit.Spec.(ExplicitSignals).Signals[0].Width)
}

func TestSubblockClone(t *testing.T) {
	sub := Subblock{Core: "uart", Instance: "uart0", Connect: map[string]string{"clk_s": "clk"}}
	cp := sub.Clone()
	cp.Connect["clk_s"] = "other"
	assert.Equal(t, "clk", sub.Connect["clk_s"])
}

func TestModuleDescriptionPort(t *testing.T) {
	m := &ModuleDescription{Ports: []Bundle{{Name: "clk_s"}}}
	_, ok := m.Port("clk_s")
	assert.True(t, ok)
	_, ok = m.Port("rst")
	assert.False(t, ok)
}

func TestIRLookups(t *testing.T) {
	ir := &IR{
		Parameters: []ResolvedParameter{{Name: "W", Int: 8}},
		Ports:      []IRBundle{{Name: "rs232"}},
		Wires:      []IRBundle{{Name: "clk"}},
		Subblocks: []Binding{{
			Instance:   "uart0",
			Parameters: []ResolvedParameter{{Name: "DATA_W", Int: 32}},
		}},
	}

	p, ok := ir.Parameter("W")
	require.True(t, ok)
	assert.EqualValues(t, 8, p.Int)

	_, ok = ir.Port("rs232")
	assert.True(t, ok)
	_, ok = ir.Wire("rs232")
	assert.False(t, ok)

	b, ok := ir.Subblock("uart0")
	require.True(t, ok)
	cp, ok := b.Parameter("DATA_W")
	require.True(t, ok)
	assert.EqualValues(t, 32, cp.Int)

	_, ok = ir.Subblock("uart1")
	assert.False(t, ok)
}
