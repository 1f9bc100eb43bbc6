package assembler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IObundle/versat-ai/internal/core"
)

func TestSelect(t *testing.T) {
	frags := []Fragment{
		{When: "", Snippets: []core.Snippet{{Code: "base"}}},
		{When: "fast", Snippets: []core.Snippet{{Code: "fast"}}},
		{When: "!fast", Snippets: []core.Snippet{{Code: "slow"}}},
		{When: " ! fast ", Snippets: []core.Snippet{{Code: "slow2"}}},
	}

	codes := func(fs []Fragment) []string {
		var out []string
		for _, f := range fs {
			out = append(out, f.Snippets[0].Code)
		}
		return out
	}

	on, err := Select("t", frags, map[string]bool{"fast": true})
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "fast"}, codes(on))

	off, err := Select("t", frags, map[string]bool{"fast": false})
	require.NoError(t, err)
	assert.Equal(t, []string{"base", "slow", "slow2"}, codes(off))

	_, err = Select("t", frags, map[string]bool{})
	assert.Equal(t, core.KindUnknownParameterReference, core.KindOf(err))
}

func TestMerge(t *testing.T) {
	base := Fragment{
		Parameters: []core.Parameter{{Name: "W", Value: "8"}},
		Wires:      []core.Bundle{{Name: "a", Spec: core.TypeReference{Type: "iob_clk"}}},
		Subblocks: []core.Subblock{{
			Core: "child", Instance: "u0",
			Connect: map[string]string{"clk_s": "a"},
		}},
	}
	extra := Fragment{
		Defaults: map[string]string{"W": "16"},
		Wires:    []core.Bundle{{Name: "b", Spec: core.TypeReference{Type: "iob_clk"}}},
		Connect:  map[string]map[string]string{"u0": {"aux_s": "b"}},
	}

	desc, err := Merge("top", []Fragment{base, extra})
	require.NoError(t, err)

	assert.Equal(t, "top", desc.Name)
	assert.Equal(t, "16", desc.Parameters[0].Value)
	assert.Len(t, desc.Wires, 2)
	assert.Equal(t, map[string]string{"clk_s": "a", "aux_s": "b"}, desc.Subblocks[0].Connect)

	// Inputs are never mutated.
	assert.Equal(t, "8", base.Parameters[0].Value)
	assert.Equal(t, map[string]string{"clk_s": "a"}, base.Subblocks[0].Connect)
}

func TestMerge_OrderIndependentPatches(t *testing.T) {
	patch := Fragment{Connect: map[string]map[string]string{"u0": {"p": "w"}}}
	decl := Fragment{Subblocks: []core.Subblock{{Core: "c", Instance: "u0"}}}

	desc, err := Merge("top", []Fragment{patch, decl})
	require.NoError(t, err)
	assert.Equal(t, "w", desc.Subblocks[0].Connect["p"])
}

func TestMerge_RepeatedDefaultOverride(t *testing.T) {
	frags := []Fragment{
		{Parameters: []core.Parameter{{Name: "W", Value: "8"}}, Defaults: map[string]string{"W": "16"}},
		{Defaults: map[string]string{"W": "16"}},
	}

	desc, err := Merge("top", frags)
	require.NoError(t, err)
	assert.Equal(t, "16", desc.Parameters[0].Value)
}

func TestMerge_ConflictingDefaultDetails(t *testing.T) {
	_, err := Merge("top", []Fragment{
		{Parameters: []core.Parameter{{Name: "AXI_ADDR_W", Value: "20"}}, Defaults: map[string]string{"AXI_ADDR_W": "30"}},
		{Defaults: map[string]string{"AXI_ADDR_W": "24"}},
	})

	var cd *core.ConflictingDefaultError
	require.ErrorAs(t, err, &cd)
	assert.Equal(t, "AXI_ADDR_W", cd.Parameter)
	assert.Equal(t, "30", cd.First)
	assert.Equal(t, "24", cd.Second)
}

func TestMerge_Errors(t *testing.T) {
	tests := []struct {
		name  string
		frags []Fragment
		kind  core.ErrorKind
	}{
		{
			"duplicate parameter",
			[]Fragment{{Parameters: []core.Parameter{{Name: "W"}}}, {Parameters: []core.Parameter{{Name: "W"}}}},
			core.KindDuplicateParameter,
		},
		{
			"duplicate instance",
			[]Fragment{{Subblocks: []core.Subblock{{Instance: "u0"}, {Instance: "u0"}}}},
			core.KindDuplicateInstance,
		},
		{
			"default for unknown parameter",
			[]Fragment{{Defaults: map[string]string{"W": "1"}}},
			core.KindUnknownParameterReference,
		},
		{
			"patch for unknown instance",
			[]Fragment{{Connect: map[string]map[string]string{"u9": {"p": "w"}}}},
			core.KindUnknownInstance,
		},
		{
			"conflicting patch",
			[]Fragment{
				{Subblocks: []core.Subblock{{Instance: "u0", Connect: map[string]string{"p": "w1"}}}},
				{Connect: map[string]map[string]string{"u0": {"p": "w2"}}},
			},
			core.KindConflictingConnection,
		},
		{
			"conflicting default overrides",
			[]Fragment{
				{Parameters: []core.Parameter{{Name: "W", Value: "8"}}, Defaults: map[string]string{"W": "16"}},
				{Defaults: map[string]string{"W": "32"}},
			},
			core.KindConflictingDefault,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Merge("top", tt.frags)
			assert.Equal(t, tt.kind, core.KindOf(err), "%v", err)
		})
	}
}
