package output

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/IObundle/versat-ai/internal/core"
)

func TestRenderTree(t *testing.T) {
	root := &TreeNode{Name: "top"}
	a := root.Add("a", "")
	a.Add("a1", "leaf")
	root.Add("b", "")

	out := RenderTree(root, NoColorStyles())
	lines := strings.Split(strings.TrimSuffix(out, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, "top", lines[0])
	assert.Equal(t, "├── a", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "│   └── a1"))
	assert.True(t, strings.HasSuffix(lines[2], "leaf"))
	assert.Equal(t, "└── b", lines[3])
}

func TestRenderModuleTree(t *testing.T) {
	ir := sampleIR("soc")
	ir.Subblocks[0].Floating = []string{"dbg_o"}

	out := RenderModuleTree(ir, NoColorStyles())

	assert.True(t, strings.HasPrefix(out, "soc (target board)\n"))
	assert.Contains(t, out, "= 8")
	assert.Contains(t, out, "iob_clk: 1 signals, 1 bits")
	assert.Contains(t, out, "-> clk (1 bits)")
	assert.Contains(t, out, "(floating)")
	assert.True(t, strings.Index(out, "ports") < strings.Index(out, "wires"))
}

func TestModuleTree_OmitsEmptySections(t *testing.T) {
	root := ModuleTree(&core.IR{Name: "empty", Target: "t"})
	assert.Empty(t, root.Children)
}
