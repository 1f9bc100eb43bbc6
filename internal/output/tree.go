package output

import (
	"fmt"
	"strings"

	"github.com/IObundle/versat-ai/internal/core"
)

const (
	treeEdge  = "├── "
	treeLast  = "└── "
	treeVert  = "│   "
	treeSpace = "    "

	// descriptionColumn is where node descriptions start.
	descriptionColumn = 36
)

// TreeNode is one node of a rendered tree. Children render in order.
type TreeNode struct {
	Name        string
	Description string
	Children    []*TreeNode
}

// Add appends a child and returns it.
func (n *TreeNode) Add(name, description string) *TreeNode {
	child := &TreeNode{Name: name, Description: description}
	n.Children = append(n.Children, child)
	return child
}

// RenderTree renders root and its descendants.
func RenderTree(root *TreeNode, styles *Styles) string {
	var sb strings.Builder
	renderNode(&sb, root, "", true, true, styles)
	return sb.String()
}

// ModuleTree builds the hierarchy of an IR: parameters, ports, wires and
// subblocks with their connections. Empty sections are omitted.
func ModuleTree(ir *core.IR) *TreeNode {
	root := &TreeNode{Name: ir.Name, Description: "target " + ir.Target}

	if len(ir.Parameters) > 0 {
		section := root.Add("parameters", "")
		for _, p := range ir.Parameters {
			section.Add(p.Name, "= "+paramValue(p))
		}
	}
	for _, group := range []struct {
		name    string
		bundles []core.IRBundle
	}{{"ports", ir.Ports}, {"wires", ir.Wires}} {
		if len(group.bundles) == 0 {
			continue
		}
		section := root.Add(group.name, "")
		for _, b := range group.bundles {
			section.Add(b.Name, bundleSummary(b))
		}
	}
	if len(ir.Subblocks) > 0 {
		section := root.Add("subblocks", "")
		for _, sb := range ir.Subblocks {
			inst := section.Add(sb.Instance, sb.Core)
			for _, c := range sb.Connections {
				inst.Add(c.Port, fmt.Sprintf("-> %s (%d bits)", c.Bundle, c.Width))
			}
			for _, port := range sb.Floating {
				inst.Add(port, "(floating)")
			}
		}
	}
	return root
}

// RenderModuleTree renders the hierarchy of ir.
func RenderModuleTree(ir *core.IR, styles *Styles) string {
	return RenderTree(ModuleTree(ir), styles)
}

func paramValue(p core.ResolvedParameter) string {
	if p.Type == core.TypeString {
		return fmt.Sprintf("%q", p.Str)
	}
	return fmt.Sprintf("%d", p.Int)
}

func bundleSummary(b core.IRBundle) string {
	bits := 0
	for _, s := range b.Signals {
		bits += s.Width
	}
	summary := fmt.Sprintf("%d signals, %d bits", len(b.Signals), bits)
	if b.Type != "" {
		summary = b.Type + ": " + summary
	}
	return summary
}

func renderNode(sb *strings.Builder, node *TreeNode, prefix string, isRoot, isLast bool, styles *Styles) {
	var line string
	if isRoot {
		line = styles.Bold.Render(node.Name)
		if node.Description != "" {
			line += " " + styles.Muted.Render("("+node.Description+")")
		}
	} else {
		connector := treeEdge
		if isLast {
			connector = treeLast
		}
		line = prefix + connector + node.Name

		if node.Description != "" {
			padding := descriptionColumn - len([]rune(line))
			if padding < 2 {
				padding = 2
			}
			line += strings.Repeat(" ", padding) + styles.Muted.Render(node.Description)
		}
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	for i, child := range node.Children {
		childPrefix := ""
		if !isRoot {
			if isLast {
				childPrefix = prefix + treeSpace
			} else {
				childPrefix = prefix + treeVert
			}
		}
		renderNode(sb, child, childPrefix, false, i == len(node.Children)-1, styles)
	}
}
