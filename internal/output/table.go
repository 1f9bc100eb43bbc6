package output

import (
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/IObundle/versat-ai/internal/core"
)

var (
	tableHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(ColorBlue).Padding(0, 1)
	tableCellStyle   = lipgloss.NewStyle().Padding(0, 1)
	tableBorderStyle = lipgloss.NewStyle().Foreground(ColorDimGray)
)

// Table collects rows for a bordered table with a styled header.
type Table struct {
	headers []string
	rows    [][]string
	right   map[int]bool
}

// NewTable creates a table with the given column headers.
func NewTable(headers ...string) *Table {
	return &Table{headers: headers, right: map[int]bool{}}
}

// AlignRight right-aligns the given zero-based columns (numbers, widths).
func (t *Table) AlignRight(cols ...int) *Table {
	for _, c := range cols {
		t.right[c] = true
	}
	return t
}

// Row appends a row.
func (t *Table) Row(cells ...string) *Table {
	t.rows = append(t.rows, cells)
	return t
}

// Len returns the number of data rows.
func (t *Table) Len() int { return len(t.rows) }

func (t *Table) String() string {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(tableBorderStyle).
		Headers(t.headers...).
		Rows(t.rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			s := tableCellStyle
			if row == table.HeaderRow {
				s = tableHeaderStyle
			}
			if t.right[col] {
				s = s.Align(lipgloss.Right)
			}
			return s
		})
	return tbl.String()
}

// RenderParameterTable renders resolved parameters with their bounds.
func RenderParameterTable(params []core.ResolvedParameter) string {
	t := NewTable("NAME", "KIND", "VALUE", "MIN", "MAX", "DESCRIPTION").AlignRight(2, 3, 4)
	for _, p := range params {
		t.Row(p.Name, string(p.Kind), paramValue(p), formatBound(p.Min), formatBound(p.Max), p.Descr)
	}
	return t.String()
}

// RenderBindingTable renders the connections of every subblock. Floating
// optional ports are listed with no bundle.
func RenderBindingTable(bindings []core.Binding) string {
	t := NewTable("INSTANCE", "CORE", "PORT", "BUNDLE", "WIDTH").AlignRight(4)
	for _, b := range bindings {
		for _, c := range b.Connections {
			t.Row(b.Instance, b.Core, c.Port, c.Bundle, strconv.Itoa(c.Width))
		}
		for _, port := range b.Floating {
			t.Row(b.Instance, b.Core, port, "(floating)", "")
		}
	}
	return t.String()
}

func formatBound(b *int64) string {
	if b == nil {
		return ""
	}
	return strconv.FormatInt(*b, 10)
}
