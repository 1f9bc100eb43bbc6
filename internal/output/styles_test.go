package output

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestStatusStyle(t *testing.T) {
	tests := []struct {
		name     string
		status   string
		wantBold bool
		wantFG   lipgloss.TerminalColor
		wantDim  bool
	}{
		{name: "built returns green", status: StatusBuilt, wantFG: ColorGreen},
		{name: "valid returns green", status: StatusValid, wantFG: ColorGreen},
		{name: "skipped returns faint", status: StatusSkipped, wantDim: true},
		{name: "failed returns bold red", status: StatusFailed, wantFG: ColorBoldRed, wantBold: true},
		{name: "unknown is unstyled", status: "weird", wantFG: lipgloss.NoColor{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			style := StatusStyle(tt.status)
			assert.Equal(t, tt.wantBold, style.GetBold())
			assert.Equal(t, tt.wantDim, style.GetFaint())
			if tt.wantFG != nil {
				assert.Equal(t, tt.wantFG, style.GetForeground())
			}
		})
	}
}

func TestFormatTargetLine(t *testing.T) {
	line := FormatTargetLine("iob_zybo_z7", "use_extmem=true", StatusBuilt)
	assert.Contains(t, line, "iob_zybo_z7 (use_extmem=true)")
	assert.True(t, strings.HasSuffix(line, StatusBuilt))

	short := FormatTargetLine("x", "", StatusFailed)
	long := FormatTargetLine("xxxxxxxxxx", "", StatusFailed)
	assert.Equal(t, len(short), len(long), "status column is aligned")
}

func TestFormatCheckmark(t *testing.T) {
	assert.Contains(t, FormatCheckmark("IR written"), "✔ IR written")
}

func TestNoColorStyles(t *testing.T) {
	s := NoColorStyles()
	assert.Equal(t, "plain", s.Error.Render("plain"))
	assert.Equal(t, "plain", s.Bold.Render("plain"))
}
