package output

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette. Named constants for all ANSI 256 colors used by the CLI;
// never use inline lipgloss.Color literals.
var (
	// ColorCyan is used for identifiable nouns: targets, modules, instances, bundles.
	ColorCyan = lipgloss.Color("14")

	// ColorGreen is used for the "built" status.
	ColorGreen = lipgloss.Color("82")

	// ColorYellow is used for modified entries in diffs.
	ColorYellow = lipgloss.Color("220")

	// ColorRed is used for removed entries in diffs.
	ColorRed = lipgloss.Color("196")

	// ColorBoldRed is used for the "failed" status (matches ERROR level).
	ColorBoldRed = lipgloss.Color("204")

	// ColorGreenCheck is used for the completion checkmark.
	ColorGreenCheck = lipgloss.Color("10")

	// ColorBlue is used for table headers.
	ColorBlue = lipgloss.Color("12")

	// ColorDimGray is used for borders and other structural chrome.
	ColorDimGray = lipgloss.Color("240")
)

// Semantic styles.
var (
	// StyleNoun styles identifiable nouns.
	StyleNoun = lipgloss.NewStyle().Foreground(ColorCyan)

	// StyleAction styles action verbs (building, vetting).
	StyleAction = lipgloss.NewStyle().Bold(true)

	// StyleDim styles structural chrome (scope prefixes, separators, widths).
	StyleDim = lipgloss.NewStyle().Faint(true)

	// StyleSummary styles completion and summary lines.
	StyleSummary = lipgloss.NewStyle().Bold(true)
)

// Styles groups the styles used by multi-part renderers so tests and
// --no-color can swap them out as a set.
type Styles struct {
	Bold    lipgloss.Style
	Muted   lipgloss.Style
	Noun    lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

// GetStyles returns the colored style set.
func GetStyles() *Styles {
	return &Styles{
		Bold:    lipgloss.NewStyle().Bold(true),
		Muted:   StyleDim,
		Noun:    StyleNoun,
		Success: lipgloss.NewStyle().Foreground(ColorGreen),
		Warning: lipgloss.NewStyle().Foreground(ColorYellow),
		Error:   lipgloss.NewStyle().Foreground(ColorRed),
	}
}

// NoColorStyles returns a style set that renders text unchanged.
func NoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{Bold: plain, Muted: plain, Noun: plain, Success: plain, Warning: plain, Error: plain}
}

// Build status constants.
const (
	StatusBuilt   = "built"
	StatusValid   = "valid"
	StatusSkipped = "skipped"
	StatusFailed  = "failed"
)

// StatusStyle returns the style for a build status. Unknown statuses
// return an unstyled default.
func StatusStyle(status string) lipgloss.Style {
	switch status {
	case StatusBuilt, StatusValid:
		return lipgloss.NewStyle().Foreground(ColorGreen)
	case StatusSkipped:
		return lipgloss.NewStyle().Faint(true)
	case StatusFailed:
		return lipgloss.NewStyle().Bold(true).Foreground(ColorBoldRed)
	default:
		return lipgloss.NewStyle()
	}
}

// minTargetColumnWidth keeps status words aligned across lines.
const minTargetColumnWidth = 40

// FormatTargetLine renders a build label with a right-aligned,
// color-coded status suffix.
//
// Format: t:<target>[ (<variant>)]  <status>
func FormatTargetLine(target, variant, status string) string {
	path := target
	if variant != "" {
		path += " (" + variant + ")"
	}

	padding := minTargetColumnWidth - len(path)
	if padding < 2 {
		padding = 2
	}

	return StyleDim.Render("t:") + StyleNoun.Render(path) + strings.Repeat(" ", padding) + StatusStyle(status).Render(status)
}

// FormatCheckmark renders a green checkmark with a message.
func FormatCheckmark(msg string) string {
	check := lipgloss.NewStyle().Foreground(ColorGreenCheck).Render("✔")
	return check + " " + msg
}
