package output

import (
	"fmt"
	"strings"
)

// Format specifies the output format.
type Format string

const (
	// FormatYAML outputs in YAML format.
	FormatYAML Format = "yaml"

	// FormatJSON outputs in JSON format.
	FormatJSON Format = "json"

	// FormatTable outputs a human-readable table.
	FormatTable Format = "table"

	// FormatTree outputs the module hierarchy as a tree.
	FormatTree Format = "tree"
)

// String returns the string representation of the format.
func (f Format) String() string {
	return string(f)
}

// IsValid checks if the format is known.
func (f Format) IsValid() bool {
	switch f {
	case FormatYAML, FormatJSON, FormatTable, FormatTree:
		return true
	default:
		return false
	}
}

// ParseFormat parses s into a Format. Unlike the flag defaults, an
// unrecognized value is an error.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case "", "yaml", "yml":
		return FormatYAML, nil
	case "json":
		return FormatJSON, nil
	case "table":
		return FormatTable, nil
	case "tree":
		return FormatTree, nil
	default:
		return "", fmt.Errorf("unknown output format %q (valid: %s)", s, strings.Join(ValidFormats(), ", "))
	}
}

// ValidFormats returns every valid format string.
func ValidFormats() []string {
	return []string{"yaml", "json", "table", "tree"}
}

// ValidIRFormats returns the formats accepted for IR output.
func ValidIRFormats() []string {
	return []string{"yaml", "json"}
}
