package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/IObundle/versat-ai/internal/core"
)

// IROptions controls IR output formatting.
type IROptions struct {
	// Format is FormatYAML or FormatJSON.
	Format Format
	// Writer is the output destination.
	Writer io.Writer
}

// WriteIR writes one IR document.
func WriteIR(ir *core.IR, opts IROptions) error {
	return WriteIRs([]*core.IR{ir}, opts)
}

// WriteIRs writes IR documents in order. YAML output is a multi-document
// stream; JSON output is a single document for one IR and an array
// otherwise.
func WriteIRs(irs []*core.IR, opts IROptions) error {
	if len(irs) == 0 {
		return nil
	}

	switch opts.Format {
	case FormatJSON:
		encoder := json.NewEncoder(opts.Writer)
		encoder.SetIndent("", "  ")
		var v interface{} = irs
		if len(irs) == 1 {
			v = irs[0]
		}
		if err := encoder.Encode(v); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
		return nil
	case FormatYAML, "":
		encoder := yaml.NewEncoder(opts.Writer)
		encoder.SetIndent(2)
		for _, ir := range irs {
			if err := encoder.Encode(ir); err != nil {
				return fmt.Errorf("encoding IR %s: %w", ir.Name, err)
			}
		}
		return encoder.Close()
	default:
		return fmt.Errorf("format %s not supported for IR output", opts.Format)
	}
}
