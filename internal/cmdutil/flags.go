// Package cmdutil provides shared command utilities: flag groups, loading
// the description workspace and reporting build results.
package cmdutil

import (
	"fmt"
	"maps"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/IObundle/versat-ai/internal/assembler"
	"github.com/IObundle/versat-ai/internal/loader"
)

// BuildFlags holds flags common to commands that assemble targets
// (build, vet, diff, tree).
type BuildFlags struct {
	ParamFiles   []string
	Set          []string
	Flags        []string
	Name         string
	Instantiator string
}

// AddTo registers the build flags on the given cobra command.
func (f *BuildFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringArrayVarP(&f.ParamFiles, "params", "f", nil,
		"Build parameter files, unified in order (can be repeated)")
	cmd.Flags().StringArrayVar(&f.Set, "set", nil,
		"Parameter override KEY=VALUE (can be repeated)")
	cmd.Flags().StringArrayVar(&f.Flags, "flag", nil,
		"Feature flag NAME or NAME=true|false (can be repeated)")
	cmd.Flags().StringVar(&f.Name, "name", "",
		"Base name of the generated module (default: target name)")
	cmd.Flags().StringVar(&f.Instantiator, "instantiator", "",
		"Core name of the module wrapped by the target")
}

// Params builds the build parameter dictionary. Parameter files are
// loaded first; flags given on the command line override their values.
func (f *BuildFlags) Params(ld *loader.Loader) (assembler.BuildParams, error) {
	p := assembler.BuildParams{
		Flags:     map[string]bool{},
		Overrides: map[string]string{},
	}

	if len(f.ParamFiles) > 0 {
		fromFiles, err := ld.LoadParams(f.ParamFiles...)
		if err != nil {
			return p, fmt.Errorf("loading parameter files: %w", err)
		}
		p.Name = fromFiles.Name
		p.Instantiator = fromFiles.Instantiator
		maps.Copy(p.Flags, fromFiles.Flags)
		maps.Copy(p.Overrides, fromFiles.Overrides)
	}

	if f.Name != "" {
		p.Name = f.Name
	}
	if f.Instantiator != "" {
		p.Instantiator = f.Instantiator
	}

	overrides, err := ParseSet(f.Set)
	if err != nil {
		return p, err
	}
	maps.Copy(p.Overrides, overrides)

	flags, err := ParseFlags(f.Flags)
	if err != nil {
		return p, err
	}
	maps.Copy(p.Flags, flags)

	return p, nil
}

// ParseSet parses KEY=VALUE entries. Later entries win.
func ParseSet(entries []string) (map[string]string, error) {
	out := make(map[string]string, len(entries))
	for _, e := range entries {
		key, value, ok := strings.Cut(e, "=")
		key = strings.TrimSpace(key)
		if !ok || key == "" {
			return nil, fmt.Errorf("invalid --set %q: want KEY=VALUE", e)
		}
		out[key] = strings.TrimSpace(value)
	}
	return out, nil
}

// ParseFlags parses NAME or NAME=bool entries. A bare name enables the
// flag.
func ParseFlags(entries []string) (map[string]bool, error) {
	out := make(map[string]bool, len(entries))
	for _, e := range entries {
		name, value, hasValue := strings.Cut(e, "=")
		name = strings.TrimSpace(name)
		if name == "" {
			return nil, fmt.Errorf("invalid --flag %q: missing name", e)
		}
		if !hasValue {
			out[name] = true
			continue
		}
		b, err := strconv.ParseBool(strings.TrimSpace(value))
		if err != nil {
			return nil, fmt.Errorf("invalid --flag %q: %q is not a boolean", e, value)
		}
		out[name] = b
	}
	return out, nil
}

// OutputFlags holds the IR destination flags (build).
type OutputFlags struct {
	Format string
	Out    string
}

// AddTo registers the output flags on the given cobra command.
func (f *OutputFlags) AddTo(cmd *cobra.Command) {
	cmd.Flags().StringVarP(&f.Format, "output", "o", "",
		"IR format: yaml, json (default: from config)")
	cmd.Flags().StringVar(&f.Out, "out", "",
		"Write the IR to this file instead of stdout")
}
