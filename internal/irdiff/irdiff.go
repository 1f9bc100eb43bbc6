// Package irdiff compares two IR documents element by element. Elements
// are keyed as kind/name (parameter/W, wire/axi, subblock/soc) and changed
// elements carry a YAML-aware diff.
package irdiff

import (
	"bytes"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/gonvenience/ytbx"
	"github.com/homeport/dyff/pkg/dyff"
	"sigs.k8s.io/yaml"

	"github.com/IObundle/versat-ai/internal/core"
)

// Result is the outcome of a comparison.
type Result struct {
	HasChanges bool

	// Added elements exist only in the after IR.
	Added []string

	// Removed elements exist only in the before IR.
	Removed []string

	Modified []Modified
}

// Modified is an element present in both IRs with different content.
type Modified struct {
	// Name is the element key (kind/name).
	Name string

	// Diff is the rendered dyff report.
	Diff string
}

type element struct {
	key   string
	value interface{}
}

// Compare diffs before against after. Element order follows after, then
// the removed elements of before.
func Compare(before, after *core.IR, useColor bool) (*Result, error) {
	oldElems := elements(before)
	newElems := elements(after)

	oldByKey := make(map[string]interface{}, len(oldElems))
	for _, e := range oldElems {
		oldByKey[e.key] = e.value
	}
	newKeys := make(map[string]bool, len(newElems))

	result := &Result{}
	for _, e := range newElems {
		newKeys[e.key] = true
		prev, ok := oldByKey[e.key]
		if !ok {
			result.Added = append(result.Added, e.key)
			continue
		}
		diff, err := compareValues(prev, e.value, useColor)
		if err != nil {
			return nil, fmt.Errorf("comparing %s: %w", e.key, err)
		}
		if diff != "" {
			result.Modified = append(result.Modified, Modified{Name: e.key, Diff: diff})
		}
	}
	for _, e := range oldElems {
		if !newKeys[e.key] {
			result.Removed = append(result.Removed, e.key)
		}
	}

	result.HasChanges = len(result.Added) > 0 || len(result.Removed) > 0 || len(result.Modified) > 0
	return result, nil
}

// Load parses an IR document in YAML or JSON.
func Load(data []byte) (*core.IR, error) {
	var ir core.IR
	if err := yaml.UnmarshalStrict(data, &ir); err != nil {
		return nil, fmt.Errorf("parsing IR: %w", err)
	}
	return &ir, nil
}

func elements(ir *core.IR) []element {
	header := struct {
		Name       string          `json:"name"`
		Target     string          `json:"target"`
		GenerateHW bool            `json:"generateHW"`
		Flags      map[string]bool `json:"flags,omitempty"`
	}{ir.Name, ir.Target, ir.GenerateHW, ir.Flags}

	out := []element{{key: "module", value: header}}
	for _, p := range ir.Parameters {
		out = append(out, element{key: "parameter/" + p.Name, value: p})
	}
	for _, b := range ir.Ports {
		out = append(out, element{key: "port/" + b.Name, value: b})
	}
	for _, b := range ir.Wires {
		out = append(out, element{key: "wire/" + b.Name, value: b})
	}
	for _, sb := range ir.Subblocks {
		out = append(out, element{key: "subblock/" + sb.Instance, value: sb})
	}
	for i, s := range ir.Snippets {
		out = append(out, element{key: "snippet/" + strconv.Itoa(i), value: s})
	}
	return out
}

func compareValues(before, after interface{}, useColor bool) (string, error) {
	oldYAML, err := canonicalYAML(before)
	if err != nil {
		return "", err
	}
	newYAML, err := canonicalYAML(after)
	if err != nil {
		return "", err
	}
	if bytes.Equal(oldYAML, newYAML) {
		return "", nil
	}
	return diffYAML(oldYAML, newYAML, useColor)
}

// canonicalYAML renders v with null and empty lists and maps dropped, so an
// IR read back from YAML or JSON compares equal to the one it was written
// from.
func canonicalYAML(v interface{}) ([]byte, error) {
	data, err := yaml.Marshal(v)
	if err != nil {
		return nil, err
	}
	var generic interface{}
	if err := yaml.Unmarshal(data, &generic); err != nil {
		return nil, err
	}
	return yaml.Marshal(prune(generic))
}

func prune(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		for k, e := range t {
			e = prune(e)
			if empty(e) {
				delete(t, k)
				continue
			}
			t[k] = e
		}
		return t
	case []interface{}:
		for i, e := range t {
			t[i] = prune(e)
		}
		return t
	default:
		return v
	}
}

func empty(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return true
	case map[string]interface{}:
		return len(t) == 0
	case []interface{}:
		return len(t) == 0
	default:
		return false
	}
}

func diffYAML(before, after []byte, useColor bool) (string, error) {
	oldInput, err := parseYAMLInput("before", before)
	if err != nil {
		return "", fmt.Errorf("parsing old YAML: %w", err)
	}
	newInput, err := parseYAMLInput("after", after)
	if err != nil {
		return "", fmt.Errorf("parsing new YAML: %w", err)
	}

	report, err := dyff.CompareInputFiles(oldInput, newInput)
	if err != nil {
		return "", fmt.Errorf("comparing YAML: %w", err)
	}
	if len(report.Diffs) == 0 {
		return "", nil
	}
	return renderReport(report, useColor)
}

func parseYAMLInput(name string, data []byte) (ytbx.InputFile, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return ytbx.InputFile{Location: name}, nil
	}

	docs, err := ytbx.LoadYAMLDocuments(data)
	if err != nil {
		return ytbx.InputFile{}, err
	}
	return ytbx.InputFile{Location: name, Documents: docs}, nil
}

func renderReport(report dyff.Report, useColor bool) (string, error) {
	var buf bytes.Buffer

	reportWriter := &dyff.HumanReport{
		Report:            report,
		DoNotInspectCerts: true,
		NoTableStyle:      !useColor,
		OmitHeader:        true,
	}
	if err := reportWriter.WriteReport(io.Writer(&buf)); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}

	lines := strings.Split(buf.String(), "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.TrimSpace(strings.Join(lines, "\n")), nil
}
