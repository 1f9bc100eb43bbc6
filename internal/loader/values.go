package loader

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"cuelang.org/go/cue"
	cuejson "cuelang.org/go/encoding/json"
	cueyaml "cuelang.org/go/encoding/yaml"
)

// ErrUnsupportedFormat is returned for files that are not CUE, YAML or JSON.
var ErrUnsupportedFormat = errors.New("unsupported file format")

// ValuesLoader reads CUE, YAML and JSON files into CUE values.
type ValuesLoader struct {
	ctx *cue.Context
}

// NewValuesLoader creates a ValuesLoader bound to ctx.
func NewValuesLoader(ctx *cue.Context) *ValuesLoader {
	return &ValuesLoader{ctx: ctx}
}

// LoadFile loads one file. The format follows the extension.
func (l *ValuesLoader) LoadFile(path string) (cue.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return cue.Value{}, fmt.Errorf("reading %s: %w", path, err)
	}
	return l.LoadBytes(path, data)
}

// LoadBytes loads data as if read from path. Empty YAML and JSON
// documents load as an empty struct.
func (l *ValuesLoader) LoadBytes(path string, data []byte) (cue.Value, error) {
	var value cue.Value
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".cue":
		value = l.ctx.CompileBytes(data, cue.Filename(path))
	case ".yaml", ".yml", ".json":
		if len(bytes.TrimSpace(data)) == 0 {
			return l.ctx.CompileString("{}"), nil
		}
		var err error
		if value, err = l.extract(ext, path, data); err != nil {
			return cue.Value{}, fmt.Errorf("parsing %s: %w", path, err)
		}
	default:
		return cue.Value{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, ext)
	}
	if err := value.Err(); err != nil {
		return cue.Value{}, fmt.Errorf("compiling %s: %w", path, err)
	}
	return value, nil
}

// extract parses YAML or JSON into CUE syntax and builds it.
func (l *ValuesLoader) extract(ext, path string, data []byte) (cue.Value, error) {
	if ext == ".json" {
		expr, err := cuejson.Extract(path, data)
		if err != nil {
			return cue.Value{}, err
		}
		return l.ctx.BuildExpr(expr), nil
	}
	file, err := cueyaml.Extract(path, data)
	if err != nil {
		return cue.Value{}, err
	}
	return l.ctx.BuildFile(file), nil
}

// LoadMultiple loads files and unifies them in order. No files yields an
// empty struct.
func (l *ValuesLoader) LoadMultiple(paths []string) (cue.Value, error) {
	result := l.ctx.CompileString("{}")
	for _, path := range paths {
		value, err := l.LoadFile(path)
		if err != nil {
			return cue.Value{}, err
		}
		result = result.Unify(value)
		if err := result.Err(); err != nil {
			return cue.Value{}, fmt.Errorf("unifying %s: %w", path, err)
		}
	}
	return result, nil
}
