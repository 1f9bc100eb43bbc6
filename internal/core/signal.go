// Package core defines the hardware module description model shared by the
// composition phases: signals, bundles, parameters, module descriptions,
// subblock instances, the validated IR, and the composition error kinds.
package core

import (
	"fmt"
	"strings"
)

// Direction is the direction of a port signal.
// Wire members carry no direction (DirNone).
type Direction string

const (
	DirNone   Direction = ""
	DirInput  Direction = "input"
	DirOutput Direction = "output"
	DirInOut  Direction = "inout"
)

// Flip swaps input and output. Used when a manager-perspective interface
// template is instantiated as a subordinate port.
func (d Direction) Flip() Direction {
	switch d {
	case DirInput:
		return DirOutput
	case DirOutput:
		return DirInput
	default:
		return d
	}
}

// Valid reports whether d is one of the known directions.
func (d Direction) Valid() bool {
	switch d {
	case DirNone, DirInput, DirOutput, DirInOut:
		return true
	}
	return false
}

// ParseDirection parses the long and short spellings of a direction.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "":
		return DirNone, nil
	case "input", "in", "i":
		return DirInput, nil
	case "output", "out", "o":
		return DirOutput, nil
	case "inout", "io":
		return DirInOut, nil
	}
	return DirNone, fmt.Errorf("invalid direction %q", s)
}

// InferDirection derives a port direction from the conventional name
// suffix (_i, _o, _io). Returns DirNone when the name carries no suffix.
func InferDirection(name string) Direction {
	switch {
	case strings.HasSuffix(name, "_io"):
		return DirInOut
	case strings.HasSuffix(name, "_i"):
		return DirInput
	case strings.HasSuffix(name, "_o"):
		return DirOutput
	}
	return DirNone
}

// SignalDecl is a declared signal whose width is still an expression.
type SignalDecl struct {
	Name      string
	Width     string
	Direction Direction
	Descr     string
}

// Signal is a fully expanded signal with a concrete width.
type Signal struct {
	Name      string    `json:"name" yaml:"name"`
	Width     int       `json:"width" yaml:"width"`
	Direction Direction `json:"direction,omitempty" yaml:"direction,omitempty"`
}

// Shape is the ordered list of (width, direction) pairs of a bundle,
// ignoring names. Used for connection compatibility checks.
type Shape []ShapeEntry

// ShapeEntry is one position in a Shape.
type ShapeEntry struct {
	Width     int
	Direction Direction
}

// ShapeOf returns the shape of signals.
func ShapeOf(signals []Signal) Shape {
	s := make(Shape, len(signals))
	for i, sig := range signals {
		s[i] = ShapeEntry{Width: sig.Width, Direction: sig.Direction}
	}
	return s
}

// Widths returns the widths of the shape in order.
func (s Shape) Widths() []int {
	w := make([]int, len(s))
	for i, e := range s {
		w[i] = e.Width
	}
	return w
}

// CloneSignals returns a copy of signals that shares no backing array.
func CloneSignals(signals []Signal) []Signal {
	if signals == nil {
		return nil
	}
	out := make([]Signal, len(signals))
	copy(out, signals)
	return out
}
