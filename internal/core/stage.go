package core

import "fmt"

// Stage is a step of the per-build state machine.
type Stage int

const (
	StageParamsReceived Stage = iota
	StageParametersResolved
	StageWiresDeclared
	StagePortsDeclared
	StageSubblocksBound
	StageValidated
	StageEmitted
	StageFailed
)

var stageNames = [...]string{
	StageParamsReceived:     "ParamsReceived",
	StageParametersResolved: "ParametersResolved",
	StageWiresDeclared:      "WiresDeclared",
	StagePortsDeclared:      "PortsDeclared",
	StageSubblocksBound:     "SubblocksBound",
	StageValidated:          "Validated",
	StageEmitted:            "Emitted",
	StageFailed:             "Failed",
}

func (s Stage) String() string {
	if s < 0 || int(s) >= len(stageNames) {
		return fmt.Sprintf("Stage(%d)", int(s))
	}
	return stageNames[s]
}

// Terminal reports whether no further transition is possible from s.
func (s Stage) Terminal() bool {
	return s == StageEmitted || s == StageFailed
}

// BuildError is the Failed(reason) outcome of a build. Stage is the last
// stage reached before the failure.
type BuildError struct {
	Target string
	Stage  Stage
	Err    error
}

func (e *BuildError) Error() string {
	return fmt.Sprintf("build %s failed after %s: %v", e.Target, e.Stage, e.Err)
}

func (e *BuildError) Unwrap() error { return e.Err }
