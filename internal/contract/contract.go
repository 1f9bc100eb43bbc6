// Package contract checks an assembled IR against the contract expected by
// the external code generator: the embedded CUE schema plus the
// cross-reference rules a schema cannot express.
package contract

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"sync"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/IObundle/versat-ai/internal/core"
)

//go:embed ir.cue
var schemaSource []byte

// Schema returns the CUE source of the IR schema.
func Schema() string {
	return string(schemaSource)
}

// Validator validates IR values. It is safe for concurrent use.
type Validator struct {
	mu  sync.Mutex
	ctx *cue.Context
	def cue.Value
}

// New compiles the embedded schema.
func New() (*Validator, error) {
	ctx := cuecontext.New()
	schema := ctx.CompileBytes(schemaSource, cue.Filename("ir.cue"))
	if err := schema.Err(); err != nil {
		return nil, fmt.Errorf("compiling IR schema: %w", err)
	}
	def := schema.LookupPath(cue.ParsePath("#IR"))
	if err := def.Err(); err != nil {
		return nil, fmt.Errorf("looking up #IR: %w", err)
	}
	return &Validator{ctx: ctx, def: def}, nil
}

// Validate implements assembler.Validator.
func (v *Validator) Validate(ir *core.IR) error {
	data, err := json.Marshal(ir)
	if err != nil {
		return fmt.Errorf("marshaling IR: %w", err)
	}
	if err := v.ValidateJSON(data); err != nil {
		return err
	}
	return CheckReferences(ir)
}

// ValidateJSON checks serialized IR against the schema only.
func (v *Validator) ValidateJSON(data []byte) error {
	v.mu.Lock()
	defer v.mu.Unlock()

	val := v.ctx.CompileBytes(data, cue.Filename("ir.json"))
	if err := val.Err(); err != nil {
		return &core.ContractViolationError{Message: "IR is not valid JSON", Report: cueerrors.Details(err, nil), Cause: err}
	}
	unified := v.def.Unify(val)
	if err := unified.Validate(cue.Concrete(true)); err != nil {
		return &core.ContractViolationError{
			Message: fmt.Sprintf("%d schema error(s)", len(cueerrors.Errors(err))),
			Report:  cueerrors.Details(err, nil),
			Cause:   err,
		}
	}
	return nil
}

// CheckReferences enforces the rules the schema cannot express. Bundle
// names are unique in the module and signal names unique in their bundle.
// Every connection names a declared bundle and no instance name repeats.
func CheckReferences(ir *core.IR) error {
	violation := func(format string, args ...interface{}) error {
		return &core.ContractViolationError{Message: fmt.Sprintf(format, args...)}
	}

	bundles := sets.New[string]()
	for _, group := range [][]core.IRBundle{ir.Ports, ir.Wires} {
		for _, b := range group {
			if bundles.Has(b.Name) {
				return violation("bundle %s declared twice", b.Name)
			}
			bundles.Insert(b.Name)

			local := sets.New[string]()
			for _, s := range b.Signals {
				if local.Has(s.Name) {
					return violation("bundle %s: signal %s declared twice", b.Name, s.Name)
				}
				local.Insert(s.Name)
			}
		}
	}

	instances := sets.New[string]()
	for _, sb := range ir.Subblocks {
		if instances.Has(sb.Instance) {
			return violation("subblock instance %s declared twice", sb.Instance)
		}
		instances.Insert(sb.Instance)
		for _, c := range sb.Connections {
			if !bundles.Has(c.Bundle) {
				return violation("instance %s: port %s connected to undeclared bundle %s", sb.Instance, c.Port, c.Bundle)
			}
		}
	}
	return nil
}
