// Package params implements the parameter resolver: a single left-to-right
// pass over a module's declared parameters, each expression evaluated
// against the parameters declared before it.
package params

import (
	"errors"
	"maps"
	"slices"
	"strconv"

	"github.com/IObundle/versat-ai/internal/core"
	"github.com/IObundle/versat-ai/internal/expr"
)

// Env is the resolved parameter set of one module scope. It keeps the
// declaration order and implements expr.Scope over numeric parameters.
type Env struct {
	scope  string
	order  []string
	values map[string]core.ResolvedParameter
}

// NewEnv returns an empty environment named scope.
func NewEnv(scope string) *Env {
	return &Env{scope: scope, values: map[string]core.ResolvedParameter{}}
}

// Scope returns the name of the module or instance the env belongs to.
func (e *Env) Scope() string { return e.scope }

// Lookup implements expr.Scope. String parameters are not visible.
func (e *Env) Lookup(name string) (int64, bool) {
	p, ok := e.values[name]
	if !ok || p.Type == core.TypeString {
		return 0, false
	}
	return p.Int, true
}

// Get returns the resolved parameter named name.
func (e *Env) Get(name string) (core.ResolvedParameter, bool) {
	p, ok := e.values[name]
	return p, ok
}

// Has reports whether name is resolved in e.
func (e *Env) Has(name string) bool {
	_, ok := e.values[name]
	return ok
}

// Names returns the parameter names in declaration order.
func (e *Env) Names() []string {
	return slices.Clone(e.order)
}

// Resolved returns the resolved parameters in declaration order.
func (e *Env) Resolved() []core.ResolvedParameter {
	out := make([]core.ResolvedParameter, len(e.order))
	for i, n := range e.order {
		out[i] = e.values[n]
	}
	return out
}

// Values returns a name to value map of the numeric parameters.
func (e *Env) Values() map[string]int64 {
	out := make(map[string]int64, len(e.values))
	for n, p := range e.values {
		if p.Type != core.TypeString {
			out[n] = p.Int
		}
	}
	return out
}

// Eval evaluates src in e. Unresolved references are reported as
// UnknownParameterReference against owner, syntax and arithmetic failures
// as InvalidExpression.
func (e *Env) Eval(owner, src string) (int64, error) {
	x, err := expr.Parse(src)
	if err != nil {
		return 0, &core.InvalidExpressionError{Scope: e.scope, Parameter: owner, Expr: src, Cause: err}
	}
	for _, ref := range expr.Refs(x) {
		if _, ok := e.Lookup(ref); !ok {
			return 0, &core.UnknownParameterReferenceError{Scope: e.scope, Parameter: owner, Reference: ref}
		}
	}
	v, err := expr.Eval(x, e)
	if err != nil {
		return 0, &core.InvalidExpressionError{Scope: e.scope, Parameter: owner, Expr: src, Cause: err}
	}
	return v, nil
}

func (e *Env) set(p core.ResolvedParameter) {
	if _, ok := e.values[p.Name]; !ok {
		e.order = append(e.order, p.Name)
	}
	e.values[p.Name] = p
}

// Resolve evaluates decls in order in a scope named scope. overrides
// replaces the value expression of the named parameters before evaluation;
// naming an undeclared parameter in overrides fails with
// UnknownParameterReference.
func Resolve(scope string, decls []core.Parameter, overrides map[string]string) (*Env, error) {
	declared := make(map[string]bool, len(decls))
	for _, d := range decls {
		if declared[d.Name] {
			return nil, &core.DuplicateParameterError{Scope: scope, Parameter: d.Name}
		}
		declared[d.Name] = true
	}
	for _, name := range slices.Sorted(maps.Keys(overrides)) {
		if !declared[name] {
			return nil, &core.UnknownParameterReferenceError{Scope: scope, Parameter: "override", Reference: name}
		}
	}

	env := NewEnv(scope)
	for _, d := range decls {
		src := d.Value
		if o, ok := overrides[d.Name]; ok {
			src = o
		}

		rp := core.ResolvedParameter{
			Name:  d.Name,
			Descr: d.Descr,
			Kind:  d.Kind,
			Type:  d.Type,
			Min:   d.Min,
			Max:   d.Max,
		}
		if rp.Type == "" {
			rp.Type = core.TypeNumeric
		}

		if d.IsString() {
			rp.Str = src
			env.set(rp)
			continue
		}

		v, err := env.Eval(d.Name, src)
		if err != nil {
			return nil, err
		}
		if err := checkBounds(scope, d, v); err != nil {
			return nil, err
		}
		rp.Int = v
		env.set(rp)
	}
	return env, nil
}

func checkBounds(scope string, d core.Parameter, v int64) error {
	if (d.Min != nil && v < *d.Min) || (d.Max != nil && v > *d.Max) {
		return &core.BoundsViolationError{Scope: scope, Parameter: d.Name, Value: v, Min: d.Min, Max: d.Max}
	}
	return nil
}

// Bound returns a pointer to v, for declaring Min and Max.
func Bound(v int64) *int64 {
	return &v
}

// ParseBound parses an optional bound. Empty input yields nil.
func ParseBound(s string) (*int64, error) {
	if s == "" {
		return nil, nil
	}
	v, err := strconv.ParseInt(s, 0, 64)
	if err != nil {
		return nil, errors.New("invalid bound " + strconv.Quote(s))
	}
	return &v, nil
}
