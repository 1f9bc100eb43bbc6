package core

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrorKind names a class of composition failure.
type ErrorKind string

const (
	KindUnknownParameterReference ErrorKind = "UnknownParameterReference"
	KindBoundsViolation           ErrorKind = "BoundsViolation"
	KindUnknownInterfaceType      ErrorKind = "UnknownInterfaceType"
	KindWidthEvaluation           ErrorKind = "WidthEvaluationError"
	KindDuplicateWireName         ErrorKind = "DuplicateWireName"
	KindConnectionShapeMismatch   ErrorKind = "ConnectionShapeMismatch"
	KindUnboundPort               ErrorKind = "UnboundPort"
	KindUnknownChildModule        ErrorKind = "UnknownChildModule"
	KindUnknownPort               ErrorKind = "UnknownPort"
	KindUnknownConnectionTarget   ErrorKind = "UnknownConnectionTarget"
	KindDuplicateInstance         ErrorKind = "DuplicateInstance"
	KindDuplicateParameter        ErrorKind = "DuplicateParameter"
	KindInvalidExpression         ErrorKind = "InvalidExpression"
	KindUnknownInstance           ErrorKind = "UnknownInstance"
	KindContractViolation         ErrorKind = "ContractViolation"
	KindInvalidTypeOption         ErrorKind = "InvalidTypeOption"
	KindConflictingConnection     ErrorKind = "ConflictingConnection"
	KindConflictingDefault        ErrorKind = "ConflictingDefault"
)

// Error is implemented by every composition error.
type Error interface {
	error

	// Kind returns the error class.
	Kind() ErrorKind

	// Details returns the context pinpointing the offending declaration.
	Details() map[string]string
}

// KindOf returns the kind of the first composition error in err's chain,
// or "" when there is none.
func KindOf(err error) ErrorKind {
	var e Error
	if errors.As(err, &e) {
		return e.Kind()
	}
	return ""
}

// UnknownParameterReferenceError reports an expression, override or
// instance parameter naming a parameter that is not (yet) resolved.
type UnknownParameterReferenceError struct {
	// Scope is the module or instance being resolved.
	Scope string
	// Parameter is the parameter (or bundle) whose expression failed.
	Parameter string
	Reference string
}

func (e *UnknownParameterReferenceError) Error() string {
	return fmt.Sprintf("%s: %s references unknown parameter %q", e.Scope, e.Parameter, e.Reference)
}
func (e *UnknownParameterReferenceError) Kind() ErrorKind { return KindUnknownParameterReference }
func (e *UnknownParameterReferenceError) Details() map[string]string {
	return map[string]string{"scope": e.Scope, "parameter": e.Parameter, "reference": e.Reference}
}

// BoundsViolationError reports a resolved value outside [Min, Max].
type BoundsViolationError struct {
	Scope     string
	Parameter string
	Value     int64
	Min       *int64
	Max       *int64
}

func (e *BoundsViolationError) Error() string {
	return fmt.Sprintf("%s: parameter %s = %d outside bounds %s", e.Scope, e.Parameter, e.Value, e.bounds())
}

func (e *BoundsViolationError) bounds() string {
	lo, hi := "-inf", "+inf"
	if e.Min != nil {
		lo = strconv.FormatInt(*e.Min, 10)
	}
	if e.Max != nil {
		hi = strconv.FormatInt(*e.Max, 10)
	}
	return "[" + lo + ", " + hi + "]"
}
func (e *BoundsViolationError) Kind() ErrorKind { return KindBoundsViolation }
func (e *BoundsViolationError) Details() map[string]string {
	return map[string]string{
		"scope":     e.Scope,
		"parameter": e.Parameter,
		"value":     strconv.FormatInt(e.Value, 10),
		"bounds":    e.bounds(),
	}
}

// UnknownInterfaceTypeError reports a type reference absent from the catalog.
type UnknownInterfaceTypeError struct {
	Bundle string
	Type   string
}

func (e *UnknownInterfaceTypeError) Error() string {
	if e.Bundle == "" {
		return fmt.Sprintf("unknown interface type %q", e.Type)
	}
	return fmt.Sprintf("bundle %s: unknown interface type %q", e.Bundle, e.Type)
}
func (e *UnknownInterfaceTypeError) Kind() ErrorKind { return KindUnknownInterfaceType }
func (e *UnknownInterfaceTypeError) Details() map[string]string {
	return map[string]string{"bundle": e.Bundle, "type": e.Type}
}

// WidthEvaluationError reports a width that could not be evaluated to a
// positive integer.
type WidthEvaluationError struct {
	Bundle string
	Type   string
	Signal string
	Expr   string
	Reason string

	// Cause is the underlying resolver error, if any.
	Cause error
}

func (e *WidthEvaluationError) Error() string {
	var b strings.Builder
	if e.Bundle != "" {
		b.WriteString("bundle " + e.Bundle + ": ")
	}
	if e.Type != "" {
		b.WriteString("type " + e.Type + ": ")
	}
	fmt.Fprintf(&b, "width of %s (%q): %s", e.Signal, e.Expr, e.Reason)
	return b.String()
}
func (e *WidthEvaluationError) Unwrap() error   { return e.Cause }
func (e *WidthEvaluationError) Kind() ErrorKind { return KindWidthEvaluation }
func (e *WidthEvaluationError) Details() map[string]string {
	return map[string]string{"bundle": e.Bundle, "type": e.Type, "signal": e.Signal, "expr": e.Expr}
}

// DuplicateWireNameError reports a bundle name declared twice in one scope.
type DuplicateWireNameError struct {
	Name string
	// Kind of the second declaration.
	BundleKind BundleKind
	// Previous is the kind of the first declaration.
	Previous BundleKind
}

func (e *DuplicateWireNameError) Error() string {
	return fmt.Sprintf("duplicate bundle name %q (%s already declared as %s)", e.Name, e.BundleKind, e.Previous)
}
func (e *DuplicateWireNameError) Kind() ErrorKind { return KindDuplicateWireName }
func (e *DuplicateWireNameError) Details() map[string]string {
	return map[string]string{"bundle": e.Name, "kind": string(e.BundleKind), "previous": string(e.Previous)}
}

// ConnectionShapeMismatchError reports a child port whose expanded shape
// differs from the bound parent bundle.
type ConnectionShapeMismatchError struct {
	Instance string
	Port     string
	Bundle   string

	// Position is the first index at which the shapes differ. When one
	// shape is a prefix of the other it is the shorter length.
	Position int
	Expected []int
	Actual   []int
	Reason   string
}

func (e *ConnectionShapeMismatchError) Error() string {
	msg := fmt.Sprintf("instance %s: port %s <- %s: shape mismatch at position %d: expected widths %v, got %v",
		e.Instance, e.Port, e.Bundle, e.Position, e.Expected, e.Actual)
	if e.Reason != "" {
		msg += " (" + e.Reason + ")"
	}
	return msg
}
func (e *ConnectionShapeMismatchError) Kind() ErrorKind { return KindConnectionShapeMismatch }
func (e *ConnectionShapeMismatchError) Details() map[string]string {
	return map[string]string{
		"instance": e.Instance,
		"port":     e.Port,
		"bundle":   e.Bundle,
		"position": strconv.Itoa(e.Position),
		"expected": fmt.Sprint(e.Expected),
		"actual":   fmt.Sprint(e.Actual),
	}
}

// UnboundPortError reports a required child port missing from the
// connection map.
type UnboundPortError struct {
	Instance string
	Core     string
	Port     string
}

func (e *UnboundPortError) Error() string {
	return fmt.Sprintf("instance %s (%s): port %s is not connected", e.Instance, e.Core, e.Port)
}
func (e *UnboundPortError) Kind() ErrorKind { return KindUnboundPort }
func (e *UnboundPortError) Details() map[string]string {
	return map[string]string{"instance": e.Instance, "core": e.Core, "port": e.Port}
}

// UnknownChildModuleError reports a subblock whose core cannot be resolved.
type UnknownChildModuleError struct {
	Instance string
	Core     string
}

func (e *UnknownChildModuleError) Error() string {
	return fmt.Sprintf("instance %s: unknown module %q", e.Instance, e.Core)
}
func (e *UnknownChildModuleError) Kind() ErrorKind { return KindUnknownChildModule }
func (e *UnknownChildModuleError) Details() map[string]string {
	return map[string]string{"instance": e.Instance, "core": e.Core}
}

// UnknownPortError reports a connection naming a port the child lacks.
type UnknownPortError struct {
	Instance string
	Core     string
	Port     string
}

func (e *UnknownPortError) Error() string {
	return fmt.Sprintf("instance %s: module %s has no port %q", e.Instance, e.Core, e.Port)
}
func (e *UnknownPortError) Kind() ErrorKind { return KindUnknownPort }
func (e *UnknownPortError) Details() map[string]string {
	return map[string]string{"instance": e.Instance, "core": e.Core, "port": e.Port}
}

// UnknownConnectionTargetError reports a connection to a parent bundle
// that is neither a port nor a wire of the parent.
type UnknownConnectionTargetError struct {
	Instance string
	Port     string
	Bundle   string
}

func (e *UnknownConnectionTargetError) Error() string {
	return fmt.Sprintf("instance %s: port %s connected to undeclared bundle %q", e.Instance, e.Port, e.Bundle)
}
func (e *UnknownConnectionTargetError) Kind() ErrorKind { return KindUnknownConnectionTarget }
func (e *UnknownConnectionTargetError) Details() map[string]string {
	return map[string]string{"instance": e.Instance, "port": e.Port, "bundle": e.Bundle}
}

// DuplicateInstanceError reports two subblocks with the same instance name.
type DuplicateInstanceError struct {
	Instance string
}

func (e *DuplicateInstanceError) Error() string {
	return fmt.Sprintf("duplicate subblock instance %q", e.Instance)
}
func (e *DuplicateInstanceError) Kind() ErrorKind { return KindDuplicateInstance }
func (e *DuplicateInstanceError) Details() map[string]string {
	return map[string]string{"instance": e.Instance}
}

// DuplicateParameterError reports a parameter declared twice.
type DuplicateParameterError struct {
	Scope     string
	Parameter string
}

func (e *DuplicateParameterError) Error() string {
	return fmt.Sprintf("%s: duplicate parameter %q", e.Scope, e.Parameter)
}
func (e *DuplicateParameterError) Kind() ErrorKind { return KindDuplicateParameter }
func (e *DuplicateParameterError) Details() map[string]string {
	return map[string]string{"scope": e.Scope, "parameter": e.Parameter}
}

// InvalidExpressionError reports a parameter expression that does not
// parse or cannot be evaluated.
type InvalidExpressionError struct {
	Scope     string
	Parameter string
	Expr      string
	Cause     error
}

func (e *InvalidExpressionError) Error() string {
	return fmt.Sprintf("%s: parameter %s: %v", e.Scope, e.Parameter, e.Cause)
}
func (e *InvalidExpressionError) Unwrap() error   { return e.Cause }
func (e *InvalidExpressionError) Kind() ErrorKind { return KindInvalidExpression }
func (e *InvalidExpressionError) Details() map[string]string {
	return map[string]string{"scope": e.Scope, "parameter": e.Parameter, "expr": e.Expr}
}

// UnknownInstanceError reports a connection patch for a subblock that was
// never declared.
type UnknownInstanceError struct {
	Instance string
}

func (e *UnknownInstanceError) Error() string {
	return fmt.Sprintf("connection patch for undeclared subblock %q", e.Instance)
}
func (e *UnknownInstanceError) Kind() ErrorKind { return KindUnknownInstance }
func (e *UnknownInstanceError) Details() map[string]string {
	return map[string]string{"instance": e.Instance}
}

// ContractViolationError reports an assembled IR that fails the IR schema.
type ContractViolationError struct {
	Message string
	// Report holds the formatted schema errors.
	Report string
	Cause  error
}

func (e *ContractViolationError) Error() string {
	return "IR contract violation: " + e.Message
}
func (e *ContractViolationError) Unwrap() error   { return e.Cause }
func (e *ContractViolationError) Kind() ErrorKind { return KindContractViolation }
func (e *ContractViolationError) Details() map[string]string {
	return map[string]string{"report": e.Report}
}

// InvalidTypeOptionError reports an option letter the interface type does
// not define.
type InvalidTypeOptionError struct {
	Bundle string
	Type   string
	Option string
}

func (e *InvalidTypeOptionError) Error() string {
	msg := fmt.Sprintf("type %s: unknown option %q", e.Type, e.Option)
	if e.Bundle != "" {
		msg = "bundle " + e.Bundle + ": " + msg
	}
	return msg
}
func (e *InvalidTypeOptionError) Kind() ErrorKind { return KindInvalidTypeOption }
func (e *InvalidTypeOptionError) Details() map[string]string {
	return map[string]string{"bundle": e.Bundle, "type": e.Type, "option": e.Option}
}

// ConflictingConnectionError reports a child port connected to two
// different parent bundles.
type ConflictingConnectionError struct {
	Instance string
	Port     string
	First    string
	Second   string
}

func (e *ConflictingConnectionError) Error() string {
	return fmt.Sprintf("instance %s: port %s connected to both %s and %s", e.Instance, e.Port, e.First, e.Second)
}
func (e *ConflictingConnectionError) Kind() ErrorKind { return KindConflictingConnection }
func (e *ConflictingConnectionError) Details() map[string]string {
	return map[string]string{"instance": e.Instance, "port": e.Port, "first": e.First, "second": e.Second}
}

// ConflictingDefaultError reports two selected fragments overriding the
// default of the same parameter with different expressions.
type ConflictingDefaultError struct {
	Scope     string
	Parameter string
	First     string
	Second    string
}

func (e *ConflictingDefaultError) Error() string {
	return fmt.Sprintf("%s: parameter %s: default overridden with both %q and %q", e.Scope, e.Parameter, e.First, e.Second)
}
func (e *ConflictingDefaultError) Kind() ErrorKind { return KindConflictingDefault }
func (e *ConflictingDefaultError) Details() map[string]string {
	return map[string]string{"scope": e.Scope, "parameter": e.Parameter, "first": e.First, "second": e.Second}
}
