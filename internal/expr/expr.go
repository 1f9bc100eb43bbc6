// Package expr implements the small integer expression language used for
// parameter values and signal widths (e.g. "AXI_ADDR_W - 2", "DATA_W / 8").
//
// Source text is parsed with the CUE expression parser and lowered into a
// minimal AST so that references can be inspected before evaluation.
package expr

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"cuelang.org/go/cue/ast"
	"cuelang.org/go/cue/parser"
	"cuelang.org/go/cue/token"
)

// Expr is a parsed integer expression.
type Expr interface {
	// String renders the expression in canonical source form.
	String() string

	eval(s Scope) (int64, error)
}

// Scope resolves names to integer values.
type Scope interface {
	Lookup(name string) (int64, bool)
}

// MapScope is a Scope backed by a map.
type MapScope map[string]int64

// Lookup implements Scope.
func (m MapScope) Lookup(name string) (int64, bool) {
	v, ok := m[name]
	return v, ok
}

// Op is a unary or binary operator.
type Op string

// Supported operators. Division truncates toward zero; div(x, y) and
// mod(x, y) are available as functions.
const (
	Add Op = "+"
	Sub Op = "-"
	Mul Op = "*"
	Div Op = "/"
)

// Num is an integer literal.
type Num struct {
	Value int64
}

// Ref is a reference to a named value in the evaluation scope.
type Ref struct {
	Name string
}

// Unary is a prefix operation.
type Unary struct {
	Op Op
	X  Expr
}

// Binary is an infix operation.
type Binary struct {
	Op   Op
	X, Y Expr
}

// Call is a builtin function call such as clog2(N).
type Call struct {
	Func string
	Args []Expr
}

func (n *Num) String() string { return strconv.FormatInt(n.Value, 10) }
func (r *Ref) String() string { return r.Name }
func (u *Unary) String() string {
	return string(u.Op) + operand(u.X)
}
func (b *Binary) String() string {
	return operand(b.X) + " " + string(b.Op) + " " + operand(b.Y)
}
func (c *Call) String() string {
	args := make([]string, len(c.Args))
	for i, a := range c.Args {
		args[i] = a.String()
	}
	return c.Func + "(" + strings.Join(args, ", ") + ")"
}

func operand(e Expr) string {
	if _, ok := e.(*Binary); ok {
		return "(" + e.String() + ")"
	}
	return e.String()
}

// SyntaxError reports an expression that could not be parsed.
type SyntaxError struct {
	Source string
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("invalid expression %q: %s", e.Source, e.Msg)
}

// UnknownRefError reports a reference to a name absent from the scope.
type UnknownRefError struct {
	Name string
}

func (e *UnknownRefError) Error() string {
	return fmt.Sprintf("unknown reference %q", e.Name)
}

// EvalError reports an evaluation failure other than a missing reference.
type EvalError struct {
	Expr string
	Msg  string
}

func (e *EvalError) Error() string {
	return fmt.Sprintf("evaluating %q: %s", e.Expr, e.Msg)
}

// leadingZeros matches zero-padded decimal literals. Widths are decimal as
// in Verilog, so "010" is ten; the CUE scanner would reject it.
var leadingZeros = regexp.MustCompile(`\b0+(\d)`)

// Parse parses src into an Expr. Decimal literals may be zero-padded;
// 0x, 0o and 0b prefixes select other bases.
func Parse(src string) (Expr, error) {
	s := strings.TrimSpace(src)
	if s == "" {
		return nil, &SyntaxError{Source: src, Msg: "empty expression"}
	}
	// Plain integers are by far the most common case.
	if v, err := strconv.ParseInt(s, 10, 64); err == nil {
		return &Num{Value: v}, nil
	}

	node, err := parser.ParseExpr("expr", leadingZeros.ReplaceAllString(s, "$1"))
	if err != nil {
		return nil, &SyntaxError{Source: src, Msg: err.Error()}
	}
	e, err := lower(node)
	if err != nil {
		return nil, &SyntaxError{Source: src, Msg: err.Error()}
	}
	return e, nil
}

// MustParse is like Parse but panics on error. Intended for static tables.
func MustParse(src string) Expr {
	e, err := Parse(src)
	if err != nil {
		panic(err)
	}
	return e
}

// Eval evaluates e in scope s.
func Eval(e Expr, s Scope) (int64, error) {
	if s == nil {
		s = MapScope(nil)
	}
	return e.eval(s)
}

// Evaluate parses and evaluates src in one step.
func Evaluate(src string, s Scope) (int64, error) {
	e, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return Eval(e, s)
}

// Refs returns the distinct names referenced by e, in source order.
func Refs(e Expr) []string {
	var out []string
	seen := map[string]bool{}
	var walk func(Expr)
	walk = func(e Expr) {
		switch n := e.(type) {
		case *Ref:
			if !seen[n.Name] {
				seen[n.Name] = true
				out = append(out, n.Name)
			}
		case *Unary:
			walk(n.X)
		case *Binary:
			walk(n.X)
			walk(n.Y)
		case *Call:
			for _, a := range n.Args {
				walk(a)
			}
		}
	}
	walk(e)
	return out
}

// lower converts a CUE AST expression into an Expr.
func lower(n ast.Expr) (Expr, error) {
	switch n := n.(type) {
	case *ast.BasicLit:
		if n.Kind != token.INT {
			return nil, fmt.Errorf("unsupported literal %s", n.Value)
		}
		v, err := strconv.ParseInt(n.Value, 0, 64)
		if err != nil {
			return nil, fmt.Errorf("integer literal %s: %w", n.Value, err)
		}
		return &Num{Value: v}, nil

	case *ast.Ident:
		return &Ref{Name: n.Name}, nil

	case *ast.ParenExpr:
		return lower(n.X)

	case *ast.UnaryExpr:
		x, err := lower(n.X)
		if err != nil {
			return nil, err
		}
		switch n.Op {
		case token.ADD:
			return x, nil
		case token.SUB:
			if num, ok := x.(*Num); ok {
				return &Num{Value: -num.Value}, nil
			}
			return &Unary{Op: Sub, X: x}, nil
		}
		return nil, fmt.Errorf("unsupported unary operator %s", n.Op)

	case *ast.BinaryExpr:
		op, ok := binaryOps[n.Op]
		if !ok {
			return nil, fmt.Errorf("unsupported operator %s", n.Op)
		}
		x, err := lower(n.X)
		if err != nil {
			return nil, err
		}
		y, err := lower(n.Y)
		if err != nil {
			return nil, err
		}
		return &Binary{Op: op, X: x, Y: y}, nil

	case *ast.CallExpr:
		fn, ok := n.Fun.(*ast.Ident)
		if !ok {
			return nil, fmt.Errorf("unsupported call target")
		}
		b, ok := builtins[fn.Name]
		if !ok {
			return nil, fmt.Errorf("unknown function %s", fn.Name)
		}
		if len(n.Args) < b.minArgs || (b.maxArgs >= 0 && len(n.Args) > b.maxArgs) {
			return nil, fmt.Errorf("wrong number of arguments to %s", fn.Name)
		}
		args := make([]Expr, len(n.Args))
		for i, a := range n.Args {
			x, err := lower(a)
			if err != nil {
				return nil, err
			}
			args[i] = x
		}
		return &Call{Func: fn.Name, Args: args}, nil
	}
	return nil, fmt.Errorf("unsupported expression %T", n)
}

var binaryOps = map[token.Token]Op{
	token.ADD: Add,
	token.SUB: Sub,
	token.MUL: Mul,
	token.QUO: Div,
}
