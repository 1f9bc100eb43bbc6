package expr

import (
	"math"
	"math/bits"
)

type builtin struct {
	minArgs int
	maxArgs int // -1 for variadic
	fn      func(e *Call, args []int64) (int64, error)
}

var builtins map[string]builtin

func init() {
	builtins = map[string]builtin{
		"clog2": {minArgs: 1, maxArgs: 1, fn: clog2},
		"div": {minArgs: 2, maxArgs: 2, fn: func(e *Call, a []int64) (int64, error) {
			if a[1] == 0 {
				return 0, &EvalError{Expr: e.String(), Msg: "division by zero"}
			}
			return checked(e, quo)(a[0], a[1])
		}},
		"mod": {minArgs: 2, maxArgs: 2, fn: func(e *Call, a []int64) (int64, error) {
			if a[1] == 0 {
				return 0, &EvalError{Expr: e.String(), Msg: "division by zero"}
			}
			return a[0] % a[1], nil
		}},
		"abs": {minArgs: 1, maxArgs: 1, fn: func(e *Call, a []int64) (int64, error) {
			if a[0] < 0 {
				return checked(e, sub)(0, a[0])
			}
			return a[0], nil
		}},
		"max": {minArgs: 1, maxArgs: -1, fn: func(_ *Call, a []int64) (int64, error) {
			m := a[0]
			for _, v := range a[1:] {
				if v > m {
					m = v
				}
			}
			return m, nil
		}},
		"min": {minArgs: 1, maxArgs: -1, fn: func(_ *Call, a []int64) (int64, error) {
			m := a[0]
			for _, v := range a[1:] {
				if v < m {
					m = v
				}
			}
			return m, nil
		}},
	}
}

// clog2 is the Verilog $clog2: the number of bits needed to address n items.
func clog2(e *Call, a []int64) (int64, error) {
	n := a[0]
	if n < 0 {
		return 0, &EvalError{Expr: e.String(), Msg: "clog2 of a negative value"}
	}
	if n <= 1 {
		return 0, nil
	}
	return int64(bits.Len64(uint64(n - 1))), nil
}

func (n *Num) eval(Scope) (int64, error) {
	return n.Value, nil
}

func (r *Ref) eval(s Scope) (int64, error) {
	v, ok := s.Lookup(r.Name)
	if !ok {
		return 0, &UnknownRefError{Name: r.Name}
	}
	return v, nil
}

func (u *Unary) eval(s Scope) (int64, error) {
	x, err := u.X.eval(s)
	if err != nil {
		return 0, err
	}
	if u.Op == Sub {
		return checked(u, sub)(0, x)
	}
	return x, nil
}

func (b *Binary) eval(s Scope) (int64, error) {
	x, err := b.X.eval(s)
	if err != nil {
		return 0, err
	}
	y, err := b.Y.eval(s)
	if err != nil {
		return 0, err
	}
	switch b.Op {
	case Add:
		return checked(b, add)(x, y)
	case Sub:
		return checked(b, sub)(x, y)
	case Mul:
		return checked(b, mul)(x, y)
	case Div:
		if y == 0 {
			return 0, &EvalError{Expr: b.String(), Msg: "division by zero"}
		}
		return checked(b, quo)(x, y)
	}
	return 0, &EvalError{Expr: b.String(), Msg: "unknown operator " + string(b.Op)}
}

func (c *Call) eval(s Scope) (int64, error) {
	b, ok := builtins[c.Func]
	if !ok {
		return 0, &EvalError{Expr: c.String(), Msg: "unknown function"}
	}
	args := make([]int64, len(c.Args))
	for i, a := range c.Args {
		v, err := a.eval(s)
		if err != nil {
			return 0, err
		}
		args[i] = v
	}
	return b.fn(c, args)
}

// The arithmetic helpers report false when the result does not fit in an
// int64.

func add(x, y int64) (int64, bool) {
	s := x + y
	return s, (y >= 0) == (s >= x)
}

func sub(x, y int64) (int64, bool) {
	d := x - y
	return d, (y >= 0) == (d <= x)
}

func mul(x, y int64) (int64, bool) {
	if x == 0 || y == 0 {
		return 0, true
	}
	if (x == -1 && y == math.MinInt64) || (y == -1 && x == math.MinInt64) {
		return 0, false
	}
	p := x * y
	return p, p/y == x
}

func quo(x, y int64) (int64, bool) {
	if x == math.MinInt64 && y == -1 {
		return 0, false
	}
	return x / y, true
}

// checked adapts an arithmetic helper into an evaluation step that fails
// with an EvalError on overflow.
func checked(e Expr, op func(x, y int64) (int64, bool)) func(x, y int64) (int64, error) {
	return func(x, y int64) (int64, error) {
		v, ok := op(x, y)
		if !ok {
			return 0, &EvalError{Expr: e.String(), Msg: "integer overflow"}
		}
		return v, nil
	}
}
