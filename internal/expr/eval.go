package expr

import (
	"math"
)

// Evaluate parses src and evaluates it.
func Evaluate(src string) (float64, error) {
	n, err := Parse(src)
	if err != nil {
		return 0, err
	}
	return Eval(n)
}

// Eval evaluates a syntax tree. Only numbers, the binary and unary operators
// and parentheses are evaluated; any other node fails with *DisallowedError.
// Division is true division.
func Eval(n Node) (float64, error) {
	switch n := n.(type) {
	case *NumberLit:
		return n.Value, nil
	case *ParenExpr:
		return Eval(n.Inner)
	case *UnaryExpr:
		v, err := Eval(n.Operand)
		if err != nil {
			return 0, err
		}
		if n.Op == OpNeg {
			return -v, nil
		}
		return v, nil
	case *BinaryExpr:
		l, err := Eval(n.Left)
		if err != nil {
			return 0, err
		}
		r, err := Eval(n.Right)
		if err != nil {
			return 0, err
		}
		return apply(n.Op, l, r)
	}
	return 0, &DisallowedError{Node: n}
}

func apply(op BinaryOp, l, r float64) (float64, error) {
	var v float64
	switch op {
	case OpAdd:
		v = l + r
	case OpSub:
		v = l - r
	case OpMul:
		v = l * r
	case OpDiv:
		if r == 0 {
			return 0, ErrDivisionByZero
		}
		v = l / r
	case OpPow:
		if l == 0 && r < 0 {
			return 0, ErrDivisionByZero
		}
		v = math.Pow(l, r)
	default:
		return 0, ErrDisallowed
	}
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return 0, ErrNotFinite
	}
	return v, nil
}

// EqualsInt reports whether v is the integer n.
func EqualsInt(v float64, n int) bool {
	return math.Abs(v-float64(n)) < 1e-9
}
