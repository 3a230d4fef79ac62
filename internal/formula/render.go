package formula

import (
	"strconv"
	"strings"
)

// Render turns a chain into an expression string that evaluates to its target
// under standard operator precedence.
//
// Parentheses wrap the sub-expression to the right of operator i only when
// dropping them would regroup it: after a '-' or '/', or after a '*' when the
// sub-expression is additive. A two-operand chain renders as "a OP b".
func Render(c Chain) string {
	n := len(c.Operators)
	if n == 0 {
		if len(c.Operands) == 0 {
			return ""
		}
		return strconv.Itoa(c.Operands[0])
	}

	expr := strconv.Itoa(c.Operands[n])
	for i := n - 1; i >= 0; i-- {
		op := c.Operators[i]
		sub := expr
		if i < n-1 && needsParens(op, c.Operators[i+1]) {
			sub = "(" + sub + ")"
		}
		var b strings.Builder
		b.Grow(len(sub) + 8)
		b.WriteString(strconv.Itoa(c.Operands[i]))
		b.WriteByte(' ')
		b.WriteString(op.Symbol())
		b.WriteByte(' ')
		b.WriteString(sub)
		expr = b.String()
	}
	return expr
}

// needsParens reports whether a right operand whose top operator is inner must
// be parenthesized after outer.
func needsParens(outer, inner Operator) bool {
	if outer == Minus || outer == Divide {
		return true
	}
	return outer.isMultiplicative() && inner.isAdditive()
}
