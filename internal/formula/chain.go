package formula

import (
	"fmt"
)

// Chain is one generated problem before rendering.
//
// Operands and Operators are stored in rendering order: the problem reads
// Operands[0] Operators[0] (Operands[1] Operators[1] (... Operands[n-1])).
// The innermost sub-expression is computed first, and the last operand is the
// remainder left over once every decomposition has been applied.
type Chain struct {
	Operands  []int
	Operators []Operator
	Target    int
}

// Value folds the chain back to a single integer, innermost first. Division
// truncates, which is exact for chains produced by BuildChain.
func (c Chain) Value() (int, error) {
	if len(c.Operands) != len(c.Operators)+1 {
		return 0, fmt.Errorf("malformed chain: %d operands, %d operators", len(c.Operands), len(c.Operators))
	}
	v := c.Operands[len(c.Operands)-1]
	for i := len(c.Operators) - 1; i >= 0; i-- {
		a := c.Operands[i]
		switch c.Operators[i] {
		case Plus:
			v = a + v
		case Minus:
			v = a - v
		case Times:
			v = a * v
		case Divide:
			if v == 0 {
				return 0, fmt.Errorf("division by zero at position %d", i)
			}
			v = a / v
		default:
			return 0, fmt.Errorf("%w: %d", ErrUnknownOperator, int(c.Operators[i]))
		}
	}
	return v, nil
}

// BuildChain draws a target from [Lower, Upper] and decomposes it into
// opts.Numbers operands.
//
// The operators and limits are not validated here; see config.Validate.
// An empty operator set panics inside the random source.
func BuildChain(rng Rand, opts Options) (Chain, error) {
	lim := opts.limits()
	target := between(rng, lim.Lower, lim.Upper)

	steps := opts.Numbers - 1
	if steps < 0 {
		steps = 0
	}
	c := Chain{
		Operands:  make([]int, 0, steps+1),
		Operators: make([]Operator, 0, steps),
		Target:    target,
	}

	remaining := target
	for i := 0; i < steps; i++ {
		op := opts.Operators[rng.Intn(len(opts.Operators))]
		if op == Divide && remaining == 0 {
			op = Times
		}
		a, rest, err := Decompose(op, rng, remaining, lim, opts.Policy)
		if err != nil {
			return Chain{}, fmt.Errorf("decompose %d with %s: %w", remaining, op, err)
		}
		c.Operands = append(c.Operands, a)
		c.Operators = append(c.Operators, op)
		remaining = rest
	}
	c.Operands = append(c.Operands, remaining)
	return c, nil
}
