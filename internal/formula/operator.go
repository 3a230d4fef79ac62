// Package formula generates arithmetic practice problems whose results are
// known in advance.
//
// A problem starts from a random target value which is decomposed backward,
// one operator at a time, into a chain of operands. The chain is rendered as a
// minimally parenthesized expression string; package expr can re-evaluate that
// string independently to confirm it still reproduces the target.
package formula

import (
	"errors"
	"fmt"
	"strings"
)

// Operator is one of the four arithmetic operators a formula may use.
type Operator int

const (
	Plus Operator = iota
	Minus
	Times
	Divide
)

// ErrUnknownOperator is returned when an operator symbol cannot be parsed.
var ErrUnknownOperator = errors.New("unknown operator")

// AllOperators lists every supported operator in display order.
var AllOperators = []Operator{Plus, Minus, Times, Divide}

// Symbol returns the ASCII symbol used when rendering the operator.
func (o Operator) Symbol() string {
	switch o {
	case Plus:
		return "+"
	case Minus:
		return "-"
	case Times:
		return "*"
	case Divide:
		return "/"
	}
	return "?"
}

// Glyph returns the symbol shown to children (× and ÷ for the multiplicative operators).
func (o Operator) Glyph() string {
	switch o {
	case Times:
		return "×"
	case Divide:
		return "÷"
	}
	return o.Symbol()
}

func (o Operator) String() string { return o.Symbol() }

func (o Operator) valid() bool { return o >= Plus && o <= Divide }

func (o Operator) isAdditive() bool { return o == Plus || o == Minus }

func (o Operator) isMultiplicative() bool { return o == Times || o == Divide }

// ParseOperator converts a symbol into an Operator. Both the ASCII symbols and
// the × ÷ glyphs are accepted.
func ParseOperator(s string) (Operator, error) {
	switch strings.TrimSpace(s) {
	case "+":
		return Plus, nil
	case "-":
		return Minus, nil
	case "*", "×":
		return Times, nil
	case "/", "÷":
		return Divide, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownOperator, s)
}

// ParseOperators parses a list of symbols, dropping duplicates while keeping
// the order in which each operator was first seen.
func ParseOperators(symbols []string) ([]Operator, error) {
	seen := make(map[Operator]bool, len(symbols))
	ops := make([]Operator, 0, len(symbols))
	for _, s := range symbols {
		op, err := ParseOperator(s)
		if err != nil {
			return nil, err
		}
		if seen[op] {
			continue
		}
		seen[op] = true
		ops = append(ops, op)
	}
	return ops, nil
}

// Symbols returns the ASCII symbols of ops.
func Symbols(ops []Operator) []string {
	out := make([]string, len(ops))
	for i, op := range ops {
		out[i] = op.Symbol()
	}
	return out
}
