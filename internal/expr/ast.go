package expr

import (
	"strconv"
	"strings"
)

// Node is a node of the parsed syntax tree.
type Node interface {
	Pos() int
	String() string
	node()
}

// BinaryOp is the operator of a BinaryExpr.
type BinaryOp int

const (
	OpAdd BinaryOp = iota
	OpSub
	OpMul
	OpDiv
	OpPow
)

func (op BinaryOp) String() string {
	switch op {
	case OpAdd:
		return "+"
	case OpSub:
		return "-"
	case OpMul:
		return "*"
	case OpDiv:
		return "/"
	case OpPow:
		return "^"
	}
	return "?"
}

// UnaryOp is the operator of a UnaryExpr.
type UnaryOp int

const (
	OpNeg UnaryOp = iota
	OpPos
)

func (op UnaryOp) String() string {
	if op == OpNeg {
		return "-"
	}
	return "+"
}

// Whitelisted nodes.
type (
	NumberLit struct {
		Value  float64
		Text   string
		Offset int
	}

	BinaryExpr struct {
		Op          BinaryOp
		Left, Right Node
		Offset      int
	}

	UnaryExpr struct {
		Op      UnaryOp
		Operand Node
		Offset  int
	}

	ParenExpr struct {
		Inner  Node
		Offset int
	}
)

// Nodes that parse but never evaluate.
type (
	NameRef struct {
		Name   string
		Offset int
	}

	CallExpr struct {
		Func   Node
		Args   []Node
		Offset int
	}

	AttrExpr struct {
		Target Node
		Attr   string
		Offset int
	}
)

func (n *NumberLit) Pos() int  { return n.Offset }
func (n *BinaryExpr) Pos() int { return n.Offset }
func (n *UnaryExpr) Pos() int  { return n.Offset }
func (n *ParenExpr) Pos() int  { return n.Offset }
func (n *NameRef) Pos() int    { return n.Offset }
func (n *CallExpr) Pos() int   { return n.Offset }
func (n *AttrExpr) Pos() int   { return n.Offset }

func (*NumberLit) node()  {}
func (*BinaryExpr) node() {}
func (*UnaryExpr) node()  {}
func (*ParenExpr) node()  {}
func (*NameRef) node()    {}
func (*CallExpr) node()   {}
func (*AttrExpr) node()   {}

func (n *NumberLit) String() string {
	if n.Text != "" {
		return n.Text
	}
	return strconv.FormatFloat(n.Value, 'g', -1, 64)
}

func (n *BinaryExpr) String() string {
	return n.Left.String() + " " + n.Op.String() + " " + n.Right.String()
}

func (n *UnaryExpr) String() string { return n.Op.String() + n.Operand.String() }

func (n *ParenExpr) String() string { return "(" + n.Inner.String() + ")" }

func (n *NameRef) String() string { return n.Name }

func (n *CallExpr) String() string {
	args := make([]string, len(n.Args))
	for i, a := range n.Args {
		args[i] = a.String()
	}
	return n.Func.String() + "(" + strings.Join(args, ", ") + ")"
}

func (n *AttrExpr) String() string { return n.Target.String() + "." + n.Attr }

// kindName is the node kind reported in a DisallowedError.
func kindName(n Node) string {
	switch n.(type) {
	case *NumberLit:
		return "number"
	case *BinaryExpr:
		return "binary operation"
	case *UnaryExpr:
		return "unary operation"
	case *ParenExpr:
		return "parenthesized expression"
	case *NameRef:
		return "name"
	case *CallExpr:
		return "call"
	case *AttrExpr:
		return "attribute"
	}
	return "unknown node"
}
