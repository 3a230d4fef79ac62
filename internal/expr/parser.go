package expr

import (
	"fmt"
	"strconv"
)

// maxDepth bounds nesting so hostile input cannot exhaust the stack.
const maxDepth = 256

type parser struct {
	toks  []token
	i     int
	depth int
}

// Parse builds the syntax tree of src.
//
//	expr    := term (('+'|'-') term)*
//	term    := unary (('*'|'/') unary)*
//	unary   := ('-'|'+') unary | power
//	power   := postfix (('^'|'**') unary)?
//	postfix := primary ('(' args ')' | '.' name)*
//	primary := number | name | '(' expr ')'
func Parse(src string) (Node, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, err
	}
	p := &parser{toks: toks}
	if p.peek().kind == tokEOF {
		return nil, &SyntaxError{Pos: 0, Msg: "empty expression"}
	}
	n, err := p.expr()
	if err != nil {
		return nil, err
	}
	if t := p.peek(); t.kind != tokEOF {
		return nil, p.unexpected(t)
	}
	return n, nil
}

func (p *parser) peek() token { return p.toks[p.i] }

func (p *parser) next() token {
	t := p.toks[p.i]
	if t.kind != tokEOF {
		p.i++
	}
	return t
}

func (p *parser) unexpected(t token) error {
	if t.kind == tokEOF {
		return &SyntaxError{Pos: t.pos, Msg: "unexpected end of input"}
	}
	return &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("unexpected %s %q", t.kind, t.text)}
}

func (p *parser) enter() error {
	p.depth++
	if p.depth > maxDepth {
		return &SyntaxError{Pos: p.peek().pos, Msg: "expression nested too deeply"}
	}
	return nil
}

func (p *parser) leave() { p.depth-- }

func (p *parser) expr() (Node, error) {
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	left, err := p.term()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		var op BinaryOp
		switch t.kind {
		case tokPlus:
			op = OpAdd
		case tokMinus:
			op = OpSub
		default:
			return left, nil
		}
		p.next()
		right, err := p.term()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Offset: t.pos}
	}
}

func (p *parser) term() (Node, error) {
	left, err := p.unary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		var op BinaryOp
		switch t.kind {
		case tokStar:
			op = OpMul
		case tokSlash:
			op = OpDiv
		default:
			return left, nil
		}
		p.next()
		right, err := p.unary()
		if err != nil {
			return nil, err
		}
		left = &BinaryExpr{Op: op, Left: left, Right: right, Offset: t.pos}
	}
}

func (p *parser) unary() (Node, error) {
	t := p.peek()
	if t.kind != tokMinus && t.kind != tokPlus {
		return p.power()
	}
	if err := p.enter(); err != nil {
		return nil, err
	}
	defer p.leave()

	p.next()
	operand, err := p.unary()
	if err != nil {
		return nil, err
	}
	op := OpPos
	if t.kind == tokMinus {
		op = OpNeg
	}
	return &UnaryExpr{Op: op, Operand: operand, Offset: t.pos}, nil
}

// power is right-associative: 2^3^2 is 2^(3^2).
func (p *parser) power() (Node, error) {
	base, err := p.postfix()
	if err != nil {
		return nil, err
	}
	t := p.peek()
	if t.kind != tokCaret && t.kind != tokStarStar {
		return base, nil
	}
	p.next()
	exp, err := p.unary()
	if err != nil {
		return nil, err
	}
	return &BinaryExpr{Op: OpPow, Left: base, Right: exp, Offset: t.pos}, nil
}

func (p *parser) postfix() (Node, error) {
	n, err := p.primary()
	if err != nil {
		return nil, err
	}
	for {
		t := p.peek()
		switch t.kind {
		case tokLParen:
			p.next()
			args, err := p.args()
			if err != nil {
				return nil, err
			}
			n = &CallExpr{Func: n, Args: args, Offset: n.Pos()}
		case tokDot:
			p.next()
			name := p.next()
			if name.kind != tokIdent {
				return nil, p.unexpected(name)
			}
			n = &AttrExpr{Target: n, Attr: name.text, Offset: n.Pos()}
		default:
			return n, nil
		}
	}
}

func (p *parser) args() ([]Node, error) {
	var args []Node
	if p.peek().kind == tokRParen {
		p.next()
		return args, nil
	}
	for {
		a, err := p.expr()
		if err != nil {
			return nil, err
		}
		args = append(args, a)
		switch t := p.next(); t.kind {
		case tokComma:
		case tokRParen:
			return args, nil
		default:
			return nil, p.unexpected(t)
		}
	}
}

func (p *parser) primary() (Node, error) {
	t := p.next()
	switch t.kind {
	case tokNumber:
		v, err := strconv.ParseFloat(t.text, 64)
		if err != nil {
			return nil, &SyntaxError{Pos: t.pos, Msg: fmt.Sprintf("invalid number %q", t.text)}
		}
		return &NumberLit{Value: v, Text: t.text, Offset: t.pos}, nil
	case tokIdent:
		return &NameRef{Name: t.text, Offset: t.pos}, nil
	case tokLParen:
		inner, err := p.expr()
		if err != nil {
			return nil, err
		}
		if c := p.next(); c.kind != tokRParen {
			if c.kind == tokEOF {
				return nil, &SyntaxError{Pos: c.pos, Msg: "missing ')'"}
			}
			return nil, p.unexpected(c)
		}
		return &ParenExpr{Inner: inner, Offset: t.pos}, nil
	}
	return nil, p.unexpected(t)
}
