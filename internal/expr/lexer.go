// Package expr parses and evaluates arithmetic expression strings.
//
// The evaluator is deliberately small: numeric literals, the binary operators
// + - * / ^ (and ** for power), unary minus and plus, and parentheses. Names,
// calls and attribute accesses are parsed so they can be rejected with a
// *DisallowedError instead of being executed. Nothing here hands a string to a
// general purpose interpreter.
package expr

import (
	"fmt"
	"strings"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokNumber
	tokIdent
	tokPlus
	tokMinus
	tokStar
	tokStarStar
	tokSlash
	tokCaret
	tokLParen
	tokRParen
	tokComma
	tokDot
)

var tokenNames = map[tokenKind]string{
	tokEOF:      "end of input",
	tokNumber:   "number",
	tokIdent:    "name",
	tokPlus:     "'+'",
	tokMinus:    "'-'",
	tokStar:     "'*'",
	tokStarStar: "'**'",
	tokSlash:    "'/'",
	tokCaret:    "'^'",
	tokLParen:   "'('",
	tokRParen:   "')'",
	tokComma:    "','",
	tokDot:      "'.'",
}

func (k tokenKind) String() string {
	if s, ok := tokenNames[k]; ok {
		return s
	}
	return fmt.Sprintf("token(%d)", int(k))
}

type token struct {
	kind tokenKind
	text string
	pos  int // byte offset in the source
}

func isDigit(c byte) bool { return c >= '0' && c <= '9' }

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// tokenize splits src into tokens, ending with a tokEOF token.
func tokenize(src string) ([]token, error) {
	var toks []token
	i := 0
	for i < len(src) {
		c := src[i]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			i++
		case isDigit(c) || (c == '.' && i+1 < len(src) && isDigit(src[i+1])):
			start := i
			end, err := scanNumber(src, i)
			if err != nil {
				return nil, err
			}
			toks = append(toks, token{kind: tokNumber, text: src[start:end], pos: start})
			i = end
		case isIdentStart(c):
			start := i
			for i < len(src) && (isIdentStart(src[i]) || isDigit(src[i])) {
				i++
			}
			toks = append(toks, token{kind: tokIdent, text: src[start:i], pos: start})
		default:
			kind, width := punct(src[i:])
			if width == 0 {
				return nil, &SyntaxError{Pos: i, Msg: fmt.Sprintf("unexpected character %q", c)}
			}
			toks = append(toks, token{kind: kind, text: src[i : i+width], pos: i})
			i += width
		}
	}
	toks = append(toks, token{kind: tokEOF, pos: len(src)})
	return toks, nil
}

func punct(s string) (tokenKind, int) {
	if strings.HasPrefix(s, "**") {
		return tokStarStar, 2
	}
	switch s[0] {
	case '+':
		return tokPlus, 1
	case '-':
		return tokMinus, 1
	case '*':
		return tokStar, 1
	case '/':
		return tokSlash, 1
	case '^':
		return tokCaret, 1
	case '(':
		return tokLParen, 1
	case ')':
		return tokRParen, 1
	case ',':
		return tokComma, 1
	case '.':
		return tokDot, 1
	}
	return tokEOF, 0
}

// scanNumber returns the end offset of the numeric literal starting at i:
// digits, an optional fraction and an optional exponent.
func scanNumber(src string, i int) (int, error) {
	for i < len(src) && isDigit(src[i]) {
		i++
	}
	if i < len(src) && src[i] == '.' {
		i++
		for i < len(src) && isDigit(src[i]) {
			i++
		}
	}
	if i < len(src) && (src[i] == 'e' || src[i] == 'E') {
		j := i + 1
		if j < len(src) && (src[j] == '+' || src[j] == '-') {
			j++
		}
		if j >= len(src) || !isDigit(src[j]) {
			return 0, &SyntaxError{Pos: i, Msg: "malformed exponent"}
		}
		for j < len(src) && isDigit(src[j]) {
			j++
		}
		i = j
	}
	if i < len(src) && isIdentStart(src[i]) {
		return 0, &SyntaxError{Pos: i, Msg: "invalid numeric literal"}
	}
	return i, nil
}
