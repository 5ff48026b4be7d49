package parser

import (
	"fmt"
	"strconv"

	op "github.com/XJIeI5/computor/internal/operation"
)

type TokenKind int

const (
	OperatorToken TokenKind = iota
	ParenthesisToken
	NumberToken
	IdentifierToken
)

func (k TokenKind) String() string {
	switch k {
	case OperatorToken:
		return "operator"
	case ParenthesisToken:
		return "parenthesis"
	case NumberToken:
		return "number"
	case IdentifierToken:
		return "identifier"
	default:
		return "unknown"
	}
}

// Token is one lexeme. Symbol is set for operators and parentheses, Number
// for numbers and Name for identifiers. Pos is the rune offset in the input.
type Token struct {
	Kind   TokenKind
	Symbol rune
	Number float64
	Name   string
	Pos    int
}

func (t Token) Is(kind TokenKind, symbol rune) bool {
	return t.Kind == kind && t.Symbol == symbol
}

// IsRelation reports whether t splits an equation into its two sides.
func (t Token) IsRelation() bool {
	if t.Kind != OperatorToken {
		return false
	}
	operand, ok := op.Lookup(string(t.Symbol))
	if !ok {
		return false
	}
	_, ok = operand.(op.RelationOperand)
	return ok
}

func (t Token) String() string {
	switch t.Kind {
	case NumberToken:
		return strconv.FormatFloat(t.Number, 'f', -1, 64)
	case IdentifierToken:
		return t.Name
	default:
		return string(t.Symbol)
	}
}

// GoString is used by %#v in test failure output.
func (t Token) GoString() string {
	return fmt.Sprintf("%s(%s)@%d", t.Kind, t, t.Pos)
}
