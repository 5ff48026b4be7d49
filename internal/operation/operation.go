package op

import (
	"errors"
	"math"
)

var (
	ErrZeroDivision = errors.New("zero division")
	ErrZeroModulo   = errors.New("zero modulo")
)

type Operand interface {
	Symbol() string
	Name() string
}

type MathOperand interface {
	Operand
	math()
}

type BinaryOperand interface {
	MathOperand
	Exec(a, b float64) (float64, error)
}

type UnaryOperand interface {
	MathOperand
	Apply(a float64) float64
}

type PrefixOperand interface {
	UnaryOperand
	prefix()
}

type OrderOperand interface {
	Operand
	IsStart() bool
}

// RelationOperand splits an equation into its two sides.
type RelationOperand interface {
	Operand
	relation()
}

// ADD
type add struct{}

func (a add) math()          {}
func (a add) Symbol() string { return "+" }
func (a add) Name() string   { return "add" }

func (ad add) Exec(a, b float64) (float64, error) { return a + b, nil }

// SUB
type sub struct{}

func (s sub) math()          {}
func (s sub) Symbol() string { return "-" }
func (s sub) Name() string   { return "sub" }

func (s sub) Exec(a, b float64) (float64, error) { return a - b, nil }

// MULT
type mult struct{}

func (m mult) math()          {}
func (m mult) Symbol() string { return "*" }
func (m mult) Name() string   { return "mult" }

func (m mult) Exec(a, b float64) (float64, error) { return a * b, nil }

// DIV
type div struct{}

func (d div) math()          {}
func (d div) Symbol() string { return "/" }
func (d div) Name() string   { return "div" }

func (d div) Exec(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrZeroDivision
	}
	return a / b, nil
}

// MOD
type mod struct{}

func (m mod) math()          {}
func (m mod) Symbol() string { return "%" }
func (m mod) Name() string   { return "mod" }

func (m mod) Exec(a, b float64) (float64, error) {
	if b == 0 {
		return 0, ErrZeroModulo
	}
	return math.Mod(a, b), nil
}

// POW
type pow struct{}

func (p pow) math()          {}
func (p pow) Symbol() string { return "^" }
func (p pow) Name() string   { return "pow" }

func (p pow) Exec(a, b float64) (float64, error) { return math.Pow(a, b), nil }

// NEG
type neg struct{}

func (n neg) math()          {}
func (n neg) prefix()        {}
func (n neg) Symbol() string { return "-" }
func (n neg) Name() string   { return "neg" }

func (n neg) Apply(a float64) float64 { return -a }

// EQUALS
type equals struct{}

func (e equals) relation()      {}
func (e equals) Symbol() string { return "=" }
func (e equals) Name() string   { return "equals" }

// OPEN PAREN
type openParen struct{}

func (p openParen) Symbol() string { return "(" }
func (p openParen) Name() string   { return "open paren" }
func (p openParen) IsStart() bool  { return true }

// CLOSE PAREN
type closeParen struct{}

func (p closeParen) Symbol() string { return ")" }
func (p closeParen) Name() string   { return "close paren" }
func (p closeParen) IsStart() bool  { return false }
