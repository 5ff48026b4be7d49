package parser

import (
	"errors"
	"fmt"
)

var (
	ErrUnexpectedCharacter     = errors.New("unexpected character")
	ErrParseNumber             = errors.New("number doesn't parse")
	ErrMissingEquationOperator = errors.New("missing '=' between the two sides")
	ErrUnexpectedToken         = errors.New("unexpected token")
	ErrUnexpectedEndOfInput    = errors.New("unexpected end of input")
	ErrMissingParenthesis      = errors.New("paren doesn't closed")
)

// SyntaxError locates a tokenize or parse failure in the input.
type SyntaxError struct {
	Pos  int
	Text string
	Err  error
}

func (e *SyntaxError) Error() string {
	if e.Text == "" {
		return fmt.Sprintf("at position %d: %s", e.Pos, e.Err)
	}
	return fmt.Sprintf("at position %d: %s '%s'", e.Pos, e.Err, e.Text)
}

func (e *SyntaxError) Unwrap() error {
	return e.Err
}

func syntaxError(pos int, text string, err error) *SyntaxError {
	return &SyntaxError{Pos: pos, Text: text, Err: err}
}
