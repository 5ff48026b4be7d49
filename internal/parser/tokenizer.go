package parser

import (
	"fmt"
	"strconv"
	"strings"
	"unicode"

	op "github.com/XJIeI5/computor/internal/operation"
)

// Case is the normalization applied to identifiers.
type Case int

const (
	PreserveCase Case = iota
	LowerCase
	UpperCase
)

func (c Case) String() string {
	switch c {
	case LowerCase:
		return "lower"
	case UpperCase:
		return "upper"
	default:
		return "preserve"
	}
}

func ParseCase(s string) (Case, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "preserve":
		return PreserveCase, nil
	case "lower":
		return LowerCase, nil
	case "upper":
		return UpperCase, nil
	default:
		return PreserveCase, fmt.Errorf("unknown identifier case '%s'", s)
	}
}

func (c Case) apply(s string) string {
	switch c {
	case LowerCase:
		return strings.ToLower(s)
	case UpperCase:
		return strings.ToUpper(s)
	default:
		return s
	}
}

type options struct {
	identifierCase Case
}

type Option func(*options)

func WithIdentifierCase(c Case) Option {
	return func(o *options) { o.identifierCase = c }
}

func newOptions(opts []Option) options {
	var o options
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

type scanner struct {
	input []rune
	pos   int
}

func (s *scanner) peek() (rune, bool) {
	if s.pos >= len(s.input) {
		return 0, false
	}
	return s.input[s.pos], true
}

func (s *scanner) next() (rune, bool) {
	r, ok := s.peek()
	if ok {
		s.pos++
	}
	return r, ok
}

// Tokenize splits input into tokens. Whitespace is skipped; any character
// outside the grammar aborts the whole call.
func Tokenize(input string, opts ...Option) ([]Token, error) {
	o := newOptions(opts)
	sc := &scanner{input: []rune(input)}
	tokens := make([]Token, 0, len(sc.input))

	for {
		start := sc.pos
		r, ok := sc.next()
		if !ok {
			break
		}
		switch {
		case unicode.IsSpace(r):
			continue
		case unicode.IsDigit(r):
			num, err := getNumber(sc, r)
			if err != nil {
				return nil, syntaxError(start, string(sc.input[start:sc.pos]), err)
			}
			tokens = append(tokens, Token{Kind: NumberToken, Number: num, Pos: start})
		case unicode.IsLetter(r):
			name := getIdentifier(sc, r)
			tokens = append(tokens, Token{Kind: IdentifierToken, Name: o.identifierCase.apply(name), Pos: start})
		default:
			operand, ok := op.Lookup(string(r))
			if !ok {
				return nil, syntaxError(start, string(r), ErrUnexpectedCharacter)
			}
			kind := OperatorToken
			if _, isOrder := operand.(op.OrderOperand); isOrder {
				kind = ParenthesisToken
			}
			tokens = append(tokens, Token{Kind: kind, Symbol: r, Pos: start})
		}
	}
	return tokens, nil
}

func getNumber(sc *scanner, first rune) (float64, error) {
	var sb strings.Builder
	sb.WriteRune(first)
	isFloat := false
	for {
		r, ok := sc.peek()
		if !ok {
			break
		}
		if r == '.' && !isFloat {
			isFloat = true
		} else if !unicode.IsDigit(r) {
			break
		}
		sb.WriteRune(r)
		sc.next()
	}
	num, err := strconv.ParseFloat(sb.String(), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrParseNumber, err)
	}
	return num, nil
}

func getIdentifier(sc *scanner, first rune) string {
	var sb strings.Builder
	sb.WriteRune(first)
	for {
		r, ok := sc.peek()
		if !ok || !(unicode.IsLetter(r) || unicode.IsDigit(r)) {
			break
		}
		sb.WriteRune(r)
		sc.next()
	}
	return sb.String()
}
