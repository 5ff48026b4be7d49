// Package parser turns equation text into an expression tree.
//
// The grammar, highest rule first:
//
//	equation   := expression '=' expression
//	expression := term (('+' | '-') term)*
//	term       := factor (('*' | '/' | '%') factor)*
//	factor     := primary ('^' factor)?
//	primary    := Number | Identifier | '(' expression ')' | '-' factor
//
// The two sides of the equation are joined under a '-' node, so the
// returned tree always reads "lhs - rhs" and is solved against zero.
package parser

import (
	"github.com/XJIeI5/computor/internal/ast"
	op "github.com/XJIeI5/computor/internal/operation"
)

type parser struct {
	tokens []Token
	pos    int
	tree   *ast.Tree
}

// Parse tokenizes and parses input.
func Parse(input string, opts ...Option) (*ast.Tree, error) {
	tokens, err := Tokenize(input, opts...)
	if err != nil {
		return nil, err
	}
	return ParseTokens(tokens)
}

// ParseTokens parses an already tokenized equation.
func ParseTokens(tokens []Token) (*ast.Tree, error) {
	p := &parser{tokens: tokens, tree: ast.New()}
	root, err := p.equation()
	if err != nil {
		return nil, err
	}
	p.tree.SetRoot(root)
	return p.tree, nil
}

func (p *parser) peek() (Token, bool) {
	if p.pos >= len(p.tokens) {
		return Token{}, false
	}
	return p.tokens[p.pos], true
}

func (p *parser) next() (Token, bool) {
	tok, ok := p.peek()
	if ok {
		p.pos++
	}
	return tok, ok
}

// endPos is the position just past the last token.
func (p *parser) endPos() int {
	if len(p.tokens) == 0 {
		return 0
	}
	return p.tokens[len(p.tokens)-1].Pos + 1
}

// peekPriority reports the binary priority of the next token, or -1.
func (p *parser) peekPriority() int {
	tok, ok := p.peek()
	if !ok || tok.Kind != OperatorToken {
		return -1
	}
	return op.Priority(string(tok.Symbol))
}

func (p *parser) hasRelationAhead() bool {
	for _, tok := range p.tokens[p.pos:] {
		if tok.IsRelation() {
			return true
		}
	}
	return false
}

func (p *parser) equation() (ast.NodeID, error) {
	lhs, err := p.expression()
	if err != nil {
		return ast.NoNode, err
	}

	tok, ok := p.next()
	switch {
	case !ok:
		return ast.NoNode, syntaxError(p.endPos(), "", ErrMissingEquationOperator)
	case tok.IsRelation():
	case p.hasRelationAhead():
		return ast.NoNode, syntaxError(tok.Pos, tok.String(), ErrUnexpectedToken)
	default:
		return ast.NoNode, syntaxError(tok.Pos, tok.String(), ErrMissingEquationOperator)
	}

	rhs, err := p.expression()
	if err != nil {
		return ast.NoNode, err
	}
	if tok, ok := p.peek(); ok {
		return ast.NoNode, syntaxError(tok.Pos, tok.String(), ErrUnexpectedToken)
	}
	return p.tree.Add(ast.Operator('-'), lhs, rhs), nil
}

func (p *parser) expression() (ast.NodeID, error) {
	return p.binary(op.AdditivePriority, p.term)
}

func (p *parser) term() (ast.NodeID, error) {
	return p.binary(op.MultiplicativePriority, p.factor)
}

// binary folds a left-associative chain of operators of one priority.
func (p *parser) binary(priority int, operand func() (ast.NodeID, error)) (ast.NodeID, error) {
	node, err := operand()
	if err != nil {
		return ast.NoNode, err
	}
	for p.peekPriority() == priority {
		tok, _ := p.next()
		right, err := operand()
		if err != nil {
			return ast.NoNode, err
		}
		node = p.tree.Add(ast.Operator(tok.Symbol), node, right)
	}
	return node, nil
}

func (p *parser) factor() (ast.NodeID, error) {
	base, err := p.primary()
	if err != nil {
		return ast.NoNode, err
	}
	if p.peekPriority() != op.ExponentPriority {
		return base, nil
	}
	tok, _ := p.next()
	// right-associative: 2^3^2 is 2^(3^2)
	exponent, err := p.factor()
	if err != nil {
		return ast.NoNode, err
	}
	return p.tree.Add(ast.Operator(tok.Symbol), base, exponent), nil
}

func (p *parser) primary() (ast.NodeID, error) {
	tok, ok := p.next()
	if !ok {
		return ast.NoNode, syntaxError(p.endPos(), "", ErrUnexpectedEndOfInput)
	}

	switch tok.Kind {
	case NumberToken:
		return p.tree.AddLeaf(ast.Number(tok.Number)), nil
	case IdentifierToken:
		return p.tree.AddLeaf(ast.Identifier(tok.Name)), nil
	case ParenthesisToken:
		if tok.Symbol != '(' {
			return ast.NoNode, syntaxError(tok.Pos, tok.String(), ErrUnexpectedToken)
		}
		node, err := p.expression()
		if err != nil {
			return ast.NoNode, err
		}
		closing, ok := p.next()
		if !ok {
			return ast.NoNode, syntaxError(tok.Pos, tok.String(), ErrMissingParenthesis)
		}
		if !closing.Is(ParenthesisToken, ')') {
			return ast.NoNode, syntaxError(closing.Pos, closing.String(), ErrMissingParenthesis)
		}
		return node, nil
	default:
		if _, isPrefix := op.Prefix(string(tok.Symbol)); !isPrefix {
			return ast.NoNode, syntaxError(tok.Pos, tok.String(), ErrUnexpectedToken)
		}
		operand, err := p.factor()
		if err != nil {
			return ast.NoNode, err
		}
		return p.tree.Add(ast.Operator(tok.Symbol), operand, ast.NoNode), nil
	}
}
