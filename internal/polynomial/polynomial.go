// Package polynomial extracts terms from an expression tree, collects like
// terms and solves the result for degrees 0 to 2.
package polynomial

import (
	"fmt"
	"math"
	"slices"
	"strings"

	"github.com/XJIeI5/computor/internal/ast"
)

// Polynomial is a sum of terms. Order only matters for rendering.
type Polynomial []Term

// FromTree splits the tree on its top-level sums. The right side of a '-'
// is negated term by term.
func FromTree(tree *ast.Tree) (Polynomial, error) {
	if tree.Root() == ast.NoNode {
		return nil, fmt.Errorf("%w: empty tree", ErrInternal)
	}
	return fromNode(tree, tree.Root())
}

func fromNode(tree *ast.Tree, id ast.NodeID) (Polynomial, error) {
	n := tree.Node(id)
	switch {
	case n.IsBinary() && (n.Payload.IsOperator('+') || n.Payload.IsOperator('-')):
		left, err := fromNode(tree, n.Left)
		if err != nil {
			return nil, err
		}
		right, err := fromNode(tree, n.Right)
		if err != nil {
			return nil, err
		}
		if n.Payload.IsOperator('-') {
			right.negate()
		}
		return append(left, right...), nil
	case n.IsUnary() && n.Payload.IsOperator('-'):
		p, err := fromNode(tree, n.Left)
		if err != nil {
			return nil, err
		}
		p.negate()
		return p, nil
	default:
		t, err := TermFrom(tree, id)
		if err != nil {
			return nil, err
		}
		return Polynomial{t}, nil
	}
}

func (p Polynomial) negate() {
	for i := range p {
		p[i] = p[i].Negate()
	}
}

// Reduce sorts the terms by exponent then identifier and folds every run of
// like terms into one. A pair that cancels exactly is dropped; any other
// sum is kept, even when it is zero.
func (p *Polynomial) Reduce() {
	terms := *p
	slices.SortStableFunc(terms, func(a, b Term) int {
		return a.key().compare(b.key())
	})

	reduced := make(Polynomial, 0, len(terms))
	for i := 0; i < len(terms); {
		j := i + 1
		for j < len(terms) && terms[j].key() == terms[i].key() {
			j++
		}
		reduced = append(reduced, fold(terms[i:j])...)
		i = j
	}
	*p = reduced
}

func fold(run []Term) []Term {
	var (
		acc Term
		has bool
	)
	for _, t := range run {
		switch {
		case !has:
			acc, has = t, true
		case acc.Cancels(t):
			has = false
		default:
			acc = acc.Add(t)
		}
	}
	if !has {
		return nil
	}
	return []Term{acc}
}

// Degree is the highest exponent, truncated to an integer and clamped to
// [0, MaxExponent].
func (p Polynomial) Degree() int {
	degree := 0.0
	for _, t := range p {
		degree = math.Max(degree, t.Degree())
	}
	return int(math.Min(math.Trunc(degree), MaxExponent))
}

// String renders the polynomial as "4 * X^0 + 4 * X^1 - 9.3 * X^2".
func (p Polynomial) String() string {
	if len(p) == 0 {
		return "0"
	}
	var sb strings.Builder
	for i, t := range p {
		negative := t.Negative && t.Magnitude() != 0
		switch {
		case i == 0 && negative:
			sb.WriteString("-")
		case negative:
			sb.WriteString(" - ")
		case i > 0:
			sb.WriteString(" + ")
		}
		sb.WriteString(t.String())
	}
	return sb.String()
}
