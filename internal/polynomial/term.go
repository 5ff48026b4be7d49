package polynomial

import (
	"cmp"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/XJIeI5/computor/internal/ast"
)

var (
	ErrInternal                 = errors.New("internal error")
	ErrNestedSum                = errors.New("'+' or '-' can't be nested inside a term")
	ErrUnsupportedExponentShape = errors.New("exponent must be a number applied to a bare variable")
	ErrCoefficientProduct       = errors.New("two coefficients multiplied in one term")
	ErrIdentifierProduct        = errors.New("two variables multiplied in one term")
)

// Term is one monomial: ± coefficient · identifier^exponent. The
// coefficient is stored as a magnitude, the sign lives in Negative.
type Term struct {
	Negative    bool
	Coefficient Optional[float64]
	Operator    Optional[rune]
	Identifier  Optional[string]
	Exponent    Optional[float64]
}

// Magnitude is the unsigned coefficient, 1 when absent.
func (t Term) Magnitude() float64 {
	return t.Coefficient.Or(1)
}

// Value is the signed coefficient.
func (t Term) Value() float64 {
	if t.Negative {
		return -t.Magnitude()
	}
	return t.Magnitude()
}

// Degree is the effective exponent: an absent exponent means 1 on a
// variable and 0 on a constant.
func (t Term) Degree() float64 {
	if e, ok := t.Exponent.Get(); ok {
		return e
	}
	if t.Identifier.IsSet() {
		return 1
	}
	return 0
}

func (t Term) Negate() Term {
	return t.withSign(!t.Negative)
}

// withSign sets the sign. A zero coefficient stays positive so it never
// renders as -0.
func (t Term) withSign(negative bool) Term {
	t.Negative = negative && t.Magnitude() != 0
	return t
}

// Add sums two like terms. The result's sign comes from the sum.
func (t Term) Add(other Term) Term {
	sum := t.Value() + other.Value()
	return Term{
		Negative:    sum < 0,
		Coefficient: Some(math.Abs(sum)),
		Operator:    t.Operator.orElse(other.Operator),
		Identifier:  t.Identifier.orElse(other.Identifier),
		Exponent:    t.Exponent.orElse(other.Exponent),
	}
}

// Cancels reports whether t and other are the same term with opposite sign.
func (t Term) Cancels(other Term) bool {
	return t.Negative != other.Negative &&
		t.Magnitude() == other.Magnitude() &&
		t.Operator == other.Operator &&
		t.key() == other.key()
}

type termKey struct {
	exponent   float64
	identifier Optional[string]
}

func (t Term) key() termKey {
	return termKey{exponent: t.Degree(), identifier: t.Identifier}
}

// compare orders by exponent, then identifier; an absent identifier sorts low.
func (k termKey) compare(other termKey) int {
	if c := cmp.Compare(k.exponent, other.exponent); c != 0 {
		return c
	}
	a, aok := k.identifier.Get()
	b, bok := other.identifier.Get()
	switch {
	case aok == bok:
		return strings.Compare(a, b)
	case !aok:
		return -1
	default:
		return 1
	}
}

// String renders the term without its sign, e.g. "9.3 * X^2".
func (t Term) String() string {
	parts := make([]string, 0, 3)
	ident, hasIdent := t.Identifier.Get()
	if t.Coefficient.IsSet() || !hasIdent {
		parts = append(parts, formatFloat(t.Magnitude()))
		if hasIdent {
			parts = append(parts, string(t.Operator.Or('*')))
		}
	}
	if hasIdent {
		if e, ok := t.Exponent.Get(); ok {
			ident += "^" + formatFloat(e)
		}
		parts = append(parts, ident)
	}
	return strings.Join(parts, " ")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

// TermFrom extracts the term rooted at id. Sums are split one level up by
// FromTree and are rejected here.
func TermFrom(tree *ast.Tree, id ast.NodeID) (Term, error) {
	n := tree.Node(id)
	if n.Payload.Kind == ast.OperandPayload {
		return leafTerm(n.Payload.Operand), nil
	}

	switch r := n.Payload.Operator; {
	case n.IsUnary() && r == '-':
		t, err := TermFrom(tree, n.Left)
		if err != nil {
			return Term{}, err
		}
		return t.Negate(), nil
	case !n.IsBinary():
		return Term{}, fmt.Errorf("%w: operator '%c' with %d operands", ErrInternal, r, n.Arity())
	case r == '+' || r == '-':
		return Term{}, ErrNestedSum
	case r == '^':
		return powerTerm(tree, n)
	case r == '*' || r == '/' || r == '%':
		left, err := TermFrom(tree, n.Left)
		if err != nil {
			return Term{}, err
		}
		right, err := TermFrom(tree, n.Right)
		if err != nil {
			return Term{}, err
		}
		return merge(left, right, r)
	default:
		return Term{}, fmt.Errorf("%w: unknown operator '%c'", ErrInternal, r)
	}
}

func leafTerm(o ast.Operand) Term {
	if o.IsIdentifier() {
		return Term{Identifier: Some(o.Name)}
	}
	return Term{Coefficient: Some(math.Abs(o.Number))}.withSign(math.Signbit(o.Number))
}

func powerTerm(tree *ast.Tree, n ast.Node) (Term, error) {
	base, err := TermFrom(tree, n.Left)
	if err != nil {
		return Term{}, err
	}
	if !base.Identifier.IsSet() || base.Coefficient.IsSet() || base.Exponent.IsSet() || base.Negative {
		return Term{}, fmt.Errorf("%w: base is '%s'", ErrUnsupportedExponentShape, base)
	}
	exp := tree.Node(n.Right)
	if exp.Payload.Kind != ast.OperandPayload || !exp.Payload.Operand.IsNumber() {
		return Term{}, fmt.Errorf("%w: exponent is not a number literal", ErrUnsupportedExponentShape)
	}
	base.Exponent = Some(exp.Payload.Operand.Number)
	return base, nil
}

// merge combines the fields of both sides of a multiplicative operator.
// It is structural: each field may come from one side only.
func merge(left, right Term, operator rune) (Term, error) {
	if left.Coefficient.IsSet() && right.Coefficient.IsSet() {
		return Term{}, fmt.Errorf("%w: '%s %c %s'", ErrCoefficientProduct, left, operator, right)
	}
	if (left.Identifier.IsSet() && right.Identifier.IsSet()) || (left.Exponent.IsSet() && right.Exponent.IsSet()) {
		return Term{}, fmt.Errorf("%w: '%s %c %s'", ErrIdentifierProduct, left, operator, right)
	}
	merged := Term{
		Coefficient: left.Coefficient.orElse(right.Coefficient),
		Operator:    Some(operator),
		Identifier:  left.Identifier.orElse(right.Identifier),
		Exponent:    left.Exponent.orElse(right.Exponent),
	}
	return merged.withSign(left.Negative != right.Negative), nil
}
