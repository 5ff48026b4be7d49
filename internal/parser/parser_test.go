package parser_test

import (
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/XJIeI5/computor/internal/parser"
)

func TestIgnoreSpace(t *testing.T) {
	compare(t, "5*X^0+4*X^1=4*X^0", "(- (+ (* 5 (^ X 0)) (* 4 (^ X 1))) (* 4 (^ X 0)))", nil)
	compare(t, "5 * X^0 + 4 * X^1 = 4 * X^0", "(- (+ (* 5 (^ X 0)) (* 4 (^ X 1))) (* 4 (^ X 0)))", nil)
}

func TestProcedureOfActions(t *testing.T) {
	compare(t, "2 + 2 * 2 = 0", "(- (+ 2 (* 2 2)) 0)", nil)
	compare(t, "200 / 5 + 1 = X", "(- (+ (/ 200 5) 1) X)", nil)
	compare(t, "1 - 2 - 3 = 0", "(- (- (- 1 2) 3) 0)", nil)
	compare(t, "7 % 2 * X = 1", "(- (* (% 7 2) X) 1)", nil)
}

func TestExponentIsRightAssociative(t *testing.T) {
	compare(t, "2^3^2 = 1", "(- (^ 2 (^ 3 2)) 1)", nil)
	compare(t, "3 * X^2 = 0", "(- (* 3 (^ X 2)) 0)", nil)
}

func TestChangeOrderByParens(t *testing.T) {
	compare(t, "(1 + 2 * 3) / 4 = X", "(- (/ (+ 1 (* 2 3)) 4) X)", nil)
	compare(t, "(1 - 2) * (3 + 4) = 0", "(- (* (- 1 2) (+ 3 4)) 0)", nil)
	compare(t, "X^(1 + 1) = 0", "(- (^ X (+ 1 1)) 0)", nil)
}

func TestUnaryMinus(t *testing.T) {
	compare(t, "-X = 1", "(- (- X) 1)", nil)
	compare(t, "-X^2 = 1", "(- (- (^ X 2)) 1)", nil)
	compare(t, "2 * -3 = X", "(- (* 2 (- 3)) X)", nil)
	compare(t, "--X = 0", "(- (- (- X)) 0)", nil)
}

func TestParenErrors(t *testing.T) {
	compare(t, "(1 * 2 + 3 = X", "", parser.ErrMissingParenthesis)
	compare(t, "X = (1 * 2 + 3", "", parser.ErrMissingParenthesis)
	compare(t, "X = (1 2)", "", parser.ErrMissingParenthesis)
	compare(t, "1 * 2 + 3) = X", "", parser.ErrUnexpectedToken)
	compare(t, ") = X", "", parser.ErrUnexpectedToken)
}

func TestEquationErrors(t *testing.T) {
	compare(t, "5 * X^2", "", parser.ErrMissingEquationOperator)
	compare(t, "5 X = 1", "", parser.ErrUnexpectedToken)
	compare(t, "5 X", "", parser.ErrMissingEquationOperator)
	compare(t, "X = 1 = 2", "", parser.ErrUnexpectedToken)
	compare(t, "X = 1 X", "", parser.ErrUnexpectedToken)
}

func TestBinaryOperandErrors(t *testing.T) {
	compare(t, "1 * * 2 = X", "", parser.ErrUnexpectedToken)
	compare(t, "+X = 1", "", parser.ErrUnexpectedToken)
	compare(t, "X = 2 +", "", parser.ErrUnexpectedEndOfInput)
	compare(t, "X =", "", parser.ErrUnexpectedEndOfInput)
	compare(t, "", "", parser.ErrUnexpectedEndOfInput)
}

func TestTokenizeErrorSurfaces(t *testing.T) {
	compare(t, "X = $", "", parser.ErrUnexpectedCharacter)
}

func TestSyntaxErrorPosition(t *testing.T) {
	_, err := parser.Parse("5 * X^2")
	var syntax *parser.SyntaxError
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, 7, syntax.Pos)

	_, err = parser.Parse("X = 1 = 2")
	require.ErrorAs(t, err, &syntax)
	assert.Equal(t, 6, syntax.Pos)
	assert.Equal(t, "=", syntax.Text)
	assert.Contains(t, err.Error(), "position 6")
}

func TestParseTokens(t *testing.T) {
	tokens, err := parser.Tokenize("X = 1")
	require.NoError(t, err)
	tree, err := parser.ParseTokens(tokens)
	require.NoError(t, err)
	assert.Equal(t, "(- X 1)", tree.String())
}

func TestParseIsDeterministic(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		input := genEquation().Draw(t, "equation")

		first, err := parser.Parse(input)
		if err != nil {
			t.Fatalf("parse %q: %v", input, err)
		}
		second, err := parser.Parse(input)
		if err != nil {
			t.Fatalf("parse %q again: %v", input, err)
		}
		if !first.Equal(second) {
			t.Fatalf("trees differ for %q: %s vs %s", input, first, second)
		}
		if first.String() != second.String() {
			t.Fatalf("renderings differ for %q", input)
		}
	})
}

func genEquation() *rapid.Generator[string] {
	term := rapid.Custom(func(t *rapid.T) string {
		coef := rapid.IntRange(0, 99).Draw(t, "coef")
		exp := rapid.IntRange(0, 3).Draw(t, "exp")
		return strings.Join([]string{strconv.Itoa(coef), "*", "X^" + strconv.Itoa(exp)}, " ")
	})
	side := rapid.Custom(func(t *rapid.T) string {
		terms := rapid.SliceOfN(term, 1, 5).Draw(t, "terms")
		var sb strings.Builder
		for i, tt := range terms {
			if i > 0 {
				sb.WriteString(rapid.SampledFrom([]string{" + ", " - "}).Draw(t, "sign"))
			}
			sb.WriteString(tt)
		}
		return sb.String()
	})
	return rapid.Custom(func(t *rapid.T) string {
		return side.Draw(t, "lhs") + " = " + side.Draw(t, "rhs")
	})
}

func compare(t *testing.T, expr, expectedTree string, expectedErr error) {
	t.Helper()
	tree, err := parser.Parse(expr)
	if expectedErr != nil {
		assert.ErrorIs(t, err, expectedErr, "input %q", expr)
		assert.Nil(t, tree)
		return
	}
	if assert.NoError(t, err, "input %q", expr) {
		assert.Equal(t, expectedTree, tree.String(), "input %q", expr)
	}
}
