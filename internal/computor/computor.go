// Package computor runs the whole pipeline for one equation: tokenize,
// parse, extract terms, reduce and solve.
package computor

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/XJIeI5/computor/internal/ast"
	"github.com/XJIeI5/computor/internal/logger"
	"github.com/XJIeI5/computor/internal/parser"
	"github.com/XJIeI5/computor/internal/polynomial"
)

// Report is the outcome of a successful Solve.
type Report struct {
	Equation string
	Tree     *ast.Tree
	Reduced  polynomial.Polynomial
	Degree   int
	Solution polynomial.Solution
}

// Solve processes one equation. Any stage failure stops the pipeline and
// nothing of the partial result is returned.
func Solve(equation string, opts ...parser.Option) (*Report, error) {
	tokens, err := parser.Tokenize(equation, opts...)
	if err != nil {
		return nil, fmt.Errorf("tokenize: %w", err)
	}
	logger.Debug("tokenized", zap.Int("tokens", len(tokens)))

	tree, err := parser.ParseTokens(tokens)
	if err != nil {
		return nil, fmt.Errorf("parse: %w", err)
	}
	logger.Debug("parsed", zap.Stringer("tree", tree))

	poly, err := polynomial.FromTree(tree)
	if err != nil {
		return nil, fmt.Errorf("extract terms: %w", err)
	}
	poly.Reduce()
	logger.Debug("reduced", zap.Stringer("polynomial", poly))

	sol, err := poly.Solve()
	if err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	r := &Report{
		Equation: equation,
		Tree:     tree,
		Reduced:  poly,
		Degree:   sol.Degree,
		Solution: sol,
	}
	if residuals, err := r.Residuals(); err == nil {
		logger.Debug("solved", zap.Float64s("roots", sol.Roots), zap.Float64s("residuals", residuals))
	} else {
		logger.Debug("solved", zap.Float64s("roots", sol.Roots), zap.Error(err))
	}
	return r, nil
}

// Variable is the name of the unknown, empty for a constant equation.
func (r *Report) Variable() string {
	for _, t := range r.Reduced {
		if name, ok := t.Identifier.Get(); ok {
			return name
		}
	}
	return ""
}

// Residuals evaluates lhs - rhs of the original equation at every root.
func (r *Report) Residuals() ([]float64, error) {
	variable := r.Variable()
	res := make([]float64, 0, len(r.Solution.Roots))
	for _, root := range r.Solution.Roots {
		v, err := r.Tree.Eval(map[string]float64{variable: root})
		if err != nil {
			return nil, err
		}
		res = append(res, v)
	}
	return res, nil
}

// Render writes the report in the fixed console format.
func (r *Report) Render(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "Reduced form: %s = 0\nPolynomial degree: %d\n", r.Reduced, r.Degree); err != nil {
		return err
	}

	sol := r.Solution
	var err error
	switch sol.Kind {
	case polynomial.KindNoVariable:
		if sol.Identity {
			_, err = fmt.Fprintln(w, "Each real number is a solution.")
		} else {
			_, err = fmt.Fprintln(w, "There is no solution.")
		}
	case polynomial.KindLinear:
		_, err = fmt.Fprintf(w, "The solution is:\n%.6f\n", sol.Roots[0])
	case polynomial.KindQuadratic:
		switch len(sol.Roots) {
		case 2:
			_, err = fmt.Fprintf(w, "Discriminant is strictly positive, the two solutions are:\n%.6f\n%.6f\n", sol.Roots[0], sol.Roots[1])
		case 1:
			_, err = fmt.Fprintf(w, "Discriminant is zero, the solution is:\n%.6f\n", sol.Roots[0])
		default:
			_, err = fmt.Fprintln(w, "Discriminant is strictly negative, there is no real solution.")
		}
	case polynomial.KindUnsupported:
		_, err = fmt.Fprintln(w, "The polynomial degree is strictly greater than 2, I can't solve.")
	}
	return err
}
