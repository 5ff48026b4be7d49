package polynomial

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrUnsupportedExponent    = errors.New("exponent must be a non-negative integer")
	ErrMultipleVariables      = errors.New("more than one variable")
	ErrZeroLeadingCoefficient = errors.New("leading coefficient is zero")
)

// MaxDegree is the highest degree Solve computes roots for.
const MaxDegree = 2

// MaxExponent bounds the exponents Solve accepts so a degree always fits
// in an int.
const MaxExponent = math.MaxInt32

type Kind int

const (
	// KindNoVariable is a constant equation, either always or never true.
	KindNoVariable Kind = iota
	KindLinear
	KindQuadratic
	// KindUnsupported is reported for degrees above MaxDegree.
	KindUnsupported
)

type Solution struct {
	Kind   Kind
	Degree int
	// Identity is set on a constant equation that holds for every value.
	Identity     bool
	Discriminant float64
	Roots        []float64
}

// Solve finds the real roots of p = 0. The receiver should be reduced.
func (p Polynomial) Solve() (Solution, error) {
	c, err := p.coefficients()
	if err != nil {
		return Solution{}, err
	}

	sol := Solution{Degree: p.Degree()}
	switch sol.Degree {
	case 0:
		sol.Kind = KindNoVariable
		sol.Identity = c[0] == 0
	case 1:
		if c[1] == 0 {
			return Solution{}, fmt.Errorf("%w: degree 1", ErrZeroLeadingCoefficient)
		}
		sol.Kind = KindLinear
		sol.Roots = []float64{positiveZero(-c[0] / c[1])}
	case 2:
		a, b, cc := c[2], c[1], c[0]
		if a == 0 {
			return Solution{}, fmt.Errorf("%w: degree 2", ErrZeroLeadingCoefficient)
		}
		sol.Kind = KindQuadratic
		sol.Discriminant = b*b - 4*a*cc
		switch {
		case sol.Discriminant > 0:
			sqrt := math.Sqrt(sol.Discriminant)
			sol.Roots = []float64{
				positiveZero((-b - sqrt) / (2 * a)),
				positiveZero((-b + sqrt) / (2 * a)),
			}
		case sol.Discriminant == 0:
			sol.Roots = []float64{positiveZero(-b / (2 * a))}
		}
	default:
		sol.Kind = KindUnsupported
	}
	return sol, nil
}

// coefficients sums the signed coefficients by exponent for degrees up to
// MaxDegree.
func (p Polynomial) coefficients() ([MaxDegree + 1]float64, error) {
	var (
		c        [MaxDegree + 1]float64
		variable string
	)
	for _, t := range p {
		if ident, ok := t.Identifier.Get(); ok {
			if variable != "" && variable != ident {
				return c, fmt.Errorf("%w: %s and %s", ErrMultipleVariables, variable, ident)
			}
			variable = ident
		}
		e := t.Degree()
		if e < 0 || e != math.Trunc(e) || e > MaxExponent {
			return c, fmt.Errorf("%w: %s", ErrUnsupportedExponent, formatFloat(e))
		}
		if t.Magnitude() == 0 {
			continue
		}
		if e <= MaxDegree {
			c[int(e)] += t.Value()
		}
	}
	return c, nil
}

func positiveZero(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}
