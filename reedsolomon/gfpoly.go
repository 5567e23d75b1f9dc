package reedsolomon

// GenericGFPoly represents a polynomial whose coefficients are elements of a GF.
// Instances are immutable: every operation returns a new polynomial.
type GenericGFPoly struct {
	field        *GenericGF
	coefficients []int
}

// NewGenericGFPoly creates a polynomial over field. Coefficients are ordered
// from highest-degree to lowest-degree; leading zeros are stripped. The
// slice is copied.
func NewGenericGFPoly(field *GenericGF, coefficients []int) (*GenericGFPoly, error) {
	if len(coefficients) == 0 {
		return nil, ErrEmptyPolynomial
	}
	c := make([]int, len(coefficients))
	copy(c, coefficients)
	return newGenericGFPoly(field, c), nil
}

// newGenericGFPoly takes ownership of coefficients, which must be non-empty.
func newGenericGFPoly(field *GenericGF, coefficients []int) *GenericGFPoly {
	if len(coefficients) > 1 && coefficients[0] == 0 {
		firstNonZero := 1
		for firstNonZero < len(coefficients) && coefficients[firstNonZero] == 0 {
			firstNonZero++
		}
		if firstNonZero == len(coefficients) {
			return field.zero
		}
		coefficients = coefficients[firstNonZero:]
	}
	return &GenericGFPoly{field: field, coefficients: coefficients}
}

// Field returns the field the coefficients belong to.
func (p *GenericGFPoly) Field() *GenericGF {
	return p.field
}

// Coefficients returns a copy of the coefficients, highest degree first.
func (p *GenericGFPoly) Coefficients() []int {
	c := make([]int, len(p.coefficients))
	copy(c, p.coefficients)
	return c
}

// Degree returns the degree of this polynomial.
func (p *GenericGFPoly) Degree() int {
	return len(p.coefficients) - 1
}

// IsZero returns true if this is the zero polynomial.
func (p *GenericGFPoly) IsZero() bool {
	return p.coefficients[0] == 0
}

// Coefficient returns the coefficient of x^degree, or 0 when degree lies
// outside [0, Degree()].
func (p *GenericGFPoly) Coefficient(degree int) int {
	if degree < 0 || degree >= len(p.coefficients) {
		return 0
	}
	return p.coefficients[len(p.coefficients)-1-degree]
}

// leading returns the coefficient of the highest-degree term.
func (p *GenericGFPoly) leading() int {
	return p.coefficients[0]
}

// EvaluateAt evaluates this polynomial at a.
func (p *GenericGFPoly) EvaluateAt(a int) int {
	if a == 0 {
		return p.Coefficient(0)
	}
	if a == 1 {
		result := 0
		for _, c := range p.coefficients {
			result = AddOrSubtract(result, c)
		}
		return result
	}
	result := p.coefficients[0]
	for _, c := range p.coefficients[1:] {
		result = AddOrSubtract(p.field.Multiply(a, result), c)
	}
	return result
}

// AddOrSubtractPoly adds (or subtracts) another polynomial.
func (p *GenericGFPoly) AddOrSubtractPoly(other *GenericGFPoly) *GenericGFPoly {
	if p.field != other.field {
		panic("reedsolomon: polynomials do not share a field")
	}
	if p.IsZero() {
		return other
	}
	if other.IsZero() {
		return p
	}

	smaller := p.coefficients
	larger := other.coefficients
	if len(smaller) > len(larger) {
		smaller, larger = larger, smaller
	}

	sumDiff := make([]int, len(larger))
	lengthDiff := len(larger) - len(smaller)
	copy(sumDiff, larger[:lengthDiff])
	for i := lengthDiff; i < len(larger); i++ {
		sumDiff[i] = AddOrSubtract(smaller[i-lengthDiff], larger[i])
	}

	return newGenericGFPoly(p.field, sumDiff)
}

// MultiplyPoly multiplies by another polynomial.
func (p *GenericGFPoly) MultiplyPoly(other *GenericGFPoly) *GenericGFPoly {
	if p.field != other.field {
		panic("reedsolomon: polynomials do not share a field")
	}
	if p.IsZero() || other.IsZero() {
		return p.field.zero
	}
	product := make([]int, len(p.coefficients)+len(other.coefficients)-1)
	for i, ac := range p.coefficients {
		for j, bc := range other.coefficients {
			product[i+j] = AddOrSubtract(product[i+j], p.field.Multiply(ac, bc))
		}
	}
	return newGenericGFPoly(p.field, product)
}

// MultiplyScalar multiplies by a scalar.
func (p *GenericGFPoly) MultiplyScalar(scalar int) *GenericGFPoly {
	if scalar == 0 {
		return p.field.zero
	}
	if scalar == 1 {
		return p
	}
	product := make([]int, len(p.coefficients))
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, scalar)
	}
	return newGenericGFPoly(p.field, product)
}

// MultiplyByMonomial multiplies by coefficient * x^degree.
func (p *GenericGFPoly) MultiplyByMonomial(degree, coefficient int) *GenericGFPoly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return p.field.zero
	}
	product := make([]int, len(p.coefficients)+degree)
	for i, c := range p.coefficients {
		product[i] = p.field.Multiply(c, coefficient)
	}
	return newGenericGFPoly(p.field, product)
}

// Divide divides by another polynomial and returns the quotient and the
// remainder, whose degree is below other's.
func (p *GenericGFPoly) Divide(other *GenericGFPoly) (quotient, remainder *GenericGFPoly, err error) {
	if p.field != other.field {
		panic("reedsolomon: polynomials do not share a field")
	}
	if other.IsZero() {
		return nil, nil, ErrDivideByZero
	}

	quotient = p.field.zero
	remainder = p

	inverseDLT := p.field.Inverse(other.leading())

	for remainder.Degree() >= other.Degree() && !remainder.IsZero() {
		degreeDiff := remainder.Degree() - other.Degree()
		scale := p.field.Multiply(remainder.leading(), inverseDLT)
		term := other.MultiplyByMonomial(degreeDiff, scale)
		quotient = quotient.AddOrSubtractPoly(p.field.BuildMonomial(degreeDiff, scale))
		remainder = remainder.AddOrSubtractPoly(term)
	}

	return quotient, remainder, nil
}

// Equal reports whether p and other have the same field and coefficients.
func (p *GenericGFPoly) Equal(other *GenericGFPoly) bool {
	if p.field != other.field || len(p.coefficients) != len(other.coefficients) {
		return false
	}
	for i, c := range p.coefficients {
		if other.coefficients[i] != c {
			return false
		}
	}
	return true
}
