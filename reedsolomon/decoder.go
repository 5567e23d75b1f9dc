package reedsolomon

// Decoder corrects errors in codeword blocks produced by Encoder.
type Decoder struct {
	field *GenericGF
}

// NewDecoder creates a new Decoder for the given field.
func NewDecoder(field *GenericGF) *Decoder {
	return &Decoder{field: field}
}

// Decode corrects errors in received in place and returns the number of
// codewords corrected. twoS is the number of error-correction codewords at
// the end of received; up to twoS/2 errors can be corrected.
func (d *Decoder) Decode(received []int, twoS int) (int, error) {
	if len(received) == 0 || twoS <= 0 {
		return 0, ErrReedSolomon
	}
	poly := newGenericGFPoly(d.field, append([]int(nil), received...))
	syndromeCoefficients := make([]int, twoS)
	noError := true
	for i := 0; i < twoS; i++ {
		eval := poly.EvaluateAt(d.field.Exp(i + d.field.generatorBase))
		syndromeCoefficients[twoS-1-i] = eval
		if eval != 0 {
			noError = false
		}
	}
	if noError {
		return 0, nil
	}

	syndrome := newGenericGFPoly(d.field, syndromeCoefficients)
	sigma, omega, err := d.runEuclideanAlgorithm(d.field.BuildMonomial(twoS, 1), syndrome, twoS)
	if err != nil {
		return 0, err
	}
	errorLocations, err := d.findErrorLocations(sigma)
	if err != nil {
		return 0, err
	}
	errorMagnitudes := d.findErrorMagnitudes(omega, errorLocations)
	for i, location := range errorLocations {
		position := len(received) - 1 - d.field.Log(location)
		if position < 0 {
			return 0, ErrReedSolomon
		}
		received[position] = AddOrSubtract(received[position], errorMagnitudes[i])
	}
	return len(errorLocations), nil
}

// runEuclideanAlgorithm returns the error locator sigma and the error
// evaluator omega.
func (d *Decoder) runEuclideanAlgorithm(a, b *GenericGFPoly, R int) (sigma, omega *GenericGFPoly, err error) {
	if a.Degree() < b.Degree() {
		a, b = b, a
	}

	rLast := a
	r := b
	tLast := d.field.zero
	t := d.field.one

	for 2*r.Degree() >= R {
		rLastLast := rLast
		tLastLast := tLast
		rLast = r
		tLast = t

		if rLast.IsZero() {
			return nil, nil, ErrReedSolomon
		}
		var q *GenericGFPoly
		q, r, err = rLastLast.Divide(rLast)
		if err != nil {
			return nil, nil, err
		}

		t = q.MultiplyPoly(tLast).AddOrSubtractPoly(tLastLast)

		if r.Degree() >= rLast.Degree() {
			return nil, nil, ErrReedSolomon
		}
	}

	sigmaTildeAtZero := t.Coefficient(0)
	if sigmaTildeAtZero == 0 {
		return nil, nil, ErrReedSolomon
	}

	inverse := d.field.Inverse(sigmaTildeAtZero)
	return t.MultiplyScalar(inverse), r.MultiplyScalar(inverse), nil
}

// findErrorLocations runs a Chien search over the error locator.
func (d *Decoder) findErrorLocations(errorLocator *GenericGFPoly) ([]int, error) {
	numErrors := errorLocator.Degree()
	if numErrors == 1 {
		return []int{errorLocator.Coefficient(1)}, nil
	}
	result := make([]int, 0, numErrors)
	for i := 1; i < d.field.size && len(result) < numErrors; i++ {
		if errorLocator.EvaluateAt(i) == 0 {
			result = append(result, d.field.Inverse(i))
		}
	}
	if len(result) != numErrors {
		return nil, ErrReedSolomon
	}
	return result, nil
}

// findErrorMagnitudes applies Forney's formula.
func (d *Decoder) findErrorMagnitudes(errorEvaluator *GenericGFPoly, errorLocations []int) []int {
	s := len(errorLocations)
	result := make([]int, s)
	for i := 0; i < s; i++ {
		xiInverse := d.field.Inverse(errorLocations[i])
		denominator := 1
		for j := 0; j < s; j++ {
			if i != j {
				// 1 + term, written as a bit toggle.
				term := d.field.Multiply(errorLocations[j], xiInverse)
				denominator = d.field.Multiply(denominator, term^1)
			}
		}
		result[i] = d.field.Multiply(errorEvaluator.EvaluateAt(xiInverse), d.field.Inverse(denominator))
		if d.field.generatorBase != 0 {
			result[i] = d.field.Multiply(result[i], xiInverse)
		}
	}
	return result
}
