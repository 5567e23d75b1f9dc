package reedsolomon

import (
	"fmt"
	"sync"
)

// Encoder performs systematic Reed-Solomon encoding. Generator polynomials
// are cached and the cache only grows, so an Encoder is worth keeping
// around for a field. It is safe for concurrent use.
type Encoder struct {
	field *GenericGF

	mu               sync.Mutex
	cachedGenerators []*GenericGFPoly
}

// NewEncoder creates a new Encoder for the given field.
func NewEncoder(field *GenericGF) *Encoder {
	return &Encoder{
		field:            field,
		cachedGenerators: []*GenericGFPoly{field.one},
	}
}

// Field returns the field the encoder works over.
func (e *Encoder) Field() *GenericGF {
	return e.field
}

// buildGenerator returns prod_{i<degree} (x + 2^(i+generatorBase)),
// extending the cache from its last entry as needed.
func (e *Encoder) buildGenerator(degree int) *GenericGFPoly {
	e.mu.Lock()
	defer e.mu.Unlock()

	if degree < len(e.cachedGenerators) {
		return e.cachedGenerators[degree]
	}
	lastGenerator := e.cachedGenerators[len(e.cachedGenerators)-1]
	for d := len(e.cachedGenerators); d <= degree; d++ {
		nextGenerator := lastGenerator.MultiplyPoly(
			newGenericGFPoly(e.field, []int{1, e.field.Exp(d - 1 + e.field.generatorBase)}))
		e.cachedGenerators = append(e.cachedGenerators, nextGenerator)
		lastGenerator = nextGenerator
	}
	return e.cachedGenerators[degree]
}

// Encode computes ecBytes error-correction codewords for the data held in
// the front of toEncode and writes them into its last ecBytes entries.
// The data entries are left unchanged.
func (e *Encoder) Encode(toEncode []int, ecBytes int) error {
	if ecBytes <= 0 {
		return ErrNoECBytes
	}
	dataBytes := len(toEncode) - ecBytes
	if dataBytes <= 0 {
		return fmt.Errorf("%w: %d codewords cannot hold %d check codewords", ErrNoDataBytes, len(toEncode), ecBytes)
	}
	generator := e.buildGenerator(ecBytes)

	infoCoefficients := make([]int, dataBytes)
	copy(infoCoefficients, toEncode[:dataBytes])
	info := newGenericGFPoly(e.field, infoCoefficients).MultiplyByMonomial(ecBytes, 1)

	_, remainder, err := info.Divide(generator)
	if err != nil {
		return err
	}
	coefficients := remainder.coefficients
	numZero := ecBytes - len(coefficients)
	for i := 0; i < numZero; i++ {
		toEncode[dataBytes+i] = 0
	}
	copy(toEncode[dataBytes+numZero:], coefficients)
	return nil
}
