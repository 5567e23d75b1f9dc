// Package reedsolomon implements Galois-field arithmetic and Reed-Solomon
// error correction coding over GF(2^m).
package reedsolomon

import "fmt"

const (
	minFieldSize = 4
	maxFieldSize = 1 << 16
)

// GenericGF represents a Galois Field GF(size) for Reed-Solomon coding.
// It is immutable once built and may be shared freely.
type GenericGF struct {
	expTable      []int
	logTable      []int
	zero          *GenericGFPoly
	one           *GenericGFPoly
	size          int
	primitive     int
	generatorBase int
}

// Pre-defined Galois Fields.
var (
	QRCodeField256     = MustGenericGF(0x011D, 256, 0)  // x^8 + x^4 + x^3 + x^2 + 1
	DataMatrixField256 = MustGenericGF(0x012D, 256, 1)  // x^8 + x^5 + x^3 + x^2 + 1
	AztecData12        = MustGenericGF(0x1069, 4096, 1) // x^12 + x^6 + x^5 + x^3 + 1
	AztecData10        = MustGenericGF(0x0409, 1024, 1) // x^10 + x^3 + 1
	AztecData8         = DataMatrixField256
	AztecData6         = MustGenericGF(0x0043, 64, 1) // x^6 + x + 1
	AztecParam         = MustGenericGF(0x0013, 16, 1) // x^4 + x + 1
	MaxiCodeField64    = AztecData6
)

// NewGenericGF creates GF(size) from the given primitive polynomial.
// size must be a power of two and primitive must generate every nonzero
// element of the field. generatorBase is the exponent of the first root of
// the generator polynomials built over this field (0 or 1 in practice).
func NewGenericGF(primitive, size, generatorBase int) (*GenericGF, error) {
	if size < minFieldSize || size > maxFieldSize || size&(size-1) != 0 {
		return nil, fmt.Errorf("%w: size %d is not a supported power of two", ErrInvalidField, size)
	}
	gf := &GenericGF{
		primitive:     primitive,
		size:          size,
		generatorBase: generatorBase,
		expTable:      make([]int, size),
		logTable:      make([]int, size),
	}

	seen := make([]bool, size)
	x := 1
	for i := 0; i < size-1; i++ {
		if x == 0 || seen[x] {
			return nil, fmt.Errorf("%w: 0x%x is not primitive for size %d", ErrInvalidField, primitive, size)
		}
		seen[x] = true
		gf.expTable[i] = x
		gf.logTable[x] = i
		x *= 2
		if x >= size {
			x ^= primitive
			x &= size - 1
		}
	}
	if x != 1 {
		return nil, fmt.Errorf("%w: 0x%x is not primitive for size %d", ErrInvalidField, primitive, size)
	}
	// exp wraps: a^(size-1) == 1.
	gf.expTable[size-1] = 1

	gf.zero = &GenericGFPoly{field: gf, coefficients: []int{0}}
	gf.one = &GenericGFPoly{field: gf, coefficients: []int{1}}

	return gf, nil
}

// MustGenericGF is like NewGenericGF but panics if the field is invalid.
func MustGenericGF(primitive, size, generatorBase int) *GenericGF {
	gf, err := NewGenericGF(primitive, size, generatorBase)
	if err != nil {
		panic(err)
	}
	return gf
}

// Zero returns the zero polynomial.
func (gf *GenericGF) Zero() *GenericGFPoly { return gf.zero }

// One returns the one polynomial.
func (gf *GenericGF) One() *GenericGFPoly { return gf.one }

// BuildMonomial returns coefficient * x^degree.
func (gf *GenericGF) BuildMonomial(degree, coefficient int) *GenericGFPoly {
	if degree < 0 {
		panic("reedsolomon: negative degree")
	}
	if coefficient == 0 {
		return gf.zero
	}
	coefficients := make([]int, degree+1)
	coefficients[0] = coefficient
	return &GenericGFPoly{field: gf, coefficients: coefficients}
}

// AddOrSubtract computes a XOR b (addition and subtraction are the same in GF(2^n)).
func AddOrSubtract(a, b int) int {
	return a ^ b
}

// Exp returns 2^a in this field. a is taken modulo size-1, so negative
// exponents are accepted.
func (gf *GenericGF) Exp(a int) int {
	order := gf.size - 1
	a %= order
	if a < 0 {
		a += order
	}
	return gf.expTable[a]
}

// Log returns log2(a) in this field.
func (gf *GenericGF) Log(a int) int {
	if a == 0 {
		panic("reedsolomon: log(0)")
	}
	return gf.logTable[a]
}

// Inverse returns the multiplicative inverse of a.
func (gf *GenericGF) Inverse(a int) int {
	if a == 0 {
		panic("reedsolomon: inverse(0)")
	}
	return gf.expTable[gf.size-gf.logTable[a]-1]
}

// Multiply returns a * b in this field.
func (gf *GenericGF) Multiply(a, b int) int {
	if a == 0 || b == 0 {
		return 0
	}
	return gf.expTable[(gf.logTable[a]+gf.logTable[b])%(gf.size-1)]
}

// Size returns the size of the field.
func (gf *GenericGF) Size() int { return gf.size }

// GeneratorBase returns the generator base.
func (gf *GenericGF) GeneratorBase() int { return gf.generatorBase }

// String returns a string representation.
func (gf *GenericGF) String() string {
	return fmt.Sprintf("GF(0x%x,%d)", gf.primitive, gf.size)
}
