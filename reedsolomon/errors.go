package reedsolomon

import "errors"

var (
	// ErrInvalidField is returned when a field cannot be built from the
	// given size and primitive polynomial.
	ErrInvalidField = errors.New("reedsolomon: invalid field")

	// ErrEmptyPolynomial is returned when a polynomial is built from no
	// coefficients.
	ErrEmptyPolynomial = errors.New("reedsolomon: empty coefficients")

	// ErrDivideByZero is returned when dividing by the zero polynomial.
	ErrDivideByZero = errors.New("reedsolomon: divide by zero polynomial")

	// ErrNoECBytes is returned when Encode is asked for no check codewords.
	ErrNoECBytes = errors.New("reedsolomon: no error correction bytes")

	// ErrNoDataBytes is returned when the buffer passed to Encode has no
	// room left for data after the check codewords.
	ErrNoDataBytes = errors.New("reedsolomon: no data bytes provided")

	// ErrReedSolomon indicates a Reed-Solomon decoding failure.
	ErrReedSolomon = errors.New("reedsolomon: decoding error")
)
