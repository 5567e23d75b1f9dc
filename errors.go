// Package aztecgo encodes data into Aztec 2D barcode symbols.
//
// The subpackages hold the pieces: reedsolomon for Galois-field and
// Reed-Solomon arithmetic, bitutil for bit containers, aztec/encoder for
// symbol assembly, aztec/decoder for reading a symbol back, and aztec for
// the Writer that scales a symbol for output.
package aztecgo

import "errors"

var (
	// ErrChecksum is returned when a symbol's check words cannot correct it.
	ErrChecksum = errors.New("checksum error")

	// ErrFormat is returned when a symbol cannot be decoded due to format issues.
	ErrFormat = errors.New("format error")

	// ErrWriter is returned when a barcode cannot be encoded.
	ErrWriter = errors.New("writer error")
)
