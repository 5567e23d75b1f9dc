// Package decoder reads Aztec symbols back into data.
//
// A Symbol is the module grid of an upright, unmirrored symbol together with
// the layer and data word counts from its mode message. Decode pulls the
// codewords out of the layers, corrects them, removes stuff bits and
// interprets the five-mode bit stream.
package decoder

import (
	"fmt"

	"github.com/ericlevine/aztecgo"
	"github.com/ericlevine/aztecgo/aztec/encoder"
	"github.com/ericlevine/aztecgo/bitutil"
	"github.com/ericlevine/aztecgo/reedsolomon"
)

// Symbol describes a sampled Aztec symbol.
type Symbol struct {
	Bits       *bitutil.BitMatrix
	Compact    bool
	Layers     int
	DataBlocks int
}

// Result holds the decoded contents of a symbol.
type Result struct {
	// Text is the data decoded to UTF-8 using the active ECI, ISO-8859-1
	// when there is none.
	Text string
	// RawBytes are the data bytes as carried in the symbol.
	RawBytes        []byte
	ErrorsCorrected int
}

// Decode decodes the data carried by symbol.
func Decode(symbol *Symbol) (*Result, error) {
	maxLayers := 32
	if symbol.Compact {
		maxLayers = 4
	}
	if symbol.Layers < 1 || symbol.Layers > maxLayers {
		return nil, fmt.Errorf("%w: %d layers", aztecgo.ErrFormat, symbol.Layers)
	}
	size := encoder.MatrixSize(symbol.Layers, symbol.Compact)
	if symbol.Bits.Width() != size || symbol.Bits.Height() != size {
		return nil, fmt.Errorf("%w: %dx%d matrix for a %d module symbol",
			aztecgo.ErrFormat, symbol.Bits.Width(), symbol.Bits.Height(), size)
	}

	rawbits := extractBits(symbol)
	correctedBits, errorsCorrected, err := correctBits(symbol, rawbits)
	if err != nil {
		return nil, err
	}
	text, rawBytes, err := decodeStream(correctedBits)
	if err != nil {
		return nil, err
	}
	return &Result{
		Text:            text,
		RawBytes:        rawBytes,
		ErrorsCorrected: errorsCorrected,
	}, nil
}

// DecodeCode decodes a symbol straight from the encoder.
func DecodeCode(code *encoder.AztecCode) (*Result, error) {
	return Decode(&Symbol{
		Bits:       code.Matrix,
		Compact:    code.Compact,
		Layers:     code.Layers,
		DataBlocks: code.CodeWords,
	})
}

// ReadSymbol recovers the layer and data word counts from the mode message
// around the bullseye of matrix, correcting errors in it.
func ReadSymbol(matrix *bitutil.BitMatrix, compact bool) (*Symbol, error) {
	numCodewords, numECCodewords := 10, 6
	if compact {
		numCodewords, numECCodewords = 7, 5
	}
	words := make([]int, numCodewords)
	encoder.ModeMessageModules(compact, matrix.Width(), func(bit, x, y int) {
		if x < matrix.Width() && y < matrix.Height() && matrix.Get(x, y) {
			words[bit/4] |= 1 << uint(3-bit%4)
		}
	})

	if _, err := reedsolomon.NewDecoder(reedsolomon.AztecParam).Decode(words, numECCodewords); err != nil {
		return nil, fmt.Errorf("%w: mode message: %v", aztecgo.ErrChecksum, err)
	}

	symbol := &Symbol{Bits: matrix, Compact: compact}
	if compact {
		val := words[0]<<4 | words[1]
		symbol.Layers = val>>6 + 1
		symbol.DataBlocks = val&0x3F + 1
	} else {
		val := words[0]<<12 | words[1]<<8 | words[2]<<4 | words[3]
		symbol.Layers = val>>11 + 1
		symbol.DataBlocks = val&0x7FF + 1
	}
	return symbol, nil
}

// extractBits reads the data modules in placement order.
func extractBits(symbol *Symbol) []bool {
	rawbits := make([]bool, encoder.TotalBitsInLayers(symbol.Layers, symbol.Compact))
	encoder.LayerModules(symbol.Layers, symbol.Compact, func(bit, x, y int) {
		rawbits[bit] = symbol.Bits.Get(x, y)
	})
	return rawbits
}

// correctBits runs Reed-Solomon correction over the codewords and returns
// the data bits with stuff bits removed.
func correctBits(symbol *Symbol, rawbits []bool) ([]bool, int, error) {
	wordSize := encoder.WordSize(symbol.Layers)
	numCodewords := len(rawbits) / wordSize
	if symbol.DataBlocks < 1 || symbol.DataBlocks >= numCodewords {
		return nil, 0, fmt.Errorf("%w: %d data words in %d", aztecgo.ErrFormat, symbol.DataBlocks, numCodewords)
	}
	offset := len(rawbits) % wordSize

	words := make([]int, numCodewords)
	for i := range words {
		words[i] = readCode(rawbits, offset+i*wordSize, wordSize)
	}

	rs := reedsolomon.NewDecoder(encoder.FieldForWordSize(wordSize))
	errorsCorrected, err := rs.Decode(words, numCodewords-symbol.DataBlocks)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", aztecgo.ErrChecksum, err)
	}

	// Words 0...01 and 1...10 carry a stuff bit in their last position.
	mask := 1<<uint(wordSize) - 1
	out := make([]bool, 0, symbol.DataBlocks*wordSize)
	for _, w := range words[:symbol.DataBlocks] {
		switch w {
		case 0, mask:
			return nil, 0, fmt.Errorf("%w: illegal codeword %#x", aztecgo.ErrFormat, w)
		case 1, mask - 1:
			for j := 0; j < wordSize-1; j++ {
				out = append(out, w > 1)
			}
		default:
			for bit := wordSize - 1; bit >= 0; bit-- {
				out = append(out, w&(1<<uint(bit)) != 0)
			}
		}
	}
	return out, errorsCorrected, nil
}

func readCode(bits []bool, start, length int) int {
	res := 0
	for _, b := range bits[start : start+length] {
		res <<= 1
		if b {
			res |= 1
		}
	}
	return res
}
