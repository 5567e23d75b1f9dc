// Package encoder assembles Aztec barcode symbols.
//
// Data goes through the five-mode high-level encoding, is cut into
// codewords with stuff bits, protected with Reed-Solomon check words over
// a field matched to the codeword size, and placed into concentric layers
// around the bullseye finder pattern.
package encoder

import (
	"errors"
	"fmt"

	logging "github.com/ipfs/go-log/v2"

	"github.com/ericlevine/aztecgo/bitutil"
	"github.com/ericlevine/aztecgo/charset"
	"github.com/ericlevine/aztecgo/reedsolomon"
)

var log = logging.Logger("aztec/encoder")

// Defaults used by the writer.
const (
	DefaultECPercent = 33
	DefaultLayers    = 0
)

const (
	maxLayersCompact = 4
	maxLayersFull    = 32
	maxWordsCompact  = 64
)

var (
	// ErrEmptyInput is returned when there is nothing to encode.
	ErrEmptyInput = errors.New("aztec: empty input")

	// ErrIllegalLayers is returned for a user specified layer count outside
	// -4..-1 (compact) or 1..32 (full).
	ErrIllegalLayers = errors.New("aztec: illegal layer value")

	// ErrDataTooLarge is returned when the data does not fit the requested
	// (or the largest) symbol.
	ErrDataTooLarge = errors.New("aztec: data too large")

	// ErrECIOutOfRange is returned for ECI values above 999999.
	ErrECIOutOfRange = errors.New("aztec: ECI value out of range")

	// ErrIllegalECPercent is returned for a negative error correction percentage.
	ErrIllegalECPercent = errors.New("aztec: illegal error correction percentage")
)

// AztecCode holds the result of encoding data into an Aztec barcode.
type AztecCode struct {
	// Matrix is the finished symbol, Size x Size modules.
	Matrix *bitutil.BitMatrix
	// Compact symbols have a smaller bullseye and no reference grid.
	Compact bool
	Size    int
	Layers  int
	// CodeWords is the number of data codewords, check words excluded.
	CodeWords int
}

// wordSizeTable[layers] gives the codeword size for that layer count.
// Index 0 is the mode message (4 bits); indices 1-32 are data layers.
var wordSizeTable = [maxLayersFull + 1]int{
	4, 6, 6, 8, 8, 8, 8, 8, 8, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10, 10,
	12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
}

// rsEncoders holds one Reed-Solomon encoder per codeword size so their
// generator caches survive across symbols.
var rsEncoders = map[int]*reedsolomon.Encoder{
	4:  reedsolomon.NewEncoder(reedsolomon.AztecParam),
	6:  reedsolomon.NewEncoder(reedsolomon.AztecData6),
	8:  reedsolomon.NewEncoder(reedsolomon.AztecData8),
	10: reedsolomon.NewEncoder(reedsolomon.AztecData10),
	12: reedsolomon.NewEncoder(reedsolomon.AztecData12),
}

// FieldForWordSize returns the Galois Field used for codewords of the given
// bit width.
func FieldForWordSize(wordSize int) *reedsolomon.GenericGF {
	return encoderFor(wordSize).Field()
}

func encoderFor(wordSize int) *reedsolomon.Encoder {
	enc, ok := rsEncoders[wordSize]
	if !ok {
		panic(fmt.Sprintf("aztec: unsupported word size %d", wordSize))
	}
	return enc
}

// WordSize returns the codeword size in bits for a symbol with the given
// number of layers.
func WordSize(layers int) int {
	return wordSizeTable[layers]
}

// TotalBitsInLayers returns the number of data modules in a symbol.
func TotalBitsInLayers(layers int, compact bool) int {
	base := 112
	if compact {
		base = 88
	}
	return (base + 16*layers) * layers
}

// Encode encodes data into an Aztec symbol. minECCPercent is the share of
// the data bits, in percent, to add as error correction (plus a fixed 11
// bits). userSpecifiedLayers forces the layer count: negative values select
// a compact symbol, zero picks the smallest symbol that fits.
func Encode(data []byte, minECCPercent, userSpecifiedLayers int) (*AztecCode, error) {
	return EncodeWithECI(data, minECCPercent, userSpecifiedLayers, nil)
}

// EncodeWithECI is like Encode but prefixes the data with an ECI
// designator for eci, so a reader knows the character set of the bytes.
// A nil eci writes no designator.
func EncodeWithECI(data []byte, minECCPercent, userSpecifiedLayers int, eci *charset.ECI) (*AztecCode, error) {
	value := -1
	if eci != nil {
		value = eci.Value
	}
	bits, err := highLevelEncode(data, value)
	if err != nil {
		return nil, err
	}
	return EncodeBits(bits, minECCPercent, userSpecifiedLayers)
}

// EncodeBits builds a symbol from an already high-level encoded bit stream.
func EncodeBits(bits *bitutil.BitArray, minECCPercent, userSpecifiedLayers int) (*AztecCode, error) {
	if bits == nil || bits.Size() == 0 {
		return nil, ErrEmptyInput
	}
	if minECCPercent < 0 {
		return nil, fmt.Errorf("%w: %d", ErrIllegalECPercent, minECCPercent)
	}

	sp, err := chooseSymbol(bits, minECCPercent, userSpecifiedLayers)
	if err != nil {
		return nil, err
	}

	messageBits, err := generateCheckWords(sp.stuffedBits, sp.totalBits, sp.wordSize)
	if err != nil {
		return nil, err
	}

	messageSizeInWords := sp.stuffedBits.Size() / sp.wordSize
	modeMessage, err := generateModeMessage(sp.compact, sp.layers, messageSizeInWords)
	if err != nil {
		return nil, err
	}

	log.Debugw("aztec symbol selected",
		"compact", sp.compact,
		"layers", sp.layers,
		"wordSize", sp.wordSize,
		"dataWords", messageSizeInWords,
		"checkWords", sp.totalBits/sp.wordSize-messageSizeInWords)

	matrix := drawSymbol(sp.compact, sp.layers, messageBits, modeMessage)
	return &AztecCode{
		Matrix:    matrix,
		Compact:   sp.compact,
		Size:      matrix.Width(),
		Layers:    sp.layers,
		CodeWords: messageSizeInWords,
	}, nil
}

// symbolParams is the outcome of symbol size selection.
type symbolParams struct {
	compact     bool
	layers      int
	totalBits   int
	wordSize    int
	stuffedBits *bitutil.BitArray
}

func chooseSymbol(bits *bitutil.BitArray, minECCPercent, userSpecifiedLayers int) (*symbolParams, error) {
	eccBits := bits.Size()*minECCPercent/100 + 11
	totalSizeBits := bits.Size() + eccBits

	if userSpecifiedLayers != 0 {
		compact := userSpecifiedLayers < 0
		layers := userSpecifiedLayers
		maxLayers := maxLayersFull
		if compact {
			layers = -layers
			maxLayers = maxLayersCompact
		}
		if layers > maxLayers {
			return nil, fmt.Errorf("%w: %d", ErrIllegalLayers, userSpecifiedLayers)
		}
		sp := &symbolParams{
			compact:   compact,
			layers:    layers,
			totalBits: TotalBitsInLayers(layers, compact),
			wordSize:  wordSizeTable[layers],
		}
		sp.stuffedBits = stuffBits(bits, sp.wordSize)
		usableBits := sp.totalBits - sp.totalBits%sp.wordSize
		if sp.stuffedBits.Size()+eccBits > usableBits ||
			compact && sp.stuffedBits.Size() > sp.wordSize*maxWordsCompact {
			return nil, fmt.Errorf("%w for %d layers", ErrDataTooLarge, userSpecifiedLayers)
		}
		return sp, nil
	}

	// Try Compact1-4, then Full4-32. Full1-3 are skipped because the
	// compact symbol one layer up is the same size and holds more.
	var stuffedBits *bitutil.BitArray
	wordSize := 0
	for i := 0; i <= maxLayersFull; i++ {
		compact := i <= 3
		layers := i
		if compact {
			layers = i + 1
		}
		totalBits := TotalBitsInLayers(layers, compact)
		if totalSizeBits > totalBits {
			continue
		}
		// Stuffing depends only on the word size, reuse it across layers.
		if stuffedBits == nil || wordSize != wordSizeTable[layers] {
			wordSize = wordSizeTable[layers]
			stuffedBits = stuffBits(bits, wordSize)
		}
		usableBits := totalBits - totalBits%wordSize
		if compact && stuffedBits.Size() > wordSize*maxWordsCompact {
			continue
		}
		if stuffedBits.Size()+eccBits <= usableBits {
			return &symbolParams{
				compact:     compact,
				layers:      layers,
				totalBits:   totalBits,
				wordSize:    wordSize,
				stuffedBits: stuffedBits,
			}, nil
		}
	}
	return nil, fmt.Errorf("%w for any Aztec symbol: %d bits", ErrDataTooLarge, bits.Size())
}

// stuffBits cuts bits into words of wordSize bits. A word whose first
// wordSize-1 bits are all equal gets the complement as its last bit and
// the bit it displaced starts the next word, so no codeword is all zeros
// or all ones. The last word is padded with ones.
func stuffBits(bits *bitutil.BitArray, wordSize int) *bitutil.BitArray {
	out := bitutil.NewBitArray(0)
	n := bits.Size()
	mask := (1 << uint(wordSize)) - 2

	for i := 0; i < n; {
		word := 0
		for j := 0; j < wordSize; j++ {
			if i+j >= n || bits.Get(i+j) {
				word |= 1 << uint(wordSize-1-j)
			}
		}
		switch word & mask {
		case mask:
			out.AppendBits(uint32(word&mask), wordSize)
			i += wordSize - 1
		case 0:
			out.AppendBits(uint32(word|1), wordSize)
			i += wordSize - 1
		default:
			out.AppendBits(uint32(word), wordSize)
			i += wordSize
		}
	}
	return out
}

// generateCheckWords Reed-Solomon encodes the stuffed words into a stream
// of exactly totalBits bits, padded with zeros at the front.
func generateCheckWords(stuffedBits *bitutil.BitArray, totalBits, wordSize int) (*bitutil.BitArray, error) {
	messageSizeInWords := stuffedBits.Size() / wordSize
	totalWords := totalBits / wordSize

	messageWords := bitsToWords(stuffedBits, wordSize, totalWords)
	if err := encoderFor(wordSize).Encode(messageWords, totalWords-messageSizeInWords); err != nil {
		return nil, fmt.Errorf("aztec: check words: %w", err)
	}

	out := bitutil.NewBitArray(0)
	out.AppendBits(0, totalBits%wordSize)
	for _, w := range messageWords {
		out.AppendBits(uint32(w), wordSize)
	}
	return out, nil
}

func bitsToWords(stuffedBits *bitutil.BitArray, wordSize, totalWords int) []int {
	message := make([]int, totalWords)
	n := stuffedBits.Size() / wordSize
	for i := 0; i < n; i++ {
		message[i] = stuffedBits.ReadBits(i*wordSize, wordSize)
	}
	return message
}

// generateModeMessage encodes the layer count and data word count, with
// their own check words over GF(16).
func generateModeMessage(compact bool, layers, messageSizeInWords int) (*bitutil.BitArray, error) {
	modeMessage := bitutil.NewBitArray(0)
	if compact {
		modeMessage.AppendBits(uint32(layers-1), 2)
		modeMessage.AppendBits(uint32(messageSizeInWords-1), 6)
		return generateCheckWords(modeMessage, 28, 4)
	}
	modeMessage.AppendBits(uint32(layers-1), 5)
	modeMessage.AppendBits(uint32(messageSizeInWords-1), 11)
	return generateCheckWords(modeMessage, 40, 4)
}
