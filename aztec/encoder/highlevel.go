package encoder

import (
	"fmt"
	"strconv"

	"github.com/ericlevine/aztecgo/bitutil"
)

// Character modes of the high-level encoding.
const (
	modeUpper = iota
	modeLower
	modeMixed
	modeDigit
	modePunct
	modeCount
)

// Number of bits per code in each mode (DIGIT is 4, all others are 5).
var modeBits = [modeCount]int{5, 5, 5, 4, 5}

// Control codes shared by several modes.
const (
	codePunctShift = 0  // P/S in UPPER, LOWER, MIXED and DIGIT
	codeFLG        = 0  // FLG(n) in PUNCT
	codeBinary     = 31 // B/S in UPPER, LOWER and MIXED
	codeLowerUS    = 28 // U/S in LOWER
	codeDigitUS    = 15 // U/S in DIGIT
	maxBinaryRun   = 2078
	maxECIValue    = 999999
)

// charMap[b][mode] is the code for byte b in mode, or -1.
var charMap [256][modeCount]int

func init() {
	for i := range charMap {
		for j := range charMap[i] {
			charMap[i][j] = -1
		}
	}

	// UPPER: 1 = SP, 2..27 = A..Z
	// LOWER: 1 = SP, 2..27 = a..z
	charMap[' '][modeUpper] = 1
	charMap[' '][modeLower] = 1
	for c := 0; c < 26; c++ {
		charMap['A'+c][modeUpper] = c + 2
		charMap['a'+c][modeLower] = c + 2
	}

	// MIXED: 1 = SP, 2..14 = ^A..^M, 15..19 = ESC FS GS RS US,
	// 20..27 = @ \ ^ _ ` | ~ DEL
	charMap[' '][modeMixed] = 1
	for c := 1; c <= 13; c++ {
		charMap[c][modeMixed] = c + 1
	}
	for i, c := range []byte{0x1B, 0x1C, 0x1D, 0x1E, 0x1F, '@', '\\', '^', '_', '`', '|', '~', 0x7F} {
		charMap[c][modeMixed] = i + 15
	}

	// DIGIT: 1 = SP, 2..11 = 0..9, 12 = ',', 13 = '.'
	charMap[' '][modeDigit] = 1
	for c := 0; c < 10; c++ {
		charMap['0'+c][modeDigit] = c + 2
	}
	charMap[','][modeDigit] = 12
	charMap['.'][modeDigit] = 13

	// PUNCT: 1 = CR, 2..5 are pairs (see punctPairs), 6..30 single characters
	charMap['\r'][modePunct] = 1
	for i, c := range []byte("!\"#$%&'()*+,-./:;<=>?[]{}") {
		charMap[c][modePunct] = i + 6
	}
}

// punctPairs maps two-character sequences to their PUNCT mode codes.
var punctPairs = map[[2]byte]int{
	{'\r', '\n'}: 2,
	{'.', ' '}:   3,
	{',', ' '}:   4,
	{':', ' '}:   5,
}

// modeSwitch is one code of a latch sequence, written with the bit width
// of the mode it is emitted from.
type modeSwitch struct {
	from int
	code int
}

// latchTable[from][to] lists the codes that move from one mode to another
// for good.
var latchTable = [modeCount][modeCount][]modeSwitch{
	modeUpper: {
		modeLower: {{modeUpper, 28}},                   // L/L
		modeMixed: {{modeUpper, 29}},                   // M/L
		modeDigit: {{modeUpper, 30}},                   // D/L
		modePunct: {{modeUpper, 29}, {modeMixed, 30}}, // M/L P/L
	},
	modeLower: {
		modeUpper: {{modeLower, 30}, {modeDigit, 14}}, // D/L U/L
		modeMixed: {{modeLower, 29}},                   // M/L
		modeDigit: {{modeLower, 30}},                   // D/L
		modePunct: {{modeLower, 29}, {modeMixed, 30}}, // M/L P/L
	},
	modeMixed: {
		modeUpper: {{modeMixed, 29}},                   // U/L
		modeLower: {{modeMixed, 28}},                   // L/L
		modeDigit: {{modeMixed, 29}, {modeUpper, 30}}, // U/L D/L
		modePunct: {{modeMixed, 30}},                   // P/L
	},
	modeDigit: {
		modeUpper: {{modeDigit, 14}},                                   // U/L
		modeLower: {{modeDigit, 14}, {modeUpper, 28}},                  // U/L L/L
		modeMixed: {{modeDigit, 14}, {modeUpper, 29}},                  // U/L M/L
		modePunct: {{modeDigit, 14}, {modeUpper, 29}, {modeMixed, 30}}, // U/L M/L P/L
	},
	modePunct: {
		modeUpper: {{modePunct, 31}},                   // U/L
		modeLower: {{modePunct, 31}, {modeUpper, 28}}, // U/L L/L
		modeMixed: {{modePunct, 31}, {modeUpper, 29}}, // U/L M/L
		modeDigit: {{modePunct, 31}, {modeUpper, 30}}, // U/L D/L
	},
}

// preference lists, per current mode, the modes to try for a character
// the current mode cannot encode. PUNCT comes last since it is the most
// expensive mode to leave.
var preference = [modeCount][]int{
	modeUpper: {modeLower, modeDigit, modeMixed, modePunct},
	modeLower: {modeDigit, modeMixed, modeUpper, modePunct},
	modeMixed: {modeUpper, modeLower, modeDigit, modePunct},
	modeDigit: {modeUpper, modeLower, modeMixed, modePunct},
	modePunct: {modeUpper, modeLower, modeMixed, modeDigit},
}

// highLevelEncoder turns bytes into the Aztec bit stream with a greedy
// mode choice. Every symbol stream starts in UPPER.
type highLevelEncoder struct {
	data []byte
	out  *bitutil.BitArray
	mode int
}

// highLevelEncode encodes data into a bit stream. When eci is non-negative
// the stream opens with an FLG(n) designator for that ECI value.
func highLevelEncode(data []byte, eci int) (*bitutil.BitArray, error) {
	if len(data) == 0 {
		return nil, ErrEmptyInput
	}
	e := &highLevelEncoder{data: data, out: bitutil.NewBitArray(0), mode: modeUpper}
	if eci >= 0 {
		if err := e.appendECI(eci); err != nil {
			return nil, err
		}
	}
	for i := 0; i < len(data); {
		i = e.encodeAt(i)
	}
	return e.out, nil
}

func (e *highLevelEncoder) emit(mode, code int) {
	e.out.AppendBits(uint32(code), modeBits[mode])
}

func (e *highLevelEncoder) latch(to int) {
	for _, sw := range latchTable[e.mode][to] {
		e.emit(sw.from, sw.code)
	}
	e.mode = to
}

// appendECI writes P/S FLG(n) followed by the ECI value as n DIGIT codes.
func (e *highLevelEncoder) appendECI(eci int) error {
	if eci > maxECIValue {
		return fmt.Errorf("%w: %d", ErrECIOutOfRange, eci)
	}
	digits := strconv.Itoa(eci)
	e.emit(e.mode, codePunctShift)
	e.emit(modePunct, codeFLG)
	e.out.AppendBits(uint32(len(digits)), 3)
	for _, d := range []byte(digits) {
		e.emit(modeDigit, int(d-'0')+2)
	}
	return nil
}

// pairAt returns the PUNCT code for the two-character sequence at i.
func (e *highLevelEncoder) pairAt(i int) (int, bool) {
	if i+1 >= len(e.data) {
		return 0, false
	}
	code, ok := punctPairs[[2]byte{e.data[i], e.data[i+1]}]
	return code, ok
}

// punctAt reports whether the token at i can be written in PUNCT.
func (e *highLevelEncoder) punctAt(i int) bool {
	if i >= len(e.data) {
		return false
	}
	if _, ok := e.pairAt(i); ok {
		return true
	}
	return charMap[e.data[i]][modePunct] != -1
}

// encodeAt writes the token at i and returns the index after it.
func (e *highLevelEncoder) encodeAt(i int) int {
	b := e.data[i]

	if e.mode == modePunct {
		if code, ok := e.pairAt(i); ok {
			e.emit(modePunct, code)
			return i + 2
		}
	}
	if code := charMap[b][e.mode]; code != -1 {
		e.emit(e.mode, code)
		return i + 1
	}
	if code, ok := e.pairAt(i); ok {
		e.shiftOrLatchPunct(code, i+2)
		return i + 2
	}

	newMode := bestMode(b, e.mode)
	switch {
	case newMode == -1:
		return e.binaryShift(i)
	case newMode == modePunct:
		e.shiftOrLatchPunct(charMap[b][modePunct], i+1)
	case newMode == modeUpper && (e.mode == modeLower || e.mode == modeDigit) &&
		(i+1 == len(e.data) || charMap[e.data[i+1]][e.mode] != -1):
		// An isolated capital: U/S keeps the current latch.
		if e.mode == modeLower {
			e.emit(modeLower, codeLowerUS)
		} else {
			e.emit(modeDigit, codeDigitUS)
		}
		e.emit(modeUpper, charMap[b][modeUpper])
	default:
		e.latch(newMode)
		e.emit(newMode, charMap[b][newMode])
	}
	return i + 1
}

// shiftOrLatchPunct writes a PUNCT code, latching into PUNCT when the next
// token also needs it and shifting otherwise.
func (e *highLevelEncoder) shiftOrLatchPunct(code, next int) {
	if e.punctAt(next) && (next >= len(e.data) || charMap[e.data[next]][e.mode] == -1) {
		e.latch(modePunct)
	} else {
		e.emit(e.mode, codePunctShift)
	}
	e.emit(modePunct, code)
}

// binaryShift writes the run of bytes starting at i that no character
// mode can encode, and returns the index after the run.
func (e *highLevelEncoder) binaryShift(i int) int {
	// B/S exists only in UPPER, LOWER and MIXED.
	if e.mode == modeDigit || e.mode == modePunct {
		e.latch(modeUpper)
	}
	end := i + 1
	for end < len(e.data) && end-i < maxBinaryRun && !inAnyMode(e.data[end]) {
		end++
	}
	count := end - i

	e.emit(e.mode, codeBinary)
	if count <= 31 {
		e.out.AppendBits(uint32(count), 5)
	} else {
		e.out.AppendBits(0, 5)
		e.out.AppendBits(uint32(count-31), 11)
	}
	for _, b := range e.data[i:end] {
		e.out.AppendBits(uint32(b), 8)
	}
	return end
}

// bestMode returns the mode to switch to for byte b when the current mode
// cannot encode it, or -1 if only Binary Shift can.
func bestMode(b byte, cur int) int {
	for _, m := range preference[cur] {
		if charMap[b][m] != -1 {
			return m
		}
	}
	return -1
}

// inAnyMode returns true if b can be encoded in at least one character mode.
func inAnyMode(b byte) bool {
	for m := 0; m < modeCount; m++ {
		if charMap[b][m] != -1 {
			return true
		}
	}
	return false
}
