package decoder

import (
	"fmt"
	"strings"

	"github.com/ericlevine/aztecgo"
	"github.com/ericlevine/aztecgo/charset"
)

type table int

const (
	tableUpper table = iota
	tableLower
	tableMixed
	tableDigit
	tablePunct
	tableBinary
)

// Character tables. Empty entries are control codes, see control.
var (
	upperTable = [32]string{
		"", " ", "A", "B", "C", "D", "E", "F", "G", "H", "I", "J", "K", "L", "M", "N",
		"O", "P", "Q", "R", "S", "T", "U", "V", "W", "X", "Y", "Z", "", "", "", "",
	}
	lowerTable = [32]string{
		"", " ", "a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l", "m", "n",
		"o", "p", "q", "r", "s", "t", "u", "v", "w", "x", "y", "z", "", "", "", "",
	}
	mixedTable = [32]string{
		"", " ", "\x01", "\x02", "\x03", "\x04", "\x05", "\x06", "\x07", "\b", "\t", "\n",
		"\x0b", "\f", "\r", "\x1b", "\x1c", "\x1d", "\x1e", "\x1f", "@", "\\", "^", "_",
		"`", "|", "~", "\x7f", "", "", "", "",
	}
	punctTable = [32]string{
		"", "\r", "\r\n", ". ", ", ", ": ", "!", "\"", "#", "$", "%", "&", "'", "(", ")", "*",
		"+", ",", "-", ".", "/", ":", ";", "<", "=", ">", "?", "[", "]", "{", "}", "",
	}
	digitTable = [16]string{
		"", " ", "0", "1", "2", "3", "4", "5", "6", "7", "8", "9", ",", ".", "", "",
	}
)

func character(t table, code int) string {
	switch t {
	case tableUpper:
		return upperTable[code]
	case tableLower:
		return lowerTable[code]
	case tableMixed:
		return mixedTable[code]
	case tablePunct:
		return punctTable[code]
	default:
		return digitTable[code]
	}
}

// control reports the table a control code switches to and whether the
// switch is a latch rather than a single character shift.
func control(t table, code int) (to table, latch bool) {
	if code == 0 {
		return tablePunct, false
	}
	switch t {
	case tableUpper, tableLower:
		switch code {
		case 28:
			if t == tableLower {
				return tableUpper, false
			}
			return tableLower, true
		case 29:
			return tableMixed, true
		case 30:
			return tableDigit, true
		}
	case tableMixed:
		switch code {
		case 28:
			return tableLower, true
		case 29:
			return tableUpper, true
		case 30:
			return tablePunct, true
		}
	case tableDigit:
		if code == 14 {
			return tableUpper, true
		}
		return tableUpper, false
	case tablePunct:
		return tableUpper, true
	}
	return tableBinary, false
}

// streamDecoder collects decoded bytes and flushes them through the active
// character set whenever an ECI changes it.
type streamDecoder struct {
	text    strings.Builder
	raw     []byte
	pending []byte
	eci     *charset.ECI
}

func (d *streamDecoder) flush() {
	if len(d.pending) == 0 {
		return
	}
	if d.eci == nil {
		d.text.WriteString(charset.DecodeLatin1(d.pending))
	} else {
		d.text.WriteString(d.eci.Decode(d.pending))
	}
	d.pending = d.pending[:0]
}

func (d *streamDecoder) write(b []byte) {
	d.pending = append(d.pending, b...)
	d.raw = append(d.raw, b...)
}

// decodeStream interprets the corrected data bits. Trailing bits too short
// to form a code are padding and ignored.
func decodeStream(bits []bool) (string, []byte, error) {
	end := len(bits)
	latchTable := tableUpper
	shiftTable := tableUpper
	d := &streamDecoder{}

	index := 0
	for index < end {
		if shiftTable == tableBinary {
			if end-index < 5 {
				break
			}
			length := readCode(bits, index, 5)
			index += 5
			if length == 0 {
				if end-index < 11 {
					break
				}
				length = readCode(bits, index, 11) + 31
				index += 11
			}
			for i := 0; i < length && end-index >= 8; i++ {
				d.write([]byte{byte(readCode(bits, index, 8))})
				index += 8
			}
			shiftTable = latchTable
			continue
		}

		size := 5
		if shiftTable == tableDigit {
			size = 4
		}
		if end-index < size {
			break
		}
		code := readCode(bits, index, size)
		index += size

		if shiftTable == tablePunct && code == 0 {
			next, err := d.flag(bits, index)
			if err != nil {
				return "", nil, err
			}
			index = next
			shiftTable = latchTable
			continue
		}

		if s := character(shiftTable, code); s != "" {
			d.write([]byte(s))
			shiftTable = latchTable
			continue
		}

		// A shift returns to the table it was invoked from, even when that
		// table was itself reached by a shift.
		to, latch := control(shiftTable, code)
		latchTable = shiftTable
		shiftTable = to
		if latch {
			latchTable = to
		}
	}
	d.flush()
	return d.text.String(), d.raw, nil
}

// flag handles FLG(n) at index, just past the FLG code. FLG(0) is FNC1,
// written as GS; FLG(1)-FLG(6) carry an ECI of n decimal digits.
func (d *streamDecoder) flag(bits []bool, index int) (int, error) {
	if len(bits)-index < 3 {
		return len(bits), nil
	}
	n := readCode(bits, index, 3)
	index += 3
	switch {
	case n == 0:
		d.write([]byte{0x1d})
		return index, nil
	case n == 7:
		return 0, fmt.Errorf("%w: reserved FLG(7)", aztecgo.ErrFormat)
	case len(bits)-index < 4*n:
		return 0, fmt.Errorf("%w: truncated ECI", aztecgo.ErrFormat)
	}

	value := 0
	for ; n > 0; n-- {
		digit := readCode(bits, index, 4)
		index += 4
		if digit < 2 || digit > 11 {
			return 0, fmt.Errorf("%w: ECI digit code %d", aztecgo.ErrFormat, digit)
		}
		value = value*10 + digit - 2
	}
	eci, err := charset.ECIByValue(value)
	if err != nil || eci == nil {
		return 0, fmt.Errorf("%w: unsupported ECI %d", aztecgo.ErrFormat, value)
	}
	d.flush()
	d.eci = eci
	return index, nil
}
