package encoder

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/aztecgo/bitutil"
)

// bitString renders bits as '0' and '1'.
func bitString(bits *bitutil.BitArray) string {
	var sb strings.Builder
	for i := 0; i < bits.Size(); i++ {
		if bits.Get(i) {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}

func TestHighLevelEncode(t *testing.T) {
	tests := []struct {
		name string
		data string
		want string
	}{
		{"upper", "A", "00010"},
		{"lower latch", "ab", "11100 00010 00011"},
		{"upper shift", "aBc", "11100 00010 11100 00011 00100"},
		{"digits", "12", "11110 0011 0100"},
		{"digit upper shift", "1A2", "11110 0011 1111 00010 0100"},
		{"punct pair shift", "A. B", "00010 00000 00011 00011"},
		{"punct latch", "!!", "11101 11110 00110 00110"},
		{"mixed", "@", "11101 10100"},
		{"lower to upper", "aBC", "11100 00010 11110 1110 00011 00100"},
		{"binary", "\x80", "11111 00001 10000000"},
		{"binary from digit", "1\x80", "11110 0011 1110 11111 00001 10000000"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bits, err := highLevelEncode([]byte(tc.data), -1)
			require.NoError(t, err)
			assert.Equal(t, strings.ReplaceAll(tc.want, " ", ""), bitString(bits))
		})
	}
}

func TestHighLevelEncodeLongBinary(t *testing.T) {
	data := bytes.Repeat([]byte{0x80}, 40)
	bits, err := highLevelEncode(data, -1)
	require.NoError(t, err)
	require.Equal(t, 5+5+11+40*8, bits.Size())
	assert.Equal(t, "11111"+"00000"+"00000001001", bitString(bits)[:21])

	// Runs longer than 2078 bytes are split.
	data = bytes.Repeat([]byte{0x80}, maxBinaryRun+1)
	bits, err = highLevelEncode(data, -1)
	require.NoError(t, err)
	assert.Equal(t, 5+5+11+maxBinaryRun*8+5+5+8, bits.Size())
}

func TestHighLevelEncodeECI(t *testing.T) {
	bits, err := highLevelEncode([]byte("A"), 26)
	require.NoError(t, err)
	assert.Equal(t, "00000"+"00000"+"010"+"0100"+"1000"+"00010", bitString(bits))

	bits, err = highLevelEncode([]byte("A"), 0)
	require.NoError(t, err)
	assert.Equal(t, "00000"+"00000"+"001"+"0010"+"00010", bitString(bits))

	_, err = highLevelEncode([]byte("A"), maxECIValue+1)
	assert.ErrorIs(t, err, ErrECIOutOfRange)
}

func TestHighLevelEncodeEmpty(t *testing.T) {
	_, err := highLevelEncode(nil, -1)
	assert.ErrorIs(t, err, ErrEmptyInput)
}

func TestLatchTableComplete(t *testing.T) {
	for from := 0; from < modeCount; from++ {
		for to := 0; to < modeCount; to++ {
			if from == to {
				assert.Empty(t, latchTable[from][to])
				continue
			}
			seq := latchTable[from][to]
			require.NotEmpty(t, seq, "latch %d -> %d", from, to)
			assert.Equal(t, from, seq[0].from)
		}
	}
}
