package encoder

import (
	"bytes"
	"math/rand"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ericlevine/aztecgo/bitutil"
	"github.com/ericlevine/aztecgo/charset"
	"github.com/ericlevine/aztecgo/reedsolomon"
)

func parseBits(s string) *bitutil.BitArray {
	bits := bitutil.NewBitArray(0)
	for _, c := range strings.ReplaceAll(s, " ", "") {
		bits.AppendBit(c == '1')
	}
	return bits
}

func TestEncodeSymbolSizes(t *testing.T) {
	tests := []struct {
		layers  int
		compact bool
		size    int
	}{
		{-1, true, 15},
		{-2, true, 19},
		{-3, true, 23},
		{-4, true, 27},
		{1, false, 19},
		{4, false, 31},
		{5, false, 37},
		{12, false, 67},
		{32, false, 151},
	}
	for _, tc := range tests {
		code, err := Encode([]byte("A"), DefaultECPercent, tc.layers)
		require.NoError(t, err, "layers %d", tc.layers)
		assert.Equal(t, tc.compact, code.Compact)
		assert.Equal(t, tc.size, code.Size)
		assert.Equal(t, tc.size, code.Matrix.Width())
		assert.Equal(t, tc.size, code.Matrix.Height())
		assert.Equal(t, tc.size, MatrixSize(code.Layers, code.Compact))
		assert.Equal(t, 1, code.CodeWords)
	}
}

func TestEncodeAutoSelection(t *testing.T) {
	code, err := Encode([]byte("A"), DefaultECPercent, DefaultLayers)
	require.NoError(t, err)
	assert.True(t, code.Compact)
	assert.Equal(t, 1, code.Layers)
	assert.Equal(t, 15, code.Size)

	// Larger inputs move to bigger symbols, compact first.
	prev := 0
	for _, n := range []int{10, 40, 80, 200, 600, 1500} {
		code, err := Encode(bytes.Repeat([]byte("a"), n), DefaultECPercent, DefaultLayers)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, code.Size, prev)
		prev = code.Size
		if !code.Compact {
			assert.GreaterOrEqual(t, code.Layers, 4)
		}
	}
}

func TestEncodeCompactBullsEye(t *testing.T) {
	code, err := Encode([]byte("AZTEC"), DefaultECPercent, -1)
	require.NoError(t, err)
	m := code.Matrix
	c := code.Size / 2

	for r := 0; r <= 4; r++ {
		assert.Equal(t, r%2 == 0, m.Get(c+r, c), "ring %d", r)
		assert.Equal(t, r%2 == 0, m.Get(c, c-r), "ring %d", r)
	}
	// Orientation marks in three corners, none bottom left.
	assert.True(t, m.Get(c-5, c-5))
	assert.True(t, m.Get(c-4, c-5))
	assert.True(t, m.Get(c-5, c-4))
	assert.True(t, m.Get(c+5, c-5))
	assert.True(t, m.Get(c+5, c-4))
	assert.True(t, m.Get(c+5, c+4))
	assert.False(t, m.Get(c-5, c+5))
}

func TestEncodeFullBullsEyeAndGrid(t *testing.T) {
	code, err := Encode([]byte("AZTEC"), DefaultECPercent, 5)
	require.NoError(t, err)
	m := code.Matrix
	c := code.Size / 2

	for r := 0; r <= 6; r++ {
		assert.Equal(t, r%2 == 0, m.Get(c+r, c), "ring %d", r)
	}
	assert.True(t, m.Get(c-7, c-7))
	assert.True(t, m.Get(c+7, c+6))

	// Layer 5 reaches past the first reference grid line at 16 modules.
	for k := c & 1; k < code.Size; k += 2 {
		assert.True(t, m.Get(k, c-16), "grid module %d", k)
		assert.True(t, m.Get(c+16, k), "grid module %d", k)
	}
}

func TestEncodeDeterministic(t *testing.T) {
	a, err := Encode([]byte("Deterministic output"), DefaultECPercent, DefaultLayers)
	require.NoError(t, err)
	b, err := Encode([]byte("Deterministic output"), DefaultECPercent, DefaultLayers)
	require.NoError(t, err)
	assert.True(t, a.Matrix.Equals(b.Matrix))
}

func TestEncodeErrors(t *testing.T) {
	_, err := Encode(nil, DefaultECPercent, 0)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = EncodeBits(bitutil.NewBitArray(0), DefaultECPercent, 0)
	assert.ErrorIs(t, err, ErrEmptyInput)

	_, err = Encode([]byte("A"), -1, 0)
	assert.ErrorIs(t, err, ErrIllegalECPercent)

	for _, layers := range []int{-5, 33, -100} {
		_, err = Encode([]byte("A"), DefaultECPercent, layers)
		assert.ErrorIs(t, err, ErrIllegalLayers, "layers %d", layers)
	}

	_, err = Encode(bytes.Repeat([]byte("A"), 100), DefaultECPercent, -1)
	assert.ErrorIs(t, err, ErrDataTooLarge)

	rng := rand.New(rand.NewSource(1))
	big := make([]byte, 5000)
	rng.Read(big)
	_, err = Encode(big, DefaultECPercent, 0)
	assert.ErrorIs(t, err, ErrDataTooLarge)
}

func TestEncodeWithECI(t *testing.T) {
	plain, err := Encode([]byte("A"), DefaultECPercent, -1)
	require.NoError(t, err)
	withECI, err := EncodeWithECI([]byte("A"), DefaultECPercent, -1, charset.ECIUTF8)
	require.NoError(t, err)
	assert.False(t, plain.Matrix.Equals(withECI.Matrix))
	assert.Greater(t, withECI.CodeWords, plain.CodeWords)

	noECI, err := EncodeWithECI([]byte("A"), DefaultECPercent, -1, nil)
	require.NoError(t, err)
	assert.True(t, plain.Matrix.Equals(noECI.Matrix))
}

func TestStuffBits(t *testing.T) {
	tests := []struct {
		wordSize int
		in, want string
	}{
		{6, "000000 111111", "000001 011111 111110"},
		{6, "010101", "010101"},
		{6, "0101", "010111"},
		{6, "111111 000000", "111110 100000 011111"},
		{4, "0000", "0001 0111"},
	}
	for _, tc := range tests {
		got := stuffBits(parseBits(tc.in), tc.wordSize)
		assert.Equal(t, strings.ReplaceAll(tc.want, " ", ""), bitString(got), "%s / %d", tc.in, tc.wordSize)
	}
}

func TestModeMessage(t *testing.T) {
	decoder := reedsolomon.NewDecoder(reedsolomon.AztecParam)

	msg, err := generateModeMessage(true, 2, 3)
	require.NoError(t, err)
	require.Equal(t, 28, msg.Size())
	assert.Equal(t, "01"+"000010", bitString(msg)[:8])
	words := bitsToWords(msg, 4, 7)
	corrected, err := decoder.Decode(words, 5)
	require.NoError(t, err)
	assert.Zero(t, corrected)

	msg, err = generateModeMessage(false, 32, 2048)
	require.NoError(t, err)
	require.Equal(t, 40, msg.Size())
	assert.Equal(t, "11111"+"11111111111", bitString(msg)[:16])
	words = bitsToWords(msg, 4, 10)
	corrected, err = decoder.Decode(words, 6)
	require.NoError(t, err)
	assert.Zero(t, corrected)
}

func TestGenerateCheckWordsPadding(t *testing.T) {
	stuffed := parseBits("000010 000011")
	out, err := generateCheckWords(stuffed, 104, 6)
	require.NoError(t, err)
	require.Equal(t, 104, out.Size())
	// 104 = 17 words of 6 bits plus 2 leading pad bits.
	assert.Equal(t, "00"+"000010"+"000011", bitString(out)[:14])

	words := bitsToWords(stuffed, 6, 17)
	require.NoError(t, encoderFor(6).Encode(words, 15))
	for i, w := range words {
		assert.Equal(t, w, out.ReadBits(2+i*6, 6), "word %d", i)
	}
}

func TestTotalBitsInLayers(t *testing.T) {
	assert.Equal(t, 104, TotalBitsInLayers(1, true))
	assert.Equal(t, 608, TotalBitsInLayers(4, true))
	assert.Equal(t, 128, TotalBitsInLayers(1, false))
	assert.Equal(t, 19968, TotalBitsInLayers(32, false))
}

func TestWordSize(t *testing.T) {
	for layers := 1; layers <= 32; layers++ {
		want := 12
		switch {
		case layers <= 2:
			want = 6
		case layers <= 8:
			want = 8
		case layers <= 22:
			want = 10
		}
		assert.Equal(t, want, WordSize(layers), "layers %d", layers)
		assert.Equal(t, 1<<uint(want), FieldForWordSize(want).Size(), "layers %d", layers)
	}
}

func TestLayerModulesCoverEveryBitOnce(t *testing.T) {
	for _, tc := range []struct {
		layers  int
		compact bool
	}{{1, true}, {4, true}, {1, false}, {5, false}, {15, false}} {
		total := TotalBitsInLayers(tc.layers, tc.compact)
		size := MatrixSize(tc.layers, tc.compact)
		seenBits := make([]bool, total)
		seenModules := bitutil.NewBitMatrix(size)
		LayerModules(tc.layers, tc.compact, func(bit, x, y int) {
			require.False(t, seenBits[bit], "bit %d placed twice", bit)
			seenBits[bit] = true
			require.False(t, seenModules.Get(x, y), "module (%d,%d) used twice", x, y)
			seenModules.Set(x, y)
		})
		assert.Equal(t, total, seenModules.CountSet())
	}
}

func TestConcurrentEncode(t *testing.T) {
	inputs := []string{"alpha", "BETA 123", "gamma!", strings.Repeat("delta", 40)}
	want := make([]*AztecCode, len(inputs))
	for i, in := range inputs {
		code, err := Encode([]byte(in), DefaultECPercent, 0)
		require.NoError(t, err)
		want[i] = code
	}

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := range inputs {
				k := (i + g) % len(inputs)
				code, err := Encode([]byte(inputs[k]), DefaultECPercent, 0)
				if assert.NoError(t, err) {
					assert.True(t, want[k].Matrix.Equals(code.Matrix))
				}
			}
		}(g)
	}
	wg.Wait()
}

func BenchmarkEncode(b *testing.B) {
	data := []byte(strings.Repeat("Aztec barcode benchmark 0123456789. ", 10))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := Encode(data, DefaultECPercent, 0); err != nil {
			b.Fatal(err)
		}
	}
}
