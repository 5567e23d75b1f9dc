package reedsolomon

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeVectors(t *testing.T) {
	tests := []struct {
		name  string
		field *GenericGF
		data  []int
		ec    []int
	}{
		{"QR short", QRCodeField256, []int{64, 48, 5, 127}, []int{181, 192, 127}},
		{"QR counting", QRCodeField256, []int{1, 2, 3, 4, 5, 6, 7, 8, 9, 10}, []int{94, 45, 195, 166, 211, 0, 206}},
		{"QR 1-M", QRCodeField256,
			[]int{0x20, 0x41, 0xCD, 0x45, 0x29, 0xDC, 0x2E, 0x80, 0xEC},
			[]int{42, 159, 74, 221, 244, 169, 239, 150, 138, 70, 237, 85, 224, 96, 74, 219, 61}},
		{"leading zero check word", QRCodeField256, []int{1, 254}, []int{0, 132, 237, 150}},
		{"Aztec param", AztecParam, []int{1, 2, 3}, []int{2, 12, 7, 13}},
		{"Aztec data 6", AztecData6, []int{1, 2, 3}, []int{54, 31, 27, 22, 42}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			toEncode := append(append([]int(nil), tc.data...), make([]int, len(tc.ec))...)
			// Garbage in the check area must be overwritten.
			for i := len(tc.data); i < len(toEncode); i++ {
				toEncode[i] = 1
			}
			require.NoError(t, NewEncoder(tc.field).Encode(toEncode, len(tc.ec)))
			assert.Equal(t, tc.data, toEncode[:len(tc.data)])
			assert.Equal(t, tc.ec, toEncode[len(tc.data):])
		})
	}
}

func TestEncodeSystematic(t *testing.T) {
	dataSize, ecSize := 40, 12
	toEncode := make([]int, dataSize+ecSize)
	for i := 0; i < dataSize; i++ {
		toEncode[i] = (i*37 + 11) % 1024
	}
	original := append([]int(nil), toEncode[:dataSize]...)

	require.NoError(t, NewEncoder(AztecData10).Encode(toEncode, ecSize))
	assert.Equal(t, original, toEncode[:dataSize])

	// A valid codeword has every syndrome equal to zero.
	poly := mustPoly(t, AztecData10, toEncode...)
	for i := 0; i < ecSize; i++ {
		assert.Zero(t, poly.EvaluateAt(AztecData10.Exp(i+AztecData10.GeneratorBase())), "syndrome %d", i)
	}
}

func TestEncodeRejectsBadSizes(t *testing.T) {
	enc := NewEncoder(QRCodeField256)

	err := enc.Encode(make([]int, 3), 3)
	assert.ErrorIs(t, err, ErrNoDataBytes)

	err = enc.Encode(make([]int, 3), 5)
	assert.ErrorIs(t, err, ErrNoDataBytes)

	err = enc.Encode(make([]int, 3), 0)
	assert.ErrorIs(t, err, ErrNoECBytes)
}

func TestEncodeAllZeroData(t *testing.T) {
	toEncode := []int{0, 0, 0, 9, 9, 9}
	require.NoError(t, NewEncoder(QRCodeField256).Encode(toEncode, 3))
	assert.Equal(t, []int{0, 0, 0, 0, 0, 0}, toEncode)
}

func TestGeneratorCacheGrowsMonotonically(t *testing.T) {
	enc := NewEncoder(QRCodeField256)
	require.Len(t, enc.cachedGenerators, 1)
	assert.Equal(t, []int{1}, enc.buildGenerator(0).Coefficients())

	g5 := enc.buildGenerator(5)
	require.Len(t, enc.cachedGenerators, 6)
	cached := append([]*GenericGFPoly(nil), enc.cachedGenerators...)

	g8 := enc.buildGenerator(8)
	require.Len(t, enc.cachedGenerators, 9)
	for d, g := range cached {
		assert.Same(t, g, enc.cachedGenerators[d], "degree %d was rebuilt", d)
	}
	assert.Same(t, g5, enc.buildGenerator(5))
	assert.Equal(t, 8, g8.Degree())

	fresh := NewEncoder(QRCodeField256).buildGenerator(5)
	assert.True(t, fresh.Equal(g5))

	// Asking for a smaller degree does not shrink the cache.
	enc.buildGenerator(2)
	assert.Len(t, enc.cachedGenerators, 9)
}

func TestGeneratorRoots(t *testing.T) {
	for _, tc := range allFields {
		t.Run(tc.name, func(t *testing.T) {
			field := tc.field
			g := NewEncoder(field).buildGenerator(6)
			assert.Equal(t, 6, g.Degree())
			assert.Equal(t, 1, g.Coefficient(6))
			for i := 0; i < 6; i++ {
				assert.Zero(t, g.EvaluateAt(field.Exp(i+field.GeneratorBase())))
			}
		})
	}
}

func TestEncoderConcurrentUse(t *testing.T) {
	enc := NewEncoder(AztecData12)
	want := make(map[int][]int)
	for ec := 2; ec < 20; ec++ {
		block := make([]int, 30+ec)
		for i := 0; i < 30; i++ {
			block[i] = i * 101 % 4096
		}
		require.NoError(t, NewEncoder(AztecData12).Encode(block, ec))
		want[ec] = block
	}

	var wg sync.WaitGroup
	for ec := 2; ec < 20; ec++ {
		wg.Add(1)
		go func(ec int) {
			defer wg.Done()
			block := make([]int, 30+ec)
			for i := 0; i < 30; i++ {
				block[i] = i * 101 % 4096
			}
			assert.NoError(t, enc.Encode(block, ec))
			assert.Equal(t, want[ec], block)
		}(ec)
	}
	wg.Wait()
	assert.Len(t, enc.cachedGenerators, 20)
}

func BenchmarkEncode(b *testing.B) {
	enc := NewEncoder(AztecData10)
	block := make([]int, 300)
	for i := range block {
		block[i] = i % 1024
	}
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if err := enc.Encode(block, 100); err != nil {
			b.Fatal(err)
		}
	}
}
