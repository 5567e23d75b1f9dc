// Package bitutil provides the bit containers used while building a symbol:
// a growable BitArray for bit streams and a fixed-size BitMatrix for the
// symbol itself.
package bitutil

import "strings"

const loadFactor = 0.75

// BitArray is a simple, fast array of bits represented compactly by an array
// of uint32 values internally.
type BitArray struct {
	bits []uint32
	size int
}

// NewBitArray creates a new BitArray with the given size, all bits unset.
func NewBitArray(size int) *BitArray {
	if size <= 0 {
		return &BitArray{}
	}
	return &BitArray{
		bits: makeArray(size),
		size: size,
	}
}

// Size returns the number of bits in the array.
func (ba *BitArray) Size() int {
	return ba.size
}

func (ba *BitArray) ensureCapacity(newSize int) {
	if newSize > len(ba.bits)*32 {
		newBits := makeArray(int(float64(newSize) / loadFactor))
		copy(newBits, ba.bits)
		ba.bits = newBits
	}
}

func (ba *BitArray) check(i int) {
	if i < 0 || i >= ba.size {
		panic(&OutOfBoundsError{X: i, Width: ba.size})
	}
}

// Get returns true if bit i is set.
func (ba *BitArray) Get(i int) bool {
	ba.check(i)
	return (ba.bits[i/32] & (1 << uint(i&0x1F))) != 0
}

// Set sets bit i.
func (ba *BitArray) Set(i int) {
	ba.check(i)
	ba.bits[i/32] |= 1 << uint(i&0x1F)
}

// Flip flips bit i.
func (ba *BitArray) Flip(i int) {
	ba.check(i)
	ba.bits[i/32] ^= 1 << uint(i&0x1F)
}

// AppendBit appends a single bit.
func (ba *BitArray) AppendBit(bit bool) {
	ba.ensureCapacity(ba.size + 1)
	if bit {
		ba.bits[ba.size/32] |= 1 << uint(ba.size&0x1F)
	}
	ba.size++
}

// AppendBits appends the least-significant numBits bits of value, from most
// significant to least significant.
func (ba *BitArray) AppendBits(value uint32, numBits int) {
	if numBits < 0 || numBits > 32 {
		panic("bitarray: numBits must be between 0 and 32")
	}
	nextSize := ba.size
	ba.ensureCapacity(nextSize + numBits)
	for numBitsLeft := numBits - 1; numBitsLeft >= 0; numBitsLeft-- {
		if (value & (1 << uint(numBitsLeft))) != 0 {
			ba.bits[nextSize/32] |= 1 << uint(nextSize&0x1F)
		}
		nextSize++
	}
	ba.size = nextSize
}

// AppendBitArray appends another BitArray to this one.
func (ba *BitArray) AppendBitArray(other *BitArray) {
	ba.ensureCapacity(ba.size + other.size)
	for i := 0; i < other.size; i++ {
		ba.AppendBit(other.Get(i))
	}
}

// ReadBits returns numBits bits starting at offset as an integer, most
// significant bit first.
func (ba *BitArray) ReadBits(offset, numBits int) int {
	value := 0
	for i := offset; i < offset+numBits; i++ {
		value <<= 1
		if ba.Get(i) {
			value |= 1
		}
	}
	return value
}

// Clone returns a copy of this BitArray.
func (ba *BitArray) Clone() *BitArray {
	b := make([]uint32, len(ba.bits))
	copy(b, ba.bits)
	return &BitArray{bits: b, size: ba.size}
}

// String returns a string representation using 'X' for set and '.' for unset.
func (ba *BitArray) String() string {
	var sb strings.Builder
	sb.Grow(ba.size + ba.size/8 + 1)
	for i := 0; i < ba.size; i++ {
		if i&0x07 == 0 {
			sb.WriteByte(' ')
		}
		if ba.Get(i) {
			sb.WriteByte('X')
		} else {
			sb.WriteByte('.')
		}
	}
	return sb.String()
}

func makeArray(size int) []uint32 {
	return make([]uint32, (size+31)/32)
}
