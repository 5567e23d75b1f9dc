package bitutil

import "strings"

// BitMatrix represents a fixed-size 2D matrix of bits (modules).
// x is the column position, y is the row position. The origin is at the
// top-left. Addressing a module outside the matrix panics with an
// *OutOfBoundsError.
type BitMatrix struct {
	width   int
	height  int
	rowSize int
	data    []uint32
}

// NewBitMatrix creates a new square BitMatrix with the given dimension.
func NewBitMatrix(dimension int) *BitMatrix {
	return NewBitMatrixWithSize(dimension, dimension)
}

// NewBitMatrixWithSize creates a new BitMatrix with the given width and height.
func NewBitMatrixWithSize(width, height int) *BitMatrix {
	if width < 1 || height < 1 {
		panic("bitmatrix: dimensions must be greater than 0")
	}
	rowSize := (width + 31) / 32
	return &BitMatrix{
		width:   width,
		height:  height,
		rowSize: rowSize,
		data:    make([]uint32, rowSize*height),
	}
}

// ParseStringMatrix creates a BitMatrix from a string representation.
func ParseStringMatrix(repr, setStr, unsetStr string) *BitMatrix {
	var bts []bool
	rowLength := -1
	nRows := 0
	rowStart := 0
	endRow := func() {
		if len(bts) == rowStart {
			return
		}
		if rowLength == -1 {
			rowLength = len(bts) - rowStart
		} else if len(bts)-rowStart != rowLength {
			panic("bitmatrix: row lengths do not match")
		}
		rowStart = len(bts)
		nRows++
	}
	for pos := 0; pos < len(repr); {
		switch {
		case repr[pos] == '\n' || repr[pos] == '\r':
			endRow()
			pos++
		case strings.HasPrefix(repr[pos:], setStr):
			bts = append(bts, true)
			pos += len(setStr)
		case strings.HasPrefix(repr[pos:], unsetStr):
			bts = append(bts, false)
			pos += len(unsetStr)
		default:
			panic("bitmatrix: illegal character encountered")
		}
	}
	endRow()
	matrix := NewBitMatrixWithSize(rowLength, nRows)
	for i, b := range bts {
		if b {
			matrix.Set(i%rowLength, i/rowLength)
		}
	}
	return matrix
}

func (bm *BitMatrix) offset(x, y int) int {
	if x < 0 || x >= bm.width || y < 0 || y >= bm.height {
		panic(&OutOfBoundsError{X: x, Y: y, Width: bm.width, Height: bm.height})
	}
	return y*bm.rowSize + x/32
}

// Get returns true if the bit at (x, y) is set.
func (bm *BitMatrix) Get(x, y int) bool {
	return (bm.data[bm.offset(x, y)]>>uint(x&0x1f))&1 != 0
}

// Set sets the bit at (x, y).
func (bm *BitMatrix) Set(x, y int) {
	bm.data[bm.offset(x, y)] |= 1 << uint(x&0x1f)
}

// Unset clears the bit at (x, y).
func (bm *BitMatrix) Unset(x, y int) {
	bm.data[bm.offset(x, y)] &^= 1 << uint(x&0x1f)
}

// Put sets or clears the bit at (x, y).
func (bm *BitMatrix) Put(x, y int, value bool) {
	if value {
		bm.Set(x, y)
	} else {
		bm.Unset(x, y)
	}
}

// Flip flips the bit at (x, y).
func (bm *BitMatrix) Flip(x, y int) {
	bm.data[bm.offset(x, y)] ^= 1 << uint(x&0x1f)
}

// Clear clears all bits.
func (bm *BitMatrix) Clear() {
	for i := range bm.data {
		bm.data[i] = 0
	}
}

// SetRegion sets a rectangular region of bits.
func (bm *BitMatrix) SetRegion(left, top, width, height int) {
	if top < 0 || left < 0 {
		panic("bitmatrix: left and top must be nonnegative")
	}
	if height < 1 || width < 1 {
		panic("bitmatrix: height and width must be at least 1")
	}
	right := left + width
	bottom := top + height
	if bottom > bm.height || right > bm.width {
		panic("bitmatrix: region must fit inside the matrix")
	}
	for y := top; y < bottom; y++ {
		offset := y * bm.rowSize
		for x := left; x < right; x++ {
			bm.data[offset+x/32] |= 1 << uint(x&0x1f)
		}
	}
}

// EnclosingRectangle returns [left, top, width, height] of the enclosing
// rectangle of all set bits, or nil if all bits are unset.
func (bm *BitMatrix) EnclosingRectangle() []int {
	left, top := bm.width, bm.height
	right, bottom := -1, -1
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if !bm.Get(x, y) {
				continue
			}
			left = min(left, x)
			right = max(right, x)
			top = min(top, y)
			bottom = max(bottom, y)
		}
	}
	if right < left || bottom < top {
		return nil
	}
	return []int{left, top, right - left + 1, bottom - top + 1}
}

// CountSet returns the number of set bits.
func (bm *BitMatrix) CountSet() int {
	n := 0
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				n++
			}
		}
	}
	return n
}

// Width returns the width.
func (bm *BitMatrix) Width() int { return bm.width }

// Height returns the height.
func (bm *BitMatrix) Height() int { return bm.height }

// Clone returns a deep copy of the BitMatrix.
func (bm *BitMatrix) Clone() *BitMatrix {
	d := make([]uint32, len(bm.data))
	copy(d, bm.data)
	return &BitMatrix{width: bm.width, height: bm.height, rowSize: bm.rowSize, data: d}
}

// String returns a string representation using "X " for set and "  " for unset.
func (bm *BitMatrix) String() string {
	return bm.StringWithChars("X ", "  ")
}

// StringWithChars returns a string representation using the given set/unset strings.
func (bm *BitMatrix) StringWithChars(setString, unsetString string) string {
	var sb strings.Builder
	sb.Grow(bm.height * (bm.width*len(setString) + 1))
	for y := 0; y < bm.height; y++ {
		for x := 0; x < bm.width; x++ {
			if bm.Get(x, y) {
				sb.WriteString(setString)
			} else {
				sb.WriteString(unsetString)
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Equals returns true if two BitMatrices are equal.
func (bm *BitMatrix) Equals(other *BitMatrix) bool {
	if bm.width != other.width || bm.height != other.height {
		return false
	}
	for i := range bm.data {
		if bm.data[i] != other.data[i] {
			return false
		}
	}
	return true
}
