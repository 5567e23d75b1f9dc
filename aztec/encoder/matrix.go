package encoder

import "github.com/ericlevine/aztecgo/bitutil"

// BaseMatrixSize is the symbol side length before reference grid lines
// are inserted.
func BaseMatrixSize(layers int, compact bool) int {
	if compact {
		return layers*4 + 11
	}
	return layers*4 + 14
}

// MatrixSize is the full symbol side length. Full symbols get a reference
// grid line every 16 modules out from the center.
func MatrixSize(layers int, compact bool) int {
	base := BaseMatrixSize(layers, compact)
	if compact {
		return base
	}
	return base + 1 + 2*((base/2-1)/15)
}

// AlignmentMap maps a base matrix coordinate to a symbol coordinate,
// skipping reference grid lines.
func AlignmentMap(layers int, compact bool) []int {
	base := BaseMatrixSize(layers, compact)
	m := make([]int, base)
	if compact {
		for i := range m {
			m[i] = i
		}
		return m
	}
	origCenter := base / 2
	center := MatrixSize(layers, compact) / 2
	for i := 0; i < origCenter; i++ {
		newOffset := i + i/15
		m[origCenter-i-1] = center - newOffset - 1
		m[origCenter+i] = center + newOffset + 1
	}
	return m
}

// LayerModules calls fn for every data module in placement order, passing
// the bit index into the layered stream and the module coordinates. Layers
// run from the outside in; each is four two-module-wide sides walked
// clockwise starting at the top left.
func LayerModules(layers int, compact bool, fn func(bit, x, y int)) {
	base := BaseMatrixSize(layers, compact)
	am := AlignmentMap(layers, compact)
	rowOffset := 0
	for i := 0; i < layers; i++ {
		rowSize := (layers-i)*4 + 12
		if compact {
			rowSize = (layers-i)*4 + 9
		}
		low := i * 2
		high := base - 1 - low
		for j := 0; j < rowSize; j++ {
			columnOffset := j * 2
			for k := 0; k < 2; k++ {
				fn(rowOffset+columnOffset+k, am[low+k], am[low+j])
				fn(rowOffset+rowSize*2+columnOffset+k, am[low+j], am[high-k])
				fn(rowOffset+rowSize*4+columnOffset+k, am[high-k], am[high-j])
				fn(rowOffset+rowSize*6+columnOffset+k, am[high-j], am[low+k])
			}
		}
		rowOffset += rowSize * 8
	}
}

// ModeMessageModules calls fn for each mode message bit with the module it
// occupies around the bullseye of a symbol with the given side length.
func ModeMessageModules(compact bool, matrixSize int, fn func(bit, x, y int)) {
	center := matrixSize / 2
	if compact {
		for i := 0; i < 7; i++ {
			offset := center - 3 + i
			fn(i, offset, center-5)
			fn(i+7, center+5, offset)
			fn(20-i, offset, center+5)
			fn(27-i, center-5, offset)
		}
		return
	}
	for i := 0; i < 10; i++ {
		offset := center - 5 + i + i/5
		fn(i, offset, center-7)
		fn(i+10, center+7, offset)
		fn(29-i, offset, center+7)
		fn(39-i, center-7, offset)
	}
}

func drawSymbol(compact bool, layers int, messageBits, modeMessage *bitutil.BitArray) *bitutil.BitMatrix {
	matrixSize := MatrixSize(layers, compact)
	matrix := bitutil.NewBitMatrix(matrixSize)

	LayerModules(layers, compact, func(bit, x, y int) {
		if messageBits.Get(bit) {
			matrix.Set(x, y)
		}
	})
	ModeMessageModules(compact, matrixSize, func(bit, x, y int) {
		if modeMessage.Get(bit) {
			matrix.Set(x, y)
		}
	})

	center := matrixSize / 2
	if compact {
		drawBullsEye(matrix, center, 5)
		return matrix
	}
	drawBullsEye(matrix, center, 7)
	drawReferenceGrid(matrix, BaseMatrixSize(layers, compact))
	return matrix
}

// drawBullsEye draws the concentric finder rings and the orientation marks
// in three of the corners just outside them.
func drawBullsEye(matrix *bitutil.BitMatrix, center, size int) {
	for i := 0; i < size; i += 2 {
		for j := center - i; j <= center+i; j++ {
			matrix.Set(j, center-i)
			matrix.Set(j, center+i)
			matrix.Set(center-i, j)
			matrix.Set(center+i, j)
		}
	}
	matrix.Set(center-size, center-size)
	matrix.Set(center-size+1, center-size)
	matrix.Set(center-size, center-size+1)
	matrix.Set(center+size, center-size)
	matrix.Set(center+size, center-size+1)
	matrix.Set(center+size, center+size-1)
}

// drawReferenceGrid draws alternating modules along every 16th row and
// column counted from the center.
func drawReferenceGrid(matrix *bitutil.BitMatrix, baseMatrixSize int) {
	matrixSize := matrix.Width()
	center := matrixSize / 2
	for i, j := 0, 0; i < baseMatrixSize/2-1; i, j = i+15, j+16 {
		for k := center & 1; k < matrixSize; k += 2 {
			matrix.Set(center-j, k)
			matrix.Set(center+j, k)
			matrix.Set(k, center-j)
			matrix.Set(k, center+j)
		}
	}
}
