package main

import (
	"strings"

	"github.com/ericlevine/aztecgo/bitutil"
)

// render draws matrix with two characters per module when it fits in cols
// terminal columns, and with half blocks, one character per two rows,
// otherwise. cols <= 0 means the width is unknown.
func render(matrix *bitutil.BitMatrix, cols int, invert bool) string {
	dark := func(x, y int) bool {
		if y >= matrix.Height() {
			return invert
		}
		return matrix.Get(x, y) != invert
	}

	var sb strings.Builder
	if cols <= 0 || matrix.Width()*2 <= cols {
		for y := 0; y < matrix.Height(); y++ {
			for x := 0; x < matrix.Width(); x++ {
				if dark(x, y) {
					sb.WriteString("██")
				} else {
					sb.WriteString("  ")
				}
			}
			sb.WriteByte('\n')
		}
		return sb.String()
	}

	for y := 0; y < matrix.Height(); y += 2 {
		for x := 0; x < matrix.Width(); x++ {
			top, bottom := dark(x, y), dark(x, y+1)
			switch {
			case top && bottom:
				sb.WriteString("█")
			case top:
				sb.WriteString("▀")
			case bottom:
				sb.WriteString("▄")
			default:
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}
