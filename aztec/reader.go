package aztec

import (
	"fmt"

	"github.com/ericlevine/aztecgo"
	"github.com/ericlevine/aztecgo/aztec/decoder"
	"github.com/ericlevine/aztecgo/aztec/encoder"
	"github.com/ericlevine/aztecgo/bitutil"
)

// Reader decodes upright Aztec symbols as rendered by Writer: centered in
// the image, scaled by a whole number of pixels per module, unrotated.
type Reader struct{}

// NewReader creates a new Aztec Reader.
func NewReader() *Reader {
	return &Reader{}
}

// grid samples module centers relative to the bullseye center.
type grid struct {
	image  *bitutil.BitMatrix
	cx, cy int
	module int
}

// sample extracts a size x size module matrix centered on the bullseye.
// Modules falling outside the image read as white.
func (g *grid) sample(size int) *bitutil.BitMatrix {
	m := bitutil.NewBitMatrix(size)
	half := size / 2
	for y := 0; y < size; y++ {
		py := g.cy + (y-half)*g.module
		for x := 0; x < size; x++ {
			px := g.cx + (x-half)*g.module
			if px >= 0 && py >= 0 && px < g.image.Width() && py < g.image.Height() && g.image.Get(px, py) {
				m.Set(x, y)
			}
		}
	}
	return m
}

// Decode finds the bullseye at the center of image, reads the mode message
// and decodes the symbol.
func (r *Reader) Decode(image *bitutil.BitMatrix) (*decoder.Result, error) {
	g, err := locate(image)
	if err != nil {
		return nil, err
	}

	compact := !fullBullsEye(g.sample(15))
	// The smallest matrix that still holds the mode message ring.
	probe := 15
	if compact {
		probe = 11
	}
	symbol, err := decoder.ReadSymbol(g.sample(probe), compact)
	if err != nil {
		return nil, err
	}
	symbol.Bits = g.sample(encoder.MatrixSize(symbol.Layers, compact))
	result, err := decoder.Decode(symbol)
	if err != nil {
		return nil, err
	}
	log.Debugw("aztec symbol read",
		"compact", compact,
		"layers", symbol.Layers,
		"module", g.module,
		"corrected", result.ErrorsCorrected)
	return result, nil
}

// fullBullsEye reports whether the ring six modules out from the center is
// solid, which only the seven ring bullseye of a full symbol has.
func fullBullsEye(m *bitutil.BitMatrix) bool {
	c := m.Width() / 2
	for i := -6; i <= 6; i++ {
		if !m.Get(c+i, c-6) || !m.Get(c+i, c+6) || !m.Get(c-6, c+i) || !m.Get(c+6, c+i) {
			return false
		}
	}
	return true
}

// locate measures the center module of the bullseye, which is a single
// black module surrounded by a white ring.
func locate(image *bitutil.BitMatrix) (*grid, error) {
	cx, cy := image.Width()/2, image.Height()/2
	if image.Width() == 0 || image.Height() == 0 || !image.Get(cx, cy) {
		return nil, fmt.Errorf("%w: no bullseye at image center", aztecgo.ErrFormat)
	}
	left, right := cx, cx
	for left > 0 && image.Get(left-1, cy) {
		left--
	}
	for right < image.Width()-1 && image.Get(right+1, cy) {
		right++
	}
	top, bottom := cy, cy
	for top > 0 && image.Get(cx, top-1) {
		top--
	}
	for bottom < image.Height()-1 && image.Get(cx, bottom+1) {
		bottom++
	}
	module := right - left + 1
	if bottom-top+1 != module {
		return nil, fmt.Errorf("%w: bullseye center is not square", aztecgo.ErrFormat)
	}
	return &grid{
		image:  image,
		cx:     left + module/2,
		cy:     top + module/2,
		module: module,
	}, nil
}
