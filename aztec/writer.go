// Package aztec renders Aztec symbols for output and reads rendered symbols
// back.
package aztec

import (
	"fmt"

	logging "github.com/ipfs/go-log/v2"

	"github.com/ericlevine/aztecgo"
	"github.com/ericlevine/aztecgo/aztec/encoder"
	"github.com/ericlevine/aztecgo/bitutil"
	"github.com/ericlevine/aztecgo/charset"
)

var log = logging.Logger("aztec")

// Writer encodes Aztec barcodes.
type Writer struct{}

// NewWriter creates a new Aztec Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Encode encodes contents into an Aztec symbol scaled to fit width x height.
// The result is never smaller than the symbol plus its quiet zone.
func (w *Writer) Encode(contents string, width, height int, opts *aztecgo.EncodeOptions) (*bitutil.BitMatrix, error) {
	if contents == "" {
		return nil, fmt.Errorf("%w: found empty contents", aztecgo.ErrWriter)
	}
	if width < 0 || height < 0 {
		return nil, fmt.Errorf("%w: requested dimensions are too small: %dx%d", aztecgo.ErrWriter, width, height)
	}
	margin := opts.MarginModules()
	if margin < 0 {
		return nil, fmt.Errorf("%w: negative margin %d", aztecgo.ErrWriter, margin)
	}

	data, eci, err := encodeContents(contents, opts)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", aztecgo.ErrWriter, err)
	}

	var layers int
	if opts != nil {
		layers = opts.AztecLayers
	}
	code, err := encoder.EncodeWithECI(data, opts.ErrorCorrection(), layers, eci)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", aztecgo.ErrWriter, err)
	}
	log.Debugw("aztec symbol encoded",
		"bytes", len(data),
		"compact", code.Compact,
		"layers", code.Layers,
		"size", code.Size)

	return renderMatrix(code.Matrix, width, height, margin), nil
}

// encodeContents converts contents to bytes. An explicit character set is
// always announced with an ECI. Without one, text that fits ISO-8859-1 goes
// out as is and anything else as UTF-8 under ECI 26.
func encodeContents(contents string, opts *aztecgo.EncodeOptions) ([]byte, *charset.ECI, error) {
	if opts != nil && opts.CharacterSet != "" {
		return charset.Encode(contents, opts.CharacterSet)
	}
	if data, err := charset.ECIISO8859_1.Encode(contents); err == nil {
		return data, nil, nil
	}
	log.Debugw("contents not representable in ISO-8859-1, using UTF-8")
	data, err := charset.ECIUTF8.Encode(contents)
	if err != nil {
		return nil, nil, err
	}
	return data, charset.ECIUTF8, nil
}

// renderMatrix scales code by the largest integer factor that fits
// width x height with margin modules of quiet zone on every side, and
// centers it.
func renderMatrix(code *bitutil.BitMatrix, width, height, margin int) *bitutil.BitMatrix {
	inputWidth := code.Width()
	inputHeight := code.Height()
	outputWidth := max(width, inputWidth+2*margin)
	outputHeight := max(height, inputHeight+2*margin)

	multiple := min(outputWidth/(inputWidth+2*margin), outputHeight/(inputHeight+2*margin))
	leftPadding := (outputWidth - inputWidth*multiple) / 2
	topPadding := (outputHeight - inputHeight*multiple) / 2

	result := bitutil.NewBitMatrixWithSize(outputWidth, outputHeight)
	for inputY := 0; inputY < inputHeight; inputY++ {
		outputY := topPadding + inputY*multiple
		for inputX := 0; inputX < inputWidth; inputX++ {
			if code.Get(inputX, inputY) {
				result.SetRegion(leftPadding+inputX*multiple, outputY, multiple, multiple)
			}
		}
	}
	return result
}

var _ aztecgo.Writer = (*Writer)(nil)
