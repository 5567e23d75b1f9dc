package aztecgo

import "github.com/ericlevine/aztecgo/bitutil"

// Defaults applied when the matching EncodeOptions field is left zero.
const (
	DefaultErrorCorrectionPercent = 33
	DefaultMargin                 = 1
)

// EncodeOptions configures barcode encoding behavior.
type EncodeOptions struct {
	// ErrorCorrectionPercent is the minimum share of the symbol, in percent
	// of the data bits, given to error correction. Zero means
	// DefaultErrorCorrectionPercent.
	ErrorCorrectionPercent int

	// AztecLayers forces a layer count: negative values select a compact
	// symbol with that many layers (-1..-4), positive values a full symbol
	// (1..32). Zero picks the smallest symbol that fits.
	AztecLayers int

	// CharacterSet specifies the character set to use when encoding. When
	// set, an ECI designator is written into the symbol.
	CharacterSet string

	// Margin specifies the margin (quiet zone) in modules around the barcode.
	Margin *int
}

// ErrorCorrection returns the effective error correction percentage.
func (o *EncodeOptions) ErrorCorrection() int {
	if o == nil || o.ErrorCorrectionPercent == 0 {
		return DefaultErrorCorrectionPercent
	}
	return o.ErrorCorrectionPercent
}

// MarginModules returns the effective quiet zone width in modules.
func (o *EncodeOptions) MarginModules() int {
	if o == nil || o.Margin == nil {
		return DefaultMargin
	}
	return *o.Margin
}

// Writer encodes data into a barcode.
type Writer interface {
	// Encode encodes the given contents into a barcode scaled to at least
	// width x height.
	Encode(contents string, width, height int, opts *EncodeOptions) (*bitutil.BitMatrix, error)
}
