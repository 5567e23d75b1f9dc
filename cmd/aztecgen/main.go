package main

import (
	"flag"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"io"
	"os"
	"strings"

	logging "github.com/ipfs/go-log/v2"

	"github.com/ericlevine/aztecgo"
	"github.com/ericlevine/aztecgo/aztec"
	"github.com/ericlevine/aztecgo/bitutil"
)

func main() {
	ec := flag.Int("ec", aztecgo.DefaultErrorCorrectionPercent, "minimum error correction, in percent of the data")
	layers := flag.Int("layers", 0, "force the layer count: -1..-4 compact, 1..32 full, 0 automatic")
	charsetName := flag.String("charset", "", "character set for the contents, announced with an ECI")
	margin := flag.Int("margin", aztecgo.DefaultMargin, "quiet zone in modules")
	output := flag.String("o", "", "write a PNG image to this file instead of printing to the terminal")
	scale := flag.Int("scale", 8, "pixels per module for PNG output")
	invert := flag.Bool("invert", false, "swap dark and light when printing to the terminal")
	check := flag.Bool("check", false, "read the symbol back and verify the contents")
	verbose := flag.Bool("v", false, "log encoder decisions")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: aztecgen [flags] [text...]\n\n")
		fmt.Fprintf(os.Stderr, "Encode text as an Aztec barcode. Reads standard input when no text is given.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if *verbose {
		if err := logging.SetLogLevelRegex("^aztec", "debug"); err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
	}

	contents, err := readContents(flag.Args(), os.Stdin)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}

	opts := &aztecgo.EncodeOptions{
		ErrorCorrectionPercent: *ec,
		AztecLayers:            *layers,
		CharacterSet:           *charsetName,
		Margin:                 margin,
	}

	if *output != "" {
		err = writePNG(*output, contents, opts, *scale, *check)
	} else {
		err = printSymbol(os.Stdout, contents, opts, *invert, *check)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

// readContents joins the arguments with spaces, or reads all of r when
// there are none. A single trailing newline from r is dropped.
func readContents(args []string, r io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("read stdin: %w", err)
	}
	s := strings.TrimSuffix(string(data), "\n")
	return strings.TrimSuffix(s, "\r"), nil
}

func verify(matrix *bitutil.BitMatrix, contents string) error {
	result, err := aztec.NewReader().Decode(matrix)
	if err != nil {
		return fmt.Errorf("check: %w", err)
	}
	if result.Text != contents {
		return fmt.Errorf("check: read back %q", result.Text)
	}
	return nil
}

func printSymbol(w io.Writer, contents string, opts *aztecgo.EncodeOptions, invert, check bool) error {
	matrix, err := aztec.NewWriter().Encode(contents, 0, 0, opts)
	if err != nil {
		return err
	}
	if check {
		if err := verify(matrix, contents); err != nil {
			return err
		}
	}
	cols, _ := terminalSize()
	_, err = io.WriteString(w, render(matrix, cols, invert))
	return err
}

func writePNG(path, contents string, opts *aztecgo.EncodeOptions, scale int, check bool) error {
	if scale < 1 {
		return fmt.Errorf("scale must be positive, got %d", scale)
	}
	plain, err := aztec.NewWriter().Encode(contents, 0, 0, opts)
	if err != nil {
		return err
	}
	matrix, err := aztec.NewWriter().Encode(contents, plain.Width()*scale, plain.Height()*scale, opts)
	if err != nil {
		return err
	}
	if check {
		if err := verify(matrix, contents); err != nil {
			return err
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := png.Encode(f, toImage(matrix)); err != nil {
		f.Close()
		return fmt.Errorf("encode png: %w", err)
	}
	return f.Close()
}

func toImage(matrix *bitutil.BitMatrix) image.Image {
	img := image.NewGray(image.Rect(0, 0, matrix.Width(), matrix.Height()))
	for y := 0; y < matrix.Height(); y++ {
		for x := 0; x < matrix.Width(); x++ {
			if matrix.Get(x, y) {
				img.SetGray(x, y, color.Gray{Y: 0})
			} else {
				img.SetGray(x, y, color.Gray{Y: 0xff})
			}
		}
	}
	return img
}
