package focusmap

import (
	"bytes"
	"fmt"
	"image"
	"image/color/palette"
	"image/draw"
	"image/png"
	"io"

	"github.com/BourgeoisBear/rasterm"
	"github.com/mattn/go-sixel"
)

// Encoder names a sixel encoding strategy for terminal output.
type Encoder string

const (
	// EncoderRasterm quantizes to the Plan9 palette with
	// Floyd-Steinberg dithering before encoding. Best for the flat
	// colors graphviz produces.
	EncoderRasterm Encoder = "rasterm"

	// EncoderGoSixel hands the image to the go-sixel encoder, which
	// does its own palette reduction.
	EncoderGoSixel Encoder = "go-sixel"
)

// WriteSixel encodes PNG bytes as sixel escape sequences on w. An
// unknown encoder name falls back to rasterm.
func WriteSixel(w io.Writer, pngData []byte, enc Encoder) error {
	img, err := png.Decode(bytes.NewReader(pngData))
	if err != nil {
		return fmt.Errorf("failed to decode PNG for sixel output: %w", err)
	}

	switch enc {
	case EncoderGoSixel:
		encoder := sixel.NewEncoder(w)
		encoder.Dither = false
		if err := encoder.Encode(img); err != nil {
			return fmt.Errorf("sixel encode failed: %w", err)
		}
		return nil
	default:
		bounds := img.Bounds()
		palettedImg := image.NewPaletted(bounds, palette.Plan9)
		draw.FloydSteinberg.Draw(palettedImg, bounds, img, bounds.Min)
		if err := rasterm.SixelWriteImage(w, palettedImg); err != nil {
			return fmt.Errorf("sixel encode failed: %w", err)
		}
		return nil
	}
}
