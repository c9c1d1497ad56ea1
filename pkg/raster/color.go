package raster

import (
	"image/color"
	"math"
)

// EmptyAlpha is the alpha below which a pixel counts as background.
const EmptyAlpha = 0.1

// Alpha thresholds used when classifying pixels. Reference patterns may be
// anti-aliased at shape edges, painted pixels are expected to be opaque.
const (
	ReferenceAlpha = 0.1
	PlayerAlpha    = 0.5
)

// Color is an RGBA colour with every channel in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Transparent is the zero colour.
var Transparent = Color{}

// RGB returns an opaque colour.
func RGB(r, g, b float64) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// FromColor converts a standard library colour. The result is not
// premultiplied.
func FromColor(c color.Color) Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	return Color{
		R: float64(n.R) / 255,
		G: float64(n.G) / 255,
		B: float64(n.B) / 255,
		A: float64(n.A) / 255,
	}
}

// NRGBA converts back to an 8-bit colour.
func (c Color) NRGBA() color.NRGBA {
	return color.NRGBA{
		R: to8(c.R),
		G: to8(c.G),
		B: to8(c.B),
		A: to8(c.A),
	}
}

// IsEmpty reports whether the pixel is background.
func (c Color) IsEmpty() bool {
	return c.A < EmptyAlpha
}

func to8(v float64) uint8 {
	if math.IsNaN(v) || v <= 0 {
		return 0
	}
	if v >= 1 {
		return 255
	}
	return uint8(math.Round(v * 255))
}
