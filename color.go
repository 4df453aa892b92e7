package vscene

import (
	"image/color"

	icolor "github.com/gogpu/vscene/internal/color"
)

// ColorSpace identifies the color space a compositor expects for shape colors.
type ColorSpace uint8

const (
	// ColorSpaceSRGB submits author colors unchanged. Canvas-style
	// compositors that do their own gamma handling expect this.
	ColorSpaceSRGB ColorSpace = iota

	// ColorSpaceLinear submits colors converted with the sRGB transfer
	// function. GPU vertex colors must use this space so that blending
	// happens on linear light.
	ColorSpaceLinear
)

// String returns the color space name.
func (s ColorSpace) String() string {
	switch s {
	case ColorSpaceSRGB:
		return "sRGB"
	case ColorSpaceLinear:
		return "linear"
	default:
		return "unknown"
	}
}

// Color is the author-facing color: 8-bit sRGB channels with a
// floating-point alpha in [0, 1].
type Color struct {
	R, G, B uint8
	A       float64
}

// ColorF is the normalized internal color form. All components are in
// [0, 1]; RGB is in the color space it was produced for and alpha is
// straight (not premultiplied).
type ColorF struct {
	R, G, B, A float32
}

// Common colors.
var (
	Black       = Color{A: 1}
	White       = Color{R: 255, G: 255, B: 255, A: 1}
	Transparent = Color{}
)

// RGBA creates a color. Alpha is clamped to [0, 1]; NaN becomes 0.
func RGBA(r, g, b uint8, a float64) Color {
	return Color{R: r, G: g, B: b, A: icolor.Clamp01(a)}
}

// RGB creates an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 1}
}

// Visible reports whether the color contributes anything when painted.
func (c Color) Visible() bool {
	return c.A > 0
}

// Normalized returns the color with channels mapped to [0, 1] and no
// transfer function applied.
func (c Color) Normalized() ColorF {
	return ColorF{
		R: float32(c.R) / 255,
		G: float32(c.G) / 255,
		B: float32(c.B) / 255,
		A: float32(icolor.Clamp01(c.A)),
	}
}

// Linear returns the color converted to linear light. Alpha is passed
// through untouched.
func (c Color) Linear() ColorF {
	return ColorF{
		R: icolor.SRGB8ToLinear(c.R),
		G: icolor.SRGB8ToLinear(c.G),
		B: icolor.SRGB8ToLinear(c.B),
		A: float32(icolor.Clamp01(c.A)),
	}
}

// In returns the color in the given space.
func (c Color) In(space ColorSpace) ColorF {
	if space == ColorSpaceLinear {
		return c.Linear()
	}
	return c.Normalized()
}

// NRGBA converts the color to a non-premultiplied 8-bit color.
func (c Color) NRGBA() color.NRGBA {
	a := icolor.F32ToU8(icolor.ColorF32{A: float32(icolor.Clamp01(c.A))}).A
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: a}
}

// Array returns the components as a vertex attribute.
func (c ColorF) Array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// SRGB converts a linear color back to the sRGB transfer curve.
func (c ColorF) SRGB() ColorF {
	out := icolor.LinearToSRGBColor(icolor.ColorF32(c))
	return ColorF(out)
}

// NRGBA converts the color to 8 bits per channel without changing its
// transfer curve.
func (c ColorF) NRGBA() color.NRGBA {
	u := icolor.F32ToU8(icolor.ColorF32(c))
	return color.NRGBA{R: u.R, G: u.G, B: u.B, A: u.A}
}
