// Package color implements the sRGB transfer functions used by vscene.
//
// Author-facing colors are 8-bit sRGB. GPU vertex colors must be linear so
// that blending in the render pipeline is physically correct; canvas-style
// compositors take sRGB values unchanged. Alpha is never gamma-encoded.
package color

// ColorF32 represents a color with float32 components in [0,1].
// RGB components are in the color space indicated by context.
// Alpha is always linear (never gamma-encoded).
type ColorF32 struct {
	R, G, B, A float32
}

// ColorU8 represents a color with uint8 components in [0,255].
type ColorU8 struct {
	R, G, B, A uint8
}
