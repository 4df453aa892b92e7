package vscene

// Rectangle is an axis-aligned box with an optional border and optional
// rounded corners. Builder methods return a modified copy.
type Rectangle struct {
	origin      Point
	size        Size
	fill        Color
	radii       CornerRadii
	borderWidth float64
	borderColor Color
}

// NewRectangle returns an empty, transparent rectangle at the origin.
func NewRectangle() Rectangle {
	return Rectangle{}
}

// Position sets the top-left corner.
func (r Rectangle) Position(x, y float64) Rectangle {
	r.origin = Pt(x, y)
	return r
}

// Size sets the width and height. Negative values clamp to zero.
func (r Rectangle) Size(w, h float64) Rectangle {
	r.size = Sz(w, h)
	return r
}

// Color sets the fill color.
func (r Rectangle) Color(red, green, blue uint8, alpha float64) Rectangle {
	r.fill = RGBA(red, green, blue, alpha)
	return r
}

// RoundedCorners sets per-corner radii. Negative values clamp to zero.
func (r Rectangle) RoundedCorners(tl, tr, bl, br float64) Rectangle {
	r.radii = Radii(tl, tr, bl, br)
	return r
}

// Border sets the border width and color. The border is drawn centered on
// the rectangle's edge; the fill shrinks so it does not show through.
func (r Rectangle) Border(width float64, red, green, blue uint8, alpha float64) Rectangle {
	r.borderWidth = nonNegative(width)
	r.borderColor = RGBA(red, green, blue, alpha)
	return r
}

// FillColor returns the fill color.
func (r Rectangle) FillColor() Color { return r.fill }

// Radii returns the corner radii as set, before clamping to the size.
func (r Rectangle) Radii() CornerRadii { return r.radii }

// BorderWidth returns the border width.
func (r Rectangle) BorderWidth() float64 { return r.borderWidth }

// BorderColor returns the border color.
func (r Rectangle) BorderColor() Color { return r.borderColor }

// HasBorder reports whether the border is visible: positive width and a
// color with non-zero alpha.
func (r Rectangle) HasBorder() bool {
	return borderVisible(r.borderWidth, r.borderColor)
}

// Bounds returns the rectangle's outer box.
func (r Rectangle) Bounds() Rect {
	return Rect{X: r.origin.X, Y: r.origin.Y, Width: r.size.Width, Height: r.size.Height}
}

func borderVisible(width float64, c Color) bool {
	return width > 0 && c.A > 0
}
