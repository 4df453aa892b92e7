package vscene

// Circle is a filled disc with an optional border. Builder methods return
// a modified copy.
type Circle struct {
	center      Point
	radius      float64
	fill        Color
	borderWidth float64
	borderColor Color
}

// NewCircle returns an empty, transparent circle at the origin.
func NewCircle() Circle {
	return Circle{}
}

// Center sets the center point.
func (c Circle) Center(x, y float64) Circle {
	c.center = Pt(x, y)
	return c
}

// Radius sets the radius. Negative values clamp to zero.
func (c Circle) Radius(r float64) Circle {
	c.radius = nonNegative(r)
	return c
}

// Color sets the fill color.
func (c Circle) Color(red, green, blue uint8, alpha float64) Circle {
	c.fill = RGBA(red, green, blue, alpha)
	return c
}

// Border sets the border width and color.
func (c Circle) Border(width float64, red, green, blue uint8, alpha float64) Circle {
	c.borderWidth = nonNegative(width)
	c.borderColor = RGBA(red, green, blue, alpha)
	return c
}

// Disc returns the center point and radius.
func (c Circle) Disc() (center Point, radius float64) {
	return c.center, c.radius
}

// FillColor returns the fill color.
func (c Circle) FillColor() Color { return c.fill }

// BorderWidth returns the border width.
func (c Circle) BorderWidth() float64 { return c.borderWidth }

// BorderColor returns the border color.
func (c Circle) BorderColor() Color { return c.borderColor }

// HasBorder reports whether the border is visible.
func (c Circle) HasBorder() bool {
	return borderVisible(c.borderWidth, c.borderColor)
}

// Bounds returns the circle's bounding box.
func (c Circle) Bounds() Rect {
	return Rect{X: c.center.X - c.radius, Y: c.center.Y - c.radius, Width: 2 * c.radius, Height: 2 * c.radius}
}
