package vscene

// Line is an open polyline stroked with round caps and round joins.
type Line struct {
	points []Point
	width  float64
	color  Color
}

// NewLine returns an empty line.
func NewLine() Line {
	return Line{}
}

// Points sets the vertices. The slice is copied so later changes by the
// caller do not leak into the line.
func (l Line) Points(pts ...Point) Line {
	l.points = append([]Point(nil), pts...)
	return l
}

// Width sets the stroke width. Negative values clamp to zero.
func (l Line) Width(w float64) Line {
	l.width = nonNegative(w)
	return l
}

// Color sets the stroke color.
func (l Line) Color(red, green, blue uint8, alpha float64) Line {
	l.color = RGBA(red, green, blue, alpha)
	return l
}

// Vertices returns a copy of the line's points.
func (l Line) Vertices() []Point {
	return append([]Point(nil), l.points...)
}

// StrokeWidth returns the stroke width.
func (l Line) StrokeWidth() float64 { return l.width }

// StrokeColor returns the stroke color.
func (l Line) StrokeColor() Color { return l.color }
