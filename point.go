package vscene

import "math"

// Point represents a 2D point or vector in logical pixels.
type Point struct {
	X, Y float64
}

// Pt is a convenience function to create a Point.
func Pt(x, y float64) Point {
	return Point{X: x, Y: y}
}

// Add returns the sum of two points (vector addition).
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two points (vector subtraction).
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the point scaled by a scalar.
func (p Point) Mul(s float64) Point {
	return Point{X: p.X * s, Y: p.Y * s}
}

// Dot returns the dot product of two vectors.
func (p Point) Dot(q Point) float64 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (scalar).
func (p Point) Cross(q Point) float64 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Point) Length() float64 {
	return math.Hypot(p.X, p.Y)
}

// Distance returns the distance between two points.
func (p Point) Distance(q Point) float64 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction.
// The zero vector is returned unchanged.
func (p Point) Normalize() Point {
	l := p.Length()
	if l == 0 {
		return p
	}
	return Point{X: p.X / l, Y: p.Y / l}
}

// Perp returns the vector rotated by 90 degrees: (-y, x).
func (p Point) Perp() Point {
	return Point{X: -p.Y, Y: p.X}
}

// IsFinite reports whether both coordinates are finite numbers.
func (p Point) IsFinite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Size is a width and height pair. Both components are non-negative.
type Size struct {
	Width, Height float64
}

// Sz creates a Size, clamping negative components to zero.
func Sz(w, h float64) Size {
	return Size{Width: nonNegative(w), Height: nonNegative(h)}
}

// Empty reports whether either dimension is zero.
func (s Size) Empty() bool {
	return s.Width <= 0 || s.Height <= 0
}

// CornerRadii holds one radius per rectangle corner. All radii are >= 0.
type CornerRadii struct {
	TopLeft, TopRight, BottomLeft, BottomRight float64
}

// Radii creates CornerRadii, clamping negative values to zero.
func Radii(tl, tr, bl, br float64) CornerRadii {
	return CornerRadii{
		TopLeft:     nonNegative(tl),
		TopRight:    nonNegative(tr),
		BottomLeft:  nonNegative(bl),
		BottomRight: nonNegative(br),
	}
}

// UniformRadii returns CornerRadii with the same radius on every corner.
func UniformRadii(r float64) CornerRadii {
	return Radii(r, r, r, r)
}

// IsZero reports whether every corner is square.
func (c CornerRadii) IsZero() bool {
	return c.TopLeft <= 0 && c.TopRight <= 0 && c.BottomLeft <= 0 && c.BottomRight <= 0
}

// Shrink subtracts d from every radius, never going below zero.
func (c CornerRadii) Shrink(d float64) CornerRadii {
	return CornerRadii{
		TopLeft:     math.Max(c.TopLeft-d, 0),
		TopRight:    math.Max(c.TopRight-d, 0),
		BottomLeft:  math.Max(c.BottomLeft-d, 0),
		BottomRight: math.Max(c.BottomRight-d, 0),
	}
}

// Clamp limits every radius to min(r, w/2, h/2).
func (c CornerRadii) Clamp(w, h float64) CornerRadii {
	limit := math.Max(math.Min(w, h)/2, 0)
	return CornerRadii{
		TopLeft:     math.Min(c.TopLeft, limit),
		TopRight:    math.Min(c.TopRight, limit),
		BottomLeft:  math.Min(c.BottomLeft, limit),
		BottomRight: math.Min(c.BottomRight, limit),
	}
}

// Rect is an axis-aligned rectangle given by its top-left corner and size.
type Rect struct {
	X, Y, Width, Height float64
}

// Inset shrinks the rectangle by d on every side. The resulting width and
// height may be zero or negative; callers check Empty.
func (r Rect) Inset(d float64) Rect {
	return Rect{X: r.X + d, Y: r.Y + d, Width: r.Width - 2*d, Height: r.Height - 2*d}
}

// Empty reports whether the rectangle has no area.
func (r Rect) Empty() bool {
	return !(r.Width > 0 && r.Height > 0)
}

// Max returns the bottom-right corner.
func (r Rect) Max() Point {
	return Point{X: r.X + r.Width, Y: r.Y + r.Height}
}

func nonNegative(v float64) float64 {
	if v > 0 {
		return v
	}
	return 0
}
