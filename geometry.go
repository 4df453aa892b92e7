package vscene

import "math"

// OutlineKind identifies the shape of a resolved Outline.
type OutlineKind uint8

// Outline kinds.
const (
	OutlineRect OutlineKind = iota
	OutlineRoundRect
	OutlineCircle
	OutlinePolyline
)

func (k OutlineKind) String() string {
	switch k {
	case OutlineRect:
		return "rect"
	case OutlineRoundRect:
		return "round-rect"
	case OutlineCircle:
		return "circle"
	case OutlinePolyline:
		return "polyline"
	default:
		return "unknown"
	}
}

// Outline is a resolved fill or stroke path in logical pixels.
type Outline struct {
	Kind OutlineKind

	// Rect and Radii are set for OutlineRect and OutlineRoundRect.
	// Radii are already clamped to min(r, w/2, h/2).
	Rect  Rect
	Radii CornerRadii

	// Center and Radius are set for OutlineCircle.
	Center Point
	Radius float64

	// Points and Closed are set for OutlinePolyline.
	Points []Point
	Closed bool
}

// Path builds the outline as a path.
func (o *Outline) Path() *Path {
	p := NewPath()
	switch o.Kind {
	case OutlineRect:
		p.Rectangle(o.Rect.X, o.Rect.Y, o.Rect.Width, o.Rect.Height)
	case OutlineRoundRect:
		p.RoundedRectangle(o.Rect.X, o.Rect.Y, o.Rect.Width, o.Rect.Height, o.Radii)
	case OutlineCircle:
		p.Circle(o.Center.X, o.Center.Y, o.Radius)
	case OutlinePolyline:
		p.Polyline(o.Points, o.Closed)
	}
	return p
}

// Geometry is the resolved form of a shape: an optional fill outline and an
// optional stroke outline with its width. A nil outline draws nothing.
type Geometry struct {
	Fill        *Outline
	FillColor   Color
	Stroke      *Outline
	StrokeWidth float64
	StrokeColor Color
}

// Empty reports whether the geometry draws nothing.
func (g Geometry) Empty() bool {
	return g.Fill == nil && g.Stroke == nil
}

// Geometry resolves the rectangle into its fill and border outlines.
//
// With a visible border the fill is inset by the full border width and
// its corner radii shrink by the same amount. The border outline sits on
// the middle of the border band: inset by half the width from the
// original edge with radii shrunk by half the width.
func (r Rectangle) Geometry() Geometry {
	g := Geometry{FillColor: r.fill, StrokeColor: r.borderColor}
	outer := r.Bounds()
	if !finiteRect(outer) {
		return Geometry{}
	}

	hasBorder := r.HasBorder()
	inset := 0.0
	if hasBorder {
		inset = r.borderWidth
	}

	g.Fill = rectOutline(outer.Inset(inset), r.radii.Shrink(inset))

	if hasBorder {
		half := r.borderWidth / 2
		g.Stroke = rectOutline(outer.Inset(half), r.radii.Shrink(half))
		if g.Stroke != nil {
			g.StrokeWidth = r.borderWidth
		}
	}
	return g
}

func rectOutline(rc Rect, radii CornerRadii) *Outline {
	if rc.Empty() {
		return nil
	}
	if radii.IsZero() {
		return &Outline{Kind: OutlineRect, Rect: rc}
	}
	return &Outline{
		Kind:  OutlineRoundRect,
		Rect:  rc,
		Radii: radii.Clamp(rc.Width, rc.Height),
	}
}

// Geometry resolves the circle into its fill and border outlines.
//
// With a visible border the fill radius is radius - border width and the
// border circle is centered on the fill edge at fill radius + width/2.
func (c Circle) Geometry() Geometry {
	g := Geometry{FillColor: c.fill, StrokeColor: c.borderColor}
	if !c.center.IsFinite() || math.IsNaN(c.radius) || math.IsInf(c.radius, 0) {
		return Geometry{}
	}

	hasBorder := c.HasBorder()
	fillRadius := c.radius
	if hasBorder {
		fillRadius = c.radius - c.borderWidth
	}
	if fillRadius > 0 {
		g.Fill = &Outline{Kind: OutlineCircle, Center: c.center, Radius: fillRadius}
	}
	if hasBorder && fillRadius > 0 {
		g.Stroke = &Outline{
			Kind:   OutlineCircle,
			Center: c.center,
			Radius: fillRadius + c.borderWidth/2,
		}
		g.StrokeWidth = c.borderWidth
	}
	return g
}

// Geometry resolves the line into a stroke-only open polyline. Lines with
// fewer than two points, no width or an invisible color resolve to nothing.
func (l Line) Geometry() Geometry {
	if len(l.points) < 2 || !(l.width > 0) || !l.color.Visible() {
		return Geometry{}
	}
	for _, pt := range l.points {
		if !pt.IsFinite() {
			return Geometry{}
		}
	}
	return Geometry{
		Stroke: &Outline{
			Kind:   OutlinePolyline,
			Points: append([]Point(nil), l.points...),
		},
		StrokeWidth: l.width,
		StrokeColor: l.color,
	}
}

// Resolve returns the geometry of a shape. It reports false for Text,
// which is laid out by the text layer instead of being tessellated, and
// for nil shape pointers.
func Resolve(obj Object) (Geometry, bool) {
	switch o := obj.(type) {
	case Rectangle:
		return o.Geometry(), true
	case *Rectangle:
		if o == nil {
			return Geometry{}, false
		}
		return o.Geometry(), true
	case Circle:
		return o.Geometry(), true
	case *Circle:
		if o == nil {
			return Geometry{}, false
		}
		return o.Geometry(), true
	case Line:
		return o.Geometry(), true
	case *Line:
		if o == nil {
			return Geometry{}, false
		}
		return o.Geometry(), true
	default:
		return Geometry{}, false
	}
}

func finiteRect(r Rect) bool {
	return Pt(r.X, r.Y).IsFinite() && Pt(r.Width, r.Height).IsFinite()
}
