package vscene

import "math"

// PathElement is one command in a Path.
type PathElement interface {
	isPathElement()
}

// MoveTo starts a new subpath.
type MoveTo struct {
	Point Point
}

// LineTo draws a straight segment.
type LineTo struct {
	Point Point
}

// QuadTo draws a quadratic Bezier segment.
type QuadTo struct {
	Control Point
	Point   Point
}

// CubicTo draws a cubic Bezier segment.
type CubicTo struct {
	Control1 Point
	Control2 Point
	Point    Point
}

// Close closes the current subpath.
type Close struct{}

func (MoveTo) isPathElement()  {}
func (LineTo) isPathElement()  {}
func (QuadTo) isPathElement()  {}
func (CubicTo) isPathElement() {}
func (Close) isPathElement()   {}

// Path is a sequence of subpaths built from lines and Bezier curves.
type Path struct {
	elements []PathElement
	start    Point
	current  Point
	open     bool
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{}
}

// MoveTo begins a new subpath at (x, y).
func (p *Path) MoveTo(x, y float64) {
	pt := Pt(x, y)
	p.elements = append(p.elements, MoveTo{Point: pt})
	p.start = pt
	p.current = pt
	p.open = true
}

// LineTo adds a line to (x, y). Without a current point it acts as MoveTo.
func (p *Path) LineTo(x, y float64) {
	if !p.open {
		p.MoveTo(x, y)
		return
	}
	pt := Pt(x, y)
	p.elements = append(p.elements, LineTo{Point: pt})
	p.current = pt
}

// QuadTo adds a quadratic Bezier curve.
func (p *Path) QuadTo(cx, cy, x, y float64) {
	if !p.open {
		p.MoveTo(cx, cy)
	}
	pt := Pt(x, y)
	p.elements = append(p.elements, QuadTo{Control: Pt(cx, cy), Point: pt})
	p.current = pt
}

// CubicTo adds a cubic Bezier curve.
func (p *Path) CubicTo(c1x, c1y, c2x, c2y, x, y float64) {
	if !p.open {
		p.MoveTo(c1x, c1y)
	}
	pt := Pt(x, y)
	p.elements = append(p.elements, CubicTo{
		Control1: Pt(c1x, c1y),
		Control2: Pt(c2x, c2y),
		Point:    pt,
	})
	p.current = pt
}

// Close closes the current subpath back to its start.
func (p *Path) Close() {
	if !p.open {
		return
	}
	p.elements = append(p.elements, Close{})
	p.current = p.start
	p.open = false
}

// Elements returns the path commands.
func (p *Path) Elements() []PathElement {
	return p.elements
}

// Empty reports whether the path has no commands.
func (p *Path) Empty() bool {
	return len(p.elements) == 0
}

// CurrentPoint returns the end of the last command.
func (p *Path) CurrentPoint() Point {
	return p.current
}

// Rectangle adds a closed axis-aligned rectangle.
func (p *Path) Rectangle(x, y, w, h float64) {
	p.MoveTo(x, y)
	p.LineTo(x+w, y)
	p.LineTo(x+w, y+h)
	p.LineTo(x, y+h)
	p.Close()
}

// Circle adds a closed circle approximated by four cubic curves.
func (p *Path) Circle(cx, cy, r float64) {
	const k = 0.5522847498307936 // 4/3 * (sqrt(2) - 1)
	o := r * k

	p.MoveTo(cx+r, cy)
	p.CubicTo(cx+r, cy+o, cx+o, cy+r, cx, cy+r)
	p.CubicTo(cx-o, cy+r, cx-r, cy+o, cx-r, cy)
	p.CubicTo(cx-r, cy-o, cx-o, cy-r, cx, cy-r)
	p.CubicTo(cx+o, cy-r, cx+r, cy-o, cx+r, cy)
	p.Close()
}

// Arc adds a circular arc from angle1 to angle2 (radians, clockwise in
// y-down screen space). If a subpath is open the arc start is joined with
// a line; otherwise a new subpath begins.
func (p *Path) Arc(cx, cy, r, angle1, angle2 float64) {
	const twoPi = 2 * math.Pi
	for angle2 < angle1 {
		angle2 += twoPi
	}

	// At most a quarter turn per cubic.
	n := int(math.Ceil((angle2 - angle1) / (math.Pi / 2)))
	if n < 1 {
		n = 1
	}
	step := (angle2 - angle1) / float64(n)
	for i := 0; i < n; i++ {
		a1 := angle1 + float64(i)*step
		p.arcSegment(cx, cy, r, a1, a1+step)
	}
}

func (p *Path) arcSegment(cx, cy, r, a1, a2 float64) {
	t := math.Tan((a2 - a1) / 2)
	alpha := math.Sin(a2-a1) * (math.Sqrt(4+3*t*t) - 1) / 3

	sin1, cos1 := math.Sincos(a1)
	sin2, cos2 := math.Sincos(a2)

	x1, y1 := cx+r*cos1, cy+r*sin1
	x2, y2 := cx+r*cos2, cy+r*sin2

	if p.open {
		p.LineTo(x1, y1)
	} else {
		p.MoveTo(x1, y1)
	}
	p.CubicTo(
		x1-alpha*r*sin1, y1+alpha*r*cos1,
		x2+alpha*r*sin2, y2-alpha*r*cos2,
		x2, y2,
	)
}

// RoundedRectangle adds a closed rectangle with per-corner radii. Each
// radius is clamped to half of the smaller side; zero radii give square
// corners.
func (p *Path) RoundedRectangle(x, y, w, h float64, radii CornerRadii) {
	c := radii.Clamp(w, h)

	p.MoveTo(x+c.TopLeft, y)
	p.LineTo(x+w-c.TopRight, y)
	if c.TopRight > 0 {
		p.Arc(x+w-c.TopRight, y+c.TopRight, c.TopRight, -math.Pi/2, 0)
	}
	p.LineTo(x+w, y+h-c.BottomRight)
	if c.BottomRight > 0 {
		p.Arc(x+w-c.BottomRight, y+h-c.BottomRight, c.BottomRight, 0, math.Pi/2)
	}
	p.LineTo(x+c.BottomLeft, y+h)
	if c.BottomLeft > 0 {
		p.Arc(x+c.BottomLeft, y+h-c.BottomLeft, c.BottomLeft, math.Pi/2, math.Pi)
	}
	p.LineTo(x, y+c.TopLeft)
	if c.TopLeft > 0 {
		p.Arc(x+c.TopLeft, y+c.TopLeft, c.TopLeft, math.Pi, 3*math.Pi/2)
	}
	p.Close()
}

// Polyline adds the points as one subpath, closed if closed is true.
func (p *Path) Polyline(pts []Point, closed bool) {
	for i, pt := range pts {
		if i == 0 {
			p.MoveTo(pt.X, pt.Y)
			continue
		}
		p.LineTo(pt.X, pt.Y)
	}
	if closed && len(pts) > 0 {
		p.Close()
	}
}

// Clone returns a deep copy of the path.
func (p *Path) Clone() *Path {
	q := *p
	q.elements = append([]PathElement(nil), p.elements...)
	return &q
}
