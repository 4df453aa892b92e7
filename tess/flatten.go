package tess

import (
	"math"

	"github.com/gogpu/vscene"
)

// DefaultTolerance is the maximum distance in pixels between a curve and
// its flattened polyline.
const DefaultTolerance = 0.25

// maxSubdivision bounds curve recursion for huge or pathological input.
const maxSubdivision = 16

// Contour is one flattened subpath.
type Contour struct {
	Points []vscene.Point
	Closed bool
}

// Flatten converts a path into polylines, approximating curves to within
// tol pixels. Subpaths containing non-finite coordinates are dropped.
func Flatten(p *vscene.Path, tol float64) []Contour {
	if p == nil {
		return nil
	}
	if !(tol > 0) {
		tol = DefaultTolerance
	}

	var (
		out  []Contour
		cur  []vscene.Point
		bad  bool
		last vscene.Point
	)
	flush := func(closed bool) {
		if len(cur) > 0 && !bad {
			out = append(out, Contour{Points: cur, Closed: closed})
		}
		cur, bad = nil, false
	}
	add := func(pt vscene.Point) {
		if !pt.IsFinite() {
			bad = true
		}
		cur = append(cur, pt)
		last = pt
	}

	for _, el := range p.Elements() {
		switch e := el.(type) {
		case vscene.MoveTo:
			flush(false)
			add(e.Point)
		case vscene.LineTo:
			add(e.Point)
		case vscene.QuadTo:
			flattenQuad(last, e.Control, e.Point, tol, 0, add)
		case vscene.CubicTo:
			flattenCubic(last, e.Control1, e.Control2, e.Point, tol, 0, add)
		case vscene.Close:
			flush(true)
		}
	}
	flush(false)
	return out
}

func flattenQuad(p0, c, p1 vscene.Point, tol float64, depth int, emit func(vscene.Point)) {
	mid := p0.Mul(0.25).Add(c.Mul(0.5)).Add(p1.Mul(0.25))
	chord := p0.Add(p1).Mul(0.5)
	d := mid.Sub(chord)
	if depth >= maxSubdivision || d.Dot(d) <= tol*tol {
		emit(p1)
		return
	}
	a := p0.Add(c).Mul(0.5)
	b := c.Add(p1).Mul(0.5)
	m := a.Add(b).Mul(0.5)
	flattenQuad(p0, a, m, tol, depth+1, emit)
	flattenQuad(m, b, p1, tol, depth+1, emit)
}

func flattenCubic(p0, c1, c2, p1 vscene.Point, tol float64, depth int, emit func(vscene.Point)) {
	u := c1.Mul(3).Sub(p0.Mul(2)).Sub(p1)
	v := c2.Mul(3).Sub(p0).Sub(p1.Mul(2))
	distSq := math.Max(u.Dot(u), v.Dot(v))

	// 16 tol^2 is the standard flatness bound for cubics.
	if depth >= maxSubdivision || distSq <= 16*tol*tol {
		emit(p1)
		return
	}
	ab1 := p0.Add(c1).Mul(0.5)
	ab2 := c1.Add(c2).Mul(0.5)
	ab3 := c2.Add(p1).Mul(0.5)
	bc1 := ab1.Add(ab2).Mul(0.5)
	bc2 := ab2.Add(ab3).Mul(0.5)
	m := bc1.Add(bc2).Mul(0.5)
	flattenCubic(p0, ab1, bc1, m, tol, depth+1, emit)
	flattenCubic(m, bc2, ab3, p1, tol, depth+1, emit)
}

// dedup removes consecutive points closer than eps. For closed contours
// the wrap-around duplicate is dropped too.
func dedup(pts []vscene.Point, closed bool) []vscene.Point {
	out := make([]vscene.Point, 0, len(pts))
	for _, p := range pts {
		if n := len(out); n > 0 && out[n-1].Distance(p) <= epsilon {
			continue
		}
		out = append(out, p)
	}
	if closed {
		for len(out) > 1 && out[0].Distance(out[len(out)-1]) <= epsilon {
			out = out[:len(out)-1]
		}
	}
	return out
}

const epsilon = 1e-6
