package tess

import (
	"math"

	"github.com/gogpu/vscene"
)

// maxArcSegments caps the triangles in one round join or cap.
const maxArcSegments = 64

// stroker expands polylines into a ribbon with round joins and caps.
//
// Segment quads are trimmed on the inner side of each corner at the inner
// miter point, and the corner itself is filled by a fan around the vertex.
// The pieces tile the ribbon without overlap, so translucent strokes blend
// once per pixel. A corner whose trim does not fit on its neighbouring
// segments keeps untrimmed quads and an outer wedge.
type stroker struct {
	b   *builder
	hw  float64 // half width
	tol float64
}

// corner describes the stroke geometry at an interior vertex.
type corner struct {
	// side is +1 when the inside of the turn lies along +Perp of the
	// incoming direction, -1 when it lies along -Perp, and 0 when the
	// path continues straight.
	side float64

	// miter is set when both neighbouring quads end at inner.
	miter bool
	inner vscene.Point
	trim  float64 // distance inner is pulled back along each segment
}

func (s *stroker) contour(pts []vscene.Point, closed bool) {
	pts = dedup(pts, closed)
	if len(pts) < 2 {
		return
	}

	n := len(pts)
	segs := n - 1
	if closed {
		segs = n
	}

	dirs := make([]vscene.Point, segs)
	lens := make([]float64, segs)
	for i := range segs {
		d := pts[(i+1)%n].Sub(pts[i])
		lens[i] = d.Length()
		dirs[i] = d.Mul(1 / lens[i])
	}

	hasCorner := func(i int) bool { return closed || (i > 0 && i < n-1) }
	corners := make([]corner, n)
	for i := range n {
		if hasCorner(i) {
			corners[i] = s.corner(pts[i], dirs[(i-1+segs)%segs], dirs[i])
		}
	}

	// A segment shorter than the trims at its two ends would fold over;
	// those corners fall back to overlapping quads.
	for i := range segs {
		a, b := &corners[i], &corners[(i+1)%n]
		var need float64
		if a.miter {
			need += a.trim
		}
		if b.miter {
			need += b.trim
		}
		if need > lens[i] {
			a.miter, b.miter = false, false
		}
	}

	for i := range segs {
		s.segment(pts[i], pts[(i+1)%n], dirs[i], corners[i], corners[(i+1)%n])
	}
	for i := range n {
		if hasCorner(i) {
			s.join(pts[i], dirs[(i-1+segs)%segs], dirs[i], corners[i])
		}
	}
	if !closed {
		s.cap(pts[0], dirs[0], -1)
		s.cap(pts[n-1], dirs[segs-1], 1)
	}
}

// offset returns p moved by the half width along sign*Perp(d).
func (s *stroker) offset(p, d vscene.Point, sign float64) vscene.Point {
	off := d.Perp().Mul(s.hw)
	if sign > 0 {
		return p.Add(off)
	}
	return p.Sub(off)
}

// corner computes the turn at v from direction d0 to d1.
func (s *stroker) corner(v, d0, d1 vscene.Point) corner {
	cr := d0.Cross(d1)
	dot := d0.Dot(d1)
	if math.Abs(cr) <= epsilon {
		if dot > 0 {
			return corner{}
		}
		// Full reversal: no finite miter.
		return corner{side: 1}
	}

	// d1 bends toward +Perp(d0) when cr > 0.
	c := corner{side: -1}
	if cr > 0 {
		c.side = 1
	}
	// Inner offset lines meet hw*tan(theta/2) before the vertex.
	c.trim = s.hw * math.Abs(cr) / (1 + dot)
	if !math.IsInf(c.trim, 0) && !math.IsNaN(c.trim) {
		c.miter = true
		c.inner = s.offset(v, d0, c.side).Sub(d0.Mul(c.trim))
	}
	return c
}

// segment emits the quad covering p0-p1, ending at the inner miter points
// of trimmed corners.
func (s *stroker) segment(p0, p1, d vscene.Point, start, end corner) {
	a := s.offset(p0, d, 1)
	e := s.offset(p0, d, -1)
	b := s.offset(p1, d, 1)
	c := s.offset(p1, d, -1)
	if start.miter {
		if start.side > 0 {
			a = start.inner
		} else {
			e = start.inner
		}
	}
	if end.miter {
		if end.side > 0 {
			b = end.inner
		} else {
			c = end.inner
		}
	}

	ia, ib, ic, ie := s.b.vertex(a), s.b.vertex(b), s.b.vertex(c), s.b.vertex(e)
	s.b.triangle(ia, ib, ic)
	s.b.triangle(ia, ic, ie)
}

// join fills the corner at v: the outer wedge as a fan around v, plus the
// two triangles reaching the inner miter point when the quads are trimmed.
func (s *stroker) join(v, d0, d1 vscene.Point, c corner) {
	if c.side == 0 {
		return
	}
	out0 := s.offset(v, d0, -c.side)
	out1 := s.offset(v, d1, -c.side)
	from := d0.Perp().Mul(-c.side)
	to := d1.Perp().Mul(-c.side)

	sweep := math.Atan2(from.Cross(to), from.Dot(to))
	if !c.miter && math.Abs(d0.Cross(d1)) <= epsilon {
		sweep = halfTurn(from, d0)
	}
	s.fan(v, out0, out1, from, sweep)

	if c.miter {
		iv, i0, i1, im := s.b.vertex(v), s.b.vertex(out0), s.b.vertex(out1), s.b.vertex(c.inner)
		s.b.triangle(iv, i1, im)
		s.b.triangle(iv, im, i0)
	}
}

// cap adds a half disc at end. d is the segment direction and dir is +1
// at the last point, -1 at the first.
func (s *stroker) cap(end, d vscene.Point, dir float64) {
	outward := d.Mul(dir)
	from := outward.Perp()
	p0 := s.offset(end, d, dir)
	p1 := s.offset(end, d, -dir)
	s.fan(end, p0, p1, from, halfTurn(from, outward))
}

// halfTurn returns +pi or -pi so that rotating from by half of it points
// along mid.
func halfTurn(from, mid vscene.Point) float64 {
	if from.Perp().Dot(mid) >= 0 {
		return math.Pi
	}
	return -math.Pi
}

// fan emits a circular sector centered at c with radius hw, running from
// p0 (at unit direction from) to p1 over sweep radians. The end points are
// used as given so neighbouring pieces share them exactly.
func (s *stroker) fan(c, p0, p1, from vscene.Point, sweep float64) {
	n := s.arcSegments(math.Abs(sweep))
	if n == 0 {
		return
	}
	a0 := math.Atan2(from.Y, from.X)
	step := sweep / float64(n)

	center := s.b.vertex(c)
	prev := s.b.vertex(p0)
	for i := 1; i <= n; i++ {
		var cur uint32
		if i == n {
			cur = s.b.vertex(p1)
		} else {
			sin, cos := math.Sincos(a0 + step*float64(i))
			cur = s.b.vertex(c.Add(vscene.Pt(cos, sin).Mul(s.hw)))
		}
		s.b.triangle(center, prev, cur)
		prev = cur
	}
}

// arcSegments returns the number of chords needed to keep an arc of the
// given angle within tolerance of the true circle.
func (s *stroker) arcSegments(angle float64) int {
	if angle <= epsilon {
		return 0
	}
	step := math.Pi / 2
	if s.tol < s.hw {
		step = 2 * math.Acos(1-s.tol/s.hw)
	}
	n := int(math.Ceil(angle / step))
	return max(1, min(n, maxArcSegments))
}
