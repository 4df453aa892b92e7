package tess

import (
	"math"

	"github.com/gogpu/vscene"
)

// fillContour triangulates one closed contour into b. Contours with fewer
// than three distinct non-collinear points or with no area add nothing.
func fillContour(b *builder, pts []vscene.Point) {
	pts = simplify(pts)
	if len(pts) < 3 {
		return
	}
	area := signedArea(pts)
	if math.Abs(area) <= epsilon {
		return
	}
	if area < 0 {
		reverse(pts)
	}

	base := uint32(len(b.mesh.Vertices))
	for _, p := range pts {
		b.vertex(p)
	}

	if isConvex(pts) {
		for i := 1; i+1 < len(pts); i++ {
			b.triangle(base, base+uint32(i), base+uint32(i+1))
		}
		return
	}
	earClip(b, base, pts)
}

// simplify removes duplicate and collinear points from a closed contour.
func simplify(pts []vscene.Point) []vscene.Point {
	pts = dedup(pts, true)
	for {
		n := len(pts)
		if n < 3 {
			return pts
		}
		out := pts[:0:0]
		for i := range pts {
			prev := pts[(i+n-1)%n]
			next := pts[(i+1)%n]
			if collinear(prev, pts[i], next) {
				continue
			}
			out = append(out, pts[i])
		}
		if len(out) == n {
			return out
		}
		pts = out
	}
}

func collinear(a, b, c vscene.Point) bool {
	ab := b.Sub(a)
	bc := c.Sub(b)
	l := ab.Length() * bc.Length()
	if l <= epsilon {
		return true
	}
	// Only drop straight continuations; a 180 degree spike is kept so the
	// area test sees it.
	return math.Abs(ab.Cross(bc)) <= epsilon*l && ab.Dot(bc) > 0
}

// signedArea returns the shoelace area; positive for clockwise contours in
// y-down screen space.
func signedArea(pts []vscene.Point) float64 {
	var a float64
	for i := range pts {
		j := (i + 1) % len(pts)
		a += pts[i].Cross(pts[j])
	}
	return a / 2
}

func reverse(pts []vscene.Point) {
	for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
		pts[i], pts[j] = pts[j], pts[i]
	}
}

// isConvex expects positive orientation. A contour is convex when every
// corner turns the same way and the turning angles sum to one full turn,
// which rules out self-intersecting stars.
func isConvex(pts []vscene.Point) bool {
	n := len(pts)
	var turn float64
	for i := range pts {
		a, b, c := pts[(i+n-1)%n], pts[i], pts[(i+1)%n]
		d0, d1 := b.Sub(a), c.Sub(b)
		cr := d0.Cross(d1)
		if cr < 0 {
			return false
		}
		turn += math.Atan2(cr, d0.Dot(d1))
	}
	return math.Abs(turn-2*math.Pi) < 1e-3
}

// earClip triangulates a simple polygon with positive orientation. If the
// polygon is self-intersecting and no ear can be found, the remainder is
// fanned so the shape still draws.
func earClip(b *builder, base uint32, pts []vscene.Point) {
	idx := make([]int, len(pts))
	for i := range idx {
		idx[i] = i
	}

	for len(idx) > 3 {
		n := len(idx)
		found := false
		for i := 0; i < n; i++ {
			ip, ic, in := idx[(i+n-1)%n], idx[i], idx[(i+1)%n]
			if !isEar(pts, idx, ip, ic, in) {
				continue
			}
			b.triangle(base+uint32(ip), base+uint32(ic), base+uint32(in))
			idx = append(idx[:i], idx[i+1:]...)
			found = true
			break
		}
		if !found {
			break
		}
	}

	for i := 1; i+1 < len(idx); i++ {
		b.triangle(base+uint32(idx[0]), base+uint32(idx[i]), base+uint32(idx[i+1]))
	}
}

func isEar(pts []vscene.Point, idx []int, ip, ic, in int) bool {
	a, c, d := pts[ip], pts[ic], pts[in]
	if c.Sub(a).Cross(d.Sub(c)) <= 0 {
		return false
	}
	for _, k := range idx {
		if k == ip || k == ic || k == in {
			continue
		}
		if pointInTriangle(pts[k], a, c, d) {
			return false
		}
	}
	return true
}

// pointInTriangle reports whether p lies inside or on the edge of the
// positively oriented triangle abc.
func pointInTriangle(p, a, b, c vscene.Point) bool {
	return b.Sub(a).Cross(p.Sub(a)) >= 0 &&
		c.Sub(b).Cross(p.Sub(b)) >= 0 &&
		a.Sub(c).Cross(p.Sub(c)) >= 0
}
