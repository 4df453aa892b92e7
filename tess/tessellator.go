package tess

import (
	"github.com/gogpu/vscene"
)

// Option configures a Tessellator.
type Option func(*Tessellator)

// WithTolerance sets the curve flattening tolerance in pixels.
// Non-positive values select DefaultTolerance.
func WithTolerance(tol float64) Option {
	return func(t *Tessellator) {
		if tol > 0 {
			t.tolerance = tol
		}
	}
}

// Tessellator appends shape geometry to meshes. It holds no per-frame
// state and is safe for concurrent use.
type Tessellator struct {
	tolerance float64
}

// New creates a Tessellator.
func New(opts ...Option) *Tessellator {
	t := &Tessellator{tolerance: DefaultTolerance}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Tolerance returns the flattening tolerance in pixels.
func (t *Tessellator) Tolerance() float64 {
	return t.tolerance
}

// Fill appends the interior of every subpath of p and returns the number
// of triangles added. Open subpaths are closed implicitly.
func (t *Tessellator) Fill(m *Mesh, p *vscene.Path, c vscene.ColorF) int {
	b := m.begin(c)
	for _, ct := range Flatten(p, t.tolerance) {
		fillContour(&b, ct.Points)
	}
	return b.finish(c, false)
}

// Stroke appends a ribbon of the given width along p with round joins and
// round caps and returns the number of triangles added.
func (t *Tessellator) Stroke(m *Mesh, p *vscene.Path, width float64, c vscene.ColorF) int {
	if !(width > 0) {
		return 0
	}
	b := m.begin(c)
	s := stroker{b: &b, hw: width / 2, tol: t.tolerance}
	for _, ct := range Flatten(p, t.tolerance) {
		s.contour(ct.Points, ct.Closed)
	}
	return b.finish(c, false)
}

// AppendGeometry appends a resolved geometry: fill first, then stroke.
// Parts with invisible colors are skipped. Colors are converted to space.
func (t *Tessellator) AppendGeometry(m *Mesh, g vscene.Geometry, space vscene.ColorSpace) int {
	n := 0
	if g.Fill != nil && g.FillColor.Visible() {
		n += t.Fill(m, g.Fill.Path(), g.FillColor.In(space))
	}
	if g.Stroke != nil && g.StrokeColor.Visible() {
		n += t.Stroke(m, g.Stroke.Path(), g.StrokeWidth, g.StrokeColor.In(space))
	}
	return n
}

// AppendObject resolves and appends one scene object. Text contributes
// nothing.
func (t *Tessellator) AppendObject(m *Mesh, obj vscene.Object, space vscene.ColorSpace) int {
	g, ok := vscene.Resolve(obj)
	if !ok {
		return 0
	}
	return t.AppendGeometry(m, g, space)
}

// AppendScene appends every shape in paint order and returns the number of
// triangles added.
func (t *Tessellator) AppendScene(m *Mesh, objs []vscene.Object, space vscene.ColorSpace) int {
	n := 0
	for _, obj := range objs {
		n += t.AppendObject(m, obj, space)
	}
	return n
}
