// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package software implements a CPU render backend that draws frames into
// an *image.RGBA.
//
// Shapes are composited in sRGB, matching a 2D canvas. Each draw range is
// rasterized as one antialiased coverage mask with x/image/vector, so the
// triangles of a shape blend once, without seams along shared edges.
package software

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"math"

	"golang.org/x/image/vector"

	"github.com/gogpu/vscene"
	"github.com/gogpu/vscene/backend"
	"github.com/gogpu/vscene/render"
	"github.com/gogpu/vscene/tess"
)

// Errors returned by the software backend.
var (
	ErrClosed        = errors.New("software: backend closed")
	ErrNotConfigured = errors.New("software: backend not configured")
	ErrNotEncoded    = errors.New("software: frame not encoded")
)

func init() {
	backend.Register(backend.Software, func() (render.Backend, error) {
		return New(), nil
	})
}

// Option configures a Backend.
type Option func(*Backend)

// WithPresentFunc sets a callback invoked with the finished image on every
// Present. The image is reused by the next frame; copy it to keep it.
func WithPresentFunc(fn func(*image.RGBA)) Option {
	return func(b *Backend) {
		b.present = fn
	}
}

// Backend draws into an in-memory image.
type Backend struct {
	img     *image.RGBA
	ras     vector.Rasterizer
	present func(*image.RGBA)
	closed  bool
	frames  uint64
}

var _ render.Backend = (*Backend)(nil)

// New creates an unconfigured backend.
func New(opts ...Option) *Backend {
	b := &Backend{}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// ColorSpace returns ColorSpaceSRGB.
func (b *Backend) ColorSpace() vscene.ColorSpace {
	return vscene.ColorSpaceSRGB
}

// Configure allocates the frame image. The existing image is kept when the
// size is unchanged.
func (b *Backend) Configure(width, height int) error {
	if b.closed {
		return ErrClosed
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", render.ErrInvalidSize, width, height)
	}
	if b.img != nil && b.img.Rect.Dx() == width && b.img.Rect.Dy() == height {
		return nil
	}
	b.img = image.NewRGBA(image.Rect(0, 0, width, height))
	return nil
}

// AcquireTarget returns the target for the next frame.
func (b *Backend) AcquireTarget() (render.Target, error) {
	if b.closed {
		return nil, ErrClosed
	}
	if b.img == nil {
		return nil, ErrNotConfigured
	}
	return &target{b: b}, nil
}

// Close releases the image.
func (b *Backend) Close() error {
	b.closed = true
	b.img = nil
	return nil
}

// Image returns the frame image, or nil before Configure. The image is
// overwritten by each frame.
func (b *Backend) Image() *image.RGBA {
	return b.img
}

// Snapshot returns a copy of the last frame.
func (b *Backend) Snapshot() *image.RGBA {
	if b.img == nil {
		return nil
	}
	out := image.NewRGBA(b.img.Rect)
	copy(out.Pix, b.img.Pix)
	return out
}

// Frames returns how many frames were presented.
func (b *Backend) Frames() uint64 {
	return b.frames
}

type target struct {
	b         *Backend
	encoded   bool
	submitted bool
}

func (t *target) Encode(f *render.Frame) error {
	b := t.b
	if b.closed {
		return ErrClosed
	}
	if f.Width != b.img.Rect.Dx() || f.Height != b.img.Rect.Dy() {
		return fmt.Errorf("%w: frame %dx%d on %v target",
			render.ErrTargetOutdated, f.Width, f.Height, b.img.Rect.Size())
	}

	draw.Draw(b.img, b.img.Rect, image.NewUniform(f.Clear.NRGBA()), image.Point{}, draw.Src)

	if m := f.Shapes; !m.Empty() {
		for _, d := range m.Draws {
			if d.Varying {
				b.drawVarying(m, d)
				continue
			}
			b.fillRange(m, d, image.NewUniform(d.Color.NRGBA()))
		}
	}

	for _, l := range f.Text {
		if l.Mask == nil {
			continue
		}
		draw.DrawMask(b.img, l.Bounds(), image.NewUniform(l.Color.NRGBA()),
			image.Point{}, l.Mask, l.Mask.Rect.Min, draw.Over)
	}
	t.encoded = true
	return nil
}

func (t *target) Submit() error {
	if !t.encoded {
		return ErrNotEncoded
	}
	t.submitted = true
	return nil
}

func (t *target) Present() error {
	if !t.submitted {
		return ErrNotEncoded
	}
	b := t.b
	if b.closed {
		return ErrClosed
	}
	b.frames++
	if b.present != nil {
		b.present(b.img)
	}
	return nil
}

// fillRange rasterizes every triangle of d into one coverage mask over the
// triangles' bounding box and composites src through it.
func (b *Backend) fillRange(m *tess.Mesh, d tess.DrawRange, src image.Image) {
	first := int(d.FirstIndex) / 3
	count := int(d.IndexCount) / 3
	r := b.rangeBounds(m, first, count)
	if r.Empty() {
		return
	}
	b.ras.Reset(r.Dx(), r.Dy())
	ox, oy := float32(r.Min.X), float32(r.Min.Y)
	for i := first; i < first+count; i++ {
		v0, v1, v2 := m.Triangle(i)
		b.triangle(v0.Position, v1.Position, v2.Position, ox, oy)
	}
	b.ras.Draw(b.img, r, src, image.Point{})
}

// drawVarying composites per-vertex colors, as produced for coverage runs.
// Consecutive triangles sharing a color are rasterized together so quads
// have no seam along their diagonal.
func (b *Backend) drawVarying(m *tess.Mesh, d tess.DrawRange) {
	first := int(d.FirstIndex) / 3
	end := first + int(d.IndexCount)/3
	for first < end {
		v0, _, _ := m.Triangle(first)
		n := 1
		for first+n < end {
			next, _, _ := m.Triangle(first + n)
			if next.Color != v0.Color {
				break
			}
			n++
		}
		c := vscene.ColorF{R: v0.Color[0], G: v0.Color[1], B: v0.Color[2], A: v0.Color[3]}
		b.fillRange(m, tess.DrawRange{FirstIndex: uint32(first * 3), IndexCount: uint32(n * 3)},
			image.NewUniform(c.NRGBA()))
		first += n
	}
}

// triangle adds one triangle with a consistent winding. The rasterizer sums
// signed area, so mixed windings inside a range would cancel.
func (b *Backend) triangle(p0, p1, p2 [2]float32, ox, oy float32) {
	cross := (p1[0]-p0[0])*(p2[1]-p0[1]) - (p1[1]-p0[1])*(p2[0]-p0[0])
	if cross == 0 {
		return
	}
	if cross < 0 {
		p1, p2 = p2, p1
	}
	b.ras.MoveTo(p0[0]-ox, p0[1]-oy)
	b.ras.LineTo(p1[0]-ox, p1[1]-oy)
	b.ras.LineTo(p2[0]-ox, p2[1]-oy)
	b.ras.ClosePath()
}

// rangeBounds returns the pixel bounds of count triangles starting at
// first, clipped to the image.
func (b *Backend) rangeBounds(m *tess.Mesh, first, count int) image.Rectangle {
	minX, minY := float32(math.Inf(1)), float32(math.Inf(1))
	maxX, maxY := float32(math.Inf(-1)), float32(math.Inf(-1))
	for i := first; i < first+count; i++ {
		v0, v1, v2 := m.Triangle(i)
		for _, p := range [3][2]float32{v0.Position, v1.Position, v2.Position} {
			minX, maxX = min(minX, p[0]), max(maxX, p[0])
			minY, maxY = min(minY, p[1]), max(maxY, p[1])
		}
	}
	if minX > maxX {
		return image.Rectangle{}
	}
	r := image.Rect(
		int(math.Floor(float64(minX))), int(math.Floor(float64(minY))),
		int(math.Ceil(float64(maxX))), int(math.Ceil(float64(maxY))),
	)
	return r.Intersect(b.img.Rect)
}

// Pixel returns the color at (x, y) of the last frame, unpremultiplied.
func (b *Backend) Pixel(x, y int) color.NRGBA {
	if b.img == nil {
		return color.NRGBA{}
	}
	return color.NRGBAModel.Convert(b.img.At(x, y)).(color.NRGBA)
}
