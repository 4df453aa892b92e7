package text

import (
	"image"
	"image/draw"
	"math"
	"slices"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/vector"
)

// Rasterize renders the glyphs of b into a coverage mask. The mask covers
// the ink of the glyphs, cut to the block's clip rectangle; the returned
// point is its top-left corner in scene pixels. A block that draws nothing
// yields a nil mask.
func Rasterize(b *Block) (*image.Alpha, image.Point) {
	return RasterizeIn(b, image.Rectangle{})
}

// RasterizeIn is Rasterize with the mask further limited to bounds, the
// target's pixel rectangle. An empty bounds means no limit.
func RasterizeIn(b *Block, bounds image.Rectangle) (*image.Alpha, image.Point) {
	if b.Empty() || b.Font == nil {
		return nil, image.Point{}
	}

	type placed struct {
		segs sfnt.Segments
		x, y float64
	}
	var (
		buf    sfnt.Buffer
		glyphs []placed
		ink    = inkBounds{minX: math.Inf(1), minY: math.Inf(1), maxX: math.Inf(-1), maxY: math.Inf(-1)}
	)
	ppem := toFixed(b.Size)
	for _, line := range b.Lines {
		for _, g := range line.Glyphs {
			segs, err := b.Font.sf.LoadGlyph(&buf, sfnt.GlyphIndex(g.ID), ppem, nil)
			if err != nil || len(segs) == 0 {
				continue
			}
			// segs is only valid until the next LoadGlyph on buf.
			segs = slices.Clone(segs)
			ink.add(segs, g.X, g.Y)
			glyphs = append(glyphs, placed{segs: segs, x: g.X, y: g.Y})
		}
	}
	if len(glyphs) == 0 {
		return nil, image.Point{}
	}

	area := image.Rect(
		int(math.Floor(max(b.Clip.X, ink.minX))),
		int(math.Floor(max(b.Clip.Y, ink.minY))),
		int(math.Ceil(min(b.Clip.X+b.Clip.Width, ink.maxX))),
		int(math.Ceil(min(b.Clip.Y+b.Clip.Height, ink.maxY))),
	)
	if !bounds.Empty() {
		area = area.Intersect(bounds)
	}
	if area.Empty() {
		return nil, image.Point{}
	}

	w, h := area.Dx(), area.Dy()
	mask := image.NewAlpha(image.Rect(0, 0, w, h))
	r := vector.NewRasterizer(w, h)
	r.DrawOp = draw.Src
	for _, g := range glyphs {
		appendOutline(r, g.segs, float32(g.x-float64(area.Min.X)), float32(g.y-float64(area.Min.Y)))
	}
	r.Draw(mask, mask.Bounds(), image.Opaque, image.Point{})
	return mask, area.Min
}

// inkBounds accumulates the control-point hull of glyph outlines, which
// contains the outlines themselves.
type inkBounds struct {
	minX, minY, maxX, maxY float64
}

func (ib *inkBounds) add(segs sfnt.Segments, ox, oy float64) {
	for _, s := range segs {
		n := 1
		switch s.Op {
		case sfnt.SegmentOpQuadTo:
			n = 2
		case sfnt.SegmentOpCubeTo:
			n = 3
		}
		for _, a := range s.Args[:n] {
			x, y := ox+float64(a.X)/64, oy+float64(a.Y)/64
			ib.minX, ib.maxX = min(ib.minX, x), max(ib.maxX, x)
			ib.minY, ib.maxY = min(ib.minY, y), max(ib.maxY, y)
		}
	}
}

// appendOutline adds one glyph outline at pen position (ox, oy). sfnt
// segments are y-down, matching the rasterizer.
func appendOutline(r *vector.Rasterizer, segs sfnt.Segments, ox, oy float32) {
	pt := func(i int, s sfnt.Segment) (float32, float32) {
		return ox + float32(s.Args[i].X)/64, oy + float32(s.Args[i].Y)/64
	}
	open := false
	for _, s := range segs {
		switch s.Op {
		case sfnt.SegmentOpMoveTo:
			if open {
				r.ClosePath()
			}
			r.MoveTo(pt(0, s))
			open = true
		case sfnt.SegmentOpLineTo:
			r.LineTo(pt(0, s))
		case sfnt.SegmentOpQuadTo:
			cx, cy := pt(0, s)
			x, y := pt(1, s)
			r.QuadTo(cx, cy, x, y)
		case sfnt.SegmentOpCubeTo:
			c1x, c1y := pt(0, s)
			c2x, c2y := pt(1, s)
			x, y := pt(2, s)
			r.CubeTo(c1x, c1y, c2x, c2y, x, y)
		}
	}
	if open {
		r.ClosePath()
	}
}
