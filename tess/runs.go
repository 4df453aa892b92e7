package tess

import (
	"image"
	"iter"

	"github.com/gogpu/vscene"
)

// AlphaRun is a horizontal span of pixels sharing one coverage value.
type AlphaRun struct {
	X, Y  int
	Count int
	Alpha uint8
}

// MaskRuns yields the non-zero coverage of mask as horizontal runs, row by
// row, in mask coordinates.
func MaskRuns(mask *image.Alpha) iter.Seq[AlphaRun] {
	return func(yield func(AlphaRun) bool) {
		if mask == nil {
			return
		}
		b := mask.Bounds()
		for y := b.Min.Y; y < b.Max.Y; y++ {
			row := mask.Pix[mask.PixOffset(b.Min.X, y):]
			run := AlphaRun{Y: y}
			for x := b.Min.X; x < b.Max.X; x++ {
				a := row[x-b.Min.X]
				if run.Count > 0 && a == run.Alpha {
					run.Count++
					continue
				}
				if run.Count > 0 && run.Alpha != 0 && !yield(run) {
					return
				}
				run = AlphaRun{X: x, Y: y, Count: 1, Alpha: a}
			}
			if run.Count > 0 && run.Alpha != 0 && !yield(run) {
				return
			}
		}
	}
}

// AppendRuns appends one quad per run, offset by origin. Each quad takes
// c with its alpha scaled by the run coverage. It returns the number of
// triangles added.
func AppendRuns(m *Mesh, runs iter.Seq[AlphaRun], origin image.Point, c vscene.ColorF) int {
	b := m.begin(c)
	for r := range runs {
		col := c
		col.A *= float32(r.Alpha) / 255
		b.color = col.Array()

		x0 := float64(origin.X + r.X)
		y0 := float64(origin.Y + r.Y)
		x1 := x0 + float64(r.Count)
		y1 := y0 + 1

		i0 := b.vertex(vscene.Pt(x0, y0))
		i1 := b.vertex(vscene.Pt(x1, y0))
		i2 := b.vertex(vscene.Pt(x1, y1))
		i3 := b.vertex(vscene.Pt(x0, y1))
		b.triangle(i0, i1, i2)
		b.triangle(i0, i2, i3)
	}
	return b.finish(c, true)
}
