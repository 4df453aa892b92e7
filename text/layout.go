package text

import (
	"math"
	"strings"

	"github.com/gogpu/vscene"
)

// maxBaselineGap bounds the correction between the font box ascent and
// the ascent of the glyphs actually on a line. It stays below one pixel.
const maxBaselineGap = 63.0 / 64.0

// Glyph is a positioned glyph. X and Y are the pen position on the
// baseline in scene pixels.
type Glyph struct {
	ID   uint16
	X, Y float64
}

// Line is one laid-out line of a Block.
type Line struct {
	Text     string
	Top      float64
	Baseline float64
	Width    float64
	Glyphs   []Glyph
}

// Block is a laid-out Text.
type Block struct {
	Source vscene.Text
	Font   *Font
	Size   float64
	Lines  []Line

	// Clip is the region glyphs may paint: the text's bounds, or the
	// extent of its lines when the bounds are unset.
	Clip vscene.Rect
}

// Empty reports whether the block has nothing to draw.
func (b *Block) Empty() bool {
	return b == nil || len(b.Lines) == 0
}

// Layouter lays out a Text block.
type Layouter interface {
	Layout(t vscene.Text) (*Block, error)
}

// engine measures and places glyphs for the shared wrap algorithm.
type engine interface {
	measure(f *Font, size float64, s string) float64
	place(f *Font, size float64, s string, x, baseline float64) []Glyph
}

// layout wraps and positions t with font f.
//
// A zero bounds width disables wrapping and a zero bounds height disables
// vertical clipping.
func layout(t vscene.Text, f *Font, e engine) *Block {
	size := t.FontSizePx
	b := &Block{Source: t, Font: f, Size: size}
	if !t.Visible() || f == nil {
		return b
	}

	maxW := t.Bounds.Width
	limit := math.Inf(1)
	if t.Bounds.Height > 0 {
		limit = t.Anchor.Y + t.Bounds.Height
	}
	lh := t.LineAdvance()
	asc := f.Metrics(size).Ascent
	measure := func(s string) float64 { return e.measure(f, size, s) }

	top := t.Anchor.Y
	widest := 0.0
	for _, para := range strings.Split(t.Value, "\n") {
		for _, ln := range wrap(strings.Fields(para), measure, maxW) {
			if top > limit {
				break
			}
			line := Line{Text: ln, Top: top, Width: measure(ln)}
			line.Glyphs = e.place(f, size, ln, t.Anchor.X, 0)
			gap := clamp(asc-f.inkAscent(line.Glyphs, size), 0, maxBaselineGap)
			if len(line.Glyphs) == 0 {
				gap = 0
			}
			line.Baseline = top + asc + gap
			for i := range line.Glyphs {
				line.Glyphs[i].Y += line.Baseline
			}
			b.Lines = append(b.Lines, line)
			widest = math.Max(widest, line.Width)
			top += lh
		}
	}

	b.Clip = vscene.Rect{X: t.Anchor.X, Y: t.Anchor.Y, Width: t.Bounds.Width, Height: t.Bounds.Height}
	if b.Clip.Width <= 0 {
		b.Clip.Width = widest
	}
	if b.Clip.Height <= 0 {
		b.Clip.Height = top - t.Anchor.Y + f.Metrics(size).Descent
	}
	return b
}

// wrap splits words into lines greedily. A word is appended while the line
// still fits maxW; the first word of a line is always accepted so an
// overlong word gets a line of its own. An empty paragraph yields one empty
// line. maxW <= 0 disables wrapping.
func wrap(words []string, measure func(string) float64, maxW float64) []string {
	if len(words) == 0 {
		return []string{""}
	}
	var (
		lines []string
		cur   string
	)
	for _, w := range words {
		if cur == "" {
			cur = w
			continue
		}
		next := cur + " " + w
		if maxW <= 0 || measure(next) <= maxW {
			cur = next
			continue
		}
		lines = append(lines, cur)
		cur = w
	}
	return append(lines, cur)
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
