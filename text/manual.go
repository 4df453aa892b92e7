package text

import (
	"golang.org/x/image/font/sfnt"

	"github.com/gogpu/vscene"
)

// ManualLayouter lays out text using only the font's advance and kerning
// tables. It is the fallback for environments without a shaping engine.
type ManualLayouter struct {
	reg *Registry
}

// NewManualLayouter creates a ManualLayouter that resolves fonts in reg.
func NewManualLayouter(reg *Registry) *ManualLayouter {
	return &ManualLayouter{reg: reg}
}

// Layout implements Layouter.
func (l *ManualLayouter) Layout(t vscene.Text) (*Block, error) {
	if l.reg == nil {
		return nil, ErrNoRegistry
	}
	f, ok := l.reg.Resolve(t.Face, t.FontWeight, t.IsItalic)
	if !ok {
		vscene.Logger().Debug("text: family not found, using default", "family", t.Face.String())
		f = l.reg.Default()
		if f == nil {
			return nil, ErrNoValidFace
		}
	}
	return layout(t, f, manualEngine{}), nil
}

type manualEngine struct{}

func (manualEngine) measure(f *Font, size float64, s string) float64 {
	return f.Measure(s, size)
}

func (manualEngine) place(f *Font, size float64, s string, x, baseline float64) []Glyph {
	var buf sfnt.Buffer
	glyphs := make([]Glyph, 0, len(s))
	f.walk(&buf, s, size, func(gid sfnt.GlyphIndex, origin, _ float64) {
		glyphs = append(glyphs, Glyph{ID: uint16(gid), X: x + origin, Y: baseline})
	})
	return glyphs
}
