package text

import (
	"bytes"
	"fmt"
	"math"
	"strings"
	"sync/atomic"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/gogpu/vscene"
)

var fontIDs atomic.Uint64

// Font is one parsed font face. It is immutable and safe for concurrent
// use; per-call scratch buffers are allocated by the caller.
type Font struct {
	id     uint64
	family string
	style  string
	weight vscene.FontWeight
	italic bool

	sf     *opentype.Font
	shaped *gotext.Font
}

// ParseFont parses a TrueType or OpenType font.
func ParseFont(data []byte) (*Font, error) {
	if len(data) == 0 {
		return nil, ErrNoFonts
	}
	sf, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse outlines: %w", err)
	}
	face, err := gotext.ParseTTF(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("parse shaping tables: %w", err)
	}

	f := &Font{
		id:     fontIDs.Add(1),
		sf:     sf,
		shaped: face.Font,
	}
	f.family = nameOf(sf, sfnt.NameIDTypographicFamily, sfnt.NameIDFamily)
	f.style = nameOf(sf, sfnt.NameIDTypographicSubfamily, sfnt.NameIDSubfamily)
	if f.family == "" {
		return nil, fmt.Errorf("font has no family name")
	}
	f.weight, f.italic = parseStyle(f.style)
	return f, nil
}

func nameOf(sf *sfnt.Font, ids ...sfnt.NameID) string {
	var buf sfnt.Buffer
	for _, id := range ids {
		if s, err := sf.Name(&buf, id); err == nil && s != "" {
			return s
		}
	}
	return ""
}

// parseStyle derives weight and slant from a subfamily name such as
// "Bold Italic" or "SemiBold".
func parseStyle(style string) (vscene.FontWeight, bool) {
	s := strings.ToLower(strings.NewReplacer(" ", "", "-", "", "_", "").Replace(style))
	italic := strings.Contains(s, "italic") || strings.Contains(s, "oblique")

	weights := []struct {
		key string
		w   vscene.FontWeight
	}{
		{"extralight", vscene.WeightExtraLight},
		{"ultralight", vscene.WeightExtraLight},
		{"semibold", vscene.WeightSemiBold},
		{"demibold", vscene.WeightSemiBold},
		{"extrabold", vscene.WeightExtraBold},
		{"ultrabold", vscene.WeightExtraBold},
		{"hairline", vscene.WeightThin},
		{"thin", vscene.WeightThin},
		{"light", vscene.WeightLight},
		{"medium", vscene.WeightMedium},
		{"black", vscene.WeightBlack},
		{"heavy", vscene.WeightBlack},
		{"bold", vscene.WeightBold},
	}
	for _, w := range weights {
		if strings.Contains(s, w.key) {
			return w.w, italic
		}
	}
	return vscene.WeightNormal, italic
}

// Family returns the family name from the font's name table.
func (f *Font) Family() string { return f.family }

// Style returns the subfamily name, e.g. "Bold Italic".
func (f *Font) Style() string { return f.style }

// Weight returns the weight class derived from the style name.
func (f *Font) Weight() vscene.FontWeight { return f.weight }

// Italic reports whether the face is italic or oblique.
func (f *Font) Italic() bool { return f.italic }

func (f *Font) String() string {
	return fmt.Sprintf("%s %s", f.family, f.style)
}

// Metrics holds vertical font metrics in pixels at a given size.
type Metrics struct {
	Ascent  float64
	Descent float64
	LineGap float64
}

// Metrics returns the font's vertical metrics at size pixels per em.
func (f *Font) Metrics(size float64) Metrics {
	var buf sfnt.Buffer
	m, err := f.sf.Metrics(&buf, toFixed(size), font.HintingNone)
	if err != nil {
		return Metrics{Ascent: size * 0.8, Descent: size * 0.2}
	}
	asc, desc := fromFixed(m.Ascent), fromFixed(m.Descent)
	return Metrics{
		Ascent:  asc,
		Descent: desc,
		LineGap: math.Max(fromFixed(m.Height)-asc-desc, 0),
	}
}

// Measure returns the advance width of s at size using the font's
// horizontal advance and kerning tables.
func (f *Font) Measure(s string, size float64) float64 {
	var buf sfnt.Buffer
	w := 0.0
	f.walk(&buf, s, size, func(_ sfnt.GlyphIndex, _, x float64) { w = x })
	return w
}

// walk calls fn with each glyph of s, its kerned origin and the pen
// position after its advance.
func (f *Font) walk(buf *sfnt.Buffer, s string, size float64, fn func(gid sfnt.GlyphIndex, origin, after float64)) {
	ppem := toFixed(size)
	var (
		x       fixed.Int26_6
		prev    sfnt.GlyphIndex
		hasPrev bool
	)
	for _, r := range s {
		gid, err := f.sf.GlyphIndex(buf, r)
		if err != nil {
			gid = 0
		}
		if hasPrev {
			if k, err := f.sf.Kern(buf, prev, gid, ppem, font.HintingNone); err == nil {
				x += k
			}
		}
		origin := x
		if adv, err := f.sf.GlyphAdvance(buf, gid, ppem, font.HintingNone); err == nil {
			x += adv
		}
		fn(gid, fromFixed(origin), fromFixed(x))
		prev, hasPrev = gid, true
	}
}

// inkAscent returns the tallest extent above the baseline among glyphs.
func (f *Font) inkAscent(glyphs []Glyph, size float64) float64 {
	var buf sfnt.Buffer
	ppem := toFixed(size)
	ink := 0.0
	for _, g := range glyphs {
		b, _, err := f.sf.GlyphBounds(&buf, sfnt.GlyphIndex(g.ID), ppem, font.HintingNone)
		if err != nil {
			continue
		}
		ink = math.Max(ink, -fromFixed(b.Min.Y))
	}
	return ink
}

func toFixed(v float64) fixed.Int26_6 {
	return fixed.Int26_6(math.Round(v * 64))
}

func fromFixed(v fixed.Int26_6) float64 {
	return float64(v) / 64
}
