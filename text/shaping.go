package text

import (
	"sync"

	"github.com/go-text/typesetting/di"
	gotext "github.com/go-text/typesetting/font"
	"github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"

	"github.com/gogpu/vscene"
)

// ShapingOption configures a ShapingLayouter.
type ShapingOption func(*shapingOptions)

type shapingOptions struct {
	cacheCapacity int
	language      language.Language
}

// WithCacheCapacity sets how many shaped line widths are cached.
func WithCacheCapacity(n int) ShapingOption {
	return func(o *shapingOptions) {
		o.cacheCapacity = n
	}
}

// WithLanguage sets the language passed to the shaper. The default is "en".
func WithLanguage(tag string) ShapingOption {
	return func(o *shapingOptions) {
		o.language = language.NewLanguage(tag)
	}
}

// ShapingLayouter lays out text with HarfBuzz shaping, so kerning,
// ligatures and mark positioning follow the font's OpenType tables.
// It is safe for concurrent use.
type ShapingLayouter struct {
	reg   *Registry
	lang  language.Language
	cache *advanceCache
	pool  sync.Pool
}

// NewShapingLayouter creates a ShapingLayouter that resolves fonts in reg.
func NewShapingLayouter(reg *Registry, opts ...ShapingOption) *ShapingLayouter {
	o := shapingOptions{language: language.NewLanguage("en")}
	for _, opt := range opts {
		opt(&o)
	}
	return &ShapingLayouter{
		reg:   reg,
		lang:  o.language,
		cache: newAdvanceCache(o.cacheCapacity),
		pool: sync.Pool{
			New: func() any { return &shaping.HarfbuzzShaper{} },
		},
	}
}

// Layout implements Layouter. A family missing from the registry is
// logged and replaced with the registry default.
func (l *ShapingLayouter) Layout(t vscene.Text) (*Block, error) {
	if l.reg == nil {
		return nil, ErrNoRegistry
	}
	f, ok := l.reg.Resolve(t.Face, t.FontWeight, t.IsItalic)
	if !ok {
		f = l.reg.Default()
		if f == nil {
			return nil, ErrNoValidFace
		}
		vscene.Logger().Warn("text: font family not found, falling back to default",
			"family", t.Face.String(), "default", f.String())
	}
	return layout(t, f, l), nil
}

func (l *ShapingLayouter) measure(f *Font, size float64, s string) float64 {
	k := cacheKey(f, size, s)
	if adv, ok := l.cache.Get(k); ok {
		return adv
	}
	out := l.shape(f, size, s)
	adv := 0.0
	for _, g := range out.Glyphs {
		adv += fromFixed(g.Advance)
	}
	l.cache.Put(k, adv)
	return adv
}

func (l *ShapingLayouter) place(f *Font, size float64, s string, x, baseline float64) []Glyph {
	out := l.shape(f, size, s)
	glyphs := make([]Glyph, 0, len(out.Glyphs))
	pen := x
	for _, g := range out.Glyphs {
		glyphs = append(glyphs, Glyph{
			ID: uint16(g.GlyphID),
			X:  pen + fromFixed(g.XOffset),
			// Shaping offsets are y-up.
			Y: baseline - fromFixed(g.YOffset),
		})
		pen += fromFixed(g.Advance)
	}
	return glyphs
}

func (l *ShapingLayouter) shape(f *Font, size float64, s string) shaping.Output {
	runes := []rune(s)
	if len(runes) == 0 {
		return shaping.Output{}
	}
	input := shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      gotext.NewFace(f.shaped),
		Size:      toFixed(size),
		Script:    scriptOf(runes),
		Language:  l.lang,
	}
	hb := l.pool.Get().(*shaping.HarfbuzzShaper)
	out := hb.Shape(input)
	l.pool.Put(hb)
	return out
}

// scriptOf returns the script of the first non-space rune.
func scriptOf(runes []rune) language.Script {
	for _, r := range runes {
		if r == ' ' || r == '\t' {
			continue
		}
		return language.LookupScript(r)
	}
	return language.Latin
}
