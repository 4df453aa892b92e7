package vscene

import (
	"fmt"
	"strconv"
)

// FontFamily selects a typeface either by name or by generic class.
type FontFamily struct {
	generic genericFamily
	name    string
}

type genericFamily uint8

const (
	genericNamed genericFamily = iota
	genericSansSerif
	genericSerif
	genericMonospace
	genericCursive
	genericFantasy
)

// Generic font families.
var (
	SansSerif = FontFamily{generic: genericSansSerif}
	Serif     = FontFamily{generic: genericSerif}
	Monospace = FontFamily{generic: genericMonospace}
	Cursive   = FontFamily{generic: genericCursive}
	Fantasy   = FontFamily{generic: genericFantasy}
)

// Named selects a family by its name, e.g. "Go" or "DejaVu Sans".
func Named(name string) FontFamily {
	return FontFamily{name: name}
}

// Name returns the family name for a named family and the CSS generic
// keyword otherwise.
func (f FontFamily) Name() string {
	switch f.generic {
	case genericSansSerif:
		return "sans-serif"
	case genericSerif:
		return "serif"
	case genericMonospace:
		return "monospace"
	case genericCursive:
		return "cursive"
	case genericFantasy:
		return "fantasy"
	default:
		return f.name
	}
}

// IsGeneric reports whether f is one of the generic classes.
func (f FontFamily) IsGeneric() bool {
	return f.generic != genericNamed
}

// String implements fmt.Stringer.
func (f FontFamily) String() string {
	if f.IsGeneric() {
		return f.Name()
	}
	return strconv.Quote(f.name)
}

// FontWeight is one of the nine standard weight classes.
type FontWeight uint8

// Weight classes, Thin (100) through Black (900).
const (
	WeightThin FontWeight = iota + 1
	WeightExtraLight
	WeightLight
	WeightNormal
	WeightMedium
	WeightSemiBold
	WeightBold
	WeightExtraBold
	WeightBlack
)

// Numeric returns the CSS/OpenType weight class: 100 for Thin up to 900
// for Black. Out-of-range values report 400.
func (w FontWeight) Numeric() int {
	if w < WeightThin || w > WeightBlack {
		return 400
	}
	return int(w) * 100
}

var weightNames = [...]string{
	"Thin", "ExtraLight", "Light", "Normal", "Medium",
	"SemiBold", "Bold", "ExtraBold", "Black",
}

// String implements fmt.Stringer.
func (w FontWeight) String() string {
	if w < WeightThin || w > WeightBlack {
		return fmt.Sprintf("FontWeight(%d)", uint8(w))
	}
	return weightNames[w-1]
}

// WeightFromNumeric maps a numeric weight class to the nearest FontWeight.
func WeightFromNumeric(n int) FontWeight {
	switch {
	case n <= 150:
		return WeightThin
	case n >= 850:
		return WeightBlack
	default:
		return FontWeight((n + 50) / 100)
	}
}

// Text defaults.
const (
	DefaultFontSize   = 16.0
	DefaultLineHeight = 1.2
)

// Text is a styled, wrapped text block anchored at its top-left corner.
type Text struct {
	Value         string
	Anchor        Point
	Bounds        Size
	FontSizePx    float64
	LineHeightMul float64
	Fill          Color
	Face          FontFamily
	FontWeight    FontWeight
	IsItalic      bool
}

// NewText returns an empty text block with default styling: 16px
// sans-serif, normal weight, line height 1.2, opaque black.
func NewText() Text {
	return Text{
		FontSizePx:    DefaultFontSize,
		LineHeightMul: DefaultLineHeight,
		Fill:          Black,
		Face:          SansSerif,
		FontWeight:    WeightNormal,
	}
}

// Content sets the string to draw.
func (t Text) Content(s string) Text {
	t.Value = s
	return t
}

// Position sets the top-left anchor.
func (t Text) Position(x, y float64) Text {
	t.Anchor = Pt(x, y)
	return t
}

// Size sets the wrap width and clip height.
func (t Text) Size(w, h float64) Text {
	t.Bounds = Sz(w, h)
	return t
}

// FontSize sets the font size in pixels.
func (t Text) FontSize(px float64) Text {
	t.FontSizePx = nonNegative(px)
	return t
}

// LineHeight sets the line height as a multiple of the font size.
func (t Text) LineHeight(m float64) Text {
	t.LineHeightMul = nonNegative(m)
	return t
}

// Family sets the font family.
func (t Text) Family(f FontFamily) Text {
	t.Face = f
	return t
}

// Weight sets the font weight.
func (t Text) Weight(w FontWeight) Text {
	t.FontWeight = w
	return t
}

// Italic selects the italic style.
func (t Text) Italic(italic bool) Text {
	t.IsItalic = italic
	return t
}

// Color sets the text color.
func (t Text) Color(red, green, blue uint8, alpha float64) Text {
	t.Fill = RGBA(red, green, blue, alpha)
	return t
}

// LineAdvance returns the effective line height in pixels.
func (t Text) LineAdvance() float64 {
	return t.FontSizePx * t.LineHeightMul
}

// Visible reports whether the block can produce any pixels.
func (t Text) Visible() bool {
	return t.Value != "" && t.Fill.Visible() && t.FontSizePx > 0
}
