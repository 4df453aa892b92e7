package text

import (
	"image"
	"math"
	"strings"
	"testing"

	"github.com/gogpu/vscene"
)

func TestWrap(t *testing.T) {
	measure := func(s string) float64 { return float64(len(s)) * 10 }
	tests := []struct {
		name  string
		words string
		maxW  float64
		want  []string
	}{
		{"fits", "a b c", 100, []string{"a b c"}},
		{"breaks", "aaa bbb ccc", 70, []string{"aaa bbb", "ccc"}},
		{"exact fit", "aaaa bbbbb", 100, []string{"aaaa bbbbb"}},
		{"overlong word alone", "supercalifragilisticexpialidocious", 100, []string{"supercalifragilisticexpialidocious"}},
		{"overlong word in middle", "hi supercalifragilistic yo", 100, []string{"hi", "supercalifragilistic", "yo"}},
		{"no wrap", "aaa bbb ccc", 0, []string{"aaa bbb ccc"}},
		{"empty", "", 100, []string{""}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrap(strings.Fields(tt.words), measure, tt.maxW)
			if strings.Join(got, "|") != strings.Join(tt.want, "|") {
				t.Errorf("wrap = %q, want %q", got, tt.want)
			}
		})
	}
}

func layouters(t *testing.T) map[string]Layouter {
	reg := newTestRegistry(t)
	return map[string]Layouter{
		"manual":  NewManualLayouter(reg),
		"shaping": NewShapingLayouter(reg),
	}
}

func TestLayoutLongWordStaysWhole(t *testing.T) {
	for name, l := range layouters(t) {
		t.Run(name, func(t *testing.T) {
			txt := vscene.NewText().Content("supercalifragilisticexpialidocious").Size(100, 200)
			b, err := l.Layout(txt)
			if err != nil {
				t.Fatal(err)
			}
			if len(b.Lines) != 1 {
				t.Fatalf("lines = %d, want 1", len(b.Lines))
			}
			if b.Lines[0].Text != "supercalifragilisticexpialidocious" {
				t.Errorf("line = %q", b.Lines[0].Text)
			}
			if b.Lines[0].Width <= 100 {
				t.Errorf("width = %v, expected the word to overflow", b.Lines[0].Width)
			}
		})
	}
}

func TestLayoutLineGeometry(t *testing.T) {
	for name, l := range layouters(t) {
		t.Run(name, func(t *testing.T) {
			txt := vscene.NewText().
				Content("one two three four five six seven eight nine ten").
				Position(10, 20).Size(120, 1000).FontSize(20).LineHeight(1.5)
			b, err := l.Layout(txt)
			if err != nil {
				t.Fatal(err)
			}
			if len(b.Lines) < 2 {
				t.Fatalf("lines = %d, want wrapping", len(b.Lines))
			}
			asc := b.Font.Metrics(20).Ascent
			for i, line := range b.Lines {
				wantTop := 20 + float64(i)*30
				if math.Abs(line.Top-wantTop) > 1e-9 {
					t.Errorf("line %d top = %v, want %v", i, line.Top, wantTop)
				}
				gap := line.Baseline - line.Top - asc
				if gap < -1e-9 || gap > maxBaselineGap+1e-9 {
					t.Errorf("line %d baseline gap = %v", i, gap)
				}
				if strings.Contains(line.Text, " ") && line.Width > 120 {
					t.Errorf("line %d %q overflows at %v", i, line.Text, line.Width)
				}
				if len(line.Glyphs) == 0 || line.Glyphs[0].X != 10 {
					t.Errorf("line %d first glyph = %+v", i, line.Glyphs)
				}
			}
		})
	}
}

func TestLayoutClipsHeight(t *testing.T) {
	for name, l := range layouters(t) {
		t.Run(name, func(t *testing.T) {
			txt := vscene.NewText().Content("a\nb\nc\nd\ne").FontSize(10).LineHeight(1).Size(100, 25)
			b, err := l.Layout(txt)
			if err != nil {
				t.Fatal(err)
			}
			// Tops at 0, 10, 20 fit; 30 exceeds 25.
			if len(b.Lines) != 3 {
				t.Errorf("lines = %d, want 3", len(b.Lines))
			}
			if b.Clip != (vscene.Rect{Width: 100, Height: 25}) {
				t.Errorf("clip = %+v", b.Clip)
			}
		})
	}
}

func TestLayoutParagraphs(t *testing.T) {
	l := NewManualLayouter(newTestRegistry(t))
	b, err := l.Layout(vscene.NewText().Content("first\n\nthird").Size(500, 500))
	if err != nil {
		t.Fatal(err)
	}
	if len(b.Lines) != 3 || b.Lines[1].Text != "" || b.Lines[2].Text != "third" {
		t.Errorf("lines = %+v", b.Lines)
	}
}

func TestLayoutInvisible(t *testing.T) {
	l := NewManualLayouter(newTestRegistry(t))
	for _, txt := range []vscene.Text{
		vscene.NewText(),
		vscene.NewText().Content("x").Color(0, 0, 0, 0),
		vscene.NewText().Content("x").FontSize(0),
	} {
		b, err := l.Layout(txt)
		if err != nil {
			t.Fatal(err)
		}
		if !b.Empty() {
			t.Errorf("expected empty block for %+v", txt)
		}
	}
}

func TestShapingFallsBackOnUnknownFamily(t *testing.T) {
	reg := newTestRegistry(t)
	l := NewShapingLayouter(reg)
	b, err := l.Layout(vscene.NewText().Content("hello").Family(vscene.Named("Missing Sans")))
	if err != nil {
		t.Fatal(err)
	}
	if b.Font != reg.Default() {
		t.Errorf("font = %v, want default %v", b.Font, reg.Default())
	}
}

func TestShapingAndManualAgree(t *testing.T) {
	reg := newTestRegistry(t)
	f := reg.Default()
	s := NewShapingLayouter(reg)
	manual := f.Measure("Hello, world", 16)
	shaped := s.measure(f, 16, "Hello, world")
	if math.Abs(manual-shaped) > 2 {
		t.Errorf("manual %v and shaped %v widths differ", manual, shaped)
	}
	if s.cache.Len() != 1 {
		t.Errorf("cache entries = %d, want 1", s.cache.Len())
	}
	s.measure(f, 16, "Hello, world")
	if s.cache.Stats().Hits != 1 {
		t.Errorf("cache hits = %d, want 1", s.cache.Stats().Hits)
	}
}

func TestLayoutWithoutRegistry(t *testing.T) {
	if _, err := NewManualLayouter(nil).Layout(vscene.NewText().Content("x")); err != ErrNoRegistry {
		t.Errorf("manual err = %v", err)
	}
	if _, err := NewShapingLayouter(nil).Layout(vscene.NewText().Content("x")); err != ErrNoRegistry {
		t.Errorf("shaping err = %v", err)
	}
}

func TestAdvanceCacheKeysBySize(t *testing.T) {
	reg := newTestRegistry(t)
	f := reg.Default()
	s := NewShapingLayouter(reg, WithCacheCapacity(2))
	a := s.measure(f, 16, "word")
	b := s.measure(f, 32, "word")
	if b <= a {
		t.Errorf("advance at 32px = %v, at 16px = %v", b, a)
	}
	s.measure(f, 16, "other")
	if s.cache.Len() != 2 {
		t.Errorf("cache entries = %d, want 2", s.cache.Len())
	}
	if st := s.cache.Stats(); st.Evictions != 1 {
		t.Errorf("evictions = %d, want 1", st.Evictions)
	}
}

func TestRasterize(t *testing.T) {
	l := NewManualLayouter(newTestRegistry(t))
	b, err := l.Layout(vscene.NewText().Content("Hi").Position(5.5, 7).Size(60, 30).FontSize(20))
	if err != nil {
		t.Fatal(err)
	}
	mask, origin := Rasterize(b)
	if mask == nil {
		t.Fatal("nil mask")
	}
	clip := image.Rect(5, 7, 66, 37)
	if got := mask.Bounds().Add(origin); !got.In(clip) {
		t.Errorf("mask %v outside clip %v", got, clip)
	}
	if coverage(mask) == 0 {
		t.Error("mask has no coverage")
	}

	if m, _ := Rasterize(&Block{}); m != nil {
		t.Error("empty block produced a mask")
	}
}

func TestRasterizeCropsToInk(t *testing.T) {
	l := NewManualLayouter(newTestRegistry(t))
	b, err := l.Layout(vscene.NewText().Content("hi").Size(20000, 20000).FontSize(20))
	if err != nil {
		t.Fatal(err)
	}
	mask, origin := Rasterize(b)
	if mask == nil {
		t.Fatal("nil mask")
	}
	if dx, dy := mask.Bounds().Dx(), mask.Bounds().Dy(); dx > 200 || dy > 200 {
		t.Errorf("mask is %dx%d for two glyphs", dx, dy)
	}
	if origin.X < 0 || origin.Y < 0 {
		t.Errorf("origin = %v", origin)
	}
	if coverage(mask) == 0 {
		t.Error("mask has no coverage")
	}
}

func TestRasterizeInLimitsToBounds(t *testing.T) {
	l := NewManualLayouter(newTestRegistry(t))
	b, err := l.Layout(vscene.NewText().Content("Hi").Position(-10, -10).Size(100, 60).FontSize(40))
	if err != nil {
		t.Fatal(err)
	}
	limit := image.Rect(0, 0, 50, 50)
	mask, origin := RasterizeIn(b, limit)
	if mask == nil {
		t.Fatal("nil mask")
	}
	if got := mask.Bounds().Add(origin); !got.In(limit) {
		t.Errorf("mask %v outside limit %v", got, limit)
	}
	if coverage(mask) == 0 {
		t.Error("mask has no coverage")
	}

	if m, _ := RasterizeIn(b, image.Rect(1000, 1000, 1100, 1100)); m != nil {
		t.Error("mask produced for a limit away from the ink")
	}
}

func coverage(m *image.Alpha) int {
	n := 0
	for _, a := range m.Pix {
		if a > 0 {
			n++
		}
	}
	return n
}
