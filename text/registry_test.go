package text

import (
	"errors"
	"strings"
	"testing"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goitalic"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/vscene"
)

func newTestRegistry(t *testing.T) *Registry {
	t.Helper()
	reg, err := NewRegistry(goregular.TTF, gobold.TTF, goitalic.TTF, gomono.TTF)
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	return reg
}

func TestNewRegistryErrors(t *testing.T) {
	tests := []struct {
		name    string
		fonts   [][]byte
		wantErr []error
		wantReg bool
	}{
		{"no fonts", nil, []error{ErrNoFonts}, false},
		{"empty data", [][]byte{{}}, []error{ErrNoValidFace, ErrMalformedFont}, false},
		{"garbage", [][]byte{[]byte("not a font")}, []error{ErrNoValidFace, ErrMalformedFont}, false},
		{"partial", [][]byte{goregular.TTF, []byte("junk")}, []error{ErrMalformedFont}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistry(tt.fonts...)
			for _, want := range tt.wantErr {
				if !errors.Is(err, want) {
					t.Errorf("err = %v, want match for %v", err, want)
				}
			}
			if (reg != nil) != tt.wantReg {
				t.Errorf("registry returned = %v, want %v", reg != nil, tt.wantReg)
			}
		})
	}
}

func TestFontErrorIndex(t *testing.T) {
	_, err := NewRegistry(goregular.TTF, []byte("junk"))
	var fe *FontError
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want *FontError", err)
	}
	if fe.Index != 1 {
		t.Errorf("Index = %d, want 1", fe.Index)
	}
}

func TestRegisterAppends(t *testing.T) {
	reg, err := NewRegistry(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	if err := reg.Register(gobold.TTF); err != nil {
		t.Fatal(err)
	}
	if got := len(reg.Fonts()); got != 2 {
		t.Errorf("fonts = %d, want 2", got)
	}
	if err := reg.Register(); !errors.Is(err, ErrNoFonts) {
		t.Errorf("empty Register err = %v", err)
	}
}

func TestFontMetadata(t *testing.T) {
	reg := newTestRegistry(t)
	fonts := reg.Fonts()

	regular, bold, italic := fonts[0], fonts[1], fonts[2]
	if regular.Family() == "" {
		t.Fatal("empty family name")
	}
	if regular.Weight() != vscene.WeightNormal || regular.Italic() {
		t.Errorf("regular = %v %v", regular.Weight(), regular.Italic())
	}
	if bold.Weight() != vscene.WeightBold {
		t.Errorf("bold weight = %v", bold.Weight())
	}
	if !italic.Italic() {
		t.Error("italic face not detected")
	}
}

func TestResolve(t *testing.T) {
	reg := newTestRegistry(t)
	fonts := reg.Fonts()
	regular, bold, italic := fonts[0], fonts[1], fonts[2]

	got, ok := reg.Resolve(vscene.Named(strings.ToUpper(regular.Family())), vscene.WeightNormal, false)
	if !ok || got != regular {
		t.Errorf("case-insensitive resolve = %v, %v", got, ok)
	}

	if bold.Family() == regular.Family() {
		if got, _ := reg.Resolve(vscene.Named(regular.Family()), vscene.WeightExtraBold, false); got != bold {
			t.Errorf("closest weight = %v, want bold", got)
		}
	}
	if italic.Family() == regular.Family() {
		if got, _ := reg.Resolve(vscene.Named(regular.Family()), vscene.WeightNormal, true); got != italic {
			t.Errorf("italic resolve = %v", got)
		}
	}

	if _, ok := reg.Resolve(vscene.Named("No Such Family"), vscene.WeightNormal, false); ok {
		t.Error("unknown family resolved")
	}
	if reg.Default() == nil {
		t.Error("Default returned nil")
	}
	if len(reg.Families()) == 0 || len(reg.Families()) > len(fonts) {
		t.Errorf("families = %v", reg.Families())
	}
}

func TestParseStyle(t *testing.T) {
	tests := []struct {
		style  string
		weight vscene.FontWeight
		italic bool
	}{
		{"Regular", vscene.WeightNormal, false},
		{"Bold", vscene.WeightBold, false},
		{"Bold Italic", vscene.WeightBold, true},
		{"SemiBold", vscene.WeightSemiBold, false},
		{"Extra Light Oblique", vscene.WeightExtraLight, true},
		{"Light", vscene.WeightLight, false},
		{"Heavy", vscene.WeightBlack, false},
		{"Thin", vscene.WeightThin, false},
		{"Medium Italic", vscene.WeightMedium, true},
	}
	for _, tt := range tests {
		t.Run(tt.style, func(t *testing.T) {
			w, it := parseStyle(tt.style)
			if w != tt.weight || it != tt.italic {
				t.Errorf("parseStyle = %v %v, want %v %v", w, it, tt.weight, tt.italic)
			}
		})
	}
}

func TestDefaultRegistry(t *testing.T) {
	resetDefaultRegistry()
	t.Cleanup(resetDefaultRegistry)

	if _, err := DefaultRegistry(); !errors.Is(err, ErrNoRegistry) {
		t.Fatalf("err = %v, want ErrNoRegistry", err)
	}
	if err := RegisterFonts(nil); !errors.Is(err, ErrNoFonts) {
		t.Fatalf("err = %v, want ErrNoFonts", err)
	}
	if _, err := DefaultRegistry(); !errors.Is(err, ErrNoRegistry) {
		t.Fatal("failed registration must not create the registry")
	}
	if err := RegisterFonts([][]byte{goregular.TTF}); err != nil {
		t.Fatal(err)
	}
	if err := RegisterFonts([][]byte{gobold.TTF}); err != nil {
		t.Fatalf("second registration: %v", err)
	}
	reg, err := DefaultRegistry()
	if err != nil {
		t.Fatal(err)
	}
	if got := len(reg.Fonts()); got != 2 {
		t.Errorf("fonts = %d, want 2 after append", got)
	}
}

type fakeHost struct {
	added  []string
	reject bool
}

func (h *fakeHost) AddFont(family string, _ []byte) error {
	if h.reject {
		return errors.New("quota exceeded")
	}
	h.added = append(h.added, family)
	return nil
}

func TestRegisterHostFonts(t *testing.T) {
	if err := RegisterHostFonts(nil, [][]byte{goregular.TTF}); !errors.Is(err, ErrNoHostContext) {
		t.Errorf("nil host err = %v", err)
	}

	h := &fakeHost{}
	if err := RegisterHostFonts(h, [][]byte{goregular.TTF}); err != nil {
		t.Fatal(err)
	}
	if len(h.added) != 1 || h.added[0] == "" {
		t.Errorf("added = %v", h.added)
	}

	if err := RegisterHostFonts(h, [][]byte{[]byte("junk")}); !errors.Is(err, ErrMalformedFont) {
		t.Errorf("junk err = %v", err)
	}
	if err := RegisterHostFonts(&fakeHost{reject: true}, [][]byte{goregular.TTF}); !errors.Is(err, ErrHostRejected) {
		t.Errorf("reject err = %v", err)
	}
}
