package text

import (
	"errors"
	"math"
	"sync"

	"golang.org/x/text/cases"

	"github.com/gogpu/vscene"
)

// genericAliases lists the installed family names tried, in order, for
// each generic family.
var genericAliases = map[string][]string{
	"sans-serif": {"Go", "DejaVu Sans", "Noto Sans", "Liberation Sans", "Arial", "Helvetica", "Roboto"},
	"serif":      {"DejaVu Serif", "Noto Serif", "Liberation Serif", "Times New Roman", "Georgia"},
	"monospace":  {"Go Mono", "DejaVu Sans Mono", "Noto Sans Mono", "Liberation Mono", "Courier New", "Consolas"},
	"cursive":    {"Comic Sans MS", "URW Chancery L", "Apple Chancery"},
	"fantasy":    {"Impact", "Papyrus"},
}

// Registry is a font database. It is safe for concurrent use.
type Registry struct {
	mu    sync.RWMutex
	fonts []*Font
}

// NewRegistry creates a registry holding the given fonts. It fails unless
// at least one font is valid. Fonts that fail to parse are reported as
// *FontError values joined into the returned error; if others loaded, the
// registry is returned together with that error.
func NewRegistry(fonts ...[]byte) (*Registry, error) {
	r := &Registry{}
	if err := r.Register(fonts...); err != nil {
		if errors.Is(err, ErrNoFonts) || errors.Is(err, ErrNoValidFace) {
			return nil, err
		}
		return r, err
	}
	return r, nil
}

// Register parses and appends fonts. Every valid font is added even if
// others fail; failures are returned as joined *FontError values. If no
// font in the call is valid the error also matches ErrNoValidFace.
func (r *Registry) Register(fonts ...[]byte) error {
	if len(fonts) == 0 {
		return ErrNoFonts
	}

	parsed := make([]*Font, 0, len(fonts))
	var errs []error
	for i, data := range fonts {
		f, err := ParseFont(data)
		if err != nil {
			vscene.Logger().Warn("text: skipping font", "index", i, "err", err)
			errs = append(errs, &FontError{Index: i, Err: err})
			continue
		}
		parsed = append(parsed, f)
	}
	if len(parsed) == 0 {
		return errors.Join(append([]error{ErrNoValidFace}, errs...)...)
	}

	r.mu.Lock()
	r.fonts = append(r.fonts, parsed...)
	r.mu.Unlock()

	vscene.Logger().Debug("text: fonts registered", "added", len(parsed), "failed", len(errs))
	return errors.Join(errs...)
}

// Fonts returns the registered fonts in registration order.
func (r *Registry) Fonts() []*Font {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return append([]*Font(nil), r.fonts...)
}

// Families returns the distinct family names in registration order.
func (r *Registry) Families() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seen := make(map[string]bool)
	var out []string
	for _, f := range r.fonts {
		key := fold(f.family)
		if !seen[key] {
			seen[key] = true
			out = append(out, f.family)
		}
	}
	return out
}

// Resolve finds the best face for a family. Named families match case
// insensitively; generic families try their alias list in order. Within a
// family, a face with the requested slant wins, then the closest weight.
func (r *Registry) Resolve(family vscene.FontFamily, weight vscene.FontWeight, italic bool) (*Font, bool) {
	names := []string{family.Name()}
	if family.IsGeneric() {
		names = genericAliases[family.Name()]
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, name := range names {
		if f := r.bestMatch(fold(name), weight, italic); f != nil {
			return f, true
		}
	}
	return nil, false
}

// Default returns the face used when a family cannot be resolved: the
// best sans-serif match, or else the first registered font.
func (r *Registry) Default() *Font {
	if f, ok := r.Resolve(vscene.SansSerif, vscene.WeightNormal, false); ok {
		return f
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	if len(r.fonts) == 0 {
		return nil
	}
	return r.fonts[0]
}

func (r *Registry) bestMatch(family string, weight vscene.FontWeight, italic bool) *Font {
	var (
		best  *Font
		score = math.MaxInt
	)
	for _, f := range r.fonts {
		if fold(f.family) != family {
			continue
		}
		s := abs(f.weight.Numeric() - weight.Numeric())
		if f.italic != italic {
			s += 1000
		}
		if s < score {
			best, score = f, s
		}
	}
	return best
}

func fold(s string) string {
	return cases.Fold().String(s)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
