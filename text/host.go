package text

import (
	"errors"
	"fmt"
)

// Host is a font system owned by the embedding environment, such as a
// browser document or a platform text service, that accepts raw font
// files under a family name.
type Host interface {
	AddFont(family string, data []byte) error
}

// RegisterHostFonts hands fonts to a host font system instead of a
// Registry. Each font is parsed first so malformed data never reaches the
// host. It returns ErrNoHostContext if host is nil.
func RegisterHostFonts(host Host, fonts [][]byte) error {
	if host == nil {
		return ErrNoHostContext
	}
	if len(fonts) == 0 {
		return ErrNoFonts
	}

	var errs []error
	for i, data := range fonts {
		f, err := ParseFont(data)
		if err != nil {
			errs = append(errs, &FontError{Index: i, Err: err})
			continue
		}
		if err := host.AddFont(f.Family(), data); err != nil {
			errs = append(errs, fmt.Errorf("%w: font %d (%s): %w", ErrHostRejected, i, f.Family(), err))
		}
	}
	return errors.Join(errs...)
}
