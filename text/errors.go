package text

import (
	"errors"
	"fmt"
)

// Sentinel errors for font registration and layout.
var (
	// ErrNoFonts is returned when a registration call receives no font data.
	ErrNoFonts = errors.New("text: no fonts provided")

	// ErrMalformedFont is matched by every *FontError.
	ErrMalformedFont = errors.New("text: malformed font data")

	// ErrNoValidFace is returned when none of the provided fonts could be loaded.
	ErrNoValidFace = errors.New("text: no valid font face found")

	// ErrNoRegistry is returned by DefaultRegistry before the first
	// successful RegisterFonts call.
	ErrNoRegistry = errors.New("text: font registry not initialized")

	// ErrNoHostContext is returned by RegisterHostFonts without a host.
	ErrNoHostContext = errors.New("text: no host font context available")

	// ErrHostRejected wraps an error returned by a Host.
	ErrHostRejected = errors.New("text: host rejected font")
)

// FontError reports a font that could not be parsed.
type FontError struct {
	// Index is the position of the font in the registration call.
	Index int
	Err   error
}

func (e *FontError) Error() string {
	return fmt.Sprintf("text: font %d: %v", e.Index, e.Err)
}

// Unwrap makes errors.Is match both ErrMalformedFont and the parser error.
func (e *FontError) Unwrap() []error {
	return []error{ErrMalformedFont, e.Err}
}
