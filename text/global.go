package text

import "sync"

var (
	globalMu sync.Mutex
	global   *Registry
)

// RegisterFonts adds fonts to the process-wide registry, creating it on the
// first successful call. Later calls append. The lock is held for the whole
// load so concurrent registrations are serialized.
func RegisterFonts(fonts [][]byte) error {
	globalMu.Lock()
	defer globalMu.Unlock()

	if global == nil {
		r, err := NewRegistry(fonts...)
		if r != nil {
			global = r
		}
		return err
	}
	return global.Register(fonts...)
}

// DefaultRegistry returns the process-wide registry, or ErrNoRegistry if
// RegisterFonts has not succeeded yet.
func DefaultRegistry() (*Registry, error) {
	globalMu.Lock()
	defer globalMu.Unlock()
	if global == nil {
		return nil, ErrNoRegistry
	}
	return global, nil
}

// resetDefaultRegistry drops the process-wide registry. Tests only.
func resetDefaultRegistry() {
	globalMu.Lock()
	global = nil
	globalMu.Unlock()
}
