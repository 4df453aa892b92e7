package backend

import (
	"errors"
	"fmt"
	"slices"
	"sync"

	"github.com/gogpu/vscene/render"
)

// Backend names.
const (
	Software = "software"
	GPU      = "gpu"
)

// ErrUnknownBackend is returned by Open for a name nothing registered.
var ErrUnknownBackend = errors.New("backend: unknown backend")

// Factory creates a new, unconfigured backend.
type Factory func() (render.Backend, error)

var (
	registryMu sync.RWMutex
	factories  = make(map[string]Factory)
	// First registered name in this list wins in Default.
	priority = []string{GPU, Software}
)

// Register makes a backend available under name, replacing any earlier
// factory with the same name.
func Register(name string, f Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	factories[name] = f
}

// Unregister removes name. Used by tests.
func Unregister(name string) {
	registryMu.Lock()
	defer registryMu.Unlock()
	delete(factories, name)
}

// Available returns the registered names, sorted.
func Available() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// IsRegistered reports whether name has a factory.
func IsRegistered(name string) bool {
	registryMu.RLock()
	defer registryMu.RUnlock()
	_, ok := factories[name]
	return ok
}

// Open creates a backend by name.
func Open(name string) (render.Backend, error) {
	registryMu.RLock()
	f, ok := factories[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (available: %v)", ErrUnknownBackend, name, Available())
	}
	b, err := f()
	if err != nil {
		return nil, fmt.Errorf("backend: open %s: %w", name, err)
	}
	return b, nil
}

// Default opens the highest priority registered backend that succeeds,
// falling back to any other registered backend.
func Default() (render.Backend, error) {
	tried := make(map[string]bool)
	var errs []error
	for _, name := range append(slices.Clone(priority), Available()...) {
		if tried[name] || !IsRegistered(name) {
			continue
		}
		tried[name] = true
		b, err := Open(name)
		if err == nil {
			return b, nil
		}
		errs = append(errs, err)
	}
	if len(errs) == 0 {
		return nil, ErrUnknownBackend
	}
	return nil, errors.Join(errs...)
}
