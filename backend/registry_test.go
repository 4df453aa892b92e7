package backend

import (
	"errors"
	"slices"
	"testing"

	"github.com/gogpu/vscene"
	"github.com/gogpu/vscene/render"
)

type stubBackend struct{ name string }

func (stubBackend) ColorSpace() vscene.ColorSpace         { return vscene.ColorSpaceSRGB }
func (stubBackend) Configure(int, int) error              { return nil }
func (stubBackend) AcquireTarget() (render.Target, error) { return nil, errors.New("stub") }
func (stubBackend) Close() error                          { return nil }

func withRegistry(t *testing.T, entries map[string]Factory) {
	t.Helper()
	registryMu.Lock()
	saved := factories
	factories = make(map[string]Factory)
	for k, v := range entries {
		factories[k] = v
	}
	registryMu.Unlock()
	t.Cleanup(func() {
		registryMu.Lock()
		factories = saved
		registryMu.Unlock()
	})
}

func stub(name string) Factory {
	return func() (render.Backend, error) { return stubBackend{name: name}, nil }
}

func failing(err error) Factory {
	return func() (render.Backend, error) { return nil, err }
}

func TestRegisterAndOpen(t *testing.T) {
	withRegistry(t, nil)

	if IsRegistered("a") {
		t.Fatal("empty registry reports a")
	}
	Register("b", stub("b"))
	Register("a", stub("a"))
	if got := Available(); !slices.Equal(got, []string{"a", "b"}) {
		t.Errorf("Available() = %v", got)
	}

	b, err := Open("a")
	if err != nil {
		t.Fatal(err)
	}
	if b.(stubBackend).name != "a" {
		t.Errorf("opened %v", b)
	}

	Unregister("a")
	if _, err := Open("a"); !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("Open after Unregister = %v", err)
	}
}

func TestOpenFactoryError(t *testing.T) {
	boom := errors.New("no adapter")
	withRegistry(t, map[string]Factory{GPU: failing(boom)})

	if _, err := Open(GPU); !errors.Is(err, boom) {
		t.Errorf("Open = %v, want wrapped %v", err, boom)
	}
}

func TestDefault(t *testing.T) {
	boom := errors.New("no adapter")

	tests := []struct {
		name    string
		entries map[string]Factory
		want    string
		wantErr bool
	}{
		{"empty", nil, "", true},
		{"priority", map[string]Factory{Software: stub(Software), GPU: stub(GPU)}, GPU, false},
		{"fallback after failure", map[string]Factory{GPU: failing(boom), Software: stub(Software)}, Software, false},
		{"unlisted", map[string]Factory{"custom": stub("custom")}, "custom", false},
		{"all fail", map[string]Factory{GPU: failing(boom)}, "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withRegistry(t, tt.entries)
			b, err := Default()
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Default() = %v, want error", b)
				}
				return
			}
			if err != nil {
				t.Fatal(err)
			}
			if got := b.(stubBackend).name; got != tt.want {
				t.Errorf("Default() = %q, want %q", got, tt.want)
			}
		})
	}
}
