// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"encoding/binary"
	"errors"
	"math"
	"testing"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/naga"
	"github.com/gogpu/wgpu/hal"
	"github.com/gogpu/wgpu/hal/noop"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/gogpu/vscene"
	"github.com/gogpu/vscene/render"
	"github.com/gogpu/vscene/tess"
	"github.com/gogpu/vscene/text"
)

type noopGPU struct {
	device  hal.Device
	queue   hal.Queue
	surface hal.Surface
}

// createNoopDevice opens the noop HAL device with a surface.
func createNoopDevice(t *testing.T) noopGPU {
	t.Helper()
	api := noop.API{}
	instance, err := api.CreateInstance(nil)
	if err != nil {
		t.Fatalf("CreateInstance failed: %v", err)
	}
	surface, err := instance.CreateSurface(0, 0)
	if err != nil {
		instance.Destroy()
		t.Fatalf("CreateSurface failed: %v", err)
	}
	adapters := instance.EnumerateAdapters(surface)
	openDev, err := adapters[0].Adapter.Open(0, gputypes.DefaultLimits())
	if err != nil {
		instance.Destroy()
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() {
		openDev.Device.Destroy()
		instance.Destroy()
	})
	return noopGPU{device: openDev.Device, queue: openDev.Queue, surface: surface}
}

func newBackend(t *testing.T, g noopGPU, opts ...Option) *Backend {
	t.Helper()
	b, err := New(g.device, g.queue, g.surface, opts...)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = b.Close() })
	return b
}

// flakySurface fails the next acquisitions with errs, then behaves like
// the wrapped surface.
type flakySurface struct {
	hal.Surface
	errs       []error
	suboptimal int
	discarded  int
}

func (s *flakySurface) AcquireTexture(f hal.Fence) (*hal.AcquiredSurfaceTexture, error) {
	if len(s.errs) > 0 {
		err := s.errs[0]
		s.errs = s.errs[1:]
		return nil, err
	}
	acquired, err := s.Surface.AcquireTexture(f)
	if err == nil && s.suboptimal > 0 {
		s.suboptimal--
		acquired.Suboptimal = true
	}
	return acquired, err
}

func (s *flakySurface) DiscardTexture(tex hal.SurfaceTexture) {
	s.discarded++
	s.Surface.DiscardTexture(tex)
}

func TestNewValidation(t *testing.T) {
	g := createNoopDevice(t)

	if _, err := New(nil, g.queue, g.surface); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil device = %v", err)
	}
	if _, err := New(g.device, g.queue, nil); !errors.Is(err, ErrNilDevice) {
		t.Errorf("nil surface = %v", err)
	}
	if _, err := New(g.device, g.queue, g.surface, WithSampleCount(2)); !errors.Is(err, ErrInvalidSampling) {
		t.Errorf("sample count 2 = %v", err)
	}
	for _, n := range []uint32{1, 4} {
		if _, err := New(g.device, g.queue, g.surface, WithSampleCount(n)); err != nil {
			t.Errorf("sample count %d: %v", n, err)
		}
	}
}

func TestColorSpaceFollowsFormat(t *testing.T) {
	g := createNoopDevice(t)

	tests := []struct {
		format gputypes.TextureFormat
		want   vscene.ColorSpace
	}{
		{gputypes.TextureFormatBGRA8UnormSrgb, vscene.ColorSpaceLinear},
		{gputypes.TextureFormatBGRA8Unorm, vscene.ColorSpaceSRGB},
		{gputypes.TextureFormatRGBA8Unorm, vscene.ColorSpaceSRGB},
	}
	for _, tt := range tests {
		t.Run(tt.format.String(), func(t *testing.T) {
			b := newBackend(t, g, WithFormat(tt.format))
			if got := b.ColorSpace(); got != tt.want {
				t.Errorf("ColorSpace() = %v, want %v", got, tt.want)
			}
		})
	}

	if got := newBackend(t, g).Format(); got != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("default format = %v", got)
	}
}

func TestRenderThroughCompositor(t *testing.T) {
	g := createNoopDevice(t)
	b := newBackend(t, g)

	reg, err := text.NewRegistry(goregular.TTF)
	if err != nil {
		t.Fatal(err)
	}
	c := render.NewCompositor(render.WithLayouter(text.NewManualLayouter(reg)))
	if err := c.Attach(b, 800, 600); err != nil {
		t.Fatal(err)
	}
	objs := []vscene.Object{
		vscene.NewRectangle().Position(50, 50).Size(200, 150).Color(50, 0, 100, 1.0),
		vscene.NewText().Content("Hello").Position(10, 10).Size(200, 40),
	}
	for range 2 {
		if err := c.Render(objs); err != nil {
			t.Fatal(err)
		}
	}

	s := b.Stats()
	if s.Frames != 2 {
		t.Errorf("frames = %d, want 2", s.Frames)
	}
	if s.TextQuads == 0 {
		t.Error("text produced no coverage quads")
	}
	if s.Triangles < 4+2*s.TextQuads {
		t.Errorf("triangles = %d, want at least shapes plus 2 per text quad (%d)", s.Triangles, s.TextQuads)
	}
	if s.BufferGrows != 1 {
		t.Errorf("buffer grows = %d, want 1 for a repeated scene", s.BufferGrows)
	}
}

func TestEmptyFrame(t *testing.T) {
	g := createNoopDevice(t)
	b := newBackend(t, g, WithSampleCount(1))
	c := render.NewCompositor()
	if err := c.Attach(b, 16, 16); err != nil {
		t.Fatal(err)
	}
	if err := c.Render(nil); err != nil {
		t.Fatal(err)
	}
	if s := b.Stats(); s.Frames != 1 || s.Triangles != 0 || s.BufferGrows != 0 {
		t.Errorf("stats = %+v", s)
	}
}

func TestConfigure(t *testing.T) {
	g := createNoopDevice(t)
	b := newBackend(t, g)

	if _, err := b.AcquireTarget(); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("acquire before configure = %v", err)
	}
	if err := b.Configure(0, 10); !errors.Is(err, render.ErrInvalidSize) {
		t.Errorf("configure 0 = %v", err)
	}
	if err := b.Configure(800, 600); err != nil {
		t.Fatal(err)
	}
	if b.textures.width != 800 || b.textures.msaaView == nil {
		t.Errorf("MSAA target %dx%d view=%v", b.textures.width, b.textures.height, b.textures.msaaView)
	}
	if err := b.Configure(1024, 768); err != nil {
		t.Fatal(err)
	}
	if b.textures.width != 1024 || b.textures.height != 768 {
		t.Errorf("MSAA target not resized: %dx%d", b.textures.width, b.textures.height)
	}
	if b.Stats().Reconfigs != 1 {
		t.Errorf("reconfigs = %d", b.Stats().Reconfigs)
	}
}

func TestSingleSampleSkipsMSAA(t *testing.T) {
	g := createNoopDevice(t)
	b := newBackend(t, g, WithSampleCount(1))
	if err := b.Configure(64, 64); err != nil {
		t.Fatal(err)
	}
	if b.textures.msaaTex != nil {
		t.Error("MSAA texture created for sample count 1")
	}
}

func TestOutdatedSurface(t *testing.T) {
	g := createNoopDevice(t)
	surface := &flakySurface{Surface: g.surface}
	b, err := New(g.device, g.queue, surface)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()

	c := render.NewCompositor()
	if err := c.Attach(b, 100, 100); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		setup func()
	}{
		{"outdated", func() { surface.errs = []error{hal.ErrSurfaceOutdated} }},
		{"lost", func() { surface.errs = []error{hal.ErrSurfaceLost} }},
		{"suboptimal", func() { surface.suboptimal = 1 }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			before := b.Stats()
			if _, err := b.AcquireTarget(); !errors.Is(err, render.ErrTargetOutdated) {
				t.Fatalf("AcquireTarget = %v, want ErrTargetOutdated", err)
			}
			tt.setup()
			if err := c.Render(nil); err != nil {
				t.Fatalf("compositor did not recover: %v", err)
			}
			after := b.Stats()
			if after.Frames != before.Frames {
				t.Error("outdated frame was presented")
			}
			if after.Reconfigs != before.Reconfigs+1 {
				t.Errorf("reconfigs %d -> %d, want one more", before.Reconfigs, after.Reconfigs)
			}
		})
	}
	if surface.discarded != 2 {
		t.Errorf("suboptimal textures discarded = %d, want 2", surface.discarded)
	}

	surface.errs = []error{hal.ErrDeviceLost}
	if err := c.Render(nil); !errors.Is(err, hal.ErrDeviceLost) {
		t.Errorf("device lost = %v", err)
	}
}

func TestTargetOrdering(t *testing.T) {
	g := createNoopDevice(t)
	b := newBackend(t, g)
	if err := b.Configure(32, 32); err != nil {
		t.Fatal(err)
	}

	tgt, err := b.AcquireTarget()
	if err != nil {
		t.Fatal(err)
	}
	if err := tgt.Submit(); !errors.Is(err, ErrNotEncoded) {
		t.Errorf("submit before encode = %v", err)
	}
	if err := tgt.Present(); !errors.Is(err, ErrNotEncoded) {
		t.Errorf("present before submit = %v", err)
	}
	if err := tgt.Encode(&render.Frame{Width: 31, Height: 32}); !errors.Is(err, render.ErrTargetOutdated) {
		t.Errorf("mismatched frame = %v", err)
	}
}

func TestClose(t *testing.T) {
	g := createNoopDevice(t)
	b, err := New(g.device, g.queue, g.surface)
	if err != nil {
		t.Fatal(err)
	}
	if err := b.Configure(10, 10); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Fatal(err)
	}
	if err := b.Close(); err != nil {
		t.Errorf("second close = %v", err)
	}
	if b.pipe != nil || b.textures.msaaTex != nil {
		t.Error("resources kept after close")
	}
	if _, err := b.AcquireTarget(); !errors.Is(err, ErrClosed) {
		t.Errorf("acquire after close = %v", err)
	}
	if err := b.Configure(10, 10); !errors.Is(err, ErrClosed) {
		t.Errorf("configure after close = %v", err)
	}
}

func TestSceneShaderCompilesToSPIRV(t *testing.T) {
	spirvBytes, err := naga.Compile(sceneShaderSource)
	if err != nil {
		t.Fatalf("naga.Compile: %v", err)
	}
	words, err := spirvWords(spirvBytes)
	if err != nil {
		t.Fatal(err)
	}
	if words[0] != spirvMagic {
		t.Errorf("magic = %#x", words[0])
	}

	g := createNoopDevice(t)
	newBackend(t, g, WithSPIRV())
}

func TestSPIRVWords(t *testing.T) {
	tests := []struct {
		name string
		in   []byte
		ok   bool
	}{
		{"empty", nil, false},
		{"short", []byte{3, 2}, false},
		{"unaligned", []byte{3, 2, 0x23, 7, 0}, false},
		{"bad magic", []byte{0, 0, 0, 0}, false},
		{"magic", []byte{3, 2, 0x23, 7, 1, 0, 0, 0}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			words, err := spirvWords(tt.in)
			if (err == nil) != tt.ok {
				t.Fatalf("err = %v, want ok=%v", err, tt.ok)
			}
			if tt.ok && (len(words) != 2 || words[1] != 1) {
				t.Errorf("words = %v", words)
			}
		})
	}
}

func TestEncodeVertices(t *testing.T) {
	vs := []tess.Vertex{
		{Position: [2]float32{1.5, -2}, Color: [4]float32{0.1, 0.2, 0.3, 0.4}},
		{Position: [2]float32{800, 600}, Color: [4]float32{1, 1, 1, 1}},
	}
	buf := encodeVertices(nil, vs)
	if len(buf) != len(vs)*tess.VertexSize {
		t.Fatalf("len = %d, want %d", len(buf), len(vs)*tess.VertexSize)
	}
	f := func(i int) float32 { return math.Float32frombits(binary.LittleEndian.Uint32(buf[i*4:])) }
	want := []float32{1.5, -2, 0.1, 0.2, 0.3, 0.4, 800, 600, 1, 1, 1, 1}
	for i, w := range want {
		if got := f(i); got != w {
			t.Errorf("float %d = %v, want %v", i, got, w)
		}
	}

	idx := encodeIndices(nil, []uint32{0, 1, 70000})
	if got := binary.LittleEndian.Uint32(idx[8:]); got != 70000 {
		t.Errorf("index 2 = %d", got)
	}
}

func TestViewportUniform(t *testing.T) {
	buf := viewportUniform(800, 600)
	if len(buf) != viewportUniformSize {
		t.Fatalf("len = %d", len(buf))
	}
	w := math.Float32frombits(binary.LittleEndian.Uint32(buf[0:]))
	h := math.Float32frombits(binary.LittleEndian.Uint32(buf[4:]))
	if w != 800 || h != 600 {
		t.Errorf("viewport = %vx%v", w, h)
	}
}

func TestClearValuePremultiplied(t *testing.T) {
	got := clearValue(vscene.ColorF{R: 1, G: 0.5, B: 0, A: 0.5})
	want := gputypes.Color{R: 0.5, G: 0.25, B: 0, A: 0.5}
	if got != want {
		t.Errorf("clearValue = %+v, want %+v", got, want)
	}
}

func TestGrowSize(t *testing.T) {
	tests := []struct{ in, want uint64 }{
		{1, minBufferSize},
		{minBufferSize, minBufferSize},
		{minBufferSize + 1, 2 * minBufferSize},
		{5 * minBufferSize, 8 * minBufferSize},
	}
	for _, tt := range tests {
		if got := growSize(tt.in); got != tt.want {
			t.Errorf("growSize(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

type halProvider struct {
	device hal.Device
	queue  hal.Queue
	format gputypes.TextureFormat
}

func (p halProvider) Device() gpucontext.Device             { return p.device }
func (p halProvider) Queue() gpucontext.Queue               { return p.queue }
func (p halProvider) SurfaceFormat() gputypes.TextureFormat { return p.format }
func (p halProvider) Adapter() gpucontext.Adapter           { return nil }
func (p halProvider) AdapterInfo() gpucontext.AdapterInfo   { return gpucontext.AdapterInfo{} }
func (p halProvider) HalDevice() any                        { return p.device }
func (p halProvider) HalQueue() any                         { return p.queue }

type plainProvider struct{ halProvider }

func (plainProvider) HalDevice() {}

func TestNewFromProvider(t *testing.T) {
	g := createNoopDevice(t)
	p := halProvider{device: g.device, queue: g.queue, format: gputypes.TextureFormatBGRA8Unorm}

	b, err := NewFromProvider(p, g.surface)
	if err != nil {
		t.Fatal(err)
	}
	defer b.Close()
	if b.Format() != gputypes.TextureFormatBGRA8Unorm || b.ColorSpace() != vscene.ColorSpaceSRGB {
		t.Errorf("format = %v, space = %v", b.Format(), b.ColorSpace())
	}

	b2, err := NewFromProvider(p, g.surface, WithFormat(gputypes.TextureFormatBGRA8UnormSrgb))
	if err != nil {
		t.Fatal(err)
	}
	defer b2.Close()
	if b2.ColorSpace() != vscene.ColorSpaceLinear {
		t.Error("WithFormat did not override the provider format")
	}

	headless := halProvider{device: g.device, queue: g.queue}
	b3, err := NewFromProvider(headless, g.surface)
	if err != nil {
		t.Fatal(err)
	}
	defer b3.Close()
	if b3.Format() != gputypes.TextureFormatBGRA8UnormSrgb {
		t.Errorf("undefined provider format should keep the default, got %v", b3.Format())
	}

	if _, err := NewFromProvider(plainProvider{p}, g.surface); !errors.Is(err, ErrNoHALProvider) {
		t.Errorf("provider without HAL = %v", err)
	}
	if _, err := NewFromProvider(halProvider{queue: g.queue}, g.surface); !errors.Is(err, ErrNoHALProvider) {
		t.Errorf("provider with nil device = %v", err)
	}
}
