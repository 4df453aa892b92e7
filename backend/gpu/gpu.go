// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"errors"
	"fmt"
	"time"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vscene"
	"github.com/gogpu/vscene/render"
	"github.com/gogpu/vscene/tess"
)

// Errors returned by the GPU backend.
var (
	ErrClosed          = errors.New("gpu: backend closed")
	ErrNotConfigured   = errors.New("gpu: surface not configured")
	ErrNilDevice       = errors.New("gpu: nil device, queue or surface")
	ErrNoHALProvider   = errors.New("gpu: provider does not expose HAL device and queue")
	ErrSubmitTimeout   = errors.New("gpu: timed out waiting for submission")
	ErrInvalidSampling = errors.New("gpu: sample count must be 1 or 4")
	ErrNotEncoded      = errors.New("gpu: frame not encoded and submitted")
)

const (
	defaultSampleCount   = 4
	defaultSubmitTimeout = 5 * time.Second
)

// Option configures a Backend.
type Option func(*config)

type config struct {
	format        gputypes.TextureFormat
	sampleCount   uint32
	spirv         bool
	submitTimeout time.Duration
	presentMode   gputypes.PresentMode
}

// WithFormat sets the surface texture format. The default is
// BGRA8UnormSrgb.
func WithFormat(f gputypes.TextureFormat) Option {
	return func(c *config) {
		if f != gputypes.TextureFormatUndefined {
			c.format = f
		}
	}
}

// WithSampleCount sets the multisample count, 1 or 4. The default is 4.
func WithSampleCount(n uint32) Option {
	return func(c *config) {
		c.sampleCount = n
	}
}

// WithSPIRV compiles the shader to SPIR-V with naga instead of handing WGSL
// to the driver. Needed by HAL backends without a WGSL front end.
func WithSPIRV() Option {
	return func(c *config) {
		c.spirv = true
	}
}

// WithSubmitTimeout bounds how long Submit waits for the GPU.
func WithSubmitTimeout(d time.Duration) Option {
	return func(c *config) {
		if d > 0 {
			c.submitTimeout = d
		}
	}
}

// WithPresentMode sets the surface present mode. The default is Fifo.
func WithPresentMode(m gputypes.PresentMode) Option {
	return func(c *config) {
		c.presentMode = m
	}
}

// Stats are running totals since the backend was created.
type Stats struct {
	Frames      uint64
	Triangles   uint64
	TextQuads   uint64
	Reconfigs   uint64
	BufferGrows uint64
}

// Backend draws frames onto a hal.Surface.
type Backend struct {
	cfg     config
	device  hal.Device
	queue   hal.Queue
	surface hal.Surface

	pipe     *pipeline
	textures textureSet
	buffers  meshBuffers
	mesh     tess.Mesh
	scratch  []byte

	width, height uint32
	configured    bool
	closed        bool
	stats         Stats
}

var _ render.Backend = (*Backend)(nil)

// New creates a backend drawing with device and queue onto surface. The
// caller keeps ownership of all three.
func New(device hal.Device, queue hal.Queue, surface hal.Surface, opts ...Option) (*Backend, error) {
	if device == nil || queue == nil || surface == nil {
		return nil, ErrNilDevice
	}
	cfg := config{
		format:        gputypes.TextureFormatBGRA8UnormSrgb,
		sampleCount:   defaultSampleCount,
		submitTimeout: defaultSubmitTimeout,
		presentMode:   gputypes.PresentModeFifo,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.sampleCount != 1 && cfg.sampleCount != 4 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidSampling, cfg.sampleCount)
	}

	b := &Backend{cfg: cfg, device: device, queue: queue, surface: surface}
	pipe, err := newPipeline(device, cfg)
	if err != nil {
		return nil, err
	}
	b.pipe = pipe

	vscene.Logger().Info("gpu: backend created",
		"format", cfg.format.String(), "samples", cfg.sampleCount, "spirv", cfg.spirv)
	return b, nil
}

// NewFromProvider creates a backend on the device shared by a host
// application. The provider must expose HalDevice() and HalQueue()
// returning hal.Device and hal.Queue. Its surface format is used unless
// WithFormat overrides it.
func NewFromProvider(p gpucontext.DeviceProvider, surface hal.Surface, opts ...Option) (*Backend, error) {
	type halProvider interface {
		HalDevice() any
		HalQueue() any
	}
	hp, ok := p.(halProvider)
	if !ok {
		return nil, ErrNoHALProvider
	}
	device, ok := hp.HalDevice().(hal.Device)
	if !ok || device == nil {
		return nil, fmt.Errorf("%w: HalDevice is %T", ErrNoHALProvider, hp.HalDevice())
	}
	queue, ok := hp.HalQueue().(hal.Queue)
	if !ok || queue == nil {
		return nil, fmt.Errorf("%w: HalQueue is %T", ErrNoHALProvider, hp.HalQueue())
	}
	opts = append([]Option{WithFormat(p.SurfaceFormat())}, opts...)
	return New(device, queue, surface, opts...)
}

// ColorSpace is linear for sRGB surface formats and sRGB otherwise.
func (b *Backend) ColorSpace() vscene.ColorSpace {
	if b.cfg.format.IsSrgb() {
		return vscene.ColorSpaceLinear
	}
	return vscene.ColorSpaceSRGB
}

// Format returns the surface texture format.
func (b *Backend) Format() gputypes.TextureFormat {
	return b.cfg.format
}

// Stats returns running totals.
func (b *Backend) Stats() Stats {
	return b.stats
}

// Configure sizes the surface, the multisample target and the viewport
// uniform.
func (b *Backend) Configure(width, height int) error {
	if b.closed {
		return ErrClosed
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", render.ErrInvalidSize, width, height)
	}
	w, h := uint32(width), uint32(height)
	err := b.surface.Configure(b.device, &hal.SurfaceConfiguration{
		Width:       w,
		Height:      h,
		Format:      b.cfg.format,
		Usage:       gputypes.TextureUsageRenderAttachment,
		PresentMode: b.cfg.presentMode,
		AlphaMode:   gputypes.CompositeAlphaModeOpaque,
	})
	if err != nil {
		return fmt.Errorf("gpu: configure surface: %w", err)
	}
	if b.cfg.sampleCount > 1 {
		if err := b.textures.ensure(b.device, w, h, b.cfg); err != nil {
			return err
		}
	}
	if err := b.queue.WriteBuffer(b.pipe.uniformBuf, 0, viewportUniform(w, h)); err != nil {
		return fmt.Errorf("gpu: write viewport: %w", err)
	}
	if b.configured {
		b.stats.Reconfigs++
	}
	b.width, b.height = w, h
	b.configured = true
	return nil
}

// AcquireTarget acquires the next surface texture. Outdated, lost or
// suboptimal surfaces are reported as render.ErrTargetOutdated.
func (b *Backend) AcquireTarget() (render.Target, error) {
	if b.closed {
		return nil, ErrClosed
	}
	if !b.configured {
		return nil, ErrNotConfigured
	}
	acquired, err := b.surface.AcquireTexture(nil)
	if err != nil {
		if errors.Is(err, hal.ErrSurfaceOutdated) || errors.Is(err, hal.ErrSurfaceLost) {
			return nil, fmt.Errorf("%w: %w", render.ErrTargetOutdated, err)
		}
		return nil, fmt.Errorf("gpu: acquire surface texture: %w", err)
	}
	if acquired.Suboptimal {
		b.surface.DiscardTexture(acquired.Texture)
		return nil, fmt.Errorf("%w: suboptimal surface", render.ErrTargetOutdated)
	}
	view, err := b.device.CreateTextureView(acquired.Texture, &hal.TextureViewDescriptor{
		Label: "vscene_surface_view",
	})
	if err != nil {
		b.surface.DiscardTexture(acquired.Texture)
		return nil, fmt.Errorf("gpu: create surface view: %w", err)
	}
	return &target{b: b, tex: acquired.Texture, view: view}, nil
}

// Close waits for the GPU, then releases every resource the backend
// created and unconfigures the surface.
func (b *Backend) Close() error {
	if b.closed {
		return nil
	}
	b.closed = true
	err := b.device.WaitIdle()
	b.buffers.destroy(b.device)
	b.textures.destroy(b.device)
	if b.pipe != nil {
		b.pipe.destroy(b.device)
		b.pipe = nil
	}
	if b.configured {
		b.surface.Unconfigure(b.device)
		b.configured = false
	}
	if err != nil {
		return fmt.Errorf("gpu: wait idle: %w", err)
	}
	return nil
}
