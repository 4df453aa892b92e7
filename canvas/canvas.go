// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package canvas

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/gogpu/vscene"
	"github.com/gogpu/vscene/render"
	"github.com/gogpu/vscene/text"
)

// Common errors returned by Canvas operations.
var (
	// ErrClosed is returned when operations are attempted on a closed canvas.
	ErrClosed = errors.New("canvas: canvas is closed")

	// ErrInvalidDimensions is returned when width or height is below one.
	ErrInvalidDimensions = errors.New("canvas: invalid dimensions")

	// ErrNilBackend is returned when a nil backend is passed or produced.
	ErrNilBackend = errors.New("canvas: nil backend")
)

// Factory creates the backend for Open. It may block, for example while a
// window system hands out a surface, and should return early when ctx is
// done.
type Factory func(ctx context.Context) (render.Backend, error)

// Option configures a Canvas.
type Option func(*options)

type options struct {
	layouter text.Layouter
	fonts    [][]byte
	clear    *vscene.Color
	parallel int
}

// WithLayouter sets the text layouter.
func WithLayouter(l text.Layouter) Option {
	return func(o *options) {
		o.layouter = l
	}
}

// WithFonts loads fonts into a registry private to the canvas and lays text
// out with the shaping layouter. Ignored when WithLayouter is also given.
func WithFonts(fonts ...[]byte) Option {
	return func(o *options) {
		o.fonts = append(o.fonts, fonts...)
	}
}

// WithClearColor sets the background color. The default is opaque black.
func WithClearColor(c vscene.Color) Option {
	return func(o *options) {
		o.clear = &c
	}
}

// WithTextParallelism bounds concurrent text layout per frame.
func WithTextParallelism(n int) Option {
	return func(o *options) {
		o.parallel = n
	}
}

// Canvas owns a scene and renders it to a backend on every change.
type Canvas struct {
	comp   *render.Compositor
	scene  vscene.Scene
	closed bool
}

// New attaches b at the given size and returns a ready canvas. Nothing is
// rendered until the first UpdateObjects or Render call.
func New(b render.Backend, width, height int, opts ...Option) (*Canvas, error) {
	if b == nil {
		return nil, ErrNilBackend
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	layouter, err := o.resolveLayouter()
	if err != nil {
		return nil, err
	}
	copts := []render.Option{
		render.WithLayouter(layouter),
		render.WithTextParallelism(o.parallel),
	}
	if o.clear != nil {
		copts = append(copts, render.WithClearColor(*o.clear))
	}

	comp := render.NewCompositor(copts...)
	if err := comp.Attach(b, width, height); err != nil {
		return nil, fmt.Errorf("canvas: attach: %w", err)
	}
	return &Canvas{comp: comp}, nil
}

// Open runs factory once and attaches the backend it returns. If ctx is
// done first, Open returns ctx.Err() and a backend produced later is
// closed.
func Open(ctx context.Context, factory Factory, width, height int, opts ...Option) (*Canvas, error) {
	if factory == nil {
		return nil, ErrNilBackend
	}
	if width < 1 || height < 1 {
		return nil, fmt.Errorf("%w: width=%d, height=%d", ErrInvalidDimensions, width, height)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	type result struct {
		b   render.Backend
		err error
	}
	done := make(chan result, 1)
	go func() {
		b, err := factory(ctx)
		done <- result{b, err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return nil, fmt.Errorf("canvas: open backend: %w", r.err)
		}
		c, err := New(r.b, width, height, opts...)
		if err != nil && r.b != nil {
			_ = r.b.Close()
		}
		return c, err
	case <-ctx.Done():
		go func() {
			if r := <-done; r.b != nil {
				_ = r.b.Close()
			}
		}()
		return nil, ctx.Err()
	}
}

// UpdateObjects lets fn mutate the scene, then renders it.
func (c *Canvas) UpdateObjects(fn func(*vscene.Scene)) error {
	if c.closed {
		return ErrClosed
	}
	fn(&c.scene)
	return c.comp.Render(c.scene.Objects())
}

// Resized reconfigures the target for a new size and renders. Sizes below
// one and the current size are ignored.
func (c *Canvas) Resized(width, height int) error {
	if c.closed {
		return ErrClosed
	}
	_, err := c.comp.Resize(width, height, c.scene.Objects())
	return err
}

// Render renders the current scene again without changing it.
func (c *Canvas) Render() error {
	if c.closed {
		return ErrClosed
	}
	return c.comp.Render(c.scene.Objects())
}

// Scene returns a copy of the current scene.
func (c *Canvas) Scene() vscene.Scene {
	return c.scene.Clone()
}

// Size returns the target size in pixels.
func (c *Canvas) Size() (width, height int) {
	return c.comp.Size()
}

// Backend returns the attached backend, or nil once closed.
func (c *Canvas) Backend() render.Backend {
	return c.comp.Backend()
}

// Close releases the backend. Calling Close twice is a no-op.
func (c *Canvas) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	return c.comp.Close()
}

func (o *options) resolveLayouter() (text.Layouter, error) {
	switch {
	case o.layouter != nil:
		return o.layouter, nil
	case len(o.fonts) > 0:
		reg, err := text.NewRegistry(o.fonts...)
		if reg == nil {
			return nil, fmt.Errorf("canvas: load fonts: %w", err)
		}
		if err != nil {
			vscene.Logger().Warn("canvas: some fonts failed to load", "err", err)
		}
		return text.NewShapingLayouter(reg), nil
	default:
		return &globalLayouter{}, nil
	}
}

// globalLayouter lays out with the process-wide registry, which may be
// populated after the canvas is created.
type globalLayouter struct {
	mu  sync.Mutex
	reg *text.Registry
	l   *text.ShapingLayouter
}

func (g *globalLayouter) Layout(t vscene.Text) (*text.Block, error) {
	reg, err := text.DefaultRegistry()
	if err != nil {
		return nil, err
	}
	g.mu.Lock()
	if g.reg != reg {
		g.reg = reg
		g.l = text.NewShapingLayouter(reg)
	}
	l := g.l
	g.mu.Unlock()
	return l.Layout(t)
}
