// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/gogpu/vscene"
	"github.com/gogpu/vscene/tess"
	"github.com/gogpu/vscene/text"
)

// State is the compositor lifecycle state.
type State uint8

// Compositor states.
const (
	StateUninitialized State = iota
	StateReady
	StateRendering
	StateDisposed
)

func (s State) String() string {
	switch s {
	case StateUninitialized:
		return "uninitialized"
	case StateReady:
		return "ready"
	case StateRendering:
		return "rendering"
	case StateDisposed:
		return "disposed"
	default:
		return fmt.Sprintf("State(%d)", uint8(s))
	}
}

// Option configures a Compositor.
type Option func(*Compositor)

// WithLayouter sets the text layouter. Without one, Text objects are skipped.
func WithLayouter(l text.Layouter) Option {
	return func(c *Compositor) {
		c.layouter = l
	}
}

// WithTessellator replaces the default tessellator.
func WithTessellator(t *tess.Tessellator) Option {
	return func(c *Compositor) {
		if t != nil {
			c.tess = t
		}
	}
}

// WithClearColor sets the color each frame is cleared to. The default is
// opaque black.
func WithClearColor(col vscene.Color) Option {
	return func(c *Compositor) {
		c.clear = col
	}
}

// WithTextParallelism bounds how many text blocks are laid out at once.
// Values below one select GOMAXPROCS.
func WithTextParallelism(n int) Option {
	return func(c *Compositor) {
		c.parallel = n
	}
}

// Compositor builds and submits frames to a Backend.
type Compositor struct {
	state    State
	backend  Backend
	width    int
	height   int
	tess     *tess.Tessellator
	layouter text.Layouter
	clear    vscene.Color
	parallel int
	mesh     tess.Mesh
}

// NewCompositor creates an unattached compositor.
func NewCompositor(opts ...Option) *Compositor {
	c := &Compositor{
		tess:  tess.New(),
		clear: vscene.Black,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.parallel < 1 {
		c.parallel = runtime.GOMAXPROCS(0)
	}
	return c
}

// State returns the lifecycle state.
func (c *Compositor) State() State {
	return c.state
}

// Size returns the current target size.
func (c *Compositor) Size() (width, height int) {
	return c.width, c.height
}

// Backend returns the attached backend, or nil.
func (c *Compositor) Backend() Backend {
	return c.backend
}

// Attach configures b at the given size and makes the compositor Ready.
func (c *Compositor) Attach(b Backend, width, height int) error {
	switch c.state {
	case StateDisposed:
		return ErrDisposed
	case StateUninitialized:
	default:
		return ErrAttached
	}
	if b == nil {
		return ErrNotAttached
	}
	if width < 1 || height < 1 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidSize, width, height)
	}
	if err := b.Configure(width, height); err != nil {
		return fmt.Errorf("render: configure target: %w", err)
	}
	c.backend = b
	c.width, c.height = width, height
	c.state = StateReady
	vscene.Logger().Debug("render: backend attached",
		"width", width, "height", height, "colorSpace", b.ColorSpace().String())
	return nil
}

// Render draws objs as one frame. Shapes paint in slice order; text is
// composited above all shapes.
func (c *Compositor) Render(objs []vscene.Object) error {
	if err := c.ready(); err != nil {
		return err
	}
	c.state = StateRendering
	defer func() {
		if c.state == StateRendering {
			c.state = StateReady
		}
	}()

	start := time.Now()
	target, err := c.backend.AcquireTarget()
	if err != nil {
		if errors.Is(err, ErrTargetOutdated) {
			return c.reconfigure(err)
		}
		vscene.Logger().Warn("render: acquire target failed", "err", err)
		return fmt.Errorf("render: acquire target: %w", err)
	}

	space := c.backend.ColorSpace()
	c.mesh.Reset()
	tris := c.tess.AppendScene(&c.mesh, objs, space)

	frame := &Frame{
		Width:  c.width,
		Height: c.height,
		Clear:  c.clear.In(space),
		Shapes: &c.mesh,
		Text:   c.layoutText(objs),
	}

	if err := target.Encode(frame); err != nil {
		// The target was sized behind the compositor's back.
		if errors.Is(err, ErrTargetOutdated) {
			return c.reconfigure(err)
		}
		return fmt.Errorf("render: encode frame: %w", err)
	}
	if err := target.Submit(); err != nil {
		return fmt.Errorf("render: submit frame: %w", err)
	}
	if err := target.Present(); err != nil {
		return fmt.Errorf("render: present frame: %w", err)
	}

	vscene.Logger().Debug("render: frame presented",
		"objects", len(objs), "triangles", tris, "textLayers", len(frame.Text),
		"elapsed", time.Since(start))
	return nil
}

// reconfigure restores the target to the compositor's size after cause
// reported it outdated. The current frame is dropped.
func (c *Compositor) reconfigure(cause error) error {
	vscene.Logger().Warn("render: target outdated, reconfiguring and skipping frame", "err", cause)
	if err := c.backend.Configure(c.width, c.height); err != nil {
		return fmt.Errorf("render: reconfigure target: %w", err)
	}
	return nil
}

// Resize reconfigures the target and re-renders objs. It is a no-op,
// reporting false, when either dimension is below one or the size is
// unchanged.
func (c *Compositor) Resize(width, height int, objs []vscene.Object) (bool, error) {
	if err := c.ready(); err != nil {
		return false, err
	}
	if width < 1 || height < 1 || (width == c.width && height == c.height) {
		return false, nil
	}
	if err := c.backend.Configure(width, height); err != nil {
		return false, fmt.Errorf("render: configure target: %w", err)
	}
	c.width, c.height = width, height
	vscene.Logger().Debug("render: resized", "width", width, "height", height)
	return true, c.Render(objs)
}

// Close releases the backend. Further calls return ErrDisposed; closing
// twice is a no-op.
func (c *Compositor) Close() error {
	switch c.state {
	case StateDisposed:
		return nil
	case StateRendering:
		return ErrBusy
	}
	c.state = StateDisposed
	if c.backend == nil {
		return nil
	}
	b := c.backend
	c.backend = nil
	if err := b.Close(); err != nil {
		return fmt.Errorf("render: close backend: %w", err)
	}
	return nil
}

func (c *Compositor) ready() error {
	switch c.state {
	case StateUninitialized:
		return ErrNotAttached
	case StateRendering:
		return ErrBusy
	case StateDisposed:
		return ErrDisposed
	}
	return nil
}

// layoutText lays out and rasterizes every visible Text in objs. Blocks
// are independent, so they are processed concurrently; the result keeps
// paint order. A block that fails to lay out is logged and skipped.
func (c *Compositor) layoutText(objs []vscene.Object) []TextLayer {
	var texts []vscene.Text
	for _, obj := range objs {
		switch t := obj.(type) {
		case vscene.Text:
			texts = append(texts, t)
		case *vscene.Text:
			if t != nil {
				texts = append(texts, *t)
			}
		}
	}
	if len(texts) == 0 {
		return nil
	}
	if c.layouter == nil {
		vscene.Logger().Debug("render: no layouter, skipping text", "blocks", len(texts))
		return nil
	}

	frame := image.Rect(0, 0, c.width, c.height)
	layers := make([]TextLayer, len(texts))
	var g errgroup.Group
	g.SetLimit(c.parallel)
	for i, t := range texts {
		if !t.Visible() {
			continue
		}
		g.Go(func() error {
			block, err := c.layouter.Layout(t)
			if err != nil {
				vscene.Logger().Warn("render: text layout failed, skipping block", "err", err)
				return nil
			}
			mask, origin := text.RasterizeIn(block, frame)
			layers[i] = TextLayer{Mask: mask, Origin: origin, Color: t.Fill}
			return nil
		})
	}
	_ = g.Wait() // layout errors are logged per block

	out := layers[:0]
	for _, l := range layers {
		if l.Mask != nil {
			out = append(out, l)
		}
	}
	return out
}
