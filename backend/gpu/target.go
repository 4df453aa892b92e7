// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"fmt"
	"time"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/vscene"
	"github.com/gogpu/vscene/render"
	"github.com/gogpu/vscene/tess"
)

// pollInterval is the sleep between completion polls in Submit.
const pollInterval = 50 * time.Microsecond

// target is one acquired surface texture.
type target struct {
	b    *Backend
	tex  hal.SurfaceTexture
	view hal.TextureView
	cmd  hal.CommandBuffer

	submitted bool
	triangles int
	quads     int
}

// Encode uploads the frame geometry and records the render pass. Text
// layers become coverage quads appended after the shapes, so they draw on
// top in the same pass.
func (t *target) Encode(f *render.Frame) (err error) {
	b := t.b
	if b.closed {
		return ErrClosed
	}
	defer func() {
		if err != nil {
			t.discard()
		}
	}()
	if uint32(f.Width) != b.width || uint32(f.Height) != b.height {
		return fmt.Errorf("%w: frame %dx%d on %dx%d surface",
			render.ErrTargetOutdated, f.Width, f.Height, b.width, b.height)
	}

	m := &b.mesh
	m.Reset()
	if f.Shapes != nil {
		m.Vertices = append(m.Vertices, f.Shapes.Vertices...)
		m.Indices = append(m.Indices, f.Shapes.Indices...)
		m.Draws = append(m.Draws, f.Shapes.Draws...)
	}
	space := b.ColorSpace()
	for _, l := range f.Text {
		t.quads += tess.AppendRuns(m, tess.MaskRuns(l.Mask), l.Origin, l.Color.In(space)) / 2
	}
	t.triangles = m.TriangleCount()

	if t.triangles > 0 {
		grown, scratch, err := b.buffers.upload(b.device, b.queue, m, b.scratch)
		b.scratch = scratch
		if err != nil {
			return err
		}
		if grown {
			b.stats.BufferGrows++
		}
	}

	encoder, err := b.device.CreateCommandEncoder(&hal.CommandEncoderDescriptor{
		Label: "vscene_frame_encoder",
	})
	if err != nil {
		return fmt.Errorf("gpu: create command encoder: %w", err)
	}
	if err := encoder.BeginEncoding("vscene_frame"); err != nil {
		return fmt.Errorf("gpu: begin encoding: %w", err)
	}

	attachment := hal.RenderPassColorAttachment{
		View:       t.view,
		LoadOp:     gputypes.LoadOpClear,
		StoreOp:    gputypes.StoreOpStore,
		ClearValue: clearValue(f.Clear),
	}
	if b.cfg.sampleCount > 1 {
		attachment.View = b.textures.msaaView
		attachment.ResolveTarget = t.view
	}
	rp := encoder.BeginRenderPass(&hal.RenderPassDescriptor{
		Label:            "vscene_frame_pass",
		ColorAttachments: []hal.RenderPassColorAttachment{attachment},
	})
	if t.triangles > 0 {
		rp.SetPipeline(b.pipe.pipeline)
		rp.SetBindGroup(0, b.pipe.bindGroup, nil)
		rp.SetVertexBuffer(0, b.buffers.vertBuf, 0)
		rp.SetIndexBuffer(b.buffers.idxBuf, gputypes.IndexFormatUint32, 0)
		rp.DrawIndexed(uint32(len(m.Indices)), 1, 0, 0, 0)
	}
	rp.End()

	cmd, err := encoder.EndEncoding()
	if err != nil {
		return fmt.Errorf("gpu: end encoding: %w", err)
	}
	t.cmd = cmd
	return nil
}

// Submit hands the frame to the queue and waits for it to complete.
func (t *target) Submit() error {
	b := t.b
	if t.cmd == nil {
		return ErrNotEncoded
	}
	idx, err := b.queue.Submit([]hal.CommandBuffer{t.cmd})
	if err != nil {
		t.discard()
		return fmt.Errorf("gpu: submit: %w", err)
	}
	if err := b.waitSubmission(idx); err != nil {
		t.discard()
		return err
	}
	b.device.FreeCommandBuffer(t.cmd)
	t.cmd = nil
	t.submitted = true
	return nil
}

// Present queues the surface texture for display.
func (t *target) Present() error {
	b := t.b
	if !t.submitted {
		return ErrNotEncoded
	}
	err := b.queue.Present(b.surface, t.tex, nil)
	b.device.DestroyTextureView(t.view)
	t.view, t.tex = nil, nil
	if err != nil {
		return fmt.Errorf("gpu: present: %w", err)
	}
	b.stats.Frames++
	b.stats.Triangles += uint64(t.triangles)
	b.stats.TextQuads += uint64(t.quads)
	vscene.Logger().Debug("gpu: frame presented",
		"triangles", t.triangles, "textQuads", t.quads)
	return nil
}

// discard releases an unpresented frame.
func (t *target) discard() {
	b := t.b
	if t.cmd != nil {
		b.device.FreeCommandBuffer(t.cmd)
		t.cmd = nil
	}
	if t.view != nil {
		b.device.DestroyTextureView(t.view)
		t.view = nil
	}
	if t.tex != nil {
		b.surface.DiscardTexture(t.tex)
		t.tex = nil
	}
}

// waitSubmission polls the queue until idx completes or the submit timeout
// passes.
func (b *Backend) waitSubmission(idx uint64) error {
	deadline := time.Now().Add(b.cfg.submitTimeout)
	for b.queue.PollCompleted() < idx {
		if time.Now().After(deadline) {
			return fmt.Errorf("%w: submission %d after %v", ErrSubmitTimeout, idx, b.cfg.submitTimeout)
		}
		time.Sleep(pollInterval)
	}
	return nil
}

// clearValue premultiplies c for the premultiplied-alpha target.
func clearValue(c vscene.ColorF) gputypes.Color {
	a := float64(c.A)
	return gputypes.Color{R: float64(c.R) * a, G: float64(c.G) * a, B: float64(c.B) * a, A: a}
}
