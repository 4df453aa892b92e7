// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

//go:build !nogpu

package gpu

import (
	"fmt"

	"github.com/gogpu/gputypes"
	"github.com/gogpu/wgpu/hal"
)

// textureSet is the multisampled color target. The surface texture is its
// resolve target, so no single-sample copy is kept.
type textureSet struct {
	msaaTex  hal.Texture
	msaaView hal.TextureView
	width    uint32
	height   uint32
}

// ensure recreates the target when the size changed. Same size is a no-op.
func (ts *textureSet) ensure(device hal.Device, w, h uint32, cfg config) error {
	if ts.width == w && ts.height == h && ts.msaaTex != nil {
		return nil
	}
	ts.destroy(device)

	tex, err := device.CreateTexture(&hal.TextureDescriptor{
		Label:         "vscene_msaa_color",
		Size:          hal.Extent3D{Width: w, Height: h, DepthOrArrayLayers: 1},
		MipLevelCount: 1,
		SampleCount:   cfg.sampleCount,
		Dimension:     gputypes.TextureDimension2D,
		Format:        cfg.format,
		Usage:         gputypes.TextureUsageRenderAttachment,
	})
	if err != nil {
		return fmt.Errorf("gpu: create MSAA texture: %w", err)
	}
	ts.msaaTex = tex

	view, err := device.CreateTextureView(tex, &hal.TextureViewDescriptor{
		Label: "vscene_msaa_color_view",
	})
	if err != nil {
		ts.destroy(device)
		return fmt.Errorf("gpu: create MSAA view: %w", err)
	}
	ts.msaaView = view
	ts.width, ts.height = w, h
	return nil
}

func (ts *textureSet) destroy(device hal.Device) {
	if ts.msaaView != nil {
		device.DestroyTextureView(ts.msaaView)
		ts.msaaView = nil
	}
	if ts.msaaTex != nil {
		device.DestroyTexture(ts.msaaTex)
		ts.msaaTex = nil
	}
	ts.width, ts.height = 0, 0
}
