// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"image"

	"github.com/gogpu/vscene"
	"github.com/gogpu/vscene/tess"
)

// Backend is a presentation target and the means to draw into it.
type Backend interface {
	// ColorSpace is the space shape colors must be submitted in.
	ColorSpace() vscene.ColorSpace

	// Configure sizes the target and any size-dependent state such as the
	// multisample target and viewport uniform.
	Configure(width, height int) error

	// AcquireTarget returns the target for the next frame. Errors matching
	// ErrTargetOutdated are recovered by the compositor.
	AcquireTarget() (Target, error)

	// Close releases all resources. The backend is unusable afterwards.
	Close() error
}

// Target is one acquired frame.
type Target interface {
	// Encode records the frame: clear, shapes, then text. A frame whose
	// size does not match the target fails with ErrTargetOutdated.
	Encode(f *Frame) error

	// Submit hands the recorded work to the device.
	Submit() error

	// Present shows the frame.
	Present() error
}

// Frame is everything a backend needs to draw one frame.
type Frame struct {
	Width, Height int

	// Clear is the clear color in the backend's color space.
	Clear vscene.ColorF

	// Shapes is the tessellated shape layer in paint order.
	Shapes *tess.Mesh

	// Text is drawn above every shape, in paint order.
	Text []TextLayer
}

// TextLayer is one rasterized text block.
type TextLayer struct {
	// Mask is the glyph coverage. Its bounds start at (0, 0).
	Mask *image.Alpha

	// Origin is the position of the mask's top-left pixel on the target.
	Origin image.Point

	// Color is the text color as authored.
	Color vscene.Color
}

// Bounds returns the layer's rectangle on the target.
func (l TextLayer) Bounds() image.Rectangle {
	if l.Mask == nil {
		return image.Rectangle{}
	}
	return l.Mask.Bounds().Add(l.Origin)
}
