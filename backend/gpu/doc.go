// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package gpu implements a render backend on the gogpu/wgpu hardware
// abstraction layer.
//
// Every frame is drawn with a single render pipeline: tessellated shape
// triangles and text coverage quads share one vertex layout (position plus
// straight RGBA color), are uploaded to persistent vertex and index buffers,
// and are drawn with one indexed draw into a multisampled target that
// resolves onto the surface texture.
//
// Colors are submitted in linear light when the surface format is an sRGB
// format, so blending happens in linear space and the hardware applies the
// transfer curve on store. For non-sRGB formats colors are submitted as
// authored.
//
// The backend does not own the device, queue, or surface. Typical use with
// a windowing host that exposes its HAL objects:
//
//	b, err := gpu.NewFromProvider(provider, surface)
//	if err != nil {
//		return err
//	}
//	c := render.NewCompositor()
//	if err := c.Attach(b, width, height); err != nil {
//		return err
//	}
package gpu
