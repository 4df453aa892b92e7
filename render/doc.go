// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package render owns the per-frame lifecycle of a vscene renderer.
//
// A Compositor is attached to a Backend, which owns the presentation
// target. Each Render call rebuilds the whole frame from the scene:
//
//  1. acquire the current target from the backend;
//  2. tessellate every shape, in paint order, into one shared mesh using
//     the color space the backend expects;
//  3. lay out and rasterize every Text object into coverage masks;
//  4. encode one pass that clears to the clear color, draws the mesh and
//     composites the text layer on top;
//  5. submit and present.
//
// If the backend reports ErrTargetOutdated while acquiring or encoding, for
// example because the target was resized outside the compositor, it
// reconfigures the target at the current size and skips the frame. Any
// other failure is returned to the caller; there are no retries.
//
// # Backends
//
// The GPU backend lives in backend/gpu and the CPU canvas-style backend in
// backend/software. Any type implementing Backend can be attached.
//
// # Concurrency
//
// A Compositor is owned by one goroutine. Independent compositors may run
// concurrently as long as their backends do not share targets.
package render
