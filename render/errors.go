// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

// Sentinel errors returned by Compositor.
var (
	// ErrNotAttached is returned before a backend is attached.
	ErrNotAttached = errors.New("render: no backend attached")

	// ErrAttached is returned by Attach when a backend is already attached.
	ErrAttached = errors.New("render: backend already attached")

	// ErrDisposed is returned after Close.
	ErrDisposed = errors.New("render: compositor disposed")

	// ErrBusy is returned when Render is re-entered from inside a frame.
	ErrBusy = errors.New("render: frame already in progress")

	// ErrInvalidSize is returned for target dimensions below one pixel.
	ErrInvalidSize = errors.New("render: invalid target size")

	// ErrTargetOutdated is returned, possibly wrapped, by Backend.AcquireTarget
	// when the presentation target no longer matches its configuration, for
	// example after the window was resized or the surface was lost, and by
	// Target.Encode when the frame size differs from the target's. The
	// compositor reconfigures and skips the frame.
	ErrTargetOutdated = errors.New("render: target outdated")
)
