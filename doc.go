// Package vscene describes 2D vector scenes and resolves them into geometry.
//
// # Overview
//
// vscene is a retained-mode scene description for the GoGPU ecosystem. A frame
// is a list of typed primitives: rectangles (optionally rounded and bordered),
// circles, polylines and text blocks. The engine turns that list into GPU-ready
// triangle geometry and a composited, anti-aliased frame.
//
// # Quick Start
//
//	var scene vscene.Scene
//	scene.Add(vscene.NewRectangle().
//	    Position(50, 50).
//	    Size(200, 150).
//	    Color(50, 0, 100, 1).
//	    RoundedCorners(20, 20, 20, 20).
//	    Border(10, 0, 0, 0, 1))
//	scene.Add(vscene.NewCircle().Center(400, 120).Radius(50).Color(255, 200, 0, 1))
//
// Builders are plain values: every setter returns a modified copy and never
// mutates the receiver.
//
// # Architecture
//
// The library is organized into:
//   - vscene: scene model, paths and the geometry resolver
//   - tess: fill and stroke tessellation into vertex/index buffers
//   - text: font registry and text layout
//   - render: frame compositor and backend contracts
//   - backend/software, backend/gpu: compositor backends
//   - canvas: the session object that owns a scene and renders it
//
// # Logging
//
// vscene is silent by default. Call [SetLogger] to route diagnostics from all
// sub-packages into a [log/slog] logger.
package vscene
