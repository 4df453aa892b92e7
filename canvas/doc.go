// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

// Package canvas is the session object that owns a scene and renders it to
// a backend.
//
// Every scene mutation renders immediately, so the target always shows the
// latest objects:
//
//	c, err := canvas.New(software.New(), 800, 600)
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer c.Close()
//
//	err = c.UpdateObjects(func(s *vscene.Scene) {
//		s.Set(
//			vscene.NewRectangle().Position(50, 50).Size(200, 150).Color(50, 0, 100, 1),
//			vscene.NewText().Content("Hello").Position(60, 60).Size(180, 40),
//		)
//	})
//
// Backends that need asynchronous setup, such as acquiring a GPU device and
// surface from a window, are opened with Open, which awaits the factory once
// and honors context cancellation.
//
// # Text
//
// Text needs fonts. Pass them with WithFonts, pass a ready layouter with
// WithLayouter, or register them process-wide with text.RegisterFonts; a
// canvas without either uses the process-wide registry once it exists.
//
// A Canvas is NOT safe for concurrent use.
package canvas
