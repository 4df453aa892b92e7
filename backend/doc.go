// Package backend selects render backends by name.
//
// Backend packages register a factory from init, so importing one for its
// side effect makes it available:
//
//	import _ "github.com/gogpu/vscene/backend/software"
//
//	b, err := backend.Open("software")
//	if err != nil {
//		log.Fatal(err)
//	}
//	c := render.NewCompositor()
//	if err := c.Attach(b, 800, 600); err != nil {
//		log.Fatal(err)
//	}
//
// # Available Backends
//
//   - "software": CPU rasterizer drawing into an image.RGBA (always available)
//   - "gpu": WebGPU pipeline via gogpu/wgpu; needs a device and surface, so
//     it is constructed directly with gpu.New or gpu.NewFromProvider and
//     does not register a factory.
package backend
