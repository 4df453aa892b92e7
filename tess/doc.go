// Package tess converts resolved shape outlines into indexed triangle
// meshes.
//
// Every shape in a scene is appended, in paint order, to one shared Mesh.
// Vertices carry a flat per-shape color in the color space requested by
// the caller, so a GPU backend can draw the whole scene with one indexed
// draw call. Each fill or stroke also records a DrawRange, which lets
// backends without a triangle pipeline rasterize the mesh shape by shape.
//
// Fills flatten curves to within a tolerance, fan-triangulate convex
// contours and ear-clip concave ones. Strokes expand each segment into a
// quad of the stroke width and add round joins and round caps.
//
// Degenerate input (NaN coordinates, zero width, zero area, fewer than two
// distinct points) yields zero triangles, never an error.
package tess
