package tess

import "github.com/gogpu/vscene"

// Vertex is a mesh vertex: a position in logical pixels and a straight
// (non-premultiplied) RGBA color.
type Vertex struct {
	Position [2]float32
	Color    [4]float32
}

// VertexSize is the size of a Vertex in bytes when packed for upload.
const VertexSize = 24

// DrawRange is the index span of one fill or stroke.
type DrawRange struct {
	FirstIndex uint32
	IndexCount uint32

	// Color is the flat color of every vertex in the range. When Varying
	// is set the vertices carry their own colors and Color is only the
	// base color they were derived from.
	Color   vscene.ColorF
	Varying bool
}

// Mesh is an indexed triangle list shared by every shape of a frame.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Draws    []DrawRange
}

// Reset empties the mesh, keeping allocated storage.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
	m.Draws = m.Draws[:0]
}

// Empty reports whether the mesh has no triangles.
func (m *Mesh) Empty() bool {
	return m == nil || len(m.Indices) == 0
}

// TriangleCount returns the number of triangles in the mesh.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Triangle returns the three vertices of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c Vertex) {
	j := i * 3
	return m.Vertices[m.Indices[j]], m.Vertices[m.Indices[j+1]], m.Vertices[m.Indices[j+2]]
}

// builder appends one draw range worth of triangles.
type builder struct {
	mesh  *Mesh
	color [4]float32
	first uint32
}

func (m *Mesh) begin(c vscene.ColorF) builder {
	return builder{mesh: m, color: c.Array(), first: uint32(len(m.Indices))}
}

func (b *builder) vertex(p vscene.Point) uint32 {
	idx := uint32(len(b.mesh.Vertices))
	b.mesh.Vertices = append(b.mesh.Vertices, Vertex{
		Position: [2]float32{float32(p.X), float32(p.Y)},
		Color:    b.color,
	})
	return idx
}

func (b *builder) triangle(i0, i1, i2 uint32) {
	b.mesh.Indices = append(b.mesh.Indices, i0, i1, i2)
}

// finish records the draw range and returns the number of triangles added.
func (b *builder) finish(c vscene.ColorF, varying bool) int {
	n := uint32(len(b.mesh.Indices)) - b.first
	if n == 0 {
		return 0
	}
	b.mesh.Draws = append(b.mesh.Draws, DrawRange{
		FirstIndex: b.first,
		IndexCount: n,
		Color:      c,
		Varying:    varying,
	})
	return int(n / 3)
}
