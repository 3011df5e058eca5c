package scene

import (
	"github.com/go-gl/mathgl/mgl32"
)

// Geometry holds vertex buffers in CPU memory. Positions and normals are xyz
// triplets, colors are rgb triplets. Indices are optional; without them every
// three positions form a triangle (or every two a line segment).
type Geometry struct {
	Positions []float32
	Normals   []float32
	Colors    []float32
	Indices   []uint32

	boundingBox *Box3
	version     uint32
}

// NewGeometry wraps existing buffers.
func NewGeometry(positions []float32, indices []uint32) *Geometry {
	return &Geometry{Positions: positions, Indices: indices}
}

// Version changes whenever vertex data is modified through Geometry methods.
// Renderers compare it to decide when to re-upload buffers.
func (g *Geometry) Version() uint32 {
	return g.version
}

// MarkDirty records an external modification of the buffers.
func (g *Geometry) MarkDirty() {
	g.version++
	g.boundingBox = nil
}

// VertexCount returns the number of positions.
func (g *Geometry) VertexCount() int {
	return len(g.Positions) / 3
}

// Vertex returns position i.
func (g *Geometry) Vertex(i int) mgl32.Vec3 {
	return mgl32.Vec3{g.Positions[i*3], g.Positions[i*3+1], g.Positions[i*3+2]}
}

// ElementCount returns the number of indices drawn (indices, or vertices when not indexed).
func (g *Geometry) ElementCount() int {
	if g.Indices != nil {
		return len(g.Indices)
	}
	return g.VertexCount()
}

// TriangleCount returns the number of triangles when drawn as a triangle list.
func (g *Geometry) TriangleCount() int {
	return g.ElementCount() / 3
}

// Triangle returns the corners of triangle i.
func (g *Geometry) Triangle(i int) (a, b, c mgl32.Vec3) {
	if g.Indices != nil {
		return g.Vertex(int(g.Indices[i*3])), g.Vertex(int(g.Indices[i*3+1])), g.Vertex(int(g.Indices[i*3+2]))
	}
	return g.Vertex(i * 3), g.Vertex(i*3 + 1), g.Vertex(i*3 + 2)
}

// ComputeBoundingBox recalculates the cached bounding box from positions.
func (g *Geometry) ComputeBoundingBox() Box3 {
	box := EmptyBox3()
	for i := 0; i < g.VertexCount(); i++ {
		box.ExpandByPoint(g.Vertex(i))
	}
	g.boundingBox = &box
	return box
}

// BoundingBox returns the cached bounding box, computing it on first use.
func (g *Geometry) BoundingBox() Box3 {
	if g.boundingBox == nil {
		return g.ComputeBoundingBox()
	}
	return *g.boundingBox
}

// ApplyMatrix transforms positions by m and normals by its rotation part.
func (g *Geometry) ApplyMatrix(m mgl32.Mat4) *Geometry {
	for i := 0; i < g.VertexCount(); i++ {
		p := mgl32.TransformCoordinate(g.Vertex(i), m)
		copy(g.Positions[i*3:i*3+3], p[:])
	}
	if len(g.Normals) > 0 {
		nm := m.Mat3().Inv().Transpose()
		for i := 0; i+2 < len(g.Normals); i += 3 {
			n := nm.Mul3x1(mgl32.Vec3{g.Normals[i], g.Normals[i+1], g.Normals[i+2]}).Normalize()
			copy(g.Normals[i:i+3], n[:])
		}
	}
	if g.boundingBox != nil {
		g.ComputeBoundingBox()
	}
	g.version++
	return g
}

// RotateX rotates the vertex data about the X axis by angle radians.
func (g *Geometry) RotateX(angle float32) *Geometry {
	return g.ApplyMatrix(mgl32.HomogRotate3DX(angle))
}

// RotateY rotates the vertex data about the Y axis by angle radians.
func (g *Geometry) RotateY(angle float32) *Geometry {
	return g.ApplyMatrix(mgl32.HomogRotate3DY(angle))
}

// Translate offsets the vertex data.
func (g *Geometry) Translate(x, y, z float32) *Geometry {
	return g.ApplyMatrix(mgl32.Translate3D(x, y, z))
}

// NewBoxGeometry creates an axis-aligned box centered on the origin with
// per-face normals (24 vertices, 12 triangles, counter-clockwise outward).
func NewBoxGeometry(width, height, depth float32) *Geometry {
	half := mgl32.Vec3{width / 2, height / 2, depth / 2}

	// normal, u, v with u x v == normal
	faces := [6][3]mgl32.Vec3{
		{{1, 0, 0}, {0, 0, -1}, {0, 1, 0}},
		{{-1, 0, 0}, {0, 0, 1}, {0, 1, 0}},
		{{0, 1, 0}, {1, 0, 0}, {0, 0, -1}},
		{{0, -1, 0}, {1, 0, 0}, {0, 0, 1}},
		{{0, 0, 1}, {1, 0, 0}, {0, 1, 0}},
		{{0, 0, -1}, {-1, 0, 0}, {0, 1, 0}},
	}

	g := &Geometry{
		Positions: make([]float32, 0, 24*3),
		Normals:   make([]float32, 0, 24*3),
		Indices:   make([]uint32, 0, 36),
	}
	for _, f := range faces {
		n, u, v := f[0], f[1], f[2]
		base := uint32(g.VertexCount())
		corners := [4]mgl32.Vec3{
			n.Sub(u).Sub(v),
			n.Add(u).Sub(v),
			n.Add(u).Add(v),
			n.Sub(u).Add(v),
		}
		for _, c := range corners {
			p := mgl32.Vec3{c.X() * half.X(), c.Y() * half.Y(), c.Z() * half.Z()}
			g.Positions = append(g.Positions, p[:]...)
			g.Normals = append(g.Normals, n[:]...)
		}
		g.Indices = append(g.Indices, base, base+1, base+2, base, base+2, base+3)
	}
	return g
}

// NewPlaneGeometry creates a width x height plane in the XY plane facing +Z,
// centered on the origin.
func NewPlaneGeometry(width, height float32) *Geometry {
	hw, hh := width/2, height/2
	return &Geometry{
		Positions: []float32{
			-hw, hh, 0,
			hw, hh, 0,
			-hw, -hh, 0,
			hw, -hh, 0,
		},
		Normals: []float32{
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
			0, 0, 1,
		},
		Indices: []uint32{0, 2, 1, 2, 3, 1},
	}
}
