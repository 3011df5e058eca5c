// Package debug provides debug visualization utilities.
package debug

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-view/internal/engine/scene"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes.
const DefaultBBoxPadding = 1.0

// BBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func BBoxWireframeVertices(lo, hi mgl32.Vec3) []float32 {
	minX, minY, minZ := lo.Elem()
	maxX, maxY, maxZ := hi.Elem()
	return []float32{
		// Bottom face
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// NewBoxHelper outlines box with color c.
func NewBoxHelper(box scene.Box3, c scene.Color) *scene.LineSegments {
	g := scene.NewGeometry(BBoxWireframeVertices(box.Min, box.Max), nil)
	helper := scene.NewLineSegments(g, scene.NewLineMaterial(c))
	helper.Name = "box-helper"
	return helper
}

// NewMeshBoxHelper outlines the world-space bounds of m, grown by padding on every side.
func NewMeshBoxHelper(m *scene.Mesh, padding float32, c scene.Color) *scene.LineSegments {
	box := m.Geometry.BoundingBox().ApplyMatrix(m.WorldMatrix())
	pad := mgl32.Vec3{padding, padding, padding}
	box.Min = box.Min.Sub(pad)
	box.Max = box.Max.Add(pad)
	return NewBoxHelper(box, c)
}
