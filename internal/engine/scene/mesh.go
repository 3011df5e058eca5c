package scene

// Mesh is a triangle mesh node.
type Mesh struct {
	Object
	Geometry *Geometry
	Material Material
}

// NewMesh creates a mesh node at the origin.
func NewMesh(g *Geometry, m Material) *Mesh {
	return &Mesh{Object: newObject(), Geometry: g, Material: m}
}

// LineSegments draws every pair of vertices as a separate line.
type LineSegments struct {
	Object
	Geometry *Geometry
	Material Material
}

// NewLineSegments creates a line segments node at the origin.
func NewLineSegments(g *Geometry, m Material) *LineSegments {
	return &LineSegments{Object: newObject(), Geometry: g, Material: m}
}

// Scene is the root of a scene graph.
type Scene struct {
	Object
	Background *Color
}

// NewScene creates an empty scene.
func NewScene() *Scene {
	return &Scene{Object: newObject()}
}

// Count returns the number of descendants, excluding the scene itself.
func (s *Scene) Count() int {
	n := -1
	Traverse(s, func(Node) { n++ })
	return n
}
