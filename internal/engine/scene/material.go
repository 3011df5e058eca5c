package scene

// Side selects which triangle faces are drawn and hit by rays.
type Side int

const (
	FrontSide Side = iota
	BackSide
	DoubleSide
)

// Material describes how a node is drawn.
type Material interface {
	IsVisible() bool
	FaceSide() Side
}

// BasicMaterial is an unlit flat color.
type BasicMaterial struct {
	Color        Color
	Opacity      float32
	Visible      bool
	Wireframe    bool
	VertexColors bool // Multiply Color by per-vertex geometry colors
	Side         Side
}

// NewBasicMaterial creates a visible, opaque, front-sided material.
func NewBasicMaterial(c Color) *BasicMaterial {
	return &BasicMaterial{Color: c, Opacity: 1, Visible: true}
}

// IsVisible reports whether the material is drawn.
func (m *BasicMaterial) IsVisible() bool { return m.Visible }

// FaceSide returns the culling side.
func (m *BasicMaterial) FaceSide() Side { return m.Side }

// LineMaterial colors line segments, either uniformly or from geometry colors.
type LineMaterial struct {
	Color        Color
	VertexColors bool
	Visible      bool
}

// NewLineMaterial creates a visible line material.
func NewLineMaterial(c Color) *LineMaterial {
	return &LineMaterial{Color: c, Visible: true}
}

// IsVisible reports whether the material is drawn.
func (m *LineMaterial) IsVisible() bool { return m.Visible }

// FaceSide is irrelevant for lines.
func (m *LineMaterial) FaceSide() Side { return DoubleSide }
