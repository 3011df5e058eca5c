package terrain

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-view/internal/engine/scene"
)

// BuildGeometry triangulates the heightmap with smooth normals and vertex
// colors blended from low to high by altitude.
func BuildGeometry(h *Heightmap, low, high scene.Color) *scene.Geometry {
	cols := h.TilesX + 1
	rows := h.TilesZ + 1
	lo, hi := h.Range()
	span := hi - lo

	lr, lg, lb := low.RGB()
	hr, hg, hb := high.RGB()

	g := &scene.Geometry{
		Positions: make([]float32, 0, cols*rows*3),
		Normals:   make([]float32, 0, cols*rows*3),
		Colors:    make([]float32, 0, cols*rows*3),
		Indices:   make([]uint32, 0, h.TilesX*h.TilesZ*6),
	}

	for x := 0; x < cols; x++ {
		for z := 0; z < rows; z++ {
			wx, wz := h.CornerPosition(x, z)
			y := h.Altitudes[x][z]
			g.Positions = append(g.Positions, wx, y, wz)

			n := cornerNormal(h, x, z)
			g.Normals = append(g.Normals, n[:]...)

			t := float32(0)
			if span > 0 {
				t = (y - lo) / span
			}
			g.Colors = append(g.Colors, lr+(hr-lr)*t, lg+(hg-lg)*t, lb+(hb-lb)*t)
		}
	}

	idx := func(x, z int) uint32 { return uint32(x*rows + z) }
	for x := 0; x < h.TilesX; x++ {
		for z := 0; z < h.TilesZ; z++ {
			a, b := idx(x, z), idx(x+1, z)
			c, d := idx(x, z+1), idx(x+1, z+1)
			// Counter-clockwise seen from above
			g.Indices = append(g.Indices, a, c, b, b, c, d)
		}
	}

	g.MarkDirty()
	return g
}

// BuildMesh wraps BuildGeometry in a mesh with a basic material.
func BuildMesh(h *Heightmap, low, high scene.Color) *scene.Mesh {
	mat := scene.NewBasicMaterial(scene.ColorWhite)
	mat.VertexColors = true
	m := scene.NewMesh(BuildGeometry(h, low, high), mat)
	m.Name = "terrain"
	return m
}

// cornerNormal estimates the surface normal from neighboring altitudes.
func cornerNormal(h *Heightmap, x, z int) mgl32.Vec3 {
	x0, x1 := clampi(x-1, 0, h.TilesX), clampi(x+1, 0, h.TilesX)
	z0, z1 := clampi(z-1, 0, h.TilesZ), clampi(z+1, 0, h.TilesZ)

	dx := (h.Altitudes[x1][z] - h.Altitudes[x0][z]) / (float32(x1-x0) * h.TileSize)
	dz := (h.Altitudes[x][z1] - h.Altitudes[x][z0]) / (float32(z1-z0) * h.TileSize)

	return mgl32.Vec3{-dx, 1, -dz}.Normalize()
}
