package debug

import (
	"github.com/Faultbox/midgard-view/internal/engine/scene"
)

// NewAxesHelper draws the X, Y and Z axes from the origin in red, green and blue.
func NewAxesHelper(size float32) *scene.LineSegments {
	g := scene.NewGeometry([]float32{
		0, 0, 0, size, 0, 0,
		0, 0, 0, 0, size, 0,
		0, 0, 0, 0, 0, size,
	}, nil)
	g.Colors = []float32{
		1, 0, 0, 1, 0.6, 0,
		0, 1, 0, 0.6, 1, 0,
		0, 0, 1, 0, 0.6, 1,
	}

	mat := scene.NewLineMaterial(scene.ColorWhite)
	mat.VertexColors = true

	helper := scene.NewLineSegments(g, mat)
	helper.Name = "axes-helper"
	return helper
}

// NewGridHelper draws a size x size grid on the XZ plane centered on the
// origin with divisions cells per side. The two center lines use centerColor.
func NewGridHelper(size float32, divisions int, centerColor, gridColor scene.Color) *scene.LineSegments {
	if divisions < 1 {
		divisions = 1
	}
	step := size / float32(divisions)
	half := size / 2
	center := divisions / 2

	cr, cg, cb := centerColor.RGB()
	gr, gg, gb := gridColor.RGB()

	positions := make([]float32, 0, (divisions+1)*12)
	colors := make([]float32, 0, (divisions+1)*12)

	for i := 0; i <= divisions; i++ {
		k := -half + float32(i)*step
		positions = append(positions,
			-half, 0, k, half, 0, k, // Along X
			k, 0, -half, k, 0, half, // Along Z
		)

		r, g, b := gr, gg, gb
		if i == center && divisions%2 == 0 {
			r, g, b = cr, cg, cb
		}
		for v := 0; v < 4; v++ {
			colors = append(colors, r, g, b)
		}
	}

	geo := scene.NewGeometry(positions, nil)
	geo.Colors = colors

	mat := scene.NewLineMaterial(scene.ColorWhite)
	mat.VertexColors = true

	helper := scene.NewLineSegments(geo, mat)
	helper.Name = "grid-helper"
	return helper
}
