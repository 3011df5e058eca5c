// Package terrain builds the reference ground mesh shown by the viewer.
package terrain

import (
	"math"
	"math/rand/v2"
)

// Heightmap is a regular grid of corner altitudes centered on the origin.
type Heightmap struct {
	Altitudes [][]float32 // [x][z] corner heights, (TilesX+1) x (TilesZ+1)
	TilesX    int
	TilesZ    int
	TileSize  float32 // Size of each tile in world units
}

// GenerateParams controls procedural terrain.
type GenerateParams struct {
	TilesX    int
	TilesZ    int
	TileSize  float32
	Amplitude float32
	Seed      uint64
}

// DefaultGenerateParams returns a gently rolling 1000x1000 terrain.
func DefaultGenerateParams() GenerateParams {
	return GenerateParams{
		TilesX:    50,
		TilesZ:    50,
		TileSize:  20,
		Amplitude: 40,
		Seed:      1,
	}
}

// NewHeightmap creates a flat heightmap.
func NewHeightmap(tilesX, tilesZ int, tileSize float32) *Heightmap {
	if tilesX < 1 {
		tilesX = 1
	}
	if tilesZ < 1 {
		tilesZ = 1
	}
	altitudes := make([][]float32, tilesX+1)
	for x := range altitudes {
		altitudes[x] = make([]float32, tilesZ+1)
	}
	return &Heightmap{
		Altitudes: altitudes,
		TilesX:    tilesX,
		TilesZ:    tilesZ,
		TileSize:  tileSize,
	}
}

// Generate fills a heightmap with a few overlapping sine waves. The same
// params always give the same terrain.
func Generate(p GenerateParams) *Heightmap {
	h := NewHeightmap(p.TilesX, p.TilesZ, p.TileSize)

	rng := rand.New(rand.NewPCG(p.Seed, p.Seed^0x9e3779b97f4a7c15))
	type wave struct{ fx, fz, phase, weight float64 }
	waves := make([]wave, 3)
	var total float64
	for i := range waves {
		waves[i] = wave{
			fx:     (0.5 + rng.Float64()) * float64(i+1) * 2 * math.Pi / float64(h.TilesX),
			fz:     (0.5 + rng.Float64()) * float64(i+1) * 2 * math.Pi / float64(h.TilesZ),
			phase:  rng.Float64() * 2 * math.Pi,
			weight: 1 / float64(i+1),
		}
		total += waves[i].weight
	}

	for x := 0; x <= h.TilesX; x++ {
		for z := 0; z <= h.TilesZ; z++ {
			var v float64
			for _, w := range waves {
				v += w.weight * math.Sin(float64(x)*w.fx+w.phase) * math.Cos(float64(z)*w.fz+w.phase)
			}
			h.Altitudes[x][z] = float32(v/total) * p.Amplitude
		}
	}
	return h
}

// Width returns the X extent in world units.
func (h *Heightmap) Width() float32 {
	return float32(h.TilesX) * h.TileSize
}

// Depth returns the Z extent in world units.
func (h *Heightmap) Depth() float32 {
	return float32(h.TilesZ) * h.TileSize
}

// CornerPosition returns the world X and Z of grid corner (x, z).
func (h *Heightmap) CornerPosition(x, z int) (worldX, worldZ float32) {
	return float32(x)*h.TileSize - h.Width()/2, float32(z)*h.TileSize - h.Depth()/2
}

// Range returns the lowest and highest altitude.
func (h *Heightmap) Range() (lo, hi float32) {
	lo, hi = float32(math.MaxFloat32), float32(-math.MaxFloat32)
	for _, col := range h.Altitudes {
		for _, a := range col {
			lo = min(lo, a)
			hi = max(hi, a)
		}
	}
	return lo, hi
}

func clampi(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
