package picking

import (
	"math"
	"sort"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-view/internal/engine/camera"
	"github.com/Faultbox/midgard-view/internal/engine/scene"
)

// Intersection is a ray hit on a mesh triangle.
type Intersection struct {
	Distance  float32 // World-space distance from the ray origin
	Point     mgl32.Vec3
	Object    scene.Node
	FaceIndex int
}

// Raycaster intersects a world-space ray with scene meshes.
// Only hits with Near <= distance <= Far are reported.
type Raycaster struct {
	Ray  Ray
	Near float32
	Far  float32
}

// NewRaycaster creates a raycaster with an unbounded range.
func NewRaycaster() *Raycaster {
	return &Raycaster{Far: math.MaxFloat32}
}

// SetFromCamera aims the ray from the camera position through ndc.
func (rc *Raycaster) SetFromCamera(ndc mgl32.Vec2, cam *camera.Perspective) {
	r := ScreenToRay(ndc, cam.InverseViewProjection())
	rc.Ray = Ray{Origin: cam.Position, Direction: r.Direction}
}

// IntersectObject tests n (and its descendants when recursive) and returns
// hits sorted by ascending distance. Visibility is not considered.
func (rc *Raycaster) IntersectObject(n scene.Node, recursive bool) []Intersection {
	var hits []Intersection
	if recursive {
		scene.Traverse(n, func(child scene.Node) {
			hits = rc.intersectNode(child, hits)
		})
	} else {
		hits = rc.intersectNode(n, hits)
	}
	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Distance < hits[j].Distance
	})
	return hits
}

func (rc *Raycaster) intersectNode(n scene.Node, hits []Intersection) []Intersection {
	mesh, ok := n.(*scene.Mesh)
	if !ok || mesh.Geometry == nil {
		return hits
	}

	world := mesh.WorldMatrix()
	inv := world.Inv()

	// Test in local space, report in world space
	localOrigin := mgl32.TransformCoordinate(rc.Ray.Origin, inv)
	localDir := mgl32.TransformNormal(rc.Ray.Direction, inv)
	if localDir.Len() == 0 {
		return hits
	}
	local := Ray{Origin: localOrigin, Direction: localDir.Normalize()}

	box := mesh.Geometry.BoundingBox()
	if box.IsEmpty() {
		return hits
	}
	if _, hit := local.IntersectAABB(NewAABB(box.Min, box.Max)); !hit {
		return hits
	}

	side := scene.FrontSide
	if mesh.Material != nil {
		side = mesh.Material.FaceSide()
	}

	g := mesh.Geometry
	first := len(hits)
	for i := 0; i < g.TriangleCount(); i++ {
		a, b, c := g.Triangle(i)

		var t float32
		var hit bool
		switch side {
		case scene.BackSide:
			t, hit = local.IntersectTriangle(a, c, b, true)
		case scene.DoubleSide:
			t, hit = local.IntersectTriangle(a, b, c, false)
		default:
			t, hit = local.IntersectTriangle(a, b, c, true)
		}
		if !hit {
			continue
		}

		point := mgl32.TransformCoordinate(local.At(t), world)
		dist := point.Sub(rc.Ray.Origin).Len()
		if dist < rc.Near || dist > rc.Far {
			continue
		}
		// A point on an edge shared by two triangles is one hit
		if duplicateHit(hits[first:], point) {
			continue
		}
		hits = append(hits, Intersection{
			Distance:  dist,
			Point:     point,
			Object:    n,
			FaceIndex: i,
		})
	}
	return hits
}

// sameHitEpsilon is the world-space distance under which two hits on one
// mesh are the same point.
const sameHitEpsilon = 1e-4

func duplicateHit(hits []Intersection, p mgl32.Vec3) bool {
	for _, h := range hits {
		if h.Point.Sub(p).Len() <= sameHitEpsilon {
			return true
		}
	}
	return false
}
