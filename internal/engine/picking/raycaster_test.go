package picking

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-view/internal/engine/scene"
)

func groundPlane(size, height float32) *scene.Mesh {
	g := scene.NewPlaneGeometry(size, size).RotateX(-math.Pi / 2)
	m := scene.NewMesh(g, scene.NewBasicMaterial(scene.ColorGray))
	m.Position = mgl32.Vec3{0, height, 0}
	return m
}

func TestRaycasterHitsPlaneFromAbove(t *testing.T) {
	plane := groundPlane(100, 5)
	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{0, 0}, topDownCamera(10, 50, 20))

	hits := rc.IntersectObject(plane, false)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit, got %d", len(hits))
	}
	h := hits[0]
	if !h.Point.ApproxEqualThreshold(mgl32.Vec3{10, 5, 20}, eps) {
		t.Errorf("point = %v, want (10,5,20)", h.Point)
	}
	if !near(h.Distance, 45) {
		t.Errorf("distance = %f, want 45", h.Distance)
	}
	if h.Object != scene.Node(plane) {
		t.Error("hit should reference the plane")
	}
}

func TestRaycasterRange(t *testing.T) {
	plane := groundPlane(100, 5)
	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{0, 0}, topDownCamera(10, 50, 20))

	rc.Far = 40
	if hits := rc.IntersectObject(plane, false); len(hits) != 0 {
		t.Errorf("hit beyond Far: %+v", hits)
	}

	rc.Far = 100
	rc.Near = 46
	if hits := rc.IntersectObject(plane, false); len(hits) != 0 {
		t.Errorf("hit before Near: %+v", hits)
	}
}

func TestRaycasterSides(t *testing.T) {
	plane := groundPlane(100, 5)
	mat := plane.Material.(*scene.BasicMaterial)

	// Looking up from below at the plane's back face
	cam := topDownCamera(10, -50, 20)
	cam.LookAt(mgl32.Vec3{10, 100, 20})
	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{0, 0}, cam)

	if hits := rc.IntersectObject(plane, false); len(hits) != 0 {
		t.Errorf("front-sided plane hit from below: %d hits", len(hits))
	}

	mat.Side = scene.BackSide
	if hits := rc.IntersectObject(plane, false); len(hits) != 1 {
		t.Errorf("back-sided plane: %d hits, want 1", len(hits))
	}

	mat.Side = scene.DoubleSide
	if hits := rc.IntersectObject(plane, false); len(hits) != 1 {
		t.Errorf("double-sided plane: %d hits, want 1", len(hits))
	}
}

func TestRaycasterIgnoresVisibility(t *testing.T) {
	plane := groundPlane(100, 0)
	plane.Material.(*scene.BasicMaterial).Visible = false
	plane.Visible = false

	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{0, 0}, topDownCamera(10, 50, 20))

	if hits := rc.IntersectObject(plane, false); len(hits) != 1 {
		t.Errorf("invisible plane: %d hits, want 1", len(hits))
	}
}

func TestRaycasterRecursive(t *testing.T) {
	group := scene.NewGroup()
	low := groundPlane(100, 0)
	high := groundPlane(100, 10)
	group.Add(low, high)

	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{0, 0}, topDownCamera(10, 50, 20))

	if hits := rc.IntersectObject(group, false); len(hits) != 0 {
		t.Errorf("non-recursive group test returned %d hits", len(hits))
	}

	hits := rc.IntersectObject(group, true)
	if len(hits) != 2 {
		t.Fatalf("recursive: %d hits, want 2", len(hits))
	}
	if hits[0].Object != scene.Node(high) || hits[1].Object != scene.Node(low) {
		t.Error("hits should be sorted nearest first")
	}
	if !near(hits[0].Distance, 40) || !near(hits[1].Distance, 50) {
		t.Errorf("distances = %f, %f, want 40, 50", hits[0].Distance, hits[1].Distance)
	}
}

func TestRaycasterTransformedMesh(t *testing.T) {
	box := scene.NewMesh(scene.NewBoxGeometry(1, 1, 1), scene.NewBasicMaterial(scene.ColorRed))
	box.Position = mgl32.Vec3{10, 0, 20}
	box.Scale = mgl32.Vec3{4, 4, 4}

	// Off center so the ray does not graze the face diagonal
	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{0, 0}, topDownCamera(11, 50, 20.4))

	hits := rc.IntersectObject(box, false)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit on the top face, got %d", len(hits))
	}
	if !hits[0].Point.ApproxEqualThreshold(mgl32.Vec3{11, 2, 20.4}, eps) {
		t.Errorf("point = %v, want (11,2,20.4)", hits[0].Point)
	}
}

func TestRaycasterSharedEdgeCountsOnce(t *testing.T) {
	// Centered plane: the center ray crosses the diagonal between both triangles
	plane := groundPlane(100, 0)
	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{0, 0}, topDownCamera(0, 50, 0))

	hits := rc.IntersectObject(plane, false)
	if len(hits) != 1 {
		t.Fatalf("expected 1 hit on the shared edge, got %d", len(hits))
	}
	if !hits[0].Point.ApproxEqualThreshold(mgl32.Vec3{0, 0, 0}, eps) {
		t.Errorf("point = %v, want origin", hits[0].Point)
	}
}

func TestRaycasterSetFromCameraOrigin(t *testing.T) {
	cam := topDownCamera(3, 40, -7)
	rc := NewRaycaster()
	rc.SetFromCamera(mgl32.Vec2{0, 0}, cam)

	if rc.Ray.Origin != cam.Position {
		t.Errorf("origin = %v, want camera position %v", rc.Ray.Origin, cam.Position)
	}
	if !rc.Ray.Direction.ApproxEqualThreshold(mgl32.Vec3{0, -1, 0}, eps) {
		t.Errorf("direction = %v, want (0,-1,0)", rc.Ray.Direction)
	}
}
