package render

import (
	"errors"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-view/internal/engine/picking"
	"github.com/Faultbox/midgard-view/internal/engine/scene"
)

// ErrNoRaycastPlane is returned by RayIntersect before MakeRaycastPlane is called.
var ErrNoRaycastPlane = errors.New("render: no raycast plane")

// SetMouse sets the pointer position in normalized device coordinates.
func (c *Context) SetMouse(ndc mgl32.Vec2) {
	c.mouse = ndc
}

// SetMouseFromPixels sets the pointer position from surface pixel coordinates.
func (c *Context) SetMouseFromPixels(x, y float32) {
	w, h := c.renderer.Surface().Size()
	if w <= 0 || h <= 0 {
		return
	}
	c.mouse = picking.PixelToNDC(x, y, float32(w), float32(h))
}

// Mouse returns the pointer position in normalized device coordinates.
func (c *Context) Mouse() mgl32.Vec2 {
	return c.mouse
}

// RaycastPlane returns the active raycast plane, or nil.
func (c *Context) RaycastPlane() *scene.Mesh {
	return c.raycastPlane
}

// MakeRaycastPlane builds an invisible horizontal plane covering the XZ extent
// of m's geometry at the geometry's top, adds it to the scene and makes it the
// raycast target. A previous plane stays in the scene but is no longer used.
// The plane is placed from the geometry's local bounds; m's own transform is
// not applied.
func (c *Context) MakeRaycastPlane(m *scene.Mesh) *scene.Mesh {
	box := m.Geometry.ComputeBoundingBox()
	size := box.Size()

	geo := scene.NewPlaneGeometry(size.X(), size.Z())
	geo.RotateX(-math.Pi / 2)

	mat := scene.NewBasicMaterial(scene.ColorWhite)
	mat.Visible = false

	plane := scene.NewMesh(geo, mat)
	plane.Name = "raycast-plane"
	plane.Position = mgl32.Vec3{0, box.Max.Y(), 0}

	c.scene.Add(plane)
	c.raycastPlane = plane

	c.log.Debug("raycast plane created",
		zap.Float32("width", size.X()),
		zap.Float32("depth", size.Z()),
		zap.Float32("y", box.Max.Y()),
	)
	return plane
}

// RayIntersect casts a ray from the camera through the mouse position and
// returns the hits on the raycast plane, nearest first.
func (c *Context) RayIntersect() ([]picking.Intersection, error) {
	if c.raycastPlane == nil {
		return nil, ErrNoRaycastPlane
	}
	c.raycaster.SetFromCamera(c.mouse, c.camera)
	return c.raycaster.IntersectObject(c.raycastPlane, false), nil
}
