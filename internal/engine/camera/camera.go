// Package camera provides the perspective camera and the first-person
// controller that steers it.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

var worldUp = mgl32.Vec3{0, 1, 0}

// Perspective is a perspective projection camera. It looks down its local -Z axis.
type Perspective struct {
	FOV    float32 // Vertical field of view, degrees
	Aspect float32
	Near   float32
	Far    float32

	Position    mgl32.Vec3
	Orientation mgl32.Quat
}

// NewPerspective creates a camera at the origin looking down -Z.
func NewPerspective(fov, aspect, near, far float32) *Perspective {
	return &Perspective{
		FOV:         fov,
		Aspect:      aspect,
		Near:        near,
		Far:         far,
		Orientation: mgl32.QuatIdent(),
	}
}

// SetAspect updates the aspect ratio, ignoring degenerate sizes.
func (c *Perspective) SetAspect(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// Forward returns the unit view direction in world space.
func (c *Perspective) Forward() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{0, 0, -1})
}

// Right returns the unit local +X axis in world space.
func (c *Perspective) Right() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{1, 0, 0})
}

// Up returns the unit local +Y axis in world space.
func (c *Perspective) Up() mgl32.Vec3 {
	return c.Orientation.Rotate(mgl32.Vec3{0, 1, 0})
}

// LookAt orients the camera toward target, keeping world up.
func (c *Perspective) LookAt(target mgl32.Vec3) {
	f := target.Sub(c.Position)
	if f.Len() < 1e-6 {
		return
	}
	f = f.Normalize()

	up := worldUp
	if abs(f.Dot(up)) > 0.9999 {
		// Looking straight up or down; any horizontal up works
		up = mgl32.Vec3{0, 0, -1}
	}
	r := f.Cross(up).Normalize()
	u := r.Cross(f)

	// Columns are the camera's local axes in world space
	rot := mgl32.Mat4FromCols(
		r.Vec4(0),
		u.Vec4(0),
		f.Mul(-1).Vec4(0),
		mgl32.Vec4{0, 0, 0, 1},
	)
	c.Orientation = mgl32.Mat4ToQuat(rot).Normalize()
}

// TranslateX moves along the local X axis.
func (c *Perspective) TranslateX(d float32) {
	c.Position = c.Position.Add(c.Right().Mul(d))
}

// TranslateY moves along the local Y axis.
func (c *Perspective) TranslateY(d float32) {
	c.Position = c.Position.Add(c.Up().Mul(d))
}

// TranslateZ moves along the local Z axis (positive is backwards).
func (c *Perspective) TranslateZ(d float32) {
	c.Position = c.Position.Add(c.Forward().Mul(-d))
}

// WorldMatrix returns the camera's transform in world space.
func (c *Perspective) WorldMatrix() mgl32.Mat4 {
	t := mgl32.Translate3D(c.Position.X(), c.Position.Y(), c.Position.Z())
	return t.Mul4(c.Orientation.Mat4())
}

// ViewMatrix returns the world-to-camera transform.
func (c *Perspective) ViewMatrix() mgl32.Mat4 {
	return c.WorldMatrix().Inv()
}

// ProjectionMatrix returns the perspective projection.
func (c *Perspective) ProjectionMatrix() mgl32.Mat4 {
	return mgl32.Perspective(mgl32.DegToRad(c.FOV), c.Aspect, c.Near, c.Far)
}

// InverseViewProjection maps normalized device coordinates back to world space.
func (c *Perspective) InverseViewProjection() mgl32.Mat4 {
	return c.ProjectionMatrix().Mul4(c.ViewMatrix()).Inv()
}

func abs(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
