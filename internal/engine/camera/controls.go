package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Key is a logical movement key understood by the controller.
type Key int

const (
	KeyForward Key = iota
	KeyBackward
	KeyLeft
	KeyRight
	KeyUp
	KeyDown
)

// MouseButton identifies a pointer button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// maxLat keeps the look direction away from the poles.
const maxLat = 85

// lookDistance is how far ahead of the camera the look target is placed.
const lookDistance = 100

// FirstPersonControls steers a camera with keys for movement and the pointer
// offset from the viewport center for looking. Look angles are in degrees:
// Lat is elevation above the horizon, Lon is heading around Y.
type FirstPersonControls struct {
	camera *Perspective

	Enabled bool

	MovementSpeed float32
	LookSpeed     float32

	LookVertical bool
	AutoForward  bool
	ActiveLook   bool

	HeightSpeed bool
	HeightCoef  float32
	HeightMin   float32
	HeightMax   float32

	ConstrainVertical bool
	VerticalMin       float32 // Polar angle range in radians when constrained
	VerticalMax       float32

	// NoFly keeps movement on the horizontal plane and ignores up/down keys
	NoFly bool

	Lat float32
	Lon float32

	mouseX, mouseY       float32
	viewHalfX, viewHalfY float32

	moveForward  bool
	moveBackward bool
	moveLeft     bool
	moveRight    bool
	moveUp       bool
	moveDown     bool
}

// NewFirstPersonControls binds a controller to cam with stock settings.
func NewFirstPersonControls(cam *Perspective) *FirstPersonControls {
	return &FirstPersonControls{
		camera:        cam,
		Enabled:       true,
		MovementSpeed: 1.0,
		LookSpeed:     0.005,
		LookVertical:  true,
		ActiveLook:    true,
		HeightCoef:    1.0,
		HeightMax:     1.0,
		VerticalMin:   0,
		VerticalMax:   math.Pi,
	}
}

// Camera returns the controlled camera.
func (c *FirstPersonControls) Camera() *Perspective {
	return c.camera
}

// SetViewport records the viewport size; pointer offsets are measured from its center.
func (c *FirstPersonControls) SetViewport(width, height int) {
	c.viewHalfX = float32(width) / 2
	c.viewHalfY = float32(height) / 2
}

// HandleMouseMove records the pointer position in viewport pixels.
func (c *FirstPersonControls) HandleMouseMove(x, y float32) {
	c.mouseX = x - c.viewHalfX
	c.mouseY = y - c.viewHalfY
}

// HandleMouseButton maps left/right buttons to forward/backward while looking is active.
func (c *FirstPersonControls) HandleMouseButton(b MouseButton, pressed bool) {
	if !c.ActiveLook {
		return
	}
	switch b {
	case MouseLeft:
		c.moveForward = pressed
	case MouseRight:
		c.moveBackward = pressed
	}
}

// HandleKey records a movement key state.
func (c *FirstPersonControls) HandleKey(k Key, pressed bool) {
	switch k {
	case KeyForward:
		c.moveForward = pressed
	case KeyBackward:
		c.moveBackward = pressed
	case KeyLeft:
		c.moveLeft = pressed
	case KeyRight:
		c.moveRight = pressed
	case KeyUp:
		c.moveUp = pressed
	case KeyDown:
		c.moveDown = pressed
	}
}

// Release clears all held movement state.
func (c *FirstPersonControls) Release() {
	c.moveForward, c.moveBackward = false, false
	c.moveLeft, c.moveRight = false, false
	c.moveUp, c.moveDown = false, false
}

// Update advances the camera by delta seconds. Does nothing while disabled.
func (c *FirstPersonControls) Update(delta float64) {
	if !c.Enabled {
		return
	}
	dt := float32(delta)

	var autoSpeedFactor float32
	if c.HeightSpeed {
		y := clamp(c.camera.Position.Y(), c.HeightMin, c.HeightMax)
		autoSpeedFactor = dt * (y - c.HeightMin) * c.HeightCoef
	}

	moveSpeed := dt * c.MovementSpeed

	if c.moveForward || (c.AutoForward && !c.moveBackward) {
		c.translate(mgl32.Vec3{0, 0, 1}, -(moveSpeed + autoSpeedFactor))
	}
	if c.moveBackward {
		c.translate(mgl32.Vec3{0, 0, 1}, moveSpeed)
	}
	if c.moveLeft {
		c.translate(mgl32.Vec3{1, 0, 0}, -moveSpeed)
	}
	if c.moveRight {
		c.translate(mgl32.Vec3{1, 0, 0}, moveSpeed)
	}
	if !c.NoFly {
		if c.moveUp {
			c.camera.TranslateY(moveSpeed)
		}
		if c.moveDown {
			c.camera.TranslateY(-moveSpeed)
		}
	}

	lookSpeed := dt * c.LookSpeed
	if !c.ActiveLook {
		lookSpeed = 0
	}

	verticalLookRatio := float32(1)
	if c.ConstrainVertical {
		verticalLookRatio = math.Pi / (c.VerticalMax - c.VerticalMin)
	}

	c.Lon += c.mouseX * lookSpeed
	if c.LookVertical {
		c.Lat -= c.mouseY * lookSpeed * verticalLookRatio
	}
	c.Lat = clamp(c.Lat, -maxLat, maxLat)

	phi := float64(mgl32.DegToRad(90 - c.Lat))
	theta := float64(mgl32.DegToRad(c.Lon))
	if c.ConstrainVertical {
		phi = mapLinear(phi, 0, math.Pi, float64(c.VerticalMin), float64(c.VerticalMax))
	}

	dir := mgl32.Vec3{
		float32(math.Sin(phi) * math.Cos(theta)),
		float32(math.Cos(phi)),
		float32(math.Sin(phi) * math.Sin(theta)),
	}
	c.camera.LookAt(c.camera.Position.Add(dir.Mul(lookDistance)))
}

// translate moves along a local axis; with NoFly the motion is flattened onto XZ.
func (c *FirstPersonControls) translate(localAxis mgl32.Vec3, d float32) {
	dir := c.camera.Orientation.Rotate(localAxis)
	if c.NoFly {
		dir[1] = 0
		if dir.Len() < 1e-6 {
			return
		}
		dir = dir.Normalize()
	}
	c.camera.Position = c.camera.Position.Add(dir.Mul(d))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func mapLinear(x, a1, a2, b1, b2 float64) float64 {
	return b1 + (x-a1)*(b2-b1)/(a2-a1)
}
