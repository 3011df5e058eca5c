// Package render drives an interactive 3D view: it owns the scene, binds a
// first-person controller to a caller-supplied camera, runs the frame loop
// through a host scheduler, and provides helper/marker placement and ray
// picking against a horizontal reference plane.
//
// A Context is used from a single goroutine (the host's frame thread).
// Stop is the only method safe to call from elsewhere.
package render

import (
	"io"
	"sync/atomic"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-view/internal/engine/camera"
	"github.com/Faultbox/midgard-view/internal/engine/clock"
	"github.com/Faultbox/midgard-view/internal/engine/picking"
	"github.com/Faultbox/midgard-view/internal/engine/scene"
	"github.com/Faultbox/midgard-view/internal/logger"
)

// Container receives the renderer's output surface.
type Container interface {
	AppendChild(s Surface)
}

// Context is a render context.
type Context struct {
	scene      *scene.Scene
	camera     *camera.Perspective
	controls   *camera.FirstPersonControls
	controller Controller
	clock      *clock.Clock
	renderer   Drawer

	raycaster    *picking.Raycaster
	raycastPlane *scene.Mesh
	mouse        mgl32.Vec2

	helpersEnabled bool
	helpers        []scene.Node

	markersEnabled  bool
	markers         []*scene.Mesh
	markerGeometry  *scene.Geometry
	markerMaterials map[scene.Color]*scene.BasicMaterial

	running atomic.Bool
	frames  uint64

	log *zap.Logger
}

// Option customizes a Context.
type Option func(*Context)

// WithController replaces the per-frame updater. The first-person controls
// are still created and returned by Controls.
func WithController(ctrl Controller) Option {
	return func(c *Context) {
		c.controller = ctrl
	}
}

// WithClock replaces the frame clock.
func WithClock(clk *clock.Clock) Option {
	return func(c *Context) {
		c.clock = clk
	}
}

// WithLogger sets the logger used by the context.
func WithLogger(l *zap.Logger) Option {
	return func(c *Context) {
		c.log = l
	}
}

// New creates a context for cam with a renderer from params. The scene is
// empty, the clock is stopped, helpers and markers are disabled, and the
// first-person controls start disabled with the viewer preset.
func New(cam *camera.Perspective, params Params, opts ...Option) (*Context, error) {
	c := &Context{
		scene:           scene.NewScene(),
		camera:          cam,
		controls:        camera.NewFirstPersonControls(cam),
		clock:           clock.New(false),
		raycaster:       picking.NewRaycaster(),
		markerMaterials: make(map[scene.Color]*scene.BasicMaterial),
		log:             logger.Named("render"),
	}
	c.controls.Apply(camera.ViewerPreset())
	c.controller = c.controls

	for _, opt := range opts {
		opt(c)
	}

	d, err := openBackend(params)
	if err != nil {
		return nil, err
	}
	c.renderer = d

	if w, h := d.Surface().Size(); w > 0 && h > 0 {
		c.controls.SetViewport(w, h)
	}

	c.log.Debug("render context created",
		zap.String("backend", params.Backend),
		zap.Bool("antialias", params.Antialias),
	)
	return c, nil
}

// Scene returns the scene root.
func (c *Context) Scene() *scene.Scene { return c.scene }

// Camera returns the camera supplied at construction.
func (c *Context) Camera() *camera.Perspective { return c.camera }

// Controls returns the first-person controls bound to the camera.
func (c *Context) Controls() *camera.FirstPersonControls { return c.controls }

// Clock returns the frame clock.
func (c *Context) Clock() *clock.Clock { return c.clock }

// Renderer returns the drawer created from the construction params.
func (c *Context) Renderer() Drawer { return c.renderer }

// SetHelpersEnabled toggles whether AddHelper inserts helpers.
func (c *Context) SetHelpersEnabled(enabled bool) { c.helpersEnabled = enabled }

// HelpersEnabled reports whether helpers are accepted.
func (c *Context) HelpersEnabled() bool { return c.helpersEnabled }

// SetMarkersEnabled toggles whether AddMarker creates markers.
func (c *Context) SetMarkersEnabled(enabled bool) { c.markersEnabled = enabled }

// MarkersEnabled reports whether markers are accepted.
func (c *Context) MarkersEnabled() bool { return c.markersEnabled }

// Helpers returns the helpers added so far, in insertion order.
func (c *Context) Helpers() []scene.Node { return c.helpers }

// Markers returns the markers added so far, in insertion order.
func (c *Context) Markers() []*scene.Mesh { return c.markers }

// AddHelper adds a debug helper to the scene. Dropped when helpers are disabled.
func (c *Context) AddHelper(helper scene.Node) {
	if !c.helpersEnabled {
		return
	}
	c.helpers = append(c.helpers, helper)
	c.scene.Add(helper)
}

// AddMarker places a unit cube of color col at pos. All markers share one
// geometry and one material per color. Does nothing when markers are disabled.
func (c *Context) AddMarker(pos mgl32.Vec3, col scene.Color) {
	if !c.markersEnabled {
		return
	}
	if c.markerGeometry == nil {
		c.markerGeometry = scene.NewBoxGeometry(1, 1, 1)
	}
	mat, ok := c.markerMaterials[col]
	if !ok {
		mat = scene.NewBasicMaterial(col)
		c.markerMaterials[col] = mat
	}

	cube := scene.NewMesh(c.markerGeometry, mat)
	cube.Position = pos
	c.markers = append(c.markers, cube)
	c.scene.Add(cube)

	c.log.Debug("marker added",
		zap.Float32("x", pos.X()),
		zap.Float32("y", pos.Y()),
		zap.Float32("z", pos.Z()),
		zap.Stringer("color", col),
	)
}

// AttachRenderer appends the renderer's surface to parent.
func (c *Context) AttachRenderer(parent Container) {
	parent.AppendChild(c.renderer.Surface())
}

// Resize updates the surface size, the camera aspect and the controls viewport.
func (c *Context) Resize(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.renderer.Surface().SetSize(width, height)
	c.camera.SetAspect(width, height)
	c.controls.SetViewport(width, height)
}

// Close stops the loop and releases the renderer if it holds resources.
func (c *Context) Close() error {
	c.Stop()
	if closer, ok := c.renderer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}
