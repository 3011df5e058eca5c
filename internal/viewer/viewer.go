// Package viewer wires the window, the render context and the debug tools
// into the interactive scene viewer.
package viewer

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-view/internal/config"
	"github.com/Faultbox/midgard-view/internal/engine/camera"
	"github.com/Faultbox/midgard-view/internal/engine/debug"
	"github.com/Faultbox/midgard-view/internal/engine/input"
	"github.com/Faultbox/midgard-view/internal/engine/scene"
	"github.com/Faultbox/midgard-view/internal/engine/terrain"
	"github.com/Faultbox/midgard-view/internal/engine/window"
	"github.com/Faultbox/midgard-view/internal/logger"
	"github.com/Faultbox/midgard-view/internal/render"
)

// Terrain shading.
const (
	terrainLow  scene.Color = 0x3a5f0b
	terrainHigh scene.Color = 0xc2b280
)

type quitter interface {
	RequestQuit()
}

// Viewer is the main viewer instance.
type Viewer struct {
	cfg     *config.Config
	window  *window.Window
	render  *render.Context
	capture *debug.ScreenshotCapture
	terrain *scene.Mesh
	quit    quitter

	log *zap.Logger
}

// New opens the window and builds the scene.
func New(cfg *config.Config) (*Viewer, error) {
	samples := 0
	if cfg.Renderer.Antialias {
		samples = cfg.Renderer.Samples
	}

	// Create window (this also creates OpenGL context)
	win, err := window.New(window.Config{
		Title:      cfg.Window.Title,
		Width:      cfg.Window.Width,
		Height:     cfg.Window.Height,
		Fullscreen: cfg.Window.Fullscreen,
		VSync:      cfg.Window.VSync,
		Samples:    samples,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create window: %w", err)
	}

	// Renderer is created AFTER the window, since the GL context must exist
	width, height := win.GetSize()
	v, err := setup(cfg, width, height)
	if err != nil {
		win.Close()
		return nil, err
	}
	v.window = win
	v.quit = win
	v.render.AttachRenderer(win)

	v.log.Info("viewer initialized", zap.Int("objects", v.render.Scene().Count()))
	return v, nil
}

// setup builds the render context and populates the scene for a surface of
// the given size.
func setup(cfg *config.Config, width, height int) (*Viewer, error) {
	v := &Viewer{
		cfg: cfg,
		log: logger.Named("viewer"),
	}

	camCfg := cfg.Controls.Camera
	cam := camera.NewPerspective(camCfg.FOV, aspect(width, height), camCfg.Near, camCfg.Far)
	cam.Position = mgl32.Vec3(camCfg.Position)
	cam.LookAt(mgl32.Vec3{})

	rc, err := render.New(cam, render.Params{
		Backend:    cfg.Renderer.Backend,
		Width:      width,
		Height:     height,
		Antialias:  cfg.Renderer.Antialias,
		Samples:    cfg.Renderer.Samples,
		PixelRatio: cfg.Renderer.PixelRatio,
		ClearColor: cfg.Renderer.ClearColor,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create render context: %w", err)
	}
	v.render = rc

	controls := rc.Controls()
	if cfg.Controls.MovementSpeed > 0 {
		controls.MovementSpeed = cfg.Controls.MovementSpeed
	}
	if cfg.Controls.LookSpeed > 0 {
		controls.LookSpeed = cfg.Controls.LookSpeed
	}
	if cfg.Controls.StartEnabled {
		controls.Enabled = true
	}

	rc.SetHelpersEnabled(cfg.Debug.Helpers)
	rc.SetMarkersEnabled(cfg.Debug.Markers)

	rc.AddHelper(debug.NewGridHelper(cfg.Debug.GridSize, cfg.Debug.GridDivs, scene.Color(0x444444), scene.ColorGray))
	rc.AddHelper(debug.NewAxesHelper(cfg.Debug.AxesSize))

	v.terrain = terrain.BuildMesh(terrain.Generate(terrain.DefaultGenerateParams()), terrainLow, terrainHigh)
	rc.Scene().Add(v.terrain)
	rc.AddHelper(debug.NewMeshBoxHelper(v.terrain, debug.DefaultBBoxPadding, scene.ColorGreen))
	rc.MakeRaycastPlane(v.terrain)

	format, err := debug.ParseFormat(cfg.Screenshot.Format)
	if err == nil {
		v.capture, err = debug.NewScreenshotCapture(cfg.Screenshot.Dir, cfg.Screenshot.Prefix, format, cfg.Screenshot.Workers)
	}
	if err != nil {
		if cerr := rc.Close(); cerr != nil {
			v.log.Warn("failed to close renderer", zap.Error(cerr))
		}
		return nil, err
	}

	return v, nil
}

// Render returns the render context.
func (v *Viewer) Render() *render.Context {
	return v.render
}

// Run starts the frame loop and blocks until the window closes or ctx is done.
func (v *Viewer) Run(ctx context.Context) error {
	v.log.Info("starting frame loop")

	v.render.Render(v.window)
	err := v.window.Run(ctx, v.handleEvent)
	v.render.Stop()

	v.log.Info("frame loop stopped", zap.Uint64("frames", v.render.Frames()))
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

// Close waits for pending screenshots and releases the renderer and window.
func (v *Viewer) Close() {
	v.log.Info("closing viewer")

	if v.capture != nil {
		v.capture.Close()
	}
	if v.render != nil {
		if err := v.render.Close(); err != nil {
			v.log.Warn("failed to close renderer", zap.Error(err))
		}
	}
	if v.window != nil {
		v.window.Close()
	}
}

func (v *Viewer) handleEvent(e input.Event) {
	controls := v.render.Controls()

	switch e.Type {
	case input.EventWindowResize:
		v.render.Resize(e.Width, e.Height)

	case input.EventMouseMove:
		x, y := float32(e.MouseX), float32(e.MouseY)
		v.render.SetMouseFromPixels(x, y)
		controls.HandleMouseMove(x, y)

	case input.EventMouseDown, input.EventMouseUp:
		pressed := e.Type == input.EventMouseDown
		if pressed && e.Button == sdl.BUTTON_LEFT && !controls.Enabled {
			v.dropMarker()
		}
		if b, ok := input.ControlButton(e.Button); ok {
			controls.HandleMouseButton(b, pressed)
		}

	case input.EventKeyDown:
		if !e.Repeat {
			switch e.Key {
			case sdl.SCANCODE_ESCAPE:
				if v.quit != nil {
					v.quit.RequestQuit()
				}
			case sdl.SCANCODE_C:
				v.toggleControls()
			case sdl.SCANCODE_F12:
				v.screenshot()
			}
		}
		if k, ok := input.ControlKey(e.Key); ok {
			controls.HandleKey(k, true)
		}

	case input.EventKeyUp:
		if k, ok := input.ControlKey(e.Key); ok {
			controls.HandleKey(k, false)
		}
	}
}

func (v *Viewer) toggleControls() {
	controls := v.render.Controls()
	controls.Enabled = !controls.Enabled
	if !controls.Enabled {
		controls.Release()
	}
	v.log.Debug("controls toggled", zap.Bool("enabled", controls.Enabled))
}

// dropMarker places a marker where the pointer ray meets the raycast plane.
func (v *Viewer) dropMarker() {
	hits, err := v.render.RayIntersect()
	if err != nil {
		v.log.Debug("ray intersect failed", zap.Error(err))
		return
	}
	if len(hits) == 0 {
		return
	}

	p := hits[0].Point
	v.render.AddMarker(p, scene.ColorRed)
	v.log.Debug("marker",
		zap.Float32("x", p.X()),
		zap.Float32("y", p.Y()),
		zap.Float32("z", p.Z()),
		zap.Float32("distance", hits[0].Distance),
	)
}

// screenshot queues a capture of the last frame; the capture logs the outcome.
func (v *Viewer) screenshot() {
	if err := v.render.Screenshot(v.capture, nil); err != nil {
		v.log.Warn("screenshot unavailable", zap.Error(err))
	}
}

func aspect(width, height int) float32 {
	if height <= 0 {
		return 1
	}
	return float32(width) / float32(height)
}
