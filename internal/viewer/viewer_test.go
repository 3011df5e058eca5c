package viewer

import (
	"errors"
	"math"
	"os"
	"testing"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/midgard-view/internal/config"
	"github.com/Faultbox/midgard-view/internal/engine/camera"
	"github.com/Faultbox/midgard-view/internal/engine/input"
	"github.com/Faultbox/midgard-view/internal/engine/scene"
	"github.com/Faultbox/midgard-view/internal/logger"
	"github.com/Faultbox/midgard-view/internal/render"
)

type testSurface struct{ w, h int }

func (s *testSurface) Size() (int, int) { return s.w, s.h }
func (s *testSurface) SetSize(w, h int) { s.w, s.h = w, h }

type testDrawer struct {
	surface *testSurface
	renders int
	closed  bool
}

func (d *testDrawer) Render(*scene.Scene, *camera.Perspective) { d.renders++ }
func (d *testDrawer) Surface() render.Surface                  { return d.surface }
func (d *testDrawer) Close() error                             { d.closed = true; return nil }

// readbackDrawer returns a solid 2x2 frame.
type readbackDrawer struct {
	testDrawer
}

func (d *readbackDrawer) ReadPixels() ([]byte, int, int, error) {
	pixels := make([]byte, 2*2*4)
	for i := range pixels {
		pixels[i] = 255
	}
	return pixels, 2, 2, nil
}

var lastDrawer *testDrawer

func init() {
	render.Register("viewer-test", func(p render.Params) (render.Drawer, error) {
		lastDrawer = &testDrawer{surface: &testSurface{w: p.Width, h: p.Height}}
		return lastDrawer, nil
	})
	render.Register("viewer-readback", func(p render.Params) (render.Drawer, error) {
		d := &readbackDrawer{testDrawer{surface: &testSurface{w: p.Width, h: p.Height}}}
		lastDrawer = &d.testDrawer
		return d, nil
	})
}

type quitRecorder struct{ calls int }

func (q *quitRecorder) RequestQuit() { q.calls++ }

func newTestViewer(t *testing.T, mutate func(*config.Config)) (*Viewer, *quitRecorder) {
	t.Helper()

	cfg := config.Default()
	cfg.Renderer.Backend = "viewer-test"
	cfg.Screenshot.Dir = t.TempDir()
	if mutate != nil {
		mutate(cfg)
	}

	v, err := setup(cfg, 800, 600)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	t.Cleanup(v.Close)

	q := &quitRecorder{}
	v.quit = q
	return v, q
}

func TestSetupPopulatesScene(t *testing.T) {
	tests := []struct {
		name    string
		helpers bool
		want    int
	}{
		{"helpers disabled", false, 0},
		{"helpers enabled", true, 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newTestViewer(t, func(c *config.Config) { c.Debug.Helpers = tt.helpers })

			if got := len(v.render.Helpers()); got != tt.want {
				t.Errorf("helpers = %d, want %d", got, tt.want)
			}
			if v.render.RaycastPlane() == nil {
				t.Fatal("expected a raycast plane")
			}
			top := v.terrain.Geometry.BoundingBox().Max.Y()
			if got := v.render.RaycastPlane().Position.Y(); got != top {
				t.Errorf("plane y = %v, want terrain top %v", got, top)
			}
		})
	}
}

func TestSetupAppliesControlOverrides(t *testing.T) {
	v, _ := newTestViewer(t, func(c *config.Config) {
		c.Controls.MovementSpeed = 250
		c.Controls.StartEnabled = true
	})

	controls := v.render.Controls()
	if controls.MovementSpeed != 250 {
		t.Errorf("movement speed = %v, want 250", controls.MovementSpeed)
	}
	if controls.LookSpeed != 20 {
		t.Errorf("look speed = %v, want preset 20", controls.LookSpeed)
	}
	if !controls.Enabled {
		t.Error("expected controls enabled")
	}
}

func TestSetupUnknownBackend(t *testing.T) {
	cfg := config.Default()
	cfg.Renderer.Backend = "no-such-backend"

	_, err := setup(cfg, 800, 600)
	if !errors.Is(err, render.ErrUnknownBackend) {
		t.Errorf("expected ErrUnknownBackend, got %v", err)
	}
}

func TestSetupClosesRendererOnError(t *testing.T) {
	cfg := config.Default()
	cfg.Renderer.Backend = "viewer-test"
	cfg.Screenshot.Format = "tiff"

	if _, err := setup(cfg, 800, 600); err == nil {
		t.Fatal("expected an error for an unsupported screenshot format")
	}
	if lastDrawer == nil || !lastDrawer.closed {
		t.Error("renderer should be closed when setup fails")
	}
}

func TestClickDropsMarker(t *testing.T) {
	tests := []struct {
		name    string
		markers bool
		button  uint8
		want    int
	}{
		{"left click", true, sdl.BUTTON_LEFT, 1},
		{"right click", true, sdl.BUTTON_RIGHT, 0},
		{"markers disabled", false, sdl.BUTTON_LEFT, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, _ := newTestViewer(t, func(c *config.Config) { c.Debug.Markers = tt.markers })

			v.handleEvent(input.Event{Type: input.EventMouseMove, MouseX: 400, MouseY: 300})
			v.handleEvent(input.Event{Type: input.EventMouseDown, Button: tt.button})

			markers := v.render.Markers()
			if len(markers) != tt.want {
				t.Fatalf("markers = %d, want %d", len(markers), tt.want)
			}
			if tt.want == 0 {
				return
			}
			planeY := v.render.RaycastPlane().Position.Y()
			if got := markers[0].Position.Y(); math.Abs(float64(got-planeY)) > 1e-3 {
				t.Errorf("marker y = %v, want plane y %v", got, planeY)
			}
		})
	}
}

func TestMouseMoveSetsNDC(t *testing.T) {
	v, _ := newTestViewer(t, nil)

	v.handleEvent(input.Event{Type: input.EventMouseMove, MouseX: 800, MouseY: 0})

	if got := v.render.Mouse(); got.X() != 1 || got.Y() != 1 {
		t.Errorf("mouse = %v, want (1, 1)", got)
	}
}

func TestKeyToggleControls(t *testing.T) {
	v, _ := newTestViewer(t, nil)
	controls := v.render.Controls()

	v.handleEvent(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_C})
	if !controls.Enabled {
		t.Fatal("expected controls enabled after C")
	}

	// Held key repeats must not toggle again
	v.handleEvent(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_C, Repeat: true})
	if !controls.Enabled {
		t.Fatal("repeat toggled controls")
	}

	v.handleEvent(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_C})
	if controls.Enabled {
		t.Error("expected controls disabled after second C")
	}
}

func TestEscapeRequestsQuit(t *testing.T) {
	v, q := newTestViewer(t, nil)

	v.handleEvent(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_ESCAPE})

	if q.calls != 1 {
		t.Errorf("quit calls = %d, want 1", q.calls)
	}
}

func TestMovementKeysDriveControls(t *testing.T) {
	v, _ := newTestViewer(t, func(c *config.Config) { c.Controls.StartEnabled = true })
	cam := v.render.Camera()
	start := cam.Position

	v.handleEvent(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_W})
	v.render.Controls().Update(0.1)
	moved := cam.Position

	if moved == start {
		t.Fatal("expected camera to move while W is held")
	}

	v.handleEvent(input.Event{Type: input.EventKeyUp, Key: sdl.SCANCODE_W})
	v.render.Controls().Update(0.1)

	if cam.Position != moved {
		t.Errorf("camera moved after key release: %v -> %v", moved, cam.Position)
	}
}

func TestResizeUpdatesCamera(t *testing.T) {
	v, _ := newTestViewer(t, nil)

	v.handleEvent(input.Event{Type: input.EventWindowResize, Width: 1000, Height: 500})

	if got := v.render.Camera().Aspect; got != 2 {
		t.Errorf("aspect = %v, want 2", got)
	}
	if w, h := v.render.Renderer().Surface().Size(); w != 1000 || h != 500 {
		t.Errorf("surface = %dx%d, want 1000x500", w, h)
	}
}

func TestScreenshotWithoutReadback(t *testing.T) {
	v, _ := newTestViewer(t, nil)

	// The test backend cannot read pixels; F12 must be a logged no-op
	v.handleEvent(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_F12})
}

func TestScreenshotLogsOnce(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	v, _ := newTestViewer(t, func(c *config.Config) { c.Renderer.Backend = "viewer-readback" })

	v.handleEvent(input.Event{Type: input.EventKeyDown, Key: sdl.SCANCODE_F12})
	v.capture.Wait()

	if n := logs.FilterMessage("screenshot saved").Len(); n != 1 {
		t.Errorf("screenshot saved logged %d times, want 1", n)
	}
	entries, err := os.ReadDir(v.cfg.Screenshot.Dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("screenshot files = %d, want 1", len(entries))
	}
}
