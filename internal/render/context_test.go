package render

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/midgard-view/internal/engine/camera"
	"github.com/Faultbox/midgard-view/internal/engine/clock"
	"github.com/Faultbox/midgard-view/internal/engine/scene"
)

type fakeSurface struct {
	w, h int
}

func (s *fakeSurface) Size() (int, int) { return s.w, s.h }
func (s *fakeSurface) SetSize(w, h int) { s.w, s.h = w, h }

type fakeDrawer struct {
	surface *fakeSurface
	params  Params
	renders int
	scenes  []*scene.Scene
	closed  bool
}

func (d *fakeDrawer) Render(s *scene.Scene, _ *camera.Perspective) {
	d.renders++
	d.scenes = append(d.scenes, s)
}

func (d *fakeDrawer) Surface() Surface { return d.surface }

func (d *fakeDrawer) ReadPixels() ([]byte, int, int, error) {
	w, h := d.surface.Size()
	return make([]byte, w*h*4), w, h, nil
}

func (d *fakeDrawer) Close() error {
	d.closed = true
	return nil
}

// plainDrawer has no pixel readback.
type plainDrawer struct {
	surface *fakeSurface
}

func (d *plainDrawer) Render(*scene.Scene, *camera.Perspective) {}
func (d *plainDrawer) Surface() Surface { return d.surface }

var errBackendBroken = errors.New("broken")

func init() {
	Register("fake", func(p Params) (Drawer, error) {
		return &fakeDrawer{surface: &fakeSurface{w: p.Width, h: p.Height}, params: p}, nil
	})
	Register("plain", func(p Params) (Drawer, error) {
		return &plainDrawer{surface: &fakeSurface{w: p.Width, h: p.Height}}, nil
	})
	Register("broken", func(Params) (Drawer, error) {
		return nil, errBackendBroken
	})
}

func testParams() Params {
	return Params{Backend: "fake", Width: 800, Height: 600, Antialias: true}
}

func newTestContext(t *testing.T, opts ...Option) (*Context, *fakeDrawer) {
	t.Helper()
	cam := camera.NewPerspective(45, 800.0/600.0, 1, 10000)
	ctx, err := New(cam, testParams(), opts...)
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	return ctx, ctx.Renderer().(*fakeDrawer)
}

func TestNewDefaults(t *testing.T) {
	ctx, d := newTestContext(t)

	if ctx.HelpersEnabled() || ctx.MarkersEnabled() {
		t.Error("helpers and markers should start disabled")
	}
	if len(ctx.Helpers()) != 0 || len(ctx.Markers()) != 0 {
		t.Error("helper and marker collections should start empty")
	}
	if ctx.Clock().Running() {
		t.Error("clock should start stopped")
	}
	if n := ctx.Scene().Count(); n != 0 {
		t.Errorf("scene has %d nodes, want 0", n)
	}
	if ctx.RaycastPlane() != nil {
		t.Error("raycast plane should start nil")
	}
	if ctx.Running() {
		t.Error("loop should not be running")
	}
	if d.params.Width != 800 || !d.params.Antialias {
		t.Errorf("params not passed through: %+v", d.params)
	}
	if d.renders != 0 {
		t.Error("construction should not draw")
	}
}

func TestNewAppliesControlsPreset(t *testing.T) {
	ctx, _ := newTestContext(t)
	c := ctx.Controls()

	if c.Camera() != ctx.Camera() {
		t.Error("controls should be bound to the context camera")
	}
	if c.Enabled || c.ConstrainVertical {
		t.Error("controls should start disabled and unconstrained")
	}
	if c.Lat != 120 || c.Lon != -150 {
		t.Errorf("lat/lon = %f/%f, want 120/-150", c.Lat, c.Lon)
	}
	if c.LookSpeed != 20 || c.MovementSpeed != 100 {
		t.Errorf("speeds = %f/%f, want 20/100", c.LookSpeed, c.MovementSpeed)
	}
	if !c.LookVertical || !c.NoFly {
		t.Error("lookVertical and noFly should be set")
	}
	if c.VerticalMin != 1.0 || c.VerticalMax != 2.0 {
		t.Errorf("vertical range = [%f, %f], want [1, 2]", c.VerticalMin, c.VerticalMax)
	}
}

func TestNewBackendErrors(t *testing.T) {
	cam := camera.NewPerspective(45, 1, 1, 100)

	_, err := New(cam, Params{Backend: "vulkan"})
	if !errors.Is(err, ErrUnknownBackend) {
		t.Errorf("unknown backend error = %v, want ErrUnknownBackend", err)
	}

	_, err = New(cam, Params{Backend: "broken"})
	if !errors.Is(err, errBackendBroken) {
		t.Errorf("failing backend error = %v, want wrapped factory error", err)
	}
}

func TestRegisterPanics(t *testing.T) {
	assertPanics := func(name string, fn func()) {
		t.Helper()
		defer func() {
			if recover() == nil {
				t.Errorf("%s: expected panic", name)
			}
		}()
		fn()
	}

	assertPanics("duplicate", func() {
		Register("fake", func(Params) (Drawer, error) { return nil, nil })
	})
	assertPanics("nil factory", func() {
		Register("nil", nil)
	})
}

func TestBackends(t *testing.T) {
	names := Backends()
	want := map[string]bool{"broken": true, "fake": true, "plain": true}
	found := 0
	for i, n := range names {
		if want[n] {
			found++
		}
		if i > 0 && names[i-1] > n {
			t.Errorf("backends not sorted: %v", names)
		}
	}
	if found != len(want) {
		t.Errorf("Backends() = %v, missing test backends", names)
	}
}

func TestAddHelper(t *testing.T) {
	ctx, _ := newTestContext(t)
	helper := scene.NewGroup()

	ctx.AddHelper(helper)
	if len(ctx.Helpers()) != 0 || ctx.Scene().Count() != 0 {
		t.Fatal("disabled helpers should not mutate the scene")
	}

	ctx.SetHelpersEnabled(true)
	ctx.AddHelper(helper)
	ctx.AddHelper(scene.NewGroup())

	if len(ctx.Helpers()) != 2 {
		t.Errorf("tracked %d helpers, want 2", len(ctx.Helpers()))
	}
	if ctx.Scene().Count() != 2 {
		t.Errorf("scene has %d nodes, want 2", ctx.Scene().Count())
	}
	if ctx.Helpers()[0] != scene.Node(helper) {
		t.Error("helpers should keep insertion order")
	}
	if helper.Parent() != ctx.Scene().Base() {
		t.Error("helper should be parented to the scene")
	}
}

func TestAddMarkerDisabled(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.AddMarker(mgl32.Vec3{1, 2, 3}, scene.ColorRed)

	if len(ctx.Markers()) != 0 || ctx.Scene().Count() != 0 {
		t.Error("disabled markers should not mutate the scene")
	}
}

func TestAddMarker(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.SetMarkersEnabled(true)

	ctx.AddMarker(mgl32.Vec3{1, 2, 3}, scene.ColorRed)
	ctx.AddMarker(mgl32.Vec3{4, 5, 6}, scene.ColorRed)
	ctx.AddMarker(mgl32.Vec3{7, 8, 9}, scene.ColorBlue)

	markers := ctx.Markers()
	if len(markers) != 3 {
		t.Fatalf("tracked %d markers, want 3", len(markers))
	}
	if ctx.Scene().Count() != 3 {
		t.Errorf("scene has %d nodes, want 3", ctx.Scene().Count())
	}

	if markers[0].Material != markers[1].Material {
		t.Error("same color should reuse the cached material")
	}
	if markers[0].Material == markers[2].Material {
		t.Error("different colors should use distinct materials")
	}
	if markers[2].Material.(*scene.BasicMaterial).Color != scene.ColorBlue {
		t.Error("material color mismatch")
	}

	for i, m := range markers {
		if m.Geometry != markers[0].Geometry {
			t.Errorf("marker %d does not share the marker geometry", i)
		}
	}
	if size := markers[0].Geometry.BoundingBox().Size(); size != (mgl32.Vec3{1, 1, 1}) {
		t.Errorf("marker geometry size = %v, want unit cube", size)
	}
	if markers[1].Position != (mgl32.Vec3{4, 5, 6}) {
		t.Errorf("marker position = %v, want (4,5,6)", markers[1].Position)
	}
}

type fakeContainer struct {
	children []Surface
}

func (c *fakeContainer) AppendChild(s Surface) {
	c.children = append(c.children, s)
}

func TestAttachRenderer(t *testing.T) {
	ctx, d := newTestContext(t)
	parent := &fakeContainer{}

	ctx.AttachRenderer(parent)

	if len(parent.children) != 1 || parent.children[0] != Surface(d.surface) {
		t.Errorf("container children = %v, want the renderer surface", parent.children)
	}
}

func TestResize(t *testing.T) {
	ctx, d := newTestContext(t)

	ctx.Resize(1920, 1080)
	if w, h := d.surface.Size(); w != 1920 || h != 1080 {
		t.Errorf("surface size = %dx%d, want 1920x1080", w, h)
	}
	if math.Abs(float64(ctx.Camera().Aspect)-1920.0/1080.0) > 1e-5 {
		t.Errorf("aspect = %f", ctx.Camera().Aspect)
	}

	ctx.Resize(0, 100)
	if w, _ := d.surface.Size(); w != 1920 {
		t.Error("degenerate resize should be ignored")
	}
}

func TestStartClock(t *testing.T) {
	ctx, _ := newTestContext(t)

	ctx.StartClock()
	if !ctx.Clock().Running() {
		t.Error("clock should be running")
	}
	if ctx.Running() {
		t.Error("StartClock should not start the frame loop")
	}
}

func TestClose(t *testing.T) {
	ctx, d := newTestContext(t)
	if err := ctx.Close(); err != nil {
		t.Fatalf("Close() error: %v", err)
	}
	if !d.closed {
		t.Error("Close should close the renderer")
	}
}

type fakeTime struct {
	t time.Time
}

func (f *fakeTime) now() time.Time { return f.t }

func newFakeClock() (*fakeTime, *clock.Clock) {
	ft := &fakeTime{t: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return ft, clock.NewWithSource(false, ft.now)
}
