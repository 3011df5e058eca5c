package render

import (
	"errors"
	"testing"

	"github.com/Faultbox/midgard-view/internal/engine/camera"
)

type recordingSink struct {
	width, height int
	pixels        int
}

func (s *recordingSink) CaptureAsync(pixels []byte, w, h int, done func(string, error)) error {
	s.width, s.height, s.pixels = w, h, len(pixels)
	if done != nil {
		done("shot.png", nil)
	}
	return nil
}

func TestScreenshot(t *testing.T) {
	ctx, _ := newTestContext(t)
	sink := &recordingSink{}

	var path string
	err := ctx.Screenshot(sink, func(p string, err error) { path = p })
	if err != nil {
		t.Fatalf("Screenshot() error: %v", err)
	}
	if sink.width != 800 || sink.height != 600 || sink.pixels != 800*600*4 {
		t.Errorf("sink got %dx%d with %d bytes", sink.width, sink.height, sink.pixels)
	}
	if path != "shot.png" {
		t.Errorf("done path = %q", path)
	}
}

func TestScreenshotWithoutReadback(t *testing.T) {
	cam := camera.NewPerspective(45, 1, 1, 100)
	ctx, err := New(cam, Params{Backend: "plain", Width: 10, Height: 10})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}

	if err := ctx.Screenshot(&recordingSink{}, nil); !errors.Is(err, ErrNoReadback) {
		t.Errorf("err = %v, want ErrNoReadback", err)
	}
}
