package render

import (
	"errors"
	"fmt"
)

// ErrNoReadback is returned by Screenshot when the backend cannot read pixels.
var ErrNoReadback = errors.New("render: backend does not support pixel readback")

// FrameSink accepts a frame read back from the renderer. Encoding may finish
// after the call returns; done reports the outcome.
type FrameSink interface {
	CaptureAsync(pixels []byte, width, height int, done func(path string, err error)) error
}

// Screenshot reads the last drawn frame and hands it to sink.
func (c *Context) Screenshot(sink FrameSink, done func(path string, err error)) error {
	reader, ok := c.renderer.(PixelReader)
	if !ok {
		return ErrNoReadback
	}
	pixels, w, h, err := reader.ReadPixels()
	if err != nil {
		return fmt.Errorf("render: read pixels: %w", err)
	}
	return sink.CaptureAsync(pixels, w, h, done)
}
