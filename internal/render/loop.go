package render

import (
	"time"

	"go.uber.org/zap"
)

// FrameScheduler delivers a callback on the host's next display frame.
type FrameScheduler interface {
	RequestFrame(cb func(now time.Time))
}

// Controller is advanced once per frame with the seconds since the previous frame.
type Controller interface {
	Update(delta float64)
}

// StartClock resets elapsed time to zero and starts the clock.
func (c *Context) StartClock() {
	c.clock.Start()
}

// Render starts the clock and runs the frame loop: one frame now, then one per
// callback from frames. Each frame updates the controller, draws the scene and
// requests the next frame. The loop continues until Stop is called or the host
// stops delivering callbacks. A panic during update or draw is not recovered.
func (c *Context) Render(frames FrameScheduler) {
	c.StartClock()
	c.running.Store(true)
	c.log.Info("render loop started")
	c.frame(frames)
}

func (c *Context) frame(frames FrameScheduler) {
	c.controller.Update(c.clock.Delta())
	c.renderer.Render(c.scene, c.camera)
	c.frames++

	if !c.running.Load() {
		c.log.Info("render loop stopped", zap.Uint64("frames", c.frames))
		return
	}
	frames.RequestFrame(func(time.Time) {
		if !c.running.Load() {
			c.log.Info("render loop stopped", zap.Uint64("frames", c.frames))
			return
		}
		c.frame(frames)
	})
}

// Stop ends the frame loop. A frame already requested from the host is
// skipped; a frame in progress finishes its draw without rescheduling.
func (c *Context) Stop() {
	c.running.Store(false)
}

// Running reports whether the frame loop is active.
func (c *Context) Running() bool {
	return c.running.Load()
}

// Frames returns the number of frames drawn.
func (c *Context) Frames() uint64 {
	return c.frames
}
