// Package window handles the SDL2 window and OpenGL context. A Window is the
// host for a render context: it holds the output surface and delivers frame
// callbacks once per displayed frame.
package window

import (
	"context"
	"fmt"
	"runtime"
	"time"

	"github.com/veandco/go-sdl2/sdl"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-view/internal/engine/input"
	"github.com/Faultbox/midgard-view/internal/logger"
	"github.com/Faultbox/midgard-view/internal/render"
)

func init() {
	// OpenGL calls must be made from the main thread
	runtime.LockOSThread()
}

// Config holds window configuration.
type Config struct {
	Title      string
	Width      int
	Height     int
	Fullscreen bool
	VSync      bool
	Samples    int // MSAA samples, 0 disables multisampling
}

// Window wraps SDL2 window and OpenGL context.
type Window struct {
	config    Config
	sdlWindow *sdl.Window
	glContext sdl.GLContext

	input    *input.Input
	frames   frameQueue
	surfaces []render.Surface
	quit     bool

	log *zap.Logger
}

// New creates a new window with OpenGL context.
func New(cfg Config) (*Window, error) {
	w := &Window{
		config: cfg,
		input:  input.New(),
		log:    logger.Named("window"),
	}

	w.log.Info("initializing SDL2")
	if err := sdl.Init(sdl.INIT_VIDEO | sdl.INIT_EVENTS); err != nil {
		return nil, fmt.Errorf("SDL_Init failed: %w", err)
	}

	// OpenGL 4.1 Core Profile (max supported on macOS)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MAJOR_VERSION, 4)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_MINOR_VERSION, 1)
	sdl.GLSetAttribute(sdl.GL_CONTEXT_PROFILE_MASK, sdl.GL_CONTEXT_PROFILE_CORE)
	sdl.GLSetAttribute(sdl.GL_DOUBLEBUFFER, 1)
	sdl.GLSetAttribute(sdl.GL_DEPTH_SIZE, 24)

	if cfg.Samples > 0 {
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLEBUFFERS, 1)
		sdl.GLSetAttribute(sdl.GL_MULTISAMPLESAMPLES, cfg.Samples)
	}

	flags := uint32(sdl.WINDOW_OPENGL | sdl.WINDOW_RESIZABLE | sdl.WINDOW_ALLOW_HIGHDPI)
	if cfg.Fullscreen {
		flags |= sdl.WINDOW_FULLSCREEN_DESKTOP
	}

	var err error
	w.sdlWindow, err = sdl.CreateWindow(
		cfg.Title,
		sdl.WINDOWPOS_CENTERED,
		sdl.WINDOWPOS_CENTERED,
		int32(cfg.Width),
		int32(cfg.Height),
		flags,
	)
	if err != nil {
		sdl.Quit()
		return nil, fmt.Errorf("SDL_CreateWindow failed: %w", err)
	}

	w.glContext, err = w.sdlWindow.GLCreateContext()
	if err != nil {
		w.sdlWindow.Destroy()
		sdl.Quit()
		return nil, fmt.Errorf("SDL_GL_CreateContext failed: %w", err)
	}

	if cfg.VSync {
		if err := sdl.GLSetSwapInterval(1); err != nil {
			w.log.Warn("failed to enable VSync", zap.Error(err))
		}
	} else {
		sdl.GLSetSwapInterval(0)
	}

	w.log.Info("window created",
		zap.String("title", cfg.Title),
		zap.Int("width", cfg.Width),
		zap.Int("height", cfg.Height),
		zap.Bool("fullscreen", cfg.Fullscreen),
		zap.Bool("vsync", cfg.VSync),
		zap.Int("samples", cfg.Samples),
	)

	return w, nil
}

// Close destroys the window and cleans up SDL2.
func (w *Window) Close() {
	w.log.Info("closing window")

	if w.glContext != nil {
		sdl.GLDeleteContext(w.glContext)
	}
	if w.sdlWindow != nil {
		w.sdlWindow.Destroy()
	}

	sdl.Quit()
}

// AppendChild attaches a renderer surface and sizes it to the window.
func (w *Window) AppendChild(s render.Surface) {
	w.surfaces = append(w.surfaces, s)
	w.fit(s)
}

// RequestFrame schedules cb for the next frame.
func (w *Window) RequestFrame(cb func(now time.Time)) {
	w.frames.request(cb)
}

// RequestQuit makes Run return after the current frame.
func (w *Window) RequestQuit() {
	w.quit = true
}

// Run pumps events and delivers frame callbacks until the window is closed,
// RequestQuit is called or ctx is cancelled. handle (optional) sees every
// input event before the frame callbacks run.
func (w *Window) Run(ctx context.Context, handle func(input.Event)) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if w.input.Update() {
			w.quit = true
		}
		for _, e := range w.input.Events() {
			if e.Type == input.EventWindowResize {
				for _, s := range w.surfaces {
					w.fit(s)
				}
			}
			if handle != nil {
				handle(e)
			}
		}
		if w.quit {
			w.log.Info("quit requested")
			return nil
		}

		if w.frames.run(time.Now()) == 0 {
			// Nothing is drawing; avoid spinning
			sdl.Delay(10)
			continue
		}
		w.SwapBuffers()
	}
}

// fit sizes s to the window and, if supported, sets its pixel ratio.
func (w *Window) fit(s render.Surface) {
	width, height := w.GetSize()
	s.SetSize(width, height)

	if r, ok := s.(interface{ SetPixelRatio(float32) }); ok && width > 0 {
		dw, _ := w.GetDrawableSize()
		r.SetPixelRatio(float32(dw) / float32(width))
	}
}

// SwapBuffers swaps the OpenGL buffers.
func (w *Window) SwapBuffers() {
	w.sdlWindow.GLSwap()
}

// GetSize returns the current window size.
func (w *Window) GetSize() (int, int) {
	width, height := w.sdlWindow.GetSize()
	return int(width), int(height)
}

// GetDrawableSize returns the size of the GL drawable in pixels.
func (w *Window) GetDrawableSize() (int, int) {
	width, height := w.sdlWindow.GLGetDrawableSize()
	return int(width), int(height)
}

// SetTitle sets the window title.
func (w *Window) SetTitle(title string) {
	w.sdlWindow.SetTitle(title)
}
