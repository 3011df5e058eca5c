package render

import (
	"errors"
	"fmt"
	"sort"
	"sync"

	"github.com/Faultbox/midgard-view/internal/engine/camera"
	"github.com/Faultbox/midgard-view/internal/engine/scene"
)

// DefaultBackend is used when Params.Backend is empty.
const DefaultBackend = "gl"

// ErrUnknownBackend is returned by New when no backend is registered under the requested name.
var ErrUnknownBackend = errors.New("render: unknown backend")

// Surface is the drawable output of a renderer.
type Surface interface {
	Size() (width, height int)
	SetSize(width, height int)
}

// Drawer draws a scene through a camera onto its surface.
type Drawer interface {
	Render(s *scene.Scene, cam *camera.Perspective)
	Surface() Surface
}

// PixelReader is implemented by drawers that can read back the last frame
// as tightly packed RGBA rows, bottom row first.
type PixelReader interface {
	ReadPixels() (pixels []byte, width, height int, err error)
}

// Params configures a renderer backend. The context only looks at Backend;
// everything else is interpreted by the backend.
type Params struct {
	Backend    string
	Width      int
	Height     int
	Antialias  bool
	Samples    int
	PixelRatio float32
	ClearColor [3]float32
}

// Factory creates a drawer from params.
type Factory func(Params) (Drawer, error)

var (
	backendsMu sync.RWMutex
	backends   = make(map[string]Factory)
)

// Register makes a renderer backend available by name. Backends register
// themselves from an init function. Register panics if called twice with the
// same name or with a nil factory.
func Register(name string, factory Factory) {
	backendsMu.Lock()
	defer backendsMu.Unlock()
	if factory == nil {
		panic("render: Register factory is nil")
	}
	if _, dup := backends[name]; dup {
		panic("render: Register called twice for backend " + name)
	}
	backends[name] = factory
}

// Backends returns the sorted names of registered backends.
func Backends() []string {
	backendsMu.RLock()
	defer backendsMu.RUnlock()
	names := make([]string, 0, len(backends))
	for name := range backends {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func openBackend(p Params) (Drawer, error) {
	name := p.Backend
	if name == "" {
		name = DefaultBackend
	}

	backendsMu.RLock()
	factory, ok := backends[name]
	backendsMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w %q (forgotten import?)", ErrUnknownBackend, name)
	}

	d, err := factory(p)
	if err != nil {
		return nil, fmt.Errorf("render: backend %q: %w", name, err)
	}
	return d, nil
}
