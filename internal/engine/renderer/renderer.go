// Package renderer provides the OpenGL scene renderer. Importing it registers
// the "gl" backend with the render package.
package renderer

import (
	"fmt"

	"github.com/go-gl/gl/v4.1-core/gl"
	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/midgard-view/internal/engine/camera"
	"github.com/Faultbox/midgard-view/internal/engine/scene"
	"github.com/Faultbox/midgard-view/internal/engine/shader"
	"github.com/Faultbox/midgard-view/internal/logger"
	"github.com/Faultbox/midgard-view/internal/render"
)

func init() {
	render.Register("gl", func(p render.Params) (render.Drawer, error) {
		return New(p)
	})
}

// Stats counts the work done for the last frame.
type Stats struct {
	DrawCalls int
	Triangles int
	Lines     int
	Buffers   int
}

// Renderer draws scene graphs with OpenGL 4.1 core.
type Renderer struct {
	params  render.Params
	surface *Surface
	program *shader.Program
	buffers *bufferCache

	frame uint64
	stats Stats

	log *zap.Logger
}

// New creates a renderer for the current GL context.
// IMPORTANT: Must be called AFTER the OpenGL context is created!
func New(p render.Params) (*Renderer, error) {
	r := &Renderer{
		params:  p,
		surface: &Surface{width: p.Width, height: p.Height},
		buffers: newBufferCache(),
		log:     logger.Named("renderer"),
	}
	r.surface.SetPixelRatio(p.PixelRatio)

	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
		zap.Bool("antialias", p.Antialias),
	)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.BlendFunc(gl.SRC_ALPHA, gl.ONE_MINUS_SRC_ALPHA)
	if p.Antialias {
		gl.Enable(gl.MULTISAMPLE)
	} else {
		gl.Disable(gl.MULTISAMPLE)
	}

	program, err := shader.NewProgram(vertexShader, fragmentShader)
	if err != nil {
		return nil, fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = program

	return r, nil
}

// Surface returns the output surface.
func (r *Renderer) Surface() render.Surface {
	return r.surface
}

// Stats returns counters for the last frame.
func (r *Renderer) Stats() Stats {
	return r.stats
}

// Render draws every visible mesh and line segment node in s through cam.
func (r *Renderer) Render(s *scene.Scene, cam *camera.Perspective) {
	r.frame++
	r.stats = Stats{}

	w, h := r.surface.DrawableSize()
	gl.Viewport(0, 0, int32(w), int32(h))

	cr, cg, cb := r.params.ClearColor[0], r.params.ClearColor[1], r.params.ClearColor[2]
	if s.Background != nil {
		cr, cg, cb = s.Background.RGB()
	}
	gl.ClearColor(cr, cg, cb, 1)
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)

	viewProj := cam.ProjectionMatrix().Mul4(cam.ViewMatrix())
	r.program.Use()

	scene.Traverse(s, func(n scene.Node) {
		switch v := n.(type) {
		case *scene.Mesh:
			r.drawMesh(v, viewProj)
		case *scene.LineSegments:
			r.drawLines(v, viewProj)
		}
	})

	gl.BindVertexArray(0)
	r.buffers.evict(r.frame)
	r.stats.Buffers = len(r.buffers.entries)

	if r.frame%600 == 0 {
		r.log.Debug("frame stats",
			zap.Uint64("frame", r.frame),
			zap.Int("draw_calls", r.stats.DrawCalls),
			zap.Int("triangles", r.stats.Triangles),
			zap.Int("lines", r.stats.Lines),
			zap.Int("buffers", r.stats.Buffers),
			zap.Int("uploads", r.buffers.uploads),
			zap.Int("evictions", r.buffers.evictions),
		)
	}
}

func (r *Renderer) drawMesh(m *scene.Mesh, viewProj mgl32.Mat4) {
	mat, ok := m.Material.(*scene.BasicMaterial)
	if !ok || !mat.Visible || m.Geometry == nil || !m.WorldVisible() {
		return
	}

	buf := r.buffers.get(m.Geometry, r.frame)
	if buf.count == 0 {
		return
	}

	r.program.SetMat4("uMVP", viewProj.Mul4(m.WorldMatrix()))
	r.program.SetVec3("uColor", colorVec(mat.Color))
	r.program.SetFloat("uOpacity", mat.Opacity)
	r.program.SetBool("uVertexColors", mat.VertexColors && buf.colors)

	applySide(mat.Side)
	if mat.Opacity < 1 {
		gl.Enable(gl.BLEND)
		defer gl.Disable(gl.BLEND)
	}

	if mat.Wireframe {
		gl.PolygonMode(gl.FRONT_AND_BACK, gl.LINE)
		defer gl.PolygonMode(gl.FRONT_AND_BACK, gl.FILL)
	}

	r.draw(buf, gl.TRIANGLES)
	r.stats.Triangles += int(buf.count) / 3
}

func (r *Renderer) drawLines(l *scene.LineSegments, viewProj mgl32.Mat4) {
	mat, ok := l.Material.(*scene.LineMaterial)
	if !ok || !mat.Visible || l.Geometry == nil || !l.WorldVisible() {
		return
	}

	buf := r.buffers.get(l.Geometry, r.frame)
	if buf.count == 0 {
		return
	}

	r.program.SetMat4("uMVP", viewProj.Mul4(l.WorldMatrix()))
	r.program.SetVec3("uColor", colorVec(mat.Color))
	r.program.SetFloat("uOpacity", 1)
	r.program.SetBool("uVertexColors", mat.VertexColors && buf.colors)

	gl.Disable(gl.CULL_FACE)
	r.draw(buf, gl.LINES)
	r.stats.Lines += int(buf.count) / 2
}

func (r *Renderer) draw(buf *gpuGeometry, mode uint32) {
	gl.BindVertexArray(buf.vao)
	if buf.indexed {
		gl.DrawElements(mode, buf.count, gl.UNSIGNED_INT, nil)
	} else {
		gl.DrawArrays(mode, 0, buf.count)
	}
	r.stats.DrawCalls++
}

// ReadPixels reads the most recently presented frame as RGBA rows, bottom row first.
func (r *Renderer) ReadPixels() ([]byte, int, int, error) {
	w, h := r.surface.DrawableSize()
	if w <= 0 || h <= 0 {
		return nil, 0, 0, fmt.Errorf("empty surface %dx%d", w, h)
	}

	pixels := make([]byte, w*h*4)
	gl.PixelStorei(gl.PACK_ALIGNMENT, 1)
	gl.ReadBuffer(gl.FRONT)
	gl.ReadPixels(0, 0, int32(w), int32(h), gl.RGBA, gl.UNSIGNED_BYTE, gl.Ptr(pixels))
	gl.ReadBuffer(gl.BACK) // Restore default

	if code := gl.GetError(); code != gl.NO_ERROR {
		return nil, 0, 0, fmt.Errorf("glReadPixels failed: 0x%x", code)
	}
	return pixels, w, h, nil
}

// Close releases GL resources.
func (r *Renderer) Close() error {
	r.log.Info("closing renderer", zap.Uint64("frames", r.frame))
	r.buffers.clear()
	if r.program != nil {
		r.program.Delete()
	}
	return nil
}

func applySide(side scene.Side) {
	switch side {
	case scene.DoubleSide:
		gl.Disable(gl.CULL_FACE)
	case scene.BackSide:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.FRONT)
	default:
		gl.Enable(gl.CULL_FACE)
		gl.CullFace(gl.BACK)
	}
}

func colorVec(c scene.Color) mgl32.Vec3 {
	r, g, b := c.RGB()
	return mgl32.Vec3{r, g, b}
}
