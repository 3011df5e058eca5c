package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"

	"github.com/Faultbox/midgard-view/internal/engine/scene"
)

// evictAfter is how many frames an unused geometry keeps its GPU buffers.
const evictAfter = 300

// gpuGeometry holds the GL objects for one scene.Geometry.
type gpuGeometry struct {
	vao, positionVBO, colorVBO, ebo uint32

	version  uint32
	count    int32
	indexed  bool
	colors   bool
	lastUsed uint64
}

// bufferCache maps CPU geometry to uploaded buffers.
type bufferCache struct {
	entries map[*scene.Geometry]*gpuGeometry

	uploads   int
	evictions int
}

func newBufferCache() *bufferCache {
	return &bufferCache{entries: make(map[*scene.Geometry]*gpuGeometry)}
}

// get returns buffers for g, uploading on first use or after g changed.
func (c *bufferCache) get(g *scene.Geometry, frame uint64) *gpuGeometry {
	e, ok := c.entries[g]
	if !ok {
		e = &gpuGeometry{}
		gl.GenVertexArrays(1, &e.vao)
		gl.GenBuffers(1, &e.positionVBO)
		c.entries[g] = e
		e.version = g.Version() + 1 // Force the first upload
	}
	if e.version != g.Version() {
		c.upload(e, g)
	}
	e.lastUsed = frame
	return e
}

func (c *bufferCache) upload(e *gpuGeometry, g *scene.Geometry) {
	gl.BindVertexArray(e.vao)

	gl.BindBuffer(gl.ARRAY_BUFFER, e.positionVBO)
	gl.BufferData(gl.ARRAY_BUFFER, len(g.Positions)*4, ptr(g.Positions), gl.STATIC_DRAW)
	gl.VertexAttribPointer(0, 3, gl.FLOAT, false, 3*4, nil)
	gl.EnableVertexAttribArray(0)

	e.colors = len(g.Colors) == len(g.Positions) && len(g.Colors) > 0
	if e.colors {
		if e.colorVBO == 0 {
			gl.GenBuffers(1, &e.colorVBO)
		}
		gl.BindBuffer(gl.ARRAY_BUFFER, e.colorVBO)
		gl.BufferData(gl.ARRAY_BUFFER, len(g.Colors)*4, ptr(g.Colors), gl.STATIC_DRAW)
		gl.VertexAttribPointer(1, 3, gl.FLOAT, false, 3*4, nil)
		gl.EnableVertexAttribArray(1)
	} else {
		gl.DisableVertexAttribArray(1)
		gl.VertexAttrib3f(1, 1, 1, 1)
	}

	e.indexed = g.Indices != nil
	if e.indexed {
		if e.ebo == 0 {
			gl.GenBuffers(1, &e.ebo)
		}
		gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, e.ebo)
		var data unsafe.Pointer
		if len(g.Indices) > 0 {
			data = gl.Ptr(g.Indices)
		}
		gl.BufferData(gl.ELEMENT_ARRAY_BUFFER, len(g.Indices)*4, data, gl.STATIC_DRAW)
	}

	gl.BindVertexArray(0)
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)

	e.count = int32(g.ElementCount())
	e.version = g.Version()
	c.uploads++
}

// evict frees buffers not used since frame-evictAfter.
func (c *bufferCache) evict(frame uint64) {
	if frame < evictAfter {
		return
	}
	for g, e := range c.entries {
		if e.lastUsed < frame-evictAfter {
			e.release()
			delete(c.entries, g)
			c.evictions++
		}
	}
}

func (c *bufferCache) clear() {
	for g, e := range c.entries {
		e.release()
		delete(c.entries, g)
	}
}

func (e *gpuGeometry) release() {
	if e.ebo != 0 {
		gl.DeleteBuffers(1, &e.ebo)
	}
	if e.colorVBO != 0 {
		gl.DeleteBuffers(1, &e.colorVBO)
	}
	gl.DeleteBuffers(1, &e.positionVBO)
	gl.DeleteVertexArrays(1, &e.vao)
}

func ptr(data []float32) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return gl.Ptr(data)
}
