// Package mesh holds the fixed pyramid geometry and its GPU-resident copy.
package mesh

import (
	"fmt"
	"unsafe"

	"github.com/richinsley/glpyramid/graphics"
)

const sizeofFloat32 = 4

// Mesh is a vertex array object with its vertex and index buffers.
type Mesh struct {
	dev        graphics.Device
	vao        uint32
	vbo        uint32
	ebo        uint32
	indexCount int32
	released   bool
}

// Upload copies g into static-draw buffers and records the attribute layout
// in a new vertex array: location 0 is the position, location 1 the color.
// Nothing stays bound on return.
func Upload(dev graphics.Device, g *Geometry) (*Mesh, error) {
	if len(g.Vertices) == 0 || len(g.Indices) == 0 {
		return nil, fmt.Errorf("mesh has %d vertices and %d indices", len(g.Vertices), len(g.Indices))
	}
	for i, idx := range g.Indices {
		if int(idx) >= len(g.Vertices) {
			return nil, fmt.Errorf("index %d at position %d is out of range for %d vertices", idx, i, len(g.Vertices))
		}
	}

	m := &Mesh{dev: dev, indexCount: int32(len(g.Indices))}
	m.vbo = dev.GenBuffer()
	m.ebo = dev.GenBuffer()
	m.vao = dev.GenVertexArray()
	if m.vbo == 0 || m.ebo == 0 || m.vao == 0 {
		m.Release()
		return nil, fmt.Errorf("failed to allocate mesh objects (vao=%d vbo=%d ebo=%d)", m.vao, m.vbo, m.ebo)
	}

	vertices := g.Interleave()
	dev.BindVertexArray(m.vao)
	dev.BindBuffer(graphics.ArrayBuffer, m.vbo)
	dev.BindBuffer(graphics.ElementArrayBuffer, m.ebo)
	dev.BufferData(graphics.ArrayBuffer, len(vertices)*sizeofFloat32, unsafe.Pointer(&vertices[0]), graphics.StaticDraw)
	dev.BufferData(graphics.ElementArrayBuffer, len(g.Indices), unsafe.Pointer(&g.Indices[0]), graphics.StaticDraw)

	stride := int32(floatsPerVertex * sizeofFloat32)
	dev.EnableVertexAttribArray(0)
	dev.VertexAttribPointer(0, 3, graphics.Float, false, stride, 0)
	dev.EnableVertexAttribArray(1)
	dev.VertexAttribPointer(1, 3, graphics.Float, false, stride, 3*sizeofFloat32)

	// The element binding is VAO state, so only the array buffer is cleared.
	dev.BindVertexArray(0)
	dev.BindBuffer(graphics.ArrayBuffer, 0)
	return m, nil
}

func (m *Mesh) Bind() { m.dev.BindVertexArray(m.vao) }

func (m *Mesh) Unbind() { m.dev.BindVertexArray(0) }

// Draw issues one indexed triangle draw over every index. The mesh must be
// bound.
func (m *Mesh) Draw() {
	m.dev.DrawElements(graphics.Triangles, m.indexCount, graphics.UnsignedByte, 0)
}

// IndexCount is the number of indices Draw submits.
func (m *Mesh) IndexCount() int32 { return m.indexCount }

// VAO returns the vertex array name.
func (m *Mesh) VAO() uint32 { return m.vao }

// Release deletes the vertex array and both buffers. Later calls do nothing.
func (m *Mesh) Release() {
	if m == nil || m.released {
		return
	}
	m.released = true
	if m.vao != 0 {
		m.dev.DeleteVertexArray(m.vao)
	}
	if m.vbo != 0 {
		m.dev.DeleteBuffer(m.vbo)
	}
	if m.ebo != 0 {
		m.dev.DeleteBuffer(m.ebo)
	}
}
