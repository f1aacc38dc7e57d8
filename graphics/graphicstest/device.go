// Package graphicstest provides recording implementations of the graphics
// interfaces for tests that have no GPU or display.
package graphicstest

import (
	"fmt"
	"sort"
	"unsafe"

	"github.com/richinsley/glpyramid/graphics"
)

// Draw is one recorded DrawElements call together with the state bound when
// it was issued.
type Draw struct {
	Mode    graphics.Enum
	Count   int32
	Type    graphics.Enum
	Offset  uintptr
	VAO     uint32
	Program uint32
}

// Attrib is a recorded vertex attribute layout for one VAO.
type Attrib struct {
	Index      uint32
	Size       int32
	Type       graphics.Enum
	Normalized bool
	Stride     int32
	Offset     uintptr
	Enabled    bool
	Buffer     uint32
}

// Upload is one recorded BufferData call.
type Upload struct {
	Target graphics.Enum
	Buffer uint32
	Data   []byte
	Usage  graphics.Enum
}

// Device records every call made against it. The zero value is ready to use.
type Device struct {
	// CompileErr, when set, is returned by CompileShader for FailStage.
	CompileErr error
	FailStage  graphics.Enum
	// LinkErr, when set, is returned by LinkProgram.
	LinkErr error

	Calls   []string
	Draws   []Draw
	Uploads []Upload
	Sources map[graphics.Enum]string
	// Attribs holds the attribute layout captured per VAO.
	Attribs map[uint32]map[uint32]*Attrib
	// Uniforms holds the last matrix written to each location.
	Uniforms  map[int32][16]float32
	Enabled   map[graphics.Enum]bool
	DepthFn   graphics.Enum
	Viewports [][4]int32
	Clears    []graphics.Enum
	ClearRGBA [4]float32

	BoundVAO     uint32
	BoundProgram uint32
	BoundBuffers map[graphics.Enum]uint32
	// ElementBuffers records the element array buffer captured by each VAO.
	ElementBuffers map[uint32]uint32

	next      uint32
	locations map[string]int32
	live      map[string]map[uint32]bool
	deleted   map[string]map[uint32]int
}

func (d *Device) init() {
	if d.live != nil {
		return
	}
	d.Sources = make(map[graphics.Enum]string)
	d.Attribs = make(map[uint32]map[uint32]*Attrib)
	d.Uniforms = make(map[int32][16]float32)
	d.Enabled = make(map[graphics.Enum]bool)
	d.BoundBuffers = make(map[graphics.Enum]uint32)
	d.ElementBuffers = make(map[uint32]uint32)
	d.locations = make(map[string]int32)
	d.live = make(map[string]map[uint32]bool)
	d.deleted = make(map[string]map[uint32]int)
}

func (d *Device) record(format string, args ...interface{}) {
	d.init()
	d.Calls = append(d.Calls, fmt.Sprintf(format, args...))
}

func (d *Device) gen(kind string) uint32 {
	d.init()
	d.next++
	if d.live[kind] == nil {
		d.live[kind] = make(map[uint32]bool)
	}
	d.live[kind][d.next] = true
	return d.next
}

func (d *Device) del(kind string, name uint32) {
	d.init()
	if d.deleted[kind] == nil {
		d.deleted[kind] = make(map[uint32]int)
	}
	d.deleted[kind][name]++
	delete(d.live[kind], name)
}

// Live returns the names of kind ("vertexarray", "buffer", "shader",
// "program") that were created and not yet deleted.
func (d *Device) Live(kind string) []uint32 {
	d.init()
	var names []uint32
	for name := range d.live[kind] {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool { return names[i] < names[j] })
	return names
}

// Deletions returns how many times name of kind was deleted.
func (d *Device) Deletions(kind string, name uint32) int {
	d.init()
	return d.deleted[kind][name]
}

// Leaks lists every live object as "kind:name".
func (d *Device) Leaks() []string {
	d.init()
	var out []string
	for kind, names := range d.live {
		for name := range names {
			out = append(out, fmt.Sprintf("%s:%d", kind, name))
		}
	}
	sort.Strings(out)
	return out
}

// DoubleDeletes lists every object deleted more than once as "kind:name".
func (d *Device) DoubleDeletes() []string {
	d.init()
	var out []string
	for kind, names := range d.deleted {
		for name, n := range names {
			if n > 1 {
				out = append(out, fmt.Sprintf("%s:%d", kind, name))
			}
		}
	}
	sort.Strings(out)
	return out
}

// Location returns the uniform location handed out for name, or -1.
func (d *Device) Location(name string) int32 {
	d.init()
	if loc, ok := d.locations[name]; ok {
		return loc
	}
	return -1
}

func (d *Device) Enable(capability graphics.Enum) {
	d.record("Enable(%#x)", uint32(capability))
	d.Enabled[capability] = true
}

func (d *Device) DepthFunc(fn graphics.Enum) {
	d.record("DepthFunc(%#x)", uint32(fn))
	d.DepthFn = fn
}

func (d *Device) Viewport(x, y, width, height int32) {
	d.record("Viewport(%d, %d, %d, %d)", x, y, width, height)
	d.Viewports = append(d.Viewports, [4]int32{x, y, width, height})
}

func (d *Device) ClearColor(r, g, b, a float32) {
	d.record("ClearColor(%g, %g, %g, %g)", r, g, b, a)
	d.ClearRGBA = [4]float32{r, g, b, a}
}

func (d *Device) Clear(mask graphics.Enum) {
	d.record("Clear(%#x)", uint32(mask))
	d.Clears = append(d.Clears, mask)
}

func (d *Device) GenVertexArray() uint32 {
	name := d.gen("vertexarray")
	d.record("GenVertexArray() = %d", name)
	d.Attribs[name] = make(map[uint32]*Attrib)
	return name
}

func (d *Device) BindVertexArray(vao uint32) {
	d.record("BindVertexArray(%d)", vao)
	d.BoundVAO = vao
	d.BoundBuffers[graphics.ElementArrayBuffer] = d.ElementBuffers[vao]
}

func (d *Device) DeleteVertexArray(vao uint32) {
	d.record("DeleteVertexArray(%d)", vao)
	d.del("vertexarray", vao)
}

func (d *Device) GenBuffer() uint32 {
	name := d.gen("buffer")
	d.record("GenBuffer() = %d", name)
	return name
}

func (d *Device) BindBuffer(target graphics.Enum, buffer uint32) {
	d.record("BindBuffer(%#x, %d)", uint32(target), buffer)
	d.BoundBuffers[target] = buffer
	if target == graphics.ElementArrayBuffer && d.BoundVAO != 0 {
		d.ElementBuffers[d.BoundVAO] = buffer
	}
}

func (d *Device) BufferData(target graphics.Enum, size int, data unsafe.Pointer, usage graphics.Enum) {
	d.record("BufferData(%#x, %d, %#x)", uint32(target), size, uint32(usage))
	var buf []byte
	if data != nil && size > 0 {
		buf = append(buf, unsafe.Slice((*byte)(data), size)...)
	}
	d.Uploads = append(d.Uploads, Upload{
		Target: target,
		Buffer: d.BoundBuffers[target],
		Data:   buf,
		Usage:  usage,
	})
}

func (d *Device) DeleteBuffer(buffer uint32) {
	d.record("DeleteBuffer(%d)", buffer)
	d.del("buffer", buffer)
}

func (d *Device) attrib(index uint32) *Attrib {
	attribs := d.Attribs[d.BoundVAO]
	if attribs == nil {
		attribs = make(map[uint32]*Attrib)
		d.Attribs[d.BoundVAO] = attribs
	}
	a := attribs[index]
	if a == nil {
		a = &Attrib{Index: index}
		attribs[index] = a
	}
	return a
}

func (d *Device) EnableVertexAttribArray(index uint32) {
	d.record("EnableVertexAttribArray(%d)", index)
	d.attrib(index).Enabled = true
}

func (d *Device) VertexAttribPointer(index uint32, size int32, xtype graphics.Enum, normalized bool, stride int32, offset uintptr) {
	d.record("VertexAttribPointer(%d, %d, %#x, %v, %d, %d)", index, size, uint32(xtype), normalized, stride, offset)
	a := d.attrib(index)
	a.Size = size
	a.Type = xtype
	a.Normalized = normalized
	a.Stride = stride
	a.Offset = offset
	a.Buffer = d.BoundBuffers[graphics.ArrayBuffer]
}

func (d *Device) CompileShader(source string, shaderType graphics.Enum) (uint32, error) {
	d.record("CompileShader(%#x)", uint32(shaderType))
	d.Sources[shaderType] = source
	name := d.gen("shader")
	if d.CompileErr != nil && shaderType == d.FailStage {
		// gldevice deletes the shader object of a failed compile itself.
		d.del("shader", name)
		return 0, d.CompileErr
	}
	return name, nil
}

func (d *Device) DeleteShader(shader uint32) {
	d.record("DeleteShader(%d)", shader)
	d.del("shader", shader)
}

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	d.record("LinkProgram(%v)", shaders)
	if d.LinkErr != nil {
		return 0, d.LinkErr
	}
	return d.gen("program"), nil
}

func (d *Device) UseProgram(program uint32) {
	d.record("UseProgram(%d)", program)
	d.BoundProgram = program
}

func (d *Device) DeleteProgram(program uint32) {
	d.record("DeleteProgram(%d)", program)
	d.del("program", program)
}

func (d *Device) GetUniformLocation(program uint32, name string) int32 {
	d.init()
	loc, ok := d.locations[name]
	if !ok {
		loc = int32(len(d.locations))
		d.locations[name] = loc
	}
	d.record("GetUniformLocation(%d, %q) = %d", program, name, loc)
	return loc
}

func (d *Device) UniformMatrix4fv(location int32, m [16]float32) {
	d.record("UniformMatrix4fv(%d)", location)
	d.Uniforms[location] = m
}

func (d *Device) DrawElements(mode graphics.Enum, count int32, xtype graphics.Enum, offset uintptr) {
	d.record("DrawElements(%#x, %d, %#x, %d)", uint32(mode), count, uint32(xtype), offset)
	d.Draws = append(d.Draws, Draw{
		Mode:    mode,
		Count:   count,
		Type:    xtype,
		Offset:  offset,
		VAO:     d.BoundVAO,
		Program: d.BoundProgram,
	})
}

var _ graphics.Device = (*Device)(nil)
