package graphics

import "unsafe"

// Enum is an OpenGL enumerant. The values below match the GL headers so a
// Device implementation can pass them straight through.
type Enum uint32

const (
	Triangles Enum = 0x0004

	Less Enum = 0x0201

	DepthBufferBit Enum = 0x0100
	ColorBufferBit Enum = 0x4000

	DepthTest Enum = 0x0B71

	UnsignedByte Enum = 0x1401
	Float        Enum = 0x1406

	ArrayBuffer        Enum = 0x8892
	ElementArrayBuffer Enum = 0x8893
	StaticDraw         Enum = 0x88E4

	FragmentShader Enum = 0x8B30
	VertexShader   Enum = 0x8B31
)

// Device is the subset of the OpenGL API the viewer draws with. Object names
// are plain uint32 handles; zero is never a valid name.
type Device interface {
	Enable(capability Enum)
	DepthFunc(fn Enum)
	Viewport(x, y, width, height int32)
	ClearColor(r, g, b, a float32)
	Clear(mask Enum)

	GenVertexArray() uint32
	BindVertexArray(vao uint32)
	DeleteVertexArray(vao uint32)

	GenBuffer() uint32
	BindBuffer(target Enum, buffer uint32)
	BufferData(target Enum, size int, data unsafe.Pointer, usage Enum)
	DeleteBuffer(buffer uint32)

	EnableVertexAttribArray(index uint32)
	VertexAttribPointer(index uint32, size int32, xtype Enum, normalized bool, stride int32, offset uintptr)

	// CompileShader creates and compiles a shader object, returning the
	// info log as an error if compilation fails.
	CompileShader(source string, shaderType Enum) (uint32, error)
	DeleteShader(shader uint32)
	// LinkProgram links the given shaders into a new program, returning the
	// info log as an error if linking fails.
	LinkProgram(shaders ...uint32) (uint32, error)
	UseProgram(program uint32)
	DeleteProgram(program uint32)

	GetUniformLocation(program uint32, name string) int32
	UniformMatrix4fv(location int32, m [16]float32)

	DrawElements(mode Enum, count int32, xtype Enum, offset uintptr)
}
