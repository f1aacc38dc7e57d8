// Package gldevice implements graphics.Device on top of the go-gl OpenGL 3.3
// core bindings.
package gldevice

import (
	"fmt"
	"log"
	"strings"
	"sync"
	"unsafe"

	"github.com/go-gl/gl/v3.3-core/gl"
	"github.com/richinsley/glpyramid/graphics"
)

var (
	glInitOnce sync.Once
	glInitErr  error
)

// Device issues graphics.Device calls against the current OpenGL context.
type Device struct {
	Version     string
	GLSLVersion string
}

// Load resolves the OpenGL entry points for the context current on this
// thread. It must run after MakeCurrent and before any other GL call; the
// resolution happens once per process.
func Load() (*Device, error) {
	glInitOnce.Do(func() {
		glInitErr = gl.Init()
	})
	if glInitErr != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", glInitErr)
	}

	d := &Device{
		Version:     gl.GoStr(gl.GetString(gl.VERSION)),
		GLSLVersion: gl.GoStr(gl.GetString(gl.SHADING_LANGUAGE_VERSION)),
	}
	log.Printf("OpenGL version %s, GLSL %s", d.Version, d.GLSLVersion)
	return d, nil
}

func (d *Device) Enable(capability graphics.Enum) { gl.Enable(uint32(capability)) }

func (d *Device) DepthFunc(fn graphics.Enum) { gl.DepthFunc(uint32(fn)) }

func (d *Device) Viewport(x, y, width, height int32) { gl.Viewport(x, y, width, height) }

func (d *Device) ClearColor(r, g, b, a float32) { gl.ClearColor(r, g, b, a) }

func (d *Device) Clear(mask graphics.Enum) { gl.Clear(uint32(mask)) }

func (d *Device) GenVertexArray() uint32 {
	var vao uint32
	gl.GenVertexArrays(1, &vao)
	return vao
}

func (d *Device) BindVertexArray(vao uint32) { gl.BindVertexArray(vao) }

func (d *Device) DeleteVertexArray(vao uint32) { gl.DeleteVertexArrays(1, &vao) }

func (d *Device) GenBuffer() uint32 {
	var buffer uint32
	gl.GenBuffers(1, &buffer)
	return buffer
}

func (d *Device) BindBuffer(target graphics.Enum, buffer uint32) {
	gl.BindBuffer(uint32(target), buffer)
}

func (d *Device) BufferData(target graphics.Enum, size int, data unsafe.Pointer, usage graphics.Enum) {
	gl.BufferData(uint32(target), size, data, uint32(usage))
}

func (d *Device) DeleteBuffer(buffer uint32) { gl.DeleteBuffers(1, &buffer) }

func (d *Device) EnableVertexAttribArray(index uint32) { gl.EnableVertexAttribArray(index) }

func (d *Device) VertexAttribPointer(index uint32, size int32, xtype graphics.Enum, normalized bool, stride int32, offset uintptr) {
	gl.VertexAttribPointer(index, size, uint32(xtype), normalized, stride, gl.PtrOffset(int(offset)))
}

func (d *Device) CompileShader(source string, shaderType graphics.Enum) (uint32, error) {
	shader := gl.CreateShader(uint32(shaderType))
	if shader == 0 {
		return 0, fmt.Errorf("failed to create shader of type %#x", uint32(shaderType))
	}
	csources, free := gl.Strs(source + "\x00")
	gl.ShaderSource(shader, 1, csources, nil)
	free()
	gl.CompileShader(shader)

	var status int32
	gl.GetShaderiv(shader, gl.COMPILE_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetShaderiv(shader, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetShaderInfoLog(shader, logLength, nil, gl.Str(logText))
		gl.DeleteShader(shader)
		return 0, fmt.Errorf("failed to compile shader: %v", strings.TrimRight(logText, "\x00"))
	}
	return shader, nil
}

func (d *Device) DeleteShader(shader uint32) { gl.DeleteShader(shader) }

func (d *Device) LinkProgram(shaders ...uint32) (uint32, error) {
	program := gl.CreateProgram()
	if program == 0 {
		return 0, fmt.Errorf("failed to create program")
	}
	for _, s := range shaders {
		gl.AttachShader(program, s)
	}
	gl.LinkProgram(program)

	var status int32
	gl.GetProgramiv(program, gl.LINK_STATUS, &status)
	if status == gl.FALSE {
		var logLength int32
		gl.GetProgramiv(program, gl.INFO_LOG_LENGTH, &logLength)
		logText := strings.Repeat("\x00", int(logLength+1))
		gl.GetProgramInfoLog(program, logLength, nil, gl.Str(logText))
		gl.DeleteProgram(program)
		return 0, fmt.Errorf("failed to link program: %v", strings.TrimRight(logText, "\x00"))
	}

	for _, s := range shaders {
		gl.DetachShader(program, s)
	}
	return program, nil
}

func (d *Device) UseProgram(program uint32) { gl.UseProgram(program) }

func (d *Device) DeleteProgram(program uint32) { gl.DeleteProgram(program) }

func (d *Device) GetUniformLocation(program uint32, name string) int32 {
	return gl.GetUniformLocation(program, gl.Str(name+"\x00"))
}

func (d *Device) UniformMatrix4fv(location int32, m [16]float32) {
	gl.UniformMatrix4fv(location, 1, false, &m[0])
}

func (d *Device) DrawElements(mode graphics.Enum, count int32, xtype graphics.Enum, offset uintptr) {
	gl.DrawElements(uint32(mode), count, uint32(xtype), gl.PtrOffset(int(offset)))
}

var _ graphics.Device = (*Device)(nil)
