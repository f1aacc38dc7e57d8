package shader

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glpyramid/graphics"
	"github.com/richinsley/glpyramid/translator"
)

// Translator turns WebGL2 sources into desktop GLSL. *translator.Translator
// satisfies it.
type Translator interface {
	Translate(source, stage string) (*translator.Shader, error)
}

// Program is a linked vertex/fragment program.
type Program struct {
	dev      graphics.Device
	id       uint32
	names    map[string]string
	released bool
}

// Build compiles and links the pyramid shaders. With a nil Translator the
// desktop sources are compiled as-is; otherwise the WebGL2 sources are
// translated first and uniform lookups use the translated names.
func Build(dev graphics.Device, tr Translator) (*Program, error) {
	vertexSource := VertexSource(false)
	fragmentSource := FragmentSource(false)
	names := make(map[string]string)

	if tr != nil {
		vs, err := tr.Translate(VertexSource(true), translator.StageVertex)
		if err != nil {
			return nil, err
		}
		fs, err := tr.Translate(FragmentSource(true), translator.StageFragment)
		if err != nil {
			return nil, err
		}
		vertexSource, fragmentSource = vs.Code, fs.Code
		for _, s := range []*translator.Shader{vs, fs} {
			for _, name := range []string{UniformModel, UniformView, UniformProjection} {
				if mapped := s.MappedName(name); mapped != name {
					names[name] = mapped
				}
			}
		}
	}

	id, err := newProgram(dev, vertexSource, fragmentSource)
	if err != nil {
		return nil, err
	}
	return &Program{dev: dev, id: id, names: names}, nil
}

func newProgram(dev graphics.Device, vertexSource, fragmentSource string) (uint32, error) {
	vertexShader, err := dev.CompileShader(vertexSource, graphics.VertexShader)
	if err != nil {
		return 0, fmt.Errorf("vertex shader: %w", err)
	}
	defer dev.DeleteShader(vertexShader)

	fragmentShader, err := dev.CompileShader(fragmentSource, graphics.FragmentShader)
	if err != nil {
		return 0, fmt.Errorf("fragment shader: %w", err)
	}
	defer dev.DeleteShader(fragmentShader)

	program, err := dev.LinkProgram(vertexShader, fragmentShader)
	if err != nil {
		return 0, err
	}
	return program, nil
}

func (p *Program) ID() uint32 { return p.id }

func (p *Program) Use() { p.dev.UseProgram(p.id) }

func (p *Program) Unuse() { p.dev.UseProgram(0) }

// Name returns the name a uniform carries in the compiled program.
func (p *Program) Name(uniform string) string {
	if mapped, ok := p.names[uniform]; ok {
		return mapped
	}
	return uniform
}

// Uniform looks up the location of a uniform by name. Nothing is cached; the
// lookup goes to the device every call.
func (p *Program) Uniform(name string) int32 {
	return p.dev.GetUniformLocation(p.id, p.Name(name))
}

// SetMat4 uploads m to the named uniform. Uniforms the linker dropped are
// skipped.
func (p *Program) SetMat4(name string, m mgl32.Mat4) {
	loc := p.Uniform(name)
	if loc < 0 {
		return
	}
	p.dev.UniformMatrix4fv(loc, m)
}

// Release deletes the program. Later calls do nothing.
func (p *Program) Release() {
	if p == nil || p.released {
		return
	}
	p.released = true
	p.dev.DeleteProgram(p.id)
}
