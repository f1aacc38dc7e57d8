package renderer

import (
	"fmt"
	"log"

	"github.com/richinsley/glpyramid/graphics"
	"github.com/richinsley/glpyramid/mesh"
	"github.com/richinsley/glpyramid/options"
	"github.com/richinsley/glpyramid/shader"
	"github.com/richinsley/glpyramid/transform"
)

type Renderer struct {
	context graphics.Context
	dev     graphics.Device
	options *options.Options
	mesh    *mesh.Mesh
	program *shader.Program
	frames  int

	// release holds cleanup for every acquired GPU object, run in reverse.
	release []func()
}

// NewRenderer makes ctx current and prepares the scene on dev. tr may be nil
// to compile the desktop shader sources directly. On error everything
// created so far has already been released.
func NewRenderer(ctx graphics.Context, dev graphics.Device, opts *options.Options, tr shader.Translator) (*Renderer, error) {
	r := &Renderer{
		context: ctx,
		dev:     dev,
		options: opts,
	}

	r.context.MakeCurrent()

	if err := r.initScene(tr); err != nil {
		r.Shutdown()
		return nil, err
	}
	return r, nil
}

func (r *Renderer) initScene(tr shader.Translator) error {
	// Closer fragments win.
	r.dev.Enable(graphics.DepthTest)
	r.dev.DepthFunc(graphics.Less)

	m, err := mesh.Upload(r.dev, mesh.Pyramid())
	if err != nil {
		return fmt.Errorf("failed to upload mesh: %w", err)
	}
	r.mesh = m
	r.release = append(r.release, m.Release)

	p, err := shader.Build(r.dev, tr)
	if err != nil {
		return fmt.Errorf("failed to create shader program: %w", err)
	}
	r.program = p
	r.release = append(r.release, p.Release)

	log.Printf("Scene ready: %d indices, program %d", m.IndexCount(), p.ID())
	return nil
}

// Shutdown releases the scene's GPU objects. The context is left to its
// owner. Calling Shutdown again does nothing.
func (r *Renderer) Shutdown() {
	if len(r.release) == 0 {
		return
	}
	for i := len(r.release) - 1; i >= 0; i-- {
		r.release[i]()
	}
	r.release = nil
	log.Printf("Released GPU resources")
}

// RenderFrame draws the pyramid once into the back buffer and returns the
// matrices it uploaded.
func (r *Renderer) RenderFrame() transform.Uniforms {
	// The window may have been resized since the last frame.
	fbWidth, fbHeight := r.context.GetFramebufferSize()
	r.dev.Viewport(0, 0, int32(fbWidth), int32(fbHeight))

	c := r.options.ClearColor
	r.dev.ClearColor(c[0], c[1], c[2], c[3])
	r.dev.Clear(graphics.ColorBufferBit | graphics.DepthBufferBit)

	r.program.Use()
	r.mesh.Bind()

	uniforms := transform.Compute(r.options)
	r.program.SetMat4(shader.UniformModel, uniforms.Model)
	r.program.SetMat4(shader.UniformView, uniforms.View)
	r.program.SetMat4(shader.UniformProjection, uniforms.Projection)

	r.mesh.Draw()

	r.mesh.Unbind()
	r.program.Unuse()
	return uniforms
}

// Run renders until the window asks to close or the configured frame limit is
// reached, and returns the number of frames drawn.
func (r *Renderer) Run() int {
	maxFrames := r.options.MaxFrames()
	for !r.context.ShouldClose() {
		if maxFrames > 0 && r.frames >= maxFrames {
			break
		}
		r.RenderFrame()
		r.context.EndFrame()
		r.frames++
	}
	log.Printf("Render loop finished after %d frames", r.frames)
	return r.frames
}

// Frames is the number of frames Run has presented.
func (r *Renderer) Frames() int { return r.frames }
