package glfwcontext

import (
	"fmt"
	"log"
	"runtime"

	glfw "github.com/go-gl/glfw/v3.3/glfw"
	graphics "github.com/richinsley/glpyramid/graphics"
	options "github.com/richinsley/glpyramid/options"
)

var _ graphics.Context = (*Context)(nil)

// Context is a GLFW window and its OpenGL context.
type Context struct {
	window       *glfw.Window
	swapInterval int
}

// New creates a resizable window with a forward-compatible core profile
// context of the version requested in options. InitGraphics must have
// succeeded first.
func New(options *options.Options) (*Context, error) {
	glfw.WindowHint(glfw.ContextVersionMajor, options.GLMajor)
	glfw.WindowHint(glfw.ContextVersionMinor, options.GLMinor)
	glfw.WindowHint(glfw.OpenGLProfile, glfw.OpenGLCoreProfile)
	glfw.WindowHint(glfw.OpenGLForwardCompatible, glfw.True)
	glfw.WindowHint(glfw.Resizable, glfw.True)

	win, err := glfw.CreateWindow(options.Width, options.Height, options.Title, nil, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create %dx%d window with OpenGL %d.%d core context: %w",
			options.Width, options.Height, options.GLMajor, options.GLMinor, err)
	}

	c := &Context{
		window:       win,
		swapInterval: options.SwapInterval(),
	}
	win.SetKeyCallback(c.glfwKeyCallback)
	log.Printf("Created %dx%d window %q", options.Width, options.Height, options.Title)
	return c, nil
}

// Escape closes the window; no other key is handled.
func (c *Context) glfwKeyCallback(w *glfw.Window, key glfw.Key, scancode int, action glfw.Action, mods glfw.ModifierKey) {
	if key == glfw.KeyEscape && action == glfw.Press {
		w.SetShouldClose(true)
	}
}

// MakeCurrent makes the context current for the calling goroutine and applies
// the swap interval.
func (c *Context) MakeCurrent() {
	c.window.MakeContextCurrent()
	glfw.SwapInterval(c.swapInterval)
}

// Shutdown destroys the window.
func (c *Context) Shutdown() {
	c.window.Destroy()
}

func (c *Context) ShouldClose() bool {
	return c.window.ShouldClose()
}

func (c *Context) EndFrame() {
	c.window.SwapBuffers()
	glfw.PollEvents()
}

func (c *Context) GetFramebufferSize() (int, int) {
	return c.window.GetFramebufferSize()
}

// Window returns the underlying *glfw.Window.
func (c *Context) Window() *glfw.Window {
	return c.window
}

// InitGraphics initializes the main graphics subsystem (GLFW). Must be called from the main thread.
func InitGraphics() error {
	runtime.LockOSThread()
	if err := glfw.Init(); err != nil {
		return err
	}
	log.Printf("GLFW Initialized")
	return nil
}

// TerminateGraphics shuts down the graphics subsystem. Must be called from the main thread.
func TerminateGraphics() {
	glfw.Terminate()
	log.Printf("GLFW Terminated")
}
