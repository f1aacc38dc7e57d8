package graphicstest

import "github.com/richinsley/glpyramid/graphics"

// Context is a fake window. ShouldClose starts reporting true once CloseAfter
// frames have ended; a CloseAfter of zero never closes on its own.
type Context struct {
	Width, Height int
	// Sizes, if set, overrides the framebuffer size per frame; the last entry
	// repeats once frames outrun it.
	Sizes [][2]int

	CloseAfter int
	Closed     bool

	Frames      int
	CloseChecks int
	Current     bool
	Shutdowns   int
}

// NewContext returns a fake window of the given framebuffer size.
func NewContext(width, height int) *Context {
	return &Context{Width: width, Height: height}
}

func (c *Context) MakeCurrent() { c.Current = true }

func (c *Context) Shutdown() { c.Shutdowns++ }

func (c *Context) ShouldClose() bool {
	c.CloseChecks++
	if c.CloseAfter > 0 && c.Frames >= c.CloseAfter {
		c.Closed = true
	}
	return c.Closed
}

func (c *Context) EndFrame() { c.Frames++ }

func (c *Context) GetFramebufferSize() (int, int) {
	if len(c.Sizes) == 0 {
		return c.Width, c.Height
	}
	i := c.Frames
	if i >= len(c.Sizes) {
		i = len(c.Sizes) - 1
	}
	return c.Sizes[i][0], c.Sizes[i][1]
}

var _ graphics.Context = (*Context)(nil)
