package graphics

// Context defines the interface for a windowed OpenGL context.
type Context interface {
	MakeCurrent()
	Shutdown()
	ShouldClose() bool
	// EndFrame swaps the front and back buffers and polls window events.
	EndFrame()
	GetFramebufferSize() (int, int)
}
