package renderer

import (
	"errors"
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/richinsley/glpyramid/graphics"
	"github.com/richinsley/glpyramid/graphics/graphicstest"
	"github.com/richinsley/glpyramid/options"
	"github.com/richinsley/glpyramid/shader"
	"github.com/richinsley/glpyramid/transform"
)

func newTestRenderer(t *testing.T, ctx *graphicstest.Context, opts *options.Options) (*Renderer, *graphicstest.Device) {
	t.Helper()
	dev := &graphicstest.Device{}
	r, err := NewRenderer(ctx, dev, opts, nil)
	if err != nil {
		t.Fatalf("NewRenderer: %v", err)
	}
	return r, dev
}

func TestNewRendererSetsUpScene(t *testing.T) {
	ctx := graphicstest.NewContext(640, 480)
	r, dev := newTestRenderer(t, ctx, options.Default())
	defer r.Shutdown()

	if !ctx.Current {
		t.Fatal("context was not made current")
	}
	if !dev.Enabled[graphics.DepthTest] || dev.DepthFn != graphics.Less {
		t.Fatalf("depth test not configured: enabled=%v fn=%#x", dev.Enabled[graphics.DepthTest], uint32(dev.DepthFn))
	}
	if got := len(dev.Live("program")); got != 1 {
		t.Fatalf("expected 1 program, got %d", got)
	}
	if dev.BoundVAO != 0 || dev.BoundProgram != 0 {
		t.Fatalf("setup left state bound: vao=%d program=%d", dev.BoundVAO, dev.BoundProgram)
	}
}

func TestRenderFrame(t *testing.T) {
	ctx := graphicstest.NewContext(640, 480)
	opts := options.Default()
	r, dev := newTestRenderer(t, ctx, opts)
	defer r.Shutdown()

	u := r.RenderFrame()

	if len(dev.Viewports) != 1 || dev.Viewports[0] != [4]int32{0, 0, 640, 480} {
		t.Fatalf("unexpected viewports %v", dev.Viewports)
	}
	if dev.ClearRGBA != [4]float32{0.2, 0.3, 0.3, 1.0} {
		t.Fatalf("unexpected clear color %v", dev.ClearRGBA)
	}
	if len(dev.Clears) != 1 || dev.Clears[0] != graphics.ColorBufferBit|graphics.DepthBufferBit {
		t.Fatalf("unexpected clears %v", dev.Clears)
	}

	if len(dev.Draws) != 1 {
		t.Fatalf("expected 1 draw, got %d", len(dev.Draws))
	}
	d := dev.Draws[0]
	if d.Mode != graphics.Triangles || d.Count != 16 || d.Type != graphics.UnsignedByte {
		t.Fatalf("unexpected draw %s", spew.Sdump(d))
	}
	if d.VAO == 0 || d.Program == 0 {
		t.Fatalf("draw issued without bound state: %s", spew.Sdump(d))
	}
	if dev.BoundVAO != 0 || dev.BoundProgram != 0 {
		t.Fatalf("frame left state bound: vao=%d program=%d", dev.BoundVAO, dev.BoundProgram)
	}

	want := transform.Compute(opts)
	if u != want {
		t.Fatalf("returned uniforms differ from transform.Compute")
	}
	for name, m := range map[string][16]float32{
		shader.UniformModel:      want.Model,
		shader.UniformView:       want.View,
		shader.UniformProjection: want.Projection,
	} {
		loc := dev.Location(name)
		if loc < 0 {
			t.Fatalf("uniform %s never looked up", name)
		}
		if dev.Uniforms[loc] != m {
			t.Fatalf("uniform %s uploaded %v, want %v", name, dev.Uniforms[loc], m)
		}
	}
}

func TestRenderFrameOrder(t *testing.T) {
	ctx := graphicstest.NewContext(640, 480)
	r, dev := newTestRenderer(t, ctx, options.Default())
	defer r.Shutdown()

	start := len(dev.Calls)
	r.RenderFrame()
	calls := dev.Calls[start:]

	order := []string{
		"Viewport",
		"ClearColor",
		"Clear(",
		"UseProgram",
		"BindVertexArray",
		"GetUniformLocation",
		"UniformMatrix4fv",
		"DrawElements",
		"BindVertexArray(0)",
		"UseProgram(0)",
	}
	i := 0
	for _, c := range calls {
		if i < len(order) && strings.HasPrefix(c, order[i]) {
			i++
		}
	}
	if i != len(order) {
		t.Fatalf("frame calls out of order, matched %d of %d:\n%s", i, len(order), strings.Join(calls, "\n"))
	}
}

func TestUniformsLookedUpEveryFrame(t *testing.T) {
	ctx := graphicstest.NewContext(640, 480)
	r, dev := newTestRenderer(t, ctx, options.Default())
	defer r.Shutdown()

	start := len(dev.Calls)
	r.RenderFrame()
	r.RenderFrame()
	lookups := 0
	for _, c := range dev.Calls[start:] {
		if strings.HasPrefix(c, "GetUniformLocation") {
			lookups++
		}
	}
	if lookups != 6 {
		t.Fatalf("expected 6 uniform lookups over 2 frames, got %d", lookups)
	}
}

func TestFramesAreIdempotent(t *testing.T) {
	ctx := graphicstest.NewContext(640, 480)
	r, dev := newTestRenderer(t, ctx, options.Default())
	defer r.Shutdown()

	a := r.RenderFrame()
	first := make(map[int32][16]float32)
	for k, v := range dev.Uniforms {
		first[k] = v
	}
	b := r.RenderFrame()

	if a != b {
		t.Fatalf("frames computed different uniforms:\n%s\n%s", spew.Sdump(a), spew.Sdump(b))
	}
	for k, v := range dev.Uniforms {
		if first[k] != v {
			t.Fatalf("uniform %d changed between frames", k)
		}
	}
}

func TestViewportFollowsResize(t *testing.T) {
	ctx := graphicstest.NewContext(640, 480)
	ctx.Sizes = [][2]int{{640, 480}, {1280, 960}, {0, 0}}
	ctx.CloseAfter = 3
	r, dev := newTestRenderer(t, ctx, options.Default())
	defer r.Shutdown()

	r.Run()

	want := [][4]int32{{0, 0, 640, 480}, {0, 0, 1280, 960}, {0, 0, 0, 0}}
	if len(dev.Viewports) != len(want) {
		t.Fatalf("expected %d viewports, got %v", len(want), dev.Viewports)
	}
	for i := range want {
		if dev.Viewports[i] != want[i] {
			t.Fatalf("frame %d viewport %v, want %v", i, dev.Viewports[i], want[i])
		}
	}
}

func TestRunStopsOnClose(t *testing.T) {
	ctx := graphicstest.NewContext(640, 480)
	ctx.CloseAfter = 5
	r, dev := newTestRenderer(t, ctx, options.Default())

	frames := r.Run()
	r.Shutdown()

	if frames != 5 || ctx.Frames != 5 {
		t.Fatalf("expected 5 frames, drew %d and presented %d", frames, ctx.Frames)
	}
	if len(dev.Draws) != 5 {
		t.Fatalf("expected one draw per frame, got %d draws", len(dev.Draws))
	}
	// The close flag is seen on the check right after the fifth frame.
	if ctx.CloseChecks != 6 {
		t.Fatalf("expected 6 close checks, got %d", ctx.CloseChecks)
	}
	if leaks := dev.Leaks(); len(leaks) != 0 {
		t.Fatalf("leaked objects: %v", leaks)
	}
	if dd := dev.DoubleDeletes(); len(dd) != 0 {
		t.Fatalf("double deletes: %v", dd)
	}
}

func TestRunAlreadyClosed(t *testing.T) {
	ctx := graphicstest.NewContext(640, 480)
	ctx.Closed = true
	r, dev := newTestRenderer(t, ctx, options.Default())
	defer r.Shutdown()

	if frames := r.Run(); frames != 0 {
		t.Fatalf("expected no frames, got %d", frames)
	}
	if len(dev.Draws) != 0 {
		t.Fatalf("expected no draws, got %d", len(dev.Draws))
	}
}

func TestRunFrameLimit(t *testing.T) {
	ctx := graphicstest.NewContext(640, 480)
	opts := options.Default()
	*opts.Frames = 3
	r, dev := newTestRenderer(t, ctx, opts)
	defer r.Shutdown()

	if frames := r.Run(); frames != 3 {
		t.Fatalf("expected 3 frames, got %d", frames)
	}
	if len(dev.Draws) != 3 || ctx.Frames != 3 {
		t.Fatalf("expected 3 draws and swaps, got %d and %d", len(dev.Draws), ctx.Frames)
	}
	if r.Frames() != 3 {
		t.Fatalf("Frames() = %d", r.Frames())
	}
}

func TestShutdownReleasesOnce(t *testing.T) {
	ctx := graphicstest.NewContext(640, 480)
	r, dev := newTestRenderer(t, ctx, options.Default())

	vaos := dev.Live("vertexarray")
	buffers := dev.Live("buffer")
	programs := dev.Live("program")
	if len(vaos) != 1 || len(buffers) != 2 || len(programs) != 1 {
		t.Fatalf("unexpected objects: vao=%v buffers=%v programs=%v", vaos, buffers, programs)
	}

	r.Shutdown()
	r.Shutdown()

	for _, name := range vaos {
		if n := dev.Deletions("vertexarray", name); n != 1 {
			t.Fatalf("vertex array %d deleted %d times", name, n)
		}
	}
	for _, name := range buffers {
		if n := dev.Deletions("buffer", name); n != 1 {
			t.Fatalf("buffer %d deleted %d times", name, n)
		}
	}
	for _, name := range programs {
		if n := dev.Deletions("program", name); n != 1 {
			t.Fatalf("program %d deleted %d times", name, n)
		}
	}
	if ctx.Shutdowns != 0 {
		t.Fatal("renderer shut down a context it does not own")
	}
}

func TestNewRendererReleasesOnShaderFailure(t *testing.T) {
	ctx := graphicstest.NewContext(640, 480)
	dev := &graphicstest.Device{
		CompileErr: errors.New("failed to compile shader: bad token"),
		FailStage:  graphics.FragmentShader,
	}
	r, err := NewRenderer(ctx, dev, options.Default(), nil)
	if err == nil {
		t.Fatal("expected an error")
	}
	if r != nil {
		t.Fatal("expected a nil renderer on error")
	}
	if !strings.Contains(err.Error(), "bad token") {
		t.Fatalf("error %q lost the compiler log", err)
	}
	if leaks := dev.Leaks(); len(leaks) != 0 {
		t.Fatalf("leaked objects after failed setup: %v", leaks)
	}
	if dd := dev.DoubleDeletes(); len(dd) != 0 {
		t.Fatalf("double deletes: %v", dd)
	}
}
