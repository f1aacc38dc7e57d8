package options

import (
	"flag"

	"github.com/go-gl/mathgl/mgl32"
)

// Camera is the fixed eye/target/up triple fed to the look-at transform.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3
}

// Ortho holds the six clipping planes of the orthographic projection.
type Ortho struct {
	Left, Right float32
	Bottom, Top float32
	Near, Far   float32
}

// Options replaces the process-wide state of the viewer. Pointer fields are
// bound to command-line flags; the rest are scene constants.
type Options struct {
	Frames    *int  // Stop after this many frames; 0 runs until the window closes
	Translate *bool // Route shaders through the WebGL2 -> GLSL 330 translator
	VSync     *bool
	Help      *bool

	Width  int
	Height int
	Title  string

	GLMajor int
	GLMinor int

	Camera     Camera
	Ortho      Ortho
	ClearColor [4]float32
}

// Default returns the options the viewer has always run with.
func Default() *Options {
	frames := 0
	translate := true
	vsync := true
	help := false
	return &Options{
		Frames:    &frames,
		Translate: &translate,
		VSync:     &vsync,
		Help:      &help,
		Width:     640,
		Height:    480,
		Title:     "Dwaine's Pyramid",
		GLMajor:   3,
		GLMinor:   3,
		Camera: Camera{
			Eye:    mgl32.Vec3{-1, 0, 3},
			Target: mgl32.Vec3{0, 0, 0},
			Up:     mgl32.Vec3{0, 1, 0},
		},
		Ortho: Ortho{
			Left: 0, Right: 800,
			Bottom: 0, Top: 600,
			Near: 0.1, Far: 100,
		},
		ClearColor: [4]float32{0.2, 0.3, 0.3, 1.0},
	}
}

// FromFlags registers the viewer flags on fs and parses args into a fresh
// set of default options.
func FromFlags(fs *flag.FlagSet, args []string) (*Options, error) {
	o := Default()
	o.Frames = fs.Int("frames", *o.Frames, "Number of frames to render before exiting (0 = until the window is closed)")
	o.Translate = fs.Bool("translate", *o.Translate, "Translate WebGL2 shaders to GLSL 330 before compiling")
	o.VSync = fs.Bool("vsync", *o.VSync, "Synchronize buffer swaps with the display refresh")
	o.Help = fs.Bool("help", *o.Help, "Show help message")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	return o, nil
}

// MaxFrames reports the frame limit, treating a nil or negative value as
// unlimited.
func (o *Options) MaxFrames() int {
	if o.Frames == nil || *o.Frames < 0 {
		return 0
	}
	return *o.Frames
}

// TranslateShaders reports whether shader sources go through the translator.
func (o *Options) TranslateShaders() bool {
	return o.Translate == nil || *o.Translate
}

// SwapInterval returns the GLFW swap interval for the VSync setting.
func (o *Options) SwapInterval() int {
	if o.VSync != nil && !*o.VSync {
		return 0
	}
	return 1
}
