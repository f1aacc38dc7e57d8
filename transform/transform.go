// Package transform builds the model, view and projection matrices used to
// place the pyramid on screen.
package transform

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/richinsley/glpyramid/options"
)

// Pi is the truncated constant the camera tilt has always been computed with.
// It is kept apart from math.Pi so the view matrix stays bit-identical.
const Pi float32 = 3.14159

// ToRadians converts degrees with Pi.
const ToRadians = Pi / 180.0

// Uniforms is the set of matrices uploaded before a draw.
type Uniforms struct {
	Model      mgl32.Mat4
	View       mgl32.Mat4
	Projection mgl32.Mat4
}

// Model scales by one, tilts 45 degrees about X and translates by zero.
func Model() mgl32.Mat4 {
	m := mgl32.Ident4()
	m = m.Mul4(mgl32.Scale3D(1, 1, 1))
	m = m.Mul4(mgl32.HomogRotate3DX(mgl32.DegToRad(45)))
	m = m.Mul4(mgl32.Translate3D(0, 0, 0))
	return m
}

// View looks from the camera eye at its target, then moves the camera by
// (1, 0, -3) and tilts it 45 degrees about X. The extra translate and rotate
// are composed onto the look-at matrix, not folded into the eye.
func View(cam options.Camera) mgl32.Mat4 {
	v := mgl32.LookAtV(cam.Eye, cam.Target, cam.Up)
	v = v.Mul4(mgl32.Translate3D(1, 0, -3))
	v = v.Mul4(mgl32.HomogRotate3DX(45 * ToRadians))
	return v
}

// Projection is the orthographic volume described by o.
func Projection(o options.Ortho) mgl32.Mat4 {
	return mgl32.Ortho(o.Left, o.Right, o.Bottom, o.Top, o.Near, o.Far)
}

// Compute returns the matrices for one frame. The result depends only on
// opts, so every frame gets the same values.
func Compute(opts *options.Options) Uniforms {
	return Uniforms{
		Model:      Model(),
		View:       View(opts.Camera),
		Projection: Projection(opts.Ortho),
	}
}
