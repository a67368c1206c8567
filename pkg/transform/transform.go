// Package transform composes per-object model matrices from translate,
// rotate, shear and scale parameters, and derives the matching normal and
// projection matrices.
package transform

import (
	"github.com/taigrr/gleam/pkg/math3d"
)

// Rotation is an angle in radians around an axis. The axis is normalized
// when the matrix is composed.
type Rotation struct {
	Angle float64
	Axis  math3d.Vec3
}

// Transform holds the affine parameters of one object.
type Transform struct {
	Translate math3d.Vec3
	Rotation  Rotation
	Scale     math3d.Vec3 // non-uniform, component-wise; zero components are degenerate
	Shear     Shear
}

// Identity returns a transform that leaves geometry unchanged, rotating
// around Y once the angle starts advancing.
func Identity() Transform {
	return Transform{
		Rotation: Rotation{Axis: math3d.Up()},
		Scale:    math3d.One3(),
		Shear:    Shear{Axis: ShearX},
	}
}

// ComposeModelMatrix builds M = Translate · Rotate · Shear · Scale.
// Applied to a vertex, scale happens first and translation last, so shear
// factors are expressed in the object's pre-scale frame.
func ComposeModelMatrix(t Transform) math3d.Mat4 {
	return math3d.Translate(t.Translate).
		Mul(math3d.Rotate(t.Rotation.Axis, t.Rotation.Angle)).
		Mul(ShearMatrix(t.Shear)).
		Mul(math3d.Scale(t.Scale))
}

// NormalMatrix returns transpose(inverse(upper-left 3x3 of model)).
// For a singular model (zero scale) the result is the identity; the
// rendered output is then undefined and avoiding it is up to the caller.
func NormalMatrix(model math3d.Mat4) math3d.Mat3 {
	inv, _ := model.Upper3().Inverse()
	return inv.Transpose()
}

// WithAuthoringScale returns a copy of t whose scale is multiplied
// component-wise by k. t itself is not modified, so applying the
// correction every frame never accumulates.
func (t Transform) WithAuthoringScale(k math3d.Vec3) Transform {
	t.Scale = t.Scale.Mul(k)
	return t
}
