package transform

import (
	"math"

	"github.com/taigrr/gleam/pkg/math3d"
)

// Lens holds the aspect-independent projection parameters.
type Lens struct {
	FOV  float64 // vertical field of view in radians
	Near float64
	Far  float64
}

// DefaultLens is a 45° field of view with clip planes at 0.1 and 100.
func DefaultLens() Lens {
	return Lens{FOV: 45 * math.Pi / 180, Near: 0.1, Far: 100}
}

// Projection returns the perspective matrix for the given viewport aspect.
// A non-positive aspect is treated as 1.
func (l Lens) Projection(aspect float64) math3d.Mat4 {
	return Perspective(l.FOV, aspect, l.Near, l.Far)
}

// Perspective is a stateless perspective projection.
func Perspective(fov, aspect, near, far float64) math3d.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	return math3d.Perspective(fov, aspect, near, far)
}
