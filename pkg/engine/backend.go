// Package engine drives the per-frame draw of a scene through an abstract
// graphics backend.
package engine

import (
	"github.com/taigrr/gleam/pkg/math3d"
	"github.com/taigrr/gleam/pkg/models"
	"github.com/taigrr/gleam/pkg/shading"
)

// Program is a compiled shading program for one variant. The engine only
// passes it back to the backend that created it.
type Program interface {
	Variant() shading.Variant
}

// DrawCall carries everything a backend needs to draw one object.
type DrawCall struct {
	Program Program
	Mesh    *models.Mesh

	Model      math3d.Mat4
	Normal     math3d.Mat3
	View       math3d.Mat4
	Projection math3d.Mat4
	Eye        math3d.Vec3

	Material shading.Material
	Lights   []shading.Light
	Texture  shading.Sampler
}

// Backend compiles programs and issues draws.
type Backend interface {
	// Compile builds the program for v or reports why it cannot.
	Compile(v shading.Variant) (Program, error)
	// Viewport returns the current drawable size in pixels.
	Viewport() (width, height int)
	// Clear fills the color target with bg and resets depth.
	Clear(bg math3d.Vec3)
	// Draw renders dc. The call must not retain dc after returning.
	Draw(dc *DrawCall)
}

// Camera supplies the view transform each frame.
type Camera interface {
	View() math3d.Mat4
	Eye() math3d.Vec3
}
