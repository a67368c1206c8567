// Package shading implements the multi-light reflectance model and the three
// sites (per face, per vertex, per fragment) at which it can be evaluated.
package shading

import "github.com/taigrr/gleam/pkg/math3d"

// Material holds the reflectance coefficients of a surface. Values outside
// [0,1] and negative shininess are accepted as-is.
type Material struct {
	Ka        float64 // ambient
	Kd        float64 // diffuse
	Ks        float64 // specular
	Shininess float64
}

// DefaultMaterial mirrors the slider defaults of the viewer.
func DefaultMaterial() Material {
	return Material{Ka: 0.3, Kd: 0.7, Ks: 0.5, Shininess: 32}
}

// Light is a point light in world space.
type Light struct {
	Position math3d.Vec3
	Color    math3d.Vec3 // channels in [0,1]
}
