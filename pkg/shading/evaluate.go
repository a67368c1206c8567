package shading

import (
	"math"

	"github.com/taigrr/gleam/pkg/math3d"
)

// Evaluate returns the reflected color at a surface point lit by every light
// in lights. normal and viewDir must be unit length. The result is not
// clamped; see ToRGBA.
func Evaluate(position, normal, viewDir math3d.Vec3, m Material, lights []Light, base math3d.Vec3) math3d.Vec3 {
	var diffuse, specular math3d.Vec3
	for i := range lights {
		l := lights[i].Position.Sub(position).Normalize()
		lambertian := math.Max(normal.Dot(l), 0)

		var spec float64
		if lambertian > 0 {
			r := l.Negate().Reflect(normal)
			spec = math.Pow(math.Max(r.Dot(viewDir), 0), m.Shininess)
		}

		diffuse = diffuse.Add(lights[i].Color.Mul(base).Scale(m.Kd * lambertian))
		specular = specular.Add(lights[i].Color.Scale(m.Ks * spec))
	}
	return base.Scale(m.Ka).Add(diffuse).Add(specular)
}
