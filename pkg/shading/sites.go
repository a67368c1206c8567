package shading

import "github.com/taigrr/gleam/pkg/math3d"

// Triangle carries world-space vertex attributes for one face.
type Triangle struct {
	Positions [3]math3d.Vec3
	Normals   [3]math3d.Vec3
	Colors    [3]math3d.Vec3
	UVs       [3]math3d.Vec2
}

// Env is the per-draw shading environment shared by every triangle.
type Env struct {
	Eye      math3d.Vec3
	Material Material
	Lights   []Light
}

// Sampler is an optional texture channel. The sampled texel multiplies the
// reflected color.
type Sampler interface {
	SampleColor(u, v float64) math3d.Vec3
}

// TriangleShader returns the color of a fragment of one triangle. The
// evaluation site is fixed when the shader is built.
type TriangleShader struct {
	variant Variant
	tri     Triangle
	env     Env
	normal  math3d.Vec3    // Flat: face normal
	colors  [3]math3d.Vec3 // Gouraud: per-vertex results
}

// NewTriangleShader prepares a shader for tri at the evaluation site chosen
// by v. Unknown variants shade as Phong.
func NewTriangleShader(v Variant, tri Triangle, env Env) TriangleShader {
	s := TriangleShader{variant: v, tri: tri, env: env}
	switch v {
	case Flat:
		s.normal = FaceNormal(tri)
	case Gouraud:
		for i := range 3 {
			p := tri.Positions[i]
			view := env.Eye.Sub(p).Normalize()
			s.colors[i] = Evaluate(p, tri.Normals[i].Normalize(), view, env.Material, env.Lights, tri.Colors[i])
		}
	}
	return s
}

// Shade returns the color at perspective-correct barycentric coordinates bc.
func (s *TriangleShader) Shade(bc math3d.Vec3) math3d.Vec3 {
	t := &s.tri
	switch s.variant {
	case Gouraud:
		return math3d.Barycentric(s.colors[0], s.colors[1], s.colors[2], bc)
	case Flat:
		p := math3d.Barycentric(t.Positions[0], t.Positions[1], t.Positions[2], bc)
		base := math3d.Barycentric(t.Colors[0], t.Colors[1], t.Colors[2], bc)
		return Evaluate(p, s.normal, s.env.Eye.Sub(p).Normalize(), s.env.Material, s.env.Lights, base)
	default:
		p := math3d.Barycentric(t.Positions[0], t.Positions[1], t.Positions[2], bc)
		n := math3d.Barycentric(t.Normals[0], t.Normals[1], t.Normals[2], bc).Normalize()
		base := math3d.Barycentric(t.Colors[0], t.Colors[1], t.Colors[2], bc)
		return Evaluate(p, n, s.env.Eye.Sub(p).Normalize(), s.env.Material, s.env.Lights, base)
	}
}

// FaceNormal returns the unit geometric normal of tri, oriented to agree
// with the mean of its vertex normals when those are present.
func FaceNormal(tri Triangle) math3d.Vec3 {
	e1 := tri.Positions[1].Sub(tri.Positions[0])
	e2 := tri.Positions[2].Sub(tri.Positions[0])
	n := e1.Cross(e2).Normalize()
	avg := tri.Normals[0].Add(tri.Normals[1]).Add(tri.Normals[2])
	if n.Dot(avg) < 0 {
		n = n.Negate()
	}
	return n
}
