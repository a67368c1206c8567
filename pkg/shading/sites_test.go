package shading

import (
	"testing"

	"github.com/taigrr/gleam/pkg/math3d"
)

// planar returns a triangle in the plane z = -4 with uniform normals.
func planar() Triangle {
	n := math3d.V3(0, 0, 1)
	c := math3d.V3(0.2, 0.6, 0.9)
	return Triangle{
		Positions: [3]math3d.Vec3{{X: -1, Y: -1, Z: -4}, {X: 1, Y: -1, Z: -4}, {X: 0, Y: 1, Z: -4}},
		Normals:   [3]math3d.Vec3{n, n, n},
		Colors:    [3]math3d.Vec3{c, c, c},
	}
}

var samples = []math3d.Vec3{
	{X: 1, Y: 0, Z: 0},
	{X: 0, Y: 1, Z: 0},
	{X: 0, Y: 0, Z: 1},
	{X: 1.0 / 3, Y: 1.0 / 3, Z: 1.0 / 3},
	{X: 0.5, Y: 0.25, Z: 0.25},
	{X: 0.1, Y: 0.1, Z: 0.8},
}

func TestVariantsAgreeOnPlanarFace(t *testing.T) {
	tri := planar()
	env := Env{
		Eye:      math3d.Zero3(),
		Material: Material{Ka: 0.1, Kd: 0.6, Ks: 0.4, Shininess: 16},
		Lights: []Light{
			{Position: math3d.V3(2, 3, 2), Color: math3d.V3(1, 1, 1)},
			{Position: math3d.V3(-3, 0, 1), Color: math3d.V3(0.2, 0.4, 1)},
		},
	}

	flat := NewTriangleShader(Flat, tri, env)
	gouraud := NewTriangleShader(Gouraud, tri, env)
	phong := NewTriangleShader(Phong, tri, env)

	for _, bc := range samples {
		f, p := flat.Shade(bc), phong.Shade(bc)
		if !f.ApproxEqual(p, tol) {
			t.Errorf("bc %v: flat %v != phong %v", bc, f, p)
		}
	}

	// At the vertices every site evaluates the same inputs.
	for _, bc := range samples[:3] {
		g, p := gouraud.Shade(bc), phong.Shade(bc)
		if !g.ApproxEqual(p, tol) {
			t.Errorf("vertex %v: gouraud %v != phong %v", bc, g, p)
		}
	}
}

func TestVariantsAgreeWhenOnlyAmbientContributes(t *testing.T) {
	tri := planar()
	// The light sits behind the face, so the result is linear in the inputs
	// and interpolation is exact everywhere.
	env := Env{
		Material: Material{Ka: 0.7, Kd: 1, Ks: 1, Shininess: 4},
		Lights:   []Light{{Position: math3d.V3(0, 0, -50), Color: math3d.V3(1, 1, 1)}},
	}
	tri.Colors[1] = math3d.V3(1, 0, 0)

	phong := NewTriangleShader(Phong, tri, env)
	for _, v := range Variants() {
		s := NewTriangleShader(v, tri, env)
		for _, bc := range samples {
			want := phong.Shade(bc)
			if got := s.Shade(bc); !got.ApproxEqual(want, tol) {
				t.Errorf("%v at %v = %v, want %v", v, bc, got, want)
			}
		}
	}
}

func TestGouraudInterpolatesVertexColors(t *testing.T) {
	tri := planar()
	tri.Normals[1] = math3d.V3(1, 0, 1)
	tri.Normals[2] = math3d.V3(0, 1, 1)
	env := Env{
		Material: DefaultMaterial(),
		Lights:   []Light{{Position: math3d.V3(0, 5, 0), Color: math3d.V3(1, 1, 1)}},
	}
	s := NewTriangleShader(Gouraud, tri, env)

	var at [3]math3d.Vec3
	for i := range 3 {
		p := tri.Positions[i]
		at[i] = Evaluate(p, tri.Normals[i].Normalize(), env.Eye.Sub(p).Normalize(), env.Material, env.Lights, tri.Colors[i])
		bc := math3d.Zero3().WithComponent(i, 1)
		if got := s.Shade(bc); !got.ApproxEqual(at[i], tol) {
			t.Errorf("vertex %d: %v, want %v", i, got, at[i])
		}
	}

	mid := math3d.V3(0.5, 0.5, 0)
	want := at[0].Add(at[1]).Scale(0.5)
	if got := s.Shade(mid); !got.ApproxEqual(want, tol) {
		t.Errorf("edge midpoint = %v, want %v", got, want)
	}
}

func TestFaceNormalOrientation(t *testing.T) {
	tri := planar()
	if n := FaceNormal(tri); !n.ApproxEqual(math3d.V3(0, 0, 1), tol) {
		t.Errorf("FaceNormal = %v", n)
	}
	// Reversed winding still agrees with the vertex normals.
	tri.Positions[1], tri.Positions[2] = tri.Positions[2], tri.Positions[1]
	if n := FaceNormal(tri); !n.ApproxEqual(math3d.V3(0, 0, 1), tol) {
		t.Errorf("FaceNormal after winding swap = %v", n)
	}
}

type checker struct{}

func (checker) SampleColor(u, v float64) math3d.Vec3 {
	if u < 0.5 {
		return math3d.V3(1, 1, 1)
	}
	return math3d.V3(0.5, 0.5, 0.5)
}

func TestSamplerInterface(t *testing.T) {
	var s Sampler = checker{}
	if s.SampleColor(0.9, 0).X != 0.5 {
		t.Error("unexpected sample")
	}
}

func BenchmarkPhongShade(b *testing.B) {
	env := Env{
		Material: DefaultMaterial(),
		Lights: []Light{
			{Position: math3d.V3(2, 3, 2), Color: math3d.V3(1, 1, 1)},
			{Position: math3d.V3(-3, 0, 1), Color: math3d.V3(1, 0, 0)},
			{Position: math3d.V3(0, -3, 1), Color: math3d.V3(0, 0, 1)},
		},
	}
	s := NewTriangleShader(Phong, planar(), env)
	bc := math3d.V3(0.3, 0.3, 0.4)
	for b.Loop() {
		_ = s.Shade(bc)
	}
}
