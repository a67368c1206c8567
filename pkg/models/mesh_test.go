package models

import (
	"math"
	"testing"

	"github.com/taigrr/gleam/pkg/math3d"
)

func TestPrimitives(t *testing.T) {
	color := math3d.V3(0.2, 0.4, 0.6)
	for _, name := range PrimitiveNames() {
		t.Run(name, func(t *testing.T) {
			m, err := Primitive(name, color)
			if err != nil {
				t.Fatalf("Primitive(%q): %v", name, err)
			}
			if !m.Complete() {
				t.Fatal("primitive mesh is incomplete")
			}
			for i, v := range m.Vertices {
				if v.Color != color {
					t.Fatalf("vertex %d color = %v", i, v.Color)
				}
				if math.Abs(v.Normal.Len()-1) > 1e-9 {
					t.Fatalf("vertex %d normal not unit: %v", i, v.Normal)
				}
			}
			size := m.Size()
			if size.X > 1+1e-9 || size.Z > 1+1e-9 {
				t.Errorf("primitive larger than unit: %v", size)
			}
		})
	}

	if _, err := Primitive("teapot", color); err == nil {
		t.Error("expected error for unknown primitive")
	}
}

// Triangles must wind counter-clockwise when seen from outside.
func TestCubeWindingMatchesNormals(t *testing.T) {
	m := Cube()
	if m.TriangleCount() != 12 {
		t.Fatalf("cube has %d triangles", m.TriangleCount())
	}
	for i, f := range m.Faces {
		v0, v1, v2 := m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]
		n := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
		if n.Dot(v0.Normal) <= 0 {
			t.Errorf("face %d winds against its normal", i)
		}
	}
}

func TestSphereWinding(t *testing.T) {
	m := Sphere(8, 6)
	for i, f := range m.Faces {
		v0, v1, v2 := m.Vertices[f.V[0]], m.Vertices[f.V[1]], m.Vertices[f.V[2]]
		n := v1.Position.Sub(v0.Position).Cross(v2.Position.Sub(v0.Position))
		centroid := v0.Position.Add(v1.Position).Add(v2.Position)
		if n.Dot(centroid) <= 0 {
			t.Errorf("face %d points inward", i)
		}
	}
}

func TestCalculateSmoothNormals(t *testing.T) {
	m := Cube()
	m.CalculateSmoothNormals()
	// Each cube vertex belongs to a single face, so smoothing keeps the face normal.
	for i, v := range m.Vertices {
		if math.Abs(v.Normal.Len()-1) > 1e-9 {
			t.Errorf("vertex %d normal length %v", i, v.Normal.Len())
		}
	}
	if m.Vertices[0].Normal != math3d.V3(1, 0, 0) {
		t.Errorf("first +X vertex normal = %v", m.Vertices[0].Normal)
	}
}

func TestCloneIsDeep(t *testing.T) {
	m := Plane()
	c := m.Clone()
	c.Vertices[0].Position = math3d.V3(9, 9, 9)
	c.Faces[0].V[0] = 3
	if m.Vertices[0].Position == c.Vertices[0].Position || m.Faces[0].V[0] == 3 {
		t.Error("clone shares storage with original")
	}
}

func TestBoundsAndCenter(t *testing.T) {
	m := Cube()
	if m.Center() != math3d.Zero3() {
		t.Errorf("Center = %v", m.Center())
	}
	if m.Size() != math3d.One3() {
		t.Errorf("Size = %v", m.Size())
	}
	lo, hi := m.GetBounds()
	if lo != math3d.V3(-0.5, -0.5, -0.5) || hi != math3d.V3(0.5, 0.5, 0.5) {
		t.Errorf("bounds = %v %v", lo, hi)
	}
}
