package models

import (
	"fmt"
	"math"
	"sort"

	"github.com/taigrr/gleam/pkg/math3d"
)

var primitives = map[string]func() *Mesh{
	"cube":   Cube,
	"plane":  Plane,
	"sphere": func() *Mesh { return Sphere(24, 16) },
}

// PrimitiveNames lists the names accepted by Primitive.
func PrimitiveNames() []string {
	names := make([]string, 0, len(primitives))
	for n := range primitives {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Primitive returns a generated unit-sized mesh by name, filled with color.
func Primitive(name string, color math3d.Vec3) (*Mesh, error) {
	gen, ok := primitives[name]
	if !ok {
		return nil, &LoadError{Name: name, Err: fmt.Errorf("unknown primitive (have %v)", PrimitiveNames())}
	}
	m := gen()
	m.Fill(color)
	return m, nil
}

// Cube returns an axis-aligned cube from -0.5 to 0.5 with per-face normals.
func Cube() *Mesh {
	m := NewMesh("cube")
	faces := []struct{ n, u, v math3d.Vec3 }{
		{math3d.V3(1, 0, 0), math3d.V3(0, 0, -1), math3d.V3(0, 1, 0)},
		{math3d.V3(-1, 0, 0), math3d.V3(0, 0, 1), math3d.V3(0, 1, 0)},
		{math3d.V3(0, 1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, -1)},
		{math3d.V3(0, -1, 0), math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)},
		{math3d.V3(0, 0, 1), math3d.V3(1, 0, 0), math3d.V3(0, 1, 0)},
		{math3d.V3(0, 0, -1), math3d.V3(-1, 0, 0), math3d.V3(0, 1, 0)},
	}
	for _, f := range faces {
		quad(m, f.n.Scale(0.5), f.u.Scale(0.5), f.v.Scale(0.5), f.n)
	}
	m.HasUVs = true
	m.CalculateBounds()
	return m
}

// Plane returns a unit square in the XZ plane facing +Y.
func Plane() *Mesh {
	m := NewMesh("plane")
	quad(m, math3d.Zero3(), math3d.V3(0.5, 0, 0), math3d.V3(0, 0, -0.5), math3d.Up())
	m.HasUVs = true
	m.CalculateBounds()
	return m
}

// quad appends two counter-clockwise triangles spanning center±u±v.
func quad(m *Mesh, center, u, v, n math3d.Vec3) {
	base := len(m.Vertices)
	corners := [4]struct {
		su, sv float64
	}{{-1, -1}, {1, -1}, {1, 1}, {-1, 1}}
	for _, c := range corners {
		m.Vertices = append(m.Vertices, MeshVertex{
			Position: center.Add(u.Scale(c.su)).Add(v.Scale(c.sv)),
			Normal:   n,
			UV:       math3d.V2((c.su+1)/2, (c.sv+1)/2),
		})
	}
	m.Faces = append(m.Faces,
		Face{V: [3]int{base, base + 1, base + 2}},
		Face{V: [3]int{base, base + 2, base + 3}},
	)
}

// Sphere returns a UV sphere of radius 0.5.
func Sphere(segments, rings int) *Mesh {
	m := NewMesh("sphere")
	segments = max(segments, 3)
	rings = max(rings, 2)

	for r := 0; r <= rings; r++ {
		phi := math.Pi * float64(r) / float64(rings)
		for s := 0; s <= segments; s++ {
			theta := 2 * math.Pi * float64(s) / float64(segments)
			n := math3d.V3(math.Sin(phi)*math.Cos(theta), math.Cos(phi), -math.Sin(phi)*math.Sin(theta))
			m.Vertices = append(m.Vertices, MeshVertex{
				Position: n.Scale(0.5),
				Normal:   n,
				UV:       math3d.V2(float64(s)/float64(segments), float64(r)/float64(rings)),
			})
		}
	}

	row := segments + 1
	for r := range rings {
		for s := range segments {
			a := r*row + s
			b := a + row
			if r != 0 {
				m.Faces = append(m.Faces, Face{V: [3]int{a, b, a + 1}})
			}
			if r != rings-1 {
				m.Faces = append(m.Faces, Face{V: [3]int{a + 1, b, b + 1}})
			}
		}
	}
	m.HasUVs = true
	m.CalculateBounds()
	return m
}
