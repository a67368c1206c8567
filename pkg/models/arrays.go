package models

import (
	"errors"
	"fmt"

	"github.com/taigrr/gleam/pkg/math3d"
)

// ErrShape is wrapped by a LoadError when attribute arrays are malformed.
var ErrShape = errors.New("malformed vertex arrays")

// LoadError reports a mesh that could not be loaded or parsed.
type LoadError struct {
	Name string
	Err  error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load mesh %q: %v", e.Name, e.Err)
}

func (e *LoadError) Unwrap() error {
	return e.Err
}

func shapeError(name, format string, args ...any) *LoadError {
	return &LoadError{Name: name, Err: fmt.Errorf("%w: "+format, append([]any{ErrShape}, args...)...)}
}

// FromArrays builds a triangle-list mesh from flattened attribute arrays.
// positions, normals and colors hold xyz triplets and must describe the same
// number of vertices, which must be a multiple of 3. uvs is optional and
// holds uv pairs for the same vertices.
func FromArrays(name string, positions, normals, colors, uvs []float64) (*Mesh, error) {
	switch {
	case len(positions) == 0:
		return nil, shapeError(name, "no positions")
	case len(positions)%3 != 0:
		return nil, shapeError(name, "positions length %d is not a multiple of 3", len(positions))
	case len(normals) != len(positions):
		return nil, shapeError(name, "normals length %d, want %d", len(normals), len(positions))
	case len(colors) != len(positions):
		return nil, shapeError(name, "colors length %d, want %d", len(colors), len(positions))
	}

	count := len(positions) / 3
	if count%3 != 0 {
		return nil, shapeError(name, "%d vertices do not form whole triangles", count)
	}
	if len(uvs) != 0 && len(uvs) != count*2 {
		return nil, shapeError(name, "uvs length %d, want %d", len(uvs), count*2)
	}

	mesh := NewMesh(name)
	mesh.Vertices = make([]MeshVertex, count)
	mesh.HasUVs = len(uvs) != 0
	for i := range count {
		j := i * 3
		v := MeshVertex{
			Position: math3d.V3(positions[j], positions[j+1], positions[j+2]),
			Normal:   math3d.V3(normals[j], normals[j+1], normals[j+2]),
			Color:    math3d.V3(colors[j], colors[j+1], colors[j+2]),
		}
		if mesh.HasUVs {
			v.UV = math3d.V2(uvs[i*2], uvs[i*2+1])
		}
		mesh.Vertices[i] = v
	}

	mesh.Faces = make([]Face, count/3)
	for i := range mesh.Faces {
		mesh.Faces[i] = Face{V: [3]int{i * 3, i*3 + 1, i*3 + 2}}
	}

	mesh.CalculateBounds()
	return mesh, nil
}
