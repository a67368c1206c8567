package models

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"math"
	"os"
	"path/filepath"

	"github.com/qmuntal/gltf"
	"github.com/taigrr/gleam/pkg/math3d"
)

// GLTFLoader loads GLTF/GLB files into Mesh format.
type GLTFLoader struct {
	// SmoothNormals generates averaged normals when the file has none.
	SmoothNormals bool
	// DefaultColor is used when a primitive has neither COLOR_0 nor a
	// material base color.
	DefaultColor math3d.Vec3
}

// NewGLTFLoader creates a new GLTF loader with default options.
func NewGLTFLoader() *GLTFLoader {
	return &GLTFLoader{
		SmoothNormals: true,
		DefaultColor:  math3d.V3(0.8, 0.8, 0.8),
	}
}

// LoadGLTF loads a .gltf or .glb file with the default loader.
func LoadGLTF(path string) (*Mesh, error) {
	return NewGLTFLoader().Load(path)
}

// Load loads a GLTF or GLB file and returns a Mesh. The first embedded or
// referenced image, if any, becomes Mesh.Image.
func (l *GLTFLoader) Load(path string) (*Mesh, error) {
	doc, err := gltf.Open(path)
	if err != nil {
		return nil, &LoadError{Name: path, Err: fmt.Errorf("open gltf: %w", err)}
	}

	mesh := NewMesh(filepath.Base(path))
	for _, m := range doc.Meshes {
		if err := l.processMesh(doc, m, mesh); err != nil {
			return nil, &LoadError{Name: path, Err: fmt.Errorf("process mesh %q: %w", m.Name, err)}
		}
	}
	if len(mesh.Faces) == 0 {
		return nil, &LoadError{Name: path, Err: fmt.Errorf("%w: no triangles", ErrShape)}
	}

	if l.SmoothNormals && !mesh.hasNormals() {
		mesh.CalculateSmoothNormals()
	}
	mesh.CalculateBounds()
	mesh.Image = embeddedImage(doc, filepath.Dir(path))

	return mesh, nil
}

// processMesh extracts geometry from a GLTF mesh.
func (l *GLTFLoader) processMesh(doc *gltf.Document, m *gltf.Mesh, mesh *Mesh) error {
	for _, prim := range m.Primitives {
		if prim.Mode != gltf.PrimitiveTriangles && prim.Mode != 0 {
			// Skip non-triangle primitives (lines, points, etc)
			continue
		}

		posIdx, ok := prim.Attributes[gltf.POSITION]
		if !ok {
			continue
		}
		positions, err := readVec3(doc, posIdx)
		if err != nil {
			return fmt.Errorf("read positions: %w", err)
		}

		var normals []math3d.Vec3
		if idx, ok := prim.Attributes[gltf.NORMAL]; ok {
			if normals, err = readVec3(doc, idx); err != nil {
				return fmt.Errorf("read normals: %w", err)
			}
		}

		var colors []math3d.Vec3
		if idx, ok := prim.Attributes[gltf.COLOR_0]; ok {
			if colors, err = readVec3(doc, idx); err != nil {
				return fmt.Errorf("read colors: %w", err)
			}
		}
		fill := l.baseColor(doc, prim)

		var uvs []float64
		if idx, ok := prim.Attributes[gltf.TEXCOORD_0]; ok {
			if uvs, _, err = readAccessor(doc, idx); err != nil {
				return fmt.Errorf("read uvs: %w", err)
			}
			mesh.HasUVs = true
		}

		baseVertex := len(mesh.Vertices)
		for i, p := range positions {
			v := MeshVertex{Position: p, Color: fill}
			if i < len(normals) {
				v.Normal = normals[i]
			}
			if i < len(colors) {
				v.Color = colors[i]
			}
			if 2*i+1 < len(uvs) {
				// GLTF puts V=0 at the top of the image
				v.UV = math3d.V2(uvs[2*i], 1-uvs[2*i+1])
			}
			mesh.Vertices = append(mesh.Vertices, v)
		}

		var indices []int
		if prim.Indices != nil {
			raw, _, err := readAccessor(doc, *prim.Indices)
			if err != nil {
				return fmt.Errorf("read indices: %w", err)
			}
			indices = make([]int, len(raw))
			for i, x := range raw {
				indices[i] = int(x)
			}
		} else {
			indices = make([]int, len(positions))
			for i := range indices {
				indices[i] = i
			}
		}

		for i := 0; i+2 < len(indices); i += 3 {
			mesh.Faces = append(mesh.Faces, Face{V: [3]int{
				baseVertex + indices[i],
				baseVertex + indices[i+1],
				baseVertex + indices[i+2],
			}})
		}
	}
	return nil
}

func (l *GLTFLoader) baseColor(doc *gltf.Document, prim *gltf.Primitive) math3d.Vec3 {
	if prim.Material == nil || *prim.Material >= len(doc.Materials) {
		return l.DefaultColor
	}
	pbr := doc.Materials[*prim.Material].PBRMetallicRoughness
	if pbr == nil || pbr.BaseColorFactor == nil {
		return l.DefaultColor
	}
	f := pbr.BaseColorFactor
	return math3d.V3(f[0], f[1], f[2])
}

// readVec3 reads a VEC3 or VEC4 accessor, dropping the fourth component.
func readVec3(doc *gltf.Document, accessorIdx int) ([]math3d.Vec3, error) {
	data, comps, err := readAccessor(doc, accessorIdx)
	if err != nil {
		return nil, err
	}
	if comps < 3 {
		return nil, fmt.Errorf("expected VEC3 or VEC4, got %d components", comps)
	}
	result := make([]math3d.Vec3, len(data)/comps)
	for i := range result {
		j := i * comps
		result[i] = math3d.V3(data[j], data[j+1], data[j+2])
	}
	return result, nil
}

func componentCount(t gltf.AccessorType) int {
	switch t {
	case gltf.AccessorScalar:
		return 1
	case gltf.AccessorVec2:
		return 2
	case gltf.AccessorVec3:
		return 3
	case gltf.AccessorVec4:
		return 4
	}
	return 0
}

// readAccessor returns the accessor's elements flattened to float64, along
// with the number of components per element. Normalized integer
// components are mapped to [0,1].
func readAccessor(doc *gltf.Document, accessorIdx int) ([]float64, int, error) {
	if accessorIdx < 0 || accessorIdx >= len(doc.Accessors) {
		return nil, 0, fmt.Errorf("accessor %d out of range", accessorIdx)
	}
	accessor := doc.Accessors[accessorIdx]
	if accessor.BufferView == nil {
		return nil, 0, fmt.Errorf("accessor has no buffer view")
	}
	comps := componentCount(accessor.Type)
	if comps == 0 {
		return nil, 0, fmt.Errorf("unsupported accessor type: %v", accessor.Type)
	}

	bufferView := doc.BufferViews[*accessor.BufferView]
	bufData := doc.Buffers[bufferView.Buffer].Data
	if bufData == nil {
		return nil, 0, fmt.Errorf("buffer has no data")
	}

	var size int
	var norm float64
	switch accessor.ComponentType {
	case gltf.ComponentFloat:
		size = 4
	case gltf.ComponentUbyte:
		size, norm = 1, math.MaxUint8
	case gltf.ComponentUshort:
		size, norm = 2, math.MaxUint16
	case gltf.ComponentUint:
		size, norm = 4, math.MaxUint32
	default:
		return nil, 0, fmt.Errorf("unsupported component type: %v", accessor.ComponentType)
	}

	start := bufferView.ByteOffset + accessor.ByteOffset
	stride := bufferView.ByteStride
	if stride == 0 {
		stride = size * comps
	}
	last := start + (accessor.Count-1)*stride + size*comps
	if accessor.Count > 0 && last > len(bufData) {
		return nil, 0, fmt.Errorf("accessor reads past end of buffer (%d > %d)", last, len(bufData))
	}

	le := binary.LittleEndian
	result := make([]float64, 0, accessor.Count*comps)
	for i := range accessor.Count {
		offset := start + i*stride
		for j := range comps {
			b := bufData[offset+j*size:]
			var x float64
			switch accessor.ComponentType {
			case gltf.ComponentFloat:
				x = float64(math.Float32frombits(le.Uint32(b)))
			case gltf.ComponentUbyte:
				x = float64(b[0])
			case gltf.ComponentUshort:
				x = float64(le.Uint16(b))
			case gltf.ComponentUint:
				x = float64(le.Uint32(b))
			}
			if accessor.Normalized {
				x /= norm
			}
			result = append(result, x)
		}
	}
	return result, comps, nil
}

// embeddedImage decodes the first usable image of doc. Images stored in
// buffer views are read directly; URIs are resolved relative to dir.
func embeddedImage(doc *gltf.Document, dir string) image.Image {
	for _, img := range doc.Images {
		var data []byte
		if img.BufferView != nil {
			bv := doc.BufferViews[*img.BufferView]
			buf := doc.Buffers[bv.Buffer]
			if buf.Data != nil {
				data = buf.Data[bv.ByteOffset : bv.ByteOffset+bv.ByteLength]
			}
		} else if img.URI != "" {
			data, _ = os.ReadFile(filepath.Join(dir, img.URI))
		}
		if len(data) == 0 {
			continue
		}
		if decoded, _, err := image.Decode(bytes.NewReader(data)); err == nil {
			return decoded
		}
	}
	return nil
}
