package models

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Load reads a mesh file, choosing the decoder by extension.
func Load(path string) (*Mesh, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".json":
		return LoadJSON(path)
	case ".glb", ".gltf":
		return LoadGLTF(path)
	default:
		return nil, &LoadError{Name: path, Err: fmt.Errorf("unsupported format %q (use .json, .glb or .gltf)", ext)}
	}
}
