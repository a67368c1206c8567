package models

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// jsonModel is the flattened triangle-list model format.
type jsonModel struct {
	Positions []float64 `json:"vertexPositions"`
	Normals   []float64 `json:"vertexNormals"`
	Colors    []float64 `json:"vertexFrontcolors"`
	UVs       []float64 `json:"vertexTextureCoords"`
}

// LoadJSON loads a model file holding vertexPositions, vertexNormals,
// vertexFrontcolors and optionally vertexTextureCoords.
func LoadJSON(path string) (*Mesh, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, &LoadError{Name: path, Err: err}
	}
	defer f.Close()

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return DecodeJSON(name, f)
}

// DecodeJSON reads a JSON model from r.
func DecodeJSON(name string, r io.Reader) (*Mesh, error) {
	var m jsonModel
	if err := json.NewDecoder(r).Decode(&m); err != nil {
		return nil, &LoadError{Name: name, Err: err}
	}
	return FromArrays(name, m.Positions, m.Normals, m.Colors, m.UVs)
}
