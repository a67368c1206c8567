package models

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestLoadGLTFInvalidPath(t *testing.T) {
	_, err := LoadGLTF("/nonexistent/path.glb")
	if err == nil {
		t.Fatal("Expected error for nonexistent file")
	}
	var le *LoadError
	if !errors.As(err, &le) {
		t.Errorf("expected *LoadError, got %T", err)
	}
}

func TestGLTFLoaderCreation(t *testing.T) {
	loader := NewGLTFLoader()
	if loader == nil {
		t.Fatal("NewGLTFLoader returned nil")
	}
	if !loader.SmoothNormals {
		t.Error("SmoothNormals should default to true")
	}
	if loader.DefaultColor.Len() == 0 {
		t.Error("DefaultColor should not be black")
	}
}

func TestLoadGLTFGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.glb")
	if err := os.WriteFile(path, []byte("not a gltf file"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for corrupt glb")
	}
}

func TestLoadUnsupportedExtension(t *testing.T) {
	_, err := Load("teapot.obj")
	var le *LoadError
	if !errors.As(err, &le) {
		t.Fatalf("expected *LoadError, got %v", err)
	}
	if le.Name != "teapot.obj" {
		t.Errorf("Name = %q", le.Name)
	}
}
