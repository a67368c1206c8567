package main

import (
	"path/filepath"
	"testing"

	uv "github.com/charmbracelet/ultraviolet"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/gleam/pkg/scene"
	"github.com/taigrr/gleam/pkg/shading"
	"github.com/taigrr/gleam/pkg/transform"
)

func newTestViewer(t *testing.T) *viewer {
	t.Helper()
	m, dir, err := loadManifest("")
	require.NoError(t, err)
	sc, err := scene.Build(m, dir, loaders())
	require.NoError(t, err)

	cam := newCamera(m.Camera)
	v, err := newViewer(sc, cam, m.Camera.Lens(), 30)
	require.NoError(t, err)
	return v
}

func press(t *testing.T, v *viewer, ev uv.KeyPressEvent) {
	t.Helper()
	b, key, ok := lookupBinding(ev)
	require.True(t, ok, "no binding for %v", ev)
	b.run(v, key)
}

func char(r rune) uv.KeyPressEvent {
	return uv.KeyPressEvent{Code: r, Text: string(r)}
}

func TestBuiltinScene(t *testing.T) {
	v := newTestViewer(t)
	assert.Equal(t, 3, v.sc.Len())
	assert.Equal(t, 1, v.panel.Selected())
	for _, obj := range v.sc.Objects() {
		assert.True(t, obj.Snapshot().Mesh.Complete(), obj.Name)
	}
}

func TestSampleScene(t *testing.T) {
	path := filepath.Join("..", "..", "assets", "scene.toml")
	m, dir, err := loadManifest(path)
	require.NoError(t, err)
	sc, err := scene.Build(m, dir, loaders())
	require.NoError(t, err)
	assert.Len(t, sc.ObjectsBySource(filepath.Join(dir, "models", "pyramid.json")), 1)
}

func TestBindingsEditSelectedObject(t *testing.T) {
	v := newTestViewer(t)
	obj := v.panel.Object()

	press(t, v, char('f'))
	assert.Equal(t, shading.Flat, obj.Snapshot().Variant)

	press(t, v, uv.KeyPressEvent{Code: uv.KeyRight})
	assert.InDelta(t, 0.5, obj.Snapshot().Transform.Translate.X, 1e-9)

	press(t, v, char('.'))
	assert.InDelta(t, 1.1, obj.Snapshot().Transform.Scale.Y, 1e-9)

	press(t, v, char('h'))
	assert.Equal(t, transform.ShearY, obj.Snapshot().Transform.Shear.Axis)

	press(t, v, char('k'))
	assert.InDelta(t, 0.1, obj.Snapshot().Transform.Shear.Factors[1], 1e-9)

	ka := obj.Snapshot().Material.Ka
	press(t, v, uv.KeyPressEvent{Code: 'a', Mod: uv.ModShift, Text: "A"})
	assert.InDelta(t, ka-0.05, obj.Snapshot().Material.Ka, 1e-9)

	press(t, v, char('x'))
	assert.Equal(t, 1.0, obj.Snapshot().Transform.Rotation.Axis.X)
	assert.Equal(t, 0.0, obj.Snapshot().Transform.Rotation.Axis.Y)
}

func TestBindingsSelect(t *testing.T) {
	v := newTestViewer(t)

	press(t, v, uv.KeyPressEvent{Code: uv.KeyTab})
	assert.Equal(t, 2, v.panel.Selected())
	press(t, v, uv.KeyPressEvent{Code: uv.KeyTab})
	assert.Equal(t, 0, v.panel.Selected())

	press(t, v, char('3'))
	assert.Equal(t, 2, v.panel.Selected())

	// Out of range: selection is unchanged.
	press(t, v, char('9'))
	assert.Equal(t, 2, v.panel.Selected())
}

func TestUnboundKey(t *testing.T) {
	_, _, ok := lookupBinding(char('q'))
	assert.False(t, ok)
}

func TestDolly(t *testing.T) {
	d := NewDolly(60, 8)
	assert.False(t, d.Update())

	d.Nudge(-100)
	assert.Equal(t, minDistance, d.Target)
	for range 600 {
		d.Update()
	}
	assert.InDelta(t, minDistance, d.Distance, 1e-3)

	d.Reset()
	assert.Equal(t, 8.0, d.Target)
	assert.Equal(t, maxDistance, NewDolly(60, 1000).Distance)
}
