package render

import (
	"errors"
	"image/color"
	"math"
	"testing"

	"github.com/taigrr/gleam/pkg/engine"
	"github.com/taigrr/gleam/pkg/math3d"
	"github.com/taigrr/gleam/pkg/models"
	"github.com/taigrr/gleam/pkg/shading"
	"github.com/taigrr/gleam/pkg/transform"
)

const testSize = 40

var ambientOnly = shading.Material{Ka: 1, Shininess: 32}

// drawCall places mesh at z in front of a camera at the origin.
func drawCall(t *testing.T, s *Software, v shading.Variant, mesh *models.Mesh, z float64) *engine.DrawCall {
	t.Helper()
	prog, err := s.Compile(v)
	if err != nil {
		t.Fatalf("Compile(%s): %v", v, err)
	}
	model := math3d.Translate(math3d.V3(0, 0, z))
	cam := NewCamera()
	return &engine.DrawCall{
		Program:    prog,
		Mesh:       mesh,
		Model:      model,
		Normal:     transform.NormalMatrix(model),
		View:       cam.View(),
		Projection: transform.DefaultLens().Projection(1),
		Eye:        cam.Eye(),
		Material:   ambientOnly,
	}
}

func cube(t *testing.T, c math3d.Vec3) *models.Mesh {
	t.Helper()
	m, err := models.Primitive("cube", c)
	if err != nil {
		t.Fatal(err)
	}
	return m
}

func center(fb *Framebuffer) color.RGBA {
	return fb.GetPixel(fb.Width/2, fb.Height/2)
}

func TestBarycentric(t *testing.T) {
	tests := []struct {
		name   string
		px, py float64
		want   math3d.Vec3
	}{
		{"vertex 0", 0, 0, math3d.V3(1, 0, 0)},
		{"vertex 1", 1, 0, math3d.V3(0, 1, 0)},
		{"vertex 2", 0, 1, math3d.V3(0, 0, 1)},
		{"centroid", 1.0 / 3, 1.0 / 3, math3d.V3(1.0/3, 1.0/3, 1.0/3)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			bc := barycentric(0, 0, 1, 0, 0, 1, tc.px, tc.py)
			if !bc.ApproxEqual(tc.want, 1e-9) {
				t.Errorf("barycentric(%v, %v) = %v, want %v", tc.px, tc.py, bc, tc.want)
			}
		})
	}

	bc := barycentric(0, 0, 1, 0, 0, 1, -1, -1)
	if bc.X >= 0 && bc.Y >= 0 && bc.Z >= 0 {
		t.Error("point outside triangle should have a negative weight")
	}
}

func TestAmbientOnlyMatchesBaseColor(t *testing.T) {
	base := math3d.V3(0.8, 0.4, 0.2)
	want := color.RGBA{204, 102, 51, 255}
	bg := math3d.V3(0, 0.2, 0.2)

	for _, v := range shading.Variants() {
		t.Run(v.String(), func(t *testing.T) {
			s := NewSoftware(NewFramebuffer(testSize, testSize))
			s.Clear(bg)
			s.Draw(drawCall(t, s, v, cube(t, base), -3))

			if got := center(s.Framebuffer()); got != want {
				t.Errorf("center = %v, want %v", got, want)
			}
			if got := s.Framebuffer().GetPixel(0, 0); got != shading.ToRGBA(bg) {
				t.Errorf("corner = %v, want background", got)
			}
		})
	}
}

func TestDepthTest(t *testing.T) {
	red, blue := math3d.V3(1, 0, 0), math3d.V3(0, 0, 1)
	orders := map[string][2]float64{
		"far first":  {-6, -3},
		"near first": {-3, -6},
	}
	for name, zs := range orders {
		t.Run(name, func(t *testing.T) {
			s := NewSoftware(NewFramebuffer(testSize, testSize))
			s.Clear(math3d.Zero3())
			for _, z := range zs {
				c := blue
				if z == -3 {
					c = red
				}
				s.Draw(drawCall(t, s, shading.Phong, cube(t, c), z))
			}
			if got := center(s.Framebuffer()); got != (color.RGBA{255, 0, 0, 255}) {
				t.Errorf("center = %v, want the nearer red cube", got)
			}
		})
	}
}

func TestBackfaceCulling(t *testing.T) {
	n := []float64{0, 0, 1, 0, 0, 1, 0, 0, 1}
	white := []float64{1, 1, 1, 1, 1, 1, 1, 1, 1}
	ccw := []float64{-1, -1, 0, 1, -1, 0, 0, 1, 0}
	cw := []float64{-1, -1, 0, 0, 1, 0, 1, -1, 0}

	tests := []struct {
		name      string
		positions []float64
		cull      bool
		drawn     bool
	}{
		{"front facing", ccw, true, true},
		{"back facing culled", cw, true, false},
		{"back facing kept", cw, false, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			mesh, err := models.FromArrays("tri", tc.positions, n, white, nil)
			if err != nil {
				t.Fatal(err)
			}
			s := NewSoftware(NewFramebuffer(testSize, testSize))
			s.Rasterizer().CullBackfaces = tc.cull
			s.Clear(math3d.Zero3())
			s.Draw(drawCall(t, s, shading.Flat, mesh, -4))

			drawn := center(s.Framebuffer()) != color.RGBA{0, 0, 0, 255}
			if drawn != tc.drawn {
				t.Errorf("drawn = %v, want %v", drawn, tc.drawn)
			}
		})
	}
}

func TestFrustumCullingStats(t *testing.T) {
	s := NewSoftware(NewFramebuffer(testSize, testSize))
	s.Clear(math3d.Zero3())
	s.Draw(drawCall(t, s, shading.Phong, cube(t, math3d.One3()), 5))
	s.Draw(drawCall(t, s, shading.Phong, cube(t, math3d.One3()), -3))

	st := s.Rasterizer().Stats
	if st.MeshesTested != 2 || st.MeshesCulled != 1 || st.MeshesDrawn != 1 {
		t.Errorf("stats = %+v, want 2 tested, 1 culled, 1 drawn", st)
	}
	if st.Triangles == 0 {
		t.Error("no triangles rasterized for the visible cube")
	}

	s.Clear(math3d.Zero3())
	if s.Rasterizer().Stats != (CullingStats{}) {
		t.Error("Clear should reset stats")
	}
}

func TestBehindCameraNotDrawn(t *testing.T) {
	s := NewSoftware(NewFramebuffer(testSize, testSize))
	s.Rasterizer().FrustumCull = false
	s.Clear(math3d.Zero3())
	s.Draw(drawCall(t, s, shading.Phong, cube(t, math3d.One3()), 3))
	for i, p := range s.Framebuffer().Pixels {
		if p != (color.RGBA{0, 0, 0, 255}) {
			t.Fatalf("pixel %d = %v, want untouched", i, p)
		}
	}
}

func TestTextureMultipliesColor(t *testing.T) {
	tex := NewTexture(1, 1)
	tex.SetPixel(0, 0, color.RGBA{255, 0, 0, 255})

	s := NewSoftware(NewFramebuffer(testSize, testSize))
	s.Clear(math3d.Zero3())
	dc := drawCall(t, s, shading.Phong, cube(t, math3d.V3(0.8, 0.8, 0.8)), -3)
	dc.Texture = tex
	s.Draw(dc)

	if got := center(s.Framebuffer()); got != (color.RGBA{204, 0, 0, 255}) {
		t.Errorf("center = %v, want base color times texel", got)
	}
}

func TestLightingBrightensLitSide(t *testing.T) {
	s := NewSoftware(NewFramebuffer(testSize, testSize))
	s.Clear(math3d.Zero3())
	dc := drawCall(t, s, shading.Phong, cube(t, math3d.One3()), -3)
	dc.Material = shading.Material{Ka: 0.2, Kd: 0.8, Shininess: 32}
	dc.Lights = []shading.Light{{Position: math3d.V3(0, 0, 5), Color: math3d.One3()}}
	s.Draw(dc)

	got := center(s.Framebuffer())
	if got.R <= 51 || got.R != got.G || got.G != got.B {
		t.Errorf("center = %v, want grey brighter than ambient", got)
	}
}

func TestCompileRejectsUnknownVariant(t *testing.T) {
	s := NewSoftware(NewFramebuffer(1, 1))
	_, err := s.Compile(shading.Variant(42))
	var ce *CompileError
	if !errors.As(err, &ce) {
		t.Fatalf("err = %v, want *CompileError", err)
	}
	if ce.Variant != shading.Variant(42) {
		t.Errorf("Variant = %v", ce.Variant)
	}
}

func TestSoftwareResize(t *testing.T) {
	s := NewSoftware(NewFramebuffer(4, 4))
	s.Resize(8, 6)
	if w, h := s.Viewport(); w != 8 || h != 6 {
		t.Errorf("Viewport = %dx%d, want 8x6", w, h)
	}
	if len(s.Rasterizer().zbuffer) != 48 {
		t.Errorf("zbuffer len = %d", len(s.Rasterizer().zbuffer))
	}
	for _, z := range s.Rasterizer().zbuffer {
		if !math.IsInf(z, 1) {
			t.Fatal("zbuffer not cleared after resize")
		}
	}
}

func BenchmarkDrawSphere(b *testing.B) {
	mesh, _ := models.Primitive("sphere", math3d.One3())
	s := NewSoftware(NewFramebuffer(160, 90))
	prog, _ := s.Compile(shading.Phong)
	model := math3d.Translate(math3d.V3(0, 0, -2))
	dc := &engine.DrawCall{
		Program:    prog,
		Mesh:       mesh,
		Model:      model,
		Normal:     transform.NormalMatrix(model),
		View:       math3d.Identity(),
		Projection: transform.DefaultLens().Projection(16.0 / 9.0),
		Material:   shading.DefaultMaterial(),
		Lights:     []shading.Light{{Position: math3d.V3(0, 5, 0), Color: math3d.One3()}},
	}
	for b.Loop() {
		s.Clear(math3d.Zero3())
		s.Draw(dc)
	}
}
