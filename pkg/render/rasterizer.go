package render

import (
	"math"

	"github.com/taigrr/gleam/pkg/engine"
	"github.com/taigrr/gleam/pkg/math3d"
	"github.com/taigrr/gleam/pkg/shading"
)

// Rasterizer scan-converts meshes into a framebuffer with a depth buffer.
type Rasterizer struct {
	fb      *Framebuffer
	zbuffer []float64
	verts   []clipVertex

	// CullBackfaces skips triangles wound clockwise on screen. Meshes are
	// front-facing when counter-clockwise.
	CullBackfaces bool
	// FrustumCull skips meshes whose transformed bounds lie outside the
	// view volume.
	FrustumCull bool

	Stats CullingStats
}

// CullingStats counts work done since the last ResetStats.
type CullingStats struct {
	MeshesTested int
	MeshesCulled int
	MeshesDrawn  int
	Triangles    int
}

// clipVertex is one mesh vertex after the model and view-projection
// transforms.
type clipVertex struct {
	world  math3d.Vec3
	normal math3d.Vec3
	clip   math3d.Vec4
	sx, sy float64 // screen position
	z      float64 // NDC depth
}

// NewRasterizer creates a rasterizer drawing into fb.
func NewRasterizer(fb *Framebuffer) *Rasterizer {
	r := &Rasterizer{fb: fb, FrustumCull: true}
	r.Resize()
	return r
}

// Resize matches the depth buffer to the framebuffer size.
func (r *Rasterizer) Resize() {
	if r.fb == nil {
		r.zbuffer = nil
		return
	}
	r.zbuffer = make([]float64, r.fb.Width*r.fb.Height)
	r.ClearDepth()
}

// Width returns the framebuffer width.
func (r *Rasterizer) Width() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Width
}

// Height returns the framebuffer height.
func (r *Rasterizer) Height() int {
	if r.fb == nil {
		return 0
	}
	return r.fb.Height
}

// ClearDepth resets every depth sample to +Inf.
func (r *Rasterizer) ClearDepth() {
	n := len(r.zbuffer)
	if n == 0 {
		return
	}
	r.zbuffer[0] = math.Inf(1)
	for i := 1; i < n; i *= 2 {
		copy(r.zbuffer[i:], r.zbuffer[:i])
	}
}

// ResetStats zeroes the counters.
func (r *Rasterizer) ResetStats() {
	r.Stats = CullingStats{}
}

// DrawMesh rasterizes dc.Mesh with the shading variant of dc.Program.
// Lighting is computed in world space. It reports false when nothing was
// attempted because the mesh was incomplete or culled.
func (r *Rasterizer) DrawMesh(dc *engine.DrawCall) bool {
	mesh := dc.Mesh
	if dc.Program == nil || !mesh.Complete() || r.Width() == 0 || r.Height() == 0 {
		return false
	}
	viewProj := dc.Projection.Mul(dc.View)

	r.Stats.MeshesTested++
	if r.FrustumCull && mesh.BoundsMin != mesh.BoundsMax {
		box := NewAABB(mesh.BoundsMin, mesh.BoundsMax).Transform(dc.Model)
		if !NewFrustumFromMatrix(viewProj).IntersectAABB(box) {
			r.Stats.MeshesCulled++
			return false
		}
	}
	r.Stats.MeshesDrawn++

	w, h := float64(r.Width()), float64(r.Height())
	if cap(r.verts) < len(mesh.Vertices) {
		r.verts = make([]clipVertex, len(mesh.Vertices))
	}
	verts := r.verts[:len(mesh.Vertices)]
	for i, v := range mesh.Vertices {
		cv := &verts[i]
		cv.world = dc.Model.MulVec3(v.Position)
		cv.normal = dc.Normal.MulVec3(v.Normal).Normalize()
		cv.clip = viewProj.MulVec4(math3d.V4FromV3(cv.world, 1))
		if cv.clip.W > 0 {
			ndc := cv.clip.PerspectiveDivide()
			cv.sx = (ndc.X + 1) * 0.5 * w
			cv.sy = (1 - ndc.Y) * 0.5 * h
			cv.z = ndc.Z
		}
	}

	env := shading.Env{Eye: dc.Eye, Material: dc.Material, Lights: dc.Lights}
	variant := dc.Program.Variant()
	var tex shading.Sampler
	if mesh.HasUVs {
		tex = dc.Texture
	}

	for _, f := range mesh.Faces {
		a, b, c := &verts[f.V[0]], &verts[f.V[1]], &verts[f.V[2]]
		// No near-plane clipping: triangles reaching behind the eye are dropped.
		if a.clip.W <= 0 || b.clip.W <= 0 || c.clip.W <= 0 {
			continue
		}
		area := (b.sx-a.sx)*(c.sy-a.sy) - (b.sy-a.sy)*(c.sx-a.sx)
		if area == 0 || (r.CullBackfaces && area > 0) {
			continue
		}

		va, vb, vc := &mesh.Vertices[f.V[0]], &mesh.Vertices[f.V[1]], &mesh.Vertices[f.V[2]]
		tri := shading.Triangle{
			Positions: [3]math3d.Vec3{a.world, b.world, c.world},
			Normals:   [3]math3d.Vec3{a.normal, b.normal, c.normal},
			Colors:    [3]math3d.Vec3{va.Color, vb.Color, vc.Color},
			UVs:       [3]math3d.Vec2{va.UV, vb.UV, vc.UV},
		}
		shader := shading.NewTriangleShader(variant, tri, env)
		r.fillTriangle([3]*clipVertex{a, b, c}, &shader, &tri, tex)
		r.Stats.Triangles++
	}
	return true
}

func (r *Rasterizer) fillTriangle(v [3]*clipVertex, shader *shading.TriangleShader, tri *shading.Triangle, tex shading.Sampler) {
	minX := max(0, int(math.Floor(min3(v[0].sx, v[1].sx, v[2].sx))))
	maxX := min(r.Width()-1, int(math.Ceil(max3(v[0].sx, v[1].sx, v[2].sx))))
	minY := max(0, int(math.Floor(min3(v[0].sy, v[1].sy, v[2].sy))))
	maxY := min(r.Height()-1, int(math.Ceil(max3(v[0].sy, v[1].sy, v[2].sy))))

	invW := [3]float64{1 / v[0].clip.W, 1 / v[1].clip.W, 1 / v[2].clip.W}
	width := r.Width()

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			bc := barycentric(v[0].sx, v[0].sy, v[1].sx, v[1].sy, v[2].sx, v[2].sy, px, py)
			if bc.X < 0 || bc.Y < 0 || bc.Z < 0 {
				continue
			}

			// NDC depth is affine in screen space.
			z := bc.X*v[0].z + bc.Y*v[1].z + bc.Z*v[2].z
			idx := y*width + x
			if z < -1 || z > 1 || z >= r.zbuffer[idx] {
				continue
			}

			// Attributes are affine in clip space, so weight by 1/w.
			pbc := math3d.V3(bc.X*invW[0], bc.Y*invW[1], bc.Z*invW[2])
			pbc = pbc.Scale(1 / (pbc.X + pbc.Y + pbc.Z))

			col := shader.Shade(pbc)
			if tex != nil {
				uv := math3d.Barycentric2(tri.UVs[0], tri.UVs[1], tri.UVs[2], pbc)
				col = col.Mul(tex.SampleColor(uv.X, uv.Y))
			}
			r.zbuffer[idx] = z
			r.fb.Pixels[idx] = shading.ToRGBA(col)
		}
	}
}

// barycentric returns the weights of (px, py) relative to the screen-space
// triangle (x0,y0), (x1,y1), (x2,y2).
func barycentric(x0, y0, x1, y1, x2, y2, px, py float64) math3d.Vec3 {
	v0x, v0y := x2-x0, y2-y0
	v1x, v1y := x1-x0, y1-y0
	v2x, v2y := px-x0, py-y0

	dot00 := v0x*v0x + v0y*v0y
	dot01 := v0x*v1x + v0y*v1y
	dot02 := v0x*v2x + v0y*v2y
	dot11 := v1x*v1x + v1y*v1y
	dot12 := v1x*v2x + v1y*v2y

	invDenom := 1.0 / (dot00*dot11 - dot01*dot01)
	u := (dot11*dot02 - dot01*dot12) * invDenom
	v := (dot00*dot12 - dot01*dot02) * invDenom

	return math3d.V3(1-u-v, v, u)
}

func min3(a, b, c float64) float64 {
	return math.Min(a, math.Min(b, c))
}

func max3(a, b, c float64) float64 {
	return math.Max(a, math.Max(b, c))
}
