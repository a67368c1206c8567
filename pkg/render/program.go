package render

import (
	"fmt"

	"github.com/taigrr/gleam/pkg/engine"
	"github.com/taigrr/gleam/pkg/math3d"
	"github.com/taigrr/gleam/pkg/shading"
)

// CompileError reports a shading program that could not be built.
type CompileError struct {
	Variant shading.Variant
	Reason  string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("compile %s: %s", e.Variant, e.Reason)
}

// program is the software rasterizer's compiled form of a variant.
type program struct {
	variant shading.Variant
}

func (p *program) Variant() shading.Variant { return p.variant }

// Software is an engine.Backend that rasterizes on the CPU.
type Software struct {
	fb   *Framebuffer
	rast *Rasterizer
}

var _ engine.Backend = (*Software)(nil)

// NewSoftware creates a backend drawing into fb.
func NewSoftware(fb *Framebuffer) *Software {
	return &Software{fb: fb, rast: NewRasterizer(fb)}
}

// Compile returns the program for v. Only the declared variants compile.
func (s *Software) Compile(v shading.Variant) (engine.Program, error) {
	if !v.Valid() {
		return nil, &CompileError{Variant: v, Reason: "no such shading variant"}
	}
	return &program{variant: v}, nil
}

// Viewport returns the framebuffer size.
func (s *Software) Viewport() (int, int) {
	return s.fb.Width, s.fb.Height
}

// Clear fills the framebuffer with bg and resets depth and stats.
func (s *Software) Clear(bg math3d.Vec3) {
	s.fb.Clear(shading.ToRGBA(bg))
	s.rast.ClearDepth()
	s.rast.ResetStats()
}

// Draw rasterizes one object. Programs compiled by another backend are
// ignored.
func (s *Software) Draw(dc *engine.DrawCall) {
	if _, ok := dc.Program.(*program); !ok {
		return
	}
	s.rast.DrawMesh(dc)
}

// Resize changes the framebuffer and depth buffer size.
func (s *Software) Resize(width, height int) {
	s.fb.Resize(width, height)
	s.rast.Resize()
}

// Framebuffer returns the color target.
func (s *Software) Framebuffer() *Framebuffer {
	return s.fb
}

// Rasterizer exposes the rasterizer for culling options and stats.
func (s *Software) Rasterizer() *Rasterizer {
	return s.rast
}
