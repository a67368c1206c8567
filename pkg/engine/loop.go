package engine

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/taigrr/gleam/pkg/core"
	"github.com/taigrr/gleam/pkg/math3d"
	"github.com/taigrr/gleam/pkg/scene"
	"github.com/taigrr/gleam/pkg/shading"
	"github.com/taigrr/gleam/pkg/transform"
)

// Loop draws a scene once per Tick and advances object rotation.
type Loop struct {
	scene    *scene.Scene
	backend  Backend
	camera   Camera
	lens     transform.Lens
	programs [3]Program

	lights  []shading.Light
	call    DrawCall
	skipped map[uuid.UUID]bool
	frames  uint64
}

// NewLoop compiles one program per shading variant. The first compile
// failure is returned as-is; no variant falls back to another.
func NewLoop(sc *scene.Scene, b Backend, cam Camera, lens transform.Lens) (*Loop, error) {
	l := &Loop{
		scene:   sc,
		backend: b,
		camera:  cam,
		lens:    lens,
		lights:  make([]shading.Light, 0, sc.NumLights()),
		skipped: make(map[uuid.UUID]bool),
	}
	for _, v := range shading.Variants() {
		p, err := b.Compile(v)
		if err != nil {
			return nil, fmt.Errorf("compile %s program: %w", v, err)
		}
		l.programs[v] = p
	}
	core.LogDebug("compiled %d shading programs", len(l.programs))
	return l, nil
}

// Program returns the compiled program for v, or nil for an unknown variant.
func (l *Loop) Program(v shading.Variant) Program {
	if !v.Valid() {
		return nil
	}
	return l.programs[v]
}

// Frames returns the number of completed ticks.
func (l *Loop) Frames() uint64 {
	return l.frames
}

// SetLens replaces the projection parameters used from the next tick on.
func (l *Loop) SetLens(lens transform.Lens) {
	l.lens = lens
}

// Tick clears the frame and draws every object in scene order, then
// advances each object's rotation angle by elapsed seconds. Objects whose
// mesh is missing or incomplete are not drawn but still rotate.
func (l *Loop) Tick(elapsed float64) {
	l.backend.Clear(l.scene.Background())
	l.lights = l.scene.CopyLights(l.lights[:0])

	w, h := l.backend.Viewport()
	aspect := 0.0
	if h > 0 {
		aspect = float64(w) / float64(h)
	}
	proj := l.lens.Projection(aspect)
	view := l.camera.View()
	eye := l.camera.Eye()

	for _, obj := range l.scene.Objects() {
		st := obj.Lock()
		l.drawObject(obj, st, view, proj, eye)
		st.Transform.Rotation.Angle += elapsed
		obj.Unlock()
	}
	l.frames++
}

func (l *Loop) drawObject(obj *scene.Object, st *scene.State, view, proj math3d.Mat4, eye math3d.Vec3) {
	reason := ""
	switch {
	case !st.Mesh.Complete():
		reason = "has no complete mesh"
	case !st.Variant.Valid():
		reason = fmt.Sprintf("has unknown shading variant %d", int(st.Variant))
	}
	if reason != "" {
		if !l.skipped[obj.ID] {
			l.skipped[obj.ID] = true
			core.LogWarn("object %q %s, skipping draw", obj.Name, reason)
		}
		return
	}
	if l.skipped[obj.ID] {
		delete(l.skipped, obj.ID)
		core.LogInfo("object %q drawing resumed", obj.Name)
	}

	model := transform.ComposeModelMatrix(st.Transform.WithAuthoringScale(st.AuthoringScale))
	l.call = DrawCall{
		Program:    l.programs[st.Variant],
		Mesh:       st.Mesh,
		Model:      model,
		Normal:     transform.NormalMatrix(model),
		View:       view,
		Projection: proj,
		Eye:        eye,
		Material:   st.Material,
		Lights:     l.lights,
		Texture:    st.Texture,
	}
	l.backend.Draw(&l.call)
	l.call = DrawCall{}
}
