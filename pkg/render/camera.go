package render

import (
	"github.com/taigrr/gleam/pkg/math3d"
)

// Camera is a look-at camera. It satisfies engine.Camera.
type Camera struct {
	Position math3d.Vec3
	Target   math3d.Vec3
	UpDir    math3d.Vec3

	view      math3d.Mat4
	viewDirty bool
}

// NewCamera returns a camera at the origin looking down -Z.
func NewCamera() *Camera {
	return &Camera{
		Position:  math3d.Zero3(),
		Target:    math3d.V3(0, 0, -1),
		UpDir:     math3d.Up(),
		viewDirty: true,
	}
}

// SetPosition moves the camera without changing its target.
func (c *Camera) SetPosition(pos math3d.Vec3) {
	c.Position = pos
	c.viewDirty = true
}

// LookAt points the camera at target.
func (c *Camera) LookAt(target math3d.Vec3) {
	c.Target = target
	c.viewDirty = true
}

// Forward returns the unit view direction.
func (c *Camera) Forward() math3d.Vec3 {
	return c.Target.Sub(c.Position).Normalize()
}

// Distance returns the distance from the camera to its target.
func (c *Camera) Distance() float64 {
	return c.Target.Sub(c.Position).Len()
}

// Dolly moves the camera along its view direction so that it sits dist
// units from the target. Non-positive distances are ignored.
func (c *Camera) Dolly(dist float64) {
	if dist <= 0 {
		return
	}
	c.SetPosition(c.Target.Sub(c.Forward().Scale(dist)))
}

// View returns the world-to-camera matrix.
func (c *Camera) View() math3d.Mat4 {
	if c.viewDirty {
		c.view = math3d.LookAt(c.Position, c.Target, c.UpDir)
		c.viewDirty = false
	}
	return c.view
}

// Eye returns the camera position in world space.
func (c *Camera) Eye() math3d.Vec3 {
	return c.Position
}

// WorldToScreen projects p through view and proj into a width x height
// pixel grid. ok is false when p is behind the camera or outside the
// clip volume.
func (c *Camera) WorldToScreen(p math3d.Vec3, proj math3d.Mat4, width, height int) (x, y, depth float64, ok bool) {
	clip := proj.Mul(c.View()).MulVec4(math3d.V4FromV3(p, 1))
	if clip.W <= 0 {
		return 0, 0, 0, false
	}
	ndc := clip.PerspectiveDivide()
	if ndc.X < -1 || ndc.X > 1 || ndc.Y < -1 || ndc.Y > 1 || ndc.Z < -1 || ndc.Z > 1 {
		return 0, 0, 0, false
	}
	x = (ndc.X + 1) * 0.5 * float64(width)
	y = (1 - ndc.Y) * 0.5 * float64(height)
	return x, y, ndc.Z, true
}
