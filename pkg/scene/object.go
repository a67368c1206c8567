// Package scene holds the live scene state: a fixed, ordered list of objects
// whose parameters are mutated by external controls, plus shared lights and
// background color.
package scene

import (
	"sync"

	"github.com/google/uuid"

	"github.com/taigrr/gleam/pkg/math3d"
	"github.com/taigrr/gleam/pkg/models"
	"github.com/taigrr/gleam/pkg/shading"
	"github.com/taigrr/gleam/pkg/transform"
)

// State is the mutable parameter set of one object.
type State struct {
	Mesh           *models.Mesh // nil while the mesh failed to load
	Transform      transform.Transform
	AuthoringScale math3d.Vec3
	Material       shading.Material
	Variant        shading.Variant
	Texture        shading.Sampler
}

// DefaultState returns the parameters of a freshly added object.
func DefaultState() State {
	return State{
		Transform:      transform.Identity(),
		AuthoringScale: math3d.One3(),
		Material:       shading.DefaultMaterial(),
		Variant:        shading.Phong,
	}
}

// Object is one drawable entry of a Scene. All access to its State goes
// through a single mutex.
type Object struct {
	ID   uuid.UUID
	Name string
	// Source is the mesh file or primitive the object was built from.
	Source string

	mu    sync.Mutex
	state State
}

// NewObject creates an object with a fresh ID.
func NewObject(name, source string, st State) *Object {
	return &Object{ID: uuid.New(), Name: name, Source: source, state: st}
}

// Lock acquires the object and returns its state for in-place reads and
// writes. The pointer must not be used after Unlock.
func (o *Object) Lock() *State {
	o.mu.Lock()
	return &o.state
}

// Unlock releases the object.
func (o *Object) Unlock() {
	o.mu.Unlock()
}

// Use runs fn with the object locked.
func (o *Object) Use(fn func(*State)) {
	o.mu.Lock()
	defer o.mu.Unlock()
	fn(&o.state)
}

// Snapshot returns a copy of the current state.
func (o *Object) Snapshot() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Object) Transform() transform.Transform {
	return o.Snapshot().Transform
}

func (o *Object) Material() shading.Material {
	return o.Snapshot().Material
}

func (o *Object) Variant() shading.Variant {
	return o.Snapshot().Variant
}

func (o *Object) Mesh() *models.Mesh {
	return o.Snapshot().Mesh
}

func (o *Object) SetTranslate(v math3d.Vec3) {
	o.Use(func(s *State) { s.Transform.Translate = v })
}

func (o *Object) SetTranslateComponent(axis int, v float64) {
	o.Use(func(s *State) { s.Transform.Translate = s.Transform.Translate.WithComponent(axis, v) })
}

// SetRotationAxis stores the axis as given; it is normalized when composed.
func (o *Object) SetRotationAxis(v math3d.Vec3) {
	o.Use(func(s *State) { s.Transform.Rotation.Axis = v })
}

func (o *Object) SetRotationAxisComponent(axis int, v float64) {
	o.Use(func(s *State) { s.Transform.Rotation.Axis = s.Transform.Rotation.Axis.WithComponent(axis, v) })
}

func (o *Object) SetRotationAngle(rad float64) {
	o.Use(func(s *State) { s.Transform.Rotation.Angle = rad })
}

func (o *Object) SetScale(v math3d.Vec3) {
	o.Use(func(s *State) { s.Transform.Scale = v })
}

func (o *Object) SetScaleComponent(axis int, v float64) {
	o.Use(func(s *State) { s.Transform.Scale = s.Transform.Scale.WithComponent(axis, v) })
}

func (o *Object) SetShear(sh transform.Shear) {
	o.Use(func(s *State) { s.Transform.Shear = sh })
}

func (o *Object) SetShearFactors(f0, f1 float64) {
	o.Use(func(s *State) { s.Transform.Shear.Factors = [2]float64{f0, f1} })
}

func (o *Object) SetShearAxis(a transform.ShearAxis) {
	o.Use(func(s *State) { s.Transform.Shear.Axis = a })
}

func (o *Object) SetAuthoringScale(k math3d.Vec3) {
	o.Use(func(s *State) { s.AuthoringScale = k })
}

func (o *Object) SetMaterial(m shading.Material) {
	o.Use(func(s *State) { s.Material = m })
}

func (o *Object) SetKa(v float64) {
	o.Use(func(s *State) { s.Material.Ka = v })
}

func (o *Object) SetKd(v float64) {
	o.Use(func(s *State) { s.Material.Kd = v })
}

func (o *Object) SetKs(v float64) {
	o.Use(func(s *State) { s.Material.Ks = v })
}

func (o *Object) SetShininess(v float64) {
	o.Use(func(s *State) { s.Material.Shininess = v })
}

// SetVariant switches the evaluation site. Mesh data is left untouched.
func (o *Object) SetVariant(v shading.Variant) {
	o.Use(func(s *State) { s.Variant = v })
}

// SetMesh installs a (re)loaded mesh. Passing nil parks the object.
func (o *Object) SetMesh(m *models.Mesh) {
	o.Use(func(s *State) { s.Mesh = m })
}

func (o *Object) SetTexture(t shading.Sampler) {
	o.Use(func(s *State) { s.Texture = t })
}
