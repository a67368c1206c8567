package scene

import (
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/taigrr/gleam/pkg/math3d"
	"github.com/taigrr/gleam/pkg/shading"
)

var (
	// ErrNoObjects is returned when building a scene without objects.
	ErrNoObjects = errors.New("scene has no objects")
	// ErrNoLight is returned for an out-of-range light index.
	ErrNoLight = errors.New("no such light")
)

// DefaultBackground is the clear color used when none is configured.
var DefaultBackground = math3d.V3(0, 0.2, 0.2)

// Scene is the set of objects drawn each frame. The object list is fixed
// at construction; lights and background are read-mostly shared state.
type Scene struct {
	objects []*Object

	mu         sync.RWMutex
	background math3d.Vec3
	lights     []shading.Light
}

// New creates a scene. Objects are drawn in the given order.
func New(objects []*Object, lights []shading.Light, background math3d.Vec3) *Scene {
	return &Scene{
		objects:    objects,
		lights:     append([]shading.Light(nil), lights...),
		background: background,
	}
}

// Objects returns the objects in draw order. The slice must not be modified.
func (s *Scene) Objects() []*Object {
	return s.objects
}

// Len returns the number of objects.
func (s *Scene) Len() int {
	return len(s.objects)
}

// Object returns the object at index i, or nil if out of range.
func (s *Scene) Object(i int) *Object {
	if i < 0 || i >= len(s.objects) {
		return nil
	}
	return s.objects[i]
}

// ObjectByID returns the object with the given ID, or nil.
func (s *Scene) ObjectByID(id uuid.UUID) *Object {
	for _, o := range s.objects {
		if o.ID == id {
			return o
		}
	}
	return nil
}

// ObjectsBySource returns every object built from source.
func (s *Scene) ObjectsBySource(source string) []*Object {
	var out []*Object
	for _, o := range s.objects {
		if o.Source == source {
			out = append(out, o)
		}
	}
	return out
}

func (s *Scene) Background() math3d.Vec3 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.background
}

func (s *Scene) SetBackground(c math3d.Vec3) {
	s.mu.Lock()
	s.background = c
	s.mu.Unlock()
}

func (s *Scene) NumLights() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.lights)
}

// Light returns light i.
func (s *Scene) Light(i int) (shading.Light, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i < 0 || i >= len(s.lights) {
		return shading.Light{}, fmt.Errorf("light %d: %w", i, ErrNoLight)
	}
	return s.lights[i], nil
}

// CopyLights appends the current lights to dst and returns it. Callers
// reuse dst across frames to avoid allocating.
func (s *Scene) CopyLights(dst []shading.Light) []shading.Light {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append(dst, s.lights...)
}

func (s *Scene) updateLight(i int, fn func(*shading.Light)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if i < 0 || i >= len(s.lights) {
		return fmt.Errorf("light %d: %w", i, ErrNoLight)
	}
	fn(&s.lights[i])
	return nil
}

func (s *Scene) SetLight(i int, l shading.Light) error {
	return s.updateLight(i, func(dst *shading.Light) { *dst = l })
}

func (s *Scene) SetLightPosition(i int, p math3d.Vec3) error {
	return s.updateLight(i, func(l *shading.Light) { l.Position = p })
}

func (s *Scene) SetLightPositionComponent(i, axis int, v float64) error {
	return s.updateLight(i, func(l *shading.Light) { l.Position = l.Position.WithComponent(axis, v) })
}

func (s *Scene) SetLightColor(i int, c math3d.Vec3) error {
	return s.updateLight(i, func(l *shading.Light) { l.Color = c })
}
