// Package controls maps named UI controls carrying raw string values onto
// scene setters. Ids and slider scalings follow the viewer's control panel.
package controls

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/taigrr/gleam/pkg/scene"
	"github.com/taigrr/gleam/pkg/shading"
	"github.com/taigrr/gleam/pkg/transform"
)

var (
	// ErrUnknownControl is returned by Set for ids it does not recognize.
	ErrUnknownControl = errors.New("unknown control")
	// ErrBadValue is returned when a raw value cannot be parsed.
	ErrBadValue = errors.New("bad control value")
	// ErrNoSuchObject is returned by Select for an out-of-range index.
	ErrNoSuchObject = errors.New("no such object")
)

// Slider divisors: the stored value is raw / divisor.
const (
	TranslateDivisor = 10
	RotateDivisor    = 100
	ScaleDivisor     = 50
	MaterialDivisor  = 20
)

// DefaultSelection is the object index a new panel starts on.
const DefaultSelection = 1

// Panel applies control changes to the selected object of a scene. A panel
// is meant for one input goroutine; the scene it writes to may be read
// concurrently.
type Panel struct {
	scene    *scene.Scene
	selected int
}

// NewPanel returns a panel on sc with DefaultSelection selected, or the last
// object when the scene is smaller.
func NewPanel(sc *scene.Scene) *Panel {
	return &Panel{scene: sc, selected: max(0, min(DefaultSelection, sc.Len()-1))}
}

// Select makes object i the target of object controls.
func (p *Panel) Select(i int) error {
	if p.scene.Object(i) == nil {
		return fmt.Errorf("select %d: %w", i, ErrNoSuchObject)
	}
	p.selected = i
	return nil
}

// Selected returns the index of the selected object.
func (p *Panel) Selected() int {
	return p.selected
}

// Object returns the selected object, or nil for an empty scene.
func (p *Panel) Object() *scene.Object {
	return p.scene.Object(p.selected)
}

// Set applies a raw control value. Object controls act on the selected
// object; background and light controls act on the scene.
func (p *Panel) Set(id, raw string) error {
	if err := p.set(id, strings.TrimSpace(raw)); err != nil {
		return fmt.Errorf("control %s: %w", id, err)
	}
	return nil
}

func (p *Panel) set(id, raw string) error {
	switch id {
	case "background-color":
		c, err := shading.ParseHexColor(raw)
		if err != nil {
			return err
		}
		p.scene.SetBackground(c)
		return nil
	}
	if kind, index, ok := lightControl(id); ok {
		return p.setLight(kind, index, raw)
	}

	obj := p.Object()
	if obj == nil {
		return scene.ErrNoObjects
	}
	if axis, ok := axisControl(id, "t"); ok {
		return withFloat(raw, func(v float64) { obj.SetTranslateComponent(axis, v/TranslateDivisor) })
	}
	if axis, ok := axisControl(id, "r"); ok {
		return withFloat(raw, func(v float64) { obj.SetRotationAxisComponent(axis, v/RotateDivisor) })
	}
	if axis, ok := axisControl(id, "s"); ok {
		return withFloat(raw, func(v float64) { obj.SetScaleComponent(axis, v/ScaleDivisor) })
	}

	switch id {
	case "shc":
		return withFloat(raw, func(v float64) { obj.SetShearFactors(v, v) })
	case "sh0":
		return withFloat(raw, func(v float64) {
			obj.Use(func(st *scene.State) { st.Transform.Shear.Factors[0] = v })
		})
	case "sh1":
		return withFloat(raw, func(v float64) {
			obj.Use(func(st *scene.State) { st.Transform.Shear.Factors[1] = v })
		})
	case "shx":
		a, err := transform.ParseShearAxis(raw)
		if err != nil {
			return err
		}
		obj.SetShearAxis(a)
	case "shading":
		v, err := shading.ParseVariant(raw)
		if err != nil {
			return err
		}
		obj.SetVariant(v)
	case "ambient":
		return withFloat(raw, func(v float64) { obj.SetKa(v / MaterialDivisor) })
	case "diffuse":
		return withFloat(raw, func(v float64) { obj.SetKd(v / MaterialDivisor) })
	case "specular":
		return withFloat(raw, func(v float64) { obj.SetKs(v / MaterialDivisor) })
	case "shininess":
		return withFloat(raw, obj.SetShininess)
	default:
		return ErrUnknownControl
	}
	return nil
}

func (p *Panel) setLight(kind byte, index int, raw string) error {
	if kind == 'c' {
		c, err := shading.ParseHexColor(raw)
		if err != nil {
			return err
		}
		return p.scene.SetLightColor(index, c)
	}
	v, err := parseFloat(raw)
	if err != nil {
		return err
	}
	return p.scene.SetLightPositionComponent(index, int(kind-'x'), v)
}

// lightControl parses ids like "x1" or "c3" into a kind and zero-based
// light index.
func lightControl(id string) (kind byte, index int, ok bool) {
	if len(id) < 2 || !strings.ContainsRune("xyzc", rune(id[0])) {
		return 0, 0, false
	}
	n, err := strconv.Atoi(id[1:])
	if err != nil || n < 1 {
		return 0, 0, false
	}
	return id[0], n - 1, true
}

func axisControl(id, prefix string) (int, bool) {
	if len(id) != len(prefix)+1 || !strings.HasPrefix(id, prefix) {
		return 0, false
	}
	switch id[len(prefix)] {
	case 'x':
		return 0, true
	case 'y':
		return 1, true
	case 'z':
		return 2, true
	}
	return 0, false
}

func parseFloat(raw string) (float64, error) {
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrBadValue, raw)
	}
	return v, nil
}

func withFloat(raw string, set func(float64)) error {
	v, err := parseFloat(raw)
	if err != nil {
		return err
	}
	set(v)
	return nil
}
