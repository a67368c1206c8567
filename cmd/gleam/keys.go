package main

import (
	"strconv"

	uv "github.com/charmbracelet/ultraviolet"

	"github.com/taigrr/gleam/pkg/core"
)

const (
	translateStep = 5   // raw slider units, 0.5 world units
	scaleStep     = 5   // raw slider units, 0.1 scale
	materialStep  = 1   // raw slider units, 0.05 reflectance
	shininessStep = 4   // exponent
	shearStep     = 0.1 // shear factor
	dollyStep     = 0.5 // world units
)

// binding maps keys to an action run on the render goroutine. key is the
// matched entry of keys.
type binding struct {
	keys  []string
	label string
	help  string
	run   func(v *viewer, key string)
}

var bindings = []binding{
	{[]string{"tab"}, "Tab", "Next object", func(v *viewer, _ string) {
		if n := v.sc.Len(); n > 0 {
			v.selectObject((v.panel.Selected() + 1) % n)
		}
	}},
	{[]string{"1", "2", "3", "4", "5", "6", "7", "8", "9"}, "1-9", "Select object", func(v *viewer, key string) {
		i, _ := strconv.Atoi(key)
		v.selectObject(i - 1)
	}},
	{[]string{"f"}, "F", "Flat shading", setter("shading", "flat")},
	{[]string{"g"}, "G", "Gouraud shading", setter("shading", "gouraud")},
	{[]string{"p"}, "P", "Phong shading", setter("shading", "phong")},
	{[]string{"left"}, "Left", "Move left", nudger("tx", -translateStep)},
	{[]string{"right"}, "Right", "Move right", nudger("tx", translateStep)},
	{[]string{"up"}, "Up", "Move up", nudger("ty", translateStep)},
	{[]string{"down"}, "Down", "Move down", nudger("ty", -translateStep)},
	{[]string{"["}, "[", "Move away", nudger("tz", -translateStep)},
	{[]string{"]"}, "]", "Move closer", nudger("tz", translateStep)},
	{[]string{"x"}, "X", "Rotate about X", rotationAxis(100, 0, 0)},
	{[]string{"y"}, "Y", "Rotate about Y", rotationAxis(0, 100, 0)},
	{[]string{"z"}, "Z", "Rotate about Z", rotationAxis(0, 0, 100)},
	{[]string{","}, ",", "Shrink", uniformScale(-scaleStep)},
	{[]string{"."}, ".", "Grow", uniformScale(scaleStep)},
	{[]string{"h"}, "H", "Cycle shear axis", func(v *viewer, _ string) {
		next := map[string]string{"x": "y", "y": "z", "z": "x"}
		v.set("shx", next[v.panel.Values()["shx"]])
	}},
	{[]string{"j"}, "J", "Less shear", nudger("shc", -shearStep)},
	{[]string{"k"}, "K", "More shear", nudger("shc", shearStep)},
	{[]string{"A", "shift+a"}, "Shift+A", "Less ambient", nudger("ambient", -materialStep)},
	{[]string{"a"}, "A", "More ambient", nudger("ambient", materialStep)},
	{[]string{"D", "shift+d"}, "Shift+D", "Less diffuse", nudger("diffuse", -materialStep)},
	{[]string{"d"}, "D", "More diffuse", nudger("diffuse", materialStep)},
	{[]string{"S", "shift+s"}, "Shift+S", "Less specular", nudger("specular", -materialStep)},
	{[]string{"s"}, "S", "More specular", nudger("specular", materialStep)},
	{[]string{"N", "shift+n"}, "Shift+N", "Duller highlight", nudger("shininess", -shininessStep)},
	{[]string{"n"}, "N", "Sharper highlight", nudger("shininess", shininessStep)},
	{[]string{"+", "="}, "+/-", "Dolly in/out", func(v *viewer, _ string) { v.dolly.Nudge(-dollyStep) }},
	{[]string{"-", "_"}, "", "", func(v *viewer, _ string) { v.dolly.Nudge(dollyStep) }},
	{[]string{"r"}, "R", "Reset camera", func(v *viewer, _ string) { v.dolly.Reset() }},
	{[]string{"?", "shift+/"}, "?", "Toggle HUD", func(v *viewer, _ string) { v.showHUD = !v.showHUD }},
}

// lookupBinding returns the action for ev, if any.
func lookupBinding(ev uv.KeyPressEvent) (binding, string, bool) {
	for _, b := range bindings {
		for _, k := range b.keys {
			if ev.MatchString(k) {
				return b, k, true
			}
		}
	}
	return binding{}, "", false
}

func setter(id, value string) func(*viewer, string) {
	return func(v *viewer, _ string) { v.set(id, value) }
}

func nudger(id string, delta float64) func(*viewer, string) {
	return func(v *viewer, _ string) { v.nudge(id, delta) }
}

func rotationAxis(x, y, z float64) func(*viewer, string) {
	return func(v *viewer, _ string) {
		v.set("rx", formatRaw(x))
		v.set("ry", formatRaw(y))
		v.set("rz", formatRaw(z))
	}
}

func uniformScale(delta float64) func(*viewer, string) {
	return func(v *viewer, _ string) {
		for _, id := range []string{"sx", "sy", "sz"} {
			v.nudge(id, delta)
		}
	}
}

// set applies a control and logs a rejected value.
func (v *viewer) set(id, raw string) {
	if err := v.panel.Set(id, raw); err != nil {
		core.LogWarn("%v", err)
	}
}

// nudge offsets a numeric control from its current value.
func (v *viewer) nudge(id string, delta float64) {
	cur, err := strconv.ParseFloat(v.panel.Values()[id], 64)
	if err != nil {
		core.LogDebug("control %s has no numeric value", id)
		return
	}
	v.set(id, formatRaw(cur+delta))
}

func (v *viewer) selectObject(i int) {
	if err := v.panel.Select(i); err != nil {
		core.LogDebug("select object %d: %v", i+1, err)
	}
}

func formatRaw(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
