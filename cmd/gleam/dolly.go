package main

import (
	"github.com/charmbracelet/harmonica"
)

const (
	minDistance = 1.0
	maxDistance = 40.0
)

// Dolly eases the camera distance toward a target with a spring, so wheel
// and key zooming glide instead of jumping.
type Dolly struct {
	Distance float64
	Target   float64

	home     float64
	velocity float64
	spring   harmonica.Spring
}

// NewDolly starts at rest at distance d.
func NewDolly(fps int, d float64) *Dolly {
	d = clampDistance(d)
	return &Dolly{
		Distance: d,
		Target:   d,
		home:     d,
		// Critically damped: no overshoot past the target.
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 6.0, 1.0),
	}
}

// Nudge moves the target by delta, keeping it within range.
func (d *Dolly) Nudge(delta float64) {
	d.Target = clampDistance(d.Target + delta)
}

// Reset returns the target to the starting distance.
func (d *Dolly) Reset() {
	d.Target = d.home
}

// Update advances the spring one frame and reports whether the distance
// is still moving.
func (d *Dolly) Update() bool {
	prev := d.Distance
	d.Distance, d.velocity = d.spring.Update(d.Distance, d.velocity, d.Target)
	return d.Distance != prev
}

func clampDistance(d float64) float64 {
	return max(minDistance, min(maxDistance, d))
}
