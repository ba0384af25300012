// Package collide detects and resolves circle-circle contacts and wall
// bounces with impulse-based response.
//
// The pair scan is O(n²) over the body list, in insertion order. That is
// acceptable at the intended body counts (tens); a spatial index would
// change resolution order and therefore observable physics, so the scan
// stays brute-force on purpose.
//
// Rectangle-rectangle and circle-rectangle contacts are not implemented.
// Rectangles integrate, constrain, and collide with nothing; this is a
// known scope gap inherited from the source, not a silent bug.
package collide

import (
	"math"

	"github.com/kalver/physbox/internal/world"
)

// Resolve separates and applies impulses to every overlapping pair of
// circle bodies. Coincident centers (zero-length normal) are skipped for
// the current substep.
func Resolve(w *world.World) {
	bodies := w.Bodies
	for i := 0; i < len(bodies); i++ {
		ca, ok := bodies[i].Shape.(world.Circle)
		if !ok {
			continue
		}
		for j := i + 1; j < len(bodies); j++ {
			cb, ok := bodies[j].Shape.(world.Circle)
			if !ok {
				continue
			}
			resolvePair(bodies[i], bodies[j], ca.Radius, cb.Radius)
		}
	}
}

func resolvePair(a, b *world.Body, ra, rb float64) {
	delta := b.Position.Sub(a.Position)
	dist := delta.Len()
	if dist == 0 || dist >= ra+rb {
		return
	}

	normal := delta.Scale(1 / dist)
	overlap := ra + rb - dist
	total := a.Mass + b.Mass

	// Positional separation weighted by the other body's mass fraction,
	// so heavier bodies move less.
	if a.Movable() {
		a.Position = a.Position.Sub(normal.Scale(overlap * b.Mass / total))
	}
	if b.Movable() {
		b.Position = b.Position.Add(normal.Scale(overlap * a.Mass / total))
	}

	dvn := b.Velocity.Sub(a.Velocity).Dot(normal)
	if dvn > 0 {
		return // already separating
	}

	e := math.Min(a.Restitution, b.Restitution)
	j := -(1 + e) * dvn / (1/a.Mass + 1/b.Mass)
	impulse := normal.Scale(j)

	if a.Movable() {
		a.Velocity = a.Velocity.Sub(impulse.Scale(1 / a.Mass))
	}
	if b.Movable() {
		b.Velocity = b.Velocity.Add(impulse.Scale(1 / b.Mass))
	}
}

// Walls clamps circle bodies into the world bounds and reflects the
// crossing velocity component, scaled by the body's restitution. No-op
// unless WallBounce is enabled; static and pinned bodies are exempt.
func Walls(w *world.World) {
	if !w.Settings.WallBounce {
		return
	}
	for _, b := range w.Bodies {
		c, ok := b.Shape.(world.Circle)
		if !ok || !b.Movable() {
			continue
		}
		r := c.Radius

		if b.Position.X < r {
			b.Position.X = r
			b.Velocity.X = -b.Velocity.X * b.Restitution
		} else if b.Position.X > w.Width-r {
			b.Position.X = w.Width - r
			b.Velocity.X = -b.Velocity.X * b.Restitution
		}

		if b.Position.Y < r {
			b.Position.Y = r
			b.Velocity.Y = -b.Velocity.Y * b.Restitution
		} else if b.Position.Y > w.Height-r {
			b.Position.Y = w.Height - r
			b.Velocity.Y = -b.Velocity.Y * b.Restitution
		}
	}
}
