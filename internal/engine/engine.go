// Package engine advances the world with a fixed-step, substep-accurate
// loop and owns the only external mutation path into it.
package engine

import (
	"github.com/kalver/physbox/internal/collide"
	"github.com/kalver/physbox/internal/constraint"
	"github.com/kalver/physbox/internal/forces"
	"github.com/kalver/physbox/internal/metrics"
	"github.com/kalver/physbox/internal/world"
)

// FrameDt is the nominal host frame duration. Velocities in the world
// are expressed in units per frame, so substep integration rescales by
// 1/FrameDt.
const FrameDt = 1.0 / 60.0

// Command mutates the world. Commands are queued by the host and
// drained at the start of the next step, never mid-step, so the O(n²)
// pair scan never sees the body list change under it.
type Command func(*world.World)

// Observer receives diagnostics after each completed step.
type Observer interface {
	Observe(t float64, s metrics.Stats)
}

type Engine struct {
	World *world.World

	solver    *constraint.Solver
	queue     []Command
	observers []Observer

	elapsed float64
	stats   metrics.Stats
}

func New(w *world.World) *Engine {
	return &Engine{
		World:  w,
		solver: constraint.NewSolver(),
	}
}

func (e *Engine) AddObserver(o Observer) { e.observers = append(e.observers, o) }

// Enqueue schedules a host command for the next step boundary.
func (e *Engine) Enqueue(cmd Command) { e.queue = append(e.queue, cmd) }

// Apply runs a host command immediately. Only valid between steps.
func (e *Engine) Apply(cmd Command) { cmd(e.World) }

// Stats returns the diagnostics computed after the most recent step.
func (e *Engine) Stats() metrics.Stats { return e.stats }

// Elapsed returns accumulated simulated time in seconds.
func (e *Engine) Elapsed() float64 { return e.elapsed }

// Step runs one full frame: drain queued commands, then exactly
// Substeps substep iterations, then trail upkeep and diagnostics.
// dt per substep is (FrameDt * TimeScale) / Substeps.
func (e *Engine) Step() {
	for _, cmd := range e.queue {
		cmd(e.World)
	}
	e.queue = e.queue[:0]

	w := e.World
	w.Settings.Sanitize()
	s := w.Settings

	dt := (FrameDt * s.TimeScale) / float64(s.Substeps)
	for i := 0; i < s.Substeps; i++ {
		e.substep(dt)
	}

	for _, b := range w.Bodies {
		if s.ShowTrails {
			b.PushTrail(s.TrailLength)
		} else {
			b.Trail = nil
		}
	}

	e.elapsed += FrameDt * s.TimeScale
	e.stats = metrics.Compute(w)
	for _, o := range e.observers {
		o.Observe(e.elapsed, e.stats)
	}
}

func (e *Engine) substep(dt float64) {
	w := e.World
	s := w.Settings
	damp := 1 - s.AirFriction

	// Velocities are per-frame units; accelerations scale by dt*60 so a
	// full frame of substeps sums to one frame's worth.
	for _, b := range w.Bodies {
		if !b.Movable() {
			continue
		}
		a := forces.Accel(b, w.Fields, s.Gravity)
		b.Velocity = b.Velocity.Add(a.Scale(dt * 60))
		b.Velocity = b.Velocity.Scale(damp)
		b.AngularVelocity *= damp
	}

	e.solver.Relax(w)

	for _, b := range w.Bodies {
		if !b.Movable() {
			continue
		}
		b.Position = b.Position.Add(b.Velocity.Scale(dt * 60))
		b.Rotation += b.AngularVelocity * dt
	}

	collide.Resolve(w)
	collide.Walls(w)
}
