// Package metrics reads aggregate diagnostics off a world after a step.
package metrics

import (
	"time"

	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/world"
)

// Stats are the per-step energy and momentum aggregates. Potential
// energy uses screen coordinates: higher y is lower on screen, so the
// reference plane is mid-world and PE grows upward. The sign convention
// matches the interchange format's producers.
type Stats struct {
	Kinetic   float64
	Potential float64
	Total     float64
	Momentum  vec.Vec
}

// Compute sums kinetic energy, potential energy, and momentum over every
// non-static body. Pure read, no side effects.
func Compute(w *world.World) Stats {
	var s Stats
	g := w.Settings.Gravity.Y
	for _, b := range w.Bodies {
		if b.Static {
			continue
		}
		s.Kinetic += 0.5 * b.Mass * b.Velocity.LenSq()
		s.Potential += b.Mass * g * (w.Height/2 - b.Position.Y)
		s.Momentum = s.Momentum.Add(b.Velocity.Scale(b.Mass))
	}
	s.Total = s.Kinetic + s.Potential
	return s
}

// FPSCounter tracks rendered frames over a rolling one-second window,
// independent of simulation dt.
type FPSCounter struct {
	frames int
	mark   time.Time
	fps    float64
}

func (f *FPSCounter) Tick(now time.Time) {
	if f.mark.IsZero() {
		f.mark = now
	}
	f.frames++
	if elapsed := now.Sub(f.mark); elapsed >= time.Second {
		f.fps = float64(f.frames) / elapsed.Seconds()
		f.frames = 0
		f.mark = now
	}
}

func (f *FPSCounter) FPS() float64 { return f.fps }

// Recorder accumulates per-step diagnostics history for plots and CSV
// export.
type Recorder struct {
	Times     []float64
	Kinetic   []float64
	Potential []float64
	Total     []float64
	Momentum  []vec.Vec
}

func (r *Recorder) Observe(t float64, s Stats) {
	r.Times = append(r.Times, t)
	r.Kinetic = append(r.Kinetic, s.Kinetic)
	r.Potential = append(r.Potential, s.Potential)
	r.Total = append(r.Total, s.Total)
	r.Momentum = append(r.Momentum, s.Momentum)
}

func (r *Recorder) Len() int { return len(r.Times) }

func (r *Recorder) Reset() {
	r.Times = r.Times[:0]
	r.Kinetic = r.Kinetic[:0]
	r.Potential = r.Potential[:0]
	r.Total = r.Total[:0]
	r.Momentum = r.Momentum[:0]
}
