package metrics

import (
	"math"
	"testing"
	"time"

	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/world"
)

func TestComputeKineticAndMomentum(t *testing.T) {
	w := world.New()
	w.Settings.Gravity = vec.Vec{}
	b := w.AddCircle(vec.Vec{X: 100, Y: w.Height / 2})
	b.Mass = 2
	b.Velocity = vec.Vec{X: 3, Y: 4}

	s := Compute(w)

	if math.Abs(s.Kinetic-25) > 1e-9 { // 0.5*2*25
		t.Errorf("expected KE 25, got %f", s.Kinetic)
	}
	if s.Potential != 0 {
		t.Errorf("expected zero PE at mid-height with no gravity, got %f", s.Potential)
	}
	if s.Momentum.X != 6 || s.Momentum.Y != 8 {
		t.Errorf("expected momentum (6,8), got %+v", s.Momentum)
	}
}

func TestPotentialSignConvention(t *testing.T) {
	w := world.New()
	w.Settings.Gravity = vec.Vec{X: 0, Y: 0.5}
	high := w.AddCircle(vec.Vec{X: 100, Y: 100}) // above mid-world on screen
	high.Mass = 1

	s := Compute(w)

	// y=100 < H/2=300, so (H/2 - y) is positive: higher on screen means
	// more potential energy.
	if s.Potential <= 0 {
		t.Errorf("expected positive PE above mid-world, got %f", s.Potential)
	}
}

func TestStaticExcluded(t *testing.T) {
	w := world.New()
	b := w.AddCircle(vec.Vec{X: 100, Y: 100})
	b.Static = true
	b.Velocity = vec.Vec{X: 10, Y: 0}

	s := Compute(w)

	if s.Kinetic != 0 || !s.Momentum.IsZero() {
		t.Errorf("static body counted: %+v", s)
	}
}

func TestFPSCounterWindow(t *testing.T) {
	var f FPSCounter
	start := time.Now()
	for i := 0; i < 60; i++ {
		f.Tick(start.Add(time.Duration(i) * 17 * time.Millisecond))
	}
	if f.FPS() == 0 {
		t.Fatal("expected FPS after a full window")
	}
	if f.FPS() < 50 || f.FPS() > 70 {
		t.Errorf("expected ~59 fps, got %f", f.FPS())
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Observe(0, Stats{Kinetic: 1, Total: 1})
	r.Observe(0.016, Stats{Kinetic: 2, Total: 2})

	if r.Len() != 2 {
		t.Fatalf("expected 2 samples, got %d", r.Len())
	}
	if r.Total[1] != 2 {
		t.Errorf("expected total 2, got %f", r.Total[1])
	}

	r.Reset()
	if r.Len() != 0 {
		t.Error("expected empty recorder after reset")
	}
}
