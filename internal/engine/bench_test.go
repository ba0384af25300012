package engine

import (
	"math/rand"
	"testing"

	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/world"
)

func benchWorld(bodies int) *world.World {
	w := world.New()
	rng := rand.New(rand.NewSource(1))
	for i := 0; i < bodies; i++ {
		b := w.AddCircle(vec.Vec{
			X: rng.Float64() * w.Width,
			Y: rng.Float64() * w.Height,
		})
		b.Velocity = vec.Vec{X: rng.Float64()*4 - 2, Y: rng.Float64()*4 - 2}
	}
	for i := 1; i < bodies; i += 8 {
		w.AddSpring(w.Bodies[i-1].ID, w.Bodies[i].ID)
	}
	w.AddField(vec.Vec{X: w.Width / 2, Y: w.Height / 2})
	return w
}

func BenchmarkStep10(b *testing.B) {
	e := New(benchWorld(10))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Step()
	}
}

func BenchmarkStep50(b *testing.B) {
	e := New(benchWorld(50))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Step()
	}
}

func BenchmarkStep200(b *testing.B) {
	e := New(benchWorld(200))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		e.Step()
	}
}
