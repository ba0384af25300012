package engine

import (
	"time"

	"github.com/kalver/physbox/internal/metrics"
)

// Clock drives fixed-step invocation of the engine from a host
// per-frame tick. The host fires Tick once per display refresh from a
// single goroutine; pausing is just the Running flag, and cancellation
// is the host ceasing to tick.
type Clock struct {
	Engine  *Engine
	Running bool

	fps metrics.FPSCounter
}

func NewClock(e *Engine) *Clock {
	return &Clock{Engine: e, Running: true}
}

// Tick advances the simulation by one full step if running. The frame
// counter advances regardless, so FPS reflects the host frame rate, not
// simulation progress.
func (c *Clock) Tick(now time.Time) bool {
	c.fps.Tick(now)
	if !c.Running {
		return false
	}
	c.Engine.Step()
	return true
}

func (c *Clock) Toggle() { c.Running = !c.Running }

func (c *Clock) FPS() float64 { return c.fps.FPS() }
