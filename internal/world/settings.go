package world

import "github.com/kalver/physbox/internal/vec"

const (
	DefaultGravityY    = 0.5
	DefaultAirFriction = 0.01
	DefaultTimeScale   = 1.0
	DefaultSubsteps    = 4
	DefaultTrailLength = 50

	DefaultWidth  = 800.0
	DefaultHeight = 600.0
)

// Settings are the global simulation parameters. Gravity and velocities
// are expressed in units per 1/60s frame; the integrator rescales for
// substep size.
type Settings struct {
	Gravity     vec.Vec
	AirFriction float64
	TimeScale   float64
	Substeps    int
	ShowVectors bool
	ShowTrails  bool
	ShowForces  bool
	WallBounce  bool
	TrailLength int
}

func DefaultSettings() Settings {
	return Settings{
		Gravity:     vec.Vec{X: 0, Y: DefaultGravityY},
		AirFriction: DefaultAirFriction,
		TimeScale:   DefaultTimeScale,
		Substeps:    DefaultSubsteps,
		ShowTrails:  true,
		WallBounce:  true,
		TrailLength: DefaultTrailLength,
	}
}

// Sanitize clamps settings into their valid ranges.
func (s *Settings) Sanitize() {
	if s.TimeScale <= 0 {
		s.TimeScale = DefaultTimeScale
	}
	if s.Substeps < 1 {
		s.Substeps = 1
	}
	if s.AirFriction < 0 {
		s.AirFriction = 0
	}
	if s.AirFriction >= 1 {
		s.AirFriction = 0.99
	}
	if s.TrailLength < 0 {
		s.TrailLength = 0
	}
}
