package world

import "github.com/kalver/physbox/internal/vec"

const (
	// MinMass is the floor applied to non-positive or tiny masses at
	// construction time. Clamping (rather than rejecting) keeps imported
	// scenes loadable; the clamp is documented behavior.
	MinMass = 1e-6

	DefaultRadius      = 15.0
	DefaultRectWidth   = 60.0
	DefaultRectHeight  = 40.0
	DefaultMass        = 1.0
	DefaultRestitution = 0.8
	DefaultFriction    = 0.1
)

// Palette supplies default body colors, cycled by creation index.
var Palette = []string{
	"#4fc3f7", "#ff8a65", "#aed581", "#ba68c8",
	"#ffd54f", "#4db6ac", "#f06292", "#90a4ae",
}

// Shape is the body geometry variant. Only circles take part in
// collision response; rectangles integrate and constrain but
// rect-rect and circle-rect contacts are an unimplemented gap.
type Shape interface {
	shape()
}

type Circle struct {
	Radius float64
}

type Rect struct {
	Width  float64
	Height float64
}

func (Circle) shape() {}
func (Rect) shape()   {}

// Body is a point-mass with kinematic rotation. A Static or Pinned body
// is never displaced by integration, constraints, or collisions, but
// still participates as a collision and constraint partner.
type Body struct {
	ID   string
	Name string

	Shape Shape

	Position        vec.Vec
	Velocity        vec.Vec
	Rotation        float64
	AngularVelocity float64

	Mass        float64
	Restitution float64
	Friction    float64

	Static bool
	Pinned bool

	Trail []vec.Vec
	Color string
}

// Movable reports whether integration, constraints, and collisions may
// displace the body.
func (b *Body) Movable() bool {
	return !b.Static && !b.Pinned
}

// ClampMass enforces the minimum-mass guard.
func (b *Body) ClampMass() {
	if b.Mass < MinMass {
		b.Mass = MinMass
	}
}

// Contains reports whether p falls inside the body's shape, used for
// position-addressed commands like DeleteBodyAt.
func (b *Body) Contains(p vec.Vec) bool {
	switch s := b.Shape.(type) {
	case Circle:
		return b.Position.Dist(p) <= s.Radius
	case Rect:
		dx := p.X - b.Position.X
		dy := p.Y - b.Position.Y
		return dx >= -s.Width/2 && dx <= s.Width/2 && dy >= -s.Height/2 && dy <= s.Height/2
	}
	return false
}

// PushTrail appends the current position to the trail, capped at limit.
func (b *Body) PushTrail(limit int) {
	if limit <= 0 {
		b.Trail = nil
		return
	}
	b.Trail = append(b.Trail, b.Position)
	if len(b.Trail) > limit {
		b.Trail = b.Trail[len(b.Trail)-limit:]
	}
}
