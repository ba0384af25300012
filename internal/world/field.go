package world

import "github.com/kalver/physbox/internal/vec"

// FieldKind selects how a force field accelerates bodies in range.
type FieldKind string

const (
	FieldGravity   FieldKind = "gravity"
	FieldWind      FieldKind = "wind"
	FieldAttractor FieldKind = "attractor"
	FieldRepulsor  FieldKind = "repulsor"
)

const (
	DefaultFieldStrength = 50.0
	DefaultFieldRadius   = 150.0
)

// Field is a spatially-scoped acceleration source, distinct from the
// uniform gravity in Settings.
type Field struct {
	ID       string
	Kind     FieldKind
	Position vec.Vec
	Strength float64
	Radius   float64
	Active   bool
}
