// Package forces evaluates per-body acceleration from active force
// fields. Evaluation is a pure function of the body and field set.
package forces

import (
	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/world"
)

// Accel returns the total acceleration on b: the uniform gravity plus
// the contribution of every active field within range. Fields at zero
// distance are skipped to avoid a degenerate normal.
//
// Field-local gravity adds its scaled strength to the y axis directly,
// without dividing by mass; that asymmetry with the other kinds is
// preserved source behavior.
func Accel(b *world.Body, fields []*world.Field, gravity vec.Vec) vec.Vec {
	a := gravity

	for _, f := range fields {
		if !f.Active {
			continue
		}
		delta := f.Position.Sub(b.Position)
		dist := delta.Len()
		if dist == 0 || dist >= f.Radius {
			continue
		}
		falloff := 1 - dist/f.Radius
		strength := f.Strength * falloff
		dir := delta.Scale(1 / dist)

		switch f.Kind {
		case world.FieldAttractor:
			a = a.Add(dir.Scale(strength / b.Mass))
		case world.FieldRepulsor:
			a = a.Sub(dir.Scale(strength / b.Mass))
		case world.FieldWind:
			a.X += strength / b.Mass
		case world.FieldGravity:
			a.Y += strength
		}
	}

	return a
}
