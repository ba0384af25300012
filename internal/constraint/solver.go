// Package constraint relaxes spring, rigid, and rope constraints.
//
// The solver runs a single position-correction pass per substep, in
// constraint list order. It does not iterate to convergence; bounded
// per-frame cost is traded for accuracy, and a future iterative solver
// would change observable behavior.
package constraint

import (
	"log"

	"github.com/kalver/physbox/internal/world"
)

type Solver struct {
	warned map[string]bool
}

func NewSolver() *Solver {
	return &Solver{warned: make(map[string]bool)}
}

// Relax applies one correction pass over every constraint in w. A
// constraint whose endpoints cannot be resolved is skipped for this pass
// (not removed; scene loads may reference bodies that arrive later) and
// logged once per constraint.
func (s *Solver) Relax(w *world.World) {
	for _, c := range w.Constraints {
		a := w.BodyByID(c.BodyA)
		b := w.BodyByID(c.BodyB)
		if a == nil || b == nil {
			s.warnOnce(c.ID)
			continue
		}
		relaxPair(c, a, b)
	}
}

func relaxPair(c *world.Constraint, a, b *world.Body) {
	delta := b.Position.Sub(a.Position)
	dist := delta.Len()
	if dist == 0 {
		return
	}

	diff := (dist - c.RestLength) / dist
	offset := delta.Scale(diff * 0.5 * c.EffectiveStiffness())

	if a.Movable() {
		a.Position = a.Position.Add(offset)
		a.Velocity = a.Velocity.Add(offset.Scale(c.Damping))
	}
	if b.Movable() {
		b.Position = b.Position.Sub(offset)
		b.Velocity = b.Velocity.Sub(offset.Scale(c.Damping))
	}
}

func (s *Solver) warnOnce(id string) {
	if s.warned[id] {
		return
	}
	s.warned[id] = true
	log.Printf("constraint %s references a missing body, skipping", id)
}
