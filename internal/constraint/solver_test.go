package constraint

import (
	"math"
	"testing"

	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/world"
)

func pairWorld(kind world.ConstraintKind, stiffness float64) *world.World {
	w := world.New()
	a := w.AddCircle(vec.Vec{X: 0, Y: 0})
	b := w.AddCircle(vec.Vec{X: 100, Y: 0})
	w.Constraints = append(w.Constraints, &world.Constraint{
		ID: "c-1", Kind: kind, BodyA: a.ID, BodyB: b.ID,
		RestLength: 50, Stiffness: stiffness,
	})
	return w
}

func TestSpringPullsTowardRestLength(t *testing.T) {
	w := pairWorld(world.Spring, 0.5)
	before := w.Bodies[0].Position.Dist(w.Bodies[1].Position)

	NewSolver().Relax(w)

	after := w.Bodies[0].Position.Dist(w.Bodies[1].Position)
	if after >= before {
		t.Errorf("expected distance to shrink toward rest length: %f -> %f", before, after)
	}
	// dist=100, rest=50, diff=0.5, offset=100*0.5*0.5*0.5=12.5 per side.
	if math.Abs(w.Bodies[0].Position.X-12.5) > 1e-9 {
		t.Errorf("expected A at x=12.5, got %f", w.Bodies[0].Position.X)
	}
	if math.Abs(w.Bodies[1].Position.X-87.5) > 1e-9 {
		t.Errorf("expected B at x=87.5, got %f", w.Bodies[1].Position.X)
	}
}

func TestRigidIgnoresStoredStiffness(t *testing.T) {
	w := pairWorld(world.Rigid, 0.1)
	NewSolver().Relax(w)

	// Full correction in one pass: both endpoints meet rest length.
	dist := w.Bodies[0].Position.Dist(w.Bodies[1].Position)
	if math.Abs(dist-50) > 1e-9 {
		t.Errorf("rigid constraint should fully correct, got dist %f", dist)
	}
}

func TestRopeMatchesSpringFormula(t *testing.T) {
	spring := pairWorld(world.Spring, 0.5)
	rope := pairWorld(world.Rope, 0.5)

	s := NewSolver()
	s.Relax(spring)
	s.Relax(rope)

	if spring.Bodies[0].Position != rope.Bodies[0].Position {
		t.Errorf("rope should use the spring formula: %+v vs %+v",
			spring.Bodies[0].Position, rope.Bodies[0].Position)
	}
}

func TestStaticEndpointUnmoved(t *testing.T) {
	w := pairWorld(world.Spring, 1.0)
	w.Bodies[0].Static = true

	NewSolver().Relax(w)

	if !w.Bodies[0].Position.IsZero() {
		t.Errorf("static endpoint moved to %+v", w.Bodies[0].Position)
	}
	if w.Bodies[1].Position.X >= 100 {
		t.Error("movable endpoint should still be corrected")
	}
}

func TestDampingNudgesVelocity(t *testing.T) {
	w := pairWorld(world.Spring, 0.5)
	w.Constraints[0].Damping = 0.2

	NewSolver().Relax(w)

	// offset on A is (12.5, 0); velocity nudge is offset * damping.
	if math.Abs(w.Bodies[0].Velocity.X-2.5) > 1e-9 {
		t.Errorf("expected velocity nudge 2.5, got %f", w.Bodies[0].Velocity.X)
	}
}

func TestZeroDistanceSkipped(t *testing.T) {
	w := world.New()
	a := w.AddCircle(vec.Vec{X: 10, Y: 10})
	b := w.AddCircle(vec.Vec{X: 10, Y: 10})
	w.Constraints = append(w.Constraints, &world.Constraint{
		ID: "c-1", Kind: world.Spring, BodyA: a.ID, BodyB: b.ID,
		RestLength: 50, Stiffness: 1,
	})

	NewSolver().Relax(w)

	for _, body := range w.Bodies {
		if math.IsNaN(body.Position.X) || math.IsNaN(body.Position.Y) {
			t.Fatal("NaN position from zero-distance constraint")
		}
	}
}

func TestMissingBodySkipped(t *testing.T) {
	w := world.New()
	a := w.AddCircle(vec.Vec{X: 0, Y: 0})
	w.Constraints = append(w.Constraints, &world.Constraint{
		ID: "c-1", Kind: world.Spring, BodyA: a.ID, BodyB: "nope",
		RestLength: 50, Stiffness: 1,
	})

	s := NewSolver()
	s.Relax(w)
	s.Relax(w) // second pass exercises the warn-once path

	if !w.Bodies[0].Position.IsZero() {
		t.Errorf("body moved by dangling constraint: %+v", w.Bodies[0].Position)
	}
}

func TestNameFallbackLookup(t *testing.T) {
	w := world.New()
	a := w.AddCircle(vec.Vec{X: 0, Y: 0})
	b := w.AddCircle(vec.Vec{X: 100, Y: 0})
	w.Constraints = append(w.Constraints, &world.Constraint{
		ID: "c-1", Kind: world.Spring, BodyA: a.Name, BodyB: b.Name,
		RestLength: 50, Stiffness: 0.5,
	})

	NewSolver().Relax(w)

	if w.Bodies[0].Position.IsZero() {
		t.Error("name-referenced constraint had no effect")
	}
}
