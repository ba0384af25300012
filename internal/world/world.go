package world

import (
	"fmt"

	"github.com/kalver/physbox/internal/vec"
)

// World owns the authoritative bodies, constraints, fields, and settings.
// Slice order is insertion order; the constraint pass and the collision
// scan iterate in that order, so order is part of observable behavior.
//
// World is not safe for concurrent use. The engine applies host commands
// strictly between steps.
type World struct {
	Width  float64
	Height float64

	Bodies      []*Body
	Constraints []*Constraint
	Fields      []*Field
	Settings    Settings

	seq int
}

func New() *World {
	return &World{
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		Settings: DefaultSettings(),
	}
}

func (w *World) nextID(prefix string) string {
	w.seq++
	return fmt.Sprintf("%s-%d", prefix, w.seq)
}

// BodyByID resolves a body by ID, with a legacy fallback to matching by
// name. The fallback exists for old scene files that reference bodies by
// name; when two bodies share a name the first in insertion order wins.
func (w *World) BodyByID(id string) *Body {
	for _, b := range w.Bodies {
		if b.ID == id {
			return b
		}
	}
	for _, b := range w.Bodies {
		if b.Name == id {
			return b
		}
	}
	return nil
}

// BodyAt returns the topmost body whose shape contains p, scanning in
// reverse insertion order so recently added bodies win.
func (w *World) BodyAt(p vec.Vec) *Body {
	for i := len(w.Bodies) - 1; i >= 0; i-- {
		if w.Bodies[i].Contains(p) {
			return w.Bodies[i]
		}
	}
	return nil
}

// AddCircle creates a circle body at pos with default parameters.
func (w *World) AddCircle(pos vec.Vec) *Body {
	b := w.newBody(pos)
	b.Shape = Circle{Radius: DefaultRadius}
	w.Bodies = append(w.Bodies, b)
	return b
}

// AddRect creates a rectangle body at pos with default parameters.
func (w *World) AddRect(pos vec.Vec) *Body {
	b := w.newBody(pos)
	b.Shape = Rect{Width: DefaultRectWidth, Height: DefaultRectHeight}
	w.Bodies = append(w.Bodies, b)
	return b
}

func (w *World) newBody(pos vec.Vec) *Body {
	n := len(w.Bodies)
	return &Body{
		ID:          w.nextID("body"),
		Name:        fmt.Sprintf("Body %d", n+1),
		Position:    pos,
		Mass:        DefaultMass,
		Restitution: DefaultRestitution,
		Friction:    DefaultFriction,
		Color:       Palette[n%len(Palette)],
	}
}

// AddSpring links two bodies with a spring whose rest length is their
// current separation.
func (w *World) AddSpring(aID, bID string) (*Constraint, error) {
	a := w.BodyByID(aID)
	b := w.BodyByID(bID)
	if a == nil || b == nil {
		return nil, fmt.Errorf("spring endpoints not found: %q, %q", aID, bID)
	}
	c := &Constraint{
		ID:         w.nextID("constraint"),
		Kind:       Spring,
		BodyA:      a.ID,
		BodyB:      b.ID,
		RestLength: a.Position.Dist(b.Position),
		Stiffness:  DefaultStiffness,
		Damping:    DefaultDamping,
		Color:      "#cccccc",
	}
	w.Constraints = append(w.Constraints, c)
	return c, nil
}

// AddField creates an attractor field at pos with default parameters.
func (w *World) AddField(pos vec.Vec) *Field {
	f := &Field{
		ID:       w.nextID("field"),
		Kind:     FieldAttractor,
		Position: pos,
		Strength: DefaultFieldStrength,
		Radius:   DefaultFieldRadius,
		Active:   true,
	}
	w.Fields = append(w.Fields, f)
	return f
}

// DeleteBodyAt removes the topmost body under p and prunes any
// constraints referencing it. Reports whether a body was removed.
func (w *World) DeleteBodyAt(p vec.Vec) bool {
	b := w.BodyAt(p)
	if b == nil {
		return false
	}
	w.DeleteBody(b.ID)
	return true
}

// DeleteBody removes the body with the given ID and every constraint
// that references it by ID or name.
func (w *World) DeleteBody(id string) {
	var victim *Body
	kept := w.Bodies[:0]
	for _, b := range w.Bodies {
		if b.ID == id {
			victim = b
			continue
		}
		kept = append(kept, b)
	}
	w.Bodies = kept
	if victim == nil {
		return
	}

	refs := func(endpoint string) bool {
		return endpoint == victim.ID || endpoint == victim.Name
	}
	keptC := w.Constraints[:0]
	for _, c := range w.Constraints {
		if refs(c.BodyA) || refs(c.BodyB) {
			continue
		}
		keptC = append(keptC, c)
	}
	w.Constraints = keptC
}

// DragBody teleports a body to pos and zeroes its velocity. This is an
// explicit teleport, not integrated motion; it applies to static and
// pinned bodies too.
func (w *World) DragBody(id string, pos vec.Vec) bool {
	b := w.BodyByID(id)
	if b == nil {
		return false
	}
	b.Position = pos
	b.Velocity = vec.Vec{}
	b.Trail = nil
	return true
}

// ClearAll removes every body, constraint, and field. Settings persist.
func (w *World) ClearAll() {
	w.Bodies = nil
	w.Constraints = nil
	w.Fields = nil
}

// Replace swaps in the contents of other, used by preset and snapshot
// loading. The receiver keeps its identity so the engine's world pointer
// stays valid.
func (w *World) Replace(other *World) {
	w.Width = other.Width
	w.Height = other.Height
	w.Bodies = other.Bodies
	w.Constraints = other.Constraints
	w.Fields = other.Fields
	w.Settings = other.Settings
	if other.seq > w.seq {
		w.seq = other.seq
	}
}

// BumpSeq advances the ID counter past n, keeping generated IDs unique
// after a snapshot with numeric suffixes is loaded.
func (w *World) BumpSeq(n int) {
	if n > w.seq {
		w.seq = n
	}
}
