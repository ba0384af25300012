// Package preset ships the built-in scene catalog. Presets use the
// snapshot document shape with most fields omitted, so loading them
// exercises the same defaulting path as user imports.
package preset

import (
	"sort"

	"github.com/kalver/physbox/internal/snapshot"
	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/world"
)

func f(v float64) *float64 { return &v }
func b(v bool) *bool { return &v }

var catalog = map[string]*snapshot.Document{
	"box": {
		Bodies: []snapshot.BodyDoc{
			{Position: vec.Vec{X: 200, Y: 100}, Velocity: vec.Vec{X: 3, Y: 0}},
			{Position: vec.Vec{X: 400, Y: 150}, Velocity: vec.Vec{X: -2, Y: 1}},
			{Position: vec.Vec{X: 600, Y: 120}, Velocity: vec.Vec{X: 0, Y: 2}},
			{Position: vec.Vec{X: 300, Y: 300}, Mass: f(4), Radius: f(30)},
		},
		Settings: &snapshot.SettingsDoc{WallBounce: b(true)},
	},
	"cradle": {
		Bodies: []snapshot.BodyDoc{
			{Position: vec.Vec{X: 250, Y: 120}, Pinned: true, Radius: f(4), Name: "Anchor 1"},
			{Position: vec.Vec{X: 290, Y: 120}, Pinned: true, Radius: f(4), Name: "Anchor 2"},
			{Position: vec.Vec{X: 330, Y: 120}, Pinned: true, Radius: f(4), Name: "Anchor 3"},
			{Position: vec.Vec{X: 250, Y: 300}, Restitution: f(1), Radius: f(20)},
			{Position: vec.Vec{X: 290, Y: 300}, Restitution: f(1), Radius: f(20)},
			{Position: vec.Vec{X: 330, Y: 300}, Restitution: f(1), Radius: f(20), Velocity: vec.Vec{X: 4, Y: 0}},
		},
		Constraints: []snapshot.ConstraintDoc{
			{Type: "rigid", BodyA: "Anchor 1", BodyB: "Body 4", RestLength: 180},
			{Type: "rigid", BodyA: "Anchor 2", BodyB: "Body 5", RestLength: 180},
			{Type: "rigid", BodyA: "Anchor 3", BodyB: "Body 6", RestLength: 180},
		},
		Settings: &snapshot.SettingsDoc{
			Gravity:     &vec.Vec{X: 0, Y: 0.4},
			AirFriction: f(0),
		},
	},
	"chain": {
		Bodies: []snapshot.BodyDoc{
			{Position: vec.Vec{X: 400, Y: 80}, Pinned: true, Radius: f(6)},
			{Position: vec.Vec{X: 400, Y: 130}, Radius: f(8)},
			{Position: vec.Vec{X: 400, Y: 180}, Radius: f(8)},
			{Position: vec.Vec{X: 400, Y: 230}, Radius: f(8)},
			{Position: vec.Vec{X: 400, Y: 280}, Radius: f(8)},
			{Position: vec.Vec{X: 400, Y: 330}, Mass: f(3), Radius: f(16)},
		},
		Constraints: []snapshot.ConstraintDoc{
			{Type: "rope", BodyA: "body-1", BodyB: "body-2", RestLength: 50},
			{Type: "rope", BodyA: "body-2", BodyB: "body-3", RestLength: 50},
			{Type: "rope", BodyA: "body-3", BodyB: "body-4", RestLength: 50},
			{Type: "rope", BodyA: "body-4", BodyB: "body-5", RestLength: 50},
			{Type: "rope", BodyA: "body-5", BodyB: "body-6", RestLength: 50},
		},
	},
	"orbit": {
		Bodies: []snapshot.BodyDoc{
			{Position: vec.Vec{X: 400, Y: 300}, Mass: f(50), Radius: f(26), IsStatic: true, Name: "Sun"},
			{Position: vec.Vec{X: 400, Y: 160}, Velocity: vec.Vec{X: 3.2, Y: 0}, Radius: f(10)},
			{Position: vec.Vec{X: 400, Y: 460}, Velocity: vec.Vec{X: -2.6, Y: 0}, Radius: f(12)},
		},
		ForceFields: []snapshot.FieldDoc{
			{Type: "attractor", Position: vec.Vec{X: 400, Y: 300}, Strength: f(30), Radius: f(400)},
		},
		Settings: &snapshot.SettingsDoc{
			Gravity:     &vec.Vec{},
			AirFriction: f(0),
			WallBounce:  b(false),
			ShowTrails:  b(true),
			TrailLength: iptr(120),
		},
	},
	"gale": {
		Bodies: []snapshot.BodyDoc{
			{Position: vec.Vec{X: 120, Y: 150}},
			{Position: vec.Vec{X: 120, Y: 250}, Mass: f(2)},
			{Position: vec.Vec{X: 120, Y: 350}, Mass: f(0.5), Radius: f(9)},
		},
		ForceFields: []snapshot.FieldDoc{
			{Type: "wind", Position: vec.Vec{X: 250, Y: 250}, Strength: f(2), Radius: f(260)},
			{Type: "repulsor", Position: vec.Vec{X: 640, Y: 250}, Strength: f(60), Radius: f(180)},
		},
		Settings: &snapshot.SettingsDoc{Gravity: &vec.Vec{X: 0, Y: 0.2}},
	},
}

func iptr(v int) *int { return &v }

// Get returns a fresh world built from the named preset, or nil if the
// preset does not exist.
func Get(name string) *world.World {
	doc, ok := catalog[name]
	if !ok {
		return nil
	}
	w, err := snapshot.ToWorld(doc)
	if err != nil {
		// Catalog documents are static; a build failure is a programming
		// error surfaced in tests.
		panic("preset " + name + ": " + err.Error())
	}
	return w
}

// List returns the preset names in sorted order.
func List() []string {
	names := make([]string, 0, len(catalog))
	for name := range catalog {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
