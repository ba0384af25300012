// Package snapshot encodes and decodes the flat JSON interchange format
// for whole worlds. The same shape doubles as the preset format: every
// field is optional on the way in, with loader defaults matching
// interactive creation.
package snapshot

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/world"
)

// ImportError reports a rejected snapshot. The prior world is always
// left untouched by a failed import.
type ImportError struct {
	Reason string
}

func (e *ImportError) Error() string {
	return "import: " + e.Reason
}

func importErrorf(format string, args ...any) *ImportError {
	return &ImportError{Reason: fmt.Sprintf(format, args...)}
}

// Document is the top-level interchange object.
type Document struct {
	Bodies      []BodyDoc       `json:"bodies"`
	Constraints []ConstraintDoc `json:"constraints"`
	ForceFields []FieldDoc      `json:"forceFields"`
	Settings    *SettingsDoc    `json:"settings,omitempty"`
}

// BodyDoc mirrors a body on the wire. Shape is flattened the way the
// format's producers emit it: a type tag plus optional radius or
// width/height.
type BodyDoc struct {
	ID              string   `json:"id,omitempty"`
	Type            string   `json:"type"`
	Position        vec.Vec  `json:"position"`
	Velocity        vec.Vec  `json:"velocity"`
	Mass            *float64 `json:"mass,omitempty"`
	Restitution     *float64 `json:"restitution,omitempty"`
	Friction        *float64 `json:"friction,omitempty"`
	Radius          *float64 `json:"radius,omitempty"`
	Width           *float64 `json:"width,omitempty"`
	Height          *float64 `json:"height,omitempty"`
	Rotation        float64  `json:"rotation"`
	AngularVelocity float64  `json:"angularVelocity"`
	IsStatic        bool     `json:"isStatic"`
	Color           string   `json:"color,omitempty"`
	Name            string   `json:"name,omitempty"`
	Pinned          bool     `json:"pinned"`
}

type ConstraintDoc struct {
	ID         string   `json:"id,omitempty"`
	Type       string   `json:"type"`
	BodyA      string   `json:"bodyA"`
	BodyB      string   `json:"bodyB"`
	RestLength float64  `json:"restLength"`
	Stiffness  *float64 `json:"stiffness,omitempty"`
	Damping    *float64 `json:"damping,omitempty"`
	Color      string   `json:"color,omitempty"`
}

type FieldDoc struct {
	ID       string   `json:"id,omitempty"`
	Type     string   `json:"type"`
	Position vec.Vec  `json:"position"`
	Strength *float64 `json:"strength,omitempty"`
	Radius   *float64 `json:"radius,omitempty"`
	Active   *bool    `json:"active,omitempty"`
}

type SettingsDoc struct {
	Gravity     *vec.Vec `json:"gravity,omitempty"`
	AirFriction *float64 `json:"airFriction,omitempty"`
	TimeScale   *float64 `json:"timeScale,omitempty"`
	Substeps    *int     `json:"substeps,omitempty"`
	ShowVectors *bool    `json:"showVectors,omitempty"`
	ShowTrails  *bool    `json:"showTrails,omitempty"`
	ShowForces  *bool    `json:"showForces,omitempty"`
	TrailLength *int     `json:"trailLength,omitempty"`
	WallBounce  *bool    `json:"wallBounce,omitempty"`
}

// Export serializes w to indented JSON. Trails are transient display
// state and are not exported.
func Export(w *world.World) ([]byte, error) {
	return json.MarshalIndent(FromWorld(w), "", "  ")
}

// Import builds a fresh world from data. On any failure it returns a
// *ImportError and no world; callers keep their current world.
func Import(data []byte) (*world.World, error) {
	doc, err := Decode(data)
	if err != nil {
		return nil, err
	}
	return ToWorld(doc)
}

// Decode parses and shape-checks a document without building a world.
func Decode(data []byte) (*Document, error) {
	var doc Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, importErrorf("malformed JSON: %v", err)
	}
	return &doc, nil
}

// FromWorld captures a full document from w, every optional field
// populated.
func FromWorld(w *world.World) *Document {
	doc := &Document{
		Bodies:      make([]BodyDoc, 0, len(w.Bodies)),
		Constraints: make([]ConstraintDoc, 0, len(w.Constraints)),
		ForceFields: make([]FieldDoc, 0, len(w.Fields)),
	}

	for _, b := range w.Bodies {
		bd := BodyDoc{
			ID:              b.ID,
			Position:        b.Position,
			Velocity:        b.Velocity,
			Mass:            ptr(b.Mass),
			Restitution:     ptr(b.Restitution),
			Friction:        ptr(b.Friction),
			Rotation:        b.Rotation,
			AngularVelocity: b.AngularVelocity,
			IsStatic:        b.Static,
			Color:           b.Color,
			Name:            b.Name,
			Pinned:          b.Pinned,
		}
		switch s := b.Shape.(type) {
		case world.Circle:
			bd.Type = "circle"
			bd.Radius = ptr(s.Radius)
		case world.Rect:
			bd.Type = "rectangle"
			bd.Width = ptr(s.Width)
			bd.Height = ptr(s.Height)
		}
		doc.Bodies = append(doc.Bodies, bd)
	}

	for _, c := range w.Constraints {
		doc.Constraints = append(doc.Constraints, ConstraintDoc{
			ID:         c.ID,
			Type:       string(c.Kind),
			BodyA:      c.BodyA,
			BodyB:      c.BodyB,
			RestLength: c.RestLength,
			Stiffness:  ptr(c.Stiffness),
			Damping:    ptr(c.Damping),
			Color:      c.Color,
		})
	}

	for _, f := range w.Fields {
		doc.ForceFields = append(doc.ForceFields, FieldDoc{
			ID:       f.ID,
			Type:     string(f.Kind),
			Position: f.Position,
			Strength: ptr(f.Strength),
			Radius:   ptr(f.Radius),
			Active:   ptr(f.Active),
		})
	}

	s := w.Settings
	doc.Settings = &SettingsDoc{
		Gravity:     ptr(s.Gravity),
		AirFriction: ptr(s.AirFriction),
		TimeScale:   ptr(s.TimeScale),
		Substeps:    ptr(s.Substeps),
		ShowVectors: ptr(s.ShowVectors),
		ShowTrails:  ptr(s.ShowTrails),
		ShowForces:  ptr(s.ShowForces),
		TrailLength: ptr(s.TrailLength),
		WallBounce:  ptr(s.WallBounce),
	}

	return doc
}

// ToWorld materializes a document, filling defaults field by field the
// way interactive creation does: mass 1, restitution 0.8, friction 0.1,
// palette color by index, "Body {i+1}" names, unpinned.
func ToWorld(doc *Document) (*world.World, error) {
	w := world.New()
	maxSeq := 0

	for i, bd := range doc.Bodies {
		b := &world.Body{
			ID:              bd.ID,
			Name:            bd.Name,
			Position:        bd.Position,
			Velocity:        bd.Velocity,
			Rotation:        bd.Rotation,
			AngularVelocity: bd.AngularVelocity,
			Mass:            orDefault(bd.Mass, world.DefaultMass),
			Restitution:     orDefault(bd.Restitution, world.DefaultRestitution),
			Friction:        orDefault(bd.Friction, world.DefaultFriction),
			Static:          bd.IsStatic,
			Pinned:          bd.Pinned,
			Color:           bd.Color,
		}
		if b.ID == "" {
			b.ID = fmt.Sprintf("body-%d", i+1)
		}
		if b.Name == "" {
			b.Name = fmt.Sprintf("Body %d", i+1)
		}
		if b.Color == "" {
			b.Color = world.Palette[i%len(world.Palette)]
		}
		b.ClampMass()

		switch bd.Type {
		case "circle", "":
			b.Shape = world.Circle{Radius: orDefault(bd.Radius, world.DefaultRadius)}
		case "rectangle":
			b.Shape = world.Rect{
				Width:  orDefault(bd.Width, world.DefaultRectWidth),
				Height: orDefault(bd.Height, world.DefaultRectHeight),
			}
		default:
			return nil, importErrorf("body %d: unknown shape type %q", i, bd.Type)
		}

		maxSeq = maxID(maxSeq, b.ID)
		w.Bodies = append(w.Bodies, b)
	}

	for i, cd := range doc.Constraints {
		kind := world.ConstraintKind(cd.Type)
		switch kind {
		case world.Spring, world.Rigid, world.Rope:
		case "":
			kind = world.Spring
		default:
			return nil, importErrorf("constraint %d: unknown type %q", i, cd.Type)
		}
		c := &world.Constraint{
			ID:         cd.ID,
			Kind:       kind,
			BodyA:      cd.BodyA,
			BodyB:      cd.BodyB,
			RestLength: cd.RestLength,
			Stiffness:  orDefault(cd.Stiffness, world.DefaultStiffness),
			Damping:    orDefault(cd.Damping, world.DefaultDamping),
			Color:      cd.Color,
		}
		if c.ID == "" {
			c.ID = fmt.Sprintf("constraint-%d", i+1)
		}
		maxSeq = maxID(maxSeq, c.ID)
		w.Constraints = append(w.Constraints, c)
	}

	for i, fd := range doc.ForceFields {
		kind := world.FieldKind(fd.Type)
		switch kind {
		case world.FieldGravity, world.FieldWind, world.FieldAttractor, world.FieldRepulsor:
		case "":
			kind = world.FieldAttractor
		default:
			return nil, importErrorf("force field %d: unknown type %q", i, fd.Type)
		}
		f := &world.Field{
			ID:       fd.ID,
			Kind:     kind,
			Position: fd.Position,
			Strength: orDefault(fd.Strength, world.DefaultFieldStrength),
			Radius:   orDefault(fd.Radius, world.DefaultFieldRadius),
			Active:   orDefault(fd.Active, true),
		}
		if f.ID == "" {
			f.ID = fmt.Sprintf("field-%d", i+1)
		}
		maxSeq = maxID(maxSeq, f.ID)
		w.Fields = append(w.Fields, f)
	}

	if sd := doc.Settings; sd != nil {
		s := &w.Settings
		if sd.Gravity != nil {
			s.Gravity = *sd.Gravity
		}
		s.AirFriction = orDefault(sd.AirFriction, s.AirFriction)
		s.TimeScale = orDefault(sd.TimeScale, s.TimeScale)
		s.Substeps = orDefault(sd.Substeps, s.Substeps)
		s.ShowVectors = orDefault(sd.ShowVectors, s.ShowVectors)
		s.ShowTrails = orDefault(sd.ShowTrails, s.ShowTrails)
		s.ShowForces = orDefault(sd.ShowForces, s.ShowForces)
		s.TrailLength = orDefault(sd.TrailLength, s.TrailLength)
		s.WallBounce = orDefault(sd.WallBounce, s.WallBounce)
	}
	w.Settings.Sanitize()

	w.BumpSeq(maxSeq)
	return w, nil
}

func ptr[T any](v T) *T { return &v }

func orDefault[T any](p *T, def T) T {
	if p == nil {
		return def
	}
	return *p
}

// maxID keeps generated IDs unique after import by tracking the largest
// numeric suffix seen in "prefix-N" style IDs.
func maxID(cur int, id string) int {
	i := strings.LastIndexByte(id, '-')
	if i < 0 {
		return cur
	}
	n, err := strconv.Atoi(id[i+1:])
	if err != nil || n <= cur {
		return cur
	}
	return n
}
