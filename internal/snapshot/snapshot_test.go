package snapshot_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/kalver/physbox/internal/snapshot"
	"github.com/kalver/physbox/internal/vec"
	"github.com/kalver/physbox/internal/world"
)

func sampleWorld() *world.World {
	w := world.New()
	w.Settings.Gravity = vec.Vec{X: 0.1, Y: 0.7}
	w.Settings.Substeps = 8
	w.Settings.ShowVectors = true

	a := w.AddCircle(vec.Vec{X: 100, Y: 100})
	a.Velocity = vec.Vec{X: 2, Y: -1}
	a.Mass = 3
	a.Rotation = 0.4
	a.AngularVelocity = 1.5
	a.Pinned = true

	r := w.AddRect(vec.Vec{X: 300, Y: 200})
	r.Static = true

	w.AddSpring(a.ID, r.ID)
	f := w.AddField(vec.Vec{X: 400, Y: 300})
	f.Kind = world.FieldRepulsor
	f.Active = false

	return w
}

var _ = Describe("Export/Import round-trip", func() {
	It("preserves every field except trails", func() {
		w := sampleWorld()
		w.Bodies[0].Trail = []vec.Vec{{X: 1, Y: 2}} // transient, dropped

		data, err := snapshot.Export(w)
		Expect(err).NotTo(HaveOccurred())

		got, err := snapshot.Import(data)
		Expect(err).NotTo(HaveOccurred())

		Expect(got.Bodies).To(HaveLen(len(w.Bodies)))
		for i, b := range w.Bodies {
			gb := got.Bodies[i]
			Expect(gb.ID).To(Equal(b.ID))
			Expect(gb.Name).To(Equal(b.Name))
			Expect(gb.Shape).To(Equal(b.Shape))
			Expect(gb.Position).To(Equal(b.Position))
			Expect(gb.Velocity).To(Equal(b.Velocity))
			Expect(gb.Rotation).To(Equal(b.Rotation))
			Expect(gb.AngularVelocity).To(Equal(b.AngularVelocity))
			Expect(gb.Mass).To(Equal(b.Mass))
			Expect(gb.Restitution).To(Equal(b.Restitution))
			Expect(gb.Friction).To(Equal(b.Friction))
			Expect(gb.Static).To(Equal(b.Static))
			Expect(gb.Pinned).To(Equal(b.Pinned))
			Expect(gb.Color).To(Equal(b.Color))
			Expect(gb.Trail).To(BeEmpty())
		}

		Expect(got.Constraints).To(HaveLen(1))
		Expect(*got.Constraints[0]).To(Equal(*w.Constraints[0]))

		Expect(got.Fields).To(HaveLen(1))
		Expect(*got.Fields[0]).To(Equal(*w.Fields[0]))

		Expect(got.Settings).To(Equal(w.Settings))
	})

	It("keeps generated IDs unique after import", func() {
		w := sampleWorld()
		data, _ := snapshot.Export(w)
		got, err := snapshot.Import(data)
		Expect(err).NotTo(HaveOccurred())

		b := got.AddCircle(vec.Vec{})
		for _, existing := range got.Bodies[:len(got.Bodies)-1] {
			Expect(b.ID).NotTo(Equal(existing.ID))
		}
	})
})

var _ = Describe("Preset-style defaults", func() {
	It("fills creation defaults for omitted fields", func() {
		doc := &snapshot.Document{
			Bodies: []snapshot.BodyDoc{
				{Position: vec.Vec{X: 10, Y: 10}},
				{Type: "rectangle", Position: vec.Vec{X: 20, Y: 20}},
			},
			Constraints: []snapshot.ConstraintDoc{
				{BodyA: "body-1", BodyB: "body-2", RestLength: 30},
			},
			ForceFields: []snapshot.FieldDoc{
				{Position: vec.Vec{X: 5, Y: 5}},
			},
		}

		w, err := snapshot.ToWorld(doc)
		Expect(err).NotTo(HaveOccurred())

		b := w.Bodies[0]
		Expect(b.Shape).To(Equal(world.Circle{Radius: world.DefaultRadius}))
		Expect(b.Mass).To(Equal(world.DefaultMass))
		Expect(b.Restitution).To(Equal(world.DefaultRestitution))
		Expect(b.Friction).To(Equal(world.DefaultFriction))
		Expect(b.Name).To(Equal("Body 1"))
		Expect(b.Color).To(Equal(world.Palette[0]))
		Expect(b.Pinned).To(BeFalse())

		Expect(w.Bodies[1].Name).To(Equal("Body 2"))
		Expect(w.Bodies[1].Color).To(Equal(world.Palette[1]))

		c := w.Constraints[0]
		Expect(c.Kind).To(Equal(world.Spring))
		Expect(c.Stiffness).To(Equal(world.DefaultStiffness))

		f := w.Fields[0]
		Expect(f.Kind).To(Equal(world.FieldAttractor))
		Expect(f.Active).To(BeTrue())
		Expect(f.Radius).To(Equal(world.DefaultFieldRadius))
	})

	It("clamps non-positive mass instead of rejecting", func() {
		mass := -5.0
		doc := &snapshot.Document{
			Bodies: []snapshot.BodyDoc{{Position: vec.Vec{}, Mass: &mass}},
		}
		w, err := snapshot.ToWorld(doc)
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Bodies[0].Mass).To(Equal(world.MinMass))
	})
})

var _ = Describe("Malformed input", func() {
	It("rejects invalid JSON with a structured error", func() {
		_, err := snapshot.Import([]byte("{not json"))
		var ie *snapshot.ImportError
		Expect(err).To(BeAssignableToTypeOf(ie))
		Expect(err.Error()).To(ContainSubstring("import:"))
	})

	It("rejects a non-object document", func() {
		_, err := snapshot.Import([]byte(`[1, 2, 3]`))
		Expect(err).To(HaveOccurred())
	})

	It("rejects unknown shape types", func() {
		_, err := snapshot.Import([]byte(`{"bodies":[{"type":"triangle","position":{"x":0,"y":0}}]}`))
		Expect(err).To(MatchError(ContainSubstring("unknown shape type")))
	})

	It("rejects unknown constraint types", func() {
		_, err := snapshot.Import([]byte(`{"constraints":[{"type":"weld","bodyA":"a","bodyB":"b"}]}`))
		Expect(err).To(MatchError(ContainSubstring("unknown type")))
	})

	It("accepts an empty document", func() {
		w, err := snapshot.Import([]byte(`{}`))
		Expect(err).NotTo(HaveOccurred())
		Expect(w.Bodies).To(BeEmpty())
		Expect(w.Settings).To(Equal(world.DefaultSettings()))
	})
})
