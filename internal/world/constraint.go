package world

// ConstraintKind selects the relaxation behavior of a constraint.
type ConstraintKind string

const (
	Spring ConstraintKind = "spring"
	Rigid  ConstraintKind = "rigid"
	Rope   ConstraintKind = "rope"
)

const (
	DefaultStiffness = 0.5
	DefaultDamping   = 0.1
)

// Constraint links two bodies by ID and relaxes them toward RestLength.
// Rigid constraints behave as stiffness 1 regardless of the stored value.
// Rope uses the same symmetric formula as Spring; one-sided slack is not
// implemented.
type Constraint struct {
	ID         string
	Kind       ConstraintKind
	BodyA      string
	BodyB      string
	RestLength float64
	Stiffness  float64
	Damping    float64
	Color      string
}

// EffectiveStiffness is 1 for rigid constraints, the stored value otherwise.
func (c *Constraint) EffectiveStiffness() float64 {
	if c.Kind == Rigid {
		return 1.0
	}
	return c.Stiffness
}
