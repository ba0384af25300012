package preset

import (
	"testing"

	"github.com/kalver/physbox/internal/engine"
)

func TestEveryPresetBuildsAndSteps(t *testing.T) {
	names := List()
	if len(names) == 0 {
		t.Fatal("empty catalog")
	}
	for _, name := range names {
		w := Get(name)
		if w == nil {
			t.Fatalf("preset %s: nil world", name)
		}
		if len(w.Bodies) == 0 {
			t.Errorf("preset %s: no bodies", name)
		}
		e := engine.New(w)
		for i := 0; i < 10; i++ {
			e.Step()
		}
	}
}

func TestGetUnknown(t *testing.T) {
	if Get("nonexistent") != nil {
		t.Error("expected nil for unknown preset")
	}
}

func TestConstraintEndpointsResolve(t *testing.T) {
	for _, name := range List() {
		w := Get(name)
		for _, c := range w.Constraints {
			if w.BodyByID(c.BodyA) == nil || w.BodyByID(c.BodyB) == nil {
				t.Errorf("preset %s: constraint %s has dangling endpoint", name, c.ID)
			}
		}
	}
}

func TestListSorted(t *testing.T) {
	names := List()
	for i := 1; i < len(names); i++ {
		if names[i-1] >= names[i] {
			t.Fatalf("names not sorted: %v", names)
		}
	}
}
