package mol

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func water() *Molecule {
	return NewMolecule([]Atom{
		{Symbol: "O", Position: r3.Vec{X: 0, Y: 0, Z: 0.1173}},
		{Symbol: "H", Position: r3.Vec{X: 0, Y: 0.7572, Z: -0.4692}},
		{Symbol: "H", Position: r3.Vec{X: 0, Y: -0.7572, Z: -0.4692}},
	})
}

func TestFormula(t *testing.T) {
	tests := []struct {
		name     string
		symbols  []string
		expected string
	}{
		{"water", []string{"O", "H", "H"}, "H2O"},
		{"ethylene", []string{"C", "C", "H", "H", "H", "H"}, "C2H4"},
		{"methane", []string{"C", "H", "H", "H", "H"}, "CH4"},
		{"salt", []string{"Na", "Cl"}, "ClNa"},
		{"empty", nil, ""},
	}

	for _, test := range tests {
		atoms := make([]Atom, len(test.symbols))
		for i, s := range test.symbols {
			atoms[i].Symbol = s
		}
		got := NewMolecule(atoms).Formula()
		if got != test.expected {
			t.Errorf("%s: Formula() = %q, expected %q", test.name, got, test.expected)
		}
	}
}

func TestCenterOfGeometry(t *testing.T) {
	m := NewMolecule([]Atom{
		{Symbol: "C", Position: r3.Vec{X: -1, Y: 0, Z: 0}},
		{Symbol: "C", Position: r3.Vec{X: 1, Y: 2, Z: 4}},
	})

	c := m.CenterOfGeometry()
	expected := r3.Vec{X: 0, Y: 1, Z: 2}
	if r3.Norm(r3.Sub(c, expected)) > 1e-12 {
		t.Errorf("CenterOfGeometry() = %v, expected %v", c, expected)
	}

	if c := NewMolecule(nil).CenterOfGeometry(); c != (r3.Vec{}) {
		t.Errorf("empty molecule center = %v, expected zero", c)
	}
}

func TestBounds(t *testing.T) {
	m := water()
	min, max := m.Bounds()

	if min.Y != -0.7572 || max.Y != 0.7572 {
		t.Errorf("Bounds() Y = [%v, %v], expected [-0.7572, 0.7572]", min.Y, max.Y)
	}
	if math.Abs(min.Z-(-0.4692)) > 1e-12 || math.Abs(max.Z-0.1173) > 1e-12 {
		t.Errorf("Bounds() Z = [%v, %v], expected [-0.4692, 0.1173]", min.Z, max.Z)
	}
}

func TestAttachDetachField(t *testing.T) {
	m := water()
	f, err := NewScalarField(r3.Vec{}, [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}, [3]int{1, 1, 1}, []float64{0.5})
	if err != nil {
		t.Fatalf("NewScalarField failed: %v", err)
	}

	if err := m.AttachField("density", f); err != nil {
		t.Fatalf("AttachField failed: %v", err)
	}
	if m.Fields["density"] != f {
		t.Error("field should be retrievable after attach")
	}

	// Duplicate names are rejected.
	if err := m.AttachField("density", f); err == nil {
		t.Error("duplicate field name should be rejected")
	}
	if err := m.AttachField("other", nil); err == nil {
		t.Error("nil field should be rejected")
	}

	m.DetachField("density")
	if _, ok := m.Fields["density"]; ok {
		t.Error("field should be gone after detach")
	}
	m.DetachField("never-there")
}

func TestCopyIsDeep(t *testing.T) {
	m := water()
	f, _ := NewScalarField(r3.Vec{}, [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}, [3]int{1, 1, 1}, []float64{0.5})
	if err := m.AttachField("density", f); err != nil {
		t.Fatalf("AttachField failed: %v", err)
	}
	m.PerceiveBonds()

	c := m.Copy()
	c.Atoms[0].Position.X = 99
	c.Fields["density"].Data[0] = 42
	c.Bonds[0].Order = 3

	if m.Atoms[0].Position.X == 99 {
		t.Error("copy shares atom storage with original")
	}
	if m.Fields["density"].Data[0] == 42 {
		t.Error("copy shares field data with original")
	}
	if m.Bonds[0].Order == 3 {
		t.Error("copy shares bond storage with original")
	}
}
