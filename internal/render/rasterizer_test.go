package render

import (
	"image/color"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chemvista/chemvista/internal/mol"
)

func testBackground() color.NRGBA {
	return color.NRGBA{R: 0x10, G: 0x10, B: 0x18, A: 0xff}
}

func countForeground(t *testing.T, s *Scene, cam *Camera, w, h int) int {
	t.Helper()
	img := s.Render(cam, w, h)
	bg := testBackground()
	n := 0
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			c := img.NRGBAAt(x, y)
			if c.R != bg.R || c.G != bg.G || c.B != bg.B {
				n++
			}
		}
	}
	return n
}

func TestRenderEmptyScene(t *testing.T) {
	s := NewScene(testBackground())
	if !s.IsEmpty() {
		t.Error("fresh scene should be empty")
	}
	if n := countForeground(t, s, NewCamera(), 64, 64); n != 0 {
		t.Errorf("empty scene rendered %d foreground pixels", n)
	}
}

func TestRenderSphere(t *testing.T) {
	s := NewScene(testBackground())
	s.AddSphere(Sphere{Radius: 1, Color: color.NRGBA{R: 0xff, A: 0xff}, Alpha: 1})

	cam := NewCamera()
	cam.Distance = 5

	n := countForeground(t, s, cam, 64, 64)
	if n == 0 {
		t.Fatal("sphere rendered no pixels")
	}
	if n == 64*64 {
		t.Fatal("sphere should not cover the whole viewport")
	}

	// The sphere sits at the camera target, so its silhouette covers the
	// viewport center.
	img := s.Render(cam, 64, 64)
	c := img.NRGBAAt(32, 32)
	if c.R == testBackground().R && c.G == testBackground().G {
		t.Error("viewport center should be covered by the sphere")
	}
}

func TestRenderAlphaBlend(t *testing.T) {
	s := NewScene(color.NRGBA{A: 0xff})
	s.AddSphere(Sphere{Radius: 1, Color: color.NRGBA{R: 0xff, A: 0xff}, Alpha: 0.5})

	cam := NewCamera()
	cam.Distance = 5

	img := s.Render(cam, 64, 64)
	c := img.NRGBAAt(32, 32)
	if c.R == 0 || c.R == 0xff {
		t.Errorf("half-transparent sphere over black should mix, got R=%#x", c.R)
	}
	if c.A != 0xff {
		t.Errorf("output stays opaque, got A=%#x", c.A)
	}
}

func TestSceneBounds(t *testing.T) {
	s := NewScene(testBackground())
	if _, _, ok := s.Bounds(); ok {
		t.Error("empty scene should report no bounds")
	}

	s.AddSphere(Sphere{Center: r3.Vec{X: 1}, Radius: 0.5})
	s.AddLine(Line{A: r3.Vec{X: -2}, B: r3.Vec{Y: 3}})
	min, max, ok := s.Bounds()
	if !ok {
		t.Fatal("scene with content should report bounds")
	}
	if min.X != -2 || max.X != 1.5 || max.Y != 3 {
		t.Errorf("bounds = %v .. %v", min, max)
	}
}

func TestBondTubes(t *testing.T) {
	a, b := r3.Vec{}, r3.Vec{X: 1.5}
	tests := []struct {
		order int
		want  int
	}{
		{order: 0, want: 1},
		{order: 1, want: 1},
		{order: 2, want: 2},
		{order: 3, want: 3},
	}
	for _, tt := range tests {
		tubes := bondTubes(a, b, tt.order)
		if len(tubes) != tt.want {
			t.Errorf("order %d: %d tubes, expected %d", tt.order, len(tubes), tt.want)
		}
		for _, tube := range tubes {
			axis := r3.Sub(tube.B, tube.A)
			if r3.Norm(r3.Sub(axis, r3.Sub(b, a))) > 1e-12 {
				t.Errorf("order %d: tube axis %v not parallel to the bond", tt.order, axis)
			}
		}
	}
}

func TestPerpendicular(t *testing.T) {
	for _, v := range []r3.Vec{{X: 1}, {Y: 2}, {Z: -3}, {X: 1, Y: 1, Z: 1}} {
		p := perpendicular(v)
		if d := r3.Dot(p, v); d > 1e-12 || d < -1e-12 {
			t.Errorf("perpendicular(%v) = %v not orthogonal (dot %v)", v, p, d)
		}
		if n := r3.Norm(p); n < 0.999 || n > 1.001 {
			t.Errorf("perpendicular(%v) not unit length: %v", v, n)
		}
	}
}

func TestAddMoleculeHydrogenFilter(t *testing.T) {
	m := mol.NewMolecule([]mol.Atom{
		{Symbol: "O", Position: r3.Vec{}},
		{Symbol: "H", Position: r3.Vec{X: 0.96}},
		{Symbol: "H", Position: r3.Vec{X: -0.24, Y: 0.93}},
	})
	m.PerceiveBonds()
	if len(m.Bonds) != 2 {
		t.Fatalf("expected 2 bonds in water, got %d", len(m.Bonds))
	}

	set := DefaultMoleculeSettings()
	s := NewScene(testBackground())
	AddMolecule(s, m, set)
	if len(s.spheres) != 3 || len(s.cylinders) != 2 {
		t.Errorf("with hydrogens: %d spheres, %d cylinders", len(s.spheres), len(s.cylinders))
	}

	set.ShowHydrogens = false
	s = NewScene(testBackground())
	AddMolecule(s, m, set)
	if len(s.spheres) != 1 || len(s.cylinders) != 0 {
		t.Errorf("without hydrogens: %d spheres, %d cylinders", len(s.spheres), len(s.cylinders))
	}
}

func TestAddMoleculeColorOverride(t *testing.T) {
	m := mol.NewMolecule([]mol.Atom{{Symbol: "C"}})
	set := DefaultMoleculeSettings()
	set.ColorOverrides = map[string]color.NRGBA{"C": {R: 0x12, G: 0x34, B: 0x56, A: 0xff}}

	s := NewScene(testBackground())
	AddMolecule(s, m, set)
	if len(s.spheres) != 1 {
		t.Fatalf("expected 1 sphere, got %d", len(s.spheres))
	}
	if s.spheres[0].Color.R != 0x12 {
		t.Errorf("override not applied: %v", s.spheres[0].Color)
	}
}

func TestAddMoleculeNumbers(t *testing.T) {
	m := mol.NewMolecule([]mol.Atom{{Symbol: "C"}, {Symbol: "N", Position: r3.Vec{X: 1.2}}})
	set := DefaultMoleculeSettings()
	set.ShowNumbers = true

	s := NewScene(testBackground())
	AddMolecule(s, m, set)
	if len(s.labels) != 2 {
		t.Fatalf("expected 2 labels, got %d", len(s.labels))
	}
	if s.labels[0].Text != "0" || s.labels[1].Text != "1" {
		t.Errorf("labels = %q, %q", s.labels[0].Text, s.labels[1].Text)
	}
}

func TestAddFieldPrimitives(t *testing.T) {
	f := rampField(t, 3)
	set := DefaultFieldSettings()
	set.IsoValues = []float64{0.5}

	s := NewScene(testBackground())
	AddField(s, f, set)
	if len(s.triangles) == 0 {
		t.Error("expected isosurface triangles")
	}
	if len(s.lines) != 0 {
		t.Errorf("grid outline disabled, got %d lines", len(s.lines))
	}

	set.ShowGridSurface = true
	set.ShowGridPoints = true
	s = NewScene(testBackground())
	AddField(s, f, set)
	if len(s.lines) != 12 {
		t.Errorf("expected 12 outline edges, got %d", len(s.lines))
	}
	if len(s.spheres) != 27 {
		t.Errorf("expected 27 grid points, got %d", len(s.spheres))
	}
}

func TestAddFieldFilteredPoints(t *testing.T) {
	f := rampField(t, 3)
	set := DefaultFieldSettings()
	set.IsoValues = nil
	set.ShowFilteredPoints = true
	set.PointValueRange = [2]float64{1, 2}

	s := NewScene(testBackground())
	AddField(s, f, set)
	// Values are 0, 1 and 2 per x-layer of 9 points; layers 1 and 2 pass.
	if len(s.spheres) != 18 {
		t.Errorf("expected 18 filtered points, got %d", len(s.spheres))
	}
}
