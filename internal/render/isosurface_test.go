package render

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chemvista/chemvista/internal/mol"
)

// rampField is linear in x: value(i,j,k) = i. Its isosurfaces are planes
// of constant x, which makes vertex positions easy to check.
func rampField(t *testing.T, n int) *mol.ScalarField {
	t.Helper()
	data := make([]float64, n*n*n)
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			for k := 0; k < n; k++ {
				data[(i*n+j)*n+k] = float64(i)
			}
		}
	}
	axes := [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	f, err := mol.NewScalarField(r3.Vec{}, axes, [3]int{n, n, n}, data)
	if err != nil {
		t.Fatalf("NewScalarField: %v", err)
	}
	return f
}

func TestIsosurfacePlanarField(t *testing.T) {
	f := rampField(t, 3)
	tris := Isosurface(f, 0.5)
	if len(tris) == 0 {
		t.Fatal("expected triangles for an in-range isovalue")
	}
	for _, tri := range tris {
		for _, p := range []r3.Vec{tri.P0, tri.P1, tri.P2} {
			if math.Abs(p.X-0.5) > 1e-9 {
				t.Fatalf("vertex %v off the x=0.5 plane", p)
			}
		}
	}
}

func TestIsosurfaceOutOfRange(t *testing.T) {
	f := rampField(t, 3)
	for _, iso := range []float64{-1, 5} {
		if tris := Isosurface(f, iso); len(tris) != 0 {
			t.Errorf("iso %v: expected no triangles, got %d", iso, len(tris))
		}
	}
}

func TestIsosurfaceAreaMatchesPlane(t *testing.T) {
	f := rampField(t, 4)
	// The x=1.5 plane cuts a 3x3 square out of the grid box.
	var area float64
	for _, tri := range Isosurface(f, 1.5) {
		cr := r3.Cross(r3.Sub(tri.P1, tri.P0), r3.Sub(tri.P2, tri.P0))
		area += 0.5 * r3.Norm(cr)
	}
	if math.Abs(area-9) > 1e-9 {
		t.Errorf("surface area = %v, expected 9", area)
	}
}
