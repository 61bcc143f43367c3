package mol

import (
	"math"
	"testing"

	"gonum.org/v1/gonum/spatial/r3"
)

func sampleField(t *testing.T) *ScalarField {
	t.Helper()
	data := make([]float64, 2*3*4)
	for i := range data {
		data[i] = float64(i)
	}
	f, err := NewScalarField(
		r3.Vec{X: 1, Y: 2, Z: 3},
		[3]r3.Vec{{X: 0.5}, {Y: 0.5}, {Z: 0.5}},
		[3]int{2, 3, 4},
		data,
	)
	if err != nil {
		t.Fatalf("NewScalarField failed: %v", err)
	}
	return f
}

func TestScalarFieldIndexing(t *testing.T) {
	f := sampleField(t)

	// Cube layout: last axis fastest.
	tests := []struct {
		i, j, k  int
		expected float64
	}{
		{0, 0, 0, 0},
		{0, 0, 3, 3},
		{0, 1, 0, 4},
		{1, 0, 0, 12},
		{1, 2, 3, 23},
	}
	for _, test := range tests {
		if got := f.Value(test.i, test.j, test.k); got != test.expected {
			t.Errorf("Value(%d,%d,%d) = %v, expected %v", test.i, test.j, test.k, got, test.expected)
		}
	}
}

func TestScalarFieldPoint(t *testing.T) {
	f := sampleField(t)
	p := f.Point(1, 2, 3)
	expected := r3.Vec{X: 1.5, Y: 3, Z: 4.5}
	if r3.Norm(r3.Sub(p, expected)) > 1e-12 {
		t.Errorf("Point(1,2,3) = %v, expected %v", p, expected)
	}
}

func TestScalarFieldMinMax(t *testing.T) {
	f := sampleField(t)
	min, max := f.MinMax()
	if min != 0 || max != 23 {
		t.Errorf("MinMax() = (%v, %v), expected (0, 23)", min, max)
	}
}

func TestScalarFieldBounds(t *testing.T) {
	f := sampleField(t)
	min, max := f.Bounds()
	if min != (r3.Vec{X: 1, Y: 2, Z: 3}) {
		t.Errorf("Bounds() min = %v", min)
	}
	expectedMax := r3.Vec{X: 1.5, Y: 3, Z: 4.5}
	if math.Abs(max.X-expectedMax.X) > 1e-12 || math.Abs(max.Y-expectedMax.Y) > 1e-12 || math.Abs(max.Z-expectedMax.Z) > 1e-12 {
		t.Errorf("Bounds() max = %v, expected %v", max, expectedMax)
	}
}

func TestNewScalarFieldValidation(t *testing.T) {
	axes := [3]r3.Vec{{X: 1}, {Y: 1}, {Z: 1}}
	if _, err := NewScalarField(r3.Vec{}, axes, [3]int{2, 2, 2}, make([]float64, 7)); err == nil {
		t.Error("short data should be rejected")
	}
	if _, err := NewScalarField(r3.Vec{}, axes, [3]int{0, 2, 2}, nil); err == nil {
		t.Error("zero dimension should be rejected")
	}
}
