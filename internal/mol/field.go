package mol

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// ScalarField is a volumetric grid of values, laid out exactly as in a
// Gaussian cube file: the last axis varies fastest, so the value at grid
// point (i, j, k) lives at Data[(i*Shape[1]+j)*Shape[2]+k]. Axes hold
// the per-step displacement vector of each grid axis in Angstrom.
type ScalarField struct {
	Origin r3.Vec
	Axes   [3]r3.Vec
	Shape  [3]int
	Data   []float64
}

// NewScalarField validates shape against the data length.
func NewScalarField(origin r3.Vec, axes [3]r3.Vec, shape [3]int, data []float64) (*ScalarField, error) {
	n := shape[0] * shape[1] * shape[2]
	if shape[0] <= 0 || shape[1] <= 0 || shape[2] <= 0 {
		return nil, fmt.Errorf("scalar field: invalid shape %v", shape)
	}
	if len(data) != n {
		return nil, fmt.Errorf("scalar field: shape %v wants %d values, got %d", shape, n, len(data))
	}
	return &ScalarField{Origin: origin, Axes: axes, Shape: shape, Data: data}, nil
}

// Value returns the grid value at (i, j, k).
func (f *ScalarField) Value(i, j, k int) float64 {
	return f.Data[(i*f.Shape[1]+j)*f.Shape[2]+k]
}

// Point returns the spatial position of grid point (i, j, k).
func (f *ScalarField) Point(i, j, k int) r3.Vec {
	p := f.Origin
	p = r3.Add(p, r3.Scale(float64(i), f.Axes[0]))
	p = r3.Add(p, r3.Scale(float64(j), f.Axes[1]))
	p = r3.Add(p, r3.Scale(float64(k), f.Axes[2]))
	return p
}

// MinMax returns the smallest and largest value in the field.
func (f *ScalarField) MinMax() (min, max float64) {
	min, max = math.Inf(1), math.Inf(-1)
	for _, v := range f.Data {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	return min, max
}

// Bounds returns the axis-aligned bounding box of the grid corners.
func (f *ScalarField) Bounds() (min, max r3.Vec) {
	min = f.Origin
	max = f.Origin
	for i := 0; i <= 1; i++ {
		for j := 0; j <= 1; j++ {
			for k := 0; k <= 1; k++ {
				c := f.Point(i*(f.Shape[0]-1), j*(f.Shape[1]-1), k*(f.Shape[2]-1))
				min.X = math.Min(min.X, c.X)
				min.Y = math.Min(min.Y, c.Y)
				min.Z = math.Min(min.Z, c.Z)
				max.X = math.Max(max.X, c.X)
				max.Y = math.Max(max.Y, c.Y)
				max.Z = math.Max(max.Z, c.Z)
			}
		}
	}
	return min, max
}

// Copy returns a deep copy.
func (f *ScalarField) Copy() *ScalarField {
	return &ScalarField{
		Origin: f.Origin,
		Axes:   f.Axes,
		Shape:  f.Shape,
		Data:   append([]float64(nil), f.Data...),
	}
}
