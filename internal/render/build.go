package render

import (
	"image/color"
	"math"
	"strconv"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chemvista/chemvista/internal/mol"
)

// Scene builders: translate molecules and scalar fields into rasterizer
// primitives according to their render settings.

// Bond tube radii by order: a single fat tube, or two/three thinner
// offset tubes.
const (
	singleBondRadius = 0.05
	doubleBondRadius = 0.025
	doubleBondOffset = 0.03
	tripleBondRadius = 0.02
	tripleBondOffset = 0.05
)

// AddMolecule adds one molecule's atoms and bonds to the scene.
func AddMolecule(s *Scene, m *mol.Molecule, set MoleculeSettings) {
	labelColor := color.NRGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff}

	for i, a := range m.Atoms {
		if !set.ShowHydrogens && a.Symbol == "H" {
			continue
		}
		el := mol.ElementBySymbol(a.Symbol)
		c := el.Color
		if over, ok := set.ColorOverrides[a.Symbol]; ok {
			c = over
		}
		s.AddSphere(Sphere{
			Center: a.Position,
			Radius: el.DisplayRadius,
			Color:  c,
			Alpha:  set.Alpha,
		})
		if set.ShowNumbers {
			s.AddLabel(Label{
				Pos:   r3.Add(a.Position, r3.Vec{Y: el.DisplayRadius * 1.4}),
				Text:  strconv.Itoa(i),
				Color: labelColor,
			})
		}
	}

	grey := color.NRGBA{R: 0xd3, G: 0xd3, B: 0xd3, A: 0xff}
	for _, b := range m.Bonds {
		ai, aj := m.Atoms[b.I], m.Atoms[b.J]
		if !set.ShowHydrogens && (ai.Symbol == "H" || aj.Symbol == "H") {
			continue
		}
		for _, tube := range bondTubes(ai.Position, aj.Position, b.Order) {
			tube.Color = grey
			tube.Alpha = set.Alpha
			s.AddCylinder(tube)
		}
	}
}

// bondTubes lays out the cylinders for one bond: double and triple
// bonds become parallel tubes offset along a perpendicular.
func bondTubes(a, b r3.Vec, order int) []Cylinder {
	switch order {
	case 2:
		perp := perpendicular(r3.Sub(b, a))
		var out []Cylinder
		for _, sign := range []float64{-1, 1} {
			off := r3.Scale(sign*doubleBondOffset, perp)
			out = append(out, Cylinder{A: r3.Add(a, off), B: r3.Add(b, off), Radius: doubleBondRadius})
		}
		return out
	case 3:
		perp := perpendicular(r3.Sub(b, a))
		var out []Cylinder
		for _, sign := range []float64{-1, 0, 1} {
			off := r3.Scale(sign*tripleBondOffset, perp)
			out = append(out, Cylinder{A: r3.Add(a, off), B: r3.Add(b, off), Radius: tripleBondRadius})
		}
		return out
	default:
		return []Cylinder{{A: a, B: b, Radius: singleBondRadius}}
	}
}

// perpendicular returns a unit vector perpendicular to v, chosen
// against the smallest component axis for stability.
func perpendicular(v r3.Vec) r3.Vec {
	ax := r3.Vec{X: 1}
	switch smallestComponent(v) {
	case 1:
		ax = r3.Vec{Y: 1}
	case 2:
		ax = r3.Vec{Z: 1}
	}
	p := r3.Cross(v, ax)
	n := r3.Norm(p)
	if n == 0 {
		return r3.Vec{X: 1}
	}
	return r3.Scale(1/n, p)
}

func smallestComponent(v r3.Vec) int {
	x, y, z := math.Abs(v.X), math.Abs(v.Y), math.Abs(v.Z)
	switch {
	case x <= y && x <= z:
		return 0
	case y <= z:
		return 1
	default:
		return 2
	}
}

// AddField adds a scalar field's isosurfaces and grid decorations to
// the scene.
func AddField(s *Scene, f *mol.ScalarField, set FieldSettings) {
	for i, iso := range set.IsoValues {
		c := set.IsoColorAt(i)
		for _, tri := range Isosurface(f, iso) {
			s.AddTriangle(Triangle{
				P0: tri.P0, P1: tri.P1, P2: tri.P2,
				Color: c,
				Alpha: set.Opacity,
			})
		}
	}

	if set.ShowGridSurface {
		addGridOutline(s, f, set.GridSurfaceColor)
	}

	if set.ShowGridPoints || set.ShowFilteredPoints {
		lo, hi := set.PointValueRange[0], set.PointValueRange[1]
		radius := float64(set.GridPointSize) * 0.02
		for i := 0; i < f.Shape[0]; i++ {
			for j := 0; j < f.Shape[1]; j++ {
				for k := 0; k < f.Shape[2]; k++ {
					v := f.Value(i, j, k)
					if set.ShowFilteredPoints && !set.ShowGridPoints && (v < lo || v > hi) {
						continue
					}
					s.AddSphere(Sphere{
						Center: f.Point(i, j, k),
						Radius: radius,
						Color:  set.GridPointsColor,
						Alpha:  1,
					})
				}
			}
		}
	}
}

// addGridOutline draws the 12 edges of the field's bounding box.
func addGridOutline(s *Scene, f *mol.ScalarField, c color.NRGBA) {
	ni, nj, nk := f.Shape[0]-1, f.Shape[1]-1, f.Shape[2]-1
	corner := func(i, j, k int) r3.Vec { return f.Point(i*ni, j*nj, k*nk) }

	edges := [12][2][3]int{
		{{0, 0, 0}, {1, 0, 0}}, {{0, 1, 0}, {1, 1, 0}}, {{0, 0, 1}, {1, 0, 1}}, {{0, 1, 1}, {1, 1, 1}},
		{{0, 0, 0}, {0, 1, 0}}, {{1, 0, 0}, {1, 1, 0}}, {{0, 0, 1}, {0, 1, 1}}, {{1, 0, 1}, {1, 1, 1}},
		{{0, 0, 0}, {0, 0, 1}}, {{1, 0, 0}, {1, 0, 1}}, {{0, 1, 0}, {0, 1, 1}}, {{1, 1, 0}, {1, 1, 1}},
	}
	for _, e := range edges {
		s.AddLine(Line{
			A:     corner(e[0][0], e[0][1], e[0][2]),
			B:     corner(e[1][0], e[1][1], e[1][2]),
			Color: c,
		})
	}
}
