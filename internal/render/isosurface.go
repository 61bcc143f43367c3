package render

import (
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chemvista/chemvista/internal/mol"
)

// Isosurface extraction by marching tetrahedra: each grid cell is split
// into six tetrahedra and every tetrahedron crossing the isovalue
// contributes one or two triangles with vertices interpolated along the
// crossing edges.

// Tri is one isosurface triangle in world space.
type Tri struct {
	P0, P1, P2 r3.Vec
}

// cube corner offsets, indexed 0..7 as (dx, dy, dz) bits.
var cornerOffsets = [8][3]int{
	{0, 0, 0}, {1, 0, 0}, {1, 1, 0}, {0, 1, 0},
	{0, 0, 1}, {1, 0, 1}, {1, 1, 1}, {0, 1, 1},
}

// the standard six-tetrahedra decomposition of a cube along the 0-6
// diagonal.
var cellTetrahedra = [6][4]int{
	{0, 5, 1, 6},
	{0, 1, 2, 6},
	{0, 2, 3, 6},
	{0, 3, 7, 6},
	{0, 7, 4, 6},
	{0, 4, 5, 6},
}

// Isosurface extracts the triangles of the given isovalue from a field.
func Isosurface(f *mol.ScalarField, iso float64) []Tri {
	var tris []Tri

	var pos [8]r3.Vec
	var val [8]float64

	for i := 0; i < f.Shape[0]-1; i++ {
		for j := 0; j < f.Shape[1]-1; j++ {
			for k := 0; k < f.Shape[2]-1; k++ {
				for c, off := range cornerOffsets {
					ci, cj, ck := i+off[0], j+off[1], k+off[2]
					pos[c] = f.Point(ci, cj, ck)
					val[c] = f.Value(ci, cj, ck)
				}
				for _, tet := range cellTetrahedra {
					tris = marchTetrahedron(tris, &pos, &val, tet, iso)
				}
			}
		}
	}
	return tris
}

func marchTetrahedron(tris []Tri, pos *[8]r3.Vec, val *[8]float64, tet [4]int, iso float64) []Tri {
	var inside [4]bool
	n := 0
	for c, idx := range tet {
		if val[idx] >= iso {
			inside[c] = true
			n++
		}
	}

	// Vertex on the edge between tet corners a and b.
	edge := func(a, b int) r3.Vec {
		ia, ib := tet[a], tet[b]
		va, vb := val[ia], val[ib]
		t := 0.5
		if vb != va {
			t = (iso - va) / (vb - va)
		}
		return r3.Add(pos[ia], r3.Scale(t, r3.Sub(pos[ib], pos[ia])))
	}

	// Index of the single corner on the minority side.
	lone := func(want bool) int {
		for c := 0; c < 4; c++ {
			if inside[c] == want {
				return c
			}
		}
		return -1
	}

	switch n {
	case 0, 4:
		return tris

	case 1, 3:
		a := lone(n == 1)
		others := make([]int, 0, 3)
		for c := 0; c < 4; c++ {
			if c != a {
				others = append(others, c)
			}
		}
		return append(tris, Tri{
			P0: edge(a, others[0]),
			P1: edge(a, others[1]),
			P2: edge(a, others[2]),
		})

	default: // 2 vs 2: quad split into two triangles
		var in, out []int
		for c := 0; c < 4; c++ {
			if inside[c] {
				in = append(in, c)
			} else {
				out = append(out, c)
			}
		}
		q0 := edge(in[0], out[0])
		q1 := edge(in[0], out[1])
		q2 := edge(in[1], out[1])
		q3 := edge(in[1], out[0])
		return append(tris,
			Tri{P0: q0, P1: q1, P2: q2},
			Tri{P0: q0, P1: q2, P2: q3},
		)
	}
}
