package mol

import "gonum.org/v1/gonum/spatial/r3"

// Bond perception constants from DOI:10.1186/1758-2946-3-33. Two atoms
// are bonded when their distance is below the sum of covalent radii plus
// bondTolerance, but above tooClose times that sum.
const (
	bondTolerance = 0.45
	tooClose      = 0.63
)

// Order guesses by distance/radius-sum ratio, applied only to C, N, O, S
// pairs where multiple bonds are plausible.
const (
	tripleBondRatio = 0.82
	doubleBondRatio = 0.93
)

var multiBondable = map[string]bool{"C": true, "N": true, "O": true, "S": true}

// PerceiveBonds replaces m.Bonds with bonds derived from interatomic
// distances and covalent radii. Formats like XYZ and cube carry no
// connectivity, so the scene derives it on load.
func (m *Molecule) PerceiveBonds() {
	m.Bonds = m.Bonds[:0]
	for i := 0; i < len(m.Atoms); i++ {
		ri := ElementBySymbol(m.Atoms[i].Symbol).CovalentRadius
		for j := i + 1; j < len(m.Atoms); j++ {
			rj := ElementBySymbol(m.Atoms[j].Symbol).CovalentRadius
			rsum := ri + rj

			d := r3.Norm(r3.Sub(m.Atoms[i].Position, m.Atoms[j].Position))
			if d >= rsum+bondTolerance || d <= tooClose*rsum {
				continue
			}

			m.Bonds = append(m.Bonds, Bond{
				I:     i,
				J:     j,
				Order: bondOrder(m.Atoms[i].Symbol, m.Atoms[j].Symbol, d, rsum),
			})
		}
	}
}

func bondOrder(si, sj string, dist, rsum float64) int {
	if !multiBondable[si] || !multiBondable[sj] {
		return 1
	}
	switch ratio := dist / rsum; {
	case ratio < tripleBondRatio:
		return 3
	case ratio < doubleBondRatio:
		return 2
	default:
		return 1
	}
}

// BondedTo lists the indices of atoms bonded to atom i.
func (m *Molecule) BondedTo(i int) []int {
	var out []int
	for _, b := range m.Bonds {
		switch i {
		case b.I:
			out = append(out, b.J)
		case b.J:
			out = append(out, b.I)
		}
	}
	return out
}
