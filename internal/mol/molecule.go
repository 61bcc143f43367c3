// Package mol holds the molecular data model: atoms, bonds, molecules,
// volumetric scalar fields and multi-frame trajectories. Geometry is in
// Angstrom throughout; file readers convert on the way in.
package mol

import (
	"fmt"
	"sort"
	"strings"

	"gonum.org/v1/gonum/spatial/r3"
)

// BohrToAngstrom converts atomic-unit lengths as found in cube files.
const BohrToAngstrom = 0.529177210903

// Atom is a single atom with its position in Angstrom.
type Atom struct {
	Symbol   string
	Position r3.Vec
}

// Bond connects two atoms by index. Order is 1, 2 or 3.
type Bond struct {
	I, J  int
	Order int
}

// Molecule is a set of atoms plus the bonds between them and any named
// volumetric fields attached to it (electron density, orbitals, ...).
type Molecule struct {
	Atoms  []Atom
	Bonds  []Bond
	Fields map[string]*ScalarField
}

// NewMolecule builds a molecule from atoms. Bonds are not perceived
// automatically; call PerceiveBonds when the source format carries none.
func NewMolecule(atoms []Atom) *Molecule {
	return &Molecule{Atoms: atoms}
}

// NumAtoms returns the atom count.
func (m *Molecule) NumAtoms() int {
	return len(m.Atoms)
}

// Formula returns the Hill-order chemical formula (C first, H second,
// rest alphabetical), e.g. "C2H4" or "H2O".
func (m *Molecule) Formula() string {
	counts := map[string]int{}
	for _, a := range m.Atoms {
		counts[a.Symbol]++
	}

	syms := make([]string, 0, len(counts))
	for s := range counts {
		if s != "C" && s != "H" {
			syms = append(syms, s)
		}
	}
	sort.Strings(syms)
	if counts["H"] > 0 {
		syms = append([]string{"H"}, syms...)
	}
	if counts["C"] > 0 {
		syms = append([]string{"C"}, syms...)
	}

	var b strings.Builder
	for _, s := range syms {
		b.WriteString(s)
		if counts[s] > 1 {
			fmt.Fprintf(&b, "%d", counts[s])
		}
	}
	return b.String()
}

// CenterOfGeometry returns the unweighted mean position of all atoms.
func (m *Molecule) CenterOfGeometry() r3.Vec {
	if len(m.Atoms) == 0 {
		return r3.Vec{}
	}
	var sum r3.Vec
	for _, a := range m.Atoms {
		sum = r3.Add(sum, a.Position)
	}
	return r3.Scale(1/float64(len(m.Atoms)), sum)
}

// Bounds returns the axis-aligned bounding box over all atom positions.
// The zero box is returned for an empty molecule.
func (m *Molecule) Bounds() (min, max r3.Vec) {
	if len(m.Atoms) == 0 {
		return r3.Vec{}, r3.Vec{}
	}
	min = m.Atoms[0].Position
	max = m.Atoms[0].Position
	for _, a := range m.Atoms[1:] {
		p := a.Position
		if p.X < min.X {
			min.X = p.X
		}
		if p.Y < min.Y {
			min.Y = p.Y
		}
		if p.Z < min.Z {
			min.Z = p.Z
		}
		if p.X > max.X {
			max.X = p.X
		}
		if p.Y > max.Y {
			max.Y = p.Y
		}
		if p.Z > max.Z {
			max.Z = p.Z
		}
	}
	return min, max
}

// AttachField adds a named scalar field. Names must be unique per
// molecule.
func (m *Molecule) AttachField(name string, field *ScalarField) error {
	if field == nil {
		return fmt.Errorf("attach field %q: nil field", name)
	}
	if m.Fields == nil {
		m.Fields = make(map[string]*ScalarField)
	}
	if _, ok := m.Fields[name]; ok {
		return fmt.Errorf("attach field: %q already exists", name)
	}
	m.Fields[name] = field
	return nil
}

// DetachField removes a named scalar field. Removing an unknown name is
// a no-op.
func (m *Molecule) DetachField(name string) {
	delete(m.Fields, name)
}

// Copy returns a deep copy, scalar fields included.
func (m *Molecule) Copy() *Molecule {
	c := &Molecule{
		Atoms: append([]Atom(nil), m.Atoms...),
		Bonds: append([]Bond(nil), m.Bonds...),
	}
	if m.Fields != nil {
		c.Fields = make(map[string]*ScalarField, len(m.Fields))
		for name, f := range m.Fields {
			c.Fields[name] = f.Copy()
		}
	}
	return c
}
