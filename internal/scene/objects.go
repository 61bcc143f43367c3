package scene

import (
	"fmt"
	"sort"

	"github.com/chemvista/chemvista/internal/logger"
	"github.com/chemvista/chemvista/internal/mol"
	"github.com/chemvista/chemvista/internal/render"
)

// payload is the type-specific content of a node. Which fields are set
// depends on the node kind.
type payload struct {
	Molecule *mol.Molecule
	Field    *mol.ScalarField

	MolSettings   render.MoleculeSettings
	FieldSettings render.FieldSettings

	// activeFrame selects which child of a trajectory node is drawn.
	activeFrame int
}

// NewMoleculeNode wraps a molecule. Fields already attached to the
// molecule become scalar-field child nodes. Only uniquely named
// scalar-field children may be added later; they stay synced with the
// molecule's field map.
func NewMoleculeNode(name string, m *mol.Molecule, set render.MoleculeSettings, fieldSet render.FieldSettings) *Node {
	n := newNode(name, KindMolecule)
	n.Molecule = m
	n.MolSettings = set.Copy()

	n.canAdopt = func(parent, child *Node) error {
		if child.kind != KindField {
			return fmt.Errorf("molecule %q only holds scalar fields, not %s", parent.name, child.kind)
		}
		if child.Field == nil {
			return fmt.Errorf("scalar field %q has no data", child.name)
		}
		for _, sib := range parent.children {
			if sib.name == child.name {
				return fmt.Errorf("molecule %q already has a field named %q", parent.name, child.name)
			}
		}
		return nil
	}
	n.onAdopt = func(parent, child *Node) {
		if parent.Molecule.Fields[child.name] == child.Field {
			return
		}
		if err := parent.Molecule.AttachField(child.name, child.Field); err != nil {
			log := logger.For("scene")
			log.Warn().Err(err).Str("field", child.name).Msg("field not attached")
		}
	}
	n.onOrphan = func(parent, child *Node) {
		parent.Molecule.DetachField(child.name)
	}

	// Pre-attached fields show up as children immediately.
	for _, fname := range sortedFieldNames(m) {
		child := NewScalarFieldNode(fname, m.Fields[fname], fieldSet)
		n.AddChild(child)
	}
	return n
}

func sortedFieldNames(m *mol.Molecule) []string {
	names := make([]string, 0, len(m.Fields))
	for name := range m.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewScalarFieldNode wraps a volumetric field. Field nodes are leaves.
func NewScalarFieldNode(name string, f *mol.ScalarField, set render.FieldSettings) *Node {
	n := newNode(name, KindField)
	n.Field = f
	n.FieldSettings = set.Copy()
	n.canAdopt = func(parent, child *Node) error {
		return fmt.Errorf("scalar field %q cannot hold children", parent.name)
	}
	return n
}

// NewTrajectoryNode wraps a multi-frame trajectory. Each frame becomes
// a molecule child named Frame_NNN; only molecule nodes may be added.
func NewTrajectoryNode(name string, traj *mol.Trajectory, set render.MoleculeSettings, fieldSet render.FieldSettings) *Node {
	n := newNode(name, KindTrajectory)
	n.canAdopt = func(parent, child *Node) error {
		if child.kind != KindMolecule {
			return fmt.Errorf("trajectory %q only holds molecule frames, not %s", parent.name, child.kind)
		}
		return nil
	}

	for i, frame := range traj.Frames() {
		child := NewMoleculeNode(FrameName(i), frame, set, fieldSet)
		n.AddChild(child)
	}
	return n
}

// FrameName formats the conventional name of trajectory frame i.
func FrameName(i int) string {
	return fmt.Sprintf("Frame_%03d", i)
}

// ActiveFrame returns the index of the frame a trajectory node draws.
func (n *Node) ActiveFrame() int {
	return n.activeFrame
}

// SetActiveFrame selects which frame a trajectory node draws.
func (n *Node) SetActiveFrame(i int) error {
	if n.kind != KindTrajectory {
		return fmt.Errorf("%s node has no frames", n.kind)
	}
	if i < 0 || i >= len(n.children) {
		return fmt.Errorf("frame %d out of range [0, %d)", i, len(n.children))
	}
	n.activeFrame = i
	n.events.nodeChanged(n.id)
	return nil
}

// UpdateMoleculeSettings replaces the render settings of a molecule
// node.
func (n *Node) UpdateMoleculeSettings(set render.MoleculeSettings) error {
	if n.kind != KindMolecule {
		return fmt.Errorf("%s node has no molecule settings", n.kind)
	}
	n.MolSettings = set.Copy()
	n.events.nodeChanged(n.id)
	return nil
}

// UpdateFieldSettings replaces the render settings of a scalar-field
// node.
func (n *Node) UpdateFieldSettings(set render.FieldSettings) error {
	if n.kind != KindField {
		return fmt.Errorf("%s node has no field settings", n.kind)
	}
	n.FieldSettings = set.Copy()
	n.events.nodeChanged(n.id)
	return nil
}
