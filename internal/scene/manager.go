package scene

import (
	"fmt"
	"image"
	"image/color"
	"sync"

	"github.com/rs/zerolog"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/chemvista/chemvista/internal/chemio"
	"github.com/chemvista/chemvista/internal/logger"
	"github.com/chemvista/chemvista/internal/mol"
	"github.com/chemvista/chemvista/internal/render"
)

// Manager owns the scene tree and provides the operations the UI and
// CLI drive: loading files, adding and rearranging objects, visibility
// and settings updates, and rendering. All methods are safe for
// concurrent use.
type Manager struct {
	mu       sync.Mutex
	root     *Node
	events   *Events
	defaults render.Defaults
	showAxes bool
	log      zerolog.Logger
}

// NewManager returns a manager with an empty scene.
func NewManager(defaults render.Defaults) *Manager {
	return &Manager{
		root:     NewRoot("Scene"),
		defaults: defaults,
		log:      logger.For("scene"),
	}
}

// SetEvents attaches an event sink to the whole tree.
func (m *Manager) SetEvents(e *Events) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = e
	m.root.SetEvents(e)
}

// Root returns the tree root.
func (m *Manager) Root() *Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root
}

// RootObjects returns the top-level scene objects.
func (m *Manager) RootObjects() []*Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root.Children()
}

// Defaults returns the render defaults new objects start from.
func (m *Manager) Defaults() render.Defaults {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.defaults
}

// SetBackground changes the viewport background color.
func (m *Manager) SetBackground(c color.NRGBA) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.defaults.Background = c
}

// SetShowAxes toggles the coordinate axes drawn at the origin.
func (m *Manager) SetShowAxes(show bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.showAxes = show
}

// ShowAxes reports whether the origin axes are drawn.
func (m *Manager) ShowAxes() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.showAxes
}

// LoadXYZ loads an XYZ file. A single-frame file becomes a molecule
// node, a multi-frame file a trajectory node. Returns the new node's
// UUID.
func (m *Manager) LoadXYZ(path string) (string, error) {
	traj, err := chemio.ReadXYZFile(path)
	if err != nil {
		return "", fmt.Errorf("load xyz: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := chemio.Stem(path)
	if traj.Len() == 1 {
		mlc := traj.Frame(0)
		mlc.PerceiveBonds()
		node := NewMoleculeNode(name, mlc, m.defaults.Molecule, m.defaults.Field)
		if err := m.root.AddChild(node); err != nil {
			return "", err
		}
		m.log.Info().Str("file", path).Str("name", name).Int("atoms", mlc.NumAtoms()).Msg("loaded molecule")
		return node.UUID(), nil
	}

	for _, frame := range traj.Frames() {
		frame.PerceiveBonds()
	}
	node := NewTrajectoryNode(name, traj, m.defaults.Molecule, m.defaults.Field)
	if err := m.root.AddChild(node); err != nil {
		return "", err
	}
	m.log.Info().Str("file", path).Str("name", name).Int("frames", traj.Len()).Msg("loaded trajectory")
	return node.UUID(), nil
}

// LoadMoleculeCube loads a cube file as a molecule with its volumetric
// data attached as a scalar-field child. Returns the molecule node's
// UUID.
func (m *Manager) LoadMoleculeCube(path string) (string, error) {
	res, err := chemio.ReadCubeFile(path)
	if err != nil {
		return "", fmt.Errorf("load cube: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := chemio.Stem(path)
	res.Molecule.PerceiveBonds()
	if err := res.Molecule.AttachField(name, res.Field); err != nil {
		return "", fmt.Errorf("load cube: %w", err)
	}
	node := NewMoleculeNode(name, res.Molecule, m.defaults.Molecule, m.defaults.Field)
	if err := m.root.AddChild(node); err != nil {
		return "", err
	}
	m.log.Info().Str("file", path).Str("name", name).Msg("loaded molecule with field")
	return node.UUID(), nil
}

// LoadFieldCube loads only the volumetric data of a cube file as a
// standalone scalar-field node. Returns its UUID.
func (m *Manager) LoadFieldCube(path string) (string, error) {
	res, err := chemio.ReadCubeFile(path)
	if err != nil {
		return "", fmt.Errorf("load cube: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	name := chemio.Stem(path)
	node := NewScalarFieldNode(name, res.Field, m.defaults.Field)
	if err := m.root.AddChild(node); err != nil {
		return "", err
	}
	m.log.Info().Str("file", path).Str("name", name).Msg("loaded scalar field")
	return node.UUID(), nil
}

// AddMolecule adds an in-memory molecule to the scene root.
func (m *Manager) AddMolecule(mlc *mol.Molecule, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	node := NewMoleculeNode(name, mlc, m.defaults.Molecule, m.defaults.Field)
	if err := m.root.AddChild(node); err != nil {
		return "", err
	}
	return node.UUID(), nil
}

// AddScalarField adds an in-memory scalar field to the scene root.
func (m *Manager) AddScalarField(f *mol.ScalarField, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	node := NewScalarFieldNode(name, f, m.defaults.Field)
	if err := m.root.AddChild(node); err != nil {
		return "", err
	}
	return node.UUID(), nil
}

// AddTrajectory adds an in-memory trajectory to the scene root.
func (m *Manager) AddTrajectory(traj *mol.Trajectory, name string) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	node := NewTrajectoryNode(name, traj, m.defaults.Molecule, m.defaults.Field)
	if err := m.root.AddChild(node); err != nil {
		return "", err
	}
	return node.UUID(), nil
}

// GetByUUID returns the node with the given UUID, or nil.
func (m *Manager) GetByUUID(id string) *Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root.FindByUUID(id)
}

// GetByName returns the first node with the given name, or nil.
func (m *Manager) GetByName(name string) *Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root.FindByName(name)
}

// FindByKind returns all nodes of the given kind.
func (m *Manager) FindByKind(kind Kind) []*Node {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.root.FindByKind(kind)
}

// SetVisibility toggles a node by UUID. It reports whether the value
// changed.
func (m *Manager) SetVisibility(id string, visible bool) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	node := m.root.FindByUUID(id)
	if node == nil {
		return false, fmt.Errorf("object %s not found", id)
	}
	changed := node.SetVisible(visible)
	m.log.Debug().Str("uuid", id).Bool("visible", visible).Bool("changed", changed).Msg("visibility")
	return changed, nil
}

// UpdateMoleculeSettings replaces a molecule node's render settings.
func (m *Manager) UpdateMoleculeSettings(id string, set render.MoleculeSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	node := m.root.FindByUUID(id)
	if node == nil {
		return fmt.Errorf("object %s not found", id)
	}
	return node.UpdateMoleculeSettings(set)
}

// UpdateFieldSettings replaces a scalar-field node's render settings.
func (m *Manager) UpdateFieldSettings(id string, set render.FieldSettings) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	node := m.root.FindByUUID(id)
	if node == nil {
		return fmt.Errorf("object %s not found", id)
	}
	return node.UpdateFieldSettings(set)
}

// Delete removes a node (and its subtree) by UUID.
func (m *Manager) Delete(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	node := m.root.FindByUUID(id)
	if node == nil {
		return fmt.Errorf("object %s not found", id)
	}
	if node.Parent() == nil {
		return fmt.Errorf("cannot delete the scene root")
	}
	node.Parent().RemoveChild(id)
	m.log.Info().Str("uuid", id).Str("name", node.Name()).Msg("deleted object")
	return nil
}

// MoveObject re-parents a node, optionally at a position (-1 appends).
func (m *Manager) MoveObject(id, newParentID string, position int) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	parent := m.root.FindByUUID(newParentID)
	if parent == nil {
		return fmt.Errorf("parent %s not found", newParentID)
	}
	if err := m.root.Move(id, parent, position); err != nil {
		return err
	}
	m.log.Info().Str("uuid", id).Str("parent", newParentID).Msg("moved object")
	return nil
}

// SaveXYZ writes a molecule or trajectory node back to an XYZ file.
func (m *Manager) SaveXYZ(id, path string) error {
	m.mu.Lock()
	node := m.root.FindByUUID(id)
	if node == nil {
		m.mu.Unlock()
		return fmt.Errorf("object %s not found", id)
	}

	var traj *mol.Trajectory
	var err error
	switch node.Kind() {
	case KindMolecule:
		traj, err = mol.NewTrajectory([]*mol.Molecule{node.Molecule})
	case KindTrajectory:
		frames := make([]*mol.Molecule, 0, node.NumChildren())
		for _, c := range node.Children() {
			frames = append(frames, c.Molecule)
		}
		traj, err = mol.NewTrajectory(frames)
	default:
		err = fmt.Errorf("cannot save a %s node as xyz", node.Kind())
	}
	comment := node.Name()
	m.mu.Unlock()

	if err != nil {
		return err
	}
	return chemio.WriteXYZFile(path, traj, comment)
}

// BuildScene collects all visible objects into a drawable scene.
// A trajectory contributes only its active frame.
func (m *Manager) BuildScene() *render.Scene {
	m.mu.Lock()
	defer m.mu.Unlock()

	s := render.NewScene(m.defaults.Background)
	var visit func(n *Node)
	visit = func(n *Node) {
		if !n.Visible() {
			return
		}
		switch n.Kind() {
		case KindMolecule:
			render.AddMolecule(s, n.Molecule, n.MolSettings)
		case KindField:
			render.AddField(s, n.Field, n.FieldSettings)
		case KindTrajectory:
			// Only the active frame draws.
			frames := n.Children()
			if af := n.ActiveFrame(); af >= 0 && af < len(frames) {
				visit(frames[af])
			}
			return
		}
		for _, c := range n.Children() {
			visit(c)
		}
	}
	visit(m.root)
	if m.showAxes {
		addAxes(s)
	}
	return s
}

// addAxes draws short X/Y/Z reference lines at the origin in red,
// green and blue.
func addAxes(s *render.Scene) {
	const axisLen = 2.0
	axes := []struct {
		dir r3.Vec
		col color.NRGBA
	}{
		{r3.Vec{X: axisLen}, color.NRGBA{R: 0xd0, G: 0x30, B: 0x30, A: 0xff}},
		{r3.Vec{Y: axisLen}, color.NRGBA{R: 0x30, G: 0xc0, B: 0x30, A: 0xff}},
		{r3.Vec{Z: axisLen}, color.NRGBA{R: 0x30, G: 0x60, B: 0xd0, A: 0xff}},
	}
	for _, a := range axes {
		s.AddLine(render.Line{A: r3.Vec{}, B: a.dir, Color: a.col})
	}
}

// Render rasterizes all visible objects through cam.
func (m *Manager) Render(cam *render.Camera, w, h int) *image.NRGBA {
	return m.BuildScene().Render(cam, w, h)
}

// FormatTree returns an ASCII rendering of the scene tree.
func (m *Manager) FormatTree() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return FormatTree(m.root)
}
