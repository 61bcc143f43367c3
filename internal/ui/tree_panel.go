package ui

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"

	"github.com/chemvista/chemvista/internal/scene"
)

// TreePanel shows the scene graph as an expandable tree keyed by node
// UUID, with per-node visibility toggles.
type TreePanel struct {
	widget.BaseWidget

	manager *scene.Manager
	tree    *widget.Tree

	// OnSelect fires with the selected node's UUID.
	OnSelect func(uuid string)
	// OnToggleVisibility fires when a node's eye button is clicked.
	OnToggleVisibility func(uuid string, visible bool)
}

// NewTreePanel creates a panel bound to the manager's tree.
func NewTreePanel(manager *scene.Manager) *TreePanel {
	p := &TreePanel{manager: manager}

	p.tree = widget.NewTree(
		p.childUUIDs,
		p.isBranch,
		p.createItem,
		p.updateItem,
	)
	p.tree.OnSelected = func(id widget.TreeNodeID) {
		if p.OnSelect != nil {
			p.OnSelect(id)
		}
	}

	p.ExtendBaseWidget(p)
	return p
}

// Refresh implements fyne.Widget.
func (p *TreePanel) Refresh() {
	p.tree.Refresh()
	p.BaseWidget.Refresh()
}

// OpenBranch expands the branch for a node UUID.
func (p *TreePanel) OpenBranch(uuid string) {
	p.tree.OpenBranch(uuid)
}

// CreateRenderer implements fyne.Widget.
func (p *TreePanel) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.tree)
}

func (p *TreePanel) node(id widget.TreeNodeID) *scene.Node {
	if id == "" {
		return p.manager.Root()
	}
	return p.manager.GetByUUID(id)
}

func (p *TreePanel) childUUIDs(id widget.TreeNodeID) []widget.TreeNodeID {
	n := p.node(id)
	if n == nil {
		return nil
	}
	children := n.Children()
	out := make([]widget.TreeNodeID, 0, len(children))
	for _, c := range children {
		out = append(out, c.UUID())
	}
	return out
}

func (p *TreePanel) isBranch(id widget.TreeNodeID) bool {
	n := p.node(id)
	return n != nil && n.NumChildren() > 0
}

func (p *TreePanel) createItem(branch bool) fyne.CanvasObject {
	label := widget.NewLabel("object")
	label.Truncation = fyne.TextTruncateEllipsis
	eye := widget.NewButtonWithIcon("", theme.VisibilityIcon(), nil)
	eye.Importance = widget.LowImportance
	return container.NewBorder(nil, nil, nil, eye, label)
}

func (p *TreePanel) updateItem(id widget.TreeNodeID, branch bool, obj fyne.CanvasObject) {
	n := p.node(id)
	if n == nil {
		return
	}

	row, ok := obj.(*fyne.Container)
	if !ok || len(row.Objects) < 2 {
		return
	}
	label, _ := row.Objects[0].(*widget.Label)
	eye, _ := row.Objects[1].(*widget.Button)
	if label == nil || eye == nil {
		return
	}

	text := n.Name()
	switch n.Kind() {
	case scene.KindTrajectory:
		text += " (trajectory)"
	case scene.KindField:
		text += " (field)"
	}
	label.SetText(text)

	if n.Visible() {
		eye.SetIcon(theme.VisibilityIcon())
	} else {
		eye.SetIcon(theme.VisibilityOffIcon())
	}
	uuid := n.UUID()
	visible := n.Visible()
	eye.OnTapped = func() {
		if p.OnToggleVisibility != nil {
			p.OnToggleVisibility(uuid, !visible)
		}
	}
}
