// Package scene holds the scene graph: a tree of named, visibility-
// toggleable nodes wrapping molecules, scalar fields and trajectories,
// plus the manager that loads files into it and renders it.
package scene

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Kind identifies what a tree node wraps.
type Kind string

const (
	KindRoot       Kind = "root"
	KindMolecule   Kind = "molecule"
	KindField      Kind = "scalar_field"
	KindTrajectory Kind = "trajectory"
)

// Path addresses a node by the names from the root down.
type Path []string

// ParsePath splits a "/Scene/water/density" style string.
func ParsePath(s string) Path {
	s = strings.Trim(s, "/")
	if s == "" {
		return Path{}
	}
	return Path(strings.Split(s, "/"))
}

func (p Path) String() string { return "/" + strings.Join(p, "/") }

// Child returns the path extended by one name.
func (p Path) Child(name string) Path {
	out := make(Path, 0, len(p)+1)
	out = append(out, p...)
	return append(out, name)
}

// Parent returns the enclosing path, or nil at the root.
func (p Path) Parent() Path {
	if len(p) == 0 {
		return nil
	}
	return p[:len(p)-1]
}

// Name returns the last path element.
func (p Path) Name() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}

// Node is one element of the scene tree. Children are ordered.
// Type-specific payload and adoption rules are set by the constructors
// in objects.go.
type Node struct {
	id      string
	name    string
	kind    Kind
	visible bool

	parent   *Node
	children []*Node
	events   *Events

	payload

	// canAdopt rejects child nodes this node cannot hold; nil accepts
	// anything. onAdopt/onOrphan run after a child joins or leaves.
	canAdopt func(parent, child *Node) error
	onAdopt  func(parent, child *Node)
	onOrphan func(parent, child *Node)
}

func newNode(name string, kind Kind) *Node {
	return &Node{
		id:      uuid.NewString(),
		name:    name,
		kind:    kind,
		visible: true,
	}
}

// NewRoot returns an empty tree root.
func NewRoot(name string) *Node {
	return newNode(name, KindRoot)
}

func (n *Node) UUID() string     { return n.id }
func (n *Node) Name() string     { return n.name }
func (n *Node) Kind() Kind       { return n.kind }
func (n *Node) Visible() bool    { return n.visible }
func (n *Node) Parent() *Node    { return n.parent }
func (n *Node) NumChildren() int { return len(n.children) }

// Children returns the ordered children as a copy.
func (n *Node) Children() []*Node {
	return append([]*Node(nil), n.children...)
}

// SetEvents attaches an event sink to this node and its subtree.
func (n *Node) SetEvents(e *Events) {
	n.events = e
	for _, c := range n.children {
		c.SetEvents(e)
	}
}

// Rename changes the node name. Under a molecule parent the name keys
// the molecule's field map, so the entry is re-keyed.
func (n *Node) Rename(name string) error {
	if name == n.name {
		return nil
	}
	if n.parent != nil {
		for _, sib := range n.parent.children {
			if sib != n && sib.name == name {
				return fmt.Errorf("sibling named %q already exists", name)
			}
		}
	}
	old := n.name
	n.name = name
	if n.kind == KindField && n.parent != nil && n.parent.kind == KindMolecule && n.parent.Molecule != nil {
		n.parent.Molecule.DetachField(old)
		if err := n.parent.Molecule.AttachField(name, n.Field); err != nil {
			n.name = old
			n.parent.Molecule.AttachField(old, n.Field)
			return err
		}
	}
	n.events.nodeChanged(n.id)
	return nil
}

// SetVisible toggles the node. It reports whether the value changed.
func (n *Node) SetVisible(visible bool) bool {
	if n.visible == visible {
		return false
	}
	n.visible = visible
	n.events.visibilityChanged(n.id, visible)
	return true
}

// Path returns the names from the root down to this node.
func (n *Node) Path() Path {
	var parts []string
	for cur := n; cur != nil; cur = cur.parent {
		parts = append(parts, cur.name)
	}
	for i, j := 0, len(parts)-1; i < j; i, j = i+1, j-1 {
		parts[i], parts[j] = parts[j], parts[i]
	}
	return Path(parts)
}

// AddChild appends a child. The parent's adoption rules apply.
func (n *Node) AddChild(child *Node) error {
	return n.InsertChild(child, len(n.children))
}

// InsertChild adds a child at the given position among the existing
// children.
func (n *Node) InsertChild(child *Node, position int) error {
	if child == nil {
		return fmt.Errorf("nil child")
	}
	if position < 0 || position > len(n.children) {
		return fmt.Errorf("invalid position %d", position)
	}
	if child == n || n.isDescendantOf(child) {
		return fmt.Errorf("cannot add a node under itself")
	}
	if child.parent != nil {
		return fmt.Errorf("node %q already has a parent", child.name)
	}
	if n.canAdopt != nil {
		if err := n.canAdopt(n, child); err != nil {
			return err
		}
	}

	n.children = append(n.children, nil)
	copy(n.children[position+1:], n.children[position:])
	n.children[position] = child
	child.parent = n
	child.SetEvents(n.events)

	if n.onAdopt != nil {
		n.onAdopt(n, child)
	}
	n.events.nodeAdded(child.id)
	n.events.structureChanged()
	return nil
}

// RemoveChild detaches the direct child with the given UUID and returns
// it, or nil when there is no such child.
func (n *Node) RemoveChild(id string) *Node {
	for i, c := range n.children {
		if c.id != id {
			continue
		}
		n.children = append(n.children[:i], n.children[i+1:]...)
		c.parent = nil
		if n.kind == KindTrajectory && n.activeFrame >= len(n.children) {
			n.activeFrame = len(n.children) - 1
			if n.activeFrame < 0 {
				n.activeFrame = 0
			}
		}
		if n.onOrphan != nil {
			n.onOrphan(n, c)
		}
		n.events.nodeRemoved(c.id)
		n.events.structureChanged()
		return c
	}
	return nil
}

// Move re-parents a descendant node under newParent, optionally at a
// position (-1 appends). The new parent's adoption rules apply before
// anything is detached.
func (n *Node) Move(id string, newParent *Node, position int) error {
	node := n.FindByUUID(id)
	if node == nil {
		return fmt.Errorf("node %s not found", id)
	}
	if node.parent == nil {
		return fmt.Errorf("cannot move the root")
	}
	if newParent == node || newParent.isDescendantOf(node) {
		return fmt.Errorf("cannot move a node under itself")
	}
	if newParent.canAdopt != nil {
		if err := newParent.canAdopt(newParent, node); err != nil {
			return fmt.Errorf("cannot move to target: %w", err)
		}
	}
	limit := len(newParent.children)
	if node.parent == newParent {
		limit--
	}
	if position < 0 {
		position = limit
	}
	if position > limit {
		return fmt.Errorf("invalid position %d", position)
	}

	oldParent := node.parent
	oldPos := oldParent.childIndex(id)
	oldParent.RemoveChild(id)
	if err := newParent.InsertChild(node, position); err != nil {
		// Put the node back where it was.
		oldParent.InsertChild(node, oldPos)
		return err
	}
	return nil
}

func (n *Node) childIndex(id string) int {
	for i, c := range n.children {
		if c.id == id {
			return i
		}
	}
	return -1
}

func (n *Node) isDescendantOf(other *Node) bool {
	for cur := n.parent; cur != nil; cur = cur.parent {
		if cur == other {
			return true
		}
	}
	return false
}

// FindByUUID searches this node and its subtree.
func (n *Node) FindByUUID(id string) *Node {
	if n.id == id {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByUUID(id); found != nil {
			return found
		}
	}
	return nil
}

// FindByName returns the first node with the given name in depth-first
// order.
func (n *Node) FindByName(name string) *Node {
	if n.name == name {
		return n
	}
	for _, c := range n.children {
		if found := c.FindByName(name); found != nil {
			return found
		}
	}
	return nil
}

// FindByPath resolves a path rooted at this node.
func (n *Node) FindByPath(p Path) *Node {
	if len(p) == 0 {
		return n
	}
	if p[0] != n.name {
		return nil
	}
	cur := n
outer:
	for _, part := range p[1:] {
		for _, c := range cur.children {
			if c.name == part {
				cur = c
				continue outer
			}
		}
		return nil
	}
	return cur
}

// FindByKind collects all nodes of a kind in depth-first order.
func (n *Node) FindByKind(kind Kind) []*Node {
	var out []*Node
	n.Walk(func(node *Node) bool {
		if node.kind == kind {
			out = append(out, node)
		}
		return true
	})
	return out
}

// Walk visits this node and its subtree depth-first. Returning false
// from fn skips the node's children.
func (n *Node) Walk(fn func(*Node) bool) {
	if !fn(n) {
		return
	}
	for _, c := range n.children {
		c.Walk(fn)
	}
}

// WalkVisible visits only visible nodes; an invisible node hides its
// whole subtree.
func (n *Node) WalkVisible(fn func(*Node)) {
	if !n.visible {
		return
	}
	fn(n)
	for _, c := range n.children {
		c.WalkVisible(fn)
	}
}
