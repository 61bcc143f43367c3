package scene

import (
	"strings"
	"testing"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want string
		name string
	}{
		{in: "/Scene/water", want: "/Scene/water", name: "water"},
		{in: "Scene/water/", want: "/Scene/water", name: "water"},
		{in: "/", want: "/", name: ""},
		{in: "", want: "/", name: ""},
	}
	for _, tt := range tests {
		p := ParsePath(tt.in)
		if p.String() != tt.want {
			t.Errorf("ParsePath(%q).String() = %q, expected %q", tt.in, p.String(), tt.want)
		}
		if p.Name() != tt.name {
			t.Errorf("ParsePath(%q).Name() = %q, expected %q", tt.in, p.Name(), tt.name)
		}
	}
}

func TestPathChildParent(t *testing.T) {
	p := ParsePath("/Scene/water")
	c := p.Child("density")
	if c.String() != "/Scene/water/density" {
		t.Errorf("Child = %q", c.String())
	}
	if c.Parent().String() != "/Scene/water" {
		t.Errorf("Parent = %q", c.Parent().String())
	}
	if ParsePath("/").Parent() != nil {
		t.Error("root path should have no parent")
	}
}

func TestAddAndFind(t *testing.T) {
	root := NewRoot("Scene")
	a := newNode("a", KindMolecule)
	b := newNode("b", KindMolecule)
	for _, n := range []*Node{a, b} {
		if err := root.AddChild(n); err != nil {
			t.Fatalf("AddChild(%s): %v", n.Name(), err)
		}
	}

	if got := root.FindByUUID(b.UUID()); got != b {
		t.Error("FindByUUID did not return the node")
	}
	if got := root.FindByName("a"); got != a {
		t.Error("FindByName did not return the node")
	}
	if got := root.FindByPath(ParsePath("/Scene/b")); got != b {
		t.Error("FindByPath did not return the node")
	}
	if got := root.FindByPath(ParsePath("/Scene/missing")); got != nil {
		t.Error("FindByPath should return nil for a missing node")
	}
	if got := a.Path().String(); got != "/Scene/a" {
		t.Errorf("Path = %q", got)
	}
}

func TestInsertChildPosition(t *testing.T) {
	root := NewRoot("Scene")
	a := newNode("a", KindMolecule)
	c := newNode("c", KindMolecule)
	b := newNode("b", KindMolecule)
	root.AddChild(a)
	root.AddChild(c)
	if err := root.InsertChild(b, 1); err != nil {
		t.Fatalf("InsertChild: %v", err)
	}

	var names []string
	for _, n := range root.Children() {
		names = append(names, n.Name())
	}
	if strings.Join(names, "") != "abc" {
		t.Errorf("order = %v", names)
	}

	if err := root.InsertChild(newNode("x", KindMolecule), 7); err == nil {
		t.Error("expected error for out-of-range position")
	}
}

func TestAddChildRejectsCycles(t *testing.T) {
	root := NewRoot("Scene")
	traj := newNode("t", KindTrajectory)
	root.AddChild(traj)

	if err := traj.AddChild(root); err == nil {
		t.Error("adding an ancestor as a child should fail")
	}
	if err := root.AddChild(traj); err == nil {
		t.Error("re-adding an attached node should fail")
	}
}

func TestRemoveChild(t *testing.T) {
	root := NewRoot("Scene")
	a := newNode("a", KindMolecule)
	root.AddChild(a)

	got := root.RemoveChild(a.UUID())
	if got != a {
		t.Fatal("RemoveChild should return the removed node")
	}
	if a.Parent() != nil {
		t.Error("removed node keeps a parent reference")
	}
	if root.NumChildren() != 0 {
		t.Error("child still attached")
	}
	if root.RemoveChild("no-such-uuid") != nil {
		t.Error("RemoveChild of unknown UUID should return nil")
	}
}

func TestMove(t *testing.T) {
	root := NewRoot("Scene")
	t1 := newNode("t1", KindTrajectory)
	t2 := newNode("t2", KindTrajectory)
	a := newNode("a", KindMolecule)
	root.AddChild(t1)
	root.AddChild(t2)
	t1.AddChild(a)

	if err := root.Move(a.UUID(), t2, -1); err != nil {
		t.Fatalf("Move: %v", err)
	}
	if a.Parent() != t2 {
		t.Error("node not re-parented")
	}
	if t1.NumChildren() != 0 {
		t.Error("node still under the old parent")
	}
	if got := a.Path().String(); got != "/Scene/t2/a" {
		t.Errorf("path after move = %q", got)
	}

	if err := root.Move(t2.UUID(), a, -1); err == nil {
		t.Error("moving a node under its own descendant should fail")
	}
}

func TestMoveInvalidPositionKeepsNode(t *testing.T) {
	root := NewRoot("Scene")
	t1 := newNode("t1", KindTrajectory)
	t2 := newNode("t2", KindTrajectory)
	a := newNode("a", KindMolecule)
	b := newNode("b", KindMolecule)
	root.AddChild(t1)
	root.AddChild(t2)
	t1.AddChild(a)
	t1.AddChild(b)

	if err := root.Move(a.UUID(), t2, 5); err == nil {
		t.Fatal("expected error for out-of-range position")
	}
	got := root.FindByUUID(a.UUID())
	if got == nil {
		t.Fatal("node lost after failed move")
	}
	if got.Parent() != t1 {
		t.Error("node should stay under its old parent after a failed move")
	}
	if t1.Children()[0] != a {
		t.Error("node should keep its position after a failed move")
	}
}

func TestRemoveChildClampsActiveFrame(t *testing.T) {
	traj := newNode("t", KindTrajectory)
	f0 := newNode("Frame_000", KindMolecule)
	f1 := newNode("Frame_001", KindMolecule)
	traj.AddChild(f0)
	traj.AddChild(f1)
	if err := traj.SetActiveFrame(1); err != nil {
		t.Fatal(err)
	}

	traj.RemoveChild(f0.UUID())
	if got := traj.ActiveFrame(); got != 0 {
		t.Errorf("active frame = %d, expected clamp to 0", got)
	}

	traj.RemoveChild(f1.UUID())
	if got := traj.ActiveFrame(); got != 0 {
		t.Errorf("active frame = %d on empty trajectory, expected 0", got)
	}
}

func TestSetVisible(t *testing.T) {
	n := newNode("a", KindMolecule)
	if !n.Visible() {
		t.Fatal("nodes start visible")
	}
	if !n.SetVisible(false) {
		t.Error("SetVisible(false) should report a change")
	}
	if n.SetVisible(false) {
		t.Error("repeated SetVisible should report no change")
	}
}

func TestWalkVisible(t *testing.T) {
	root := NewRoot("Scene")
	traj := newNode("t", KindTrajectory)
	a := newNode("a", KindMolecule)
	b := newNode("b", KindMolecule)
	root.AddChild(traj)
	traj.AddChild(a)
	traj.AddChild(b)

	traj.SetVisible(false)
	var seen []string
	root.WalkVisible(func(n *Node) { seen = append(seen, n.Name()) })
	if len(seen) != 1 || seen[0] != "Scene" {
		t.Errorf("invisible subtree leaked: %v", seen)
	}
}

func TestEventsFire(t *testing.T) {
	var added, removed, visibility, structure int
	e := &Events{
		NodeAdded:         func(string) { added++ },
		NodeRemoved:       func(string) { removed++ },
		VisibilityChanged: func(string, bool) { visibility++ },
		StructureChanged:  func() { structure++ },
	}
	root := NewRoot("Scene")
	root.SetEvents(e)

	a := newNode("a", KindMolecule)
	root.AddChild(a)
	a.SetVisible(false)
	root.RemoveChild(a.UUID())

	if added != 1 || removed != 1 || visibility != 1 {
		t.Errorf("added=%d removed=%d visibility=%d", added, removed, visibility)
	}
	if structure != 2 {
		t.Errorf("structure=%d, expected 2", structure)
	}
}

func TestRenameUniqueAmongSiblings(t *testing.T) {
	root := NewRoot("Scene")
	a := newNode("a", KindMolecule)
	b := newNode("b", KindMolecule)
	root.AddChild(a)
	root.AddChild(b)

	if err := b.Rename("a"); err == nil {
		t.Error("renaming onto a sibling name should fail")
	}
	if err := b.Rename("c"); err != nil {
		t.Errorf("Rename: %v", err)
	}
	if root.FindByName("c") != b {
		t.Error("rename not applied")
	}
}

func TestFormatTree(t *testing.T) {
	root := NewRoot("Scene")
	a := newNode("water", KindMolecule)
	root.AddChild(a)
	a.SetVisible(false)

	out := FormatTree(root)
	if !strings.Contains(out, "Scene [✓] root") {
		t.Errorf("missing root line:\n%s", out)
	}
	if !strings.Contains(out, "water [✗] molecule") {
		t.Errorf("missing hidden molecule line:\n%s", out)
	}
	if !strings.Contains(out, "(id:") {
		t.Errorf("missing id suffix:\n%s", out)
	}
}
