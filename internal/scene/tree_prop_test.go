//go:build property

package scene

import (
	"fmt"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

// op is one random tree mutation: add under node a, remove node b, or
// move node b under node a. Indices wrap over the live node list.
type op struct {
	Action int // 0 add, 1 remove, 2 move
	A, B   int
}

func applyOps(ops []op) *Node {
	root := NewRoot("Scene")
	nodes := []*Node{root}
	serial := 0

	pick := func(i int) *Node { return nodes[((i%len(nodes))+len(nodes))%len(nodes)] }

	for _, o := range ops {
		switch o.Action {
		case 0:
			serial++
			child := newNode(fmt.Sprintf("n%d", serial), KindMolecule)
			if pick(o.A).AddChild(child) == nil {
				nodes = append(nodes, child)
			}
		case 1:
			target := pick(o.B)
			if target == root || target.Parent() == nil {
				continue
			}
			if target.Parent().RemoveChild(target.UUID()) != nil {
				live := nodes[:0]
				for _, n := range nodes {
					if root.FindByUUID(n.UUID()) != nil {
						live = append(live, n)
					}
				}
				nodes = live
			}
		case 2:
			target := pick(o.B)
			if target == root {
				continue
			}
			root.Move(target.UUID(), pick(o.A), -1)
		}
	}
	return root
}

func TestTreeInvariants(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 200

	properties := gopter.NewProperties(parameters)

	genOps := gen.SliceOf(gopter.CombineGens(
		gen.IntRange(0, 2), gen.IntRange(0, 31), gen.IntRange(0, 31),
	).Map(func(vs []interface{}) op {
		return op{Action: vs[0].(int), A: vs[1].(int), B: vs[2].(int)}
	}))

	properties.Property("parent pointers stay consistent", prop.ForAll(
		func(ops []op) bool {
			root := applyOps(ops)
			okAll := true
			root.Walk(func(n *Node) bool {
				for _, c := range n.Children() {
					if c.Parent() != n {
						okAll = false
					}
				}
				return true
			})
			return okAll
		}, genOps))

	properties.Property("paths resolve back to their node", prop.ForAll(
		func(ops []op) bool {
			root := applyOps(ops)
			okAll := true
			root.Walk(func(n *Node) bool {
				if root.FindByPath(n.Path()) == nil {
					okAll = false
				}
				return true
			})
			return okAll
		}, genOps))

	properties.Property("every node is reachable by uuid", prop.ForAll(
		func(ops []op) bool {
			root := applyOps(ops)
			okAll := true
			root.Walk(func(n *Node) bool {
				if root.FindByUUID(n.UUID()) != n {
					okAll = false
				}
				return true
			})
			return okAll
		}, genOps))

	properties.TestingRun(t)
}
