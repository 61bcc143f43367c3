package scene

import (
	"fmt"
	"strings"
)

// FormatTree renders the tree as an ASCII diagram with visibility
// markers and shortened UUIDs, mainly for logs and debugging.
func FormatTree(root *Node) string {
	if root == nil {
		return "Tree: < empty >"
	}

	var b strings.Builder
	b.WriteString("Tree Structure:")

	var write func(n *Node, prefix string, last bool)
	write = func(n *Node, prefix string, last bool) {
		marker := "[✓]"
		if !n.Visible() {
			marker = "[✗]"
		}
		branch := "├── "
		if last {
			branch = "└── "
		}

		detail := ""
		switch n.Kind() {
		case KindTrajectory:
			detail = fmt.Sprintf(" [%d frames]", n.NumChildren())
		case KindRoot:
			detail = fmt.Sprintf(" [%d items]", n.NumChildren())
		}

		fmt.Fprintf(&b, "\n%s%s%s %s %s%s (id:%.8s...)",
			prefix, branch, n.Name(), marker, n.Kind(), detail, n.UUID())

		childPrefix := prefix + "│   "
		if last {
			childPrefix = prefix + "    "
		}
		children := n.Children()
		for i, c := range children {
			write(c, childPrefix, i == len(children)-1)
		}
	}
	write(root, "", true)
	return b.String()
}
