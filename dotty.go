package cords

import (
	"fmt"
	"strings"
)

// DebugString returns an indented text dump of the cord's tree shape,
// useful while debugging balance or sharing issues. Grounded on the
// teacher package's dotty.go (a Graphviz dumper); this module has no
// Graphviz dependency to reuse outside of the teacher's own demo
// tooling, so the same diagnostic intent is kept as a plain indented
// dump instead.
func (c Cord) DebugString() string {
	var b strings.Builder
	dumpNode(&b, c.root, 0)
	return b.String()
}

func dumpNode(b *strings.Builder, n *node, depth int) {
	indent := strings.Repeat("  ", depth)
	if n == nil || n.isLeaf() {
		text := ""
		if n != nil {
			text = n.text
		}
		fmt.Fprintf(b, "%sleaf(%d) %q\n", indent, len(text), text)
		return
	}
	fmt.Fprintf(b, "%sbranch(weight=%d len=%d depth=%d)\n", indent, n.weight, n.length, n.depth)
	dumpNode(b, n.left, depth+1)
	dumpNode(b, n.right, depth+1)
}
