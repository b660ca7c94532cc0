package doctree

import (
	"fmt"
	"slices"
	"strings"
)

// Order is a node's position in its tree: a tuple of per-level child
// indices along the path from the ultimate root, comparable
// lexicographically. The root's order is empty; child i of a node with
// order (a, b) has order (a, b, i). Within one tree, orders strictly
// totally order all nodes with no ties, matching a pre-order,
// left-to-right walk.
type Order []int

// Compare orders o against other lexicographically, returning a negative
// value when o sorts first, zero when equal, and a positive value when o
// sorts last. A prefix sorts before its extensions, so a composite
// precedes its descendants.
func (o Order) Compare(other Order) int {
	return slices.Compare(o, other)
}

// String renders the order as a dotted path, e.g. "1.0.2". The root's
// order renders as ".".
func (o Order) String() string {
	if len(o) == 0 {
		return "."
	}
	parts := make([]string, len(o))
	for i, v := range o {
		parts[i] = fmt.Sprintf("%d", v)
	}
	return strings.Join(parts, ".")
}

// GraphOrder returns this node's cached position tuple. If any mutation
// has invalidated the tree since the last read, the whole tree's orders
// are recomputed from the ultimate root first; the cost is paid at most
// once per dirty period regardless of how many reads follow.
func (n *NodeBase) GraphOrder() Order {
	root := n.rootBase()
	if root.dirty {
		recomputeOrders(root.this())
		root.dirty = false
	}
	return n.order
}

// recomputeOrders assigns fresh order tuples to every node of the tree
// rooted at root, in a single pre-order pass.
func recomputeOrders(root Node) {
	root.base().order = Order{}
	assignOrders(root)
}

func assignOrders(n Node) {
	l, ok := AsList(n)
	if !ok {
		return
	}
	prefix := slices.Clip(l.order)
	for i, child := range l.children {
		child.base().order = append(prefix, i)
		assignOrders(child)
	}
}

// byGraphOrder sorts nodes in place by their graph order.
func byGraphOrder(nodes []Node) {
	slices.SortFunc(nodes, func(a, b Node) int {
		return a.GraphOrder().Compare(b.GraphOrder())
	})
}
