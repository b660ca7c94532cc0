package doctree

import "slices"

// Node is the unit of tree membership. It is implemented by [NodeBase]
// (leaf) and [List] (composite), and by any type embedding one of them.
// The two kinds are closed: traversal and mutation code distinguishes
// them with [AsList] rather than further dispatch.
type Node interface {
	// Name returns the node's name, which may be empty and is not
	// required to be unique among siblings.
	Name() string

	// SetName renames the node, updating the name index of every
	// ancestor while the node is attached.
	SetName(name string)

	// Parent returns the composite that currently owns this node, or
	// nil if the node is detached.
	Parent() *List

	// Parentage returns the chain of ancestors from this node to the
	// ultimate root, the node itself first and the root last. A
	// detached node's parentage is just the node itself.
	Parentage() []Node

	// GraphOrder returns the node's position tuple within its tree,
	// recomputing the tree's order cache first if a mutation has
	// invalidated it.
	GraphOrder() Order

	base() *NodeBase
}

// NodeBase is the leaf node kind and the embedded core of every node.
// It carries the name, the non-owning parent back-reference, and the
// cached graph order. The zero value is usable only through [Bind];
// use [NewNode] for standalone leaves.
type NodeBase struct {
	self   Node
	name   string
	parent *List
	order  Order
	dirty  bool // meaningful only while this node is an ultimate root
}

// NewNode creates a detached leaf node with the given name.
func NewNode(name string) *NodeBase {
	n := &NodeBase{name: name, dirty: true}
	n.self = n
	return n
}

// Bind associates a node embedding NodeBase or List with its outermost
// value, so that Parentage, traversal, and name lookups yield the outer
// type instead of the embedded one. Constructors of embedding types must
// call Bind exactly once, before the node is attached to any tree.
func Bind(self Node) {
	b := self.base()
	b.self = self
	b.dirty = true
}

func (n *NodeBase) base() *NodeBase { return n }

// this returns the outermost value for this node, falling back to the
// base itself when Bind was never called.
func (n *NodeBase) this() Node {
	if n.self != nil {
		return n.self
	}
	return n
}

// Name returns the node's name.
func (n *NodeBase) Name() string { return n.name }

// SetName renames the node. While the node is attached, the old name is
// removed from and the new name added to the index of every ancestor.
func (n *NodeBase) SetName(name string) {
	if name == n.name {
		return
	}
	for a := n.parent; a != nil; a = a.parent {
		if n.name != "" {
			a.removeNamed(map[string][]Node{n.name: {n.this()}})
		}
		if name != "" {
			a.addNamed(map[string][]Node{name: {n.this()}})
		}
	}
	n.name = name
}

// Parent returns the owning composite, or nil for a detached node.
func (n *NodeBase) Parent() *List { return n.parent }

// Parentage returns the ancestor chain from this node up to the ultimate
// root, inclusive of the node itself (self first, root last).
func (n *NodeBase) Parentage() []Node {
	out := []Node{n.this()}
	for p := n.parent; p != nil; p = p.parent {
		out = append(out, p.this())
	}
	return out
}

// Root returns the ultimate root of the tree containing this node. A
// detached node is its own root.
func (n *NodeBase) Root() Node {
	return n.rootBase().this()
}

func (n *NodeBase) rootBase() *NodeBase {
	b := n
	for b.parent != nil {
		b = &b.parent.NodeBase
	}
	return b
}

// markTreeDirty invalidates the graph-order cache for the entire tree
// containing this node. Positions shift along the whole root-to-node
// path on any mutation, so invalidation is never subtree-local.
func (n *NodeBase) markTreeDirty() {
	n.rootBase().dirty = true
}

// setParent is the only writer of the parent link. It detaches the node
// from its current owner (removing it from that owner's children and
// stripping its contributed names from the old ancestor chain), attaches
// it to the new owner's name index chain, and invalidates both trees.
// Insertion into the new owner's children is the caller's responsibility.
func (n *NodeBase) setParent(parent *List) {
	names := contributedNames(n.this())
	if n.parent != nil {
		for a := n.parent; a != nil; a = a.parent {
			a.removeNamed(names)
		}
		n.parent.unlink(n)
		n.parent.markTreeDirty()
	}
	n.parent = parent
	for a := parent; a != nil; a = a.parent {
		a.addNamed(names)
	}
	n.markTreeDirty()
}

// contributedNames collects the name index entries a node brings to its
// ancestors: its own name plus, for composites, every entry of its own
// index. Names propagate upward through composite ownership, not just
// one level.
func contributedNames(n Node) map[string][]Node {
	names := make(map[string][]Node)
	if n.Name() != "" {
		names[n.Name()] = []Node{n}
	}
	if l, ok := AsList(n); ok {
		for name, nodes := range l.namedChildren {
			names[name] = append(names[name], nodes...)
		}
	}
	return names
}

// sameNode reports whether two nodes are the same instance. Identity is
// decided by the embedded base, so an outer value and its embedded List
// compare equal.
func sameNode(a, b Node) bool {
	return a.base() == b.base()
}

// unlink removes the node with the given base from the children
// sequence without touching parent links or indices.
func (l *List) unlink(b *NodeBase) {
	l.children = slices.DeleteFunc(l.children, func(c Node) bool {
		return c.base() == b
	})
}
