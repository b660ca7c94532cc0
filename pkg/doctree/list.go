package doctree

import (
	"fmt"
	"slices"
)

// List is the composite node kind: a [Node] that owns an ordered sequence
// of children and an index of descendant names. Children are owned
// exclusively; attaching a node to a List detaches it from wherever it
// was before. The zero value is usable through [Bind] by embedding
// types; use [NewList] or [NewListOf] for standalone lists.
//
// All structural change routes through [List.SetRange]. Every other
// mutator normalizes its arguments to a range and candidate list and
// delegates, so every mutation path enforces the same invariants.
//
// A List is not safe for concurrent use. If multiple goroutines access
// one tree, they must be synchronized with external locking.
type List struct {
	NodeBase
	children      []Node
	namedChildren map[string][]Node
	check         func(Node) error
}

// NewList creates a detached, empty composite node with the given name.
func NewList(name string) *List {
	l := &List{NodeBase: NodeBase{name: name, dirty: true}}
	l.self = l
	return l
}

// NewListOf creates a composite node pre-populated with children. The
// children are attached through the normal mutation protocol, so the
// same validation applies as for [List.Extend].
func NewListOf(name string, children ...Node) (*List, error) {
	l := NewList(name)
	if err := l.Extend(children); err != nil {
		return nil, err
	}
	return l, nil
}

// RestrictChildren installs a validator consulted before any node is
// attached to this list. A non-nil error from check rejects the whole
// mutation with [ErrInvalidChild]. Embedding types use this to constrain
// which node kinds they may own.
func (l *List) RestrictChildren(check func(Node) error) {
	l.check = check
}

// =============================================================================
// Mutation protocol
// =============================================================================

// SetRange replaces the children in [start, stop) with the given nodes.
// This is the single entry point for all structural change.
//
// The operation is atomic: candidates are validated against the child
// restriction and the acyclicity invariant strictly before any
// detachment or attachment, so a rejected mutation leaves the tree
// exactly as it was. On success the old children revert to detached
// state, the new nodes are detached from their previous owners and
// attached in order, and the graph-order cache of every affected tree is
// invalidated.
//
// Returns [ErrIndexOutOfRange] if the range is not a valid subrange of
// the children, or [ErrInvalidChild] if a candidate fails validation.
func (l *List) SetRange(start, stop int, nodes []Node) error {
	if start < 0 || stop < start || stop > len(l.children) {
		return fmt.Errorf("replace [%d:%d) of %d children: %w", start, stop, len(l.children), ErrIndexOutOfRange)
	}
	if err := l.validateChildren(nodes); err != nil {
		return err
	}

	old := slices.Clone(l.children[start:stop])
	for _, o := range old {
		o.base().setParent(nil)
	}
	for _, n := range nodes {
		n.base().setParent(l)
	}

	// Detaching may have removed nodes before start (old items, or new
	// items previously living earlier in this same list), so clamp the
	// splice point.
	at := min(start, len(l.children))
	l.children = slices.Insert(l.children, at, nodes...)
	l.markTreeDirty()
	return nil
}

// validateChildren checks every candidate before any side effect: it
// must pass the child restriction, must not already appear earlier in
// the candidate list, and must not be the receiver or any ancestor of
// the receiver.
func (l *List) validateChildren(nodes []Node) error {
	if len(nodes) == 0 {
		return nil
	}
	parentage := l.Parentage()
	seen := make(map[*NodeBase]bool, len(nodes))
	for _, n := range nodes {
		if n == nil {
			return fmt.Errorf("%w: nil node", ErrInvalidChild)
		}
		if seen[n.base()] {
			return fmt.Errorf("%w: node %q appears twice in one replacement", ErrInvalidChild, n.Name())
		}
		seen[n.base()] = true
		if l.check != nil {
			if err := l.check(n); err != nil {
				return fmt.Errorf("%w: %v", ErrInvalidChild, err)
			}
		}
		for _, ancestor := range parentage {
			if sameNode(ancestor, n) {
				return fmt.Errorf("%w: cannot set parent node %q as child", ErrInvalidChild, n.Name())
			}
		}
	}
	return nil
}

// SetChild replaces the child at position i.
func (l *List) SetChild(i int, n Node) error {
	if i < 0 || i >= len(l.children) {
		return fmt.Errorf("set child %d of %d: %w", i, len(l.children), ErrIndexOutOfRange)
	}
	return l.SetRange(i, i+1, []Node{n})
}

// Append attaches a node after the current last child.
func (l *List) Append(n Node) error {
	return l.SetRange(len(l.children), len(l.children), []Node{n})
}

// Extend attaches nodes, in order, after the current last child.
func (l *List) Extend(nodes []Node) error {
	return l.SetRange(len(l.children), len(l.children), nodes)
}

// Insert attaches a node at position i, shifting later children right.
// i may equal Len, in which case Insert behaves like [List.Append].
func (l *List) Insert(i int, n Node) error {
	if i < 0 || i > len(l.children) {
		return fmt.Errorf("insert at %d of %d: %w", i, len(l.children), ErrIndexOutOfRange)
	}
	return l.SetRange(i, i, []Node{n})
}

// Delete detaches the child at position i.
func (l *List) Delete(i int) error {
	if i < 0 || i >= len(l.children) {
		return fmt.Errorf("delete child %d of %d: %w", i, len(l.children), ErrIndexOutOfRange)
	}
	return l.SetRange(i, i+1, nil)
}

// DeleteRange detaches all children in [start, stop).
func (l *List) DeleteRange(start, stop int) error {
	return l.SetRange(start, stop, nil)
}

// Pop detaches and returns the last child.
func (l *List) Pop() (Node, error) {
	return l.PopAt(len(l.children) - 1)
}

// PopAt detaches and returns the child at position i.
func (l *List) PopAt(i int) (Node, error) {
	if i < 0 || i >= len(l.children) {
		return nil, fmt.Errorf("pop child %d of %d: %w", i, len(l.children), ErrIndexOutOfRange)
	}
	n := l.children[i]
	if err := l.SetRange(i, i+1, nil); err != nil {
		return nil, err
	}
	return n, nil
}

// Remove detaches the given direct child. Returns [ErrNotFound] if n is
// not a direct child of this list.
func (l *List) Remove(n Node) error {
	i, err := l.Index(n)
	if err != nil {
		return err
	}
	return l.SetRange(i, i+1, nil)
}

// DeleteName detaches every node currently indexed under name, each
// through its own parent. When matches live under different parents the
// removals are validated and applied independently, not as one
// transaction: an early failure leaves later matches attached.
// Returns [ErrNameNotFound] if the name is absent.
func (l *List) DeleteName(name string) error {
	matches, err := l.Named(name)
	if err != nil {
		return err
	}
	for _, m := range matches {
		parent := m.Parent()
		if parent == nil {
			continue
		}
		i, err := parent.Index(m)
		if err != nil {
			return err
		}
		if err := parent.Delete(i); err != nil {
			return err
		}
	}
	return nil
}

// =============================================================================
// Read surface
// =============================================================================

// Len returns the number of direct children.
func (l *List) Len() int { return len(l.children) }

// Children returns a snapshot of the direct children in order.
// Modifying the returned slice does not affect the tree.
func (l *List) Children() []Node { return slices.Clone(l.children) }

// Child returns the direct child at position i.
func (l *List) Child(i int) (Node, error) {
	if i < 0 || i >= len(l.children) {
		return nil, fmt.Errorf("child %d of %d: %w", i, len(l.children), ErrIndexOutOfRange)
	}
	return l.children[i], nil
}

// Slice returns a snapshot of the children in [start, stop).
func (l *List) Slice(start, stop int) ([]Node, error) {
	if start < 0 || stop < start || stop > len(l.children) {
		return nil, fmt.Errorf("slice [%d:%d) of %d children: %w", start, stop, len(l.children), ErrIndexOutOfRange)
	}
	return slices.Clone(l.children[start:stop]), nil
}

// Index returns the position of n among the direct children. Membership
// is by instance identity: two structurally identical nodes are
// different members. Returns [ErrNotFound] if n is not a direct child.
func (l *List) Index(n Node) (int, error) {
	for i, c := range l.children {
		if sameNode(c, n) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("node %q is not a child: %w", n.Name(), ErrNotFound)
}

// Contains reports whether n is a direct child of this list, by
// instance identity. It does not search nested composites; use
// [List.ContainsName] or [List.Named] for deep, name-keyed queries.
func (l *List) Contains(n Node) bool {
	_, err := l.Index(n)
	return err == nil
}

// ContainsName reports whether any direct child or composite-owned
// descendant bears the given name.
func (l *List) ContainsName(name string) bool {
	_, ok := l.namedChildren[name]
	return ok
}

// Named returns every direct child and composite-owned descendant with
// the given name, sorted by graph order so that duplicate names across
// different subtrees come back in a deterministic order. Returns
// [ErrNameNotFound] if the name is absent.
func (l *List) Named(name string) ([]Node, error) {
	entries, ok := l.namedChildren[name]
	if !ok {
		return nil, fmt.Errorf("name %q: %w", name, ErrNameNotFound)
	}
	out := slices.Clone(entries)
	byGraphOrder(out)
	return out, nil
}

// FindName returns the first node with the given name in graph order.
// Returns [ErrNameNotFound] if the name is absent.
func (l *List) FindName(name string) (Node, error) {
	matches, err := l.Named(name)
	if err != nil {
		return nil, err
	}
	return matches[0], nil
}

// =============================================================================
// Name index maintenance
// =============================================================================

func (l *List) addNamed(names map[string][]Node) {
	if len(names) == 0 {
		return
	}
	if l.namedChildren == nil {
		l.namedChildren = make(map[string][]Node)
	}
	for name, nodes := range names {
		l.namedChildren[name] = append(l.namedChildren[name], nodes...)
	}
}

func (l *List) removeNamed(names map[string][]Node) {
	for name, nodes := range names {
		entries := l.namedChildren[name]
		for _, n := range nodes {
			b := n.base()
			entries = slices.DeleteFunc(entries, func(e Node) bool {
				return e.base() == b
			})
		}
		if len(entries) == 0 {
			delete(l.namedChildren, name)
		} else {
			l.namedChildren[name] = entries
		}
	}
}
