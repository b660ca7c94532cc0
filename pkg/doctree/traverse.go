package doctree

import (
	"iter"
	"slices"
)

// lister is satisfied by *List and by every type embedding List, which
// is how traversal decides whether to descend into a node.
type lister interface {
	listBase() *List
}

func (l *List) listBase() *List { return l }

// AsList returns the composite view of n and true if n is a [List] or
// embeds one, or nil and false for leaf nodes. Emitters walking a tree
// use this to decide whether a node owns children.
func AsList(n Node) (*List, bool) {
	if v, ok := n.(lister); ok {
		return v.listBase(), true
	}
	return nil, false
}

// DepthFirst returns a lazy sequence over all descendants of this list,
// not including the list itself. With topDown true the walk is
// pre-order (a node is yielded before its children); with topDown false
// it is post-order (a node is yielded after its children). Each call
// produces a fresh, independent sequence and never mutates the tree.
// Mutating the tree while iterating is undefined.
func (l *List) DepthFirst(topDown bool) iter.Seq[Node] {
	return func(yield func(Node) bool) {
		l.depthFirst(topDown, yield)
	}
}

func (l *List) depthFirst(topDown bool, yield func(Node) bool) bool {
	for _, child := range slices.Clone(l.children) {
		if topDown && !yield(child) {
			return false
		}
		if cl, ok := AsList(child); ok {
			if !cl.depthFirst(topDown, yield) {
				return false
			}
		}
		if !topDown && !yield(child) {
			return false
		}
	}
	return true
}

// Recurse returns a lazy sequence over every direct and indirect child,
// yielding each child before descending into it when it is a composite.
// This is a flat enumeration of membership regardless of node kind,
// equivalent to DepthFirst(true) for trees built from doctree kinds.
func (l *List) Recurse() iter.Seq[Node] {
	return func(yield func(Node) bool) {
		l.recurse(yield)
	}
}

func (l *List) recurse(yield func(Node) bool) bool {
	for _, child := range slices.Clone(l.children) {
		if !yield(child) {
			return false
		}
		if cl, ok := AsList(child); ok {
			if !cl.recurse(yield) {
				return false
			}
		}
	}
	return true
}
