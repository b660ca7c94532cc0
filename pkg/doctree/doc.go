// Package doctree implements a unique ordered tree container for nested
// documents, graph structures, and API hierarchies.
//
// A tree is built from two node kinds: [NodeBase], a leaf that carries an
// optional name and a back-reference to its parent, and [List], a composite
// node that additionally owns an ordered sequence of children and an index
// of descendant names. A node belongs to at most one tree at a time, has at
// most one parent, and appears at most once in any children sequence. These
// invariants are enforced by construction: every structural change routes
// through a single validate-then-apply range replacement ([List.SetRange]),
// and parent links are only ever written by that protocol.
//
// # Ordering
//
// Each node in a tree has a graph order: a tuple of per-level positions
// identifying its place in a pre-order, left-to-right walk from the
// ultimate root. Graph orders are cached and lazily recomputed; any
// mutation anywhere in a tree invalidates the cache for the whole tree,
// because an insertion or removal shifts the position of every node that
// follows it in pre-order. Name lookups return matches sorted by graph
// order, giving a deterministic tie-break when the same name appears in
// different subtrees.
//
// # Embedding
//
// Domain node types embed NodeBase or List and call [Bind] in their
// constructors so that traversal and parentage yield the outer type:
//
//	type Section struct {
//	    doctree.List
//	}
//
//	func NewSection(name string) *Section {
//	    s := &Section{}
//	    doctree.Bind(s)
//	    s.SetName(name)
//	    return s
//	}
//
// Trees are not safe for concurrent use. Reads may be freely interleaved
// with each other, but callers must serialize structural changes with
// external locking if a tree is shared across goroutines.
package doctree
