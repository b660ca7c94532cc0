// Package dot models Graphviz documents as unique ordered trees and
// emits them as DOT source.
//
// A [Graph] is a composite tree node whose children are nested Graphs
// (emitted as clusters) and [Node] leaves. Edges are not tree members:
// an [Edge] links two attached nodes and is owned by its tail. Because
// the model is a doctree, structural invariants hold for free - a node
// lives in exactly one graph, name lookups aggregate through nested
// clusters, and emission order follows graph order deterministically.
//
// Attribute names are validated against the Graphviz attribute sets for
// their context (graph, cluster, node, or edge), so typos surface at
// assembly time instead of as silently ignored output.
//
//	g := dot.NewGraph("deps")
//	a, b := dot.NewNode("a"), dot.NewNode("b")
//	g.Append(a)
//	g.Append(b)
//	dot.Connect(a, b)
//	svg, err := dot.RenderSVG(g.DOT())
package dot
