package dot

import (
	"fmt"

	"github.com/matzehuels/doctower/pkg/doctree"
)

// Graph is a Graphviz graph or cluster. It is a composite tree node: its
// children are [Node] leaves and nested Graphs, which emit as clusters.
// The root Graph owns everything transitively, so moving a subgraph
// between documents is a single tree reattachment.
//
// Graph is not safe for concurrent use.
type Graph struct {
	doctree.List

	attrs        *Attributes
	nodeDefaults *Attributes
	edgeDefaults *Attributes
}

// NewGraph creates a detached, empty directed graph. The name becomes
// the graph ID at the top level and the cluster label when nested.
func NewGraph(name string) *Graph {
	g := &Graph{
		attrs:        NewAttributes(ModeGraph),
		nodeDefaults: NewAttributes(ModeNode),
		edgeDefaults: NewAttributes(ModeEdge),
	}
	doctree.Bind(g)
	g.SetName(name)
	g.RestrictChildren(func(n doctree.Node) error {
		switch n.(type) {
		case *Graph, *Node:
			return nil
		}
		return fmt.Errorf("graph children must be graphs or nodes, got %T", n)
	})
	return g
}

// Attributes returns the graph-level attribute set. For nested graphs
// these emit inside the cluster block; validate against [ModeCluster]
// names yourself if the graph will only ever be a cluster.
func (g *Graph) Attributes() *Attributes { return g.attrs }

// NodeDefaults returns the attribute set emitted as this graph's
// `node [...]` defaults.
func (g *Graph) NodeDefaults() *Attributes { return g.nodeDefaults }

// EdgeDefaults returns the attribute set emitted as this graph's
// `edge [...]` defaults.
func (g *Graph) EdgeDefaults() *Attributes { return g.edgeDefaults }

// Node is a Graphviz node: a leaf tree member carrying attributes and
// owning the edges that start at it.
type Node struct {
	doctree.NodeBase

	attrs *Attributes
	edges []*Edge
}

// NewNode creates a detached node with the given name. The name doubles
// as the preferred DOT identifier; unnamed nodes get identifiers derived
// from their graph order.
func NewNode(name string) *Node {
	n := &Node{attrs: NewAttributes(ModeNode)}
	doctree.Bind(n)
	n.SetName(name)
	return n
}

// Attributes returns the node's attribute set.
func (n *Node) Attributes() *Attributes { return n.attrs }

// Edges returns the edges whose tail is this node.
func (n *Node) Edges() []*Edge {
	out := make([]*Edge, len(n.edges))
	copy(out, n.edges)
	return out
}

// Edge is a directed connection between two nodes. Edges are not tree
// members; an edge is owned by its tail node and is emitted by the
// graph containing both endpoints.
type Edge struct {
	tail  *Node
	head  *Node
	attrs *Attributes
}

// Connect creates an edge from tail to head and registers it on the
// tail node.
func Connect(tail, head *Node) *Edge {
	e := &Edge{tail: tail, head: head, attrs: NewAttributes(ModeEdge)}
	tail.edges = append(tail.edges, e)
	return e
}

// Tail returns the edge's source node.
func (e *Edge) Tail() *Node { return e.tail }

// Head returns the edge's target node.
func (e *Edge) Head() *Node { return e.head }

// Attributes returns the edge's attribute set.
func (e *Edge) Attributes() *Attributes { return e.attrs }

// Disconnect removes the edge from its tail node. Disconnecting an
// already-removed edge is a no-op.
func (e *Edge) Disconnect() {
	edges := e.tail.edges
	for i, other := range edges {
		if other == e {
			e.tail.edges = append(edges[:i], edges[i+1:]...)
			return
		}
	}
}
