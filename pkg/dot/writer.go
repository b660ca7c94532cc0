package dot

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/doctower/pkg/doctree"
)

// DOT renders the graph and everything it owns as Graphviz DOT source.
// Nodes and clusters appear in tree order; edges are emitted last, at
// the top level, and only when both endpoints live inside this graph.
// Output is deterministic for a given tree shape.
func (g *Graph) DOT() string {
	ids := assignIDs(g)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %s {\n", graphID(g))
	g.writeAttrs(&buf, "  ")
	g.writeChildren(&buf, ids, "  ")
	g.writeEdges(&buf, ids)
	buf.WriteString("}\n")
	return buf.String()
}

func graphID(g *Graph) string {
	if g.Name() == "" {
		return "G"
	}
	return dotValue(g.Name())
}

// assignIDs gives every node under root a unique, stable DOT identifier:
// the node's name when it is unique in the tree, otherwise the name (or
// "node") suffixed with the node's graph order.
func assignIDs(root *Graph) map[*Node]string {
	counts := make(map[string]int)
	var nodes []*Node
	for n := range root.Recurse() {
		if dn, ok := n.(*Node); ok {
			nodes = append(nodes, dn)
			counts[dn.Name()]++
		}
	}

	ids := make(map[*Node]string, len(nodes))
	for _, dn := range nodes {
		name := dn.Name()
		switch {
		case name != "" && counts[name] == 1:
			ids[dn] = name
		case name != "":
			ids[dn] = name + "_" + orderSuffix(dn.GraphOrder())
		default:
			ids[dn] = "node_" + orderSuffix(dn.GraphOrder())
		}
	}
	return ids
}

func orderSuffix(o doctree.Order) string {
	return strings.ReplaceAll(o.String(), ".", "_")
}

// writeAttrs emits graph-level attributes and node/edge defaults.
func (g *Graph) writeAttrs(buf *bytes.Buffer, indent string) {
	for _, name := range g.attrs.Names() {
		v, _ := g.attrs.Get(name)
		fmt.Fprintf(buf, "%s%s=%s;\n", indent, name, dotValue(v))
	}
	if g.nodeDefaults.Len() > 0 {
		fmt.Fprintf(buf, "%snode [%s];\n", indent, g.nodeDefaults.dotList())
	}
	if g.edgeDefaults.Len() > 0 {
		fmt.Fprintf(buf, "%sedge [%s];\n", indent, g.edgeDefaults.dotList())
	}
}

// writeChildren emits the graph's members in order, nesting subgraphs
// as clusters.
func (g *Graph) writeChildren(buf *bytes.Buffer, ids map[*Node]string, indent string) {
	for _, child := range g.Children() {
		switch c := child.(type) {
		case *Node:
			if c.attrs.Len() > 0 {
				fmt.Fprintf(buf, "%s%s [%s];\n", indent, quoteID(ids[c]), c.attrs.dotList())
			} else {
				fmt.Fprintf(buf, "%s%s;\n", indent, quoteID(ids[c]))
			}
		case *Graph:
			fmt.Fprintf(buf, "%ssubgraph cluster_%s {\n", indent, orderSuffix(c.GraphOrder()))
			inner := indent + "  "
			if c.Name() != "" {
				if _, ok := c.attrs.Get("label"); !ok {
					fmt.Fprintf(buf, "%slabel=%s;\n", inner, dotValue(c.Name()))
				}
			}
			c.writeAttrs(buf, inner)
			c.writeChildren(buf, ids, inner)
			fmt.Fprintf(buf, "%s}\n", indent)
		}
	}
}

// writeEdges emits every edge whose endpoints both live under g.
func (g *Graph) writeEdges(buf *bytes.Buffer, ids map[*Node]string) {
	var lines []string
	for n := range g.Recurse() {
		dn, ok := n.(*Node)
		if !ok {
			continue
		}
		for _, e := range dn.edges {
			headID, ok := ids[e.head]
			if !ok {
				continue // head lives in another tree
			}
			line := fmt.Sprintf("  %s -> %s", quoteID(ids[dn]), quoteID(headID))
			if e.attrs.Len() > 0 {
				line += fmt.Sprintf(" [%s]", e.attrs.dotList())
			}
			lines = append(lines, line+";")
		}
	}
	if len(lines) == 0 {
		return
	}
	buf.WriteString("\n")
	for _, line := range lines {
		buf.WriteString(line + "\n")
	}
}

func quoteID(id string) string {
	if isDotID(id) {
		return id
	}
	return fmt.Sprintf("%q", id)
}
