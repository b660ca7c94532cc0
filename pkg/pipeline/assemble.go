package pipeline

import (
	"github.com/matzehuels/doctower/pkg/config"
	"github.com/matzehuels/doctower/pkg/doctree"
	"github.com/matzehuels/doctower/pkg/dot"
	"github.com/matzehuels/doctower/pkg/errors"
	"github.com/matzehuels/doctower/pkg/rst"
)

// Tree is the assembled model of one documentation build: a single
// document tree rooted at the project plus the diagrams to render
// alongside it.
type Tree struct {
	// Root owns every page. Page order in the root is manifest order,
	// which also fixes the graph order used for name lookups.
	Root *doctree.List

	// Documents are the pages in manifest order, index page first if
	// one was synthesized.
	Documents []*rst.Document

	// Graphs are the diagrams in manifest order.
	Graphs []*dot.Graph
}

// Assemble builds the document tree and diagram graphs from a validated
// manifest. When the manifest defines no "index" page, one is
// synthesized with a toctree over all other pages.
func Assemble(cfg *config.Config) (*Tree, error) {
	tree := &Tree{Root: doctree.NewList(cfg.Project.Name)}
	tree.Root.RestrictChildren(func(n doctree.Node) error {
		if _, ok := n.(*rst.Document); !ok {
			return errors.New(errors.ErrCodeInvalidChild, "project members must be documents, got %T", n)
		}
		return nil
	})

	hasIndex := false
	var paths []string
	for _, p := range cfg.Pages {
		if p.Path == "index" {
			hasIndex = true
		} else {
			paths = append(paths, p.Path)
		}
	}
	if !hasIndex {
		idx := rst.NewDocument("index", indexTitle(cfg))
		if err := idx.Append(rst.NewTocTree(false, paths...)); err != nil {
			return nil, err
		}
		if err := tree.Root.Append(idx); err != nil {
			return nil, err
		}
		tree.Documents = append(tree.Documents, idx)
	}

	for _, p := range cfg.Pages {
		doc, err := buildDocument(p)
		if err != nil {
			return nil, err
		}
		if err := tree.Root.Append(doc); err != nil {
			return nil, err
		}
		tree.Documents = append(tree.Documents, doc)
	}

	for _, g := range cfg.Graphs {
		graph, err := buildGraph(g)
		if err != nil {
			return nil, err
		}
		tree.Graphs = append(tree.Graphs, graph)
	}

	return tree, nil
}

// NodeCount returns the number of tree members across all pages,
// excluding the root itself.
func (t *Tree) NodeCount() int {
	n := 0
	for range t.Root.DepthFirst(true) {
		n++
	}
	return n
}

func indexTitle(cfg *config.Config) string {
	if cfg.Project.Title != "" {
		return cfg.Project.Title
	}
	return cfg.Project.Name
}

func buildDocument(p config.PageConfig) (*rst.Document, error) {
	doc := rst.NewDocument(p.Path, p.Title)
	if p.Body != "" {
		if err := doc.Append(rst.NewParagraph(p.Body)); err != nil {
			return nil, err
		}
	}
	for _, s := range p.Sections {
		sec, err := buildSection(s)
		if err != nil {
			return nil, err
		}
		if err := doc.Append(sec); err != nil {
			return nil, err
		}
	}
	return doc, nil
}

func buildSection(s config.SectionConfig) (*rst.Section, error) {
	sec := rst.NewSection(s.Name, s.Title)
	if s.Body != "" {
		if err := sec.Append(rst.NewParagraph(s.Body)); err != nil {
			return nil, err
		}
	}
	for _, nested := range s.Sections {
		child, err := buildSection(nested)
		if err != nil {
			return nil, err
		}
		if err := sec.Append(child); err != nil {
			return nil, err
		}
	}
	return sec, nil
}

func buildGraph(g config.GraphConfig) (*dot.Graph, error) {
	graph := dot.NewGraph(g.Name)
	if g.Title != "" {
		if err := graph.Attributes().Set("label", g.Title); err != nil {
			return nil, err
		}
	}

	nodes := make(map[string]*dot.Node, len(g.Nodes))
	for _, name := range g.Nodes {
		n := dot.NewNode(name)
		if err := graph.Append(n); err != nil {
			return nil, err
		}
		nodes[name] = n
	}
	for _, e := range g.Edges {
		edge := dot.Connect(nodes[e.Tail], nodes[e.Head])
		if e.Label != "" {
			if err := edge.Attributes().Set("label", e.Label); err != nil {
				return nil, err
			}
		}
	}
	return graph, nil
}
