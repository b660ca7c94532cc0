package rst

import (
	"fmt"
	"strings"

	"github.com/matzehuels/doctower/pkg/doctree"
)

// underlines are the heading adornments by section depth, following the
// common Sphinx convention. Depths beyond the list reuse the last rune.
var underlines = []rune{'=', '-', '~', '^', '"'}

// Render renders a document tree to reStructuredText source. The page
// opens with a cross-reference label derived from the document name,
// then the title heading, then every member in tree order.
func Render(d *Document) string {
	var b strings.Builder

	if d.Name() != "" {
		fmt.Fprintf(&b, ".. _%s:\n\n", label(d.Name()))
	}
	if d.Title != "" {
		writeHeading(&b, d.Title, 0)
	}
	for _, child := range d.Children() {
		renderBlock(&b, child, 1, "")
	}
	return strings.TrimRight(b.String(), "\n") + "\n"
}

// label converts a page path to a reference label, e.g. "api/tree"
// becomes "api--tree".
func label(name string) string {
	return strings.ReplaceAll(name, "/", "--")
}

func writeHeading(b *strings.Builder, title string, depth int) {
	r := underlines[min(depth, len(underlines)-1)]
	b.WriteString(title + "\n")
	b.WriteString(strings.Repeat(string(r), len(title)) + "\n\n")
}

func renderBlock(b *strings.Builder, n doctree.Node, depth int, indent string) {
	switch t := n.(type) {
	case *Section:
		if t.Name() != "" {
			fmt.Fprintf(b, "%s.. _%s:\n\n", indent, label(t.Name()))
		}
		writeHeading(b, t.Title, depth)
		for _, child := range t.Children() {
			renderBlock(b, child, depth+1, indent)
		}

	case *Paragraph:
		writeIndented(b, t.Text, indent)
		b.WriteString("\n")

	case *CodeBlock:
		fmt.Fprintf(b, "%s.. code-block:: %s\n\n", indent, t.Language)
		writeIndented(b, t.Code, indent+"   ")
		b.WriteString("\n")

	case *Directive:
		fmt.Fprintf(b, "%s.. %s::", indent, t.Kind)
		if len(t.Args) > 0 {
			b.WriteString(" " + strings.Join(t.Args, " "))
		}
		b.WriteString("\n")
		for _, opt := range t.Options {
			if opt.Value == "" {
				fmt.Fprintf(b, "%s   :%s:\n", indent, opt.Key)
			} else {
				fmt.Fprintf(b, "%s   :%s: %s\n", indent, opt.Key, opt.Value)
			}
		}
		b.WriteString("\n")
		for _, child := range t.Children() {
			renderBlock(b, child, depth, indent+"   ")
		}

	case *TocTree:
		fmt.Fprintf(b, "%s.. toctree::\n", indent)
		if t.Hidden {
			fmt.Fprintf(b, "%s   :hidden:\n", indent)
		}
		if t.MaxDepth > 0 {
			fmt.Fprintf(b, "%s   :maxdepth: %d\n", indent, t.MaxDepth)
		}
		b.WriteString("\n")
		for _, entry := range t.Entries {
			fmt.Fprintf(b, "%s   %s\n", indent, entry)
		}
		b.WriteString("\n")
	}
}

// writeIndented writes text with every line prefixed by indent and a
// trailing newline.
func writeIndented(b *strings.Builder, text string, indent string) {
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		if line == "" {
			b.WriteString("\n")
			continue
		}
		b.WriteString(indent + line + "\n")
	}
}
