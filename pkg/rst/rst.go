// Package rst models reStructuredText documents as unique ordered trees
// and renders them to RST source.
//
// Pages are assembled from typed nodes built on the doctree container:
// a [Document] owns [Section], [Paragraph], [CodeBlock], [Directive],
// and [TocTree] members. Because the model is a tree, sections nest
// arbitrarily, moving a section between pages is a single reattachment,
// and name-keyed lookups (for cross-references) aggregate through
// nested sections in deterministic order.
package rst

import (
	"fmt"

	"github.com/matzehuels/doctower/pkg/doctree"
)

// blockCheck restricts composite members to rst node kinds.
func blockCheck(n doctree.Node) error {
	switch n.(type) {
	case *Section, *Paragraph, *CodeBlock, *Directive, *TocTree:
		return nil
	}
	return fmt.Errorf("rst members must be rst nodes, got %T", n)
}

// Document is the root of one output page. Its name is the page path
// relative to the build output directory, without extension.
type Document struct {
	doctree.List

	// Title renders as the page's top-level heading when non-empty.
	Title string
}

// NewDocument creates a detached document for the given page name.
func NewDocument(name, title string) *Document {
	d := &Document{Title: title}
	doctree.Bind(d)
	d.SetName(name)
	d.RestrictChildren(blockCheck)
	return d
}

// Section is a titled, nestable document division. Section depth in the
// tree decides the heading underline style on output.
type Section struct {
	doctree.List

	Title string
}

// NewSection creates a detached section. The name is the section's
// cross-reference label and may differ from the displayed title.
func NewSection(name, title string) *Section {
	s := &Section{Title: title}
	doctree.Bind(s)
	s.SetName(name)
	s.RestrictChildren(blockCheck)
	return s
}

// Paragraph is a leaf block of running text.
type Paragraph struct {
	doctree.NodeBase

	Text string
}

// NewParagraph creates a detached paragraph.
func NewParagraph(text string) *Paragraph {
	p := &Paragraph{Text: text}
	doctree.Bind(p)
	return p
}

// CodeBlock is a leaf literal block rendered as a code-block directive.
type CodeBlock struct {
	doctree.NodeBase

	Language string
	Code     string
}

// NewCodeBlock creates a detached code block.
func NewCodeBlock(language, code string) *CodeBlock {
	c := &CodeBlock{Language: language, Code: code}
	doctree.Bind(c)
	return c
}

// Directive is a generic RST directive with arguments, options, and an
// optional body of nested blocks.
type Directive struct {
	doctree.List

	// Kind is the directive name, e.g. "note", "rubric", "automodule".
	Kind string
	Args []string
	// Options render as ":key: value" field lines; a present key with an
	// empty value renders as a bare flag, e.g. ":nosignatures:".
	Options []Option
}

// Option is one directive option field.
type Option struct {
	Key   string
	Value string
}

// NewDirective creates a detached directive.
func NewDirective(name string, args ...string) *Directive {
	d := &Directive{Kind: name, Args: args}
	doctree.Bind(d)
	d.RestrictChildren(blockCheck)
	return d
}

// SetOption appends an option field.
func (d *Directive) SetOption(key, value string) {
	d.Options = append(d.Options, Option{Key: key, Value: value})
}

// TocTree is a table-of-contents directive listing other pages.
type TocTree struct {
	doctree.NodeBase

	Entries  []string
	Hidden   bool
	MaxDepth int
}

// NewTocTree creates a detached toctree over the given page entries.
func NewTocTree(hidden bool, entries ...string) *TocTree {
	tt := &TocTree{Entries: entries, Hidden: hidden}
	doctree.Bind(tt)
	return tt
}
