package dot

import (
	"fmt"
	"maps"
	"slices"
	"strings"
)

// Mode selects which Graphviz attribute set an [Attributes] value is
// validated against.
type Mode string

// Attribute validation modes.
const (
	ModeGraph   Mode = "graph"
	ModeCluster Mode = "cluster"
	ModeNode    Mode = "node"
	ModeEdge    Mode = "edge"
)

// Known Graphviz attribute names per context. Unknown names are rejected
// by [Attributes.Set] so misspellings fail at assembly time.
var (
	graphAttributes = newSet(
		"bgcolor", "center", "charset", "clusterrank", "color", "colorscheme",
		"comment", "compound", "concentrate", "dpi", "fontcolor", "fontname",
		"fontsize", "label", "labeljust", "labelloc", "landscape", "layout",
		"margin", "mclimit", "newrank", "nodesep", "ordering", "orientation",
		"outputorder", "overlap", "pad", "page", "pagedir", "rank", "rankdir",
		"ranksep", "ratio", "rotate", "size", "splines", "style", "stylesheet",
		"truecolor", "viewport",
	)

	clusterAttributes = newSet(
		"area", "bgcolor", "color", "colorscheme", "fillcolor", "fontcolor",
		"fontname", "fontsize", "gradientangle", "href", "id", "label",
		"labeljust", "labelloc", "margin", "nojustify", "pencolor", "penwidth",
		"peripheries", "sortv", "style", "target", "tooltip", "URL",
	)

	nodeAttributes = newSet(
		"area", "color", "colorscheme", "comment", "distortion", "fillcolor",
		"fixedsize", "fontcolor", "fontname", "fontsize", "gradientangle",
		"group", "height", "href", "id", "image", "imagescale", "label",
		"labelloc", "margin", "nojustify", "ordering", "orientation",
		"penwidth", "peripheries", "regular", "shape", "sides", "skew",
		"sortv", "style", "target", "tooltip", "URL", "width",
	)

	edgeAttributes = newSet(
		"arrowhead", "arrowsize", "arrowtail", "color", "colorscheme",
		"comment", "constraint", "decorate", "dir", "fillcolor", "fontcolor",
		"fontname", "fontsize", "headclip", "headlabel", "headport", "href",
		"id", "label", "labelangle", "labeldistance", "labelfloat",
		"labelfontcolor", "labelfontname", "labelfontsize", "lhead", "ltail",
		"minlen", "nojustify", "penwidth", "samehead", "sametail", "style",
		"taillabel", "tailclip", "tailport", "target", "tooltip", "weight",
	)

	modeSets = map[Mode]map[string]bool{
		ModeGraph:   graphAttributes,
		ModeCluster: clusterAttributes,
		ModeNode:    nodeAttributes,
		ModeEdge:    edgeAttributes,
	}
)

func newSet(names ...string) map[string]bool {
	s := make(map[string]bool, len(names))
	for _, n := range names {
		s[n] = true
	}
	return s
}

// Attributes is a validated set of Graphviz attributes for one context.
// The zero value is not usable; use [NewAttributes].
type Attributes struct {
	mode   Mode
	values map[string]any
}

// NewAttributes creates an empty attribute set validated against the
// given mode's attribute names.
func NewAttributes(mode Mode) *Attributes {
	return &Attributes{mode: mode, values: make(map[string]any)}
}

// Set stores an attribute value. The name must belong to the attribute
// set for this context; unknown names return an error and leave the set
// unchanged.
func (a *Attributes) Set(name string, value any) error {
	if !modeSets[a.mode][name] {
		return fmt.Errorf("unknown %s attribute %q", a.mode, name)
	}
	a.values[name] = value
	return nil
}

// Get returns the stored value and whether it is present.
func (a *Attributes) Get(name string) (any, bool) {
	v, ok := a.values[name]
	return v, ok
}

// Delete removes an attribute if present.
func (a *Attributes) Delete(name string) {
	delete(a.values, name)
}

// Len returns the number of stored attributes.
func (a *Attributes) Len() int { return len(a.values) }

// Names returns the stored attribute names in sorted order, giving
// deterministic DOT output.
func (a *Attributes) Names() []string {
	return slices.Sorted(maps.Keys(a.values))
}

// dotList renders the attributes as a DOT attribute list without
// surrounding brackets, e.g. `color="red", shape=box`.
func (a *Attributes) dotList() string {
	names := a.Names()
	parts := make([]string, len(names))
	for i, name := range names {
		parts[i] = fmt.Sprintf("%s=%s", name, dotValue(a.values[name]))
	}
	return strings.Join(parts, ", ")
}

// dotValue formats a single attribute value for DOT output. Bare
// identifiers and numbers stay unquoted; everything else is quoted.
func dotValue(v any) string {
	switch t := v.(type) {
	case string:
		if isDotID(t) {
			return t
		}
		return fmt.Sprintf("%q", t)
	case bool:
		return fmt.Sprintf("%t", t)
	case int, int64, float64, float32:
		return fmt.Sprintf("%v", t)
	default:
		return fmt.Sprintf("%q", fmt.Sprintf("%v", t))
	}
}

// isDotID reports whether s is a plain DOT identifier that needs no
// quoting: alphanumerics and underscores, not starting with a digit.
func isDotID(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_' || (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z'):
		case r >= '0' && r <= '9':
			if i == 0 {
				return false
			}
		default:
			return false
		}
	}
	return true
}
