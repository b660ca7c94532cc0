package doctree

import (
	"slices"
	"testing"
)

// buildTraversalTree builds root R with children [A (leaf), O (composite
// with children [I (composite with children [B, C]), D (leaf)])].
func buildTraversalTree(t *testing.T) *List {
	t.Helper()
	b, c := NewNode("b"), NewNode("c")
	inner, err := NewListOf("inner", b, c)
	if err != nil {
		t.Fatalf("NewListOf: %v", err)
	}
	outer, err := NewListOf("outer", inner, NewNode("d"))
	if err != nil {
		t.Fatalf("NewListOf: %v", err)
	}
	root, err := NewListOf("root", NewNode("a"), outer)
	if err != nil {
		t.Fatalf("NewListOf: %v", err)
	}
	return root
}

func collect(seq func(func(Node) bool)) []string {
	var out []string
	seq(func(n Node) bool {
		out = append(out, n.Name())
		return true
	})
	return out
}

func TestDepthFirst(t *testing.T) {
	root := buildTraversalTree(t)

	tests := []struct {
		name    string
		topDown bool
		want    []string
	}{
		{"TopDown", true, []string{"a", "outer", "inner", "b", "c", "d"}},
		{"BottomUp", false, []string{"a", "b", "c", "inner", "d", "outer"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := collect(root.DepthFirst(tt.topDown))
			if !slices.Equal(got, tt.want) {
				t.Errorf("DepthFirst(%v) = %v, want %v", tt.topDown, got, tt.want)
			}
		})
	}
}

func TestDepthFirstRestartable(t *testing.T) {
	root := buildTraversalTree(t)
	seq := root.DepthFirst(true)

	first := collect(seq)
	second := collect(seq)
	if !slices.Equal(first, second) {
		t.Errorf("second pass differs: %v vs %v", first, second)
	}
}

func TestDepthFirstEarlyStop(t *testing.T) {
	root := buildTraversalTree(t)

	var got []string
	for n := range root.DepthFirst(true) {
		got = append(got, n.Name())
		if len(got) == 3 {
			break
		}
	}
	want := []string{"a", "outer", "inner"}
	if !slices.Equal(got, want) {
		t.Errorf("truncated walk = %v, want %v", got, want)
	}
}

func TestRecurse(t *testing.T) {
	root := buildTraversalTree(t)

	got := collect(root.Recurse())
	want := []string{"a", "outer", "inner", "b", "c", "d"}
	if !slices.Equal(got, want) {
		t.Errorf("Recurse = %v, want %v", got, want)
	}
}

func TestTraversalExcludesReceiver(t *testing.T) {
	root := buildTraversalTree(t)
	for n := range root.DepthFirst(true) {
		if sameNode(n, root) {
			t.Fatalf("DepthFirst yielded the receiver")
		}
	}
}

func TestAsList(t *testing.T) {
	if _, ok := AsList(NewNode("leaf")); ok {
		t.Errorf("AsList(leaf) = true, want false")
	}
	if _, ok := AsList(NewList("comp")); !ok {
		t.Errorf("AsList(composite) = false, want true")
	}
	if _, ok := AsList(newSection("embedded")); !ok {
		t.Errorf("AsList(embedding type) = false, want true")
	}
}
