package doctree

import (
	"slices"
	"testing"
)

func TestOrderCompare(t *testing.T) {
	tests := []struct {
		name string
		a, b Order
		want int
	}{
		{"Equal", Order{1, 2}, Order{1, 2}, 0},
		{"PrefixFirst", Order{1}, Order{1, 0}, -1},
		{"SiblingOrder", Order{0, 3}, Order{0, 4}, -1},
		{"RootFirst", Order{}, Order{0}, -1},
		{"Greater", Order{2}, Order{1, 9}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.a.Compare(tt.b)
			if sign(got) != tt.want {
				t.Errorf("Compare(%v, %v) = %d, want sign %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func TestGraphOrder(t *testing.T) {
	t.Run("MatchesPreOrder", func(t *testing.T) {
		b, c := NewNode("b"), NewNode("c")
		inner, _ := NewListOf("inner", b, c)
		d := NewNode("d")
		outer, _ := NewListOf("outer", inner, d)
		a := NewNode("a")
		root, _ := NewListOf("root", a, outer)

		want := map[Node]Order{
			root:  {},
			a:     {0},
			outer: {1},
			inner: {1, 0},
			b:     {1, 0, 0},
			c:     {1, 0, 1},
			d:     {1, 1},
		}
		for n, w := range want {
			if got := n.GraphOrder(); !slices.Equal(got, w) {
				t.Errorf("%s.GraphOrder() = %v, want %v", n.Name(), got, w)
			}
		}
	})

	t.Run("IdempotentWithoutMutation", func(t *testing.T) {
		leaf := NewNode("leaf")
		root, _ := NewListOf("root", NewNode("x"), leaf)
		first := slices.Clone(leaf.GraphOrder())
		for range 3 {
			if got := leaf.GraphOrder(); !slices.Equal(got, first) {
				t.Fatalf("repeated read changed order: %v -> %v", first, got)
			}
		}
		_ = root
	})

	t.Run("StrictTotalOrder", func(t *testing.T) {
		inner, _ := NewListOf("inner", NewNode("b"), NewNode("c"))
		root, _ := NewListOf("root", NewNode("a"), inner, NewNode("d"))

		var orders []Order
		for n := range root.DepthFirst(true) {
			orders = append(orders, n.GraphOrder())
		}
		for i := 1; i < len(orders); i++ {
			if orders[i-1].Compare(orders[i]) >= 0 {
				t.Errorf("orders not strictly increasing at %d: %v >= %v", i, orders[i-1], orders[i])
			}
		}
	})

	t.Run("MutationShiftsFollowers", func(t *testing.T) {
		tail := NewNode("tail")
		root, _ := NewListOf("root", NewNode("a"), tail)

		if got := tail.GraphOrder(); !slices.Equal(got, Order{1}) {
			t.Fatalf("tail order = %v, want [1]", got)
		}
		if err := root.Insert(0, NewNode("front")); err != nil {
			t.Fatalf("Insert: %v", err)
		}
		if got := tail.GraphOrder(); !slices.Equal(got, Order{2}) {
			t.Errorf("tail order after insert = %v, want [2]", got)
		}
	})

	t.Run("DeepMutationInvalidatesWholeTree", func(t *testing.T) {
		deep := NewList("deep")
		sibling := NewNode("sibling")
		root, _ := NewListOf("root", deep, sibling)

		// Warm the cache.
		_ = sibling.GraphOrder()

		// Mutate inside a subtree the sibling does not belong to.
		if err := deep.Append(NewNode("n")); err != nil {
			t.Fatalf("Append: %v", err)
		}
		n, _ := deep.Child(0)
		if got := n.GraphOrder(); !slices.Equal(got, Order{0, 0}) {
			t.Errorf("nested order = %v, want [0 0]", got)
		}
		if got := sibling.GraphOrder(); !slices.Equal(got, Order{1}) {
			t.Errorf("sibling order = %v, want [1]", got)
		}
		_ = root
	})

	t.Run("DetachedNodeIsItsOwnRoot", func(t *testing.T) {
		n := NewNode("loose")
		if got := n.GraphOrder(); len(got) != 0 {
			t.Errorf("detached order = %v, want empty", got)
		}
		if len(n.Parentage()) != 1 {
			t.Errorf("detached parentage = %v, want self only", n.Parentage())
		}
	})
}

func TestParentage(t *testing.T) {
	leaf := NewNode("leaf")
	mid, _ := NewListOf("mid", leaf)
	root, _ := NewListOf("root", mid)

	got := leaf.Parentage()
	want := []Node{leaf, mid, root}
	if len(got) != len(want) {
		t.Fatalf("Parentage length = %d, want %d", len(got), len(want))
	}
	for i := range want {
		if !sameNode(got[i], want[i]) {
			t.Errorf("Parentage[%d] = %q, want %q", i, got[i].Name(), want[i].Name())
		}
	}
	if !sameNode(leaf.Root(), root) {
		t.Errorf("Root() = %v, want root", leaf.Root())
	}
}
