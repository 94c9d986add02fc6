package hierarchy

import (
	"math"
	"strconv"
)

// Node is one entry of the category tree.
// A node with a non-nil Children slice is internal; otherwise it is a leaf
// and Category and Value are set. Nodes are never mutated after decoding.
type Node struct {
	Name     string  `json:"name"`
	Category string  `json:"category,omitempty"`
	Value    float64 `json:"value,omitempty"`
	Children []*Node `json:"children,omitempty"`
}

// IsLeaf reports whether n carries a category and value rather than children.
func (n *Node) IsLeaf() bool {
	return n.Children == nil
}

// Sum returns the aggregate value of n: its own value for a leaf, the sum
// of its descendants' leaf values otherwise.
func (n *Node) Sum() float64 {
	if n.IsLeaf() {
		return n.Value
	}
	var total float64
	for _, c := range n.Children {
		total += c.Sum()
	}
	return total
}

// Leaves returns the leaves below n in document order.
func (n *Node) Leaves() []*Node {
	var out []*Node
	n.Walk(func(x *Node, _ int) bool {
		if x.IsLeaf() {
			out = append(out, x)
		}
		return true
	})
	return out
}

// Walk visits n and its descendants depth-first, pre-order. Returning false
// from fn skips the children of the visited node.
func (n *Node) Walk(fn func(node *Node, depth int) bool) {
	n.walk(fn, 0)
}

func (n *Node) walk(fn func(*Node, int) bool, depth int) {
	if !fn(n, depth) {
		return
	}
	for _, c := range n.Children {
		c.walk(fn, depth+1)
	}
}

// Categories returns the distinct leaf categories in document order.
func (n *Node) Categories() []string {
	seen := make(map[string]bool)
	var out []string
	for _, l := range n.Leaves() {
		if !seen[l.Category] {
			seen[l.Category] = true
			out = append(out, l.Category)
		}
	}
	return out
}

// FormatValue renders a leaf value the way it appears in tooltips and
// data-value attributes: integers without exponent or decimals.
func FormatValue(v float64) string {
	if v == math.Trunc(v) && math.Abs(v) < 1e21 {
		return strconv.FormatFloat(v, 'f', 0, 64)
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
