package treemap

import (
	"math"
	"sort"

	"github.com/jeffwilliams/squarify"

	"github.com/matzehuels/treemap/pkg/hierarchy"
)

const (
	DefaultWidth        = 1000.0
	DefaultHeight       = 600.0
	DefaultPaddingInner = 1.0
)

// Options configures [Compute]. Zero values mean a zero-sized canvas and no
// padding; callers wanting the standard canvas use [DefaultOptions].
type Options struct {
	Width        float64
	Height       float64
	PaddingInner float64
}

// DefaultOptions returns the 1000x600 canvas with 1-unit inner padding.
func DefaultOptions() Options {
	return Options{Width: DefaultWidth, Height: DefaultHeight, PaddingInner: DefaultPaddingInner}
}

type rect struct{ x0, y0, x1, y1 float64 }

func (r rect) inset(d float64) rect {
	out := rect{r.x0 + d, r.y0 + d, r.x1 - d, r.y1 - d}
	if out.x1 < out.x0 {
		out.x0 = (out.x0 + out.x1) / 2
		out.x1 = out.x0
	}
	if out.y1 < out.y0 {
		out.y0 = (out.y0 + out.y1) / 2
		out.y1 = out.y0
	}
	return out
}

// item is a node weighted by its aggregate value. It implements
// squarify.TreeSizer so a level of the tree can be tiled directly.
type item struct {
	node     *hierarchy.Node
	value    float64
	children []*item
}

func (it *item) Size() float64                  { return it.value }
func (it *item) NumChildren() int               { return len(it.children) }
func (it *item) Child(i int) squarify.TreeSizer { return it.children[i] }

// aggregate builds the weighted tree, sorting siblings by value descending.
// Ties keep document order.
func aggregate(n *hierarchy.Node) *item {
	it := &item{node: n}
	if n.IsLeaf() {
		it.value = n.Value
		return it
	}
	it.children = make([]*item, len(n.Children))
	for i, c := range n.Children {
		it.children[i] = aggregate(c)
		it.value += it.children[i].value
	}
	sort.SliceStable(it.children, func(i, j int) bool {
		return it.children[i].value > it.children[j].value
	})
	return it
}

// Compute lays out the leaves of root on the canvas described by opts.
func Compute(root *hierarchy.Node, opts Options) Layout {
	l := Layout{
		Width:        math.Max(opts.Width, 0),
		Height:       math.Max(opts.Height, 0),
		PaddingInner: math.Max(opts.PaddingInner, 0),
	}
	if root == nil {
		return l
	}

	tree := aggregate(root)
	l.Total = tree.value

	e := engine{half: l.PaddingInner / 2, bounds: rect{0, 0, l.Width, l.Height}}
	e.place(tree, e.bounds, 0)
	l.Tiles = e.tiles

	seen := make(map[string]bool)
	for _, t := range l.Tiles {
		if !seen[t.Node.Category] {
			seen[t.Node.Category] = true
			l.Categories = append(l.Categories, t.Node.Category)
		}
	}
	return l
}

type engine struct {
	half   float64
	bounds rect
	tiles  []Tile
}

func (e *engine) place(it *item, r rect, depth int) {
	if it.node.IsLeaf() {
		e.tiles = append(e.tiles, Tile{
			Node:  it.node,
			X0:    clamp(r.x0, e.bounds.x0, e.bounds.x1),
			Y0:    clamp(r.y0, e.bounds.y0, e.bounds.y1),
			X1:    clamp(r.x1, e.bounds.x0, e.bounds.x1),
			Y1:    clamp(r.y1, e.bounds.y0, e.bounds.y1),
			Depth: depth,
		})
		return
	}

	outer := rect{r.x0 - e.half, r.y0 - e.half, r.x1 + e.half, r.y1 + e.half}
	rects := e.split(it, r, outer)
	for i, c := range it.children {
		e.place(c, rects[i], depth+1)
	}
}

// split tiles the children of it into outer and returns one rectangle per
// child, already inset by the half padding. Children without area collapse
// onto the far corner of the parent rectangle r, as do all children of a
// level whose total overflows.
func (e *engine) split(it *item, r, outer rect) []rect {
	corner := rect{r.x1, r.y1, r.x1, r.y1}
	rects := make([]rect, len(it.children))
	for i := range rects {
		rects[i] = corner
	}

	positive := make([]*item, 0, len(it.children))
	for _, c := range it.children {
		if c.value > 0 {
			positive = append(positive, c)
		}
	}
	w, h := outer.x1-outer.x0, outer.y1-outer.y0
	if len(positive) == 0 || r.x1 <= r.x0 || r.y1 <= r.y0 {
		return rects
	}

	index := make(map[*item]int, len(it.children))
	for i, c := range it.children {
		index[c] = i
	}

	if len(positive) == 1 {
		rects[index[positive[0]]] = outer.inset(e.half)
		return rects
	}

	level := &item{node: it.node, value: 0, children: positive}
	for _, c := range positive {
		level.value += c.value
	}
	if math.IsInf(level.value, 0) {
		return rects
	}
	blocks, metas := squarify.Squarify(level, squarify.Rect{X: outer.x0, Y: outer.y0, W: w, H: h}, squarify.Options{
		MaxDepth: 1,
		Sort:     true,
	})
	for i, b := range blocks {
		if i >= len(metas) || metas[i].Depth != 0 {
			continue
		}
		c, ok := b.TreeSizer.(*item)
		if !ok {
			continue
		}
		if j, ok := index[c]; ok {
			rects[j] = rect{b.X, b.Y, b.X + b.W, b.Y + b.H}.inset(e.half)
		}
	}
	return rects
}

func clamp(v, lo, hi float64) float64 {
	return math.Min(math.Max(v, lo), hi)
}
