// Package treemap computes squarified treemap layouts for a category tree.
//
// # Overview
//
// [Compute] takes a decoded [hierarchy.Node] and a canvas size and returns a
// [Layout] holding one [Tile] per leaf. The algorithm runs in three passes:
//
//   - Aggregation: every internal node is weighted by the sum of its leaves.
//   - Ordering: siblings are stably sorted by aggregate value, largest first.
//   - Subdivision: each level is tiled with the squarified algorithm from
//     github.com/jeffwilliams/squarify, then inset by the inner padding.
//
// # Padding
//
// Inner padding separates siblings without shrinking the canvas. The
// children of a node are tiled into the node's rectangle grown by half the
// padding, and each resulting rectangle is then shrunk by half the padding.
// Neighbouring tiles therefore end up exactly [Options.PaddingInner] apart
// while tiles on the outside touch the canvas edge.
//
// # Degenerate input
//
// Zero-valued leaves and internal nodes without leaves receive zero-area
// tiles. A tree consisting of a single leaf covers the whole canvas. A
// non-positive canvas yields zero-area tiles at the origin.
//
//	l := treemap.Compute(root, treemap.Options{Width: 1000, Height: 600, PaddingInner: 1})
//	for _, t := range l.Tiles {
//	    fmt.Println(t.Node.Name, t.Width(), t.Height())
//	}
//
// [hierarchy.Node]: github.com/matzehuels/treemap/pkg/hierarchy.Node
package treemap
