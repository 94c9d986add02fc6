package treemap

import "github.com/matzehuels/treemap/pkg/hierarchy"

// Tile is the rectangle assigned to one leaf, in canvas coordinates.
type Tile struct {
	Node           *hierarchy.Node
	X0, Y0, X1, Y1 float64
	Depth          int
}

func (t Tile) Width() float64  { return t.X1 - t.X0 }
func (t Tile) Height() float64 { return t.Y1 - t.Y0 }
func (t Tile) Area() float64   { return t.Width() * t.Height() }

// Contains reports whether the point lies inside the tile, edges included.
func (t Tile) Contains(x, y float64) bool {
	return x >= t.X0 && x <= t.X1 && y >= t.Y0 && y <= t.Y1
}

// Layout is the result of [Compute].
type Layout struct {
	Width, Height float64
	PaddingInner  float64

	// Tiles lists the leaves depth-first in sorted sibling order.
	Tiles []Tile

	// Categories lists distinct leaf categories in the order they first
	// appear in Tiles.
	Categories []string

	// Total is the aggregate value of the root.
	Total float64
}

// TileAt returns the tile with positive area containing the point.
func (l Layout) TileAt(x, y float64) (Tile, bool) {
	for _, t := range l.Tiles {
		if t.Area() > 0 && t.Contains(x, y) {
			return t, true
		}
	}
	return Tile{}, false
}
