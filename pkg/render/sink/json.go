package sink

import (
	"encoding/json"

	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// LayoutJSON is the serialized form of a treemap layout.
type LayoutJSON struct {
	Width        float64        `json:"width"`
	Height       float64        `json:"height"`
	PaddingInner float64        `json:"padding_inner"`
	Total        float64        `json:"total"`
	Categories   []CategoryJSON `json:"categories"`
	Tiles        []TileJSON     `json:"tiles"`
}

type CategoryJSON struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type TileJSON struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Value    string  `json:"value"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Width    float64 `json:"width"`
	Height   float64 `json:"height"`
	Depth    int     `json:"depth"`
	Fill     string  `json:"fill"`
}

// ExportLayout converts l to its serialized form.
func ExportLayout(l treemap.Layout, opts ...Option) LayoutJSON {
	r := newRenderer(l, opts...)

	out := LayoutJSON{
		Width:        l.Width,
		Height:       l.Height,
		PaddingInner: l.PaddingInner,
		Total:        l.Total,
		Categories:   make([]CategoryJSON, len(l.Categories)),
		Tiles:        make([]TileJSON, len(l.Tiles)),
	}
	for i, c := range l.Categories {
		out.Categories[i] = CategoryJSON{Name: c, Color: r.colors.Color(c)}
	}
	for i, t := range l.Tiles {
		out.Tiles[i] = TileJSON{
			Name:     t.Node.Name,
			Category: t.Node.Category,
			Value:    hierarchy.FormatValue(t.Node.Value),
			X:        t.X0,
			Y:        t.Y0,
			Width:    t.Width(),
			Height:   t.Height(),
			Depth:    t.Depth,
			Fill:     r.colors.Color(t.Node.Category),
		}
	}
	return out
}

// RenderJSON renders l as indented JSON.
func RenderJSON(l treemap.Layout, opts ...Option) ([]byte, error) {
	data, err := json.MarshalIndent(ExportLayout(l, opts...), "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
