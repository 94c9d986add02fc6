// Package render turns treemap layouts into visual output.
//
// # Overview
//
//   - [sink]: HTML, SVG, JSON, PNG and PDF output of a treemap layout
//   - [palette]: category to color assignment
//   - [styles]: label splitting and escaping shared by the sinks
//   - [tooltip]: the hover tooltip state driven by tile events
//   - [nodelink]: Graphviz diagram of the category tree
//
// # Format Conversion
//
// [ToPDF] and [ToPNG] convert any SVG using the external rsvg-convert tool
// (from librsvg):
//
//	svg := sink.RenderSVG(layout)
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)
//
// [sink]: github.com/matzehuels/treemap/pkg/render/sink
// [palette]: github.com/matzehuels/treemap/pkg/render/palette
// [styles]: github.com/matzehuels/treemap/pkg/render/styles
// [tooltip]: github.com/matzehuels/treemap/pkg/render/tooltip
// [nodelink]: github.com/matzehuels/treemap/pkg/render/nodelink
package render
