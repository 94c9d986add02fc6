// Package nodelink renders the category tree as a node-link diagram.
//
// # Overview
//
// The treemap shows leaf values as areas; this package shows the same
// hierarchy as boxes connected by arrows, laid out by Graphviz. Leaves are
// filled with their category color so both views read the same way.
//
// # Usage
//
//	dot := nodelink.ToDOT(root, nodelink.Options{Colors: colors})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// For PDF or PNG output, pass the SVG to [render.ToPDF] or [render.ToPNG].
//
// [render.ToPDF]: github.com/matzehuels/treemap/pkg/render.ToPDF
// [render.ToPNG]: github.com/matzehuels/treemap/pkg/render.ToPNG
package nodelink
