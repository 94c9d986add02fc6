// Package sink renders treemap layouts to output formats.
//
// # Formats
//
//   - [RenderHTML]: a standalone page with the tree, the legend, the
//     tooltip element and its hover script
//   - [RenderSVG]: a single SVG holding the tree with the legend below it
//   - [RenderJSON]: the computed layout for external tooling
//   - [RenderPNG], [RenderPDF]: raster and print output via rsvg-convert
//
// # Building Blocks
//
// [RenderTree] and [RenderLegend] write the two SVG fragments shared by the
// formats above. Each leaf becomes a group translated to the tile origin:
//
//	<g class="cell" transform="translate(x0, y0)">
//	  <rect class="tile" data-name=".." data-category=".." data-value=".." width=".." height=".." fill=".."/>
//	  <text class="tile-text"><tspan x="5" dy="1.2em">..</tspan></text>
//	</g>
//
// Legend items are laid out in rows of [LegendOptions.Rows] items; see
// [LegendPosition].
//
// # Options
//
//	html := sink.RenderHTML(layout,
//	    sink.WithColors(palette.Assign(layout.Categories, nil)),
//	    sink.WithTitle("Movie Sales", "Top 100 Highest Grossing Movies Grouped By Genre"),
//	)
package sink
