package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/treemap/pkg/treemap"
)

const legendMargin = 20

const svgCSS = `
    .tile { stroke: none; }
    .tile:hover { stroke: #333; stroke-width: 1; }
    .tile-text { font: 10px sans-serif; pointer-events: none; }
    .legend text { font: 12px sans-serif; }`

// RenderSVG renders the tree and, unless disabled, the legend below it as a
// single SVG document.
func RenderSVG(l treemap.Layout, opts ...Option) []byte {
	r := newRenderer(l, opts...)

	height := l.Height
	if r.showLegend {
		height += legendMargin + LegendHeight(len(l.Categories), r.legend)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %s %s" width="%s" height="%s">`+"\n",
		num(l.Width), num(height), num(l.Width), num(height))
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", svgCSS)

	buf.WriteString(`  <g id="tree-map">` + "\n")
	renderTree(&buf, l, r.colors, r.tooltip)
	buf.WriteString("  </g>\n")

	if r.showLegend {
		fmt.Fprintf(&buf, `  <g id="legend" class="legend" transform="translate(0, %s)">`+"\n", num(l.Height+legendMargin))
		RenderLegend(&buf, l.Categories, r.colors, r.legend)
		buf.WriteString("  </g>\n")
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}
