package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/render/styles"
	"github.com/matzehuels/treemap/pkg/render/tooltip"
	"github.com/matzehuels/treemap/pkg/treemap"
)

const (
	labelIndent  = 5
	labelLeading = "1.2em"
)

// RenderTree writes one cell group per tile of l.
func RenderTree(buf *bytes.Buffer, l treemap.Layout, colors palette.Assignment) {
	renderTree(buf, l, colors, false)
}

func renderTree(buf *bytes.Buffer, l treemap.Layout, colors palette.Assignment, titles bool) {
	for _, t := range l.Tiles {
		renderCell(buf, t, colors.Color(t.Node.Category), titles)
	}
}

func renderCell(buf *bytes.Buffer, t treemap.Tile, fill string, title bool) {
	n := t.Node
	value := hierarchy.FormatValue(n.Value)

	fmt.Fprintf(buf, `  <g class="cell" transform="translate(%s, %s)">`+"\n", num(t.X0), num(t.Y0))
	fmt.Fprintf(buf, `    <rect class="tile" data-name="%s" data-category="%s" data-value="%s" width="%s" height="%s" fill="%s"/>`+"\n",
		styles.EscapeXML(n.Name), styles.EscapeXML(n.Category), value, num(t.Width()), num(t.Height()), fill)
	if title {
		fmt.Fprintf(buf, "    <title>%s\n%s\nUS$%s</title>\n", styles.EscapeXML(n.Name), styles.EscapeXML(n.Category), value)
	}

	fmt.Fprintf(buf, `    <text class="tile-text" x="0" y="0" fill="%s">`, palette.TextColor(fill))
	for _, line := range styles.SplitLabel(n.Name) {
		fmt.Fprintf(buf, `<tspan x="%d" dy="%s">%s</tspan>`, labelIndent, labelLeading, styles.EscapeXML(line))
	}
	buf.WriteString("</text>\n  </g>\n")
}

// TileEvents returns the hover event raised when the pointer enters t at
// (x, y). The unhover event carries no data.
func TileEvents(t treemap.Tile, x, y float64) tooltip.HoverEvent {
	return tooltip.NewHoverEvent(t.Node, x, y)
}
