package sink

import (
	"bytes"
	"fmt"

	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/render/styles"
)

// LegendOptions is the legend geometry.
type LegendOptions struct {
	Width   float64 // total width, split evenly into Rows columns
	Rows    int     // items per visual row
	Gap     float64 // vertical space between rows
	Size    float64 // swatch edge length
	OffsetX float64 // horizontal offset of the item group
}

func DefaultLegendOptions() LegendOptions {
	return LegendOptions{Width: 600, Rows: 3, Gap: 10, Size: 15, OffsetX: 90}
}

func (o LegendOptions) normalized() LegendOptions {
	if o.Rows < 1 {
		o.Rows = 1
	}
	return o
}

// LegendPosition returns the offset of legend item i inside the item group.
func LegendPosition(i int, opts LegendOptions) (x, y float64) {
	opts = opts.normalized()
	col, row := i%opts.Rows, i/opts.Rows
	x = float64(col) * (opts.Width / float64(opts.Rows))
	y = float64(row)*opts.Size + opts.Gap*float64(row)
	return x, y
}

// LegendHeight returns the height needed to show n legend items.
func LegendHeight(n int, opts LegendOptions) float64 {
	opts = opts.normalized()
	rows := (n + opts.Rows - 1) / opts.Rows
	return float64(rows) * (opts.Size + opts.Gap)
}

// RenderLegend writes the legend item group: one swatch and label per
// category, in the given order.
func RenderLegend(buf *bytes.Buffer, categories []string, colors palette.Assignment, opts LegendOptions) {
	opts = opts.normalized()
	fmt.Fprintf(buf, `  <g transform="translate(%s, 0)">`+"\n", num(opts.OffsetX))
	for i, c := range categories {
		x, y := LegendPosition(i, opts)
		fmt.Fprintf(buf, `    <g transform="translate(%s, %s)">`, num(x), num(y))
		fmt.Fprintf(buf, `<rect class="legend-item" width="%s" height="%s" fill="%s"/>`,
			num(opts.Size), num(opts.Size), colors.Color(c))
		fmt.Fprintf(buf, `<text x="%s" y="%s">%s</text></g>`+"\n",
			num(opts.Size+3), num(opts.Size-3), styles.EscapeXML(c))
	}
	buf.WriteString("  </g>\n")
}
