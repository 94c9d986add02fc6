package sink

import (
	"math"
	"strconv"

	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// Option configures the format renderers.
type Option func(*renderer)

type renderer struct {
	colors      palette.Assignment
	hasColors   bool
	legend      LegendOptions
	showLegend  bool
	tooltip     bool
	title       string
	description string
}

// WithColors sets the category colors. By default categories are mapped
// onto [palette.Pastel1] in layout order.
func WithColors(a palette.Assignment) Option {
	return func(r *renderer) { r.colors, r.hasColors = a, true }
}

// WithLegend overrides the legend geometry.
func WithLegend(opts LegendOptions) Option {
	return func(r *renderer) { r.legend = opts }
}

func WithoutLegend() Option { return func(r *renderer) { r.showLegend = false } }

// WithoutTooltip omits the tooltip element and hover script from HTML
// output, and the native hover titles from SVG output.
func WithoutTooltip() Option { return func(r *renderer) { r.tooltip = false } }

// WithTitle sets the page heading and description.
func WithTitle(title, description string) Option {
	return func(r *renderer) { r.title, r.description = title, description }
}

func newRenderer(l treemap.Layout, opts ...Option) renderer {
	r := renderer{
		legend:     DefaultLegendOptions(),
		showLegend: true,
		tooltip:    true,
	}
	for _, opt := range opts {
		opt(&r)
	}
	if !r.hasColors {
		r.colors = palette.Assign(l.Categories, nil)
	}
	return r
}

// num formats a coordinate with at most three decimals and no trailing zeros.
func num(v float64) string {
	v = math.Round(v*1000) / 1000
	if v == 0 {
		v = 0 // drop negative zero
	}
	return strconv.FormatFloat(v, 'f', -1, 64)
}
