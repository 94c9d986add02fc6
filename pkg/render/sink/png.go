package sink

import (
	"context"

	"github.com/matzehuels/treemap/pkg/render"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// RenderPNG renders the layout as PNG via SVG conversion at the given scale
// (2.0 for 2x resolution).
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPNG(ctx context.Context, l treemap.Layout, scale float64, opts ...Option) ([]byte, error) {
	return render.ToPNG(ctx, RenderSVG(l, opts...), scale)
}

// RenderPDF renders the layout as PDF via SVG conversion.
// Requires librsvg: brew install librsvg (macOS), apt install librsvg2-bin (Linux).
func RenderPDF(ctx context.Context, l treemap.Layout, opts ...Option) ([]byte, error) {
	return render.ToPDF(ctx, RenderSVG(l, opts...))
}
