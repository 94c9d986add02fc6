package pipeline

import (
	"context"
	"encoding/json"
	"fmt"

	errs "github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render/nodelink"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/render/sink"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// Render generates output artifacts in the requested formats. Formats and
// palette are expected to be validated with [Options.ValidateForRender].
func Render(ctx context.Context, l treemap.Layout, root *hierarchy.Node, opts Options) (map[string][]byte, error) {
	opts.SetRenderDefaults()
	colors := palette.Assign(l.Categories, opts.Palette)
	opts.Logger.Debug("assigned colors", "palette", colors.String())

	if opts.IsNodelink() {
		return renderNodelink(ctx, root, colors, opts)
	}
	return renderTreemap(ctx, l, colors, opts)
}

func renderTreemap(ctx context.Context, l treemap.Layout, colors palette.Assignment, opts Options) (map[string][]byte, error) {
	sinkOpts := buildSinkOptions(colors, opts)
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatHTML:
			data = sink.RenderHTML(l, sinkOpts...)
		case FormatSVG:
			data = sink.RenderSVG(l, sinkOpts...)
		case FormatJSON:
			data, err = sink.RenderJSON(l, sinkOpts...)
		case FormatPNG:
			data, err = sink.RenderPNG(ctx, l, opts.Scale, sinkOpts...)
		case FormatPDF:
			data, err = sink.RenderPDF(ctx, l, sinkOpts...)
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported treemap format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}

func buildSinkOptions(colors palette.Assignment, opts Options) []sink.Option {
	sinkOpts := []sink.Option{
		sink.WithColors(colors),
		sink.WithTitle(opts.Title, opts.Description),
	}
	if opts.NoLegend {
		sinkOpts = append(sinkOpts, sink.WithoutLegend())
	}
	if opts.NoTooltip {
		sinkOpts = append(sinkOpts, sink.WithoutTooltip())
	}
	return sinkOpts
}

// nodelinkJSON is the JSON artifact of a node-link rendering.
type nodelinkJSON struct {
	VizType string          `json:"viz_type"`
	DOT     string          `json:"dot"`
	Root    *hierarchy.Node `json:"root"`
}

func renderNodelink(ctx context.Context, root *hierarchy.Node, colors palette.Assignment, opts Options) (map[string][]byte, error) {
	dot := nodelink.ToDOT(root, nodelink.Options{Detailed: opts.Detailed, Colors: &colors})
	artifacts := make(map[string][]byte, len(opts.Formats))

	for _, format := range opts.Formats {
		var (
			data []byte
			err  error
		)
		switch format {
		case FormatSVG:
			data, err = nodelink.RenderSVG(ctx, dot)
		case FormatPNG:
			data, err = nodelink.RenderPNG(ctx, dot, opts.Scale)
		case FormatPDF:
			data, err = nodelink.RenderPDF(ctx, dot)
		case FormatJSON:
			data, err = json.MarshalIndent(nodelinkJSON{VizType: VizTypeNodelink, DOT: dot, Root: root}, "", "  ")
		default:
			return nil, errs.New(errs.ErrCodeInvalidFormat, "unsupported nodelink format: %s", format)
		}
		if err != nil {
			return nil, fmt.Errorf("render %s: %w", format, err)
		}
		artifacts[format] = data
	}
	return artifacts, nil
}
