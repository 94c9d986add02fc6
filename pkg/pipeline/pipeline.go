// Package pipeline provides the fetch → layout → render pipeline behind the
// treemap CLI.
//
// # Architecture
//
// The pipeline consists of three stages, each taking the previous stage's
// result explicitly:
//
//  1. Fetch: Load the category tree from a URL or a local file
//  2. Layout: Compute the squarified treemap for the canvas
//  3. Render: Generate output in the requested formats (HTML, SVG, JSON, PNG, PDF)
//
// A failed fetch stops the run: nothing is laid out or rendered.
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    URL:     hierarchy.DefaultURL,
//	    Formats: []string{"html"},
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	page := result.Artifacts["html"]
//
// Run individual stages:
//
//	root, err := runner.Fetch(ctx, opts)
//	layout, err := runner.ComputeLayout(ctx, root, opts)
//	artifacts, err := runner.Render(ctx, layout, root, opts)
package pipeline

import (
	"io"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/cache"
	errs "github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultWidth and DefaultHeight are the canvas size in pixels.
	DefaultWidth  = treemap.DefaultWidth
	DefaultHeight = treemap.DefaultHeight

	// DefaultPadding is the gap between sibling tiles. Set
	// [Options.Padding] to a negative value to disable padding.
	DefaultPadding = treemap.DefaultPaddingInner

	// DefaultScale is the PNG resolution multiplier.
	DefaultScale = 2.0

	DefaultTitle       = "Movie Sales"
	DefaultDescription = "Top 100 Highest Grossing Movies Grouped By Genre"
)

// Visualization types.
const (
	VizTypeTreemap  = "treemap"
	VizTypeNodelink = "nodelink"
)

// DefaultVizType is the default visualization type.
const DefaultVizType = VizTypeTreemap

// Format constants for output formats.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatPNG  = "png"
	FormatPDF  = "pdf"
	FormatJSON = "json"
)

// ValidFormats is the set of supported output formats.
var ValidFormats = map[string]bool{
	FormatHTML: true,
	FormatSVG:  true,
	FormatPNG:  true,
	FormatPDF:  true,
	FormatJSON: true,
}

// ValidVizTypes is the set of supported visualization types.
var ValidVizTypes = map[string]bool{
	VizTypeTreemap:  true,
	VizTypeNodelink: true,
}

// =============================================================================
// Options - Pipeline Configuration
// =============================================================================

// Options contains all configuration for the pipeline.
type Options struct {
	// Fetch options. Input takes precedence over URL.
	URL      string `json:"url,omitempty" toml:"url"`
	Input    string `json:"input,omitempty" toml:"input"`
	Selector string `json:"selector,omitempty" toml:"selector"`
	Cached   bool   `json:"cached,omitempty" toml:"cached"`

	// Layout options
	VizType string  `json:"viz_type,omitempty" toml:"type"`
	Width   float64 `json:"width,omitempty" toml:"width"`
	Height  float64 `json:"height,omitempty" toml:"height"`
	Padding float64 `json:"padding,omitempty" toml:"padding"`

	// Render options
	Formats     []string `json:"formats,omitempty" toml:"formats"`
	Palette     []string `json:"palette,omitempty" toml:"palette"`
	Title       string   `json:"title,omitempty" toml:"title"`
	Description string   `json:"description,omitempty" toml:"description"`
	NoLegend    bool     `json:"no_legend,omitempty" toml:"no_legend"`
	NoTooltip   bool     `json:"no_tooltip,omitempty" toml:"no_tooltip"`
	Detailed    bool     `json:"detailed,omitempty" toml:"detailed"`
	Scale       float64  `json:"scale,omitempty" toml:"scale"`

	// Runtime options (not serialized)
	Logger *log.Logger `json:"-" toml:"-"`

	validated bool
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Root is the fetched category tree.
	Root *hierarchy.Node

	// DocumentHash is the content hash of the tree.
	DocumentHash string

	// Layout holds the computed tiles.
	Layout treemap.Layout

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains timing and size information.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// Stats contains pipeline execution statistics.
type Stats struct {
	LeafCount     int
	CategoryCount int
	Total         float64
	FetchTime     time.Duration
	LayoutTime    time.Duration
	RenderTime    time.Duration
}

// CacheInfo tracks cache hits for each pipeline stage.
type CacheInfo struct {
	FetchHit  bool // Whether the document came from cache
	RenderHit bool // Whether all artifacts came from cache
}

// =============================================================================
// Validation Functions
// =============================================================================

// ValidateFormat checks that a format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return errs.New(errs.ErrCodeInvalidFormat, "invalid format: %q (must be one of: html, svg, png, pdf, json)", format)
	}
	return nil
}

// ValidateFormats checks that all formats are valid.
func ValidateFormats(formats []string) error {
	for _, f := range formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}
	return nil
}

// ValidateVizType checks that a visualization type is valid.
func ValidateVizType(vizType string) error {
	if !ValidVizTypes[vizType] {
		return errs.New(errs.ErrCodeInvalidVizType, "invalid viz_type: %q (must be one of: treemap, nodelink)", vizType)
	}
	return nil
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks required fields and applies defaults for the
// full pipeline. It is idempotent.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}
	if err := o.ValidateForFetch(); err != nil {
		return err
	}
	if err := o.ValidateForRender(); err != nil {
		return err
	}
	o.validated = true
	return nil
}

// ValidateForFetch checks the document source.
func (o *Options) ValidateForFetch() error {
	if o.Input == "" {
		if o.URL == "" {
			o.URL = hierarchy.DefaultURL
		}
		if err := errs.ValidateURL(o.URL); err != nil {
			return err
		}
	}
	if o.Selector == "" {
		o.Selector = hierarchy.RootSelector
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	return nil
}

// SetLayoutDefaults sets default values for layout computation.
func (o *Options) SetLayoutDefaults() {
	if o.VizType == "" {
		o.VizType = DefaultVizType
	}
	if o.Width == 0 {
		o.Width = DefaultWidth
	}
	if o.Height == 0 {
		o.Height = DefaultHeight
	}
	if o.Padding == 0 {
		o.Padding = DefaultPadding
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForLayout validates and sets defaults for layout computation.
func (o *Options) ValidateForLayout() error {
	o.SetLayoutDefaults()
	if o.Width < 0 || o.Height < 0 {
		return errs.New(errs.ErrCodeInvalidInput, "canvas size %gx%g must not be negative", o.Width, o.Height)
	}
	return ValidateVizType(o.VizType)
}

// SetRenderDefaults sets default values for rendering.
func (o *Options) SetRenderDefaults() {
	if len(o.Formats) == 0 {
		o.Formats = []string{FormatHTML}
	}
	if o.Title == "" {
		o.Title = DefaultTitle
	}
	if o.Description == "" {
		o.Description = DefaultDescription
	}
	if o.Scale == 0 {
		o.Scale = DefaultScale
	}
	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
}

// ValidateForRender validates and sets defaults for rendering. Palette
// colors are normalized to lowercase #rrggbb.
func (o *Options) ValidateForRender() error {
	if err := o.ValidateForLayout(); err != nil {
		return err
	}
	o.SetRenderDefaults()
	if err := ValidateFormats(o.Formats); err != nil {
		return err
	}
	if o.IsNodelink() && slices.Contains(o.Formats, FormatHTML) {
		return errs.New(errs.ErrCodeInvalidFormat, "html output requires the treemap visualization")
	}
	if len(o.Palette) > 0 {
		colors, err := palette.Parse(o.Palette)
		if err != nil {
			return err
		}
		o.Palette = colors
	}
	return nil
}

// IsNodelink returns true if this is a nodelink visualization.
func (o *Options) IsNodelink() bool {
	return o.VizType == VizTypeNodelink
}

// Source describes where the document comes from, for logs and cache keys.
func (o *Options) Source() string {
	if o.Input != "" {
		return "file:" + o.Input
	}
	return o.URL
}

// LayoutOptions returns the layout engine configuration.
func (o *Options) LayoutOptions() treemap.Options {
	return treemap.Options{
		Width:        o.Width,
		Height:       o.Height,
		PaddingInner: max(o.Padding, 0),
	}
}

// ArtifactKeyOpts returns cache key options for artifact rendering.
func (o *Options) ArtifactKeyOpts(format string) cache.ArtifactKeyOpts {
	return cache.ArtifactKeyOpts{
		Format:   format,
		VizType:  o.VizType,
		Selector: o.Selector,
		Width:    o.Width,
		Height:   o.Height,
		Padding:  o.Padding,
		Palette:  o.Palette,
		Legend:   !o.NoLegend,
		Tooltip:  !o.NoTooltip,
		Title:    strings.Join([]string{o.Title, o.Description}, "\x00"),
		Detailed: o.Detailed,
		Scale:    o.Scale,
	}
}
