package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/treemap/pkg/cache"
	errs "github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/httputil"
	"github.com/matzehuels/treemap/pkg/observability"
	"github.com/matzehuels/treemap/pkg/treemap"
)

// Runner encapsulates pipeline execution with caching.
//
// The Runner is stateless except for the cache, fetcher and logger; it
// doesn't store pipeline results.
type Runner struct {
	Cache   cache.Cache
	Keyer   cache.Keyer
	Fetcher hierarchy.Fetcher
	Logger  *log.Logger
}

// NewRunner creates a runner with the given cache and keyer.
// If keyer is nil, a DefaultKeyer is used.
// If cache is nil, a NullCache is used (caching disabled).
// Documents are fetched with a default [httputil.Client]; replace
// Runner.Fetcher to change that.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if c == nil {
		c = cache.NewNullCache()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{
		Cache:   c,
		Keyer:   keyer,
		Fetcher: httputil.NewClient(),
		Logger:  logger,
	}
}

// Execute runs the complete fetch → layout → render pipeline with caching.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	result := &Result{
		Artifacts: make(map[string][]byte),
	}

	// Stage 1: Fetch
	fetchStart := time.Now()
	root, fetchHit, err := r.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("fetch: %w", err)
	}
	result.Root = root
	result.DocumentHash = DocumentHash(root)
	result.Stats.FetchTime = time.Since(fetchStart)
	result.CacheInfo.FetchHit = fetchHit

	// Stage 2: Layout
	layoutStart := time.Now()
	layout, err := r.ComputeLayout(ctx, root, opts)
	if err != nil {
		return nil, fmt.Errorf("layout: %w", err)
	}
	result.Layout = layout
	result.Stats.LayoutTime = time.Since(layoutStart)
	result.Stats.LeafCount = len(layout.Tiles)
	result.Stats.CategoryCount = len(layout.Categories)
	result.Stats.Total = layout.Total

	// Stage 3: Render
	renderStart := time.Now()
	artifacts, renderHit, err := r.RenderWithCacheInfo(ctx, layout, root, opts)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	result.Artifacts = artifacts
	result.Stats.RenderTime = time.Since(renderStart)
	result.CacheInfo.RenderHit = renderHit

	return result, nil
}

// FetchWithCacheInfo loads the category tree and reports whether the
// document came from cache. Local files are always read from disk.
func (r *Runner) FetchWithCacheInfo(ctx context.Context, opts Options) (*hierarchy.Node, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForFetch(); err != nil {
		return nil, false, err
	}

	source := opts.Source()
	hooks := observability.Pipeline()
	hooks.OnFetchStart(ctx, source)
	start := time.Now()

	root, hit, err := r.fetch(ctx, opts)
	if err != nil {
		hooks.OnFetchComplete(ctx, source, 0, time.Since(start), err)
		opts.Logger.Error("fetch failed", "source", source, "err", err)
		return nil, false, err
	}

	leaves := len(root.Leaves())
	hooks.OnFetchComplete(ctx, source, leaves, time.Since(start), nil)
	opts.Logger.Info("fetched document",
		"source", source,
		"leaves", leaves,
		"cached", hit,
		"duration", time.Since(start))
	return root, hit, nil
}

func (r *Runner) fetch(ctx context.Context, opts Options) (*hierarchy.Node, bool, error) {
	if opts.Input != "" {
		root, err := hierarchy.ReadFile(opts.Input, opts.Selector)
		return root, false, err
	}

	cacheKey := r.Keyer.DocumentKey(opts.URL)
	if opts.Cached {
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			if root, err := hierarchy.Decode(data, opts.Selector); err == nil {
				opts.Logger.Info("using cached document, skipping fetch", "url", opts.URL)
				return root, true, nil
			}
			// A cached document that no longer decodes is refetched.
		}
	}

	data, err := r.Fetcher.Fetch(ctx, opts.URL)
	if err != nil {
		return nil, false, err
	}
	root, err := hierarchy.Decode(data, opts.Selector)
	if err != nil {
		return nil, false, err
	}
	if err := r.Cache.Set(ctx, cacheKey, data, cache.TTLDocument); err != nil {
		opts.Logger.Warn("cache document", "err", err)
	}
	return root, false, nil
}

// Fetch is a convenience wrapper that calls FetchWithCacheInfo and discards the cache hit info.
func (r *Runner) Fetch(ctx context.Context, opts Options) (*hierarchy.Node, error) {
	root, _, err := r.FetchWithCacheInfo(ctx, opts)
	return root, err
}

// ComputeLayout computes the treemap layout of root. Layouts are cheap to
// compute and are not cached.
func (r *Runner) ComputeLayout(ctx context.Context, root *hierarchy.Node, opts Options) (treemap.Layout, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForLayout(); err != nil {
		return treemap.Layout{}, err
	}
	if root == nil {
		return treemap.Layout{}, errs.New(errs.ErrCodeInvalidInput, "no document to lay out")
	}

	leaves := len(root.Leaves())
	hooks := observability.Pipeline()
	hooks.OnLayoutStart(ctx, leaves)
	start := time.Now()

	l := treemap.Compute(root, opts.LayoutOptions())

	hooks.OnLayoutComplete(ctx, len(l.Tiles), time.Since(start))
	opts.Logger.Info("computed layout",
		"tiles", len(l.Tiles),
		"categories", len(l.Categories),
		"duration", time.Since(start))
	return l, nil
}

// RenderWithCacheInfo generates artifacts with caching and returns cache hit info.
func (r *Runner) RenderWithCacheInfo(ctx context.Context, l treemap.Layout, root *hierarchy.Node, opts Options) (map[string][]byte, bool, error) {
	r.applyLogger(&opts)
	if err := opts.ValidateForRender(); err != nil {
		return nil, false, err
	}

	hooks := observability.Pipeline()
	hooks.OnRenderStart(ctx, opts.Formats)
	start := time.Now()

	docHash := DocumentHash(root)

	// Try to get all formats from cache
	allCached := true
	artifacts := make(map[string][]byte)
	for _, format := range opts.Formats {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		if data, hit, err := r.Cache.Get(ctx, cacheKey); err == nil && hit {
			artifacts[format] = data
		} else {
			allCached = false
			break
		}
	}
	if allCached && len(artifacts) == len(opts.Formats) {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
		opts.Logger.Info("rendered outputs", "formats", opts.Formats, "cached", true)
		return artifacts, true, nil
	}

	rendered, err := Render(ctx, l, root, opts)
	if err != nil {
		hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), err)
		return nil, false, err
	}

	for format, data := range rendered {
		cacheKey := r.Keyer.ArtifactKey(docHash, opts.ArtifactKeyOpts(format))
		_ = r.Cache.Set(ctx, cacheKey, data, cache.TTLArtifact)
	}

	hooks.OnRenderComplete(ctx, opts.Formats, time.Since(start), nil)
	opts.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", time.Since(start))
	return rendered, false, nil
}

// Render is a convenience wrapper that calls RenderWithCacheInfo and discards the cache hit info.
func (r *Runner) Render(ctx context.Context, l treemap.Layout, root *hierarchy.Node, opts Options) (map[string][]byte, error) {
	artifacts, _, err := r.RenderWithCacheInfo(ctx, l, root, opts)
	return artifacts, err
}

// Close releases resources held by the runner (primarily the cache).
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// DocumentHash returns the content hash of a decoded tree. Equivalent
// documents hash the same regardless of formatting or value encoding.
func DocumentHash(root *hierarchy.Node) string {
	if root == nil {
		return ""
	}
	data, err := json.Marshal(hashTree(root))
	if err != nil {
		return ""
	}
	return cache.Hash(data)
}

// hashNode is the hashed form of a node. Every field is always encoded so a
// zero-valued leaf and an empty internal node stay distinct.
type hashNode struct {
	Name     string     `json:"name"`
	Category string     `json:"category"`
	Value    float64    `json:"value"`
	Leaf     bool       `json:"leaf"`
	Children []hashNode `json:"children"`
}

func hashTree(n *hierarchy.Node) hashNode {
	h := hashNode{Name: n.Name, Category: n.Category, Value: n.Value, Leaf: n.IsLeaf()}
	h.Children = make([]hashNode, len(n.Children))
	for i, c := range n.Children {
		h.Children[i] = hashTree(c)
	}
	return h
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
