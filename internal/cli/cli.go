// Package cli implements the treemap command-line interface.
package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treemap/pkg/buildinfo"
	"github.com/matzehuels/treemap/pkg/cache"
	errs "github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/hierarchy"
	"github.com/matzehuels/treemap/pkg/httputil"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "treemap"
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "Treemap renders hierarchical revenue data as a squarified treemap",
		Long: `Treemap fetches a category tree (by default the top grossing movies grouped by
genre), lays its leaves out as a squarified treemap and renders it as an
interactive HTML page with a color legend and hover tooltip, or as SVG, PNG,
PDF or JSON.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentPreRunE = func(cmd *cobra.Command, args []string) error {
		installLogHooks(c.Logger)
		cmd.SetContext(withLogger(cmd.Context(), c.Logger))
		return nil
	}

	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.browseCommand())
	root.AddCommand(c.cacheCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use. The fetcher makes a
// single attempt unless --retries asks for more.
func (c *CLI) newRunner(sf sourceFlags) (*pipeline.Runner, error) {
	fetcher, err := newFetcher(sf)
	if err != nil {
		return nil, err
	}
	store, err := newCache(sf.noCache)
	if err != nil {
		return nil, err
	}
	r := pipeline.NewRunner(store, nil, c.Logger)
	r.Fetcher = fetcher
	return r, nil
}

// newFetcher builds the document client from the source flags.
func newFetcher(sf sourceFlags) (*httputil.Client, error) {
	var opts []httputil.Option
	if sf.timeout > 0 {
		opts = append(opts, httputil.WithTimeout(sf.timeout))
	}
	if sf.retries > 0 {
		opts = append(opts, httputil.WithRetry(sf.retries+1, httputil.DefaultRetryDelay))
	}
	if sf.maxSize != "" {
		n, err := humanize.ParseBytes(sf.maxSize)
		if err != nil || n == 0 {
			return nil, errs.New(errs.ErrCodeInvalidInput, "invalid --max-size %q", sf.maxSize)
		}
		opts = append(opts, httputil.WithMaxBytes(int64(n)))
	}
	for _, h := range sf.headers {
		key, value, ok := strings.Cut(h, ":")
		if key = strings.TrimSpace(key); !ok || key == "" {
			return nil, errs.New(errs.ErrCodeInvalidInput, "invalid --header %q, want \"Key: Value\"", h)
		}
		opts = append(opts, httputil.WithHeader(key, strings.TrimSpace(value)))
	}
	return httputil.NewClient(opts...), nil
}

func newCache(noCache bool) (cache.Cache, error) {
	if noCache {
		return cache.NewNullCache(), nil
	}
	dir, err := cacheDir()
	if err != nil {
		return cache.NewNullCache(), nil
	}
	fc, err := cache.NewFileCache(dir)
	if err != nil {
		return nil, fmt.Errorf("open cache %s: %w", dir, err)
	}
	return fc, nil
}

// =============================================================================
// Paths
// =============================================================================

// cacheDir returns the cache directory using XDG standard (~/.cache/treemap/).
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}

// =============================================================================
// Options Helpers
// =============================================================================

// sourceFlags are the flags shared by every command that loads a document.
type sourceFlags struct {
	config  string
	noCache bool
	timeout time.Duration
	retries int
	maxSize string
	headers []string
}

// bindSourceFlags registers document source flags on cmd.
func bindSourceFlags(cmd *cobra.Command, opts *pipeline.Options, sf *sourceFlags) {
	cmd.Flags().StringVar(&opts.URL, "url", hierarchy.DefaultURL, "document URL")
	cmd.Flags().StringVarP(&opts.Input, "input", "i", "", "read the document from a local file instead of --url")
	cmd.Flags().StringVar(&opts.Selector, "select", hierarchy.RootSelector, "JSONPath selecting the tree root inside the document")
	cmd.Flags().BoolVar(&opts.Cached, "cached", false, "reuse a previously fetched copy of the document instead of fetching it")
	cmd.Flags().DurationVar(&sf.timeout, "timeout", httputil.DefaultTimeout, "timeout for the document request")
	cmd.Flags().IntVar(&sf.retries, "retries", 0, "retry a failed document request this many times")
	cmd.Flags().StringVar(&sf.maxSize, "max-size", "", "largest accepted document, e.g. 64MiB (default 32MiB)")
	cmd.Flags().StringArrayVar(&sf.headers, "header", nil, "extra request header as \"Key: Value\" (repeatable)")
	cmd.Flags().BoolVar(&sf.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVarP(&sf.config, "config", "c", "", "TOML file with default options")
}

// bindLayoutFlags registers canvas flags on cmd.
func bindLayoutFlags(cmd *cobra.Command, opts *pipeline.Options) {
	cmd.Flags().Float64Var(&opts.Width, "width", pipeline.DefaultWidth, "canvas width")
	cmd.Flags().Float64Var(&opts.Height, "height", pipeline.DefaultHeight, "canvas height")
	cmd.Flags().Float64Var(&opts.Padding, "padding", pipeline.DefaultPadding, "gap between sibling tiles (negative disables)")
}

// parseFormats parses a comma-separated format string into a slice.
func parseFormats(s string) []string {
	if s == "" {
		return []string{pipeline.FormatHTML}
	}
	var out []string
	for _, f := range strings.Split(s, ",") {
		if f = strings.TrimSpace(f); f != "" {
			out = append(out, strings.ToLower(f))
		}
	}
	return out
}

// parseList parses a comma-separated list, dropping empty items.
func parseList(s string) []string {
	var out []string
	for _, item := range strings.Split(s, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

// warnIgnoredFlags reports flags that have no effect with the chosen source.
func warnIgnoredFlags(opts pipeline.Options, sf sourceFlags) {
	if opts.Input == "" {
		return
	}
	if opts.Cached {
		printWarning("--cached has no effect with --input")
	}
	if sf.retries > 0 {
		printWarning("--retries has no effect with --input")
	}
}
