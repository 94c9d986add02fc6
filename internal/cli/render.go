package cli

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// defaultOutputBase names output files when neither --output nor --input is given.
const defaultOutputBase = "treemap"

// renderCommand creates the render command that runs the full pipeline.
func (c *CLI) renderCommand() *cobra.Command {
	var (
		output     string
		formatsStr string
		paletteStr string
		sf         sourceFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Fetch the category tree and render it as a treemap",
		Long: `Fetch the category tree and render it as a treemap.

The default output is a self-contained HTML page holding the treemap, a color
legend and a hover tooltip. SVG, JSON, PNG and PDF are also available; PNG and
PDF require rsvg-convert. With -t nodelink the hierarchy is drawn as a
Graphviz node-link diagram instead.

Fetched documents and rendered artifacts are cached locally.`,
		Example: `  treemap render
  treemap render -f html,svg,json -o out/movies
  treemap render --input movies.json --palette "#fbb4ae,#b3cde3,#ccebc5"
  treemap render -t nodelink -f svg --detailed`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				opts.Formats = parseFormats(formatsStr)
			}
			if cmd.Flags().Changed("palette") {
				opts.Palette = parseList(paletteStr)
			}
			if err := applyConfig(cmd, sf.config, &opts); err != nil {
				return err
			}
			if len(opts.Formats) == 0 {
				opts.Formats = parseFormats("")
			}
			return c.runRender(cmd.Context(), opts, output, sf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (single format) or base path (multiple formats)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): html (default), svg, json, png, pdf (comma-separated)")
	cmd.Flags().StringVarP(&opts.VizType, "type", "t", pipeline.DefaultVizType, "visualization type: treemap (default), nodelink")
	bindSourceFlags(cmd, &opts, &sf)
	bindLayoutFlags(cmd, &opts)
	cmd.Flags().StringVar(&paletteStr, "palette", "", "comma-separated category colors (default: Pastel1)")
	cmd.Flags().StringVar(&opts.Title, "title", pipeline.DefaultTitle, "page title")
	cmd.Flags().StringVar(&opts.Description, "description", pipeline.DefaultDescription, "page description")
	cmd.Flags().BoolVar(&opts.NoLegend, "no-legend", false, "omit the color legend")
	cmd.Flags().BoolVar(&opts.NoTooltip, "no-tooltip", false, "omit the hover tooltip")
	cmd.Flags().BoolVar(&opts.Detailed, "detailed", false, "show values in node-link labels")
	cmd.Flags().Float64Var(&opts.Scale, "scale", pipeline.DefaultScale, "PNG resolution multiplier")

	return cmd
}

// runRender executes the pipeline and writes one file per format. Nothing is
// written unless every format rendered.
func (c *CLI) runRender(ctx context.Context, opts pipeline.Options, output string, sf sourceFlags) error {
	if output != "" {
		if err := errs.ValidateOutputPath(output); err != nil {
			return err
		}
	}
	runner, err := c.newRunner(sf)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts.Logger = c.Logger
	warnIgnoredFlags(opts, sf)
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	prog := newProgress(c.Logger)
	spinner := newSpinnerWithContext(ctx, stderr, fmt.Sprintf("Rendering %s...", opts.VizType))
	spinner.Start()

	result, err := runner.Execute(ctx, opts)
	if err != nil {
		spinner.StopWithError("Render failed")
		return err
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	logger := loggerFromContext(ctx)
	paths := outputPaths(output, opts.Input, opts.Formats)
	for _, format := range opts.Formats {
		if err := writeArtifact(paths[format], result.Artifacts[format]); err != nil {
			return err
		}
		logger.Debug("wrote artifact", "format", format, "path", paths[format], "bytes", len(result.Artifacts[format]))
	}
	prog.done("Rendered " + opts.VizType)

	printSuccess("Render complete")
	for _, format := range opts.Formats {
		printFile(paths[format])
	}
	printStats(result.Stats, result.CacheInfo.FetchHit && result.CacheInfo.RenderHit)
	if html, ok := paths[pipeline.FormatHTML]; ok {
		printNewline()
		printNextStep("Open", html)
	}
	return nil
}

// outputPaths maps each format to the file it is written to. A single format
// is written to output verbatim; several formats share output as a base
// path, with any known format extension stripped.
func outputPaths(output, input string, formats []string) map[string]string {
	paths := make(map[string]string, len(formats))
	if len(formats) == 1 && output != "" {
		paths[formats[0]] = output
		return paths
	}

	base := basePath(output, input)
	for _, format := range formats {
		paths[format] = base + "." + format
	}
	return paths
}

// basePath derives the base output path. Without output, it is the input
// file name minus its extension, or "treemap" when fetching a URL.
func basePath(output, input string) string {
	if output == "" {
		if input == "" {
			return defaultOutputBase
		}
		return strings.TrimSuffix(input, filepath.Ext(input))
	}
	ext := filepath.Ext(output)
	if pipeline.ValidFormats[strings.TrimPrefix(ext, ".")] {
		return strings.TrimSuffix(output, ext)
	}
	return output
}

// writeArtifact writes data to path, creating parent directories.
func writeArtifact(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create output dir %s: %w", dir, err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output %s: %w", path, err)
	}
	return nil
}
