package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	errs "github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
	"github.com/matzehuels/treemap/pkg/render/palette"
	"github.com/matzehuels/treemap/pkg/render/sink"
)

// layoutCommand creates the layout command that exports tile geometry as JSON.
func (c *CLI) layoutCommand() *cobra.Command {
	var (
		output     string
		paletteStr string
		sf         sourceFlags
	)
	opts := pipeline.Options{}

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Compute the treemap layout and write it as JSON",
		Long: `Compute the treemap layout and write it as JSON.

The output lists every tile with its name, category, value, rectangle and
fill color, plus the category legend. It is the same document as
'render -f json'.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("palette") {
				opts.Palette = parseList(paletteStr)
			}
			if err := applyConfig(cmd, sf.config, &opts); err != nil {
				return err
			}
			return c.runLayout(cmd.Context(), opts, output, sf)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default: <input>.layout.json or treemap.layout.json)")
	bindSourceFlags(cmd, &opts, &sf)
	bindLayoutFlags(cmd, &opts)
	cmd.Flags().StringVar(&paletteStr, "palette", "", "comma-separated category colors (default: Pastel1)")

	return cmd
}

// runLayout fetches the document, computes the layout and writes it.
func (c *CLI) runLayout(ctx context.Context, opts pipeline.Options, output string, sf sourceFlags) error {
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
	opts.Formats = []string{pipeline.FormatJSON}
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}

	spinner := newSpinnerWithContext(ctx, stderr, "Computing layout...")
	spinner.Start()

	root, fetchHit, err := runner.FetchWithCacheInfo(ctx, opts)
	if err != nil {
		spinner.StopWithError("Fetch failed")
		return fmt.Errorf("fetch: %w", err)
	}
	l, err := runner.ComputeLayout(ctx, root, opts)
	if err != nil {
		spinner.StopWithError("Layout failed")
		return fmt.Errorf("layout: %w", err)
	}
	spinner.Stop()

	if ctx.Err() != nil {
		return ctx.Err()
	}

	data, err := sink.RenderJSON(l, sink.WithColors(palette.Assign(l.Categories, opts.Palette)))
	if err != nil {
		return fmt.Errorf("encode layout: %w", err)
	}

	outputPath := output
	if outputPath == "" {
		outputPath = basePath("", opts.Input) + ".layout.json"
	}
	if err := writeArtifact(outputPath, data); err != nil {
		return err
	}

	printSuccess("Layout complete")
	printFile(outputPath)
	printStats(pipeline.Stats{
		LeafCount:     len(l.Tiles),
		CategoryCount: len(l.Categories),
		Total:         l.Total,
	}, fetchHit)
	printNewline()
	printNextStep("Explore", "treemap browse"+inputArg(opts.Input))
	return nil
}

// inputArg renders --input for suggested follow-up commands.
func inputArg(input string) string {
	if input == "" {
		return ""
	}
	return " --input " + input
}
