package cli

import (
	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	errs "github.com/matzehuels/treemap/pkg/errors"
	"github.com/matzehuels/treemap/pkg/pipeline"
)

// configField binds a TOML key to the flag it provides a default for.
type configField struct {
	key  string
	flag string
	set  func(dst, src *pipeline.Options)
}

var configFields = []configField{
	{"url", "url", func(d, s *pipeline.Options) { d.URL = s.URL }},
	{"input", "input", func(d, s *pipeline.Options) { d.Input = s.Input }},
	{"selector", "select", func(d, s *pipeline.Options) { d.Selector = s.Selector }},
	{"cached", "cached", func(d, s *pipeline.Options) { d.Cached = s.Cached }},
	{"type", "type", func(d, s *pipeline.Options) { d.VizType = s.VizType }},
	{"width", "width", func(d, s *pipeline.Options) { d.Width = s.Width }},
	{"height", "height", func(d, s *pipeline.Options) { d.Height = s.Height }},
	{"padding", "padding", func(d, s *pipeline.Options) { d.Padding = s.Padding }},
	{"formats", "format", func(d, s *pipeline.Options) { d.Formats = s.Formats }},
	{"palette", "palette", func(d, s *pipeline.Options) { d.Palette = s.Palette }},
	{"title", "title", func(d, s *pipeline.Options) { d.Title = s.Title }},
	{"description", "description", func(d, s *pipeline.Options) { d.Description = s.Description }},
	{"no_legend", "no-legend", func(d, s *pipeline.Options) { d.NoLegend = s.NoLegend }},
	{"no_tooltip", "no-tooltip", func(d, s *pipeline.Options) { d.NoTooltip = s.NoTooltip }},
	{"detailed", "detailed", func(d, s *pipeline.Options) { d.Detailed = s.Detailed }},
	{"scale", "scale", func(d, s *pipeline.Options) { d.Scale = s.Scale }},
}

// applyConfig loads the TOML file at path into opts. Values given on the
// command line win over the file; keys the command has no flag for are
// ignored.
func applyConfig(cmd *cobra.Command, path string, opts *pipeline.Options) error {
	if path == "" {
		return nil
	}

	var file pipeline.Options
	meta, err := toml.DecodeFile(path, &file)
	if err != nil {
		return errs.Wrap(errs.ErrCodeInvalidConfig, err, "read config %s", path)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return errs.New(errs.ErrCodeInvalidConfig, "config %s: unknown key %q", path, undecoded[0].String())
	}

	for _, f := range configFields {
		if !meta.IsDefined(f.key) {
			continue
		}
		if flag := cmd.Flags().Lookup(f.flag); flag == nil || flag.Changed {
			continue
		}
		f.set(opts, &file)
	}
	return nil
}
